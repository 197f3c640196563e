package domain

import "errors"

var (
	// ErrDuplicateCode is returned when a project with the same generated
	// code already exists. The user must regenerate the code and retry.
	ErrDuplicateCode = errors.New("project code already exists")

	// ErrNotFound is returned when the requested project does not exist.
	ErrNotFound = errors.New("project not found")
)
