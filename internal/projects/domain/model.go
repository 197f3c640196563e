package domain

import "time"

// Status is the project lifecycle state.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// Valid reports whether s is one of the known lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusActive, StatusCompleted:
		return true
	}
	return false
}

// Group routes remote folder placement. Exactly two partitions exist.
type Group string

const (
	GroupLeft  Group = "left"
	GroupRight Group = "right"
)

func (g Group) Valid() bool {
	return g == GroupLeft || g == GroupRight
}

// Project is a single consulting engagement. It is storage-agnostic and used
// across repository, service and HTTP layers.
//
// Code is the structured identifier "NNNN.AAA.slug". Once assigned it is
// immutable and unique across all projects (enforced by the database, not by
// in-memory coordination).
type Project struct {
	ID             int64      `json:"id"`
	Code           string     `json:"project_code"`
	Name           string     `json:"name"`
	Client         string     `json:"client"`
	Group          Group      `json:"group"`
	StartDate      string     `json:"start_date,omitempty"`
	EndDate        string     `json:"end_date,omitempty"`
	Status         Status     `json:"status"`
	DriveFolderID  string     `json:"drive_folder_id,omitempty"`
	DriveFolderURL string     `json:"drive_folder_url,omitempty"`
	VaultPath      string     `json:"vault_path,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// SortField names a column the project listing may be ordered by.
type SortField string

const (
	SortByCreatedAt SortField = "created_at"
	SortByCode      SortField = "project_code"
	SortByName      SortField = "name"
	SortByClient    SortField = "client"
	SortByStartDate SortField = "start_date"
)

func (f SortField) Valid() bool {
	switch f {
	case SortByCreatedAt, SortByCode, SortByName, SortByClient, SortByStartDate:
		return true
	}
	return false
}

// ListFilter selects and orders projects. Zero values mean "no constraint".
// Text matches name or client, case-insensitive substring.
type ListFilter struct {
	Status     Status
	Text       string
	SortBy     SortField
	Descending bool
}
