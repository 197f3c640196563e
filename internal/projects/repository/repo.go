package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/paper-planes/pm-backend/internal/projects/domain"
)

// ProjectRepository provides persistence operations for projects.
type ProjectRepository struct {
	db *sql.DB
}

// NewProjectRepository creates a new project repository.
func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `id, project_code, name, client, grp, start_date, end_date, status,
       COALESCE(drive_folder_id, ''), COALESCE(drive_folder_url, ''), COALESCE(vault_path, ''),
       created_at, updated_at`

// Create inserts a new project. The project code must already be assigned;
// a duplicate code fails with domain.ErrDuplicateCode.
func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	if p.Code == "" {
		return nil, fmt.Errorf("project code required")
	}
	if p.Name == "" {
		return nil, fmt.Errorf("name required")
	}
	if p.Client == "" {
		return nil, fmt.Errorf("client required")
	}
	if !p.Group.Valid() {
		return nil, fmt.Errorf("group must be left or right")
	}
	if p.Status == "" {
		p.Status = domain.StatusDraft
	}
	if !p.Status.Valid() {
		return nil, fmt.Errorf("unknown status %q", p.Status)
	}

	const q = `
INSERT INTO projects (project_code, name, client, grp, start_date, end_date, status, vault_path)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id, created_at, updated_at;
`
	var createdAt, updatedAt string
	err := r.db.QueryRowContext(ctx, q,
		p.Code, p.Name, p.Client, string(p.Group),
		nullable(p.StartDate), nullable(p.EndDate), string(p.Status), nullable(p.VaultPath)).
		Scan(&p.ID, &createdAt, &updatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicateCode
		}
		return nil, err
	}

	p.CreatedAt = parseTimestamp(createdAt)
	p.UpdatedAt = parseTimestamp(updatedAt)
	return p, nil
}

// GetByID returns a single project or domain.ErrNotFound.
func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	q := `SELECT ` + projectColumns + ` FROM projects WHERE id = ?;`
	return r.scanOne(r.db.QueryRowContext(ctx, q, id))
}

// GetByCode returns the project with the given generated code or domain.ErrNotFound.
func (r *ProjectRepository) GetByCode(ctx context.Context, code string) (*domain.Project, error) {
	q := `SELECT ` + projectColumns + ` FROM projects WHERE project_code = ?;`
	return r.scanOne(r.db.QueryRowContext(ctx, q, code))
}

// List returns projects matching the filter, ordered as requested. The result
// is recomputed on every call.
func (r *ProjectRepository) List(ctx context.Context, f domain.ListFilter) ([]domain.Project, error) {
	var (
		where []string
		args  []any
	)

	if f.Status != "" {
		if !f.Status.Valid() {
			return nil, fmt.Errorf("unknown status %q", f.Status)
		}
		where = append(where, "status = ?")
		args = append(args, string(f.Status))
	}
	if f.Text != "" {
		// LIKE is case-insensitive for ASCII in SQLite.
		where = append(where, "(name LIKE '%' || ? || '%' OR client LIKE '%' || ? || '%')")
		args = append(args, f.Text, f.Text)
	}

	sortBy := f.SortBy
	if sortBy == "" {
		sortBy = domain.SortByCreatedAt
	}
	if !sortBy.Valid() {
		return nil, fmt.Errorf("unknown sort field %q", f.SortBy)
	}
	direction := "ASC"
	if f.Descending {
		direction = "DESC"
	}

	q := `SELECT ` + projectColumns + ` FROM projects`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += fmt.Sprintf(" ORDER BY %s %s, id %s;", sortBy, direction, direction)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 16)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Codes returns every assigned project code, newest first. Used as the
// "already used" hint for the code generator.
func (r *ProjectRepository) Codes(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT project_code FROM projects ORDER BY id DESC;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		out = append(out, code)
	}
	return out, rows.Err()
}

// UpdateRemoteLink stores the Drive folder id and shareable link on the
// project. Setting the same link twice is a no-op; a missing project fails
// with domain.ErrNotFound.
func (r *ProjectRepository) UpdateRemoteLink(ctx context.Context, id int64, folderID, url string) error {
	var curID, curURL string
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(drive_folder_id, ''), COALESCE(drive_folder_url, '') FROM projects WHERE id = ?;`, id).
		Scan(&curID, &curURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}
	if curID == folderID && curURL == url {
		return nil
	}

	const q = `
UPDATE projects
SET drive_folder_id = ?, drive_folder_url = ?, updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')
WHERE id = ?;
`
	_, err = r.db.ExecContext(ctx, q, folderID, url, id)
	return err
}

// SetStatus moves the project to a new lifecycle state.
func (r *ProjectRepository) SetStatus(ctx context.Context, id int64, status domain.Status) error {
	if !status.Valid() {
		return fmt.Errorf("unknown status %q", status)
	}

	const q = `
UPDATE projects
SET status = ?, updated_at = strftime('%Y-%m-%dT%H:%M:%fZ', 'now')
WHERE id = ?;
`
	result, err := r.db.ExecContext(ctx, q, string(status), id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *ProjectRepository) scanOne(row *sql.Row) (*domain.Project, error) {
	p, err := scanProject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func scanProject(row rowScanner) (*domain.Project, error) {
	var (
		p                    domain.Project
		group, status        string
		startDate, endDate   sql.NullString
		createdAt, updatedAt string
	)
	err := row.Scan(&p.ID, &p.Code, &p.Name, &p.Client, &group, &startDate, &endDate, &status,
		&p.DriveFolderID, &p.DriveFolderURL, &p.VaultPath, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	p.Group = domain.Group(group)
	p.Status = domain.Status(status)
	p.StartDate = startDate.String
	p.EndDate = endDate.String
	p.CreatedAt = parseTimestamp(createdAt)
	p.UpdatedAt = parseTimestamp(updatedAt)
	return &p, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func parseTimestamp(s string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint failure.
func isUniqueViolation(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		code := se.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return false
}
