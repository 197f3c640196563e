package catalog

import (
	"context"
	"database/sql"
	"fmt"
)

// Repo provides read access to the methodology catalog plus the one-time seed.
type Repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// Seed upserts the fixed catalog by code. Re-running it never duplicates
// entries, so it is called unconditionally on every startup.
func (r *Repo) Seed(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer tx.Rollback()

	const q = `
INSERT INTO methodologies (code, name, category, description, typical_effort_hours, requires_details)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (code) DO UPDATE SET
    name = excluded.name,
    category = excluded.category,
    description = excluded.description,
    typical_effort_hours = excluded.typical_effort_hours,
    requires_details = excluded.requires_details;
`
	for _, m := range SeedEntries() {
		if _, err := tx.ExecContext(ctx, q,
			m.Code, m.Name, m.Category, m.Description, m.TypicalEffortHours, boolToInt(m.RequiresDetails)); err != nil {
			return fmt.Errorf("seed methodology %s: %w", m.Code, err)
		}
	}

	return tx.Commit()
}

// List returns catalog entries, optionally restricted to one category,
// ordered by category then id (seed order).
func (r *Repo) List(ctx context.Context, category string) ([]Methodology, error) {
	q := `
SELECT id, code, name, category, COALESCE(description, ''), COALESCE(typical_effort_hours, 0), requires_details
FROM methodologies
`
	var args []any
	if category != "" {
		q += "WHERE category = ?\n"
		args = append(args, category)
	}
	q += "ORDER BY category, id;"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Methodology, 0, 36)
	for rows.Next() {
		var (
			m        Methodology
			requires int
		)
		if err := rows.Scan(&m.ID, &m.Code, &m.Name, &m.Category, &m.Description, &m.TypicalEffortHours, &requires); err != nil {
			return nil, err
		}
		m.RequiresDetails = requires != 0
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Count returns the number of catalog rows.
func (r *Repo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM methodologies;`).Scan(&n)
	return n, err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
