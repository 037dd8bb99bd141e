package assignment

import (
	"context"
	"database/sql"
)

//go:generate mockgen -source=assignment_repo.go -destination=mock/assignment_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Insert(ctx context.Context, staffID, clientID string) error
	DeleteRow(ctx context.Context, staffID, clientID string) (bool, error)
	Exists(ctx context.Context, staffID, clientID string) (bool, error)
	ListClientIDs(ctx context.Context, staffID string) ([]string, error)
	CountByStaff(ctx context.Context, staffID string) (int64, error)
}

type repository struct {
	db *sql.DB
	tx *sql.Tx
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

type queryer interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

func (r *repository) q() queryer {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func (r *repository) Insert(ctx context.Context, staffID, clientID string) error {
	query := `
INSERT INTO staff_assignments (staff_id, client_id, created_at)
VALUES ($1, $2, NOW())
`
	_, err := r.q().ExecContext(ctx, query, staffID, clientID)
	return err
}

func (r *repository) DeleteRow(ctx context.Context, staffID, clientID string) (bool, error) {
	query := `
DELETE FROM staff_assignments
WHERE staff_id = $1 AND client_id = $2
`
	res, err := r.q().ExecContext(ctx, query, staffID, clientID)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *repository) Exists(ctx context.Context, staffID, clientID string) (bool, error) {
	query := `
SELECT EXISTS (
	SELECT 1 FROM staff_assignments
	WHERE staff_id = $1 AND client_id = $2
)
`
	var exists bool
	err := r.q().QueryRowContext(ctx, query, staffID, clientID).Scan(&exists)
	return exists, err
}

func (r *repository) ListClientIDs(ctx context.Context, staffID string) ([]string, error) {
	query := `
SELECT client_id::text
FROM staff_assignments
WHERE staff_id = $1
ORDER BY created_at ASC
`
	rows, err := r.q().QueryContext(ctx, query, staffID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *repository) CountByStaff(ctx context.Context, staffID string) (int64, error) {
	query := `
SELECT COUNT(*) FROM staff_assignments WHERE staff_id = $1
`
	var count int64
	err := r.q().QueryRowContext(ctx, query, staffID).Scan(&count)
	return count, err
}
