package delivery

import (
	"context"
	"database/sql"
	"time"

	"milkroute/internal/shared/dateutil"
)

// RecordWithClient joins a record with its client's display name for
// presentation.
type RecordWithClient struct {
	DeliveryRecord
	ClientName string
}

//go:generate mockgen -source=delivery_repo.go -destination=mock/delivery_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	// Upsert writes the record for its (client, day, shift) key, updating in
	// place when the key exists. The returned id is stable across updates.
	Upsert(ctx context.Context, rec *DeliveryRecord) error

	FindByKey(ctx context.Context, clientID string, date time.Time, shift string) (*DeliveryRecord, error)
	ListByStaffAndDate(ctx context.Context, staffID string, date time.Time) ([]RecordWithClient, error)
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

func (r *repository) Upsert(ctx context.Context, rec *DeliveryRecord) error {
	query := `
INSERT INTO delivery_records (
	id, client_id, staff_id, delivery_date, shift, status, quantity, price, note, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
ON CONFLICT (client_id, delivery_date, shift) DO UPDATE
SET staff_id = EXCLUDED.staff_id,
	status = EXCLUDED.status,
	quantity = EXCLUDED.quantity,
	price = EXCLUDED.price,
	note = EXCLUDED.note,
	updated_at = NOW()
RETURNING id, created_at
`
	return r.q().QueryRowContext(
		ctx, query,
		rec.ID, rec.ClientID, rec.StaffID,
		rec.DeliveryDate.Format(dateutil.DayFormat), rec.Shift,
		rec.Status, rec.Quantity, rec.Price, rec.Note,
	).Scan(&rec.ID, &rec.CreatedAt)
}

func (r *repository) FindByKey(ctx context.Context, clientID string, date time.Time, shift string) (*DeliveryRecord, error) {
	query := `
SELECT id, client_id, staff_id, delivery_date, shift, status, quantity, price, note, created_at, updated_at
FROM delivery_records
WHERE client_id = $1 AND delivery_date = $2 AND shift = $3
`
	var rec DeliveryRecord
	err := r.q().QueryRowContext(ctx, query, clientID, date.Format(dateutil.DayFormat), shift).Scan(
		&rec.ID, &rec.ClientID, &rec.StaffID, &rec.DeliveryDate, &rec.Shift,
		&rec.Status, &rec.Quantity, &rec.Price, &rec.Note, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *repository) ListByStaffAndDate(ctx context.Context, staffID string, date time.Time) ([]RecordWithClient, error) {
	query := `
SELECT
	d.id, d.client_id, d.staff_id, d.delivery_date, d.shift, d.status,
	d.quantity, d.price, d.note, d.created_at, d.updated_at,
	COALESCE(c.full_name, 'Unknown Client')
FROM delivery_records d
LEFT JOIN clients c ON c.id = d.client_id
WHERE d.staff_id = $1 AND d.delivery_date = $2
ORDER BY d.updated_at DESC
`
	rows, err := r.q().QueryContext(ctx, query, staffID, date.Format(dateutil.DayFormat))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]RecordWithClient, 0)
	for rows.Next() {
		var rec RecordWithClient
		if err := rows.Scan(
			&rec.ID, &rec.ClientID, &rec.StaffID, &rec.DeliveryDate, &rec.Shift,
			&rec.Status, &rec.Quantity, &rec.Price, &rec.Note, &rec.CreatedAt, &rec.UpdatedAt,
			&rec.ClientName,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
