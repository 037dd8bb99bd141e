package shiftsession

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=shiftsession_repo.go -destination=mock/shiftsession_repo_mock.go -package=mock
type Repository interface {
	Upsert(ctx context.Context, staffID string, date time.Time, shift string) error
	FindByStaffAndDate(ctx context.Context, staffID string, date time.Time) (*ShiftSession, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Upsert is a single atomic statement so concurrent re-selections for the
// same day cannot produce a second row; last write wins.
func (r *repository) Upsert(ctx context.Context, staffID string, date time.Time, shift string) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO shift_sessions (id, staff_id, session_date, shift, created_at, updated_at)
		VALUES (gen_random_uuid(), ?, ?, ?, now(), now())
		ON CONFLICT (staff_id, session_date) DO UPDATE
		SET shift = EXCLUDED.shift, updated_at = now()
	`, staffID, date.Format("2006-01-02"), shift).Error
}

func (r *repository) FindByStaffAndDate(ctx context.Context, staffID string, date time.Time) (*ShiftSession, error) {
	var s ShiftSession
	err := r.db.WithContext(ctx).
		Where("staff_id = ?", staffID).
		Where("session_date = ?", date.Format("2006-01-02")).
		First(&s).Error
	return &s, err
}
