package analytics

import (
	"context"
	"time"

	"milkroute/internal/client"
	"milkroute/internal/delivery"
	"milkroute/internal/shared/dateutil"
	"milkroute/internal/staff"

	"gorm.io/gorm"
)

//go:generate mockgen -source=analytics_repo.go -destination=mock/analytics_repo_mock.go -package=mock
type Repository interface {
	FindRecordsInRange(ctx context.Context, start, end time.Time, shift string) ([]delivery.DeliveryRecord, error)
	StaffNames(ctx context.Context, ids []string) (map[string]string, error)
	ClientNames(ctx context.Context, ids []string) (map[string]string, error)
	CountClients(ctx context.Context) (int64, error)
	CountStaff(ctx context.Context) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindRecordsInRange(ctx context.Context, start, end time.Time, shift string) ([]delivery.DeliveryRecord, error) {
	q := r.db.WithContext(ctx).
		Where("delivery_date >= ?", start.Format(dateutil.DayFormat)).
		Where("delivery_date <= ?", end.Format(dateutil.DayFormat))
	if shift != "" {
		q = q.Where("shift = ?", shift)
	}

	var rows []delivery.DeliveryRecord
	err := q.Order("delivery_date ASC, updated_at ASC").Find(&rows).Error
	return rows, err
}

func (r *repository) StaffNames(ctx context.Context, ids []string) (map[string]string, error) {
	if len(ids) == 0 {
		return map[string]string{}, nil
	}
	var rows []staff.StaffProfile
	// Unscoped: names must still resolve for soft-deleted staff where possible.
	err := r.db.WithContext(ctx).Unscoped().
		Where("id IN ?", ids).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(rows))
	for _, row := range rows {
		names[row.ID.String()] = row.FullName
	}
	return names, nil
}

func (r *repository) ClientNames(ctx context.Context, ids []string) (map[string]string, error) {
	if len(ids) == 0 {
		return map[string]string{}, nil
	}
	var rows []client.Client
	err := r.db.WithContext(ctx).Unscoped().
		Where("id IN ?", ids).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(rows))
	for _, row := range rows {
		names[row.ID.String()] = row.FullName
	}
	return names, nil
}

func (r *repository) CountClients(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&client.Client{}).Count(&count).Error
	return count, err
}

func (r *repository) CountStaff(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&staff.StaffProfile{}).Count(&count).Error
	return count, err
}
