package staff

import (
	"context"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=staff_repo.go -destination=mock/staff_repo_mock.go -package=mock
type Repository interface {
	FindAccountByID(ctx context.Context, accountID string) (*Account, error)

	Create(ctx context.Context, p *StaffProfile) error
	FindByID(ctx context.Context, id string) (*StaffProfile, error)
	FindByUserID(ctx context.Context, userID string) (*StaffProfile, error)
	FindAll(ctx context.Context) ([]StaffProfile, error)
	CountAll(ctx context.Context) (int64, error)
	Update(ctx context.Context, p *StaffProfile) error
	Delete(ctx context.Context, id string) error

	UpdateTotalQuantity(ctx context.Context, staffID string, total float64) error
	TouchLastDelivery(ctx context.Context, staffID string, at time.Time) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindAccountByID(ctx context.Context, accountID string) (*Account, error) {
	var a Account
	err := r.db.WithContext(ctx).
		Where("id = ?", accountID).
		First(&a).Error
	return &a, err
}

func (r *repository) Create(ctx context.Context, p *StaffProfile) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*StaffProfile, error) {
	var p StaffProfile
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&p).Error
	return &p, err
}

func (r *repository) FindByUserID(ctx context.Context, userID string) (*StaffProfile, error) {
	var p StaffProfile
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&p).Error
	return &p, err
}

func (r *repository) FindAll(ctx context.Context) ([]StaffProfile, error) {
	var rows []StaffProfile
	err := r.db.WithContext(ctx).
		Order("full_name ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&StaffProfile{}).Count(&count).Error
	return count, err
}

func (r *repository) Update(ctx context.Context, p *StaffProfile) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&StaffProfile{}).Error
}

func (r *repository) UpdateTotalQuantity(ctx context.Context, staffID string, total float64) error {
	return r.db.WithContext(ctx).
		Model(&StaffProfile{}).
		Where("id = ?", staffID).
		Update("total_quantity", total).Error
}

func (r *repository) TouchLastDelivery(ctx context.Context, staffID string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&StaffProfile{}).
		Where("id = ?", staffID).
		Update("last_delivery_at", at).Error
}
