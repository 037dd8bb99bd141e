package client

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=client_repo.go -destination=mock/client_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, c *Client) error
	FindByID(ctx context.Context, id string) (*Client, error)
	FindByIDs(ctx context.Context, ids []string) ([]Client, error)
	FindAll(ctx context.Context) ([]Client, error)
	CountAll(ctx context.Context) (int64, error)
	Update(ctx context.Context, c *Client) error
	Delete(ctx context.Context, id string) error

	// Assignment mirror: the single assigned-staff back-reference.
	SetAssignedStaff(ctx context.Context, clientID string, staffID *string) error

	// Delivery mirror: current status/notes shown on the client row.
	UpdateDeliveryState(ctx context.Context, clientID, status string, notes *string) error

	AppendHistory(ctx context.Context, entry *HistoryEntry) error
	FindHistory(ctx context.Context, clientID string) ([]HistoryEntry, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, c *Client) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Client, error) {
	var c Client
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&c).Error
	return &c, err
}

func (r *repository) FindByIDs(ctx context.Context, ids []string) ([]Client, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []Client
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAll(ctx context.Context) ([]Client, error) {
	var rows []Client
	err := r.db.WithContext(ctx).
		Order("client_number ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Client{}).Count(&count).Error
	return count, err
}

func (r *repository) Update(ctx context.Context, c *Client) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&Client{}).Error
}

func (r *repository) SetAssignedStaff(ctx context.Context, clientID string, staffID *string) error {
	var value *uuid.UUID
	if staffID != nil {
		parsed, err := uuid.Parse(*staffID)
		if err != nil {
			return err
		}
		value = &parsed
	}
	return r.db.WithContext(ctx).
		Model(&Client{}).
		Where("id = ?", clientID).
		Update("assigned_staff_id", value).Error
}

func (r *repository) UpdateDeliveryState(ctx context.Context, clientID, status string, notes *string) error {
	updates := map[string]any{
		"delivery_status": status,
		"updated_at":      time.Now().UTC(),
	}
	if notes != nil {
		updates["delivery_notes"] = *notes
	}
	return r.db.WithContext(ctx).
		Model(&Client{}).
		Where("id = ?", clientID).
		Updates(updates).Error
}

func (r *repository) AppendHistory(ctx context.Context, entry *HistoryEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) FindHistory(ctx context.Context, clientID string) ([]HistoryEntry, error) {
	var rows []HistoryEntry
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("entry_date DESC, created_at DESC").
		Find(&rows).Error
	return rows, err
}
