package client

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Delivery status values a client record can carry. Pending means no outcome
// has been recorded yet for the current day.
const (
	StatusPending      = "Pending"
	StatusDelivered    = "Delivered"
	StatusNotDelivered = "Not Delivered"
)

type Client struct {
	ID              uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	ClientNumber    string         `gorm:"column:client_number;type:varchar(20);not null;uniqueIndex:uq_client_number"`
	FullName        string         `gorm:"column:full_name;type:varchar(100);not null"`
	Address         string         `gorm:"column:address;type:text"`
	Phone           string         `gorm:"column:phone;type:varchar(20)"`
	Shift           string         `gorm:"column:shift;type:varchar(10);not null;default:AM;index"`
	Quantity        float64        `gorm:"column:quantity;type:numeric(10,2);not null;default:0"`
	UnitPrice       float64        `gorm:"column:unit_price;type:numeric(10,2);not null;default:0"`
	DeliveryStatus  string         `gorm:"column:delivery_status;type:varchar(20);not null;default:Pending"`
	DeliveryNotes   *string        `gorm:"column:delivery_notes;type:text"`
	AssignedStaffID *uuid.UUID     `gorm:"column:assigned_staff_id;type:uuid;index"`
	CreatedAt       time.Time      `gorm:"column:created_at"`
	UpdatedAt       time.Time      `gorm:"column:updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Client) TableName() string {
	return "clients"
}

// HistoryEntry is one append-only audit row in a client's delivery history.
// Rows are never updated or deleted; repeated recordings for the same day
// produce repeated entries even though the per-day delivery record is
// updated in place.
type HistoryEntry struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	ClientID  uuid.UUID `gorm:"column:client_id;type:uuid;not null;index"`
	EntryDate time.Time `gorm:"column:entry_date;type:date;not null;index"`
	Status    string    `gorm:"column:status;type:varchar(20);not null"`
	Quantity  float64   `gorm:"column:quantity;type:numeric(10,2);not null;default:0"`
	Reason    *string   `gorm:"column:reason;type:text"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (HistoryEntry) TableName() string {
	return "client_history"
}
