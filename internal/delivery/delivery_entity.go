package delivery

import (
	"time"

	"github.com/google/uuid"
)

// Statuses a delivery record can hold. There is no automatic expiry; a
// record only changes on explicit staff action.
const (
	StatusDelivered    = "Delivered"
	StatusNotDelivered = "Not Delivered"
)

// DeliveryRecord is the authoritative per-day-per-shift outcome for one
// client. The (client_id, delivery_date, shift) triple is unique; a second
// write for the same key updates the row in place.
type DeliveryRecord struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	ClientID     uuid.UUID `gorm:"column:client_id;type:uuid;not null;uniqueIndex:uq_delivery_key,priority:1"`
	StaffID      uuid.UUID `gorm:"column:staff_id;type:uuid;not null;index"`
	DeliveryDate time.Time `gorm:"column:delivery_date;type:date;not null;uniqueIndex:uq_delivery_key,priority:2;index"`
	Shift        string    `gorm:"column:shift;type:varchar(10);not null;uniqueIndex:uq_delivery_key,priority:3"`
	Status       string    `gorm:"column:status;type:varchar(20);not null"`
	Quantity     float64   `gorm:"column:quantity;type:numeric(10,2);not null;default:0"`
	Price        float64   `gorm:"column:price;type:numeric(10,2);not null;default:0"`
	Note         *string   `gorm:"column:note;type:text"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (DeliveryRecord) TableName() string {
	return "delivery_records"
}
