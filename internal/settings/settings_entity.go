package settings

import (
	"time"

	"github.com/google/uuid"
)

// Setting is one named configuration value, stored as raw JSON.
type Setting struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"column:name;type:varchar(50);not null;uniqueIndex"`
	Value     string    `gorm:"column:value;type:jsonb;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}

// Well-known setting names.
const (
	NameShifts           = "shifts"
	NameRoles            = "roles"
	NameDefaultRole      = "defaultRole"
	NameDefaultShift     = "defaultShift"
	NameDeliveryStatuses = "deliveryStatuses"
)
