package staff

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StaffProfile struct {
	ID             uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID         uuid.UUID      `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uq_staff_user"`
	FullName       string         `gorm:"column:full_name;type:varchar(100);not null"`
	Phone          string         `gorm:"column:phone;type:varchar(20)"`
	Location       string         `gorm:"column:location;type:varchar(100)"`
	Shift          string         `gorm:"column:shift;type:varchar(10);not null;default:AM"`
	IsAvailable    bool           `gorm:"column:is_available;not null;default:true"`
	TotalQuantity  float64        `gorm:"column:total_quantity;type:numeric(10,2);not null;default:0"`
	LastDeliveryAt *time.Time     `gorm:"column:last_delivery_at;type:timestamptz"`
	CreatedAt      time.Time      `gorm:"column:created_at"`
	UpdatedAt      time.Time      `gorm:"column:updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (StaffProfile) TableName() string {
	return "staff_profiles"
}

// Account is the identity collaborator's user row. The directory only reads
// it; account lifecycle is owned elsewhere.
type Account struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name  string    `gorm:"column:name"`
	Email string    `gorm:"column:email"`
	Role  string    `gorm:"column:role"`
}

func (Account) TableName() string {
	return "users"
}
