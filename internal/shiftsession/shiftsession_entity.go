package shiftsession

import (
	"time"

	"github.com/google/uuid"
)

// ShiftSession records which shift a staff member is working on a calendar
// day. At most one row exists per (staff, day); re-selecting overwrites it.
type ShiftSession struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	StaffID     uuid.UUID `gorm:"column:staff_id;type:uuid;not null;uniqueIndex:uq_session_staff_date,priority:1"`
	SessionDate time.Time `gorm:"column:session_date;type:date;not null;uniqueIndex:uq_session_staff_date,priority:2"`
	Shift       string    `gorm:"column:shift;type:varchar(10);not null"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (ShiftSession) TableName() string {
	return "shift_sessions"
}
