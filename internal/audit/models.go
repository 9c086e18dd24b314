package audit

import (
	"time"

	"github.com/google/uuid"
)

// SystemActor attributes a transition to the expiration sweeper rather
// than a user session.
const SystemActor = "system"

// UserActor formats a user-initiated actor reference.
func UserActor(userID uuid.UUID) string {
	return "user:" + userID.String()
}

// ConnectionActor formats a session-initiated actor reference, used
// when a disconnect releases holds on the user's behalf.
func ConnectionActor(connectionID string) string {
	return "conn:" + connectionID
}

// SeatScheduleLog is the append-only audit trail. One row is written
// per committed transition and rows are never updated or deleted.
type SeatScheduleLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SeatID     uuid.UUID  `gorm:"type:uuid;index;not null" json:"seat_id"`
	ShowtimeID uuid.UUID  `gorm:"type:uuid;index;not null" json:"showtime_id"`
	OrderID    *uuid.UUID `gorm:"type:uuid" json:"order_id,omitempty"`
	Status     string     `gorm:"type:varchar(20);not null" json:"status"`
	Actor      string     `gorm:"type:varchar(120);not null" json:"actor"`
	CreatedAt  time.Time  `json:"created_at"`
}

// TableName sets the table name for SeatScheduleLog
func (SeatScheduleLog) TableName() string {
	return "seat_schedule_logs"
}

// Entry describes one committed transition to be recorded.
type Entry struct {
	SeatID     uuid.UUID
	ShowtimeID uuid.UUID
	OrderID    *uuid.UUID
	Status     string
	Actor      string
}
