package inventory

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a seat within one showtime.
type Status string

const (
	StatusAvailable Status = "AVAILABLE"
	StatusHold      Status = "HOLD"
	StatusBooked    Status = "BOOKED"
	StatusCancelled Status = "CANCELLED"
)

// allowedTransitions is the fixed edge set; anything else is rejected.
// HOLD -> HOLD covers idempotent renewal by the same holder.
var allowedTransitions = map[Status][]Status{
	StatusAvailable: {StatusHold},
	StatusHold:      {StatusHold, StatusAvailable, StatusBooked},
	StatusBooked:    {StatusCancelled, StatusAvailable},
	StatusCancelled: {StatusAvailable},
}

// CanTransition reports whether the edge from -> to is permitted.
func CanTransition(from, to Status) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// SeatSchedule is the reservation record for one seat within one
// showtime. Exactly one row exists per (seat, showtime); it is created
// when the showtime's seat map is generated and never deleted; only
// its status cycles.
type SeatSchedule struct {
	ID                 uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	SeatID             uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_seat_showtime,priority:1" json:"seat_id"`
	ShowtimeID         uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_seat_showtime,priority:2;index:idx_schedule_showtime" json:"showtime_id"`
	Status             Status     `gorm:"type:varchar(20);not null;default:'AVAILABLE';check:status IN ('AVAILABLE', 'HOLD', 'BOOKED', 'CANCELLED')" json:"status"`
	HoldUntil          *time.Time `gorm:"index" json:"hold_until,omitempty"`
	HolderUserID       *uuid.UUID `gorm:"type:uuid" json:"holder_user_id,omitempty"`
	HolderConnectionID *string    `gorm:"type:varchar(120);index" json:"holder_connection_id,omitempty"`
	OrderID            *uuid.UUID `gorm:"type:uuid;index" json:"order_id,omitempty"`
	Version            int64      `gorm:"not null;default:0" json:"version"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// TableName sets the table name for SeatSchedule
func (SeatSchedule) TableName() string {
	return "seat_schedules"
}

// HeldByUser reports whether the row is currently held or booked by the
// given user, regardless of which session placed the claim.
func (s *SeatSchedule) HeldByUser(userID uuid.UUID) bool {
	if s.Status != StatusHold && s.Status != StatusBooked {
		return false
	}
	return s.HolderUserID != nil && *s.HolderUserID == userID
}

// HoldExpired reports whether the row carries a lapsed hold window.
// A lapsed hold is treated as available by every coordinator; the
// sweeper merely makes that visible in the stored status.
func (s *SeatSchedule) HoldExpired(now time.Time) bool {
	return s.Status == StatusHold && s.HoldUntil != nil && !s.HoldUntil.After(now)
}

// Lease returns the lease view of a held row, or nil when the row is
// not in HOLD.
func (s *SeatSchedule) Lease() *Lease {
	if s.Status != StatusHold || s.HoldUntil == nil || s.HolderUserID == nil {
		return nil
	}
	l := &Lease{
		Resource:  s.SeatID,
		Holder:    *s.HolderUserID,
		ExpiresAt: *s.HoldUntil,
	}
	if s.HolderConnectionID != nil {
		l.Connection = *s.HolderConnectionID
	}
	return l
}

// ClearHold resets the holder fields, returning the row to an
// unclaimed shape. Callers pair this with a transition to AVAILABLE.
func (s *SeatSchedule) ClearHold() {
	s.HoldUntil = nil
	s.HolderUserID = nil
	s.HolderConnectionID = nil
}
