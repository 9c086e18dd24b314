package holds

import (
	"time"

	"github.com/google/uuid"
)

type HeldSeat struct {
	SeatScheduleID uuid.UUID `json:"seat_schedule_id"`
	SeatID         uuid.UUID `json:"seat_id"`
	Status         string    `json:"status"`
	Version        int64     `json:"version"`
}

type HoldResponse struct {
	ShowtimeID uuid.UUID  `json:"showtime_id"`
	Seats      []HeldSeat `json:"seats"`
	HoldUntil  time.Time  `json:"hold_until"`
}
