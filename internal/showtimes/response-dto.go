package showtimes

import (
	"time"

	"github.com/google/uuid"
)

type ShowtimeResponse struct {
	ID         uuid.UUID `json:"id"`
	MovieTitle string    `json:"movie_title"`
	Auditorium string    `json:"auditorium"`
	StartsAt   time.Time `json:"starts_at"`
	EndsAt     time.Time `json:"ends_at"`
	SeatCount  int       `json:"seat_count"`
}

// SeatMapEntry is one seat's live state in the availability view. A
// lapsed hold is reported as AVAILABLE even before the sweeper has
// flipped the stored status.
type SeatMapEntry struct {
	SeatID    uuid.UUID  `json:"seat_id"`
	Row       string     `json:"row"`
	Number    int        `json:"number"`
	Label     string     `json:"label"`
	Status    string     `json:"status"`
	HoldUntil *time.Time `json:"hold_until,omitempty"`
	Version   int64      `json:"version"`
}

type SeatMapResponse struct {
	ShowtimeID uuid.UUID      `json:"showtime_id"`
	Seats      []SeatMapEntry `json:"seats"`
}
