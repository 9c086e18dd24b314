package holds

import "github.com/google/uuid"

type HoldSeatsRequest struct {
	ShowtimeID          uuid.UUID   `json:"showtime_id" validate:"required"`
	SeatIDs             []uuid.UUID `json:"seat_ids" validate:"required,min=1"`
	HoldDurationSeconds int         `json:"hold_duration_seconds" validate:"omitempty,min=1"`
}
