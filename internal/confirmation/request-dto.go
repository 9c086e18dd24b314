package confirmation

import "github.com/google/uuid"

type ConfirmSeatsRequest struct {
	ShowtimeID uuid.UUID   `json:"showtime_id" binding:"required"`
	OrderID    uuid.UUID   `json:"order_id" binding:"required"`
	SeatIDs    []uuid.UUID `json:"seat_ids" binding:"required,min=1"`
}
