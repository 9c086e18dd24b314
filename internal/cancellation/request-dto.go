package cancellation

import "github.com/google/uuid"

type CancelHoldRequest struct {
	ShowtimeID uuid.UUID   `json:"showtime_id" binding:"required"`
	SeatIDs    []uuid.UUID `json:"seat_ids" binding:"required,min=1"`
}

type CancelByConnectionRequest struct {
	ConnectionID string `json:"connection_id" binding:"required,min=1,max=120"`
}

type CancelBookingRequest struct {
	OrderID uuid.UUID `json:"order_id" binding:"required"`
	// ReleaseSeats reopens the cancelled seats for sale immediately.
	ReleaseSeats bool `json:"release_seats"`
}
