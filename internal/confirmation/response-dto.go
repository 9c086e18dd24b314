package confirmation

import "github.com/google/uuid"

type BookedSeat struct {
	SeatID  uuid.UUID `json:"seat_id"`
	Status  string    `json:"status"`
	Version int64     `json:"version"`
}

type ConfirmationResponse struct {
	OrderID    uuid.UUID    `json:"order_id"`
	ShowtimeID uuid.UUID    `json:"showtime_id"`
	Seats      []BookedSeat `json:"seats"`
}
