package cancellation

import "github.com/google/uuid"

type CancellationResponse struct {
	Released int         `json:"released"`
	SeatIDs  []uuid.UUID `json:"seat_ids"`
}
