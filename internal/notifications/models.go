package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// TransitionEvent mirrors an audit transition onto the seat update
// feed. Consumers (seat-map pushers, analytics) subscribe per showtime;
// the showtime id is the partition key so all updates for one
// auditorium arrive in order.
type TransitionEvent struct {
	EventID        uuid.UUID  `json:"event_id"`
	SeatScheduleID uuid.UUID  `json:"seat_schedule_id"`
	SeatID         uuid.UUID  `json:"seat_id"`
	ShowtimeID     uuid.UUID  `json:"showtime_id"`
	Status         string     `json:"status"`
	HoldUntil      *time.Time `json:"hold_until"`
	OrderID        *uuid.UUID `json:"order_id,omitempty"`
	Actor          string     `json:"actor"`
	Version        int64      `json:"version"`
	OccurredAt     time.Time  `json:"occurred_at"`
}

// ToJSON serializes the event for the wire.
func (e *TransitionEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// GetPartitionKey returns the Kafka partition key.
func (e *TransitionEvent) GetPartitionKey() string {
	return e.ShowtimeID.String()
}
