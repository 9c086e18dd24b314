package inventory

import (
	"time"

	"github.com/google/uuid"
)

// Lease is a time-bounded exclusive claim on a resource by a holder
// acting through a live session. Seat holds are the only lease in the
// system today but nothing here is seat-specific.
type Lease struct {
	Resource   uuid.UUID `json:"resource"`
	Holder     uuid.UUID `json:"holder"`
	Connection string    `json:"connection"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// Expired reports whether the lease window has lapsed at now.
func (l Lease) Expired(now time.Time) bool {
	return !l.ExpiresAt.After(now)
}

// OwnedBy reports whether holder and connection both match the lease.
func (l Lease) OwnedBy(holder uuid.UUID, connection string) bool {
	return l.Holder == holder && l.Connection == connection
}
