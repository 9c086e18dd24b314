package showtimes

import (
	"time"

	"github.com/google/uuid"
)

// Showtime is one screening of a movie in one auditorium.
type Showtime struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	MovieTitle string    `gorm:"type:varchar(255);not null" json:"movie_title"`
	Auditorium string    `gorm:"type:varchar(100);not null" json:"auditorium"`
	StartsAt   time.Time `gorm:"not null;index" json:"starts_at"`
	EndsAt     time.Time `gorm:"not null" json:"ends_at"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName sets the table name for Showtime
func (Showtime) TableName() string {
	return "showtimes"
}

// Seat is one physical seat in a showtime's auditorium layout. The
// layout is snapshotted per showtime when the seat map is generated.
type Seat struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ShowtimeID uuid.UUID `gorm:"type:uuid;not null;index" json:"showtime_id"`
	Row        string    `gorm:"type:varchar(5);not null" json:"row"`
	Number     int       `gorm:"not null" json:"number"`
	Label      string    `gorm:"type:varchar(10);not null" json:"label"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName sets the table name for Seat
func (Seat) TableName() string {
	return "seats"
}
