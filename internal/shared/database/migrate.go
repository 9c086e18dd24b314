package database

import (
	"cineseat/internal/audit"
	"cineseat/internal/inventory"
	"cineseat/internal/showtimes"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&showtimes.Showtime{},
		&showtimes.Seat{},
		&inventory.SeatSchedule{},
		&audit.SeatScheduleLog{},
	)
}
