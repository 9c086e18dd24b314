package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"cineseat/internal/audit"
	"cineseat/internal/inventory"
	"cineseat/internal/shared/config"
	"cineseat/internal/shared/database"
	"cineseat/internal/showtimes"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("Starting cineseat database seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}

	fmt.Println("Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	fmt.Println("Seeding completed. Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"seat_schedule_logs",
		"seat_schedules",
		"seats",
		"showtimes",
	}

	for _, table := range tables {
		if err := s.db.PostgreSQL.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)).Error; err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}
	return nil
}

// SeedAll creates a few showtimes with fully generated seat maps.
func (s *Seeder) SeedAll() error {
	ctx := context.Background()

	auditor := audit.NewRecorder(s.db.GetPostgreSQL())
	store := inventory.NewStore(s.db.GetPostgreSQL(), auditor)
	repo := showtimes.NewRepository(s.db.GetPostgreSQL())

	screenings := []struct {
		title      string
		auditorium string
		startsIn   time.Duration
		rows       int
		seatsPer   int
	}{
		{"The Long Goodbye", "Screen 1", 2 * time.Hour, 8, 12},
		{"Midnight Express", "Screen 2", 4 * time.Hour, 6, 10},
		{"Northern Lights", "Screen 1", 26 * time.Hour, 8, 12},
	}

	for _, sc := range screenings {
		startsAt := time.Now().Add(sc.startsIn)
		showtime := &showtimes.Showtime{
			MovieTitle: sc.title,
			Auditorium: sc.auditorium,
			StartsAt:   startsAt,
			EndsAt:     startsAt.Add(2 * time.Hour),
		}

		err := store.InTransaction(ctx, func(tx *gorm.DB) error {
			if err := repo.CreateShowtime(ctx, tx, showtime); err != nil {
				return err
			}

			var seats []showtimes.Seat
			for row := 0; row < sc.rows; row++ {
				rowLabel := string(rune('A' + row))
				for number := 1; number <= sc.seatsPer; number++ {
					seats = append(seats, showtimes.Seat{
						ID:         uuid.New(),
						ShowtimeID: showtime.ID,
						Row:        rowLabel,
						Number:     number,
						Label:      fmt.Sprintf("%s%d", rowLabel, number),
					})
				}
			}
			if err := repo.CreateSeats(ctx, tx, seats); err != nil {
				return err
			}

			schedules := make([]inventory.SeatSchedule, 0, len(seats))
			for _, seat := range seats {
				schedules = append(schedules, inventory.SeatSchedule{
					ID:         uuid.New(),
					SeatID:     seat.ID,
					ShowtimeID: showtime.ID,
					Status:     inventory.StatusAvailable,
				})
			}
			return store.CreateBatch(ctx, tx, schedules)
		})
		if err != nil {
			return fmt.Errorf("failed to seed showtime %q: %w", sc.title, err)
		}

		fmt.Printf("  seeded %q in %s (%d seats)\n", sc.title, sc.auditorium, sc.rows*sc.seatsPer)
	}

	return nil
}
