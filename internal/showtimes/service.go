package showtimes

import (
	"context"
	"fmt"
	"time"

	"cineseat/internal/inventory"
	"cineseat/internal/shared/apperrors"
	"cineseat/internal/shared/constants"
	"cineseat/pkg/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service interface {
	CreateShowtime(ctx context.Context, req CreateShowtimeRequest) (*ShowtimeResponse, error)
	GetShowtime(ctx context.Context, id uuid.UUID) (*ShowtimeResponse, error)
	GetSeatMap(ctx context.Context, showtimeID uuid.UUID) (*SeatMapResponse, error)
	InvalidateSeatMap(ctx context.Context, showtimeID uuid.UUID)
}

type service struct {
	repo         Repository
	store        inventory.Store
	cacheService cache.Service
	seatMapTTL   time.Duration
}

func NewService(repo Repository, store inventory.Store, cacheService cache.Service, seatMapTTL time.Duration) Service {
	if seatMapTTL <= 0 {
		seatMapTTL = constants.TTL_SEAT_MAP
	}
	return &service{
		repo:         repo,
		store:        store,
		cacheService: cacheService,
		seatMapTTL:   seatMapTTL,
	}
}

// CreateShowtime creates the showtime, its seat layout and one
// AVAILABLE schedule row per seat in a single transaction. The seat
// map exists completely or not at all.
func (s *service) CreateShowtime(ctx context.Context, req CreateShowtimeRequest) (*ShowtimeResponse, error) {
	if req.StartsAt.Before(time.Now()) {
		return nil, apperrors.NewValidation("showtime must start in the future")
	}

	showtime := &Showtime{
		MovieTitle: req.MovieTitle,
		Auditorium: req.Auditorium,
		StartsAt:   req.StartsAt,
		EndsAt:     req.StartsAt.Add(time.Duration(req.DurationMinutes) * time.Minute),
	}

	seatCount := req.Rows * req.SeatsPerRow
	err := s.store.InTransaction(ctx, func(tx *gorm.DB) error {
		if err := s.repo.CreateShowtime(ctx, tx, showtime); err != nil {
			return err
		}

		seats := make([]Seat, 0, seatCount)
		for row := 0; row < req.Rows; row++ {
			rowLabel := string(rune('A' + row))
			for number := 1; number <= req.SeatsPerRow; number++ {
				seats = append(seats, Seat{
					ID:         uuid.New(),
					ShowtimeID: showtime.ID,
					Row:        rowLabel,
					Number:     number,
					Label:      fmt.Sprintf("%s%d", rowLabel, number),
				})
			}
		}
		if err := s.repo.CreateSeats(ctx, tx, seats); err != nil {
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
		return s.store.CreateBatch(ctx, tx, schedules)
	})
	if err != nil {
		return nil, err
	}

	return &ShowtimeResponse{
		ID:         showtime.ID,
		MovieTitle: showtime.MovieTitle,
		Auditorium: showtime.Auditorium,
		StartsAt:   showtime.StartsAt,
		EndsAt:     showtime.EndsAt,
		SeatCount:  seatCount,
	}, nil
}

func (s *service) GetShowtime(ctx context.Context, id uuid.UUID) (*ShowtimeResponse, error) {
	showtime, err := s.repo.GetShowtimeByID(ctx, id)
	if err != nil {
		return nil, err
	}

	seats, err := s.repo.ListSeatsByShowtime(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ShowtimeResponse{
		ID:         showtime.ID,
		MovieTitle: showtime.MovieTitle,
		Auditorium: showtime.Auditorium,
		StartsAt:   showtime.StartsAt,
		EndsAt:     showtime.EndsAt,
		SeatCount:  len(seats),
	}, nil
}

// GetSeatMap returns the availability view for one showtime, cached
// briefly in Redis. Held rows whose window has lapsed read as
// AVAILABLE regardless of what the stored status still says.
func (s *service) GetSeatMap(ctx context.Context, showtimeID uuid.UUID) (*SeatMapResponse, error) {
	if _, err := s.repo.GetShowtimeByID(ctx, showtimeID); err != nil {
		return nil, err
	}

	var result SeatMapResponse
	key := constants.BuildSeatMapKey(showtimeID.String())
	err := s.cacheService.GetOrSet(ctx, key, s.seatMapTTL, func() (interface{}, error) {
		return s.buildSeatMap(ctx, showtimeID)
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *service) buildSeatMap(ctx context.Context, showtimeID uuid.UUID) (*SeatMapResponse, error) {
	seats, err := s.repo.ListSeatsByShowtime(ctx, showtimeID)
	if err != nil {
		return nil, err
	}

	schedules, err := s.store.ListByShowtime(ctx, showtimeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list seat schedules: %w", err)
	}

	bySeat := make(map[uuid.UUID]inventory.SeatSchedule, len(schedules))
	for _, schedule := range schedules {
		bySeat[schedule.SeatID] = schedule
	}

	now := time.Now()
	entries := make([]SeatMapEntry, 0, len(seats))
	for _, seat := range seats {
		entry := SeatMapEntry{
			SeatID: seat.ID,
			Row:    seat.Row,
			Number: seat.Number,
			Label:  seat.Label,
			Status: string(inventory.StatusAvailable),
		}
		if schedule, ok := bySeat[seat.ID]; ok {
			entry.Version = schedule.Version
			if schedule.HoldExpired(now) {
				entry.Status = string(inventory.StatusAvailable)
			} else {
				entry.Status = string(schedule.Status)
				entry.HoldUntil = schedule.HoldUntil
			}
		}
		entries = append(entries, entry)
	}

	return &SeatMapResponse{ShowtimeID: showtimeID, Seats: entries}, nil
}

// InvalidateSeatMap drops the cached availability view. Called after
// every committed transition; failures are ignored, the entry expires
// on its own TTL anyway.
func (s *service) InvalidateSeatMap(ctx context.Context, showtimeID uuid.UUID) {
	if s.cacheService == nil {
		return
	}
	_ = s.cacheService.Delete(ctx, constants.BuildSeatMapKey(showtimeID.String()))
}
