package showtimes

import (
	"context"
	"errors"
	"fmt"

	"cineseat/internal/shared/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	CreateShowtime(ctx context.Context, tx *gorm.DB, showtime *Showtime) error
	CreateSeats(ctx context.Context, tx *gorm.DB, seats []Seat) error
	GetShowtimeByID(ctx context.Context, id uuid.UUID) (*Showtime, error)
	ListSeatsByShowtime(ctx context.Context, showtimeID uuid.UUID) ([]Seat, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateShowtime(ctx context.Context, tx *gorm.DB, showtime *Showtime) error {
	if err := tx.WithContext(ctx).Create(showtime).Error; err != nil {
		return fmt.Errorf("failed to create showtime: %w", err)
	}
	return nil
}

func (r *repository) CreateSeats(ctx context.Context, tx *gorm.DB, seats []Seat) error {
	if len(seats) == 0 {
		return nil
	}
	if err := tx.WithContext(ctx).Create(&seats).Error; err != nil {
		return fmt.Errorf("failed to create seats: %w", err)
	}
	return nil
}

func (r *repository) GetShowtimeByID(ctx context.Context, id uuid.UUID) (*Showtime, error) {
	var showtime Showtime
	err := r.db.WithContext(ctx).First(&showtime, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get showtime: %w", err)
	}
	return &showtime, nil
}

func (r *repository) ListSeatsByShowtime(ctx context.Context, showtimeID uuid.UUID) ([]Seat, error) {
	var seats []Seat
	err := r.db.WithContext(ctx).
		Where("showtime_id = ?", showtimeID).
		Order("row ASC, number ASC").
		Find(&seats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list seats: %w", err)
	}
	return seats, nil
}
