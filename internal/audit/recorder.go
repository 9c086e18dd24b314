package audit

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recorder appends audit rows. Record must be called with the same
// transaction handle that carries the seat transition so the log row
// commits (or rolls back) together with it.
type Recorder interface {
	Record(ctx context.Context, tx *gorm.DB, entry Entry) error
	ListBySchedule(ctx context.Context, seatID, showtimeID uuid.UUID) ([]SeatScheduleLog, error)
}

type recorder struct {
	db *gorm.DB
}

// NewRecorder creates a gorm-backed audit recorder. The db handle is
// only used for reads; writes go through the caller's transaction.
func NewRecorder(db *gorm.DB) Recorder {
	return &recorder{db: db}
}

func (r *recorder) Record(ctx context.Context, tx *gorm.DB, entry Entry) error {
	row := SeatScheduleLog{
		SeatID:     entry.SeatID,
		ShowtimeID: entry.ShowtimeID,
		OrderID:    entry.OrderID,
		Status:     entry.Status,
		Actor:      entry.Actor,
	}
	if err := tx.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to append audit log: %w", err)
	}
	return nil
}

func (r *recorder) ListBySchedule(ctx context.Context, seatID, showtimeID uuid.UUID) ([]SeatScheduleLog, error) {
	var rows []SeatScheduleLog
	err := r.db.WithContext(ctx).
		Where("seat_id = ? AND showtime_id = ?", seatID, showtimeID).
		Order("created_at ASC").
		Find(&rows).Error
	return rows, err
}
