package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cineseat/internal/audit"
	"cineseat/internal/shared/apperrors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	maxTxAttempts  = 3
	txRetryBackoff = 50 * time.Millisecond
)

// Store owns all access to seat_schedules. Every mutating call takes
// an explicit transaction handle obtained through InTransaction; rows
// touched by a transition are locked exclusively until commit, and
// multi-seat operations always lock in ascending id order so that
// overlapping batches cannot deadlock each other.
type Store interface {
	InTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error

	LockForShowtime(ctx context.Context, tx *gorm.DB, showtimeID uuid.UUID, seatIDs []uuid.UUID) ([]SeatSchedule, error)
	LockBySeatIDs(ctx context.Context, tx *gorm.DB, seatIDs []uuid.UUID) ([]SeatSchedule, error)
	LockByConnection(ctx context.Context, tx *gorm.DB, connectionID string) ([]SeatSchedule, error)
	LockByOrder(ctx context.Context, tx *gorm.DB, orderID uuid.UUID) ([]SeatSchedule, error)
	LockExpired(ctx context.Context, tx *gorm.DB, now time.Time, limit int) ([]SeatSchedule, error)

	ApplyTransition(ctx context.Context, tx *gorm.DB, schedule *SeatSchedule, next Status, actor string, mutate func(*SeatSchedule)) error

	CreateBatch(ctx context.Context, tx *gorm.DB, schedules []SeatSchedule) error
	ListByShowtime(ctx context.Context, showtimeID uuid.UUID) ([]SeatSchedule, error)
}

type store struct {
	db      *gorm.DB
	auditor audit.Recorder
}

// NewStore creates the gorm-backed seat inventory store.
func NewStore(db *gorm.DB, auditor audit.Recorder) Store {
	return &store{db: db, auditor: auditor}
}

// InTransaction runs fn inside a database transaction, retrying a
// bounded number of times when the store reports lock contention.
// Domain errors returned by fn roll the transaction back and are
// propagated unchanged, so a caller never observes a partial batch.
func (s *store) InTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	var lastErr error
	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * txRetryBackoff):
			}
		}

		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(tx)
		})
		if err == nil {
			return nil
		}
		if !isRetryable(err) {
			return err
		}
		lastErr = err
	}
	return apperrors.NewTransient(lastErr)
}

// isRetryable matches the SQLSTATEs postgres raises on serialization
// failure, deadlock and lock timeout.
func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01", "55P03":
			return true
		}
	}
	return false
}

func (s *store) LockForShowtime(ctx context.Context, tx *gorm.DB, showtimeID uuid.UUID, seatIDs []uuid.UUID) ([]SeatSchedule, error) {
	var schedules []SeatSchedule
	err := tx.WithContext(ctx).
		Where("showtime_id = ? AND seat_id IN ?", showtimeID, seatIDs).
		Order("id ASC").
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Find(&schedules).Error
	return schedules, err
}

func (s *store) LockBySeatIDs(ctx context.Context, tx *gorm.DB, seatIDs []uuid.UUID) ([]SeatSchedule, error) {
	var schedules []SeatSchedule
	err := tx.WithContext(ctx).
		Where("seat_id IN ?", seatIDs).
		Order("id ASC").
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Find(&schedules).Error
	return schedules, err
}

func (s *store) LockByConnection(ctx context.Context, tx *gorm.DB, connectionID string) ([]SeatSchedule, error) {
	var schedules []SeatSchedule
	err := tx.WithContext(ctx).
		Where("status = ? AND holder_connection_id = ?", StatusHold, connectionID).
		Order("id ASC").
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Find(&schedules).Error
	return schedules, err
}

func (s *store) LockByOrder(ctx context.Context, tx *gorm.DB, orderID uuid.UUID) ([]SeatSchedule, error) {
	var schedules []SeatSchedule
	err := tx.WithContext(ctx).
		Where("status = ? AND order_id = ?", StatusBooked, orderID).
		Order("id ASC").
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Find(&schedules).Error
	return schedules, err
}

// LockExpired claims lapsed holds with SKIP LOCKED: rows another
// coordinator is mid-transition on are left for the next sweep pass
// instead of blocking.
func (s *store) LockExpired(ctx context.Context, tx *gorm.DB, now time.Time, limit int) ([]SeatSchedule, error) {
	var schedules []SeatSchedule
	err := tx.WithContext(ctx).
		Where("status = ? AND hold_until <= ?", StatusHold, now).
		Order("id ASC").
		Limit(limit).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Find(&schedules).Error
	return schedules, err
}

// ApplyTransition is the single serialized-transition operation every
// coordinator goes through. It validates the edge, applies the
// mutation, bumps the version stamp behind an optimistic guard and
// appends the audit row in the same transaction.
func (s *store) ApplyTransition(ctx context.Context, tx *gorm.DB, schedule *SeatSchedule, next Status, actor string, mutate func(*SeatSchedule)) error {
	if !CanTransition(schedule.Status, next) {
		return apperrors.NewValidation("invalid transition %s -> %s for seat schedule %s", schedule.Status, next, schedule.ID)
	}

	prevVersion := schedule.Version
	if mutate != nil {
		mutate(schedule)
	}
	schedule.Status = next
	schedule.Version = prevVersion + 1

	result := tx.WithContext(ctx).Model(&SeatSchedule{}).
		Where("id = ? AND version = ?", schedule.ID, prevVersion).
		Updates(map[string]interface{}{
			"status":               schedule.Status,
			"hold_until":           schedule.HoldUntil,
			"holder_user_id":       schedule.HolderUserID,
			"holder_connection_id": schedule.HolderConnectionID,
			"order_id":             schedule.OrderID,
			"version":              schedule.Version,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to apply transition: %w", result.Error)
	}
	// Rows are locked FOR UPDATE before transition, so a stale stamp
	// here means the lock discipline was bypassed somewhere.
	if result.RowsAffected == 0 {
		return apperrors.NewTransient(fmt.Errorf("version conflict on seat schedule %s", schedule.ID))
	}

	return s.auditor.Record(ctx, tx, audit.Entry{
		SeatID:     schedule.SeatID,
		ShowtimeID: schedule.ShowtimeID,
		OrderID:    schedule.OrderID,
		Status:     string(next),
		Actor:      actor,
	})
}

func (s *store) CreateBatch(ctx context.Context, tx *gorm.DB, schedules []SeatSchedule) error {
	if len(schedules) == 0 {
		return nil
	}
	return tx.WithContext(ctx).Create(&schedules).Error
}

func (s *store) ListByShowtime(ctx context.Context, showtimeID uuid.UUID) ([]SeatSchedule, error) {
	var schedules []SeatSchedule
	err := s.db.WithContext(ctx).
		Where("showtime_id = ?", showtimeID).
		Order("id ASC").
		Find(&schedules).Error
	return schedules, err
}
