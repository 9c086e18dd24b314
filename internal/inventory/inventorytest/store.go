// Package inventorytest provides an in-memory inventory.Store for
// service tests. It serializes every transaction behind a mutex, which
// matches the row-lock discipline of the real store closely enough for
// the coordinators: two overlapping batches never interleave.
package inventorytest

import (
	"context"
	"sort"
	"sync"
	"time"

	"cineseat/internal/audit"
	"cineseat/internal/inventory"
	"cineseat/internal/shared/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Store is the in-memory fake. Transaction handles are nil; rollback is
// emulated by snapshotting state before fn runs and restoring it when
// fn returns an error.
type Store struct {
	mu        sync.Mutex
	rows      map[uuid.UUID]*inventory.SeatSchedule
	order     []uuid.UUID
	Audit     []audit.Entry
	FailTxErr error
}

// NewStore creates an empty fake store.
func NewStore() *Store {
	return &Store{rows: make(map[uuid.UUID]*inventory.SeatSchedule)}
}

// Seed inserts rows outside any transaction, assigning ids when unset.
func (s *Store) Seed(schedules ...inventory.SeatSchedule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range schedules {
		row := schedules[i]
		if row.ID == uuid.Nil {
			row.ID = uuid.New()
		}
		s.rows[row.ID] = &row
		s.order = append(s.order, row.ID)
	}
}

// Get returns a copy of the row for one (seat, showtime) pair.
func (s *Store) Get(seatID, showtimeID uuid.UUID) (inventory.SeatSchedule, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.order {
		row := s.rows[id]
		if row.SeatID == seatID && row.ShowtimeID == showtimeID {
			return *row, true
		}
	}
	return inventory.SeatSchedule{}, false
}

func (s *Store) InTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s.FailTxErr != nil {
		return s.FailTxErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make(map[uuid.UUID]inventory.SeatSchedule, len(s.rows))
	for id, row := range s.rows {
		snapshot[id] = *row
	}
	auditLen := len(s.Audit)
	orderLen := len(s.order)

	if err := fn(nil); err != nil {
		s.rows = make(map[uuid.UUID]*inventory.SeatSchedule, len(snapshot))
		for id := range snapshot {
			row := snapshot[id]
			s.rows[id] = &row
		}
		s.Audit = s.Audit[:auditLen]
		s.order = s.order[:orderLen]
		return err
	}
	return nil
}

func (s *Store) match(pred func(*inventory.SeatSchedule) bool) []inventory.SeatSchedule {
	var out []inventory.SeatSchedule
	for _, id := range s.order {
		row := s.rows[id]
		if pred(row) {
			out = append(out, *row)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}

func (s *Store) LockForShowtime(ctx context.Context, tx *gorm.DB, showtimeID uuid.UUID, seatIDs []uuid.UUID) ([]inventory.SeatSchedule, error) {
	wanted := make(map[uuid.UUID]bool, len(seatIDs))
	for _, id := range seatIDs {
		wanted[id] = true
	}
	return s.match(func(row *inventory.SeatSchedule) bool {
		return row.ShowtimeID == showtimeID && wanted[row.SeatID]
	}), nil
}

func (s *Store) LockBySeatIDs(ctx context.Context, tx *gorm.DB, seatIDs []uuid.UUID) ([]inventory.SeatSchedule, error) {
	wanted := make(map[uuid.UUID]bool, len(seatIDs))
	for _, id := range seatIDs {
		wanted[id] = true
	}
	return s.match(func(row *inventory.SeatSchedule) bool {
		return wanted[row.SeatID]
	}), nil
}

func (s *Store) LockByConnection(ctx context.Context, tx *gorm.DB, connectionID string) ([]inventory.SeatSchedule, error) {
	return s.match(func(row *inventory.SeatSchedule) bool {
		return row.Status == inventory.StatusHold &&
			row.HolderConnectionID != nil && *row.HolderConnectionID == connectionID
	}), nil
}

func (s *Store) LockByOrder(ctx context.Context, tx *gorm.DB, orderID uuid.UUID) ([]inventory.SeatSchedule, error) {
	return s.match(func(row *inventory.SeatSchedule) bool {
		return row.Status == inventory.StatusBooked &&
			row.OrderID != nil && *row.OrderID == orderID
	}), nil
}

func (s *Store) LockExpired(ctx context.Context, tx *gorm.DB, now time.Time, limit int) ([]inventory.SeatSchedule, error) {
	rows := s.match(func(row *inventory.SeatSchedule) bool {
		return row.HoldExpired(now)
	})
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

func (s *Store) ApplyTransition(ctx context.Context, tx *gorm.DB, schedule *inventory.SeatSchedule, next inventory.Status, actor string, mutate func(*inventory.SeatSchedule)) error {
	if !inventory.CanTransition(schedule.Status, next) {
		return apperrors.NewValidation("invalid transition %s -> %s for seat schedule %s", schedule.Status, next, schedule.ID)
	}
	stored, ok := s.rows[schedule.ID]
	if !ok {
		return apperrors.ErrNotFound
	}
	if mutate != nil {
		mutate(schedule)
	}
	schedule.Status = next
	schedule.Version = stored.Version + 1
	copied := *schedule
	s.rows[schedule.ID] = &copied

	s.Audit = append(s.Audit, audit.Entry{
		SeatID:     schedule.SeatID,
		ShowtimeID: schedule.ShowtimeID,
		OrderID:    schedule.OrderID,
		Status:     string(next),
		Actor:      actor,
	})
	return nil
}

func (s *Store) CreateBatch(ctx context.Context, tx *gorm.DB, schedules []inventory.SeatSchedule) error {
	for i := range schedules {
		row := schedules[i]
		if row.ID == uuid.Nil {
			row.ID = uuid.New()
		}
		s.rows[row.ID] = &row
		s.order = append(s.order, row.ID)
	}
	return nil
}

func (s *Store) ListByShowtime(ctx context.Context, showtimeID uuid.UUID) ([]inventory.SeatSchedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.match(func(row *inventory.SeatSchedule) bool {
		return row.ShowtimeID == showtimeID
	}), nil
}
