package sweeper

import (
	"context"
	"time"

	"cineseat/internal/audit"
	"cineseat/internal/holds"
	"cineseat/internal/inventory"
	"cineseat/internal/notifications"
	"cineseat/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service interface {
	// ReleaseExpiredHolds flips one batch of lapsed holds back to
	// AVAILABLE and returns how many rows it released.
	ReleaseExpiredHolds(ctx context.Context, batchSize int) (int, error)
}

type service struct {
	store     inventory.Store
	publisher notifications.Publisher
	seatMaps  holds.SeatMapCache
	logger    *logger.Logger
}

func NewService(store inventory.Store, publisher notifications.Publisher, seatMaps holds.SeatMapCache, log *logger.Logger) Service {
	return &service{
		store:     store,
		publisher: publisher,
		seatMaps:  seatMaps,
		logger:    log,
	}
}

// ReleaseExpiredHolds claims lapsed holds with skip-locked semantics,
// so concurrent sweepers and in-flight coordinators never contend on
// the same rows. Rows claimed mid-takeover are simply not seen;
// rerunning the sweep is always safe.
func (s *service) ReleaseExpiredHolds(ctx context.Context, batchSize int) (int, error) {
	var released []inventory.SeatSchedule
	err := s.store.InTransaction(ctx, func(tx *gorm.DB) error {
		schedules, err := s.store.LockExpired(ctx, tx, time.Now(), batchSize)
		if err != nil {
			return err
		}

		released = released[:0]
		for i := range schedules {
			schedule := schedules[i]
			err := s.store.ApplyTransition(ctx, tx, &schedule, inventory.StatusAvailable, audit.SystemActor, func(row *inventory.SeatSchedule) {
				row.ClearHold()
			})
			if err != nil {
				return err
			}
			released = append(released, schedule)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if len(released) > 0 {
		s.afterCommit(ctx, released)
	}
	return len(released), nil
}

func (s *service) afterCommit(ctx context.Context, schedules []inventory.SeatSchedule) {
	events := make([]*notifications.TransitionEvent, 0, len(schedules))
	showtimes := make(map[uuid.UUID]bool)
	for _, schedule := range schedules {
		showtimes[schedule.ShowtimeID] = true
		events = append(events, &notifications.TransitionEvent{
			SeatScheduleID: schedule.ID,
			SeatID:         schedule.SeatID,
			ShowtimeID:     schedule.ShowtimeID,
			Status:         string(schedule.Status),
			HoldUntil:      schedule.HoldUntil,
			Actor:          audit.SystemActor,
			Version:        schedule.Version,
		})
	}
	if err := s.publisher.PublishTransitions(ctx, events); err != nil {
		s.logger.LogPublishFailure(ctx, audit.SystemActor, err)
	}
	if s.seatMaps != nil {
		for showtimeID := range showtimes {
			s.seatMaps.InvalidateSeatMap(ctx, showtimeID)
		}
	}
}
