package holds

import (
	"context"
	"time"

	"cineseat/internal/audit"
	"cineseat/internal/inventory"
	"cineseat/internal/notifications"
	"cineseat/internal/shared/apperrors"
	"cineseat/internal/shared/config"
	"cineseat/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SeatMapCache invalidates the cached availability view after a
// committed transition. Defined here to avoid importing the showtimes
// package directly.
type SeatMapCache interface {
	InvalidateSeatMap(ctx context.Context, showtimeID uuid.UUID)
}

type Service interface {
	HoldSeats(ctx context.Context, userID uuid.UUID, connectionID string, req HoldSeatsRequest) (*HoldResponse, error)
}

type service struct {
	store     inventory.Store
	publisher notifications.Publisher
	seatMaps  SeatMapCache
	holdCfg   config.HoldConfig
	logger    *logger.Logger
}

func NewService(store inventory.Store, publisher notifications.Publisher, seatMaps SeatMapCache, holdCfg config.HoldConfig, log *logger.Logger) Service {
	return &service{
		store:     store,
		publisher: publisher,
		seatMaps:  seatMaps,
		holdCfg:   holdCfg,
		logger:    log,
	}
}

// HoldSeats places an all-or-nothing hold on a batch of seats. Every
// requested seat must be grantable - available, carrying a lapsed hold,
// or already held by this same user and session (renewal) - or the
// whole request fails with the contested seat ids and no row changes.
func (s *service) HoldSeats(ctx context.Context, userID uuid.UUID, connectionID string, req HoldSeatsRequest) (*HoldResponse, error) {
	if err := validateHoldRequest(req, s.holdCfg.MaxBatchSize); err != nil {
		return nil, err
	}

	duration := s.holdCfg.ClampHoldDuration(time.Duration(req.HoldDurationSeconds) * time.Second)
	actor := audit.UserActor(userID)

	// The window is stamped inside the transaction so lock waits and
	// retries never eat into the granted hold time.
	var holdUntil time.Time
	var held []inventory.SeatSchedule
	err := s.store.InTransaction(ctx, func(tx *gorm.DB) error {
		holdUntil = time.Now().Add(duration)
		schedules, err := s.store.LockForShowtime(ctx, tx, req.ShowtimeID, req.SeatIDs)
		if err != nil {
			return err
		}
		if len(schedules) != len(req.SeatIDs) {
			return apperrors.ErrNotFound
		}

		now := time.Now()
		var conflicts []uuid.UUID
		for i := range schedules {
			if !grantable(&schedules[i], userID, connectionID, now) {
				conflicts = append(conflicts, schedules[i].SeatID)
			}
		}
		if len(conflicts) > 0 {
			return apperrors.NewConflict("seats are not available", conflicts)
		}

		held = held[:0]
		for i := range schedules {
			schedule := schedules[i]
			err := s.store.ApplyTransition(ctx, tx, &schedule, inventory.StatusHold, actor, func(row *inventory.SeatSchedule) {
				row.HoldUntil = &holdUntil
				row.HolderUserID = &userID
				row.HolderConnectionID = &connectionID
				row.OrderID = nil
			})
			if err != nil {
				return err
			}
			held = append(held, schedule)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.LogHoldGranted(ctx, req.ShowtimeID.String(), userID.String(), len(held), holdUntil)
	s.afterCommit(ctx, req.ShowtimeID, actor, held)

	seats := make([]HeldSeat, 0, len(held))
	for _, schedule := range held {
		seats = append(seats, HeldSeat{
			SeatScheduleID: schedule.ID,
			SeatID:         schedule.SeatID,
			Status:         string(schedule.Status),
			Version:        schedule.Version,
		})
	}

	return &HoldResponse{
		ShowtimeID: req.ShowtimeID,
		Seats:      seats,
		HoldUntil:  holdUntil,
	}, nil
}

// grantable decides whether one locked row can be taken by this
// request: free rows, rows whose lease has lapsed (takeover) and rows
// leased to the same user and session (renewal) all qualify.
func grantable(schedule *inventory.SeatSchedule, userID uuid.UUID, connectionID string, now time.Time) bool {
	switch schedule.Status {
	case inventory.StatusAvailable:
		return true
	case inventory.StatusHold:
		lease := schedule.Lease()
		if lease == nil || lease.Expired(now) {
			return true
		}
		return lease.OwnedBy(userID, connectionID)
	default:
		return false
	}
}

func validateHoldRequest(req HoldSeatsRequest, maxBatch int) error {
	if req.ShowtimeID == uuid.Nil {
		return apperrors.NewValidation("showtime_id is required")
	}
	if len(req.SeatIDs) == 0 {
		return apperrors.NewValidation("seat_ids must not be empty")
	}
	if len(req.SeatIDs) > maxBatch {
		return apperrors.NewValidation("cannot hold more than %d seats per request", maxBatch)
	}
	seen := make(map[uuid.UUID]bool, len(req.SeatIDs))
	for _, id := range req.SeatIDs {
		if id == uuid.Nil {
			return apperrors.NewValidation("seat_ids must not contain a nil id")
		}
		if seen[id] {
			return apperrors.NewValidation("seat_ids must not contain duplicates")
		}
		seen[id] = true
	}
	return nil
}

// afterCommit pushes the transition feed and drops the seat map cache.
// Both are best effort.
func (s *service) afterCommit(ctx context.Context, showtimeID uuid.UUID, actor string, schedules []inventory.SeatSchedule) {
	events := make([]*notifications.TransitionEvent, 0, len(schedules))
	for _, schedule := range schedules {
		events = append(events, &notifications.TransitionEvent{
			SeatScheduleID: schedule.ID,
			SeatID:         schedule.SeatID,
			ShowtimeID:     schedule.ShowtimeID,
			Status:         string(schedule.Status),
			HoldUntil:      schedule.HoldUntil,
			OrderID:        schedule.OrderID,
			Actor:          actor,
			Version:        schedule.Version,
		})
	}
	if err := s.publisher.PublishTransitions(ctx, events); err != nil {
		s.logger.LogPublishFailure(ctx, showtimeID.String(), err)
	}
	if s.seatMaps != nil {
		s.seatMaps.InvalidateSeatMap(ctx, showtimeID)
	}
}
