package cancellation

import (
	"context"

	"cineseat/internal/audit"
	"cineseat/internal/holds"
	"cineseat/internal/inventory"
	"cineseat/internal/notifications"
	"cineseat/internal/shared/apperrors"
	"cineseat/internal/shared/config"
	"cineseat/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service interface {
	CancelHold(ctx context.Context, userID uuid.UUID, req CancelHoldRequest) (*CancellationResponse, error)
	CancelHoldByConnection(ctx context.Context, req CancelByConnectionRequest) (*CancellationResponse, error)
	CancelBooking(ctx context.Context, userID uuid.UUID, req CancelBookingRequest) (*CancellationResponse, error)
}

type service struct {
	store      inventory.Store
	publisher  notifications.Publisher
	seatMaps   holds.SeatMapCache
	bookingCfg config.BookingConfig
	logger     *logger.Logger
}

func NewService(store inventory.Store, publisher notifications.Publisher, seatMaps holds.SeatMapCache, bookingCfg config.BookingConfig, log *logger.Logger) Service {
	return &service{
		store:      store,
		publisher:  publisher,
		seatMaps:   seatMaps,
		bookingCfg: bookingCfg,
		logger:     log,
	}
}

// CancelHold releases the caller's holds on the named seats, whichever
// session placed them. Seats the caller no longer holds are skipped
// silently: a cancel that races an expiry or takeover is a no-op,
// never an error.
func (s *service) CancelHold(ctx context.Context, userID uuid.UUID, req CancelHoldRequest) (*CancellationResponse, error) {
	if req.ShowtimeID == uuid.Nil {
		return nil, apperrors.NewValidation("showtime_id is required")
	}
	if len(req.SeatIDs) == 0 {
		return nil, apperrors.NewValidation("seat_ids must not be empty")
	}

	actor := audit.UserActor(userID)
	var released []inventory.SeatSchedule
	err := s.store.InTransaction(ctx, func(tx *gorm.DB) error {
		schedules, err := s.store.LockForShowtime(ctx, tx, req.ShowtimeID, req.SeatIDs)
		if err != nil {
			return err
		}

		released = released[:0]
		for i := range schedules {
			schedule := schedules[i]
			if schedule.Status != inventory.StatusHold || !schedule.HeldByUser(userID) {
				continue
			}
			err := s.store.ApplyTransition(ctx, tx, &schedule, inventory.StatusAvailable, actor, func(row *inventory.SeatSchedule) {
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
		return nil, err
	}

	s.logger.LogSeatsReleased(ctx, "hold_cancelled", len(released))
	s.afterCommit(ctx, actor, released)
	return buildResponse(released), nil
}

// CancelHoldByConnection releases every hold owned by a connection.
// Called when a client session drops; bookings are untouched.
func (s *service) CancelHoldByConnection(ctx context.Context, req CancelByConnectionRequest) (*CancellationResponse, error) {
	actor := audit.ConnectionActor(req.ConnectionID)
	var released []inventory.SeatSchedule
	err := s.store.InTransaction(ctx, func(tx *gorm.DB) error {
		schedules, err := s.store.LockByConnection(ctx, tx, req.ConnectionID)
		if err != nil {
			return err
		}

		released = released[:0]
		for i := range schedules {
			schedule := schedules[i]
			err := s.store.ApplyTransition(ctx, tx, &schedule, inventory.StatusAvailable, actor, func(row *inventory.SeatSchedule) {
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
		return nil, err
	}

	s.logger.LogSeatsReleased(ctx, "connection_closed", len(released))
	s.afterCommit(ctx, actor, released)
	return buildResponse(released), nil
}

// CancelBooking voids an order. Seats move to CANCELLED with the order
// and holder references cleared and, when the caller asks for it,
// straight back to AVAILABLE for resale.
func (s *service) CancelBooking(ctx context.Context, userID uuid.UUID, req CancelBookingRequest) (*CancellationResponse, error) {
	if req.OrderID == uuid.Nil {
		return nil, apperrors.NewValidation("order_id is required")
	}
	if req.ReleaseSeats && !s.bookingCfg.CancelledSeatsReleasable {
		return nil, apperrors.NewValidation("cancelled seats cannot be released for resale")
	}

	actor := audit.UserActor(userID)
	var cancelled []inventory.SeatSchedule
	err := s.store.InTransaction(ctx, func(tx *gorm.DB) error {
		schedules, err := s.store.LockByOrder(ctx, tx, req.OrderID)
		if err != nil {
			return err
		}
		if len(schedules) == 0 {
			return apperrors.ErrNotFound
		}

		for i := range schedules {
			if schedules[i].HolderUserID == nil || *schedules[i].HolderUserID != userID {
				return apperrors.NewConflict("order belongs to another user", []uuid.UUID{schedules[i].SeatID})
			}
		}

		cancelled = cancelled[:0]
		for i := range schedules {
			schedule := schedules[i]
			err := s.store.ApplyTransition(ctx, tx, &schedule, inventory.StatusCancelled, actor, func(row *inventory.SeatSchedule) {
				row.ClearHold()
				row.OrderID = nil
			})
			if err != nil {
				return err
			}
			if req.ReleaseSeats {
				if err := s.store.ApplyTransition(ctx, tx, &schedule, inventory.StatusAvailable, actor, nil); err != nil {
					return err
				}
			}
			cancelled = append(cancelled, schedule)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.LogSeatsReleased(ctx, "booking_cancelled", len(cancelled))
	s.afterCommit(ctx, actor, cancelled)
	return buildResponse(cancelled), nil
}

func buildResponse(schedules []inventory.SeatSchedule) *CancellationResponse {
	seatIDs := make([]uuid.UUID, 0, len(schedules))
	for _, schedule := range schedules {
		seatIDs = append(seatIDs, schedule.SeatID)
	}
	return &CancellationResponse{
		Released: len(schedules),
		SeatIDs:  seatIDs,
	}
}

func (s *service) afterCommit(ctx context.Context, actor string, schedules []inventory.SeatSchedule) {
	if len(schedules) == 0 {
		return
	}

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
			OrderID:        schedule.OrderID,
			Actor:          actor,
			Version:        schedule.Version,
		})
	}
	if err := s.publisher.PublishTransitions(ctx, events); err != nil {
		s.logger.LogPublishFailure(ctx, actor, err)
	}
	if s.seatMaps != nil {
		for showtimeID := range showtimes {
			s.seatMaps.InvalidateSeatMap(ctx, showtimeID)
		}
	}
}
