package confirmation

import (
	"context"
	"time"

	"cineseat/internal/audit"
	"cineseat/internal/holds"
	"cineseat/internal/inventory"
	"cineseat/internal/notifications"
	"cineseat/internal/shared/apperrors"
	"cineseat/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service interface {
	ConfirmSeats(ctx context.Context, userID uuid.UUID, req ConfirmSeatsRequest) (*ConfirmationResponse, error)
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

// ConfirmSeats stamps a batch of held seats as BOOKED under the
// caller's order id. Every seat must carry a live lease owned by this
// user; the session that placed the hold need not be the one
// confirming it. A single lapsed or foreign lease fails the whole
// batch and no seat is booked.
func (s *service) ConfirmSeats(ctx context.Context, userID uuid.UUID, req ConfirmSeatsRequest) (*ConfirmationResponse, error) {
	if req.ShowtimeID == uuid.Nil {
		return nil, apperrors.NewValidation("showtime_id is required")
	}
	if req.OrderID == uuid.Nil {
		return nil, apperrors.NewValidation("order_id is required")
	}
	if len(req.SeatIDs) == 0 {
		return nil, apperrors.NewValidation("seat_ids must not be empty")
	}

	orderID := req.OrderID
	actor := audit.UserActor(userID)

	var booked []inventory.SeatSchedule
	err := s.store.InTransaction(ctx, func(tx *gorm.DB) error {
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
			lease := schedules[i].Lease()
			if lease == nil || lease.Expired(now) || lease.Holder != userID {
				conflicts = append(conflicts, schedules[i].SeatID)
			}
		}
		if len(conflicts) > 0 {
			return apperrors.NewConflict("seats are not held by this session", conflicts)
		}

		booked = booked[:0]
		for i := range schedules {
			schedule := schedules[i]
			err := s.store.ApplyTransition(ctx, tx, &schedule, inventory.StatusBooked, actor, func(row *inventory.SeatSchedule) {
				row.HoldUntil = nil
				row.OrderID = &orderID
			})
			if err != nil {
				return err
			}
			booked = append(booked, schedule)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.LogSeatsConfirmed(ctx, orderID.String(), userID.String(), len(booked))
	s.publishTransitions(ctx, req.ShowtimeID, actor, booked)

	seats := make([]BookedSeat, 0, len(booked))
	for _, schedule := range booked {
		seats = append(seats, BookedSeat{
			SeatID:  schedule.SeatID,
			Status:  string(schedule.Status),
			Version: schedule.Version,
		})
	}

	return &ConfirmationResponse{
		OrderID:    orderID,
		ShowtimeID: req.ShowtimeID,
		Seats:      seats,
	}, nil
}

func (s *service) publishTransitions(ctx context.Context, showtimeID uuid.UUID, actor string, schedules []inventory.SeatSchedule) {
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
