package confirmation

import (
	"context"
	"testing"
	"time"

	"cineseat/internal/inventory"
	"cineseat/internal/inventory/inventorytest"
	"cineseat/internal/notifications"
	"cineseat/internal/shared/apperrors"
	"cineseat/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(store *inventorytest.Store) Service {
	return NewService(store, notifications.NopPublisher{}, nil, logger.GetDefault())
}

func seedHeld(store *inventorytest.Store, showtimeID, userID uuid.UUID, connectionID string, holdUntil time.Time, n int) []uuid.UUID {
	seatIDs := make([]uuid.UUID, n)
	for i := range seatIDs {
		seatIDs[i] = uuid.New()
		hu := holdUntil
		store.Seed(inventory.SeatSchedule{
			ID:                 uuid.New(),
			SeatID:             seatIDs[i],
			ShowtimeID:         showtimeID,
			Status:             inventory.StatusHold,
			HoldUntil:          &hu,
			HolderUserID:       &userID,
			HolderConnectionID: &connectionID,
			Version:            1,
		})
	}
	return seatIDs
}

func TestConfirmSeats_PromotesHeldBatch(t *testing.T) {
	store := inventorytest.NewStore()
	showtimeID := uuid.New()
	userID := uuid.New()
	orderID := uuid.New()
	seatIDs := seedHeld(store, showtimeID, userID, "conn-1", time.Now().Add(2*time.Minute), 3)
	svc := newTestService(store)

	resp, err := svc.ConfirmSeats(context.Background(), userID, ConfirmSeatsRequest{
		ShowtimeID: showtimeID,
		OrderID:    orderID,
		SeatIDs:    seatIDs,
	})

	require.NoError(t, err)
	assert.Equal(t, orderID, resp.OrderID)
	assert.Len(t, resp.Seats, 3)

	for _, seatID := range seatIDs {
		row, ok := store.Get(seatID, showtimeID)
		require.True(t, ok)
		assert.Equal(t, inventory.StatusBooked, row.Status)
		assert.Equal(t, orderID, *row.OrderID)
		assert.Nil(t, row.HoldUntil)
		assert.Equal(t, int64(2), row.Version)
	}
}

func TestConfirmSeats_NewSessionMayConfirm(t *testing.T) {
	store := inventorytest.NewStore()
	showtimeID := uuid.New()
	userID := uuid.New()
	orderID := uuid.New()

	// Hold placed through conn-1; the user reconnects before paying.
	// Ownership follows the user, not the session.
	seatIDs := seedHeld(store, showtimeID, userID, "conn-1", time.Now().Add(2*time.Minute), 2)
	svc := newTestService(store)

	resp, err := svc.ConfirmSeats(context.Background(), userID, ConfirmSeatsRequest{
		ShowtimeID: showtimeID,
		OrderID:    orderID,
		SeatIDs:    seatIDs,
	})

	require.NoError(t, err)
	assert.Len(t, resp.Seats, 2)
	for _, seatID := range seatIDs {
		row, _ := store.Get(seatID, showtimeID)
		assert.Equal(t, inventory.StatusBooked, row.Status)
		assert.Equal(t, orderID, *row.OrderID)
	}
}

func TestConfirmSeats_ExpiredHoldConflicts(t *testing.T) {
	store := inventorytest.NewStore()
	showtimeID := uuid.New()
	userID := uuid.New()
	seatIDs := seedHeld(store, showtimeID, userID, "conn-1", time.Now().Add(-1*time.Second), 1)
	svc := newTestService(store)

	_, err := svc.ConfirmSeats(context.Background(), userID, ConfirmSeatsRequest{
		ShowtimeID: showtimeID,
		OrderID:    uuid.New(),
		SeatIDs:    seatIDs,
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
	assert.Equal(t, seatIDs, apperrors.ConflictSeats(err))

	row, _ := store.Get(seatIDs[0], showtimeID)
	assert.Equal(t, inventory.StatusHold, row.Status)
	assert.Nil(t, row.OrderID)
}

func TestConfirmSeats_ForeignHoldConflicts(t *testing.T) {
	store := inventorytest.NewStore()
	showtimeID := uuid.New()
	owner := uuid.New()
	seatIDs := seedHeld(store, showtimeID, owner, "conn-owner", time.Now().Add(2*time.Minute), 1)
	svc := newTestService(store)

	_, err := svc.ConfirmSeats(context.Background(), uuid.New(), ConfirmSeatsRequest{
		ShowtimeID: showtimeID,
		OrderID:    uuid.New(),
		SeatIDs:    seatIDs,
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
}

func TestConfirmSeats_PartialBatchLeavesAllHeld(t *testing.T) {
	store := inventorytest.NewStore()
	showtimeID := uuid.New()
	userID := uuid.New()
	held := seedHeld(store, showtimeID, userID, "conn-1", time.Now().Add(2*time.Minute), 2)

	// One seat is still AVAILABLE: the caller never held it
	free := uuid.New()
	store.Seed(inventory.SeatSchedule{
		ID:         uuid.New(),
		SeatID:     free,
		ShowtimeID: showtimeID,
		Status:     inventory.StatusAvailable,
	})

	svc := newTestService(store)
	_, err := svc.ConfirmSeats(context.Background(), userID, ConfirmSeatsRequest{
		ShowtimeID: showtimeID,
		OrderID:    uuid.New(),
		SeatIDs:    append(held, free),
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
	assert.Equal(t, []uuid.UUID{free}, apperrors.ConflictSeats(err))

	// No partial booking
	for _, seatID := range held {
		row, _ := store.Get(seatID, showtimeID)
		assert.Equal(t, inventory.StatusHold, row.Status)
		assert.Nil(t, row.OrderID)
	}
}

func TestConfirmSeats_UnknownSeatIsNotFound(t *testing.T) {
	store := inventorytest.NewStore()
	showtimeID := uuid.New()
	userID := uuid.New()
	seatIDs := seedHeld(store, showtimeID, userID, "conn-1", time.Now().Add(2*time.Minute), 1)
	svc := newTestService(store)

	_, err := svc.ConfirmSeats(context.Background(), userID, ConfirmSeatsRequest{
		ShowtimeID: showtimeID,
		OrderID:    uuid.New(),
		SeatIDs:    append(seatIDs, uuid.New()),
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestConfirmSeats_Validation(t *testing.T) {
	svc := newTestService(inventorytest.NewStore())
	ctx := context.Background()

	_, err := svc.ConfirmSeats(ctx, uuid.New(), ConfirmSeatsRequest{OrderID: uuid.New(), SeatIDs: []uuid.UUID{uuid.New()}})
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.ConfirmSeats(ctx, uuid.New(), ConfirmSeatsRequest{ShowtimeID: uuid.New(), SeatIDs: []uuid.UUID{uuid.New()}})
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.ConfirmSeats(ctx, uuid.New(), ConfirmSeatsRequest{ShowtimeID: uuid.New(), OrderID: uuid.New()})
	assert.True(t, apperrors.IsValidation(err))
}
