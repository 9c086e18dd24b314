package cancellation

import (
	"context"
	"testing"
	"time"

	"cineseat/internal/inventory"
	"cineseat/internal/inventory/inventorytest"
	"cineseat/internal/notifications"
	"cineseat/internal/shared/apperrors"
	"cineseat/internal/shared/config"
	"cineseat/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(store *inventorytest.Store) Service {
	cfg := config.BookingConfig{CancelledSeatsReleasable: true}
	return NewService(store, notifications.NopPublisher{}, nil, cfg, logger.GetDefault())
}

func seedHeld(store *inventorytest.Store, showtimeID, userID uuid.UUID, connectionID string, n int) []uuid.UUID {
	holdUntil := time.Now().Add(2 * time.Minute)
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

func seedBooked(store *inventorytest.Store, showtimeID, userID, orderID uuid.UUID, n int) []uuid.UUID {
	seatIDs := make([]uuid.UUID, n)
	for i := range seatIDs {
		seatIDs[i] = uuid.New()
		oid := orderID
		store.Seed(inventory.SeatSchedule{
			ID:           uuid.New(),
			SeatID:       seatIDs[i],
			ShowtimeID:   showtimeID,
			Status:       inventory.StatusBooked,
			HolderUserID: &userID,
			OrderID:      &oid,
			Version:      2,
		})
	}
	return seatIDs
}

func TestCancelHold_ReleasesOwnHolds(t *testing.T) {
	store := inventorytest.NewStore()
	showtimeID := uuid.New()
	userID := uuid.New()
	seatIDs := seedHeld(store, showtimeID, userID, "conn-1", 2)
	svc := newTestService(store)

	resp, err := svc.CancelHold(context.Background(), userID, CancelHoldRequest{
		ShowtimeID: showtimeID,
		SeatIDs:    seatIDs,
	})

	require.NoError(t, err)
	assert.Equal(t, 2, resp.Released)

	for _, seatID := range seatIDs {
		row, _ := store.Get(seatID, showtimeID)
		assert.Equal(t, inventory.StatusAvailable, row.Status)
		assert.Nil(t, row.HolderUserID)
		assert.Nil(t, row.HoldUntil)
	}
}

func TestCancelHold_ReleasesAcrossSessions(t *testing.T) {
	store := inventorytest.NewStore()
	showtimeID := uuid.New()
	userID := uuid.New()

	// Held through conn-1; the user reloads and cancels from a new
	// session. The hold follows the user, not the connection.
	seatIDs := seedHeld(store, showtimeID, userID, "conn-1", 1)
	svc := newTestService(store)

	resp, err := svc.CancelHold(context.Background(), userID, CancelHoldRequest{
		ShowtimeID: showtimeID,
		SeatIDs:    seatIDs,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Released)

	row, _ := store.Get(seatIDs[0], showtimeID)
	assert.Equal(t, inventory.StatusAvailable, row.Status)
}

func TestCancelHold_SkipsSeatsNotHeldByCaller(t *testing.T) {
	store := inventorytest.NewStore()
	showtimeID := uuid.New()
	userID := uuid.New()
	mine := seedHeld(store, showtimeID, userID, "conn-1", 1)
	theirs := seedHeld(store, showtimeID, uuid.New(), "conn-other", 1)
	svc := newTestService(store)

	// Cancel naming both: the foreign hold is skipped, not an error
	resp, err := svc.CancelHold(context.Background(), userID, CancelHoldRequest{
		ShowtimeID: showtimeID,
		SeatIDs:    append(mine, theirs...),
	})

	require.NoError(t, err)
	assert.Equal(t, 1, resp.Released)
	assert.Equal(t, mine, resp.SeatIDs)

	foreign, _ := store.Get(theirs[0], showtimeID)
	assert.Equal(t, inventory.StatusHold, foreign.Status)
}

func TestCancelHold_AlreadyReleasedIsNoOp(t *testing.T) {
	store := inventorytest.NewStore()
	showtimeID := uuid.New()
	userID := uuid.New()
	seatID := uuid.New()
	store.Seed(inventory.SeatSchedule{
		ID:         uuid.New(),
		SeatID:     seatID,
		ShowtimeID: showtimeID,
		Status:     inventory.StatusAvailable,
	})
	svc := newTestService(store)

	resp, err := svc.CancelHold(context.Background(), userID, CancelHoldRequest{
		ShowtimeID: showtimeID,
		SeatIDs:    []uuid.UUID{seatID},
	})

	require.NoError(t, err)
	assert.Equal(t, 0, resp.Released)
	assert.Empty(t, store.Audit)
}

func TestCancelHoldByConnection_ReleasesAllSessionHolds(t *testing.T) {
	store := inventorytest.NewStore()
	showA, showB := uuid.New(), uuid.New()
	userID := uuid.New()
	inA := seedHeld(store, showA, userID, "conn-drop", 2)
	inB := seedHeld(store, showB, userID, "conn-drop", 1)
	kept := seedHeld(store, showA, userID, "conn-live", 1)
	svc := newTestService(store)

	resp, err := svc.CancelHoldByConnection(context.Background(), CancelByConnectionRequest{
		ConnectionID: "conn-drop",
	})

	require.NoError(t, err)
	assert.Equal(t, 3, resp.Released)

	for _, seatID := range inA {
		row, _ := store.Get(seatID, showA)
		assert.Equal(t, inventory.StatusAvailable, row.Status)
	}
	row, _ := store.Get(inB[0], showB)
	assert.Equal(t, inventory.StatusAvailable, row.Status)

	live, _ := store.Get(kept[0], showA)
	assert.Equal(t, inventory.StatusHold, live.Status)
}

func TestCancelHoldByConnection_NoHoldsIsNoOp(t *testing.T) {
	svc := newTestService(inventorytest.NewStore())

	resp, err := svc.CancelHoldByConnection(context.Background(), CancelByConnectionRequest{
		ConnectionID: "conn-unknown",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Released)
}

func TestCancelBooking_CancelsOrder(t *testing.T) {
	store := inventorytest.NewStore()
	showtimeID := uuid.New()
	userID := uuid.New()
	orderID := uuid.New()
	seatIDs := seedBooked(store, showtimeID, userID, orderID, 2)
	svc := newTestService(store)

	resp, err := svc.CancelBooking(context.Background(), userID, CancelBookingRequest{OrderID: orderID})

	require.NoError(t, err)
	assert.Equal(t, 2, resp.Released)
	for _, seatID := range seatIDs {
		row, _ := store.Get(seatID, showtimeID)
		assert.Equal(t, inventory.StatusCancelled, row.Status)
		// A cancelled row carries no order or holder references
		assert.Nil(t, row.OrderID)
		assert.Nil(t, row.HolderUserID)
		assert.Nil(t, row.HolderConnectionID)
	}
}

func TestCancelBooking_WithReleaseReopensSeats(t *testing.T) {
	store := inventorytest.NewStore()
	showtimeID := uuid.New()
	userID := uuid.New()
	orderID := uuid.New()
	seatIDs := seedBooked(store, showtimeID, userID, orderID, 2)
	svc := newTestService(store)

	resp, err := svc.CancelBooking(context.Background(), userID, CancelBookingRequest{
		OrderID:      orderID,
		ReleaseSeats: true,
	})

	require.NoError(t, err)
	assert.Equal(t, 2, resp.Released)
	for _, seatID := range seatIDs {
		row, _ := store.Get(seatID, showtimeID)
		assert.Equal(t, inventory.StatusAvailable, row.Status)
		assert.Nil(t, row.OrderID)
		assert.Nil(t, row.HolderUserID)
	}
	// CANCELLED then AVAILABLE, both audited
	assert.Len(t, store.Audit, 4)
}

func TestCancelBooking_ReleaseRejectedWhenRetentionForbidsIt(t *testing.T) {
	store := inventorytest.NewStore()
	showtimeID := uuid.New()
	userID := uuid.New()
	orderID := uuid.New()
	seatIDs := seedBooked(store, showtimeID, userID, orderID, 1)
	cfg := config.BookingConfig{CancelledSeatsReleasable: false}
	svc := NewService(store, notifications.NopPublisher{}, nil, cfg, logger.GetDefault())

	_, err := svc.CancelBooking(context.Background(), userID, CancelBookingRequest{
		OrderID:      orderID,
		ReleaseSeats: true,
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	row, _ := store.Get(seatIDs[0], showtimeID)
	assert.Equal(t, inventory.StatusBooked, row.Status)
}

func TestCancelBooking_UnknownOrderIsNotFound(t *testing.T) {
	svc := newTestService(inventorytest.NewStore())

	_, err := svc.CancelBooking(context.Background(), uuid.New(), CancelBookingRequest{OrderID: uuid.New()})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestCancelBooking_ForeignOrderConflicts(t *testing.T) {
	store := inventorytest.NewStore()
	showtimeID := uuid.New()
	owner := uuid.New()
	orderID := uuid.New()
	seatIDs := seedBooked(store, showtimeID, owner, orderID, 1)
	svc := newTestService(store)

	_, err := svc.CancelBooking(context.Background(), uuid.New(), CancelBookingRequest{OrderID: orderID})

	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))

	row, _ := store.Get(seatIDs[0], showtimeID)
	assert.Equal(t, inventory.StatusBooked, row.Status)
}
