package sweeper

import (
	"context"
	"testing"
	"time"

	"cineseat/internal/audit"
	"cineseat/internal/inventory"
	"cineseat/internal/inventory/inventorytest"
	"cineseat/internal/notifications"
	"cineseat/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(store *inventorytest.Store) Service {
	return NewService(store, notifications.NopPublisher{}, nil, logger.GetDefault())
}

func seedHoldExpiring(store *inventorytest.Store, showtimeID uuid.UUID, holdUntil time.Time) uuid.UUID {
	seatID := uuid.New()
	userID := uuid.New()
	connID := "conn-1"
	hu := holdUntil
	store.Seed(inventory.SeatSchedule{
		ID:                 uuid.New(),
		SeatID:             seatID,
		ShowtimeID:         showtimeID,
		Status:             inventory.StatusHold,
		HoldUntil:          &hu,
		HolderUserID:       &userID,
		HolderConnectionID: &connID,
		Version:            1,
	})
	return seatID
}

func TestReleaseExpiredHolds_ReleasesOnlyLapsed(t *testing.T) {
	store := inventorytest.NewStore()
	showtimeID := uuid.New()

	lapsed := seedHoldExpiring(store, showtimeID, time.Now().Add(-1*time.Minute))
	live := seedHoldExpiring(store, showtimeID, time.Now().Add(5*time.Minute))
	booked := uuid.New()
	store.Seed(inventory.SeatSchedule{
		ID:         uuid.New(),
		SeatID:     booked,
		ShowtimeID: showtimeID,
		Status:     inventory.StatusBooked,
	})

	svc := newTestService(store)
	released, err := svc.ReleaseExpiredHolds(context.Background(), 100)

	require.NoError(t, err)
	assert.Equal(t, 1, released)

	row, _ := store.Get(lapsed, showtimeID)
	assert.Equal(t, inventory.StatusAvailable, row.Status)
	assert.Nil(t, row.HolderUserID)
	assert.Nil(t, row.HoldUntil)

	liveRow, _ := store.Get(live, showtimeID)
	assert.Equal(t, inventory.StatusHold, liveRow.Status)

	bookedRow, _ := store.Get(booked, showtimeID)
	assert.Equal(t, inventory.StatusBooked, bookedRow.Status)

	require.Len(t, store.Audit, 1)
	assert.Equal(t, audit.SystemActor, store.Audit[0].Actor)
}

func TestReleaseExpiredHolds_Idempotent(t *testing.T) {
	store := inventorytest.NewStore()
	showtimeID := uuid.New()
	seedHoldExpiring(store, showtimeID, time.Now().Add(-1*time.Minute))
	svc := newTestService(store)

	released, err := svc.ReleaseExpiredHolds(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, 1, released)

	// Second pass finds nothing
	released, err = svc.ReleaseExpiredHolds(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, 0, released)
	assert.Len(t, store.Audit, 1)
}

func TestReleaseExpiredHolds_HonorsBatchSize(t *testing.T) {
	store := inventorytest.NewStore()
	showtimeID := uuid.New()
	for i := 0; i < 5; i++ {
		seedHoldExpiring(store, showtimeID, time.Now().Add(-1*time.Minute))
	}
	svc := newTestService(store)

	released, err := svc.ReleaseExpiredHolds(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, released)

	released, err = svc.ReleaseExpiredHolds(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, 3, released)
}

func TestReleaseExpiredHolds_EmptyStore(t *testing.T) {
	svc := newTestService(inventorytest.NewStore())

	released, err := svc.ReleaseExpiredHolds(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, 0, released)
}
