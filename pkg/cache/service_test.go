package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type seatMapStub struct {
	ShowtimeID string `json:"showtime_id"`
	Seats      int    `json:"seats"`
}

func TestGet_CacheHit(t *testing.T) {
	client, mock := redismock.NewClientMock()
	svc := NewService(client)

	want := seatMapStub{ShowtimeID: "show-1", Seats: 96}
	payload, _ := json.Marshal(want)
	mock.ExpectGet("cineseat:showtimes:seatmap:uuid:show-1").SetVal(string(payload))

	var got seatMapStub
	err := svc.Get(context.Background(), "cineseat:showtimes:seatmap:uuid:show-1", &got)

	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGet_CacheMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	svc := NewService(client)

	mock.ExpectGet("missing-key").RedisNil()

	var got seatMapStub
	err := svc.Get(context.Background(), "missing-key", &got)

	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSet_MarshalsAndStores(t *testing.T) {
	client, mock := redismock.NewClientMock()
	svc := NewService(client)

	value := seatMapStub{ShowtimeID: "show-1", Seats: 96}
	payload, _ := json.Marshal(value)
	mock.ExpectSet("key", payload, 5*time.Minute).SetVal("OK")

	err := svc.Set(context.Background(), "key", value, 5*time.Minute)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	client, mock := redismock.NewClientMock()
	svc := NewService(client)

	mock.ExpectDel("key").SetVal(1)

	require.NoError(t, svc.Delete(context.Background(), "key"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeletePattern(t *testing.T) {
	client, mock := redismock.NewClientMock()
	svc := NewService(client)

	mock.ExpectKeys("cineseat:showtimes:*").SetVal([]string{"a", "b"})
	mock.ExpectDel("a", "b").SetVal(2)

	require.NoError(t, svc.DeletePattern(context.Background(), "cineseat:showtimes:*"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrSet_FetchesOnMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	svc := NewService(client)

	mock.ExpectGet("key").RedisNil()
	// The async cache fill may or may not land before the test ends
	payload, _ := json.Marshal(seatMapStub{ShowtimeID: "show-2", Seats: 60})
	mock.ExpectSet("key", payload, time.Minute).SetVal("OK")

	fetched := false
	var got seatMapStub
	err := svc.GetOrSet(context.Background(), "key", time.Minute, func() (interface{}, error) {
		fetched = true
		return seatMapStub{ShowtimeID: "show-2", Seats: 60}, nil
	}, &got)

	require.NoError(t, err)
	assert.True(t, fetched)
	assert.Equal(t, "show-2", got.ShowtimeID)
	assert.Equal(t, 60, got.Seats)
}

func TestGetOrSet_SkipsFetcherOnHit(t *testing.T) {
	client, mock := redismock.NewClientMock()
	svc := NewService(client)

	payload, _ := json.Marshal(seatMapStub{ShowtimeID: "show-3", Seats: 10})
	mock.ExpectGet("key").SetVal(string(payload))

	var got seatMapStub
	err := svc.GetOrSet(context.Background(), "key", time.Minute, func() (interface{}, error) {
		t.Fatal("fetcher should not run on cache hit")
		return nil, nil
	}, &got)

	require.NoError(t, err)
	assert.Equal(t, "show-3", got.ShowtimeID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
