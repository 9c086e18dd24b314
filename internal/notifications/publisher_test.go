package notifications

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"cineseat/pkg/logger"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockPublisher(t *testing.T) (*mocks.SyncProducer, Publisher) {
	saramaConfig := mocks.NewTestConfig()
	saramaConfig.Producer.Return.Successes = true
	producer := mocks.NewSyncProducer(t, saramaConfig)

	cfg := DefaultKafkaPublisherConfig()
	publisher := NewKafkaPublisherWithProducer(producer, cfg, logger.GetDefault())
	return producer, publisher
}

func TestPublishTransition_SendsPartitionKeyedEvent(t *testing.T) {
	producer, publisher := newMockPublisher(t)
	defer publisher.Close()

	showtimeID := uuid.New()
	seatID := uuid.New()
	scheduleID := uuid.New()
	holdUntil := time.Now().Add(5 * time.Minute).UTC()

	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		key, err := msg.Key.Encode()
		require.NoError(t, err)
		assert.Equal(t, showtimeID.String(), string(key))

		value, err := msg.Value.Encode()
		require.NoError(t, err)

		var decoded TransitionEvent
		require.NoError(t, json.Unmarshal(value, &decoded))
		assert.Equal(t, scheduleID, decoded.SeatScheduleID)
		assert.Equal(t, seatID, decoded.SeatID)
		assert.Equal(t, "HOLD", decoded.Status)
		require.NotNil(t, decoded.HoldUntil)
		assert.True(t, decoded.HoldUntil.Equal(holdUntil))
		assert.NotEqual(t, uuid.Nil, decoded.EventID)
		assert.False(t, decoded.OccurredAt.IsZero())
		return nil
	})

	err := publisher.PublishTransition(context.Background(), &TransitionEvent{
		SeatScheduleID: scheduleID,
		SeatID:         seatID,
		ShowtimeID:     showtimeID,
		Status:         "HOLD",
		HoldUntil:      &holdUntil,
		Actor:          "user:" + uuid.NewString(),
		Version:        1,
	})
	require.NoError(t, err)
}

func TestPublishTransition_BrokerErrorIsReturned(t *testing.T) {
	producer, publisher := newMockPublisher(t)
	defer publisher.Close()

	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	err := publisher.PublishTransition(context.Background(), &TransitionEvent{
		SeatID:     uuid.New(),
		ShowtimeID: uuid.New(),
		Status:     "AVAILABLE",
		Actor:      "system",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to publish seat transition")
}

func TestPublishTransitions_SendsBatch(t *testing.T) {
	producer, publisher := newMockPublisher(t)
	defer publisher.Close()

	producer.ExpectSendMessageAndSucceed()
	producer.ExpectSendMessageAndSucceed()

	events := []*TransitionEvent{
		{SeatID: uuid.New(), ShowtimeID: uuid.New(), Status: "HOLD", Actor: "user:a", OccurredAt: time.Now()},
		{SeatID: uuid.New(), ShowtimeID: uuid.New(), Status: "BOOKED", Actor: "user:b", OccurredAt: time.Now()},
	}
	require.NoError(t, publisher.PublishTransitions(context.Background(), events))
}

func TestPublishTransitions_EmptyBatchIsNoOp(t *testing.T) {
	_, publisher := newMockPublisher(t)
	defer publisher.Close()

	require.NoError(t, publisher.PublishTransitions(context.Background(), nil))
}

func TestNopPublisher(t *testing.T) {
	var publisher Publisher = NopPublisher{}

	assert.NoError(t, publisher.PublishTransition(context.Background(), &TransitionEvent{}))
	assert.NoError(t, publisher.PublishTransitions(context.Background(), []*TransitionEvent{{}}))
	assert.NoError(t, publisher.Close())
}
