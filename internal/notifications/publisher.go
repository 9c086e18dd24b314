package notifications

import (
	"context"
	"fmt"
	"time"

	"cineseat/pkg/logger"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
)

// Publisher emits seat transition events. Publishing is best effort:
// a failed publish is logged and dropped, it never rolls back the
// transition that triggered it.
type Publisher interface {
	PublishTransition(ctx context.Context, event *TransitionEvent) error
	PublishTransitions(ctx context.Context, events []*TransitionEvent) error
	Close() error
}

// KafkaPublisherConfig contains configuration for the Kafka publisher.
type KafkaPublisherConfig struct {
	Brokers         []string
	Topic           string
	RetryMax        int
	TimeoutMs       int
	RequiredAcks    sarama.RequiredAcks
	CompressionType sarama.CompressionCodec
	MaxMessageBytes int
}

// DefaultKafkaPublisherConfig returns a default publisher configuration.
func DefaultKafkaPublisherConfig() *KafkaPublisherConfig {
	return &KafkaPublisherConfig{
		Brokers:         []string{"localhost:9092"},
		Topic:           "seat-transitions",
		RetryMax:        3,
		TimeoutMs:       10000,
		RequiredAcks:    sarama.WaitForAll,
		CompressionType: sarama.CompressionSnappy,
		MaxMessageBytes: 1000000,
	}
}

type kafkaPublisher struct {
	producer sarama.SyncProducer
	config   *KafkaPublisherConfig
	logger   *logger.Logger
}

// NewKafkaPublisher creates a Kafka-backed transition publisher.
func NewKafkaPublisher(config *KafkaPublisherConfig, log *logger.Logger) (Publisher, error) {
	saramaConfig := sarama.NewConfig()

	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = config.RequiredAcks
	saramaConfig.Producer.Compression = config.CompressionType
	saramaConfig.Producer.Retry.Max = config.RetryMax
	saramaConfig.Producer.Timeout = time.Duration(config.TimeoutMs) * time.Millisecond
	saramaConfig.Producer.Idempotent = true
	saramaConfig.Producer.MaxMessageBytes = config.MaxMessageBytes
	saramaConfig.Net.MaxOpenRequests = 1

	// Hash partitioner keeps every event for one showtime on the same
	// partition, which preserves per-showtime ordering for consumers.
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return &kafkaPublisher{
		producer: producer,
		config:   config,
		logger:   log,
	}, nil
}

// NewKafkaPublisherWithProducer wires an existing producer; used in tests.
func NewKafkaPublisherWithProducer(producer sarama.SyncProducer, config *KafkaPublisherConfig, log *logger.Logger) Publisher {
	return &kafkaPublisher{
		producer: producer,
		config:   config,
		logger:   log,
	}
}

func (p *kafkaPublisher) PublishTransition(ctx context.Context, event *TransitionEvent) error {
	message, err := p.buildMessage(event)
	if err != nil {
		return err
	}

	if _, _, err := p.producer.SendMessage(message); err != nil {
		return fmt.Errorf("failed to publish seat transition: %w", err)
	}
	return nil
}

func (p *kafkaPublisher) PublishTransitions(ctx context.Context, events []*TransitionEvent) error {
	if len(events) == 0 {
		return nil
	}

	messages := make([]*sarama.ProducerMessage, 0, len(events))
	for _, event := range events {
		message, err := p.buildMessage(event)
		if err != nil {
			p.logger.LogPublishFailure(ctx, event.SeatID.String(), err)
			continue
		}
		messages = append(messages, message)
	}

	if err := p.producer.SendMessages(messages); err != nil {
		return fmt.Errorf("failed to publish seat transition batch: %w", err)
	}
	return nil
}

func (p *kafkaPublisher) buildMessage(event *TransitionEvent) (*sarama.ProducerMessage, error) {
	if event.EventID == uuid.Nil {
		event.EventID = uuid.New()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	payload, err := event.ToJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal seat transition: %w", err)
	}

	return &sarama.ProducerMessage{
		Topic: p.config.Topic,
		Key:   sarama.StringEncoder(event.GetPartitionKey()),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_id"), Value: []byte(event.EventID.String())},
			{Key: []byte("showtime_id"), Value: []byte(event.ShowtimeID.String())},
			{Key: []byte("status"), Value: []byte(event.Status)},
			{Key: []byte("producer"), Value: []byte("cineseat")},
		},
		Timestamp: event.OccurredAt,
	}, nil
}

func (p *kafkaPublisher) Close() error {
	if p.producer != nil {
		if err := p.producer.Close(); err != nil {
			return fmt.Errorf("failed to close Kafka producer: %w", err)
		}
	}
	return nil
}

// NopPublisher drops every event. Used when the broker is not
// configured; the engine keeps working, only the live feed goes dark.
type NopPublisher struct{}

func (NopPublisher) PublishTransition(ctx context.Context, event *TransitionEvent) error {
	return nil
}

func (NopPublisher) PublishTransitions(ctx context.Context, events []*TransitionEvent) error {
	return nil
}

func (NopPublisher) Close() error { return nil }
