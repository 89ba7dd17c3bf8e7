package notifications

import (
	"context"
	"fmt"
	"time"

	"concertly/internal/checkout"
	"concertly/internal/shared/config"
	"concertly/pkg/logger"

	"github.com/IBM/sarama"
)

// Producer publishes booking lifecycle events. It satisfies the checkout
// package's EventPublisher contract.
type Producer interface {
	PublishBookingEvent(ctx context.Context, eventType string, booking *checkout.Booking) error
	HealthCheck(ctx context.Context) error
	Close() error
}

// KafkaBookingProducer publishes booking events to Kafka
type KafkaBookingProducer struct {
	producer sarama.SyncProducer
	topic    string
	logger   *logger.Logger
}

// NewKafkaBookingProducer creates a synchronous, idempotent producer.
func NewKafkaBookingProducer(cfg config.KafkaConfig) (*KafkaBookingProducer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Compression = sarama.CompressionSnappy
	saramaConfig.Producer.Retry.Max = 3
	saramaConfig.Producer.Timeout = 10 * time.Second
	saramaConfig.Producer.Idempotent = true
	saramaConfig.Net.MaxOpenRequests = 1
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	log := logger.GetDefault()
	log.Info("📤 Kafka booking event producer created", "topic", cfg.BookingsTopic)
	return &KafkaBookingProducer{
		producer: producer,
		topic:    cfg.BookingsTopic,
		logger:   log,
	}, nil
}

func (p *KafkaBookingProducer) PublishBookingEvent(ctx context.Context, eventType string, booking *checkout.Booking) error {
	event := &BookingEvent{
		Type:       eventType,
		BookingID:  booking.ID,
		UserID:     booking.UserID,
		ConcertID:  booking.ConcertID,
		BookingRef: booking.BookingRef,
		TotalSeats: booking.TotalSeats,
		TotalPrice: booking.TotalPrice,
		Status:     string(booking.Status),
		OccurredAt: time.Now(),
	}
	payload, err := event.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal booking event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic:     p.topic,
		Key:       sarama.StringEncoder(event.PartitionKey()),
		Value:     sarama.ByteEncoder(payload),
		Timestamp: event.OccurredAt,
	}
	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to publish booking event: %w", err)
	}

	p.logger.Debug("📤 Booking event published",
		"type", eventType,
		"booking_id", booking.ID,
		"partition", partition,
		"offset", offset,
	)
	return nil
}

func (p *KafkaBookingProducer) HealthCheck(ctx context.Context) error {
	// SyncProducer holds broker connections; a closed producer is the
	// only failure mode observable without sending.
	if p.producer == nil {
		return fmt.Errorf("producer is not initialized")
	}
	return nil
}

func (p *KafkaBookingProducer) Close() error {
	return p.producer.Close()
}

// NoopProducer drops events. Used when Kafka is disabled so the checkout
// wiring stays identical across environments.
type NoopProducer struct{}

func NewNoopProducer() *NoopProducer {
	return &NoopProducer{}
}

func (p *NoopProducer) PublishBookingEvent(ctx context.Context, eventType string, booking *checkout.Booking) error {
	return nil
}

func (p *NoopProducer) HealthCheck(ctx context.Context) error { return nil }

func (p *NoopProducer) Close() error { return nil }
