package notifications

import (
	"context"
	"fmt"
	"sync"
	"time"

	"concertly/internal/checkout"
	"concertly/internal/shared/config"
	"concertly/pkg/logger"

	"github.com/IBM/sarama"
)

// Notifier delivers a user-facing notification for a booking event.
type Notifier interface {
	Notify(ctx context.Context, event *BookingEvent) error
}

// LogNotifier writes notifications to the application log. It stands in
// for an email or push channel in environments without one configured.
type LogNotifier struct {
	logger *logger.Logger
}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{logger: logger.GetDefault()}
}

func (n *LogNotifier) Notify(ctx context.Context, event *BookingEvent) error {
	switch event.Type {
	case checkout.EventBookingCreated:
		n.logger.Info("📧 Booking received, awaiting payment",
			"user_id", event.UserID, "booking_ref", event.BookingRef)
	case checkout.EventBookingConfirmed:
		n.logger.Info("📧 Booking confirmed, tickets are ready",
			"user_id", event.UserID, "booking_ref", event.BookingRef, "total", event.TotalPrice)
	case checkout.EventBookingCancelled:
		n.logger.Info("📧 Booking cancelled, seats released",
			"user_id", event.UserID, "booking_ref", event.BookingRef)
	default:
		n.logger.Warn("⚠️ Unknown booking event type", "type", event.Type)
	}
	return nil
}

// BookingEventConsumer consumes the booking events topic and fans each
// event out to the configured notifier.
type BookingEventConsumer struct {
	consumerGroup sarama.ConsumerGroup
	topics        []string
	notifier      Notifier
	logger        *logger.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewBookingEventConsumer(cfg config.KafkaConfig, notifier Notifier) (*BookingEventConsumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Consumer.Group.Session.Timeout = 30 * time.Second
	saramaConfig.Consumer.Group.Heartbeat.Interval = 3 * time.Second
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	saramaConfig.Consumer.Offsets.AutoCommit.Enable = true
	saramaConfig.Consumer.Return.Errors = true

	group, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.ConsumerGroup, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	return &BookingEventConsumer{
		consumerGroup: group,
		topics:        []string{cfg.BookingsTopic},
		notifier:      notifier,
		logger:        logger.GetDefault(),
	}, nil
}

// Start runs the consume loop until Stop is called.
func (c *BookingEventConsumer) Start(ctx context.Context) {
	ctx, c.cancel = context.WithCancel(ctx)
	c.logger.Info("📥 Booking event consumer starting", "topics", c.topics)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		handler := &eventHandler{notifier: c.notifier, logger: c.logger}
		for {
			if err := c.consumerGroup.Consume(ctx, c.topics, handler); err != nil {
				c.logger.WithError(err).Error("❌ Consumer group error")
			}
			if ctx.Err() != nil {
				return
			}
			// Consume returns on rebalance; loop to rejoin.
		}
	}()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		for err := range c.consumerGroup.Errors() {
			c.logger.WithError(err).Error("❌ Kafka consumer error")
		}
	}()
}

func (c *BookingEventConsumer) Stop() error {
	if c.cancel != nil {
		c.cancel()
	}
	err := c.consumerGroup.Close()
	c.wg.Wait()
	c.logger.Info("📥 Booking event consumer stopped")
	return err
}

type eventHandler struct {
	notifier Notifier
	logger   *logger.Logger
}

func (h *eventHandler) Setup(sarama.ConsumerGroupSession) error { return nil }

func (h *eventHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *eventHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for message := range claim.Messages() {
		event, err := BookingEventFromJSON(message.Value)
		if err != nil {
			h.logger.WithError(err).Warn("⚠️ Dropping malformed booking event",
				"topic", message.Topic, "offset", message.Offset)
			session.MarkMessage(message, "")
			continue
		}
		if err := h.notifier.Notify(session.Context(), event); err != nil {
			h.logger.WithError(err).Error("❌ Failed to deliver notification",
				"type", event.Type, "booking_id", event.BookingID)
		}
		session.MarkMessage(message, "")
	}
	return nil
}
