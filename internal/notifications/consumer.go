package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"busify/internal/shared/config"
	"busify/pkg/logger"

	"github.com/IBM/sarama"
)

// Consumer reads booking events off Kafka and triggers confirmation emails.
type Consumer struct {
	group  sarama.ConsumerGroup
	topics []string
	sender EmailSender
	log    *logger.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewConsumer(cfg config.KafkaConfig, sender EmailSender) (*Consumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	saramaConfig.Consumer.Return.Errors = true

	group, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.ConsumerGroup, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	return &Consumer{
		group:  group,
		topics: []string{cfg.BookingTopic},
		sender: sender,
		log:    logger.GetDefault(),
	}, nil
}

// Start runs the consume loop until Stop is called. Rebalances re-enter
// Consume; any other error backs off briefly and retries.
func (c *Consumer) Start(ctx context.Context) {
	ctx, c.cancel = context.WithCancel(ctx)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		handler := &eventHandler{sender: c.sender, log: c.log}
		for {
			if err := c.group.Consume(ctx, c.topics, handler); err != nil {
				c.log.WithError(err).Error("consumer group error")
				select {
				case <-ctx.Done():
					return
				case <-time.After(time.Second):
				}
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		for err := range c.group.Errors() {
			c.log.WithError(err).Error("consumer error")
		}
	}()
}

func (c *Consumer) Stop() error {
	if c.cancel != nil {
		c.cancel()
	}
	err := c.group.Close()
	c.wg.Wait()
	return err
}

type eventHandler struct {
	sender EmailSender
	log    *logger.Logger
}

func (h *eventHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *eventHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *eventHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				return nil
			}
			if err := h.handle(session.Context(), message); err != nil {
				h.log.WithError(err).Error("event handling failed")
			}
			// Mark regardless: a poisoned message must not wedge the
			// partition, and email delivery is best effort.
			session.MarkMessage(message, "")
		case <-session.Context().Done():
			return nil
		}
	}
}

func (h *eventHandler) handle(ctx context.Context, message *sarama.ConsumerMessage) error {
	var event BookingEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		return fmt.Errorf("failed to unmarshal event at offset %d: %w", message.Offset, err)
	}

	switch event.Type {
	case EventBookingConfirmed:
		return h.sender.SendBookingConfirmation(ctx, &event)
	default:
		h.log.WithFields(map[string]interface{}{"type": event.Type}).Debug("ignoring event")
		return nil
	}
}
