package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"busify/internal/shared/config"
	"busify/pkg/logger"

	"github.com/IBM/sarama"
)

// Producer publishes booking lifecycle events.
type Producer interface {
	Publish(ctx context.Context, topic string, event *BookingEvent) error
	Close() error
}

type kafkaProducer struct {
	producer sarama.SyncProducer
	log      *logger.Logger
}

// NewKafkaProducer builds a sync producer with idempotent writes and hash
// partitioning by booking id.
func NewKafkaProducer(cfg config.KafkaConfig) (Producer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 3
	saramaConfig.Producer.Retry.Backoff = 100 * time.Millisecond
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Compression = sarama.CompressionSnappy
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner
	saramaConfig.Producer.Idempotent = true
	saramaConfig.Net.MaxOpenRequests = 1

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	return &kafkaProducer{producer: producer, log: logger.GetDefault()}, nil
}

func (p *kafkaProducer) Publish(ctx context.Context, topic string, event *BookingEvent) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(event.PartitionKey()),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(event.Type)},
		},
		Timestamp: event.OccurredAt,
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", event.Type, err)
	}

	p.log.WithFields(map[string]interface{}{
		"topic":     topic,
		"type":      event.Type,
		"partition": partition,
		"offset":    offset,
	}).Debug("event published")
	return nil
}

func (p *kafkaProducer) Close() error {
	return p.producer.Close()
}
