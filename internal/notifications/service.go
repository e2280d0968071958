package notifications

import (
	"context"
	"time"

	"busify/internal/booking"
	"busify/internal/shared/config"
	"busify/internal/ticket"
	"busify/pkg/logger"

	"github.com/google/uuid"
)

// Service owns the Kafka producer and consumer lifecycle and implements the
// publisher interfaces the booking and ticket services depend on. When
// Kafka is disabled every publish is a logged no-op.
type Service struct {
	cfg      config.KafkaConfig
	producer Producer
	consumer *Consumer
	log      *logger.Logger
}

func NewService(cfg config.KafkaConfig, emailCfg config.EmailConfig) (*Service, error) {
	s := &Service{cfg: cfg, log: logger.GetDefault()}
	if !cfg.Enabled {
		s.log.Info("kafka disabled, booking events will be logged only")
		return s, nil
	}

	producer, err := NewKafkaProducer(cfg)
	if err != nil {
		return nil, err
	}
	s.producer = producer

	consumer, err := NewConsumer(cfg, NewEmailSender(emailCfg))
	if err != nil {
		producer.Close()
		return nil, err
	}
	s.consumer = consumer
	return s, nil
}

func (s *Service) Start(ctx context.Context) {
	if s.consumer != nil {
		s.consumer.Start(ctx)
	}
}

func (s *Service) Stop() {
	if s.consumer != nil {
		if err := s.consumer.Stop(); err != nil {
			s.log.WithError(err).Warn("consumer shutdown error")
		}
	}
	if s.producer != nil {
		if err := s.producer.Close(); err != nil {
			s.log.WithError(err).Warn("producer shutdown error")
		}
	}
}

// BookingConfirmed implements booking.EventPublisher.
func (s *Service) BookingConfirmed(ctx context.Context, b *booking.Booking, t *ticket.Ticket) error {
	event := &BookingEvent{
		ID:              uuid.New(),
		Type:            EventBookingConfirmed,
		BookingID:       b.ID,
		UserID:          b.UserID,
		TicketCode:      t.TextCode,
		OriginCity:      b.OriginCity,
		DestinationCity: b.DestinationCity,
		BusCode:         b.BusCode,
		DepartureDate:   b.DepartureDate,
		DepartureTime:   b.DepartureTime,
		TotalPrice:      b.TotalPrice,
		OccurredAt:      time.Now(),
	}
	return s.publish(ctx, s.cfg.BookingTopic, event)
}

// TicketScanned implements ticket.ScanPublisher.
func (s *Service) TicketScanned(ctx context.Context, t *ticket.Ticket) error {
	event := &BookingEvent{
		ID:         uuid.New(),
		Type:       EventTicketScanned,
		BookingID:  t.BookingID,
		TicketCode: t.TextCode,
		OccurredAt: time.Now(),
	}
	return s.publish(ctx, s.cfg.TicketTopic, event)
}

func (s *Service) publish(ctx context.Context, topic string, event *BookingEvent) error {
	if s.producer == nil {
		s.log.WithFields(map[string]interface{}{
			"type":        event.Type,
			"ticket_code": event.TicketCode,
		}).Info("event (kafka disabled)")
		return nil
	}
	return s.producer.Publish(ctx, topic, event)
}
