package notifications

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"busify/internal/shared/config"
	"busify/pkg/logger"
)

// EmailSender delivers a booking confirmation to the traveler.
type EmailSender interface {
	SendBookingConfirmation(ctx context.Context, event *BookingEvent) error
}

type smtpSender struct {
	cfg config.EmailConfig
	log *logger.Logger
}

// NewEmailSender returns an SMTP sender, or a log-only sender when SMTP is
// not configured (local development).
func NewEmailSender(cfg config.EmailConfig) EmailSender {
	log := logger.GetDefault()
	if cfg.SMTPHost == "" {
		log.Info("smtp not configured, confirmation emails will be logged only")
		return &logSender{log: log}
	}
	return &smtpSender{cfg: cfg, log: log}
}

func (s *smtpSender) SendBookingConfirmation(ctx context.Context, event *BookingEvent) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	to := event.UserID
	if !strings.Contains(to, "@") {
		s.log.WithFields(map[string]interface{}{"booking_id": event.BookingID}).
			Info("no email address on booking, skipping confirmation")
		return nil
	}

	subject := fmt.Sprintf("Your bus ticket %s", event.TicketCode)
	body := s.buildBody(event)

	message := strings.Join([]string{
		"From: " + s.cfg.FromEmail,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := smtp.SendMail(addr, auth, s.cfg.FromEmail, []string{to}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send confirmation email: %w", err)
	}

	s.log.WithFields(map[string]interface{}{
		"booking_id":  event.BookingID,
		"ticket_code": event.TicketCode,
	}).Info("confirmation email sent")
	return nil
}

func (s *smtpSender) buildBody(event *BookingEvent) string {
	return fmt.Sprintf(
		"Your booking is confirmed.\n\n"+
			"Ticket code: %s\n"+
			"Route: %s to %s\n"+
			"Bus: %s\n"+
			"Departure: %s %s\n"+
			"Total: $%.2f\n\n"+
			"Show the ticket code or its QR image at boarding.\n",
		event.TicketCode, event.OriginCity, event.DestinationCity,
		event.BusCode, event.DepartureDate, event.DepartureTime, event.TotalPrice)
}

// logSender stands in for SMTP in environments without mail credentials.
type logSender struct {
	log *logger.Logger
}

func (s *logSender) SendBookingConfirmation(_ context.Context, event *BookingEvent) error {
	s.log.WithFields(map[string]interface{}{
		"booking_id":  event.BookingID,
		"ticket_code": event.TicketCode,
		"origin":      event.OriginCity,
		"destination": event.DestinationCity,
	}).Info("confirmation email (log only)")
	return nil
}
