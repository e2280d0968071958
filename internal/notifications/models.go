package notifications

import (
	"time"

	"github.com/google/uuid"
)

// EventType tags the payload on the wire.
type EventType string

const (
	EventBookingConfirmed EventType = "booking.confirmed"
	EventTicketScanned    EventType = "ticket.scanned"
)

// BookingEvent is the Kafka payload for both event types. Messages are
// partitioned by BookingID so every event of one booking stays ordered.
type BookingEvent struct {
	ID              uuid.UUID `json:"id"`
	Type            EventType `json:"type"`
	BookingID       uuid.UUID `json:"bookingId"`
	UserID          string    `json:"userId,omitempty"`
	TicketCode      string    `json:"ticketCode"`
	OriginCity      string    `json:"originCity,omitempty"`
	DestinationCity string    `json:"destinationCity,omitempty"`
	BusCode         string    `json:"busCode,omitempty"`
	DepartureDate   string    `json:"departureDate,omitempty"`
	DepartureTime   string    `json:"departureTime,omitempty"`
	TotalPrice      float64   `json:"totalPrice,omitempty"`
	OccurredAt      time.Time `json:"occurredAt"`
}

func (e *BookingEvent) PartitionKey() string {
	if e.BookingID != uuid.Nil {
		return e.BookingID.String()
	}
	return e.TicketCode
}
