package ticket

import (
	"context"

	"busify/pkg/logger"

	"github.com/google/uuid"
)

// BookedSeat and BookedLuggage are the slices of the booking snapshot shown
// during verification.
type BookedSeat struct {
	SeatNumber string  `json:"seatNumber"`
	Price      float64 `json:"price"`
}

type BookedLuggage struct {
	TypeName string  `json:"typeName"`
	Quantity int     `json:"quantity"`
	Weight   float64 `json:"weight,omitempty"`
	Price    float64 `json:"price"`
}

// BookingDetails is the booking snapshot joined onto a verified ticket.
type BookingDetails struct {
	ID              uuid.UUID       `json:"id"`
	RouteName       string          `json:"routeName,omitempty"`
	OriginCity      string          `json:"originCity"`
	DestinationCity string          `json:"destinationCity"`
	BusCode         string          `json:"busCode"`
	DepartureDate   string          `json:"departureDate"`
	DepartureTime   string          `json:"departureTime"`
	TotalPrice      float64         `json:"totalPrice"`
	Status          string          `json:"status"`
	Seats           []BookedSeat    `json:"seats"`
	Luggage         []BookedLuggage `json:"luggage"`
}

// BookingSource resolves the booking a ticket belongs to. The booking
// package provides the implementation.
type BookingSource interface {
	Details(ctx context.Context, bookingID uuid.UUID) (*BookingDetails, error)
}

// ScanPublisher announces a boarding scan. Publish failures never fail the
// scan itself.
type ScanPublisher interface {
	TicketScanned(ctx context.Context, t *Ticket) error
}

// VerificationResult is a ticket joined with its booking snapshot.
type VerificationResult struct {
	Ticket  *Ticket         `json:"ticket"`
	Status  Status          `json:"status"`
	Booking *BookingDetails `json:"booking,omitempty"`
}

type Service interface {
	Verify(ctx context.Context, code string) (*VerificationResult, error)
	Scan(ctx context.Context, code string) (*VerificationResult, error)
}

type service struct {
	repo      Repository
	bookings  BookingSource
	publisher ScanPublisher
	log       *logger.Logger
}

func NewService(repo Repository, bookings BookingSource) *service {
	return &service{repo: repo, bookings: bookings, log: logger.GetDefault()}
}

func (s *service) SetScanPublisher(publisher ScanPublisher) {
	s.publisher = publisher
}

// Verify looks a code up and reports the persisted status with the booking
// snapshot. The status comes solely from the stored row.
func (s *service) Verify(ctx context.Context, code string) (*VerificationResult, error) {
	t, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	result := &VerificationResult{Ticket: t, Status: t.Status}
	if s.bookings != nil {
		details, err := s.bookings.Details(ctx, t.BookingID)
		if err != nil {
			return nil, err
		}
		result.Booking = details
	}

	s.log.LogTicketScan(ctx, code, "verified:"+string(t.Status))
	return result, nil
}

// Scan consumes a valid ticket at boarding. The compare-and-set in the
// repository guarantees a code boards at most once.
func (s *service) Scan(ctx context.Context, code string) (*VerificationResult, error) {
	t, err := s.repo.MarkUsed(ctx, code)
	if err != nil {
		if t != nil {
			s.log.LogTicketScan(ctx, code, "rejected:"+string(t.Status))
		}
		return nil, err
	}

	result := &VerificationResult{Ticket: t, Status: t.Status}
	if s.bookings != nil {
		details, err := s.bookings.Details(ctx, t.BookingID)
		if err == nil {
			result.Booking = details
		}
	}

	if s.publisher != nil {
		if err := s.publisher.TicketScanned(ctx, t); err != nil {
			s.log.WithError(err).Warn("ticket scanned event publish failed")
		}
	}

	s.log.LogTicketScan(ctx, code, "boarded")
	return result, nil
}
