package booking

import (
	"context"
	"time"

	"busify/internal/catalog"
	"busify/internal/seatmap"
	"busify/internal/shared/errs"
	"busify/internal/ticket"
	"busify/pkg/logger"

	"github.com/google/uuid"
)

// codeGenerationAttempts bounds the retry loop against ticket code
// collisions; at four random alphanumerics a second attempt is already rare.
const codeGenerationAttempts = 5

// FinalizeResult is everything a successful finalize produces.
type FinalizeResult struct {
	Booking *Booking       `json:"booking"`
	Ticket  *ticket.Ticket `json:"ticket"`
	QRCode  string         `json:"qrCode"`
}

// EventPublisher announces a confirmed booking. Publish failures are logged
// and never fail the booking.
type EventPublisher interface {
	BookingConfirmed(ctx context.Context, b *Booking, t *ticket.Ticket) error
}

// Holder is the finalize-window seat exclusivity mechanism. SeatHolder is
// the Redis implementation.
type Holder interface {
	Hold(ctx context.Context, busCode, date, timeOfDay, holdID string, seatNumbers []string) ([]string, error)
	Release(ctx context.Context, busCode, date, timeOfDay, holdID string, seatNumbers []string) (int, error)
}

type Service interface {
	Finalize(ctx context.Context, draft *Draft) (*FinalizeResult, error)
	CreateBooking(ctx context.Context, req CreateBookingRequest) (*FinalizeResult, error)
	GetBooking(ctx context.Context, id string) (*Booking, error)
	CancelBooking(ctx context.Context, id string) (*Booking, error)

	// Details implements ticket.BookingSource for the verifier.
	Details(ctx context.Context, bookingID uuid.UUID) (*ticket.BookingDetails, error)
}

type service struct {
	repo       Repository
	ticketRepo ticket.Repository
	holder     Holder
	fare       *FareCalculator
	catalog    catalog.Service
	generator  *seatmap.Generator
	publisher  EventPublisher
	log        *logger.Logger
}

func NewService(repo Repository, ticketRepo ticket.Repository, holder Holder, fare *FareCalculator, catalogService catalog.Service, generator *seatmap.Generator) *service {
	return &service{
		repo:       repo,
		ticketRepo: ticketRepo,
		holder:     holder,
		fare:       fare,
		catalog:    catalogService,
		generator:  generator,
		log:        logger.GetDefault(),
	}
}

func (s *service) SetEventPublisher(publisher EventPublisher) {
	s.publisher = publisher
}

// Finalize turns a completed draft into a persisted booking with its ticket.
// Any failure leaves the draft intact, except seats found taken by another
// booking, which are deselected so the user can pick again and retry.
func (s *service) Finalize(ctx context.Context, draft *Draft) (*FinalizeResult, error) {
	if draft == nil || !draft.Complete() {
		return nil, ErrIncompleteBooking
	}
	if draft.Bus == nil {
		return nil, errs.ValidationError{Field: "bus", Msg: "must be selected before finalize"}
	}
	if len(draft.Seats) == 0 {
		return nil, errs.ValidationError{Field: "seats", Msg: "at least one seat must be selected"}
	}

	total, err := s.fare.Total(draft)
	if err != nil {
		return nil, err
	}

	seatNumbers := draft.SeatNumbers()
	holdID := uuid.NewString()

	conflicts, err := s.holder.Hold(ctx, draft.Bus.Code, draft.Date, draft.Time, holdID, seatNumbers)
	if err != nil {
		if errs.IsConflict(err) {
			s.releaseConflictingSeats(ctx, draft, conflicts)
		}
		return nil, err
	}
	defer func() {
		if _, releaseErr := s.holder.Release(ctx, draft.Bus.Code, draft.Date, draft.Time, holdID, seatNumbers); releaseErr != nil {
			s.log.WithError(releaseErr).Warn("seat hold release failed")
		}
	}()

	code, err := s.uniqueTicketCode(ctx, draft.Origin, draft.Destination, draft.Date)
	if err != nil {
		return nil, err
	}
	qrPayload, err := ticket.Encode(code)
	if err != nil {
		return nil, err
	}

	totalPrice, _ := total.Round(2).Float64()
	now := time.Now()

	b := &Booking{
		UserID:          draft.UserID,
		OriginCity:      draft.Origin,
		DestinationCity: draft.Destination,
		BusCode:         draft.Bus.Code,
		DepartureDate:   draft.Date,
		DepartureTime:   draft.Time,
		TotalPrice:      totalPrice,
		BookingDate:     now,
		Status:          StatusConfirmed,
		TicketCode:      code,
	}
	if draft.Route != nil {
		b.RouteID = draft.Route.ID
	}
	for _, seat := range draft.Seats {
		b.Seats = append(b.Seats, BookingSeat{
			BusCode:       draft.Bus.Code,
			DepartureDate: draft.Date,
			DepartureTime: draft.Time,
			SeatNumber:    seat.Number,
			Price:         seat.Price,
		})
	}
	for _, item := range draft.Luggage {
		price, err := LuggagePrice(item)
		if err != nil {
			return nil, err
		}
		itemPrice, _ := price.Round(2).Float64()
		b.Luggage = append(b.Luggage, BookingLuggage{
			LuggageTypeID: item.Type.ID,
			Quantity:      item.Quantity,
			Weight:        item.Weight,
			Description:   item.Description,
			ImageURL:      draft.LuggageImageURL,
			Price:         itemPrice,
		})
	}

	t := &ticket.Ticket{
		PassengerName: draft.UserID,
		TextCode:      code,
		QRPayload:     qrPayload,
		IssuedDate:    now,
		Status:        ticket.StatusValid,
	}

	if err := s.repo.CreateBookingWithSeatCheck(ctx, b, t); err != nil {
		if errs.IsConflict(err) {
			s.deselectPersistedSeats(ctx, draft)
			s.log.LogSeatConflict(ctx, draft.Bus.Code, draft.Date, draft.Time, seatNumbers)
		}
		return nil, err
	}

	if s.publisher != nil {
		if err := s.publisher.BookingConfirmed(ctx, b, t); err != nil {
			s.log.WithError(err).Warn("booking confirmed event publish failed")
		}
	}

	s.log.LogBookingFinalized(ctx, b.ID.String(), code, totalPrice)
	return &FinalizeResult{Booking: b, Ticket: t, QRCode: qrPayload}, nil
}

// releaseConflictingSeats deselects the named seats and marks them booked in
// the session's seat map.
func (s *service) releaseConflictingSeats(ctx context.Context, draft *Draft, conflicts []string) {
	for _, number := range conflicts {
		for _, seat := range draft.Seats {
			if seat.Number == number {
				draft.DeselectSeat(seat.ID)
				seat.Status = seatmap.SeatBooked
				break
			}
		}
	}
	s.log.LogSeatConflict(ctx, draft.Bus.Code, draft.Date, draft.Time, conflicts)
}

// deselectPersistedSeats re-reads the departure's booked seats and drops the
// ones the draft lost the race for.
func (s *service) deselectPersistedSeats(ctx context.Context, draft *Draft) {
	booked, err := s.repo.BookedSeatNumbers(ctx, draft.Bus.Code, draft.Date, draft.Time)
	if err != nil {
		s.log.WithError(err).Warn("post-conflict seat refresh failed")
		return
	}
	for _, seat := range append([]*seatmap.Seat(nil), draft.Seats...) {
		if booked[seat.Number] {
			draft.DeselectSeat(seat.ID)
			seat.Status = seatmap.SeatBooked
		}
	}
}

func (s *service) uniqueTicketCode(ctx context.Context, origin, destination, date string) (string, error) {
	for attempt := 0; attempt < codeGenerationAttempts; attempt++ {
		code, err := ticket.Generate(origin, destination, date)
		if err != nil {
			return "", err
		}
		exists, err := s.ticketRepo.CodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", errs.ConflictError{Resource: "ticket code", Msg: "could not allocate a unique code"}
}

// CreateBooking services the single-POST booking API: it rebuilds a draft
// from the submitted selection, recomputes the fare server-side and runs the
// same finalize path the wizard uses. The submitted totalPrice is advisory.
func (s *service) CreateBooking(ctx context.Context, req CreateBookingRequest) (*FinalizeResult, error) {
	draft := NewDraft(req.UserID)
	draft.Date = req.DepartureDate
	draft.Time = req.DepartureTime
	draft.LuggageImageURL = req.LuggageImageURL

	route, err := s.catalog.GetRouteByID(ctx, req.RouteID)
	if err != nil {
		return nil, err
	}
	draft.Route = route
	if route.Origin != nil {
		draft.Origin = route.Origin.City
	}
	if route.Destination != nil {
		draft.Destination = route.Destination.City
	}

	bus, err := s.catalog.GetBusByCode(ctx, req.BusID)
	if err != nil {
		return nil, err
	}
	draft.Bus = bus

	availability := availabilityFunc(s.repo.BookedSeatNumbers)
	m, err := s.generator.Generate(ctx, bus, req.DepartureDate, req.DepartureTime, availability)
	if err != nil {
		return nil, err
	}
	for _, number := range req.Seats {
		seat, err := m.SeatByNumber(number)
		if err != nil {
			return nil, err
		}
		if err := draft.SelectSeat(seat); err != nil {
			return nil, err
		}
	}

	for _, l := range req.Luggage {
		luggageType, err := s.catalog.GetLuggageTypeByID(ctx, l.TypeID)
		if err != nil {
			return nil, err
		}
		if err := draft.AddLuggage(LuggageItem{
			Type:        luggageType,
			Quantity:    l.Quantity,
			Weight:      l.Weight,
			Description: l.Description,
		}); err != nil {
			return nil, err
		}
	}

	if req.TotalPrice > 0 {
		total, err := s.fare.Total(draft)
		if err != nil {
			return nil, err
		}
		if serverTotal, _ := total.Round(2).Float64(); serverTotal != req.TotalPrice {
			s.log.WithFields(map[string]interface{}{
				"submitted": req.TotalPrice,
				"computed":  serverTotal,
			}).Warn("submitted total differs from computed fare, using computed")
		}
	}

	return s.Finalize(ctx, draft)
}

func (s *service) GetBooking(ctx context.Context, id string) (*Booking, error) {
	bookingID, err := uuid.Parse(id)
	if err != nil {
		return nil, errs.ValidationError{Field: "booking id", Msg: "must be a UUID", Err: err}
	}
	return s.repo.GetBookingByID(ctx, bookingID)
}

// CancelBooking moves a booking to cancelled and voids its ticket, which
// releases the seats back to the departure's pool.
func (s *service) CancelBooking(ctx context.Context, id string) (*Booking, error) {
	bookingID, err := uuid.Parse(id)
	if err != nil {
		return nil, errs.ValidationError{Field: "booking id", Msg: "must be a UUID", Err: err}
	}

	if err := s.repo.CancelBooking(ctx, bookingID); err != nil {
		return nil, err
	}
	if err := s.ticketRepo.CancelForBooking(ctx, bookingID); err != nil {
		s.log.WithError(err).Warn("ticket cancel failed after booking cancel")
	}
	return s.repo.GetBookingByID(ctx, bookingID)
}

// Details assembles the booking snapshot shown with a verified ticket.
func (s *service) Details(ctx context.Context, bookingID uuid.UUID) (*ticket.BookingDetails, error) {
	b, err := s.repo.GetBookingByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	details := &ticket.BookingDetails{
		ID:              b.ID,
		OriginCity:      b.OriginCity,
		DestinationCity: b.DestinationCity,
		BusCode:         b.BusCode,
		DepartureDate:   b.DepartureDate,
		DepartureTime:   b.DepartureTime,
		TotalPrice:      b.TotalPrice,
		Status:          string(b.Status),
	}
	if s.catalog != nil && b.RouteID != uuid.Nil {
		if route, err := s.catalog.GetRouteByID(ctx, b.RouteID.String()); err == nil {
			details.RouteName = route.Name
		}
	}
	for _, seat := range b.Seats {
		details.Seats = append(details.Seats, ticket.BookedSeat{SeatNumber: seat.SeatNumber, Price: seat.Price})
	}
	for _, l := range b.Luggage {
		entry := ticket.BookedLuggage{Quantity: l.Quantity, Weight: l.Weight, Price: l.Price}
		if s.catalog != nil {
			if luggageType, err := s.catalog.GetLuggageTypeByID(ctx, l.LuggageTypeID.String()); err == nil {
				entry.TypeName = luggageType.Name
			}
		}
		details.Luggage = append(details.Luggage, entry)
	}
	return details, nil
}

// availabilityFunc adapts the repository lookup to seatmap.Availability.
type availabilityFunc func(ctx context.Context, busCode, date, timeOfDay string) (map[string]bool, error)

func (f availabilityFunc) BookedSeatNumbers(ctx context.Context, busCode, date, timeOfDay string) (map[string]bool, error) {
	return f(ctx, busCode, date, timeOfDay)
}

// NewAvailability exposes persisted bookings as a seat map availability
// source.
func NewAvailability(repo Repository) seatmap.Availability {
	return availabilityFunc(repo.BookedSeatNumbers)
}
