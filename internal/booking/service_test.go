package booking

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync"
	"testing"

	"busify/internal/catalog"
	"busify/internal/seatmap"
	"busify/internal/shared/errs"
	"busify/internal/ticket"

	"github.com/google/uuid"
)

// memoryRepo enforces seat exclusivity the way the SQL transaction does,
// keyed by bus+date+time+seat.
type memoryRepo struct {
	mu       sync.Mutex
	seats    map[string]bool
	bookings map[uuid.UUID]*Booking
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{seats: make(map[string]bool), bookings: make(map[uuid.UUID]*Booking)}
}

func departureKey(busCode, date, timeOfDay, seatNumber string) string {
	return fmt.Sprintf("%s|%s|%s|%s", busCode, date, timeOfDay, seatNumber)
}

func (r *memoryRepo) CreateBookingWithSeatCheck(_ context.Context, b *Booking, t *ticket.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range b.Seats {
		if r.seats[departureKey(s.BusCode, s.DepartureDate, s.DepartureTime, s.SeatNumber)] {
			return errs.ConflictError{Resource: "seats " + s.SeatNumber, Msg: "already booked for this departure"}
		}
	}
	b.ID = uuid.New()
	for _, s := range b.Seats {
		r.seats[departureKey(s.BusCode, s.DepartureDate, s.DepartureTime, s.SeatNumber)] = true
	}
	t.BookingID = b.ID
	r.bookings[b.ID] = b
	return nil
}

func (r *memoryRepo) GetBookingByID(_ context.Context, id uuid.UUID) (*Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, errs.NotFoundError{Resource: "booking"}
	}
	return b, nil
}

func (r *memoryRepo) CancelBooking(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return errs.NotFoundError{Resource: "booking"}
	}
	if b.Status != StatusPending && b.Status != StatusConfirmed {
		return errs.ConflictError{Resource: "booking", Msg: "cannot cancel, status is " + string(b.Status)}
	}
	b.Status = StatusCancelled
	// mirrors the repository: cancellation deletes the seat rows
	for _, s := range b.Seats {
		delete(r.seats, departureKey(s.BusCode, s.DepartureDate, s.DepartureTime, s.SeatNumber))
	}
	return nil
}

func (r *memoryRepo) BookedSeatNumbers(_ context.Context, busCode, date, timeOfDay string) (map[string]bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	booked := make(map[string]bool)
	for _, b := range r.bookings {
		if b.Status == StatusCancelled {
			continue
		}
		for _, s := range b.Seats {
			if s.BusCode == busCode && s.DepartureDate == date && s.DepartureTime == timeOfDay {
				booked[s.SeatNumber] = true
			}
		}
	}
	return booked, nil
}

type memoryTicketRepo struct {
	mu    sync.Mutex
	codes map[string]bool
}

func newMemoryTicketRepo() *memoryTicketRepo {
	return &memoryTicketRepo{codes: make(map[string]bool)}
}

func (r *memoryTicketRepo) GetByCode(context.Context, string) (*ticket.Ticket, error) {
	return nil, errs.NotFoundError{Resource: "ticket"}
}

func (r *memoryTicketRepo) CodeExists(_ context.Context, code string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.codes[code], nil
}

func (r *memoryTicketRepo) MarkUsed(context.Context, string) (*ticket.Ticket, error) {
	return nil, errs.NotFoundError{Resource: "ticket"}
}

func (r *memoryTicketRepo) CancelForBooking(context.Context, uuid.UUID) error {
	return nil
}

// passHolder grants every hold, like Redis with no contention.
type passHolder struct{}

func (passHolder) Hold(context.Context, string, string, string, string, []string) ([]string, error) {
	return nil, nil
}
func (passHolder) Release(context.Context, string, string, string, string, []string) (int, error) {
	return 0, nil
}

// contestedHolder reports the given seats as held by someone else.
type contestedHolder struct {
	contested []string
}

func (h contestedHolder) Hold(context.Context, string, string, string, string, []string) ([]string, error) {
	return h.contested, errs.ConflictError{Resource: "seats", Msg: "held by another booking in progress"}
}
func (contestedHolder) Release(context.Context, string, string, string, string, []string) (int, error) {
	return 0, nil
}

func newTestService(repo Repository, holder Holder) *service {
	return NewService(repo, newMemoryTicketRepo(), holder, NewFareCalculator(2.50), nil, nil)
}

func finalizeReadyDraft() *Draft {
	d := NewDraft("user-1")
	d.Origin = "New York"
	d.Destination = "Los Angeles"
	d.Date = "2026-06-15"
	d.Time = "09:00"
	d.Bus = &catalog.Bus{Code: "BUS002", Type: catalog.BusTypeLuxury, TotalSeats: 30}
	return d
}

func TestFinalizeIncompleteBooking(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo, passHolder{})

	d := finalizeReadyDraft()
	d.Origin = "" // unset origin
	if err := d.SelectSeat(seat("seat-01", "01", 75)); err != nil {
		t.Fatal(err)
	}
	before := len(d.Seats)

	_, err := svc.Finalize(context.Background(), d)
	if !errors.Is(err, ErrIncompleteBooking) {
		t.Fatalf("expected ErrIncompleteBooking, got %v", err)
	}
	if len(d.Seats) != before || d.Destination != "Los Angeles" || d.Date != "2026-06-15" {
		t.Fatalf("a failed finalize must leave the draft intact")
	}
	if len(repo.bookings) != 0 {
		t.Fatalf("no booking may be persisted on a guard failure")
	}
}

func TestFinalizePersistsBookingAndTicket(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo, passHolder{})

	d := finalizeReadyDraft()
	if err := d.SelectSeat(seat("seat-01", "01", 75)); err != nil {
		t.Fatal(err)
	}
	if err := d.SelectSeat(seat("seat-12", "12", 50)); err != nil {
		t.Fatal(err)
	}
	if err := d.AddLuggage(LuggageItem{Type: &catalog.LuggageType{ID: uuid.New(), Name: "Medium Suitcase", AdditionalCost: 10}, Quantity: 1}); err != nil {
		t.Fatal(err)
	}

	result, err := svc.Finalize(context.Background(), d)
	if err != nil {
		t.Fatalf("Finalize returned error: %v", err)
	}

	// 75 + 50 + 10 + 2.50
	if result.Booking.TotalPrice != 137.50 {
		t.Fatalf("total = %.2f, want 137.50", result.Booking.TotalPrice)
	}
	pattern := regexp.MustCompile(`^[A-Z]{3}-[A-Z]{3}-\d{4}-[A-Z0-9]{4}$`)
	if !pattern.MatchString(result.Booking.TicketCode) {
		t.Fatalf("ticket code %q does not match the format", result.Booking.TicketCode)
	}
	if result.Ticket.Status != ticket.StatusValid {
		t.Fatalf("issued ticket must be valid, got %s", result.Ticket.Status)
	}
	if result.QRCode == "" || result.Ticket.QRPayload != result.QRCode {
		t.Fatalf("finalize must attach the QR payload")
	}
	if len(result.Booking.Seats) != 2 || len(result.Booking.Luggage) != 1 {
		t.Fatalf("booking must echo seats and luggage")
	}

	decoded, err := ticket.Decode(result.QRCode)
	if err != nil {
		t.Fatalf("QR payload must decode: %v", err)
	}
	if decoded != result.Booking.TicketCode {
		t.Fatalf("QR round-trip: got %q, want %q", decoded, result.Booking.TicketCode)
	}
}

func TestFinalizeSeatConflictFromPersistence(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo, passHolder{})
	ctx := context.Background()

	winner := finalizeReadyDraft()
	if err := winner.SelectSeat(seat("seat-05", "05", 75)); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Finalize(ctx, winner); err != nil {
		t.Fatalf("winner finalize: %v", err)
	}

	loser := finalizeReadyDraft()
	contested := seat("seat-05", "05", 75)
	if err := loser.SelectSeat(contested); err != nil {
		t.Fatal(err)
	}
	if err := loser.SelectSeat(seat("seat-06", "06", 75)); err != nil {
		t.Fatal(err)
	}

	_, err := svc.Finalize(ctx, loser)
	if !errs.IsConflict(err) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	for _, s := range loser.Seats {
		if s.Number == "05" {
			t.Fatalf("contested seat must be deselected after a conflict")
		}
	}
	if contested.Status == seatmap.SeatSelected {
		t.Fatalf("contested seat must not render as selected")
	}
	if len(repo.bookings) != 1 {
		t.Fatalf("exactly one booking may win, got %d", len(repo.bookings))
	}

	// the loser keeps its uncontested seat and can retry
	if len(loser.Seats) != 1 || loser.Seats[0].Number != "06" {
		t.Fatalf("uncontested seats stay selected, got %v", loser.SeatNumbers())
	}
}

func TestFinalizeSeatConflictFromHold(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo, contestedHolder{contested: []string{"09"}})

	d := finalizeReadyDraft()
	if err := d.SelectSeat(seat("seat-09", "09", 75)); err != nil {
		t.Fatal(err)
	}

	_, err := svc.Finalize(context.Background(), d)
	if !errs.IsConflict(err) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if len(d.Seats) != 0 {
		t.Fatalf("the contested seat must be deselected")
	}
	if len(repo.bookings) != 0 {
		t.Fatalf("no booking may be persisted when the hold fails")
	}
}

func TestFinalizeConcurrentSingleWinner(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo, passHolder{})
	ctx := context.Background()

	const racers = 8
	results := make([]error, racers)
	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			d := finalizeReadyDraft()
			if err := d.SelectSeat(seat("seat-01", "01", 75)); err != nil {
				results[i] = err
				return
			}
			_, results[i] = svc.Finalize(ctx, d)
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range results {
		switch {
		case err == nil:
			winners++
		case errs.IsConflict(err):
		default:
			t.Fatalf("unexpected error kind: %v", err)
		}
	}
	if winners != 1 {
		t.Fatalf("exactly one finalize may win, got %d", winners)
	}
	if len(repo.bookings) != 1 {
		t.Fatalf("exactly one booking may exist, got %d", len(repo.bookings))
	}
}

func TestCancelBookingReleasesSeats(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo, passHolder{})
	ctx := context.Background()

	d := finalizeReadyDraft()
	if err := d.SelectSeat(seat("seat-03", "03", 75)); err != nil {
		t.Fatal(err)
	}
	result, err := svc.Finalize(ctx, d)
	if err != nil {
		t.Fatal(err)
	}

	cancelled, err := svc.CancelBooking(ctx, result.Booking.ID.String())
	if err != nil {
		t.Fatalf("CancelBooking: %v", err)
	}
	if cancelled.Status != StatusCancelled {
		t.Fatalf("status = %s, want cancelled", cancelled.Status)
	}

	booked, err := repo.BookedSeatNumbers(ctx, "BUS002", "2026-06-15", "09:00")
	if err != nil {
		t.Fatal(err)
	}
	if booked["03"] {
		t.Fatalf("cancelled bookings must release their seats")
	}

	// a second cancel conflicts
	if _, err := svc.CancelBooking(ctx, result.Booking.ID.String()); !errs.IsConflict(err) {
		t.Fatalf("expected ConflictError on double cancel, got %v", err)
	}
}

func TestCancelBookingThenRebookSameSeat(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo, passHolder{})
	ctx := context.Background()

	d := finalizeReadyDraft()
	if err := d.SelectSeat(seat("seat-03", "03", 75)); err != nil {
		t.Fatal(err)
	}
	first, err := svc.Finalize(ctx, d)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CancelBooking(ctx, first.Booking.ID.String()); err != nil {
		t.Fatalf("CancelBooking: %v", err)
	}

	// the freed seat must be bookable again, not just rendered available
	d2 := finalizeReadyDraft()
	if err := d2.SelectSeat(seat("seat-03", "03", 75)); err != nil {
		t.Fatal(err)
	}
	second, err := svc.Finalize(ctx, d2)
	if err != nil {
		t.Fatalf("rebooking a released seat: %v", err)
	}
	if second.Booking.ID == first.Booking.ID {
		t.Fatal("expected a new booking for the rebooked seat")
	}
}

func TestDetailsSnapshot(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo, passHolder{})
	ctx := context.Background()

	d := finalizeReadyDraft()
	if err := d.SelectSeat(seat("seat-01", "01", 75)); err != nil {
		t.Fatal(err)
	}
	result, err := svc.Finalize(ctx, d)
	if err != nil {
		t.Fatal(err)
	}

	details, err := svc.Details(ctx, result.Booking.ID)
	if err != nil {
		t.Fatalf("Details returned error: %v", err)
	}
	if details.OriginCity != "New York" || details.DestinationCity != "Los Angeles" {
		t.Fatalf("snapshot cities wrong: %+v", details)
	}
	if len(details.Seats) != 1 || details.Seats[0].SeatNumber != "01" {
		t.Fatalf("snapshot seats wrong: %+v", details.Seats)
	}
}
