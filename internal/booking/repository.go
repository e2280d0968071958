package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"busify/internal/shared/errs"
	"busify/internal/ticket"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	// CreateBookingWithSeatCheck inserts a booking, its seats, its luggage
	// and its ticket in one transaction, after locking and re-validating
	// the departure's existing seat rows.
	CreateBookingWithSeatCheck(ctx context.Context, b *Booking, t *ticket.Ticket) error
	GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	BookedSeatNumbers(ctx context.Context, busCode, date, timeOfDay string) (map[string]bool, error)
	// CancelBooking moves the booking to cancelled and deletes its seat
	// rows so the departure can be rebooked. Already-cancelled or
	// completed bookings leave zero rows affected.
	CancelBooking(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *repository {
	return &repository{db: db}
}

func (r *repository) CreateBookingWithSeatCheck(ctx context.Context, b *Booking, t *ticket.Ticket) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seatNumbers := make([]string, 0, len(b.Seats))
		for _, s := range b.Seats {
			seatNumbers = append(seatNumbers, s.SeatNumber)
		}

		// Lock this departure's rows for the requested seats, then
		// re-validate. The Redis hold narrows the race; this closes it.
		var taken []string
		err := tx.Table("booking_seats").
			Select("seat_number").
			Where("bus_code = ? AND departure_date = ? AND departure_time = ? AND seat_number IN ?",
				b.BusCode, b.DepartureDate, b.DepartureTime, seatNumbers).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Pluck("seat_number", &taken).Error
		if err != nil {
			return errs.UpstreamError{Op: "seat lock", Err: err}
		}
		if len(taken) > 0 {
			return errs.ConflictError{
				Resource: "seats " + strings.Join(taken, ", "),
				Msg:      "already booked for this departure",
			}
		}

		if err := tx.Create(b).Error; err != nil {
			if isUniqueViolation(err) {
				return errs.ConflictError{Resource: "seats", Msg: "already booked for this departure", Err: err}
			}
			return errs.UpstreamError{Op: "booking insert", Err: err}
		}

		t.BookingID = b.ID
		if err := tx.Create(t).Error; err != nil {
			if isUniqueViolation(err) {
				return errs.ConflictError{Resource: "ticket code", Msg: "already issued", Err: err}
			}
			return errs.UpstreamError{Op: "ticket insert", Err: err}
		}

		return nil
	})
}

func (r *repository) GetBookingByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var b Booking
	err := r.db.WithContext(ctx).
		Preload("Seats").
		Preload("Luggage").
		First(&b, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFoundError{Resource: "booking"}
		}
		return nil, errs.UpstreamError{Op: "booking lookup", Err: err}
	}
	return &b, nil
}

// errNotCancellable signals the CAS matched zero rows; the caller looks up
// the booking to report its actual status.
var errNotCancellable = errors.New("booking not cancellable")

func (r *repository) CancelBooking(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Booking{}).
			Where("id = ? AND status IN ?", id, []Status{StatusPending, StatusConfirmed}).
			Update("status", StatusCancelled)
		if result.Error != nil {
			return errs.UpstreamError{Op: "booking cancel", Err: result.Error}
		}
		if result.RowsAffected == 0 {
			return errNotCancellable
		}

		// The seat rows must go with the booking: the finalize-time seat
		// check and the composite unique index both read booking_seats
		// without a status filter, so a surviving row would keep the seat
		// unbookable forever.
		if err := tx.Where("booking_id = ?", id).Delete(&BookingSeat{}).Error; err != nil {
			return errs.UpstreamError{Op: "seat release", Err: err}
		}
		return nil
	})
	if errors.Is(err, errNotCancellable) {
		b, lookupErr := r.GetBookingByID(ctx, id)
		if lookupErr != nil {
			return lookupErr
		}
		return errs.ConflictError{Resource: "booking", Msg: "cannot cancel, status is " + string(b.Status)}
	}
	return err
}

// BookedSeatNumbers feeds the seat map generator. Cancellation deletes the
// seat rows, so a bare booking_seats read is the full truth and matches what
// the finalize-time seat check sees.
func (r *repository) BookedSeatNumbers(ctx context.Context, busCode, date, timeOfDay string) (map[string]bool, error) {
	var numbers []string
	err := r.db.WithContext(ctx).
		Table("booking_seats").
		Select("seat_number").
		Where("bus_code = ? AND departure_date = ? AND departure_time = ?",
			busCode, date, timeOfDay).
		Pluck("seat_number", &numbers).Error
	if err != nil {
		return nil, errs.UpstreamError{Op: "booked seats lookup", Err: err}
	}

	booked := make(map[string]bool, len(numbers))
	for _, n := range numbers {
		booked[n] = true
	}
	return booked, nil
}

// isUniqueViolation matches the Postgres duplicate-key error without
// importing the driver's error types.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := fmt.Sprintf("%v", err)
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "SQLSTATE 23505")
}
