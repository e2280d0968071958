package booking

import (
	"busify/internal/catalog"
	"busify/internal/seatmap"
	"busify/internal/shared/errs"
)

// Sentinel errors for draft mutation and finalize guards. Each one is a
// value of the shared taxonomy, so both errors.Is against the sentinel and
// the errs.IsX helpers match.
var (
	ErrSeatAlreadyBooked = errs.ConflictError{Resource: "seat", Msg: "already booked"}
	ErrInvalidQuantity   = errs.ValidationError{Field: "quantity", Msg: "must be between 1 and 10"}
	ErrMissingType       = errs.ValidationError{Field: "luggage type", Msg: "must be set"}
	ErrIncompleteBooking = errs.ValidationError{Field: "booking", Msg: "origin, destination, date and time must be set"}
)

// LuggageItem is one declared luggage entry on the draft.
type LuggageItem struct {
	Type        *catalog.LuggageType
	Quantity    int
	Weight      float64
	Description string
}

// Draft is the in-progress selection accumulated across the wizard steps.
// It is owned by exactly one wizard session and passed by handle; there is
// no ambient draft state anywhere in the package.
type Draft struct {
	UserID string

	Origin      string
	Destination string
	Date        string // YYYY-MM-DD
	Time        string // HH:MM

	Route *catalog.Route
	Bus   *catalog.Bus

	// Seats holds pointers into the session's seat map so selection is
	// reflected in the rendered statuses.
	Seats           []*seatmap.Seat
	Luggage         []LuggageItem
	LuggageImageURL string
}

func NewDraft(userID string) *Draft {
	return &Draft{UserID: userID}
}

// Reset clears every field of the draft in one step.
func (d *Draft) Reset() {
	userID := d.UserID
	*d = Draft{UserID: userID}
}

// SelectSeat adds a seat to the draft. Booked seats are rejected;
// re-selecting an already selected seat is a no-op.
func (d *Draft) SelectSeat(seat *seatmap.Seat) error {
	if seat == nil {
		return errs.ValidationError{Field: "seat", Msg: "must not be nil"}
	}
	if seat.Status == seatmap.SeatBooked {
		return ErrSeatAlreadyBooked
	}
	for _, s := range d.Seats {
		if s.ID == seat.ID {
			return nil
		}
	}
	seat.Status = seatmap.SeatSelected
	d.Seats = append(d.Seats, seat)
	return nil
}

// DeselectSeat removes a seat by id and releases it back to available.
// Absent ids are a no-op.
func (d *Draft) DeselectSeat(seatID string) {
	for i, s := range d.Seats {
		if s.ID == seatID {
			s.Status = seatmap.SeatAvailable
			d.Seats = append(d.Seats[:i], d.Seats[i+1:]...)
			return
		}
	}
}

// SeatNumbers returns the selected seat numbers in selection order.
func (d *Draft) SeatNumbers() []string {
	numbers := make([]string, 0, len(d.Seats))
	for _, s := range d.Seats {
		numbers = append(numbers, s.Number)
	}
	return numbers
}

// AddLuggage validates and appends one luggage entry.
func (d *Draft) AddLuggage(item LuggageItem) error {
	if err := ValidateLuggage(item); err != nil {
		return err
	}
	d.Luggage = append(d.Luggage, item)
	return nil
}

// RemoveLuggageAt removes the entry at index; out-of-range is a no-op.
func (d *Draft) RemoveLuggageAt(index int) {
	if index < 0 || index >= len(d.Luggage) {
		return
	}
	d.Luggage = append(d.Luggage[:index], d.Luggage[index+1:]...)
}

// Complete reports whether the journey fields required by finalize are set.
func (d *Draft) Complete() bool {
	return d.Origin != "" && d.Destination != "" && d.Date != "" && d.Time != ""
}
