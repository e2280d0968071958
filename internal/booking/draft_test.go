package booking

import (
	"errors"
	"testing"

	"busify/internal/catalog"
	"busify/internal/seatmap"
)

func seat(id, number string, price float64) *seatmap.Seat {
	return &seatmap.Seat{ID: id, Number: number, Status: seatmap.SeatAvailable, Price: price}
}

func TestSelectSeatRejectsBooked(t *testing.T) {
	d := NewDraft("user-1")
	booked := seat("seat-03", "03", 30)
	booked.Status = seatmap.SeatBooked

	err := d.SelectSeat(booked)
	if !errors.Is(err, ErrSeatAlreadyBooked) {
		t.Fatalf("expected ErrSeatAlreadyBooked, got %v", err)
	}
	if len(d.Seats) != 0 {
		t.Fatalf("booked seat must not enter the draft")
	}
}

func TestSelectSeatIdempotent(t *testing.T) {
	d := NewDraft("user-1")
	s := seat("seat-05", "05", 45)

	if err := d.SelectSeat(s); err != nil {
		t.Fatalf("first select: %v", err)
	}
	if err := d.SelectSeat(s); err != nil {
		t.Fatalf("re-select must be a no-op, got %v", err)
	}
	if len(d.Seats) != 1 {
		t.Fatalf("expected 1 selected seat, got %d", len(d.Seats))
	}
	if s.Status != seatmap.SeatSelected {
		t.Fatalf("selected seat renders status %s, want %s", s.Status, seatmap.SeatSelected)
	}
}

func TestDeselectSeat(t *testing.T) {
	d := NewDraft("user-1")
	a := seat("seat-01", "01", 45)
	b := seat("seat-02", "02", 45)
	if err := d.SelectSeat(a); err != nil {
		t.Fatal(err)
	}
	if err := d.SelectSeat(b); err != nil {
		t.Fatal(err)
	}

	d.DeselectSeat("seat-01")
	if len(d.Seats) != 1 || d.Seats[0].ID != "seat-02" {
		t.Fatalf("expected only seat-02 to remain, got %v", d.SeatNumbers())
	}
	if a.Status != seatmap.SeatAvailable {
		t.Fatalf("deselected seat must return to available, got %s", a.Status)
	}

	// absent id is a no-op
	d.DeselectSeat("seat-99")
	if len(d.Seats) != 1 {
		t.Fatalf("deselecting an absent seat must not change the draft")
	}
}

func TestAddLuggageValidation(t *testing.T) {
	d := NewDraft("user-1")
	luggageType := &catalog.LuggageType{Name: "Medium Suitcase", AdditionalCost: 10}

	cases := []struct {
		name string
		item LuggageItem
		want error
	}{
		{"zero quantity", LuggageItem{Type: luggageType, Quantity: 0}, ErrInvalidQuantity},
		{"negative quantity", LuggageItem{Type: luggageType, Quantity: -2}, ErrInvalidQuantity},
		{"over max", LuggageItem{Type: luggageType, Quantity: 11}, ErrInvalidQuantity},
		{"missing type", LuggageItem{Quantity: 2}, ErrMissingType},
	}
	for _, tc := range cases {
		if err := d.AddLuggage(tc.item); !errors.Is(err, tc.want) {
			t.Fatalf("%s: got %v, want %v", tc.name, err, tc.want)
		}
	}
	if len(d.Luggage) != 0 {
		t.Fatalf("invalid luggage must not enter the draft")
	}

	if err := d.AddLuggage(LuggageItem{Type: luggageType, Quantity: 10}); err != nil {
		t.Fatalf("quantity 10 is within bounds, got %v", err)
	}
	if err := d.AddLuggage(LuggageItem{Type: luggageType, Quantity: 1}); err != nil {
		t.Fatalf("quantity 1 is within bounds, got %v", err)
	}
	if len(d.Luggage) != 2 {
		t.Fatalf("expected 2 luggage entries, got %d", len(d.Luggage))
	}
}

func TestRemoveLuggageAt(t *testing.T) {
	d := NewDraft("user-1")
	small := &catalog.LuggageType{Name: "Small Bag"}
	large := &catalog.LuggageType{Name: "Large Suitcase", AdditionalCost: 20}
	if err := d.AddLuggage(LuggageItem{Type: small, Quantity: 1}); err != nil {
		t.Fatal(err)
	}
	if err := d.AddLuggage(LuggageItem{Type: large, Quantity: 2}); err != nil {
		t.Fatal(err)
	}

	d.RemoveLuggageAt(0)
	if len(d.Luggage) != 1 || d.Luggage[0].Type.Name != "Large Suitcase" {
		t.Fatalf("expected the large suitcase to remain")
	}

	d.RemoveLuggageAt(5)
	d.RemoveLuggageAt(-1)
	if len(d.Luggage) != 1 {
		t.Fatalf("out-of-range removal must be a no-op")
	}
}

func TestResetClearsEverything(t *testing.T) {
	d := NewDraft("user-1")
	d.Origin = "New York"
	d.Destination = "Boston"
	d.Date = "2026-07-01"
	d.Time = "09:00"
	d.Bus = &catalog.Bus{Code: "BUS003"}
	d.LuggageImageURL = "https://img.example/l.png"
	if err := d.SelectSeat(seat("seat-01", "01", 45)); err != nil {
		t.Fatal(err)
	}

	d.Reset()

	if d.Origin != "" || d.Destination != "" || d.Date != "" || d.Time != "" ||
		d.Bus != nil || d.Route != nil || len(d.Seats) != 0 || len(d.Luggage) != 0 ||
		d.LuggageImageURL != "" {
		t.Fatalf("reset must clear every field: %+v", d)
	}
	if d.UserID != "user-1" {
		t.Fatalf("reset keeps the session user")
	}
}
