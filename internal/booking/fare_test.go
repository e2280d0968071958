package booking

import (
	"testing"

	"busify/internal/catalog"
	"busify/internal/seatmap"
)

func TestFareTotal(t *testing.T) {
	calc := NewFareCalculator(2.50)

	d := NewDraft("user-1")
	if err := d.SelectSeat(seat("seat-01", "01", 45)); err != nil {
		t.Fatal(err)
	}
	if err := d.SelectSeat(seat("seat-11", "11", 30)); err != nil {
		t.Fatal(err)
	}
	medium := &catalog.LuggageType{Name: "Medium Suitcase", AdditionalCost: 10}
	if err := d.AddLuggage(LuggageItem{Type: medium, Quantity: 2}); err != nil {
		t.Fatal(err)
	}

	total, err := calc.Total(d)
	if err != nil {
		t.Fatalf("Total returned error: %v", err)
	}
	// 45 + 30 + 2*10 + 2.50
	if got := total.StringFixed(2); got != "97.50" {
		t.Fatalf("total = %s, want 97.50", got)
	}
}

func TestFareTotalOrderIndependent(t *testing.T) {
	calc := NewFareCalculator(2.50)
	small := &catalog.LuggageType{Name: "Small Bag", AdditionalCost: 0}
	large := &catalog.LuggageType{Name: "Large Suitcase", AdditionalCost: 20}

	build := func(seats []*seatmap.Seat, luggage []LuggageItem) *Draft {
		d := NewDraft("user-1")
		for _, s := range seats {
			if err := d.SelectSeat(s); err != nil {
				t.Fatal(err)
			}
		}
		for _, l := range luggage {
			if err := d.AddLuggage(l); err != nil {
				t.Fatal(err)
			}
		}
		return d
	}

	forward := build(
		[]*seatmap.Seat{seat("seat-01", "01", 75), seat("seat-12", "12", 50), seat("seat-13", "13", 50)},
		[]LuggageItem{{Type: small, Quantity: 1}, {Type: large, Quantity: 3}},
	)
	reversed := build(
		[]*seatmap.Seat{seat("seat-13", "13", 50), seat("seat-12", "12", 50), seat("seat-01", "01", 75)},
		[]LuggageItem{{Type: large, Quantity: 3}, {Type: small, Quantity: 1}},
	)

	a, err := calc.Total(forward)
	if err != nil {
		t.Fatal(err)
	}
	b, err := calc.Total(reversed)
	if err != nil {
		t.Fatal(err)
	}
	if !a.Equal(b) {
		t.Fatalf("selection order changed the total: %s vs %s", a, b)
	}
}

func TestFareTotalNoDecimalDrift(t *testing.T) {
	calc := NewFareCalculator(2.50)
	cheap := &catalog.LuggageType{Name: "Odd", AdditionalCost: 0.10}

	d := NewDraft("user-1")
	for i := 0; i < 10; i++ {
		if err := d.AddLuggage(LuggageItem{Type: cheap, Quantity: 1}); err != nil {
			t.Fatal(err)
		}
	}

	total, err := calc.Total(d)
	if err != nil {
		t.Fatal(err)
	}
	// 10 * 0.10 + 2.50 exactly, no float drift
	if got := total.StringFixed(2); got != "3.50" {
		t.Fatalf("total = %s, want 3.50", got)
	}
}

func TestFareTotalRejectsInvalidLuggage(t *testing.T) {
	calc := NewFareCalculator(2.50)
	d := NewDraft("user-1")
	d.Luggage = append(d.Luggage, LuggageItem{Quantity: 2}) // bypasses AddLuggage

	if _, err := calc.Total(d); err == nil {
		t.Fatalf("expected validation error for missing luggage type")
	}
}

func TestLuggagePrice(t *testing.T) {
	large := &catalog.LuggageType{Name: "Large Suitcase", AdditionalCost: 20}
	price, err := LuggagePrice(LuggageItem{Type: large, Quantity: 3})
	if err != nil {
		t.Fatal(err)
	}
	if got := price.StringFixed(2); got != "60.00" {
		t.Fatalf("price = %s, want 60.00", got)
	}
}
