package seatmap

import (
	"context"
	"fmt"

	"busify/internal/catalog"
	"busify/internal/shared/config"
	"busify/internal/shared/errs"
)

// Availability reports which seat numbers are already booked for one
// departure (bus + date + time). Implementations read persisted bookings;
// the generator itself is pure given this source.
type Availability interface {
	BookedSeatNumbers(ctx context.Context, busCode, date, timeOfDay string) (map[string]bool, error)
}

// emptyAvailability renders every seat available. Used for layout previews
// before a departure is chosen.
type emptyAvailability struct{}

func (emptyAvailability) BookedSeatNumbers(context.Context, string, string, string) (map[string]bool, error) {
	return map[string]bool{}, nil
}

// NoAvailability is an Availability with no booked seats.
var NoAvailability Availability = emptyAvailability{}

// Generator builds seat maps from a bus descriptor and the fare tiers.
type Generator struct {
	fare config.FareConfig
}

func NewGenerator(fare config.FareConfig) *Generator {
	return &Generator{fare: fare}
}

// SeatsPerRow returns the row width for a bus type: standard runs 2+2,
// luxury runs 1+1+1.
func SeatsPerRow(busType catalog.BusType) int {
	if busType == catalog.BusTypeLuxury {
		return 3
	}
	return 4
}

// aisleAfter returns the in-row positions followed by an aisle.
func aisleAfter(busType catalog.BusType) []int {
	if busType == catalog.BusTypeLuxury {
		return []int{1, 2}
	}
	return []int{2}
}

// Generate builds the seat map for a bus and departure. Seat numbers are
// contiguous ordinals from 01 to totalSeats; the first PremiumSeatCount
// ordinals are priced at the premium tier for the bus type.
func (g *Generator) Generate(ctx context.Context, bus *catalog.Bus, date, timeOfDay string, availability Availability) (*Map, error) {
	if bus == nil {
		return nil, errs.ValidationError{Field: "bus", Msg: "must not be nil"}
	}
	if bus.TotalSeats <= 0 {
		return nil, errs.ValidationError{Field: "total seats", Msg: "must be positive"}
	}
	if availability == nil {
		availability = NoAvailability
	}

	booked, err := availability.BookedSeatNumbers(ctx, bus.Code, date, timeOfDay)
	if err != nil {
		return nil, errs.UpstreamError{Op: "seat availability lookup", Err: err}
	}

	perRow := SeatsPerRow(bus.Type)
	rowCount := (bus.TotalSeats + perRow - 1) / perRow

	m := &Map{
		BusCode:     bus.Code,
		BusType:     string(bus.Type),
		TotalSeats:  bus.TotalSeats,
		SeatsPerRow: perRow,
		Rows:        make([]Row, 0, rowCount),
		Seats:       make([]Seat, 0, bus.TotalSeats),
	}

	for ordinal := 1; ordinal <= bus.TotalSeats; ordinal++ {
		number := fmt.Sprintf("%02d", ordinal)
		seat := Seat{
			ID:       "seat-" + number,
			Number:   number,
			Status:   SeatAvailable,
			Price:    g.priceFor(bus.Type, ordinal),
			Row:      (ordinal-1)/perRow + 1,
			Position: (ordinal-1)%perRow + 1,
		}
		if booked[number] {
			seat.Status = SeatBooked
		}
		m.Seats = append(m.Seats, seat)
	}

	for rowNum := 1; rowNum <= rowCount; rowNum++ {
		start := (rowNum - 1) * perRow
		end := start + perRow
		if end > bus.TotalSeats {
			end = bus.TotalSeats
		}
		m.Rows = append(m.Rows, Row{
			Number:     rowNum,
			Seats:      m.Seats[start:end],
			AisleAfter: aisleAfter(bus.Type),
		})
	}

	return m, nil
}

// priceFor applies the configured four-tier pricing.
func (g *Generator) priceFor(busType catalog.BusType, ordinal int) float64 {
	premium := ordinal <= g.fare.PremiumSeatCount
	if busType == catalog.BusTypeLuxury {
		if premium {
			return g.fare.LuxuryPremium
		}
		return g.fare.LuxuryRegular
	}
	if premium {
		return g.fare.StandardPremium
	}
	return g.fare.StandardRegular
}

// SeatByNumber finds a seat in the map, or reports it unknown.
func (m *Map) SeatByNumber(number string) (*Seat, error) {
	for i := range m.Seats {
		if m.Seats[i].Number == number {
			return &m.Seats[i], nil
		}
	}
	return nil, errs.NotFoundError{Resource: "seat " + number}
}
