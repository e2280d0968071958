package seatmap

// SeatStatus is the rendered state of one seat in a map.
type SeatStatus string

const (
	SeatAvailable   SeatStatus = "available"
	SeatSelected    SeatStatus = "selected"
	SeatBooked      SeatStatus = "booked"
	SeatUnavailable SeatStatus = "unavailable"
)

// Seat is one position in a bus seat map. The ID is derived from the seat
// number so the same seat always maps to the same ID across generations.
type Seat struct {
	ID       string     `json:"id"`
	Number   string     `json:"number"` // zero-padded ordinal, "01".."NN"
	Status   SeatStatus `json:"status"`
	Price    float64    `json:"price"`
	Row      int        `json:"row"`      // 1-based
	Position int        `json:"position"` // 1-based within the row
}

// Row groups seats for layout rendering. AisleAfter lists the positions that
// have an aisle to their right (2+2 for standard, 1+1+1 for luxury).
type Row struct {
	Number     int    `json:"number"`
	Seats      []Seat `json:"seats"`
	AisleAfter []int  `json:"aisle_after"`
}

// Map is a fully generated seat map for one departure.
type Map struct {
	BusCode     string `json:"bus_code"`
	BusType     string `json:"bus_type"`
	TotalSeats  int    `json:"total_seats"`
	SeatsPerRow int    `json:"seats_per_row"`
	Rows        []Row  `json:"rows"`
	Seats       []Seat `json:"seats"`
}
