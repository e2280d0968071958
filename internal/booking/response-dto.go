package booking

// BookingResponse echoes the created booking with its ticket artifacts.
type BookingResponse struct {
	ID              string            `json:"id"`
	UserID          string            `json:"userId,omitempty"`
	OriginCity      string            `json:"originCity"`
	DestinationCity string            `json:"destinationCity"`
	BusCode         string            `json:"busCode"`
	DepartureDate   string            `json:"departureDate"`
	DepartureTime   string            `json:"departureTime"`
	Seats           []SeatResponse    `json:"seats"`
	Luggage         []LuggageResponse `json:"luggage"`
	TotalPrice      float64           `json:"totalPrice"`
	Status          string            `json:"status"`
	TicketCode      string            `json:"ticketCode"`
	QRCode          string            `json:"qrCode"`
}

type SeatResponse struct {
	SeatNumber string  `json:"seatNumber"`
	Price      float64 `json:"price"`
}

type LuggageResponse struct {
	TypeID      string  `json:"typeId"`
	Quantity    int     `json:"quantity"`
	Weight      float64 `json:"weight,omitempty"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
}

// NewBookingResponse flattens a finalize result for the wire.
func NewBookingResponse(result *FinalizeResult) BookingResponse {
	b := result.Booking
	resp := BookingResponse{
		ID:              b.ID.String(),
		UserID:          b.UserID,
		OriginCity:      b.OriginCity,
		DestinationCity: b.DestinationCity,
		BusCode:         b.BusCode,
		DepartureDate:   b.DepartureDate,
		DepartureTime:   b.DepartureTime,
		TotalPrice:      b.TotalPrice,
		Status:          string(b.Status),
		TicketCode:      b.TicketCode,
		QRCode:          result.QRCode,
	}
	for _, seat := range b.Seats {
		resp.Seats = append(resp.Seats, SeatResponse{SeatNumber: seat.SeatNumber, Price: seat.Price})
	}
	for _, l := range b.Luggage {
		resp.Luggage = append(resp.Luggage, LuggageResponse{
			TypeID:      l.LuggageTypeID.String(),
			Quantity:    l.Quantity,
			Weight:      l.Weight,
			Description: l.Description,
			Price:       l.Price,
		})
	}
	return resp
}
