package booking

// CreateBookingRequest is the single-POST booking submission. BusID carries
// the bus code. TotalPrice is what the client displayed; the server
// recomputes the fare and the recomputed value is authoritative.
type CreateBookingRequest struct {
	UserID          string           `json:"userId"`
	RouteID         string           `json:"routeId" binding:"required"`
	BusID           string           `json:"busId" binding:"required"`
	DepartureDate   string           `json:"departureDate" binding:"required,datetime=2006-01-02"`
	DepartureTime   string           `json:"departureTime" binding:"required"`
	Seats           []string         `json:"seats" binding:"required,min=1"`
	Luggage         []LuggageRequest `json:"luggage" binding:"omitempty,dive"`
	LuggageImageURL string           `json:"luggageImageUrl"`
	TotalPrice      float64          `json:"totalPrice"`
}

type LuggageRequest struct {
	TypeID      string  `json:"typeId" binding:"required,uuid"`
	Quantity    int     `json:"quantity" binding:"required,min=1,max=10"`
	Weight      float64 `json:"weight" binding:"omitempty,min=0"`
	Description string  `json:"description"`
}
