package booking

import (
	"time"

	"github.com/google/uuid"
)

// Status tracks a booking through external fulfillment. A finalized booking
// is immutable apart from this field.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

type Booking struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	UserID          string    `json:"user_id" gorm:"size:120;index"`
	RouteID         uuid.UUID `json:"route_id" gorm:"type:uuid;not null;index"`
	BusCode         string    `json:"bus_code" gorm:"not null;size:20;index"`
	OriginCity      string    `json:"origin_city" gorm:"not null;size:120"`
	DestinationCity string    `json:"destination_city" gorm:"not null;size:120"`
	DepartureDate   string    `json:"departure_date" gorm:"not null;size:10"` // YYYY-MM-DD
	DepartureTime   string    `json:"departure_time" gorm:"not null;size:5"`  // HH:MM
	TotalPrice      float64   `json:"total_price" gorm:"not null;check:total_price >= 0"`
	BookingDate     time.Time `json:"booking_date" gorm:"not null"`
	Status          Status    `json:"status" gorm:"type:varchar(20);not null;default:'confirmed';check:status IN ('pending','confirmed','cancelled','completed')"`
	TicketCode      string    `json:"ticket_code" gorm:"not null;size:17;uniqueIndex"`
	CreatedAt       time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Seats   []BookingSeat    `json:"seats,omitempty" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE;"`
	Luggage []BookingLuggage `json:"luggage,omitempty" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE;"`
}

func (Booking) TableName() string {
	return "bookings"
}

// BookingSeat pins one seat of one departure. The composite unique index on
// (bus_code, departure_date, departure_time, seat_number) is the last line
// of defense for seat exclusivity.
type BookingSeat struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BookingID     uuid.UUID `json:"booking_id" gorm:"type:uuid;not null;index"`
	BusCode       string    `json:"bus_code" gorm:"not null;size:20"`
	DepartureDate string    `json:"departure_date" gorm:"not null;size:10"`
	DepartureTime string    `json:"departure_time" gorm:"not null;size:5"`
	SeatNumber    string    `json:"seat_number" gorm:"not null;size:4"`
	Price         float64   `json:"price" gorm:"not null;check:price >= 0"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (BookingSeat) TableName() string {
	return "booking_seats"
}

type BookingLuggage struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	BookingID     uuid.UUID `json:"booking_id" gorm:"type:uuid;not null;index"`
	LuggageTypeID uuid.UUID `json:"luggage_type_id" gorm:"type:uuid;not null"`
	Quantity      int       `json:"quantity" gorm:"not null;check:quantity > 0"`
	Weight        float64   `json:"weight"`
	Description   string    `json:"description" gorm:"size:500"`
	ImageURL      string    `json:"image_url" gorm:"size:1000"`
	Price         float64   `json:"price" gorm:"not null;check:price >= 0"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (BookingLuggage) TableName() string {
	return "booking_luggage"
}
