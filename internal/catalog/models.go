package catalog

import (
	"time"

	"github.com/google/uuid"
)

// BusType distinguishes the two cabin layouts.
type BusType string

const (
	BusTypeStandard BusType = "standard"
	BusTypeLuxury   BusType = "luxury"
)

// Station is immutable reference data.
type Station struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name      string    `json:"name" gorm:"not null;size:255"`
	City      string    `json:"city" gorm:"not null;size:120;index"`
	Address   string    `json:"address" gorm:"size:500"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Station) TableName() string {
	return "stations"
}

type Bus struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Code            string    `json:"code" gorm:"not null;size:20;uniqueIndex"`
	Type            BusType   `json:"type" gorm:"type:varchar(20);not null;check:type IN ('standard','luxury')"`
	TotalSeats      int       `json:"total_seats" gorm:"not null;check:total_seats > 0"`
	LuggageCapacity int       `json:"luggage_capacity" gorm:"not null;check:luggage_capacity >= 0"`
	Amenities       []string  `json:"amenities" gorm:"serializer:json"`
	Active          bool      `json:"active" gorm:"default:true"`
	CreatedAt       time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Bus) TableName() string {
	return "buses"
}

// Route connects an origin station to a destination station.
// Origin and destination are always distinct.
type Route struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name          string    `json:"name" gorm:"not null;size:255"`
	OriginID      uuid.UUID `json:"origin_id" gorm:"type:uuid;not null;index"`
	DestinationID uuid.UUID `json:"destination_id" gorm:"type:uuid;not null;index"`
	Distance      float64   `json:"distance" gorm:"not null;check:distance > 0"` // kilometers
	Duration      float64   `json:"duration" gorm:"not null"`                    // hours, fractional
	BusCodes      []string  `json:"bus_codes" gorm:"serializer:json"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Origin      *Station    `json:"origin,omitempty" gorm:"foreignKey:OriginID"`
	Destination *Station    `json:"destination,omitempty" gorm:"foreignKey:DestinationID"`
	Stops       []RouteStop `json:"stops,omitempty" gorm:"foreignKey:RouteID;constraint:OnDelete:CASCADE;"`
}

func (Route) TableName() string {
	return "routes"
}

// RouteStop is an ordered intermediate stop on a route.
type RouteStop struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	RouteID   uuid.UUID `json:"route_id" gorm:"type:uuid;not null;index"`
	StationID uuid.UUID `json:"station_id" gorm:"type:uuid;not null"`
	Position  int       `json:"position" gorm:"not null"`

	Station *Station `json:"station,omitempty" gorm:"foreignKey:StationID"`
}

func (RouteStop) TableName() string {
	return "route_stops"
}

type LuggageType struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name           string    `json:"name" gorm:"not null;size:120"`
	MaxWeight      float64   `json:"max_weight" gorm:"not null;check:max_weight > 0"` // kilograms
	MaxSize        string    `json:"max_size" gorm:"size:120"`
	AdditionalCost float64   `json:"additional_cost" gorm:"not null;check:additional_cost >= 0"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (LuggageType) TableName() string {
	return "luggage_types"
}
