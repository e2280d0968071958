package database

import (
	"busify/internal/booking"
	"busify/internal/catalog"
	"busify/internal/ticket"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&catalog.Station{},
		&catalog.Bus{},
		&catalog.Route{},
		&catalog.RouteStop{},
		&catalog.LuggageType{},
		&booking.Booking{},
		&booking.BookingSeat{},
		&booking.BookingLuggage{},
		&ticket.Ticket{},
	)
}
