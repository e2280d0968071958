package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints adds critical database constraints for concurrency control
func MigrateConstraints(db *gorm.DB) error {
	// Prevent double booking of a seat on the same departure
	err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS unique_seat_per_departure
		ON booking_seats (bus_code, departure_date, departure_time, seat_number);
	`).Error
	if err != nil {
		return err
	}

	// Ticket codes must be globally unique for verification lookups
	err = db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_tickets_text_code
		ON tickets (text_code);
	`).Error
	if err != nil {
		return err
	}

	// Seat availability queries filter by departure
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_booking_seats_departure
		ON booking_seats (bus_code, departure_date, departure_time);
	`).Error
	if err != nil {
		return err
	}

	return nil
}
