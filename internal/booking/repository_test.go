package booking

import (
	"context"
	"strings"
	"testing"

	"busify/internal/shared/errs"
	"busify/internal/ticket"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm.Open: %v", err)
	}
	return db, mock
}

func TestRepositorySeatCheckLocksRows(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)

	// the seat check must carry a row lock; a plain SELECT leaves a
	// check-then-insert window between concurrent finalizes
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT seat_number FROM "booking_seats" WHERE .* FOR UPDATE`).
		WithArgs("BUS002", "2026-06-15", "09:00", "03").
		WillReturnRows(sqlmock.NewRows([]string{"seat_number"}).AddRow("03"))
	mock.ExpectRollback()

	b := &Booking{
		UserID:        "rider@example.com",
		BusCode:       "BUS002",
		DepartureDate: "2026-06-15",
		DepartureTime: "09:00",
		Status:        StatusConfirmed,
		Seats: []BookingSeat{
			{BusCode: "BUS002", DepartureDate: "2026-06-15", DepartureTime: "09:00", SeatNumber: "03", Price: 75},
		},
	}
	tk := &ticket.Ticket{TextCode: "NEW-LOS-0615-A3F9", Status: ticket.StatusValid}
	err := repo.CreateBookingWithSeatCheck(context.Background(), b, tk)
	if !errs.IsConflict(err) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if !strings.Contains(err.Error(), "03") {
		t.Fatalf("conflict should name the contested seat: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRepositoryCancelBookingDeletesSeatRows(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)
	id := uuid.New()

	// the cancelled booking's seat rows must be deleted in the same
	// transaction, otherwise the seat check and the composite unique
	// index keep the seats blocked after the status flip
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "bookings" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "booking_seats" WHERE booking_id`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	if err := repo.CancelBooking(context.Background(), id); err != nil {
		t.Fatalf("CancelBooking: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRepositoryCancelBookingWrongStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRepository(db)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "bookings" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	rows := sqlmock.NewRows([]string{"id", "status"}).AddRow(id, "completed")
	mock.ExpectQuery(`SELECT \* FROM "bookings" WHERE id = \$1`).
		WillReturnRows(rows)
	mock.ExpectQuery(`SELECT \* FROM "booking_luggage"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT \* FROM "booking_seats"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	err := repo.CancelBooking(context.Background(), id)
	if !errs.IsConflict(err) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if !strings.Contains(err.Error(), "completed") {
		t.Fatalf("conflict should report the actual status: %v", err)
	}
}
