package ticket

import (
	"context"
	"errors"

	"busify/internal/shared/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	GetByCode(ctx context.Context, code string) (*Ticket, error)
	CodeExists(ctx context.Context, code string) (bool, error)
	// MarkUsed flips a valid ticket to used in one compare-and-set UPDATE.
	// A ticket that is absent or no longer valid leaves zero rows affected.
	MarkUsed(ctx context.Context, code string) (*Ticket, error)
	// CancelForBooking voids a booking's still-valid ticket.
	CancelForBooking(ctx context.Context, bookingID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *repository {
	return &repository{db: db}
}

func (r *repository) GetByCode(ctx context.Context, code string) (*Ticket, error) {
	var t Ticket
	err := r.db.WithContext(ctx).Where("text_code = ?", code).First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFoundError{Resource: "ticket"}
		}
		return nil, errs.UpstreamError{Op: "ticket lookup", Err: err}
	}
	return &t, nil
}

func (r *repository) CodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Ticket{}).Where("text_code = ?", code).Count(&count).Error
	if err != nil {
		return false, errs.UpstreamError{Op: "ticket code check", Err: err}
	}
	return count > 0, nil
}

func (r *repository) MarkUsed(ctx context.Context, code string) (*Ticket, error) {
	result := r.db.WithContext(ctx).Model(&Ticket{}).
		Where("text_code = ? AND status = ?", code, StatusValid).
		Update("status", StatusUsed)
	if result.Error != nil {
		return nil, errs.UpstreamError{Op: "ticket scan", Err: result.Error}
	}
	if result.RowsAffected == 0 {
		// Distinguish an unknown code from a ticket already consumed.
		existing, err := r.GetByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		return existing, errs.ConflictError{Resource: "ticket", Msg: "not valid for boarding, status is " + string(existing.Status)}
	}
	return r.GetByCode(ctx, code)
}

func (r *repository) CancelForBooking(ctx context.Context, bookingID uuid.UUID) error {
	err := r.db.WithContext(ctx).Model(&Ticket{}).
		Where("booking_id = ? AND status = ?", bookingID, StatusValid).
		Update("status", StatusCancelled).Error
	if err != nil {
		return errs.UpstreamError{Op: "ticket cancel", Err: err}
	}
	return nil
}
