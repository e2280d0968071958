package booking

import (
	"busify/internal/shared/errs"

	"github.com/shopspring/decimal"
)

// ValidateLuggage checks quantity bounds and the presence of a luggage type.
func ValidateLuggage(item LuggageItem) error {
	if item.Quantity < 1 || item.Quantity > 10 {
		return ErrInvalidQuantity
	}
	if item.Type == nil {
		return ErrMissingType
	}
	return nil
}

// LuggagePrice is additional cost times quantity for one validated entry.
func LuggagePrice(item LuggageItem) (decimal.Decimal, error) {
	if err := ValidateLuggage(item); err != nil {
		return decimal.Zero, err
	}
	cost := decimal.NewFromFloat(item.Type.AdditionalCost)
	return cost.Mul(decimal.NewFromInt(int64(item.Quantity))), nil
}

// FareCalculator totals a draft: seat prices plus luggage prices plus the
// flat service fee. All arithmetic stays in decimal; callers round with
// StringFixed(2) only when presenting.
type FareCalculator struct {
	serviceFee decimal.Decimal
}

func NewFareCalculator(serviceFee float64) *FareCalculator {
	return &FareCalculator{serviceFee: decimal.NewFromFloat(serviceFee)}
}

func (f *FareCalculator) ServiceFee() decimal.Decimal {
	return f.serviceFee
}

// Total computes the draft's fare. Addition order never changes the result.
func (f *FareCalculator) Total(d *Draft) (decimal.Decimal, error) {
	if d == nil {
		return decimal.Zero, errs.ValidationError{Field: "draft", Msg: "must not be nil"}
	}

	total := f.serviceFee
	for _, seat := range d.Seats {
		total = total.Add(decimal.NewFromFloat(seat.Price))
	}
	for _, item := range d.Luggage {
		price, err := LuggagePrice(item)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(price)
	}
	return total, nil
}
