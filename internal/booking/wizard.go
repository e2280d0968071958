package booking

import (
	"context"

	"busify/internal/catalog"
	"busify/internal/shared/errs"
)

// Step is one stage of the booking wizard.
type Step string

const (
	StepRoute     Step = "route"
	StepBus       Step = "bus"
	StepSeats     Step = "seats"
	StepLuggage   Step = "luggage"
	StepPayment   Step = "payment"
	StepCompleted Step = "completed"
)

var stepOrder = []Step{StepRoute, StepBus, StepSeats, StepLuggage, StepPayment, StepCompleted}

// Finalizer turns a completed draft into a persisted booking. The wizard
// invokes it exactly once, on advancing out of the payment step.
type Finalizer interface {
	Finalize(ctx context.Context, draft *Draft) (*FinalizeResult, error)
}

// Wizard drives one draft through the ordered steps. It is single-session
// and single-writer; it takes no locks of its own.
type Wizard struct {
	draft     *Draft
	finalizer Finalizer
	step      int
	matches   []catalog.Route
}

func NewWizard(draft *Draft, finalizer Finalizer) *Wizard {
	return &Wizard{draft: draft, finalizer: finalizer}
}

func (w *Wizard) Step() Step {
	return stepOrder[w.step]
}

func (w *Wizard) Draft() *Draft {
	return w.draft
}

// SetMatchingRoutes records the route-search result for the current journey.
// The route step cannot be advanced until at least one match is present.
func (w *Wizard) SetMatchingRoutes(routes []catalog.Route) {
	w.matches = routes
}

// Advance moves to the next step when the current step's completeness guard
// passes. From the payment step, Advance performs the finalize and returns
// its result; every earlier step returns a nil result.
func (w *Wizard) Advance(ctx context.Context) (*FinalizeResult, error) {
	switch w.Step() {
	case StepRoute:
		if !w.draft.Complete() {
			return nil, errs.ValidationError{Field: "journey", Msg: "origin, destination, date and time must be set"}
		}
		if len(w.matches) == 0 {
			return nil, errs.ValidationError{Field: "route", Msg: "no matching routes for the selected journey"}
		}
	case StepBus:
		if w.draft.Route == nil || w.draft.Bus == nil {
			return nil, errs.ValidationError{Field: "bus", Msg: "a route and a bus must be selected"}
		}
	case StepSeats:
		if len(w.draft.Seats) == 0 {
			return nil, errs.ValidationError{Field: "seats", Msg: "at least one seat must be selected"}
		}
	case StepLuggage:
		// Luggage is optional; no guard.
	case StepPayment:
		if w.finalizer == nil {
			return nil, errs.ValidationError{Field: "finalizer", Msg: "not configured"}
		}
		result, err := w.finalizer.Finalize(ctx, w.draft)
		if err != nil {
			return nil, err
		}
		w.step++
		return result, nil
	case StepCompleted:
		return nil, errs.ValidationError{Field: "wizard", Msg: "booking already completed"}
	}

	w.step++
	return nil, nil
}

// Retreat moves back one step without clearing any entered data.
func (w *Wizard) Retreat() error {
	if w.step == 0 {
		return errs.ValidationError{Field: "wizard", Msg: "already at the first step"}
	}
	w.step--
	return nil
}

// Reset returns to the route step and clears the draft.
func (w *Wizard) Reset() {
	w.step = 0
	w.matches = nil
	w.draft.Reset()
}
