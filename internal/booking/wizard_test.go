package booking

import (
	"context"
	"testing"

	"busify/internal/catalog"
	"busify/internal/shared/errs"
)

type fakeFinalizer struct {
	result *FinalizeResult
	err    error
	calls  int
}

func (f *fakeFinalizer) Finalize(_ context.Context, _ *Draft) (*FinalizeResult, error) {
	f.calls++
	return f.result, f.err
}

func completedJourneyDraft() *Draft {
	d := NewDraft("user-1")
	d.Origin = "New York"
	d.Destination = "Boston"
	d.Date = "2026-07-01"
	d.Time = "09:00"
	return d
}

func TestWizardHappyPath(t *testing.T) {
	ctx := context.Background()
	d := completedJourneyDraft()
	finalizer := &fakeFinalizer{result: &FinalizeResult{QRCode: "data:image/png;base64,..."}}
	w := NewWizard(d, finalizer)

	if w.Step() != StepRoute {
		t.Fatalf("wizard starts at route, got %s", w.Step())
	}

	w.SetMatchingRoutes([]catalog.Route{{Name: "NYC to Boston Express"}})
	if _, err := w.Advance(ctx); err != nil {
		t.Fatalf("route advance: %v", err)
	}

	d.Route = &catalog.Route{Name: "NYC to Boston Express"}
	d.Bus = &catalog.Bus{Code: "BUS003", Type: catalog.BusTypeStandard, TotalSeats: 45}
	if _, err := w.Advance(ctx); err != nil {
		t.Fatalf("bus advance: %v", err)
	}

	if err := d.SelectSeat(seat("seat-07", "07", 45)); err != nil {
		t.Fatal(err)
	}
	if _, err := w.Advance(ctx); err != nil {
		t.Fatalf("seats advance: %v", err)
	}

	// luggage is optional
	if _, err := w.Advance(ctx); err != nil {
		t.Fatalf("luggage advance: %v", err)
	}
	if w.Step() != StepPayment {
		t.Fatalf("expected payment step, got %s", w.Step())
	}

	result, err := w.Advance(ctx)
	if err != nil {
		t.Fatalf("payment advance: %v", err)
	}
	if result == nil || finalizer.calls != 1 {
		t.Fatalf("payment advance must finalize exactly once (calls=%d)", finalizer.calls)
	}
	if w.Step() != StepCompleted {
		t.Fatalf("expected completed, got %s", w.Step())
	}

	if _, err := w.Advance(ctx); !errs.IsValidation(err) {
		t.Fatalf("advancing a completed wizard must fail, got %v", err)
	}
}

func TestWizardRouteGuard(t *testing.T) {
	ctx := context.Background()

	// journey fields missing
	w := NewWizard(NewDraft("user-1"), nil)
	w.SetMatchingRoutes([]catalog.Route{{Name: "x"}})
	if _, err := w.Advance(ctx); !errs.IsValidation(err) {
		t.Fatalf("expected validation error for missing journey, got %v", err)
	}
	if w.Step() != StepRoute {
		t.Fatalf("failed guard must not advance")
	}

	// journey set, no matching routes
	w = NewWizard(completedJourneyDraft(), nil)
	if _, err := w.Advance(ctx); !errs.IsValidation(err) {
		t.Fatalf("expected validation error for zero matches, got %v", err)
	}
}

func TestWizardStepGuards(t *testing.T) {
	ctx := context.Background()
	d := completedJourneyDraft()
	w := NewWizard(d, nil)
	w.SetMatchingRoutes([]catalog.Route{{Name: "x"}})
	if _, err := w.Advance(ctx); err != nil {
		t.Fatal(err)
	}

	// bus step without a selected bus
	if _, err := w.Advance(ctx); !errs.IsValidation(err) {
		t.Fatalf("bus guard: got %v", err)
	}
	d.Route = &catalog.Route{Name: "x"}
	d.Bus = &catalog.Bus{Code: "BUS001"}
	if _, err := w.Advance(ctx); err != nil {
		t.Fatal(err)
	}

	// seats step without seats
	if _, err := w.Advance(ctx); !errs.IsValidation(err) {
		t.Fatalf("seats guard: got %v", err)
	}
}

func TestWizardRetreatKeepsData(t *testing.T) {
	ctx := context.Background()
	d := completedJourneyDraft()
	w := NewWizard(d, nil)

	if err := w.Retreat(); !errs.IsValidation(err) {
		t.Fatalf("retreat from the first step must fail, got %v", err)
	}

	w.SetMatchingRoutes([]catalog.Route{{Name: "x"}})
	if _, err := w.Advance(ctx); err != nil {
		t.Fatal(err)
	}
	d.Route = &catalog.Route{Name: "x"}
	d.Bus = &catalog.Bus{Code: "BUS001"}
	if _, err := w.Advance(ctx); err != nil {
		t.Fatal(err)
	}

	if err := w.Retreat(); err != nil {
		t.Fatal(err)
	}
	if w.Step() != StepBus {
		t.Fatalf("expected bus step after retreat, got %s", w.Step())
	}
	if d.Bus == nil || d.Origin != "New York" {
		t.Fatalf("retreat must not clear entered data")
	}

	// forward again works without re-entering anything
	if _, err := w.Advance(ctx); err != nil {
		t.Fatalf("re-advance after retreat: %v", err)
	}
}

func TestWizardReset(t *testing.T) {
	ctx := context.Background()
	d := completedJourneyDraft()
	w := NewWizard(d, nil)
	w.SetMatchingRoutes([]catalog.Route{{Name: "x"}})
	if _, err := w.Advance(ctx); err != nil {
		t.Fatal(err)
	}

	w.Reset()
	if w.Step() != StepRoute {
		t.Fatalf("reset returns to the route step, got %s", w.Step())
	}
	if d.Origin != "" || d.Destination != "" {
		t.Fatalf("reset clears the draft")
	}
}
