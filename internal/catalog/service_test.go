package catalog

import (
	"context"
	"testing"

	"busify/internal/shared/errs"

	"github.com/google/uuid"
)

type fakeRepo struct {
	stations []Station
	buses    []Bus
	types    []LuggageType
	routes   []Route

	findCalls int
}

func (f *fakeRepo) ListStations(context.Context) ([]Station, error)     { return f.stations, nil }
func (f *fakeRepo) ListBuses(context.Context) ([]Bus, error)            { return f.buses, nil }
func (f *fakeRepo) ListLuggageTypes(context.Context) ([]LuggageType, error) {
	return f.types, nil
}

func (f *fakeRepo) GetStationByID(_ context.Context, id uuid.UUID) (*Station, error) {
	for i := range f.stations {
		if f.stations[i].ID == id {
			return &f.stations[i], nil
		}
	}
	return nil, errs.NotFoundError{Resource: "station"}
}

func (f *fakeRepo) GetBusByID(_ context.Context, id uuid.UUID) (*Bus, error) {
	for i := range f.buses {
		if f.buses[i].ID == id {
			return &f.buses[i], nil
		}
	}
	return nil, errs.NotFoundError{Resource: "bus"}
}

func (f *fakeRepo) GetBusByCode(_ context.Context, code string) (*Bus, error) {
	for i := range f.buses {
		if f.buses[i].Code == code {
			return &f.buses[i], nil
		}
	}
	return nil, errs.NotFoundError{Resource: "bus"}
}

func (f *fakeRepo) ListRoutes(context.Context) ([]Route, error) { return f.routes, nil }

func (f *fakeRepo) GetRouteByID(_ context.Context, id uuid.UUID) (*Route, error) {
	for i := range f.routes {
		if f.routes[i].ID == id {
			return &f.routes[i], nil
		}
	}
	return nil, errs.NotFoundError{Resource: "route"}
}

func (f *fakeRepo) FindRoutes(_ context.Context, originID, destinationID uuid.UUID) ([]Route, error) {
	f.findCalls++
	var out []Route
	for _, r := range f.routes {
		if r.OriginID == originID && r.DestinationID == destinationID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetLuggageTypeByID(_ context.Context, id uuid.UUID) (*LuggageType, error) {
	for i := range f.types {
		if f.types[i].ID == id {
			return &f.types[i], nil
		}
	}
	return nil, errs.NotFoundError{Resource: "luggage type"}
}

func TestFindRoutesRequiresBothEndpoints(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	cases := []struct{ origin, destination string }{
		{"", ""},
		{uuid.NewString(), ""},
		{"", uuid.NewString()},
	}
	for _, tc := range cases {
		_, err := svc.FindRoutes(ctx, tc.origin, tc.destination)
		if !errs.IsValidation(err) {
			t.Fatalf("FindRoutes(%q, %q): expected validation error, got %v", tc.origin, tc.destination, err)
		}
	}
	if repo.findCalls != 0 {
		t.Fatalf("missing selection must not reach the repository")
	}
}

func TestFindRoutesEmptyResultIsNotAnError(t *testing.T) {
	ny := uuid.New()
	boston := uuid.New()
	repo := &fakeRepo{routes: []Route{{ID: uuid.New(), Name: "NYC to Boston Express", OriginID: ny, DestinationID: boston}}}
	svc := NewService(repo)
	ctx := context.Background()

	routes, err := svc.FindRoutes(ctx, boston.String(), ny.String()) // reverse direction
	if err != nil {
		t.Fatalf("an empty search result is valid, got %v", err)
	}
	if len(routes) != 0 {
		t.Fatalf("expected no routes, got %d", len(routes))
	}
}

func TestFindRoutesExactMatch(t *testing.T) {
	ny := uuid.New()
	boston := uuid.New()
	la := uuid.New()
	repo := &fakeRepo{routes: []Route{
		{ID: uuid.New(), Name: "NYC to Boston Express", OriginID: ny, DestinationID: boston},
		{ID: uuid.New(), Name: "NYC to LA Express", OriginID: ny, DestinationID: la},
	}}
	svc := NewService(repo)

	routes, err := svc.FindRoutes(context.Background(), ny.String(), la.String())
	if err != nil {
		t.Fatal(err)
	}
	if len(routes) != 1 || routes[0].Name != "NYC to LA Express" {
		t.Fatalf("expected the LA route only, got %+v", routes)
	}
}

func TestFindRoutesRejectsMalformedIDs(t *testing.T) {
	svc := NewService(&fakeRepo{})
	if _, err := svc.FindRoutes(context.Background(), "not-a-uuid", uuid.NewString()); !errs.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestGetBusByCode(t *testing.T) {
	repo := &fakeRepo{buses: []Bus{{ID: uuid.New(), Code: "BUS002", Type: BusTypeLuxury, TotalSeats: 30}}}
	svc := NewService(repo)
	ctx := context.Background()

	bus, err := svc.GetBusByCode(ctx, "BUS002")
	if err != nil {
		t.Fatal(err)
	}
	if bus.Type != BusTypeLuxury {
		t.Fatalf("bus type = %s, want luxury", bus.Type)
	}

	if _, err := svc.GetBusByCode(ctx, ""); !errs.IsValidation(err) {
		t.Fatalf("empty code: expected validation error, got %v", err)
	}
	if _, err := svc.GetBusByCode(ctx, "BUS999"); !errs.IsNotFound(err) {
		t.Fatalf("unknown code: expected not-found, got %v", err)
	}
}
