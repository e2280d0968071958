package catalog

import (
	"context"
	"fmt"

	"busify/internal/shared/constants"
	"busify/internal/shared/errs"
	"busify/pkg/cache"

	"github.com/google/uuid"
)

type Service interface {
	ListStations(ctx context.Context) ([]Station, error)
	ListBuses(ctx context.Context) ([]Bus, error)
	ListLuggageTypes(ctx context.Context) ([]LuggageType, error)

	GetBusByCode(ctx context.Context, code string) (*Bus, error)
	GetRouteByID(ctx context.Context, id string) (*Route, error)
	GetLuggageTypeByID(ctx context.Context, id string) (*LuggageType, error)

	// FindRoutes is the route finder: exact origin/destination match.
	FindRoutes(ctx context.Context, originID, destinationID string) ([]Route, error)
}

type service struct {
	repo         Repository
	cacheService cache.Service
}

func NewService(repo Repository) *service {
	return &service{repo: repo}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) ListStations(ctx context.Context) ([]Station, error) {
	if s.cacheService != nil {
		var stations []Station
		err := s.cacheService.GetOrSet(ctx, constants.CACHE_KEY_STATIONS, constants.TTL_STATIONS,
			func() (interface{}, error) {
				return s.repo.ListStations(ctx)
			}, &stations)
		if err == nil {
			return stations, nil
		}
		// fall through to the repository on cache trouble
	}
	return s.repo.ListStations(ctx)
}

func (s *service) ListBuses(ctx context.Context) ([]Bus, error) {
	if s.cacheService != nil {
		var buses []Bus
		err := s.cacheService.GetOrSet(ctx, constants.CACHE_KEY_BUSES, constants.TTL_BUSES,
			func() (interface{}, error) {
				return s.repo.ListBuses(ctx)
			}, &buses)
		if err == nil {
			return buses, nil
		}
	}
	return s.repo.ListBuses(ctx)
}

func (s *service) ListLuggageTypes(ctx context.Context) ([]LuggageType, error) {
	if s.cacheService != nil {
		var types []LuggageType
		err := s.cacheService.GetOrSet(ctx, constants.CACHE_KEY_LUGGAGE_TYPES, constants.TTL_LUGGAGE_TYPES,
			func() (interface{}, error) {
				return s.repo.ListLuggageTypes(ctx)
			}, &types)
		if err == nil {
			return types, nil
		}
	}
	return s.repo.ListLuggageTypes(ctx)
}

func (s *service) GetBusByCode(ctx context.Context, code string) (*Bus, error) {
	if code == "" {
		return nil, errs.ValidationError{Field: "bus code", Msg: "must not be empty"}
	}
	return s.repo.GetBusByCode(ctx, code)
}

func (s *service) GetRouteByID(ctx context.Context, id string) (*Route, error) {
	routeID, err := uuid.Parse(id)
	if err != nil {
		return nil, errs.ValidationError{Field: "route id", Msg: "not a valid UUID", Err: err}
	}
	return s.repo.GetRouteByID(ctx, routeID)
}

func (s *service) GetLuggageTypeByID(ctx context.Context, id string) (*LuggageType, error) {
	typeID, err := uuid.Parse(id)
	if err != nil {
		return nil, errs.ValidationError{Field: "luggage type id", Msg: "not a valid UUID", Err: err}
	}
	return s.repo.GetLuggageTypeByID(ctx, typeID)
}

// FindRoutes requires both endpoints to be chosen. A missing selection is a
// validation error, which keeps "no selection yet" distinguishable from a
// legitimately empty search result.
func (s *service) FindRoutes(ctx context.Context, originID, destinationID string) ([]Route, error) {
	if originID == "" || destinationID == "" {
		return nil, errs.ValidationError{Field: "route search", Msg: "origin and destination are required"}
	}

	origin, err := uuid.Parse(originID)
	if err != nil {
		return nil, errs.ValidationError{Field: "origin", Msg: "not a valid UUID", Err: err}
	}
	destination, err := uuid.Parse(destinationID)
	if err != nil {
		return nil, errs.ValidationError{Field: "destination", Msg: "not a valid UUID", Err: err}
	}

	if s.cacheService != nil {
		var routes []Route
		key := constants.RoutesKey(originID, destinationID)
		err := s.cacheService.GetOrSet(ctx, key, constants.TTL_ROUTES,
			func() (interface{}, error) {
				return s.repo.FindRoutes(ctx, origin, destination)
			}, &routes)
		if err == nil {
			return routes, nil
		}
	}

	routes, err := s.repo.FindRoutes(ctx, origin, destination)
	if err != nil {
		return nil, fmt.Errorf("route search failed: %w", err)
	}
	return routes, nil
}
