package catalog

import (
	"context"
	"errors"

	"busify/internal/shared/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	ListStations(ctx context.Context) ([]Station, error)
	GetStationByID(ctx context.Context, id uuid.UUID) (*Station, error)

	ListBuses(ctx context.Context) ([]Bus, error)
	GetBusByID(ctx context.Context, id uuid.UUID) (*Bus, error)
	GetBusByCode(ctx context.Context, code string) (*Bus, error)

	ListRoutes(ctx context.Context) ([]Route, error)
	GetRouteByID(ctx context.Context, id uuid.UUID) (*Route, error)
	FindRoutes(ctx context.Context, originID, destinationID uuid.UUID) ([]Route, error)

	ListLuggageTypes(ctx context.Context) ([]LuggageType, error)
	GetLuggageTypeByID(ctx context.Context, id uuid.UUID) (*LuggageType, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListStations(ctx context.Context) ([]Station, error) {
	var stations []Station
	err := r.db.WithContext(ctx).
		Order("city ASC").
		Find(&stations).Error
	return stations, err
}

func (r *repository) GetStationByID(ctx context.Context, id uuid.UUID) (*Station, error) {
	var station Station
	err := r.db.WithContext(ctx).First(&station, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFoundError{Resource: "station", Err: err}
		}
		return nil, err
	}
	return &station, nil
}

func (r *repository) ListBuses(ctx context.Context) ([]Bus, error) {
	var buses []Bus
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("code ASC").
		Find(&buses).Error
	return buses, err
}

func (r *repository) GetBusByID(ctx context.Context, id uuid.UUID) (*Bus, error) {
	var bus Bus
	err := r.db.WithContext(ctx).First(&bus, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFoundError{Resource: "bus", Err: err}
		}
		return nil, err
	}
	return &bus, nil
}

func (r *repository) GetBusByCode(ctx context.Context, code string) (*Bus, error) {
	var bus Bus
	err := r.db.WithContext(ctx).First(&bus, "code = ?", code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFoundError{Resource: "bus", Err: err}
		}
		return nil, err
	}
	return &bus, nil
}

func (r *repository) ListRoutes(ctx context.Context) ([]Route, error) {
	var routes []Route
	err := r.db.WithContext(ctx).
		Preload("Origin").
		Preload("Destination").
		Preload("Stops", func(db *gorm.DB) *gorm.DB {
			return db.Order("route_stops.position ASC")
		}).
		Preload("Stops.Station").
		Order("name ASC").
		Find(&routes).Error
	return routes, err
}

func (r *repository) GetRouteByID(ctx context.Context, id uuid.UUID) (*Route, error) {
	var route Route
	err := r.db.WithContext(ctx).
		Preload("Origin").
		Preload("Destination").
		Preload("Stops", func(db *gorm.DB) *gorm.DB {
			return db.Order("route_stops.position ASC")
		}).
		Preload("Stops.Station").
		First(&route, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFoundError{Resource: "route", Err: err}
		}
		return nil, err
	}
	return &route, nil
}

// FindRoutes matches origin and destination exactly; via-stop matches do not
// count. An empty result is a valid answer.
func (r *repository) FindRoutes(ctx context.Context, originID, destinationID uuid.UUID) ([]Route, error) {
	var routes []Route
	err := r.db.WithContext(ctx).
		Preload("Origin").
		Preload("Destination").
		Preload("Stops", func(db *gorm.DB) *gorm.DB {
			return db.Order("route_stops.position ASC")
		}).
		Preload("Stops.Station").
		Where("origin_id = ? AND destination_id = ?", originID, destinationID).
		Order("name ASC").
		Find(&routes).Error
	return routes, err
}

func (r *repository) ListLuggageTypes(ctx context.Context) ([]LuggageType, error) {
	var types []LuggageType
	err := r.db.WithContext(ctx).
		Order("max_weight ASC").
		Find(&types).Error
	return types, err
}

func (r *repository) GetLuggageTypeByID(ctx context.Context, id uuid.UUID) (*LuggageType, error) {
	var lt LuggageType
	err := r.db.WithContext(ctx).First(&lt, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFoundError{Resource: "luggage type", Err: err}
		}
		return nil, err
	}
	return &lt, nil
}
