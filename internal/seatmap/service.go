package seatmap

import (
	"context"

	"busify/internal/catalog"
	"busify/internal/shared/constants"
	"busify/pkg/cache"
)

type Service interface {
	// MapForDeparture renders the seat map of a bus for one departure,
	// with booked status derived from persisted bookings.
	MapForDeparture(ctx context.Context, busCode, date, timeOfDay string) (*Map, error)
}

type service struct {
	generator    *Generator
	catalog      catalog.Service
	availability Availability
	cacheService cache.Service
}

func NewService(generator *Generator, catalogService catalog.Service, availability Availability) *service {
	return &service{
		generator:    generator,
		catalog:      catalogService,
		availability: availability,
	}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) MapForDeparture(ctx context.Context, busCode, date, timeOfDay string) (*Map, error) {
	bus, err := s.catalog.GetBusByCode(ctx, busCode)
	if err != nil {
		return nil, err
	}

	// The map is cached for a short window only; booked status must track
	// finalized bookings closely.
	if s.cacheService != nil && date != "" && timeOfDay != "" {
		var m Map
		key := constants.SeatMapKey(busCode, date, timeOfDay)
		err := s.cacheService.GetOrSet(ctx, key, constants.TTL_SEATMAP,
			func() (interface{}, error) {
				return s.generator.Generate(ctx, bus, date, timeOfDay, s.availability)
			}, &m)
		if err == nil {
			return &m, nil
		}
	}

	return s.generator.Generate(ctx, bus, date, timeOfDay, s.availability)
}
