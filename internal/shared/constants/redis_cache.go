package constants

import (
	"fmt"
	"time"
)

// Redis Cache Configuration
// This file centralizes all Redis cache keys and TTL values for the Busify application
// Pattern: busify:{module}:{operation}:{identifier}:{params?}

// ================== CACHE TTL DURATIONS ==================

// Static reference data (stations, luggage types, buses) changes only when
// the catalog is reseeded.
const (
	TTL_STATIC_LONG   = 24 * time.Hour
	TTL_STATIC_MEDIUM = 12 * time.Hour
	TTL_STATIC_SHORT  = 1 * time.Hour
)

// Dynamic data (seat availability per departure) changes with every booking.
const (
	TTL_DYNAMIC_SHORT  = 2 * time.Minute
	TTL_REALTIME_SHORT = 30 * time.Second
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "busify"
)

// ================== CATALOG MODULE ==================

const (
	CACHE_KEY_STATIONS      = CACHE_PREFIX + ":catalog:stations:all"
	CACHE_KEY_LUGGAGE_TYPES = CACHE_PREFIX + ":catalog:luggage_types:all"
	CACHE_KEY_BUSES         = CACHE_PREFIX + ":catalog:buses:active"
	CACHE_KEY_ROUTES        = CACHE_PREFIX + ":catalog:routes" // + :origin:X:dest:Y
)

const (
	TTL_STATIONS      = TTL_STATIC_LONG
	TTL_LUGGAGE_TYPES = TTL_STATIC_LONG
	TTL_BUSES         = TTL_STATIC_MEDIUM
	TTL_ROUTES        = TTL_STATIC_SHORT
)

// RoutesKey builds the cache key for a route search between two stations.
func RoutesKey(originID, destinationID string) string {
	return fmt.Sprintf("%s:origin:%s:dest:%s", CACHE_KEY_ROUTES, originID, destinationID)
}

// ================== SEAT MAP MODULE ==================

const (
	CACHE_KEY_SEATMAP = CACHE_PREFIX + ":seatmap" // + :bus:CODE:date:D:time:T
)

const (
	TTL_SEATMAP = TTL_REALTIME_SHORT
)

// SeatMapKey builds the cache key for a rendered seat map of one departure.
func SeatMapKey(busCode, date, timeOfDay string) string {
	return fmt.Sprintf("%s:bus:%s:date:%s:time:%s", CACHE_KEY_SEATMAP, busCode, date, timeOfDay)
}

// ================== SEAT HOLD KEYS (finalize window) ==================

// Seat holds are not cache entries; they are short-lived exclusivity markers
// taken while a finalize is in flight. One key per seat per departure.
const (
	SEAT_HOLD_PREFIX = CACHE_PREFIX + ":seat_hold"
)

// SeatHoldKey identifies one seat of one departure (bus + date + time).
func SeatHoldKey(busCode, date, timeOfDay, seatNumber string) string {
	return fmt.Sprintf("%s:%s:%s:%s:%s", SEAT_HOLD_PREFIX, busCode, date, timeOfDay, seatNumber)
}
