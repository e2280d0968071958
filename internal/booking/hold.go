package booking

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"busify/internal/shared/constants"
	"busify/internal/shared/errs"

	"github.com/redis/go-redis/v9"
)

// SeatHolder takes short-lived exclusive holds on seats of one departure
// while a finalize is in flight. Holds expire on their own, so a crashed
// finalize never wedges a seat.
type SeatHolder struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewSeatHolder(redisClient *redis.Client, ttl time.Duration) *SeatHolder {
	return &SeatHolder{redis: redisClient, ttl: ttl}
}

// Checks every seat key first, then writes all of them, in one script, so
// two finalizes racing for an overlapping seat set cannot both pass.
const luaSeatHold = `
-- KEYS[1..N] = seat hold keys
-- ARGV[1] = hold id
-- ARGV[2] = ttl seconds

local hold_id = ARGV[1]
local ttl = tonumber(ARGV[2])

local conflicts = {}
for i = 1, #KEYS do
    if redis.call("EXISTS", KEYS[i]) == 1 then
        conflicts[#conflicts + 1] = i
    end
end

if #conflicts > 0 then
    return conflicts
end

for i = 1, #KEYS do
    redis.call("SET", KEYS[i], hold_id, "EX", ttl)
end

return {}
`

// Deletes a seat key only when it still belongs to this hold.
const luaSeatRelease = `
-- KEYS[1..N] = seat hold keys
-- ARGV[1] = hold id

local released = 0
for i = 1, #KEYS do
    if redis.call("GET", KEYS[i]) == ARGV[1] then
        redis.call("DEL", KEYS[i])
        released = released + 1
    end
end
return released
`

func (h *SeatHolder) keys(busCode, date, timeOfDay string, seatNumbers []string) []string {
	keys := make([]string, 0, len(seatNumbers))
	for _, n := range seatNumbers {
		keys = append(keys, constants.SeatHoldKey(busCode, date, timeOfDay, n))
	}
	return keys
}

// Hold atomically holds all the given seats for one departure. On conflict
// nothing is written; the contested seat numbers come back alongside a
// ConflictError.
func (h *SeatHolder) Hold(ctx context.Context, busCode, date, timeOfDay, holdID string, seatNumbers []string) ([]string, error) {
	if h.redis == nil {
		return nil, errs.UpstreamError{Op: "seat hold", Err: fmt.Errorf("redis client not available")}
	}
	if len(seatNumbers) == 0 {
		return nil, errs.ValidationError{Field: "seats", Msg: "nothing to hold"}
	}

	keys := h.keys(busCode, date, timeOfDay, seatNumbers)
	args := []interface{}{holdID, strconv.Itoa(int(h.ttl.Seconds()))}

	result, err := h.redis.Eval(ctx, luaSeatHold, keys, args...).Result()
	if err != nil {
		return nil, errs.UpstreamError{Op: "seat hold", Err: err}
	}

	resultArray, ok := result.([]interface{})
	if !ok {
		return nil, errs.UpstreamError{Op: "seat hold", Err: fmt.Errorf("unexpected script result %v", result)}
	}
	if len(resultArray) == 0 {
		return nil, nil
	}

	conflicts := make([]string, 0, len(resultArray))
	for _, raw := range resultArray {
		idx, ok := raw.(int64)
		if !ok || idx < 1 || int(idx) > len(seatNumbers) {
			return nil, errs.UpstreamError{Op: "seat hold", Err: fmt.Errorf("unexpected script result %v", result)}
		}
		conflicts = append(conflicts, seatNumbers[idx-1])
	}
	return conflicts, errs.ConflictError{
		Resource: "seats " + strings.Join(conflicts, ", "),
		Msg:      "held by another booking in progress",
	}
}

// Release drops the hold on the given seats. Keys already expired or taken
// over by another hold are left alone.
func (h *SeatHolder) Release(ctx context.Context, busCode, date, timeOfDay, holdID string, seatNumbers []string) (int, error) {
	if h.redis == nil || len(seatNumbers) == 0 {
		return 0, nil
	}

	keys := h.keys(busCode, date, timeOfDay, seatNumbers)
	result, err := h.redis.Eval(ctx, luaSeatRelease, keys, holdID).Result()
	if err != nil {
		return 0, errs.UpstreamError{Op: "seat hold release", Err: err}
	}
	released, ok := result.(int64)
	if !ok {
		return 0, errs.UpstreamError{Op: "seat hold release", Err: fmt.Errorf("unexpected script result %v", result)}
	}
	return int(released), nil
}

// PreloadScripts loads the hold scripts into the Redis script cache.
func (h *SeatHolder) PreloadScripts(ctx context.Context) error {
	if h.redis == nil {
		return nil
	}
	for _, script := range []string{luaSeatHold, luaSeatRelease} {
		if err := h.redis.ScriptLoad(ctx, script).Err(); err != nil {
			return errs.UpstreamError{Op: "script preload", Err: err}
		}
	}
	return nil
}
