package service

import (
	"context"
	"time"
)

// StatsCache is a small read-through cache for values that are expensive to
// derive and tolerant of short staleness, such as dashboard counters.
// Implementations must treat a miss as a non-error condition.
type StatsCache interface {
	// Get unmarshals the cached value for key into dest. ok is false on a miss.
	Get(ctx context.Context, key string, dest any) (ok bool, err error)

	// Set stores value under key with the given TTL.
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}
