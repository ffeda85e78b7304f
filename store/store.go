// Package store defines the byte store the relay keeps posted frames in.
//
// Implementations MUST be byte-for-byte transparent: Get returns exactly the
// []byte passed to Set for that key. The keyspace "post:<ns>:" is owned by the
// relay; foreign values under it are treated as corruption and deleted.
package store

import (
	"context"
	"time"
)

// Store is a minimal byte store with TTLs. Must be safe for concurrent use.
type Store interface {
	// Get returns (value, true, nil) on hit; (nil, false, nil) on miss.
	// If an IO/remote error happens, return (nil, false, err).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value with the given TTL (<= 0 => no expiry where supported).
	// cost is a hint for cost-based stores. Returns ok=false when the store
	// refused the write under pressure.
	Set(ctx context.Context, key string, value []byte, cost int64, ttl time.Duration) (ok bool, err error)

	// Del removes a key (best-effort).
	Del(ctx context.Context, key string) error

	// Close releases resources.
	Close(ctx context.Context) error
}
