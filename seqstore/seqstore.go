// Package seqstore hands out per-channel message sequence numbers for the relay.
package seqstore

import (
	"context"
	"time"
)

// SeqStore abstracts where sequence counters live.
// Use Local for a single process, Redis when several relays share a store.
type SeqStore interface {
	// Current returns the last issued sequence; missing => 0.
	Current(ctx context.Context, channel string) (uint64, error)
	// Next atomically increments and returns the new sequence. First call returns 1.
	Next(ctx context.Context, channel string) (uint64, error)
	// Cleanup prunes idle counters if applicable (no-op for Redis).
	Cleanup(retention time.Duration)
	// Close releases resources (no-op ok).
	Close(context.Context) error
}
