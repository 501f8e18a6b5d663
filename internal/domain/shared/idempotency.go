package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers client-supplied request keys for a while so a
// replayed write is refused instead of applied twice
type IdempotencyStore interface {
	// Claim records key for ttl. It returns false when the key is already held.
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release forgets key so the request can be retried
	Release(ctx context.Context, key string) error

	// Close closes the store and releases resources
	Close() error
}
