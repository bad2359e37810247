package ports

import (
	"context"
	"time"
)

// ResponseCache stores generated text keyed by an opaque string.
// Implementations must be safe for concurrent use.
type ResponseCache interface {
	// Get returns the cached value and true, or false on a miss.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key. A zero ttl means no expiration.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}
