package cache

import (
	"context"
	"time"
)

// Cache is a best-effort key-value layer in front of read-heavy queries. A
// miss or a failed write must never fail the surrounding request; callers
// treat every operation as advisory.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration)
	InvalidateByPrefix(ctx context.Context, prefix string)
}
