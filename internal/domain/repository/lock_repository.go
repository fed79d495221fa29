package repository

import (
	"context"
	"time"
)

// LockRepository is a coarse mutual-exclusion primitive used to keep two
// scrape runs from overlapping. The TTL bounds how long a crashed run can
// keep the lock held.
type LockRepository interface {
	// Acquire takes the named lock; returns false when already held.
	Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error)

	// Release frees the named lock. Releasing an expired or unheld lock
	// is not an error.
	Release(ctx context.Context, name string) error
}
