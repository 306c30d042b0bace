package contracts

import (
	"context"
	"time"
)

// LockerService provides per-session mutual exclusion so concurrent turns for
// the same session are serialized, never merged.
type LockerService interface {
	TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error)
	Unlock(ctx context.Context, key, lockValue string) error
}
