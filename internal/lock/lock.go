// Package lock serializes the booking accept-or-reject decision per
// salon-day key.
package lock

import (
	"context"
	"errors"
)

// ErrNotAcquired is returned when the lock is held by someone else.
var ErrNotAcquired = errors.New("lock not acquired")

// Locker runs fn while holding the lock for key. Exactly one caller per key
// is inside fn at a time.
type Locker interface {
	WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error
}
