package lock

import (
	"context"
	"sync"
)

type localLocker struct {
	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

// NewLocalLocker returns an in-process keyed mutex. Suitable for a single
// node and for tests; multi-node deployments use NewRedisLocker. Unlike the
// Redis locker it blocks until the key is free instead of failing fast.
func NewLocalLocker() Locker {
	return &localLocker{entries: make(map[string]*entry)}
}

func (l *localLocker) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	e := l.acquire(key)
	e.mu.Lock()
	defer func() {
		e.mu.Unlock()
		l.put(key, e)
	}()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx)
}

func (l *localLocker) acquire(key string) *entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.entries[key]
	if !ok {
		e = &entry{}
		l.entries[key] = e
	}
	e.refs++
	return e
}

func (l *localLocker) put(key string, e *entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(l.entries, key)
	}
}
