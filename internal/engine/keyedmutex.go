package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// keyedMutex provides per-key exclusive sections without a global
// bottleneck: locks are created lazily on first use and dropped again once
// no goroutine holds or waits for them. Different keys never contend.
type keyedMutex struct {
	mu       sync.Mutex
	locks    map[string]*keyLock
	slowWait time.Duration
}

type keyLock struct {
	// sem is a one-slot semaphore: send acquires, receive releases.
	// A channel (rather than sync.Mutex) keeps acquisition cancelable.
	sem  chan struct{}
	refs int
}

func newKeyedMutex(slowWait time.Duration) *keyedMutex {
	if slowWait <= 0 {
		slowWait = 5 * time.Second
	}
	return &keyedMutex{
		locks:    make(map[string]*keyLock),
		slowWait: slowWait,
	}
}

// Lock acquires the exclusive section for key, blocking until it is free
// or ctx expires. Waits longer than slowWait are logged once — a signal of
// a hot key starving writers.
func (m *keyedMutex) Lock(ctx context.Context, key string) error {
	m.mu.Lock()
	lock, exists := m.locks[key]
	if !exists {
		lock = &keyLock{sem: make(chan struct{}, 1)}
		m.locks[key] = lock
	}
	lock.refs++
	m.mu.Unlock()

	select {
	case lock.sem <- struct{}{}:
		return nil
	default:
	}

	warn := time.NewTimer(m.slowWait)
	defer warn.Stop()
	start := time.Now()

	for {
		select {
		case lock.sem <- struct{}{}:
			return nil
		case <-warn.C:
			slog.Warn("[KeyedMutex] Slow lock acquisition",
				"key", key,
				"waited", time.Since(start).Round(time.Millisecond),
			)
		case <-ctx.Done():
			m.release(key)
			return ctx.Err()
		}
	}
}

// Unlock releases the exclusive section for key.
func (m *keyedMutex) Unlock(key string) {
	m.mu.Lock()
	lock, exists := m.locks[key]
	m.mu.Unlock()
	if !exists {
		panic("keyedMutex: unlock of unlocked key " + key)
	}

	<-lock.sem
	m.release(key)
}

func (m *keyedMutex) release(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	lock := m.locks[key]
	lock.refs--
	if lock.refs == 0 {
		delete(m.locks, key)
	}
}

// size reports the number of live per-key locks. Test hook.
func (m *keyedMutex) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.locks)
}
