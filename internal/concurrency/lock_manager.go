package concurrency

import (
	"context"
	"sync"
)

// LockManager hands out exclusive per-key locks. Each lock is a one-slot
// channel so waiters can give up when their context is cancelled.
type LockManager struct {
	locks sync.Map
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{}
}

func (lm *LockManager) slot(key string) chan struct{} {
	lock, _ := lm.locks.LoadOrStore(key, make(chan struct{}, 1))
	return lock.(chan struct{})
}

// Acquire blocks until the lock for key is held or ctx is done. The returned
// release func must be called exactly once.
func (lm *LockManager) Acquire(ctx context.Context, key string) (func(), error) {
	slot := lm.slot(key)
	select {
	case slot <- struct{}{}:
		var once sync.Once
		return func() { once.Do(func() { <-slot }) }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// TryAcquire takes the lock for key without blocking
func (lm *LockManager) TryAcquire(key string) (func(), bool) {
	slot := lm.slot(key)
	select {
	case slot <- struct{}{}:
		var once sync.Once
		return func() { once.Do(func() { <-slot }) }, true
	default:
		return nil, false
	}
}
