package idempotency

import (
	"context"
	"sync"
	"time"
)

// MemoryLocker is a process-local Locker for tests and single-instance
// deployments without Redis.
type MemoryLocker struct {
	mu   sync.Mutex
	held map[string]time.Time
	now  func() time.Time
}

func NewMemoryLocker(now func() time.Time) *MemoryLocker {
	if now == nil {
		now = time.Now
	}
	return &MemoryLocker{held: make(map[string]time.Time), now: now}
}

func (l *MemoryLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if expiry, ok := l.held[key]; ok && l.now().Before(expiry) {
		return false, nil
	}
	l.held[key] = l.now().Add(ttl)
	return true, nil
}

func (l *MemoryLocker) Release(ctx context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, key)
	return nil
}
