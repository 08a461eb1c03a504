package repository

import (
	"context"
	"sync"
	"time"
)

// MemoryRateLimiter is the in-process fallback used when redis is
// disabled or unreachable.
type MemoryRateLimiter struct {
	mu      sync.Mutex
	windows map[string]*windowEntry
}

func NewMemoryRateLimiter() *MemoryRateLimiter {
	return &MemoryRateLimiter{
		windows: make(map[string]*windowEntry),
	}
}

type windowEntry struct {
	count     int
	expiresAt time.Time
}

func (r *MemoryRateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	entry, ok := r.windows[key]
	if !ok || now.After(entry.expiresAt) {
		r.windows[key] = &windowEntry{
			count:     1,
			expiresAt: now.Add(window),
		}
		return limit >= 1, nil
	}

	entry.count++
	return entry.count <= limit, nil
}
