// Package revocation provides the process-local revocation list backend.
package revocation

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/eventflow/identity-service/internal/api/metrics"
)

const (
	// minRetention keeps an entry around briefly even when the token it
	// blocks has already expired, so a revoke-then-validate sequence on an
	// expired token still observes the revocation.
	minRetention = time.Minute

	defaultSweepInterval = 5 * time.Minute
)

// MemoryList is a mutex-guarded revocation set keyed by token digest, with
// the entry's expiry stored as the value. Entries past their expiry are
// evicted lazily on lookup and periodically by the sweeper, bounding growth
// to tokens that could still otherwise validate.
type MemoryList struct {
	mu      sync.RWMutex
	entries map[string]time.Time
	log     zerolog.Logger
}

func NewMemoryList(log zerolog.Logger) *MemoryList {
	return &MemoryList{
		entries: make(map[string]time.Time),
		log:     log,
	}
}

// Revoke records the key until expiresAt (never before minRetention from now).
func (l *MemoryList) Revoke(_ context.Context, key string, expiresAt time.Time) error {
	floor := time.Now().Add(minRetention)
	if expiresAt.Before(floor) {
		expiresAt = floor
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	// Never shorten an existing entry; revocations are one-way.
	if current, ok := l.entries[key]; ok && current.After(expiresAt) {
		return nil
	}
	l.entries[key] = expiresAt
	return nil
}

// IsRevoked reports whether the key is present. A stale entry is treated as
// absent and dropped: the token it blocked is past its expiry, so it can
// never validate again anyway.
func (l *MemoryList) IsRevoked(_ context.Context, key string) (bool, error) {
	l.mu.RLock()
	deadline, ok := l.entries[key]
	l.mu.RUnlock()

	if !ok {
		return false, nil
	}
	if time.Now().After(deadline) {
		l.mu.Lock()
		// Re-check under the write lock; a concurrent Revoke may have
		// extended the entry.
		if d, ok := l.entries[key]; ok && time.Now().After(d) {
			delete(l.entries, key)
		}
		l.mu.Unlock()
		return false, nil
	}
	return true, nil
}

// Len returns the current number of entries.
func (l *MemoryList) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// StartSweeper launches a background goroutine that drops expired entries on
// a fixed interval. It stops when ctx is cancelled. An interval <= 0 falls
// back to the default.
func (l *MemoryList) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				l.log.Info().Msg("revocation sweeper stopped")
				return
			case <-ticker.C:
				removed := l.sweep(time.Now())
				if removed > 0 {
					l.log.Debug().Int("removed", removed).Msg("revocation sweep")
				}
				metrics.RevocationListSize.Set(float64(l.Len()))
			}
		}
	}()
}

func (l *MemoryList) sweep(now time.Time) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	removed := 0
	for key, deadline := range l.entries {
		if now.After(deadline) {
			delete(l.entries, key)
			removed++
		}
	}
	return removed
}
