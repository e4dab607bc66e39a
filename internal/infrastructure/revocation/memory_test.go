package revocation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestMemoryList_RevokeThenLookup(t *testing.T) {
	l := NewMemoryList(zerolog.Nop())
	ctx := context.Background()

	if err := l.Revoke(ctx, "k1", time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("Revoke: %v", err)
	}

	revoked, err := l.IsRevoked(ctx, "k1")
	if err != nil {
		t.Fatalf("IsRevoked: %v", err)
	}
	if !revoked {
		t.Fatalf("expected k1 to be revoked")
	}

	revoked, _ = l.IsRevoked(ctx, "other")
	if revoked {
		t.Fatalf("unknown key must not be revoked")
	}
}

// A revocation for an already-expired token is still retained for the minimum
// window, so revoke-then-validate sequences observe it.
func TestMemoryList_MinimumRetention(t *testing.T) {
	l := NewMemoryList(zerolog.Nop())
	ctx := context.Background()

	if err := l.Revoke(ctx, "stale", time.Now().Add(-time.Hour)); err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	revoked, _ := l.IsRevoked(ctx, "stale")
	if !revoked {
		t.Fatalf("entry must be retained for the minimum window")
	}
}

// Re-revoking must never shorten an existing entry.
func TestMemoryList_NoShortening(t *testing.T) {
	l := NewMemoryList(zerolog.Nop())
	ctx := context.Background()

	far := time.Now().Add(2 * time.Hour)
	_ = l.Revoke(ctx, "k", far)
	_ = l.Revoke(ctx, "k", time.Now().Add(time.Second))

	l.mu.RLock()
	deadline := l.entries["k"]
	l.mu.RUnlock()
	if !deadline.Equal(far) {
		t.Fatalf("deadline was shortened: %v", deadline)
	}
}

func TestMemoryList_SweepRemovesExpired(t *testing.T) {
	l := NewMemoryList(zerolog.Nop())
	ctx := context.Background()

	_ = l.Revoke(ctx, "short", time.Now().Add(time.Minute))
	_ = l.Revoke(ctx, "long", time.Now().Add(time.Hour))
	if l.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", l.Len())
	}

	removed := l.sweep(time.Now().Add(30 * time.Minute))
	if removed != 1 {
		t.Fatalf("expected 1 entry swept, got %d", removed)
	}
	if l.Len() != 1 {
		t.Fatalf("expected 1 entry left, got %d", l.Len())
	}

	revoked, _ := l.IsRevoked(ctx, "long")
	if !revoked {
		t.Fatalf("unexpired entry must survive the sweep")
	}
}

func TestMemoryList_ConcurrentAccess(t *testing.T) {
	l := NewMemoryList(zerolog.Nop())
	ctx := context.Background()
	deadline := time.Now().Add(time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(n byte) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = l.Revoke(ctx, string([]byte{'k', n, byte(j)}), deadline)
			}
		}(byte(i))
		go func(n byte) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_, _ = l.IsRevoked(ctx, string([]byte{'k', n, byte(j)}))
			}
		}(byte(i))
	}
	wg.Wait()

	if l.Len() != 800 {
		t.Fatalf("expected 800 entries, got %d", l.Len())
	}
}
