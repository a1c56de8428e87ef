package memory

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/mmynk/tipwiser/internal/engine"
	"github.com/mmynk/tipwiser/internal/storage"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestMemoryStore(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	store := New(Options{TTL: 10 * time.Minute, Now: clock.Now})
	ctx := context.Background()

	t.Run("Create generates ID", func(t *testing.T) {
		info, err := store.Create(ctx)
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if info.ID == "" {
			t.Error("Expected session ID to be generated")
		}
		if !info.CreatedAt.Equal(clock.Now()) {
			t.Errorf("CreatedAt = %v, want %v", info.CreatedAt, clock.Now())
		}
	})

	t.Run("Update returns snapshot after write", func(t *testing.T) {
		info, err := store.Create(ctx)
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}

		snap, err := store.Update(ctx, info.ID, func(e *engine.Engine) {
			e.SetBillText("200")
			e.SetSplitCount(4)
			e.SetTipFraction(0.15)
		})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if math.Abs(snap.TotalPerPerson-57.5) > 0.001 {
			t.Errorf("total = %v, want 57.5", snap.TotalPerPerson)
		}

		var split int
		if err := store.View(ctx, info.ID, func(e *engine.Engine) { split = e.SplitCount() }); err != nil {
			t.Fatalf("View failed: %v", err)
		}
		if split != 4 {
			t.Errorf("split = %d, want 4", split)
		}
	})

	t.Run("sessions are isolated", func(t *testing.T) {
		a, _ := store.Create(ctx)
		b, _ := store.Create(ctx)

		if _, err := store.Update(ctx, a.ID, func(e *engine.Engine) { e.SetBillText("99") }); err != nil {
			t.Fatalf("Update failed: %v", err)
		}

		snap, err := store.Update(ctx, b.ID, func(*engine.Engine) {})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
		if snap.IsValidBill {
			t.Errorf("session b changed by write to a: %+v", snap)
		}
	})

	t.Run("unknown session", func(t *testing.T) {
		_, err := store.Update(ctx, "nope", func(*engine.Engine) {})
		if !errors.Is(err, storage.ErrSessionNotFound) {
			t.Errorf("expected ErrSessionNotFound, got %v", err)
		}
		if err := store.Delete(ctx, "nope"); !errors.Is(err, storage.ErrSessionNotFound) {
			t.Errorf("expected ErrSessionNotFound on delete, got %v", err)
		}
	})

	t.Run("Delete ends session", func(t *testing.T) {
		info, _ := store.Create(ctx)
		if err := store.Delete(ctx, info.ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if err := store.View(ctx, info.ID, func(*engine.Engine) {}); !errors.Is(err, storage.ErrSessionNotFound) {
			t.Errorf("expected ErrSessionNotFound after delete, got %v", err)
		}
	})
}

func TestMemoryStore_Sweep(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	store := New(Options{TTL: 5 * time.Minute, Now: clock.Now})
	ctx := context.Background()

	stale, _ := store.Create(ctx)
	clock.Advance(4 * time.Minute)
	fresh, _ := store.Create(ctx)
	clock.Advance(2 * time.Minute)

	if removed := store.Sweep(ctx, clock.Now()); removed != 1 {
		t.Fatalf("Sweep removed %d, want 1", removed)
	}
	if err := store.View(ctx, stale.ID, func(*engine.Engine) {}); !errors.Is(err, storage.ErrSessionNotFound) {
		t.Errorf("stale session still present: %v", err)
	}
	if err := store.View(ctx, fresh.ID, func(*engine.Engine) {}); err != nil {
		t.Errorf("fresh session removed: %v", err)
	}

	// View counts as activity.
	clock.Advance(4 * time.Minute)
	if removed := store.Sweep(ctx, clock.Now()); removed != 0 {
		t.Errorf("Sweep removed %d, want 0", removed)
	}
	if store.Len() != 1 {
		t.Errorf("Len = %d, want 1", store.Len())
	}
}

func TestMemoryStore_NoTTLNeverSweeps(t *testing.T) {
	store := New(Options{})
	ctx := context.Background()
	store.Create(ctx)

	if removed := store.Sweep(ctx, time.Now().Add(24*time.Hour)); removed != 0 {
		t.Errorf("Sweep removed %d without TTL", removed)
	}
}

func TestMemoryStore_MaxSessions(t *testing.T) {
	store := New(Options{MaxSessions: 2})
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := store.Create(ctx); err != nil {
			t.Fatalf("Create %d failed: %v", i, err)
		}
	}
	if _, err := store.Create(ctx); !errors.Is(err, storage.ErrTooManySessions) {
		t.Errorf("expected ErrTooManySessions, got %v", err)
	}
}

func TestMemoryStore_ConcurrentUpdates(t *testing.T) {
	store := New(Options{})
	ctx := context.Background()
	info, _ := store.Create(ctx)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Update(ctx, info.ID, func(e *engine.Engine) { e.IncrementSplit() })
		}()
	}
	wg.Wait()

	snap, err := store.Update(ctx, info.ID, func(*engine.Engine) {})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if snap.SplitCount != 51 {
		t.Errorf("split = %d, want 51", snap.SplitCount)
	}
}

func TestRunSweeper_StopsOnCancel(t *testing.T) {
	store := New(Options{TTL: time.Nanosecond})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		store.RunSweeper(ctx, time.Millisecond, nil)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancel")
	}
}
