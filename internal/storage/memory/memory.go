// Package memory implements storage.Store in process memory.
// Sessions are never written anywhere else and vanish with the process.
package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mmynk/tipwiser/internal/engine"
	"github.com/mmynk/tipwiser/internal/models"
	"github.com/mmynk/tipwiser/internal/storage"
)

// Options configures a Store. Zero values mean no limit.
type Options struct {
	// TTL is how long a session may stay idle before Sweep removes it.
	TTL time.Duration
	// MaxSessions caps the number of live sessions.
	MaxSessions int
	// Now overrides the clock, for tests.
	Now func() time.Time
}

type session struct {
	mu       sync.Mutex
	info     models.SessionInfo
	engine   *engine.Engine
	lastSeen time.Time
}

// Store is an in-memory session store.
type Store struct {
	opts Options

	mu       sync.RWMutex
	sessions map[string]*session
}

var _ storage.Store = (*Store)(nil)

// New creates an empty store.
func New(opts Options) *Store {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Store{
		opts:     opts,
		sessions: make(map[string]*session),
	}
}

// Create starts a session with a fresh engine and a random UUID.
func (s *Store) Create(ctx context.Context) (models.SessionInfo, error) {
	now := s.opts.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.opts.MaxSessions > 0 && len(s.sessions) >= s.opts.MaxSessions {
		return models.SessionInfo{}, fmt.Errorf("create session: %w", storage.ErrTooManySessions)
	}

	sess := &session{
		info: models.SessionInfo{
			ID:        uuid.New().String(),
			CreatedAt: now,
		},
		engine:   engine.New(),
		lastSeen: now,
	}
	s.sessions[sess.info.ID] = sess

	slog.Debug("Session created", "session_id", sess.info.ID, "active", len(s.sessions))
	return sess.info, nil
}

func (s *Store) lookup(id string) (*session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, storage.ErrSessionNotFound)
	}
	return sess, nil
}

// Update runs fn with exclusive access to the session and returns the
// resulting snapshot. It refreshes the session's idle timer.
func (s *Store) Update(ctx context.Context, id string, fn func(*engine.Engine)) (models.Snapshot, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return models.Snapshot{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	fn(sess.engine)
	sess.lastSeen = s.opts.Now()
	return sess.engine.Snapshot(), nil
}

// View runs fn with exclusive access to the session and refreshes its idle timer.
func (s *Store) View(ctx context.Context, id string, fn func(*engine.Engine)) error {
	sess, err := s.lookup(id)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	fn(sess.engine)
	sess.lastSeen = s.opts.Now()
	return nil
}

// Delete ends a session.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return fmt.Errorf("session %s: %w", id, storage.ErrSessionNotFound)
	}
	delete(s.sessions, id)
	return nil
}

// Sweep removes sessions idle longer than the TTL. It is a no-op without a TTL.
func (s *Store) Sweep(ctx context.Context, now time.Time) int {
	if s.opts.TTL <= 0 {
		return 0
	}
	cutoff := now.Add(-s.opts.TTL)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		sess.mu.Lock()
		idle := sess.lastSeen.Before(cutoff)
		sess.mu.Unlock()
		if idle {
			delete(s.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		slog.Info("Expired idle sessions", "removed", removed, "active", len(s.sessions))
	}
	return removed
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// RunSweeper calls Sweep every interval until ctx is cancelled.
// onSweep, if set, receives the number of sessions removed by each pass.
func (s *Store) RunSweeper(ctx context.Context, interval time.Duration, onSweep func(removed int)) {
	if interval <= 0 || s.opts.TTL <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed := s.Sweep(ctx, s.opts.Now())
			if onSweep != nil {
				onSweep(removed)
			}
		}
	}
}
