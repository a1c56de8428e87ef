// Package storage provides abstractions for holding live calculator sessions.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/mmynk/tipwiser/internal/engine"
	"github.com/mmynk/tipwiser/internal/models"
)

var (
	// ErrSessionNotFound is returned for IDs that never existed, were ended or expired.
	ErrSessionNotFound = errors.New("session not found")
	// ErrTooManySessions is returned by Create when the store is at capacity.
	ErrTooManySessions = errors.New("too many active sessions")
)

// Store defines the interface for session operations.
// Implementations must give fn exclusive access to a session's engine
// for the duration of the call.
type Store interface {
	// Create starts a new session with a fresh engine.
	Create(ctx context.Context) (models.SessionInfo, error)

	// Update runs fn against the session's engine and returns the snapshot
	// taken after fn returns.
	Update(ctx context.Context, id string, fn func(*engine.Engine)) (models.Snapshot, error)

	// View runs fn against the session's engine. fn must not mutate it.
	View(ctx context.Context, id string, fn func(*engine.Engine)) error

	// Delete ends a session.
	Delete(ctx context.Context, id string) error

	// Sweep removes sessions idle since before now minus the store's TTL and
	// returns how many were removed.
	Sweep(ctx context.Context, now time.Time) int

	// Len reports the number of live sessions.
	Len() int
}
