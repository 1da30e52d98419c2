// Package remote defines the contract of the realtime document store: a
// JSON tree addressed by slash-separated paths, with push-append, field
// merge and change listeners.
package remote

import (
	"context"
	"errors"
)

var (
	ErrInvalidPath = errors.New("remote: invalid path")
	ErrClosed      = errors.New("remote: store closed")
)

// Store is implemented by memstore and gormstore. Writes return once the
// store has applied them; listeners on affected paths are notified after.
type Store interface {
	Get(ctx context.Context, path string) (Snapshot, error)
	// Set replaces the value at path; a nil value removes it.
	Set(ctx context.Context, path string, value any) error
	// Push stores value under a new time-ordered key below path.
	Push(ctx context.Context, path string, value any) (string, error)
	// Update merges fields into the object at path. Field names may be
	// relative paths.
	Update(ctx context.Context, path string, fields map[string]any) error
	// Listen registers l for path. l receives the current snapshot first,
	// then one snapshot per change at, above or below path.
	Listen(path string, l Listener) (Registration, error)
}

// Listener callbacks run on the store's dispatch goroutine and must not
// block or call back into the store.
type Listener interface {
	OnData(Snapshot)
	// OnCancelled ends the registration; no callbacks follow it.
	OnCancelled(error)
}

type Registration interface {
	// Remove is idempotent. Once it returns, the listener receives nothing
	// more.
	Remove()
}
