// Package state implements the local persisted-state boundary: a key-value
// store holding the serializable projection of the session store (the most
// recent sessions, the active session id and the current feature mode).
// Snapshots are loaded at start and written on every structural mutation;
// a missing saved value falls back to empty defaults without failure.
//
// Two drivers ship in this package: a volatile in-memory store for tests and
// demos, and a Redis store for durable local state. Additional backends can
// be added behind the same Store interface without changing calling code.
package state

import (
	"context"
	"errors"

	"github.com/hupe1980/chatmesh/session"
)

// MaxSessions bounds how many sessions a saved snapshot retains, newest
// first.
const MaxSessions = 50

// Common errors for state store operations.
var (
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrInvalidStoreType = errors.New("invalid store type")
)

// Store persists and reloads snapshots of the session store.
type Store interface {
	// Load retrieves the saved snapshot. Returns (nil, nil) when nothing
	// has been saved yet; callers fall back to empty defaults.
	Load(ctx context.Context) (*session.Snapshot, error)

	// Save persists the snapshot, replacing any previous value.
	Save(ctx context.Context, snap *session.Snapshot) error

	// Close releases any resources held by the store.
	Close() error
}
