package engine

import (
	"context"
	"strings"
	"sync"
)

// Status is the lifecycle state of a Generation.
type Status string

const (
	// StatusRunning means deltas are still being consumed.
	StatusRunning Status = "running"
	// StatusFinished means the upstream sequence completed normally.
	StatusFinished Status = "finished"
	// StatusErrored means the upstream sequence failed.
	StatusErrored Status = "errored"
	// StatusAborted means the generation was stopped explicitly; partial
	// content is preserved.
	StatusAborted Status = "aborted"
)

// Generation represents one in-flight stream bound to a session. It is owned
// exclusively by the engine, which destroys it on any terminal transition;
// callers hold it only to observe progress, wait for completion or stop it.
type Generation struct {
	sessionID string
	messageID string
	cancel    context.CancelFunc
	done      chan struct{}

	mu     sync.Mutex
	buf    strings.Builder
	deltas int
	status Status
	err    error
}

func newGeneration(sessionID, messageID string, cancel context.CancelFunc) *Generation {
	return &Generation{
		sessionID: sessionID,
		messageID: messageID,
		cancel:    cancel,
		done:      make(chan struct{}),
		status:    StatusRunning,
	}
}

// SessionID returns the id of the owning session.
func (g *Generation) SessionID() string { return g.sessionID }

// MessageID returns the id of the placeholder message being patched.
func (g *Generation) MessageID() string { return g.messageID }

// Done returns a channel closed when the generation reaches a terminal
// status.
func (g *Generation) Done() <-chan struct{} { return g.done }

// Status returns the current lifecycle state.
func (g *Generation) Status() Status {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.status
}

// Err returns the terminal error, nil unless Status is StatusErrored.
func (g *Generation) Err() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.err
}

// Text returns the accumulated text so far.
func (g *Generation) Text() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.buf.String()
}

// Deltas returns how many deltas have been consumed.
func (g *Generation) Deltas() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.deltas
}

// Stop cancels the generation's token. The adapter stops producing promptly;
// the placeholder keeps its partial content. Safe to call repeatedly.
func (g *Generation) Stop() { g.cancel() }

// append adds a delta to the buffer and returns the accumulated total.
func (g *Generation) append(text string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.buf.WriteString(text)
	g.deltas++
	return g.buf.String()
}

// finish records the terminal status and releases waiters.
func (g *Generation) finish(status Status, err error) {
	g.mu.Lock()
	g.status = status
	g.err = err
	g.mu.Unlock()
	close(g.done)
}
