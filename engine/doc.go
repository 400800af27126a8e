// Package engine implements the streaming orchestrator: the state machine
// that turns a user submission into a provider stream and reconciles that
// stream into mutable message state.
//
// # State machine
//
// Per session: Idle → Submitting → Streaming → {Finished | Errored |
// Aborted} → Idle. At most one Generation exists per session; a second
// Submit on a busy session is a silent no-op (debounce, not an error).
// A missing credential fails the Submitting transition closed before any
// ledger mutation.
//
// # Concurrency
//
// Each generation runs in its own goroutine, consuming the adapter's delta
// channel and patching the placeholder message with the accumulated buffer
// (wholesale, never delta-appended, so an observed patch can never show
// fewer characters than an earlier one). Switching the active session, changing the
// mode or deleting a session does NOT cancel a running generation: the
// stream keeps patching its owning session's ledger in the background, and
// patches against a deleted session are absorbed by the store. Only an
// explicit Stop or natural completion ends a stream; Stop preserves whatever
// partial content had accumulated.
//
// # Error handling
//
// Mid-stream failures terminate only the one generation: the placeholder is
// finalized with a sanitized error string (never the credential) and the
// session remains usable for a new submission. No retries are performed.
package engine
