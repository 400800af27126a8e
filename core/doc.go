// Package core defines the domain contracts shared by every layer of
// chatmesh: sessions, messages, attachments, feature modes and the
// conversational turn shape handed to provider adapters.
//
// Core goals:
//   - Keep the types plain and transport independent
//   - Centralize invariants (title derivation, history filtering) so
//     stores and the engine cannot drift apart
//   - Provide defensive cloning so callers never observe in-place edits
//
// Higher layers (session store, engine, providers) depend on this package
// only; it depends on nothing but the standard library and uuid.
package core
