// Package session implements the in-memory session store and message ledger:
// the single owner of all chat state. The store is a pure state container
// with no I/O; persistence attaches from the outside through the OnChange
// listener (see the state package).
//
// All mutations are atomic replace-on-identifier operations guarded by one
// RWMutex, and every read hands out defensive clones, so readers never
// observe partial structural edits. The engine relies on this to make delta
// patches race-free against user actions.
package session
