package session

import (
	"github.com/hupe1980/chatmesh/core"
)

// Snapshot is the serializable projection of the store: the session
// collection (newest first), the active session pointer and the current
// feature mode. Streaming flags are cleared on capture, since in-flight
// generation state never survives a reload.
type Snapshot struct {
	Sessions []*core.Session `json:"sessions"`
	ActiveID string          `json:"active_id"`
	Mode     core.Mode       `json:"mode"`
}

// Snapshot captures a deep copy of the current store state. limit bounds the
// number of sessions kept, newest first; zero or negative keeps all.
func (s *Store) Snapshot(limit int) *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.sessions)
	if limit > 0 && limit < n {
		n = limit
	}
	sessions := make([]*core.Session, n)
	for i := 0; i < n; i++ {
		clone := s.sessions[i].Clone()
		for j := range clone.Messages {
			clone.Messages[j].Streaming = false
		}
		sessions[i] = clone
	}

	return &Snapshot{Sessions: sessions, ActiveID: s.activeID, Mode: s.mode}
}

// Restore replaces the store state with the snapshot contents. A nil
// snapshot resets to empty defaults. Change listeners do not fire: restore
// is the load path, not a user mutation.
func (s *Store) Restore(snap *Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if snap == nil {
		s.sessions = []*core.Session{}
		s.activeID = ""
		s.mode = core.ModeChat
		return
	}

	s.sessions = make([]*core.Session, len(snap.Sessions))
	for i, sess := range snap.Sessions {
		s.sessions[i] = sess.Clone()
	}
	s.activeID = snap.ActiveID
	s.mode = snap.Mode
	if s.mode == "" {
		s.mode = core.ModeChat
	}
}
