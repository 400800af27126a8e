package session

import (
	"sync"
	"time"

	"github.com/hupe1980/chatmesh/core"
)

// Options configure a Store.
type Options struct {
	// Mode is the initial feature mode. Defaults to core.ModeChat.
	Mode core.Mode
}

// Store owns the set of chat sessions, the active session pointer and the
// current feature mode. Safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	sessions  []*core.Session // newest first
	activeID  string
	mode      core.Mode
	listeners []func()
}

// NewStore constructs an empty session store.
func NewStore(optFns ...func(o *Options)) *Store {
	opts := Options{Mode: core.ModeChat}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Store{sessions: []*core.Session{}, mode: opts.Mode}
}

// OnChange registers a listener invoked after every structural mutation
// (create, delete, rename, clear, append, terminal patch, active/mode
// change). Listeners run synchronously on the mutating goroutine, after the
// store lock is released; a listener may read or mutate the store but must
// guard against its own re-entrancy.
func (s *Store) OnChange(fn func()) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

func (s *Store) notify() {
	s.mu.RLock()
	listeners := s.listeners
	s.mu.RUnlock()
	for _, fn := range listeners {
		fn()
	}
}

// Create allocates a new session with an empty message log and title
// "New Chat", inserts it at the front of the collection and marks it active.
// The store's current mode follows the new session's mode. Always succeeds.
func (s *Store) Create(mode core.Mode, providerID, modelID string) string {
	sess := core.NewSession(mode, providerID, modelID)

	s.mu.Lock()
	s.sessions = append([]*core.Session{sess}, s.sessions...)
	s.activeID = sess.ID
	s.mode = mode
	s.mu.Unlock()

	s.notify()
	return sess.ID
}

// Delete removes the session. If it was active, the next-most-recent
// remaining session becomes active, or none when the collection is empty.
// Idempotent when the id is absent.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	s.sessions = append(s.sessions[:idx], s.sessions[idx+1:]...)
	if s.activeID == id {
		s.activeID = ""
		if len(s.sessions) > 0 {
			s.activeID = s.sessions[0].ID
		}
	}
	s.mu.Unlock()

	s.notify()
}

// SetActive sets the active session pointer. Existence is not validated; an
// absent or empty id clears the selection silently.
func (s *Store) SetActive(id string) {
	s.mu.Lock()
	s.activeID = id
	s.mu.Unlock()

	s.notify()
}

// ActiveID returns the id of the active session, empty when none is selected.
func (s *Store) ActiveID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeID
}

// Active returns a clone of the active session.
func (s *Store) Active() (*core.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.indexLocked(s.activeID)
	if idx < 0 {
		return nil, false
	}
	return s.sessions[idx].Clone(), true
}

// Rename overwrites the session title. No-op when the id is absent.
func (s *Store) Rename(id, title string) {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	s.sessions[idx].Title = title
	s.sessions[idx].Updated = time.Now().UTC()
	s.mu.Unlock()

	s.notify()
}

// Clear resets a session's message log and title without destroying the
// session. No-op when the id is absent.
func (s *Store) Clear(id string) {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	s.sessions[idx].Messages = []core.Message{}
	s.sessions[idx].Title = core.DefaultTitle
	s.sessions[idx].Updated = time.Now().UTC()
	s.mu.Unlock()

	s.notify()
}

// SetMode switches the current feature mode.
func (s *Store) SetMode(m core.Mode) {
	s.mu.Lock()
	s.mode = m
	s.mu.Unlock()

	s.notify()
}

// Mode returns the current feature mode.
func (s *Store) Mode() core.Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// Get returns a clone of the identified session.
func (s *Store) Get(id string) (*core.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.indexLocked(id)
	if idx < 0 {
		return nil, false
	}
	return s.sessions[idx].Clone(), true
}

// List returns clones of all sessions, newest first.
func (s *Store) List() []*core.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*core.Session, len(s.sessions))
	for i, sess := range s.sessions {
		out[i] = sess.Clone()
	}
	return out
}

// ActiveMessages returns a snapshot of the active session's message log, nil
// when no session is selected.
func (s *Store) ActiveMessages() []core.Message {
	sess, ok := s.Active()
	if !ok {
		return nil
	}
	return sess.Messages
}

// indexLocked returns the position of id in the session slice; caller must
// hold at least a read lock.
func (s *Store) indexLocked(id string) int {
	if id == "" {
		return -1
	}
	for i, sess := range s.sessions {
		if sess.ID == id {
			return i
		}
	}
	return -1
}
