package session

import (
	"time"

	"github.com/hupe1980/chatmesh/core"
)

// Append creates a message and appends it to the end of the session's log,
// bumping the session's Updated timestamp. If this is the first message and
// the role is user, the session title is derived from the content. Returns
// the new message id, or empty when the session is absent.
func (s *Store) Append(sessionID string, role core.Role, content string, attachments []core.Attachment) string {
	s.mu.Lock()
	idx := s.indexLocked(sessionID)
	if idx < 0 {
		s.mu.Unlock()
		return ""
	}
	sess := s.sessions[idx]

	msg := core.Message{
		ID:          core.NewID(),
		Role:        role,
		Content:     content,
		Attachments: attachments,
		Created:     time.Now().UTC(),
	}
	if len(sess.Messages) == 0 && role == core.RoleUser {
		sess.Title = core.DeriveTitle(content)
	}
	sess.Messages = append(sess.Messages, msg)
	sess.Updated = time.Now().UTC()
	s.mu.Unlock()

	s.notify()
	return msg.ID
}

// AppendStreaming appends an empty assistant placeholder with the streaming
// flag set, to be patched in place as deltas arrive.
func (s *Store) AppendStreaming(sessionID string) string {
	s.mu.Lock()
	idx := s.indexLocked(sessionID)
	if idx < 0 {
		s.mu.Unlock()
		return ""
	}
	sess := s.sessions[idx]

	msg := core.Message{
		ID:        core.NewID(),
		Role:      core.RoleAssistant,
		Streaming: true,
		Created:   time.Now().UTC(),
	}
	sess.Messages = append(sess.Messages, msg)
	sess.Updated = time.Now().UTC()
	s.mu.Unlock()

	s.notify()
	return msg.ID
}

// Patch merges the given fields into the identified message. Silent no-op
// when the session or message does not exist: late-arriving patches can race
// against session deletion and must never fail.
//
// Change listeners fire only for terminal patches (ones carrying the
// streaming flag); per-delta content patches are not flushed individually.
func (s *Store) Patch(sessionID, messageID string, patch core.MessagePatch) {
	s.mu.Lock()
	idx := s.indexLocked(sessionID)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	sess := s.sessions[idx]

	patched := false
	for i := range sess.Messages {
		if sess.Messages[i].ID != messageID {
			continue
		}
		if patch.Content != nil {
			sess.Messages[i].Content = *patch.Content
		}
		if patch.Streaming != nil {
			sess.Messages[i].Streaming = *patch.Streaming
		}
		patched = true
		break
	}
	if patched {
		sess.Updated = time.Now().UTC()
	}
	s.mu.Unlock()

	if patched && patch.Streaming != nil {
		s.notify()
	}
}
