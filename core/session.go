package core

import "time"

// DefaultTitle is the title of a freshly created session before the first
// user message names it.
const DefaultTitle = "New Chat"

// TitleRuneLimit bounds derived session titles; longer first messages are
// truncated and marked with an ellipsis.
const TitleRuneLimit = 50

// Session represents one chat conversation: an ordered message log bound to
// a provider, model and feature mode.
//
// Contract:
//   - Title is derived once from the first user message and immutable
//     thereafter unless explicitly renamed
//   - Messages is append-only insertion order; entries are removed only by
//     whole-session deletion or an explicit clear
//   - mutation happens exclusively through the session store, which bumps
//     Updated on every change
type Session struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Messages []Message `json:"messages"`
	Provider string    `json:"provider"`
	Model    string    `json:"model"`
	Mode     Mode      `json:"mode"`
	Created  time.Time `json:"created"`
	Updated  time.Time `json:"updated"`
}

// NewSession creates an empty session bound to the given mode, provider and
// model.
func NewSession(mode Mode, providerID, modelID string) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:       NewID(),
		Title:    DefaultTitle,
		Messages: []Message{},
		Provider: providerID,
		Model:    modelID,
		Mode:     mode,
		Created:  now,
		Updated:  now,
	}
}

// Clone returns a deep copy of the session safe for independent mutation.
func (s *Session) Clone() *Session {
	clone := *s
	clone.Messages = make([]Message, len(s.Messages))
	for i, m := range s.Messages {
		clone.Messages[i] = m.Clone()
	}
	return &clone
}

// Turns returns the conversational history suitable for a provider request:
// user and assistant messages in order, excluding system entries and any
// still-streaming placeholder.
func (s *Session) Turns() []Turn {
	turns := make([]Turn, 0, len(s.Messages))
	for _, m := range s.Messages {
		if m.Streaming {
			continue
		}
		if m.Role != RoleUser && m.Role != RoleAssistant {
			continue
		}
		turns = append(turns, Turn{Role: m.Role, Content: m.Content})
	}
	return turns
}

// DeriveTitle produces a session title from the first user message: the
// first TitleRuneLimit runes, with "..." appended when truncation occurred.
func DeriveTitle(content string) string {
	runes := []rune(content)
	if len(runes) <= TitleRuneLimit {
		return content
	}
	return string(runes[:TitleRuneLimit]) + "..."
}
