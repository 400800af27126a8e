package core

import "time"

// Role identifies the author of a message.
type Role string

const (
	// RoleUser marks messages authored by the end user.
	RoleUser Role = "user"
	// RoleAssistant marks messages produced by a provider.
	RoleAssistant Role = "assistant"
	// RoleSystem marks injected system messages.
	RoleSystem Role = "system"
)

// Attachment is a file attached to a message. Read-only once attached: the
// ledger never mutates attachments after Append.
type Attachment struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	MimeType string `json:"mime_type,omitempty"` // MIME-type hint, may be empty
	Size     int64  `json:"size"`
	URI      string `json:"uri,omitempty"`     // dereferenceable handle
	Content  string `json:"content,omitempty"` // inline content, if small enough to carry
}

// Message is one entry of a session's ordered log.
//
// Contract:
//   - ID never changes and is unique within the session
//   - user message content is immutable once appended
//   - assistant content is mutable only while Streaming is true
//   - at most one message per session has Streaming set at any time
type Message struct {
	ID          string       `json:"id"`
	Role        Role         `json:"role"`
	Content     string       `json:"content"`
	Attachments []Attachment `json:"attachments,omitempty"`
	Streaming   bool         `json:"streaming,omitempty"`
	Created     time.Time    `json:"created"`
}

// Clone returns a deep copy of the message.
func (m Message) Clone() Message {
	c := m
	if len(m.Attachments) > 0 {
		c.Attachments = make([]Attachment, len(m.Attachments))
		copy(c.Attachments, m.Attachments)
	}
	return c
}

// MessagePatch carries the fields of a message that may be merged in place
// during streaming. Nil fields are left untouched.
type MessagePatch struct {
	Content   *string
	Streaming *bool
}

// Turn is one role-tagged entry of the prior conversation handed to a
// provider adapter, oldest first.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
