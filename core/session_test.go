package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveTitle(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"short", "Hello", "Hello"},
		{"exact limit", strings.Repeat("a", 50), strings.Repeat("a", 50)},
		{"truncated", strings.Repeat("a", 80), strings.Repeat("a", 50) + "..."},
		{"multibyte runes counted not bytes", strings.Repeat("ü", 60), strings.Repeat("ü", 50) + "..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveTitle(tt.content))
		})
	}
}

func TestSessionTurnsExcludesStreamingAndSystem(t *testing.T) {
	s := NewSession(ModeChat, "openai", "gpt-4o-mini")
	s.Messages = []Message{
		{ID: NewID(), Role: RoleSystem, Content: "instructions"},
		{ID: NewID(), Role: RoleUser, Content: "Hello"},
		{ID: NewID(), Role: RoleAssistant, Content: "Hi there!"},
		{ID: NewID(), Role: RoleUser, Content: "More"},
		{ID: NewID(), Role: RoleAssistant, Content: "", Streaming: true},
	}

	turns := s.Turns()

	assert.Equal(t, []Turn{
		{Role: RoleUser, Content: "Hello"},
		{Role: RoleAssistant, Content: "Hi there!"},
		{Role: RoleUser, Content: "More"},
	}, turns)
}

func TestSessionCloneIsIndependent(t *testing.T) {
	s := NewSession(ModeCode, "anthropic", "claude-3-5-sonnet-20241022")
	s.Messages = append(s.Messages, Message{ID: "m1", Role: RoleUser, Content: "original", Attachments: []Attachment{{ID: "a1", Name: "f.txt"}}})

	clone := s.Clone()
	clone.Messages[0].Content = "mutated"
	clone.Messages[0].Attachments[0].Name = "other.txt"
	clone.Title = "renamed"

	assert.Equal(t, "original", s.Messages[0].Content)
	assert.Equal(t, "f.txt", s.Messages[0].Attachments[0].Name)
	assert.Equal(t, DefaultTitle, s.Title)
}

func TestModeValid(t *testing.T) {
	for _, m := range Modes() {
		assert.True(t, m.Valid(), string(m))
	}
	assert.False(t, Mode("yolo").Valid())
}
