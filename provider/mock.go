package provider

import (
	"context"
	"fmt"
)

// MockProvider is a lightweight in-memory Provider useful for tests and for
// keyless demo operation. It streams canned completions rune by rune,
// observing ctx between yields like a real adapter.
type MockProvider struct {
	info      Info
	responses map[string]string
}

// NewMockProvider constructs a MockProvider.
func NewMockProvider(id string) *MockProvider {
	return &MockProvider{
		info:      Info{ID: id, Name: "Mock"},
		responses: make(map[string]string),
	}
}

// AddResponse registers a deterministic canned completion for an input prompt.
func (m *MockProvider) AddResponse(prompt, response string) { m.responses[prompt] = response }

// Open implements Provider; emits streaming rune chunks then closes.
func (m *MockProvider) Open(ctx context.Context, req Request) (<-chan Delta, <-chan error) {
	out := make(chan Delta, 16)
	errCh := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(errCh)

		if len(req.Turns) == 0 {
			errCh <- &ProviderError{Provider: m.info.ID, Message: "no turns provided"}
			return
		}
		input := req.Turns[len(req.Turns)-1].Content
		full := m.responses[input]
		if full == "" {
			full = fmt.Sprintf("Mock response to: %s", input)
		}

		for _, r := range full {
			select {
			case <-ctx.Done():
				return
			case out <- Delta{Text: string(r)}:
			}
		}
	}()

	return out, errCh
}

// Info implements the Provider interface.
func (m *MockProvider) Info() Info { return m.info }

// MockFactory serves every configuration with a MockProvider. Useful as the
// default adapter wiring in tests and demos.
func MockFactory(cfg Config, modelID string) (Provider, error) {
	return NewMockProvider(cfg.ID), nil
}
