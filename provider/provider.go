package provider

import (
	"context"

	"github.com/hupe1980/chatmesh/core"
)

// Request captures the normalized input for one generation: the model to use,
// the mode's system instruction and the prior conversation, oldest first,
// excluding the still-streaming placeholder.
type Request struct {
	Model       string      `json:"model"`
	Instruction string      `json:"instruction"`
	Turns       []core.Turn `json:"turns"`
}

// Delta is one incremental chunk of generated text.
type Delta struct {
	Text string `json:"text"`
}

// Info contains metadata about a provider implementation.
type Info struct {
	ID   string `json:"id"`   // "openai", "anthropic", "mock", ...
	Name string `json:"name"` // Human readable name
}

// Provider is the minimal capability required by the engine to drive one
// generation.
//
// Open returns a channel of text deltas and an error channel. The delta
// channel is closed when the upstream sequence completes; a terminal failure
// is delivered on the error channel before both are closed. Implementations
// must observe ctx between yields and stop producing promptly once it is
// cancelled. Adapters perform no retries; retry policy belongs to callers.
type Provider interface {
	Open(ctx context.Context, req Request) (<-chan Delta, <-chan error)

	// Info returns information about the provider implementation.
	Info() Info
}
