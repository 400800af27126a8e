// Package anthropic implements provider.Provider on top of the vendor-native
// Anthropic Messages streaming API.
package anthropic

import (
	"context"
	"errors"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/hupe1980/chatmesh/core"
	"github.com/hupe1980/chatmesh/provider"
)

// Options configure the adapter (temperature, max tokens). Extend via
// functional options to preserve stability.
type Options struct {
	Temperature float64
	MaxTokens   int64
}

// Adapter wraps the Anthropic Messages API behind the generic
// provider.Provider interface.
type Adapter struct {
	client  *anthropic.Client
	cfg     provider.Config
	modelID string
	opts    Options
}

// New creates an adapter for the given provider configuration and model.
func New(cfg provider.Config, modelID string, optFns ...func(o *Options)) *Adapter {
	opts := Options{
		Temperature: 0.7,
		MaxTokens:   4096,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	client := anthropic.NewClient(option.WithAPIKey(cfg.APIKey))

	return &Adapter{client: &client, cfg: cfg, modelID: modelID, opts: opts}
}

// NewFromClient creates an adapter from an existing client.
func NewFromClient(client *anthropic.Client, cfg provider.Config, modelID string, optFns ...func(o *Options)) *Adapter {
	opts := Options{
		Temperature: 0.7,
		MaxTokens:   4096,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Adapter{client: client, cfg: cfg, modelID: modelID, opts: opts}
}

// Open implements provider.Provider using the streaming Messages API. Only
// text deltas are forwarded; the delta channel closes on message stop or
// once ctx cancellation is observed.
func (a *Adapter) Open(ctx context.Context, req provider.Request) (<-chan provider.Delta, <-chan error) {
	out := make(chan provider.Delta, 32)
	errCh := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(errCh)

		params := a.buildParams(req)
		stream := a.client.Messages.NewStreaming(ctx, params)
		for stream.Next() {
			event := stream.Current()
			switch eventVariant := event.AsAny().(type) {
			case anthropic.ContentBlockDeltaEvent:
				switch deltaVariant := eventVariant.Delta.AsAny().(type) {
				case anthropic.TextDelta:
					if deltaVariant.Text == "" {
						continue
					}
					select {
					case <-ctx.Done():
						return
					case out <- provider.Delta{Text: deltaVariant.Text}:
					}
				}
			}
		}
		if err := stream.Err(); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			errCh <- a.classify(err)
		}
	}()

	return out, errCh
}

// buildParams converts the normalized request into Anthropic message format,
// carrying the mode instruction as a system block.
func (a *Adapter) buildParams(req provider.Request) anthropic.MessageNewParams {
	messages := make([]anthropic.MessageParam, 0, len(req.Turns))
	for _, turn := range req.Turns {
		if turn.Content == "" {
			continue
		}
		switch turn.Role {
		case core.RoleAssistant:
			messages = append(messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(turn.Content)))
		default:
			messages = append(messages, anthropic.NewUserMessage(anthropic.NewTextBlock(turn.Content)))
		}
	}

	model := a.modelID
	if model == "" {
		model = req.Model
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(model),
		Messages:    messages,
		MaxTokens:   a.opts.MaxTokens,
		Temperature: anthropic.Float(a.opts.Temperature),
	}
	if req.Instruction != "" {
		params.System = []anthropic.TextBlockParam{{Text: req.Instruction}}
	}

	return params
}

// classify maps SDK errors into the provider error taxonomy.
func (a *Adapter) classify(err error) error {
	var apierr *anthropic.Error
	if errors.As(err, &apierr) {
		return provider.FromStatus(a.cfg.ID, apierr.StatusCode, err)
	}
	return &provider.NetworkError{Provider: a.cfg.ID, Err: err}
}

// Info implements the provider.Provider interface.
func (a *Adapter) Info() provider.Info {
	return provider.Info{ID: a.cfg.ID, Name: a.cfg.Name}
}
