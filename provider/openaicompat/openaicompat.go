// Package openaicompat implements provider.Provider on top of the OpenAI
// Chat Completions streaming API. It serves every vendor speaking that
// protocol (OpenAI, Groq, Mistral, Cerebras, Together) through a base URL
// override carried by the provider configuration.
package openaicompat

import (
	"context"
	"errors"

	"github.com/hupe1980/chatmesh/core"
	"github.com/hupe1980/chatmesh/provider"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Options configure the adapter. Fields mirror a subset of Chat Completion
// parameters intentionally kept minimal; extend via functional options
// without breaking callers.
type Options struct {
	Temperature         float64
	MaxCompletionTokens int64
}

// Adapter wraps the OpenAI Chat Completions API behind the generic
// provider.Provider interface.
type Adapter struct {
	client  *openai.Client
	cfg     provider.Config
	modelID string
	opts    Options
}

// New creates an adapter for the given provider configuration and model.
func New(cfg provider.Config, modelID string, optFns ...func(o *Options)) *Adapter {
	opts := Options{
		Temperature:         0.7,
		MaxCompletionTokens: 4096,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	clientOpts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		clientOpts = append(clientOpts, option.WithBaseURL(cfg.BaseURL))
	}
	client := openai.NewClient(clientOpts...)

	return &Adapter{client: &client, cfg: cfg, modelID: modelID, opts: opts}
}

// NewFromClient creates an adapter from an existing client.
func NewFromClient(client *openai.Client, cfg provider.Config, modelID string, optFns ...func(o *Options)) *Adapter {
	opts := Options{
		Temperature:         0.7,
		MaxCompletionTokens: 4096,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	return &Adapter{client: client, cfg: cfg, modelID: modelID, opts: opts}
}

// Open implements provider.Provider. Deltas are forwarded as they arrive;
// the delta channel closes on completion or once ctx cancellation is
// observed. No retries are performed.
func (a *Adapter) Open(ctx context.Context, req provider.Request) (<-chan provider.Delta, <-chan error) {
	out := make(chan provider.Delta, 32)
	errCh := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(errCh)

		params := a.buildParams(req)
		stream := a.client.Chat.Completions.NewStreaming(ctx, params)
		for stream.Next() {
			ck := stream.Current()
			for _, ch := range ck.Choices {
				if ch.Delta.Content == "" {
					continue
				}
				select {
				case <-ctx.Done():
					return
				case out <- provider.Delta{Text: ch.Delta.Content}:
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

// buildParams assembles the request: mode instruction as the system message,
// then the prior turns oldest first.
func (a *Adapter) buildParams(req provider.Request) openai.ChatCompletionNewParams {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Turns)+1)
	if req.Instruction != "" {
		messages = append(messages, openai.SystemMessage(req.Instruction))
	}
	for _, turn := range req.Turns {
		switch turn.Role {
		case core.RoleAssistant:
			messages = append(messages, openai.AssistantMessage(turn.Content))
		default:
			messages = append(messages, openai.UserMessage(turn.Content))
		}
	}

	model := a.modelID
	if model == "" {
		model = req.Model
	}

	return openai.ChatCompletionNewParams{
		Messages:            messages,
		Model:               model,
		Temperature:         openai.Float(a.opts.Temperature),
		MaxCompletionTokens: openai.Int(a.opts.MaxCompletionTokens),
	}
}

// classify maps SDK errors into the provider error taxonomy.
func (a *Adapter) classify(err error) error {
	var apierr *openai.Error
	if errors.As(err, &apierr) {
		return provider.FromStatus(a.cfg.ID, apierr.StatusCode, err)
	}
	return &provider.NetworkError{Provider: a.cfg.ID, Err: err}
}

// Info implements the provider.Provider interface.
func (a *Adapter) Info() provider.Info {
	return provider.Info{ID: a.cfg.ID, Name: a.cfg.Name}
}
