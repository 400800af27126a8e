// Package chatmesh provides a high-level façade over the streaming engine and
// service abstractions (sessions, providers, modes, persistence & logging)
// for building conversational AI frontends. Most applications interact with
// this package by:
//  1. Creating a ChatMesh via New() (optionally overriding default in-memory services)
//  2. Configuring provider credentials (Configure) and hydrating persisted state (Hydrate)
//  3. Submitting user text (Submit) and observing the returned Generation
//
// The façade delegates orchestration to engine.Engine while keeping setup and
// usage ergonomics concise. All defaults are safe for local development and
// testing; production deployments typically supply a redis-backed state store
// and a structured logger.
package chatmesh

import (
	"context"

	"github.com/hupe1980/chatmesh/core"
	"github.com/hupe1980/chatmesh/engine"
	"github.com/hupe1980/chatmesh/logging"
	"github.com/hupe1980/chatmesh/mode"
	"github.com/hupe1980/chatmesh/provider"
	anthropicprovider "github.com/hupe1980/chatmesh/provider/anthropic"
	"github.com/hupe1980/chatmesh/provider/openaicompat"
	"github.com/hupe1980/chatmesh/session"
	"github.com/hupe1980/chatmesh/state"
)

// DefaultFactory maps a provider configuration onto the vendor adapter that
// serves its Kind. OpenAI-compatible vendors share one adapter parameterized
// by base URL.
func DefaultFactory(cfg provider.Config, modelID string) (provider.Provider, error) {
	switch cfg.Kind {
	case provider.KindAnthropic:
		return anthropicprovider.New(cfg, modelID), nil
	case provider.KindMock:
		return provider.MockFactory(cfg, modelID)
	default:
		return openaicompat.New(cfg, modelID), nil
	}
}

// Options configures the ChatMesh instance.
type Options struct {
	// Store owns session and message state (defaults to a fresh in-memory
	// store).
	Store *session.Store

	// Providers resolves provider ids into streaming adapters. Defaults to
	// the built-in catalog wired through DefaultFactory.
	Providers *provider.Registry

	// Modes resolves feature modes into system instructions.
	Modes *mode.Registry

	// State persists sessions across restarts. Nil disables persistence.
	State state.Store

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// ChatMesh is the high-level façade aggregating the underlying engine and
// services.
type ChatMesh struct {
	opts   Options
	engine *engine.Engine
}

// New creates a new ChatMesh instance with optional overrides. Any unset
// service is initialized with an in-memory implementation.
func New(optFns ...func(o *Options)) *ChatMesh {
	opts := Options{
		Store:     session.NewStore(),
		Providers: provider.NewRegistry(DefaultFactory),
		Modes:     mode.NewRegistry(),
		Logger:    logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	e := engine.New(func(o *engine.Options) {
		o.Store = opts.Store
		o.Providers = opts.Providers
		o.Modes = opts.Modes
		o.Logger = opts.Logger
	})

	return &ChatMesh{opts: opts, engine: e}
}

// Engine exposes the underlying orchestrator for advanced use.
func (c *ChatMesh) Engine() *engine.Engine { return c.engine }

// Store exposes the session store.
func (c *ChatMesh) Store() *session.Store { return c.engine.Store() }

// Hydrate loads persisted state into the store and subscribes future
// mutations back to the state store. No-op without a configured state store.
func (c *ChatMesh) Hydrate(ctx context.Context) error {
	if c.opts.State == nil {
		return nil
	}
	return state.Autosave(ctx, c.opts.State, c.engine.Store(), c.opts.Logger)
}

// Configure upserts a provider configuration (typically to attach an API
// key).
func (c *ChatMesh) Configure(cfg provider.Config) { c.engine.Providers().Configure(cfg) }

// SetDefaultProvider selects the provider/model pair used for new sessions.
// An empty model selects the provider's default model.
func (c *ChatMesh) SetDefaultProvider(providerID, modelID string) {
	c.engine.Providers().SetDefault(providerID, modelID)
}

// Submit starts an asynchronous generation for the active session, creating
// a session when none is active. See engine.Engine.Submit for the exact
// no-op and failure semantics.
func (c *ChatMesh) Submit(ctx context.Context, text string, attachments ...core.Attachment) (*engine.Generation, error) {
	return c.engine.Submit(ctx, text, attachments)
}

// SubmitSync is a synchronous helper that waits for the generation to reach
// a terminal state and returns the final assistant text. Context
// cancellation stops the generation and returns the partial text.
func (c *ChatMesh) SubmitSync(ctx context.Context, text string, attachments ...core.Attachment) (string, error) {
	gen, err := c.engine.Submit(ctx, text, attachments)
	if err != nil || gen == nil {
		return "", err
	}

	select {
	case <-ctx.Done():
		gen.Stop()
		<-gen.Done()
	case <-gen.Done():
	}

	return gen.Text(), gen.Err()
}

// Stop cancels the in-flight generation for the session, if any.
func (c *ChatMesh) Stop(sessionID string) { c.engine.Stop(sessionID) }

// StopActive cancels the active session's generation, if any.
func (c *ChatMesh) StopActive() { c.engine.StopActive() }

// Busy reports whether a generation is in flight for the session.
func (c *ChatMesh) Busy(sessionID string) bool { return c.engine.Busy(sessionID) }

// NewChat creates and activates a fresh session bound to the current mode
// and default provider, returning its id.
func (c *ChatMesh) NewChat() string {
	providerID, modelID := c.engine.Providers().Default()
	return c.engine.Store().Create(c.engine.Store().Mode(), providerID, modelID)
}

// SelectSession makes the session active. Running generations elsewhere
// continue in the background.
func (c *ChatMesh) SelectSession(id string) { c.engine.Store().SetActive(id) }

// DeleteSession removes a session. A generation streaming into it keeps
// running; its patches are absorbed.
func (c *ChatMesh) DeleteSession(id string) { c.engine.Store().Delete(id) }

// RenameSession overwrites a session's title.
func (c *ChatMesh) RenameSession(id, title string) { c.engine.Store().Rename(id, title) }

// ClearSession removes all messages from a session, keeping the session
// itself.
func (c *ChatMesh) ClearSession(id string) { c.engine.Store().Clear(id) }

// Sessions lists all sessions newest first.
func (c *ChatMesh) Sessions() []*core.Session { return c.engine.Store().List() }

// ActiveSession returns the active session, if any.
func (c *ChatMesh) ActiveSession() (*core.Session, bool) { return c.engine.Store().Active() }

// ActiveMessages returns the active session's messages, empty when no
// session is active.
func (c *ChatMesh) ActiveMessages() []core.Message { return c.engine.Store().ActiveMessages() }

// SetMode switches the global feature mode. Sessions created afterwards
// inherit it; existing sessions keep theirs.
func (c *ChatMesh) SetMode(m core.Mode) { c.engine.Store().SetMode(m) }

// Mode returns the current global feature mode.
func (c *ChatMesh) Mode() core.Mode { return c.engine.Store().Mode() }

// Close releases the state store, if any.
func (c *ChatMesh) Close() error {
	if c.opts.State == nil {
		return nil
	}
	return c.opts.State.Close()
}
