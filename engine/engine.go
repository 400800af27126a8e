package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/hupe1980/chatmesh/core"
	"github.com/hupe1980/chatmesh/logging"
	"github.com/hupe1980/chatmesh/mode"
	"github.com/hupe1980/chatmesh/provider"
	"github.com/hupe1980/chatmesh/session"
)

// Options configure an Engine using the functional options pattern. All
// services have in-memory defaults suitable for development and testing; the
// default provider registry serves the keyless mock adapter.
type Options struct {
	// Store owns session and message state.
	Store *session.Store

	// Providers resolves provider configurations into open-stream
	// capabilities.
	Providers *provider.Registry

	// Modes resolves feature modes into system instructions.
	Modes *mode.Registry

	// Logger provides structured logging. Defaults to NoOp.
	Logger logging.Logger
}

// Engine is the streaming orchestrator. Public methods are safe for
// concurrent use.
type Engine struct {
	store     *session.Store
	providers *provider.Registry
	modes     *mode.Registry
	logger    logging.Logger

	mu     sync.Mutex
	active map[string]*Generation // in-flight generation per session id
}

// New constructs an Engine with optional overrides.
func New(optFns ...func(o *Options)) *Engine {
	opts := Options{
		Store:     session.NewStore(),
		Providers: provider.NewRegistry(provider.MockFactory),
		Modes:     mode.NewRegistry(),
		Logger:    logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Engine{
		store:     opts.Store,
		providers: opts.Providers,
		modes:     opts.Modes,
		logger:    opts.Logger,
		active:    make(map[string]*Generation),
	}
}

// Store returns the session store the engine mutates.
func (e *Engine) Store() *session.Store { return e.store }

// Providers returns the provider registry.
func (e *Engine) Providers() *provider.Registry { return e.providers }

// Modes returns the mode registry.
func (e *Engine) Modes() *mode.Registry { return e.modes }

// Submit starts a generation for the active session, creating one from the
// current mode and default provider when none is active.
//
// A submission with empty trimmed text, or one targeting a session that
// already has a generation in flight, is a silent no-op returning (nil,
// nil) with no side effects. An unresolvable provider credential returns
// *provider.ConfigurationError before any ledger mutation. Otherwise the
// user message and a streaming assistant placeholder are appended and the
// returned Generation tracks the stream until a terminal transition.
//
// ctx bounds the stream's lifetime; the engine itself never cancels a
// running generation on navigation, deletion or mode change.
func (e *Engine) Submit(ctx context.Context, text string, attachments []core.Attachment) (*Generation, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	var (
		sessionID  string
		providerID string
		modelID    string
	)
	sess, ok := e.store.Active()
	if ok {
		sessionID = sess.ID
		providerID = sess.Provider
		modelID = sess.Model
		if _, busy := e.active[sessionID]; busy {
			return nil, nil
		}
	} else {
		providerID, modelID = e.providers.Default()
	}

	// Fail closed before any ledger mutation.
	p, err := e.providers.Resolve(providerID, modelID)
	if err != nil {
		return nil, err
	}

	if !ok {
		sessionID = e.store.Create(e.store.Mode(), providerID, modelID)
	}

	e.store.Append(sessionID, core.RoleUser, text, attachments)
	messageID := e.store.AppendStreaming(sessionID)

	// A change listener (autosave, a UI binding) may delete the session
	// while the appends notify. Both messages died with it, so there is
	// nothing left to stream into.
	current, ok := e.store.Get(sessionID)
	if !ok {
		return nil, nil
	}
	req := provider.Request{
		Model:       modelID,
		Instruction: e.modes.Lookup(current.Mode),
		Turns:       current.Turns(),
	}

	genCtx, cancel := context.WithCancel(ctx)
	gen := newGeneration(sessionID, messageID, cancel)
	e.active[sessionID] = gen

	go e.run(genCtx, gen, p, providerID, req)

	e.logger.Debug("generation started", "session_id", sessionID, "provider", providerID, "model", modelID)
	return gen, nil
}

// Stop cancels the in-flight generation for the session, if any. The
// placeholder keeps whatever partial content had accumulated. No-op when
// nothing is running; never errors.
func (e *Engine) Stop(sessionID string) {
	e.mu.Lock()
	gen, ok := e.active[sessionID]
	e.mu.Unlock()

	if !ok {
		return
	}
	gen.Stop()
}

// StopActive cancels the generation of the currently active session, if any.
func (e *Engine) StopActive() {
	e.Stop(e.store.ActiveID())
}

// Busy reports whether a generation is in flight for the session.
func (e *Engine) Busy(sessionID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.active[sessionID]
	return ok
}

// run consumes the adapter stream and reconciles it into the ledger. It is
// the only writer of the placeholder message.
func (e *Engine) run(ctx context.Context, gen *Generation, p provider.Provider, providerID string, req provider.Request) {
	start := time.Now()

	deltas, errCh := p.Open(ctx, req)
	for d := range deltas {
		// No patches after the cancellation token is observed; the
		// terminal patch below preserves what accumulated so far.
		if ctx.Err() != nil {
			break
		}
		total := gen.append(d.Text)
		e.store.Patch(gen.sessionID, gen.messageID, core.MessagePatch{Content: &total})
	}
	err := <-errCh

	status := StatusFinished
	content := gen.Text()
	switch {
	case ctx.Err() != nil || errors.Is(err, context.Canceled):
		status = StatusAborted
		err = nil
	case err != nil:
		status = StatusErrored
		content = fmt.Sprintf("Error: %s", err.Error())
	}

	streaming := false
	e.store.Patch(gen.sessionID, gen.messageID, core.MessagePatch{Content: &content, Streaming: &streaming})

	e.mu.Lock()
	delete(e.active, gen.sessionID)
	e.mu.Unlock()

	gen.finish(status, err)
	logging.LogGeneration(e.logger, gen.sessionID, providerID, req.Model, gen.Deltas(), time.Since(start), err)
}
