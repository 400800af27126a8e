package engine

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/hupe1980/chatmesh/core"
	"github.com/hupe1980/chatmesh/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedProvider replays deltas pushed through send, terminating with err
// (if set) once send is closed. Yields observe ctx like a real adapter.
type scriptedProvider struct {
	send chan string
	err  error
}

func newScriptedProvider() *scriptedProvider {
	return &scriptedProvider{send: make(chan string)}
}

func (f *scriptedProvider) Open(ctx context.Context, req provider.Request) (<-chan provider.Delta, <-chan error) {
	out := make(chan provider.Delta)
	errCh := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errCh)
		for {
			select {
			case <-ctx.Done():
				return
			case s, ok := <-f.send:
				if !ok {
					if f.err != nil {
						errCh <- f.err
					}
					return
				}
				select {
				case <-ctx.Done():
					return
				case out <- provider.Delta{Text: s}:
				}
			}
		}
	}()
	return out, errCh
}

func (f *scriptedProvider) Info() provider.Info { return provider.Info{ID: "scripted", Name: "Scripted"} }

// newTestEngine wires an engine whose "p" provider resolves to the given
// provider implementation.
func newTestEngine(p provider.Provider) *Engine {
	registry := provider.NewRegistry(
		func(cfg provider.Config, modelID string) (provider.Provider, error) { return p, nil },
		func(o *provider.RegistryOptions) {
			o.Configs = map[string]provider.Config{
				"p": {ID: "p", Name: "Test", Kind: provider.KindOpenAICompat, APIKey: "key", Enabled: true, DefaultModel: "m"},
			}
			o.DefaultProvider = "p"
		},
	)
	return New(func(o *Options) {
		o.Providers = registry
	})
}

func waitDeltas(t *testing.T, gen *Generation, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return gen.Deltas() >= n }, time.Second, time.Millisecond)
}

func TestSubmitStreamsDeltasIntoPlaceholder(t *testing.T) {
	p := newScriptedProvider()
	e := newTestEngine(p)

	gen, err := e.Submit(context.Background(), "Hello", nil)
	require.NoError(t, err)
	require.NotNil(t, gen)
	assert.Equal(t, StatusRunning, gen.Status())

	for _, d := range []string{"Hi", " there", "!"} {
		p.send <- d
	}
	close(p.send)
	<-gen.Done()

	assert.Equal(t, StatusFinished, gen.Status())
	assert.NoError(t, gen.Err())
	assert.Equal(t, "Hi there!", gen.Text())

	sess, ok := e.Store().Get(gen.SessionID())
	require.True(t, ok)
	require.Len(t, sess.Messages, 2)
	assert.Equal(t, core.RoleUser, sess.Messages[0].Role)
	assert.Equal(t, "Hello", sess.Messages[0].Content)
	assert.Equal(t, core.RoleAssistant, sess.Messages[1].Role)
	assert.Equal(t, "Hi there!", sess.Messages[1].Content)
	assert.False(t, sess.Messages[1].Streaming)
	assert.False(t, e.Busy(gen.SessionID()))
}

func TestSubmitCreatesSessionAndDerivesTitle(t *testing.T) {
	p := newScriptedProvider()
	e := newTestEngine(p)
	long := strings.Repeat("q", 80)

	gen, err := e.Submit(context.Background(), long, nil)
	require.NoError(t, err)
	close(p.send)
	<-gen.Done()

	sess, ok := e.Store().Get(gen.SessionID())
	require.True(t, ok)
	assert.Equal(t, strings.Repeat("q", 50)+"...", sess.Title)
	assert.Equal(t, "p", sess.Provider)
	assert.Equal(t, "m", sess.Model)
	assert.Equal(t, gen.SessionID(), e.Store().ActiveID())
}

func TestSubmitWithoutCredentialLeavesLedgerUntouched(t *testing.T) {
	e := New() // default registry: catalog providers with no keys

	gen, err := e.Submit(context.Background(), "Hello", nil)

	var cfgErr *provider.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Nil(t, gen)
	assert.Empty(t, e.Store().List())
}

func TestSubmitEmptyTextIsNoOp(t *testing.T) {
	e := newTestEngine(newScriptedProvider())

	gen, err := e.Submit(context.Background(), "   \n\t", nil)

	assert.NoError(t, err)
	assert.Nil(t, gen)
	assert.Empty(t, e.Store().List())
}

func TestSecondSubmitOnBusySessionIsDebounced(t *testing.T) {
	p := newScriptedProvider()
	e := newTestEngine(p)

	gen, err := e.Submit(context.Background(), "first", nil)
	require.NoError(t, err)
	require.NotNil(t, gen)

	second, err := e.Submit(context.Background(), "second", nil)
	assert.NoError(t, err)
	assert.Nil(t, second)

	close(p.send)
	<-gen.Done()

	sess, _ := e.Store().Get(gen.SessionID())
	require.Len(t, sess.Messages, 2) // exactly one user/assistant pair
	assert.Equal(t, "first", sess.Messages[0].Content)
}

func TestStopPreservesPartialContent(t *testing.T) {
	p := newScriptedProvider()
	e := newTestEngine(p)

	gen, err := e.Submit(context.Background(), "Hello", nil)
	require.NoError(t, err)

	p.send <- "partial "
	p.send <- "answer"
	waitDeltas(t, gen, 2)

	e.Stop(gen.SessionID())
	<-gen.Done()

	assert.Equal(t, StatusAborted, gen.Status())
	assert.NoError(t, gen.Err())

	sess, _ := e.Store().Get(gen.SessionID())
	require.Len(t, sess.Messages, 2)
	assert.Equal(t, "partial answer", sess.Messages[1].Content)
	assert.False(t, sess.Messages[1].Streaming)
	assert.False(t, e.Busy(gen.SessionID()))
}

func TestStopWithoutGenerationIsNoOp(t *testing.T) {
	e := newTestEngine(newScriptedProvider())

	e.Stop("missing")
	e.StopActive()
}

func TestErrorFinalizesWithSanitizedMessage(t *testing.T) {
	p := newScriptedProvider()
	p.err = &provider.ProviderError{Provider: "p", Message: "rate limit exceeded"}
	e := newTestEngine(p)

	gen, err := e.Submit(context.Background(), "Hello", nil)
	require.NoError(t, err)

	p.send <- "par"
	waitDeltas(t, gen, 1)
	close(p.send)
	<-gen.Done()

	assert.Equal(t, StatusErrored, gen.Status())
	require.Error(t, gen.Err())

	sess, _ := e.Store().Get(gen.SessionID())
	assert.Equal(t, "Error: provider p: rate limit exceeded", sess.Messages[1].Content)
	assert.False(t, sess.Messages[1].Streaming)
	assert.False(t, e.Busy(gen.SessionID()))

	// session remains usable for a fresh submission
	p2 := newScriptedProvider()
	e2gen, err := newTestEngine(p2).Submit(context.Background(), "again", nil)
	require.NoError(t, err)
	require.NotNil(t, e2gen)
	close(p2.send)
	<-e2gen.Done()
}

func TestDeleteActiveSessionAbsorbsLateDeltas(t *testing.T) {
	p := newScriptedProvider()
	e := newTestEngine(p)

	keep := e.Store().Create(core.ModeChat, "p", "m")
	e.Store().SetActive("")

	gen, err := e.Submit(context.Background(), "Hello", nil)
	require.NoError(t, err)

	p.send <- "before "
	waitDeltas(t, gen, 1)

	e.Store().Delete(gen.SessionID())

	p.send <- "after"
	waitDeltas(t, gen, 2)
	close(p.send)
	<-gen.Done()

	assert.Equal(t, StatusFinished, gen.Status())
	_, ok := e.Store().Get(gen.SessionID())
	assert.False(t, ok)
	assert.Equal(t, keep, e.Store().ActiveID())
}

func TestDeleteDuringSubmitAppendsIsAbsorbed(t *testing.T) {
	p := newScriptedProvider()
	e := newTestEngine(p)

	// A change listener deletes the session the moment the streaming
	// placeholder lands, the way an external binding can race a submission.
	deleted := false
	e.Store().OnChange(func() {
		if deleted {
			return
		}
		sess, ok := e.Store().Active()
		if !ok || len(sess.Messages) < 2 {
			return
		}
		deleted = true
		e.Store().Delete(sess.ID)
	})

	gen, err := e.Submit(context.Background(), "Hello", nil)

	assert.NoError(t, err)
	assert.Nil(t, gen)
	assert.True(t, deleted)
	assert.Empty(t, e.Store().List())
}

func TestBackgroundStreamSurvivesNavigation(t *testing.T) {
	p := newScriptedProvider()
	e := newTestEngine(p)

	gen, err := e.Submit(context.Background(), "Hello", nil)
	require.NoError(t, err)
	owning := gen.SessionID()

	// user opens a new chat and switches mode mid-stream
	other := e.Store().Create(core.ModeCode, "p", "m")
	e.Store().SetMode(core.ModeResearch)
	assert.Equal(t, other, e.Store().ActiveID())

	p.send <- "still "
	p.send <- "streaming"
	close(p.send)
	<-gen.Done()

	sess, ok := e.Store().Get(owning)
	require.True(t, ok)
	assert.Equal(t, "still streaming", sess.Messages[1].Content)
	assert.False(t, sess.Messages[1].Streaming)
}

func TestContentLengthIsMonotonic(t *testing.T) {
	p := newScriptedProvider()
	e := newTestEngine(p)

	gen, err := e.Submit(context.Background(), "Hello", nil)
	require.NoError(t, err)

	last := 0
	for i, d := range []string{"a", "bc", "def", "ghij"} {
		p.send <- d
		waitDeltas(t, gen, i+1)
		sess, _ := e.Store().Get(gen.SessionID())
		cur := len(sess.Messages[1].Content)
		assert.GreaterOrEqual(t, cur, last)
		last = cur
	}
	close(p.send)
	<-gen.Done()
	assert.Equal(t, "abcdefghij", gen.Text())
}

func TestConcurrentGenerationsOnDifferentSessions(t *testing.T) {
	pA, pB := newScriptedProvider(), newScriptedProvider()
	providers := map[int]*scriptedProvider{0: pA, 1: pB}
	calls := 0
	registry := provider.NewRegistry(
		func(cfg provider.Config, modelID string) (provider.Provider, error) {
			p := providers[calls]
			calls++
			return p, nil
		},
		func(o *provider.RegistryOptions) {
			o.Configs = map[string]provider.Config{
				"p": {ID: "p", Kind: provider.KindOpenAICompat, APIKey: "key", Enabled: true, DefaultModel: "m"},
			}
			o.DefaultProvider = "p"
		},
	)
	e := New(func(o *Options) { o.Providers = registry })

	genA, err := e.Submit(context.Background(), "for A", nil)
	require.NoError(t, err)

	e.Store().SetActive("")
	genB, err := e.Submit(context.Background(), "for B", nil)
	require.NoError(t, err)
	require.NotEqual(t, genA.SessionID(), genB.SessionID())

	pA.send <- "alpha"
	pB.send <- "beta"
	close(pA.send)
	close(pB.send)
	<-genA.Done()
	<-genB.Done()

	sessA, _ := e.Store().Get(genA.SessionID())
	sessB, _ := e.Store().Get(genB.SessionID())
	assert.Equal(t, "alpha", sessA.Messages[1].Content)
	assert.Equal(t, "beta", sessB.Messages[1].Content)
}
