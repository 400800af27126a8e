package chatmesh

import (
	"context"
	"testing"

	"github.com/hupe1980/chatmesh/core"
	"github.com/hupe1980/chatmesh/provider"
	"github.com/hupe1980/chatmesh/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockMesh(t *testing.T, optFns ...func(o *Options)) *ChatMesh {
	t.Helper()
	mesh := New(optFns...)
	mesh.Configure(provider.Config{
		ID:           "mock",
		Name:         "Mock",
		Kind:         provider.KindMock,
		Enabled:      true,
		DefaultModel: "mock-1",
	})
	mesh.SetDefaultProvider("mock", "")
	return mesh
}

func TestSubmitSyncRoundTrip(t *testing.T) {
	mesh := newMockMesh(t)

	text, err := mesh.SubmitSync(context.Background(), "Hello")
	require.NoError(t, err)
	assert.NotEmpty(t, text)

	sess, ok := mesh.ActiveSession()
	require.True(t, ok)
	require.Len(t, sess.Messages, 2)
	assert.Equal(t, "Hello", sess.Messages[0].Content)
	assert.Equal(t, text, sess.Messages[1].Content)
	assert.False(t, mesh.Busy(sess.ID))
}

func TestSubmitWithoutCredentialFailsClosed(t *testing.T) {
	mesh := New() // catalog defaults carry no API keys

	gen, err := mesh.Submit(context.Background(), "Hello")

	var cfgErr *provider.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Nil(t, gen)
	assert.Empty(t, mesh.Sessions())
}

func TestSessionLifecycleThroughFacade(t *testing.T) {
	mesh := newMockMesh(t)

	first := mesh.NewChat()
	mesh.SetMode(core.ModeCode)
	second := mesh.NewChat()

	sessions := mesh.Sessions()
	require.Len(t, sessions, 2)
	assert.Equal(t, second, sessions[0].ID) // newest first
	assert.Equal(t, core.ModeCode, sessions[0].Mode)
	assert.Equal(t, core.ModeChat, sessions[1].Mode)

	mesh.SelectSession(first)
	sess, ok := mesh.ActiveSession()
	require.True(t, ok)
	assert.Equal(t, first, sess.ID)

	mesh.RenameSession(first, "renamed")
	sess, _ = mesh.ActiveSession()
	assert.Equal(t, "renamed", sess.Title)

	mesh.DeleteSession(first)
	_, ok = mesh.Store().Get(first)
	assert.False(t, ok)
	assert.Equal(t, second, mesh.Store().ActiveID())
}

func TestClearSessionKeepsSession(t *testing.T) {
	mesh := newMockMesh(t)

	_, err := mesh.SubmitSync(context.Background(), "Hello")
	require.NoError(t, err)

	sess, _ := mesh.ActiveSession()
	mesh.ClearSession(sess.ID)

	assert.Empty(t, mesh.ActiveMessages())
	_, ok := mesh.Store().Get(sess.ID)
	assert.True(t, ok)
}

func TestHydratePersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	kv, err := state.NewStore(state.StoreTypeMemory)
	require.NoError(t, err)

	mesh := newMockMesh(t, func(o *Options) { o.State = kv })
	require.NoError(t, mesh.Hydrate(ctx))

	_, err = mesh.SubmitSync(ctx, "persist me")
	require.NoError(t, err)
	sess, _ := mesh.ActiveSession()

	reborn := newMockMesh(t, func(o *Options) { o.State = kv })
	require.NoError(t, reborn.Hydrate(ctx))

	got, ok := reborn.Store().Get(sess.ID)
	require.True(t, ok)
	assert.Equal(t, sess.Title, got.Title)
	require.Len(t, got.Messages, 2)
	require.NoError(t, reborn.Close())
}

func TestDefaultFactoryKinds(t *testing.T) {
	p, err := DefaultFactory(provider.Config{ID: "groq", Kind: provider.KindOpenAICompat, APIKey: "k"}, "m")
	require.NoError(t, err)
	assert.Equal(t, "groq", p.Info().ID)

	p, err = DefaultFactory(provider.Config{ID: "anthropic", Kind: provider.KindAnthropic, APIKey: "k"}, "m")
	require.NoError(t, err)
	assert.Equal(t, "anthropic", p.Info().ID)

	p, err = DefaultFactory(provider.Config{ID: "mock", Kind: provider.KindMock}, "m")
	require.NoError(t, err)
	assert.Equal(t, "mock", p.Info().ID)
}
