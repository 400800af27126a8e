package mode

import (
	"testing"

	"github.com/hupe1980/chatmesh/core"
	"github.com/stretchr/testify/assert"
)

func TestLookupKnownModes(t *testing.T) {
	r := NewRegistry()
	for _, m := range core.Modes() {
		assert.NotEmpty(t, r.Lookup(m), string(m))
	}
}

func TestLookupFallsBackToChat(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, r.Lookup(core.ModeChat), r.Lookup(core.Mode("unknown")))
}

func TestOverrides(t *testing.T) {
	r := NewRegistry(func(o *Options) {
		o.Overrides = map[core.Mode]string{core.ModeCode: "custom code prompt"}
	})
	assert.Equal(t, "custom code prompt", r.Lookup(core.ModeCode))
	assert.NotEmpty(t, r.Lookup(core.ModeChat))
}
