package state

import (
	"context"

	"github.com/hupe1980/chatmesh/logging"
	"github.com/hupe1980/chatmesh/session"
)

// Autosave binds a state store to a session store: the saved snapshot (if
// any) is restored immediately, then every structural mutation writes a
// fresh snapshot capped at MaxSessions. Save failures are logged and do not
// disturb in-memory state.
func Autosave(ctx context.Context, kv Store, chat *session.Store, logger logging.Logger) error {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}

	snap, err := kv.Load(ctx)
	if err != nil {
		return err
	}
	if snap != nil {
		chat.Restore(snap)
	}

	// Saves outlive the hydrate context: a cancelled startup timeout must
	// not wedge every later write.
	saveCtx := context.WithoutCancel(ctx)
	chat.OnChange(func() {
		if err := kv.Save(saveCtx, chat.Snapshot(MaxSessions)); err != nil {
			logger.Warn("state save failed", "error", err.Error())
		}
	})

	return nil
}
