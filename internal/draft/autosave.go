// =============================================================================
// Relatório de Visitas - Draft Autosave
// =============================================================================
//
// Timer-driven re-invocation of the engine's save, guarded by the dirty
// flag. Ticks are far apart (minutes), but the engine lock still serializes
// an autosave racing a manual save, so overlapping invocations can never
// interleave writes.
//
// =============================================================================

package draft

import (
	"time"

	"go.uber.org/zap"
)

// Autosaver periodically saves the engine's draft while it has unsaved
// changes.
type Autosaver struct {
	engine   *Engine
	interval time.Duration
	log      *zap.Logger
	stop     chan struct{}
	done     chan struct{}
}

// NewAutosaver creates an autosaver for the engine. A non-positive interval
// falls back to five minutes.
func NewAutosaver(engine *Engine, interval time.Duration, log *zap.Logger) *Autosaver {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Autosaver{
		engine:   engine,
		interval: interval,
		log:      log,
	}
}

// Start launches the autosave loop. Calling Start on a running autosaver is
// a no-op.
func (a *Autosaver) Start() {
	if a.stop != nil {
		return
	}
	a.stop = make(chan struct{})
	a.done = make(chan struct{})

	go func() {
		defer close(a.done)
		ticker := time.NewTicker(a.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				saved, err := a.engine.SaveIfDirty()
				if err != nil {
					a.log.Warn("autosave failed", zap.Error(err))
				} else if saved {
					a.log.Debug("autosave completed")
				}
			case <-a.stop:
				return
			}
		}
	}()
}

// Stop halts the autosave loop and waits for it to exit. The draft is not
// flushed; callers that want a final save use Engine.SaveIfDirty.
func (a *Autosaver) Stop() {
	if a.stop == nil {
		return
	}
	close(a.stop)
	<-a.done
	a.stop = nil
}
