// =============================================================================
// Relatório de Visitas - Debounced Lookup Scheduling
// =============================================================================
//
// Field edits trigger external lookups only after a quiet period. The
// Debouncer models this as explicit cancellable delayed tasks keyed by
// field: scheduling a task cancels the pending one for the same key, and a
// cancelled task never fires, so a stale lookup response can never overwrite
// values typed after it was scheduled.
//
// =============================================================================

package lookup

import (
	"sync"
	"time"
)

// Debouncer schedules at most one pending task per key.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	pending map[string]*time.Timer
}

// NewDebouncer creates a debouncer with the given quiet period. A
// non-positive delay falls back to 500ms, the quiet period the form uses for
// postal-code edits.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = 500 * time.Millisecond
	}
	return &Debouncer{
		delay:   delay,
		pending: make(map[string]*time.Timer),
	}
}

// Schedule runs fn after the quiet period, cancelling any task previously
// scheduled under the same key. fn runs on a timer goroutine only if it is
// still the current task for its key when the timer fires.
func (d *Debouncer) Schedule(key string, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if timer, ok := d.pending[key]; ok {
		timer.Stop()
	}

	var timer *time.Timer
	timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		current := d.pending[key] == timer
		if current {
			delete(d.pending, key)
		}
		d.mu.Unlock()

		if current {
			fn()
		}
	})
	d.pending[key] = timer
}

// Cancel drops the pending task for key, if any.
func (d *Debouncer) Cancel(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if timer, ok := d.pending[key]; ok {
		timer.Stop()
		delete(d.pending, key)
	}
}

// Stop cancels every pending task.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for key, timer := range d.pending {
		timer.Stop()
		delete(d.pending, key)
	}
}
