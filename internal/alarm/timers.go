package alarm

import (
	"sync"
	"time"

	"github.com/breakminder/breakminder/internal/logging"
)

// Timers is the real Service implementation backed by time.Timer.
type Timers struct {
	mu      sync.Mutex
	entries map[string]*entry
	handler Handler
	stopped bool
}

type entry struct {
	timer *time.Timer
	at    time.Time
}

// NewTimers creates a timer service. Fired timers are delivered to handler,
// which may be nil at construction and wired later with SetHandler.
func NewTimers(handler Handler) *Timers {
	return &Timers{
		entries: make(map[string]*entry),
		handler: handler,
	}
}

// SetHandler wires the fire handler. Must be called before any timer can
// fire; events with no handler are dropped.
func (t *Timers) SetHandler(handler Handler) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.handler = handler
}

// Create implements Service.
func (t *Timers) Create(name string, delay time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped {
		return
	}

	if old, ok := t.entries[name]; ok {
		old.timer.Stop()
		logging.DebugLog("timer replaced", logging.KeyTimer, name)
	}

	t.entries[name] = &entry{
		at:    time.Now().Add(delay),
		timer: time.AfterFunc(delay, func() { t.fire(name) }),
	}
	logging.DebugLog("timer armed", logging.KeyTimer, name, "delay", delay.String())
}

// fire removes the entry and hands the event to the handler. If the timer
// was cancelled or replaced between expiry and this call, the event is
// dropped.
func (t *Timers) fire(name string) {
	t.mu.Lock()
	e, ok := t.entries[name]
	if ok && !e.at.After(time.Now()) {
		delete(t.entries, name)
	} else {
		ok = false
	}
	handler := t.handler
	t.mu.Unlock()

	if !ok || handler == nil {
		return
	}
	handler(name)
}

// Cancel implements Service.
func (t *Timers) Cancel(name string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.entries[name]
	if !ok {
		return false
	}
	e.timer.Stop()
	delete(t.entries, name)
	logging.DebugLog("timer cancelled", logging.KeyTimer, name)
	return true
}

// Get implements Service.
func (t *Timers) Get(name string) (Info, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.entries[name]
	if !ok {
		return Info{}, false
	}
	return Info{Name: name, At: e.at}, true
}

// List implements Service.
func (t *Timers) List() []Info {
	t.mu.Lock()
	defer t.mu.Unlock()

	infos := make([]Info, 0, len(t.entries))
	for name, e := range t.entries {
		infos = append(infos, Info{Name: name, At: e.at})
	}
	return infos
}

// Stop disarms all timers and rejects further Create calls. Handlers that
// are already running are not waited for.
func (t *Timers) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopped = true
	for name, e := range t.entries {
		e.timer.Stop()
		delete(t.entries, name)
	}
}
