// Package alarm provides the named one-shot timer service the scheduling
// core runs on.
//
// The contract is deliberately minimal: a timer is a name plus a relative
// delay, fires exactly once, and can be queried or cancelled by name. There
// is no recurring primitive; recurrence is the firing handler's job, which
// re-arms after every fire so interval edits take effect on the next cycle.
package alarm

import "time"

// Handler is invoked, on its own goroutine, when a timer fires. The timer
// has already been removed from the service by the time it runs.
type Handler func(name string)

// Info describes an armed timer.
type Info struct {
	Name string
	At   time.Time // when the timer will fire
}

// Service schedules named one-shot callbacks after relative delays.
type Service interface {
	// Create arms a timer that fires after delay. An existing timer with
	// the same name is replaced.
	Create(name string, delay time.Duration)

	// Cancel disarms the named timer. It reports whether a timer was
	// actually removed; cancelling an absent timer is a no-op, not an
	// error.
	Cancel(name string) bool

	// Get returns the armed timer with the given name, if any.
	Get(name string) (Info, bool)

	// List returns all armed timers.
	List() []Info
}
