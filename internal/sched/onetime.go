package sched

import (
	"time"

	"github.com/breakminder/breakminder/internal/alarm"
	"github.com/breakminder/breakminder/internal/errors"
	"github.com/breakminder/breakminder/internal/logging"
	"github.com/breakminder/breakminder/internal/model"
	"github.com/breakminder/breakminder/internal/validate"
)

// OneTimePersister is the durable resumption record for the countdown.
type OneTimePersister interface {
	Get() (*model.OneTimeTimer, error)
	Put(*model.OneTimeTimer) error
	Clear() error
}

// OneShot controls the single one-shot countdown timer.
type OneShot struct {
	alarms alarm.Service
	store  OneTimePersister
	now    func() time.Time
}

// NewOneShot creates a one-shot controller.
func NewOneShot(alarms alarm.Service, store OneTimePersister) *OneShot {
	return &OneShot{alarms: alarms, store: store, now: time.Now}
}

// Start validates and arms a countdown of the given minutes, replacing any
// countdown already running, and persists the resumption record so a
// reconnecting UI or a restarted daemon can reconstruct the remaining time.
func (o *OneShot) Start(minutes int) error {
	// Second enforcement point; the CLI/bus boundary has validated too.
	if err := validate.OneShotMinutes(minutes); err != nil {
		logging.Warn("one-shot timer rejected", logging.KeyMinutes, minutes)
		return err
	}

	o.alarms.Create(model.OneTimeName, time.Duration(minutes)*time.Minute)

	state := model.NewOneTimeTimer(o.now(), minutes)
	if err := o.store.Put(state); err != nil {
		// The timer is armed and will fire; only resumption across a
		// restart is lost.
		logging.Warn("could not persist one-shot state", logging.KeyError, err)
		return errors.NewTransientError("persist one-shot state", err)
	}

	logging.Info("one-shot timer armed", logging.KeyMinutes, minutes)
	return nil
}

// Cancel disarms the countdown and clears the resumption record. A timer
// that already fired or never existed is a no-op.
func (o *OneShot) Cancel() error {
	o.alarms.Cancel(model.OneTimeName)

	if err := o.store.Clear(); err != nil {
		return errors.NewTransientError("clear one-shot state", err)
	}

	logging.Info("one-shot timer cancelled")
	return nil
}

// Remaining reports the time left on the countdown, and whether one is
// armed at all.
func (o *OneShot) Remaining() (time.Duration, bool) {
	info, ok := o.alarms.Get(model.OneTimeName)
	if !ok {
		return 0, false
	}
	d := time.Until(info.At)
	if d < 0 {
		d = 0
	}
	return d, true
}

// Resume re-arms a countdown persisted by a previous daemon process. An
// already-expired record is completed through the normal firing path by
// arming a zero-delay timer.
func (o *OneShot) Resume() error {
	state, err := o.store.Get()
	if err != nil {
		return err
	}
	if state == nil {
		return nil
	}

	remaining := state.Remaining(o.now())
	o.alarms.Create(model.OneTimeName, remaining)
	logging.Info("one-shot timer resumed", "remaining", remaining.String())
	return nil
}
