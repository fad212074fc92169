// Package sched contains the scheduling core: the reconciler that maps
// desired reminder settings onto armed timers, the firing handler that runs
// on every timer expiry, and the one-shot countdown controller.
package sched

import (
	"time"

	"github.com/breakminder/breakminder/internal/alarm"
	"github.com/breakminder/breakminder/internal/logging"
	"github.com/breakminder/breakminder/internal/model"
)

// SnapshotStore persists the last-applied configuration per kind.
type SnapshotStore interface {
	Get() (*model.Snapshot, error)
	Put(*model.Snapshot) error
}

// Reconciler computes the minimal set of timer operations that make the
// armed timers match a desired configuration.
type Reconciler struct {
	alarms    alarm.Service
	snapshots SnapshotStore
}

// NewReconciler creates a reconciler.
func NewReconciler(alarms alarm.Service, snapshots SnapshotStore) *Reconciler {
	return &Reconciler{alarms: alarms, snapshots: snapshots}
}

// Reconcile applies the desired per-kind configuration.
//
// A kind's countdown is disturbed only when its own {enabled, interval}
// actually changed; resubmitting unchanged settings, or changing an
// unrelated field like the sound flag, issues no timer operations. The new
// snapshot is persisted once, after all cancel/create calls.
func (r *Reconciler) Reconcile(desired map[model.Kind]model.ReminderConfig) error {
	snapshot, err := r.snapshots.Get()
	if err != nil {
		// Without the previous snapshot every existing timer would look
		// changed; rescheduling all of them restarts every countdown,
		// which is worse than retrying on the next settings submission.
		return err
	}

	for _, kind := range model.Kinds() {
		r.reconcileKind(snapshot, kind, desired[kind])
	}

	if err := r.snapshots.Put(snapshot); err != nil {
		return err
	}
	return nil
}

func (r *Reconciler) reconcileKind(snapshot *model.Snapshot, kind model.Kind, cfg model.ReminderConfig) {
	name := string(kind)

	// Disabled or zero interval: no timer. Cancelling an absent timer is
	// a no-op.
	if !cfg.Enabled || cfg.IntervalMinutes <= 0 {
		if _, exists := r.alarms.Get(name); exists {
			r.alarms.Cancel(name)
		}
		snapshot.Record(kind, cfg)
		return
	}

	// Defensive re-check; the boundary has already validated this.
	if !cfg.IntervalInRange() {
		logging.Warn("invalid reminder interval, disarming",
			logging.KeyKind, name,
			logging.KeyInterval, cfg.IntervalMinutes)
		if _, exists := r.alarms.Get(name); exists {
			r.alarms.Cancel(name)
		}
		snapshot.Record(kind, cfg)
		return
	}

	delay := time.Duration(cfg.IntervalMinutes) * time.Minute

	if _, exists := r.alarms.Get(name); !exists {
		r.alarms.Create(name, delay)
		snapshot.Record(kind, cfg)
		logging.Info("reminder armed", logging.KeyKind, name, logging.KeyInterval, cfg.IntervalMinutes)
		return
	}

	// A timer exists. Reschedule only on a real change, so the running
	// countdown survives unrelated settings edits.
	if applied, ok := snapshot.Applied(kind); ok && applied == cfg {
		return
	}

	if !r.alarms.Cancel(name) {
		// Cancellation unconfirmed. Leaving the old timer running beats
		// risking two timers for the same kind; the stale snapshot entry
		// makes the next reconcile try again.
		logging.Warn("cancel unconfirmed, keeping existing timer", logging.KeyKind, name)
		return
	}
	r.alarms.Create(name, delay)
	snapshot.Record(kind, cfg)
	logging.Info("reminder rescheduled", logging.KeyKind, name, logging.KeyInterval, cfg.IntervalMinutes)
}
