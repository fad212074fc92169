package sched

import (
	"fmt"
	"time"

	"github.com/breakminder/breakminder/internal/alarm"
	"github.com/breakminder/breakminder/internal/logging"
	"github.com/breakminder/breakminder/internal/model"
	"github.com/breakminder/breakminder/internal/notify"
	"github.com/breakminder/breakminder/internal/platform"
)

// ActionOneShotComplete is the bus action announcing one-shot completion.
const ActionOneShotComplete = "one-shot-complete"

// SettingsSource reads the current user settings.
type SettingsSource interface {
	Get() (*model.Settings, error)
}

// OneTimeStore clears the one-shot resumption record once it has fired.
type OneTimeStore interface {
	Clear() error
}

// Sounder plays the auxiliary tone for a fire. It never fails into the
// caller; total failure degrades to silence.
type Sounder interface {
	Play(tone string)
}

// Emitter announces events to the attached UI, best-effort.
type Emitter interface {
	Emit(action string, payload any) error
}

// FiringHandler reacts to timer expiries. Recurring kinds build their
// notification and explicitly re-arm themselves from the currently stored
// interval, since the timer service has no recurring primitive; the
// one-shot timer is terminal.
type FiringHandler struct {
	settings SettingsSource
	onetime  OneTimeStore
	alarms   alarm.Service
	sink     notify.Sink
	sound    Sounder
	emit     Emitter

	now   func() time.Time
	isMac func() bool
}

// NewFiringHandler creates a firing handler.
func NewFiringHandler(settings SettingsSource, onetime OneTimeStore, alarms alarm.Service, sink notify.Sink, sound Sounder, emit Emitter) *FiringHandler {
	return &FiringHandler{
		settings: settings,
		onetime:  onetime,
		alarms:   alarms,
		sink:     sink,
		sound:    sound,
		emit:     emit,
		now:      time.Now,
		isMac:    platform.IsMac,
	}
}

// HandleFire processes one timer expiry. It is the alarm service's Handler
// and must never panic the daemon; all failure paths log and stop.
func (h *FiringHandler) HandleFire(name string) {
	settings, err := h.settings.Get()
	if err != nil {
		logging.Error("settings unreadable on fire, skipping", logging.KeyTimer, name, logging.KeyError, err)
		return
	}

	if name == model.OneTimeName {
		h.fireOneTime(settings)
		return
	}

	if !model.IsValidKind(name) {
		logging.Warn("expiry for unknown timer", logging.KeyTimer, name)
		return
	}
	h.fireKind(model.Kind(name), settings)
}

// fireOneTime completes the one-shot countdown: notify, signal the UI,
// clear the resumption record. No re-arm; this transition is terminal.
func (h *FiringHandler) fireOneTime(settings *model.Settings) {
	n := notify.Notification{
		ID:      model.OneTimeName,
		Kind:    model.OneTimeName,
		Title:   "Timer done",
		Message: "Your countdown timer has finished.",
		Silent:  h.applySound(settings, "high"),
	}
	if err := h.sink.Notify(n); err != nil {
		logging.DebugLog("notification undeliverable", logging.KeyTimer, model.OneTimeName, logging.KeyError, err)
	}

	if err := h.emit.Emit(ActionOneShotComplete, nil); err != nil {
		logging.DebugLog("one-shot-complete undeliverable", logging.KeyError, err)
	}

	if err := h.onetime.Clear(); err != nil {
		logging.Warn("could not clear one-shot state", logging.KeyError, err)
	}

	logging.Info("one-shot timer fired")
}

// fireKind raises the notification for a recurring kind and re-arms it from
// the currently configured interval.
func (h *FiringHandler) fireKind(kind model.Kind, settings *model.Settings) {
	silent := h.applySound(settings, kind.Tone())

	n := notify.Notification{
		ID:      string(kind),
		Kind:    string(kind),
		Title:   kind.Title(),
		Message: kind.Body(),
		Silent:  silent,
	}

	if kind == model.KindWater {
		// Each water fire is individually addressable so overlapping
		// notifications route their button clicks correctly.
		n.ID = fmt.Sprintf("%s_%d", model.KindWater, h.now().UnixMilli())
		n.Buttons = []notify.Button{{Title: "Log Water"}, {Title: "Skip"}}
		// macOS cannot reliably keep buttoned notifications visible.
		n.RequireInteraction = !h.isMac()
	}

	if err := h.sink.Notify(n); err != nil {
		logging.DebugLog("notification undeliverable", logging.KeyKind, string(kind), logging.KeyError, err)
	}

	h.rearm(kind, settings)
}

// applySound runs the sound side effect and returns the notification's
// silent flag. Off macOS the native notification carries the sound, so
// silent mirrors the negation of the setting. On macOS the auxiliary path
// owns audio and the native notification is forced silent to avoid
// double-sounding.
func (h *FiringHandler) applySound(settings *model.Settings, tone string) (silent bool) {
	if !settings.SoundEnabled {
		return true
	}
	if h.isMac() {
		h.sound.Play(tone)
		return true
	}
	return false
}

// rearm schedules the next fire for a recurring kind. The relative delay is
// re-read from settings on every fire so interval edits take effect on the
// next cycle. A stored interval outside (0,60] stops the cycle rather than
// looping with a bad value.
func (h *FiringHandler) rearm(kind model.Kind, settings *model.Settings) {
	cfg := settings.Config(kind)

	if !cfg.Enabled {
		logging.DebugLog("kind disabled since arming, not re-arming", logging.KeyKind, string(kind))
		return
	}
	if cfg.IntervalMinutes <= 0 || cfg.IntervalMinutes > model.MaxIntervalMinutes {
		logging.Warn("stored interval invalid, not re-arming",
			logging.KeyKind, string(kind),
			logging.KeyInterval, cfg.IntervalMinutes)
		return
	}

	h.alarms.Create(string(kind), time.Duration(cfg.IntervalMinutes)*time.Minute)
	logging.DebugLog("reminder re-armed", logging.KeyKind, string(kind), logging.KeyInterval, cfg.IntervalMinutes)
}
