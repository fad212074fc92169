package daemon

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/breakminder/breakminder/internal/bus"
	"github.com/breakminder/breakminder/internal/errors"
	"github.com/breakminder/breakminder/internal/logging"
	"github.com/breakminder/breakminder/internal/model"
	"github.com/breakminder/breakminder/internal/validate"
)

// Dispatch implements bus.Dispatcher: it routes one inbound request from a
// UI collaborator into the core. Validation errors are returned to the
// originating connection; everything else is handled internally.
func (d *Daemon) Dispatch(action string, payload json.RawMessage) (*bus.Reply, error) {
	switch action {
	case bus.ActionUpdateReminders:
		return d.handleUpdateReminders(payload)
	case bus.ActionStartOneShotTimer:
		return d.handleStartOneShot(payload)
	case bus.ActionCancelOneShotTimer:
		if err := d.oneshot.Cancel(); err != nil {
			return nil, err
		}
		return bus.Ack(), nil
	case bus.ActionNotificationClicked:
		return d.handleClicked(payload)
	case bus.ActionNotificationClosed:
		return d.handleClosed(payload)
	case bus.ActionGetState:
		return d.handleGetState()
	default:
		return nil, errors.NewValidationError("action", action, "unknown action")
	}
}

func (d *Daemon) handleUpdateReminders(payload json.RawMessage) (*bus.Reply, error) {
	var req bus.UpdateRemindersPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return nil, errors.NewValidationError("payload", "", "malformed update-reminders payload")
	}

	settings := model.DefaultSettings()
	settings.SoundEnabled = req.SoundEnabled
	for name, cfg := range req.Reminders {
		kind, err := validate.Kind(name)
		if err != nil {
			return nil, err
		}
		settings.SetConfig(kind, model.ReminderConfig{
			Enabled:         cfg.Enabled,
			IntervalMinutes: cfg.IntervalMinutes,
		})
	}

	// Boundary validation; the reconciler re-checks each interval before
	// arming anything.
	if err := validate.Settings(settings); err != nil {
		return nil, err
	}

	if err := d.settingsRepo.Update(settings); err != nil {
		return nil, errors.NewTransientError("persist settings", err)
	}
	if err := d.reconciler.Reconcile(settings.Reminders); err != nil {
		return nil, errors.NewTransientError("reconcile reminders", err)
	}
	return bus.Ack(), nil
}

func (d *Daemon) handleStartOneShot(payload json.RawMessage) (*bus.Reply, error) {
	var req bus.StartOneShotPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return nil, errors.NewValidationError("payload", "", "malformed start-one-shot-timer payload")
	}

	// Boundary validation; OneShot.Start enforces the same range again.
	if err := validate.OneShotMinutes(req.Minutes); err != nil {
		return nil, err
	}
	if err := d.oneshot.Start(req.Minutes); err != nil {
		return nil, err
	}
	return bus.Ack(), nil
}

// handleClicked routes a notification button click. Index 0 on a water
// notification logs a glass; any click clears the notification. Clicks on
// notifications that are already gone are no-ops.
func (d *Daemon) handleClicked(payload json.RawMessage) (*bus.Reply, error) {
	var req bus.ClickPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return nil, errors.NewValidationError("payload", "", "malformed notification-clicked payload")
	}

	if strings.HasPrefix(req.ID, string(model.KindWater)+"_") && req.ButtonIndex == 0 {
		d.serializer.EnqueueIncrement()
	}

	if err := d.sink.Clear(req.ID); err != nil {
		logging.DebugLog("clear-notification undeliverable", logging.KeyError, err)
	}
	return bus.Ack(), nil
}

func (d *Daemon) handleClosed(payload json.RawMessage) (*bus.Reply, error) {
	var req bus.ClosePayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return nil, errors.NewValidationError("payload", "", "malformed notification-closed payload")
	}
	logging.DebugLog("notification closed", "id", req.ID)
	return bus.Ack(), nil
}

// handleGetState assembles the full snapshot a reconnecting UI needs,
// including the remaining one-shot countdown reconstructed from the armed
// timer.
func (d *Daemon) handleGetState() (*bus.Reply, error) {
	settings, err := d.settingsRepo.Get()
	if err != nil {
		return nil, errors.NewTransientError("read settings", err)
	}

	stored, err := d.counterRepo.Load()
	if err != nil {
		return nil, errors.NewTransientError("read counter", err)
	}

	supported, err := d.supportRepo.Get()
	if err != nil {
		logging.DebugLog("sound-support flag unreadable", logging.KeyError, err)
		supported = true
	}

	state := bus.StatePayload{
		Reminders:      make(map[string]bus.ReminderConfigPayload, len(model.Kinds())),
		SoundEnabled:   settings.SoundEnabled,
		SoundSupported: supported,
		Count:          stored.EffectiveCount(time.Now()),
	}
	for _, kind := range model.Kinds() {
		cfg := settings.Config(kind)
		state.Reminders[string(kind)] = bus.ReminderConfigPayload{
			Enabled:         cfg.Enabled,
			IntervalMinutes: cfg.IntervalMinutes,
		}
	}

	if remaining, ok := d.oneshot.Remaining(); ok {
		state.OneShotArmed = true
		state.OneShotRemaining = remaining.Milliseconds()
	}

	return &bus.Reply{Action: bus.ActionState, Payload: state}, nil
}
