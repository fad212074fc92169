package model

import "time"

// OneTimeTimer is the persisted resumption record for the single in-flight
// one-shot countdown. Its presence lets a UI that reconnects after being
// closed reconstruct the remaining time, and lets a restarted daemon re-arm
// the countdown.
type OneTimeTimer struct {
	ScheduledAtMs   int64 `json:"scheduled_at_ms"`
	DurationMinutes int   `json:"duration_minutes"`
}

// NewOneTimeTimer records a countdown of the given minutes starting at now.
func NewOneTimeTimer(now time.Time, minutes int) *OneTimeTimer {
	return &OneTimeTimer{
		ScheduledAtMs:   now.UnixMilli(),
		DurationMinutes: minutes,
	}
}

// Deadline returns the moment the countdown fires.
func (t *OneTimeTimer) Deadline() time.Time {
	return time.UnixMilli(t.ScheduledAtMs).Add(time.Duration(t.DurationMinutes) * time.Minute)
}

// Remaining returns the time left as of now, never negative.
func (t *OneTimeTimer) Remaining(now time.Time) time.Duration {
	d := t.Deadline().Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// Expired reports whether the deadline has passed as of now.
func (t *OneTimeTimer) Expired(now time.Time) bool {
	return !t.Deadline().After(now)
}

// SetKey implements Model. OneTimeTimer is a fixed-key singleton.
func (t *OneTimeTimer) SetKey(string) {}

// GetKey implements Model.
func (t *OneTimeTimer) GetKey() string { return KeyOneTime }
