package model

// Interval bounds. A recurring interval of 0 (or a disabled kind) means no
// active timer; a one-shot countdown is 1..120 minutes.
const (
	MaxIntervalMinutes = 60
	MinOneShotMinutes  = 1
	MaxOneShotMinutes  = 120
)

// ReminderConfig is the desired state for one reminder kind.
type ReminderConfig struct {
	Enabled         bool `json:"enabled"`
	IntervalMinutes int  `json:"interval_minutes"`
}

// WantsTimer reports whether this configuration calls for an armed timer.
func (c ReminderConfig) WantsTimer() bool {
	return c.Enabled && c.IntervalMinutes > 0 && c.IntervalMinutes <= MaxIntervalMinutes
}

// IntervalInRange reports whether the interval is within [0,60].
func (c ReminderConfig) IntervalInRange() bool {
	return c.IntervalMinutes >= 0 && c.IntervalMinutes <= MaxIntervalMinutes
}

// Settings is the durable user configuration record.
type Settings struct {
	Reminders    map[Kind]ReminderConfig `json:"reminders"`
	SoundEnabled bool                    `json:"sound_enabled"`
}

// DefaultSettings returns the configuration used before the user has saved
// anything: all kinds disabled, sound on.
func DefaultSettings() *Settings {
	reminders := make(map[Kind]ReminderConfig, len(Kinds()))
	for _, k := range Kinds() {
		reminders[k] = ReminderConfig{}
	}
	return &Settings{Reminders: reminders, SoundEnabled: true}
}

// Config returns the configuration for a kind, zero if absent.
func (s *Settings) Config(k Kind) ReminderConfig {
	if s.Reminders == nil {
		return ReminderConfig{}
	}
	return s.Reminders[k]
}

// SetConfig records the configuration for a kind.
func (s *Settings) SetConfig(k Kind, c ReminderConfig) {
	if s.Reminders == nil {
		s.Reminders = make(map[Kind]ReminderConfig)
	}
	s.Reminders[k] = c
}

// SetKey implements Model. Settings is a fixed-key singleton.
func (s *Settings) SetKey(string) {}

// GetKey implements Model.
func (s *Settings) GetKey() string { return KeySettings }
