package model

// Snapshot records the last-applied {enabled, interval} per kind. It lets
// the reconciler tell a real settings change from an unchanged resubmission
// across daemon restarts, so unrelated edits (e.g. the sound flag) never
// restart a running countdown.
type Snapshot struct {
	Reminders map[Kind]ReminderConfig `json:"reminders"`
}

// NewSnapshot returns an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{Reminders: make(map[Kind]ReminderConfig)}
}

// Applied returns the last-applied configuration for a kind.
func (s *Snapshot) Applied(k Kind) (ReminderConfig, bool) {
	if s.Reminders == nil {
		return ReminderConfig{}, false
	}
	c, ok := s.Reminders[k]
	return c, ok
}

// Record stores the applied configuration for a kind.
func (s *Snapshot) Record(k Kind, c ReminderConfig) {
	if s.Reminders == nil {
		s.Reminders = make(map[Kind]ReminderConfig)
	}
	s.Reminders[k] = c
}

// SetKey implements Model. Snapshot is a fixed-key singleton.
func (s *Snapshot) SetKey(string) {}

// GetKey implements Model.
func (s *Snapshot) GetKey() string { return KeySnapshot }
