package notify

// Bus actions for the notification surface.
const (
	ActionNotify            = "notify"
	ActionClearNotification = "clear-notification"
)

// clearPayload is the body of a clear-notification message.
type clearPayload struct {
	ID string `json:"id"`
}

// BusSink delivers notifications to the attached UI over an Emitter.
type BusSink struct {
	emit Emitter
}

// NewBusSink creates a sink on top of the given emitter.
func NewBusSink(emit Emitter) *BusSink {
	return &BusSink{emit: emit}
}

// Notify implements Sink.
func (s *BusSink) Notify(n Notification) error {
	return s.emit.Emit(ActionNotify, n)
}

// Clear implements Sink.
func (s *BusSink) Clear(id string) error {
	return s.emit.Emit(ActionClearNotification, clearPayload{ID: id})
}
