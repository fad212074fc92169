package bus

import "encoding/json"

// Inbound actions (UI/CLI -> core).
const (
	ActionUpdateReminders     = "update-reminders"
	ActionStartOneShotTimer   = "start-one-shot-timer"
	ActionCancelOneShotTimer  = "cancel-one-shot-timer"
	ActionNotificationClicked = "notification-clicked"
	ActionNotificationClosed  = "notification-closed"
	ActionGetState            = "get-state"
)

// Reply actions.
const (
	ActionAck   = "ack"
	ActionError = "error"
	ActionState = "state"
)

// Envelope is the wire format for every bus message, in both directions.
type Envelope struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ReminderConfigPayload mirrors one kind's desired configuration.
type ReminderConfigPayload struct {
	Enabled         bool `json:"enabled"`
	IntervalMinutes int  `json:"interval_minutes"`
}

// UpdateRemindersPayload is the body of an update-reminders request.
type UpdateRemindersPayload struct {
	Reminders    map[string]ReminderConfigPayload `json:"reminders"`
	SoundEnabled bool                             `json:"sound_enabled"`
}

// StartOneShotPayload is the body of a start-one-shot-timer request.
type StartOneShotPayload struct {
	Minutes int `json:"minutes"`
}

// ClickPayload is the body of a notification-clicked event.
type ClickPayload struct {
	ID          string `json:"id"`
	ButtonIndex int    `json:"button_index"`
}

// ClosePayload is the body of a notification-closed event.
type ClosePayload struct {
	ID string `json:"id"`
}

// ErrorPayload is the body of an error reply.
type ErrorPayload struct {
	Message string `json:"message"`
}

// StatePayload is the body of a state reply: everything a reconnecting UI
// needs to redraw itself, including the remaining one-shot countdown.
type StatePayload struct {
	Reminders        map[string]ReminderConfigPayload `json:"reminders"`
	SoundEnabled     bool                             `json:"sound_enabled"`
	SoundSupported   bool                             `json:"sound_supported"`
	Count            int                              `json:"count"`
	OneShotRemaining int64                            `json:"one_shot_remaining_ms,omitempty"`
	OneShotArmed     bool                             `json:"one_shot_armed"`
}

// Reply is a dispatcher's answer to a request message.
type Reply struct {
	Action  string
	Payload any
}

// Ack is the empty success reply.
func Ack() *Reply {
	return &Reply{Action: ActionAck}
}
