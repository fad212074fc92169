// Package notify defines the notification contract between the scheduling
// core and the attached UI collaborator, and the auxiliary sound path.
package notify

// Button is a notification action button.
type Button struct {
	Title string `json:"title"`
}

// Notification is a user-visible alert raised by the firing handler.
//
// ID is stable for standard kinds and unique per fire for water (the kind
// prefix plus the fire timestamp), so overlapping water notifications stay
// individually addressable by later button clicks.
type Notification struct {
	ID                 string   `json:"id"`
	Kind               string   `json:"kind"`
	Title              string   `json:"title"`
	Message            string   `json:"message"`
	Silent             bool     `json:"silent"`
	RequireInteraction bool     `json:"require_interaction"`
	Buttons            []Button `json:"buttons,omitempty"`
}

// Sink displays alerts and clears them. Implemented by the websocket bus
// in production and by fakes in tests; delivery is best-effort either way.
type Sink interface {
	Notify(n Notification) error
	Clear(id string) error
}

// Emitter sends a best-effort message to the attached UI collaborator.
type Emitter interface {
	Emit(action string, payload any) error
}
