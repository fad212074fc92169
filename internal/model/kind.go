package model

// Kind identifies one of the fixed recurring break categories.
type Kind string

// The recurring reminder kinds.
const (
	KindBlink   Kind = "blink"
	KindWater   Kind = "water"
	KindUp      Kind = "up"
	KindStretch Kind = "stretch"
)

// OneTimeName is the timer name reserved for the single one-shot countdown.
// It is not a Kind: it never recurs and carries no per-kind settings.
const OneTimeName = "oneTime"

// Kinds returns all recurring reminder kinds in fixed order.
func Kinds() []Kind {
	return []Kind{KindBlink, KindWater, KindUp, KindStretch}
}

// IsValidKind checks whether s names a recurring reminder kind.
func IsValidKind(s string) bool {
	switch Kind(s) {
	case KindBlink, KindWater, KindUp, KindStretch:
		return true
	}
	return false
}

// message holds the fixed notification text and tone for a kind.
type message struct {
	Title string
	Body  string
	Tone  string
}

// messages is the fixed per-kind notification text table.
var messages = map[Kind]message{
	KindBlink:   {Title: "Blink break", Body: "Look away from the screen and blink slowly a few times.", Tone: "low"},
	KindWater:   {Title: "Water break", Body: "Time to drink a glass of water.", Tone: "mid"},
	KindUp:      {Title: "Stand up", Body: "Get up from your chair for a minute.", Tone: "mid"},
	KindStretch: {Title: "Stretch break", Body: "Stretch your arms, neck and shoulders.", Tone: "high"},
}

// Title returns the notification title for a kind.
func (k Kind) Title() string { return messages[k].Title }

// Body returns the notification body text for a kind.
func (k Kind) Body() string { return messages[k].Body }

// Tone returns the sound tone selector for a kind.
func (k Kind) Tone() string { return messages[k].Tone }
