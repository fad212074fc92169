// Package model defines the domain models for breakminder.
package model

// Model is the interface that all database models must implement.
type Model interface {
	// SetKey sets the database key for this model.
	SetKey(key string)
	// GetKey returns the database key for this model.
	GetKey() string
}

// Database keys. All breakminder state is a handful of singletons.
const (
	KeySettings     = "settings"
	KeySnapshot     = "alarmsnapshot"
	KeyCounter      = "counter"
	KeyOneTime      = "onetime"
	KeySoundSupport = "soundsupport"
)
