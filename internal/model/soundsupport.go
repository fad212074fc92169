package model

// SoundSupport is a best-effort record of whether auxiliary audio playback
// succeeded last time it was attempted. Informational only; it never gates
// functionality.
type SoundSupport struct {
	Supported bool `json:"supported"`
}

// SetKey implements Model. SoundSupport is a fixed-key singleton.
func (s *SoundSupport) SetKey(string) {}

// GetKey implements Model.
func (s *SoundSupport) GetKey() string { return KeySoundSupport }
