package notify

import (
	"time"

	"github.com/breakminder/breakminder/internal/logging"
)

// Bus actions for the auxiliary sound path.
const (
	ActionEnsureAudio      = "ensure-audio"
	ActionSoundPlay        = "sound-play"
	ActionSoundUnsupported = "sound-unsupported"
)

// playPayload is the body of a sound-play message.
type playPayload struct {
	Tone string `json:"tone"`
}

// SupportStore persists the best-effort sound-support flag.
type SupportStore interface {
	Save(supported bool) error
}

// SoundRouter implements the auxiliary sound playback path for platforms
// whose native notification sound is unreliable. Delivery runs through the
// attached UI's hidden audio surface: ensure the surface, send the play
// request, and on failure retry exactly once after re-ensuring. Total
// failure degrades to "no sound"; nothing here ever propagates an error
// into the firing handler.
type SoundRouter struct {
	emit       Emitter
	support    SupportStore
	retryDelay time.Duration
	sleep      func(time.Duration)
}

// NewSoundRouter creates a sound router.
func NewSoundRouter(emit Emitter, support SupportStore, retryDelay time.Duration) *SoundRouter {
	return &SoundRouter{
		emit:       emit,
		support:    support,
		retryDelay: retryDelay,
		sleep:      time.Sleep,
	}
}

// Play requests playback of the given tone. Best-effort; never returns an
// error and never holds up the firing path: the single retry has to wait
// out the audio surface's startup, so it runs on its own goroutine.
func (r *SoundRouter) Play(tone string) {
	// "Already exists" on the audio surface is success, so ensure
	// unconditionally and cheaply before the first attempt.
	if err := r.emit.Emit(ActionEnsureAudio, nil); err != nil {
		logging.DebugLog("audio surface ensure failed", logging.KeyError, err)
	}

	if err := r.emit.Emit(ActionSoundPlay, playPayload{Tone: tone}); err == nil {
		return
	}

	// No listener ready yet: recreate the surface, wait briefly, retry once.
	go r.retry(tone)
}

// retry attempts delivery once more after re-ensuring the surface.
func (r *SoundRouter) retry(tone string) {
	if err := r.emit.Emit(ActionEnsureAudio, nil); err != nil {
		logging.DebugLog("audio surface ensure failed", logging.KeyError, err)
	}
	r.sleep(r.retryDelay)

	if err := r.emit.Emit(ActionSoundPlay, playPayload{Tone: tone}); err == nil {
		return
	}

	// Give up silently; record the incapability for the UI to mention.
	logging.Warn("auxiliary sound playback unavailable", "tone", tone)
	if err := r.support.Save(false); err != nil {
		logging.Warn("could not persist sound-support flag", logging.KeyError, err)
	}
	if err := r.emit.Emit(ActionSoundUnsupported, nil); err != nil {
		logging.DebugLog("sound-unsupported signal undeliverable", logging.KeyError, err)
	}
}
