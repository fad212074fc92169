package sched

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/breakminder/breakminder/internal/errors"
	"github.com/breakminder/breakminder/internal/model"
	"github.com/breakminder/breakminder/internal/notify"
)

type fakeSettings struct {
	settings *model.Settings
	err      error
}

func (f *fakeSettings) Get() (*model.Settings, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.settings, nil
}

type fakeOneTimeStore struct {
	clears int
}

func (f *fakeOneTimeStore) Clear() error {
	f.clears++
	return nil
}

type fakeSink struct {
	mu       sync.Mutex
	notified []notify.Notification
	cleared  []string
}

func (f *fakeSink) Notify(n notify.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notified = append(f.notified, n)
	return nil
}

func (f *fakeSink) Clear(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cleared = append(f.cleared, id)
	return nil
}

func (f *fakeSink) last(t *testing.T) notify.Notification {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.notified)
	return f.notified[len(f.notified)-1]
}

type fakeSounder struct {
	tones []string
}

func (f *fakeSounder) Play(tone string) {
	f.tones = append(f.tones, tone)
}

type fakeEmitter struct {
	mu      sync.Mutex
	actions []string
}

func (f *fakeEmitter) Emit(action string, payload any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.actions = append(f.actions, action)
	return nil
}

func (f *fakeEmitter) emitted(action string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.actions {
		if a == action {
			return true
		}
	}
	return false
}

type firingFixture struct {
	handler  *FiringHandler
	settings *fakeSettings
	onetime  *fakeOneTimeStore
	alarms   *fakeAlarms
	sink     *fakeSink
	sound    *fakeSounder
	emit     *fakeEmitter
	now      time.Time
}

func newFiringFixture(mac bool) *firingFixture {
	f := &firingFixture{
		settings: &fakeSettings{settings: model.DefaultSettings()},
		onetime:  &fakeOneTimeStore{},
		alarms:   newFakeAlarms(),
		sink:     &fakeSink{},
		sound:    &fakeSounder{},
		emit:     &fakeEmitter{},
		now:      time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local),
	}
	f.handler = NewFiringHandler(f.settings, f.onetime, f.alarms, f.sink, f.sound, f.emit)
	f.handler.now = func() time.Time { return f.now }
	f.handler.isMac = func() bool { return mac }
	return f
}

func TestHandleFireBlink(t *testing.T) {
	f := newFiringFixture(false)
	f.settings.settings.SetConfig(model.KindBlink, model.ReminderConfig{Enabled: true, IntervalMinutes: 20})

	f.handler.HandleFire(string(model.KindBlink))

	n := f.sink.last(t)
	assert.Equal(t, string(model.KindBlink), n.ID)
	assert.Equal(t, model.KindBlink.Title(), n.Title)
	assert.Empty(t, n.Buttons)
	assert.False(t, n.RequireInteraction)
	assert.False(t, n.Silent)
}

func TestHandleFireWaterNotification(t *testing.T) {
	t.Run("off_mac", func(t *testing.T) {
		f := newFiringFixture(false)
		f.handler.HandleFire(string(model.KindWater))

		n := f.sink.last(t)
		assert.Equal(t, fmt.Sprintf("water_%d", f.now.UnixMilli()), n.ID)
		require.Len(t, n.Buttons, 2)
		assert.Equal(t, "Log Water", n.Buttons[0].Title)
		assert.Equal(t, "Skip", n.Buttons[1].Title)
		assert.True(t, n.RequireInteraction)
	})

	t.Run("on_mac", func(t *testing.T) {
		f := newFiringFixture(true)
		f.handler.HandleFire(string(model.KindWater))

		n := f.sink.last(t)
		assert.False(t, n.RequireInteraction)
	})
}

func TestHandleFireSound(t *testing.T) {
	t.Run("off_mac_native_sound", func(t *testing.T) {
		f := newFiringFixture(false)
		f.handler.HandleFire(string(model.KindBlink))

		assert.False(t, f.sink.last(t).Silent)
		assert.Empty(t, f.sound.tones)
	})

	t.Run("mac_aux_path_forces_silent", func(t *testing.T) {
		f := newFiringFixture(true)
		f.handler.HandleFire(string(model.KindBlink))

		assert.True(t, f.sink.last(t).Silent)
		assert.Equal(t, []string{model.KindBlink.Tone()}, f.sound.tones)
	})

	t.Run("sound_disabled", func(t *testing.T) {
		f := newFiringFixture(true)
		f.settings.settings.SoundEnabled = false
		f.handler.HandleFire(string(model.KindBlink))

		assert.True(t, f.sink.last(t).Silent)
		assert.Empty(t, f.sound.tones)
	})
}

// deadEmitter simulates a bus with no client attached.
type deadEmitter struct{}

func (deadEmitter) Emit(string, any) error { return errors.ErrNoClients }

type noopSupport struct{}

func (noopSupport) Save(bool) error { return nil }

func TestHandleFireSoundRetryOffFiringPath(t *testing.T) {
	f := newFiringFixture(true)
	// A real sound router on a dead bus: both delivery attempts will fail,
	// and the retry window is far longer than the test allows the fire to
	// take.
	f.handler.sound = notify.NewSoundRouter(deadEmitter{}, noopSupport{}, time.Minute)

	done := make(chan struct{})
	go func() {
		f.handler.HandleFire(string(model.KindBlink))
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("fire blocked on the sound retry window")
	}

	// The notification went out immediately, silent as always on this
	// platform.
	n := f.sink.last(t)
	assert.Equal(t, string(model.KindBlink), n.ID)
	assert.True(t, n.Silent)
}

func TestHandleFireRearm(t *testing.T) {
	t.Run("valid_interval_rearms", func(t *testing.T) {
		f := newFiringFixture(false)
		f.settings.settings.SetConfig(model.KindStretch, model.ReminderConfig{Enabled: true, IntervalMinutes: 45})

		f.handler.HandleFire(string(model.KindStretch))

		info, armed := f.alarms.Get(string(model.KindStretch))
		require.True(t, armed)
		assert.Equal(t, string(model.KindStretch), info.Name)
	})

	t.Run("disabled_since_arming_stops", func(t *testing.T) {
		f := newFiringFixture(false)
		f.settings.settings.SetConfig(model.KindStretch, model.ReminderConfig{Enabled: false, IntervalMinutes: 45})

		f.handler.HandleFire(string(model.KindStretch))

		_, armed := f.alarms.Get(string(model.KindStretch))
		assert.False(t, armed)
	})

	t.Run("corrupt_interval_stops_cycle", func(t *testing.T) {
		f := newFiringFixture(false)
		f.settings.settings.SetConfig(model.KindStretch, model.ReminderConfig{Enabled: true, IntervalMinutes: 9999})

		f.handler.HandleFire(string(model.KindStretch))

		// The notification still went out; only the re-arm was refused.
		assert.NotEmpty(t, f.sink.notified)
		_, armed := f.alarms.Get(string(model.KindStretch))
		assert.False(t, armed)
	})
}

func TestHandleFireOneTime(t *testing.T) {
	f := newFiringFixture(false)
	f.handler.HandleFire(model.OneTimeName)

	n := f.sink.last(t)
	assert.Equal(t, model.OneTimeName, n.ID)
	assert.Equal(t, "Timer done", n.Title)

	assert.True(t, f.emit.emitted(ActionOneShotComplete))
	assert.Equal(t, 1, f.onetime.clears)

	// Terminal: the one-shot never re-arms itself.
	_, armed := f.alarms.Get(model.OneTimeName)
	assert.False(t, armed)
}

func TestHandleFireUnknownTimer(t *testing.T) {
	f := newFiringFixture(false)
	f.handler.HandleFire("coffee")

	assert.Empty(t, f.sink.notified)
	assert.Empty(t, f.alarms.creates)
}

func TestHandleFireSettingsUnreadable(t *testing.T) {
	f := newFiringFixture(false)
	f.settings.err = assert.AnError

	f.handler.HandleFire(string(model.KindBlink))

	assert.Empty(t, f.sink.notified)
	assert.Empty(t, f.alarms.creates)
}
