package sched

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/breakminder/breakminder/internal/errors"
	"github.com/breakminder/breakminder/internal/model"
)

type memOneTime struct {
	state  *model.OneTimeTimer
	clears int
}

func (m *memOneTime) Get() (*model.OneTimeTimer, error) { return m.state, nil }

func (m *memOneTime) Put(t *model.OneTimeTimer) error {
	m.state = t
	return nil
}

func (m *memOneTime) Clear() error {
	m.state = nil
	m.clears++
	return nil
}

func newOneShotFixture() (*OneShot, *fakeAlarms, *memOneTime) {
	alarms := newFakeAlarms()
	store := &memOneTime{}
	o := NewOneShot(alarms, store)
	o.now = func() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local) }
	return o, alarms, store
}

func TestOneShotStart(t *testing.T) {
	o, alarms, store := newOneShotFixture()

	require.NoError(t, o.Start(25))

	_, armed := alarms.Get(model.OneTimeName)
	assert.True(t, armed)

	require.NotNil(t, store.state)
	assert.Equal(t, 25, store.state.DurationMinutes)
}

func TestOneShotStartRejectsOutOfRange(t *testing.T) {
	for _, minutes := range []int{0, -1, 121} {
		o, alarms, store := newOneShotFixture()

		err := o.Start(minutes)
		require.Error(t, err, "minutes=%d", minutes)
		assert.True(t, errors.IsValidation(err))

		// A rejected request arms nothing and persists nothing.
		_, armed := alarms.Get(model.OneTimeName)
		assert.False(t, armed)
		assert.Nil(t, store.state)
	}
}

func TestOneShotStartReplacesRunning(t *testing.T) {
	o, alarms, store := newOneShotFixture()

	require.NoError(t, o.Start(25))
	require.NoError(t, o.Start(40))

	assert.Len(t, alarms.List(), 1)
	assert.Equal(t, 40, store.state.DurationMinutes)
}

func TestOneShotCancel(t *testing.T) {
	o, alarms, store := newOneShotFixture()

	require.NoError(t, o.Start(25))
	require.NoError(t, o.Cancel())

	_, armed := alarms.Get(model.OneTimeName)
	assert.False(t, armed)
	assert.Nil(t, store.state)
}

func TestOneShotCancelIdle(t *testing.T) {
	o, _, _ := newOneShotFixture()
	assert.NoError(t, o.Cancel())
}

func TestOneShotRemaining(t *testing.T) {
	o, _, _ := newOneShotFixture()

	_, armed := o.Remaining()
	assert.False(t, armed)

	require.NoError(t, o.Start(25))

	remaining, armed := o.Remaining()
	require.True(t, armed)
	assert.InDelta(t, (25 * time.Minute).Seconds(), remaining.Seconds(), 2)
}

func TestOneShotResume(t *testing.T) {
	t.Run("no_record", func(t *testing.T) {
		o, alarms, _ := newOneShotFixture()
		require.NoError(t, o.Resume())
		assert.Empty(t, alarms.creates)
	})

	t.Run("mid_countdown", func(t *testing.T) {
		o, alarms, store := newOneShotFixture()
		scheduled := time.Date(2025, 3, 10, 8, 50, 0, 0, time.Local)
		store.state = model.NewOneTimeTimer(scheduled, 30)

		require.NoError(t, o.Resume())

		info, armed := alarms.Get(model.OneTimeName)
		require.True(t, armed)
		// 10 of the 30 minutes already elapsed before the restart.
		assert.InDelta(t, (20 * time.Minute).Seconds(), time.Until(info.At).Seconds(), 2)
	})

	t.Run("already_expired", func(t *testing.T) {
		o, alarms, store := newOneShotFixture()
		scheduled := time.Date(2025, 3, 10, 7, 0, 0, 0, time.Local)
		store.state = model.NewOneTimeTimer(scheduled, 30)

		require.NoError(t, o.Resume())

		// Expired records complete through the normal firing path.
		_, armed := alarms.Get(model.OneTimeName)
		assert.True(t, armed)
		require.NotEmpty(t, alarms.creates)
		assert.Equal(t, model.OneTimeName, alarms.creates[0])
	})
}
