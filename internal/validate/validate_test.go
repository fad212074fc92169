package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/breakminder/breakminder/internal/errors"
	"github.com/breakminder/breakminder/internal/model"
)

func TestKind(t *testing.T) {
	for _, name := range []string{"blink", "water", "up", "stretch"} {
		kind, err := Kind(name)
		require.NoError(t, err)
		assert.Equal(t, model.Kind(name), kind)
	}

	for _, name := range []string{"", "coffee", "oneTime", "Water"} {
		_, err := Kind(name)
		require.Error(t, err, "name=%q", name)
		assert.True(t, errors.IsValidation(err))
	}
}

func TestInterval(t *testing.T) {
	for _, minutes := range []int{0, 1, 30, 60} {
		assert.NoError(t, Interval(minutes), "minutes=%d", minutes)
	}
	for _, minutes := range []int{-1, 61, 9999} {
		err := Interval(minutes)
		require.Error(t, err, "minutes=%d", minutes)
		assert.True(t, errors.IsValidation(err))
	}
}

func TestOneShotMinutes(t *testing.T) {
	for _, minutes := range []int{1, 60, 120} {
		assert.NoError(t, OneShotMinutes(minutes), "minutes=%d", minutes)
	}
	for _, minutes := range []int{0, -5, 121} {
		err := OneShotMinutes(minutes)
		require.Error(t, err, "minutes=%d", minutes)
		assert.True(t, errors.IsValidation(err))
	}
}

func TestSettings(t *testing.T) {
	s := model.DefaultSettings()
	assert.NoError(t, Settings(s))

	s.SetConfig(model.KindWater, model.ReminderConfig{Enabled: true, IntervalMinutes: 45})
	assert.NoError(t, Settings(s))

	s.SetConfig(model.KindBlink, model.ReminderConfig{Enabled: true, IntervalMinutes: 75})
	assert.Error(t, Settings(s))
}
