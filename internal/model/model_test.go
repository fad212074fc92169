package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDateKeyFor(t *testing.T) {
	ts := time.Date(2025, 3, 9, 23, 59, 0, 0, time.Local)
	assert.Equal(t, "2025-03-09", DateKeyFor(ts))
}

func TestDailyCounterLazyReset(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)

	t.Run("same_day_counts", func(t *testing.T) {
		c := DailyCounter{Count: 4, DateKey: DateKeyFor(now)}
		assert.Equal(t, 4, c.EffectiveCount(now))
	})

	t.Run("stale_day_reads_zero", func(t *testing.T) {
		c := DailyCounter{Count: 4, DateKey: "2025-03-09"}
		assert.Equal(t, 0, c.EffectiveCount(now))
	})

	t.Run("increment_commits_reset", func(t *testing.T) {
		c := DailyCounter{Count: 4, DateKey: "2025-03-09"}
		next := c.Incremented(now)
		assert.Equal(t, 1, next.Count)
		assert.Equal(t, DateKeyFor(now), next.DateKey)
	})

	t.Run("increment_same_day", func(t *testing.T) {
		c := DailyCounter{Count: 4, DateKey: DateKeyFor(now)}
		next := c.Incremented(now)
		assert.Equal(t, 5, next.Count)
	})
}

func TestOneTimeTimer(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.Local)
	timer := NewOneTimeTimer(now, 5)

	assert.Equal(t, now.UnixMilli(), timer.ScheduledAtMs)
	assert.Equal(t, now.Add(5*time.Minute), timer.Deadline())

	t.Run("remaining_mid_countdown", func(t *testing.T) {
		assert.Equal(t, 3*time.Minute, timer.Remaining(now.Add(2*time.Minute)))
		assert.False(t, timer.Expired(now.Add(2*time.Minute)))
	})

	t.Run("remaining_never_negative", func(t *testing.T) {
		assert.Equal(t, time.Duration(0), timer.Remaining(now.Add(10*time.Minute)))
		assert.True(t, timer.Expired(now.Add(10*time.Minute)))
	})
}

func TestReminderConfigWantsTimer(t *testing.T) {
	tests := []struct {
		name    string
		enabled bool
		minutes int
		want    bool
	}{
		{"enabled_valid", true, 30, true},
		{"enabled_max", true, 60, true},
		{"enabled_zero", true, 0, false},
		{"enabled_over_max", true, 61, false},
		{"disabled", false, 30, false},
		{"disabled_zero", false, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := ReminderConfig{Enabled: tt.enabled, IntervalMinutes: tt.minutes}
			assert.Equal(t, tt.want, cfg.WantsTimer())
		})
	}
}

func TestKinds(t *testing.T) {
	assert.Equal(t, []Kind{KindBlink, KindWater, KindUp, KindStretch}, Kinds())

	for _, k := range Kinds() {
		assert.True(t, IsValidKind(string(k)))
		assert.NotEmpty(t, k.Title())
		assert.NotEmpty(t, k.Body())
		assert.NotEmpty(t, k.Tone())
	}

	assert.False(t, IsValidKind("coffee"))
	assert.False(t, IsValidKind(OneTimeName))
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.True(t, s.SoundEnabled)
	for _, k := range Kinds() {
		assert.False(t, s.Config(k).WantsTimer())
	}
}
