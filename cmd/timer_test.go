package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatCountdown(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{"zero", 0, "00:00"},
		{"negative_clamps", -time.Minute, "00:00"},
		{"seconds_only", 42 * time.Second, "00:42"},
		{"minutes", 25*time.Minute + 5*time.Second, "25:05"},
		{"hours", 2*time.Hour + 3*time.Minute + 4*time.Second, "02:03:04"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatCountdown(tt.d))
		})
	}
}
