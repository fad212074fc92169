// Package validate provides input validation for breakminder.
//
// The same range checks are enforced at the CLI/bus boundary and again
// inside the core before any timer is armed. Both enforcement points are
// intentional; do not collapse them.
package validate

import (
	"strconv"

	"github.com/breakminder/breakminder/internal/errors"
	"github.com/breakminder/breakminder/internal/model"
)

// Kind validates a reminder kind name.
func Kind(name string) (model.Kind, error) {
	if !model.IsValidKind(name) {
		return "", errors.NewValidationError("kind", name, "unknown reminder kind")
	}
	return model.Kind(name), nil
}

// Interval validates a recurring reminder interval in minutes, range [0,60].
// Zero is valid and means "no timer".
func Interval(minutes int) error {
	if minutes < 0 || minutes > model.MaxIntervalMinutes {
		return errors.NewValidationError("interval_minutes", strconv.Itoa(minutes),
			"reminder interval must be between 0 and 60 minutes")
	}
	return nil
}

// OneShotMinutes validates a one-shot countdown duration, range [1,120].
func OneShotMinutes(minutes int) error {
	if minutes < model.MinOneShotMinutes || minutes > model.MaxOneShotMinutes {
		return errors.NewValidationError("minutes", strconv.Itoa(minutes),
			"timer must be between 1 and 120 minutes")
	}
	return nil
}

// Settings validates a full desired-settings record.
func Settings(s *model.Settings) error {
	for _, k := range model.Kinds() {
		if err := Interval(s.Config(k).IntervalMinutes); err != nil {
			return err
		}
	}
	return nil
}
