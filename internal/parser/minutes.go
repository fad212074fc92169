// Package parser turns human timer expressions into whole minutes.
package parser

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"
)

// plainRegex matches bare minute counts: "20", "20m", "20 min", "20 minutes".
var plainRegex = regexp.MustCompile(`(?i)^(\d+)\s*(m|min|mins|minute|minutes)?$`)

// Minutes parses a timer expression into whole minutes relative to now.
// Accepts a bare count ("20", "45m") or a natural phrase ("in 20 minutes",
// "in an hour and a half"). Fractions round up so the timer never fires
// early. Range validation is the caller's job; this only rejects input it
// cannot read or that lies in the past.
func Minutes(input string, now time.Time) (int, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, fmt.Errorf("timer duration is required")
	}

	if match := plainRegex.FindStringSubmatch(input); match != nil {
		n, err := strconv.Atoi(match[1])
		if err != nil {
			return 0, fmt.Errorf("could not parse minutes %q", input)
		}
		return n, nil
	}

	cfg := &dateparser.Configuration{
		CurrentTime: now,
	}
	result, err := dateparser.Parse(cfg, input)
	if err != nil {
		return 0, fmt.Errorf("could not parse duration %q", input)
	}

	until := result.Time.Sub(now)
	if until <= 0 {
		return 0, fmt.Errorf("%q is not in the future", input)
	}

	return int(math.Ceil(until.Minutes())), nil
}
