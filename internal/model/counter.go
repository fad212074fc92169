package model

import "time"

// DailyCounter is the per-day water log count. The reset is lazy: if the
// stored DateKey is not today's, the logical count is 0 regardless of the
// stored value, and nothing rewrites the record until the next increment.
type DailyCounter struct {
	Count   int    `json:"count"`
	DateKey string `json:"date_key"`
}

// DateKeyFor returns the calendar-day identifier for t in its location.
func DateKeyFor(t time.Time) string {
	return t.Format("2006-01-02")
}

// EffectiveCount returns the logical count as of now: the stored count if
// the record belongs to today, otherwise 0.
func (c DailyCounter) EffectiveCount(now time.Time) int {
	if c.DateKey != DateKeyFor(now) {
		return 0
	}
	return c.Count
}

// Incremented returns the counter after one increment as of now, applying
// the lazy reset when the stored day is stale.
func (c DailyCounter) Incremented(now time.Time) DailyCounter {
	return DailyCounter{
		Count:   c.EffectiveCount(now) + 1,
		DateKey: DateKeyFor(now),
	}
}

// SetKey implements Model. DailyCounter is a fixed-key singleton.
func (c *DailyCounter) SetKey(string) {}

// GetKey implements Model.
func (c *DailyCounter) GetKey() string { return KeyCounter }
