package models

import "time"

// ScheduleRule fires a command at a time of day on a set of weekdays.
// Weekdays use time.Weekday numbering (0 = Sunday). Rules are created via
// the API, removed by id, and evaluated until removed; they never expire.
type ScheduleRule struct {
	ID      string    `json:"id"`
	Time    string    `json:"time"` // "HH:MM", 24h, zero-padded
	Days    []int     `json:"days"`
	Command Command   `json:"command"`
	Name    string    `json:"name"`
	Enabled bool      `json:"enabled"`
	Created time.Time `json:"created"`
}

// DueAt reports whether the rule should fire at the given wall-clock time.
func (r ScheduleRule) DueAt(now time.Time) bool {
	if !r.Enabled || r.Time != now.Format("15:04") {
		return false
	}
	day := int(now.Weekday())
	for _, d := range r.Days {
		if d == day {
			return true
		}
	}
	return false
}
