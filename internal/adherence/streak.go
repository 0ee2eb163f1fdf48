// Package adherence tracks a daily habit as a set of calendar days and
// derives the current consecutive-day streak from it.
package adherence

import (
	"slices"

	"github.com/meltforce/speedifit/internal/calendar"
)

// DefaultRetention is how many distinct days the log keeps.
const DefaultRetention = 90

// Record adds date to log unless it is already present. The result is
// sorted ascending, duplicate free and holds at most retention of the most
// recent days. added reports whether date was new.
func Record(log []calendar.Date, date calendar.Date, retention int) (out []calendar.Date, added bool) {
	if slices.Contains(log, date) {
		return log, false
	}
	out = append(slices.Clone(log), date)
	return Normalize(out, retention), true
}

// Normalize sorts, dedupes and trims a log to the newest retention days.
func Normalize(log []calendar.Date, retention int) []calendar.Date {
	if retention <= 0 {
		retention = DefaultRetention
	}
	out := slices.Clone(log)
	slices.SortFunc(out, calendar.Date.Compare)
	out = slices.Compact(out)
	if len(out) > retention {
		out = out[len(out)-retention:]
	}
	return out
}

// IncrementalUpdate advances a cached streak when newDate is recorded after
// previous. A zero previous means nothing was recorded before.
func IncrementalUpdate(previous, newDate calendar.Date, current int) int {
	if previous.IsZero() {
		return 1
	}
	switch calendar.DaysBetween(newDate, previous) {
	case 1:
		return current + 1
	case 0:
		return current
	default:
		// a gap or an out of order date starts over
		return 1
	}
}

// Recompute counts consecutive logged days ending today, or ending
// yesterday when today is not logged yet. Days after today are ignored.
func Recompute(log []calendar.Date, today calendar.Date) int {
	days := make(map[calendar.Date]struct{}, len(log))
	for _, d := range log {
		if !d.After(today) {
			days[d] = struct{}{}
		}
	}

	anchor := today
	if _, ok := days[anchor]; !ok {
		anchor = today.AddDays(-1)
		if _, ok := days[anchor]; !ok {
			return 0
		}
	}

	streak := 0
	for d := anchor; ; d = d.AddDays(-1) {
		if _, ok := days[d]; !ok {
			return streak
		}
		streak++
	}
}

// Latest returns the most recent day in log, or the zero Date.
func Latest(log []calendar.Date) calendar.Date {
	var latest calendar.Date
	for _, d := range log {
		if d.After(latest) {
			latest = d
		}
	}
	return latest
}
