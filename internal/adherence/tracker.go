package adherence

import (
	"slices"
	"strconv"

	"github.com/meltforce/speedifit/internal/calendar"
)

// State is the persisted habit log plus its cached streak.
type State struct {
	Dates    []calendar.Date `json:"dates"`
	Streak   int             `json:"streak"`
	LastDate calendar.Date   `json:"lastDate"`
}

// Tracker applies new records against one clock. The date log is the only
// source of truth; the cached streak is always the recomputed value.
type Tracker struct {
	Clock     calendar.Clock
	Retention int
}

func NewTracker(clock calendar.Clock) *Tracker {
	return &Tracker{Clock: clock, Retention: DefaultRetention}
}

// Record adds date to the log and reconciles the streak. mismatch reports
// that the incremental fast path disagreed with a full recomputation.
// Recording a day that is already logged returns the state unchanged.
func (t *Tracker) Record(s State, date calendar.Date) (next State, mismatch bool) {
	dates, added := Record(s.Dates, date, t.Retention)
	if !added {
		return s, false
	}

	fast := IncrementalUpdate(s.LastDate, date, s.Streak)
	full := Recompute(dates, t.Clock.Today())

	last := s.LastDate
	if date.After(last) {
		last = date
	}
	return State{Dates: dates, Streak: full, LastDate: last}, fast != full
}

// Streak is the current streak as of the tracker's today.
func (t *Tracker) Streak(s State) int {
	return Recompute(s.Dates, t.Clock.Today())
}

func (t *Tracker) DoneToday(s State) bool {
	return slices.Contains(s.Dates, t.Clock.Today())
}

// Tier buckets a streak length for display.
type Tier string

const (
	TierNone      Tier = "none"
	TierFire      Tier = "fire"
	TierLightning Tier = "lightning"
	TierDiamond   Tier = "diamond"
	TierElite     Tier = "elite"
)

func StreakTier(streak int) Tier {
	switch {
	case streak <= 0:
		return TierNone
	case streak < 7:
		return TierFire
	case streak < 30:
		return TierLightning
	case streak < 90:
		return TierDiamond
	default:
		return TierElite
	}
}

func (t Tier) Emoji() string {
	switch t {
	case TierFire:
		return "🔥"
	case TierLightning:
		return "⚡"
	case TierDiamond:
		return "💎"
	case TierElite:
		return "👑"
	default:
		return "📅"
	}
}

// Banner is the celebration line shown for streaks of a week or more.
// Shorter streaks get an empty string.
func Banner(streak int) string {
	switch StreakTier(streak) {
	case TierElite:
		return "👑 Elite Status: " + strconv.Itoa(streak) + " day streak!"
	case TierDiamond:
		return "💎 Diamond Consistency: " + strconv.Itoa(streak) + " day streak!"
	case TierLightning:
		return "⚡ On Fire: " + strconv.Itoa(streak) + " day streak! Keep it up!"
	default:
		return ""
	}
}
