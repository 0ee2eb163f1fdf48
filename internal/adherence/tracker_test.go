package adherence

import (
	"testing"
	"time"

	"github.com/meltforce/speedifit/internal/calendar"
	"github.com/stretchr/testify/assert"
)

func fixedTracker() *Tracker {
	return NewTracker(calendar.Fixed(time.Date(2025, 8, 10, 21, 0, 0, 0, time.UTC)))
}

func TestTrackerRecord(t *testing.T) {
	tr := fixedTracker()

	var s State
	s, mismatch := tr.Record(s, today.AddDays(-1))
	assert.False(t, mismatch)
	assert.Equal(t, 1, s.Streak)

	s, mismatch = tr.Record(s, today)
	assert.False(t, mismatch)
	assert.Equal(t, 2, s.Streak)
	assert.Equal(t, today, s.LastDate)
	assert.True(t, tr.DoneToday(s))

	// same day twice never changes anything
	again, mismatch := tr.Record(s, today)
	assert.False(t, mismatch)
	assert.Equal(t, s, again)
}

func TestTrackerBackfillReconciles(t *testing.T) {
	tr := fixedTracker()
	s := State{Dates: days(-2, 0), Streak: 1, LastDate: today}

	// filling the hole at yesterday: the incremental path sees an out of
	// order date and resets, recomputation sees three days
	s, mismatch := tr.Record(s, today.AddDays(-1))
	assert.True(t, mismatch)
	assert.Equal(t, 3, s.Streak)
	assert.Equal(t, today, s.LastDate)
}

func TestTrackerStreakDecays(t *testing.T) {
	tr := fixedTracker()
	s := State{Dates: days(-4, -3), Streak: 2, LastDate: today.AddDays(-3)}
	assert.Equal(t, 0, tr.Streak(s))
	assert.False(t, tr.DoneToday(s))
}

func TestStreakTier(t *testing.T) {
	tests := []struct {
		streak int
		want   Tier
		emoji  string
	}{
		{0, TierNone, "📅"},
		{1, TierFire, "🔥"},
		{6, TierFire, "🔥"},
		{7, TierLightning, "⚡"},
		{29, TierLightning, "⚡"},
		{30, TierDiamond, "💎"},
		{89, TierDiamond, "💎"},
		{90, TierElite, "👑"},
	}
	for _, tt := range tests {
		got := StreakTier(tt.streak)
		assert.Equal(t, tt.want, got, "streak %d", tt.streak)
		assert.Equal(t, tt.emoji, got.Emoji())
	}
}

func TestBanner(t *testing.T) {
	assert.Empty(t, Banner(6))
	assert.Equal(t, "⚡ On Fire: 7 day streak! Keep it up!", Banner(7))
	assert.Equal(t, "💎 Diamond Consistency: 45 day streak!", Banner(45))
	assert.Equal(t, "👑 Elite Status: 90 day streak!", Banner(90))
}
