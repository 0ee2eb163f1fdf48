package storage

import (
	"context"
	"slices"
	"strconv"

	"github.com/meltforce/speedifit/internal/adherence"
	"github.com/meltforce/speedifit/internal/calendar"
)

// CreatineHistory returns the logged days, oldest first. Entries that are not
// valid dates are skipped.
func (r *Repository) CreatineHistory(ctx context.Context) []calendar.Date {
	var raw []string
	if !r.getJSON(ctx, KeyCreatineTaken, &raw) {
		return []calendar.Date{}
	}
	dates := make([]calendar.Date, 0, len(raw))
	for _, s := range raw {
		d, err := r.clock.ParseDate(s)
		if err != nil {
			r.log.Warn("skipping bad creatine date", "value", s, "error", err)
			continue
		}
		dates = append(dates, d)
	}
	return adherence.Normalize(dates, adherence.DefaultRetention)
}

// CachedStreak is the last persisted streak value. It may be stale; use
// CreatineStreak for display.
func (r *Repository) CachedStreak(ctx context.Context) int {
	return r.getInt(ctx, KeyCreatineStreak)
}

func (r *Repository) lastCreatineDate(ctx context.Context) calendar.Date {
	v, ok := r.getRaw(ctx, KeyLastCreatineDate)
	if !ok || v == "" {
		return calendar.Date{}
	}
	d, err := calendar.Parse(v)
	if err != nil {
		r.failed("decode", KeyLastCreatineDate, err)
		return calendar.Date{}
	}
	return d
}

func (r *Repository) creatineState(ctx context.Context) adherence.State {
	return adherence.State{
		Dates:    r.CreatineHistory(ctx),
		Streak:   r.CachedStreak(ctx),
		LastDate: r.lastCreatineDate(ctx),
	}
}

func (r *Repository) saveCreatineState(ctx context.Context, s adherence.State) {
	raw := make([]string, len(s.Dates))
	for i, d := range s.Dates {
		raw[i] = d.String()
	}
	r.setJSON(ctx, KeyCreatineTaken, raw)
	r.setRaw(ctx, KeyCreatineStreak, strconv.Itoa(s.Streak))
	if !s.LastDate.IsZero() {
		r.setRaw(ctx, KeyLastCreatineDate, s.LastDate.String())
	}
	r.metrics.GaugeCreatineStreak.Set(float64(s.Streak))
}

// RecordCreatine logs date (zero means today). Logging a day twice is a
// no-op. added reports whether the day was new.
func (r *Repository) RecordCreatine(ctx context.Context, date calendar.Date) (streak int, added bool) {
	if date.IsZero() {
		date = r.clock.Today()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	prev := r.creatineState(ctx)
	next, mismatch := r.tracker.Record(prev, date)
	if mismatch {
		r.log.Warn("incremental streak disagreed with recomputation",
			"date", date, "cached", prev.Streak, "recomputed", next.Streak)
		r.metrics.CounterStreakMismatch.Inc()
	}
	added = !slices.Equal(next.Dates, prev.Dates)
	if !added {
		return r.tracker.Streak(prev), false
	}

	r.saveCreatineState(ctx, next)
	r.metrics.CounterCreatineLogged.Inc()
	r.log.Info("creatine logged", "date", date, "streak", next.Streak)
	return next.Streak, true
}

// CreatineStreak recomputes the streak from the log and persists it.
func (r *Repository) CreatineStreak(ctx context.Context) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := r.creatineState(ctx)
	streak := r.tracker.Streak(s)
	if streak != s.Streak {
		r.setRaw(ctx, KeyCreatineStreak, strconv.Itoa(streak))
	}
	r.metrics.GaugeCreatineStreak.Set(float64(streak))
	return streak
}

func (r *Repository) TookCreatineToday(ctx context.Context) bool {
	return slices.Contains(r.CreatineHistory(ctx), r.clock.Today())
}

// CreatineStatus is the snapshot shown after any creatine interaction.
type CreatineStatus struct {
	TakenToday bool            `json:"takenToday"`
	Streak     int             `json:"streak"`
	Tier       adherence.Tier  `json:"tier"`
	Emoji      string          `json:"emoji"`
	Banner     string          `json:"banner,omitempty"`
	History    []calendar.Date `json:"history"`
}

func (r *Repository) CreatineStatus(ctx context.Context) CreatineStatus {
	streak := r.CreatineStreak(ctx)
	history := r.CreatineHistory(ctx)
	tier := adherence.StreakTier(streak)
	return CreatineStatus{
		TakenToday: slices.Contains(history, r.clock.Today()),
		Streak:     streak,
		Tier:       tier,
		Emoji:      tier.Emoji(),
		Banner:     adherence.Banner(streak),
		History:    history,
	}
}
