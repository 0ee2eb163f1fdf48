package storage

import (
	"context"
	"time"

	"github.com/meltforce/speedifit/internal/adherence"
	"github.com/meltforce/speedifit/internal/calendar"
	"github.com/meltforce/speedifit/internal/catalog"
	"github.com/meltforce/speedifit/internal/training"
)

// Home is the dashboard summary.
type Home struct {
	WeekStart        calendar.Date  `json:"weekStart"`
	WorkoutsThisWeek int            `json:"workoutsThisWeek"`
	VolumeThisWeek   float64        `json:"volumeThisWeek"`
	TestedExercises  int            `json:"testedExercises"`
	CreatineTaken    bool           `json:"creatineTaken"`
	CreatineStreak   int            `json:"creatineStreak"`
	StreakTier       adherence.Tier `json:"streakTier"`
	StreakEmoji      string         `json:"streakEmoji"`
	Banner           string         `json:"banner,omitempty"`
	Motivation       string         `json:"motivation"`
	LastWorkout      *time.Time     `json:"lastWorkout,omitempty"`
}

// Home summarises the current week, which starts on Sunday.
func (r *Repository) Home(ctx context.Context) Home {
	today := r.clock.Today()
	weekStart := today.StartOfWeek()
	week := training.FilterSince(r.LoadWorkouts(ctx), weekStart, r.clock.Loc())

	creatine := r.CreatineStatus(ctx)
	h := Home{
		WeekStart:        weekStart,
		WorkoutsThisWeek: len(week),
		VolumeThisWeek:   training.WindowedVolume(week, weekStart, r.clock.Loc()),
		TestedExercises:  len(r.LoadUserMaxes(ctx)),
		CreatineTaken:    creatine.TakenToday,
		CreatineStreak:   creatine.Streak,
		StreakTier:       creatine.Tier,
		StreakEmoji:      creatine.Emoji,
		Banner:           creatine.Banner,
		Motivation:       training.Motivation(len(week)),
	}
	if t, ok := r.LastWorkoutDate(ctx); ok {
		h.LastWorkout = &t
	}
	return h
}

// Progress is the progress screen for one timeframe.
type Progress struct {
	Timeframe training.Timeframe      `json:"timeframe"`
	Since     calendar.Date           `json:"since"`
	Stats     training.Stats          `json:"stats"`
	History   []training.HistoryEntry `json:"history"`
}

func (r *Repository) Progress(ctx context.Context, tf training.Timeframe) Progress {
	since := training.WindowStart(tf, r.clock.Today())
	workouts := training.FilterSince(r.LoadWorkouts(ctx), since, r.clock.Loc())
	return Progress{
		Timeframe: tf,
		Since:     since,
		Stats:     training.ProgressStats(workouts, r.LoadUserMaxes(ctx), catalog.Name, r.clock),
		History:   training.History(workouts),
	}
}
