package training

import (
	"fmt"
	"time"

	"github.com/meltforce/speedifit/internal/calendar"
	"github.com/meltforce/speedifit/internal/models"
)

// SetVolume is the sum of weight*reps. An empty slice yields 0.
func SetVolume(sets []models.WorkoutSet) float64 {
	var v float64
	for _, s := range sets {
		v += s.Weight * float64(s.Reps)
	}
	return v
}

func ExerciseVolume(ex models.WorkoutExercise) float64 {
	return SetVolume(ex.Sets)
}

// WorkoutVolume recomputes volume from the sets. Saved workouts carry the
// result in TotalVolume; readers use that instead.
func WorkoutVolume(w models.Workout) float64 {
	var v float64
	for _, ex := range w.Exercises {
		v += ExerciseVolume(ex)
	}
	return v
}

// WindowedVolume sums cached TotalVolume over workouts whose local calendar
// day is on or after since.
func WindowedVolume(workouts []models.Workout, since calendar.Date, loc *time.Location) float64 {
	var v float64
	for _, w := range workouts {
		if !calendar.In(w.Date, loc).Before(since) {
			v += w.TotalVolume
		}
	}
	return v
}

// FilterSince keeps workouts on or after since, preserving order.
func FilterSince(workouts []models.Workout, since calendar.Date, loc *time.Location) []models.Workout {
	var out []models.Workout
	for _, w := range workouts {
		if !calendar.In(w.Date, loc).Before(since) {
			out = append(out, w)
		}
	}
	return out
}

// Timeframe is a trailing aggregation window.
type Timeframe string

const (
	Week  Timeframe = "week"
	Month Timeframe = "month"
	Year  Timeframe = "year"
)

var timeframeDays = map[Timeframe]int{
	Week:  7,
	Month: 30,
	Year:  365,
}

// ParseTimeframe accepts week, month or year. Empty means week.
func ParseTimeframe(s string) (Timeframe, error) {
	if s == "" {
		return Week, nil
	}
	tf := Timeframe(s)
	if _, ok := timeframeDays[tf]; !ok {
		return "", fmt.Errorf("unknown timeframe %q", s)
	}
	return tf, nil
}

// Days returns the window length. Unknown values fall back to a week.
func (tf Timeframe) Days() int {
	if d, ok := timeframeDays[tf]; ok {
		return d
	}
	return timeframeDays[Week]
}

// WindowStart is the first day included when looking back tf from today.
func WindowStart(tf Timeframe, today calendar.Date) calendar.Date {
	return today.AddDays(-tf.Days())
}
