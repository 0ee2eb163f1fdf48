package training

import (
	"cmp"
	"math"
	"slices"
	"time"

	"github.com/meltforce/speedifit/internal/adherence"
	"github.com/meltforce/speedifit/internal/calendar"
	"github.com/meltforce/speedifit/internal/models"
)

// MinutesPerExercise estimates workout length when no duration was logged.
const MinutesPerExercise = 15

const (
	topMuscles = 3
	topRecords = 5
)

type MuscleCount struct {
	Muscle models.MuscleGroup `json:"muscle"`
	Count  int                `json:"count"`
}

type PersonalRecord struct {
	ExerciseID string        `json:"exerciseId"`
	Exercise   string        `json:"exercise"`
	Weight     float64       `json:"weight"`
	Date       calendar.Date `json:"date"`
}

type Stats struct {
	TotalWorkouts          int              `json:"totalWorkouts"`
	TotalVolume            float64          `json:"totalVolume"`
	AverageWorkoutDuration int              `json:"averageWorkoutDuration"`
	CurrentStreak          int              `json:"currentStreak"`
	MostTrainedMuscles     []MuscleCount    `json:"mostTrainedMuscles"`
	PersonalRecords        []PersonalRecord `json:"personalRecords"`
}

// ProgressStats summarises workouts, already filtered to a window, and the
// current maxes. name resolves an exercise id to its display name.
func ProgressStats(workouts []models.Workout, maxes models.UserMaxes, name func(string) string, clock calendar.Clock) Stats {
	st := Stats{
		TotalWorkouts:      len(workouts),
		MostTrainedMuscles: []MuscleCount{},
		PersonalRecords:    []PersonalRecord{},
	}

	minutes := 0
	freq := map[models.MuscleGroup]int{}
	trained := make([]calendar.Date, 0, len(workouts))
	for _, w := range workouts {
		st.TotalVolume += w.TotalVolume
		if w.Duration != nil {
			minutes += *w.Duration
		} else {
			minutes += len(w.Exercises) * MinutesPerExercise
		}
		for _, g := range w.MuscleGroups {
			freq[g]++
		}
		trained = append(trained, clock.DateOf(w.Date))
	}
	if len(workouts) > 0 {
		st.AverageWorkoutDuration = int(math.Round(float64(minutes) / float64(len(workouts))))
	}
	st.CurrentStreak = adherence.Recompute(trained, clock.Today())

	for g, n := range freq {
		st.MostTrainedMuscles = append(st.MostTrainedMuscles, MuscleCount{Muscle: g, Count: n})
	}
	slices.SortFunc(st.MostTrainedMuscles, func(a, b MuscleCount) int {
		return cmp.Or(cmp.Compare(b.Count, a.Count), cmp.Compare(a.Muscle, b.Muscle))
	})
	if len(st.MostTrainedMuscles) > topMuscles {
		st.MostTrainedMuscles = st.MostTrainedMuscles[:topMuscles]
	}

	for id, m := range maxes {
		st.PersonalRecords = append(st.PersonalRecords, PersonalRecord{
			ExerciseID: id,
			Exercise:   name(id),
			Weight:     m.Weight,
			Date:       m.TestedDate,
		})
	}
	slices.SortFunc(st.PersonalRecords, func(a, b PersonalRecord) int {
		return cmp.Or(cmp.Compare(b.Weight, a.Weight), cmp.Compare(a.Exercise, b.Exercise))
	})
	if len(st.PersonalRecords) > topRecords {
		st.PersonalRecords = st.PersonalRecords[:topRecords]
	}
	return st
}

// HistoryEntry is the list row for one saved workout.
type HistoryEntry struct {
	ID            string               `json:"id"`
	Date          time.Time            `json:"date"`
	Name          string               `json:"name"`
	MuscleGroups  []models.MuscleGroup `json:"muscleGroups"`
	Volume        float64              `json:"volume"`
	ExerciseCount int                  `json:"exerciseCount"`
}

// History lists workouts newest first.
func History(workouts []models.Workout) []HistoryEntry {
	out := make([]HistoryEntry, 0, len(workouts))
	for _, w := range workouts {
		out = append(out, HistoryEntry{
			ID:            w.ID,
			Date:          w.Date,
			Name:          w.Name,
			MuscleGroups:  w.MuscleGroups,
			Volume:        w.TotalVolume,
			ExerciseCount: len(w.Exercises),
		})
	}
	slices.SortStableFunc(out, func(a, b HistoryEntry) int {
		return b.Date.Compare(a.Date)
	})
	return out
}
