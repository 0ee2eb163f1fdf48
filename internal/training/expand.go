package training

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/meltforce/speedifit/internal/models"
)

var (
	ErrNoExercises  = errors.New("no exercises selected")
	ErrEmptyName    = errors.New("workout name is required")
	ErrEmptyWorkout = errors.New("workout has no exercises")
	ErrInvalidSet   = errors.New("invalid set")
)

// MissingMaxesError lists every selected exercise that has no tested max.
type MissingMaxesError struct {
	Exercises []string
}

func (e *MissingMaxesError) Error() string {
	return "please test your max for: " + strings.Join(e.Exercises, ", ")
}

// ExpandTemplate maps each template entry, in order, to a concrete set.
// The result always has exactly len(template.Sets) entries.
func ExpandTemplate(exerciseID, exerciseName string, oneRepMax float64, template models.SetSchemeTemplate) []models.WorkoutSet {
	sets := make([]models.WorkoutSet, len(template.Sets))
	for i, entry := range template.Sets {
		sets[i] = models.WorkoutSet{
			SetNumber:       i + 1,
			ExerciseID:      exerciseID,
			ExerciseName:    exerciseName,
			Reps:            entry.Reps,
			Weight:          ResolveWeight(oneRepMax, entry.Percentage),
			PercentageOfMax: entry.Percentage,
			RestSeconds:     entry.RestSeconds,
		}
	}
	return sets
}

// Generate expands template for every selected exercise. Exercises without
// a max are collected and reported together in a *MissingMaxesError.
func Generate(exercises []models.Exercise, maxes models.UserMaxes, template models.SetSchemeTemplate) ([]models.WorkoutExercise, error) {
	if len(exercises) == 0 {
		return nil, ErrNoExercises
	}

	var missing []string
	out := make([]models.WorkoutExercise, 0, len(exercises))
	for _, ex := range exercises {
		m, ok := maxes[ex.ID]
		if !ok || m.Weight <= 0 {
			missing = append(missing, ex.Name)
			continue
		}
		out = append(out, models.WorkoutExercise{
			ExerciseID:   ex.ID,
			ExerciseName: ex.Name,
			Sets:         ExpandTemplate(ex.ID, ex.Name, m.Weight, template),
		})
	}
	if len(missing) > 0 {
		return nil, &MissingMaxesError{Exercises: missing}
	}
	return out, nil
}

// NewWorkout builds the immutable record saved to history, caching its
// total volume. Sets must be numbered 1..N, have at least one rep and carry a
// non-negative weight on the RoundUnit grid. Empty per-set exercise fields
// are filled from the parent exercise.
func NewWorkout(name string, date time.Time, groups []models.MuscleGroup, exercises []models.WorkoutExercise) (models.Workout, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Workout{}, ErrEmptyName
	}
	if len(exercises) == 0 {
		return models.Workout{}, ErrEmptyWorkout
	}

	out := make([]models.WorkoutExercise, len(exercises))
	for i, ex := range exercises {
		if len(ex.Sets) == 0 {
			return models.Workout{}, fmt.Errorf("exercise %s: %w", ex.ExerciseID, ErrEmptyWorkout)
		}
		sets, err := validateSets(ex)
		if err != nil {
			return models.Workout{}, err
		}
		ex.Sets = sets
		out[i] = ex
	}

	w := models.Workout{
		Name:         name,
		Date:         date,
		MuscleGroups: groups,
		Exercises:    out,
	}
	w.TotalVolume = WorkoutVolume(w)
	return w, nil
}

func validateSets(ex models.WorkoutExercise) ([]models.WorkoutSet, error) {
	if ex.ExerciseID == "" {
		return nil, fmt.Errorf("exercise without id: %w", ErrInvalidSet)
	}
	sets := make([]models.WorkoutSet, len(ex.Sets))
	for i, s := range ex.Sets {
		switch {
		case s.SetNumber != i+1:
			return nil, fmt.Errorf("%s set %d: numbered %d: %w", ex.ExerciseID, i+1, s.SetNumber, ErrInvalidSet)
		case s.Reps < 1:
			return nil, fmt.Errorf("%s set %d: %d reps: %w", ex.ExerciseID, i+1, s.Reps, ErrInvalidSet)
		case s.Weight < 0 || math.IsNaN(s.Weight) || math.Mod(s.Weight, RoundUnit) != 0:
			return nil, fmt.Errorf("%s set %d: weight %v not a multiple of %d: %w", ex.ExerciseID, i+1, s.Weight, RoundUnit, ErrInvalidSet)
		case s.ExerciseID != "" && s.ExerciseID != ex.ExerciseID:
			return nil, fmt.Errorf("%s set %d: belongs to %s: %w", ex.ExerciseID, i+1, s.ExerciseID, ErrInvalidSet)
		}
		s.ExerciseID = ex.ExerciseID
		if s.ExerciseName == "" {
			s.ExerciseName = ex.ExerciseName
		}
		sets[i] = s
	}
	return sets, nil
}
