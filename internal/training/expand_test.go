package training

import (
	"errors"
	"testing"
	"time"

	"github.com/meltforce/speedifit/internal/calendar"
	"github.com/meltforce/speedifit/internal/catalog"
	"github.com/meltforce/speedifit/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weights(sets []models.WorkoutSet) []float64 {
	out := make([]float64, len(sets))
	for i, s := range sets {
		out[i] = s.Weight
	}
	return out
}

func TestExpandTemplatePyramid(t *testing.T) {
	pyramid, err := Scheme("pyramid")
	require.NoError(t, err)

	sets := ExpandTemplate("squat", "Squat", 225, pyramid)
	assert.Equal(t, []float64{145, 160, 170, 180, 170}, weights(sets))

	for i, s := range sets {
		assert.Equal(t, i+1, s.SetNumber)
		assert.Equal(t, "squat", s.ExerciseID)
		assert.Equal(t, "Squat", s.ExerciseName)
		assert.Equal(t, pyramid.Sets[i].Reps, s.Reps)
		assert.Equal(t, pyramid.Sets[i].Percentage, s.PercentageOfMax)
		assert.Equal(t, pyramid.Sets[i].RestSeconds, s.RestSeconds)
		assert.False(t, s.Completed)
	}
}

func TestExpandTemplateLengthMatchesEveryScheme(t *testing.T) {
	for _, tmpl := range Schemes() {
		sets := ExpandTemplate("chest_press", "Chest Press", 150, tmpl)
		require.Len(t, sets, len(tmpl.Sets), tmpl.Key)
		for i, s := range sets {
			assert.Equal(t, i+1, s.SetNumber)
		}
	}

	// no max means zero weights, not an error
	for _, s := range ExpandTemplate("x", "X", 0, Schemes()[0]) {
		assert.Zero(t, s.Weight)
	}
	assert.Empty(t, ExpandTemplate("x", "X", 100, models.SetSchemeTemplate{}))
}

func TestSchemesCatalog(t *testing.T) {
	keys := []string{}
	for _, s := range Schemes() {
		keys = append(keys, s.Key)
	}
	assert.Equal(t, []string{"pyramid", "straight", "progressive", "drop", "volume", "strength"}, keys)

	vol, err := Scheme("volume")
	require.NoError(t, err)
	assert.Equal(t, "Volume Training", vol.Name)
	assert.Equal(t, TypeStraight, vol.Type)
	assert.Len(t, vol.Sets, 5)

	// callers cannot mutate the catalog
	vol.Sets[0].Percentage = 1
	again, _ := Scheme("volume")
	assert.Equal(t, 70.0, again.Sets[0].Percentage)

	_, err = Scheme("german_volume")
	assert.ErrorIs(t, err, ErrUnknownScheme)
}

func exercise(t *testing.T, id string) models.Exercise {
	t.Helper()
	e, ok := catalog.ByID(id)
	require.True(t, ok, id)
	return e
}

func TestGenerate(t *testing.T) {
	tested := calendar.MustParse("2025-08-01")
	maxes := models.UserMaxes{
		"squat":       {Weight: 225, TestedDate: tested},
		"chest_press": {Weight: 150, TestedDate: tested},
	}
	tmpl, _ := Scheme("straight")

	got, err := Generate([]models.Exercise{exercise(t, "squat"), exercise(t, "chest_press")}, maxes, tmpl)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "squat", got[0].ExerciseID)
	assert.Equal(t, []float64{170, 170, 170, 170}, weights(got[0].Sets))
	assert.Equal(t, []float64{115, 115, 115, 115}, weights(got[1].Sets))
}

func TestGenerateReportsAllMissingMaxes(t *testing.T) {
	maxes := models.UserMaxes{"squat": {Weight: 225}}
	tmpl, _ := Scheme("pyramid")

	_, err := Generate([]models.Exercise{
		exercise(t, "lat_pulldown"),
		exercise(t, "squat"),
		exercise(t, "face_pull"),
	}, maxes, tmpl)

	var missing *MissingMaxesError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, []string{"Lat Pulldown", "Face Pull"}, missing.Exercises)
	assert.Equal(t, "please test your max for: Lat Pulldown, Face Pull", err.Error())

	_, err = Generate(nil, maxes, tmpl)
	assert.ErrorIs(t, err, ErrNoExercises)
}

func TestNewWorkout(t *testing.T) {
	tmpl, _ := Scheme("pyramid")
	exercises := []models.WorkoutExercise{{
		ExerciseID:   "squat",
		ExerciseName: "Squat",
		Sets:         ExpandTemplate("squat", "Squat", 225, tmpl),
	}}
	when := time.Date(2025, 8, 10, 18, 0, 0, 0, time.UTC)

	w, err := NewWorkout("  Leg Day ", when, []models.MuscleGroup{models.Quadriceps}, exercises)
	require.NoError(t, err)
	assert.Equal(t, "Leg Day", w.Name)
	// 145*12 + 160*10 + 170*8 + 180*6 + 170*8
	assert.Equal(t, 7140.0, w.TotalVolume)
	assert.Empty(t, w.ID)

	_, err = NewWorkout(" ", when, nil, exercises)
	assert.ErrorIs(t, err, ErrEmptyName)
	_, err = NewWorkout("Leg Day", when, nil, nil)
	assert.ErrorIs(t, err, ErrEmptyWorkout)
}

func TestNewWorkoutRejectsInvalidSets(t *testing.T) {
	when := time.Date(2025, 8, 10, 18, 0, 0, 0, time.UTC)
	good := models.WorkoutSet{SetNumber: 1, Reps: 10, Weight: 100}

	tests := []struct {
		name string
		sets []models.WorkoutSet
	}{
		{"wrong set number", []models.WorkoutSet{{SetNumber: 7, Reps: 10, Weight: 100}}},
		{"second set out of order", []models.WorkoutSet{good, {SetNumber: 1, Reps: 10, Weight: 100}}},
		{"negative reps", []models.WorkoutSet{{SetNumber: 1, Reps: -3, Weight: 100}}},
		{"zero reps", []models.WorkoutSet{{SetNumber: 1, Reps: 0, Weight: 100}}},
		{"negative weight", []models.WorkoutSet{{SetNumber: 1, Reps: 10, Weight: -40}}},
		{"off grid weight", []models.WorkoutSet{{SetNumber: 1, Reps: 10, Weight: 157.3}}},
		{"other exercise", []models.WorkoutSet{{SetNumber: 1, ExerciseID: "deadlift", Reps: 10, Weight: 100}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exercises := []models.WorkoutExercise{{ExerciseID: "squat", ExerciseName: "Squat", Sets: tt.sets}}
			_, err := NewWorkout("Leg Day", when, nil, exercises)
			assert.ErrorIs(t, err, ErrInvalidSet)
		})
	}

	_, err := NewWorkout("Leg Day", when, nil, []models.WorkoutExercise{{Sets: []models.WorkoutSet{good}}})
	assert.ErrorIs(t, err, ErrInvalidSet, "exercise id required")
}

func TestNewWorkoutFillsSetExercise(t *testing.T) {
	exercises := []models.WorkoutExercise{{
		ExerciseID:   "squat",
		ExerciseName: "Squat",
		Sets: []models.WorkoutSet{
			{SetNumber: 1, Reps: 10, Weight: 100},
			{SetNumber: 2, Reps: 8, Weight: 0},
		},
	}}

	w, err := NewWorkout("Leg Day", time.Date(2025, 8, 10, 18, 0, 0, 0, time.UTC), nil, exercises)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, w.TotalVolume)
	for _, s := range w.Exercises[0].Sets {
		assert.Equal(t, "squat", s.ExerciseID)
		assert.Equal(t, "Squat", s.ExerciseName)
	}
	assert.Empty(t, exercises[0].Sets[0].ExerciseID, "input left untouched")
}
