package training

import (
	"testing"
	"time"

	"github.com/meltforce/speedifit/internal/calendar"
	"github.com/meltforce/speedifit/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func set(weight float64, reps int) models.WorkoutSet {
	return models.WorkoutSet{Weight: weight, Reps: reps}
}

func TestSetVolume(t *testing.T) {
	assert.Zero(t, SetVolume(nil))
	assert.Equal(t, 1000.0, SetVolume([]models.WorkoutSet{set(100, 10)}))

	a := []models.WorkoutSet{set(100, 10), set(110, 8)}
	b := []models.WorkoutSet{set(50, 12), set(0, 5)}
	joined := append(append([]models.WorkoutSet{}, a...), b...)
	assert.Equal(t, SetVolume(a)+SetVolume(b), SetVolume(joined))
}

func TestWorkoutVolume(t *testing.T) {
	w := models.Workout{Exercises: []models.WorkoutExercise{
		{Sets: []models.WorkoutSet{set(100, 10)}},
		{Sets: []models.WorkoutSet{set(50, 10), set(60, 5)}},
		{},
	}}
	assert.Equal(t, 1000.0, ExerciseVolume(w.Exercises[0]))
	assert.Equal(t, 1800.0, WorkoutVolume(w))
}

func TestWindowedVolume(t *testing.T) {
	loc := time.UTC
	since := calendar.MustParse("2025-08-03")
	at := func(s string) time.Time {
		tm, err := time.Parse(time.RFC3339, s)
		require.NoError(t, err)
		return tm
	}
	workouts := []models.Workout{
		{TotalVolume: 100, Date: at("2025-08-02T23:59:00Z")},
		{TotalVolume: 200, Date: at("2025-08-03T00:00:00Z")}, // boundary is inclusive
		{TotalVolume: 400, Date: at("2025-08-09T12:00:00Z")},
	}

	assert.Zero(t, WindowedVolume(nil, since, loc))
	assert.Equal(t, 600.0, WindowedVolume(workouts, since, loc))
	assert.Zero(t, WindowedVolume(workouts[:1], since, loc))
	assert.Equal(t, 700.0, WindowedVolume(workouts, calendar.MustParse("2000-01-01"), loc))
	assert.Len(t, FilterSince(workouts, since, loc), 2)

	// the cached value wins over the sets
	stale := []models.Workout{{TotalVolume: 5, Date: at("2025-08-05T10:00:00Z"),
		Exercises: []models.WorkoutExercise{{Sets: []models.WorkoutSet{set(100, 10)}}}}}
	assert.Equal(t, 5.0, WindowedVolume(stale, since, loc))
}

func TestWindowedVolumeUsesLocalDay(t *testing.T) {
	la, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)
	// 05:00 UTC on the 3rd is still the evening of the 2nd in Los Angeles
	w := []models.Workout{{TotalVolume: 100, Date: time.Date(2025, 8, 3, 5, 0, 0, 0, time.UTC)}}
	since := calendar.MustParse("2025-08-03")
	assert.Equal(t, 100.0, WindowedVolume(w, since, time.UTC))
	assert.Zero(t, WindowedVolume(w, since, la))
}

func TestTimeframes(t *testing.T) {
	today := calendar.MustParse("2025-08-10")
	assert.Equal(t, calendar.MustParse("2025-08-03"), WindowStart(Week, today))
	assert.Equal(t, calendar.MustParse("2025-07-11"), WindowStart(Month, today))
	assert.Equal(t, calendar.MustParse("2024-08-10"), WindowStart(Year, today))

	tf, err := ParseTimeframe("")
	require.NoError(t, err)
	assert.Equal(t, Week, tf)
	tf, err = ParseTimeframe("month")
	require.NoError(t, err)
	assert.Equal(t, 30, tf.Days())
	_, err = ParseTimeframe("decade")
	assert.Error(t, err)
}
