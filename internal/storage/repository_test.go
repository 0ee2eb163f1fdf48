package storage

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meltforce/speedifit/internal/adherence"
	"github.com/meltforce/speedifit/internal/calendar"
	"github.com/meltforce/speedifit/internal/kv"
	"github.com/meltforce/speedifit/internal/metrics"
	"github.com/meltforce/speedifit/internal/models"
	"github.com/meltforce/speedifit/internal/training"
)

// Sunday 2025-08-10, 20:00 in New York
var now = time.Date(2025, 8, 10, 20, 0, 0, 0, mustLoc("America/New_York"))

func mustLoc(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newRepo(t *testing.T) (*Repository, kv.Store, *metrics.Manager) {
	t.Helper()
	store, err := kv.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "speedifit.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	m := metrics.NewTestManager()
	return New(store, calendar.Fixed(now), discard(), m), store, m
}

func legDay(t *testing.T) models.Workout {
	t.Helper()
	tmpl, err := training.Scheme("pyramid")
	require.NoError(t, err)
	w, err := training.NewWorkout("Leg Day", now, []models.MuscleGroup{models.Quadriceps},
		[]models.WorkoutExercise{{
			ExerciseID:   "squat",
			ExerciseName: "Squat",
			Sets:         training.ExpandTemplate("squat", "Squat", 225, tmpl),
		}})
	require.NoError(t, err)
	return w
}

func TestUserMaxes(t *testing.T) {
	repo, _, _ := newRepo(t)
	ctx := context.Background()

	assert.Empty(t, repo.LoadUserMaxes(ctx))

	_, err := repo.SaveUserMax(ctx, "squat", 0, calendar.Date{})
	assert.ErrorIs(t, err, ErrInvalidMax)
	_, err = repo.SaveUserMax(ctx, "squat", -5, calendar.Date{})
	assert.ErrorIs(t, err, ErrInvalidMax)
	assert.Empty(t, repo.LoadUserMaxes(ctx), "rejected maxes are not stored")

	m, err := repo.SaveUserMax(ctx, "squat", 225, calendar.Date{})
	require.NoError(t, err)
	assert.Equal(t, calendar.MustParse("2025-08-10"), m.TestedDate)

	_, err = repo.SaveUserMax(ctx, "squat", 235, calendar.MustParse("2025-08-09"))
	require.NoError(t, err)
	maxes := repo.LoadUserMaxes(ctx)
	require.Len(t, maxes, 1, "a new test overwrites")
	assert.Equal(t, 235.0, maxes["squat"].Weight)

	assert.True(t, repo.DeleteUserMax(ctx, "squat"))
	assert.False(t, repo.DeleteUserMax(ctx, "squat"))
	assert.Empty(t, repo.LoadUserMaxes(ctx))
}

func TestSaveWorkoutRoundTrip(t *testing.T) {
	repo, _, m := newRepo(t)
	ctx := context.Background()

	w := legDay(t)
	saved := repo.SaveWorkout(ctx, w)
	require.NotEmpty(t, saved.ID)

	got, err := repo.GetWorkout(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.TotalVolume, got.TotalVolume)
	assert.Equal(t, saved.Exercises, got.Exercises)
	assert.True(t, saved.Date.Equal(got.Date))
	assert.Equal(t, 7140.0, got.TotalVolume)

	last, ok := repo.LastWorkoutDate(ctx)
	require.True(t, ok)
	assert.True(t, last.Equal(now))

	_, err = repo.GetWorkout(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterWorkoutsSaved))
}

func TestSaveWorkoutRecomputesStaleVolume(t *testing.T) {
	repo, _, _ := newRepo(t)
	ctx := context.Background()

	w := legDay(t)
	w.TotalVolume = 99999
	saved := repo.SaveWorkout(ctx, w)
	assert.Equal(t, 7140.0, saved.TotalVolume)

	got, err := repo.GetWorkout(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, 7140.0, got.TotalVolume)
}

func TestSaveWorkoutKeepsNewestFifty(t *testing.T) {
	repo, _, _ := newRepo(t)
	ctx := context.Background()

	for i := 0; i < MaxWorkouts+5; i++ {
		w := legDay(t)
		w.ID = ""
		w.Name = "Workout " + string(rune('A'+i%26))
		w.Date = now.Add(time.Duration(i) * time.Minute)
		repo.SaveWorkout(ctx, w)
	}
	ws := repo.LoadWorkouts(ctx)
	require.Len(t, ws, MaxWorkouts)
	assert.True(t, ws[0].Date.Equal(now.Add(5*time.Minute)), "oldest five evicted")
	assert.True(t, ws[len(ws)-1].Date.Equal(now.Add((MaxWorkouts+4)*time.Minute)))
}

func TestRecordCreatine(t *testing.T) {
	repo, store, m := newRepo(t)
	ctx := context.Background()
	today := calendar.MustParse("2025-08-10")

	assert.Equal(t, 0, repo.CreatineStreak(ctx))
	assert.False(t, repo.TookCreatineToday(ctx))

	streak, added := repo.RecordCreatine(ctx, today.AddDays(-2))
	assert.True(t, added)
	assert.Equal(t, 0, streak, "two days ago is not a live streak")

	streak, added = repo.RecordCreatine(ctx, today.AddDays(-1))
	assert.True(t, added)
	assert.Equal(t, 2, streak)

	streak, added = repo.RecordCreatine(ctx, calendar.Date{})
	assert.True(t, added)
	assert.Equal(t, 3, streak)

	streak, added = repo.RecordCreatine(ctx, today)
	assert.False(t, added)
	assert.Equal(t, 3, streak)

	assert.True(t, repo.TookCreatineToday(ctx))
	assert.Equal(t, 3, repo.CachedStreak(ctx))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.GaugeCreatineStreak))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.CounterCreatineLogged))

	// stored in the mobile app's format
	raw, ok, err := store.Get(ctx, KeyCreatineTaken)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `["2025-08-08","2025-08-09","2025-08-10"]`, raw)
	raw, _, _ = store.Get(ctx, KeyCreatineStreak)
	assert.Equal(t, "3", raw)
	raw, _, _ = store.Get(ctx, KeyLastCreatineDate)
	assert.Equal(t, "2025-08-10", raw)
}

func TestCreatineStreakRecomputesStaleCache(t *testing.T) {
	repo, store, _ := newRepo(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, KeyCreatineTaken, `["2025-08-01","2025-08-02","not a date"]`))
	require.NoError(t, store.Set(ctx, KeyCreatineStreak, "2"))

	assert.Len(t, repo.CreatineHistory(ctx), 2)
	assert.Equal(t, 2, repo.CachedStreak(ctx))
	assert.Equal(t, 0, repo.CreatineStreak(ctx))
	assert.Equal(t, 0, repo.CachedStreak(ctx), "recomputed value is persisted")
}

func TestHome(t *testing.T) {
	repo, _, _ := newRepo(t)
	ctx := context.Background()

	old := legDay(t)
	old.Date = now.AddDate(0, 0, -1) // Saturday, last week
	repo.SaveWorkout(ctx, old)
	repo.SaveWorkout(ctx, legDay(t))
	_, err := repo.SaveUserMax(ctx, "squat", 225, calendar.Date{})
	require.NoError(t, err)
	repo.RecordCreatine(ctx, calendar.Date{})

	h := repo.Home(ctx)
	assert.Equal(t, calendar.MustParse("2025-08-10"), h.WeekStart)
	assert.Equal(t, 1, h.WorkoutsThisWeek)
	assert.Equal(t, 7140.0, h.VolumeThisWeek)
	assert.Equal(t, 1, h.TestedExercises)
	assert.True(t, h.CreatineTaken)
	assert.Equal(t, 1, h.CreatineStreak)
	assert.Equal(t, adherence.TierFire, h.StreakTier)
	assert.Equal(t, "1 workout down! Keep the momentum going.", h.Motivation)
	require.NotNil(t, h.LastWorkout)
}

func TestProgress(t *testing.T) {
	repo, _, _ := newRepo(t)
	ctx := context.Background()

	old := legDay(t)
	old.Date = now.AddDate(0, 0, -20)
	repo.SaveWorkout(ctx, old)
	repo.SaveWorkout(ctx, legDay(t))

	week := repo.Progress(ctx, training.Week)
	assert.Equal(t, 1, week.Stats.TotalWorkouts)
	assert.Equal(t, calendar.MustParse("2025-08-03"), week.Since)

	month := repo.Progress(ctx, training.Month)
	assert.Equal(t, 2, month.Stats.TotalWorkouts)
	assert.Equal(t, 14280.0, month.Stats.TotalVolume)
	require.Len(t, month.History, 2)
	assert.True(t, month.History[0].Date.After(month.History[1].Date))
}

func TestClearAll(t *testing.T) {
	repo, store, _ := newRepo(t)
	ctx := context.Background()

	repo.SaveWorkout(ctx, legDay(t))
	repo.RecordCreatine(ctx, calendar.Date{})
	repo.ClearAll(ctx)

	for _, k := range AllKeys {
		_, ok, err := store.Get(ctx, k)
		require.NoError(t, err)
		assert.False(t, ok, k)
	}
}

// brokenStore fails every operation.
type brokenStore struct{}

var errBroken = errors.New("storage offline")

func (brokenStore) Get(context.Context, string) (string, bool, error) { return "", false, errBroken }
func (brokenStore) Set(context.Context, string, string) error         { return errBroken }
func (brokenStore) Remove(context.Context, ...string) error           { return errBroken }
func (brokenStore) Close() error                                      { return nil }

func TestStorageFailuresDegrade(t *testing.T) {
	m := metrics.NewTestManager()
	repo := New(brokenStore{}, calendar.Fixed(now), discard(), m)
	ctx := context.Background()

	assert.Empty(t, repo.LoadUserMaxes(ctx))
	assert.Empty(t, repo.LoadWorkouts(ctx))
	assert.Empty(t, repo.CreatineHistory(ctx))
	assert.Zero(t, repo.CreatineStreak(ctx))

	_, err := repo.SaveUserMax(ctx, "squat", 225, calendar.Date{})
	assert.NoError(t, err, "write failures are swallowed")
	saved := repo.SaveWorkout(ctx, legDay(t))
	assert.NotEmpty(t, saved.ID)
	_, added := repo.RecordCreatine(ctx, calendar.Date{})
	assert.True(t, added)
	repo.ClearAll(ctx)

	assert.Greater(t, testutil.ToFloat64(m.CounterStorageFailures.WithLabelValues("read")), 0.0)
	assert.Greater(t, testutil.ToFloat64(m.CounterStorageFailures.WithLabelValues("write")), 0.0)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CounterStorageFailures.WithLabelValues("remove")))
}

func TestCorruptValuesReadAsEmpty(t *testing.T) {
	repo, store, _ := newRepo(t)
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, KeyWorkouts, "{not json"))
	require.NoError(t, store.Set(ctx, KeyCreatineStreak, "lots"))
	assert.Empty(t, repo.LoadWorkouts(ctx))
	assert.Zero(t, repo.CachedStreak(ctx))
}
