package storage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/meltforce/speedifit/internal/models"
	"github.com/meltforce/speedifit/internal/training"
)

// LoadWorkouts returns saved workouts oldest first.
func (r *Repository) LoadWorkouts(ctx context.Context) []models.Workout {
	var ws []models.Workout
	if !r.getJSON(ctx, KeyWorkouts, &ws) || ws == nil {
		return []models.Workout{}
	}
	return ws
}

// SaveWorkout appends w to history, assigning an id when it has none, and
// evicts the oldest entries beyond MaxWorkouts. A zero date means now.
// TotalVolume is always recomputed from the sets at save time.
func (r *Repository) SaveWorkout(ctx context.Context, w models.Workout) models.Workout {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	if w.Date.IsZero() {
		w.Date = r.clock.Time()
	}
	w.TotalVolume = training.WorkoutVolume(w)

	r.mu.Lock()
	defer r.mu.Unlock()

	ws := append(r.LoadWorkouts(ctx), w)
	if len(ws) > MaxWorkouts {
		ws = ws[len(ws)-MaxWorkouts:]
	}
	r.setJSON(ctx, KeyWorkouts, ws)
	r.setRaw(ctx, KeyLastWorkout, w.Date.UTC().Format(time.RFC3339Nano))

	r.metrics.CounterWorkoutsSaved.Inc()
	r.log.Info("workout saved", "id", w.ID, "name", w.Name, "volume", w.TotalVolume)
	return w
}

func (r *Repository) GetWorkout(ctx context.Context, id string) (models.Workout, error) {
	for _, w := range r.LoadWorkouts(ctx) {
		if w.ID == id {
			return w, nil
		}
	}
	return models.Workout{}, ErrNotFound
}

// LastWorkoutDate returns when the most recent workout was saved.
func (r *Repository) LastWorkoutDate(ctx context.Context) (time.Time, bool) {
	v, ok := r.getRaw(ctx, KeyLastWorkout)
	if !ok || v == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		r.failed("decode", KeyLastWorkout, err)
		return time.Time{}, false
	}
	return t, true
}
