package storage

import (
	"context"
	"fmt"
	"math"

	"github.com/meltforce/speedifit/internal/calendar"
	"github.com/meltforce/speedifit/internal/models"
)

func (r *Repository) LoadUserMaxes(ctx context.Context) models.UserMaxes {
	maxes := models.UserMaxes{}
	if !r.getJSON(ctx, KeyUserMaxes, &maxes) || maxes == nil {
		return models.UserMaxes{}
	}
	return maxes
}

// SaveUserMax overwrites the max for exerciseID. A zero tested date means
// today.
func (r *Repository) SaveUserMax(ctx context.Context, exerciseID string, weight float64, tested calendar.Date) (models.UserMax, error) {
	if exerciseID == "" {
		return models.UserMax{}, fmt.Errorf("exercise id is required")
	}
	if weight <= 0 || math.IsNaN(weight) || math.IsInf(weight, 0) {
		return models.UserMax{}, ErrInvalidMax
	}
	if tested.IsZero() {
		tested = r.clock.Today()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	maxes := r.LoadUserMaxes(ctx)
	m := models.UserMax{Weight: weight, TestedDate: tested}
	maxes[exerciseID] = m
	r.setJSON(ctx, KeyUserMaxes, maxes)
	r.log.Info("max saved", "exercise", exerciseID, "weight", weight)
	return m, nil
}

// DeleteUserMax reports whether a max existed.
func (r *Repository) DeleteUserMax(ctx context.Context, exerciseID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	maxes := r.LoadUserMaxes(ctx)
	if _, ok := maxes[exerciseID]; !ok {
		return false
	}
	delete(maxes, exerciseID)
	r.setJSON(ctx, KeyUserMaxes, maxes)
	return true
}
