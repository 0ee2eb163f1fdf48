// Package storage is the typed, best-effort persistence boundary. Reads that
// fail degrade to empty defaults and failed writes are logged and dropped, so
// storage problems never reach callers as errors.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"sync"

	"github.com/meltforce/speedifit/internal/adherence"
	"github.com/meltforce/speedifit/internal/calendar"
	"github.com/meltforce/speedifit/internal/kv"
	"github.com/meltforce/speedifit/internal/metrics"
)

// Keys shared with the mobile app's storage export.
const (
	KeyUserMaxes        = "@SpeediFit:userMaxes"
	KeyWorkouts         = "@SpeediFit:workouts"
	KeyCreatineTaken    = "@SpeediFit:creatineTaken"
	KeyLastWorkout      = "@SpeediFit:lastWorkout"
	KeyCreatineStreak   = "@SpeediFit:creatineStreak"
	KeyLastCreatineDate = "@SpeediFit:lastCreatineDate"
)

// AllKeys lists every key the app owns.
var AllKeys = []string{
	KeyUserMaxes, KeyWorkouts, KeyCreatineTaken,
	KeyLastWorkout, KeyCreatineStreak, KeyLastCreatineDate,
}

// MaxWorkouts bounds the saved history; older workouts are evicted first.
const MaxWorkouts = 50

var (
	ErrInvalidMax = errors.New("max weight must be a positive number")
	ErrNotFound   = errors.New("not found")
)

// Repository maps the app's records onto a kv.Store.
type Repository struct {
	store   kv.Store
	clock   calendar.Clock
	tracker *adherence.Tracker
	log     *slog.Logger
	metrics *metrics.Manager

	// serialises read-modify-write sequences
	mu sync.Mutex
}

func New(store kv.Store, clock calendar.Clock, log *slog.Logger, m *metrics.Manager) *Repository {
	return &Repository{
		store:   store,
		clock:   clock,
		tracker: adherence.NewTracker(clock),
		log:     log,
		metrics: m,
	}
}

// Clock is the repository's notion of today.
func (r *Repository) Clock() calendar.Clock {
	return r.clock
}

func (r *Repository) failed(op, key string, err error) {
	r.log.Error("storage "+op+" failed", "key", key, "error", err)
	r.metrics.CounterStorageFailures.WithLabelValues(op).Inc()
}

// getRaw returns the stored text, or "" and false on absence or failure.
func (r *Repository) getRaw(ctx context.Context, key string) (string, bool) {
	v, ok, err := r.store.Get(ctx, key)
	if err != nil {
		r.failed("read", key, err)
		return "", false
	}
	return v, ok
}

// getJSON decodes key into dst and reports whether dst was filled.
func (r *Repository) getJSON(ctx context.Context, key string, dst any) bool {
	v, ok := r.getRaw(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(v), dst); err != nil {
		r.failed("decode", key, err)
		return false
	}
	return true
}

func (r *Repository) setRaw(ctx context.Context, key, value string) {
	if err := r.store.Set(ctx, key, value); err != nil {
		r.failed("write", key, err)
	}
}

func (r *Repository) setJSON(ctx context.Context, key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		r.failed("encode", key, err)
		return
	}
	r.setRaw(ctx, key, string(b))
}

func (r *Repository) getInt(ctx context.Context, key string) int {
	v, ok := r.getRaw(ctx, key)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.failed("decode", key, err)
		return 0
	}
	return n
}

// ClearAll removes every key the app owns.
func (r *Repository) ClearAll(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.store.Remove(ctx, AllKeys...); err != nil {
		r.failed("remove", "*", err)
		return
	}
	r.metrics.GaugeCreatineStreak.Set(0)
	r.log.Info("all data cleared")
}
