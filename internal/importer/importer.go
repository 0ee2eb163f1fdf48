// Package importer loads and dumps the mobile app's key-value storage export.
//
// An export is a JSON object mapping storage keys to the string values the
// app stored under them:
//
//	{"@SpeediFit:userMaxes": "{\"squat\":{\"weight\":225,...}}", ...}
//
// Values that are inline JSON rather than strings are accepted as well.
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/meltforce/speedifit/internal/adherence"
	"github.com/meltforce/speedifit/internal/calendar"
	"github.com/meltforce/speedifit/internal/kv"
	"github.com/meltforce/speedifit/internal/models"
	"github.com/meltforce/speedifit/internal/storage"
	"github.com/meltforce/speedifit/internal/training"
)

// Stats tracks import progress.
type Stats struct {
	MaxesImported int
	MaxesDropped  int

	WorkoutsImported  int
	WorkoutsEvicted   int
	WorkoutsDropped   int
	IDsAssigned       int
	VolumesRecomputed int

	CreatineDays       int
	CreatineInvalid    int
	CreatineDuplicates int
	CreatineTrimmed    int
	Streak             int

	KeysWritten int
	UnknownKeys []string
}

// Importer validates an export and writes it through a kv.Store.
type Importer struct {
	store     kv.Store
	clock     calendar.Clock
	log       *slog.Logger
	dryRun    bool
	retention int
	stats     Stats
}

// New creates a new Importer.
func New(store kv.Store, clock calendar.Clock, log *slog.Logger, dryRun bool) *Importer {
	return &Importer{
		store:     store,
		clock:     clock,
		log:       log,
		dryRun:    dryRun,
		retention: adherence.DefaultRetention,
	}
}

// Import reads an export from r, normalises it and stores it. Keys absent
// from the export are left untouched. In dry-run mode nothing is written.
func (imp *Importer) Import(ctx context.Context, r io.Reader) (*Stats, error) {
	raw, err := decodeExport(r)
	if err != nil {
		return &imp.stats, err
	}

	for k := range raw {
		if !slices.Contains(storage.AllKeys, k) {
			imp.stats.UnknownKeys = append(imp.stats.UnknownKeys, k)
		}
	}
	slices.Sort(imp.stats.UnknownKeys)
	for _, k := range imp.stats.UnknownKeys {
		imp.log.Info("skipping unknown key", "key", k)
	}

	out := map[string]string{}

	if v, ok := raw[storage.KeyUserMaxes]; ok {
		maxes, err := imp.normaliseMaxes(v)
		if err != nil {
			return &imp.stats, err
		}
		if out[storage.KeyUserMaxes], err = encode(maxes); err != nil {
			return &imp.stats, err
		}
	}

	if v, ok := raw[storage.KeyWorkouts]; ok {
		workouts, err := imp.normaliseWorkouts(v)
		if err != nil {
			return &imp.stats, err
		}
		if out[storage.KeyWorkouts], err = encode(workouts); err != nil {
			return &imp.stats, err
		}
		last := lastWorkout(workouts, raw[storage.KeyLastWorkout])
		if !last.IsZero() {
			out[storage.KeyLastWorkout] = last.UTC().Format(time.RFC3339Nano)
		}
	}

	if v, ok := raw[storage.KeyCreatineTaken]; ok {
		dates, err := imp.normaliseCreatine(v)
		if err != nil {
			return &imp.stats, err
		}
		strs := make([]string, len(dates))
		for i, d := range dates {
			strs[i] = d.String()
		}
		if out[storage.KeyCreatineTaken], err = encode(strs); err != nil {
			return &imp.stats, err
		}

		// the cached streak in the export may be stale; the log wins
		imp.stats.Streak = adherence.Recompute(dates, imp.clock.Today())
		out[storage.KeyCreatineStreak] = strconv.Itoa(imp.stats.Streak)
		if last := adherence.Latest(dates); !last.IsZero() {
			out[storage.KeyLastCreatineDate] = last.String()
		}
	}

	if imp.dryRun {
		imp.log.Info("dry run, nothing written", "keys", len(out))
		return &imp.stats, nil
	}

	for _, k := range storage.AllKeys {
		v, ok := out[k]
		if !ok {
			continue
		}
		if err := imp.store.Set(ctx, k, v); err != nil {
			return &imp.stats, fmt.Errorf("writing %s: %w", k, err)
		}
		imp.stats.KeysWritten++
	}
	return &imp.stats, nil
}

// decodeExport returns each key's stored text.
func decodeExport(r io.Reader) (map[string]string, error) {
	var doc map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding export: %w", err)
	}

	out := make(map[string]string, len(doc))
	for k, v := range doc {
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			out[k] = s
			continue
		}
		out[k] = string(v)
	}
	return out, nil
}

func encode(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encoding: %w", err)
	}
	return string(b), nil
}

func (imp *Importer) normaliseMaxes(v string) (models.UserMaxes, error) {
	var in models.UserMaxes
	if err := json.Unmarshal([]byte(v), &in); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", storage.KeyUserMaxes, err)
	}

	out := make(models.UserMaxes, len(in))
	for id, m := range in {
		if m.Weight <= 0 || math.IsNaN(m.Weight) || math.IsInf(m.Weight, 0) {
			imp.log.Warn("dropping invalid max", "exercise", id, "weight", m.Weight)
			imp.stats.MaxesDropped++
			continue
		}
		if m.TestedDate.IsZero() {
			m.TestedDate = imp.clock.Today()
		}
		out[id] = m
		imp.stats.MaxesImported++
	}
	return out, nil
}

func (imp *Importer) normaliseWorkouts(v string) ([]models.Workout, error) {
	var in []models.Workout
	if err := json.Unmarshal([]byte(v), &in); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", storage.KeyWorkouts, err)
	}

	out := make([]models.Workout, 0, len(in))
	for _, w := range in {
		if w.Date.IsZero() || len(w.Exercises) == 0 {
			imp.log.Warn("dropping workout without date or exercises", "id", w.ID, "name", w.Name)
			imp.stats.WorkoutsDropped++
			continue
		}
		if w.ID == "" {
			w.ID = uuid.NewString()
			imp.stats.IDsAssigned++
		}
		if w.TotalVolume == 0 {
			w.TotalVolume = training.WorkoutVolume(w)
			if w.TotalVolume != 0 {
				imp.stats.VolumesRecomputed++
			}
		}
		out = append(out, w)
	}

	slices.SortStableFunc(out, func(a, b models.Workout) int {
		return a.Date.Compare(b.Date)
	})
	if len(out) > storage.MaxWorkouts {
		imp.stats.WorkoutsEvicted = len(out) - storage.MaxWorkouts
		out = out[len(out)-storage.MaxWorkouts:]
	}
	imp.stats.WorkoutsImported = len(out)
	return out, nil
}

// lastWorkout is the later of the newest workout and the exported marker.
func lastWorkout(workouts []models.Workout, exported string) time.Time {
	var last time.Time
	if len(workouts) > 0 {
		last = workouts[len(workouts)-1].Date
	}
	if t, err := time.Parse(time.RFC3339Nano, exported); err == nil && t.After(last) {
		last = t
	}
	return last
}

func (imp *Importer) normaliseCreatine(v string) ([]calendar.Date, error) {
	var in []string
	if err := json.Unmarshal([]byte(v), &in); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", storage.KeyCreatineTaken, err)
	}

	seen := map[calendar.Date]bool{}
	dates := make([]calendar.Date, 0, len(in))
	for _, s := range in {
		d, err := imp.clock.ParseDate(s)
		if err != nil {
			imp.log.Warn("dropping invalid creatine date", "value", s)
			imp.stats.CreatineInvalid++
			continue
		}
		if seen[d] {
			imp.stats.CreatineDuplicates++
			continue
		}
		seen[d] = true
		dates = append(dates, d)
	}

	out := adherence.Normalize(dates, imp.retention)
	imp.stats.CreatineTrimmed = len(dates) - len(out)
	imp.stats.CreatineDays = len(out)
	return out, nil
}

// Export writes every stored key in the same shape Import reads.
func Export(ctx context.Context, store kv.Store, w io.Writer) error {
	doc := map[string]string{}
	for _, k := range storage.AllKeys {
		v, ok, err := store.Get(ctx, k)
		if err != nil {
			return fmt.Errorf("reading %s: %w", k, err)
		}
		if ok {
			doc[k] = v
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding export: %w", err)
	}
	return nil
}
