// Package catalog is the static list of exercises supported by the cable
// machine. It is read-only reference data.
package catalog

import (
	"slices"

	"github.com/meltforce/speedifit/internal/models"
)

const equipment = "speediance"

// Category filters accepted by FilterByCategory besides a primary muscle.
const (
	CategoryAll  = "All"
	CategoryLegs = "Legs"
)

// Categories lists the filter chips offered when picking an exercise to test.
var Categories = []string{CategoryAll, "Chest", "Back", "Shoulders", "Biceps", "Triceps", CategoryLegs, "Core"}

var legMuscles = []models.MuscleGroup{models.Quadriceps, models.Hamstrings, models.Glutes, models.Calves}

func ex(id, name string, primary models.MuscleGroup, groups []models.MuscleGroup, desc, tips string) models.Exercise {
	return models.Exercise{
		ID:            id,
		Name:          name,
		MuscleGroups:  groups,
		PrimaryMuscle: primary,
		Equipment:     equipment,
		Description:   desc,
		Tips:          tips,
	}
}

type mg = models.MuscleGroup

var exercises = []models.Exercise{
	// chest
	ex("chest_press", "Chest Press", models.Chest, []mg{models.Chest, models.Triceps, models.Shoulders},
		"Cable chest press using Speediance handles", "Keep core tight, push through the chest"),
	ex("incline_chest_press", "Incline Chest Press", models.Chest, []mg{models.Chest, models.Shoulders, models.Triceps},
		"Chest press at an incline angle", "Focus on upper chest, control the movement"),
	ex("chest_fly", "Chest Fly", models.Chest, []mg{models.Chest},
		"Wide arc movement for chest isolation", "Slight bend in elbows, feel the stretch"),
	ex("decline_chest_press", "Decline Chest Press", models.Chest, []mg{models.Chest, models.Triceps},
		"Lower chest focused press", "Target lower pecs, maintain control"),

	// biceps
	ex("bicep_curl", "Bicep Curl", models.Biceps, []mg{models.Biceps, models.Forearms},
		"Standard cable bicep curl", "Keep elbows stationary, full range of motion"),
	ex("hammer_curl", "Hammer Curl", models.Biceps, []mg{models.Biceps, models.Forearms},
		"Neutral grip bicep curl", "Targets brachialis and forearms"),
	ex("preacher_curl", "Preacher Curl", models.Biceps, []mg{models.Biceps},
		"Isolated bicep curl with arm support", "Slow negative, squeeze at top"),

	// triceps
	ex("tricep_pushdown", "Tricep Pushdown", models.Triceps, []mg{models.Triceps},
		"Cable pushdown for triceps", "Keep elbows at sides, full extension"),
	ex("overhead_tricep_extension", "Overhead Tricep Extension", models.Triceps, []mg{models.Triceps},
		"Overhead cable extension", "Keep elbows close to head, stretch at bottom"),
	ex("tricep_kickback", "Tricep Kickback", models.Triceps, []mg{models.Triceps},
		"Cable kickback for tricep isolation", "Keep upper arm parallel to floor"),

	// legs
	ex("squat", "Squat", models.Quadriceps, []mg{models.Quadriceps, models.Glutes, models.Hamstrings},
		"Cable-resisted squat", "Chest up, knees track over toes"),
	ex("deadlift", "Deadlift", models.Hamstrings, []mg{models.Hamstrings, models.Glutes, models.Back},
		"Cable deadlift from floor", "Hinge at hips, maintain neutral spine"),
	ex("leg_press", "Leg Press", models.Quadriceps, []mg{models.Quadriceps, models.Glutes},
		"Lying or seated leg press with cables", "Full range of motion, control the negative"),
	ex("leg_curl", "Leg Curl", models.Hamstrings, []mg{models.Hamstrings},
		"Lying or standing hamstring curl", "Squeeze at top, control the movement"),
	ex("calf_raise", "Calf Raise", models.Calves, []mg{models.Calves},
		"Standing calf raise with cables", "Full range, pause at top"),
	ex("lunges", "Lunges", models.Quadriceps, []mg{models.Quadriceps, models.Glutes, models.Hamstrings},
		"Cable-resisted lunges", "90-degree angles, push through front heel"),

	// back
	ex("lat_pulldown", "Lat Pulldown", models.Back, []mg{models.Back, models.Biceps},
		"Wide grip pulldown for lats", "Pull to upper chest, squeeze shoulder blades"),
	ex("seated_row", "Seated Row", models.Back, []mg{models.Back, models.Biceps},
		"Horizontal cable row", "Pull to stomach, retract shoulder blades"),
	ex("face_pull", "Face Pull", models.Back, []mg{models.Back, models.Shoulders},
		"High cable pull to face level", "Pull apart at face, external rotation"),

	// shoulders
	ex("shoulder_press", "Shoulder Press", models.Shoulders, []mg{models.Shoulders, models.Triceps},
		"Overhead cable press", "Press straight up, core engaged"),
	ex("lateral_raise", "Lateral Raise", models.Shoulders, []mg{models.Shoulders},
		"Cable lateral raises", "Lead with elbows, control the weight"),
	ex("rear_delt_fly", "Rear Delt Fly", models.Shoulders, []mg{models.Shoulders, models.Back},
		"Reverse fly for rear delts", "Slight bend in elbows, squeeze at back"),
	ex("upright_row", "Upright Row", models.Shoulders, []mg{models.Shoulders, models.Biceps},
		"Cable upright row", "Pull to chin level, elbows high"),

	// core
	ex("cable_crunch", "Cable Crunch", models.Core, []mg{models.Core},
		"Kneeling cable crunch", "Crunch with abs, not arms"),
	ex("russian_twist", "Russian Twist", models.Core, []mg{models.Core},
		"Seated twists with cable resistance", "Keep chest up, rotate from core"),
}

// All returns a copy of the full catalog in display order.
func All() []models.Exercise {
	return slices.Clone(exercises)
}

// ByID looks up one exercise.
func ByID(id string) (models.Exercise, bool) {
	for _, e := range exercises {
		if e.ID == id {
			return e, true
		}
	}
	return models.Exercise{}, false
}

// Name returns the display name for id, falling back to a title-cased id
// for exercises no longer in the catalog.
func Name(id string) string {
	if e, ok := ByID(id); ok {
		return e.Name
	}
	return titleFromID(id)
}

// FilterByMuscleGroups returns exercises engaging any of the given groups.
// No groups returns the whole catalog.
func FilterByMuscleGroups(groups ...models.MuscleGroup) []models.Exercise {
	if len(groups) == 0 {
		return All()
	}
	var out []models.Exercise
	for _, e := range exercises {
		if slices.ContainsFunc(e.MuscleGroups, func(g models.MuscleGroup) bool {
			return slices.Contains(groups, g)
		}) {
			out = append(out, e)
		}
	}
	return out
}

// FilterByCategory matches on primary muscle. "Legs" covers every lower
// body group and "All" (or "") returns everything.
func FilterByCategory(category string) []models.Exercise {
	if category == "" || category == CategoryAll {
		return All()
	}
	var out []models.Exercise
	for _, e := range exercises {
		if string(e.PrimaryMuscle) == category ||
			(category == CategoryLegs && slices.Contains(legMuscles, e.PrimaryMuscle)) {
			out = append(out, e)
		}
	}
	return out
}

func titleFromID(id string) string {
	b := []byte(id)
	upper := true
	for i, c := range b {
		if c == '_' {
			b[i] = ' '
			upper = true
			continue
		}
		if upper && c >= 'a' && c <= 'z' {
			b[i] = c - 'a' + 'A'
		}
		upper = false
	}
	return string(b)
}
