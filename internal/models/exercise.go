package models

import "github.com/meltforce/speedifit/internal/calendar"

// MuscleGroup names a trained body region.
type MuscleGroup string

const (
	Chest      MuscleGroup = "Chest"
	Biceps     MuscleGroup = "Biceps"
	Triceps    MuscleGroup = "Triceps"
	Forearms   MuscleGroup = "Forearms"
	Glutes     MuscleGroup = "Glutes"
	Hamstrings MuscleGroup = "Hamstrings"
	Quadriceps MuscleGroup = "Quadriceps"
	Calves     MuscleGroup = "Calves"
	Shoulders  MuscleGroup = "Shoulders"
	Back       MuscleGroup = "Back"
	Core       MuscleGroup = "Core"
)

// MuscleGroups lists every group in display order.
var MuscleGroups = []MuscleGroup{
	Chest, Biceps, Triceps, Forearms, Glutes, Hamstrings,
	Quadriceps, Calves, Shoulders, Back, Core,
}

// Exercise is a static catalog entry.
type Exercise struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	MuscleGroups  []MuscleGroup `json:"muscleGroups"`
	PrimaryMuscle MuscleGroup   `json:"primaryMuscle"`
	Equipment     string        `json:"equipment"`
	Description   string        `json:"description"`
	Tips          string        `json:"tips,omitempty"`
}

// UserMax is the current tested one-rep max for one exercise.
type UserMax struct {
	Weight     float64       `json:"weight"`
	TestedDate calendar.Date `json:"testedDate"`
}

// UserMaxes maps exercise id to its current max. A new test overwrites.
type UserMaxes map[string]UserMax
