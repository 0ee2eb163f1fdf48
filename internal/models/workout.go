package models

import "time"

// SchemeEntry is one prescription in a set scheme template.
type SchemeEntry struct {
	Percentage  float64 `json:"percentage"`
	Reps        int     `json:"reps"`
	RestSeconds int     `json:"restTime"`
}

// SetSchemeTemplate is a named, ordered list of percentage prescriptions.
type SetSchemeTemplate struct {
	Key         string        `json:"key"`
	Name        string        `json:"name"`
	Type        string        `json:"type"`
	Description string        `json:"description"`
	Sets        []SchemeEntry `json:"sets"`
}

// WorkoutSet is a concrete prescription produced by expanding a template
// against a one-rep max. Only Completed changes after generation.
type WorkoutSet struct {
	SetNumber       int     `json:"setNumber"`
	ExerciseID      string  `json:"exerciseId"`
	ExerciseName    string  `json:"exerciseName"`
	Reps            int     `json:"reps"`
	Weight          float64 `json:"weight"`
	PercentageOfMax float64 `json:"percentageOfMax"`
	RestSeconds     int     `json:"restTime"`
	Completed       bool    `json:"completed"`
}

// WorkoutExercise groups the sets generated for one exercise.
type WorkoutExercise struct {
	ExerciseID   string       `json:"exerciseId"`
	ExerciseName string       `json:"exerciseName"`
	Sets         []WorkoutSet `json:"sets"`
}

// Workout is an immutable historical record created at save time.
// TotalVolume is cached then and not recomputed on read.
type Workout struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Date         time.Time         `json:"date"`
	MuscleGroups []MuscleGroup     `json:"muscleGroups"`
	Exercises    []WorkoutExercise `json:"exercises"`
	TotalVolume  float64           `json:"totalVolume"`
	Duration     *int              `json:"duration,omitempty"` // minutes
}
