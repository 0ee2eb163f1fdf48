// Package training expands percentage-of-max set schemes into concrete sets
// and aggregates training volume.
package training

import "math"

// RoundUnit is the smallest weight step settable on the machine.
const RoundUnit = 5

// maxEstimationReps bounds the rep range where the Epley formula holds.
const maxEstimationReps = 30

// roundToUnit rounds half away from zero, so for the positive weights this
// package produces 157.5 becomes 160.
func roundToUnit(w float64) float64 {
	return math.Round(w/RoundUnit) * RoundUnit
}

// ResolveWeight returns percentage of oneRepMax rounded to the nearest
// RoundUnit. Non-positive inputs yield 0.
func ResolveWeight(oneRepMax, percentage float64) float64 {
	if oneRepMax <= 0 || percentage <= 0 {
		return 0
	}
	return roundToUnit(oneRepMax * percentage / 100)
}

// EstimateOneRepMax applies the Epley formula weight*(1+reps/30), rounded
// to RoundUnit. One rep is already a max and is returned unchanged. Reps
// outside 1..30 return 0.
func EstimateOneRepMax(weight float64, reps int) float64 {
	if reps == 1 {
		return weight
	}
	if reps > maxEstimationReps || reps < 1 {
		return 0
	}
	return roundToUnit(weight * (1 + float64(reps)/maxEstimationReps))
}
