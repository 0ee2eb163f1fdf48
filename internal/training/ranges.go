package training

import "fmt"

// Goal is a training objective with a recommended loading range.
type Goal string

const (
	GoalStrength    Goal = "strength"
	GoalPower       Goal = "power"
	GoalHypertrophy Goal = "hypertrophy"
	GoalEndurance   Goal = "endurance"
)

// Range is a numeric percentage and rep band for a goal.
type Range struct {
	Name          string  `json:"name"`
	PercentageMin float64 `json:"percentageMin"`
	PercentageMax float64 `json:"percentageMax"`
	RepsMin       int     `json:"repsMin"`
	RepsMax       int     `json:"repsMax"`
}

// Contains reports whether a prescription falls inside the range.
func (r Range) Contains(percentage float64, reps int) bool {
	return percentage >= r.PercentageMin && percentage <= r.PercentageMax &&
		reps >= r.RepsMin && reps <= r.RepsMax
}

var TrainingRanges = map[Goal]Range{
	GoalStrength:    {Name: "Strength", PercentageMin: 85, PercentageMax: 100, RepsMin: 1, RepsMax: 5},
	GoalPower:       {Name: "Power", PercentageMin: 80, PercentageMax: 90, RepsMin: 3, RepsMax: 6},
	GoalHypertrophy: {Name: "Hypertrophy (Muscle Building)", PercentageMin: 65, PercentageMax: 80, RepsMin: 6, RepsMax: 12},
	GoalEndurance:   {Name: "Endurance", PercentageMin: 50, PercentageMax: 65, RepsMin: 12, RepsMax: 20},
}

// Recommendation is the human readable advice shown for a goal.
type Recommendation struct {
	PercentageRange string `json:"percentageRange"`
	RepRange        string `json:"repRange"`
	RestTime        string `json:"restTime"`
	Sets            string `json:"sets"`
}

var recommendations = map[Goal]Recommendation{
	GoalStrength:    {PercentageRange: "85-100%", RepRange: "1-5 reps", RestTime: "3-5 minutes", Sets: "3-5 sets"},
	GoalHypertrophy: {PercentageRange: "65-80%", RepRange: "6-12 reps", RestTime: "60-90 seconds", Sets: "3-5 sets"},
	GoalEndurance:   {PercentageRange: "50-65%", RepRange: "12-20 reps", RestTime: "30-60 seconds", Sets: "2-4 sets"},
}

// RecommendedRange covers strength, hypertrophy and endurance.
func RecommendedRange(goal Goal) (Recommendation, error) {
	r, ok := recommendations[goal]
	if !ok {
		return Recommendation{}, fmt.Errorf("no recommendation for goal %q", goal)
	}
	return r, nil
}
