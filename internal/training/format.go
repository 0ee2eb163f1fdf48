package training

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/meltforce/speedifit/internal/models"
)

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// groupThousands renders v with comma separators, e.g. 11425 -> "11,425".
func groupThousands(v float64) string {
	s := formatNumber(v)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, hasFrac := strings.Cut(s, ".")
	var b strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return sign + b.String()
}

func FormatWeight(w float64) string {
	return formatNumber(w) + " lbs"
}

func FormatPercentage(p float64) string {
	return formatNumber(p) + "%"
}

// FormatRestTime renders seconds as "45s", "2m" or "1m 30s".
func FormatRestTime(seconds int) string {
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	m, s := seconds/60, seconds%60
	if s == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dm %ds", m, s)
}

// FormatVolume renders a volume total the way summaries show it.
func FormatVolume(v float64) string {
	return groupThousands(v) + " lbs"
}

// ShareText renders a saved workout as plain text for sharing.
func ShareText(w models.Workout, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	groups := make([]string, len(w.MuscleGroups))
	for i, g := range w.MuscleGroups {
		groups[i] = string(g)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🏋️ SpeediFit Workout: %s\n", w.Name)
	fmt.Fprintf(&b, "📅 Date: %s\n", w.Date.In(loc).Format("1/2/2006"))
	fmt.Fprintf(&b, "💪 Muscle Groups: %s\n", strings.Join(groups, ", "))
	fmt.Fprintf(&b, "📊 Total Volume: %s\n", FormatVolume(w.TotalVolume))
	b.WriteString("\n--- EXERCISES ---\n\n")

	for i, ex := range w.Exercises {
		fmt.Fprintf(&b, "%d. %s\n", i+1, ex.ExerciseName)
		for _, s := range ex.Sets {
			fmt.Fprintf(&b, "   Set %d: %s × %d reps (%s) - Rest: %s\n",
				s.SetNumber, FormatWeight(s.Weight), s.Reps,
				FormatPercentage(s.PercentageOfMax), FormatRestTime(s.RestSeconds))
		}
		fmt.Fprintf(&b, "   Volume: %s\n\n", FormatVolume(ExerciseVolume(ex)))
	}

	b.WriteString("\n💡 Generated with SpeediFit - Percentage-based training for the Mark Wahlberg physique!")
	return b.String()
}

// Motivation is the home screen line for the number of workouts this week.
func Motivation(workoutsThisWeek int) string {
	switch {
	case workoutsThisWeek <= 0:
		return "Time to start this week strong! Your Mark Wahlberg physique awaits."
	case workoutsThisWeek < 3:
		plural := "s"
		if workoutsThisWeek == 1 {
			plural = ""
		}
		return fmt.Sprintf("%d workout%s down! Keep the momentum going.", workoutsThisWeek, plural)
	default:
		return fmt.Sprintf("Crushing it with %d workouts this week! You're on fire!", workoutsThisWeek)
	}
}
