package training

import (
	"errors"
	"fmt"
	"slices"

	"github.com/meltforce/speedifit/internal/models"
)

// ErrUnknownScheme is returned when a scheme key is not in the catalog.
var ErrUnknownScheme = errors.New("unknown set scheme")

// Scheme type labels.
const (
	TypePyramid     = "pyramid"
	TypeStraight    = "straight"
	TypeProgressive = "progressive"
	TypeDrop        = "drop"
)

// DefaultScheme is preselected when a caller does not choose one.
const DefaultScheme = "pyramid"

func repeat(e models.SchemeEntry, n int) []models.SchemeEntry {
	out := make([]models.SchemeEntry, n)
	for i := range out {
		out[i] = e
	}
	return out
}

// schemes is the fixed template catalog, in display order.
var schemes = []models.SetSchemeTemplate{
	{
		Key:         "pyramid",
		Name:        "Pyramid",
		Type:        TypePyramid,
		Description: "Build up weight, then back down",
		Sets: []models.SchemeEntry{
			{Percentage: 65, Reps: 12, RestSeconds: 60},
			{Percentage: 70, Reps: 10, RestSeconds: 75},
			{Percentage: 75, Reps: 8, RestSeconds: 90},
			{Percentage: 80, Reps: 6, RestSeconds: 90},
			{Percentage: 75, Reps: 8, RestSeconds: 75},
		},
	},
	{
		Key:         "straight",
		Name:        "Straight Sets",
		Type:        TypeStraight,
		Description: "Same weight and reps for all sets",
		Sets:        repeat(models.SchemeEntry{Percentage: 75, Reps: 8, RestSeconds: 90}, 4),
	},
	{
		Key:         "progressive",
		Name:        "Progressive",
		Type:        TypeProgressive,
		Description: "Increase weight, decrease reps",
		Sets: []models.SchemeEntry{
			{Percentage: 65, Reps: 10, RestSeconds: 60},
			{Percentage: 70, Reps: 8, RestSeconds: 75},
			{Percentage: 75, Reps: 6, RestSeconds: 90},
			{Percentage: 80, Reps: 4, RestSeconds: 120},
		},
	},
	{
		Key:         "drop",
		Name:        "Drop Set",
		Type:        TypeDrop,
		Description: "Decrease weight, increase reps",
		Sets: []models.SchemeEntry{
			{Percentage: 80, Reps: 6, RestSeconds: 90},
			{Percentage: 70, Reps: 8, RestSeconds: 75},
			{Percentage: 60, Reps: 10, RestSeconds: 60},
			{Percentage: 50, Reps: 12, RestSeconds: 60},
		},
	},
	{
		Key:         "volume",
		Name:        "Volume Training",
		Type:        TypeStraight,
		Description: "High volume for muscle growth",
		Sets:        repeat(models.SchemeEntry{Percentage: 70, Reps: 10, RestSeconds: 60}, 5),
	},
	{
		Key:         "strength",
		Name:        "Strength Focus",
		Type:        TypeProgressive,
		Description: "Heavy weights, low reps",
		Sets: []models.SchemeEntry{
			{Percentage: 75, Reps: 5, RestSeconds: 120},
			{Percentage: 80, Reps: 4, RestSeconds: 150},
			{Percentage: 85, Reps: 3, RestSeconds: 180},
			{Percentage: 90, Reps: 2, RestSeconds: 180},
		},
	},
}

func cloneScheme(s models.SetSchemeTemplate) models.SetSchemeTemplate {
	s.Sets = slices.Clone(s.Sets)
	return s
}

// Schemes returns every template in display order. Callers get copies.
func Schemes() []models.SetSchemeTemplate {
	out := make([]models.SetSchemeTemplate, len(schemes))
	for i, s := range schemes {
		out[i] = cloneScheme(s)
	}
	return out
}

// Scheme looks up a template by key.
func Scheme(key string) (models.SetSchemeTemplate, error) {
	for _, s := range schemes {
		if s.Key == key {
			return cloneScheme(s), nil
		}
	}
	return models.SetSchemeTemplate{}, fmt.Errorf("%w: %q", ErrUnknownScheme, key)
}
