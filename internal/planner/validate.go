package planner

import (
	"math"
	"strings"
)

const (
	maxHeightCM = 300
	maxWeightKG = 700
	maxAge      = 150
)

// ValidationError reports the profile fields that are missing or not positive,
// and separately those holding values no person could have.
type ValidationError struct {
	Fields  []string
	Invalid []string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, 2)
	if len(e.Fields) > 0 {
		parts = append(parts, "Missing required fields: "+strings.Join(e.Fields, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "Invalid values for fields: "+strings.Join(e.Invalid, ", "))
	}
	return strings.Join(parts, "; ")
}

// Validate checks the fields Generate cannot do without.
func Validate(p Profile) error {
	missing := make([]string, 0)
	invalid := make([]string, 0)
	switch {
	case !isFinite(p.HeightCM) || p.HeightCM > maxHeightCM:
		invalid = append(invalid, "height_cm")
	case p.HeightCM <= 0:
		missing = append(missing, "height_cm")
	}
	switch {
	case !isFinite(p.WeightKG) || p.WeightKG > maxWeightKG:
		invalid = append(invalid, "weight_kg")
	case p.WeightKG <= 0:
		missing = append(missing, "weight_kg")
	}
	switch {
	case p.Age > maxAge:
		invalid = append(invalid, "age")
	case p.Age <= 0:
		missing = append(missing, "age")
	}
	if strings.TrimSpace(p.Sex) == "" {
		missing = append(missing, "gender")
	}
	if strings.TrimSpace(p.ActivityLevel) == "" {
		missing = append(missing, "activity_level")
	}
	if len(missing) > 0 || len(invalid) > 0 {
		return &ValidationError{Fields: missing, Invalid: invalid}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
