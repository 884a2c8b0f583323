// Package planner computes personalized daily diet plans from a health profile.
//
// Generate is a pure function: it performs no I/O and returns identical output
// for identical input. Persisting the result is the caller's job.
package planner

import (
	"math"
	"strings"
)

const (
	SexFemale = "female"
	SexMale   = "male"

	minCaloriesFemale = 1200
	minCaloriesOther  = 1500

	fiberFemaleG = 25
	fiberOtherG  = 30

	waterMLPerKg = 35

	kcalPerGramProtein = 4
	kcalPerGramCarbs   = 4
	kcalPerGramFat     = 9
)

// Profile is the biometric and dietary input to Generate.
type Profile struct {
	Age            int
	Sex            string
	HeightCM       float64
	WeightKG       float64
	ActivityLevel  string
	Goal           string
	Conditions     []string
	DietPreference string
}

type MacroSplit struct {
	ProteinPct int `json:"protein_pct"`
	CarbsPct   int `json:"carbs_pct"`
	FatPct     int `json:"fat_pct"`
}

type MealSlot struct {
	Name        string `json:"name"`
	Time        string `json:"time"`
	Percent     int    `json:"percent"`
	Calories    int    `json:"calories"`
	Description string `json:"description"`
}

// Calculation exposes the intermediate numbers behind a plan.
type Calculation struct {
	BMR                float64 `json:"bmr_exact"`
	BMRRounded         int     `json:"bmr"`
	ActivityLevel      string  `json:"activity_level"`
	ActivityMultiplier float64 `json:"activity_multiplier"`
	TDEE               int     `json:"tdee"`
	Goal               string  `json:"goal"`
	GoalDelta          int     `json:"goal_delta"`
	GoalAdjustment     int     `json:"goal_adjustment"`
	CalorieFloor       int     `json:"calorie_floor"`
	FloorApplied       bool    `json:"floor_applied"`
	MacroSplit
}

type Plan struct {
	DailyCalories       int         `json:"daily_calories"`
	ProteinG            int         `json:"protein_g"`
	CarbsG              int         `json:"carbs_g"`
	FatG                int         `json:"fat_g"`
	FiberG              int         `json:"fiber_g"`
	ProteinPct          int         `json:"protein_percent"`
	CarbsPct            int         `json:"carbs_percent"`
	FatPct              int         `json:"fat_percent"`
	RecommendedFoods    []string    `json:"recommended_foods"`
	FoodsToAvoid        []string    `json:"foods_to_avoid"`
	MealTiming          []MealSlot  `json:"meal_timing"`
	SpecialInstructions []string    `json:"special_instructions"`
	WaterML             int         `json:"water_ml"`
	Goal                string      `json:"goal"`
	Calculation         Calculation `json:"calculation"`
}

// Generate builds a plan for p. The only error it returns is *ValidationError.
func Generate(p Profile) (*Plan, error) {
	if err := Validate(p); err != nil {
		return nil, err
	}

	female := IsFemale(p.Sex)
	bmr := BMR(p.WeightKG, p.HeightCM, p.Age, female)

	level, multiplier := ActivityMultiplier(p.ActivityLevel)
	tdee := roundInt(bmr * multiplier)

	goal, delta := GoalDelta(p.Goal)
	calories := tdee + delta

	floor := MinCalories(female)
	floorApplied := false
	if calories < floor {
		calories = floor
		floorApplied = true
	}

	rec := applyConditions(p.Conditions)
	applyDietPreference(&rec, p.DietPreference)

	plan := &Plan{
		DailyCalories:       calories,
		ProteinG:            gramsFor(calories, rec.split.ProteinPct, kcalPerGramProtein),
		CarbsG:              gramsFor(calories, rec.split.CarbsPct, kcalPerGramCarbs),
		FatG:                gramsFor(calories, rec.split.FatPct, kcalPerGramFat),
		FiberG:              fiberFor(female),
		ProteinPct:          rec.split.ProteinPct,
		CarbsPct:            rec.split.CarbsPct,
		FatPct:              rec.split.FatPct,
		RecommendedFoods:    dedupe(rec.include),
		FoodsToAvoid:        dedupe(rec.avoid),
		MealTiming:          MealTiming(calories),
		SpecialInstructions: rec.instructions,
		WaterML:             roundInt(p.WeightKG * waterMLPerKg),
		Goal:                goal,
		Calculation: Calculation{
			BMR:                bmr,
			BMRRounded:         roundInt(bmr),
			ActivityLevel:      level,
			ActivityMultiplier: multiplier,
			TDEE:               tdee,
			Goal:               goal,
			GoalDelta:          delta,
			GoalAdjustment:     calories - tdee,
			CalorieFloor:       floor,
			FloorApplied:       floorApplied,
			MacroSplit:         rec.split,
		},
	}
	if plan.SpecialInstructions == nil {
		plan.SpecialInstructions = []string{}
	}
	return plan, nil
}

// BMR uses the Mifflin-St Jeor equation.
func BMR(weightKG, heightCM float64, age int, female bool) float64 {
	base := 10*weightKG + 6.25*heightCM - 5*float64(age)
	if female {
		return base - 161
	}
	return base + 5
}

func MinCalories(female bool) int {
	if female {
		return minCaloriesFemale
	}
	return minCaloriesOther
}

func IsFemale(sex string) bool {
	return normalizeKey(sex) == SexFemale
}

func fiberFor(female bool) int {
	if female {
		return fiberFemaleG
	}
	return fiberOtherG
}

func gramsFor(calories, pct, kcalPerGram int) int {
	return roundInt(float64(calories) * float64(pct) / 100 / float64(kcalPerGram))
}

// roundInt rounds half to even so x.5 results match the historical plans.
func roundInt(v float64) int {
	return int(math.RoundToEven(v))
}

// normalizeKey lowercases and turns spaces and dashes into underscores, so
// "Very Active" and "very-active" both become "very_active".
func normalizeKey(v string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	v = strings.ReplaceAll(v, " ", "_")
	return strings.ReplaceAll(v, "-", "_")
}

func dedupe(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		if seen[it] {
			continue
		}
		seen[it] = true
		out = append(out, it)
	}
	return out
}
