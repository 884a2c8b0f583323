package planner

import "strings"

const (
	ActivitySedentary  = "sedentary"
	ActivityLight      = "light"
	ActivityModerate   = "moderate"
	ActivityActive     = "active"
	ActivityVeryActive = "very_active"

	GoalMaintain       = "maintain"
	GoalWeightLoss     = "weight_loss"
	GoalAggressiveLoss = "aggressive_loss"
	GoalWeightGain     = "weight_gain"
	GoalMuscleGain     = "muscle_gain"
)

var activityMultipliers = map[string]float64{
	ActivitySedentary:  1.2,
	ActivityLight:      1.375,
	ActivityModerate:   1.55,
	ActivityActive:     1.725,
	ActivityVeryActive: 1.9,
}

// ActivityLevels lists the known levels from least to most active.
var ActivityLevels = []string{ActivitySedentary, ActivityLight, ActivityModerate, ActivityActive, ActivityVeryActive}

var goalDeltas = map[string]int{
	GoalMaintain:       0,
	GoalWeightLoss:     -500,
	GoalAggressiveLoss: -750,
	GoalWeightGain:     300,
	GoalMuscleGain:     400,
}

var Goals = []string{GoalMaintain, GoalWeightLoss, GoalAggressiveLoss, GoalWeightGain, GoalMuscleGain}

// ActivityMultiplier resolves a level to its canonical name and multiplier.
// Unknown levels resolve to sedentary.
func ActivityMultiplier(level string) (string, float64) {
	key := normalizeKey(level)
	if m, ok := activityMultipliers[key]; ok {
		return key, m
	}
	return ActivitySedentary, activityMultipliers[ActivitySedentary]
}

// GoalDelta resolves a goal to its canonical name and calorie delta.
// Unknown goals resolve to maintain.
func GoalDelta(goal string) (string, int) {
	key := normalizeKey(goal)
	if d, ok := goalDeltas[key]; ok {
		return key, d
	}
	return GoalMaintain, 0
}

var defaultSplit = MacroSplit{ProteinPct: 25, CarbsPct: 50, FatPct: 25}

type conditionRule struct {
	tags         []string
	split        *MacroSplit
	avoid        []string
	include      []string
	instructions []string
}

// conditionRules is scanned in order. A matching rule with a split replaces
// the running split, so the last matching rule decides the percentages while
// every matching rule contributes foods and instructions.
var conditionRules = []conditionRule{
	{
		tags:  []string{"diabetes", "prediabetes"},
		split: &MacroSplit{ProteinPct: 30, CarbsPct: 40, FatPct: 30},
		instructions: []string{
			"Focus on low glycemic index (GI) foods",
			"Avoid refined sugars and processed carbs",
			"Include fiber-rich vegetables with every meal",
		},
		avoid:   []string{"white rice", "white bread", "sugary drinks", "sweets", "fruit juice"},
		include: []string{"brown rice", "whole grains", "leafy greens", "cinnamon", "bitter gourd"},
	},
	{
		tags: []string{"hypertension", "high_bp"},
		instructions: []string{
			"Follow DASH diet principles - low sodium",
			"Limit sodium to 1500-2000mg per day",
			"Increase potassium-rich foods",
		},
		avoid:   []string{"processed foods", "pickles", "papad", "excess salt", "canned soups"},
		include: []string{"banana", "spinach", "sweet potato", "beans", "yogurt"},
	},
	{
		tags:  []string{"pcod", "pcos"},
		split: &MacroSplit{ProteinPct: 30, CarbsPct: 35, FatPct: 35},
		instructions: []string{
			"Focus on anti-inflammatory foods",
			"Choose complex carbs over simple carbs",
			"Include healthy fats from nuts and seeds",
		},
		avoid:   []string{"dairy", "refined carbs", "fried foods", "red meat"},
		include: []string{"flaxseeds", "walnuts", "fatty fish", "turmeric", "green tea"},
	},
	{
		tags: []string{"thyroid", "hypothyroid"},
		instructions: []string{
			"Limit goitrogens (raw cruciferous vegetables)",
			"Ensure adequate iodine and selenium",
		},
		avoid:   []string{"raw cabbage", "raw broccoli", "soy products"},
		include: []string{"eggs", "fish", "brazil nuts", "cooked vegetables"},
	},
	{
		tags:  []string{"cholesterol", "high_cholesterol"},
		split: &MacroSplit{ProteinPct: 25, CarbsPct: 50, FatPct: 25},
		instructions: []string{
			"Reduce saturated fats, increase fiber",
			"Include omega-3 rich foods",
		},
		avoid:   []string{"fried foods", "butter", "ghee", "red meat", "full-fat dairy"},
		include: []string{"oats", "flaxseeds", "fish", "olive oil", "almonds"},
	},
}

type recommendation struct {
	split        MacroSplit
	avoid        []string
	include      []string
	instructions []string
}

func applyConditions(conditions []string) recommendation {
	have := make(map[string]bool, len(conditions))
	for _, c := range conditions {
		have[normalizeKey(c)] = true
	}
	rec := recommendation{split: defaultSplit}
	for _, rule := range conditionRules {
		if !rule.matches(have) {
			continue
		}
		if rule.split != nil {
			rec.split = *rule.split
		}
		rec.instructions = append(rec.instructions, rule.instructions...)
		rec.avoid = append(rec.avoid, rule.avoid...)
		rec.include = append(rec.include, rule.include...)
	}
	return rec
}

func (r conditionRule) matches(have map[string]bool) bool {
	for _, tag := range r.tags {
		if have[tag] {
			return true
		}
	}
	return false
}

const (
	DietVegan         = "vegan"
	DietVegetarian    = "vegetarian"
	DietEggetarian    = "eggetarian"
	DietNonVegetarian = "non_vegetarian"
)

// DietPreferenceKind maps free text onto one of the known preferences.
// Anything unrecognized returns "". Eggetarian and non-vegetarian are matched
// before the "vegetarian" substring, so neither is treated as vegetarian.
func DietPreferenceKind(pref string) string {
	key := normalizeKey(pref)
	switch {
	case key == "":
		return ""
	case strings.Contains(key, "vegan"):
		return DietVegan
	case strings.HasPrefix(key, "non") && strings.Contains(key, "veg"):
		return DietNonVegetarian
	case strings.Contains(key, "egg"):
		return DietEggetarian
	case strings.Contains(key, "vegetarian"):
		return DietVegetarian
	}
	return ""
}

func applyDietPreference(rec *recommendation, pref string) {
	switch DietPreferenceKind(pref) {
	case DietVegan:
		rec.instructions = append(rec.instructions, "Ensure adequate B12, iron, and protein from plant sources")
		rec.include = append(rec.include, "tofu", "tempeh", "legumes", "nutritional yeast")
	case DietVegetarian:
		rec.include = append(rec.include, "paneer", "curd", "legumes", "tofu")
	case DietEggetarian:
		rec.include = append(rec.include, "paneer", "curd", "legumes", "eggs")
	}
}

var mealSlots = []MealSlot{
	{Name: "breakfast", Time: "7:00 - 9:00 AM", Percent: 25, Description: "Light but nutritious start"},
	{Name: "mid_morning_snack", Time: "10:30 - 11:00 AM", Percent: 10, Description: "Healthy snack to maintain energy"},
	{Name: "lunch", Time: "12:30 - 2:00 PM", Percent: 30, Description: "Largest meal of the day"},
	{Name: "evening_snack", Time: "4:00 - 5:00 PM", Percent: 10, Description: "Light snack before dinner"},
	{Name: "dinner", Time: "7:00 - 8:30 PM", Percent: 25, Description: "Balanced, lighter meal"},
}

// MealTiming spreads calories over the five daily slots. Slots are rounded
// independently, so their sum can drift a few kcal from calories.
func MealTiming(calories int) []MealSlot {
	out := make([]MealSlot, len(mealSlots))
	for i, slot := range mealSlots {
		slot.Calories = roundInt(float64(calories) * (float64(slot.Percent) / 100))
		out[i] = slot
	}
	return out
}

// MealSlotNames returns the slot names in serving order.
func MealSlotNames() []string {
	names := make([]string, len(mealSlots))
	for i, s := range mealSlots {
		names[i] = s.Name
	}
	return names
}
