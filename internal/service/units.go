package service

import (
	"strings"

	"github.com/a3health/a3diet/internal/model"
)

type unitKind string

const (
	unitKindMass   unitKind = "mass"
	unitKindVolume unitKind = "volume"
)

type unitDef struct {
	kind       unitKind
	toBaseUnit float64
}

var unitTable = map[string]unitDef{
	// mass (base = g)
	"mg":  {kind: unitKindMass, toBaseUnit: 0.001},
	"g":   {kind: unitKindMass, toBaseUnit: 1},
	"kg":  {kind: unitKindMass, toBaseUnit: 1000},
	"oz":  {kind: unitKindMass, toBaseUnit: 28.349523125},
	"lb":  {kind: unitKindMass, toBaseUnit: 453.59237},
	"lbs": {kind: unitKindMass, toBaseUnit: 453.59237},

	// volume (base = ml)
	"ml":    {kind: unitKindVolume, toBaseUnit: 1},
	"l":     {kind: unitKindVolume, toBaseUnit: 1000},
	"tsp":   {kind: unitKindVolume, toBaseUnit: 4.92892159375},
	"tbsp":  {kind: unitKindVolume, toBaseUnit: 14.78676478125},
	"cup":   {kind: unitKindVolume, toBaseUnit: 236.5882365},
	"glass": {kind: unitKindVolume, toBaseUnit: GlassML},
}

// ItemNutrition is what a quantity of a reference food contributes to a meal.
type ItemNutrition struct {
	Calories float64
	Protein  float64
	Carbs    float64
	Fat      float64
	Fiber    float64
}

// ScaleFood returns the nutrition of quantity x unit of food. An empty unit
// or the food's own unit counts quantity in that unit; otherwise both units
// must be mass or both volume.
func ScaleFood(food model.Food, quantity float64, unit string) (ItemNutrition, error) {
	if quantity <= 0 {
		return ItemNutrition{}, invalidf("quantity must be > 0")
	}
	if food.ServingSize <= 0 {
		return ItemNutrition{}, invalidf("food %d has no serving size", food.ID)
	}
	amount, err := ConvertAmount(quantity, unit, food.ServingUnit)
	if err != nil {
		return ItemNutrition{}, err
	}
	factor := amount / food.ServingSize
	return ItemNutrition{
		Calories: round1(food.Calories * factor),
		Protein:  round1(food.Protein * factor),
		Carbs:    round1(food.Carbs * factor),
		Fat:      round1(food.Fat * factor),
		Fiber:    round1(food.Fiber * factor),
	}, nil
}

// ConvertAmount converts value between two units of the same kind. Count
// units such as "piece" only convert to themselves.
func ConvertAmount(value float64, fromUnit, toUnit string) (float64, error) {
	if value <= 0 {
		return 0, invalidf("amount must be > 0")
	}
	fromKey, toKey := normalizeName(fromUnit), normalizeName(toUnit)
	if fromKey == "" || fromKey == toKey {
		return value, nil
	}
	from, ok := unitTable[fromKey]
	if !ok {
		return 0, invalidf("unsupported unit %q", fromUnit)
	}
	to, ok := unitTable[toKey]
	if !ok {
		return 0, invalidf("cannot convert %s to %s", strings.TrimSpace(fromUnit), strings.TrimSpace(toUnit))
	}
	if from.kind != to.kind {
		return 0, invalidf("cannot convert %s (%s) to %s (%s)", fromKey, from.kind, toKey, to.kind)
	}
	return value * from.toBaseUnit / to.toBaseUnit, nil
}
