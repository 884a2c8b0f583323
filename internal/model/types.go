package model

import (
	"time"

	"github.com/a3health/a3diet/internal/planner"
)

type User struct {
	ID         int64     `json:"id"`
	ExternalID string    `json:"external_id"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	CreatedAt  time.Time `json:"created_at"`
}

type HealthProfile struct {
	ID                int64     `json:"id"`
	UserID            int64     `json:"user_id"`
	FastingGlucose    *float64  `json:"fasting_glucose"`
	HbA1c             *float64  `json:"hba1c"`
	TotalCholesterol  *float64  `json:"total_cholesterol"`
	Triglycerides     *float64  `json:"triglycerides"`
	HDLCholesterol    *float64  `json:"hdl_cholesterol"`
	LDLCholesterol    *float64  `json:"ldl_cholesterol"`
	BloodPressure     string    `json:"blood_pressure"`
	KnownConditions   []string  `json:"known_conditions"`
	Allergies         []string  `json:"allergies"`
	DietPreference    string    `json:"diet_preference"`
	CuisinePreference []string  `json:"cuisine_preference"`
	HeightCM          float64   `json:"height_cm"`
	WeightKG          float64   `json:"weight_kg"`
	Age               int       `json:"age"`
	Gender            string    `json:"gender"`
	ActivityLevel     string    `json:"activity_level"`
	Goal              string    `json:"goal"`
	TargetWeightKG    *float64  `json:"target_weight_kg"`
	TargetDate        string    `json:"target_date"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// PlannerProfile projects the stored profile onto the generator input.
func (p HealthProfile) PlannerProfile() planner.Profile {
	return planner.Profile{
		Age:            p.Age,
		Sex:            p.Gender,
		HeightCM:       p.HeightCM,
		WeightKG:       p.WeightKG,
		ActivityLevel:  p.ActivityLevel,
		Goal:           p.Goal,
		Conditions:     p.KnownConditions,
		DietPreference: p.DietPreference,
	}
}

// DietPlan is a generated plan as stored. Only is_active and start_date
// change after insert.
type DietPlan struct {
	ID                  int64              `json:"id"`
	UserID              int64              `json:"user_id"`
	PlanName            string             `json:"plan_name"`
	PlanType            string             `json:"plan_type"`
	DailyCalories       int                `json:"daily_calories"`
	ProteinG            int                `json:"protein_g"`
	CarbsG              int                `json:"carbs_g"`
	FatG                int                `json:"fat_g"`
	FiberG              int                `json:"fiber_g"`
	ProteinPct          int                `json:"protein_percent"`
	CarbsPct            int                `json:"carbs_percent"`
	FatPct              int                `json:"fat_percent"`
	WaterML             int                `json:"water_ml"`
	MealTiming          []planner.MealSlot `json:"meal_timing"`
	SpecialInstructions []string           `json:"special_instructions"`
	FoodsToAvoid        []string           `json:"foods_to_avoid"`
	RecommendedFoods    []string           `json:"recommended_foods"`
	IsActive            bool               `json:"is_active"`
	StartDate           string             `json:"start_date"`
	CreatedAt           time.Time          `json:"created_at"`
}

type Meal struct {
	ID            int64      `json:"id"`
	UserID        int64      `json:"user_id"`
	Date          string     `json:"date"`
	MealType      string     `json:"meal_type"`
	MealName      string     `json:"meal_name"`
	Notes         string     `json:"notes"`
	TotalCalories float64    `json:"total_calories"`
	TotalProtein  float64    `json:"total_protein"`
	TotalCarbs    float64    `json:"total_carbs"`
	TotalFat      float64    `json:"total_fat"`
	TotalFiber    float64    `json:"total_fiber"`
	Items         []MealItem `json:"items"`
	CreatedAt     time.Time  `json:"created_at"`
}

type MealItem struct {
	ID          int64   `json:"id"`
	MealID      int64   `json:"meal_id"`
	FoodID      *int64  `json:"food_id"`
	FoodName    string  `json:"food_name"`
	Quantity    float64 `json:"quantity"`
	ServingUnit string  `json:"serving_unit"`
	Calories    float64 `json:"calories"`
	Protein     float64 `json:"protein"`
	Carbs       float64 `json:"carbs"`
	Fat         float64 `json:"fat"`
	Fiber       float64 `json:"fiber"`
}

type WaterLog struct {
	ID         int64   `json:"id,omitempty"`
	Date       string  `json:"date"`
	AmountML   int     `json:"amount_ml"`
	GoalML     int     `json:"goal_ml"`
	Glasses    int     `json:"glasses"`
	Percentage float64 `json:"percentage"`
}

type WeightLog struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"user_id"`
	Date           string    `json:"date"`
	WeightKG       float64   `json:"weight_kg"`
	WaistCM        *float64  `json:"waist_cm"`
	ChestCM        *float64  `json:"chest_cm"`
	HipCM          *float64  `json:"hip_cm"`
	ArmCM          *float64  `json:"arm_cm"`
	ThighCM        *float64  `json:"thigh_cm"`
	BodyFatPercent *float64  `json:"body_fat_percent"`
	BMI            *float64  `json:"bmi"`
	Notes          string    `json:"notes"`
	CreatedAt      time.Time `json:"created_at"`
}

type Food struct {
	ID            int64   `json:"id"`
	FoodName      string  `json:"food_name"`
	FoodNameHindi string  `json:"food_name_hindi"`
	Category      string  `json:"category"`
	Cuisine       string  `json:"cuisine"`
	ServingSize   float64 `json:"serving_size"`
	ServingUnit   string  `json:"serving_unit"`
	Calories      float64 `json:"calories"`
	Protein       float64 `json:"protein"`
	Carbs         float64 `json:"carbs"`
	Fat           float64 `json:"fat"`
	Fiber         float64 `json:"fiber"`
	Sugar         float64 `json:"sugar"`
	SodiumMG      float64 `json:"sodium_mg"`
	IsVegetarian  bool    `json:"is_vegetarian"`
	IsVegan       bool    `json:"is_vegan"`
	IsGlutenFree  bool    `json:"is_gluten_free"`
	GlycemicIndex *int    `json:"glycemic_index"`
	IsVerified    bool    `json:"is_verified"`
	IsCustom      bool    `json:"is_custom"`
	CreatedBy     *int64  `json:"created_by"`
}

type FoodCategory struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type Favorite struct {
	ID                int64     `json:"id"`
	FoodID            int64     `json:"food_id"`
	PreferredQuantity *float64  `json:"preferred_quantity"`
	PreferredUnit     string    `json:"preferred_unit"`
	Food              Food      `json:"food"`
	CreatedAt         time.Time `json:"created_at"`
}
