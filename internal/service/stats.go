package service

import (
	"database/sql"
	"fmt"
	"math"
	"time"
)

const (
	defaultCalorieTarget = 2000
	defaultProteinG      = 60
	defaultCarbsG        = 250
	defaultFatG          = 65
)

type DayIntake struct {
	Calories    int     `json:"calories"`
	Protein     float64 `json:"protein"`
	Carbs       float64 `json:"carbs"`
	Fat         float64 `json:"fat"`
	MealsLogged int     `json:"meals_logged"`
}

type WaterStatus struct {
	AmountML   int     `json:"amount_ml"`
	GoalML     int     `json:"goal_ml"`
	Percentage float64 `json:"percentage"`
}

type WeightStatus struct {
	CurrentKG  *float64 `json:"current_kg"`
	BMI        *float64 `json:"bmi"`
	LastLogged *string  `json:"last_logged"`
}

type Targets struct {
	Calories int `json:"calories"`
	ProteinG int `json:"protein_g"`
	CarbsG   int `json:"carbs_g"`
	FatG     int `json:"fat_g"`
}

type DietStats struct {
	Date             string       `json:"date"`
	Today            DayIntake    `json:"today"`
	Water            WaterStatus  `json:"water"`
	Weight           WeightStatus `json:"weight"`
	Targets          Targets      `json:"targets"`
	HasActivePlan    bool         `json:"has_active_plan"`
	HasHealthProfile bool         `json:"has_health_profile"`
	AvgDailyCalories int          `json:"avg_daily_calories"`
}

// Stats builds the dashboard summary for the day of now. The weekly average
// only counts days with at least one meal.
func Stats(db *sql.DB, userID int64, now time.Time) (*DietStats, error) {
	now = orNow(now)
	day := now.Format(dateLayout)
	out := &DietStats{Date: day}

	var calories float64
	if err := db.QueryRow(`
SELECT COALESCE(SUM(total_calories), 0), COALESCE(SUM(total_protein), 0), COALESCE(SUM(total_carbs), 0),
  COALESCE(SUM(total_fat), 0), COUNT(1)
FROM diet_meals WHERE user_id = ? AND date = ?
`, userID, day).Scan(&calories, &out.Today.Protein, &out.Today.Carbs, &out.Today.Fat, &out.Today.MealsLogged); err != nil {
		return nil, fmt.Errorf("stats today intake: %w", err)
	}
	out.Today.Calories = int(math.Round(calories))
	out.Today.Protein = round1(out.Today.Protein)
	out.Today.Carbs = round1(out.Today.Carbs)
	out.Today.Fat = round1(out.Today.Fat)

	water, err := GetWater(db, userID, day, now)
	if err != nil {
		return nil, err
	}
	out.Water = WaterStatus{AmountML: water.AmountML, GoalML: water.GoalML, Percentage: WaterPercentage(water.AmountML, water.GoalML)}

	latest, err := latestWeight(db, userID)
	if err != nil {
		return nil, err
	}
	if latest != nil {
		kg := latest.WeightKG
		date := latest.Date
		out.Weight = WeightStatus{CurrentKG: &kg, BMI: latest.BMI, LastLogged: &date}
	}

	plan, err := activePlan(db, userID)
	if err != nil {
		return nil, err
	}
	if plan != nil {
		out.HasActivePlan = true
		out.Targets = Targets{Calories: plan.DailyCalories, ProteinG: plan.ProteinG, CarbsG: plan.CarbsG, FatG: plan.FatG}
	} else {
		out.Targets = Targets{Calories: defaultCalorieTarget, ProteinG: defaultProteinG, CarbsG: defaultCarbsG, FatG: defaultFatG}
		v, ok, err := configInt(db, ConfigCalorieTarget)
		if err != nil {
			return nil, err
		}
		if ok {
			out.Targets.Calories = v
		}
	}

	var profiles int
	if err := db.QueryRow(`SELECT COUNT(1) FROM diet_health_profiles WHERE user_id = ?`, userID).Scan(&profiles); err != nil {
		return nil, fmt.Errorf("stats profile check: %w", err)
	}
	out.HasHealthProfile = profiles > 0

	var weekCalories float64
	var daysLogged int
	if err := db.QueryRow(`
SELECT COALESCE(SUM(total_calories), 0), COUNT(DISTINCT date)
FROM diet_meals WHERE user_id = ? AND date >= ? AND date <= ?
`, userID, daysAgo(now, 7), day).Scan(&weekCalories, &daysLogged); err != nil {
		return nil, fmt.Errorf("stats weekly average: %w", err)
	}
	if daysLogged > 0 {
		out.AvgDailyCalories = int(math.Round(weekCalories / float64(daysLogged)))
	}
	return out, nil
}
