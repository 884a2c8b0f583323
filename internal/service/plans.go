package service

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/a3health/a3diet/internal/model"
	"github.com/a3health/a3diet/internal/planner"
)

// GeneratePlanInput carries the fields submitted with a generate request.
// Nil fields keep the stored profile value. Lab values and the target weight
// are always replaced, so leaving them out clears them.
type GeneratePlanInput struct {
	HeightCM         *float64  `json:"height_cm"`
	WeightKG         *float64  `json:"weight_kg"`
	Age              *float64  `json:"age"`
	Gender           *string   `json:"gender"`
	ActivityLevel    *string   `json:"activity_level"`
	Goal             *string   `json:"goal"`
	KnownConditions  []string  `json:"known_conditions"`
	Allergies        []string  `json:"allergies"`
	DietPreference   *string   `json:"diet_preference"`
	TargetWeightKG   *float64  `json:"target_weight_kg"`
	FastingGlucose   *float64  `json:"fasting_glucose"`
	HbA1c            *float64  `json:"hba1c"`
	TotalCholesterol *float64  `json:"total_cholesterol"`
	BloodPressure    *string   `json:"blood_pressure"`
	Now              time.Time `json:"-"`
}

type GeneratedPlan struct {
	Plan        model.DietPlan      `json:"plan"`
	Calculation planner.Calculation `json:"calculation"`
}

// GeneratePlan merges the input into the stored profile, runs the generator
// and stores the result as the user's only active plan. Nothing is written
// when generation fails.
func GeneratePlan(db *sql.DB, userID int64, in GeneratePlanInput) (*GeneratedPlan, error) {
	now := orNow(in.Now)
	if in.Age != nil && !wholeYears(*in.Age) {
		return nil, &planner.ValidationError{Invalid: []string{"age"}}
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin generate plan tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	existing, err := getProfile(tx, userID)
	if err != nil {
		return nil, err
	}
	profile := model.HealthProfile{UserID: userID}
	if existing != nil {
		profile = *existing
	}
	mergeGenerateInput(&profile, in)

	generated, err := planner.Generate(profile.PlannerProfile())
	if err != nil {
		return nil, err
	}
	if err := upsertProfile(tx, profile); err != nil {
		return nil, err
	}

	if _, err := tx.Exec(`UPDATE diet_plans SET is_active = 0 WHERE user_id = ?`, userID); err != nil {
		return nil, fmt.Errorf("deactivate plans for user %d: %w", userID, err)
	}
	id, err := insertPlan(tx, userID, generated, now)
	if err != nil {
		return nil, err
	}
	plan, err := getPlan(tx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit generate plan: %w", err)
	}
	return &GeneratedPlan{Plan: plan, Calculation: generated.Calculation}, nil
}

func mergeGenerateInput(p *model.HealthProfile, in GeneratePlanInput) {
	if in.HeightCM != nil {
		p.HeightCM = *in.HeightCM
	}
	if in.WeightKG != nil {
		p.WeightKG = *in.WeightKG
	}
	if in.Age != nil {
		p.Age = int(*in.Age)
	}
	if in.Gender != nil {
		p.Gender = strings.TrimSpace(*in.Gender)
	}
	if in.ActivityLevel != nil {
		p.ActivityLevel = strings.TrimSpace(*in.ActivityLevel)
	}
	if in.Goal != nil {
		p.Goal = strings.TrimSpace(*in.Goal)
	}
	if in.KnownConditions != nil {
		p.KnownConditions = cleanList(in.KnownConditions)
	}
	if in.Allergies != nil {
		p.Allergies = cleanList(in.Allergies)
	}
	if in.DietPreference != nil {
		p.DietPreference = strings.TrimSpace(*in.DietPreference)
	}
	p.TargetWeightKG = in.TargetWeightKG
	p.FastingGlucose = in.FastingGlucose
	p.HbA1c = in.HbA1c
	p.TotalCholesterol = in.TotalCholesterol
	p.BloodPressure = ""
	if in.BloodPressure != nil {
		p.BloodPressure = strings.TrimSpace(*in.BloodPressure)
	}
}

// wholeYears reports whether v is an integral age that fits in int32.
func wholeYears(v float64) bool {
	return v == math.Trunc(v) && v >= math.MinInt32 && v <= math.MaxInt32
}

// PlanName renders e.g. "Weight Loss Plan - Mar 2026".
func PlanName(goal string, now time.Time) string {
	words := strings.Fields(strings.ReplaceAll(goal, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return fmt.Sprintf("%s Plan - %s", strings.Join(words, " "), now.Format("Jan 2006"))
}

func insertPlan(exec sqlExecutor, userID int64, p *planner.Plan, now time.Time) (int64, error) {
	timing, err := json.Marshal(p.MealTiming)
	if err != nil {
		return 0, fmt.Errorf("encode meal timing: %w", err)
	}
	avoid, err := encodeList(p.FoodsToAvoid)
	if err != nil {
		return 0, err
	}
	include, err := encodeList(p.RecommendedFoods)
	if err != nil {
		return 0, err
	}
	res, err := exec.Exec(`
INSERT INTO diet_plans(
  user_id, plan_name, plan_type, daily_calories, protein_g, carbs_g, fat_g, fiber_g,
  protein_percent, carbs_percent, fat_percent, water_ml, meal_timing_json, special_instructions,
  foods_to_avoid_json, recommended_foods_json, is_active, start_date
) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1, ?)
`, userID, PlanName(p.Goal, now), p.Goal, p.DailyCalories, p.ProteinG, p.CarbsG, p.FatG, p.FiberG,
		p.ProteinPct, p.CarbsPct, p.FatPct, p.WaterML, string(timing), strings.Join(p.SpecialInstructions, "\n"),
		avoid, include, now.Format(dateLayout))
	if err != nil {
		return 0, fmt.Errorf("insert plan for user %d: %w", userID, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("resolve plan id: %w", err)
	}
	return id, nil
}

const planColumns = `id, user_id, plan_name, plan_type, daily_calories, protein_g, carbs_g, fat_g, fiber_g,
  protein_percent, carbs_percent, fat_percent, water_ml, meal_timing_json, special_instructions,
  foods_to_avoid_json, recommended_foods_json, is_active, start_date, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlan(row rowScanner) (model.DietPlan, error) {
	var (
		p                    model.DietPlan
		timing, instructions string
		avoid, include       string
		active               int
	)
	if err := row.Scan(&p.ID, &p.UserID, &p.PlanName, &p.PlanType, &p.DailyCalories, &p.ProteinG, &p.CarbsG, &p.FatG, &p.FiberG,
		&p.ProteinPct, &p.CarbsPct, &p.FatPct, &p.WaterML, &timing, &instructions,
		&avoid, &include, &active, &p.StartDate, &p.CreatedAt); err != nil {
		return model.DietPlan{}, err
	}
	p.IsActive = active == 1
	p.MealTiming = []planner.MealSlot{}
	if strings.TrimSpace(timing) != "" {
		if err := json.Unmarshal([]byte(timing), &p.MealTiming); err != nil {
			return model.DietPlan{}, fmt.Errorf("decode meal timing for plan %d: %w", p.ID, err)
		}
	}
	p.SpecialInstructions = []string{}
	if instructions != "" {
		p.SpecialInstructions = strings.Split(instructions, "\n")
	}
	var err error
	if p.FoodsToAvoid, err = decodeList(avoid); err != nil {
		return model.DietPlan{}, fmt.Errorf("foods to avoid for plan %d: %w", p.ID, err)
	}
	if p.RecommendedFoods, err = decodeList(include); err != nil {
		return model.DietPlan{}, fmt.Errorf("recommended foods for plan %d: %w", p.ID, err)
	}
	return p, nil
}

func getPlan(exec sqlExecutor, userID, id int64) (model.DietPlan, error) {
	p, err := scanPlan(exec.QueryRow(`SELECT `+planColumns+` FROM diet_plans WHERE id = ? AND user_id = ?`, id, userID))
	if err == sql.ErrNoRows {
		return model.DietPlan{}, notFoundf("plan %d", id)
	}
	if err != nil {
		return model.DietPlan{}, fmt.Errorf("get plan %d: %w", id, err)
	}
	return p, nil
}

func GetPlan(db *sql.DB, userID, id int64) (model.DietPlan, error) {
	return getPlan(db, userID, id)
}

// ListPlans returns the user's plans, newest first.
func ListPlans(db *sql.DB, userID int64) ([]model.DietPlan, error) {
	rows, err := db.Query(`SELECT `+planColumns+` FROM diet_plans WHERE user_id = ? ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()
	out := make([]model.DietPlan, 0)
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate plans: %w", err)
	}
	return out, nil
}

// ActivePlan returns nil when the user has no active plan.
func ActivePlan(db *sql.DB, userID int64) (*model.DietPlan, error) {
	return activePlan(db, userID)
}

func activePlan(exec sqlExecutor, userID int64) (*model.DietPlan, error) {
	p, err := scanPlan(exec.QueryRow(`SELECT `+planColumns+` FROM diet_plans WHERE user_id = ? AND is_active = 1`, userID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get active plan: %w", err)
	}
	return &p, nil
}

// ActivatePlan makes id the user's only active plan and restarts it today.
func ActivatePlan(db *sql.DB, userID, id int64, now time.Time) (model.DietPlan, error) {
	tx, err := db.Begin()
	if err != nil {
		return model.DietPlan{}, fmt.Errorf("begin activate plan tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := getPlan(tx, userID, id); err != nil {
		return model.DietPlan{}, err
	}
	if _, err := tx.Exec(`UPDATE diet_plans SET is_active = 0 WHERE user_id = ? AND id <> ?`, userID, id); err != nil {
		return model.DietPlan{}, fmt.Errorf("deactivate plans for user %d: %w", userID, err)
	}
	if _, err := tx.Exec(`UPDATE diet_plans SET is_active = 1, start_date = ? WHERE id = ? AND user_id = ?`,
		orNow(now).Format(dateLayout), id, userID); err != nil {
		return model.DietPlan{}, fmt.Errorf("activate plan %d: %w", id, err)
	}
	plan, err := getPlan(tx, userID, id)
	if err != nil {
		return model.DietPlan{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.DietPlan{}, fmt.Errorf("commit activate plan: %w", err)
	}
	return plan, nil
}

func DeletePlan(db *sql.DB, userID, id int64) error {
	res, err := db.Exec(`DELETE FROM diet_plans WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete plan %d: %w", id, err)
	}
	return affectedOrNotFound(res, "plan", id)
}
