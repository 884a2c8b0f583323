package service

import (
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/a3health/a3diet/internal/model"
)

const (
	GlassML             = 250
	DefaultWaterGoalML  = 2500
	ConfigWaterGoalML   = "water_default_goal_ml"
	ConfigCalorieTarget = "default_calorie_target"
)

type LogWaterInput struct {
	Date       string    `json:"date"`
	AddML      int       `json:"add_ml"`
	AddGlasses int       `json:"add_glasses"`
	GoalML     int       `json:"goal_ml"`
	Now        time.Time `json:"-"`
}

// GetWater returns the day's log, or an empty log carrying the default goal.
func GetWater(db *sql.DB, userID int64, date string, now time.Time) (model.WaterLog, error) {
	day, err := resolveDate(date, now)
	if err != nil {
		return model.WaterLog{}, err
	}
	log, found, err := getWaterLog(db, userID, day)
	if err != nil {
		return model.WaterLog{}, err
	}
	if found {
		return log, nil
	}
	goal, err := defaultWaterGoal(db, userID)
	if err != nil {
		return model.WaterLog{}, err
	}
	return model.WaterLog{Date: day, GoalML: goal}, nil
}

// LogWater adds to the day's total. Glasses win over add_ml when both are set.
func LogWater(db *sql.DB, userID int64, in LogWaterInput) (model.WaterLog, error) {
	day, err := resolveDate(in.Date, in.Now)
	if err != nil {
		return model.WaterLog{}, err
	}
	if in.AddML < 0 || in.AddGlasses < 0 || in.GoalML < 0 {
		return model.WaterLog{}, invalidf("add_ml, add_glasses and goal_ml must be >= 0")
	}
	add := in.AddML
	if in.AddGlasses > 0 {
		add = in.AddGlasses * GlassML
	}

	tx, err := db.Begin()
	if err != nil {
		return model.WaterLog{}, fmt.Errorf("begin log water tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	current, found, err := getWaterLog(tx, userID, day)
	if err != nil {
		return model.WaterLog{}, err
	}
	if !found {
		current = model.WaterLog{Date: day}
		if current.GoalML, err = defaultWaterGoal(tx, userID); err != nil {
			return model.WaterLog{}, err
		}
	}
	if in.GoalML > 0 {
		current.GoalML = in.GoalML
	}
	current.AmountML += add
	current.Glasses = current.AmountML / GlassML

	if _, err := tx.Exec(`
INSERT INTO diet_water_logs(user_id, date, amount_ml, goal_ml, glasses, updated_at)
VALUES(?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(user_id, date) DO UPDATE SET
  amount_ml=excluded.amount_ml, goal_ml=excluded.goal_ml, glasses=excluded.glasses, updated_at=excluded.updated_at
`, userID, day, current.AmountML, current.GoalML, current.Glasses); err != nil {
		return model.WaterLog{}, fmt.Errorf("save water log: %w", err)
	}
	saved, _, err := getWaterLog(tx, userID, day)
	if err != nil {
		return model.WaterLog{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.WaterLog{}, fmt.Errorf("commit log water: %w", err)
	}
	return saved, nil
}

func getWaterLog(exec sqlExecutor, userID int64, day string) (model.WaterLog, bool, error) {
	var w model.WaterLog
	err := exec.QueryRow(`SELECT id, date, amount_ml, goal_ml, glasses FROM diet_water_logs WHERE user_id = ? AND date = ?`, userID, day).
		Scan(&w.ID, &w.Date, &w.AmountML, &w.GoalML, &w.Glasses)
	if err == sql.ErrNoRows {
		return model.WaterLog{}, false, nil
	}
	if err != nil {
		return model.WaterLog{}, false, fmt.Errorf("get water log for %s: %w", day, err)
	}
	w.Percentage = WaterPercentage(w.AmountML, w.GoalML)
	return w, true, nil
}

func WaterPercentage(amountML, goalML int) float64 {
	if goalML <= 0 {
		return 0
	}
	return round1(float64(amountML) / float64(goalML) * 100)
}

// defaultWaterGoal prefers the active plan's recommendation, then the
// configured default, then DefaultWaterGoalML.
func defaultWaterGoal(exec sqlExecutor, userID int64) (int, error) {
	var planML int
	err := exec.QueryRow(`SELECT water_ml FROM diet_plans WHERE user_id = ? AND is_active = 1`, userID).Scan(&planML)
	if err != nil && err != sql.ErrNoRows {
		return 0, fmt.Errorf("lookup plan water goal: %w", err)
	}
	if planML > 0 {
		return planML, nil
	}
	if v, ok, err := configInt(exec, ConfigWaterGoalML); err != nil {
		return 0, err
	} else if ok {
		return v, nil
	}
	return DefaultWaterGoalML, nil
}

func configInt(exec sqlExecutor, key string) (int, bool, error) {
	var raw string
	err := exec.QueryRow(`SELECT value FROM app_config WHERE key = ?`, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get config %q: %w", key, err)
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return 0, false, nil
	}
	return v, true, nil
}
