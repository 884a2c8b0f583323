package service

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/a3health/a3diet/internal/model"
)

const kgPerLb = 0.45359237

// LogWeightInput takes either Weight with Unit (kg or lb) or WeightKG.
type LogWeightInput struct {
	Date           string    `json:"date"`
	Weight         float64   `json:"weight"`
	Unit           string    `json:"unit"`
	WeightKG       float64   `json:"weight_kg"`
	WaistCM        *float64  `json:"waist_cm"`
	ChestCM        *float64  `json:"chest_cm"`
	HipCM          *float64  `json:"hip_cm"`
	ArmCM          *float64  `json:"arm_cm"`
	ThighCM        *float64  `json:"thigh_cm"`
	BodyFatPercent *float64  `json:"body_fat_percent"`
	Notes          string    `json:"notes"`
	Now            time.Time `json:"-"`
}

type WeightFilter struct {
	Days int
	Now  time.Time
}

// LogWeight records one entry per day, replacing an earlier one for the same
// date. BMI is derived from the profile height when there is one.
func LogWeight(db *sql.DB, userID int64, in LogWeightInput) (model.WeightLog, error) {
	day, err := resolveDate(in.Date, in.Now)
	if err != nil {
		return model.WeightLog{}, err
	}
	weight, unit := in.Weight, in.Unit
	if weight == 0 && in.WeightKG != 0 {
		weight, unit = in.WeightKG, "kg"
	}
	weightKG, err := convertWeightToKg(weight, unit)
	if err != nil {
		return model.WeightLog{}, err
	}
	measurements := map[string]*float64{
		"waist_cm": in.WaistCM, "chest_cm": in.ChestCM, "hip_cm": in.HipCM, "arm_cm": in.ArmCM, "thigh_cm": in.ThighCM,
	}
	for name, v := range measurements {
		if err := validateOptionalNonNegative(name, v); err != nil {
			return model.WeightLog{}, err
		}
	}
	if in.BodyFatPercent != nil && (*in.BodyFatPercent < 0 || *in.BodyFatPercent > 100) {
		return model.WeightLog{}, invalidf("body_fat_percent must be between 0 and 100")
	}

	var heightCM sql.NullFloat64
	err = db.QueryRow(`SELECT height_cm FROM diet_health_profiles WHERE user_id = ?`, userID).Scan(&heightCM)
	if err != nil && err != sql.ErrNoRows {
		return model.WeightLog{}, fmt.Errorf("lookup profile height: %w", err)
	}
	var bmi *float64
	if heightCM.Valid && heightCM.Float64 > 0 {
		v := BMI(weightKG, heightCM.Float64)
		bmi = &v
	}

	if _, err := db.Exec(`
INSERT INTO diet_weight_logs(user_id, date, weight_kg, waist_cm, chest_cm, hip_cm, arm_cm, thigh_cm, body_fat_percent, bmi, notes)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(user_id, date) DO UPDATE SET
  weight_kg=excluded.weight_kg, waist_cm=excluded.waist_cm, chest_cm=excluded.chest_cm, hip_cm=excluded.hip_cm,
  arm_cm=excluded.arm_cm, thigh_cm=excluded.thigh_cm, body_fat_percent=excluded.body_fat_percent,
  bmi=excluded.bmi, notes=excluded.notes
`, userID, day, weightKG, in.WaistCM, in.ChestCM, in.HipCM, in.ArmCM, in.ThighCM, in.BodyFatPercent, bmi,
		strings.TrimSpace(in.Notes)); err != nil {
		return model.WeightLog{}, fmt.Errorf("save weight log: %w", err)
	}

	w, err := scanWeight(db.QueryRow(`SELECT `+weightColumns+` FROM diet_weight_logs WHERE user_id = ? AND date = ?`, userID, day))
	if err != nil {
		return model.WeightLog{}, fmt.Errorf("read weight log: %w", err)
	}
	return w, nil
}

// BMI is kg/m², rounded to one decimal.
func BMI(weightKG, heightCM float64) float64 {
	m := heightCM / 100
	return round1(weightKG / (m * m))
}

// ListWeights returns entries from the last Days days (default 30), newest first.
func ListWeights(db *sql.DB, userID int64, f WeightFilter) ([]model.WeightLog, error) {
	days := f.Days
	if days <= 0 {
		days = 30
	}
	rows, err := db.Query(`SELECT `+weightColumns+` FROM diet_weight_logs WHERE user_id = ? AND date >= ? ORDER BY date DESC`,
		userID, daysAgo(f.Now, days))
	if err != nil {
		return nil, fmt.Errorf("list weight logs: %w", err)
	}
	defer rows.Close()
	out := make([]model.WeightLog, 0)
	for rows.Next() {
		w, err := scanWeight(rows)
		if err != nil {
			return nil, fmt.Errorf("scan weight log: %w", err)
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate weight logs: %w", err)
	}
	return out, nil
}

func latestWeight(exec sqlExecutor, userID int64) (*model.WeightLog, error) {
	w, err := scanWeight(exec.QueryRow(`SELECT `+weightColumns+` FROM diet_weight_logs WHERE user_id = ? ORDER BY date DESC LIMIT 1`, userID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest weight log: %w", err)
	}
	return &w, nil
}

const weightColumns = `id, user_id, date, weight_kg, waist_cm, chest_cm, hip_cm, arm_cm, thigh_cm, body_fat_percent, bmi, notes, created_at`

func scanWeight(row rowScanner) (model.WeightLog, error) {
	var (
		w                             model.WeightLog
		waist, chest, hip, arm, thigh sql.NullFloat64
		bodyFat, bmi                  sql.NullFloat64
	)
	if err := row.Scan(&w.ID, &w.UserID, &w.Date, &w.WeightKG, &waist, &chest, &hip, &arm, &thigh, &bodyFat, &bmi, &w.Notes, &w.CreatedAt); err != nil {
		return model.WeightLog{}, err
	}
	w.WaistCM = nullFloat(waist)
	w.ChestCM = nullFloat(chest)
	w.HipCM = nullFloat(hip)
	w.ArmCM = nullFloat(arm)
	w.ThighCM = nullFloat(thigh)
	w.BodyFatPercent = nullFloat(bodyFat)
	w.BMI = nullFloat(bmi)
	return w, nil
}

func convertWeightToKg(value float64, unit string) (float64, error) {
	if value <= 0 {
		return 0, invalidf("weight must be > 0")
	}
	switch normalizeName(unit) {
	case "", "kg":
		return value, nil
	case "lb", "lbs":
		return value * kgPerLb, nil
	default:
		return 0, invalidf("invalid weight unit %q (use kg or lb)", unit)
	}
}

// WeightFromKg converts a stored kg value for display.
func WeightFromKg(weightKG float64, unit string) (float64, error) {
	switch normalizeName(unit) {
	case "", "kg":
		return weightKG, nil
	case "lb", "lbs":
		return weightKG / kgPerLb, nil
	default:
		return 0, invalidf("invalid weight unit %q (use kg or lb)", unit)
	}
}
