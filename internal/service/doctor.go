package service

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
)

// totalsTolerance absorbs float noise when comparing stored meal totals
// with the sum of their items.
const totalsTolerance = 0.01

type DoctorReport struct {
	InvalidMacroSplits int `json:"invalid_macro_splits"`
	InvalidPlanJSON    int `json:"invalid_plan_json"`
	MealTotalMismatch  int `json:"meal_total_mismatch"`
	MultipleActive     int `json:"users_with_multiple_active_plans"`
	FixedMealTotals    int `json:"fixed_meal_totals,omitempty"`
}

func (r DoctorReport) HasIssues() bool {
	return r.InvalidMacroSplits > 0 || r.InvalidPlanJSON > 0 || r.MealTotalMismatch > 0 || r.MultipleActive > 0
}

// RunDoctor checks stored plans and meals. With fix, meal totals are
// recomputed from their items; plans are never rewritten.
func RunDoctor(db *sql.DB, fix bool) (DoctorReport, error) {
	report := DoctorReport{}
	if err := db.QueryRow(`SELECT COUNT(1) FROM diet_plans WHERE protein_percent + carbs_percent + fat_percent <> 100`).
		Scan(&report.InvalidMacroSplits); err != nil {
		return report, fmt.Errorf("doctor macro split check: %w", err)
	}

	rows, err := db.Query(`SELECT meal_timing_json, foods_to_avoid_json, recommended_foods_json FROM diet_plans`)
	if err != nil {
		return report, fmt.Errorf("doctor plan json query: %w", err)
	}
	for rows.Next() {
		var timing, avoid, include string
		if err := rows.Scan(&timing, &avoid, &include); err != nil {
			_ = rows.Close()
			return report, fmt.Errorf("doctor plan json scan: %w", err)
		}
		for _, raw := range []string{timing, avoid, include} {
			if raw = strings.TrimSpace(raw); raw != "" && !json.Valid([]byte(raw)) {
				report.InvalidPlanJSON++
				break
			}
		}
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return report, fmt.Errorf("doctor plan json iterate: %w", err)
	}
	_ = rows.Close()

	if err := db.QueryRow(`
SELECT COUNT(1) FROM (SELECT user_id FROM diet_plans WHERE is_active = 1 GROUP BY user_id HAVING COUNT(1) > 1)
`).Scan(&report.MultipleActive); err != nil {
		return report, fmt.Errorf("doctor active plan check: %w", err)
	}

	mismatched, err := mismatchedMeals(db)
	if err != nil {
		return report, err
	}
	report.MealTotalMismatch = len(mismatched)

	if fix && len(mismatched) > 0 {
		tx, err := db.Begin()
		if err != nil {
			return report, fmt.Errorf("doctor fix begin tx: %w", err)
		}
		for _, id := range mismatched {
			if err := recalcMealTotals(tx, id); err != nil {
				_ = tx.Rollback()
				return report, err
			}
			report.FixedMealTotals++
		}
		if err := tx.Commit(); err != nil {
			return report, fmt.Errorf("doctor fix commit: %w", err)
		}
	}
	return report, nil
}

func mismatchedMeals(db *sql.DB) ([]int64, error) {
	rows, err := db.Query(`
SELECT m.id FROM diet_meals m
LEFT JOIN (
  SELECT meal_id, SUM(calories) AS c, SUM(protein) AS p, SUM(carbs) AS cb, SUM(fat) AS f, SUM(fiber) AS fb
  FROM diet_meal_items GROUP BY meal_id
) i ON i.meal_id = m.id
WHERE ABS(m.total_calories - COALESCE(i.c, 0)) > ?
   OR ABS(m.total_protein - COALESCE(i.p, 0)) > ?
   OR ABS(m.total_carbs - COALESCE(i.cb, 0)) > ?
   OR ABS(m.total_fat - COALESCE(i.f, 0)) > ?
   OR ABS(m.total_fiber - COALESCE(i.fb, 0)) > ?
ORDER BY m.id
`, totalsTolerance, totalsTolerance, totalsTolerance, totalsTolerance, totalsTolerance)
	if err != nil {
		return nil, fmt.Errorf("doctor meal totals query: %w", err)
	}
	defer rows.Close()
	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("doctor meal totals scan: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("doctor meal totals iterate: %w", err)
	}
	return ids, nil
}
