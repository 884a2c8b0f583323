package service

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/a3health/a3diet/internal/model"
	"github.com/a3health/a3diet/internal/planner"
)

// MealTypeSnack is accepted in addition to the plan's meal slots.
const MealTypeSnack = "snack"

type MealItemInput struct {
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

type LogMealInput struct {
	Date     string          `json:"date"`
	MealType string          `json:"meal_type"`
	MealName string          `json:"meal_name"`
	Notes    string          `json:"notes"`
	Items    []MealItemInput `json:"items"`
	Now      time.Time       `json:"-"`
}

type MealFilter struct {
	Date string
	Days int
	Now  time.Time
}

// MealTypes lists the accepted meal_type values.
func MealTypes() []string {
	return append(planner.MealSlotNames(), MealTypeSnack)
}

func validMealType(v string) bool {
	for _, t := range MealTypes() {
		if v == t {
			return true
		}
	}
	return false
}

// LogMeal stores a meal and its items. Meal totals are the sums of the items.
// An item that references a food and gives no nutrition is scaled from the
// food's serving.
func LogMeal(db *sql.DB, userID int64, in LogMealInput) (model.Meal, error) {
	date, err := resolveDate(in.Date, in.Now)
	if err != nil {
		return model.Meal{}, err
	}
	mealType := normalizeName(in.MealType)
	if !validMealType(mealType) {
		return model.Meal{}, invalidf("invalid meal_type %q (use %s)", in.MealType, strings.Join(MealTypes(), ", "))
	}

	tx, err := db.Begin()
	if err != nil {
		return model.Meal{}, fmt.Errorf("begin log meal tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`INSERT INTO diet_meals(user_id, date, meal_type, meal_name, notes) VALUES(?, ?, ?, ?, ?)`,
		userID, date, mealType, strings.TrimSpace(in.MealName), strings.TrimSpace(in.Notes))
	if err != nil {
		return model.Meal{}, fmt.Errorf("insert meal: %w", err)
	}
	mealID, err := res.LastInsertId()
	if err != nil {
		return model.Meal{}, fmt.Errorf("resolve meal id: %w", err)
	}

	for i, item := range in.Items {
		if err := insertMealItem(tx, mealID, item); err != nil {
			return model.Meal{}, fmt.Errorf("item %d: %w", i+1, err)
		}
	}
	if err := recalcMealTotals(tx, mealID); err != nil {
		return model.Meal{}, err
	}

	meal, err := getMeal(tx, userID, mealID)
	if err != nil {
		return model.Meal{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Meal{}, fmt.Errorf("commit log meal: %w", err)
	}
	return meal, nil
}

func insertMealItem(exec sqlExecutor, mealID int64, in MealItemInput) error {
	name := strings.TrimSpace(in.FoodName)
	unit := strings.TrimSpace(in.ServingUnit)
	if in.FoodID != nil {
		food, err := getFood(exec, *in.FoodID)
		if err != nil {
			return err
		}
		if name == "" {
			name = food.FoodName
		}
		if unit == "" {
			unit = food.ServingUnit
		}
		if in.Calories == 0 && in.Protein == 0 && in.Carbs == 0 && in.Fat == 0 && in.Fiber == 0 {
			n, err := ScaleFood(food, in.Quantity, unit)
			if err != nil {
				return err
			}
			in.Calories, in.Protein, in.Carbs, in.Fat, in.Fiber = n.Calories, n.Protein, n.Carbs, n.Fat, n.Fiber
		}
	}
	if name == "" {
		return invalidf("food_name is required")
	}
	if in.Quantity <= 0 {
		return invalidf("quantity must be > 0")
	}
	for label, v := range map[string]float64{"calories": in.Calories, "protein": in.Protein, "carbs": in.Carbs, "fat": in.Fat, "fiber": in.Fiber} {
		if err := validateNonNegativeFloat(label, v); err != nil {
			return err
		}
	}
	if _, err := exec.Exec(`
INSERT INTO diet_meal_items(meal_id, food_id, food_name, quantity, serving_unit, calories, protein, carbs, fat, fiber)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`, mealID, in.FoodID, name, in.Quantity, unit, in.Calories, in.Protein, in.Carbs, in.Fat, in.Fiber); err != nil {
		return fmt.Errorf("insert meal item: %w", err)
	}
	return nil
}

func recalcMealTotals(exec sqlExecutor, mealID int64) error {
	_, err := exec.Exec(`
UPDATE diet_meals SET
  total_calories = (SELECT COALESCE(SUM(calories), 0) FROM diet_meal_items WHERE meal_id = diet_meals.id),
  total_protein = (SELECT COALESCE(SUM(protein), 0) FROM diet_meal_items WHERE meal_id = diet_meals.id),
  total_carbs = (SELECT COALESCE(SUM(carbs), 0) FROM diet_meal_items WHERE meal_id = diet_meals.id),
  total_fat = (SELECT COALESCE(SUM(fat), 0) FROM diet_meal_items WHERE meal_id = diet_meals.id),
  total_fiber = (SELECT COALESCE(SUM(fiber), 0) FROM diet_meal_items WHERE meal_id = diet_meals.id)
WHERE id = ?
`, mealID)
	if err != nil {
		return fmt.Errorf("recalculate meal %d totals: %w", mealID, err)
	}
	return nil
}

const mealColumns = `id, user_id, date, meal_type, meal_name, notes,
  total_calories, total_protein, total_carbs, total_fat, total_fiber, created_at`

func scanMeal(row rowScanner) (model.Meal, error) {
	var m model.Meal
	err := row.Scan(&m.ID, &m.UserID, &m.Date, &m.MealType, &m.MealName, &m.Notes,
		&m.TotalCalories, &m.TotalProtein, &m.TotalCarbs, &m.TotalFat, &m.TotalFiber, &m.CreatedAt)
	return m, err
}

func getMeal(exec sqlExecutor, userID, id int64) (model.Meal, error) {
	m, err := scanMeal(exec.QueryRow(`SELECT `+mealColumns+` FROM diet_meals WHERE id = ? AND user_id = ?`, id, userID))
	if err == sql.ErrNoRows {
		return model.Meal{}, notFoundf("meal %d", id)
	}
	if err != nil {
		return model.Meal{}, fmt.Errorf("get meal %d: %w", id, err)
	}
	if m.Items, err = listMealItems(exec, id); err != nil {
		return model.Meal{}, err
	}
	return m, nil
}

func listMealItems(exec sqlExecutor, mealID int64) ([]model.MealItem, error) {
	rows, err := exec.Query(`
SELECT id, meal_id, food_id, food_name, quantity, serving_unit, calories, protein, carbs, fat, fiber
FROM diet_meal_items WHERE meal_id = ? ORDER BY id ASC
`, mealID)
	if err != nil {
		return nil, fmt.Errorf("list meal items: %w", err)
	}
	defer rows.Close()
	out := make([]model.MealItem, 0)
	for rows.Next() {
		var it model.MealItem
		var foodID sql.NullInt64
		if err := rows.Scan(&it.ID, &it.MealID, &foodID, &it.FoodName, &it.Quantity, &it.ServingUnit,
			&it.Calories, &it.Protein, &it.Carbs, &it.Fat, &it.Fiber); err != nil {
			return nil, fmt.Errorf("scan meal item: %w", err)
		}
		it.FoodID = nullInt64(foodID)
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate meal items: %w", err)
	}
	return out, nil
}

// ListMeals returns meals for one date, or for the last Days days (default 7),
// newest first with their items.
func ListMeals(db *sql.DB, userID int64, f MealFilter) ([]model.Meal, error) {
	query := `SELECT ` + mealColumns + ` FROM diet_meals WHERE user_id = ?`
	args := []any{userID}
	if strings.TrimSpace(f.Date) != "" {
		date, err := resolveDate(f.Date, f.Now)
		if err != nil {
			return nil, err
		}
		query += ` AND date = ?`
		args = append(args, date)
	} else {
		days := f.Days
		if days <= 0 {
			days = 7
		}
		query += ` AND date >= ?`
		args = append(args, daysAgo(f.Now, days))
	}
	query += ` ORDER BY date DESC, created_at DESC, id DESC`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}
	meals := make([]model.Meal, 0)
	for rows.Next() {
		m, err := scanMeal(rows)
		if err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan meal: %w", err)
		}
		meals = append(meals, m)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("iterate meals: %w", err)
	}
	_ = rows.Close()

	// Items are loaded after the meal cursor is closed; the pool has one connection.
	for i := range meals {
		items, err := listMealItems(db, meals[i].ID)
		if err != nil {
			return nil, err
		}
		meals[i].Items = items
	}
	return meals, nil
}

func DeleteMeal(db *sql.DB, userID, id int64) error {
	res, err := db.Exec(`DELETE FROM diet_meals WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete meal %d: %w", id, err)
	}
	return affectedOrNotFound(res, "meal", id)
}
