package service

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/a3health/a3diet/internal/model"
)

const (
	defaultFoodSearchLimit = 20
	maxFoodSearchLimit     = 200
)

type FoodSearch struct {
	Query          string
	Category       string
	Cuisine        string
	VegetarianOnly bool
	Limit          int
}

type CustomFoodInput struct {
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
	IsVegetarian  *bool   `json:"is_vegetarian"`
	IsVegan       bool    `json:"is_vegan"`
	IsGlutenFree  bool    `json:"is_gluten_free"`
	GlycemicIndex *int    `json:"glycemic_index"`
}

const foodColumns = `id, food_name, food_name_hindi, category, cuisine, serving_size, serving_unit,
  calories, protein, carbs, fat, fiber, sugar, sodium_mg, is_vegetarian, is_vegan, is_gluten_free,
  glycemic_index, is_verified, is_custom, created_by`

func scanFood(row rowScanner) (model.Food, error) {
	var (
		f                model.Food
		veg, vegan, gf   int
		verified, custom int
		gi, createdBy    sql.NullInt64
	)
	if err := row.Scan(&f.ID, &f.FoodName, &f.FoodNameHindi, &f.Category, &f.Cuisine, &f.ServingSize, &f.ServingUnit,
		&f.Calories, &f.Protein, &f.Carbs, &f.Fat, &f.Fiber, &f.Sugar, &f.SodiumMG, &veg, &vegan, &gf,
		&gi, &verified, &custom, &createdBy); err != nil {
		return model.Food{}, err
	}
	f.IsVegetarian = veg == 1
	f.IsVegan = vegan == 1
	f.IsGlutenFree = gf == 1
	f.IsVerified = verified == 1
	f.IsCustom = custom == 1
	if gi.Valid {
		v := int(gi.Int64)
		f.GlycemicIndex = &v
	}
	f.CreatedBy = nullInt64(createdBy)
	return f, nil
}

// SearchFoods matches the English or Hindi name case-insensitively and
// narrows by the optional filters.
func SearchFoods(db *sql.DB, s FoodSearch) ([]model.Food, error) {
	query := `SELECT ` + foodColumns + ` FROM diet_foods WHERE 1=1`
	args := make([]any, 0)
	if q := normalizeName(s.Query); q != "" {
		pattern := "%" + escapeLike(q) + "%"
		query += ` AND (LOWER(food_name) LIKE ? ESCAPE '\' OR LOWER(food_name_hindi) LIKE ? ESCAPE '\')`
		args = append(args, pattern, pattern)
	}
	if c := strings.TrimSpace(s.Category); c != "" {
		query += ` AND category = ? COLLATE NOCASE`
		args = append(args, c)
	}
	if c := strings.TrimSpace(s.Cuisine); c != "" {
		query += ` AND cuisine = ? COLLATE NOCASE`
		args = append(args, c)
	}
	if s.VegetarianOnly {
		query += ` AND is_vegetarian = 1`
	}
	limit := s.Limit
	if limit <= 0 {
		limit = defaultFoodSearchLimit
	}
	if limit > maxFoodSearchLimit {
		limit = maxFoodSearchLimit
	}
	query += ` ORDER BY is_custom ASC, food_name ASC, id ASC LIMIT ?`
	args = append(args, limit)

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("search foods: %w", err)
	}
	defer rows.Close()
	out := make([]model.Food, 0)
	for rows.Next() {
		f, err := scanFood(rows)
		if err != nil {
			return nil, fmt.Errorf("scan food: %w", err)
		}
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate foods: %w", err)
	}
	return out, nil
}

func escapeLike(v string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(v)
}

func GetFood(db *sql.DB, id int64) (model.Food, error) {
	return getFood(db, id)
}

func getFood(exec sqlExecutor, id int64) (model.Food, error) {
	f, err := scanFood(exec.QueryRow(`SELECT `+foodColumns+` FROM diet_foods WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return model.Food{}, notFoundf("food %d", id)
	}
	if err != nil {
		return model.Food{}, fmt.Errorf("get food %d: %w", id, err)
	}
	return f, nil
}

func FoodCategories(db *sql.DB) ([]model.FoodCategory, error) {
	rows, err := db.Query(`SELECT category, COUNT(1) FROM diet_foods WHERE category <> '' GROUP BY category ORDER BY category ASC`)
	if err != nil {
		return nil, fmt.Errorf("list food categories: %w", err)
	}
	defer rows.Close()
	out := make([]model.FoodCategory, 0)
	for rows.Next() {
		var c model.FoodCategory
		if err := rows.Scan(&c.Name, &c.Count); err != nil {
			return nil, fmt.Errorf("scan food category: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate food categories: %w", err)
	}
	return out, nil
}

// AddCustomFood stores an unverified food owned by userID.
func AddCustomFood(db *sql.DB, userID int64, in CustomFoodInput) (model.Food, error) {
	name := strings.TrimSpace(in.FoodName)
	if name == "" {
		return model.Food{}, invalidf("food_name is required")
	}
	nutrients := []struct {
		name  string
		value float64
	}{
		{"serving_size", in.ServingSize}, {"calories", in.Calories}, {"protein", in.Protein}, {"carbs", in.Carbs},
		{"fat", in.Fat}, {"fiber", in.Fiber}, {"sugar", in.Sugar}, {"sodium_mg", in.SodiumMG},
	}
	for _, n := range nutrients {
		if err := validateNonNegativeFloat(n.name, n.value); err != nil {
			return model.Food{}, err
		}
	}
	if in.GlycemicIndex != nil && (*in.GlycemicIndex < 0 || *in.GlycemicIndex > 100) {
		return model.Food{}, invalidf("glycemic_index must be between 0 and 100")
	}
	servingSize := in.ServingSize
	if servingSize == 0 {
		servingSize = 1
	}
	unit := strings.TrimSpace(in.ServingUnit)
	if unit == "" {
		unit = "g"
	}
	vegetarian := true
	if in.IsVegetarian != nil {
		vegetarian = *in.IsVegetarian
	}

	res, err := db.Exec(`
INSERT INTO diet_foods(
  food_name, food_name_hindi, category, cuisine, serving_size, serving_unit,
  calories, protein, carbs, fat, fiber, sugar, sodium_mg,
  is_vegetarian, is_vegan, is_gluten_free, glycemic_index, is_verified, is_custom, created_by
) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, 1, ?)
`, name, strings.TrimSpace(in.FoodNameHindi), strings.TrimSpace(in.Category), strings.TrimSpace(in.Cuisine), servingSize, unit,
		in.Calories, in.Protein, in.Carbs, in.Fat, in.Fiber, in.Sugar, in.SodiumMG,
		boolToInt(vegetarian), boolToInt(in.IsVegan), boolToInt(in.IsGlutenFree), in.GlycemicIndex, userID)
	if err != nil {
		return model.Food{}, fmt.Errorf("add custom food: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Food{}, fmt.Errorf("resolve food id: %w", err)
	}
	return getFood(db, id)
}
