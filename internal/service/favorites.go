package service

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/a3health/a3diet/internal/model"
)

type FavoriteInput struct {
	FoodID            int64    `json:"food_id"`
	PreferredQuantity *float64 `json:"preferred_quantity"`
	PreferredUnit     string   `json:"preferred_unit"`
}

// AddFavorite is idempotent. added is false when the food was already a
// favorite, in which case the stored preferences are left alone.
func AddFavorite(db *sql.DB, userID int64, in FavoriteInput) (added bool, err error) {
	if in.FoodID <= 0 {
		return false, invalidf("food_id is required")
	}
	if err := validateOptionalNonNegative("preferred_quantity", in.PreferredQuantity); err != nil {
		return false, err
	}
	if _, err := getFood(db, in.FoodID); err != nil {
		return false, err
	}
	res, err := db.Exec(`
INSERT INTO diet_favorites(user_id, food_id, preferred_quantity, preferred_unit)
VALUES(?, ?, ?, ?)
ON CONFLICT(user_id, food_id) DO NOTHING
`, userID, in.FoodID, in.PreferredQuantity, strings.TrimSpace(in.PreferredUnit))
	if err != nil {
		return false, fmt.Errorf("add favorite food %d: %w", in.FoodID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("read rows affected for favorite: %w", err)
	}
	return affected > 0, nil
}

func ListFavorites(db *sql.DB, userID int64) ([]model.Favorite, error) {
	rows, err := db.Query(`
SELECT id, food_id, preferred_quantity, preferred_unit, created_at
FROM diet_favorites WHERE user_id = ? ORDER BY created_at DESC, id DESC
`, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	favorites := make([]model.Favorite, 0)
	for rows.Next() {
		var f model.Favorite
		var qty sql.NullFloat64
		if err := rows.Scan(&f.ID, &f.FoodID, &qty, &f.PreferredUnit, &f.CreatedAt); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		f.PreferredQuantity = nullFloat(qty)
		favorites = append(favorites, f)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("iterate favorites: %w", err)
	}
	_ = rows.Close()

	for i := range favorites {
		food, err := getFood(db, favorites[i].FoodID)
		if err != nil {
			return nil, err
		}
		favorites[i].Food = food
	}
	return favorites, nil
}

// RemoveFavorite succeeds whether or not the food was a favorite.
func RemoveFavorite(db *sql.DB, userID, foodID int64) error {
	if _, err := db.Exec(`DELETE FROM diet_favorites WHERE user_id = ? AND food_id = ?`, userID, foodID); err != nil {
		return fmt.Errorf("remove favorite food %d: %w", foodID, err)
	}
	return nil
}
