package db

import (
	"database/sql"
	"fmt"
)

type seedFood struct {
	name, hindi, category, cuisine string
	servingSize                    float64
	servingUnit                    string
	calories, protein, carbs, fat  float64
	fiber, sugar, sodiumMG         float64
	vegetarian, vegan, glutenFree  bool
	glycemicIndex                  int
}

// referenceFoods is loaded into diet_foods the first time the table is empty.
// A glycemic index of 0 means unknown and is stored as NULL.
var referenceFoods = []seedFood{
	{"Roti (Wheat)", "रोटी", "Grains", "Indian", 1, "piece", 71, 2.7, 15, 0.4, 1.9, 0.4, 1, true, true, false, 62},
	{"Rice (Cooked)", "चावल", "Grains", "Indian", 100, "g", 130, 2.7, 28, 0.3, 0.4, 0, 1, true, true, true, 73},
	{"Brown Rice", "ब्राउन राइस", "Grains", "Indian", 100, "g", 111, 2.6, 23, 0.9, 1.8, 0, 5, true, true, true, 50},
	{"Paratha", "पराठा", "Grains", "Indian", 1, "piece", 150, 4, 20, 6, 2, 0.5, 200, true, true, false, 55},
	{"Poha", "पोहा", "Grains", "Indian", 100, "g", 110, 2.5, 23, 0.5, 0.8, 1, 15, true, true, true, 64},
	{"Idli", "इडली", "Grains", "Indian", 1, "piece", 39, 2, 8, 0.1, 0.4, 0.3, 50, true, true, true, 55},
	{"Dosa", "डोसा", "Grains", "Indian", 1, "piece", 133, 3.9, 18, 5, 0.9, 1, 120, true, true, true, 60},
	{"Dal (Masoor)", "मसूर दाल", "Pulses", "Indian", 100, "g", 116, 9, 20, 0.4, 7.9, 2, 2, true, true, true, 30},
	{"Dal (Moong)", "मूंग दाल", "Pulses", "Indian", 100, "g", 105, 7, 18, 0.4, 5, 2, 2, true, true, true, 28},
	{"Dal (Toor)", "तूर दाल", "Pulses", "Indian", 100, "g", 128, 8, 22, 0.6, 5.2, 3, 5, true, true, true, 32},
	{"Rajma", "राजमा", "Pulses", "Indian", 100, "g", 127, 8.7, 23, 0.5, 6.4, 0.3, 2, true, true, true, 29},
	{"Chole", "छोले", "Pulses", "Indian", 100, "g", 164, 8.9, 27, 2.6, 7.6, 4.8, 7, true, true, true, 28},
	{"Paneer", "पनीर", "Dairy", "Indian", 100, "g", 265, 18.3, 1.2, 20.8, 0, 0.5, 20, true, false, true, 27},
	{"Curd (Dahi)", "दही", "Dairy", "Indian", 100, "g", 61, 3.5, 4.7, 3.3, 0, 4.7, 46, true, false, true, 35},
	{"Palak (Spinach)", "पालक", "Vegetables", "Indian", 100, "g", 23, 2.9, 3.6, 0.4, 2.2, 0.4, 79, true, true, true, 15},
	{"Bhindi (Okra)", "भिंडी", "Vegetables", "Indian", 100, "g", 33, 1.9, 7, 0.2, 3.2, 1.5, 7, true, true, true, 20},
	{"Gobi (Cauliflower)", "गोभी", "Vegetables", "Indian", 100, "g", 25, 1.9, 5, 0.3, 2, 1.9, 30, true, true, true, 15},
	{"Aloo Sabzi", "आलू सब्ज़ी", "Vegetables", "Indian", 100, "g", 97, 2, 13, 4, 1.5, 1, 250, true, true, true, 65},
	{"Chicken Curry", "चिकन करी", "Non-Veg", "Indian", 100, "g", 165, 25, 4, 6, 0.5, 1.5, 450, false, false, true, 0},
	{"Egg Curry", "अंडा करी", "Non-Veg", "Indian", 1, "egg", 155, 12, 3, 11, 0, 1, 350, false, false, true, 0},
	{"Banana", "केला", "Fruits", "General", 1, "medium", 105, 1.3, 27, 0.4, 3.1, 14, 1, true, true, true, 51},
	{"Apple", "सेब", "Fruits", "General", 1, "medium", 95, 0.5, 25, 0.3, 4.4, 19, 2, true, true, true, 36},
	{"Mango", "आम", "Fruits", "Indian", 100, "g", 60, 0.8, 15, 0.4, 1.6, 14, 1, true, true, true, 51},
	{"Orange", "संतरा", "Fruits", "General", 1, "medium", 62, 1.2, 15, 0.2, 3.1, 12, 0, true, true, true, 43},
	{"Almonds", "बादाम", "Nuts", "General", 28, "g", 164, 6, 6, 14, 3.5, 1.2, 0, true, true, true, 15},
	{"Walnuts", "अखरोट", "Nuts", "General", 28, "g", 185, 4.3, 3.9, 18.5, 1.9, 0.7, 1, true, true, true, 15},
	{"Chai (Milk Tea)", "चाय", "Beverages", "Indian", 150, "ml", 50, 1.5, 7, 1.5, 0, 6, 25, true, false, true, 40},
	{"Green Tea", "ग्रीन टी", "Beverages", "General", 150, "ml", 2, 0, 0, 0, 0, 0, 2, true, true, true, 0},
	{"Oatmeal", "दलिया", "Grains", "International", 100, "g", 68, 2.4, 12, 1.4, 1.7, 0.5, 49, true, true, true, 55},
	{"Eggs (Boiled)", "उबले अंडे", "Proteins", "International", 1, "large", 78, 6, 0.6, 5, 0, 0.6, 62, false, false, true, 0},
	{"Chicken Breast", "चिकन ब्रेस्ट", "Proteins", "International", 100, "g", 165, 31, 0, 3.6, 0, 0, 74, false, false, true, 0},
	{"Samosa", "समोसा", "Snacks", "Indian", 1, "piece", 262, 4, 24, 17, 2, 2, 300, true, true, false, 70},
	{"Gulab Jamun", "गुलाब जामुन", "Sweets", "Indian", 1, "piece", 150, 2, 22, 6, 0, 18, 50, true, false, true, 75},
}

// ReferenceFoodCount is the number of foods seeded into an empty database.
func ReferenceFoodCount() int {
	return len(referenceFoods)
}

func seedFoods(db *sql.DB) error {
	var count int
	if err := db.QueryRow(`SELECT COUNT(1) FROM diet_foods`).Scan(&count); err != nil {
		return fmt.Errorf("count foods: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin food seed tx: %w", err)
	}
	for _, f := range referenceFoods {
		var gi any
		if f.glycemicIndex > 0 {
			gi = f.glycemicIndex
		}
		if _, err := tx.Exec(`
INSERT INTO diet_foods(
  food_name, food_name_hindi, category, cuisine, serving_size, serving_unit,
  calories, protein, carbs, fat, fiber, sugar, sodium_mg,
  is_vegetarian, is_vegan, is_gluten_free, glycemic_index, is_verified, is_custom
) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 1, 0)
`, f.name, f.hindi, f.category, f.cuisine, f.servingSize, f.servingUnit,
			f.calories, f.protein, f.carbs, f.fat, f.fiber, f.sugar, f.sodiumMG,
			boolToInt(f.vegetarian), boolToInt(f.vegan), boolToInt(f.glutenFree), gi); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("seed food %s: %w", f.name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit food seed: %w", err)
	}
	return nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
