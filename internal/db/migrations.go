package db

import (
	"database/sql"
	"fmt"
)

type migration struct {
	version int
	name    string
	sql     string
}

var migrations = []migration{
	{
		version: 1,
		name:    "initial_schema",
		sql: `
CREATE TABLE IF NOT EXISTS users (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  external_id TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'client' CHECK(role IN ('client', 'insurance', 'mnc')),
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS diet_health_profiles (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  user_id INTEGER NOT NULL UNIQUE,
  fasting_glucose REAL,
  hba1c REAL,
  total_cholesterol REAL,
  triglycerides REAL,
  hdl_cholesterol REAL,
  ldl_cholesterol REAL,
  blood_pressure TEXT NOT NULL DEFAULT '',
  known_conditions_json TEXT NOT NULL DEFAULT '[]',
  allergies_json TEXT NOT NULL DEFAULT '[]',
  diet_preference TEXT NOT NULL DEFAULT '',
  cuisine_preference_json TEXT NOT NULL DEFAULT '[]',
  height_cm REAL NOT NULL DEFAULT 0 CHECK(height_cm >= 0),
  weight_kg REAL NOT NULL DEFAULT 0 CHECK(weight_kg >= 0),
  age INTEGER NOT NULL DEFAULT 0 CHECK(age >= 0),
  gender TEXT NOT NULL DEFAULT '',
  activity_level TEXT NOT NULL DEFAULT '',
  goal TEXT NOT NULL DEFAULT '',
  target_weight_kg REAL,
  target_date TEXT NOT NULL DEFAULT '',
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS diet_plans (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  user_id INTEGER NOT NULL,
  plan_name TEXT NOT NULL,
  plan_type TEXT NOT NULL,
  daily_calories INTEGER NOT NULL CHECK(daily_calories >= 0),
  protein_g INTEGER NOT NULL CHECK(protein_g >= 0),
  carbs_g INTEGER NOT NULL CHECK(carbs_g >= 0),
  fat_g INTEGER NOT NULL CHECK(fat_g >= 0),
  fiber_g INTEGER NOT NULL CHECK(fiber_g >= 0),
  protein_percent INTEGER NOT NULL,
  carbs_percent INTEGER NOT NULL,
  fat_percent INTEGER NOT NULL,
  water_ml INTEGER NOT NULL DEFAULT 0,
  meal_timing_json TEXT NOT NULL DEFAULT '[]',
  special_instructions TEXT NOT NULL DEFAULT '',
  foods_to_avoid_json TEXT NOT NULL DEFAULT '[]',
  recommended_foods_json TEXT NOT NULL DEFAULT '[]',
  is_active INTEGER NOT NULL DEFAULT 0,
  start_date TEXT NOT NULL,
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_diet_plans_user_id ON diet_plans(user_id);
CREATE UNIQUE INDEX IF NOT EXISTS idx_diet_plans_one_active ON diet_plans(user_id) WHERE is_active = 1;
`,
	},
	{
		version: 2,
		name:    "food_database",
		sql: `
CREATE TABLE IF NOT EXISTS diet_foods (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  food_name TEXT NOT NULL,
  food_name_hindi TEXT NOT NULL DEFAULT '',
  category TEXT NOT NULL DEFAULT '',
  cuisine TEXT NOT NULL DEFAULT '',
  serving_size REAL NOT NULL DEFAULT 1 CHECK(serving_size > 0),
  serving_unit TEXT NOT NULL DEFAULT 'g',
  calories REAL NOT NULL CHECK(calories >= 0),
  protein REAL NOT NULL DEFAULT 0 CHECK(protein >= 0),
  carbs REAL NOT NULL DEFAULT 0 CHECK(carbs >= 0),
  fat REAL NOT NULL DEFAULT 0 CHECK(fat >= 0),
  fiber REAL NOT NULL DEFAULT 0 CHECK(fiber >= 0),
  sugar REAL NOT NULL DEFAULT 0 CHECK(sugar >= 0),
  sodium_mg REAL NOT NULL DEFAULT 0 CHECK(sodium_mg >= 0),
  is_vegetarian INTEGER NOT NULL DEFAULT 1,
  is_vegan INTEGER NOT NULL DEFAULT 0,
  is_gluten_free INTEGER NOT NULL DEFAULT 0,
  glycemic_index INTEGER,
  is_verified INTEGER NOT NULL DEFAULT 0,
  is_custom INTEGER NOT NULL DEFAULT 0,
  created_by INTEGER,
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(created_by) REFERENCES users(id) ON DELETE SET NULL
);

CREATE INDEX IF NOT EXISTS idx_diet_foods_category ON diet_foods(category);

CREATE TABLE IF NOT EXISTS diet_favorites (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  user_id INTEGER NOT NULL,
  food_id INTEGER NOT NULL,
  preferred_quantity REAL,
  preferred_unit TEXT NOT NULL DEFAULT '',
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(user_id, food_id),
  FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE,
  FOREIGN KEY(food_id) REFERENCES diet_foods(id) ON DELETE CASCADE
);
`,
	},
	{
		version: 3,
		name:    "meal_tracking",
		sql: `
CREATE TABLE IF NOT EXISTS diet_meals (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  user_id INTEGER NOT NULL,
  date TEXT NOT NULL,
  meal_type TEXT NOT NULL,
  meal_name TEXT NOT NULL DEFAULT '',
  notes TEXT NOT NULL DEFAULT '',
  total_calories REAL NOT NULL DEFAULT 0,
  total_protein REAL NOT NULL DEFAULT 0,
  total_carbs REAL NOT NULL DEFAULT 0,
  total_fat REAL NOT NULL DEFAULT 0,
  total_fiber REAL NOT NULL DEFAULT 0,
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_diet_meals_user_date ON diet_meals(user_id, date);

CREATE TABLE IF NOT EXISTS diet_meal_items (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  meal_id INTEGER NOT NULL,
  food_id INTEGER,
  food_name TEXT NOT NULL,
  quantity REAL NOT NULL CHECK(quantity > 0),
  serving_unit TEXT NOT NULL DEFAULT '',
  calories REAL NOT NULL DEFAULT 0 CHECK(calories >= 0),
  protein REAL NOT NULL DEFAULT 0 CHECK(protein >= 0),
  carbs REAL NOT NULL DEFAULT 0 CHECK(carbs >= 0),
  fat REAL NOT NULL DEFAULT 0 CHECK(fat >= 0),
  fiber REAL NOT NULL DEFAULT 0 CHECK(fiber >= 0),
  FOREIGN KEY(meal_id) REFERENCES diet_meals(id) ON DELETE CASCADE,
  FOREIGN KEY(food_id) REFERENCES diet_foods(id) ON DELETE SET NULL
);

CREATE INDEX IF NOT EXISTS idx_diet_meal_items_meal_id ON diet_meal_items(meal_id);
`,
	},
	{
		version: 4,
		name:    "water_and_weight",
		sql: `
CREATE TABLE IF NOT EXISTS diet_water_logs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  user_id INTEGER NOT NULL,
  date TEXT NOT NULL,
  amount_ml INTEGER NOT NULL DEFAULT 0 CHECK(amount_ml >= 0),
  goal_ml INTEGER NOT NULL CHECK(goal_ml > 0),
  glasses INTEGER NOT NULL DEFAULT 0,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(user_id, date),
  FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS diet_weight_logs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  user_id INTEGER NOT NULL,
  date TEXT NOT NULL,
  weight_kg REAL NOT NULL CHECK(weight_kg > 0),
  waist_cm REAL,
  chest_cm REAL,
  hip_cm REAL,
  arm_cm REAL,
  thigh_cm REAL,
  body_fat_percent REAL,
  bmi REAL,
  notes TEXT NOT NULL DEFAULT '',
  created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(user_id, date),
  FOREIGN KEY(user_id) REFERENCES users(id) ON DELETE CASCADE
);
`,
	},
	{
		version: 5,
		name:    "app_config",
		sql: `
CREATE TABLE IF NOT EXISTS app_config (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`,
	},
}

func ApplyMigrations(db *sql.DB) error {
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS schema_migrations (
  version INTEGER PRIMARY KEY,
  name TEXT NOT NULL,
  applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`); err != nil {
		return fmt.Errorf("ensure schema_migrations table: %w", err)
	}

	for _, m := range migrations {
		var exists int
		err := db.QueryRow(`SELECT 1 FROM schema_migrations WHERE version = ?`, m.version).Scan(&exists)
		if err == nil {
			continue
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("check migration version %d: %w", m.version, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration tx: %w", err)
		}
		if _, err := tx.Exec(m.sql); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply migration version %d (%s): %w", m.version, m.name, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations(version, name) VALUES(?, ?)`, m.version, m.name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record migration version %d: %w", m.version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration version %d: %w", m.version, err)
		}
	}

	return seedFoods(db)
}
