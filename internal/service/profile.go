package service

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/a3health/a3diet/internal/model"
)

// ProfileInput replaces the whole stored profile.
type ProfileInput struct {
	FastingGlucose    *float64 `json:"fasting_glucose"`
	HbA1c             *float64 `json:"hba1c"`
	TotalCholesterol  *float64 `json:"total_cholesterol"`
	Triglycerides     *float64 `json:"triglycerides"`
	HDLCholesterol    *float64 `json:"hdl_cholesterol"`
	LDLCholesterol    *float64 `json:"ldl_cholesterol"`
	BloodPressure     string   `json:"blood_pressure"`
	KnownConditions   []string `json:"known_conditions"`
	Allergies         []string `json:"allergies"`
	DietPreference    string   `json:"diet_preference"`
	CuisinePreference []string `json:"cuisine_preference"`
	HeightCM          float64  `json:"height_cm"`
	WeightKG          float64  `json:"weight_kg"`
	Age               int      `json:"age"`
	Gender            string   `json:"gender"`
	ActivityLevel     string   `json:"activity_level"`
	Goal              string   `json:"goal"`
	TargetWeightKG    *float64 `json:"target_weight_kg"`
	TargetDate        string   `json:"target_date"`
}

func SaveProfile(db *sql.DB, userID int64, in ProfileInput) (model.HealthProfile, error) {
	p := model.HealthProfile{
		UserID:            userID,
		FastingGlucose:    in.FastingGlucose,
		HbA1c:             in.HbA1c,
		TotalCholesterol:  in.TotalCholesterol,
		Triglycerides:     in.Triglycerides,
		HDLCholesterol:    in.HDLCholesterol,
		LDLCholesterol:    in.LDLCholesterol,
		BloodPressure:     strings.TrimSpace(in.BloodPressure),
		KnownConditions:   cleanList(in.KnownConditions),
		Allergies:         cleanList(in.Allergies),
		DietPreference:    strings.TrimSpace(in.DietPreference),
		CuisinePreference: cleanList(in.CuisinePreference),
		HeightCM:          in.HeightCM,
		WeightKG:          in.WeightKG,
		Age:               in.Age,
		Gender:            strings.TrimSpace(in.Gender),
		ActivityLevel:     strings.TrimSpace(in.ActivityLevel),
		Goal:              strings.TrimSpace(in.Goal),
		TargetWeightKG:    in.TargetWeightKG,
		TargetDate:        strings.TrimSpace(in.TargetDate),
	}
	if err := upsertProfile(db, p); err != nil {
		return model.HealthProfile{}, err
	}
	saved, err := getProfile(db, userID)
	if err != nil {
		return model.HealthProfile{}, err
	}
	return *saved, nil
}

// GetProfile returns nil when the user has not saved a profile yet.
func GetProfile(db *sql.DB, userID int64) (*model.HealthProfile, error) {
	return getProfile(db, userID)
}

func validateProfile(p model.HealthProfile) error {
	if p.Age < 0 {
		return invalidf("age must be >= 0")
	}
	for name, v := range map[string]float64{"height_cm": p.HeightCM, "weight_kg": p.WeightKG} {
		if err := validateNonNegativeFloat(name, v); err != nil {
			return err
		}
	}
	labs := map[string]*float64{
		"fasting_glucose":   p.FastingGlucose,
		"hba1c":             p.HbA1c,
		"total_cholesterol": p.TotalCholesterol,
		"triglycerides":     p.Triglycerides,
		"hdl_cholesterol":   p.HDLCholesterol,
		"ldl_cholesterol":   p.LDLCholesterol,
		"target_weight_kg":  p.TargetWeightKG,
	}
	for name, v := range labs {
		if err := validateOptionalNonNegative(name, v); err != nil {
			return err
		}
	}
	if p.TargetDate != "" {
		if _, err := time.Parse(dateLayout, p.TargetDate); err != nil {
			return invalidf("invalid target_date %q, expected YYYY-MM-DD", p.TargetDate)
		}
	}
	return nil
}

func upsertProfile(exec sqlExecutor, p model.HealthProfile) error {
	if err := validateProfile(p); err != nil {
		return err
	}
	conditions, err := encodeList(p.KnownConditions)
	if err != nil {
		return err
	}
	allergies, err := encodeList(p.Allergies)
	if err != nil {
		return err
	}
	cuisines, err := encodeList(p.CuisinePreference)
	if err != nil {
		return err
	}
	_, err = exec.Exec(`
INSERT INTO diet_health_profiles(
  user_id, fasting_glucose, hba1c, total_cholesterol, triglycerides, hdl_cholesterol, ldl_cholesterol,
  blood_pressure, known_conditions_json, allergies_json, diet_preference, cuisine_preference_json,
  height_cm, weight_kg, age, gender, activity_level, goal, target_weight_kg, target_date
) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(user_id) DO UPDATE SET
  fasting_glucose=excluded.fasting_glucose,
  hba1c=excluded.hba1c,
  total_cholesterol=excluded.total_cholesterol,
  triglycerides=excluded.triglycerides,
  hdl_cholesterol=excluded.hdl_cholesterol,
  ldl_cholesterol=excluded.ldl_cholesterol,
  blood_pressure=excluded.blood_pressure,
  known_conditions_json=excluded.known_conditions_json,
  allergies_json=excluded.allergies_json,
  diet_preference=excluded.diet_preference,
  cuisine_preference_json=excluded.cuisine_preference_json,
  height_cm=excluded.height_cm,
  weight_kg=excluded.weight_kg,
  age=excluded.age,
  gender=excluded.gender,
  activity_level=excluded.activity_level,
  goal=excluded.goal,
  target_weight_kg=excluded.target_weight_kg,
  target_date=excluded.target_date,
  updated_at=CURRENT_TIMESTAMP
`, p.UserID, p.FastingGlucose, p.HbA1c, p.TotalCholesterol, p.Triglycerides, p.HDLCholesterol, p.LDLCholesterol,
		p.BloodPressure, conditions, allergies, p.DietPreference, cuisines,
		p.HeightCM, p.WeightKG, p.Age, p.Gender, p.ActivityLevel, p.Goal, p.TargetWeightKG, p.TargetDate)
	if err != nil {
		return fmt.Errorf("save health profile for user %d: %w", p.UserID, err)
	}
	return nil
}

func getProfile(exec sqlExecutor, userID int64) (*model.HealthProfile, error) {
	var (
		p                                 model.HealthProfile
		glucose, hba1c, chol, trig        sql.NullFloat64
		hdl, ldl, targetWeight            sql.NullFloat64
		conditions, allergies, cuisineRaw string
	)
	err := exec.QueryRow(`
SELECT id, user_id, fasting_glucose, hba1c, total_cholesterol, triglycerides, hdl_cholesterol, ldl_cholesterol,
  blood_pressure, known_conditions_json, allergies_json, diet_preference, cuisine_preference_json,
  height_cm, weight_kg, age, gender, activity_level, goal, target_weight_kg, target_date, created_at, updated_at
FROM diet_health_profiles WHERE user_id = ?
`, userID).Scan(&p.ID, &p.UserID, &glucose, &hba1c, &chol, &trig, &hdl, &ldl,
		&p.BloodPressure, &conditions, &allergies, &p.DietPreference, &cuisineRaw,
		&p.HeightCM, &p.WeightKG, &p.Age, &p.Gender, &p.ActivityLevel, &p.Goal, &targetWeight, &p.TargetDate,
		&p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get health profile for user %d: %w", userID, err)
	}
	p.FastingGlucose = nullFloat(glucose)
	p.HbA1c = nullFloat(hba1c)
	p.TotalCholesterol = nullFloat(chol)
	p.Triglycerides = nullFloat(trig)
	p.HDLCholesterol = nullFloat(hdl)
	p.LDLCholesterol = nullFloat(ldl)
	p.TargetWeightKG = nullFloat(targetWeight)
	if p.KnownConditions, err = decodeList(conditions); err != nil {
		return nil, fmt.Errorf("known conditions for user %d: %w", userID, err)
	}
	if p.Allergies, err = decodeList(allergies); err != nil {
		return nil, fmt.Errorf("allergies for user %d: %w", userID, err)
	}
	if p.CuisinePreference, err = decodeList(cuisineRaw); err != nil {
		return nil, fmt.Errorf("cuisine preference for user %d: %w", userID, err)
	}
	return &p, nil
}
