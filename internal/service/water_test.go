package service_test

import (
	"errors"
	"testing"

	"github.com/a3health/a3diet/internal/service"
)

func TestGetWaterEmptyDayUsesDefaultGoal(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	u := newTestUser(t, sqldb)

	w, err := service.GetWater(sqldb, u.ID, "", testNow)
	if err != nil {
		t.Fatalf("get water: %v", err)
	}
	if w.Date != "2026-03-10" || w.AmountML != 0 || w.GoalML != service.DefaultWaterGoalML {
		t.Fatalf("unexpected empty water log %+v", w)
	}
}

func TestLogWaterAccumulates(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	u := newTestUser(t, sqldb)

	w, err := service.LogWater(sqldb, u.ID, service.LogWaterInput{AddGlasses: 2, AddML: 999, Now: testNow})
	if err != nil {
		t.Fatalf("log glasses: %v", err)
	}
	if w.AmountML != 500 || w.Glasses != 2 || w.Percentage != 20 {
		t.Fatalf("expected glasses to win over add_ml, got %+v", w)
	}

	w, err = service.LogWater(sqldb, u.ID, service.LogWaterInput{AddML: 300, Now: testNow})
	if err != nil {
		t.Fatalf("log ml: %v", err)
	}
	if w.AmountML != 800 || w.Glasses != 3 || w.Percentage != 32 {
		t.Fatalf("unexpected accumulated log %+v", w)
	}

	w, err = service.LogWater(sqldb, u.ID, service.LogWaterInput{GoalML: 3000, Now: testNow})
	if err != nil {
		t.Fatalf("set goal: %v", err)
	}
	if w.AmountML != 800 || w.GoalML != 3000 || w.Percentage != 26.7 {
		t.Fatalf("unexpected log after goal change %+v", w)
	}

	if _, err := service.LogWater(sqldb, u.ID, service.LogWaterInput{AddML: -1, Now: testNow}); !errors.Is(err, service.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestWaterGoalPrefersActivePlanThenConfig(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	u := newTestUser(t, sqldb)

	if err := service.SetConfig(sqldb, service.ConfigWaterGoalML, "3200"); err != nil {
		t.Fatalf("set config: %v", err)
	}
	w, err := service.GetWater(sqldb, u.ID, "", testNow)
	if err != nil {
		t.Fatalf("get water: %v", err)
	}
	if w.GoalML != 3200 {
		t.Fatalf("expected configured goal, got %d", w.GoalML)
	}

	if _, err := service.GeneratePlan(sqldb, u.ID, fullGenerateInput()); err != nil {
		t.Fatalf("generate plan: %v", err)
	}
	w, err = service.GetWater(sqldb, u.ID, "", testNow)
	if err != nil {
		t.Fatalf("get water: %v", err)
	}
	if w.GoalML != 2800 {
		t.Fatalf("expected plan goal 80kg*35ml, got %d", w.GoalML)
	}
}

func TestWaterPercentage(t *testing.T) {
	t.Parallel()
	if got := service.WaterPercentage(1000, 0); got != 0 {
		t.Fatalf("expected 0 with no goal, got %v", got)
	}
	if got := service.WaterPercentage(3000, 2500); got != 120 {
		t.Fatalf("expected 120, got %v", got)
	}
}
