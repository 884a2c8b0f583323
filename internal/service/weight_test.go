package service_test

import (
	"errors"
	"math"
	"testing"

	"github.com/a3health/a3diet/internal/service"
)

func TestLogWeightDerivesBMIFromProfileHeight(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	u := newTestUser(t, sqldb)

	w, err := service.LogWeight(sqldb, u.ID, service.LogWeightInput{WeightKG: 80, Now: testNow})
	if err != nil {
		t.Fatalf("log weight without profile: %v", err)
	}
	if w.BMI != nil {
		t.Fatalf("expected no bmi without height, got %v", *w.BMI)
	}

	if _, err := service.SaveProfile(sqldb, u.ID, service.ProfileInput{HeightCM: 175}); err != nil {
		t.Fatalf("save profile: %v", err)
	}
	w, err = service.LogWeight(sqldb, u.ID, service.LogWeightInput{WeightKG: 80, WaistCM: ptr(90.0), Now: testNow})
	if err != nil {
		t.Fatalf("log weight: %v", err)
	}
	if w.BMI == nil || *w.BMI != 26.1 {
		t.Fatalf("expected bmi 26.1, got %v", w.BMI)
	}
	if w.WaistCM == nil || *w.WaistCM != 90 {
		t.Fatalf("expected waist 90, got %v", w.WaistCM)
	}

	logs, err := service.ListWeights(sqldb, u.ID, service.WeightFilter{Now: testNow})
	if err != nil {
		t.Fatalf("list weights: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("expected same-day entry replaced, got %d entries", len(logs))
	}
}

func TestLogWeightConvertsPounds(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	u := newTestUser(t, sqldb)

	w, err := service.LogWeight(sqldb, u.ID, service.LogWeightInput{Weight: 176.37, Unit: "lb", Now: testNow})
	if err != nil {
		t.Fatalf("log weight: %v", err)
	}
	if math.Abs(w.WeightKG-80) > 0.01 {
		t.Fatalf("expected ~80kg, got %v", w.WeightKG)
	}
	back, err := service.WeightFromKg(w.WeightKG, "lbs")
	if err != nil {
		t.Fatalf("convert back: %v", err)
	}
	if math.Abs(back-176.37) > 0.001 {
		t.Fatalf("expected 176.37 lb, got %v", back)
	}
}

func TestLogWeightRejectsBadValues(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	u := newTestUser(t, sqldb)

	cases := []service.LogWeightInput{
		{},
		{Weight: 70, Unit: "stone"},
		{WeightKG: 70, BodyFatPercent: ptr(120.0)},
		{WeightKG: 70, HipCM: ptr(-2.0)},
		{WeightKG: 70, Date: "yesterday"},
	}
	for _, in := range cases {
		in.Now = testNow
		if _, err := service.LogWeight(sqldb, u.ID, in); !errors.Is(err, service.ErrInvalidInput) {
			t.Fatalf("expected invalid input for %+v, got %v", in, err)
		}
	}
}

func TestListWeightsWindowNewestFirst(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	u := newTestUser(t, sqldb)

	for date, kg := range map[string]float64{"2026-03-10": 79, "2026-03-01": 80, "2026-01-01": 83} {
		if _, err := service.LogWeight(sqldb, u.ID, service.LogWeightInput{Date: date, WeightKG: kg, Now: testNow}); err != nil {
			t.Fatalf("log %s: %v", date, err)
		}
	}
	logs, err := service.ListWeights(sqldb, u.ID, service.WeightFilter{Now: testNow})
	if err != nil {
		t.Fatalf("list weights: %v", err)
	}
	if len(logs) != 2 || logs[0].Date != "2026-03-10" || logs[1].WeightKG != 80 {
		t.Fatalf("unexpected weight logs %+v", logs)
	}
}

func TestBMI(t *testing.T) {
	t.Parallel()
	if got := service.BMI(65, 165); got != 23.9 {
		t.Fatalf("expected 23.9, got %v", got)
	}
}
