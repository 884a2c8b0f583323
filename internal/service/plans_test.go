package service_test

import (
	"database/sql"
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/a3health/a3diet/internal/planner"
	"github.com/a3health/a3diet/internal/service"
)

func fullGenerateInput() service.GeneratePlanInput {
	return service.GeneratePlanInput{
		HeightCM:        ptr(175.0),
		WeightKG:        ptr(80.0),
		Age:             ptr(40.0),
		Gender:          ptr("male"),
		ActivityLevel:   ptr("moderate"),
		Goal:            ptr("weight_loss"),
		KnownConditions: []string{"hypertension"},
		Now:             testNow,
	}
}

func countActivePlans(t *testing.T, sqldb *sql.DB, userID int64) int {
	t.Helper()
	var n int
	if err := sqldb.QueryRow(`SELECT COUNT(1) FROM diet_plans WHERE user_id = ? AND is_active = 1`, userID).Scan(&n); err != nil {
		t.Fatalf("count active plans: %v", err)
	}
	return n
}

func TestGeneratePlanStoresActivePlanAndProfile(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	u := newTestUser(t, sqldb)

	out, err := service.GeneratePlan(sqldb, u.ID, fullGenerateInput())
	if err != nil {
		t.Fatalf("generate plan: %v", err)
	}
	plan := out.Plan
	if plan.DailyCalories != 2133 || plan.ProteinG != 133 || plan.CarbsG != 267 || plan.FatG != 59 || plan.FiberG != 30 {
		t.Fatalf("unexpected plan %+v", plan)
	}
	if !plan.IsActive || plan.StartDate != "2026-03-10" {
		t.Fatalf("expected active plan starting today, got active=%v start=%s", plan.IsActive, plan.StartDate)
	}
	if plan.PlanName != "Weight Loss Plan - Mar 2026" || plan.PlanType != "weight_loss" {
		t.Fatalf("unexpected name/type %q/%q", plan.PlanName, plan.PlanType)
	}
	if len(plan.MealTiming) != 5 || len(plan.SpecialInstructions) != 3 || len(plan.FoodsToAvoid) == 0 {
		t.Fatalf("expected timing and hypertension guidance, got %+v", plan)
	}
	if out.Calculation.TDEE != 2633 || out.Calculation.GoalAdjustment != -500 {
		t.Fatalf("unexpected calculation %+v", out.Calculation)
	}

	profile, err := service.GetProfile(sqldb, u.ID)
	if err != nil || profile == nil {
		t.Fatalf("expected stored profile, got %v (%v)", profile, err)
	}
	if profile.HeightCM != 175 || profile.Goal != "weight_loss" || len(profile.KnownConditions) != 1 {
		t.Fatalf("unexpected profile %+v", profile)
	}
}

func TestGeneratePlanMergesStoredProfile(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	u := newTestUser(t, sqldb)

	if _, err := service.SaveProfile(sqldb, u.ID, service.ProfileInput{
		HeightCM: 165, WeightKG: 65, Age: 30, Gender: "female", ActivityLevel: "sedentary", Goal: "maintain",
		Allergies: []string{"shellfish"}, HbA1c: ptr(7.1),
	}); err != nil {
		t.Fatalf("save profile: %v", err)
	}

	out, err := service.GeneratePlan(sqldb, u.ID, service.GeneratePlanInput{Goal: ptr("weight_gain"), Now: testNow})
	if err != nil {
		t.Fatalf("generate plan: %v", err)
	}
	if out.Plan.DailyCalories != 1944 {
		t.Fatalf("expected 1644+300 kcal, got %d", out.Plan.DailyCalories)
	}

	profile, err := service.GetProfile(sqldb, u.ID)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if profile.Goal != "weight_gain" {
		t.Fatalf("expected goal updated, got %q", profile.Goal)
	}
	if len(profile.Allergies) != 1 {
		t.Fatalf("expected allergies kept when omitted, got %#v", profile.Allergies)
	}
	if profile.HbA1c != nil {
		t.Fatalf("expected lab value cleared when omitted, got %v", *profile.HbA1c)
	}
}

func TestGeneratePlanValidationWritesNothing(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	u := newTestUser(t, sqldb)

	_, err := service.GeneratePlan(sqldb, u.ID, service.GeneratePlanInput{Age: ptr(30.0), Gender: ptr("female"), Now: testNow})
	var verr *planner.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err.Error() != "Missing required fields: height_cm, weight_kg, activity_level" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	profile, err := service.GetProfile(sqldb, u.ID)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if profile != nil {
		t.Fatalf("expected no profile written, got %+v", profile)
	}
	plans, err := service.ListPlans(sqldb, u.ID)
	if err != nil {
		t.Fatalf("list plans: %v", err)
	}
	if len(plans) != 0 {
		t.Fatalf("expected no plans, got %d", len(plans))
	}
}

func TestGeneratePlanAgeMustBeWholeYears(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	u := newTestUser(t, sqldb)

	in := fullGenerateInput()
	in.Age = ptr(40.0)
	out, err := service.GeneratePlan(sqldb, u.ID, in)
	if err != nil {
		t.Fatalf("generate plan with 40.0: %v", err)
	}
	if out.Plan.DailyCalories != 2133 {
		t.Fatalf("expected 2133 kcal, got %d", out.Plan.DailyCalories)
	}

	for _, age := range []float64{30.5, math.NaN(), math.Inf(1), 1e300} {
		in.Age = ptr(age)
		_, err := service.GeneratePlan(sqldb, u.ID, in)
		var verr *planner.ValidationError
		if !errors.As(err, &verr) || !reflect.DeepEqual(verr.Invalid, []string{"age"}) {
			t.Fatalf("age %v: expected invalid age, got %v", age, err)
		}
		if err.Error() != "Invalid values for fields: age" {
			t.Fatalf("age %v: unexpected message %q", age, err.Error())
		}
	}
	plans, err := service.ListPlans(sqldb, u.ID)
	if err != nil {
		t.Fatalf("list plans: %v", err)
	}
	if len(plans) != 1 {
		t.Fatalf("expected only the first plan stored, got %d", len(plans))
	}
}

func TestGeneratePlanRejectsImplausibleWeight(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	u := newTestUser(t, sqldb)

	in := fullGenerateInput()
	in.WeightKG = ptr(1e300)
	_, err := service.GeneratePlan(sqldb, u.ID, in)
	var verr *planner.ValidationError
	if !errors.As(err, &verr) || !reflect.DeepEqual(verr.Invalid, []string{"weight_kg"}) {
		t.Fatalf("expected invalid weight_kg, got %v", err)
	}
	profile, err := service.GetProfile(sqldb, u.ID)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if profile != nil {
		t.Fatalf("expected no profile written, got %+v", profile)
	}
}

func TestGeneratePlanKeepsOneActivePlan(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	u := newTestUser(t, sqldb)

	first, err := service.GeneratePlan(sqldb, u.ID, fullGenerateInput())
	if err != nil {
		t.Fatalf("generate first: %v", err)
	}
	in := fullGenerateInput()
	in.Goal = ptr("maintain")
	second, err := service.GeneratePlan(sqldb, u.ID, in)
	if err != nil {
		t.Fatalf("generate second: %v", err)
	}
	if n := countActivePlans(t, sqldb, u.ID); n != 1 {
		t.Fatalf("expected one active plan, got %d", n)
	}

	active, err := service.ActivePlan(sqldb, u.ID)
	if err != nil || active == nil {
		t.Fatalf("active plan: %v (%v)", active, err)
	}
	if active.ID != second.Plan.ID {
		t.Fatalf("expected newest plan active, got %d", active.ID)
	}

	plans, err := service.ListPlans(sqldb, u.ID)
	if err != nil {
		t.Fatalf("list plans: %v", err)
	}
	if len(plans) != 2 || plans[0].ID != second.Plan.ID || plans[1].IsActive {
		t.Fatalf("unexpected plan list %+v", plans)
	}

	later := testNow.Add(48 * time.Hour)
	activated, err := service.ActivatePlan(sqldb, u.ID, first.Plan.ID, later)
	if err != nil {
		t.Fatalf("activate plan: %v", err)
	}
	if !activated.IsActive || activated.StartDate != "2026-03-12" {
		t.Fatalf("unexpected activated plan %+v", activated)
	}
	if n := countActivePlans(t, sqldb, u.ID); n != 1 {
		t.Fatalf("expected one active plan after activate, got %d", n)
	}
}

func TestPlansAreScopedToUser(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	owner := newTestUser(t, sqldb)
	other, err := service.CreateUser(sqldb, "Other", "")
	if err != nil {
		t.Fatalf("create other user: %v", err)
	}

	out, err := service.GeneratePlan(sqldb, owner.ID, fullGenerateInput())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := service.GetPlan(sqldb, other.ID, out.Plan.ID); !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("expected not found for other user, got %v", err)
	}
	if _, err := service.ActivatePlan(sqldb, other.ID, out.Plan.ID, testNow); !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("expected not found activating other user's plan, got %v", err)
	}
	if err := service.DeletePlan(sqldb, other.ID, out.Plan.ID); !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("expected not found deleting other user's plan, got %v", err)
	}
	if err := service.DeletePlan(sqldb, owner.ID, out.Plan.ID); err != nil {
		t.Fatalf("delete plan: %v", err)
	}
	active, err := service.ActivePlan(sqldb, owner.ID)
	if err != nil {
		t.Fatalf("active plan: %v", err)
	}
	if active != nil {
		t.Fatalf("expected no active plan after delete, got %+v", active)
	}
}

func TestPlanName(t *testing.T) {
	t.Parallel()
	got := service.PlanName("muscle_gain", time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC))
	if got != "Muscle Gain Plan - Jan 2026" {
		t.Fatalf("unexpected plan name %q", got)
	}
}
