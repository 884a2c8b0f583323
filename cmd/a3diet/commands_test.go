package a3diet

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/a3health/a3diet/internal/config"
	"github.com/a3health/a3diet/internal/db"
)

func newCLIUser(t *testing.T) string {
	t.Helper()
	path := testDBPath(t)
	out := mustRun(t, "--db", path, "user", "add", "Asha")
	if !strings.HasPrefix(out, "Created user 1 (client)") {
		t.Fatalf("unexpected user add output: %q", out)
	}
	return path
}

func TestUserAddAndList(t *testing.T) {
	path := newCLIUser(t)
	mustRun(t, "--db", path, "user", "add", "Acme Insurance", "--role", "insurance")

	out := mustRun(t, "--db", path, "user", "list")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 || lines[0] != "ID\tEXTERNAL_ID\tNAME\tROLE" {
		t.Fatalf("unexpected user list: %q", out)
	}
	if !strings.HasSuffix(lines[2], "\tAcme Insurance\tinsurance") {
		t.Fatalf("unexpected second user row: %q", lines[2])
	}

	if _, err := runCLI(t, "--db", path, "user", "add", "Bad", "--role", "admin"); err == nil {
		t.Fatalf("expected unknown role to fail")
	}
}

func TestPlanGenerateActivateAndDelete(t *testing.T) {
	path := newCLIUser(t)
	out := mustRun(t, "--db", path, "--user", "1", "plan", "generate",
		"--age", "40", "--gender", "male", "--height", "175", "--weight", "80",
		"--activity", "moderate", "--goal", "weight_loss", "--condition", "hypertension")
	for _, want := range []string{
		"Diet plan generated successfully!",
		"Calories: 2133 kcal/day",
		"TDEE: 2633 kcal (moderate x 1.55)",
		"Goal: weight_loss (-500 kcal)",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("generate output missing %q:\n%s", want, out)
		}
	}

	out = mustRun(t, "--db", path, "--user", "1", "profile", "show")
	if !strings.Contains(out, "Height: 175.0 cm") || !strings.Contains(out, "Conditions: hypertension") {
		t.Fatalf("profile not saved from generate:\n%s", out)
	}

	// Second plan from the stored profile with a new goal.
	out = mustRun(t, "--db", path, "--user", "1", "plan", "generate", "--goal", "maintain")
	if !strings.Contains(out, "Calories: 2633 kcal/day") {
		t.Fatalf("expected maintain plan at TDEE:\n%s", out)
	}

	out = mustRun(t, "--db", path, "--user", "1", "plan", "list")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 || !strings.HasPrefix(lines[1], "2\t*\t") || !strings.HasPrefix(lines[2], "1\t\t") {
		t.Fatalf("unexpected plan list:\n%s", out)
	}

	out = mustRun(t, "--db", path, "--user", "1", "plan", "activate", "1")
	if !strings.HasPrefix(out, "Plan activated: 1 (Weight Loss Plan - ") {
		t.Fatalf("unexpected activate output: %q", out)
	}
	out = mustRun(t, "--db", path, "--user", "1", "plan", "active")
	if !strings.Contains(out, "Plan 1: Weight Loss Plan") || !strings.Contains(out, "(active,") {
		t.Fatalf("unexpected active plan:\n%s", out)
	}

	mustRun(t, "--db", path, "--user", "1", "plan", "delete", "2")
	if _, err := runCLI(t, "--db", path, "--user", "1", "plan", "show", "2"); err == nil {
		t.Fatalf("expected deleted plan to be gone")
	}
	if _, err := runCLI(t, "--db", path, "--user", "1", "plan", "show", "abc"); err == nil {
		t.Fatalf("expected invalid plan id to fail")
	}
}

func TestPlanGenerateMissingFields(t *testing.T) {
	path := newCLIUser(t)
	_, err := runCLI(t, "--db", path, "--user", "1", "plan", "generate", "--age", "30", "--gender", "female")
	if err == nil || err.Error() != "Missing required fields: height_cm, weight_kg, activity_level" {
		t.Fatalf("expected missing fields error, got %v", err)
	}
	out := mustRun(t, "--db", path, "--user", "1", "profile", "show")
	if !strings.Contains(out, "No health profile for user 1") {
		t.Fatalf("failed generate must not save the profile:\n%s", out)
	}
}

func TestPlanCalcPrintsWithoutSaving(t *testing.T) {
	out := mustRun(t, "plan", "calc", "--age", "40", "--gender", "male", "--height", "175", "--weight", "80",
		"--activity", "moderate", "--goal", "weight_loss")
	for _, want := range []string{"Calories: 2133 kcal/day", "Water: 2800 ml", "lunch\t"} {
		if !strings.Contains(out, want) {
			t.Fatalf("calc output missing %q:\n%s", want, out)
		}
	}
	if _, err := runCLI(t, "plan", "calc", "--age", "40"); err == nil || !strings.HasPrefix(err.Error(), "Missing required fields: height_cm") {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestMealAddListDelete(t *testing.T) {
	path := newCLIUser(t)
	out := mustRun(t, "--db", path, "--user", "1", "meal", "add", "--type", "lunch", "--date", "2026-03-10",
		"--food", "2:150:g", "--food", "1:2", "--item", "Masala chai:1:cup:90:3:12:3:0")
	if !strings.HasPrefix(out, "Meal logged: 1 (2026-03-10 lunch, 3 items, 427 kcal)") {
		t.Fatalf("unexpected meal add output: %q", out)
	}

	out = mustRun(t, "--db", path, "--user", "1", "meal", "list", "--date", "2026-03-10")
	for _, want := range []string{"1\t2026-03-10\tlunch\t-\t427\t", "  - Rice (Cooked) 150 g: 195 kcal", "  - Roti (Wheat) 2 piece: 142 kcal"} {
		if !strings.Contains(out, want) {
			t.Fatalf("meal list missing %q:\n%s", want, out)
		}
	}

	if _, err := runCLI(t, "--db", path, "--user", "1", "meal", "add", "--type", "brunch", "--item", "Tea:1:cup:10"); err == nil {
		t.Fatalf("expected invalid meal type to fail")
	}

	mustRun(t, "--db", path, "--user", "1", "meal", "delete", "1")
	out = mustRun(t, "--db", path, "--user", "1", "meal", "list", "--date", "2026-03-10")
	if strings.TrimSpace(out) != "ID\tDATE\tTYPE\tNAME\tCALORIES\tPROTEIN\tCARBS\tFAT" {
		t.Fatalf("expected empty meal list, got:\n%s", out)
	}
}

func TestParseMealItems(t *testing.T) {
	t.Parallel()
	it, err := parseFoodItem("2:150:g")
	if err != nil || it.FoodID == nil || *it.FoodID != 2 || it.Quantity != 150 || it.ServingUnit != "g" {
		t.Fatalf("unexpected food item %+v (err %v)", it, err)
	}
	it, err = parseCustomItem("Masala chai:1:cup:90:3:12:3:0")
	if err != nil || it.FoodName != "Masala chai" || it.Calories != 90 || it.Carbs != 12 || it.FoodID != nil {
		t.Fatalf("unexpected custom item %+v (err %v)", it, err)
	}
	for _, bad := range []string{"2", "x:1", "2:abc", "1:2:g:extra"} {
		if _, err := parseFoodItem(bad); err == nil {
			t.Fatalf("expected --food %q to fail", bad)
		}
	}
	for _, bad := range []string{"Tea:1:cup", "Tea:1:cup:10:1", "Tea:one:cup:10"} {
		if _, err := parseCustomItem(bad); err == nil {
			t.Fatalf("expected --item %q to fail", bad)
		}
	}
}

func TestWaterWeightAndStats(t *testing.T) {
	path := newCLIUser(t)
	out := mustRun(t, "--db", path, "--user", "1", "water", "add", "--glasses", "2")
	if !strings.Contains(out, "500 / 2500 ml (2 glasses, 20.0%)") {
		t.Fatalf("unexpected water output: %q", out)
	}
	out = mustRun(t, "--db", path, "--user", "1", "water", "show")
	if !strings.Contains(out, "500 / 2500 ml") {
		t.Fatalf("unexpected water show output: %q", out)
	}

	mustRun(t, "--db", path, "--user", "1", "profile", "set", "--height", "175", "--weight", "80", "--age", "40")
	out = mustRun(t, "--db", path, "--user", "1", "weight", "add", "80")
	if !strings.Contains(out, "80.0 kg (BMI 26.1)") {
		t.Fatalf("unexpected weight output: %q", out)
	}
	if _, err := runCLI(t, "--db", path, "--user", "1", "weight", "add", "80", "--unit", "stone"); err == nil {
		t.Fatalf("expected unknown unit to fail")
	}
	out = mustRun(t, "--db", path, "--user", "1", "weight", "list", "--unit", "lb")
	if !strings.Contains(out, "\t176.37\tlb\t26.1\t") {
		t.Fatalf("unexpected weight list:\n%s", out)
	}

	out = mustRun(t, "--db", path, "--user", "1", "stats")
	for _, want := range []string{"Calories: 0 / 2000 kcal (0 meals)", "Water: 500 / 2500 ml (20.0%)", "Weight: 80.0 kg (BMI 26.1", "No active plan"} {
		if !strings.Contains(out, want) {
			t.Fatalf("stats output missing %q:\n%s", want, out)
		}
	}
	out = mustRun(t, "--db", path, "--user", "1", "stats", "--json")
	if !strings.Contains(out, `"has_health_profile": true`) {
		t.Fatalf("unexpected stats json:\n%s", out)
	}
}

func TestFoodSearchAddAndFavorites(t *testing.T) {
	path := newCLIUser(t)
	out := mustRun(t, "--db", path, "food", "search", "dal")
	if got := len(strings.Split(strings.TrimSpace(out), "\n")) - 1; got != 3 {
		t.Fatalf("expected 3 dal results, got %d:\n%s", got, out)
	}
	out = mustRun(t, "--db", path, "food", "categories")
	if !strings.Contains(out, "Grains\t8\n") {
		t.Fatalf("unexpected categories:\n%s", out)
	}

	out = mustRun(t, "--db", path, "--user", "1", "food", "add", "Sprouts Chaat", "--category", "Snacks",
		"--calories", "120", "--protein", "7")
	if !strings.HasPrefix(out, "Food added: 34 (Sprouts Chaat)") {
		t.Fatalf("unexpected food add output: %q", out)
	}

	out = mustRun(t, "--db", path, "--user", "1", "favorite", "add", "34", "--quantity", "150", "--unit", "g")
	if strings.TrimSpace(out) != "Added to favorites" {
		t.Fatalf("unexpected favorite add output: %q", out)
	}
	out = mustRun(t, "--db", path, "--user", "1", "favorite", "add", "34")
	if strings.TrimSpace(out) != "Already in favorites" {
		t.Fatalf("unexpected second favorite add output: %q", out)
	}
	out = mustRun(t, "--db", path, "--user", "1", "favorite", "list")
	if !strings.Contains(out, "34\tSprouts Chaat\t120\t150\tg") {
		t.Fatalf("unexpected favorites:\n%s", out)
	}
	for i := 0; i < 2; i++ {
		out = mustRun(t, "--db", path, "--user", "1", "favorite", "remove", "34")
		if strings.TrimSpace(out) != "Removed from favorites" {
			t.Fatalf("remove run %d: unexpected output %q", i+1, out)
		}
	}
	out = mustRun(t, "--db", path, "--user", "1", "favorite", "list")
	if strings.TrimSpace(out) != "FOOD_ID\tNAME\tCALORIES\tQUANTITY\tUNIT" {
		t.Fatalf("expected no favorites, got:\n%s", out)
	}
}

func TestConfigSetGet(t *testing.T) {
	path := testDBPath(t)
	out := mustRun(t, "--db", path, "config", "set", "default_calorie_target", "1800")
	if strings.TrimSpace(out) != "Updated default_calorie_target" {
		t.Fatalf("unexpected config set output: %q", out)
	}
	out = mustRun(t, "--db", path, "config", "get", "default_calorie_target")
	if strings.TrimSpace(out) != "1800" {
		t.Fatalf("unexpected config get output: %q", out)
	}
	out = mustRun(t, "--db", path, "config", "get")
	if !strings.Contains(out, "KEY\tVALUE\ndefault_calorie_target\t1800\n") {
		t.Fatalf("unexpected config listing:\n%s", out)
	}
	if _, err := runCLI(t, "--db", path, "config", "set", "barcode_provider", "usda"); err == nil {
		t.Fatalf("expected unknown key to fail")
	}
	if _, err := runCLI(t, "--db", path, "config", "get", "water_default_goal_ml"); err == nil {
		t.Fatalf("expected unset key to fail")
	}
}

func TestDoctorFixesMealTotals(t *testing.T) {
	path := newCLIUser(t)
	mustRun(t, "--db", path, "--user", "1", "meal", "add", "--type", "breakfast", "--item", "Poha:1:plate:250")

	out := mustRun(t, "--db", path, "doctor")
	if !strings.Contains(out, "Meal total mismatches: 0") {
		t.Fatalf("unexpected doctor output:\n%s", out)
	}

	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if _, err := sqldb.Exec(`UPDATE diet_meals SET total_calories = 999 WHERE id = 1`); err != nil {
		t.Fatalf("corrupt totals: %v", err)
	}
	_ = sqldb.Close()

	if _, err := runCLI(t, "--db", path, "doctor"); err == nil {
		t.Fatalf("expected doctor to report the mismatch")
	}
	out, err = runCLI(t, "--db", path, "doctor", "--fix")
	if err != nil {
		t.Fatalf("doctor --fix: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Fixed meal totals: 1") {
		t.Fatalf("unexpected doctor --fix output:\n%s", out)
	}
}

func TestServeRejectsBadScheduleAndAddress(t *testing.T) {
	sqldb, err := db.OpenMigrated(filepath.Join(t.TempDir(), "a3diet.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = sqldb.Close() })

	err = serve(context.Background(), &config.Config{HTTPAddr: ":0", DoctorSchedule: "every day"}, sqldb, zap.NewNop())
	if err == nil || !strings.Contains(err.Error(), "schedule doctor") {
		t.Fatalf("expected schedule error, got %v", err)
	}

	err = serve(context.Background(), &config.Config{HTTPAddr: "127.0.0.1:-1"}, sqldb, zap.NewNop())
	if err == nil || !strings.HasPrefix(err.Error(), "http server:") {
		t.Fatalf("expected listen error, got %v", err)
	}
}
