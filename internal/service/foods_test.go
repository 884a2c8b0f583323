package service_test

import (
	"errors"
	"testing"

	"github.com/a3health/a3diet/internal/service"
)

func TestSearchFoodsMatchesEnglishAndHindi(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)

	dal, err := service.SearchFoods(sqldb, service.FoodSearch{Query: "DAL"})
	if err != nil {
		t.Fatalf("search dal: %v", err)
	}
	if len(dal) != 3 {
		t.Fatalf("expected 3 dals, got %d", len(dal))
	}

	paneer, err := service.SearchFoods(sqldb, service.FoodSearch{Query: "पनीर"})
	if err != nil {
		t.Fatalf("search hindi: %v", err)
	}
	if len(paneer) != 1 || paneer[0].FoodName != "Paneer" {
		t.Fatalf("unexpected hindi match %+v", paneer)
	}

	none, err := service.SearchFoods(sqldb, service.FoodSearch{Query: "%"})
	if err != nil {
		t.Fatalf("search wildcard: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected literal %% to match nothing, got %d", len(none))
	}
}

func TestSearchFoodsFiltersAndLimit(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)

	grains, err := service.SearchFoods(sqldb, service.FoodSearch{Category: "grains"})
	if err != nil {
		t.Fatalf("search grains: %v", err)
	}
	if len(grains) != 8 {
		t.Fatalf("expected 8 grains, got %d", len(grains))
	}

	vegProteins, err := service.SearchFoods(sqldb, service.FoodSearch{Category: "Proteins", VegetarianOnly: true})
	if err != nil {
		t.Fatalf("search veg proteins: %v", err)
	}
	if len(vegProteins) != 0 {
		t.Fatalf("expected no vegetarian proteins, got %+v", vegProteins)
	}

	indianFruit, err := service.SearchFoods(sqldb, service.FoodSearch{Category: "Fruits", Cuisine: "indian"})
	if err != nil {
		t.Fatalf("search indian fruit: %v", err)
	}
	if len(indianFruit) != 1 || indianFruit[0].FoodName != "Mango" {
		t.Fatalf("unexpected indian fruit %+v", indianFruit)
	}

	all, err := service.SearchFoods(sqldb, service.FoodSearch{})
	if err != nil {
		t.Fatalf("search all: %v", err)
	}
	if len(all) != 20 {
		t.Fatalf("expected default limit 20, got %d", len(all))
	}
	capped, err := service.SearchFoods(sqldb, service.FoodSearch{Limit: 5000})
	if err != nil {
		t.Fatalf("search capped: %v", err)
	}
	if len(capped) != 33 {
		t.Fatalf("expected all 33 reference foods, got %d", len(capped))
	}
}

func TestFoodCategories(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)

	cats, err := service.FoodCategories(sqldb)
	if err != nil {
		t.Fatalf("food categories: %v", err)
	}
	counts := map[string]int{}
	for _, c := range cats {
		counts[c.Name] = c.Count
	}
	if counts["Grains"] != 8 || counts["Pulses"] != 5 || counts["Sweets"] != 1 {
		t.Fatalf("unexpected category counts %+v", counts)
	}
	if cats[0].Name != "Beverages" {
		t.Fatalf("expected alphabetical order, got %+v", cats)
	}
}

func TestAddCustomFood(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	u := newTestUser(t, sqldb)

	f, err := service.AddCustomFood(sqldb, u.ID, service.CustomFoodInput{
		FoodName: "Dal Makhani (home)",
		Category: "Pulses",
		Calories: 180,
		Protein:  7,
	})
	if err != nil {
		t.Fatalf("add custom food: %v", err)
	}
	if !f.IsCustom || f.IsVerified || !f.IsVegetarian {
		t.Fatalf("unexpected flags %+v", f)
	}
	if f.ServingSize != 1 || f.ServingUnit != "g" {
		t.Fatalf("expected serving defaults, got %v %s", f.ServingSize, f.ServingUnit)
	}
	if f.CreatedBy == nil || *f.CreatedBy != u.ID {
		t.Fatalf("expected created_by %d, got %v", u.ID, f.CreatedBy)
	}

	dal, err := service.SearchFoods(sqldb, service.FoodSearch{Query: "dal"})
	if err != nil {
		t.Fatalf("search dal: %v", err)
	}
	if len(dal) != 4 || dal[3].ID != f.ID {
		t.Fatalf("expected custom food listed after reference foods, got %+v", dal)
	}

	if _, err := service.AddCustomFood(sqldb, u.ID, service.CustomFoodInput{}); !errors.Is(err, service.ErrInvalidInput) {
		t.Fatalf("expected missing name rejected, got %v", err)
	}
	if _, err := service.AddCustomFood(sqldb, u.ID, service.CustomFoodInput{FoodName: "x", GlycemicIndex: ptr(140)}); !errors.Is(err, service.ErrInvalidInput) {
		t.Fatalf("expected glycemic index rejected, got %v", err)
	}
}

func TestGetFoodNotFound(t *testing.T) {
	t.Parallel()
	sqldb := newTestDB(t)
	if _, err := service.GetFood(sqldb, 4040); !errors.Is(err, service.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
