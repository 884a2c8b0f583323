package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/a3health/a3diet/internal/service"
)

func (s *Server) registerDietRoutes(api *echo.Group) {
	api.GET("/stats", s.getStats)
	api.GET("/health-profile", s.getProfile)
	api.POST("/health-profile", s.saveProfile)
	api.GET("/plans", s.listPlans)
	api.GET("/plans/active", s.getActivePlan)
	api.PUT("/plans/:id/activate", s.activatePlan)
	api.DELETE("/plans/:id", s.deletePlan)
	api.POST("/generate-plan", s.generatePlan)
	api.POST("/meals", s.logMeal)
	api.GET("/meals", s.listMeals)
	api.DELETE("/meals/:id", s.deleteMeal)
	api.GET("/water", s.getWater)
	api.POST("/water", s.logWater)
	api.GET("/weight", s.listWeights)
	api.POST("/weight", s.logWeight)
	api.GET("/foods/search", s.searchFoods)
	api.GET("/foods/categories", s.foodCategories)
	api.POST("/foods/custom", s.addCustomFood)
	api.GET("/favorites", s.listFavorites)
	api.POST("/favorites", s.addFavorite)
	api.DELETE("/favorites/:food_id", s.removeFavorite)
}

func bindBody(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body: "+err.Error())
	}
	return nil
}

func pathID(c echo.Context, name string) (int64, error) {
	return service.ParseID(c.Param(name))
}

func ok(c echo.Context, body echo.Map) error {
	body["success"] = true
	return c.JSON(http.StatusOK, body)
}

func (s *Server) getStats(c echo.Context) error {
	stats, err := service.Stats(s.db, currentUser(c).ID, s.now())
	if err != nil {
		return err
	}
	return ok(c, echo.Map{"stats": stats})
}

func (s *Server) getProfile(c echo.Context) error {
	profile, err := service.GetProfile(s.db, currentUser(c).ID)
	if err != nil {
		return err
	}
	return ok(c, echo.Map{"profile": profile})
}

func (s *Server) saveProfile(c echo.Context) error {
	var in service.ProfileInput
	if err := bindBody(c, &in); err != nil {
		return err
	}
	profile, err := service.SaveProfile(s.db, currentUser(c).ID, in)
	if err != nil {
		return err
	}
	return ok(c, echo.Map{"message": "Health profile saved", "profile": profile})
}

func (s *Server) listPlans(c echo.Context) error {
	plans, err := service.ListPlans(s.db, currentUser(c).ID)
	if err != nil {
		return err
	}
	return ok(c, echo.Map{"plans": plans})
}

func (s *Server) getActivePlan(c echo.Context) error {
	plan, err := service.ActivePlan(s.db, currentUser(c).ID)
	if err != nil {
		return err
	}
	return ok(c, echo.Map{"plan": plan})
}

func (s *Server) activatePlan(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	plan, err := service.ActivatePlan(s.db, currentUser(c).ID, id, s.now())
	if err != nil {
		return err
	}
	return ok(c, echo.Map{"message": "Plan activated", "plan": plan})
}

func (s *Server) deletePlan(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := service.DeletePlan(s.db, currentUser(c).ID, id); err != nil {
		return err
	}
	return ok(c, echo.Map{"message": "Plan deleted"})
}

func (s *Server) generatePlan(c echo.Context) error {
	var in service.GeneratePlanInput
	if err := bindBody(c, &in); err != nil {
		return err
	}
	in.Now = s.now()
	out, err := service.GeneratePlan(s.db, currentUser(c).ID, in)
	if err != nil {
		return err
	}
	return ok(c, echo.Map{
		"message":     "Diet plan generated successfully!",
		"plan":        out.Plan,
		"calculation": out.Calculation,
	})
}

func (s *Server) logMeal(c echo.Context) error {
	var in service.LogMealInput
	if err := bindBody(c, &in); err != nil {
		return err
	}
	in.Now = s.now()
	meal, err := service.LogMeal(s.db, currentUser(c).ID, in)
	if err != nil {
		return err
	}
	return ok(c, echo.Map{"message": "Meal logged", "meal": meal})
}

func (s *Server) listMeals(c echo.Context) error {
	f := service.MealFilter{Now: s.now()}
	if err := echo.QueryParamsBinder(c).
		String("date", &f.Date).
		Int("days", &f.Days).
		BindError(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	meals, err := service.ListMeals(s.db, currentUser(c).ID, f)
	if err != nil {
		return err
	}
	return ok(c, echo.Map{"meals": meals})
}

func (s *Server) deleteMeal(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := service.DeleteMeal(s.db, currentUser(c).ID, id); err != nil {
		return err
	}
	return ok(c, echo.Map{"message": "Meal deleted"})
}

func (s *Server) getWater(c echo.Context) error {
	water, err := service.GetWater(s.db, currentUser(c).ID, c.QueryParam("date"), s.now())
	if err != nil {
		return err
	}
	return ok(c, echo.Map{"water": water})
}

func (s *Server) logWater(c echo.Context) error {
	var in service.LogWaterInput
	if err := bindBody(c, &in); err != nil {
		return err
	}
	in.Now = s.now()
	water, err := service.LogWater(s.db, currentUser(c).ID, in)
	if err != nil {
		return err
	}
	return ok(c, echo.Map{"message": "Water logged", "water": water})
}

func (s *Server) listWeights(c echo.Context) error {
	f := service.WeightFilter{Now: s.now()}
	if err := echo.QueryParamsBinder(c).Int("days", &f.Days).BindError(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	logs, err := service.ListWeights(s.db, currentUser(c).ID, f)
	if err != nil {
		return err
	}
	return ok(c, echo.Map{"logs": logs})
}

func (s *Server) logWeight(c echo.Context) error {
	var in service.LogWeightInput
	if err := bindBody(c, &in); err != nil {
		return err
	}
	in.Now = s.now()
	log, err := service.LogWeight(s.db, currentUser(c).ID, in)
	if err != nil {
		return err
	}
	return ok(c, echo.Map{"message": "Weight logged", "log": log})
}

func (s *Server) searchFoods(c echo.Context) error {
	var q service.FoodSearch
	var vegetarian string
	if err := echo.QueryParamsBinder(c).
		String("q", &q.Query).
		String("category", &q.Category).
		String("cuisine", &q.Cuisine).
		String("vegetarian", &vegetarian).
		Int("limit", &q.Limit).
		BindError(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	q.VegetarianOnly = vegetarian == "true"
	foods, err := service.SearchFoods(s.db, q)
	if err != nil {
		return err
	}
	return ok(c, echo.Map{"foods": foods, "count": len(foods)})
}

func (s *Server) foodCategories(c echo.Context) error {
	categories, err := service.FoodCategories(s.db)
	if err != nil {
		return err
	}
	return ok(c, echo.Map{"categories": categories})
}

func (s *Server) addCustomFood(c echo.Context) error {
	var in service.CustomFoodInput
	if err := bindBody(c, &in); err != nil {
		return err
	}
	food, err := service.AddCustomFood(s.db, currentUser(c).ID, in)
	if err != nil {
		return err
	}
	return ok(c, echo.Map{"message": "Food added", "food": food})
}

func (s *Server) listFavorites(c echo.Context) error {
	favorites, err := service.ListFavorites(s.db, currentUser(c).ID)
	if err != nil {
		return err
	}
	return ok(c, echo.Map{"favorites": favorites})
}

func (s *Server) addFavorite(c echo.Context) error {
	var in service.FavoriteInput
	if err := bindBody(c, &in); err != nil {
		return err
	}
	added, err := service.AddFavorite(s.db, currentUser(c).ID, in)
	if err != nil {
		return err
	}
	if !added {
		return ok(c, echo.Map{"message": "Already in favorites"})
	}
	return ok(c, echo.Map{"message": "Added to favorites"})
}

func (s *Server) removeFavorite(c echo.Context) error {
	foodID, err := pathID(c, "food_id")
	if err != nil {
		return err
	}
	if err := service.RemoveFavorite(s.db, currentUser(c).ID, foodID); err != nil {
		return err
	}
	return ok(c, echo.Map{"message": "Removed from favorites"})
}
