package a3diet

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/a3health/a3diet/internal/model"
	"github.com/a3health/a3diet/internal/service"
)

var foodCmd = &cobra.Command{
	Use:   "food",
	Short: "Search and extend the food database",
}

var (
	foodCategory   string
	foodCuisine    string
	foodVegetarian bool
	foodLimit      int
	foodJSON       bool
)

var foodSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search foods by English or Hindi name",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := service.FoodSearch{Category: foodCategory, Cuisine: foodCuisine, VegetarianOnly: foodVegetarian, Limit: foodLimit}
		if len(args) == 1 {
			s.Query = args[0]
		}
		return withDB(func(sqldb *sql.DB) error {
			foods, err := service.SearchFoods(sqldb, s)
			if err != nil {
				return err
			}
			if foodJSON {
				return printJSON(cmd.OutOrStdout(), foods)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tNAME\tHINDI\tCATEGORY\tSERVING\tCALORIES\tPROTEIN\tCARBS\tFAT\tVEG")
			for _, f := range foods {
				veg := "no"
				if f.IsVegetarian {
					veg = "yes"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s\t%g %s\t%.0f\t%.1f\t%.1f\t%.1f\t%s\n",
					f.ID, f.FoodName, orDash(f.FoodNameHindi), f.Category, f.ServingSize, f.ServingUnit,
					f.Calories, f.Protein, f.Carbs, f.Fat, veg)
			}
			return nil
		})
	},
}

var foodCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List food categories with counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			cats, err := service.FoodCategories(sqldb)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "CATEGORY\tFOODS")
			for _, c := range cats {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", c.Name, c.Count)
			}
			return nil
		})
	},
}

var (
	foodAddHindi       string
	foodAddCategory    string
	foodAddCuisine     string
	foodAddServingSize float64
	foodAddServingUnit string
	foodAddCalories    float64
	foodAddProtein     float64
	foodAddCarbs       float64
	foodAddFat         float64
	foodAddFiber       float64
	foodAddSugar       float64
	foodAddSodium      float64
	foodAddVegetarian  bool
	foodAddVegan       bool
	foodAddGlutenFree  bool
	foodAddGlycemicIdx int
)

var foodAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a custom food",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := service.CustomFoodInput{
			FoodName:      strings.TrimSpace(args[0]),
			FoodNameHindi: foodAddHindi,
			Category:      foodAddCategory,
			Cuisine:       foodAddCuisine,
			ServingSize:   foodAddServingSize,
			ServingUnit:   foodAddServingUnit,
			Calories:      foodAddCalories,
			Protein:       foodAddProtein,
			Carbs:         foodAddCarbs,
			Fat:           foodAddFat,
			Fiber:         foodAddFiber,
			Sugar:         foodAddSugar,
			SodiumMG:      foodAddSodium,
			IsVegan:       foodAddVegan,
			IsGlutenFree:  foodAddGlutenFree,
			GlycemicIndex: changedInt(cmd, "glycemic-index", foodAddGlycemicIdx),
		}
		if cmd.Flags().Changed("vegetarian") {
			in.IsVegetarian = &foodAddVegetarian
		}
		return withUser(func(sqldb *sql.DB, user model.User) error {
			f, err := service.AddCustomFood(sqldb, user.ID, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Food added: %d (%s)\n", f.ID, f.FoodName)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(foodCmd)
	foodCmd.AddCommand(foodSearchCmd, foodCategoriesCmd, foodAddCmd)

	foodSearchCmd.Flags().StringVar(&foodCategory, "category", "", "Category filter")
	foodSearchCmd.Flags().StringVar(&foodCuisine, "cuisine", "", "Cuisine filter")
	foodSearchCmd.Flags().BoolVar(&foodVegetarian, "veg", false, "Vegetarian foods only")
	foodSearchCmd.Flags().IntVar(&foodLimit, "limit", 20, "Maximum results")
	foodSearchCmd.Flags().BoolVar(&foodJSON, "json", false, "Output as JSON")

	f := foodAddCmd.Flags()
	f.StringVar(&foodAddHindi, "hindi", "", "Hindi name")
	f.StringVar(&foodAddCategory, "category", "", "Category")
	f.StringVar(&foodAddCuisine, "cuisine", "", "Cuisine")
	f.Float64Var(&foodAddServingSize, "serving-size", 100, "Serving size")
	f.StringVar(&foodAddServingUnit, "serving-unit", "g", "Serving unit")
	f.Float64Var(&foodAddCalories, "calories", 0, "Calories per serving")
	f.Float64Var(&foodAddProtein, "protein", 0, "Protein g per serving")
	f.Float64Var(&foodAddCarbs, "carbs", 0, "Carbs g per serving")
	f.Float64Var(&foodAddFat, "fat", 0, "Fat g per serving")
	f.Float64Var(&foodAddFiber, "fiber", 0, "Fiber g per serving")
	f.Float64Var(&foodAddSugar, "sugar", 0, "Sugar g per serving")
	f.Float64Var(&foodAddSodium, "sodium", 0, "Sodium mg per serving")
	f.BoolVar(&foodAddVegetarian, "vegetarian", true, "Vegetarian")
	f.BoolVar(&foodAddVegan, "vegan", false, "Vegan")
	f.BoolVar(&foodAddGlutenFree, "gluten-free", false, "Gluten free")
	f.IntVar(&foodAddGlycemicIdx, "glycemic-index", 0, "Glycemic index")
}
