package a3diet

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/a3health/a3diet/internal/model"
	"github.com/a3health/a3diet/internal/service"
)

var mealCmd = &cobra.Command{
	Use:   "meal",
	Short: "Log and list meals",
}

var (
	mealType        string
	mealName        string
	mealNotes       string
	mealDate        string
	mealFoodItems   []string
	mealCustomItems []string
)

var mealAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Log a meal",
	Long: `Log a meal made of reference foods and/or custom items.

  --food <food_id>:<quantity>[:<unit>]
      nutrition is scaled from the food's serving, e.g. --food 1:150:g
  --item <name>:<quantity>:<unit>:<calories>[:<protein>:<carbs>:<fat>:<fiber>]
      nutrition as given, e.g. --item "Masala chai:1:cup:90:3:12:3:0"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		items := make([]service.MealItemInput, 0, len(mealFoodItems)+len(mealCustomItems))
		for _, v := range mealFoodItems {
			it, err := parseFoodItem(v)
			if err != nil {
				return err
			}
			items = append(items, it)
		}
		for _, v := range mealCustomItems {
			it, err := parseCustomItem(v)
			if err != nil {
				return err
			}
			items = append(items, it)
		}
		in := service.LogMealInput{Date: mealDate, MealType: mealType, MealName: mealName, Notes: mealNotes, Items: items}
		return withUser(func(sqldb *sql.DB, user model.User) error {
			m, err := service.LogMeal(sqldb, user.ID, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Meal logged: %d (%s %s, %d items, %.0f kcal)\n",
				m.ID, m.Date, m.MealType, len(m.Items), m.TotalCalories)
			return nil
		})
	},
}

var (
	mealListDate string
	mealListDays int
	mealListJSON bool
)

var mealListCmd = &cobra.Command{
	Use:   "list",
	Short: "List meals for a date or the last N days",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUser(func(sqldb *sql.DB, user model.User) error {
			meals, err := service.ListMeals(sqldb, user.ID, service.MealFilter{Date: mealListDate, Days: mealListDays})
			if err != nil {
				return err
			}
			if mealListJSON {
				return printJSON(cmd.OutOrStdout(), meals)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "ID\tDATE\tTYPE\tNAME\tCALORIES\tPROTEIN\tCARBS\tFAT")
			for _, m := range meals {
				fmt.Fprintf(out, "%d\t%s\t%s\t%s\t%.0f\t%.1f\t%.1f\t%.1f\n",
					m.ID, m.Date, m.MealType, orDash(m.MealName), m.TotalCalories, m.TotalProtein, m.TotalCarbs, m.TotalFat)
				for _, it := range m.Items {
					fmt.Fprintf(out, "  - %s %g %s: %.0f kcal\n", it.FoodName, it.Quantity, it.ServingUnit, it.Calories)
				}
			}
			return nil
		})
	},
}

var mealDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a meal and its items",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("meal id", args[0])
		if err != nil {
			return err
		}
		return withUser(func(sqldb *sql.DB, user model.User) error {
			if err := service.DeleteMeal(sqldb, user.ID, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Meal deleted: %d\n", id)
			return nil
		})
	},
}

func parseFoodItem(v string) (service.MealItemInput, error) {
	parts := strings.Split(v, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return service.MealItemInput{}, fmt.Errorf("invalid --food %q (expected <food_id>:<quantity>[:<unit>])", v)
	}
	id, err := parseInt64Arg("food id", parts[0])
	if err != nil {
		return service.MealItemInput{}, err
	}
	qty, err := parseItemNumber("quantity", parts[1])
	if err != nil {
		return service.MealItemInput{}, err
	}
	it := service.MealItemInput{FoodID: &id, Quantity: qty}
	if len(parts) == 3 {
		it.ServingUnit = strings.TrimSpace(parts[2])
	}
	return it, nil
}

func parseCustomItem(v string) (service.MealItemInput, error) {
	parts := strings.Split(v, ":")
	if len(parts) != 4 && len(parts) != 8 {
		return service.MealItemInput{}, fmt.Errorf("invalid --item %q (expected <name>:<quantity>:<unit>:<calories>[:<protein>:<carbs>:<fat>:<fiber>])", v)
	}
	nums := make([]float64, 0, len(parts)-2)
	labels := []string{"quantity", "calories", "protein", "carbs", "fat", "fiber"}
	for i, p := range append([]string{parts[1]}, parts[3:]...) {
		n, err := parseItemNumber(labels[i], p)
		if err != nil {
			return service.MealItemInput{}, err
		}
		nums = append(nums, n)
	}
	it := service.MealItemInput{
		FoodName:    strings.TrimSpace(parts[0]),
		Quantity:    nums[0],
		ServingUnit: strings.TrimSpace(parts[2]),
		Calories:    nums[1],
	}
	if len(nums) == 6 {
		it.Protein, it.Carbs, it.Fat, it.Fiber = nums[2], nums[3], nums[4], nums[5]
	}
	return it, nil
}

func parseItemNumber(name, v string) (float64, error) {
	n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, v)
	}
	return n, nil
}

func init() {
	rootCmd.AddCommand(mealCmd)
	mealCmd.AddCommand(mealAddCmd, mealListCmd, mealDeleteCmd)

	mealAddCmd.Flags().StringVar(&mealType, "type", "", "Meal type: "+strings.Join(service.MealTypes(), "|"))
	mealAddCmd.Flags().StringVar(&mealName, "name", "", "Meal name")
	mealAddCmd.Flags().StringVar(&mealNotes, "notes", "", "Notes")
	mealAddCmd.Flags().StringVar(&mealDate, "date", "", "Date YYYY-MM-DD (default today)")
	mealAddCmd.Flags().StringArrayVar(&mealFoodItems, "food", nil, "Reference food item <food_id>:<quantity>[:<unit>] (repeatable)")
	mealAddCmd.Flags().StringArrayVar(&mealCustomItems, "item", nil, "Custom item <name>:<quantity>:<unit>:<calories>[:<protein>:<carbs>:<fat>:<fiber>] (repeatable)")
	_ = mealAddCmd.MarkFlagRequired("type")

	mealListCmd.Flags().StringVar(&mealListDate, "date", "", "Date YYYY-MM-DD")
	mealListCmd.Flags().IntVar(&mealListDays, "days", 7, "Days to include when --date is not set")
	mealListCmd.Flags().BoolVar(&mealListJSON, "json", false, "Output as JSON")
}
