package a3diet

import (
	"database/sql"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/a3health/a3diet/internal/model"
	"github.com/a3health/a3diet/internal/planner"
	"github.com/a3health/a3diet/internal/service"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate and manage diet plans",
}

var (
	planAge            int
	planGender         string
	planHeight         float64
	planWeight         float64
	planActivity       string
	planGoal           string
	planConditions     []string
	planAllergies      []string
	planDiet           string
	planTargetWeight   float64
	planFastingGlucose float64
	planHbA1c          float64
	planCholesterol    float64
	planBloodPressure  string
	planJSON           bool
)

var planGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a plan from the health profile and make it active",
	Long:  "Generate a plan. Flags override the stored health profile and are saved back to it; missing values are taken from the profile.",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := service.GeneratePlanInput{
			HeightCM:         changedFloat(cmd, "height", planHeight),
			WeightKG:         changedFloat(cmd, "weight", planWeight),
			Age:              changedFloat(cmd, "age", float64(planAge)),
			Gender:           changedString(cmd, "gender", planGender),
			ActivityLevel:    changedString(cmd, "activity", planActivity),
			Goal:             changedString(cmd, "goal", planGoal),
			DietPreference:   changedString(cmd, "diet", planDiet),
			TargetWeightKG:   changedFloat(cmd, "target-weight", planTargetWeight),
			FastingGlucose:   changedFloat(cmd, "fasting-glucose", planFastingGlucose),
			HbA1c:            changedFloat(cmd, "hba1c", planHbA1c),
			TotalCholesterol: changedFloat(cmd, "cholesterol", planCholesterol),
			BloodPressure:    changedString(cmd, "blood-pressure", planBloodPressure),
		}
		if cmd.Flags().Changed("condition") {
			in.KnownConditions = planConditions
		}
		if cmd.Flags().Changed("allergy") {
			in.Allergies = planAllergies
		}
		return withUser(func(sqldb *sql.DB, user model.User) error {
			out, err := service.GeneratePlan(sqldb, user.ID, in)
			if err != nil {
				return err
			}
			if planJSON {
				return printJSON(cmd.OutOrStdout(), out)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Diet plan generated successfully!")
			printPlan(cmd.OutOrStdout(), out.Plan)
			printCalculation(cmd.OutOrStdout(), out.Calculation)
			return nil
		})
	},
}

var planCalcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Calculate a plan from flags without saving anything",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := planner.Generate(planner.Profile{
			Age:            planAge,
			Sex:            planGender,
			HeightCM:       planHeight,
			WeightKG:       planWeight,
			ActivityLevel:  planActivity,
			Goal:           planGoal,
			Conditions:     planConditions,
			DietPreference: planDiet,
		})
		if err != nil {
			return err
		}
		if planJSON {
			return printJSON(cmd.OutOrStdout(), p)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Calories: %d kcal/day\n", p.DailyCalories)
		fmt.Fprintf(out, "Protein: %dg (%d%%)\n", p.ProteinG, p.ProteinPct)
		fmt.Fprintf(out, "Carbs: %dg (%d%%)\n", p.CarbsG, p.CarbsPct)
		fmt.Fprintf(out, "Fat: %dg (%d%%)\n", p.FatG, p.FatPct)
		fmt.Fprintf(out, "Fiber: %dg\n", p.FiberG)
		fmt.Fprintf(out, "Water: %d ml\n", p.WaterML)
		printMealTiming(out, p.MealTiming)
		printCalculation(out, p.Calculation)
		return nil
	},
}

var planListCmd = &cobra.Command{
	Use:   "list",
	Short: "List plans, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUser(func(sqldb *sql.DB, user model.User) error {
			plans, err := service.ListPlans(sqldb, user.ID)
			if err != nil {
				return err
			}
			if planJSON {
				return printJSON(cmd.OutOrStdout(), plans)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tACTIVE\tSTART\tCALORIES\tNAME")
			for _, p := range plans {
				active := ""
				if p.IsActive {
					active = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%d\t%s\n", p.ID, active, p.StartDate, p.DailyCalories, p.PlanName)
			}
			return nil
		})
	},
}

var planShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("plan id", args[0])
		if err != nil {
			return err
		}
		return withUser(func(sqldb *sql.DB, user model.User) error {
			p, err := service.GetPlan(sqldb, user.ID, id)
			if err != nil {
				return err
			}
			if planJSON {
				return printJSON(cmd.OutOrStdout(), p)
			}
			printPlan(cmd.OutOrStdout(), p)
			return nil
		})
	},
}

var planActiveCmd = &cobra.Command{
	Use:   "active",
	Short: "Show the active plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUser(func(sqldb *sql.DB, user model.User) error {
			p, err := service.ActivePlan(sqldb, user.ID)
			if err != nil {
				return err
			}
			if planJSON {
				return printJSON(cmd.OutOrStdout(), p)
			}
			if p == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "No active plan")
				return nil
			}
			printPlan(cmd.OutOrStdout(), *p)
			return nil
		})
	},
}

var planActivateCmd = &cobra.Command{
	Use:   "activate <id>",
	Short: "Make a plan the active one, starting today",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("plan id", args[0])
		if err != nil {
			return err
		}
		return withUser(func(sqldb *sql.DB, user model.User) error {
			p, err := service.ActivatePlan(sqldb, user.ID, id, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Plan activated: %d (%s) starting %s\n", p.ID, p.PlanName, p.StartDate)
			return nil
		})
	},
}

var planDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("plan id", args[0])
		if err != nil {
			return err
		}
		return withUser(func(sqldb *sql.DB, user model.User) error {
			if err := service.DeletePlan(sqldb, user.ID, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Plan deleted: %d\n", id)
			return nil
		})
	},
}

func printPlan(w io.Writer, p model.DietPlan) {
	status := "inactive"
	if p.IsActive {
		status = "active"
	}
	fmt.Fprintf(w, "Plan %d: %s (%s, started %s)\n", p.ID, p.PlanName, status, p.StartDate)
	fmt.Fprintf(w, "Calories: %d kcal/day\n", p.DailyCalories)
	fmt.Fprintf(w, "Protein: %dg (%d%%)\n", p.ProteinG, p.ProteinPct)
	fmt.Fprintf(w, "Carbs: %dg (%d%%)\n", p.CarbsG, p.CarbsPct)
	fmt.Fprintf(w, "Fat: %dg (%d%%)\n", p.FatG, p.FatPct)
	fmt.Fprintf(w, "Fiber: %dg\n", p.FiberG)
	fmt.Fprintf(w, "Water: %d ml\n", p.WaterML)
	printMealTiming(w, p.MealTiming)
	if len(p.RecommendedFoods) > 0 {
		fmt.Fprintf(w, "Recommended: %s\n", strings.Join(p.RecommendedFoods, ", "))
	}
	if len(p.FoodsToAvoid) > 0 {
		fmt.Fprintf(w, "Avoid: %s\n", strings.Join(p.FoodsToAvoid, ", "))
	}
	for _, s := range p.SpecialInstructions {
		fmt.Fprintf(w, "- %s\n", s)
	}
}

func printMealTiming(w io.Writer, slots []planner.MealSlot) {
	fmt.Fprintln(w, "MEAL\tTIME\tPCT\tCALORIES")
	for _, s := range slots {
		fmt.Fprintf(w, "%s\t%s\t%d%%\t%d\n", s.Name, s.Time, s.Percent, s.Calories)
	}
}

func printCalculation(w io.Writer, c planner.Calculation) {
	fmt.Fprintf(w, "BMR: %d kcal\n", c.BMRRounded)
	fmt.Fprintf(w, "TDEE: %d kcal (%s x %g)\n", c.TDEE, c.ActivityLevel, c.ActivityMultiplier)
	fmt.Fprintf(w, "Goal: %s (%+d kcal)\n", c.Goal, c.GoalAdjustment)
	if c.FloorApplied {
		fmt.Fprintf(w, "Raised to the %d kcal minimum\n", c.CalorieFloor)
	}
}

func addPlanProfileFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntVar(&planAge, "age", 0, "Age in years")
	f.StringVar(&planGender, "gender", "", "male|female")
	f.Float64Var(&planHeight, "height", 0, "Height in cm")
	f.Float64Var(&planWeight, "weight", 0, "Weight in kg")
	f.StringVar(&planActivity, "activity", "", "sedentary|light|moderate|active|very_active")
	f.StringVar(&planGoal, "goal", "", "maintain|weight_loss|aggressive_loss|weight_gain|muscle_gain")
	f.StringSliceVar(&planConditions, "condition", nil, "Known condition (repeatable)")
	f.StringVar(&planDiet, "diet", "", "Diet preference, e.g. vegetarian, vegan, eggetarian")
	f.BoolVar(&planJSON, "json", false, "Output as JSON")
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.AddCommand(planGenerateCmd, planCalcCmd, planListCmd, planShowCmd, planActiveCmd, planActivateCmd, planDeleteCmd)

	addPlanProfileFlags(planGenerateCmd)
	addPlanProfileFlags(planCalcCmd)
	f := planGenerateCmd.Flags()
	f.StringSliceVar(&planAllergies, "allergy", nil, "Allergy (repeatable)")
	f.Float64Var(&planTargetWeight, "target-weight", 0, "Target weight in kg")
	f.Float64Var(&planFastingGlucose, "fasting-glucose", 0, "Fasting glucose mg/dL")
	f.Float64Var(&planHbA1c, "hba1c", 0, "HbA1c %")
	f.Float64Var(&planCholesterol, "cholesterol", 0, "Total cholesterol mg/dL")
	f.StringVar(&planBloodPressure, "blood-pressure", "", "Blood pressure, e.g. 130/85")

	for _, c := range []*cobra.Command{planListCmd, planShowCmd, planActiveCmd} {
		c.Flags().BoolVar(&planJSON, "json", false, "Output as JSON")
	}
}
