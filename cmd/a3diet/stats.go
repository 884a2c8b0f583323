package a3diet

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/a3health/a3diet/internal/model"
	"github.com/a3health/a3diet/internal/service"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show today's intake against the plan targets",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUser(func(sqldb *sql.DB, user model.User) error {
			s, err := service.Stats(sqldb, user.ID, time.Now())
			if err != nil {
				return err
			}
			if statsJSON {
				return printJSON(cmd.OutOrStdout(), s)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Date: %s\n", s.Date)
			fmt.Fprintf(out, "Calories: %d / %d kcal (%d meals)\n", s.Today.Calories, s.Targets.Calories, s.Today.MealsLogged)
			fmt.Fprintf(out, "Protein: %.1f / %d g\n", s.Today.Protein, s.Targets.ProteinG)
			fmt.Fprintf(out, "Carbs: %.1f / %d g\n", s.Today.Carbs, s.Targets.CarbsG)
			fmt.Fprintf(out, "Fat: %.1f / %d g\n", s.Today.Fat, s.Targets.FatG)
			fmt.Fprintf(out, "Water: %d / %d ml (%.1f%%)\n", s.Water.AmountML, s.Water.GoalML, s.Water.Percentage)
			if s.Weight.CurrentKG != nil {
				fmt.Fprintf(out, "Weight: %.1f kg (BMI %s, logged %s)\n", *s.Weight.CurrentKG, formatOptional(s.Weight.BMI), *s.Weight.LastLogged)
			}
			fmt.Fprintf(out, "7-day average: %d kcal\n", s.AvgDailyCalories)
			if !s.HasHealthProfile {
				fmt.Fprintln(out, "No health profile yet: run 'a3diet profile set'")
			} else if !s.HasActivePlan {
				fmt.Fprintln(out, "No active plan: run 'a3diet plan generate'")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output as JSON")
}
