package a3diet

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/a3health/a3diet/internal/model"
	"github.com/a3health/a3diet/internal/service"
)

var waterCmd = &cobra.Command{
	Use:   "water",
	Short: "Track daily water intake",
}

var (
	waterML      int
	waterGlasses int
	waterGoal    int
	waterDate    string
)

var waterAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add water to a day's total",
	RunE: func(cmd *cobra.Command, args []string) error {
		in := service.LogWaterInput{Date: waterDate, AddML: waterML, AddGlasses: waterGlasses, GoalML: waterGoal}
		return withUser(func(sqldb *sql.DB, user model.User) error {
			w, err := service.LogWater(sqldb, user.ID, in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Water logged")
			printWater(cmd, w)
			return nil
		})
	},
}

var waterShowDate string

var waterShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show a day's water intake",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUser(func(sqldb *sql.DB, user model.User) error {
			w, err := service.GetWater(sqldb, user.ID, waterShowDate, time.Now())
			if err != nil {
				return err
			}
			printWater(cmd, w)
			return nil
		})
	},
}

func printWater(cmd *cobra.Command, w model.WaterLog) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d / %d ml (%d glasses, %.1f%%)\n", w.Date, w.AmountML, w.GoalML, w.Glasses, w.Percentage)
}

func init() {
	rootCmd.AddCommand(waterCmd)
	waterCmd.AddCommand(waterAddCmd, waterShowCmd)

	waterAddCmd.Flags().IntVar(&waterML, "ml", 0, "Millilitres to add")
	waterAddCmd.Flags().IntVar(&waterGlasses, "glasses", 0, "Glasses to add (250 ml each)")
	waterAddCmd.Flags().IntVar(&waterGoal, "goal", 0, "Set the day's goal in ml")
	waterAddCmd.Flags().StringVar(&waterDate, "date", "", "Date YYYY-MM-DD (default today)")

	waterShowCmd.Flags().StringVar(&waterShowDate, "date", "", "Date YYYY-MM-DD (default today)")
}
