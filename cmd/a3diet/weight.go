package a3diet

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/a3health/a3diet/internal/model"
	"github.com/a3health/a3diet/internal/service"
)

var weightCmd = &cobra.Command{
	Use:   "weight",
	Short: "Track weight and body measurements",
}

var (
	weightUnit    string
	weightDate    string
	weightWaist   float64
	weightChest   float64
	weightHip     float64
	weightArm     float64
	weightThigh   float64
	weightBodyFat float64
	weightNotes   string
)

var weightAddCmd = &cobra.Command{
	Use:   "add <weight>",
	Short: "Log the day's weight (replaces an earlier entry for the same date)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := parseItemNumber("weight", args[0])
		if err != nil {
			return err
		}
		in := service.LogWeightInput{
			Date:           weightDate,
			Weight:         value,
			Unit:           weightUnit,
			WaistCM:        changedFloat(cmd, "waist", weightWaist),
			ChestCM:        changedFloat(cmd, "chest", weightChest),
			HipCM:          changedFloat(cmd, "hip", weightHip),
			ArmCM:          changedFloat(cmd, "arm", weightArm),
			ThighCM:        changedFloat(cmd, "thigh", weightThigh),
			BodyFatPercent: changedFloat(cmd, "body-fat", weightBodyFat),
			Notes:          weightNotes,
		}
		return withUser(func(sqldb *sql.DB, user model.User) error {
			w, err := service.LogWeight(sqldb, user.ID, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Weight logged: %s %.1f kg (BMI %s)\n", w.Date, w.WeightKG, formatOptional(w.BMI))
			return nil
		})
	},
}

var (
	weightListDays int
	weightListUnit string
)

var weightListCmd = &cobra.Command{
	Use:   "list",
	Short: "List weight entries, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUser(func(sqldb *sql.DB, user model.User) error {
			logs, err := service.ListWeights(sqldb, user.ID, service.WeightFilter{Days: weightListDays})
			if err != nil {
				return err
			}
			unit := weightListUnit
			if unit == "" {
				unit = "kg"
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tDATE\tWEIGHT\tUNIT\tBMI\tBODY_FAT%\tNOTES")
			for _, l := range logs {
				w, err := service.WeightFromKg(l.WeightKG, unit)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%.2f\t%s\t%s\t%s\t%s\n",
					l.ID, l.Date, w, unit, formatOptional(l.BMI), formatOptional(l.BodyFatPercent), l.Notes)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(weightCmd)
	weightCmd.AddCommand(weightAddCmd, weightListCmd)

	f := weightAddCmd.Flags()
	f.StringVar(&weightUnit, "unit", "kg", "Weight unit: kg|lb")
	f.StringVar(&weightDate, "date", "", "Date YYYY-MM-DD (default today)")
	f.Float64Var(&weightWaist, "waist", 0, "Waist in cm")
	f.Float64Var(&weightChest, "chest", 0, "Chest in cm")
	f.Float64Var(&weightHip, "hip", 0, "Hip in cm")
	f.Float64Var(&weightArm, "arm", 0, "Arm in cm")
	f.Float64Var(&weightThigh, "thigh", 0, "Thigh in cm")
	f.Float64Var(&weightBodyFat, "body-fat", 0, "Body fat %")
	f.StringVar(&weightNotes, "notes", "", "Notes")

	weightListCmd.Flags().IntVar(&weightListDays, "days", 30, "Days to include")
	weightListCmd.Flags().StringVar(&weightListUnit, "unit", "kg", "Display unit: kg|lb")
}
