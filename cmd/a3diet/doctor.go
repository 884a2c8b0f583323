package a3diet

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/a3health/a3diet/internal/service"
)

var doctorFix bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run data integrity checks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(func(sqldb *sql.DB) error {
			report, err := service.RunDoctor(sqldb, doctorFix)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Invalid macro splits: %d\n", report.InvalidMacroSplits)
			fmt.Fprintf(cmd.OutOrStdout(), "Invalid plan JSON rows: %d\n", report.InvalidPlanJSON)
			fmt.Fprintf(cmd.OutOrStdout(), "Meal total mismatches: %d\n", report.MealTotalMismatch)
			fmt.Fprintf(cmd.OutOrStdout(), "Users with multiple active plans: %d\n", report.MultipleActive)
			if doctorFix {
				fmt.Fprintf(cmd.OutOrStdout(), "Fixed meal totals: %d\n", report.FixedMealTotals)
				// Re-check after fixes so exit status reflects final state.
				report, err = service.RunDoctor(sqldb, false)
				if err != nil {
					return err
				}
			}
			if report.HasIssues() {
				return fmt.Errorf("doctor found integrity issues")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Recompute meal totals from their items")
}
