package a3diet

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	dbPath  string
	userRef string
)

var rootCmd = &cobra.Command{
	Use:   "a3diet",
	Short: "a3diet generates diet plans and tracks meals, water and weight",
	Long:  "a3diet is the diet module of the A3 Health Card. It turns a health profile into a calorie, macro and meal-timing plan and tracks daily intake against it, from the terminal or over HTTP and MCP.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database (env A3_DB_PATH)")
	rootCmd.PersistentFlags().StringVar(&userRef, "user", "", "User id or external id (env A3_USER)")
}
