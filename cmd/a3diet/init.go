package a3diet

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/a3health/a3diet/internal/app"
	"github.com/a3health/a3diet/internal/db"
	"github.com/a3health/a3diet/internal/service"
)

var initUserName string

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create or upgrade the local a3diet database",
	Long:  "Create the database, apply pending migrations and seed the reference foods. With --name, the first user is created when the database has none.",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveDBPath()
		if err != nil {
			return err
		}
		if err := app.EnsureDBDir(path); err != nil {
			return err
		}
		sqldb, err := db.OpenMigrated(path)
		if err != nil {
			return err
		}
		defer sqldb.Close()

		categories, err := service.FoodCategories(sqldb)
		if err != nil {
			return err
		}
		foods := 0
		for _, c := range categories {
			foods += c.Count
		}
		users, err := service.ListUsers(sqldb)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Initialized a3diet database at %s\n", path)
		fmt.Fprintf(w, "Foods: %d in %d categories\n", foods, len(categories))
		if len(users) == 0 && initUserName != "" {
			u, err := service.CreateUser(sqldb, initUserName, "")
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "Created user %d (%s) external id %s\n", u.ID, u.Role, u.ExternalID)
			return nil
		}
		if len(users) == 0 {
			fmt.Fprintln(w, "No users yet (run 'a3diet user add <name>')")
			return nil
		}
		fmt.Fprintf(w, "Users: %d\n", len(users))
		return nil
	},
}

func init() {
	initCmd.Flags().StringVar(&initUserName, "name", "", "Create this user when the database has none")
	rootCmd.AddCommand(initCmd)
}
