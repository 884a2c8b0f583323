package a3diet

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/a3health/a3diet/internal/model"
	"github.com/a3health/a3diet/internal/service"
)

var favoriteCmd = &cobra.Command{
	Use:   "favorite",
	Short: "Manage favorite foods",
}

var (
	favoriteQuantity float64
	favoriteUnit     string
)

var favoriteAddCmd = &cobra.Command{
	Use:   "add <food_id>",
	Short: "Add a food to favorites",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("food id", args[0])
		if err != nil {
			return err
		}
		in := service.FavoriteInput{
			FoodID:            id,
			PreferredQuantity: changedFloat(cmd, "quantity", favoriteQuantity),
			PreferredUnit:     favoriteUnit,
		}
		return withUser(func(sqldb *sql.DB, user model.User) error {
			added, err := service.AddFavorite(sqldb, user.ID, in)
			if err != nil {
				return err
			}
			if added {
				fmt.Fprintln(cmd.OutOrStdout(), "Added to favorites")
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "Already in favorites")
			}
			return nil
		})
	},
}

var favoriteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List favorite foods",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withUser(func(sqldb *sql.DB, user model.User) error {
			favs, err := service.ListFavorites(sqldb, user.ID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "FOOD_ID\tNAME\tCALORIES\tQUANTITY\tUNIT")
			for _, f := range favs {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%.0f\t%s\t%s\n",
					f.FoodID, f.Food.FoodName, f.Food.Calories, formatOptional(f.PreferredQuantity), orDash(f.PreferredUnit))
			}
			return nil
		})
	},
}

var favoriteRemoveCmd = &cobra.Command{
	Use:   "remove <food_id>",
	Short: "Remove a food from favorites",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("food id", args[0])
		if err != nil {
			return err
		}
		return withUser(func(sqldb *sql.DB, user model.User) error {
			if err := service.RemoveFavorite(sqldb, user.ID, id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Removed from favorites")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(favoriteCmd)
	favoriteCmd.AddCommand(favoriteAddCmd, favoriteListCmd, favoriteRemoveCmd)
	favoriteAddCmd.Flags().Float64Var(&favoriteQuantity, "quantity", 0, "Preferred quantity")
	favoriteAddCmd.Flags().StringVar(&favoriteUnit, "unit", "", "Preferred unit")
}
