package a3diet

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/a3health/a3diet/internal/app"
	"github.com/a3health/a3diet/internal/db"
	"github.com/a3health/a3diet/internal/model"
	"github.com/a3health/a3diet/internal/service"
)

func resolveDBPath() (string, error) {
	return app.ResolveDBPath(dbPath, os.Getenv("A3_DB_PATH"))
}

func withDB(run func(*sql.DB) error) error {
	path, err := resolveDBPath()
	if err != nil {
		return err
	}
	if err := app.EnsureDBDir(path); err != nil {
		return err
	}
	sqldb, err := db.Open(path)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		return err
	}
	return run(sqldb)
}

// withUser is withDB for commands that act on one user's data.
func withUser(run func(*sql.DB, model.User) error) error {
	ref := strings.TrimSpace(userRef)
	if ref == "" {
		ref = strings.TrimSpace(os.Getenv("A3_USER"))
	}
	if ref == "" {
		return fmt.Errorf("--user is required (see 'a3diet user list')")
	}
	return withDB(func(sqldb *sql.DB) error {
		user, err := service.ResolveUser(sqldb, ref)
		if err != nil {
			return err
		}
		return run(sqldb, user)
	})
}

func parseInt64Arg(name, value string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be > 0", name)
	}
	return v, nil
}

func printJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Fprintln(w, string(b))
	return nil
}

// changedFloat returns a pointer to v only when the flag was given.
func changedFloat(cmd *cobra.Command, name string, v float64) *float64 {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &v
}

func changedInt(cmd *cobra.Command, name string, v int) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &v
}

func changedString(cmd *cobra.Command, name, v string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &v
}

func formatOptional(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func orDash(v string) string {
	if strings.TrimSpace(v) == "" {
		return "-"
	}
	return v
}
