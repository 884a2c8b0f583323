package service_test

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/a3health/a3diet/internal/db"
	"github.com/a3health/a3diet/internal/model"
	"github.com/a3health/a3diet/internal/service"
)

var testNow = time.Date(2026, time.March, 10, 9, 30, 0, 0, time.Local)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "a3diet.db")
	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = sqldb.Close() })
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return sqldb
}

func newTestUser(t *testing.T, sqldb *sql.DB) model.User {
	t.Helper()
	u, err := service.CreateUser(sqldb, "Asha", service.RoleClient)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func foodByName(t *testing.T, sqldb *sql.DB, name string) model.Food {
	t.Helper()
	foods, err := service.SearchFoods(sqldb, service.FoodSearch{Query: name})
	if err != nil {
		t.Fatalf("search %q: %v", name, err)
	}
	for _, f := range foods {
		if f.FoodName == name {
			return f
		}
	}
	t.Fatalf("food %q not found", name)
	return model.Food{}
}

func ptr[T any](v T) *T {
	return &v
}
