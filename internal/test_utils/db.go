package test_utils

import (
	"testing"

	"github.com/klokku/mealplanner/internal/database"
)

// SetupTestDB opens a private in-memory SQLite database with all migrations applied.
// The database is closed when the test finishes.
func SetupTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})

	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to apply migrations: %v", err)
	}

	return db
}
