package database

import (
	"path/filepath"
	"testing"

	"github.com/klokku/mealplanner/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebind(t *testing.T) {
	query := "INSERT INTO plan (slot, day, meal_category, meal, meal_id) VALUES (?, ?, ?, ?, ?)"

	t.Run("should keep question marks for sqlite", func(t *testing.T) {
		db := &DB{Dialect: SQLite}
		assert.Equal(t, query, db.Rebind(query))
	})

	t.Run("should number placeholders for postgres", func(t *testing.T) {
		db := &DB{Dialect: Postgres}
		assert.Equal(t,
			"INSERT INTO plan (slot, day, meal_category, meal, meal_id) VALUES ($1, $2, $3, $4, $5)",
			db.Rebind(query))
	})
}

func TestOpen(t *testing.T) {
	t.Run("should reject unknown driver", func(t *testing.T) {
		_, err := Open(config.Database{Driver: "oracle"})
		require.ErrorIs(t, err, ErrUnknownDriver)
	})

	t.Run("should create sqlite file and its directory", func(t *testing.T) {
		// given
		path := filepath.Join(t.TempDir(), "nested", "meals.db")

		// when
		db, err := Open(config.Database{Driver: "sqlite", Path: path})

		// then
		require.NoError(t, err)
		defer db.Close()
		assert.Equal(t, SQLite, db.Dialect)
		assert.FileExists(t, path)
	})
}

func TestMigrate(t *testing.T) {
	t.Run("should create tables and be idempotent", func(t *testing.T) {
		// given
		db, err := OpenSQLite(filepath.Join(t.TempDir(), "meals.db"))
		require.NoError(t, err)
		defer db.Close()

		// when
		require.NoError(t, Migrate(db))
		require.NoError(t, Migrate(db))

		// then
		for _, table := range []string{"meals", "ingredients", "plan"} {
			var name string
			err := db.SQL.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
			require.NoError(t, err, table)
			assert.Equal(t, table, name)
		}
	})

	t.Run("should work on an in-memory database", func(t *testing.T) {
		db, err := OpenSQLite(":memory:")
		require.NoError(t, err)
		defer db.Close()

		require.NoError(t, Migrate(db))

		var count int
		require.NoError(t, db.SQL.QueryRow("SELECT COUNT(*) FROM plan").Scan(&count))
		assert.Zero(t, count)
	})
}
