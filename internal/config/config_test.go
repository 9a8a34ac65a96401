package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("should use defaults when file is missing", func(t *testing.T) {
		// when
		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

		// then
		require.NoError(t, err)
		assert.Equal(t, "sqlite", cfg.Database.Driver)
		assert.Equal(t, "./data/meals.db", cfg.Database.Path)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "fs", cfg.Export.Driver)
		assert.Equal(t, ".", cfg.Export.Dir)
		assert.Equal(t, "us-east-1", cfg.Export.S3.Region)
		assert.Equal(t, ":8181", cfg.Server.Addr)
	})

	t.Run("should override defaults from yaml file", func(t *testing.T) {
		// given
		path := filepath.Join(t.TempDir(), "mealplanner.yaml")
		content := `
db:
  driver: postgres
  host: db.local
  port: 6543
  name: meals
export:
  driver: s3
  s3:
    bucket: lists
    pathstyle: true
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		// when
		cfg, err := Load(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, "postgres", cfg.Database.Driver)
		assert.Equal(t, "db.local", cfg.Database.Host)
		assert.Equal(t, 6543, cfg.Database.Port)
		assert.Equal(t, "meals", cfg.Database.Name)
		assert.Equal(t, "postgres", cfg.Database.User)
		assert.Equal(t, "s3", cfg.Export.Driver)
		assert.Equal(t, "lists", cfg.Export.S3.Bucket)
		assert.True(t, cfg.Export.S3.PathStyle)
	})

	t.Run("should let environment win over file", func(t *testing.T) {
		// given
		path := filepath.Join(t.TempDir(), "mealplanner.yaml")
		require.NoError(t, os.WriteFile(path, []byte("db:\n  path: /from/file.db\n"), 0o644))
		t.Setenv("MEALPLANNER_DB_PATH", "/from/env.db")
		t.Setenv("MEALPLANNER_SERVER_ADDR", ":9000")

		// when
		cfg, err := Load(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, "/from/env.db", cfg.Database.Path)
		assert.Equal(t, ":9000", cfg.Server.Addr)
	})

	t.Run("should fail on malformed yaml", func(t *testing.T) {
		// given
		path := filepath.Join(t.TempDir(), "broken.yaml")
		require.NoError(t, os.WriteFile(path, []byte("db: [unclosed"), 0o644))

		// when
		_, err := Load(path)

		// then
		require.Error(t, err)
	})
}
