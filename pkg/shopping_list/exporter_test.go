package shopping_list

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/klokku/mealplanner/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileExporter(t *testing.T) {
	t.Run("should truncate an existing file", func(t *testing.T) {
		// given
		dir := t.TempDir()
		path := filepath.Join(dir, "list.txt")
		require.NoError(t, os.WriteFile(path, []byte("old content that is longer\n"), 0o644))
		exporter := &FileExporter{Dir: dir}

		// when
		location, err := exporter.Export(ctx, "list.txt", []byte("Egg\n"))

		// then
		require.NoError(t, err)
		assert.Equal(t, path, location)
		content, _ := os.ReadFile(path)
		assert.Equal(t, "Egg\n", string(content))
	})

	t.Run("should use absolute targets as given", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "abs.txt")
		exporter := &FileExporter{Dir: "/nonexistent"}

		location, err := exporter.Export(ctx, path, []byte("Milk\n"))

		require.NoError(t, err)
		assert.Equal(t, path, location)
		assert.FileExists(t, path)
	})

	t.Run("should reject empty target", func(t *testing.T) {
		exporter := &FileExporter{Dir: t.TempDir()}

		_, err := exporter.Export(ctx, "   ", []byte("Milk\n"))

		assert.ErrorIs(t, err, ErrEmptyTarget)
	})

	t.Run("should fail when directory does not exist", func(t *testing.T) {
		exporter := &FileExporter{Dir: filepath.Join(t.TempDir(), "missing")}

		_, err := exporter.Export(ctx, "list.txt", []byte("Milk\n"))

		assert.Error(t, err)
	})
}

func TestNewExporter(t *testing.T) {
	t.Run("should default to file exporter", func(t *testing.T) {
		exporter, err := NewExporter(ctx, config.Export{Dir: "out"})

		require.NoError(t, err)
		assert.Equal(t, &FileExporter{Dir: "out"}, exporter)
	})

	t.Run("should build s3 exporter", func(t *testing.T) {
		exporter, err := NewExporter(ctx, config.Export{Driver: "s3", S3: config.S3{
			Bucket: "lists", AccessKey: "AKIA", SecretKey: "SECRET",
		}})

		require.NoError(t, err)
		assert.IsType(t, &S3Exporter{}, exporter)
	})

	t.Run("should require a bucket for s3", func(t *testing.T) {
		_, err := NewExporter(ctx, config.Export{Driver: "s3"})

		assert.Error(t, err)
	})

	t.Run("should reject unknown driver", func(t *testing.T) {
		_, err := NewExporter(ctx, config.Export{Driver: "ftp"})

		assert.ErrorIs(t, err, ErrUnknownExporter)
	})
}
