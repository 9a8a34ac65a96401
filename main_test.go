package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd(t *testing.T) {
	t.Run("should run the session with the given config", func(t *testing.T) {
		// given
		dir := t.TempDir()
		configPath := filepath.Join(dir, "mealplanner.yaml")
		yaml := fmt.Sprintf("db:\n  driver: sqlite\n  path: %s\nexport:\n  dir: %s\n", filepath.Join(dir, "meals.db"), dir)
		require.NoError(t, os.WriteFile(configPath, []byte(yaml), 0o644))
		var out bytes.Buffer
		cmd := newRootCmd()
		cmd.SetArgs([]string{"--config", configPath})
		cmd.SetIn(strings.NewReader("show\nlunch\nexit\n"))
		cmd.SetOut(&out)

		// when
		err := cmd.Execute()

		// then
		require.NoError(t, err)
		assert.Equal(t, "What would you like to do (add, show, plan, save, exit)?\n"+
			"Which category do you want to print (breakfast, lunch, dinner)?\n"+
			"No meals found.\n"+
			"What would you like to do (add, show, plan, save, exit)?\n"+
			"Bye!\n", out.String())
		assert.FileExists(t, filepath.Join(dir, "meals.db"))
	})

	t.Run("should fail on a broken config file", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "broken.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("db: [unclosed"), 0o644))
		cmd := newRootCmd()
		cmd.SetArgs([]string{"--config", configPath})
		cmd.SetIn(strings.NewReader("exit\n"))
		cmd.SetOut(&bytes.Buffer{})

		assert.Error(t, cmd.Execute())
	})
}
