package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cyonx818/skynet-loop/internal/config"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("parses whitelisted keys", func(t *testing.T) {
		path := writeConfig(t, dir, "config", `
# skynet-loop project config
STATE_DIR=/tmp/loop
HISTORY_TAIL=5

VERBOSE=true
`)
		m, err := config.LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{
			"STATE_DIR":    "/tmp/loop",
			"HISTORY_TAIL": "5",
			"VERBOSE":      "true",
		}, m)
	})

	t.Run("skips comments, blanks and malformed lines", func(t *testing.T) {
		path := writeConfig(t, dir, "messy", `
# comment
not a key value line
STATE_DIR = /spaced/out
`)
		m, err := config.LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"STATE_DIR": "/spaced/out"}, m)
	})

	t.Run("ignores non-whitelisted keys", func(t *testing.T) {
		path := writeConfig(t, dir, "extra", `
STATE_DIR=/a
SECRET_TOKEN=abc
PATH=/usr/bin
`)
		m, err := config.LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"STATE_DIR": "/a"}, m)
	})

	t.Run("splits on first equals only", func(t *testing.T) {
		path := writeConfig(t, dir, "equals", `NEXT_SPRINT_COMMAND=/skynet:run --flag=value`)
		m, err := config.LoadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "/skynet:run --flag=value", m["NEXT_SPRINT_COMMAND"])
	})

	t.Run("missing file errors", func(t *testing.T) {
		_, err := config.LoadFile(filepath.Join(dir, "nope"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestLoadWithPrecedence(t *testing.T) {
	dir := t.TempDir()

	t.Run("defaults only", func(t *testing.T) {
		cfg, err := config.LoadWithPrecedence("", "", "", nil)
		require.NoError(t, err)
		assert.Equal(t, config.NewDefaultConfig(), cfg)
	})

	t.Run("global file overrides defaults", func(t *testing.T) {
		global := writeConfig(t, dir, "global", "STATE_DIR=/global\nHISTORY_TAIL=8\n")

		cfg, err := config.LoadWithPrecedence(global, "", "", nil)
		require.NoError(t, err)
		assert.Equal(t, "/global", cfg.StateDir)
		assert.Equal(t, 8, cfg.HistoryTail)
	})

	t.Run("project file overrides global file", func(t *testing.T) {
		global := writeConfig(t, dir, "global2", "STATE_DIR=/global\nLOCK_TIMEOUT=9\n")
		project := writeConfig(t, dir, "project0", "STATE_DIR=/project\n")

		cfg, err := config.LoadWithPrecedence(global, project, "", nil)
		require.NoError(t, err)
		assert.Equal(t, "/project", cfg.StateDir)
		assert.Equal(t, 9, cfg.LockTimeoutSecs, "global keys absent from the project file survive")
	})

	t.Run("missing global config is not an error", func(t *testing.T) {
		cfg, err := config.LoadWithPrecedence(filepath.Join(dir, "absent"), "", "", nil)
		require.NoError(t, err)
		assert.Equal(t, ".skynet", cfg.StateDir)
	})

	t.Run("missing project config is not an error", func(t *testing.T) {
		cfg, err := config.LoadWithPrecedence("", filepath.Join(dir, "absent"), "", nil)
		require.NoError(t, err)
		assert.Equal(t, ".skynet", cfg.StateDir)
	})

	t.Run("missing explicit config is an error", func(t *testing.T) {
		_, err := config.LoadWithPrecedence("", "", filepath.Join(dir, "absent"), nil)
		require.Error(t, err)
	})

	t.Run("explicit file overrides project file", func(t *testing.T) {
		project := writeConfig(t, dir, "project", "STATE_DIR=/project\nHISTORY_TAIL=7\n")
		explicit := writeConfig(t, dir, "explicit", "STATE_DIR=/explicit\n")

		cfg, err := config.LoadWithPrecedence("", project, explicit, nil)
		require.NoError(t, err)
		assert.Equal(t, "/explicit", cfg.StateDir)
		assert.Equal(t, 7, cfg.HistoryTail, "keys absent from higher layers survive")
	})

	t.Run("environment overrides files", func(t *testing.T) {
		t.Setenv("SKYNET_LOOP_STATE_DIR", "/from-env")
		project := writeConfig(t, dir, "project2", "STATE_DIR=/project\n")

		cfg, err := config.LoadWithPrecedence("", project, "", nil)
		require.NoError(t, err)
		assert.Equal(t, "/from-env", cfg.StateDir)
	})

	t.Run("cli overrides beat everything", func(t *testing.T) {
		t.Setenv("SKYNET_LOOP_STATE_DIR", "/from-env")
		project := writeConfig(t, dir, "project3", "STATE_DIR=/project\n")

		cfg, err := config.LoadWithPrecedence("", project, "", map[string]string{
			"STATE_DIR": "/from-cli",
		})
		require.NoError(t, err)
		assert.Equal(t, "/from-cli", cfg.StateDir)
	})

	t.Run("environment booleans and integers", func(t *testing.T) {
		t.Setenv("SKYNET_LOOP_VERBOSE", "true")
		t.Setenv("SKYNET_LOOP_HISTORY_TAIL", "9")

		cfg, err := config.LoadWithPrecedence("", "", "", nil)
		require.NoError(t, err)
		assert.True(t, cfg.Verbose)
		assert.Equal(t, 9, cfg.HistoryTail)
	})
}
