package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cyonx818/skynet-loop/internal/config"
)

func TestBindFlags_DefaultValues(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cmd := &cobra.Command{Use: "test"}
	BindFlags(cmd, cfg)

	err := cmd.ParseFlags([]string{})
	require.NoError(t, err)

	assert.Equal(t, ".skynet", cfg.StateDir)
	assert.Equal(t, 3, cfg.HistoryTail)
	assert.Equal(t, 5, cfg.LockTimeoutSecs)
	assert.Empty(t, cfg.ConfigFile)
	assert.False(t, cfg.Verbose)
	assert.False(t, cfg.NoColor)
}

func TestBindFlags_Overrides(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cmd := &cobra.Command{Use: "test"}
	BindFlags(cmd, cfg)

	err := cmd.ParseFlags([]string{
		"--state-dir", "/tmp/loop",
		"--history-tail", "5",
		"--lock-timeout", "30",
		"-v",
		"--no-color",
	})
	require.NoError(t, err)

	assert.Equal(t, "/tmp/loop", cfg.StateDir)
	assert.Equal(t, 5, cfg.HistoryTail)
	assert.Equal(t, 30, cfg.LockTimeoutSecs)
	assert.True(t, cfg.Verbose)
	assert.True(t, cfg.NoColor)
}

func TestValidateFlags_Defaults(t *testing.T) {
	cfg := config.NewDefaultConfig()
	assert.NoError(t, ValidateFlags(cfg))
}

func TestValidateFlags_MissingConfigFile(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cfg.ConfigFile = filepath.Join(t.TempDir(), "absent")

	err := ValidateFlags(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--config")
}

func TestValidateFlags_ExistingConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(path, []byte("STATE_DIR=/tmp\n"), 0644))

	cfg := config.NewDefaultConfig()
	cfg.ConfigFile = path
	assert.NoError(t, ValidateFlags(cfg))
}

func TestValidateFlags_BadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"empty state dir", func(c *config.Config) { c.StateDir = "" }, "--state-dir"},
		{"negative history tail", func(c *config.Config) { c.HistoryTail = -1 }, "--history-tail"},
		{"zero lock timeout", func(c *config.Config) { c.LockTimeoutSecs = 0 }, "--lock-timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.NewDefaultConfig()
			tt.mutate(cfg)

			err := ValidateFlags(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestBuildOverrides_OnlyChangedFlags(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cmd := &cobra.Command{Use: "test"}
	BindFlags(cmd, cfg)

	err := cmd.ParseFlags([]string{"--state-dir", "/tmp/loop", "--verbose"})
	require.NoError(t, err)

	overrides := BuildOverrides(cmd, cfg)
	assert.Equal(t, map[string]string{
		"STATE_DIR": "/tmp/loop",
		"VERBOSE":   "true",
	}, overrides)
}

func TestBuildOverrides_NoFlagsChanged(t *testing.T) {
	cfg := config.NewDefaultConfig()
	cmd := &cobra.Command{Use: "test"}
	BindFlags(cmd, cfg)

	err := cmd.ParseFlags([]string{})
	require.NoError(t, err)

	assert.Empty(t, BuildOverrides(cmd, cfg))
}

func TestValidateFlags_MergedConfigValues(t *testing.T) {
	// Bad values arriving via config files or SKYNET_LOOP_* bypass flag
	// parsing entirely, so the merged config must be re-validated.
	t.Run("config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config")
		require.NoError(t, os.WriteFile(path, []byte("LOCK_TIMEOUT=0\n"), 0644))

		cfg, err := config.LoadWithPrecedence("", path, "", nil)
		require.NoError(t, err)
		assert.Error(t, ValidateFlags(cfg))
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv("SKYNET_LOOP_HISTORY_TAIL", "-1")

		cfg, err := config.LoadWithPrecedence("", "", "", nil)
		require.NoError(t, err)
		assert.Error(t, ValidateFlags(cfg))
	})
}
