// Package config defines the skynet-loop configuration model and default
// values.
//
// Configuration is assembled from multiple sources with a strict
// precedence chain: built-in defaults < global config file < project
// config file < explicit config file < environment < CLI flags.
package config

import (
	"os"
	"path/filepath"
	"time"
)

// WhitelistedVars lists every configuration variable name that may appear
// in config files. Variables not in this list are silently ignored during
// loading.
var WhitelistedVars = [6]string{
	"STATE_DIR",
	"HISTORY_TAIL",
	"LOCK_TIMEOUT",
	"NEXT_SPRINT_COMMAND",
	"VERBOSE",
	"NO_COLOR",
}

// ProjectConfigFile is the per-project config file consulted when present.
const ProjectConfigFile = ".skynet/config"

// GlobalConfigPath returns the per-user config file path
// ($HOME/.skynet/config), or "" when the home directory cannot be
// resolved, which skips the global layer entirely.
func GlobalConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".skynet", "config")
}

// Config holds every configuration field for the skynet-loop CLI.
type Config struct {
	// StateDir is the directory holding the state and lock files.
	StateDir string

	// HistoryTail is how many trailing history entries reports show.
	HistoryTail int

	// LockTimeoutSecs bounds the wait for the advisory lock.
	LockTimeoutSecs int

	// NextSprintCommand is the driver command increment-sprint points
	// the loop at; empty means the workflow default.
	NextSprintCommand string

	// Runtime flags.
	Verbose bool
	NoColor bool

	// CLI-only flags (not loaded from config files).
	ConfigFile string
}

// NewDefaultConfig returns a Config populated with all built-in default
// values.
func NewDefaultConfig() *Config {
	return &Config{
		StateDir:        ".skynet",
		HistoryTail:     3,
		LockTimeoutSecs: 5,
	}
}

// StatePath returns the full path of the state file.
func (c *Config) StatePath() string {
	return filepath.Join(c.StateDir, "loop-state.json")
}

// LockTimeout returns the lock wait bound as a duration.
func (c *Config) LockTimeout() time.Duration {
	return time.Duration(c.LockTimeoutSecs) * time.Second
}
