// Package cli provides flag binding and validation for the skynet-loop CLI.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Cyonx818/skynet-loop/internal/config"
)

// BindFlags registers the global CLI flags on the given cobra command.
// The flags directly modify fields in the provided config pointer.
// Call ValidateFlags after parsing to check flag values.
func BindFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.PersistentFlags()

	// State location
	flags.StringVar(&cfg.StateDir, "state-dir", ".skynet", "Directory holding the state and lock files")
	flags.StringVar(&cfg.ConfigFile, "config", "", "Path to additional config file")

	// Display
	flags.IntVar(&cfg.HistoryTail, "history-tail", 3, "History entries shown by display commands")

	// Locking
	flags.IntVar(&cfg.LockTimeoutSecs, "lock-timeout", 5, "Seconds to wait for the state lock")

	// Runtime flags
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Enable debug output")
	flags.BoolVar(&cfg.NoColor, "no-color", false, "Disable ANSI colors")
}

// ValidateFlags checks flag values after parsing.
// Must be called after cmd.Execute() or cmd.ParseFlags().
func ValidateFlags(cfg *config.Config) error {
	// --config must exist if provided
	if cfg.ConfigFile != "" {
		if _, err := os.Stat(cfg.ConfigFile); err != nil {
			return fmt.Errorf("--config: %w", err)
		}
	}

	if cfg.StateDir == "" {
		return fmt.Errorf("--state-dir must not be empty")
	}
	if cfg.HistoryTail < 0 {
		return fmt.Errorf("--history-tail must be >= 0, got: %d", cfg.HistoryTail)
	}
	if cfg.LockTimeoutSecs <= 0 {
		return fmt.Errorf("--lock-timeout must be > 0, got: %d", cfg.LockTimeoutSecs)
	}

	return nil
}

// BuildOverrides creates a map of CLI flag overrides from the config.
// Uses cmd.Flags().Changed() to only include flags explicitly set by the
// user, ensuring config file values are not accidentally overridden by
// default values.
func BuildOverrides(cmd *cobra.Command, cfg *config.Config) map[string]string {
	overrides := make(map[string]string)

	if cmd.Flags().Changed("state-dir") {
		overrides["STATE_DIR"] = cfg.StateDir
	}
	if cmd.Flags().Changed("history-tail") {
		overrides["HISTORY_TAIL"] = fmt.Sprintf("%d", cfg.HistoryTail)
	}
	if cmd.Flags().Changed("lock-timeout") {
		overrides["LOCK_TIMEOUT"] = fmt.Sprintf("%d", cfg.LockTimeoutSecs)
	}
	if cmd.Flags().Changed("verbose") {
		overrides["VERBOSE"] = fmt.Sprintf("%t", cfg.Verbose)
	}
	if cmd.Flags().Changed("no-color") {
		overrides["NO_COLOR"] = fmt.Sprintf("%t", cfg.NoColor)
	}

	return overrides
}
