package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Cyonx818/skynet-loop/internal/cli"
	"github.com/Cyonx818/skynet-loop/internal/config"
	"github.com/Cyonx818/skynet-loop/internal/exitcode"
	"github.com/Cyonx818/skynet-loop/internal/lock"
	"github.com/Cyonx818/skynet-loop/internal/logging"
	sighandler "github.com/Cyonx818/skynet-loop/internal/signal"
	"github.com/Cyonx818/skynet-loop/internal/state"
)

// version vars injected via ldflags at build time
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cfg := config.NewDefaultConfig()

	rootCmd := &cobra.Command{
		Use:     "skynet-loop",
		Short:   "Autonomous workflow loop state manager",
		Long:    "skynet-loop persists the CE-DPS autonomous loop state, records every transition, and detects runs that died without a clean disable.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Bind global flags to the config
	cli.BindFlags(rootCmd, cfg)

	// Set custom help template
	cli.SetCustomHelp(rootCmd)

	rootCmd.AddCommand(
		newEnableCmd(cfg),
		newDisableCmd(cfg),
		newUpdateStateCmd(cfg),
		newIncrementSprintCmd(cfg),
		newCheckAutoCompactCmd(cfg),
		newDisplayAutoCompactCmd(cfg),
		newDisplayStateCmd(cfg),
		newInitCmd(cfg),
		newCleanCmd(cfg),
	)

	if err := rootCmd.Execute(); err != nil {
		logging.Error(err.Error())
		os.Exit(exitCodeFor(err))
	}
}

// exitCodeFor maps the error taxonomy to the CLI's named exit codes.
func exitCodeFor(err error) int {
	switch {
	case errors.Is(err, state.ErrNotInitialized):
		return exitcode.NotInitialized
	case errors.Is(err, state.ErrCorruptState):
		return exitcode.CorruptState
	case errors.Is(err, lock.ErrTimeout):
		return exitcode.LockBusy
	case errors.Is(err, context.Canceled):
		return exitcode.Interrupted
	default:
		return exitcode.Error
	}
}

// setup assembles the final config for one invocation and opens the
// store. The context is canceled on SIGINT/SIGTERM so a lock wait never
// outlives the process's welcome.
func setup(cmd *cobra.Command, cfg *config.Config) (*config.Config, *state.Store, context.Context, context.CancelFunc, error) {
	if err := cli.ValidateFlags(cfg); err != nil {
		return nil, nil, nil, nil, err
	}

	// Build CLI overrides using Changed() for accurate detection
	cliOverrides := cli.BuildOverrides(cmd, cfg)

	finalCfg, err := config.LoadWithPrecedence(config.GlobalConfigPath(), config.ProjectConfigFile, cfg.ConfigFile, cliOverrides)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("load config: %w", err)
	}
	finalCfg.ConfigFile = cfg.ConfigFile

	// Values merged from config files and SKYNET_LOOP_* must pass the
	// same checks as CLI flags.
	if err := cli.ValidateFlags(finalCfg); err != nil {
		return nil, nil, nil, nil, err
	}

	logging.SetVerbose(finalCfg.Verbose)
	logging.SetNoColor(finalCfg.NoColor)

	store := state.NewStoreWithLockTimeout(finalCfg.StatePath(), finalCfg.LockTimeout())
	logging.Debug("state file: " + store.Path())

	ctx, cancel := context.WithCancel(context.Background())
	sighandler.SetupSignalHandler(ctx, cancel, func() {
		logging.Warn("Interrupted — abandoning lock wait...")
	})

	return finalCfg, store, ctx, cancel, nil
}
