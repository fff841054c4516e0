package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/Cyonx818/skynet-loop/internal/banner"
	"github.com/Cyonx818/skynet-loop/internal/config"
	"github.com/Cyonx818/skynet-loop/internal/detect"
	"github.com/Cyonx818/skynet-loop/internal/envinfo"
	"github.com/Cyonx818/skynet-loop/internal/logging"
	"github.com/Cyonx818/skynet-loop/internal/report"
	"github.com/Cyonx818/skynet-loop/internal/state"
	"github.com/Cyonx818/skynet-loop/internal/workflow"
)

func newEnableCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "enable",
		Short: "Mark the loop active (creates the state file on first use)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, ctx, cancel, err := setup(cmd, cfg)
			if err != nil {
				return err
			}
			defer cancel()

			env, err := envinfo.Load()
			if err != nil {
				return err
			}

			st, err := store.UpdateOrInit(ctx, func(s *state.LoopState) error {
				*s = state.Enable(*s, env.Phase, time.Now())
				return nil
			})
			if err != nil {
				return err
			}

			logging.Success(fmt.Sprintf("Loop enabled (phase %s, iteration %d)",
				workflow.PhaseName(env.Phase), st.LoopIteration))
			return nil
		},
	}
}

func newDisableCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "disable",
		Short: "Mark the loop inactive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, ctx, cancel, err := setup(cmd, cfg)
			if err != nil {
				return err
			}
			defer cancel()

			env, err := envinfo.Load()
			if err != nil {
				return err
			}

			st, err := store.Update(ctx, func(s *state.LoopState) error {
				*s = state.Disable(*s, env.Phase, time.Now())
				return nil
			})
			if err != nil {
				return err
			}

			logging.Success(fmt.Sprintf("Loop disabled (iteration %d)", st.LoopIteration))
			return nil
		},
	}
}

func newUpdateStateCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "update-state <action> <position> <next_command> [<sprint>]",
		Short: "Record a workflow checkpoint",
		Args:  cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			action := state.Action(args[0])
			position := args[1]
			nextCommand := args[2]

			var sprint *int
			if len(args) == 4 {
				v, err := strconv.Atoi(args[3])
				if err != nil || v < 1 {
					return fmt.Errorf("sprint must be a positive integer, got: %s", args[3])
				}
				sprint = &v
			}

			_, store, ctx, cancel, err := setup(cmd, cfg)
			if err != nil {
				return err
			}
			defer cancel()

			_, err = store.Update(ctx, func(s *state.LoopState) error {
				*s = state.Advance(*s, action, position, nextCommand, sprint, time.Now())
				return nil
			})
			if err != nil {
				return err
			}

			logging.Success(fmt.Sprintf("Position updated: %s (next: %s)", position, nextCommand))
			return nil
		},
	}
}

func newIncrementSprintCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "increment-sprint",
		Short: "Close the current sprint and point at the next one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			finalCfg, store, ctx, cancel, err := setup(cmd, cfg)
			if err != nil {
				return err
			}
			defer cancel()

			nextCommand := finalCfg.NextSprintCommand
			if nextCommand == "" {
				nextCommand = workflow.DefaultNextSprintCommand
			}

			var completed int
			st, err := store.Update(ctx, func(s *state.LoopState) error {
				completed = s.CurrentSprint
				*s = state.IncrementSprint(*s, workflow.PositionQualityCheckComplete, nextCommand, time.Now())
				return nil
			})
			if err != nil {
				return err
			}

			logging.Success(fmt.Sprintf("Sprint %d complete — next sprint: %d", completed, st.CurrentSprint))
			fmt.Printf("sprint_completed=%d\nnext_sprint=%d\n", completed, st.CurrentSprint)
			return nil
		},
	}
}

func newCheckAutoCompactCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "check-auto-compact",
		Short: `Print "true"/"false": was the last run interrupted?`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, _, cancel, err := setup(cmd, cfg)
			if err != nil {
				return err
			}
			defer cancel()

			env, err := envinfo.Load()
			if err != nil {
				return err
			}

			interrupted, err := detect.Check(store, env.LiveFlag())
			if err != nil {
				return err
			}

			fmt.Println(strconv.FormatBool(interrupted))
			return nil
		},
	}
}

func newDisplayAutoCompactCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "display-auto-compact",
		Short: "Print the recovery report if interrupted, nothing otherwise",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			finalCfg, store, _, cancel, err := setup(cmd, cfg)
			if err != nil {
				return err
			}
			defer cancel()

			env, err := envinfo.Load()
			if err != nil {
				return err
			}

			st, err := store.Load()
			if err != nil {
				if errors.Is(err, state.ErrNotInitialized) {
					return nil
				}
				return err
			}

			if !detect.Interrupted(st, env.LiveFlag()) {
				return nil
			}

			banner.PrintInterruptionBanner(report.NewInterruptionView(st, finalCfg.HistoryTail))
			return nil
		},
	}
}

func newDisplayStateCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "display-state",
		Short: "Print the state summary and recent history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			finalCfg, store, _, cancel, err := setup(cmd, cfg)
			if err != nil {
				return err
			}
			defer cancel()

			st, err := store.Load()
			if err != nil {
				return err
			}

			banner.PrintStateBanner(report.NewView(st, finalCfg.HistoryTail), time.Now())
			return nil
		},
	}
}

func newInitCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a fresh inactive state file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, ctx, cancel, err := setup(cmd, cfg)
			if err != nil {
				return err
			}
			defer cancel()

			if _, err := store.Init(ctx); err != nil {
				return err
			}

			logging.Success("Initialized " + store.Path())
			return nil
		},
	}
}

func newCleanCmd(cfg *config.Config) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Delete the state file (external reset)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				return fmt.Errorf("refusing to delete loop state without --force")
			}

			_, store, ctx, cancel, err := setup(cmd, cfg)
			if err != nil {
				return err
			}
			defer cancel()

			if err := store.Remove(ctx); err != nil {
				if errors.Is(err, state.ErrNotInitialized) {
					logging.Info("No state file to remove")
					return nil
				}
				return err
			}

			logging.Success("Removed " + store.Path())
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Confirm deletion of the state file")
	return cmd
}
