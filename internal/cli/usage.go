// Package cli provides help text and usage formatting for the skynet-loop CLI.
package cli

import (
	"github.com/spf13/cobra"
)

const helpTemplate = `skynet-loop - Autonomous workflow loop state manager

USAGE
  skynet-loop <command> [flags]

COMMANDS
  State Transitions:
    enable                                 Mark the loop active (reads CE_DPS_PHASE; creates state on first use)
    disable                                Mark the loop inactive
    update-state <action> <position> <next_command> [<sprint>]
                                           Record a workflow checkpoint
    increment-sprint                       Close the current sprint and point at the next one

  Interruption Detection:
    check-auto-compact                     Print "true"/"false": was the last run interrupted?
    display-auto-compact                   Print the recovery report if interrupted, nothing otherwise

  Inspection:
    display-state                          Print the state summary and recent history

  Maintenance:
    init                                   Create a fresh inactive state file
    clean --force                          Delete the state file (external reset)

FLAGS
  --state-dir <path>                       Directory for state and lock files (default: .skynet)
  --config <path>                          Path to additional config file
  --history-tail <int>                     History entries shown by display commands (default: 3)
  --lock-timeout <int>                     Seconds to wait for the state lock (default: 5)
  -v, --verbose                            Enable debug output
  --no-color                               Disable ANSI colors
  -h, --help                               Show this help text
  --version                                Show version, commit, build date

ENVIRONMENT
  SKYNET                                   Live activation signal ("true" when the loop runs)
  CE_DPS_PHASE                             Current CE-DPS phase label
  SKYNET_LOOP_*                            Config overrides (STATE_DIR, HISTORY_TAIL, ...)

EXIT CODES
  0   Success              Operation completed and state persisted
  1   Error                Invalid arguments, unknown command, misconfiguration
  2   NotInitialized       No state file exists where one was required
  3   CorruptState         State file exists but cannot be parsed
  4   LockBusy             State lock not acquired within the timeout
  130 Interrupted          SIGINT or SIGTERM received

EXAMPLES
  # Activate the loop for phase 2
  CE_DPS_PHASE=2 skynet-loop enable

  # Record a checkpoint after implementation
  skynet-loop update-state position_updated implementation_complete /skynet:quality-check

  # Close out a sprint
  skynet-loop increment-sprint

  # Did the previous run die without a clean disable?
  skynet-loop check-auto-compact

  # Show the current state and recent history
  skynet-loop display-state

For more information, see: https://github.com/Cyonx818/skynet-loop
`

// SetCustomHelp configures the cobra command to use our custom help template.
func SetCustomHelp(cmd *cobra.Command) {
	cmd.SetHelpTemplate(helpTemplate)
}
