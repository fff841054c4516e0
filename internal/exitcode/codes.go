// Package exitcode defines named exit codes for the skynet-loop CLI.
//
// Each code maps a specific termination condition to a numeric value
// recognized by the driver scripts that invoke skynet-loop between
// phase commands.
package exitcode

// Exit code constants for loop state operations.
const (
	Success        = 0   // Operation completed and state persisted
	Error          = 1   // Invalid args, unknown subcommand, misconfiguration
	NotInitialized = 2   // No state file exists where one was required
	CorruptState   = 3   // State file exists but cannot be parsed
	LockBusy       = 4   // Advisory lock not acquired within the timeout
	Interrupted    = 130 // SIGINT/SIGTERM received
)

// Name returns the human-readable name for the given exit code.
// Unknown codes return "unknown".
func Name(code int) string {
	switch code {
	case Success:
		return "Success"
	case Error:
		return "Error"
	case NotInitialized:
		return "NotInitialized"
	case CorruptState:
		return "CorruptState"
	case LockBusy:
		return "LockBusy"
	case Interrupted:
		return "Interrupted"
	default:
		return "unknown"
	}
}
