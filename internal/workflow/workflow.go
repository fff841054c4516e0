// Package workflow defines the CE-DPS phase and loop-position vocabulary
// shared by the state manager and its reporting surfaces.
//
// Positions are opaque checkpoint labels recorded by the external driver;
// the constants here cover the checkpoints the driver is known to emit.
// Unknown labels are passed through untouched.
package workflow

// CE-DPS phase labels as supplied by the driver environment.
const (
	PhasePlanning       = "1"
	PhaseSprintPlanning = "2"
	PhaseExecution      = "3"
)

// Well-known loop positions.
const (
	PositionPhase1Complete         = "phase1_complete"
	PositionSprintSetupComplete    = "sprint_setup_complete"
	PositionImplementationComplete = "implementation_complete"
	PositionQualityCheckComplete   = "quality_check_complete"
)

// DefaultNextSprintCommand is the driver command a completed sprint points
// back to: phase-2 sprint setup for the next iteration.
const DefaultNextSprintCommand = "/skynet:phase2-sprint-setup"

// CommandForPosition suggests the driver command that continues the
// workflow from the given position. Unknown positions fall back to the
// sprint-setup command so a stalled loop always has a way forward.
func CommandForPosition(position string) string {
	switch position {
	case PositionPhase1Complete:
		return "/skynet:phase2-sprint-setup"
	case PositionSprintSetupComplete:
		return "/skynet:phase3-execute"
	case PositionImplementationComplete:
		return "/skynet:quality-check"
	case PositionQualityCheckComplete:
		return DefaultNextSprintCommand
	default:
		return DefaultNextSprintCommand
	}
}

// PhaseName returns the human-readable name for a CE-DPS phase label.
// Unknown labels return "unknown".
func PhaseName(phase string) string {
	switch phase {
	case PhasePlanning:
		return "Planning"
	case PhaseSprintPlanning:
		return "Sprint Planning"
	case PhaseExecution:
		return "Execution"
	default:
		return "unknown"
	}
}
