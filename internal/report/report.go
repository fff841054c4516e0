// Package report builds read-only views of the loop state for human
// consumption. Nothing here mutates the store; rendering is left to the
// banner package.
package report

import (
	"time"

	"github.com/Cyonx818/skynet-loop/internal/state"
	"github.com/Cyonx818/skynet-loop/internal/workflow"
)

// View is a render-ready snapshot of the loop state with the trailing
// history in chronological (oldest-first) order.
type View struct {
	Active        bool
	Position      string
	CurrentSprint int
	LoopIteration int
	NextCommand   string
	LastUpdated   string
	LastExecution string
	History       []state.HistoryEntry
}

// Suggestion is one recovery option shown after a detected interruption.
type Suggestion struct {
	Label   string
	Command string
}

// InterruptionView is a View plus the recovery options derived from it.
type InterruptionView struct {
	View
	Suggestions []Suggestion
}

// NewView snapshots st, keeping the last tail history entries.
func NewView(st *state.LoopState, tail int) View {
	return View{
		Active:        st.Active,
		Position:      st.Position,
		CurrentSprint: st.CurrentSprint,
		LoopIteration: st.LoopIteration,
		NextCommand:   st.NextCommand,
		LastUpdated:   st.LastUpdated,
		LastExecution: st.LastExecution,
		History:       st.HistoryTail(tail),
	}
}

// NewInterruptionView builds the recovery report for an interrupted run.
// The suggestions are pure formatting over the state: resume where the
// loop left off, inspect the full state, or disable the loop cleanly.
func NewInterruptionView(st *state.LoopState, tail int) InterruptionView {
	v := NewView(st, tail)

	resume := v.NextCommand
	if resume == "" {
		resume = workflow.CommandForPosition(v.Position)
	}

	return InterruptionView{
		View: v,
		Suggestions: []Suggestion{
			{Label: "resume", Command: resume},
			{Label: "inspect", Command: "skynet-loop display-state"},
			{Label: "disable", Command: "skynet-loop disable"},
		},
	}
}

// ExecutionAge returns how long ago the last transition was recorded.
// ok is false when no execution timestamp has been recorded yet or the
// stored value does not parse.
func (v View) ExecutionAge(now time.Time) (time.Duration, bool) {
	if v.LastExecution == "" {
		return 0, false
	}
	t, err := time.Parse(time.RFC3339, v.LastExecution)
	if err != nil {
		return 0, false
	}
	age := now.Sub(t)
	if age < 0 {
		age = 0
	}
	return age, true
}
