package state

import (
	"strconv"
	"time"
)

// Transition operations. Each takes the current record by value and
// returns the successor record with exactly one history entry appended.
// Callers apply them inside Store.Update / Store.UpdateOrInit so the
// whole cycle is one atomic replace.

// Enable marks the loop active for the given CE-DPS phase and mirrors
// the activation flags into EnvironmentVars. Calling it on an already
// active loop re-records the activation; history still grows.
func Enable(st LoopState, phase string, now time.Time) LoopState {
	st.Active = true
	st.setEnvVar(EnvVarActive, "true")
	st.setEnvVar(EnvVarPhase, phase)
	st.LoopIteration++
	st.LastUpdated = Timestamp(now)
	return appendEntry(st, ActionEnabled, now, map[string]string{
		"phase": phase,
	})
}

// Disable marks the loop inactive. A clean disable always lands before
// the process ends; its absence is what the interruption detector keys
// off of.
func Disable(st LoopState, phase string, now time.Time) LoopState {
	st.Active = false
	st.setEnvVar(EnvVarActive, "false")
	st.setEnvVar(EnvVarPhase, phase)
	st.LoopIteration++
	st.LastUpdated = Timestamp(now)
	return appendEntry(st, ActionDisabled, now, map[string]string{
		"phase": phase,
	})
}

// Advance records a workflow checkpoint: the position execution reached
// and the next command the driver should run. The sprint counter is
// only touched when the caller passes one explicitly. LoopIteration is
// not changed by Advance.
func Advance(st LoopState, action Action, position, nextCommand string, sprint *int, now time.Time) LoopState {
	st.Position = position
	st.NextCommand = nextCommand
	st.LastUpdated = Timestamp(now)
	st.LastExecution = Timestamp(now)

	detail := map[string]string{
		"position":     position,
		"next_command": nextCommand,
	}
	if sprint != nil {
		st.CurrentSprint = *sprint
		detail["sprint"] = strconv.Itoa(*sprint)
	}
	return appendEntry(st, action, now, detail)
}

// IncrementSprint closes out the current sprint: bumps the counter by
// exactly one, parks the position at the quality-check checkpoint and
// points the driver at nextCommand for the next sprint.
func IncrementSprint(st LoopState, position, nextCommand string, now time.Time) LoopState {
	completed := st.CurrentSprint
	st.CurrentSprint = completed + 1
	st.Position = position
	st.NextCommand = nextCommand
	st.LoopIteration++
	st.LastUpdated = Timestamp(now)
	st.LastExecution = Timestamp(now)
	return appendEntry(st, ActionSprintIncremented, now, map[string]string{
		"sprint_completed": strconv.Itoa(completed),
		"next_sprint":      strconv.Itoa(completed + 1),
	})
}

// setEnvVar replaces the environment mirror with an updated copy so the
// caller's input record is never aliased.
func (s *LoopState) setEnvVar(key, value string) {
	envs := make(map[string]string, len(s.EnvironmentVars)+1)
	for k, v := range s.EnvironmentVars {
		envs[k] = v
	}
	envs[key] = value
	s.EnvironmentVars = envs
}

// appendEntry returns st with one new history entry, copying the slice
// so past entries of the input record are never aliased or mutated.
func appendEntry(st LoopState, action Action, now time.Time, detail map[string]string) LoopState {
	entry := HistoryEntry{
		EntryID:   newEntryID(now),
		Action:    action,
		Timestamp: Timestamp(now),
		Detail:    detail,
	}
	history := make([]HistoryEntry, 0, len(st.History)+1)
	history = append(history, st.History...)
	st.History = append(history, entry)
	return st
}
