package state

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/oklog/ulid/v2"
)

// LoopState represents the persisted state of the autonomous workflow loop.
// Written to .skynet/loop-state.json.
type LoopState struct {
	Active          bool              `json:"skynet_active"`
	Position        string            `json:"loop_position"`
	CurrentSprint   int               `json:"current_sprint"`
	LoopIteration   int               `json:"loop_iteration"`
	NextCommand     string            `json:"next_command"`
	LastUpdated     string            `json:"last_updated"`
	LastExecution   string            `json:"last_execution"`
	EnvironmentVars map[string]string `json:"environment_vars"`
	History         []HistoryEntry    `json:"loop_history"`
}

// Environment mirror keys recorded in EnvironmentVars.
const (
	EnvVarActive = "SKYNET"
	EnvVarPhase  = "CE_DPS_PHASE"
)

// Action identifies the kind of transition a history entry records.
// The set is open: drivers may record free-form action names, but the
// constants below cover every transition this CLI performs itself.
type Action string

const (
	ActionEnabled           Action = "enabled"
	ActionDisabled          Action = "disabled"
	ActionPositionUpdated   Action = "position_updated"
	ActionSprintIncremented Action = "sprint_incremented"
)

// Known reports whether the action is one of the closed set of
// transitions performed by this CLI.
func (a Action) Known() bool {
	switch a {
	case ActionEnabled, ActionDisabled, ActionPositionUpdated, ActionSprintIncremented:
		return true
	default:
		return false
	}
}

// HistoryEntry is one immutable audit record of a state transition.
//
// On the wire the Detail fields are flattened into the entry object next
// to entry_id, action and timestamp, matching the layout the driver
// scripts already consume.
type HistoryEntry struct {
	EntryID   string
	Action    Action
	Timestamp string
	Detail    map[string]string
}

// Reserved wire keys that never appear in Detail.
const (
	keyEntryID   = "entry_id"
	keyAction    = "action"
	keyTimestamp = "timestamp"
)

// MarshalJSON flattens Detail into the entry object.
func (e HistoryEntry) MarshalJSON() ([]byte, error) {
	obj := make(map[string]string, len(e.Detail)+3)
	for k, v := range e.Detail {
		switch k {
		case keyEntryID, keyAction, keyTimestamp:
			continue
		}
		obj[k] = v
	}
	obj[keyEntryID] = e.EntryID
	obj[keyAction] = string(e.Action)
	obj[keyTimestamp] = e.Timestamp
	return json.Marshal(obj)
}

// UnmarshalJSON lifts entry_id, action and timestamp out of the flat
// entry object and collects the remaining fields into Detail.
func (e *HistoryEntry) UnmarshalJSON(data []byte) error {
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}

	detail := make(map[string]string)
	for k, v := range obj {
		s := coerceString(v)
		switch k {
		case keyEntryID:
			e.EntryID = s
		case keyAction:
			e.Action = Action(s)
		case keyTimestamp:
			e.Timestamp = s
		default:
			detail[k] = s
		}
	}
	if len(detail) > 0 {
		e.Detail = detail
	} else {
		e.Detail = nil
	}
	return nil
}

// coerceString renders a decoded JSON value as a string. Detail values
// written by older jq-based tooling may arrive as bare numbers or bools.
func coerceString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}

// New returns the initial LoopState: inactive, sprint 1, empty history.
func New() *LoopState {
	return &LoopState{
		Active:          false,
		CurrentSprint:   1,
		LoopIteration:   0,
		EnvironmentVars: map[string]string{},
		History:         []HistoryEntry{},
	}
}

// Validate checks the record invariants that must hold before it may be
// persisted.
func (s *LoopState) Validate() error {
	if s.CurrentSprint < 1 {
		return fmt.Errorf("current_sprint must be >= 1, got %d", s.CurrentSprint)
	}
	if s.LoopIteration < 0 {
		return fmt.Errorf("loop_iteration must be >= 0, got %d", s.LoopIteration)
	}
	return nil
}

// HistoryTail returns the most recent n history entries in chronological
// (oldest-first) order. If n exceeds the history length the full history
// is returned.
func (s *LoopState) HistoryTail(n int) []HistoryEntry {
	if n <= 0 || len(s.History) == 0 {
		return nil
	}
	if n > len(s.History) {
		n = len(s.History)
	}
	return s.History[len(s.History)-n:]
}

// Timestamp renders t as the UTC wire format used throughout the state
// file.
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// newEntryID generates a ULID for a history entry.
// Format: ULID (e.g., 01JB6X8Y2K9FQR4T3VWHGP5M2C)
func newEntryID(now time.Time) string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(now), entropy).String()
}
