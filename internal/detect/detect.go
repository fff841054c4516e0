// Package detect decides whether the previously recorded active run was
// abandoned without a clean disable — the auto-compact case, where the
// driver's context was silently truncated mid-loop.
package detect

import (
	"errors"

	"github.com/Cyonx818/skynet-loop/internal/state"
)

// Interrupted compares the persisted activation flag against the live
// signal supplied by the caller.
//
// A clean disable always persists active=false before the process ends,
// so persisted active=true paired with a live signal saying otherwise
// means the loop died between enable and disable. Every other
// combination — including a live flag that disagrees on phase but not on
// activation — is not an interruption.
//
// live is nil when the driver supplied no activation signal at all;
// absent and false are treated the same.
func Interrupted(st *state.LoopState, live *bool) bool {
	if st == nil {
		return false
	}
	return st.Active && (live == nil || !*live)
}

// Check loads the persisted record from the store and runs Interrupted
// against the live flag. A store that was never initialized means there
// is nothing to recover, so it reports false; any other load failure is
// surfaced.
func Check(store *state.Store, live *bool) (bool, error) {
	st, err := store.Load()
	if err != nil {
		if errors.Is(err, state.ErrNotInitialized) {
			return false, nil
		}
		return false, err
	}
	return Interrupted(st, live), nil
}
