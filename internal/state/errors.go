package state

import "errors"

// Error taxonomy for store operations. Callers classify failures with
// errors.Is; the CLI maps each category to its own exit code.
var (
	// ErrNotInitialized means no state file exists where one was
	// required. Recoverable: enable or init bootstraps a fresh record.
	ErrNotInitialized = errors.New("loop state not initialized")

	// ErrAlreadyInitialized means init found an existing state file;
	// the persisted record is never overwritten.
	ErrAlreadyInitialized = errors.New("loop state already initialized")

	// ErrCorruptState means the state file exists but cannot be parsed.
	// Fatal: the file is never repaired or overwritten automatically,
	// so the history it may still hold is not silently discarded.
	ErrCorruptState = errors.New("loop state file is corrupt")

	// ErrPersistence means an I/O failure during load or save. The
	// previously persisted record is left intact.
	ErrPersistence = errors.New("loop state persistence failure")
)
