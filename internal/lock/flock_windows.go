//go:build windows

package lock

import (
	"os"
)

// Windows has no flock; the state file rename is still atomic, so the
// single-invoker precondition simply goes unenforced there.

func flockTry(f *os.File) error {
	return nil
}

func flockUnlock(f *os.File) error {
	return nil
}

func isWouldBlock(err error) bool {
	return false
}
