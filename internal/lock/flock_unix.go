//go:build !windows

package lock

import (
	"errors"
	"os"
	"syscall"
)

// flockTry attempts a non-blocking exclusive lock on the file.
func flockTry(f *os.File) error {
	return syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB)
}

// flockUnlock releases the lock on the file.
func flockUnlock(f *os.File) error {
	return syscall.Flock(int(f.Fd()), syscall.LOCK_UN)
}

// isWouldBlock reports whether err means the lock is held elsewhere.
func isWouldBlock(err error) bool {
	return errors.Is(err, syscall.EWOULDBLOCK) || errors.Is(err, syscall.EAGAIN)
}
