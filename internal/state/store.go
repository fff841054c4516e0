package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/Cyonx818/skynet-loop/internal/lock"
)

// DefaultLockTimeout bounds how long an invocation waits for the
// advisory lock before giving up.
const DefaultLockTimeout = 5 * time.Second

// Locker serializes the load-modify-save cycle across invocations.
type Locker interface {
	Acquire(ctx context.Context) (release func(), err error)
}

// nopLocker is used for memory-backed stores, where no other process
// can reach the filesystem.
type nopLocker struct{}

func (nopLocker) Acquire(context.Context) (func(), error) { return func() {}, nil }

// Store performs durable, atomic load and save of the single LoopState
// record. All mutation goes through full-record read-modify-write; no
// partial-field updates are exposed.
type Store struct {
	fs     afero.Fs
	path   string
	locker Locker
}

// NewStore returns a Store over the OS filesystem with an advisory
// file lock next to the state file.
func NewStore(path string) *Store {
	return NewStoreWithLockTimeout(path, DefaultLockTimeout)
}

// NewStoreWithLockTimeout is NewStore with an explicit bound on the
// lock wait.
func NewStoreWithLockTimeout(path string, timeout time.Duration) *Store {
	return &Store{
		fs:     afero.NewOsFs(),
		path:   path,
		locker: lock.New(path+".lock", timeout),
	}
}

// NewStoreWithFs returns a Store over the given filesystem with no
// cross-process locking. Intended for tests running against
// afero.NewMemMapFs() or a scratch directory.
func NewStoreWithFs(fs afero.Fs, path string) *Store {
	return &Store{fs: fs, path: path, locker: nopLocker{}}
}

// Path returns the state file path.
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether a state file has been persisted.
func (s *Store) Exists() (bool, error) {
	_, err := s.fs.Stat(s.path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("stat state file: %v: %w", err, ErrPersistence)
}

// Load reads and parses the persisted record.
//
// A missing file fails with ErrNotInitialized; a file that exists but
// does not parse fails with ErrCorruptState. Neither case is repaired
// here — callers decide whether to bootstrap or escalate.
func (s *Store) Load() (*LoopState, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", s.path, ErrNotInitialized)
		}
		return nil, fmt.Errorf("read state file: %v: %w", err, ErrPersistence)
	}

	var st LoopState
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("parse %s: %v: %w", s.path, err, ErrCorruptState)
	}

	return &st, nil
}

// Save serializes and atomically replaces the persisted record via a
// temp file and rename, so a crash mid-write never leaves a half-written
// file behind.
func (s *Store) Save(st *LoopState) error {
	if err := st.Validate(); err != nil {
		return fmt.Errorf("invalid state: %v: %w", err, ErrPersistence)
	}

	// Marshal with 4-space indent
	data, err := json.MarshalIndent(st, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal state: %v: %w", err, ErrPersistence)
	}
	data = append(data, '\n')

	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create state dir: %v: %w", err, ErrPersistence)
	}

	tmp := s.path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0644); err != nil {
		return fmt.Errorf("write temp state file: %v: %w", err, ErrPersistence)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("replace state file: %v: %w", err, ErrPersistence)
	}

	return nil
}

// Update runs one locked load→transform→save cycle. The transform
// receives the freshly loaded record and mutates it in place; the full
// new record is constructed in memory before any write happens.
func (s *Store) Update(ctx context.Context, transform func(*LoopState) error) (*LoopState, error) {
	return s.update(ctx, false, transform)
}

// UpdateOrInit is Update, except a missing state file is bootstrapped
// with the initial record instead of failing. Used by enable, which
// creates the state file on first use.
func (s *Store) UpdateOrInit(ctx context.Context, transform func(*LoopState) error) (*LoopState, error) {
	return s.update(ctx, true, transform)
}

func (s *Store) update(ctx context.Context, init bool, transform func(*LoopState) error) (*LoopState, error) {
	release, err := s.locker.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	st, err := s.Load()
	if err != nil {
		if !init || !errors.Is(err, ErrNotInitialized) {
			return nil, err
		}
		st = New()
	}

	if err := transform(st); err != nil {
		return nil, err
	}
	if err := s.Save(st); err != nil {
		return nil, err
	}
	return st, nil
}

// Init creates the initial record. The existence check and the save run
// under the same lock as every transition, so init racing a concurrent
// enable cannot clobber a freshly bootstrapped record.
func (s *Store) Init(ctx context.Context) (*LoopState, error) {
	release, err := s.locker.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer release()

	exists, err := s.Exists()
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%s: %w", s.path, ErrAlreadyInitialized)
	}

	st := New()
	if err := s.Save(st); err != nil {
		return nil, err
	}
	return st, nil
}

// Remove deletes the state file under the lock. Never called by the
// transition operations themselves; this is the external reset used by
// clean.
func (s *Store) Remove(ctx context.Context) error {
	release, err := s.locker.Acquire(ctx)
	if err != nil {
		return err
	}
	defer release()

	if err := s.fs.Remove(s.path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s: %w", s.path, ErrNotInitialized)
		}
		return fmt.Errorf("remove state file: %v: %w", err, ErrPersistence)
	}
	return nil
}
