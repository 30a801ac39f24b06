package store

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MockFileLock is an in-memory FileLock for tests.
// Setting HeldElsewhere simulates another process owning the lock file.
type MockFileLock struct {
	mu            sync.Mutex
	isLocked      bool
	lockError     error
	unlockError   error
	HeldElsewhere bool

	// For tracking lock attempts
	LockAttempts   int
	UnlockAttempts int
}

// TryLockContext implements FileLock.TryLockContext
func (m *MockFileLock) TryLockContext(ctx context.Context, retryInterval time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LockAttempts++

	if m.lockError != nil {
		return false, m.lockError
	}
	if m.isLocked || m.HeldElsewhere {
		return false, nil
	}

	m.isLocked = true
	return true, nil
}

// Unlock implements FileLock.Unlock
func (m *MockFileLock) Unlock() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.UnlockAttempts++

	if m.unlockError != nil {
		return m.unlockError
	}

	m.isLocked = false
	return nil
}

// IsLocked returns whether the lock is currently held
func (m *MockFileLock) IsLocked() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.isLocked
}

// SetLockError makes subsequent lock attempts fail with err
func (m *MockFileLock) SetLockError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lockError = err
}

// MockFileLockFactory hands out one MockFileLock per lock path
type MockFileLockFactory struct {
	mu    sync.Mutex
	locks map[string]*MockFileLock

	// DefaultLockError is injected into every lock created afterwards
	DefaultLockError error
}

// NewMockFileLockFactory creates a new mock factory
func NewMockFileLockFactory() *MockFileLockFactory {
	return &MockFileLockFactory{
		locks: make(map[string]*MockFileLock),
	}
}

// New implements FileLockFactory.New
func (f *MockFileLockFactory) New(path string) FileLock {
	return f.Lock(path)
}

// Lock returns the mock for path, creating it on first use
func (f *MockFileLockFactory) Lock(path string) *MockFileLock {
	f.mu.Lock()
	defer f.mu.Unlock()

	if lock, exists := f.locks[path]; exists {
		return lock
	}
	lock := &MockFileLock{lockError: f.DefaultLockError}
	f.locks[path] = lock
	return lock
}

// Paths returns every lock path requested so far, sorted
func (f *MockFileLockFactory) Paths() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	paths := make([]string, 0, len(f.locks))
	for p := range f.locks {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
