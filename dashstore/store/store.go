// Package store persists whole documents to local files.
//
// Every operation reads the complete file into memory and, for mutations,
// writes the complete file back through a temp file and a rename. A lock file
// next to each data file (<path>.lock) keeps two processes from interleaving
// a read-modify-write cycle. There is no caching: each call hits the disk.
//
// Two flavours are provided:
//   - DocumentStore: a JSON document (list or mapping) per file
//   - TableStore: a CSV table with a fixed header per file
package store

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/sohipren/dashboard/types"
)

// fileStore holds what both store flavours share: the file system, the lock
// factory, the clock and the logger
type fileStore struct {
	fs          FileSystem
	lockFactory FileLockFactory
	timeFunc    func() time.Time
	logger      *slog.Logger
	lockTimeout time.Duration

	mu    sync.Mutex
	locks map[string]FileLock
}

func newFileStore(opts ...Option) *fileStore {
	s := &fileStore{
		timeFunc:    time.Now,
		lockTimeout: defaultLockTimeout,
		locks:       make(map[string]FileLock),
	}

	for _, opt := range opts {
		opt(s)
	}

	// Set defaults for dependencies not provided via options
	if s.fs == nil {
		s.fs = OSFileSystem{}
	}
	if s.lockFactory == nil {
		s.lockFactory = &FlockFactory{}
	}
	if s.logger == nil {
		s.logger = slog.New(slog.DiscardHandler)
	}
	return s
}

// Now returns the store clock's current time
func (s *fileStore) Now() time.Time {
	return s.timeFunc()
}

// Logger returns the logger the store reports to
func (s *fileStore) Logger() *slog.Logger {
	return s.logger
}

// Snapshot returns the raw content of path, read under its file lock
func (s *fileStore) Snapshot(path string) ([]byte, error) {
	var data []byte
	err := s.withFileLock(path, types.OpRead, func() error {
		var err error
		if data, err = s.fs.ReadFile(path); err != nil {
			return types.NewReadError(path, fmt.Errorf("failed to read file: %w", err))
		}
		return nil
	})
	return data, err
}

// lockFor returns the cached lock guarding path
func (s *fileStore) lockFor(path string) FileLock {
	s.mu.Lock()
	defer s.mu.Unlock()

	if lock, ok := s.locks[path]; ok {
		return lock
	}
	lock := s.lockFactory.New(path + lockSuffix)
	s.locks[path] = lock
	return lock
}

// withFileLock runs fn while holding the lock file of path.
// A lock failure is reported as a storage error of kind op.
func (s *fileStore) withFileLock(path string, op types.StorageOp, fn func() error) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.lockTimeout)
	defer cancel()

	lock := s.lockFor(path)
	if err := acquireLock(ctx, lock); err != nil {
		s.logger.Warn("file lock unavailable", "path", path, "op", op, "error", err)
		return &types.StorageError{Op: op, Path: path, Err: fmt.Errorf("file is locked by another process: %w", err)}
	}
	defer func() { _ = lock.Unlock() }()

	return fn()
}

// exists reports whether path is present
func (s *fileStore) exists(path string) (bool, error) {
	_, err := s.fs.Stat(path)
	if err == nil {
		return true, nil
	}
	if isNotExist(err) {
		return false, nil
	}
	return false, err
}

// ensureDir creates the directory holding path
func (s *fileStore) ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return s.fs.MkdirAll(dir, 0755)
}

// writeAtomic writes data to a temp file and renames it over path
func (s *fileStore) writeAtomic(path string, data []byte) error {
	tmpFile := path + ".tmp"
	if err := s.fs.WriteFile(tmpFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}

	// Rename temp file to actual file (atomic on most filesystems)
	if err := s.fs.Rename(tmpFile, path); err != nil {
		_ = s.fs.Remove(tmpFile)
		return fmt.Errorf("failed to rename file: %w", err)
	}
	return nil
}
