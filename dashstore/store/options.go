package store

import (
	"log/slog"
	"time"
)

// Option configures a DocumentStore or TableStore
type Option func(*fileStore)

// WithFileSystem sets a custom FileSystem implementation
func WithFileSystem(fs FileSystem) Option {
	return func(s *fileStore) {
		s.fs = fs
	}
}

// WithFileLockFactory sets a custom FileLockFactory implementation
func WithFileLockFactory(factory FileLockFactory) Option {
	return func(s *fileStore) {
		s.lockFactory = factory
	}
}

// WithTimeFunc sets a custom time function for testing
func WithTimeFunc(fn func() time.Time) Option {
	return func(s *fileStore) {
		s.timeFunc = fn
	}
}

// WithLogger routes debug output of file operations to logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *fileStore) {
		s.logger = logger
	}
}

// WithLockTimeout bounds how long an operation waits for the file lock
func WithLockTimeout(d time.Duration) Option {
	return func(s *fileStore) {
		s.lockTimeout = d
	}
}
