package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"github.com/sohipren/dashboard/types"
)

// DocumentStore loads and saves whole JSON documents
type DocumentStore struct {
	*fileStore
}

// NewDocumentStore creates a DocumentStore. Without options it uses the real
// file system and flock based locking.
func NewDocumentStore(opts ...Option) *DocumentStore {
	return &DocumentStore{fileStore: newFileStore(opts...)}
}

// EnsureDocument creates path holding empty when the file is absent.
// The containing directory is created as needed. Calling it again once the
// file exists is a no-op; created reports whether a file was written.
func (s *DocumentStore) EnsureDocument(path string, empty interface{}) (created bool, err error) {
	if err := s.ensureDir(path); err != nil {
		return false, types.NewWriteError(path, fmt.Errorf("failed to create directory: %w", err))
	}

	err = s.withFileLock(path, types.OpWrite, func() error {
		ok, err := s.exists(path)
		if err != nil {
			return types.NewReadError(path, err)
		}
		if ok {
			return nil
		}
		if err := s.save(path, empty); err != nil {
			return err
		}
		created = true
		return nil
	})
	if created {
		s.logger.Debug("initialized document", "path", path)
	}
	return created, err
}

// Load reads path and decodes it into v
func (s *DocumentStore) Load(path string, v interface{}) error {
	return s.withFileLock(path, types.OpRead, func() error {
		return s.load(path, v)
	})
}

// Save encodes v and replaces the content of path with it
func (s *DocumentStore) Save(path string, v interface{}) error {
	return s.withFileLock(path, types.OpWrite, func() error {
		return s.save(path, v)
	})
}

// Update loads path into v, calls mutate and saves v back, all under one
// file lock. An error from mutate aborts the cycle and is returned unchanged;
// nothing is written in that case.
func (s *DocumentStore) Update(path string, v interface{}, mutate func() error) error {
	return s.withFileLock(path, types.OpWrite, func() error {
		if err := s.load(path, v); err != nil {
			return err
		}
		if err := mutate(); err != nil {
			return err
		}
		return s.save(path, v)
	})
}

// load reads the JSON file into v
func (s *DocumentStore) load(path string, v interface{}) error {
	// No locking here - caller must handle locking
	data, err := s.fs.ReadFile(path)
	if err != nil {
		return types.NewReadError(path, fmt.Errorf("failed to read file: %w", err))
	}

	return DecodeDocument(path, data, v)
}

// DecodeDocument parses data, the content of path, into v.
// A parse failure is a read error on path.
func DecodeDocument(path string, data []byte, v interface{}) error {
	if err := json.Unmarshal(data, v); err != nil {
		return types.NewReadError(path, fmt.Errorf("failed to parse JSON: %w", err))
	}
	return nil
}

// save writes v to path as indented JSON
func (s *DocumentStore) save(path string, v interface{}) error {
	// No locking here - caller must handle locking
	data, err := encodeJSON(v)
	if err != nil {
		return types.NewWriteError(path, fmt.Errorf("failed to marshal JSON: %w", err))
	}

	if err := s.writeAtomic(path, data); err != nil {
		return types.NewWriteError(path, err)
	}
	s.logger.Debug("saved document", "path", path, "bytes", len(data))
	return nil
}

// encodeJSON indents with four spaces and leaves non-ASCII and HTML
// characters unescaped, matching the files the dashboard has always written
func encodeJSON(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
