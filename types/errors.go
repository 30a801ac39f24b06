package types

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation matches every *ValidationError
	ErrValidation = errors.New("validation failed")
	// ErrStorageRead matches storage errors raised while reading
	ErrStorageRead = errors.New("storage read failed")
	// ErrStorageWrite matches storage errors raised while writing
	ErrStorageWrite = errors.New("storage write failed")
)

// ValidationError reports caller input that violates a record contract.
// It is never retried internally.
type ValidationError struct {
	Field  string // persisted field name, e.g. "peca" or "custo"
	Reason string
	Value  interface{}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("field '%s': %s", e.Field, e.Reason)
}

// Is makes errors.Is(err, ErrValidation) true
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewMissingFieldError reports an absent required field
func NewMissingFieldError(field string) *ValidationError {
	return &ValidationError{Field: field, Reason: "required field not found in record"}
}

// NewNotNumericError reports a value that should have been a number
func NewNotNumericError(field string, value interface{}) *ValidationError {
	return &ValidationError{
		Field:  field,
		Reason: fmt.Sprintf("must be a number, got %T", value),
		Value:  value,
	}
}

// StorageOp tells whether a storage failure happened reading or writing
type StorageOp string

const (
	OpRead  StorageOp = "read"
	OpWrite StorageOp = "write"
)

// StorageError wraps a filesystem or serialization failure on a data file
type StorageError struct {
	Op   StorageOp
	Path string
	Err  error
}

// Error implements the error interface
func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying cause
func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is matches ErrStorageRead or ErrStorageWrite depending on Op
func (e *StorageError) Is(target error) bool {
	switch target {
	case ErrStorageRead:
		return e.Op == OpRead
	case ErrStorageWrite:
		return e.Op == OpWrite
	}
	return false
}

// NewReadError wraps err as a read failure on path
func NewReadError(path string, err error) *StorageError {
	return &StorageError{Op: OpRead, Path: path, Err: err}
}

// NewWriteError wraps err as a write failure on path
func NewWriteError(path string, err error) *StorageError {
	return &StorageError{Op: OpWrite, Path: path, Err: err}
}
