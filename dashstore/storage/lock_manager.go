// Package storage holds the in-process coordination shared by the dashboard
// stores. Cross-process exclusion lives in the store package (file locks);
// this package only keeps goroutines of one process from interleaving a
// read-modify-write cycle on the same data file.
package storage

import (
	"sync"
)

// OperationType defines whether an operation is read or write.
type OperationType int

const (
	// ReadOperation only loads a data file. Reads may run concurrently.
	ReadOperation OperationType = iota

	// WriteOperation loads, mutates and rewrites a data file. Writes are
	// exclusive.
	WriteOperation
)

// String returns the string representation of the OperationType
func (op OperationType) String() string {
	if op == WriteOperation {
		return "write"
	}
	return "read"
}

// LockManager serializes access to one data file.
// The zero value is not usable; call NewLockManager.
type LockManager struct {
	mu *sync.RWMutex
}

// NewLockManager creates a new lock manager instance.
func NewLockManager() *LockManager {
	return &LockManager{
		mu: &sync.RWMutex{},
	}
}

// Execute runs fn holding the lock matching opType.
//
//	err := lm.Execute(WriteOperation, func() error {
//	    return appendAndSave(rec)
//	})
func (lm *LockManager) Execute(opType OperationType, fn func() error) error {
	switch opType {
	case ReadOperation:
		lm.mu.RLock()
		defer lm.mu.RUnlock()
	case WriteOperation:
		lm.mu.Lock()
		defer lm.mu.Unlock()
	}
	return fn()
}

// Query runs fn under a read lock and returns its result.
// It is a function rather than a method because methods cannot take type
// parameters.
func Query[T any](lm *LockManager, fn func() (T, error)) (T, error) {
	var result T
	err := lm.Execute(ReadOperation, func() error {
		var err error
		result, err = fn()
		return err
	})
	return result, err
}
