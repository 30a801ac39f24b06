package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sohipren/dashboard/types"
)

// CLIError represents a user-friendly CLI error with context and suggestions
type CLIError struct {
	Operation   string   // The operation that failed (e.g., "add maintenance record")
	Cause       string   // The underlying cause (e.g., "part not found")
	Details     string   // Additional technical details
	Suggestions []string // Helpful suggestions for the user
	Underlying  error    // Original error for debugging
}

// Error implements the error interface
func (e *CLIError) Error() string {
	var msg strings.Builder

	if e.Operation != "" {
		msg.WriteString(fmt.Sprintf("Failed to %s", e.Operation))
	} else {
		msg.WriteString("Operation failed")
	}

	if e.Cause != "" {
		msg.WriteString(fmt.Sprintf(": %s", e.Cause))
	}

	if e.Details != "" {
		msg.WriteString(fmt.Sprintf(" (%s)", e.Details))
	}

	if len(e.Suggestions) > 0 {
		msg.WriteString("\n\nSuggestions:")
		for i, suggestion := range e.Suggestions {
			msg.WriteString(fmt.Sprintf("\n  %d. %s", i+1, suggestion))
		}
	}

	return msg.String()
}

// Unwrap returns the underlying error for error chain compatibility
func (e *CLIError) Unwrap() error {
	return e.Underlying
}

// NewValidationError creates an error for rejected input
func NewValidationError(operation string, underlying error, suggestions ...string) *CLIError {
	cause := "invalid input"
	var verr *types.ValidationError
	if errors.As(underlying, &verr) {
		cause = verr.Error()
	}
	return &CLIError{
		Operation:   operation,
		Cause:       cause,
		Suggestions: suggestions,
		Underlying:  underlying,
	}
}

// NewNotFoundError creates an error for missing resources
func NewNotFoundError(operation, resource, id string, suggestions ...string) *CLIError {
	return &CLIError{
		Operation:   operation,
		Cause:       fmt.Sprintf("%s %q not found", resource, id),
		Suggestions: suggestions,
	}
}

// NewConfigError creates an error for configuration issues
func NewConfigError(operation string, underlying error, suggestions ...string) *CLIError {
	return &CLIError{
		Operation:   operation,
		Cause:       fmt.Sprintf("configuration error: %v", underlying),
		Suggestions: suggestions,
		Underlying:  underlying,
	}
}

// NewStoreError creates an error for data file failures
func NewStoreError(operation string, underlying error, suggestions ...string) *CLIError {
	cause := "store operation failed"
	details := ""

	if underlying != nil {
		details = underlying.Error()

		errStr := strings.ToLower(details)
		switch {
		case strings.Contains(errStr, "locked by another process"):
			cause = "data file is currently locked by another process"
		case strings.Contains(errStr, "permission denied"):
			cause = "insufficient permissions to access data file"
		case strings.Contains(errStr, "no such file"):
			cause = "data file not found"
		case errors.Is(underlying, types.ErrStorageRead):
			cause = "could not read data file"
		case errors.Is(underlying, types.ErrStorageWrite):
			cause = "could not write data file"
		}
	}

	return &CLIError{
		Operation:   operation,
		Cause:       cause,
		Details:     details,
		Suggestions: suggestions,
		Underlying:  underlying,
	}
}

// WrapError wraps an existing error with CLI-friendly context
func WrapError(operation string, err error, suggestions ...string) error {
	if err == nil {
		return nil
	}

	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		if cliErr.Operation == "" {
			cliErr.Operation = operation
		}
		return cliErr
	}

	if errors.Is(err, types.ErrValidation) {
		return NewValidationError(operation, err, suggestions...)
	}
	return NewStoreError(operation, err, suggestions...)
}

// Common error messages and suggestions
var CommonSuggestions = struct {
	CheckDataDir string
	CheckConfig  string
	CheckFlags   string
	RunHelp      string
	CheckPerms   string
	RetryLater   string
	ListParts    string
}{
	CheckDataDir: "Verify --data-dir points to the dashboard data directory",
	CheckConfig:  "Check your configuration file or DASHSTORE_* environment variables",
	CheckFlags:   "Check command line flags and their values",
	RunHelp:      "Run command with --help for usage information",
	CheckPerms:   "Check file permissions and directory access",
	RetryLater:   "Another process may be writing; retry in a moment",
	ListParts:    "Run 'dashstore part get' to list known parts",
}
