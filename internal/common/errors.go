// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Credential errors.
	ErrNoCredential   = errors.New("no access token available")
	ErrAuthInProgress = errors.New("authentication already in progress")

	// Spreadsheet errors.
	ErrTabNotFound    = errors.New("tab not found")
	ErrRowOutOfRange  = errors.New("row position out of range")
	ErrCounterMissing = errors.New("invoice counter row not found")
	ErrNotFound       = errors.New("not found")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// PartialError reports a composite operation that failed after some durable
// state had already been written. It is deliberately distinct from a clean
// abort: there is no transaction log to consult afterwards, so the message
// itself must say how far the operation got.
type PartialError struct {
	Err       error
	Operation string
	Completed []string
	Failed    string
}

func (e *PartialError) Error() string {
	return fmt.Sprintf("%s partially completed: %v succeeded, %s failed: %v",
		e.Operation, e.Completed, e.Failed, e.Err)
}

func (e *PartialError) Unwrap() error {
	return e.Err
}

// NewPartialError records a mid-sequence failure in a composite operation.
func NewPartialError(operation string, completed []string, failed string, err error) error {
	return &PartialError{
		Operation: operation,
		Completed: completed,
		Failed:    failed,
		Err:       err,
	}
}

// IsPartial reports whether err indicates that some durable state changed
// before the failure.
func IsPartial(err error) bool {
	var pe *PartialError
	return errors.As(err, &pe)
}
