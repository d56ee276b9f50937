// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
	"strings"
)

// Common application errors.
var (
	// Input errors.
	ErrMalformedLine    = errors.New("malformed input line")
	ErrUnparsableNumber = errors.New("unparsable number")
	ErrInvalidDate      = errors.New("invalid date")
	ErrMissingFile      = errors.New("file not found")

	// Rule errors.
	ErrMalformedRuleFile = errors.New("malformed rule file")
	ErrUnknownReport     = errors.New("unknown report")
	ErrInvalidReportName = errors.New("invalid report name")
	ErrInvalidDimension  = errors.New("invalid dimension")
	ErrInvalidRuleValue  = errors.New("invalid rule value")

	// Generation errors.
	ErrInvalidQuarter = errors.New("invalid quarter")
	ErrNoReports      = errors.New("no reports to generate")

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

// LineError ties an error to a 1-based line number in an input file.
type LineError struct {
	Err  error
	Line int
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// BatchError collects the failures of a batch operation that kept going
// after individual items failed.
type BatchError struct {
	Op     string
	Errors []error
}

func (e *BatchError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("%s: %v", e.Op, e.Errors[0])
	}

	msgs := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("%s: %d failures: %s", e.Op, len(e.Errors), strings.Join(msgs, "; "))
}

// Unwrap exposes every collected error to errors.Is and errors.As.
func (e *BatchError) Unwrap() []error {
	return e.Errors
}

// NewBatchError returns nil when errs is empty so callers can return it directly.
func NewBatchError(op string, errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return &BatchError{Op: op, Errors: errs}
}
