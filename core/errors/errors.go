// Package errors provides the error categories shared by configsub packages.
//
// Domain packages define their own precise error types (see
// core/triplet.Error) and unwrap to one of the category sentinels here, so
// callers can branch on a category without knowing every domain type.
package errors

import (
	"errors"
	"fmt"
)

// Category sentinels.
var (
	// ErrInvalidInput indicates input that cannot be canonicalized or parsed.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnsupported indicates input that is well-formed but not supported,
	// such as an alias missing from the built-in table.
	ErrUnsupported = errors.New("unsupported")
	// ErrInternal indicates a failure in configsub itself or its storage.
	ErrInternal = errors.New("internal error")
)

// IOError represents a failed read or write of a file, stream or database.
type IOError struct {
	Operation string // e.g. "read", "open", "query"
	Path      string // file or database path, if any
	Err       error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to %s %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("failed to %s: %v", e.Operation, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// ParseError represents malformed structured input, such as a configuration
// file.
type ParseError struct {
	Format  string // e.g. "YAML"
	Path    string
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to parse %s at %s: %s", e.Format, e.Path, e.Message)
	}
	return fmt.Sprintf("failed to parse %s: %s", e.Format, e.Message)
}

// Unwrap returns both the cause (if any) and ErrInvalidInput.
func (e *ParseError) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Err, ErrInvalidInput}
	}
	return []error{ErrInvalidInput}
}

// NewIO creates an IOError.
func NewIO(operation, path string, err error) *IOError {
	return &IOError{Operation: operation, Path: path, Err: err}
}

// NewParse creates a ParseError wrapping err.
func NewParse(format, path string, err error) *ParseError {
	msg := "malformed input"
	if err != nil {
		msg = err.Error()
	}
	return &ParseError{Format: format, Path: path, Message: msg, Err: err}
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is wraps errors.Is for convenience.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience.
func As(err error, target any) bool {
	return errors.As(err, target)
}
