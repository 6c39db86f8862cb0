// Package errors provides the sentinel errors and typed errors shared by the
// engine, the command-line tool and the API server. Every typed error
// unwraps to one of the sentinels so callers can branch with errors.Is.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	// ErrNotFound indicates an unknown book, file or record
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput indicates malformed input or a failed bounds check
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnsupported indicates an input or output format that is not handled
	ErrUnsupported = errors.New("unsupported")
)

// ValidationError reports a value that was rejected while building or
// checking a table.
type ValidationError struct {
	Field   string // Field or record kind (e.g., "book", "alias")
	Message string // Human-readable error message
	Err     error  // Underlying error, if any
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidInput
}

// IOError wraps a filesystem or database failure with the path involved.
// It unwraps to the underlying error, so errors.Is(err, fs.ErrNotExist)
// works through it.
type IOError struct {
	Operation string // e.g., "read", "open", "create"
	Path      string
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

// ParseError reports a malformed document such as a canon XML file or an
// exported canon database.
type ParseError struct {
	Format  string // "XML", "SQLite", ...
	Path    string // Location inside the document, if known
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("failed to parse %s at %s: %s", e.Format, e.Path, msg)
	}
	return fmt.Sprintf("failed to parse %s: %s", e.Format, msg)
}

func (e *ParseError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrInvalidInput, e.Err}
	}
	return []error{ErrInvalidInput}
}

// UnsupportedError reports a format the tool does not read or write.
type UnsupportedError struct {
	Feature string // What was requested
	Subject string // The path or value that requested it
}

func (e *UnsupportedError) Error() string {
	if e.Subject != "" {
		return fmt.Sprintf("unsupported %s: %s", e.Feature, e.Subject)
	}
	return fmt.Sprintf("unsupported %s", e.Feature)
}

func (e *UnsupportedError) Unwrap() error {
	return ErrUnsupported
}

// NewValidation creates a ValidationError
func NewValidation(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NewIO creates an IOError
func NewIO(operation, path string, err error) *IOError {
	return &IOError{Operation: operation, Path: path, Err: err}
}

// NewParse creates a ParseError
func NewParse(format, path, message string) *ParseError {
	return &ParseError{Format: format, Path: path, Message: message}
}

// NewUnsupported creates an UnsupportedError
func NewUnsupported(feature, subject string) *UnsupportedError {
	return &UnsupportedError{Feature: feature, Subject: subject}
}
