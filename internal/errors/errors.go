package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/mag-rock/smart-nippo/internal/logger"
)

// NotFoundError reports a referenced entity that does not exist. Read and
// delete paths generally return a nil model or a false boolean instead;
// this error is reserved for write paths that require an existing parent.
type NotFoundError struct {
	Entity string
	Ref    any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %v not found", e.Entity, e.Ref)
}

// NotFound creates a NotFoundError for the given entity and reference.
func NotFound(entity string, ref any) error {
	return &NotFoundError{Entity: entity, Ref: ref}
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var t *NotFoundError
	return errors.As(err, &t)
}

// ValidationError carries a human-readable constraint violation. Whole-record
// validation aggregates multiple violations into a single multi-line message.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Validation creates a ValidationError from a format string.
func Validation(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var t *ValidationError
	return errors.As(err, &t)
}

// ConflictError reports a uniqueness violation such as a duplicate template
// name, a duplicate report date, or deleting the default template.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// Conflict creates a ConflictError from a format string.
func Conflict(format string, args ...any) error {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// IsConflict reports whether err is (or wraps) a ConflictError.
func IsConflict(err error) bool {
	var t *ConflictError
	return errors.As(err, &t)
}

// ConfigurationError reports malformed configuration or a store that was
// never initialized. Commands are expected to abort on it.
type ConfigurationError struct {
	Message string
	Err     error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// Configuration creates a ConfigurationError wrapping cause (which may be nil).
func Configuration(cause error, format string, args ...any) error {
	return &ConfigurationError{Message: fmt.Sprintf(format, args...), Err: cause}
}

// IsConfiguration reports whether err is (or wraps) a ConfigurationError.
func IsConfiguration(err error) bool {
	var t *ConfigurationError
	return errors.As(err, &t)
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
