// Package errors provides a lightweight structured error type
// (ChangelogBuilderError) for category-based classification at the CLI
// boundary.
package errors

import (
	"fmt"
)

// ErrorCategory represents the category of an error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"
	CategoryAuth       ErrorCategory = "auth"

	// External system integration errors
	CategoryGit   ErrorCategory = "git"
	CategoryDocfx ErrorCategory = "docfx"

	// Generation errors
	CategoryChangelog  ErrorCategory = "changelog"
	CategoryFileSystem ErrorCategory = "filesystem"

	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
)

// ChangelogBuilderError is a structured error with category, retryability, and context
type ChangelogBuilderError struct {
	Category  ErrorCategory `json:"category"`
	Severity  ErrorSeverity `json:"severity"`
	Message   string        `json:"message"`
	Cause     error         `json:"cause,omitempty"`
	Retryable bool          `json:"retryable"`
	Context   ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for ChangelogBuilderError
type ContextFields map[string]any

// Error implements the error interface
func (e *ChangelogBuilderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *ChangelogBuilderError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *ChangelogBuilderError) WithContext(key string, value any) *ChangelogBuilderError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new ChangelogBuilderError
func New(category ErrorCategory, severity ErrorSeverity, message string) *ChangelogBuilderError {
	return &ChangelogBuilderError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new ChangelogBuilderError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *ChangelogBuilderError {
	return &ChangelogBuilderError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// WrapRetryable creates a new retryable ChangelogBuilderError that wraps an existing error
func WrapRetryable(err error, category ErrorCategory, severity ErrorSeverity, message string) *ChangelogBuilderError {
	return &ChangelogBuilderError{
		Category:  category,
		Severity:  severity,
		Message:   message,
		Cause:     err,
		Retryable: true,
	}
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if cbe, ok := err.(*ChangelogBuilderError); ok {
		return cbe.Category == category
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not a ChangelogBuilderError
func GetCategory(err error) ErrorCategory {
	if cbe, ok := err.(*ChangelogBuilderError); ok {
		return cbe.Category
	}
	return CategoryInternal
}

// ConfigError creates a new fatal configuration error
func ConfigError(message string) *ChangelogBuilderError {
	return &ChangelogBuilderError{
		Category: CategoryConfig,
		Severity: SeverityFatal,
		Message:  message,
	}
}

// AuthError creates a new fatal authentication error
func AuthError(message string) *ChangelogBuilderError {
	return &ChangelogBuilderError{
		Category: CategoryAuth,
		Severity: SeverityFatal,
		Message:  message,
	}
}
