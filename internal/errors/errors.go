package errors

import (
	"fmt"
	"time"
)

// Error types for the complexity inference engine
type ErrorType string

const (
	// Request errors
	ErrorTypeValidation ErrorType = "validation"

	// Grammar errors - never fatal, downgraded to the generic grammar
	ErrorTypeUnsupportedLanguage ErrorType = "unsupported_language"

	// Ensemble errors - recovered locally by the rule_based fallback
	ErrorTypeModelUnavailable ErrorType = "model_unavailable"
	ErrorTypeArtifact         ErrorType = "artifact"

	// Configuration errors
	ErrorTypeConfig ErrorType = "config"
)

// ValidationError represents a rejected request (empty code). It is the
// only error surfaced to callers of the analyze entry points.
type ValidationError struct {
	Type      ErrorType
	Field     string
	Reason    string
	Timestamp time.Time
}

// NewValidationError creates a new validation error for a request field
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{
		Type:      ErrorTypeValidation,
		Field:     field,
		Reason:    reason,
		Timestamp: time.Now(),
	}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Reason)
}

// UnsupportedLanguageError records a grammar downgrade. It is logged as a
// quality-degradation event and never returned across the engine boundary.
type UnsupportedLanguageError struct {
	Type      ErrorType
	Language  string
	Timestamp time.Time
}

// NewUnsupportedLanguageError creates a new unsupported-language event
func NewUnsupportedLanguageError(language string) *UnsupportedLanguageError {
	return &UnsupportedLanguageError{
		Type:      ErrorTypeUnsupportedLanguage,
		Language:  language,
		Timestamp: time.Now(),
	}
}

// Error implements the error interface
func (e *UnsupportedLanguageError) Error() string {
	return fmt.Sprintf("language %q has no registered grammar; generic grammar applied", e.Language)
}

// ModelUnavailableError signals that the ensemble could not participate
// (registry empty or artifacts failed to load). The arbiter treats the
// ensemble as absent rather than failing the request.
type ModelUnavailableError struct {
	Type       ErrorType
	Operation  string
	Underlying error
	Timestamp  time.Time
}

// NewModelUnavailableError creates a new model-unavailable error
func NewModelUnavailableError(op string, err error) *ModelUnavailableError {
	return &ModelUnavailableError{
		Type:       ErrorTypeModelUnavailable,
		Operation:  op,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface
func (e *ModelUnavailableError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("ensemble %s unavailable: %v", e.Operation, e.Underlying)
	}
	return fmt.Sprintf("ensemble %s unavailable", e.Operation)
}

// Unwrap returns the underlying error for errors.Is/As
func (e *ModelUnavailableError) Unwrap() error {
	return e.Underlying
}

// ArtifactError represents a model artifact that failed to parse or
// validate during a registry load.
type ArtifactError struct {
	Type       ErrorType
	Path       string
	ModelID    string
	Underlying error
	Timestamp  time.Time
}

// NewArtifactError creates a new artifact error with context
func NewArtifactError(path, modelID string, err error) *ArtifactError {
	return &ArtifactError{
		Type:       ErrorTypeArtifact,
		Path:       path,
		ModelID:    modelID,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface
func (e *ArtifactError) Error() string {
	if e.ModelID != "" {
		return fmt.Sprintf("model artifact %s (%s) failed: %v", e.ModelID, e.Path, e.Underlying)
	}
	return fmt.Sprintf("model artifact %s failed: %v", e.Path, e.Underlying)
}

// Unwrap returns the underlying error
func (e *ArtifactError) Unwrap() error {
	return e.Underlying
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field      string
	Value      string
	Underlying error
	Timestamp  time.Time
}

// NewConfigError creates a new config error
func NewConfigError(field, value string, err error) *ConfigError {
	return &ConfigError{
		Field:      field,
		Value:      value,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error for field %s (value %s): %v", e.Field, e.Value, e.Underlying)
}

// Unwrap returns the underlying error
func (e *ConfigError) Unwrap() error {
	return e.Underlying
}
