package errors

import (
	"errors"
	"testing"
	"time"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("code", "must be non-empty after trimming")

	if err.Type != ErrorTypeValidation {
		t.Errorf("Expected Type to be ErrorTypeValidation, got %v", err.Type)
	}

	if err.Field != "code" {
		t.Errorf("Expected Field to be 'code', got %s", err.Field)
	}

	expectedMsg := "validation failed for code: must be non-empty after trimming"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message %q, got %q", expectedMsg, err.Error())
	}
}

func TestUnsupportedLanguageError(t *testing.T) {
	err := NewUnsupportedLanguageError("perl")

	if err.Type != ErrorTypeUnsupportedLanguage {
		t.Errorf("Expected Type to be ErrorTypeUnsupportedLanguage, got %v", err.Type)
	}

	if err.Language != "perl" {
		t.Errorf("Expected Language to be 'perl', got %s", err.Language)
	}

	expectedMsg := `language "perl" has no registered grammar; generic grammar applied`
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message %q, got %q", expectedMsg, err.Error())
	}
}

func TestModelUnavailableError(t *testing.T) {
	underlying := errors.New("registry empty")
	err := NewModelUnavailableError("predict", underlying)

	if err.Type != ErrorTypeModelUnavailable {
		t.Errorf("Expected Type to be ErrorTypeModelUnavailable, got %v", err.Type)
	}

	if err.Operation != "predict" {
		t.Errorf("Expected Operation to be 'predict', got %s", err.Operation)
	}

	if !errors.Is(err, underlying) {
		t.Errorf("Expected error to unwrap to underlying error")
	}

	expectedMsg := "ensemble predict unavailable: registry empty"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message %q, got %q", expectedMsg, err.Error())
	}
}

func TestModelUnavailableErrorWithoutUnderlying(t *testing.T) {
	err := NewModelUnavailableError("predict", nil)

	expectedMsg := "ensemble predict unavailable"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message %q, got %q", expectedMsg, err.Error())
	}

	if err.Unwrap() != nil {
		t.Errorf("Expected nil unwrap for nil underlying")
	}
}

func TestArtifactError(t *testing.T) {
	underlying := errors.New("toml: invalid table")
	err := NewArtifactError("/models/tree-a.toml", "tree-a", underlying)

	if err.Type != ErrorTypeArtifact {
		t.Errorf("Expected Type to be ErrorTypeArtifact, got %v", err.Type)
	}

	if !errors.Is(err, underlying) {
		t.Errorf("Expected error to unwrap to underlying error")
	}

	expectedMsg := "model artifact tree-a (/models/tree-a.toml) failed: toml: invalid table"
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message %q, got %q", expectedMsg, err.Error())
	}

	noID := NewArtifactError("/models/bad.toml", "", underlying)
	expectedMsg = "model artifact /models/bad.toml failed: toml: invalid table"
	if noID.Error() != expectedMsg {
		t.Errorf("Expected error message %q, got %q", expectedMsg, noID.Error())
	}
}

func TestConfigError(t *testing.T) {
	underlying := errors.New("invalid value")
	err := NewConfigError("field_name", "invalid_value", underlying)

	if err.Field != "field_name" {
		t.Errorf("Expected Field to be 'field_name', got %s", err.Field)
	}

	if err.Value != "invalid_value" {
		t.Errorf("Expected Value to be 'invalid_value', got %s", err.Value)
	}

	if !errors.Is(err, underlying) {
		t.Errorf("Expected error to unwrap to underlying error")
	}

	expectedMsg := `config error for field field_name (value invalid_value): invalid value`
	if err.Error() != expectedMsg {
		t.Errorf("Expected error message %q, got %q", expectedMsg, err.Error())
	}
}

func TestTimestamp(t *testing.T) {
	// Verify that errors have timestamps
	err := NewValidationError("code", "empty")
	if err.Timestamp.IsZero() {
		t.Errorf("Expected non-zero timestamp")
	}

	// Verify timestamp is recent (within last second)
	now := time.Now()
	if err.Timestamp.After(now) || now.Sub(err.Timestamp) > time.Second {
		t.Errorf("Timestamp seems incorrect: %v", err.Timestamp)
	}
}
