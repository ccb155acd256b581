package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeUnrecognizedSoil, "Tipo de tierra no reconocido")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if err.Code != ErrCodeUnrecognizedSoil {
		t.Errorf("expected code %s, got %s", ErrCodeUnrecognizedSoil, err.Code)
	}
	if err.Message != "Tipo de tierra no reconocido" {
		t.Errorf("unexpected message %q", err.Message)
	}
	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInference, "operation failed", cause)

	if err.Code != ErrCodeInference {
		t.Errorf("expected code %s, got %s", ErrCodeInference, err.Code)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected cause to be wrapped")
	}
}

func TestWrapWithContext(t *testing.T) {
	cause := errors.New("not a number")
	ctx := map[string]any{
		"field": "temp",
	}

	err := WrapWithContext(ErrCodeValidation, "bad field", cause, ctx)

	if err.Code != ErrCodeValidation {
		t.Errorf("expected code %s, got %s", ErrCodeValidation, err.Code)
	}
	if err.Context == nil {
		t.Fatal("expected context to be set")
	}
	if err.Context["field"] != "temp" {
		t.Errorf("expected field to be temp")
	}
}

func TestError(t *testing.T) {
	tests := []struct {
		name     string
		err      *StructuredError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(ErrCodeNotFound, "not found"),
			expected: "[NOT_FOUND] not found",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeInternal, "failed", errors.New("root cause")),
			expected: "[INTERNAL] failed: root cause",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestDetail(t *testing.T) {
	if got := New(ErrCodeUnrecognizedSoil, "Tipo de tierra no reconocido").Detail(); got != "Tipo de tierra no reconocido" {
		t.Errorf("unexpected detail %q", got)
	}
	got := Wrap(ErrCodeValidation, "invalid temp", errors.New("not a number")).Detail()
	if got != "invalid temp: not a number" {
		t.Errorf("unexpected detail %q", got)
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := Wrap(ErrCodeInternal, "wrapped", cause)

	if !errors.Is(err.Unwrap(), cause) {
		t.Errorf("expected unwrapped error to be original cause")
	}
}

func TestCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"structured", New(ErrCodeValidation, "x"), ErrCodeValidation},
		{"wrapped by fmt", fmt.Errorf("ctx: %w", New(ErrCodeUnrecognizedSoil, "x")), ErrCodeUnrecognizedSoil},
		{"plain error", errors.New("boom"), ErrCodeInternal},
		{"nil", nil, ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CodeOf(tt.err); got != tt.want {
				t.Errorf("CodeOf() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestIsCode(t *testing.T) {
	inner := New(ErrCodeUnrecognizedSoil, "unknown")
	outer := Wrap(ErrCodeInternal, "outer", inner)

	if !IsCode(outer, ErrCodeInternal) {
		t.Error("expected outer code to match")
	}
	if !IsCode(outer, ErrCodeUnrecognizedSoil) {
		t.Error("expected inner code to match")
	}
	if IsCode(outer, ErrCodeValidation) {
		t.Error("did not expect validation code")
	}
	if IsCode(errors.New("plain"), ErrCodeInternal) {
		t.Error("plain errors carry no code")
	}
}
