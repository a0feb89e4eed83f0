package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name: "message only",
			err: &Error{
				Code:    EINVALID,
				Message: "invalid input",
			},
			expected: "invalid input",
		},
		{
			name: "with operation",
			err: &Error{
				Code:    EINVALID,
				Op:      "quote.update_wall",
				Message: "invalid input",
			},
			expected: "quote.update_wall: invalid input",
		},
		{
			name: "with wrapped error",
			err: &Error{
				Code:    EUNAVAILABLE,
				Op:      "catalog.load",
				Message: "content source unavailable",
				Err:     errors.New("connection refused"),
			},
			expected: "catalog.load: content source unavailable: connection refused",
		},
		{
			name: "wrapped error without op",
			err: &Error{
				Code:    EINTERNAL,
				Message: "failed to save",
				Err:     errors.New("database connection failed"),
			},
			expected: "failed to save: database connection failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error.Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	underlying := errors.New("underlying error")
	err := Internal(underlying, "catalog.load", "wrapped")

	if !errors.Is(err, underlying) {
		t.Error("errors.Is should find underlying error")
	}
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil error", nil, ""},
		{"domain error", &Error{Code: EINVALID, Message: "test"}, EINVALID},
		{"wrapped domain error", fmt.Errorf("wrapped: %w", &Error{Code: ENOTFOUND, Message: "test"}), ENOTFOUND},
		{"validation error", NewValidationError("quote.submit", "walls", "missing"), EINVALID},
		{"non-domain error", errors.New("some error"), EINTERNAL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorCode(tt.err); got != tt.expected {
				t.Errorf("ErrorCode() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil error", nil, ""},
		{"domain error with message", &Error{Code: EINVALID, Message: "campo inválido"}, "campo inválido"},
		{"internal error hides message", &Error{Code: EINTERNAL, Message: "dsn leaked"}, internalMessage},
		{"non-domain error returns generic message", errors.New("some internal detail"), internalMessage},
		{"validation error returns first field", AddFieldError(NewValidationError("op", "a", "first"), "op", "b", "second"), "first"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorMessage(tt.err); got != tt.expected {
				t.Errorf("ErrorMessage() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestErrorOp(t *testing.T) {
	if got := ErrorOp(Invalid("quote.update_wall", "x")); got != "quote.update_wall" {
		t.Errorf("ErrorOp() = %q", got)
	}
	if got := ErrorOp(NewValidationError("quote.submit", "walls", "x")); got != "quote.submit" {
		t.Errorf("ErrorOp() = %q", got)
	}
	if got := ErrorOp(errors.New("x")); got != "" {
		t.Errorf("ErrorOp() = %q, want empty", got)
	}
}

func TestWrapError(t *testing.T) {
	t.Run("wraps non-nil error", func(t *testing.T) {
		underlying := errors.New("db error")
		err := WrapError(underlying, EINTERNAL, "catalog.load", "failed to load")

		if !IsCode(err, EINTERNAL) {
			t.Errorf("code = %q, want %q", ErrorCode(err), EINTERNAL)
		}
		if !errors.Is(err, underlying) {
			t.Error("should wrap underlying error")
		}
	})

	t.Run("returns nil for nil error", func(t *testing.T) {
		if err := WrapError(nil, EINTERNAL, "test", "test"); err != nil {
			t.Errorf("WrapError(nil) should return nil, got %v", err)
		}
	})
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("quote.submit", "walls", "preencha as medidas")
	err = AddFieldError(err, "quote.submit", "texture", "selecione uma textura")

	fields := GetValidationFields(err)
	if len(fields) != 2 {
		t.Fatalf("len(fields) = %d, want 2", len(fields))
	}
	if fields["texture"] != "selecione uma textura" {
		t.Errorf("texture field = %q", fields["texture"])
	}
	if got := err.Error(); got != "quote.submit: validation failed for 2 fields" {
		t.Errorf("Error() = %q", got)
	}
	if GetValidationFields(errors.New("plain")) != nil {
		t.Error("plain errors have no validation fields")
	}
}
