package domain

import (
	"errors"
	"fmt"
)

// Application error codes.
// These map to HTTP status codes and determine user-facing messages.
const (
	EINVALID     = "invalid"      // 400 - Validation error (bad input)
	EFORBIDDEN   = "forbidden"    // 403 - Request refused (e.g. CSRF)
	ENOTFOUND    = "not_found"    // 404 - Resource not found
	ETOOLARGE    = "too_large"    // 413 - Request body too large
	ERATELIMIT   = "rate_limited" // 429 - Too many requests
	EINTERNAL    = "internal"     // 500 - Internal server error (hide details)
	EUNAVAILABLE = "unavailable"  // 503 - Upstream dependency unavailable
	ETIMEOUT     = "timeout"      // 504 - Request took too long
)

// internalMessage is shown to shoppers instead of internal error details.
const internalMessage = "Ocorreu um erro interno. Tente novamente em instantes."

// Error represents an application error with a code and message.
// It implements the error interface and supports error wrapping.
type Error struct {
	// Code is a machine-readable error code (e.g., EINVALID, ENOTFOUND).
	Code string

	// Message is a human-readable message safe to show to shoppers.
	Message string

	// Op is the operation where the error occurred (e.g., "quote.update_wall").
	// Used for logging, never shown to shoppers.
	Op string

	// Err is the underlying error, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		if e.Op != "" {
			return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
		}
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	return e.Message
}

// Unwrap implements error unwrapping for errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorCode extracts the error code from an error.
// Returns EINTERNAL for non-domain errors and EINVALID for validation errors.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		return EINVALID
	}

	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}

	return EINTERNAL
}

// ErrorMessage extracts a shopper-facing message from an error.
// Internal and unknown errors collapse to a generic message.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message()
	}

	var e *Error
	if errors.As(err, &e) {
		if e.Code == EINTERNAL {
			return internalMessage
		}
		return e.Message
	}

	return internalMessage
}

// ErrorOp extracts the operation from an error (for logging).
func ErrorOp(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Op
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Op
	}

	return ""
}

// Errorf creates a new domain error with formatted message.
func Errorf(code, op, format string, args ...any) error {
	return &Error{
		Code:    code,
		Op:      op,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapError wraps an existing error with a domain code and operation.
// Returns nil if err is nil.
func WrapError(err error, code, op, message string) error {
	if err == nil {
		return nil
	}

	return &Error{
		Code:    code,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// IsCode returns true if err has the given error code.
func IsCode(err error, code string) bool {
	return ErrorCode(err) == code
}

// NotFound creates a not found error for a resource.
func NotFound(op, resource, identifier string) error {
	return &Error{
		Code:    ENOTFOUND,
		Op:      op,
		Message: fmt.Sprintf("%s não encontrado: %s", resource, identifier),
	}
}

// Invalid creates a validation error for a single issue.
func Invalid(op, message string) error {
	return &Error{
		Code:    EINVALID,
		Op:      op,
		Message: message,
	}
}

// Unavailable marks an upstream dependency (database, broker) as unreachable.
func Unavailable(err error, op, message string) error {
	return &Error{
		Code:    EUNAVAILABLE,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// Internal creates an internal error wrapping err for logging.
func Internal(err error, op, message string) error {
	return &Error{
		Code:    EINTERNAL,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// =============================================================================
// Validation Errors (field-level errors for forms)
// =============================================================================

// ValidationError represents one or more field validation failures.
// Fields keeps insertion order so forms show messages top to bottom.
type ValidationError struct {
	Op     string
	Fields []FieldError
}

// FieldError is a single form field failure.
type FieldError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Fields) == 1 {
		f := e.Fields[0]
		if e.Op != "" {
			return fmt.Sprintf("%s: %s: %s", e.Op, f.Field, f.Message)
		}
		return fmt.Sprintf("%s: %s", f.Field, f.Message)
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: validation failed for %d fields", e.Op, len(e.Fields))
	}
	return fmt.Sprintf("validation failed for %d fields", len(e.Fields))
}

// Message returns the first field message, the one shown in a blocking alert.
func (e *ValidationError) Message() string {
	if len(e.Fields) == 0 {
		return ""
	}
	return e.Fields[0].Message
}

// NewValidationError creates a validation error for a single field.
func NewValidationError(op, field, message string) error {
	return &ValidationError{
		Op:     op,
		Fields: []FieldError{{Field: field, Message: message}},
	}
}

// AddFieldError appends a field error, creating the ValidationError if needed.
func AddFieldError(err error, op, field, message string) error {
	var ve *ValidationError
	if err != nil && errors.As(err, &ve) {
		ve.Fields = append(ve.Fields, FieldError{Field: field, Message: message})
		return ve
	}

	return &ValidationError{
		Op:     op,
		Fields: []FieldError{{Field: field, Message: message}},
	}
}

// GetValidationFields extracts field errors as a map keyed by field name.
// Returns nil if err is not a ValidationError.
func GetValidationFields(err error) map[string]string {
	var ve *ValidationError
	if !errors.As(err, &ve) {
		return nil
	}
	fields := make(map[string]string, len(ve.Fields))
	for _, f := range ve.Fields {
		fields[f.Field] = f.Message
	}
	return fields
}
