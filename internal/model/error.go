package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Code    string            `json:"code"`
	Fields  map[string]string `json:"fields,omitempty"`
	Details []string          `json:"details,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeValidation     = "VALIDATION_ERROR"
	ErrCodeNotFound       = "NOT_FOUND"
	ErrCodeConflict       = "CONFLICT"
	ErrCodeMalformedInput = "MALFORMED_INPUT"
	ErrCodeSchemaMismatch = "SCHEMA_MISMATCH"
	ErrCodeNoValidRows    = "NO_VALID_ROWS"
	ErrCodeInvalidUpload  = "INVALID_UPLOAD"
	ErrCodeUnauthorised   = "UNAUTHENTICATED"
	ErrCodeStorage        = "STORAGE_FAILURE"
	ErrCodeInvalidJSON    = "INVALID_JSON"
	ErrCodeInternalError  = "INTERNAL_ERROR"
)

// DomainError is a business-level failure with a machine-readable code.
type DomainError struct {
	Code    string
	Message string
	Fields  map[string]string
	Details []string
	Err     error
}

func (e *DomainError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return e.Message + " (" + strings.Join(parts, "; ") + ")"
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches domain errors by code so sentinels work with errors.Is.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Code == e.Code && (t.Message == "" || t.Message == e.Message)
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// FieldErrors maps a field name to a human-readable message. Empty means valid.
type FieldErrors map[string]string

// Add records a message for field unless one is already present.
func (f FieldErrors) Add(field, message string) {
	if _, exists := f[field]; !exists {
		f[field] = message
	}
}

// Err converts the set into a validation DomainError, or nil when empty.
func (f FieldErrors) Err() error {
	if len(f) == 0 {
		return nil
	}
	return &DomainError{Code: ErrCodeValidation, Message: "validation failed", Fields: f}
}

// NewValidationError builds a validation error for a single field.
func NewValidationError(field, message string) *DomainError {
	return &DomainError{
		Code:    ErrCodeValidation,
		Message: message,
		Fields:  map[string]string{field: message},
	}
}

// NewNotFoundError reports a missed id or name lookup.
func NewNotFoundError(kind, key string) *DomainError {
	return &DomainError{Code: ErrCodeNotFound, Message: fmt.Sprintf("%s not found: %s", kind, key)}
}

// NewConflictError reports a duplicate or still-referenced entity.
func NewConflictError(message string) *DomainError {
	return NewDomainError(ErrCodeConflict, message)
}

// NewStorageError wraps a record store fault.
func NewStorageError(op string, err error) *DomainError {
	return &DomainError{Code: ErrCodeStorage, Message: "storage failure: " + op, Err: err}
}

// Common domain errors
var (
	ErrNotFound        = NewDomainError(ErrCodeNotFound, "")
	ErrConflict        = NewDomainError(ErrCodeConflict, "")
	ErrValidation      = NewDomainError(ErrCodeValidation, "")
	ErrMalformedInput  = NewDomainError(ErrCodeMalformedInput, "")
	ErrSchemaMismatch  = NewDomainError(ErrCodeSchemaMismatch, "")
	ErrNoValidRows     = NewDomainError(ErrCodeNoValidRows, "")
	ErrInvalidUpload   = NewDomainError(ErrCodeInvalidUpload, "")
	ErrStorage         = NewDomainError(ErrCodeStorage, "")
	ErrUnauthenticated = NewDomainError(ErrCodeUnauthorised, "authentication required")
	ErrInvalidLogin    = NewDomainError(ErrCodeUnauthorised, "invalid credentials")
)

// CodeOf returns the DomainError code in err's chain, or ErrCodeInternalError.
func CodeOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ErrCodeInternalError
}
