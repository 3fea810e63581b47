package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrConflict      = errors.New("conflict")

	ErrDuplicate    = errors.New("duplicate review")
	ErrRateLimited  = errors.New("daily review limit reached")
	ErrConnectivity = errors.New("connectivity failure")
	ErrLedger       = errors.New("points ledger failure")
)

// ErrorCode is the stable machine-readable kind carried by rejection payloads.
type ErrorCode string

const (
	CodeValidation      ErrorCode = "VALIDATION"
	CodeDuplicate       ErrorCode = "DUPLICATE_REVIEW"
	CodeRateLimited     ErrorCode = "DAILY_LIMIT_REACHED"
	CodeConnectivity    ErrorCode = "CONNECTIVITY"
	CodeLedger          ErrorCode = "LEDGER"
	CodeInsufficient    ErrorCode = "INSUFFICIENT_POINTS"
	CodeNotFound        ErrorCode = "NOT_FOUND"
	CodeUnauthorized    ErrorCode = "UNAUTHENTICATED"
	CodeForbidden       ErrorCode = "FORBIDDEN"
	CodeInternal        ErrorCode = "INTERNAL"
	CodeTooManyRequests ErrorCode = "TOO_MANY_REQUESTS"
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Code returns CodeValidation.
func (e *ValidationError) Code() ErrorCode { return CodeValidation }

// HasField reports whether any field error is attached to field.
func (e *ValidationError) HasField(field string) bool {
	for _, fe := range e.Errors {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// DuplicateError rejects a second review for the same rater and subject
// inside one hour bucket.
type DuplicateError struct {
	Identity  RaterIdentity
	SubjectID string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate review: %s already rated %s this hour", e.Identity, e.SubjectID)
}

func (e *DuplicateError) Unwrap() error { return ErrDuplicate }

// Code returns CodeDuplicate.
func (e *DuplicateError) Code() ErrorCode { return CodeDuplicate }

// RateLimitError rejects a review past the daily cap. Count is the number of
// reviews the rater already had accepted that day.
type RateLimitError struct {
	Count int
	Limit int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited: already submitted %d reviews today (limit %d)", e.Count, e.Limit)
}

func (e *RateLimitError) Unwrap() error { return ErrRateLimited }

// Code returns CodeRateLimited.
func (e *RateLimitError) Code() ErrorCode { return CodeRateLimited }

// ConnectivityError wraps a transport failure. Submissions failing with it are
// queued for replay instead of being surfaced.
type ConnectivityError struct {
	Op  string
	Err error
}

func (e *ConnectivityError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("connectivity: %s", e.Op)
	}
	return fmt.Sprintf("connectivity: %s: %v", e.Op, e.Err)
}

func (e *ConnectivityError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrConnectivity}
	}
	return []error{ErrConnectivity, e.Err}
}

// Code returns CodeConnectivity.
func (e *ConnectivityError) Code() ErrorCode { return CodeConnectivity }

// LedgerError reports a failed points award. It is logged, never surfaced.
type LedgerError struct {
	ReviewID string
	Err      error
}

func (e *LedgerError) Error() string {
	return fmt.Sprintf("ledger: award for review %s: %v", e.ReviewID, e.Err)
}

func (e *LedgerError) Unwrap() []error { return []error{ErrLedger, e.Err} }

// Code returns CodeLedger.
func (e *LedgerError) Code() ErrorCode { return CodeLedger }

// InsufficientPointsError rejects a spend larger than the available balance.
type InsufficientPointsError struct {
	Available int
	Requested int
}

func (e *InsufficientPointsError) Error() string {
	return fmt.Sprintf("insufficient points: requested %d, available %d", e.Requested, e.Available)
}

func (e *InsufficientPointsError) Unwrap() error { return ErrConflict }

// Code returns CodeInsufficient.
func (e *InsufficientPointsError) Code() ErrorCode { return CodeInsufficient }

// IsTerminal reports whether err is an explicit rejection that must be shown
// to the rater and never retried.
func IsTerminal(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrDuplicate) || errors.Is(err, ErrRateLimited)
}
