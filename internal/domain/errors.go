package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	CodeInternal        ErrorCode = "INTERNAL_ERROR"
	CodeNotFound        ErrorCode = "NOT_FOUND"
	CodeConflict        ErrorCode = "CONFLICT"
	CodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	CodeUnauthorized    ErrorCode = "UNAUTHORIZED"
	CodeForbidden       ErrorCode = "FORBIDDEN"

	// Engine specific errors
	CodeEmptyResult         ErrorCode = "EMPTY_RESULT"
	CodeInconsistency       ErrorCode = "INCONSISTENCY"
	CodePartialBatchFailure ErrorCode = "PARTIAL_BATCH_FAILURE"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Err     error                  `json:"-"`
	Context map[string]interface{} `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// WithContext attaches a detail to the error and returns it.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewConflictError(message string) *DomainError {
	return NewError(CodeConflict, message, nil)
}

func NewInvalidArgumentError(message string) *DomainError {
	return NewError(CodeInvalidArgument, message, nil)
}

func NewEmptyResultError(message string) *DomainError {
	return NewError(CodeEmptyResult, message, nil)
}

func NewUnauthorizedError(message string) *DomainError {
	return NewError(CodeUnauthorized, message, nil)
}

func NewForbiddenError(message string) *DomainError {
	return NewError(CodeForbidden, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(CodeInternal, message, err)
}

func NewInconsistencyError(namespace string, counted, scanned int64) *DomainError {
	return NewError(CodeInconsistency,
		fmt.Sprintf("aggregate count for %s diverges from scan: %d != %d", namespace, counted, scanned), nil).
		WithContext("namespace", namespace).
		WithContext("counted", counted).
		WithContext("scanned", scanned)
}

func NewTaxonomyNodeNotFoundError(id string) *DomainError {
	return NewError(CodeNotFound, fmt.Sprintf("taxonomy node not found: %s", id), nil).WithContext("id", id)
}

func NewQuestionNotFoundError(id string) *DomainError {
	return NewError(CodeNotFound, fmt.Sprintf("question not found: %s", id), nil).WithContext("id", id)
}

func NewQuizNotFoundError(id string) *DomainError {
	return NewError(CodeNotFound, fmt.Sprintf("quiz not found: %s", id), nil).WithContext("id", id)
}

// IsCode reports whether err carries a DomainError with the given code.
func IsCode(err error, code ErrorCode) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}
