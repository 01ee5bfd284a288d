package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/spec-kit/staff-directory/internal/domain"
)

// DomainError standardizes application errors at the HTTP boundary.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
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

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// kindMappings translates lifecycle error kinds into HTTP envelopes, checked
// in order.
var kindMappings = []struct {
	kind   error
	code   string
	status int
}{
	{domain.ErrNotFound, "NOT_FOUND", http.StatusNotFound},
	{domain.ErrDuplicateAccount, "DUPLICATE_ACCOUNT", http.StatusConflict},
	{domain.ErrForeignKeyNotFound, "FOREIGN_KEY_NOT_FOUND", http.StatusUnprocessableEntity},
	{domain.ErrEmptyValue, "EMPTY_VALUE", http.StatusBadRequest},
	{domain.ErrInvalidBoolean, "INVALID_BOOLEAN", http.StatusBadRequest},
	{domain.ErrInvalidInteger, "INVALID_INTEGER", http.StatusBadRequest},
	{domain.ErrUnknownField, "UNKNOWN_FIELD", http.StatusBadRequest},
	{domain.ErrInvalidCredentials, "INVALID_CREDENTIALS", http.StatusUnauthorized},
	{domain.ErrAccountDisabled, "ACCOUNT_DISABLED", http.StatusForbidden},
	{domain.ErrSameCredential, "SAME_CREDENTIAL", http.StatusBadRequest},
	{domain.ErrCredentialTooShort, "CREDENTIAL_TOO_SHORT", http.StatusBadRequest},
	{domain.ErrDeleteFailed, "DELETE_FAILED", http.StatusConflict},
	{domain.ErrConnectionFailure, "DATA_STORE_UNAVAILABLE", http.StatusServiceUnavailable},
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	for _, mapping := range kindMappings {
		if errors.Is(err, mapping.kind) {
			return &DomainError{
				Code:       mapping.code,
				Message:    mapping.kind.Error(),
				HTTPStatus: mapping.status,
				Err:        err,
			}
		}
	}
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// MapError converts generic errors to DomainError.
func MapError(err error) error {
	if err == nil {
		return nil
	}
	return ToDomainError(err)
}
