package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/spec-kit/staff-directory/internal/domain"
)

func TestToDomainErrorMapsLifecycleKinds(t *testing.T) {
	tests := []struct {
		err    error
		code   string
		status int
	}{
		{domain.ErrNotFound, "NOT_FOUND", http.StatusNotFound},
		{domain.ErrDuplicateAccount, "DUPLICATE_ACCOUNT", http.StatusConflict},
		{domain.ErrForeignKeyNotFound, "FOREIGN_KEY_NOT_FOUND", http.StatusUnprocessableEntity},
		{domain.ErrInvalidCredentials, "INVALID_CREDENTIALS", http.StatusUnauthorized},
		{domain.ErrAccountDisabled, "ACCOUNT_DISABLED", http.StatusForbidden},
		{domain.ErrCredentialTooShort, "CREDENTIAL_TOO_SHORT", http.StatusBadRequest},
		{domain.ErrConnectionFailure, "DATA_STORE_UNAVAILABLE", http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			mapped := ToDomainError(tt.err)
			if mapped.Code != tt.code || mapped.HTTPStatus != tt.status {
				t.Fatalf("got code=%s status=%d, want %s/%d", mapped.Code, mapped.HTTPStatus, tt.code, tt.status)
			}
		})
	}
}

func TestToDomainErrorUnwrapsWrappedKinds(t *testing.T) {
	wrapped := fmt.Errorf("%w: staff_email_key", domain.ErrDuplicateAccount)
	mapped := ToDomainError(wrapped)
	if mapped.Code != "DUPLICATE_ACCOUNT" {
		t.Fatalf("wrapped kind not recognized: %+v", mapped)
	}
	if !errors.Is(mapped, domain.ErrDuplicateAccount) {
		t.Fatal("mapping must preserve the error chain")
	}
}

func TestToDomainErrorFallsBackToInternal(t *testing.T) {
	mapped := ToDomainError(errors.New("driver exploded"))
	if mapped.Code != "INTERNAL_ERROR" || mapped.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("unexpected mapping: %+v", mapped)
	}
}
