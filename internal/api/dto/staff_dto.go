package dto

import (
	"time"

	"github.com/spec-kit/staff-directory/internal/domain"
)

// RegisterRequest payload.
type RegisterRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	Email     string `json:"email"`
	AddressID int    `json:"address_id"`
	StoreID   int    `json:"store_id"`
}

// LoginRequest payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// PasswordChangeRequest payload for credential rotation.
type PasswordChangeRequest struct {
	Username    string `json:"username"`
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// ModifyFieldRequest payload for single-attribute mutation. Value is the raw
// textual input; the server parses it according to the field's type.
type ModifyFieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// DeleteRequest payload. Deletion is irreversible; the caller must echo the
// username to confirm the target.
type DeleteRequest struct {
	ConfirmUsername string `json:"confirm_username"`
}

// StaffResponse is the outward shape of an account. The credential never
// leaves the server.
type StaffResponse struct {
	ID         int       `json:"id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Email      string    `json:"email"`
	Username   string    `json:"username"`
	AddressID  int       `json:"address_id"`
	StoreID    int       `json:"store_id"`
	Active     bool      `json:"active"`
	LastUpdate time.Time `json:"last_update"`
}

// FromAccount converts a domain account into its response shape.
func FromAccount(account *domain.StaffAccount) StaffResponse {
	return StaffResponse{
		ID:         account.ID,
		FirstName:  account.FirstName,
		LastName:   account.LastName,
		Email:      account.Email,
		Username:   account.Username,
		AddressID:  account.AddressID,
		StoreID:    account.StoreID,
		Active:     account.Active,
		LastUpdate: account.LastUpdate,
	}
}
