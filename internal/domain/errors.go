package domain

import "errors"

// Error kinds surfaced by the lifecycle core. Callers match them with
// errors.Is; wrapped variants carry driver detail.
var (
	ErrConnectionFailure  = errors.New("staff: data store unreachable")
	ErrNotFound           = errors.New("staff: account not found")
	ErrDuplicateAccount   = errors.New("staff: username or email already registered")
	ErrForeignKeyNotFound = errors.New("staff: referenced address or store does not exist")
	ErrEmptyValue         = errors.New("staff: value must not be empty")
	ErrInvalidBoolean     = errors.New("staff: value is not a recognized boolean")
	ErrInvalidInteger     = errors.New("staff: value is not a positive integer")
	ErrUnknownField       = errors.New("staff: field is not modifiable")
	ErrInvalidCredentials = errors.New("staff: invalid username or password")
	ErrAccountDisabled    = errors.New("staff: account is disabled")
	ErrSameCredential     = errors.New("staff: new password must differ from the old one")
	ErrCredentialTooShort = errors.New("staff: password must be at least 6 characters")
	ErrDeleteFailed       = errors.New("staff: delete removed no rows")
)
