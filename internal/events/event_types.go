package events

import (
	"time"

	"github.com/spec-kit/staff-directory/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventAccountRegistered EventType = "account_registered"
	EventAccountLoggedIn   EventType = "account_logged_in"
	EventCredentialRotated EventType = "credential_rotated"
	EventFieldModified     EventType = "field_modified"
	EventAccountDeleted    EventType = "account_deleted"
)

// Event represents a lifecycle event emitted by the service layer. It never
// carries secrets or credentials.
type Event struct {
	ID        string       `json:"id"`
	Type      EventType    `json:"type"`
	AccountID int          `json:"account_id"`
	Username  string       `json:"username"`
	Field     domain.Field `json:"field,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}
