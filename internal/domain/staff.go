package domain

import "time"

// Field names a mutable StaffAccount attribute. The set is closed: only the
// enumerated constants below are ever accepted, so no caller-supplied string
// can reach statement structure.
type Field string

const (
	FieldFirstName Field = "first_name"
	FieldLastName  Field = "last_name"
	FieldEmail     Field = "email"
	FieldUsername  Field = "username"
	FieldAddressID Field = "address_id"
	FieldStoreID   Field = "store_id"
	FieldActive    Field = "active"
)

// MutableFields lists every field ModifyField accepts, in display order.
var MutableFields = []Field{
	FieldFirstName,
	FieldLastName,
	FieldEmail,
	FieldUsername,
	FieldAddressID,
	FieldStoreID,
	FieldActive,
}

// StaffAccount models a directory entry in the staff table.
type StaffAccount struct {
	ID         int
	FirstName  string
	LastName   string
	Email      string
	Username   string
	Credential string // salted hash, never the plaintext secret
	AddressID  int
	StoreID    int
	Active     bool
	LastUpdate time.Time
}

// ValueOf returns the current typed value of a mutable field.
func (a *StaffAccount) ValueOf(field Field) (any, bool) {
	switch field {
	case FieldFirstName:
		return a.FirstName, true
	case FieldLastName:
		return a.LastName, true
	case FieldEmail:
		return a.Email, true
	case FieldUsername:
		return a.Username, true
	case FieldAddressID:
		return a.AddressID, true
	case FieldStoreID:
		return a.StoreID, true
	case FieldActive:
		return a.Active, true
	default:
		return nil, false
	}
}
