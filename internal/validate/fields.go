// Package validate type-checks raw values for the closed staff field set.
// Referential checks against address/store rows happen in the lifecycle,
// since they need a store lookup.
package validate

import (
	"strconv"
	"strings"

	"github.com/spec-kit/staff-directory/internal/domain"
)

var trueSynonyms = map[string]bool{
	"true": true, "t": true, "1": true, "yes": true, "y": true,
}

var falseSynonyms = map[string]bool{
	"false": true, "f": true, "0": true, "no": true, "n": true,
}

// Field parses rawValue according to the field's declared type and returns
// the typed value: string for text fields, int for reference fields, bool
// for the active flag.
func Field(field domain.Field, rawValue string) (any, error) {
	switch field {
	case domain.FieldFirstName, domain.FieldLastName, domain.FieldEmail, domain.FieldUsername:
		return text(rawValue)
	case domain.FieldAddressID, domain.FieldStoreID:
		return positiveInt(rawValue)
	case domain.FieldActive:
		return boolean(rawValue)
	default:
		return nil, domain.ErrUnknownField
	}
}

func text(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", domain.ErrEmptyValue
	}
	return trimmed, nil
}

func positiveInt(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return 0, domain.ErrInvalidInteger
	}
	return n, nil
}

func boolean(raw string) (bool, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if trueSynonyms[normalized] {
		return true, nil
	}
	if falseSynonyms[normalized] {
		return false, nil
	}
	return false, domain.ErrInvalidBoolean
}
