// Package staffid formats the human-readable staff identifiers handed out
// per department: FAC001, STAFF014, ADMIN003.
package staffid

import (
	"fmt"

	"staff-administration/pkg/apperr"
)

// Prefix returns the identifier prefix for a department category.
func Prefix(department string) (string, error) {
	switch department {
	case "Teaching":
		return "FAC", nil
	case "Support":
		return "STAFF", nil
	case "Administration":
		return "ADMIN", nil
	default:
		return "", apperr.Validationf("unknown department %q", department)
	}
}

// Format builds the staff identifier from a prefix and a sequence number.
// The sequence comes from a per-department counter that only ever
// increases, so identifiers stay unique even after staff are deleted.
func Format(prefix string, seq int64) string {
	return fmt.Sprintf("%s%03d", prefix, seq)
}
