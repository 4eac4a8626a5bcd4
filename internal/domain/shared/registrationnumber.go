package shared

import (
	"fmt"
	"regexp"
	"strings"
)

var registrationNumberRegex = regexp.MustCompile(`^[A-Z1-9][A-Z0-9]{4,49}$`)

// RegistrationNumber is the unique key linking a user to an approval entry.
// Values are stored trimmed and upper-cased.
type RegistrationNumber struct {
	value string
}

// NewRegistrationNumber normalizes and validates s.
func NewRegistrationNumber(s string) (RegistrationNumber, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	if normalized == "" {
		return RegistrationNumber{}, fmt.Errorf("registration number cannot be empty")
	}
	if !registrationNumberRegex.MatchString(normalized) {
		return RegistrationNumber{}, fmt.Errorf("invalid registration number format: %s", s)
	}
	return RegistrationNumber{value: normalized}, nil
}

// ReconstructRegistrationNumber wraps a stored value without validation.
func ReconstructRegistrationNumber(s string) RegistrationNumber {
	return RegistrationNumber{value: s}
}

func (r RegistrationNumber) String() string { return r.value }

// IsZero reports whether r holds no value.
func (r RegistrationNumber) IsZero() bool { return r.value == "" }
