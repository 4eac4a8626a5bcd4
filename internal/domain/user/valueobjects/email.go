package valueobjects

import (
	"fmt"
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Email is an optional, globally unique contact address. Stored lower-cased.
type Email struct {
	value string
}

// NewEmail creates a new Email value object with validation
func NewEmail(value string) (*Email, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))

	if normalized == "" {
		return nil, fmt.Errorf("email cannot be empty")
	}
	if len(normalized) > 255 {
		return nil, fmt.Errorf("email cannot exceed 255 characters")
	}
	if !emailRegex.MatchString(normalized) {
		return nil, fmt.Errorf("invalid email format: %s", value)
	}

	return &Email{value: normalized}, nil
}

// NewOptionalEmail returns nil for blank input.
func NewOptionalEmail(value string) (*Email, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	return NewEmail(value)
}

func (e *Email) String() string {
	return e.value
}

// Equals checks if two email objects are equal
func (e *Email) Equals(other *Email) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.value == other.value
}
