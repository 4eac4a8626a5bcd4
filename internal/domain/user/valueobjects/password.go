package valueobjects

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	MinPasswordLength         = 6
	MaxPasswordLength         = 100
	recommendedPasswordLength = 8
	passwordSpecialChars      = "!@#$%^&*()_+-=[]{}|;:,.<>?"
)

// Password is a plaintext password that passed the hard length rules.
type Password struct {
	value    string
	warnings []string
}

// NewPassword enforces the length bounds and collects advisory warnings.
func NewPassword(plain string) (*Password, error) {
	n := utf8.RuneCountInString(plain)
	if n < MinPasswordLength {
		return nil, fmt.Errorf("password must be at least %d characters long", MinPasswordLength)
	}
	if n > MaxPasswordLength {
		return nil, fmt.Errorf("password must not exceed %d characters", MaxPasswordLength)
	}

	return &Password{value: plain, warnings: strengthWarnings(plain)}, nil
}

func (p *Password) String() string {
	return p.value
}

// Warnings lists advisory weaknesses. They never block registration.
func (p *Password) Warnings() []string {
	return p.warnings
}

func strengthWarnings(password string) []string {
	var warnings []string
	if utf8.RuneCountInString(password) < recommendedPasswordLength {
		warnings = append(warnings, "Consider using a password at least 8 characters long")
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSpecialChars, r):
			hasSpecial = true
		}
	}

	if !hasUpper {
		warnings = append(warnings, "Consider including uppercase letters")
	}
	if !hasLower {
		warnings = append(warnings, "Consider including lowercase letters")
	}
	if !hasDigit {
		warnings = append(warnings, "Consider including numbers")
	}
	if !hasSpecial {
		warnings = append(warnings, "Consider including special characters")
	}
	return warnings
}
