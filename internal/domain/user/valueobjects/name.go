package valueobjects

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	minNameLength = 2
	maxNameLength = 100
)

// Name is a person's name as entered at registration.
type Name struct {
	value string
}

// NewName trims and collapses whitespace, then checks the length bounds.
func NewName(value string) (*Name, error) {
	normalized := strings.Join(strings.Fields(value), " ")

	n := utf8.RuneCountInString(normalized)
	if n < minNameLength {
		return nil, fmt.Errorf("name must be at least %d characters long", minNameLength)
	}
	if n > maxNameLength {
		return nil, fmt.Errorf("name cannot exceed %d characters", maxNameLength)
	}

	return &Name{value: normalized}, nil
}

func (n *Name) String() string {
	return n.value
}

// DisplayName returns the name in title case.
func (n *Name) DisplayName() string {
	return cases.Title(language.Und).String(strings.ToLower(n.value))
}
