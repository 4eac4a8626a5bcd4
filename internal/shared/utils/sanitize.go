package utils

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// SanitizeText strips markup from free-text input such as names and device names.
func SanitizeText(s string) string {
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}

// NormalizeRegistrationNumber trims and upper-cases a registration number.
func NormalizeRegistrationNumber(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
