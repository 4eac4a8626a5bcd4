package shared

import "time"

// IsExpiredAt reports whether expiresAt has passed at now.
// A zero expiresAt never expires.
func IsExpiredAt(expiresAt, now time.Time) bool {
	if expiresAt.IsZero() {
		return false
	}
	return now.After(expiresAt)
}
