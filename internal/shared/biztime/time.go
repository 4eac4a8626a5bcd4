// Package biztime centralises time access. All storage and transport use UTC.
package biztime

import "time"

// Clock returns the current time. Components that need deterministic time in
// tests accept a Clock instead of calling time.Now directly.
type Clock func() time.Time

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// OrDefault returns c, or NowUTC when c is nil.
func (c Clock) OrDefault() Clock {
	if c == nil {
		return NowUTC
	}
	return c
}
