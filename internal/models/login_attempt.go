package models

import "time"

// AttemptRecord tracks consecutive failed logins for one identity key.
// FailureCount is always >= 1 while the record exists.
type AttemptRecord struct {
	Key           string
	FailureCount  int
	LastAttemptAt time.Time
}

// Expired reports whether the cooldown window has elapsed since the last counted failure
func (r AttemptRecord) Expired(now time.Time, cooldown time.Duration) bool {
	return now.Sub(r.LastAttemptAt) >= cooldown
}
