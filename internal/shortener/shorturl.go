package shortener

import "time"

// Code represents a short URL code.
type Code string

// ShortURL represents a shortened URL entity with an expiry window.
type ShortURL struct {
	Code        Code
	OriginalURL string
	CreatedAt   time.Time
	ExpiresAt   time.Time
	Clicks      int64
}

// IsExpired reports whether the record's validity window has passed at the given instant.
// A record expires strictly after ExpiresAt; a visit at exactly ExpiresAt still resolves.
func (u *ShortURL) IsExpired(at time.Time) bool {
	return at.After(u.ExpiresAt)
}

// Remaining returns the time left in the validity window, floored at zero.
func (u *ShortURL) Remaining(at time.Time) time.Duration {
	if remaining := u.ExpiresAt.Sub(at); remaining > 0 {
		return remaining
	}

	return 0
}
