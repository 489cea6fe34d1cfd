package shortener

import (
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ValidateURL checks that raw is a well-formed absolute URL and returns it trimmed.
// Empty or whitespace-only input yields ErrEmptyURL; anything that does not
// parse with both a scheme and a host yields ErrInvalidURL.
func ValidateURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrEmptyURL
	}

	u, err := url.Parse(trimmed)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", ErrInvalidURL
	}

	return trimmed, nil
}

// ParseValidity parses the validity form text into a duration.
// Blank input falls back to the supplied default; non-integer or non-positive
// input yields ErrInvalidValidity. Granularity is whole minutes.
func ParseValidity(text string, fallback time.Duration) (time.Duration, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return fallback, nil
	}

	minutes, err := strconv.Atoi(trimmed)
	if err != nil || minutes <= 0 {
		return 0, ErrInvalidValidity
	}

	return time.Duration(minutes) * time.Minute, nil
}
