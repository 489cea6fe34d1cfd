package analytics

import "time"

// Topics for analytics events.
const (
	TopicURLCreated = "url.created"
	TopicURLVisited = "url.visited"
)

// URLCreatedEvent is emitted when a URL is shortened.
type URLCreatedEvent struct {
	Code            string    `json:"code"`
	OriginalURL     string    `json:"originalUrl"`
	ValidityMinutes int64     `json:"validityMinutes"`
	CreatedAt       time.Time `json:"createdAt"`
	ExpiresAt       time.Time `json:"expiresAt"`
	ClientIP        string    `json:"clientIp"`
	UserAgent       string    `json:"userAgent"`
}

// URLVisitedEvent is emitted for every visit attempt, whatever the outcome
// (ok, not_found, expired).
type URLVisitedEvent struct {
	Code        string    `json:"code"`
	Outcome     string    `json:"outcome"`
	OriginalURL string    `json:"originalUrl,omitempty"`
	Clicks      int64     `json:"clicks"`
	VisitedAt   time.Time `json:"visitedAt"`
	ClientIP    string    `json:"clientIp"`
	UserAgent   string    `json:"userAgent"`
	Referrer    string    `json:"referrer"`
}
