package handlers

import (
	"time"

	"github.com/serroba/shortlink-demo/internal/audit"
)

// ShortenRequest is the request body for creating a short URL.
type ShortenRequest struct {
	Body struct {
		URL      string `doc:"The URL to shorten"                                     example:"https://example.com/very/long/path" json:"url"`
		Validity string `doc:"Validity window in minutes; blank for the default (30)" example:"60"                                 json:"validity,omitempty" required:"false"`
	}
}

// ShortenResponse is the response for a successfully created short URL.
type ShortenResponse struct {
	Headers struct {
		Location string `doc:"The short URL location" header:"Location"`
	}
	Body struct {
		Code        string    `doc:"The short code"         example:"aZ3kf9"                             json:"code"`
		ShortURL    string    `doc:"The full short URL"     example:"http://localhost:8888/r/aZ3kf9"     json:"shortUrl"`
		OriginalURL string    `doc:"The original URL"       example:"https://example.com/very/long/path" json:"originalUrl"`
		CreatedAt   time.Time `doc:"Creation time"          json:"createdAt"`
		ExpiresAt   time.Time `doc:"End of validity window" json:"expiresAt"`
		Clicks      int64     `doc:"Visit count"            json:"clicks"`
	}
}

// URLRow is one entry in the records table.
type URLRow struct {
	Code             string    `json:"code"`
	ShortURL         string    `json:"shortUrl"`
	OriginalURL      string    `json:"originalUrl"`
	CreatedAt        time.Time `json:"createdAt"`
	ExpiresAt        time.Time `json:"expiresAt"`
	Clicks           int64     `json:"clicks"`
	Expired          bool      `json:"expired"`
	RemainingSeconds int64     `json:"remainingSeconds"`
}

// ListURLsResponse is the response listing all records, newest first.
type ListURLsResponse struct {
	Body struct {
		URLs []URLRow `json:"urls"`
	}
}

// VisitRequest is the request body for simulating a visit to a short code.
type VisitRequest struct {
	Body struct {
		Code string `doc:"The short code to visit" example:"aZ3kf9" json:"code"`
	}
}

// VisitResponse is the outcome of a simulated visit. Missing and expired
// codes are normal outcomes, reported with status 200.
type VisitResponse struct {
	Body struct {
		Status      string `doc:"Visit outcome"             enum:"ok,not_found,expired" json:"status"`
		Message     string `doc:"User-visible message"      json:"message"`
		OriginalURL string `doc:"Original URL when resolved" json:"originalUrl,omitempty"`
		Clicks      int64  `doc:"Click count after the visit" json:"clicks"`
	}
}

// RedirectRequest is the request for redirecting a short URL.
type RedirectRequest struct {
	Code string `doc:"The short code" example:"aZ3kf9" path:"code"`
}

// RedirectResponse redirects to the original URL.
type RedirectResponse struct {
	Status  int
	Headers struct {
		Location string `doc:"The original URL" header:"Location"`
	}
}

// LogsResponse is the audit trail snapshot in insertion order.
type LogsResponse struct {
	Body struct {
		Entries []audit.Entry `json:"entries"`
	}
}
