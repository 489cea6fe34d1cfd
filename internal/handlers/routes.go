package handlers

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortlink-demo/internal/ratelimit"
)

// RegisterRoutes registers all URL shortener routes with per-endpoint rate limit configuration.
func RegisterRoutes(api huma.API, urlHandler *URLHandler) {
	// POST /api/shorten - stricter limits for the write path
	huma.Register(api, huma.Operation{
		Method:        http.MethodPost,
		Path:          "/api/shorten",
		Summary:       "Create short URL",
		Description:   "Creates a shortened URL with an optional validity window in minutes (default 30).",
		Tags:          []string{"URLs"},
		DefaultStatus: http.StatusCreated,
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Limits: []ratelimit.LimitConfig{
					{Window: time.Minute, Max: 10},
					{Window: time.Hour, Max: 100},
					{Window: 24 * time.Hour, Max: 500},
				},
			},
		},
	}, urlHandler.Shorten)

	// GET /api/urls - records table for the UI
	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        "/api/urls",
		Summary:     "List short URLs",
		Description: "Lists all records newest first, including expired ones.",
		Tags:        []string{"URLs"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Scope: ratelimit.ScopeRead,
			},
		},
	}, urlHandler.ListURLs)

	// POST /api/visit - visit simulation; every outcome is a 200
	huma.Register(api, huma.Operation{
		Method:      http.MethodPost,
		Path:        "/api/visit",
		Summary:     "Simulate a visit",
		Description: "Resolves a short code, counting the click when it is valid. Missing and expired codes are reported in the body.",
		Tags:        []string{"URLs"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Limits: []ratelimit.LimitConfig{
					{Window: time.Minute, Max: 120},
				},
			},
		},
	}, urlHandler.Visit)

	// GET /r/{code} - real redirect; relaxed limits for the hot read path
	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        "/r/{code}",
		Summary:     "Redirect to original URL",
		Description: "Redirects to the original URL associated with the short code.",
		Tags:        []string{"URLs"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Limits: []ratelimit.LimitConfig{
					{Window: time.Minute, Max: 1000},
				},
			},
		},
	}, urlHandler.Redirect)

	// GET /api/logs - audit trail snapshot
	huma.Register(api, huma.Operation{
		Method:      http.MethodGet,
		Path:        "/api/logs",
		Summary:     "Operation log",
		Description: "Returns the append-only operation log in insertion order.",
		Tags:        []string{"Logs"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Scope: ratelimit.ScopeRead,
			},
		},
	}, urlHandler.Logs)
}
