package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/samber/lo"
	"github.com/serroba/shortlink-demo/internal/analytics"
	"github.com/serroba/shortlink-demo/internal/audit"
	"github.com/serroba/shortlink-demo/internal/messaging"
	"github.com/serroba/shortlink-demo/internal/shortener"
	"go.uber.org/zap"
)

// URLHandler handles URL shortening, listing, visit simulation, and redirects.
type URLHandler struct {
	service        *shortener.Service
	trail          *audit.Trail
	baseURL        string
	publishCreated messaging.Publish[analytics.URLCreatedEvent]
	publishVisited messaging.Publish[analytics.URLVisitedEvent]
	logger         *zap.Logger
}

// NewURLHandler creates a new URL handler.
func NewURLHandler(
	service *shortener.Service,
	trail *audit.Trail,
	baseURL string,
	publishCreated messaging.Publish[analytics.URLCreatedEvent],
	publishVisited messaging.Publish[analytics.URLVisitedEvent],
	logger *zap.Logger,
) *URLHandler {
	return &URLHandler{
		service:        service,
		trail:          trail,
		baseURL:        baseURL,
		publishCreated: publishCreated,
		publishVisited: publishVisited,
		logger:         logger,
	}
}

// Shorten validates the submitted URL and validity and creates a new record.
// Rejected input returns 400 and leaves the record collection untouched.
func (h *URLHandler) Shorten(ctx context.Context, req *ShortenRequest) (*ShortenResponse, error) {
	record, err := h.service.Shorten(ctx, req.Body.URL, req.Body.Validity)
	if err != nil {
		switch {
		case errors.Is(err, shortener.ErrEmptyURL),
			errors.Is(err, shortener.ErrInvalidURL),
			errors.Is(err, shortener.ErrInvalidValidity):
			return nil, huma.Error400BadRequest(err.Error())
		default:
			return nil, huma.Error500InternalServerError("failed to create short url")
		}
	}

	meta := RequestMetaFromContext(ctx)
	event := &analytics.URLCreatedEvent{
		Code:            string(record.Code),
		OriginalURL:     record.OriginalURL,
		ValidityMinutes: int64(record.ExpiresAt.Sub(record.CreatedAt) / time.Minute),
		CreatedAt:       record.CreatedAt,
		ExpiresAt:       record.ExpiresAt,
		ClientIP:        meta.ClientIP,
		UserAgent:       meta.UserAgent,
	}

	if err := h.publishCreated(event); err != nil {
		h.logger.Error("failed to publish url created event",
			zap.String("code", event.Code),
			zap.Error(err),
		)
	}

	shortURL := h.shortURLFor(record.Code)

	resp := &ShortenResponse{}
	resp.Headers.Location = shortURL
	resp.Body.Code = string(record.Code)
	resp.Body.ShortURL = shortURL
	resp.Body.OriginalURL = record.OriginalURL
	resp.Body.CreatedAt = record.CreatedAt
	resp.Body.ExpiresAt = record.ExpiresAt
	resp.Body.Clicks = record.Clicks

	return resp, nil
}

// ListURLs returns the records table, newest first. Expired records stay
// listed with an expired flag.
func (h *URLHandler) ListURLs(ctx context.Context, _ *struct{}) (*ListURLsResponse, error) {
	records, err := h.service.List(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to list urls")
	}

	now := h.service.Now()

	resp := &ListURLsResponse{}
	resp.Body.URLs = lo.Map(records, func(record *shortener.ShortURL, _ int) URLRow {
		return URLRow{
			Code:             string(record.Code),
			ShortURL:         h.shortURLFor(record.Code),
			OriginalURL:      record.OriginalURL,
			CreatedAt:        record.CreatedAt,
			ExpiresAt:        record.ExpiresAt,
			Clicks:           record.Clicks,
			Expired:          record.IsExpired(now),
			RemainingSeconds: int64(record.Remaining(now) / time.Second),
		}
	})

	return resp, nil
}

// Visit simulates a visit to a short code. All outcomes return 200; missing
// and expired codes are statuses in the body, not errors.
func (h *URLHandler) Visit(ctx context.Context, req *VisitRequest) (*VisitResponse, error) {
	result, err := h.service.Visit(ctx, req.Body.Code)
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to resolve short url")
	}

	h.publishVisit(ctx, req.Body.Code, result)

	resp := &VisitResponse{}
	resp.Body.Status = result.Status
	resp.Body.Message = result.Message
	resp.Body.OriginalURL = result.OriginalURL
	resp.Body.Clicks = result.Clicks

	return resp, nil
}

// Redirect resolves a short code into a real HTTP redirect.
// Missing codes return 404, expired codes 410.
func (h *URLHandler) Redirect(ctx context.Context, req *RedirectRequest) (*RedirectResponse, error) {
	result, err := h.service.Visit(ctx, req.Code)
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to resolve short url")
	}

	h.publishVisit(ctx, req.Code, result)

	switch result.Status {
	case shortener.VisitNotFound:
		return nil, huma.Error404NotFound(result.Message)
	case shortener.VisitExpired:
		return nil, huma.Error410Gone(result.Message)
	}

	resp := &RedirectResponse{
		Status: http.StatusMovedPermanently,
	}
	resp.Headers.Location = result.OriginalURL

	return resp, nil
}

// Logs returns a snapshot of the audit trail in insertion order.
func (h *URLHandler) Logs(_ context.Context, _ *struct{}) (*LogsResponse, error) {
	resp := &LogsResponse{}
	resp.Body.Entries = h.trail.Snapshot()

	return resp, nil
}

func (h *URLHandler) shortURLFor(code shortener.Code) string {
	return h.baseURL + "/r/" + string(code)
}

func (h *URLHandler) publishVisit(ctx context.Context, code string, result *shortener.VisitResult) {
	meta := RequestMetaFromContext(ctx)
	event := &analytics.URLVisitedEvent{
		Code:        code,
		Outcome:     result.Status,
		OriginalURL: result.OriginalURL,
		Clicks:      result.Clicks,
		VisitedAt:   time.Now(),
		ClientIP:    meta.ClientIP,
		UserAgent:   meta.UserAgent,
		Referrer:    meta.Referrer,
	}

	if err := h.publishVisited(event); err != nil {
		h.logger.Error("failed to publish url visited event",
			zap.String("code", code),
			zap.Error(err),
		)
	}
}
