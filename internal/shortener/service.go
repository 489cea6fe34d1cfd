package shortener

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/serroba/shortlink-demo/internal/audit"
	"go.uber.org/zap"
)

// Visit outcome statuses. Missing and expired codes are normal outcomes of a
// visit, not errors.
const (
	VisitOK       = "ok"
	VisitNotFound = "not_found"
	VisitExpired  = "expired"
)

// User-visible visit messages.
const (
	MsgNotFound = "Short URL not found."
	MsgExpired  = "This short URL has expired."
)

// Rejection reasons, used as metric labels and audit context.
const (
	ReasonEmptyURL        = "empty_url"
	ReasonInvalidURL      = "invalid_url"
	ReasonInvalidValidity = "invalid_validity"
)

// maxSaveAttempts bounds code re-rolls when a concurrent Save wins the race
// for the same code.
const maxSaveAttempts = 5

// VisitResult is the outcome of resolving a short code.
type VisitResult struct {
	Status      string
	Message     string
	OriginalURL string
	Clicks      int64
}

// Recorder counts service-level outcomes. Implemented by the metrics package.
type Recorder interface {
	URLCreated()
	VisitRecorded(outcome string)
	ShortenRejected(reason string)
}

// Clock supplies the current time. Injected so tests can pin expiry behavior.
type Clock func() time.Time

// Service implements the shorten and visit operations over a repository.
// Every call, successful or rejected, appends exactly one audit entry.
type Service struct {
	repo            Repository
	generate        CodeGenerator
	defaultValidity time.Duration
	trail           *audit.Trail
	recorder        Recorder
	logger          *zap.Logger
	now             Clock
}

// NewService creates a new shortener service. A nil clock defaults to time.Now
// and a nil recorder disables metrics.
func NewService(
	repo Repository,
	generate CodeGenerator,
	defaultValidity time.Duration,
	trail *audit.Trail,
	recorder Recorder,
	logger *zap.Logger,
	clock Clock,
) *Service {
	if clock == nil {
		clock = time.Now
	}

	return &Service{
		repo:            repo,
		generate:        generate,
		defaultValidity: defaultValidity,
		trail:           trail,
		recorder:        recorder,
		logger:          logger,
		now:             clock,
	}
}

// Shorten validates the submitted URL and validity text, generates a unique
// code, and persists a new record. Rejected input leaves the store unchanged.
func (s *Service) Shorten(ctx context.Context, rawURL, validityText string) (*ShortURL, error) {
	originalURL, err := ValidateURL(rawURL)
	if err != nil {
		reason := ReasonInvalidURL
		if errors.Is(err, ErrEmptyURL) {
			reason = ReasonEmptyURL
		}

		s.reject(reason, map[string]any{"url": rawURL})

		return nil, err
	}

	validity, err := ParseValidity(validityText, s.defaultValidity)
	if err != nil {
		s.reject(ReasonInvalidValidity, map[string]any{"url": rawURL, "validity": validityText})

		return nil, err
	}

	now := s.now()

	record, err := s.create(ctx, originalURL, now, validity)
	if err != nil {
		s.trail.Append("shorten failed", map[string]any{"url": originalURL, "error": err.Error()})
		s.logger.Error("failed to create short url", zap.String("url", originalURL), zap.Error(err))

		return nil, err
	}

	s.trail.Append("short url created", map[string]any{
		"code":            string(record.Code),
		"url":             record.OriginalURL,
		"validityMinutes": int64(validity / time.Minute),
		"expiresAt":       record.ExpiresAt,
	})

	if s.recorder != nil {
		s.recorder.URLCreated()
	}

	s.logger.Info("short url created",
		zap.String("code", string(record.Code)),
		zap.Time("expiresAt", record.ExpiresAt),
	)

	return record, nil
}

// create draws unique codes and saves, re-rolling when a concurrent save
// claims the same code first.
func (s *Service) create(ctx context.Context, originalURL string, now time.Time, validity time.Duration) (*ShortURL, error) {
	for range maxSaveAttempts {
		code, err := UniqueCode(ctx, s.generate, s.repo)
		if err != nil {
			return nil, err
		}

		record := &ShortURL{
			Code:        code,
			OriginalURL: originalURL,
			CreatedAt:   now,
			ExpiresAt:   now.Add(validity),
		}

		err = s.repo.Save(ctx, record)
		if errors.Is(err, ErrCodeExists) {
			continue
		}

		if err != nil {
			return nil, err
		}

		return record, nil
	}

	return nil, ErrCodeSpaceExhausted
}

// Visit resolves a short code, incrementing the click counter when the record
// exists and is still valid. Expired and missing codes never mutate state.
func (s *Service) Visit(ctx context.Context, code string) (*VisitResult, error) {
	code = strings.TrimSpace(code)

	record, err := s.repo.GetByCode(ctx, Code(code))
	if errors.Is(err, ErrNotFound) {
		s.trail.Append("visit failed: code not found", map[string]any{"code": code})
		s.recordVisit(VisitNotFound)

		return &VisitResult{Status: VisitNotFound, Message: MsgNotFound}, nil
	}

	if err != nil {
		s.trail.Append("visit failed", map[string]any{"code": code, "error": err.Error()})
		s.logger.Error("failed to look up short url", zap.String("code", code), zap.Error(err))

		return nil, err
	}

	if record.IsExpired(s.now()) {
		s.trail.Append("visit failed: code expired", map[string]any{
			"code":      code,
			"expiredAt": record.ExpiresAt,
		})
		s.recordVisit(VisitExpired)

		return &VisitResult{
			Status:      VisitExpired,
			Message:     MsgExpired,
			OriginalURL: record.OriginalURL,
		}, nil
	}

	clicks, err := s.repo.IncrementClicks(ctx, record.Code)
	if err != nil {
		s.trail.Append("visit failed", map[string]any{"code": code, "error": err.Error()})
		s.logger.Error("failed to increment clicks", zap.String("code", code), zap.Error(err))

		return nil, err
	}

	s.trail.Append("visit succeeded", map[string]any{
		"code":   code,
		"url":    record.OriginalURL,
		"clicks": clicks,
	})
	s.recordVisit(VisitOK)

	return &VisitResult{
		Status:      VisitOK,
		Message:     "Redirecting to " + record.OriginalURL,
		OriginalURL: record.OriginalURL,
		Clicks:      clicks,
	}, nil
}

// List returns all records, newest first.
func (s *Service) List(ctx context.Context) ([]*ShortURL, error) {
	return s.repo.List(ctx)
}

// Now returns the service's current time. Handlers use it to compute
// expiry flags consistently with visit decisions.
func (s *Service) Now() time.Time {
	return s.now()
}

func (s *Service) reject(reason string, kv map[string]any) {
	kv["reason"] = reason
	s.trail.Append("shorten rejected", kv)

	if s.recorder != nil {
		s.recorder.ShortenRejected(reason)
	}
}

func (s *Service) recordVisit(outcome string) {
	if s.recorder != nil {
		s.recorder.VisitRecorded(outcome)
	}
}
