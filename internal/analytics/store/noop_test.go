package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/serroba/shortlink-demo/internal/analytics"
	"github.com/serroba/shortlink-demo/internal/analytics/store"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestNoop(t *testing.T) {
	noop := store.NewNoop(zap.NewNop())
	ctx := context.Background()

	assert.NoError(t, noop.SaveURLCreated(ctx, &analytics.URLCreatedEvent{
		Code:        "abc123",
		OriginalURL: "https://example.com",
		CreatedAt:   time.Now(),
	}))

	assert.NoError(t, noop.SaveURLVisited(ctx, &analytics.URLVisitedEvent{
		Code:    "abc123",
		Outcome: "ok",
	}))
}
