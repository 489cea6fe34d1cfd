package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/serroba/shortlink-demo/internal/analytics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockAnalyticsStore struct {
	created    []*analytics.URLCreatedEvent
	visited    []*analytics.URLVisitedEvent
	createdErr error
	visitedErr error
}

func (m *mockAnalyticsStore) SaveURLCreated(_ context.Context, event *analytics.URLCreatedEvent) error {
	if m.createdErr != nil {
		return m.createdErr
	}

	m.created = append(m.created, event)

	return nil
}

func (m *mockAnalyticsStore) SaveURLVisited(_ context.Context, event *analytics.URLVisitedEvent) error {
	if m.visitedErr != nil {
		return m.visitedErr
	}

	m.visited = append(m.visited, event)

	return nil
}

func TestCreatedHandler(t *testing.T) {
	t.Run("persists the event", func(t *testing.T) {
		store := &mockAnalyticsStore{}
		handler := analytics.CreatedHandler(store)

		event := &analytics.URLCreatedEvent{
			Code:            "abc123",
			OriginalURL:     "https://example.com",
			ValidityMinutes: 30,
			CreatedAt:       time.Now(),
		}

		require.NoError(t, handler(context.Background(), event))
		require.Len(t, store.created, 1)
		assert.Equal(t, "abc123", store.created[0].Code)
	})

	t.Run("propagates store errors", func(t *testing.T) {
		store := &mockAnalyticsStore{createdErr: errors.New("store error")}
		handler := analytics.CreatedHandler(store)

		assert.Error(t, handler(context.Background(), &analytics.URLCreatedEvent{}))
	})
}

func TestVisitedHandler(t *testing.T) {
	t.Run("persists the event", func(t *testing.T) {
		store := &mockAnalyticsStore{}
		handler := analytics.VisitedHandler(store)

		event := &analytics.URLVisitedEvent{
			Code:    "abc123",
			Outcome: "ok",
			Clicks:  3,
		}

		require.NoError(t, handler(context.Background(), event))
		require.Len(t, store.visited, 1)
		assert.Equal(t, "ok", store.visited[0].Outcome)
	})

	t.Run("propagates store errors", func(t *testing.T) {
		store := &mockAnalyticsStore{visitedErr: errors.New("store error")}
		handler := analytics.VisitedHandler(store)

		assert.Error(t, handler(context.Background(), &analytics.URLVisitedEvent{}))
	})
}
