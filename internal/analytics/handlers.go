package analytics

import (
	"context"

	"github.com/serroba/shortlink-demo/internal/messaging"
)

// CreatedHandler returns a messaging handler that persists created events.
func CreatedHandler(store Store) messaging.Handler[URLCreatedEvent] {
	return func(ctx context.Context, event *URLCreatedEvent) error {
		return store.SaveURLCreated(ctx, event)
	}
}

// VisitedHandler returns a messaging handler that persists visited events.
func VisitedHandler(store Store) messaging.Handler[URLVisitedEvent] {
	return func(ctx context.Context, event *URLVisitedEvent) error {
		return store.SaveURLVisited(ctx, event)
	}
}
