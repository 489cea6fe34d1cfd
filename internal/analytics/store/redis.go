package store

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/shortlink-demo/internal/analytics"
)

// Redis persists analytics events as per-code and per-outcome counters.
type Redis struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed analytics store.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) SaveURLCreated(ctx context.Context, event *analytics.URLCreatedEvent) error {
	pipe := r.client.Pipeline()
	pipe.Incr(ctx, "analytics:urls_created")
	pipe.HIncrBy(ctx, "analytics:created_by_code", event.Code, 1)
	_, err := pipe.Exec(ctx)

	return err
}

func (r *Redis) SaveURLVisited(ctx context.Context, event *analytics.URLVisitedEvent) error {
	pipe := r.client.Pipeline()
	pipe.HIncrBy(ctx, "analytics:visits:"+event.Code, event.Outcome, 1)
	pipe.HIncrBy(ctx, "analytics:visit_outcomes", event.Outcome, 1)
	_, err := pipe.Exec(ctx)

	return err
}

// Compile-time check.
var _ analytics.Store = (*Redis)(nil)
