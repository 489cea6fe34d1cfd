package store

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/shortlink-demo/internal/shortener"
)

// RedisCacheRepository wraps a Repository with Redis caching for code lookups.
// The TTL applies to cache keys only; the backing rows never expire, so an
// evicted entry is simply refetched.
type RedisCacheRepository struct {
	store  shortener.Repository
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCacheRepository creates a new Redis-cached repository decorator.
func NewRedisCacheRepository(
	store shortener.Repository, client *redis.Client, ttl time.Duration,
) *RedisCacheRepository {
	return &RedisCacheRepository{
		store:  store,
		client: client,
		prefix: "cache:url:",
		ttl:    ttl,
	}
}

// Save stores a record in the underlying store and write-throughs the cache.
func (r *RedisCacheRepository) Save(ctx context.Context, shortURL *shortener.ShortURL) error {
	if err := r.store.Save(ctx, shortURL); err != nil {
		return err
	}

	r.cacheRecord(ctx, shortURL)

	return nil
}

// GetByCode retrieves a record by its code, checking the cache first.
func (r *RedisCacheRepository) GetByCode(ctx context.Context, code shortener.Code) (*shortener.ShortURL, error) {
	if record, err := r.getFromCache(ctx, code); err == nil {
		return record, nil
	}

	record, err := r.store.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	r.cacheRecord(ctx, record)

	return record, nil
}

// List always hits the backing store; ordering lives there.
func (r *RedisCacheRepository) List(ctx context.Context) ([]*shortener.ShortURL, error) {
	return r.store.List(ctx)
}

// IncrementClicks bumps the counter in the store and keeps a cached entry in step.
func (r *RedisCacheRepository) IncrementClicks(ctx context.Context, code shortener.Code) (int64, error) {
	clicks, err := r.store.IncrementClicks(ctx, code)
	if err != nil {
		return 0, err
	}

	key := r.prefix + string(code)
	if exists, err := r.client.Exists(ctx, key).Result(); err == nil && exists > 0 {
		r.client.HSet(ctx, key, "clicks", clicks)
	}

	return clicks, nil
}

// Contains delegates to the backing store; uniqueness checks must not be
// fooled by cache evictions.
func (r *RedisCacheRepository) Contains(ctx context.Context, code shortener.Code) (bool, error) {
	return r.store.Contains(ctx, code)
}

func (r *RedisCacheRepository) getFromCache(ctx context.Context, code shortener.Code) (*shortener.ShortURL, error) {
	result, err := r.client.HGetAll(ctx, r.prefix+string(code)).Result()
	if err != nil {
		return nil, err
	}

	if len(result) == 0 {
		return nil, shortener.ErrNotFound
	}

	return unmarshalRecord(result), nil
}

func (r *RedisCacheRepository) cacheRecord(ctx context.Context, record *shortener.ShortURL) {
	key := r.prefix + string(record.Code)

	pipe := r.client.Pipeline()
	pipe.HSet(ctx, key, map[string]interface{}{
		"code":         string(record.Code),
		"original_url": record.OriginalURL,
		"created_at":   record.CreatedAt.UnixNano(),
		"expires_at":   record.ExpiresAt.UnixNano(),
		"clicks":       record.Clicks,
	})

	if r.ttl > 0 {
		pipe.Expire(ctx, key, r.ttl)
	}

	_, _ = pipe.Exec(ctx)
}

// Compile-time check.
var _ shortener.Repository = (*RedisCacheRepository)(nil)
