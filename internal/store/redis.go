package store

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/serroba/shortlink-demo/internal/shortener"
)

// RedisStore is a Redis implementation of shortener.Repository.
// Each record is a hash at url:{code}; an LPushed list keeps newest-first
// ordering. Keys carry no TTL: expired records must remain visible.
type RedisStore struct {
	client   *redis.Client
	prefix   string
	indexKey string
}

// NewRedisStore creates a new Redis-backed URL store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client:   client,
		prefix:   "url:",
		indexKey: "url_index",
	}
}

func (r *RedisStore) Save(ctx context.Context, shortURL *shortener.ShortURL) error {
	key := r.prefix + string(shortURL.Code)

	// HSetNX on the code field doubles as the uniqueness guard.
	created, err := r.client.HSetNX(ctx, key, "code", string(shortURL.Code)).Result()
	if err != nil {
		return err
	}

	if !created {
		return shortener.ErrCodeExists
	}

	pipe := r.client.Pipeline()
	pipe.HSet(ctx, key, map[string]interface{}{
		"original_url": shortURL.OriginalURL,
		"created_at":   shortURL.CreatedAt.UnixNano(),
		"expires_at":   shortURL.ExpiresAt.UnixNano(),
		"clicks":       shortURL.Clicks,
	})
	pipe.LPush(ctx, r.indexKey, string(shortURL.Code))
	_, err = pipe.Exec(ctx)

	return err
}

func (r *RedisStore) GetByCode(ctx context.Context, code shortener.Code) (*shortener.ShortURL, error) {
	result, err := r.client.HGetAll(ctx, r.prefix+string(code)).Result()
	if err != nil {
		return nil, err
	}

	if len(result) == 0 {
		return nil, shortener.ErrNotFound
	}

	return unmarshalRecord(result), nil
}

func (r *RedisStore) List(ctx context.Context) ([]*shortener.ShortURL, error) {
	codes, err := r.client.LRange(ctx, r.indexKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}

	records := make([]*shortener.ShortURL, 0, len(codes))

	for _, code := range codes {
		record, err := r.GetByCode(ctx, shortener.Code(code))
		if err != nil {
			return nil, err
		}

		records = append(records, record)
	}

	return records, nil
}

func (r *RedisStore) IncrementClicks(ctx context.Context, code shortener.Code) (int64, error) {
	key := r.prefix + string(code)

	exists, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return 0, err
	}

	if exists == 0 {
		return 0, shortener.ErrNotFound
	}

	return r.client.HIncrBy(ctx, key, "clicks", 1).Result()
}

func (r *RedisStore) Contains(ctx context.Context, code shortener.Code) (bool, error) {
	exists, err := r.client.Exists(ctx, r.prefix+string(code)).Result()
	if err != nil {
		return false, err
	}

	return exists > 0, nil
}

func unmarshalRecord(fields map[string]string) *shortener.ShortURL {
	record := &shortener.ShortURL{
		Code:        shortener.Code(fields["code"]),
		OriginalURL: fields["original_url"],
	}

	if nanos, err := strconv.ParseInt(fields["created_at"], 10, 64); err == nil {
		record.CreatedAt = timeFromNanos(nanos)
	}

	if nanos, err := strconv.ParseInt(fields["expires_at"], 10, 64); err == nil {
		record.ExpiresAt = timeFromNanos(nanos)
	}

	if clicks, err := strconv.ParseInt(fields["clicks"], 10, 64); err == nil {
		record.Clicks = clicks
	}

	return record
}

func timeFromNanos(nanos int64) time.Time {
	return time.Unix(0, nanos)
}

// Compile-time check.
var _ shortener.Repository = (*RedisStore)(nil)
