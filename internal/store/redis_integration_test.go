//go:build integration

package store_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/serroba/shortlink-demo/internal/shortener"
	"github.com/serroba/shortlink-demo/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getRedisAddr() string {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		return addr
	}
	return "localhost:6379"
}

func newRedisClient(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr: getRedisAddr(),
	})
	t.Cleanup(func() { _ = client.Close() })

	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	return client
}

func TestRedisStoreIntegration(t *testing.T) {
	client := newRedisClient(t)
	ctx := context.Background()
	s := store.NewRedisStore(client)

	t.Run("save and get record", func(t *testing.T) {
		code := shortener.Code(uuid.NewString()[:8])
		record := &shortener.ShortURL{
			Code:        code,
			OriginalURL: "https://example.com",
			CreatedAt:   time.Now().UTC().Truncate(time.Millisecond),
			ExpiresAt:   time.Now().UTC().Add(30 * time.Minute).Truncate(time.Millisecond),
		}

		err := s.Save(ctx, record)
		require.NoError(t, err)

		got, err := s.GetByCode(ctx, code)
		require.NoError(t, err)
		assert.Equal(t, record.OriginalURL, got.OriginalURL)
		assert.True(t, record.CreatedAt.Equal(got.CreatedAt))
		assert.True(t, record.ExpiresAt.Equal(got.ExpiresAt))

		// Cleanup
		client.Del(ctx, "url:"+string(code))
		client.LRem(ctx, "url_index", 0, string(code))
	})

	t.Run("duplicate code is rejected", func(t *testing.T) {
		code := shortener.Code(uuid.NewString()[:8])
		record := &shortener.ShortURL{Code: code, OriginalURL: "https://example.com"}

		require.NoError(t, s.Save(ctx, record))

		err := s.Save(ctx, record)
		assert.ErrorIs(t, err, shortener.ErrCodeExists)

		client.Del(ctx, "url:"+string(code))
		client.LRem(ctx, "url_index", 0, string(code))
	})

	t.Run("increment clicks", func(t *testing.T) {
		code := shortener.Code(uuid.NewString()[:8])
		require.NoError(t, s.Save(ctx, &shortener.ShortURL{Code: code, OriginalURL: "https://example.com"}))

		count, err := s.IncrementClicks(ctx, code)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)

		count, err = s.IncrementClicks(ctx, code)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)

		client.Del(ctx, "url:"+string(code))
		client.LRem(ctx, "url_index", 0, string(code))
	})

	t.Run("unknown code", func(t *testing.T) {
		_, err := s.GetByCode(ctx, "does-not-exist")
		assert.ErrorIs(t, err, shortener.ErrNotFound)

		_, err = s.IncrementClicks(ctx, "does-not-exist")
		assert.ErrorIs(t, err, shortener.ErrNotFound)
	})
}

func TestRateLimitRedisStoreIntegration(t *testing.T) {
	client := newRedisClient(t)
	ctx := context.Background()
	s := store.NewRateLimitRedisStore(client)

	key := uuid.NewString()

	for i := int64(1); i <= 3; i++ {
		count, err := s.Record(ctx, key, time.Minute)

		require.NoError(t, err)
		assert.Equal(t, i, count)
	}

	client.Del(ctx, "ratelimit:"+key)
}
