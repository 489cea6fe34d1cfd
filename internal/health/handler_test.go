package health_test

import (
	"context"
	"errors"
	"testing"

	"github.com/serroba/shortlink-demo/internal/health"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockChecker struct {
	err error
}

func (m *mockChecker) Ping(_ context.Context) error {
	return m.err
}

func TestHandler_Check(t *testing.T) {
	t.Run("returns ok with no dependencies", func(t *testing.T) {
		handler := health.NewHandler()

		resp, err := handler.Check(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, "ok", resp.Body.Status)
		assert.Empty(t, resp.Body.Components)
	})

	t.Run("returns ok when all dependencies are healthy", func(t *testing.T) {
		handler := health.NewHandler()
		handler.Add("store", &mockChecker{})
		handler.Add("redis", &mockChecker{})

		resp, err := handler.Check(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, "ok", resp.Body.Status)
		assert.Equal(t, "healthy", resp.Body.Components["store"])
		assert.Equal(t, "healthy", resp.Body.Components["redis"])
	})

	t.Run("returns degraded when a dependency fails", func(t *testing.T) {
		handler := health.NewHandler()
		handler.Add("store", &mockChecker{})
		handler.Add("redis", &mockChecker{err: errors.New("connection refused")})

		resp, err := handler.Check(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, "degraded", resp.Body.Status)
		assert.Equal(t, "healthy", resp.Body.Components["store"])
		assert.Equal(t, "unhealthy", resp.Body.Components["redis"])
	})
}

func TestCheckerFunc(t *testing.T) {
	wantErr := errors.New("ping failed")
	checker := health.CheckerFunc(func(_ context.Context) error { return wantErr })

	assert.ErrorIs(t, checker.Ping(context.Background()), wantErr)
}
