package metrics_test

import (
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/serroba/shortlink-demo/internal/metrics"
	"github.com/serroba/shortlink-demo/internal/shortener"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	t.Run("counts created urls", func(t *testing.T) {
		m := metrics.New()

		m.URLCreated()
		m.URLCreated()

		count, err := testutil.GatherAndCount(m.Registry(), "shortlink_urls_created_total")
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("counts visits by outcome", func(t *testing.T) {
		m := metrics.New()

		m.VisitRecorded(shortener.VisitOK)
		m.VisitRecorded(shortener.VisitOK)
		m.VisitRecorded(shortener.VisitExpired)

		count, err := testutil.GatherAndCount(m.Registry(), "shortlink_visits_total")
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("counts rejections by reason", func(t *testing.T) {
		m := metrics.New()

		m.ShortenRejected(shortener.ReasonEmptyURL)
		m.ShortenRejected(shortener.ReasonInvalidValidity)

		count, err := testutil.GatherAndCount(m.Registry(), "shortlink_shorten_rejected_total")
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("serves the exposition endpoint", func(t *testing.T) {
		m := metrics.New()
		m.URLCreated()

		recorder := httptest.NewRecorder()
		m.Handler().ServeHTTP(recorder, httptest.NewRequest("GET", "/metrics", nil))

		assert.Equal(t, 200, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "shortlink_urls_created_total 1")
	})
}
