package ratelimit_test

import (
	"context"
	"crypto/tls"
	"io"
	"mime/multipart"
	"net/url"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/serroba/shortlink-demo/internal/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockHumaContext implements huma.Context for testing scope resolution.
type mockHumaContext struct {
	method    string
	operation *huma.Operation
}

func (m *mockHumaContext) Operation() *huma.Operation {
	return m.operation
}
func (m *mockHumaContext) Context() context.Context          { return context.Background() }
func (m *mockHumaContext) TLS() *tls.ConnectionState         { return nil }
func (m *mockHumaContext) Version() huma.ProtoVersion        { return huma.ProtoVersion{} }
func (m *mockHumaContext) Method() string                    { return m.method }
func (m *mockHumaContext) Host() string                      { return "" }
func (m *mockHumaContext) RemoteAddr() string                { return "" }
func (m *mockHumaContext) URL() url.URL                      { return url.URL{} }
func (m *mockHumaContext) Param(_ string) string             { return "" }
func (m *mockHumaContext) Query(_ string) string             { return "" }
func (m *mockHumaContext) Header(_ string) string            { return "" }
func (m *mockHumaContext) EachHeader(_ func(string, string)) {}
func (m *mockHumaContext) BodyReader() io.Reader             { return nil }
func (m *mockHumaContext) GetMultipartForm() (*multipart.Form, error) {
	return nil, nil
}
func (m *mockHumaContext) SetReadDeadline(_ time.Time) error { return nil }
func (m *mockHumaContext) SetStatus(_ int)                   {}
func (m *mockHumaContext) Status() int                       { return 0 }
func (m *mockHumaContext) AppendHeader(_, _ string)          {}
func (m *mockHumaContext) SetHeader(_, _ string)             {}
func (m *mockHumaContext) BodyWriter() io.Writer             { return nil }

func TestMethodScopeResolver_Resolve(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		expectedScopes []ratelimit.Scope
	}{
		{
			name:           "GET is classified as read",
			method:         "GET",
			expectedScopes: []ratelimit.Scope{ratelimit.ScopeGlobal, ratelimit.ScopeRead},
		},
		{
			name:           "HEAD is classified as read",
			method:         "HEAD",
			expectedScopes: []ratelimit.Scope{ratelimit.ScopeGlobal, ratelimit.ScopeRead},
		},
		{
			name:           "POST is classified as write",
			method:         "POST",
			expectedScopes: []ratelimit.Scope{ratelimit.ScopeGlobal, ratelimit.ScopeWrite},
		},
		{
			name:           "DELETE is classified as write",
			method:         "DELETE",
			expectedScopes: []ratelimit.Scope{ratelimit.ScopeGlobal, ratelimit.ScopeWrite},
		},
	}

	resolver := ratelimit.NewMethodScopeResolver()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := &mockHumaContext{method: tt.method}

			assert.Equal(t, tt.expectedScopes, resolver.Resolve(ctx))
		})
	}
}

func TestOperationScopeResolver_Resolve(t *testing.T) {
	resolver := ratelimit.NewOperationScopeResolver()

	t.Run("falls back to method detection without metadata", func(t *testing.T) {
		ctx := &mockHumaContext{method: "POST", operation: &huma.Operation{}}

		assert.Equal(t, []ratelimit.Scope{ratelimit.ScopeGlobal, ratelimit.ScopeWrite}, resolver.Resolve(ctx))
	})

	t.Run("metadata scope overrides method detection", func(t *testing.T) {
		ctx := &mockHumaContext{
			method: "POST",
			operation: &huma.Operation{
				Metadata: map[string]any{
					ratelimit.MetadataKey: ratelimit.EndpointConfig{Scope: ratelimit.ScopeRead},
				},
			},
		}

		assert.Equal(t, []ratelimit.Scope{ratelimit.ScopeGlobal, ratelimit.ScopeRead}, resolver.Resolve(ctx))
	})

	t.Run("empty metadata scope falls back to method detection", func(t *testing.T) {
		ctx := &mockHumaContext{
			method: "GET",
			operation: &huma.Operation{
				Metadata: map[string]any{
					ratelimit.MetadataKey: ratelimit.EndpointConfig{
						Limits: []ratelimit.LimitConfig{{Window: time.Minute, Max: 10}},
					},
				},
			},
		}

		assert.Equal(t, []ratelimit.Scope{ratelimit.ScopeGlobal, ratelimit.ScopeRead}, resolver.Resolve(ctx))
	})
}

func TestGetEndpointConfig(t *testing.T) {
	t.Run("nil operation returns nil", func(t *testing.T) {
		assert.Nil(t, ratelimit.GetEndpointConfig(&mockHumaContext{}))
	})

	t.Run("operation without metadata returns nil", func(t *testing.T) {
		ctx := &mockHumaContext{operation: &huma.Operation{}}

		assert.Nil(t, ratelimit.GetEndpointConfig(ctx))
	})

	t.Run("wrong metadata type returns nil", func(t *testing.T) {
		ctx := &mockHumaContext{operation: &huma.Operation{
			Metadata: map[string]any{ratelimit.MetadataKey: "wrong type"},
		}}

		assert.Nil(t, ratelimit.GetEndpointConfig(ctx))
	})

	t.Run("valid config is returned", func(t *testing.T) {
		ctx := &mockHumaContext{operation: &huma.Operation{
			Metadata: map[string]any{
				ratelimit.MetadataKey: ratelimit.EndpointConfig{Scope: ratelimit.ScopeRead, Disabled: true},
			},
		}}

		cfg := ratelimit.GetEndpointConfig(ctx)
		require.NotNil(t, cfg)
		assert.Equal(t, ratelimit.ScopeRead, cfg.Scope)
		assert.True(t, cfg.Disabled)
	})
}
