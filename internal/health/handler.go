package health

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Checker defines the interface for checking a dependency's health.
type Checker interface {
	Ping(ctx context.Context) error
}

// CheckerFunc adapts a function to the Checker interface.
type CheckerFunc func(ctx context.Context) error

func (f CheckerFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

// RedisChecker adapts redis.Client to the Checker interface.
type RedisChecker struct {
	client *redis.Client
}

// NewRedisChecker creates a new Redis health checker.
func NewRedisChecker(client *redis.Client) *RedisChecker {
	return &RedisChecker{client: client}
}

// Ping checks Redis connectivity.
func (r *RedisChecker) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// PostgresChecker adapts pgxpool.Pool to the Checker interface.
type PostgresChecker struct {
	pool *pgxpool.Pool
}

// NewPostgresChecker creates a new Postgres health checker.
func NewPostgresChecker(pool *pgxpool.Pool) *PostgresChecker {
	return &PostgresChecker{pool: pool}
}

// Ping checks Postgres connectivity.
func (p *PostgresChecker) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

type component struct {
	name    string
	checker Checker
}

// Handler handles health check operations over a set of named dependencies.
type Handler struct {
	components []component
}

// NewHandler creates a new health handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Add registers a named dependency to check.
func (h *Handler) Add(name string, checker Checker) {
	h.components = append(h.components, component{name: name, checker: checker})
}

// Response is the response for the health check endpoint.
type Response struct {
	Body struct {
		Status     string            `json:"status"`
		Components map[string]string `json:"components,omitempty"`
	}
}

// Check pings every registered dependency and reports degraded when any fails.
func (h *Handler) Check(ctx context.Context, _ *struct{}) (*Response, error) {
	resp := &Response{}
	resp.Body.Status = "ok"

	if len(h.components) > 0 {
		resp.Body.Components = make(map[string]string, len(h.components))
	}

	for _, c := range h.components {
		if err := c.checker.Ping(ctx); err != nil {
			resp.Body.Components[c.name] = "unhealthy"
			resp.Body.Status = "degraded"
		} else {
			resp.Body.Components[c.name] = "healthy"
		}
	}

	return resp, nil
}

// RegisterRoutes registers health check routes.
func RegisterRoutes(api huma.API, h *Handler) {
	huma.Get(api, "/health", h.Check)
}
