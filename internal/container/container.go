// Package container wires the application together on a samber/do injector.
// Each *Package function registers lazy providers; dependencies are only
// constructed when something invokes them, so a memory-only configuration
// never dials Redis or Postgres.
package container

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // CBOR format support for huma
	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/serroba/shortlink-demo/internal/analytics"
	analyticsstore "github.com/serroba/shortlink-demo/internal/analytics/store"
	"github.com/serroba/shortlink-demo/internal/audit"
	"github.com/serroba/shortlink-demo/internal/handlers"
	"github.com/serroba/shortlink-demo/internal/health"
	"github.com/serroba/shortlink-demo/internal/messaging"
	"github.com/serroba/shortlink-demo/internal/metrics"
	"github.com/serroba/shortlink-demo/internal/middleware"
	"github.com/serroba/shortlink-demo/internal/ratelimit"
	"github.com/serroba/shortlink-demo/internal/shortener"
	"github.com/serroba/shortlink-demo/internal/store"
	"github.com/serroba/shortlink-demo/web"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LoggerPackage provides the zap logger: console or JSON encoding to stdout,
// with an optional lumberjack-rotated file sink alongside.
func LoggerPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*zap.Logger, error) {
		options := do.MustInvoke[*Options](i)

		encoderConfig := zap.NewProductionEncoderConfig()
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

		var encoder zapcore.Encoder
		if options.LogFormat == "json" {
			encoder = zapcore.NewJSONEncoder(encoderConfig)
		} else {
			encoder = zapcore.NewConsoleEncoder(encoderConfig)
		}

		syncer := zapcore.AddSync(os.Stdout)
		if options.LogFile != "" {
			fileSyncer := zapcore.AddSync(&lumberjack.Logger{
				Filename:   options.LogFile,
				MaxSize:    50, // megabytes
				MaxBackups: 7,
				MaxAge:     14, // days
			})
			syncer = zapcore.NewMultiWriteSyncer(syncer, fileSyncer)
		}

		return zap.New(zapcore.NewCore(encoder, syncer, zap.InfoLevel)), nil
	})
}

// RedisPackage provides the shared Redis client.
func RedisPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*redis.Client, error) {
		options := do.MustInvoke[*Options](i)

		return redis.NewClient(&redis.Options{
			Addr: options.RedisAddr,
		}), nil
	})
}

// PostgresPackage provides the pgx connection pool.
func PostgresPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*pgxpool.Pool, error) {
		options := do.MustInvoke[*Options](i)

		if options.PostgresDSN == "" {
			return nil, fmt.Errorf("postgres-dsn is required when store=postgres")
		}

		return pgxpool.New(context.Background(), options.PostgresDSN)
	})
}

// AuditPackage provides the operation log trail, owned here and threaded
// into the service and handlers.
func AuditPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*audit.Trail, error) {
		return audit.NewTrail(), nil
	})
}

// MetricsPackage provides the Prometheus collectors.
func MetricsPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*metrics.Metrics, error) {
		return metrics.New(), nil
	})
}

// RepositoryPackage provides the URL repository selected by configuration,
// optionally wrapped in the Redis read cache.
func RepositoryPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (shortener.Repository, error) {
		options := do.MustInvoke[*Options](i)

		var repo shortener.Repository

		switch options.Store {
		case "memory":
			repo = store.NewMemoryStore()
		case "redis":
			repo = store.NewRedisStore(do.MustInvoke[*redis.Client](i))
		case "postgres":
			pg := store.NewPostgresStore(do.MustInvoke[*pgxpool.Pool](i))
			if err := pg.EnsureSchema(context.Background()); err != nil {
				return nil, fmt.Errorf("failed to ensure postgres schema: %w", err)
			}

			repo = pg
		default:
			return nil, fmt.Errorf("unknown store backend: %q", options.Store)
		}

		if options.Cache == "redis" {
			ttl := time.Duration(options.CacheTTL) * time.Second
			repo = store.NewRedisCacheRepository(repo, do.MustInvoke[*redis.Client](i), ttl)
		}

		return repo, nil
	})
}

// ServicePackage provides the code generator and the shortener service.
func ServicePackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (shortener.CodeGenerator, error) {
		options := do.MustInvoke[*Options](i)

		return shortener.NewCodeGenerator(options.CodeLength)
	})

	do.Provide(injector, func(i *do.Injector) (*shortener.Service, error) {
		options := do.MustInvoke[*Options](i)

		return shortener.NewService(
			do.MustInvoke[shortener.Repository](i),
			do.MustInvoke[shortener.CodeGenerator](i),
			time.Duration(options.DefaultValidity)*time.Minute,
			do.MustInvoke[*audit.Trail](i),
			do.MustInvoke[*metrics.Metrics](i),
			do.MustInvoke[*zap.Logger](i),
			nil,
		), nil
	})
}

// RateLimitPackage provides the policy limiter over the configured store.
func RateLimitPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (ratelimit.Store, error) {
		options := do.MustInvoke[*Options](i)

		switch options.RateLimitStore {
		case "memory":
			return store.NewRateLimitMemoryStore(), nil
		case "redis":
			return store.NewRateLimitRedisStore(do.MustInvoke[*redis.Client](i)), nil
		default:
			return nil, fmt.Errorf("unknown rate limit store: %q", options.RateLimitStore)
		}
	})

	do.Provide(injector, func(i *do.Injector) (*ratelimit.PolicyLimiter, error) {
		return ratelimit.NewPolicyLimiter(
			do.MustInvoke[ratelimit.Store](i),
			ratelimit.DefaultPolicy(),
		), nil
	})
}

// brokerPackage provides the watermill publisher and subscriber for the
// configured broker. The in-process channel broker uses a single GoChannel
// instance for both sides.
func brokerPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*gochannel.GoChannel, error) {
		logger := do.MustInvoke[*zap.Logger](i)

		return gochannel.NewGoChannel(gochannel.Config{}, messaging.NewWatermillLogger(logger)), nil
	})

	do.Provide(injector, func(i *do.Injector) (message.Subscriber, error) {
		options := do.MustInvoke[*Options](i)

		if options.Broker == "redis" {
			return redisstream.NewSubscriber(redisstream.SubscriberConfig{
				Client:        do.MustInvoke[*redis.Client](i),
				ConsumerGroup: "analytics",
			}, messaging.NewWatermillLogger(do.MustInvoke[*zap.Logger](i)))
		}

		return do.MustInvoke[*gochannel.GoChannel](i), nil
	})
}

// PublisherGroupPackage provides the publisher side of the broker.
func PublisherGroupPackage(injector *do.Injector) {
	brokerPackage(injector)

	do.Provide(injector, func(i *do.Injector) (*messaging.PublisherGroup, error) {
		options := do.MustInvoke[*Options](i)

		if options.Broker == "redis" {
			publisher, err := redisstream.NewPublisher(redisstream.PublisherConfig{
				Client: do.MustInvoke[*redis.Client](i),
			}, messaging.NewWatermillLogger(do.MustInvoke[*zap.Logger](i)))
			if err != nil {
				return nil, err
			}

			return messaging.NewPublisherGroup(publisher), nil
		}

		return messaging.NewPublisherGroup(do.MustInvoke[*gochannel.GoChannel](i)), nil
	})
}

// ConsumerGroupPackage provides the analytics consumers over the broker's
// subscriber side.
func ConsumerGroupPackage(injector *do.Injector) {
	brokerPackage(injector)

	do.Provide(injector, func(i *do.Injector) (analytics.Store, error) {
		options := do.MustInvoke[*Options](i)

		switch options.AnalyticsStore {
		case "log":
			return analyticsstore.NewNoop(do.MustInvoke[*zap.Logger](i)), nil
		case "redis":
			return analyticsstore.NewRedis(do.MustInvoke[*redis.Client](i)), nil
		default:
			return nil, fmt.Errorf("unknown analytics store: %q", options.AnalyticsStore)
		}
	})

	do.Provide(injector, func(i *do.Injector) (*messaging.ConsumerGroup, error) {
		subscriber := do.MustInvoke[message.Subscriber](i)
		logger := do.MustInvoke[*zap.Logger](i)
		analyticsStore := do.MustInvoke[analytics.Store](i)

		group := messaging.NewConsumerGroup(subscriber, logger)
		group.Add(messaging.NewConsumer(subscriber, analytics.TopicURLCreated,
			analytics.CreatedHandler(analyticsStore), logger))
		group.Add(messaging.NewConsumer(subscriber, analytics.TopicURLVisited,
			analytics.VisitedHandler(analyticsStore), logger))

		return group, nil
	})
}

// HTTPPackage provides the chi router and the huma API with all routes,
// middlewares, the metrics endpoint, and the embedded UI.
func HTTPPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*chi.Mux, error) {
		return chi.NewMux(), nil
	})

	do.Provide(injector, func(i *do.Injector) (huma.API, error) {
		options := do.MustInvoke[*Options](i)
		router := do.MustInvoke[*chi.Mux](i)
		logger := do.MustInvoke[*zap.Logger](i)

		router.Handle("/metrics", do.MustInvoke[*metrics.Metrics](i).Handler())
		router.Get("/", serveIndex)

		api := humachi.New(router, huma.DefaultConfig("Shortlink Demo", "1.0.0"))
		api.UseMiddleware(middleware.RequestMeta(api))
		api.UseMiddleware(middleware.PolicyRateLimiter(
			api,
			do.MustInvoke[*ratelimit.PolicyLimiter](i),
			ratelimit.NewOperationScopeResolver(),
			logger,
		))

		publisher := do.MustInvoke[*messaging.PublisherGroup](i).Publisher()

		urlHandler := handlers.NewURLHandler(
			do.MustInvoke[*shortener.Service](i),
			do.MustInvoke[*audit.Trail](i),
			options.ServerBaseURL(),
			messaging.NewPublishFunc[analytics.URLCreatedEvent](publisher, analytics.TopicURLCreated),
			messaging.NewPublishFunc[analytics.URLVisitedEvent](publisher, analytics.TopicURLVisited),
			logger,
		)
		handlers.RegisterRoutes(api, urlHandler)

		healthHandler := health.NewHandler()
		registerHealthCheckers(i, options, healthHandler)
		health.RegisterRoutes(api, healthHandler)

		return api, nil
	})
}

func registerHealthCheckers(i *do.Injector, options *Options, h *health.Handler) {
	repo := do.MustInvoke[shortener.Repository](i)
	h.Add("store", health.CheckerFunc(func(ctx context.Context) error {
		_, err := repo.Contains(ctx, "healthcheck")

		return err
	}))

	if options.Store == "redis" || options.Cache == "redis" ||
		options.Broker == "redis" || options.RateLimitStore == "redis" {
		h.Add("redis", health.NewRedisChecker(do.MustInvoke[*redis.Client](i)))
	}

	if options.Store == "postgres" {
		h.Add("postgres", health.NewPostgresChecker(do.MustInvoke[*pgxpool.Pool](i)))
	}
}

func serveIndex(w http.ResponseWriter, _ *http.Request) {
	page, err := web.FS.ReadFile("index.html")
	if err != nil {
		http.Error(w, "page not available", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}
