package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/deppfellow/wtwr-backend/internal/errs"
	"github.com/deppfellow/wtwr-backend/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

const (
	rateLimitKeyPrefix    = "wtwr:ratelimit"
	rateLimitRedisTimeout = 500 * time.Millisecond
)

type RateLimitMiddleware struct {
	server *server.Server
}

func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
	}
}

// Limit enforces server.rate_limit requests per server.rate_limit_window
// for each client IP and answers 429 beyond it. The counters live in
// Redis when a client is configured, so every instance shares them;
// otherwise each process keeps its own token buckets.
func (r *RateLimitMiddleware) Limit() echo.MiddlewareFunc {
	cfg := r.server.Config.Server
	if cfg.RateLimit <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	window := cfg.RateLimitWindow
	if window <= 0 {
		window = time.Minute
	}

	var store middleware.RateLimiterStore
	if r.server.Redis != nil {
		store = newRedisRateLimiterStore(r.server, r.server.Redis, cfg.RateLimit, window)
	} else {
		store = middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(float64(cfg.RateLimit) / window.Seconds()),
			Burst:     cfg.RateLimit,
			ExpiresIn: 2 * window,
		})
	}

	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return errs.NewForbiddenError("Unable to identify client", false)
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			r.RecordRateLimitHit(c.Path())

			GetLogger(c).Warn().
				Str("identifier", identifier).
				Int("limit", cfg.RateLimit).
				Dur("window", window).
				Msg("rate limit exceeded")

			return errs.NewTooManyRequestsError("Too many requests, please try again later")
		},
	})
}

// RecordRateLimitHit reports a denied request to New Relic.
func (r *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	r.server.LoggerService.RecordCustomEvent("RateLimitHit", map[string]interface{}{
		"endpoint": endpoint,
	})
}

// redisRateLimiterStore is a fixed-window counter per identifier.
type redisRateLimiterStore struct {
	server *server.Server
	client *redis.Client
	limit  int64
	window time.Duration
	now    func() time.Time
}

func newRedisRateLimiterStore(s *server.Server, client *redis.Client, limit int, window time.Duration) *redisRateLimiterStore {
	return &redisRateLimiterStore{
		server: s,
		client: client,
		limit:  int64(limit),
		window: window,
		now:    time.Now,
	}
}

func (s *redisRateLimiterStore) key(identifier string) string {
	bucket := s.now().UnixNano() / int64(s.window)
	return fmt.Sprintf("%s:%s:%d", rateLimitKeyPrefix, identifier, bucket)
}

// Allow fails open: a Redis outage must not take the API down with it.
func (s *redisRateLimiterStore) Allow(identifier string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), rateLimitRedisTimeout)
	defer cancel()

	key := s.key(identifier)

	pipe := s.client.TxPipeline()
	count := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, s.window)

	if _, err := pipe.Exec(ctx); err != nil {
		s.server.Logger.Warn().Err(err).Str("key", key).Msg("rate limit store unavailable, allowing request")
		return true, nil
	}

	return count.Val() <= s.limit, nil
}
