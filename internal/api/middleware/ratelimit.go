package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// WindowCounter counts hits within a fixed window. Backed by Redis in
// production; tests supply a stub.
type WindowCounter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RateLimitConfig controls the fixed-window limiter.
type RateLimitConfig struct {
	Prefix string
	Limit  int
	Window time.Duration
}

// RateLimit rejects callers exceeding Limit requests per Window, keyed by
// client IP. A counter failure lets the request through; losing rate limiting
// is preferable to taking down authentication with it.
func RateLimit(counter WindowCounter, cfg RateLimitConfig, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := fmt.Sprintf("%s:%s", cfg.Prefix, c.RealIP())

			count, err := counter.Incr(c.Request().Context(), key, cfg.Window)
			if err != nil {
				log.Warn().Err(err).Msg("rate limit counter failed, allowing request")
				return next(c)
			}
			if count > int64(cfg.Limit) {
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}
			return next(c)
		}
	}
}
