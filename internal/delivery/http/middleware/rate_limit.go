package middleware

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) bool
}

// RateLimit keys on the authenticated user and falls back to the client IP.
// A nil limiter or a non-positive limit disables it.
func RateLimit(limiter Limiter, scope string, limit int, window time.Duration) fiber.Handler {
	return func(c fiber.Ctx) error {
		if limiter == nil || limit <= 0 {
			return c.Next()
		}
		key := c.IP()
		if id := UserID(c); id != uuid.Nil {
			key = id.String()
		}
		if !limiter.Allow(c.Context(), scope+":"+key, limit, window) {
			c.Set("Retry-After", strconv.Itoa(int(window.Seconds())))
			return NewAppError(fiber.StatusTooManyRequests, "Too many requests", nil)
		}
		return c.Next()
	}
}
