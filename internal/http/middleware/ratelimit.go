package middleware

import (
	"math"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"listingapi/internal/ratelimit"
)

// RateLimit rejects requests once the client's bucket is empty. Buckets are
// keyed by client IP; the owner header is unauthenticated and never a key.
// The error is rendered by the app's error handler; Retry-After is set here.
func RateLimit(l *ratelimit.Limiter, skip ...string) fiber.Handler {
	skipped := make(map[string]struct{}, len(skip))
	for _, p := range skip {
		skipped[p] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		if _, ok := skipped[c.Path()]; ok {
			return c.Next()
		}
		ok, wait := l.Allow(c.IP(), time.Now())
		if !ok {
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			return fiber.ErrTooManyRequests
		}
		return c.Next()
	}
}
