package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const (
	OwnerHeader   = "X-Owner-ID"
	OwnerLocalKey = "owner_id"
)

// Owner copies the opaque X-Owner-ID header into locals. Identity is
// established upstream; this layer only carries it.
func Owner() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if owner := strings.TrimSpace(c.Get(OwnerHeader)); owner != "" {
			c.Locals(OwnerLocalKey, owner)
		}
		return c.Next()
	}
}

// OwnerFromCtx returns the owner stored by Owner, or "".
func OwnerFromCtx(c *fiber.Ctx) string {
	s, _ := c.Locals(OwnerLocalKey).(string)
	return s
}
