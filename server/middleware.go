package server

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	userIDKey    = "user_id"
	requestIDKey = "request_id"
)

// RequestID attaches a correlation id to every request. Incoming ids
// from trusted proxies are kept, otherwise a new one is generated.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Locals(requestIDKey, id)
		c.Set("X-Request-ID", id)
		return c.Next()
	}
}

// UserAuth resolves the caller from the X-User-ID header. Identity is
// established by the gateway in front of this service; a request
// without the header never reaches the business layer.
func UserAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Get("X-User-ID")
		if raw == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing user identity",
			})
		}
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || userID <= 0 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid user identity",
			})
		}
		c.Locals(userIDKey, userID)
		return c.Next()
	}
}

// UserID returns the authenticated user id for the request
func UserID(c *fiber.Ctx) int64 {
	userID, ok := c.Locals(userIDKey).(int64)
	if !ok {
		return 0
	}
	return userID
}
