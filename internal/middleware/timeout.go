package middleware

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// QueryDeadline bounds the user context handed to services, so database calls made through
// c.UserContext() are cancelled after d. A zero duration disables it.
func QueryDeadline(d time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if d <= 0 {
			return c.Next()
		}
		ctx, cancel := context.WithTimeout(c.UserContext(), d)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}
