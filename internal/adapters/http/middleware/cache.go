package middleware

import (
	"fmt"
	"time"

	"novacapital-credit/internal/pkg/flash"

	"github.com/gofiber/fiber/v2"
)

// NoStore disables client caching. Authenticated and dashboard pages are
// point-in-time snapshots and must be recomputed on every request.
func NoStore() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("Cache-Control", "no-store")
		return c.Next()
	}
}

// PublicCache sets cache headers for the static informational pages.
// A response rendering a one-shot notice is personal to this visitor and
// must never land in a shared cache, so a pending flash skips the header.
func PublicCache(maxAge time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		hadFlash := c.Cookies(flash.CookieName) != ""

		err := c.Next()

		if !hadFlash && c.Method() == fiber.MethodGet && c.Response().StatusCode() == fiber.StatusOK {
			c.Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(maxAge.Seconds())))
		}

		return err
	}
}
