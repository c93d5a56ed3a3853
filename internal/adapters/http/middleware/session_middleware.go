package middleware

import (
	"time"

	"novacapital-credit/internal/adapters/persistence/models"
	"novacapital-credit/internal/config"
	"novacapital-credit/internal/pkg/flash"
	"novacapital-credit/internal/pkg/session"

	"github.com/gofiber/fiber/v2"
)

// NextURLCookie records the originally-requested URL while the visitor is
// sent through the login page
const NextURLCookie = "next_url"

// LoginRequired gates a route on an authenticated session. Without one the
// requested URL is saved, a notice is flashed and the visitor is redirected
// to the login page.
func LoginRequired(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := session.Validate(c.Cookies(session.CookieName), cfg.Session.Secret)
		if err != nil {
			SaveNextURL(c, c.OriginalURL())
			flash.Error(c, "You must sign in to access this page")
			return c.Redirect("/login", fiber.StatusFound)
		}

		c.Locals("accountID", claims.AccountID)
		c.Locals("accountName", claims.Name)
		c.Locals("accountEmail", claims.Email)
		c.Locals("role", claims.Role)

		return c.Next()
	}
}

// StaffOnly allows only admin and advisor roles. Anyone else is redirected
// to the landing page before the handler runs, so no privileged data is
// produced for the response.
func StaffOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok || (role != models.RoleAdmin && role != models.RoleAdvisor) {
			flash.Error(c, "You do not have permission to access this page")
			return c.Redirect("/", fiber.StatusFound)
		}
		return c.Next()
	}
}

// OptionalSession sets account locals when a valid session cookie is
// present, without requiring one
func OptionalSession(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token := c.Cookies(session.CookieName); token != "" {
			if claims, err := session.Validate(token, cfg.Session.Secret); err == nil {
				c.Locals("accountID", claims.AccountID)
				c.Locals("accountName", claims.Name)
				c.Locals("accountEmail", claims.Email)
				c.Locals("role", claims.Role)
			}
		}
		return c.Next()
	}
}

// SaveNextURL stores the URL to return to after login
func SaveNextURL(c *fiber.Ctx, url string) {
	c.Cookie(&fiber.Cookie{
		Name:     NextURLCookie,
		Value:    url,
		Path:     "/",
		MaxAge:   600,
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

// PopNextURL reads and clears the saved next URL, if any
func PopNextURL(c *fiber.Ctx) string {
	url := c.Cookies(NextURLCookie)
	if url == "" {
		return ""
	}

	c.Cookie(&fiber.Cookie{
		Name:     NextURLCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return url
}
