// Package flash carries one-shot notices between a redirect and the next
// rendered response, using a short-lived cookie.
package flash

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
)

// CookieName is the name of the flash cookie
const CookieName = "flash"

// Notice levels
const (
	LevelSuccess = "success"
	LevelError   = "error"
	LevelInfo    = "info"
)

// Notice is a single-display user-facing message
type Notice struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Set attaches a notice to the response. It survives exactly one redirect.
func Set(c *fiber.Ctx, level, message string) {
	payload, err := json.Marshal(Notice{Level: level, Message: message})
	if err != nil {
		return
	}

	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    base64.URLEncoding.EncodeToString(payload),
		Path:     "/",
		MaxAge:   300,
		HTTPOnly: true,
		SameSite: "Lax",
	})
}

// Success sets a success-level notice
func Success(c *fiber.Ctx, message string) {
	Set(c, LevelSuccess, message)
}

// Error sets an error-level notice
func Error(c *fiber.Ctx, message string) {
	Set(c, LevelError, message)
}

// Pop reads and clears the pending notice, if any
func Pop(c *fiber.Ctx) *Notice {
	raw := c.Cookies(CookieName)
	if raw == "" {
		return nil
	}

	// Clear regardless of decode outcome: the notice displays once
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	payload, err := base64.URLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}

	var notice Notice
	if err := json.Unmarshal(payload, &notice); err != nil {
		return nil
	}
	return &notice
}
