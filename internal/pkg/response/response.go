// Package response renders the view-model envelope for page GETs and the
// JSON endpoints. Handlers decide status and message; whatever presents
// the data (templates, SPA, mobile) reads the same shape.
package response

import "github.com/gofiber/fiber/v2"

// Response is the envelope every endpoint returns
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Success sends a 200 with the page's view data
func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func fail(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Success: false,
		Error:   message,
	})
}

// BadRequest rejects invalid form input
func BadRequest(c *fiber.Ctx, message string) error {
	return fail(c, fiber.StatusBadRequest, message)
}

// Unauthorized rejects bad or missing credentials. Callers pass one
// generic message for every credential failure.
func Unauthorized(c *fiber.Ctx, message string) error {
	return fail(c, fiber.StatusUnauthorized, message)
}

// NotFound reports a missing page or resource
func NotFound(c *fiber.Ctx, message string) error {
	return fail(c, fiber.StatusNotFound, message)
}

// Conflict reports a uniqueness collision (email, document number)
func Conflict(c *fiber.Ctx, message string) error {
	return fail(c, fiber.StatusConflict, message)
}

// InternalServerError reports an unexpected failure without detail
func InternalServerError(c *fiber.Ctx, message string) error {
	return fail(c, fiber.StatusInternalServerError, message)
}
