package handlers

import (
	"novacapital-credit/internal/config"
	"novacapital-credit/internal/pkg/flash"
	"novacapital-credit/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PublicHandler handles the public informational pages and health checks
type PublicHandler struct{}

// NewPublicHandler creates a new public handler
func NewPublicHandler() *PublicHandler {
	return &PublicHandler{}
}

// Index handles the landing page
func (h *PublicHandler) Index(c *fiber.Ctx) error {
	return response.Success(c, "", fiber.Map{
		"page":  "index",
		"flash": flash.Pop(c),
	})
}

// Contact handles the contact page
func (h *PublicHandler) Contact(c *fiber.Ctx) error {
	return response.Success(c, "", fiber.Map{
		"page": "contact",
	})
}

// Requirements handles the loan requirements page
func (h *PublicHandler) Requirements(c *fiber.Ctx) error {
	return response.Success(c, "", fiber.Map{
		"page": "requirements",
	})
}

// HealthCheck handles health check
func (h *PublicHandler) HealthCheck(c *fiber.Ctx) error {
	dbStatus := "healthy"
	if err := config.HealthCheck(); err != nil {
		dbStatus = "unhealthy"
	}

	return c.JSON(fiber.Map{
		"status": "ok",
		"checks": fiber.Map{
			"api":      "healthy",
			"database": dbStatus,
		},
	})
}
