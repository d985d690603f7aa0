package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pinger reports whether a dependency is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports service and dependency status
type HealthHandler struct {
	version string
	store   Pinger
	checks  map[string]Pinger
}

// NewHealthHandler checks store plus any extra named dependencies
func NewHealthHandler(version string, store Pinger, checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{version: version, store: store, checks: checks}
}

// Root handles GET / with basic service info
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"service":   "Storebot Backend API",
		"version":   h.version,
		"endpoints": fiber.Map{
			"health":   "/health",
			"metrics":  "/metrics",
			"products": "/api/products",
			"image":    "/api/image/:id",
			"webhook":  "/webhook",
		},
	})
}

// Health handles GET /health
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
	defer cancel()

	status := "healthy"
	statusCode := fiber.StatusOK
	services := fiber.Map{}

	deps := map[string]Pinger{"database": h.store}
	for name, p := range h.checks {
		deps[name] = p
	}
	for name, p := range deps {
		ok := p.Ping(ctx) == nil
		services[name] = ok
		if !ok {
			status = "unhealthy"
			statusCode = fiber.StatusServiceUnavailable
		}
	}

	return c.Status(statusCode).JSON(fiber.Map{
		"status":   status,
		"services": services,
	})
}
