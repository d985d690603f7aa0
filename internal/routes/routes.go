package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Ananth-NQI/storebot-backend/internal/handlers"
	"github.com/Ananth-NQI/storebot-backend/internal/middleware"
)

// Handlers groups everything SetupRoutes mounts
type Handlers struct {
	Webhook       *handlers.WebhookHandler
	Products      *handlers.ProductHandler
	Health        *handlers.HealthHandler
	WebhookSecret string // empty disables the secret check
}

// SetupRoutes configures all routes
func SetupRoutes(app *fiber.App, h Handlers) {
	app.Get("/", h.Health.Root)
	app.Get("/health", h.Health.Health)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// API routes for the embedded web app
	api := app.Group("/api")
	api.Get("/products", h.Products.ListProducts)
	api.Get("/image/:id", h.Products.Image)

	// Telegram webhook
	if h.WebhookSecret != "" {
		app.Post("/webhook", middleware.ValidateTelegramSecret(h.WebhookSecret), h.Webhook.HandleWebhook)
	} else {
		app.Post("/webhook", h.Webhook.HandleWebhook)
	}
}
