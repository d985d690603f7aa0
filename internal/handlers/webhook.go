package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Ananth-NQI/storebot-backend/internal/models"
	"github.com/Ananth-NQI/storebot-backend/internal/services"
)

// EventDispatcher processes one classified update
type EventDispatcher interface {
	Dispatch(ctx context.Context, ev models.Event) error
}

// WebhookHandler receives Telegram updates
type WebhookHandler struct {
	dispatcher EventDispatcher
	log        *zap.SugaredLogger
}

func NewWebhookHandler(dispatcher EventDispatcher, log *zap.SugaredLogger) *WebhookHandler {
	return &WebhookHandler{dispatcher: dispatcher, log: log}
}

// HandleWebhook processes an update and always acknowledges a well-formed
// body, so Telegram does not redeliver updates that failed in processing.
func (h *WebhookHandler) HandleWebhook(c *fiber.Ctx) error {
	ev, ok, err := services.ParseUpdate(c.Body())
	if err != nil {
		h.log.Warnf("Error parsing webhook: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid update payload",
		})
	}
	if !ok {
		return c.SendStatus(fiber.StatusOK)
	}

	from := ev.From()
	h.log.Debugf("📱 %s update from %d", ev.Kind(), from.UserID)

	if err := h.dispatcher.Dispatch(c.UserContext(), ev); err != nil {
		h.log.Errorf("❌ Failed to process %s update from %d: %v", ev.Kind(), from.UserID, err)
	}

	return c.SendStatus(fiber.StatusOK)
}
