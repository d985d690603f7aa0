package services

import (
	"context"

	"github.com/Ananth-NQI/storebot-backend/internal/models"
)

// Messenger is the outbound side of the messaging platform
type Messenger interface {
	SendText(ctx context.Context, chatID int64, text string) error
	// SendKeyboard sends text with an inline keyboard, one slice per row
	SendKeyboard(ctx context.Context, chatID int64, text string, rows [][]models.InlineButton) error
	// SendPhoto sends an image by platform file reference with a caption
	SendPhoto(ctx context.Context, chatID int64, caption, imageRef string) error
	// AnswerCallback clears the pending indicator of a callback query
	AnswerCallback(ctx context.Context, queryID string) error
}
