package services

import (
	"encoding/json"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Ananth-NQI/storebot-backend/internal/models"
)

// webAppEnvelope picks message.web_app_data out of an update, a field the
// library's Message type does not carry.
type webAppEnvelope struct {
	Message *struct {
		WebAppData *struct {
			Data       string `json:"data"`
			ButtonText string `json:"button_text"`
		} `json:"web_app_data"`
	} `json:"message"`
}

// ParseUpdate decodes a webhook body and classifies it. ok is false for
// updates of a kind the bot does not handle.
func ParseUpdate(body []byte) (ev models.Event, ok bool, err error) {
	var update tgbotapi.Update
	if err := json.Unmarshal(body, &update); err != nil {
		return nil, false, fmt.Errorf("decode update: %w", err)
	}

	var envelope webAppEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, false, fmt.Errorf("decode update: %w", err)
	}

	var appData *string
	if envelope.Message != nil && envelope.Message.WebAppData != nil {
		appData = &envelope.Message.WebAppData.Data
	}

	ev, ok = Classify(update, appData)
	return ev, ok, nil
}

// Classify maps an update to exactly one event kind. appData is the
// web_app_data payload of the update's message, if any.
func Classify(update tgbotapi.Update, appData *string) (models.Event, bool) {
	if cq := update.CallbackQuery; cq != nil {
		if cq.From == nil {
			return nil, false
		}
		chatID := cq.From.ID
		if cq.Message != nil && cq.Message.Chat != nil {
			chatID = cq.Message.Chat.ID
		}
		return models.CallbackEvent{
			Sender:  models.Sender{UserID: cq.From.ID, ChatID: chatID},
			QueryID: cq.ID,
			Data:    cq.Data,
		}, true
	}

	msg := update.Message
	if msg == nil || msg.From == nil || msg.Chat == nil {
		return nil, false
	}
	sender := models.Sender{UserID: msg.From.ID, ChatID: msg.Chat.ID}

	switch {
	case appData != nil:
		return models.AppDataEvent{Sender: sender, Data: *appData}, true

	case msg.IsCommand():
		return models.CommandEvent{Sender: sender, Name: msg.Command(), Args: msg.CommandArguments()}, true

	case len(msg.Photo) > 0:
		variants := make([]models.PhotoVariant, 0, len(msg.Photo))
		for _, p := range msg.Photo {
			variants = append(variants, models.PhotoVariant{
				FileID:   p.FileID,
				Width:    p.Width,
				Height:   p.Height,
				FileSize: p.FileSize,
			})
		}
		return models.PhotoEvent{Sender: sender, Variants: variants}, true

	case msg.Text != "":
		return models.TextEvent{Sender: sender, Text: msg.Text}, true
	}

	return nil, false
}
