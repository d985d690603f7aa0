package services

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Ananth-NQI/storebot-backend/internal/models"
)

// TelegramService sends messages through the Telegram Bot API
type TelegramService struct {
	bot *tgbotapi.BotAPI
}

// NewTelegramService authenticates with the Bot API (getMe)
func NewTelegramService(token string) (*TelegramService, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to telegram: %w", err)
	}
	return &TelegramService{bot: bot}, nil
}

// Username returns the bot's @username
func (t *TelegramService) Username() string {
	return t.bot.Self.UserName
}

func (t *TelegramService) SendText(ctx context.Context, chatID int64, text string) error {
	if _, err := t.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		return fmt.Errorf("send text to %d: %w", chatID, err)
	}
	return nil
}

func (t *TelegramService) SendKeyboard(ctx context.Context, chatID int64, text string, rows [][]models.InlineButton) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = newInlineKeyboard(rows)
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("send keyboard to %d: %w", chatID, err)
	}
	return nil
}

func (t *TelegramService) SendPhoto(ctx context.Context, chatID int64, caption, imageRef string) error {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileID(imageRef))
	photo.Caption = caption
	if _, err := t.bot.Send(photo); err != nil {
		return fmt.Errorf("send photo to %d: %w", chatID, err)
	}
	return nil
}

func (t *TelegramService) AnswerCallback(ctx context.Context, queryID string) error {
	if _, err := t.bot.Request(tgbotapi.NewCallback(queryID, "")); err != nil {
		return fmt.Errorf("answer callback %s: %w", queryID, err)
	}
	return nil
}

// FileURL resolves a file id to a temporary download URL
func (t *TelegramService) FileURL(fileID string) (string, error) {
	return t.bot.GetFileDirectURL(fileID)
}

// SetWebhook points Telegram at url. secret, when set, is echoed back by
// Telegram in the X-Telegram-Bot-Api-Secret-Token header.
func (t *TelegramService) SetWebhook(url, secret string) error {
	params := tgbotapi.Params{"url": url}
	params.AddNonEmpty("secret_token", secret)

	resp, err := t.bot.MakeRequest("setWebhook", params)
	if err != nil {
		return fmt.Errorf("set webhook: %w", err)
	}
	if !resp.Ok {
		return fmt.Errorf("set webhook: %s", resp.Description)
	}
	return nil
}

// The library's InlineKeyboardButton predates web app buttons, so the
// markup is built here and marshalled as-is into reply_markup.
type inlineKeyboardMarkup struct {
	InlineKeyboard [][]inlineKeyboardButton `json:"inline_keyboard"`
}

type inlineKeyboardButton struct {
	Text         string      `json:"text"`
	CallbackData string      `json:"callback_data,omitempty"`
	WebApp       *webAppInfo `json:"web_app,omitempty"`
}

type webAppInfo struct {
	URL string `json:"url"`
}

func newInlineKeyboard(rows [][]models.InlineButton) inlineKeyboardMarkup {
	markup := inlineKeyboardMarkup{InlineKeyboard: make([][]inlineKeyboardButton, 0, len(rows))}
	for _, row := range rows {
		buttons := make([]inlineKeyboardButton, 0, len(row))
		for _, b := range row {
			btn := inlineKeyboardButton{Text: b.Text, CallbackData: b.CallbackData}
			if b.WebAppURL != "" {
				btn.WebApp = &webAppInfo{URL: b.WebAppURL}
			}
			buttons = append(buttons, btn)
		}
		markup.InlineKeyboard = append(markup.InlineKeyboard, buttons)
	}
	return markup
}
