package services

import (
	"context"
	"errors"
)

// Notifier delivers a text to the administrator
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// TelegramNotifier messages the administrator's private chat
type TelegramNotifier struct {
	messenger Messenger
	adminID   int64
}

func NewTelegramNotifier(messenger Messenger, adminID int64) *TelegramNotifier {
	return &TelegramNotifier{messenger: messenger, adminID: adminID}
}

func (n *TelegramNotifier) Notify(ctx context.Context, text string) error {
	return n.messenger.SendText(ctx, n.adminID, text)
}

// whatsAppSender is the part of TwilioService the notifier needs
type whatsAppSender interface {
	SendWhatsAppMessage(to string, message string) error
}

// WhatsAppNotifier mirrors notifications to the administrator's WhatsApp
type WhatsAppNotifier struct {
	sender whatsAppSender
	to     string
}

func NewWhatsAppNotifier(sender whatsAppSender, to string) *WhatsAppNotifier {
	return &WhatsAppNotifier{sender: sender, to: to}
}

func (n *WhatsAppNotifier) Notify(ctx context.Context, text string) error {
	return n.sender.SendWhatsAppMessage(n.to, text)
}

// MultiNotifier tries every channel and reports all failures together
type MultiNotifier []Notifier

func (m MultiNotifier) Notify(ctx context.Context, text string) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, text); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
