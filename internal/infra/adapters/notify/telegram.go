package notify

import (
	"context"

	"hotspot-voucher-platform/internal/config"
	"hotspot-voucher-platform/internal/domain/ports/adapter"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var _ adapter.OpsAlerter = (*TelegramAlerter)(nil)

// TelegramAlerter pushes short operational messages (sales, router failures)
// to the operator's admin chat.
type TelegramAlerter struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramAlerter(cfg config.TelegramConfig) (*TelegramAlerter, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, err
	}
	return &TelegramAlerter{bot: bot, chatID: cfg.ChatID}, nil
}

func (t *TelegramAlerter) Alert(ctx context.Context, message string) error {
	msg := tgbotapi.NewMessage(t.chatID, message)
	_, err := t.bot.Send(msg)
	return err
}
