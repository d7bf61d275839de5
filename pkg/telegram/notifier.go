package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier sends reminder sweep alerts through the bot API. It satisfies
// reminder.Notifier.
type Notifier struct {
	api *tgbotapi.BotAPI
}

func NewNotifier(api *tgbotapi.BotAPI) *Notifier {
	return &Notifier{api: api}
}

func (n *Notifier) SendExpiryAlert(telegramUserID int64, message string) error {
	msg := tgbotapi.NewMessage(telegramUserID, message)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	_, err := n.api.Send(msg)
	return err
}
