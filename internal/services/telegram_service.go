package services

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramNotifier posts bulk-assignment outcomes to the ops channel.
// Optional: a nil notifier is skipped by the assignment service.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramNotifier(botToken string, chatID int64) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("telegram init: %w", err)
	}
	return &TelegramNotifier{bot: bot, chatID: chatID}, nil
}

// NotifyBulkOutcome implements AssignmentNotifier. Delivery is
// best-effort: a failed post is logged, never propagated.
func (t *TelegramNotifier) NotifyBulkOutcome(action string, requested, applied int) {
	if t == nil || t.chatID == 0 {
		return
	}
	text := fmt.Sprintf("%s: %d/%d leads updated", action, applied, requested)
	if applied < requested {
		text += " (partial: some leads changed state concurrently)"
	}
	if _, err := t.bot.Send(tgbotapi.NewMessage(t.chatID, text)); err != nil {
		log.Printf("[tg][send][err] %v", err)
	}
}
