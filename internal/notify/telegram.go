package notify

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/example/wordwise/pkg/models"
)

// Telegram delivers study reminders through a Telegram bot. Users opt in by
// binding a chat id to their profile.
type Telegram struct {
	api *tgbotapi.BotAPI
}

// NewTelegram creates the notifier from a bot token.
func NewTelegram(token string) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("notify: init telegram bot: %v", err)
	}
	return &Telegram{api: api}, nil
}

// SendReminder sends the user their daily study nudge.
func (t *Telegram) SendReminder(user models.User) error {
	if user.TelegramChatID == 0 {
		return fmt.Errorf("notify: user %s has no telegram chat bound", user.UID)
	}

	text := "Time to study! Check in and keep your streak going."
	if user.StreakDays > 0 {
		text = fmt.Sprintf("Time to study! Your streak is %d days. Check in to keep it going.", user.StreakDays)
	}

	msg := tgbotapi.NewMessage(user.TelegramChatID, text)
	if _, err := t.api.Send(msg); err != nil {
		return fmt.Errorf("notify: send reminder: %v", err)
	}
	return nil
}
