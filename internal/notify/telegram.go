// Package notify pushes danger alerts to external channels.
package notify

import (
	"fmt"
	"log"
	"strings"

	"github.com/banjirwatch/infobanjir/internal/entities"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramNotifier sends one-way danger alerts to a fixed Telegram chat.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramNotifier creates a notifier for the given bot token and chat.
func NewTelegramNotifier(botToken string, chatID int64) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %v", err)
	}
	log.Printf("Authorized on Telegram account %s", bot.Self.UserName)

	return &TelegramNotifier{
		bot:    bot,
		chatID: chatID,
	}, nil
}

// SendDangerAlert sends a summary of stations at or above their danger
// threshold. Nothing is sent for an empty reading set.
func (t *TelegramNotifier) SendDangerAlert(readings []entities.StationReading) error {
	if len(readings) == 0 {
		return nil
	}

	msg := tgbotapi.NewMessage(t.chatID, FormatDangerAlert(readings))
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send danger alert: %v", err)
	}
	log.Printf("Sent danger alert covering %d stations", len(readings))
	return nil
}

// FormatDangerAlert renders the alert message for a set of readings.
func FormatDangerAlert(readings []entities.StationReading) string {
	var result strings.Builder
	result.WriteString(fmt.Sprintf("⚠️ %d station(s) at or above danger level:\n\n", len(readings)))

	for _, reading := range readings {
		result.WriteString(fmt.Sprintf("📍 Station: %s (%s)\n", reading.Station, reading.StateCode))
		if reading.District != "" {
			result.WriteString(fmt.Sprintf("🏞 District: %s\n", reading.District))
		}
		result.WriteString(fmt.Sprintf("💧 Water Level: %s m\n", reading.WaterLevel))
		if reading.LastUpdated != "" {
			result.WriteString(fmt.Sprintf("🕒 Last update: %s\n", reading.LastUpdated))
		}
		result.WriteString("\n")
	}

	return result.String()
}
