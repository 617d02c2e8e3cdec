// Package config loads watcher settings from the environment.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// WatcherConfig holds the settings of the scheduled extraction daemon.
type WatcherConfig struct {
	// OutputJSONPath is where each run writes its JSON document.
	OutputJSONPath string

	// OutputXLSXPath, when set, makes each run also write a spreadsheet.
	OutputXLSXPath string

	// ArchiveDBPath, when set, enables appending every run to a SQLite
	// history archive.
	ArchiveDBPath string

	// CronSchedule is the cron expression driving runs after the initial
	// one. Default: hourly on the hour.
	CronSchedule string

	// DangerOnly keeps only stations at or above their danger threshold.
	DangerOnly bool

	// Telegram alerting; both must be set for alerts to fire.
	TelegramBotToken string
	TelegramChatID   int64
}

// Load reads configuration from environment with sensible defaults.
func Load() (*WatcherConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &WatcherConfig{
		OutputJSONPath:   getenvDefault("OUTPUT_JSON_PATH", "docs/data.json"),
		OutputXLSXPath:   os.Getenv("OUTPUT_XLSX_PATH"),
		ArchiveDBPath:    os.Getenv("ARCHIVE_DB_PATH"),
		CronSchedule:     getenvDefault("CRON_SCHEDULE", "0 * * * *"),
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
	}

	if v := os.Getenv("DANGER_ONLY"); v != "" {
		dangerOnly, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid DANGER_ONLY: %w", err)
		}
		cfg.DangerOnly = dangerOnly
	}

	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		chatID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		cfg.TelegramChatID = chatID
	}

	return cfg, nil
}

// AlertsEnabled reports whether Telegram alerting is fully configured.
func (c *WatcherConfig) AlertsEnabled() bool {
	return c.TelegramBotToken != "" && c.TelegramChatID != 0
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
