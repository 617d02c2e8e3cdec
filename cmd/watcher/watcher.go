package main

import (
	"log"
	"os"
	"time"

	"github.com/banjirwatch/infobanjir/internal/config"
	"github.com/banjirwatch/infobanjir/internal/entities"
	"github.com/banjirwatch/infobanjir/internal/export"
	"github.com/banjirwatch/infobanjir/internal/integration"
	"github.com/banjirwatch/infobanjir/internal/notify"
	"github.com/banjirwatch/infobanjir/internal/repository"
	"github.com/banjirwatch/infobanjir/internal/usecases"
	"github.com/robfig/cron/v3"
)

func main() {
	// Configure logging
	log.SetOutput(os.Stdout)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("Starting infobanjir watcher...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	var archive repository.ReadingRepository
	if cfg.ArchiveDBPath != "" {
		repo, err := repository.NewSQLiteReadingRepository(cfg.ArchiveDBPath)
		if err != nil {
			log.Fatalf("Failed to initialize archive repository: %v", err)
		}
		defer repo.Close()
		archive = repo

		if lastFetch, err := repo.GetLastFetchTime(); err != nil {
			log.Printf("Warning: could not read archive's last fetch time: %v", err)
		} else if lastFetch.IsZero() {
			log.Println("Archive is empty, starting fresh")
		} else {
			log.Printf("Archive last written at %s", lastFetch.Format(time.RFC3339))
		}
	}

	var notifier *notify.TelegramNotifier
	if cfg.AlertsEnabled() {
		notifier, err = notify.NewTelegramNotifier(cfg.TelegramBotToken, cfg.TelegramChatID)
		if err != nil {
			log.Fatalf("Failed to initialize Telegram notifier: %v", err)
		}
		log.Println("Telegram danger alerts enabled")
	}

	fetcher := integration.NewStationFetcher("")
	useCase := usecases.NewExtractUseCase(fetcher, archive)

	runOnce := func() {
		combined, perState, err := useCase.Run(cfg.DangerOnly)
		if err != nil {
			log.Printf("Extraction run failed: %v", err)
			return
		}

		doc := export.BuildDocument(combined, perState)
		if err := export.WriteJSON(cfg.OutputJSONPath, doc); err != nil {
			log.Printf("Failed to write JSON output: %v", err)
			return
		}
		log.Printf("Saved JSON to %s", cfg.OutputJSONPath)

		if cfg.OutputXLSXPath != "" {
			if err := export.WriteXLSX(cfg.OutputXLSXPath, combined, perState, usecases.StateCodes); err != nil {
				log.Printf("Failed to write XLSX output: %v", err)
			} else {
				log.Printf("Saved XLSX to %s", cfg.OutputXLSXPath)
			}
		}

		if notifier != nil {
			alertRows := combined
			if !cfg.DangerOnly {
				// The combined table is unfiltered in this mode; alerts
				// would cover every station. Danger alerting without
				// DANGER_ONLY is not supported.
				alertRows = entities.Table{}
			}
			readings := entities.ReadingsFromTable(alertRows, time.Now())
			if err := notifier.SendDangerAlert(readings); err != nil {
				log.Printf("Failed to send danger alert: %v", err)
			}
		}
	}

	// Run immediately on startup, then on the configured schedule.
	runOnce()

	c := cron.New()
	if _, err := c.AddFunc(cfg.CronSchedule, runOnce); err != nil {
		log.Fatalf("Failed to set up cron job: %v", err)
	}

	log.Printf("Watcher scheduled with %q", cfg.CronSchedule)
	c.Start()

	// Keep the program running
	select {}
}
