package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/banjirwatch/infobanjir/internal/export"
	"github.com/banjirwatch/infobanjir/internal/integration"
	"github.com/banjirwatch/infobanjir/internal/repository"
	"github.com/banjirwatch/infobanjir/internal/usecases"
	"github.com/spf13/cobra"
)

var (
	jsonPath      string
	xlsxPath      string
	dbPath        string
	dangerOnly    bool
	archiveDBPath string
)

var rootCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract publicinfobanjir water level data",
	Long: `Extract fetches the published river water-level tables for all
states from the public flood-information portal, normalizes them into a
uniform record set and writes the result as a JSON document, optionally
also as a spreadsheet and into a SQLite history archive.

The run is sequential over the fixed state list; a state that fails or
returns no table is reported and skipped. The run only fails when no
state yields any data.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runExtract,
}

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Summarize the SQLite reading archive",
	Long: `Archive reports the per-state reading counts accumulated in a
SQLite history archive and the time of the most recent fetch.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runArchive,
}

func init() {
	rootCmd.Flags().StringVar(&jsonPath, "json", "docs/data.json", "Output JSON path")
	rootCmd.Flags().StringVar(&xlsxPath, "xlsx", "", "Optional output XLSX path")
	rootCmd.Flags().StringVar(&dbPath, "db", "", "Optional SQLite archive path")
	rootCmd.Flags().BoolVar(&dangerOnly, "danger-only", false,
		"Keep only stations where Water Level >= Threshold Danger (when available)")

	archiveCmd.Flags().StringVar(&archiveDBPath, "db", "", "SQLite archive path")
	archiveCmd.MarkFlagRequired("db")
	rootCmd.AddCommand(archiveCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	// INFOBANJIR_BASE_URL overrides the portal endpoint (mirrors, tests).
	fetcher := integration.NewStationFetcher(os.Getenv("INFOBANJIR_BASE_URL"))

	var archive repository.ReadingRepository
	if dbPath != "" {
		repo, err := repository.NewSQLiteReadingRepository(dbPath)
		if err != nil {
			return fmt.Errorf("failed to initialize archive repository: %v", err)
		}
		defer repo.Close()
		archive = repo
	}

	useCase := usecases.NewExtractUseCase(fetcher, archive)

	combined, perState, err := useCase.Run(dangerOnly)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	doc := export.BuildDocument(combined, perState)
	if err := export.WriteJSON(jsonPath, doc); err != nil {
		return fmt.Errorf("failed to write JSON output: %v", err)
	}
	log.Printf("Saved JSON to %s", jsonPath)

	if xlsxPath != "" {
		if err := export.WriteXLSX(xlsxPath, combined, perState, usecases.StateCodes); err != nil {
			return fmt.Errorf("failed to write XLSX output: %v", err)
		}
		log.Printf("Saved XLSX to %s", xlsxPath)
	}

	return nil
}

func runArchive(cmd *cobra.Command, args []string) error {
	repo, err := repository.NewSQLiteReadingRepository(archiveDBPath)
	if err != nil {
		return fmt.Errorf("failed to open archive repository: %v", err)
	}
	defer repo.Close()

	codes, err := repo.GetStateCodes()
	if err != nil {
		return fmt.Errorf("failed to list archived states: %v", err)
	}
	if len(codes) == 0 {
		log.Printf("Archive at %s is empty", archiveDBPath)
		return nil
	}

	for _, code := range codes {
		readings, err := repo.GetReadingsByState(code)
		if err != nil {
			return fmt.Errorf("failed to read archive for state %s: %v", code, err)
		}
		log.Printf("%s: %d archived readings", code, len(readings))
	}

	lastFetch, err := repo.GetLastFetchTime()
	if err != nil {
		return fmt.Errorf("failed to read last fetch time: %v", err)
	}
	log.Printf("Last fetch at %s", lastFetch.Format(time.RFC3339))
	return nil
}

func main() {
	// Configure logging
	log.SetOutput(os.Stdout)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}
