package repository

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/banjirwatch/infobanjir/internal/entities"
)

// TestReadingArchive saves one run's readings and reads them back.
func TestReadingArchive(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "infobanjir-archive-test")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tempDir)

	dbPath := filepath.Join(tempDir, "test-readings.db")
	repo, err := NewSQLiteReadingRepository(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize repository: %v", err)
	}
	defer repo.Close()

	now := time.Now()
	readings := []entities.StationReading{
		{Station: "Sg. Klang at Kg. Baru", District: "Klang", MainBasin: "Klang", WaterLevel: "2.35", LastUpdated: "01/02/2024 08:00", StateCode: "SEL", FetchedAt: now},
		{Station: "Sg. Gombak", District: "Gombak", MainBasin: "Klang", WaterLevel: "1.10", LastUpdated: "01/02/2024 08:15", StateCode: "SEL", FetchedAt: now},
		{Station: "Sg. Pahang at Lubok Paku", District: "Maran", MainBasin: "Pahang", WaterLevel: "12.40", LastUpdated: "01/02/2024 07:45", StateCode: "PHG", FetchedAt: now},
	}

	if err := repo.SaveReadings(readings); err != nil {
		t.Fatalf("Failed to save readings: %v", err)
	}

	retrieved, err := repo.GetReadingsByState("SEL")
	if err != nil {
		t.Fatalf("Failed to retrieve readings: %v", err)
	}
	if len(retrieved) != 2 {
		t.Errorf("Expected 2 readings for SEL, got %d", len(retrieved))
	} else {
		if retrieved[0].StateCode != "SEL" {
			t.Errorf("Expected state code SEL, got %s", retrieved[0].StateCode)
		}
		if retrieved[0].FetchedAt.IsZero() {
			t.Error("Retrieved reading has zero fetch time")
		}
	}

	codes, err := repo.GetStateCodes()
	if err != nil {
		t.Fatalf("Failed to get state codes: %v", err)
	}
	if len(codes) != 2 {
		t.Errorf("Expected 2 distinct state codes, got %d: %v", len(codes), codes)
	}

	lastFetch, err := repo.GetLastFetchTime()
	if err != nil {
		t.Fatalf("Failed to get last fetch time: %v", err)
	}
	if lastFetch.IsZero() {
		t.Error("Expected a non-zero last fetch time after saving")
	}
}

// TestReadingArchiveUpsert saves the same station twice for one fetch
// time and expects the later value to win without duplication.
func TestReadingArchiveUpsert(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "infobanjir-upsert-test")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tempDir)

	repo, err := NewSQLiteReadingRepository(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to initialize repository: %v", err)
	}
	defer repo.Close()

	now := time.Now()
	first := []entities.StationReading{
		{Station: "Sg. Klang", WaterLevel: "2.00", StateCode: "SEL", FetchedAt: now},
	}
	second := []entities.StationReading{
		{Station: "Sg. Klang", WaterLevel: "2.50", StateCode: "SEL", FetchedAt: now},
	}

	if err := repo.SaveReadings(first); err != nil {
		t.Fatalf("Failed to save first batch: %v", err)
	}
	if err := repo.SaveReadings(second); err != nil {
		t.Fatalf("Failed to save second batch: %v", err)
	}

	retrieved, err := repo.GetReadingsByState("SEL")
	if err != nil {
		t.Fatalf("Failed to retrieve readings: %v", err)
	}
	if len(retrieved) != 1 {
		t.Fatalf("Expected 1 reading after upsert, got %d", len(retrieved))
	}
	if retrieved[0].WaterLevel != "2.50" {
		t.Errorf("Expected upserted water level 2.50, got %s", retrieved[0].WaterLevel)
	}
}

// TestEmptyArchive checks zero-value behavior on a fresh database.
func TestEmptyArchive(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "infobanjir-empty-test")
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tempDir)

	repo, err := NewSQLiteReadingRepository(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to initialize repository: %v", err)
	}
	defer repo.Close()

	lastFetch, err := repo.GetLastFetchTime()
	if err != nil {
		t.Fatalf("Failed to get last fetch time: %v", err)
	}
	if !lastFetch.IsZero() {
		t.Errorf("Expected zero last fetch time for empty archive, got %v", lastFetch)
	}

	codes, err := repo.GetStateCodes()
	if err != nil {
		t.Fatalf("Failed to get state codes: %v", err)
	}
	if len(codes) != 0 {
		t.Errorf("Expected no state codes, got %v", codes)
	}
}
