// Package repository provides data access implementations
package repository

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/banjirwatch/infobanjir/internal/entities"
	_ "github.com/mattn/go-sqlite3"
)

// ReadingRepository defines the interface for reading-history persistence
// operations. Extraction runs only append; the read side serves the
// archive summary command and startup reporting, never a run itself.
type ReadingRepository interface {
	SaveReadings(readings []entities.StationReading) error
	GetReadingsByState(stateCode string) ([]entities.StationReading, error)
	GetStateCodes() ([]string, error)
	GetLastFetchTime() (time.Time, error)
	Close() error
}

// SQLiteReadingRepository implements ReadingRepository using SQLite
type SQLiteReadingRepository struct {
	db     *sql.DB
	DBPath string
}

// NewSQLiteReadingRepository creates and initializes a new SQLite
// repository. An empty path defaults to data/readings.db.
func NewSQLiteReadingRepository(dbPath string) (*SQLiteReadingRepository, error) {
	if dbPath == "" {
		dbDir := "data"
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %v", err)
		}
		dbPath = filepath.Join(dbDir, "readings.db")
	} else if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %v", err)
		}
	}

	log.Printf("Opening archive database at %s", dbPath)
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	createTableSQL := `
	CREATE TABLE IF NOT EXISTS station_readings (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		state_code TEXT NOT NULL,
		station TEXT NOT NULL,
		district TEXT,
		main_basin TEXT,
		sub_basin TEXT,
		water_level TEXT,
		last_updated TEXT,
		fetched_at DATETIME NOT NULL,
		UNIQUE(state_code, station, fetched_at)
	);
	CREATE INDEX IF NOT EXISTS idx_state_code ON station_readings(state_code);
	CREATE INDEX IF NOT EXISTS idx_fetched_at ON station_readings(fetched_at);`

	_, err = db.Exec(createTableSQL)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %v", err)
	}

	return &SQLiteReadingRepository{
		db:     db,
		DBPath: dbPath,
	}, nil
}

// Close closes the database connection
func (r *SQLiteReadingRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// SaveReadings appends one run's readings to the archive.
func (r *SQLiteReadingRepository) SaveReadings(readings []entities.StationReading) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO station_readings(state_code, station, district, main_basin, sub_basin, water_level, last_updated, fetched_at)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(state_code, station, fetched_at) DO UPDATE SET
		water_level=excluded.water_level,
		last_updated=excluded.last_updated
	`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare statement: %v", err)
	}
	defer stmt.Close()

	for _, reading := range readings {
		_, err := stmt.Exec(
			reading.StateCode,
			reading.Station,
			reading.District,
			reading.MainBasin,
			reading.SubBasin,
			reading.WaterLevel,
			reading.LastUpdated,
			reading.FetchedAt,
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert reading for %s at %s: %v", reading.Station, reading.StateCode, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %v", err)
	}

	log.Printf("Saved %d readings to archive", len(readings))
	return nil
}

// GetReadingsByState returns the archived readings for one state, newest
// fetch first.
func (r *SQLiteReadingRepository) GetReadingsByState(stateCode string) ([]entities.StationReading, error) {
	rows, err := r.db.Query(`
		SELECT id, state_code, station, district, main_basin, sub_basin, water_level, last_updated, fetched_at
		FROM station_readings
		WHERE state_code = ?
		ORDER BY fetched_at DESC, station
	`, stateCode)
	if err != nil {
		return nil, fmt.Errorf("failed to query readings for state %s: %v", stateCode, err)
	}
	defer rows.Close()

	var readings []entities.StationReading
	for rows.Next() {
		var reading entities.StationReading
		if err := rows.Scan(
			&reading.ID,
			&reading.StateCode,
			&reading.Station,
			&reading.District,
			&reading.MainBasin,
			&reading.SubBasin,
			&reading.WaterLevel,
			&reading.LastUpdated,
			&reading.FetchedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan reading row: %v", err)
		}
		readings = append(readings, reading)
	}
	return readings, rows.Err()
}

// GetStateCodes returns the distinct state codes present in the archive.
func (r *SQLiteReadingRepository) GetStateCodes() ([]string, error) {
	rows, err := r.db.Query(`SELECT DISTINCT state_code FROM station_readings ORDER BY state_code`)
	if err != nil {
		return nil, fmt.Errorf("failed to query state codes: %v", err)
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("failed to scan state code: %v", err)
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}

// GetLastFetchTime returns the most recent fetch timestamp in the
// archive, or the zero time for an empty archive.
func (r *SQLiteReadingRepository) GetLastFetchTime() (time.Time, error) {
	var fetchedAt sql.NullTime
	err := r.db.QueryRow(`SELECT MAX(fetched_at) FROM station_readings`).Scan(&fetchedAt)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to query last fetch time: %v", err)
	}
	if !fetchedAt.Valid {
		return time.Time{}, nil
	}
	return fetchedAt.Time, nil
}
