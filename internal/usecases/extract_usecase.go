// Package usecases contains the application's business logic
package usecases

import (
	"errors"
	"log"
	"time"

	"github.com/banjirwatch/infobanjir/internal/entities"
	"github.com/banjirwatch/infobanjir/internal/repository"
)

// StateCodes lists the 16 administrative areas the portal publishes, in
// the fixed order every run iterates and every output preserves.
var StateCodes = []string{
	"PLS", "KDH", "PNG", "PRK", "SEL", "WLH", "PTJ", "NSN", "MLK", "JHR",
	"PHG", "TRG", "KEL", "SRK", "SAB", "WLP",
}

// ErrNoData is the only fatal outcome of a run: not a single state
// yielded any rows.
var ErrNoData = errors.New("no data returned for any state codes")

// StationSource provides one state's normalized station table.
type StationSource interface {
	FetchState(stateCode string) (entities.Table, error)
}

// ExtractUseCase runs the per-state fetch/filter/project pipeline and
// aggregates the results. An optional archive receives every run's
// readings.
type ExtractUseCase struct {
	source  StationSource
	archive repository.ReadingRepository
}

// NewExtractUseCase creates the extraction use case. Pass a nil archive
// to disable history archiving.
func NewExtractUseCase(source StationSource, archive repository.ReadingRepository) *ExtractUseCase {
	return &ExtractUseCase{
		source:  source,
		archive: archive,
	}
}

// Run fetches every state sequentially and returns the combined table
// plus the per-state tables. A state's failure or empty result never
// aborts the run; only a run where no state yields rows fails, with
// ErrNoData.
func (uc *ExtractUseCase) Run(dangerOnly bool) (entities.Table, map[string]entities.Table, error) {
	log.Printf("Starting extraction run (dangerOnly=%t) over %d states", dangerOnly, len(StateCodes))

	var accumulated []entities.Table
	perState := make(map[string]entities.Table)

	for _, code := range StateCodes {
		table, err := uc.fetchOne(code, dangerOnly)
		if err != nil {
			log.Printf("%s: failed -> %v", code, err)
			continue
		}
		if table.Empty() {
			log.Printf("%s: no table / empty", code)
			continue
		}
		perState[code] = table
		accumulated = append(accumulated, table)
		log.Printf("%s: OK (%d rows)", code, len(table.Rows))
	}

	if len(accumulated) == 0 {
		return entities.Table{}, nil, ErrNoData
	}

	combined := entities.Concat(accumulated)
	log.Printf("Extraction run complete: %d states with data, %d combined rows", len(perState), len(combined.Rows))

	if uc.archive != nil {
		readings := entities.ReadingsFromTable(combined, time.Now())
		if err := uc.archive.SaveReadings(readings); err != nil {
			// Archiving is best effort; the run's output is already built.
			log.Printf("Warning: failed to archive %d readings: %v", len(readings), err)
		} else {
			log.Printf("Archived %d readings", len(readings))
		}
	}

	return combined, perState, nil
}

// fetchOne runs the whole pipeline for a single state.
func (uc *ExtractUseCase) fetchOne(code string, dangerOnly bool) (entities.Table, error) {
	table, err := uc.source.FetchState(code)
	if err != nil {
		return entities.Table{}, err
	}
	if table.Empty() {
		return entities.Table{}, nil
	}
	if dangerOnly {
		table = ApplyDangerFilter(table)
	}
	return TagAndProject(table, code), nil
}
