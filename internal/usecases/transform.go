package usecases

import (
	"log"
	"strconv"
	"strings"

	"github.com/banjirwatch/infobanjir/internal/entities"
)

// ApplyDangerFilter keeps only rows whose water level has reached the
// station's danger threshold. When either column is missing the filter is
// deliberately a no-op: a state with nonstandard column naming passes
// through unfiltered rather than vanishing from the output.
func ApplyDangerFilter(t entities.Table) entities.Table {
	levelIdx := t.ColumnIndex(entities.ColWaterLevel)
	dangerIdx := t.ColumnIndex(entities.ColDanger)
	if levelIdx < 0 || dangerIdx < 0 {
		log.Printf("Danger filter skipped: threshold or level column missing (have level=%t, danger=%t)", levelIdx >= 0, dangerIdx >= 0)
		return t
	}

	return t.Filter(func(row int) bool {
		level, okLevel := parseNumber(t.Rows[row][levelIdx])
		danger, okDanger := parseNumber(t.Rows[row][dangerIdx])
		if !okLevel || !okDanger {
			return false
		}
		return danger > 0 && level >= danger
	})
}

// TagAndProject stamps every row with the state code and reduces the
// table to the fixed output columns, best effort: columns the state does
// not publish are skipped.
func TagAndProject(t entities.Table, stateCode string) entities.Table {
	t.AddConstantColumn(entities.ColStateCode, stateCode)
	return t.Project(entities.DesiredColumns)
}

// parseNumber coerces a cell to a float. Anything non-numeric, including
// an empty cell, reports false.
func parseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
