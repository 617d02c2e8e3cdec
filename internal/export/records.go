// Package export converts station tables into output documents.
package export

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/banjirwatch/infobanjir/internal/entities"
)

// TimestampFormat is how last-updated values and the document generation
// time are rendered: day first, local wall clock.
const TimestampFormat = "02/01/2006 15:04"

// Layouts the portal has been seen to use for the last-updated column.
var lastUpdatedLayouts = []string{
	"02/01/2006 15:04",
	"02/01/2006 15:04:05",
	"2/1/2006 15:04",
	"02-01-2006 15:04",
}

var (
	malaysiaOnce sync.Once
	malaysiaLoc  *time.Location
)

// MalaysiaTime returns the fixed output time zone. The tzdata lookup can
// fail on a stripped system; Malaysia has been at a constant UTC+8, so a
// fixed zone is an exact fallback.
func MalaysiaTime() *time.Location {
	malaysiaOnce.Do(func() {
		loc, err := time.LoadLocation("Asia/Kuala_Lumpur")
		if err != nil {
			loc = time.FixedZone("MYT", 8*60*60)
		}
		malaysiaLoc = loc
	})
	return malaysiaLoc
}

// Record is one station reading as a flat field-to-value mapping. Values
// are strings, numbers, or explicit nulls; never empty-string or NaN
// stand-ins.
type Record map[string]interface{}

// TableRecords converts a table into output records. The last-updated
// column is parsed day-first, localized to Malaysia time and reformatted;
// unparseable entries become null. Every other column emits numbers when
// all of its non-empty cells are numeric, strings otherwise, and null for
// missing values.
func TableRecords(t entities.Table) []Record {
	numeric := make([]bool, len(t.Columns))
	for i, col := range t.Columns {
		if col == entities.ColLastUpdated {
			continue
		}
		numeric[i] = columnIsNumeric(t, i)
	}

	records := make([]Record, 0, len(t.Rows))
	for _, row := range t.Rows {
		record := make(Record, len(t.Columns))
		for i, col := range t.Columns {
			var value string
			if i < len(row) {
				value = strings.TrimSpace(row[i])
			}
			switch {
			case value == "":
				record[col] = nil
			case col == entities.ColLastUpdated:
				if formatted, ok := ReformatLastUpdated(value); ok {
					record[col] = formatted
				} else {
					record[col] = nil
				}
			case numeric[i]:
				n, _ := strconv.ParseFloat(value, 64)
				record[col] = n
			default:
				record[col] = value
			}
		}
		records = append(records, record)
	}
	return records
}

// ReformatLastUpdated parses a portal last-updated string day-first in
// Malaysia time and renders it back in the canonical format. A parse that
// does not survive the round trip (a skewed wall clock) reports false.
func ReformatLastUpdated(value string) (string, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range lastUpdatedLayouts {
		parsed, err := time.ParseInLocation(layout, value, MalaysiaTime())
		if err != nil {
			continue
		}
		canonical := parsed.Format(layout)
		if canonical != value {
			continue
		}
		return parsed.Format(TimestampFormat), true
	}
	return "", false
}

// columnIsNumeric reports whether every non-empty cell of a column parses
// as a float. A column with no values at all is not numeric.
func columnIsNumeric(t entities.Table, idx int) bool {
	seen := false
	for _, row := range t.Rows {
		if idx >= len(row) {
			continue
		}
		value := strings.TrimSpace(row[idx])
		if value == "" {
			continue
		}
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return false
		}
		seen = true
	}
	return seen
}
