// Package entities contains the core domain objects for the infobanjir
// extractor.
package entities

import "time"

// Normalized column names as they come out of the portal's two-level
// header after flattening. The doubled words are real: the portal spans
// the same label across both header rows.
const (
	ColStationName = "Station Name Station Name"
	ColDistrict    = "District District"
	ColMainBasin   = "Main Basin Main Basin"
	ColSubBasin    = "Sub River Basin Sub River Basin"
	ColLastUpdated = "Last Updated Last Updated"
	ColWaterLevel  = "Water Level (m) (Graph) Water Level (m) (Graph)"
	ColDanger      = "Threshold Danger"
	ColStateCode   = "state_code"
)

// DesiredColumns is the fixed allow-list a projected station table keeps,
// in output order.
var DesiredColumns = []string{
	ColStationName,
	ColDistrict,
	ColMainBasin,
	ColSubBasin,
	ColLastUpdated,
	ColWaterLevel,
	ColStateCode,
}

// StationReading is one station's water-level reading in flat form, used
// by the history archive.
type StationReading struct {
	ID          int64
	Station     string // Monitoring station name
	District    string
	MainBasin   string
	SubBasin    string
	WaterLevel  string    // Current water level in metres, as published
	LastUpdated string    // Portal's last-updated string, as published
	StateCode   string    // Administrative state code, e.g. SEL
	FetchedAt   time.Time // When this run retrieved the reading
}

// ReadingsFromTable converts a projected station table into flat readings
// stamped with the fetch time.
func ReadingsFromTable(t Table, fetchedAt time.Time) []StationReading {
	readings := make([]StationReading, 0, len(t.Rows))
	for r := range t.Rows {
		readings = append(readings, StationReading{
			Station:     t.Cell(r, ColStationName),
			District:    t.Cell(r, ColDistrict),
			MainBasin:   t.Cell(r, ColMainBasin),
			SubBasin:    t.Cell(r, ColSubBasin),
			WaterLevel:  t.Cell(r, ColWaterLevel),
			LastUpdated: t.Cell(r, ColLastUpdated),
			StateCode:   t.Cell(r, ColStateCode),
			FetchedAt:   fetchedAt,
		})
	}
	return readings
}
