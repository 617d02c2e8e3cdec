package notify

import (
	"strings"
	"testing"

	"github.com/banjirwatch/infobanjir/internal/entities"
)

func TestFormatDangerAlert(t *testing.T) {
	readings := []entities.StationReading{
		{
			Station:     "Sg. Klang at Kg. Baru",
			District:    "Klang",
			WaterLevel:  "3.20",
			LastUpdated: "01/02/2024 08:00",
			StateCode:   "SEL",
		},
		{
			Station:    "Sg. Pahang at Lubok Paku",
			WaterLevel: "13.10",
			StateCode:  "PHG",
		},
	}

	msg := FormatDangerAlert(readings)

	if !strings.Contains(msg, "2 station(s)") {
		t.Errorf("Expected station count in header, got: %s", msg)
	}
	if !strings.Contains(msg, "Sg. Klang at Kg. Baru (SEL)") {
		t.Errorf("Expected station with state code, got: %s", msg)
	}
	if !strings.Contains(msg, "Water Level: 3.20 m") {
		t.Errorf("Expected water level line, got: %s", msg)
	}
	if !strings.Contains(msg, "Last update: 01/02/2024 08:00") {
		t.Errorf("Expected last update line, got: %s", msg)
	}

	// Fields without values are left out entirely.
	if strings.Contains(msg, "District: \n") {
		t.Errorf("Empty district should be omitted, got: %s", msg)
	}
	lubok := msg[strings.Index(msg, "Lubok Paku"):]
	if strings.Contains(lubok, "District:") {
		t.Errorf("Second station has no district, got: %s", lubok)
	}
}
