package export

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/banjirwatch/infobanjir/internal/entities"
)

// SourceURL is the human-facing portal page recorded in every document.
const SourceURL = "https://publicinfobanjir.water.gov.my/aras-air/?lang=en"

// Document is the JSON snapshot written once per run.
type Document struct {
	GeneratedAt string              `json:"generated_at"`
	Source      string              `json:"source"`
	Rows        int                 `json:"rows"`
	All         []Record            `json:"all"`
	States      map[string][]Record `json:"states"`
}

// BuildDocument assembles the output document from a run's combined and
// per-state tables.
func BuildDocument(combined entities.Table, perState map[string]entities.Table) Document {
	states := make(map[string][]Record, len(perState))
	for code, table := range perState {
		states[code] = TableRecords(table)
	}
	return Document{
		GeneratedAt: time.Now().In(MalaysiaTime()).Format(TimestampFormat),
		Source:      SourceURL,
		Rows:        len(combined.Rows),
		All:         TableRecords(combined),
		States:      states,
	}
}

// WriteJSON writes the document to path with 2-space indentation, keeping
// non-ASCII characters literal. Parent directories are created as needed.
func WriteJSON(path string, doc Document) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %v", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %v", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode JSON document: %v", err)
	}

	log.Printf("Wrote %d rows to %s", doc.Rows, path)
	return nil
}
