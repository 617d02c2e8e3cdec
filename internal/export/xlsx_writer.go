package export

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/banjirwatch/infobanjir/internal/entities"
	"github.com/xuri/excelize/v2"
)

// AllStatesSheet is the name of the sheet holding the combined table.
const AllStatesSheet = "ALL_STATES"

// WriteXLSX writes the combined table plus one sheet per state code that
// has data, in the given code order. No index column is emitted; the
// first row of each sheet is the column header.
func WriteXLSX(path string, combined entities.Table, perState map[string]entities.Table, codeOrder []string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %v", err)
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	// The default sheet becomes the combined one.
	if err := f.SetSheetName("Sheet1", AllStatesSheet); err != nil {
		return fmt.Errorf("failed to name combined sheet: %v", err)
	}
	if err := writeSheet(f, AllStatesSheet, combined); err != nil {
		return err
	}

	for _, code := range codeOrder {
		table, ok := perState[code]
		if !ok {
			continue
		}
		if _, err := f.NewSheet(code); err != nil {
			return fmt.Errorf("failed to create sheet %s: %v", code, err)
		}
		if err := writeSheet(f, code, table); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save spreadsheet to %s: %v", path, err)
	}
	log.Printf("Wrote spreadsheet with %d state sheets to %s", len(perState), path)
	return nil
}

// writeSheet emits a header row followed by the table's rows. Cells in a
// numeric column are written as numbers so spreadsheet consumers can sort
// and chart them.
func writeSheet(f *excelize.File, sheet string, table entities.Table) error {
	header := make([]interface{}, len(table.Columns))
	numeric := make([]bool, len(table.Columns))
	for i, col := range table.Columns {
		header[i] = col
		if col != entities.ColLastUpdated {
			numeric[i] = columnIsNumeric(table, i)
		}
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header on sheet %s: %v", sheet, err)
	}

	for r, row := range table.Rows {
		values := make([]interface{}, len(table.Columns))
		for i := range table.Columns {
			var value string
			if i < len(row) {
				value = strings.TrimSpace(row[i])
			}
			switch {
			case value == "":
				values[i] = nil
			case numeric[i]:
				n, _ := strconv.ParseFloat(value, 64)
				values[i] = n
			default:
				values[i] = value
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return fmt.Errorf("failed to compute cell name on sheet %s: %v", sheet, err)
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d on sheet %s: %v", r+1, sheet, err)
		}
	}
	return nil
}
