// Package integration handles external service interactions
package integration

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/banjirwatch/infobanjir/internal/entities"
)

// DefaultBaseURL is the portal endpoint serving the per-state water-level
// tables.
const DefaultBaseURL = "https://publicinfobanjir.water.gov.my/aras-air/data-paras-air/aras-air-data/"

// requestTimeout bounds each state fetch; there is no retry.
const requestTimeout = 30 * time.Second

// StationFetcher retrieves station water-level tables from the public
// flood-information portal.
type StationFetcher struct {
	baseURL string
	client  *http.Client
}

// NewStationFetcher creates a fetcher for the given endpoint. An empty URL
// selects the public portal.
func NewStationFetcher(baseURL string) *StationFetcher {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &StationFetcher{
		baseURL: baseURL,
		client:  &http.Client{Timeout: requestTimeout},
	}
}

// FetchState retrieves the station table for one state code: all
// districts, all stations, English labels. A response without any HTML
// table yields an empty table, not an error. The first table found is
// taken and its header flattened to single-level column names.
func (sf *StationFetcher) FetchState(stateCode string) (entities.Table, error) {
	params := url.Values{}
	params.Set("district", "ALL")
	params.Set("station", "ALL")
	params.Set("lang", "en")
	params.Set("state", stateCode)
	requestURL := sf.baseURL + "?" + params.Encode()

	log.Printf("Fetching station data for state %s", stateCode)
	res, err := sf.client.Get(requestURL)
	if err != nil {
		log.Printf("Error fetching data for state %s: %v", stateCode, err)
		return entities.Table{}, fmt.Errorf("failed to fetch state %s: %v", stateCode, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		log.Printf("Received unexpected status code for state %s: %d %s", stateCode, res.StatusCode, res.Status)
		return entities.Table{}, fmt.Errorf("unexpected status code for state %s: %d %s", stateCode, res.StatusCode, res.Status)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		log.Printf("Error parsing HTML for state %s: %v", stateCode, err)
		return entities.Table{}, fmt.Errorf("failed to parse response for state %s: %v", stateCode, err)
	}

	tables := doc.Find("table")
	if tables.Length() == 0 {
		log.Printf("No table found in response for state %s", stateCode)
		return entities.Table{}, nil
	}

	table := parseTable(tables.First())
	log.Printf("State %s: parsed table with %d columns, %d rows", stateCode, len(table.Columns), len(table.Rows))
	return table, nil
}

// parseTable converts one HTML table into a Table. Header rows (a leading
// run of rows holding only th cells) form a grid with colspan and rowspan
// expanded, so a label spanning both header rows contributes a segment at
// every level it covers; the grid is then flattened into single-level
// column names. Remaining rows with td cells become data rows, padded to
// the column count.
func parseTable(sel *goquery.Selection) entities.Table {
	var headerRows []*goquery.Selection
	var dataRows []*goquery.Selection
	headerDone := false
	sel.Find("tr").Each(func(_ int, row *goquery.Selection) {
		if !headerDone && row.Find("th").Length() > 0 && row.Find("td").Length() == 0 {
			headerRows = append(headerRows, row)
			return
		}
		headerDone = true
		if row.Find("td").Length() > 0 {
			dataRows = append(dataRows, row)
		}
	})

	grid := make(map[int]map[int]string)
	width := 0
	for r, row := range headerRows {
		if grid[r] == nil {
			grid[r] = make(map[int]string)
		}
		col := 0
		row.Find("th").Each(func(_ int, cell *goquery.Selection) {
			// Skip slots already claimed by a rowspan from above.
			for {
				if _, taken := grid[r][col]; !taken {
					break
				}
				col++
			}
			text := strings.TrimSpace(cell.Text())
			colspan := spanAttr(cell, "colspan")
			rowspan := spanAttr(cell, "rowspan")
			for i := 0; i < rowspan; i++ {
				if grid[r+i] == nil {
					grid[r+i] = make(map[int]string)
				}
				for j := 0; j < colspan; j++ {
					grid[r+i][col+j] = text
				}
			}
			col += colspan
		})
		if col > width {
			width = col
		}
	}

	levels := make([][]string, width)
	for col := 0; col < width; col++ {
		stack := make([]string, len(headerRows))
		for r := range headerRows {
			stack[r] = grid[r][col]
		}
		levels[col] = stack
	}

	table := entities.Table{Columns: entities.FlattenHeader(levels)}
	for _, row := range dataRows {
		cells := row.Find("td")
		values := make([]string, len(table.Columns))
		cells.Each(func(i int, cell *goquery.Selection) {
			if i < len(values) {
				values[i] = strings.TrimSpace(cell.Text())
			}
		})
		table.Rows = append(table.Rows, values)
	}
	return table
}

// spanAttr reads a colspan/rowspan attribute, defaulting to 1.
func spanAttr(cell *goquery.Selection, name string) int {
	n, err := strconv.Atoi(cell.AttrOr(name, "1"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
