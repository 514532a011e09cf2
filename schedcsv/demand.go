package schedcsv

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/wricardo/conference-scheduler/scheduler/engine"
)

// ReadDemands reads session requests from a CSV file using the column
// indices in settings. The header row is required and must be wide enough
// to cover both configured columns. Rows with too few columns or a blank
// name cell are skipped. Multi-line name cells contribute only their first
// line. Lengths below 1 are raised to 1 and lengths above the configured
// cap are reduced to it, both with a logged warning; a non-integer length
// is an error naming the offending row.
func ReadDemands(path string, settings engine.ClassSettings) ([]engine.SessionRequest, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rdr := csv.NewReader(f)
	rdr.FieldsPerRecord = -1

	records, err := rdr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("demand file %s is empty or malformed", path)
	}

	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}
	maxCol := settings.NameColumn
	if settings.LengthColumn > maxCol {
		maxCol = settings.LengthColumn
	}
	if len(header) <= maxCol {
		return nil, fmt.Errorf("demand file %s has %d columns, but column %d is required", path, len(header), maxCol)
	}

	var requests []engine.SessionRequest
	for i, row := range records[1:] {
		rowNum := i + 2
		if len(row) <= maxCol {
			continue
		}

		cell := strings.TrimSpace(row[settings.NameColumn])
		if cell == "" {
			continue
		}
		name := strings.TrimSpace(strings.SplitN(cell, "\n", 2)[0])
		if name == "" {
			continue
		}

		length, err := strconv.Atoi(strings.TrimSpace(row[settings.LengthColumn]))
		if err != nil {
			return nil, fmt.Errorf("unable to parse length for %q (row %d): must be an integer", name, rowNum)
		}
		if length < 1 {
			log.Printf("[CSV] Warning: %q requested %d slots, defaulting to 1", name, length)
			length = 1
		}
		if length > settings.MaxLength {
			log.Printf("[CSV] Warning: %q requested %d slots, capping at %d", name, length, settings.MaxLength)
			length = settings.MaxLength
		}

		requests = append(requests, engine.SessionRequest{Name: name, Length: length})
	}

	return requests, nil
}
