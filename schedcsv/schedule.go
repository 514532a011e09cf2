package schedcsv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/wricardo/conference-scheduler/scheduler/engine"
)

// ReadSchedule reads a schedule grid from a CSV file. The header row width
// gives the room count and every following row is one block; blank or
// whitespace-only cells are free slots. Dimensions are inferred from the
// file, so callers working against a fixed configuration should compare
// the result against their expected grid size.
func ReadSchedule(path string) (*engine.Grid, error) {
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
	if len(records) < 2 {
		return nil, fmt.Errorf("schedule file %s needs a header and at least one block row", path)
	}

	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}
	rooms := len(header)
	blocks := len(records) - 1

	grid, err := engine.NewGrid(blocks, rooms)
	if err != nil {
		return nil, fmt.Errorf("schedule file %s: %w", path, err)
	}

	for b, row := range records[1:] {
		for r := 0; r < rooms; r++ {
			if r >= len(row) {
				continue
			}
			if name := strings.TrimSpace(row[r]); name != "" {
				grid.Cells[b][r] = name
			}
		}
	}

	return grid, nil
}

// WriteSchedule writes a schedule grid to a CSV file with a
// "Room 1..Room N" header row followed by one row per block.
func WriteSchedule(grid *engine.Grid, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := make([]string, grid.RoomCount)
	for i := range header {
		header[i] = fmt.Sprintf("Room %d", i+1)
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, row := range grid.Cells {
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
