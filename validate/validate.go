// Command validate provides a small CLI that validates persisted schedule
// CSV files. It checks:
//   - CSV structure: a "Room 1..Room N" header and at least one block row
//   - Row widths never exceeding the header width
//   - Double-booking: every cell holds at most one session by construction,
//     so the check is that each session occupies exactly one room
//   - Contiguity: each session's blocks form one unbroken run in its room
//
// Schedule files are named on the command line; with no arguments it scans
// the current directory for *.csv files.
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// cellRef is one occupied grid position.
type cellRef struct {
	Block int
	Room  int
}

// validateSchedule loads and validates a single schedule CSV file. It
// performs structural checks on the header and rows, then verifies that
// every session sits in a single room across consecutive blocks.
func validateSchedule(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	f, err := os.Open(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}
	defer f.Close()

	rdr := csv.NewReader(f)
	rdr.FieldsPerRecord = -1
	records, err := rdr.ReadAll()
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid CSV: %v", err))
		return result
	}

	if len(records) < 2 {
		result.Valid = false
		result.Errors = append(result.Errors, "File needs a header row and at least one block row")
		return result
	}

	header := records[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}
	rooms := len(header)
	blocks := len(records) - 1

	for i, cell := range header {
		expected := fmt.Sprintf("Room %d", i+1)
		if strings.TrimSpace(cell) != expected {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Header column %d should be %q, got %q", i+1, expected, cell))
		}
	}

	// Collect occupied cells per session name.
	occupied := make(map[string][]cellRef)
	filled := 0
	for b, row := range records[1:] {
		if len(row) > rooms {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Block row %d has %d columns, header has %d", b+1, len(row), rooms))
		}
		for r := 0; r < rooms && r < len(row); r++ {
			name := strings.TrimSpace(row[r])
			if name == "" {
				continue
			}
			occupied[name] = append(occupied[name], cellRef{Block: b, Room: r})
			filled++
		}
	}

	// Each session must occupy exactly one room, with its blocks forming
	// one consecutive run.
	names := make([]string, 0, len(occupied))
	for name := range occupied {
		names = append(names, name)
	}
	sort.Strings(names)

	emptyBlocks := []string{}
	for b := 0; b < blocks; b++ {
		rowFilled := false
		for _, refs := range occupied {
			for _, ref := range refs {
				if ref.Block == b {
					rowFilled = true
					break
				}
			}
			if rowFilled {
				break
			}
		}
		if !rowFilled {
			emptyBlocks = append(emptyBlocks, fmt.Sprintf("%d", b+1))
		}
	}

	for _, name := range names {
		refs := occupied[name]

		roomSet := map[int]bool{}
		for _, ref := range refs {
			roomSet[ref.Room] = true
		}
		if len(roomSet) > 1 {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Session %q is split across %d rooms", name, len(roomSet)))
			continue
		}

		blockNums := make([]int, len(refs))
		for i, ref := range refs {
			blockNums[i] = ref.Block
		}
		sort.Ints(blockNums)
		if blockNums[len(blockNums)-1]-blockNums[0]+1 != len(blockNums) {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("Session %q occupies non-contiguous blocks in room %d", name, refs[0].Room+1))
		}
	}

	// Add informational data
	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Grid: %d blocks x %d rooms", blocks, rooms))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Filled: %d/%d slots", filled, blocks*rooms))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Sessions: %d", len(names)))
		if len(emptyBlocks) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("✓ Empty blocks: %s", strings.Join(emptyBlocks, ",")))
		}
	}

	return result
}

// main validates every schedule file named on the command line (or *.csv in
// the current directory), printing a concise report and exiting with
// non-zero status if any are invalid.
func main() {
	files := os.Args[1:]
	if len(files) == 0 {
		var err error
		files, err = filepath.Glob("*.csv")
		if err != nil {
			fmt.Printf("Error finding schedule files: %v\n", err)
			os.Exit(1)
		}
	}
	if len(files) == 0 {
		fmt.Println("No schedule CSV files found")
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validateSchedule(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All schedules are valid!")
	} else {
		fmt.Println("❌ Some schedules have errors")
		os.Exit(1)
	}
}
