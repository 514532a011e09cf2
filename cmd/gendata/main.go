// Command gendata writes synthetic demand CSV files shaped by a schedule
// configuration: the name and length cells land in the configured column
// indices, padded with filler columns, so the generated files exercise the
// same parsing path as real conference exports.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"

	"github.com/wricardo/conference-scheduler/scheduler/engine"
)

var primarySessions = []engine.SessionRequest{
	{Name: "WG: Data Science", Length: 2},
	{Name: "WG: Machine Learning", Length: 3},
	{Name: "WG: High Performance Computing", Length: 1},
	{Name: "WG: Climate Modeling", Length: 3},
	{Name: "WG: Quantum Computing", Length: 1},
	{Name: "WG: Cybersecurity", Length: 3},
	{Name: "WG: Edge Computing", Length: 2},
}

var fillSessions = []engine.SessionRequest{
	{Name: "BOF: Future of AI", Length: 1},
	{Name: "BOF: Open Source Tools", Length: 1},
	{Name: "BOF: Career Development", Length: 1},
	{Name: "BOF: Diversity in Tech", Length: 1},
	{Name: "BOF: Networking Session", Length: 1},
	{Name: "BOF: Industry Trends", Length: 1},
}

func main() {
	configPath := flag.String("config", "configs/classic.json", "Schedule configuration JSON")
	primaryOut := flag.String("primary-output", "test_primary.csv", "Output path for the primary demand CSV")
	fillOut := flag.String("fill-output", "test_fill.csv", "Output path for the fill demand CSV")
	numPrimary := flag.Int("num-primary", 5, "Number of primary sessions to generate")
	numFill := flag.Int("num-fill", 4, "Number of fill sessions to generate")
	flag.Parse()

	config, err := engine.LoadScheduleConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Using configuration from %s\n\n", *configPath)

	if err := writeDemandFile(*primaryOut, config.Primary, "Name of Group", "Quantity of Sessions Needed", primarySessions, *numPrimary); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generated primary demand: %s\n", *primaryOut)
	fmt.Printf("  name column %d, length column %d\n\n", config.Primary.NameColumn, config.Primary.LengthColumn)

	if err := writeDemandFile(*fillOut, config.Fill, "Session Title", "Session Count", fillSessions, *numFill); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generated fill demand: %s\n", *fillOut)
	fmt.Printf("  name column %d, length column %d\n\n", config.Fill.NameColumn, config.Fill.LengthColumn)

	fmt.Println("Test data generation complete")
}

// writeDemandFile writes up to count sessions into a CSV whose name and
// length columns match the given class settings. Columns other than the two
// configured ones are left blank so parsers must honor the indices.
func writeDemandFile(path string, settings engine.ClassSettings, nameHeader, lengthHeader string, sessions []engine.SessionRequest, count int) error {
	if count > len(sessions) {
		count = len(sessions)
	}

	maxCol := settings.NameColumn
	if settings.LengthColumn > maxCol {
		maxCol = settings.LengthColumn
	}
	numCols := maxCol + 3

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	header := make([]string, numCols)
	for i := range header {
		header[i] = fmt.Sprintf("Column_%d", i)
	}
	header[settings.NameColumn] = nameHeader
	header[settings.LengthColumn] = lengthHeader
	if err := w.Write(header); err != nil {
		return err
	}

	for _, session := range sessions[:count] {
		row := make([]string, numCols)
		row[settings.NameColumn] = session.Name
		row[settings.LengthColumn] = fmt.Sprintf("%d", session.Length)
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
