// Command analyze prints quick, human-readable heuristics about schedule
// configuration files in the project's configs directory. It summarizes grid
// dimensions, algorithm settings and demand-class limits, and highlights
// configurations where the placement search is likely to be tight: few
// candidate start positions for the longest sessions, or fill sessions that
// can span multiple blocks.
package main

import (
	"fmt"

	"github.com/wricardo/conference-scheduler/scheduler/engine"
)

func main() {
	configs := []string{
		"classic",
		"small",
		"workshop",
	}

	for _, name := range configs {
		fmt.Printf("\n=== Analyzing %s ===\n", name)
		analyzeConfig(name)
	}
}

func analyzeConfig(name string) {
	config, err := engine.LoadConfigByName(name)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		return
	}

	fmt.Printf("Name: %s\n", config.Name)
	fmt.Printf("Description: %s\n", config.Description)
	fmt.Printf("Grid: %d blocks x %d rooms = %d slots\n", config.Blocks, config.Rooms, config.Capacity())
	fmt.Printf("Max Tries: %d\n", config.MaxTries)
	fmt.Printf("Sort Strategy: %s\n", config.SortStrategy)
	if config.RandomSeed != nil {
		fmt.Printf("Random Seed: %d (deterministic)\n", *config.RandomSeed)
	} else {
		fmt.Printf("Random Seed: none (seeded from the clock)\n")
	}

	fmt.Printf("Primary: name col %d, length col %d, max length %d\n",
		config.Primary.NameColumn, config.Primary.LengthColumn, config.Primary.MaxLength)
	fmt.Printf("Fill: name col %d, length col %d, max length %d\n",
		config.Fill.NameColumn, config.Fill.LengthColumn, config.Fill.MaxLength)

	// Candidate start positions for the longest primary session. When this
	// drops near the room count, the randomized search has little room to
	// maneuver and will burn more attempts.
	starts := config.Blocks - config.Primary.MaxLength + 1
	candidates := starts * config.Rooms
	fmt.Printf("Longest primary session: %d candidate placements (%d start blocks x %d rooms)\n",
		candidates, starts, config.Rooms)
	if starts == 1 {
		fmt.Printf("⚠️  WARNING: max-length primary sessions span the whole day; each one locks a full room\n")
	} else if candidates <= config.Rooms {
		fmt.Printf("⚠️  WARNING: very few placements for the longest sessions; expect high attempt counts\n")
	} else {
		fmt.Printf("✅ Longest sessions have room to move\n")
	}

	// Whole-grid pressure from max-length primaries alone.
	maxLongSessions := config.Capacity() / config.Primary.MaxLength
	fmt.Printf("At most %d max-length primary sessions fit before capacity runs out\n", maxLongSessions)

	if config.Fill.MaxLength > 1 {
		fmt.Printf("⚠️  NOTE: fill sessions may span %d blocks; leftover fill is more likely on fragmented grids\n",
			config.Fill.MaxLength)
	} else {
		fmt.Printf("✅ Fill sessions are single-block; any free cell can take one\n")
	}
}
