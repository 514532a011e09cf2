// Command schedule runs the two-phase placement as a batch tool: primary
// sessions from a demand CSV go onto a fresh grid, fill sessions take the
// leftover cells, and the result lands in a schedule CSV. It can also update
// an existing schedule with fill sessions only, produce several independent
// permutations in one invocation, and print utilization reports for
// previously written schedule files.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"
	"github.com/wricardo/conference-scheduler/schedcsv"
	"github.com/wricardo/conference-scheduler/scheduler/engine"
	"github.com/wricardo/conference-scheduler/scheduler/report"
)

const defaultSchedulePath = "schedule.csv"

func main() {
	cmd := newRootCommand()
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cli.Command {
	return &cli.Command{
		Name:  "schedule",
		Usage: "place conference sessions onto a blocks-by-rooms grid",
		UsageText: "schedule -w primary.csv [-b fill.csv] [-s out.csv] [options]\n" +
			"schedule -b fill.csv -s existing.csv [options]\n" +
			"schedule report out.csv [out2.csv ...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "primary",
				Aliases: []string{"w"},
				Usage:   "CSV of primary session requests (name + length columns per config)",
			},
			&cli.StringFlag{
				Name:    "fill",
				Aliases: []string{"b"},
				Usage:   "CSV of fill session requests",
			},
			&cli.StringFlag{
				Name:    "schedule",
				Aliases: []string{"s"},
				Usage:   "schedule CSV to write, or to read and update in fill-only mode",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "configs/classic.json",
				Usage:   "schedule configuration JSON",
			},
			&cli.IntFlag{
				Name:  "max-tries",
				Usage: "override the configured number of randomized placement attempts",
			},
			&cli.IntFlag{
				Name:    "rooms",
				Aliases: []string{"r"},
				Usage:   "override the configured number of rooms",
			},
			&cli.IntFlag{
				Name:    "permutations",
				Aliases: []string{"p"},
				Value:   1,
				Usage:   "number of independent schedules to generate",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "print request counts, seeds and other diagnostics",
			},
		},
		Commands: []*cli.Command{
			newReportCommand(),
		},
		Action: runSchedule,
	}
}

func newReportCommand() *cli.Command {
	return &cli.Command{
		Name:      "report",
		Usage:     "print utilization summaries for schedule CSV files",
		ArgsUsage: "FILE [FILE ...]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			files := cmd.Args().Slice()
			if len(files) == 0 {
				return fmt.Errorf("report needs at least one schedule CSV file")
			}
			for i, path := range files {
				grid, err := schedcsv.ReadSchedule(path)
				if err != nil {
					return err
				}
				summary := report.Build(grid)
				summary.Label = path
				if i > 0 {
					fmt.Println()
				}
				fmt.Print(summary.String())
			}
			return nil
		},
	}
}

func runSchedule(ctx context.Context, cmd *cli.Command) error {
	primaryPath := cmd.String("primary")
	fillPath := cmd.String("fill")
	schedulePath := cmd.String("schedule")
	permutations := int(cmd.Int("permutations"))
	verbose := cmd.Bool("verbose")

	if primaryPath == "" && fillPath == "" {
		return fmt.Errorf("nothing to schedule: provide --primary and/or --fill (see --help)")
	}
	if permutations < 1 {
		return fmt.Errorf("permutations must be >= 1, got %d", permutations)
	}
	if permutations > engine.MaxPermutations {
		return fmt.Errorf("permutations must be <= %d, got %d", engine.MaxPermutations, permutations)
	}

	config, err := engine.LoadScheduleConfig(cmd.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if rooms := int(cmd.Int("rooms")); rooms > 0 {
		config.Rooms = rooms
	}
	if maxTries := int(cmd.Int("max-tries")); maxTries > 0 {
		config.MaxTries = maxTries
	}
	if err := engine.ValidateScheduleConfig(config); err != nil {
		return err
	}
	if verbose && config.RandomSeed != nil {
		fmt.Printf("Using random seed %d\n", *config.RandomSeed)
	}

	var primary []engine.SessionRequest
	if primaryPath != "" {
		primary, err = schedcsv.ReadDemands(primaryPath, config.Primary)
		if err != nil {
			return fmt.Errorf("failed to read primary requests: %w", err)
		}
		if verbose {
			fmt.Printf("Loaded %d primary request(s) from %s\n", len(primary), primaryPath)
		}
	}

	var fill []engine.SessionRequest
	if fillPath != "" {
		fill, err = schedcsv.ReadDemands(fillPath, config.Fill)
		if err != nil {
			return fmt.Errorf("failed to read fill requests: %w", err)
		}
		if verbose {
			fmt.Printf("Loaded %d fill request(s) from %s\n", len(fill), fillPath)
		}
	}

	// Fill-only mode updates an existing schedule in place.
	if primaryPath == "" {
		if schedulePath == "" {
			return fmt.Errorf("--fill without --primary requires --schedule naming an existing schedule CSV")
		}
		return runFillOnly(config, schedulePath, fill)
	}

	// When both phases run together, combined demand must fit before any
	// randomized work starts; an over-subscribed request set writes nothing.
	if len(fill) > 0 {
		if over := oversubscription(config, primary, fill); over != "" {
			fmt.Print(over)
			return nil
		}
	}

	return runPlacement(config, schedulePath, primary, fill, permutations)
}

// runFillOnly loads an existing schedule, seats the fill requests into its
// free cells and writes the result back to the same file. Any leftover
// request aborts the update.
func runFillOnly(config *engine.ScheduleConfig, schedulePath string, fill []engine.SessionRequest) error {
	grid, err := schedcsv.ReadSchedule(schedulePath)
	if err != nil {
		return fmt.Errorf("failed to read schedule: %w", err)
	}

	eng, err := engine.NewEngine(config)
	if err != nil {
		return err
	}

	result, err := eng.PlaceFill(grid, fill)
	if err != nil {
		return err
	}
	if len(result.Leftover) > 0 {
		return fmt.Errorf("%d fill session(s) could not be placed, first leftover %q; schedule not updated",
			len(result.Leftover), result.Leftover[0])
	}

	if err := schedcsv.WriteSchedule(result.Grid, schedulePath); err != nil {
		return fmt.Errorf("failed to write schedule: %w", err)
	}

	filled := result.Grid.FilledCells()
	fmt.Printf("%d fill session(s) added, %d/%d slots filled%s\n",
		len(fill), filled, result.Grid.Capacity(), emptyBlockNote(result.EmptyBlocks))
	fmt.Printf("Updated schedule written to %s\n", schedulePath)
	return nil
}

// runPlacement runs the primary phase (and the fill phase when fill requests
// are present) once per permutation, writing each result to its own file.
func runPlacement(config *engine.ScheduleConfig, schedulePath string, primary, fill []engine.SessionRequest, permutations int) error {
	basePath := schedulePath
	if basePath == "" {
		basePath = defaultSchedulePath
	}

	primarySlots := 0
	for _, req := range primary {
		primarySlots += req.Length
	}
	if permutations > 1 {
		fmt.Printf("Scheduling %d primary session(s) (%d slots), %d fill session(s)\n",
			len(primary), primarySlots, len(fill))
	}

	for perm := 1; perm <= permutations; perm++ {
		outPath := permutationPath(basePath, perm, permutations)

		eng, err := engineForPermutation(config, perm)
		if err != nil {
			return err
		}

		placement, err := eng.PlacePrimary(primary)
		if err != nil {
			return err
		}

		grid := placement.Grid
		emptyBlocks := placement.EmptyBlocks
		if len(fill) > 0 {
			fillResult, err := eng.PlaceFill(grid, fill)
			if err != nil {
				return err
			}
			if len(fillResult.Leftover) > 0 {
				return fmt.Errorf("%d fill session(s) could not be placed, first leftover %q; no schedule written",
					len(fillResult.Leftover), fillResult.Leftover[0])
			}
			grid = fillResult.Grid
			emptyBlocks = fillResult.EmptyBlocks
		}

		if err := schedcsv.WriteSchedule(grid, outPath); err != nil {
			return fmt.Errorf("failed to write schedule: %w", err)
		}

		filled := grid.FilledCells()
		if permutations > 1 {
			fmt.Printf("  %s: %d/%d slots filled%s\n", outPath, filled, grid.Capacity(), emptyBlockNote(emptyBlocks))
			continue
		}

		word := "schedules"
		if placement.Attempts == 1 {
			word = "schedule"
		}
		fmt.Printf("%d primary session(s) (%d slots), %d fill session(s), %d/%d slots filled, evaluated %d %s%s\n",
			len(primary), primarySlots, len(fill), filled, grid.Capacity(), placement.Attempts, word, emptyBlockNote(emptyBlocks))
		fmt.Printf("Schedule written to %s\n", outPath)
	}

	return nil
}

// engineForPermutation builds the engine for one permutation index. Under a
// seeded config each index gets its own deterministic stream so permutations
// differ from each other but reruns reproduce the same set of files.
func engineForPermutation(config *engine.ScheduleConfig, perm int) (*engine.SchedulerEngine, error) {
	if config.RandomSeed != nil {
		return engine.NewEngineWithSource(config, engine.SourceForPermutation(*config.RandomSeed, perm))
	}
	return engine.NewEngine(config)
}

// oversubscription returns a human-readable diagnostic when the combined
// primary and fill demand exceeds grid capacity, or "" when it fits.
func oversubscription(config *engine.ScheduleConfig, primary, fill []engine.SessionRequest) string {
	primarySlots := 0
	for _, req := range primary {
		primarySlots += req.Length
	}
	fillSlots := 0
	for _, req := range fill {
		fillSlots += req.Length
	}

	total := primarySlots + fillSlots
	capacity := config.Capacity()
	if total <= capacity {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Over-subscription detected:\n")
	fmt.Fprintf(&b, "  Total requested: %d slots (%d primary + %d fill)\n", total, primarySlots, fillSlots)
	fmt.Fprintf(&b, "  Capacity: %d slots (%d blocks x %d rooms)\n", capacity, config.Blocks, config.Rooms)
	fmt.Fprintf(&b, "  Overflow: %d slots\n", total-capacity)
	fmt.Fprintf(&b, "Reduce fill.max_length (currently %d) or primary.max_length (currently %d) in the config and retry.\n",
		config.Fill.MaxLength, config.Primary.MaxLength)
	fmt.Fprintf(&b, "No schedule files written.\n")
	return b.String()
}

// permutationPath derives the output file name for one permutation. A single
// permutation keeps the base name; multiple permutations get the index
// inserted before the .csv extension (schedule1.csv, schedule2.csv, ...).
func permutationPath(base string, perm, total int) string {
	if total <= 1 {
		return base
	}
	if strings.HasSuffix(base, ".csv") {
		return strings.TrimSuffix(base, ".csv") + strconv.Itoa(perm) + ".csv"
	}
	return base + strconv.Itoa(perm) + ".csv"
}

// emptyBlockNote renders completely unused blocks as a warning suffix, with
// block numbers shown 1-based. Empty input yields "".
func emptyBlockNote(blocks []int) string {
	if len(blocks) == 0 {
		return ""
	}
	labels := make([]string, len(blocks))
	for i, b := range blocks {
		labels[i] = strconv.Itoa(b + 1)
	}
	word := "blocks"
	if len(blocks) == 1 {
		word = "block"
	}
	return fmt.Sprintf(" (%s %s unused)", word, strings.Join(labels, ","))
}
