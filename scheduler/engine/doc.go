// Package engine provides the core placement logic for the conference
// session scheduler.
//
// The engine package implements:
//   - A bounds-checked occupancy grid of (time block x room) slots
//   - Pre-flight capacity validation against aggregate demand
//   - Randomized-retry first-fit placement of primary session requests
//   - Single-pass fill placement into a partially occupied grid
//   - Schedule configuration loading and validation
//
// Core Types:
//
// The Engine interface defines the three scheduling operations, implemented
// by SchedulerEngine. Grid represents the occupancy matrix, SessionRequest
// a named demand for a contiguous run of blocks, and ScheduleConfig the
// grid dimensions and algorithm parameters loaded from JSON files.
//
// Usage:
//
//	config, err := engine.LoadScheduleConfig("configs/classic.json")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	eng, err := engine.NewEngine(config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := eng.PlacePrimary(primary)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fill, err := eng.PlaceFill(result.Grid, fillRequests)
//
// Algorithm:
//
// Primary placement retries whole attempts: each attempt reshuffles the
// request list, re-sorts it by the configured strategy, and places requests
// first-fit into a fresh empty grid, preferring earlier blocks while trying
// rooms in a per-block random order. A request that cannot be seated abandons
// the attempt entirely; there is no backtracking. Fill placement runs the
// identical candidate scan exactly once against a copy of an existing grid
// and reports unplaceable requests as leftover data rather than failing.
package engine
