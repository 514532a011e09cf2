package engine

import (
	"math/rand"
	"sort"
)

// candidate is one (startBlock, room) pair tried during first-fit placement.
type candidate struct {
	startBlock int
	room       int
}

// PlacePrimary places all primary requests into a fresh empty grid using
// randomized-retry first-fit. Each attempt reshuffles the whole request
// list, re-sorts it by the configured strategy, and places requests one by
// one; a request that cannot be seated abandons the entire attempt and a
// new one starts from an empty grid. After MaxTries failed attempts it
// returns a PlacementError naming the last request that could not be seated.
func (e *SchedulerEngine) PlacePrimary(requests []SessionRequest) (*PlacementResult, error) {
	if err := e.ValidateCapacity(requests); err != nil {
		return nil, err
	}

	lastFailed := ""
	for attempt := 1; attempt <= e.config.MaxTries; attempt++ {
		ordered := e.orderRequests(requests)

		grid, err := NewGrid(e.config.Blocks, e.config.Rooms)
		if err != nil {
			return nil, err
		}

		failed := ""
		for _, req := range ordered {
			if !e.placeFirstFit(grid, req) {
				failed = req.Name
				break
			}
		}

		if failed == "" {
			return &PlacementResult{
				Grid:        grid,
				EmptyBlocks: grid.EmptyBlocks(),
				Attempts:    attempt,
			}, nil
		}
		lastFailed = failed
	}

	return nil, &PlacementError{Name: lastFailed, Attempts: e.config.MaxTries}
}

// orderRequests returns a fresh uniformly random permutation of requests,
// re-sorted by the configured strategy. The sort is stable so requests of
// equal length keep their randomized relative order, which matters for
// reproducibility under a fixed seed.
func (e *SchedulerEngine) orderRequests(requests []SessionRequest) []SessionRequest {
	ordered := make([]SessionRequest, len(requests))
	copy(ordered, requests)
	e.rng.Shuffle(len(ordered), func(i, j int) {
		ordered[i], ordered[j] = ordered[j], ordered[i]
	})

	switch e.config.SortStrategy {
	case LargestFirst:
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].Length > ordered[j].Length
		})
	case SmallestFirst:
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].Length < ordered[j].Length
		})
	}
	// AsIs keeps the shuffled order untouched.

	return ordered
}

// placeFirstFit seats one request into the grid, preferring earlier blocks
// and trying rooms in a fresh random order within each start block. It
// writes only into a verified-free run, so overlap freedom is structural.
// Returns false when no candidate run is free.
func (e *SchedulerEngine) placeFirstFit(grid *Grid, req SessionRequest) bool {
	for _, c := range e.enumerateCandidates(grid, req.Length) {
		if grid.RunFree(c.startBlock, c.room, req.Length) {
			grid.Occupy(c.startBlock, c.room, req.Length, req.Name)
			return true
		}
	}
	return false
}

// enumerateCandidates builds every (startBlock, room) pair where a run of
// length blocks fits the block dimension, in increasing startBlock order
// with an independent room shuffle per start block.
func (e *SchedulerEngine) enumerateCandidates(grid *Grid, length int) []candidate {
	if length < 1 || length > grid.BlockCount {
		return nil
	}

	candidates := make([]candidate, 0, (grid.BlockCount-length+1)*grid.RoomCount)
	for start := 0; start <= grid.BlockCount-length; start++ {
		rooms := e.rng.Perm(grid.RoomCount)
		for _, room := range rooms {
			candidates = append(candidates, candidate{startBlock: start, room: room})
		}
	}
	return candidates
}

// SourceForPermutation derives an independent deterministic random source
// for one run of a multi-permutation batch, so generating N schedules stays
// reproducible without shared state between runs.
func SourceForPermutation(seed int64, index int) *rand.Rand {
	derived := uint64(seed) ^ (uint64(index)+1)*0x9E3779B97F4A7C15
	return rand.New(rand.NewSource(int64(derived)))
}
