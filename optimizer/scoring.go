package main

import (
	"fmt"
	"strings"
)

// Score ranks one generated schedule. Ordering: more filled cells win, then
// fewer leftover fill sessions, then fewer completely empty blocks, then
// fewer placement tries.
type Score struct {
	Filled      int
	Leftover    int
	EmptyBlocks int
	Tries       int
	Capacity    int
}

// ScoreState computes the score for a generated state. A nil state or a
// state without a grid scores as unusable.
func ScoreState(state *ScheduleState) Score {
	if state == nil || state.Grid == nil {
		return Score{Filled: -1}
	}
	return Score{
		Filled:      state.FilledCells,
		Leftover:    len(state.Leftover),
		EmptyBlocks: len(state.EmptyBlocks),
		Tries:       state.Attempts,
		Capacity:    state.Grid.Blocks * state.Grid.Rooms,
	}
}

// Usable reports whether the score represents a real schedule.
func (s Score) Usable() bool {
	return s.Filled >= 0
}

// Perfect reports a schedule that seats everything with no wasted blocks.
func (s Score) Perfect() bool {
	return s.Usable() && s.Leftover == 0 && s.EmptyBlocks == 0
}

// Better reports whether s ranks above other.
func (s Score) Better(other Score) bool {
	if !s.Usable() {
		return false
	}
	if !other.Usable() {
		return true
	}
	if s.Filled != other.Filled {
		return s.Filled > other.Filled
	}
	if s.Leftover != other.Leftover {
		return s.Leftover < other.Leftover
	}
	if s.EmptyBlocks != other.EmptyBlocks {
		return s.EmptyBlocks < other.EmptyBlocks
	}
	return s.Tries < other.Tries
}

func (s Score) String() string {
	return fmt.Sprintf("filled %d/%d, leftover %d, empty blocks %d, %d tries",
		s.Filled, s.Capacity, s.Leftover, s.EmptyBlocks, s.Tries)
}

// BestTracker keeps the highest-ranked state seen so far.
type BestTracker struct {
	best        *ScheduleState
	bestScore   Score
	bestAttempt int
}

func NewBestTracker() *BestTracker {
	return &BestTracker{bestScore: Score{Filled: -1}}
}

// Consider records the state when it beats the current best, returning true
// on improvement.
func (t *BestTracker) Consider(attempt int, state *ScheduleState, score Score) bool {
	if !score.Better(t.bestScore) {
		return false
	}
	t.best = state
	t.bestScore = score
	t.bestAttempt = attempt
	return true
}

func (t *BestTracker) Best() *ScheduleState { return t.best }
func (t *BestTracker) BestScore() Score     { return t.bestScore }
func (t *BestTracker) BestAttempt() int     { return t.bestAttempt }

// RenderGrid draws the schedule as a fixed-width text table with room
// columns and block rows. Free cells show "-".
func RenderGrid(grid *ScheduleGrid) string {
	if grid == nil || grid.Blocks == 0 || grid.Rooms == 0 {
		return "Empty grid\n"
	}

	width := len("Room 1")
	for _, row := range grid.Cells {
		for _, cell := range row {
			if len(cell) > width {
				width = len(cell)
			}
		}
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%-8s", ""))
	for r := 0; r < grid.Rooms; r++ {
		b.WriteString(fmt.Sprintf(" %-*s", width, fmt.Sprintf("Room %d", r+1)))
	}
	b.WriteString("\n")

	for blk, row := range grid.Cells {
		b.WriteString(fmt.Sprintf("%-8s", fmt.Sprintf("Block %d", blk+1)))
		for r := 0; r < grid.Rooms; r++ {
			cell := "-"
			if r < len(row) && row[r] != "" {
				cell = row[r]
			}
			b.WriteString(fmt.Sprintf(" %-*s", width, cell))
		}
		b.WriteString("\n")
	}
	return b.String()
}
