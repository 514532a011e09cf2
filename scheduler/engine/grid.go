package engine

import "fmt"

// Grid is the occupancy matrix for one scheduling run: BlockCount rows of
// RoomCount cells, where an empty string marks a free slot and a non-empty
// string holds the occupying session name. Dimensions are fixed at creation.
type Grid struct {
	BlockCount int        `json:"blocks"`
	RoomCount  int        `json:"rooms"`
	Cells      [][]string `json:"cells"`
}

// NewGrid creates an empty grid with the given dimensions.
func NewGrid(blocks, rooms int) (*Grid, error) {
	if blocks < MinBlocks || blocks > MaxBlocks {
		return nil, fmt.Errorf("grid: blocks must be between %d and %d, got %d", MinBlocks, MaxBlocks, blocks)
	}
	if rooms < MinRooms || rooms > MaxRooms {
		return nil, fmt.Errorf("grid: rooms must be between %d and %d, got %d", MinRooms, MaxRooms, rooms)
	}

	cells := make([][]string, blocks)
	for i := range cells {
		cells[i] = make([]string, rooms)
	}

	return &Grid{
		BlockCount: blocks,
		RoomCount:  rooms,
		Cells:      cells,
	}, nil
}

// Capacity returns the total number of cells.
func (g *Grid) Capacity() int {
	return g.BlockCount * g.RoomCount
}

// InBounds reports whether (block, room) addresses a valid cell.
func (g *Grid) InBounds(block, room int) bool {
	return block >= 0 && block < g.BlockCount && room >= 0 && room < g.RoomCount
}

// At returns the occupying session name at (block, room), or the empty
// string for a free slot.
func (g *Grid) At(block, room int) (string, error) {
	if !g.InBounds(block, room) {
		return "", fmt.Errorf("grid: cell (%d, %d) out of bounds for %dx%d grid", block, room, g.BlockCount, g.RoomCount)
	}
	return g.Cells[block][room], nil
}

// IsFree reports whether the cell at (block, room) is unoccupied.
// Out-of-bounds cells are never free.
func (g *Grid) IsFree(block, room int) bool {
	return g.InBounds(block, room) && g.Cells[block][room] == ""
}

// RunFree reports whether the contiguous run of length cells starting at
// (startBlock, room) lies in bounds and is entirely unoccupied.
func (g *Grid) RunFree(startBlock, room, length int) bool {
	if length < 1 || !g.InBounds(startBlock, room) || startBlock+length > g.BlockCount {
		return false
	}
	for offset := 0; offset < length; offset++ {
		if g.Cells[startBlock+offset][room] != "" {
			return false
		}
	}
	return true
}

// Occupy writes name into the run of length cells starting at
// (startBlock, room). Every cell in the run must be free.
func (g *Grid) Occupy(startBlock, room, length int, name string) error {
	if name == "" {
		return fmt.Errorf("grid: session name cannot be empty")
	}
	if !g.RunFree(startBlock, room, length) {
		return fmt.Errorf("grid: run of %d blocks at (%d, %d) is not free", length, startBlock, room)
	}
	for offset := 0; offset < length; offset++ {
		g.Cells[startBlock+offset][room] = name
	}
	return nil
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([][]string, g.BlockCount)
	for i, row := range g.Cells {
		cells[i] = make([]string, len(row))
		copy(cells[i], row)
	}
	return &Grid{
		BlockCount: g.BlockCount,
		RoomCount:  g.RoomCount,
		Cells:      cells,
	}
}

// FilledCells counts occupied cells.
func (g *Grid) FilledCells() int {
	count := 0
	for _, row := range g.Cells {
		for _, cell := range row {
			if cell != "" {
				count++
			}
		}
	}
	return count
}

// FreeCells counts unoccupied cells.
func (g *Grid) FreeCells() int {
	return g.Capacity() - g.FilledCells()
}

// EmptyBlocks returns the indices of blocks with zero occupancy across all
// rooms, in ascending order.
func (g *Grid) EmptyBlocks() []int {
	var empty []int
	for i, row := range g.Cells {
		used := false
		for _, cell := range row {
			if cell != "" {
				used = true
				break
			}
		}
		if !used {
			empty = append(empty, i)
		}
	}
	return empty
}

// SlotCounts returns the number of occupied cells per session name.
func (g *Grid) SlotCounts() map[string]int {
	counts := make(map[string]int)
	for _, row := range g.Cells {
		for _, cell := range row {
			if cell != "" {
				counts[cell]++
			}
		}
	}
	return counts
}
