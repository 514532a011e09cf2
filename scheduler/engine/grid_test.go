package engine

import (
	"reflect"
	"testing"
)

func TestNewGrid(t *testing.T) {
	grid, err := NewGrid(5, 8)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	if grid.BlockCount != 5 || grid.RoomCount != 8 {
		t.Errorf("Expected 5x8 grid, got %dx%d", grid.BlockCount, grid.RoomCount)
	}
	if grid.Capacity() != 40 {
		t.Errorf("Expected capacity 40, got %d", grid.Capacity())
	}
	if grid.FilledCells() != 0 {
		t.Errorf("Expected fresh grid to be empty, got %d filled", grid.FilledCells())
	}
}

func TestNewGrid_InvalidDimensions(t *testing.T) {
	tests := []struct {
		name   string
		blocks int
		rooms  int
	}{
		{"zero blocks", 0, 8},
		{"zero rooms", 5, 0},
		{"negative blocks", -1, 8},
		{"blocks over limit", MaxBlocks + 1, 8},
		{"rooms over limit", 5, MaxRooms + 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewGrid(tt.blocks, tt.rooms); err == nil {
				t.Errorf("Expected error for %dx%d grid", tt.blocks, tt.rooms)
			}
		})
	}
}

func TestGrid_OccupyAndRunFree(t *testing.T) {
	grid, err := NewGrid(5, 8)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}

	if !grid.RunFree(1, 3, 3) {
		t.Error("Expected run to be free on an empty grid")
	}
	if err := grid.Occupy(1, 3, 3, "WG A"); err != nil {
		t.Fatalf("Occupy failed: %v", err)
	}
	for b := 1; b <= 3; b++ {
		if got, _ := grid.At(b, 3); got != "WG A" {
			t.Errorf("Expected cell (%d,3) to hold WG A, got %q", b, got)
		}
	}

	if grid.RunFree(0, 3, 2) {
		t.Error("Expected overlapping run to be reported as taken")
	}
	if grid.RunFree(3, 3, 3) {
		t.Error("Expected run past the last block to be reported as taken")
	}
	if err := grid.Occupy(2, 3, 1, "WG B"); err == nil {
		t.Error("Expected Occupy over a taken cell to fail")
	}
	if err := grid.Occupy(0, 0, 1, ""); err == nil {
		t.Error("Expected Occupy with an empty name to fail")
	}
	if err := grid.Occupy(4, 0, 2, "WG C"); err == nil {
		t.Error("Expected Occupy past the grid edge to fail")
	}
}

func TestGrid_AtBounds(t *testing.T) {
	grid, err := NewGrid(2, 2)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	if _, err := grid.At(2, 0); err == nil {
		t.Error("Expected error reading block out of range")
	}
	if _, err := grid.At(0, -1); err == nil {
		t.Error("Expected error reading room out of range")
	}
}

func TestGrid_Clone(t *testing.T) {
	grid, err := NewGrid(3, 3)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	if err := grid.Occupy(0, 0, 2, "WG A"); err != nil {
		t.Fatalf("Occupy failed: %v", err)
	}

	clone := grid.Clone()
	if !reflect.DeepEqual(grid, clone) {
		t.Error("Expected clone to equal the original")
	}

	clone.Cells[2][2] = "WG B"
	if got, _ := grid.At(2, 2); got != "" {
		t.Errorf("Expected original to be unaffected by clone writes, got %q", got)
	}
}

func TestGrid_EmptyBlocks(t *testing.T) {
	grid, err := NewGrid(4, 2)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	if err := grid.Occupy(0, 0, 1, "WG A"); err != nil {
		t.Fatalf("Occupy failed: %v", err)
	}
	if err := grid.Occupy(2, 1, 1, "WG B"); err != nil {
		t.Fatalf("Occupy failed: %v", err)
	}
	if got := grid.EmptyBlocks(); !reflect.DeepEqual(got, []int{1, 3}) {
		t.Errorf("Expected empty blocks [1 3], got %v", got)
	}
}

func TestGrid_SlotCounts(t *testing.T) {
	grid, err := NewGrid(4, 2)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	grid.Occupy(0, 0, 3, "WG A")
	grid.Occupy(0, 1, 1, "WG B")

	counts := grid.SlotCounts()
	if counts["WG A"] != 3 || counts["WG B"] != 1 {
		t.Errorf("Unexpected slot counts: %v", counts)
	}
	if grid.FreeCells() != 4 {
		t.Errorf("Expected 4 free cells, got %d", grid.FreeCells())
	}
}
