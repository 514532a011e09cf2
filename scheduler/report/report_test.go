package report

import (
	"reflect"
	"strings"
	"testing"

	"github.com/wricardo/conference-scheduler/scheduler/engine"
)

func TestBuild(t *testing.T) {
	grid, err := engine.NewGrid(5, 8)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	grid.Occupy(0, 0, 3, "Security WG")
	grid.Occupy(0, 1, 2, "Privacy WG")
	grid.Occupy(4, 7, 1, "IoT BOF")

	summary := Build(grid)

	if summary.Capacity != 40 {
		t.Errorf("Expected capacity 40, got %d", summary.Capacity)
	}
	if summary.Filled != 6 {
		t.Errorf("Expected 6 filled slots, got %d", summary.Filled)
	}

	want := []SessionUsage{
		{Name: "IoT BOF", Slots: 1},
		{Name: "Privacy WG", Slots: 2},
		{Name: "Security WG", Slots: 3},
	}
	if !reflect.DeepEqual(summary.Sessions, want) {
		t.Errorf("Sessions = %v, want %v", summary.Sessions, want)
	}
}

func TestSummary_Percentage(t *testing.T) {
	s := &Summary{Capacity: 40, Filled: 39}
	if got := s.Percentage(); got != 97.5 {
		t.Errorf("Percentage() = %v, want 97.5", got)
	}

	empty := &Summary{}
	if got := empty.Percentage(); got != 0 {
		t.Errorf("Percentage() on zero capacity = %v, want 0", got)
	}
}

func TestSummary_String(t *testing.T) {
	grid, err := engine.NewGrid(2, 2)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	grid.Occupy(0, 0, 2, "Security WG")
	grid.Occupy(0, 1, 1, "IoT BOF")

	summary := Build(grid)
	summary.Label = "schedule.csv"
	out := summary.String()

	if !strings.HasPrefix(out, "Schedule: schedule.csv\n") {
		t.Errorf("Expected label line first, got %q", out)
	}
	if !strings.Contains(out, "3/4 slots filled (75.0%)") {
		t.Errorf("Expected utilization line, got %q", out)
	}
	if !strings.Contains(out, "IoT BOF: 1 slot\n") {
		t.Errorf("Expected singular slot wording, got %q", out)
	}
	if !strings.Contains(out, "Security WG: 2 slots\n") {
		t.Errorf("Expected plural slots wording, got %q", out)
	}
}

func TestSummary_String_EmptyGrid(t *testing.T) {
	grid, err := engine.NewGrid(2, 2)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	out := Build(grid).String()
	if out != "0/4 slots filled (0.0%)\n" {
		t.Errorf("Unexpected empty-grid report: %q", out)
	}
}
