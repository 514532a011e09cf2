package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/wricardo/conference-scheduler/scheduler/engine"
)

// SessionUsage is the slot count for one named session.
type SessionUsage struct {
	Name  string `json:"name"`
	Slots int    `json:"slots"`
}

// Summary describes how a schedule grid is utilized. Sessions are sorted
// alphabetically by name.
type Summary struct {
	Label    string         `json:"label,omitempty"`
	Blocks   int            `json:"blocks"`
	Rooms    int            `json:"rooms"`
	Capacity int            `json:"capacity"`
	Filled   int            `json:"filled"`
	Sessions []SessionUsage `json:"sessions"`
}

// Build computes a utilization summary for the given grid.
func Build(grid *engine.Grid) *Summary {
	counts := grid.SlotCounts()

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	sessions := make([]SessionUsage, 0, len(names))
	filled := 0
	for _, name := range names {
		sessions = append(sessions, SessionUsage{Name: name, Slots: counts[name]})
		filled += counts[name]
	}

	return &Summary{
		Blocks:   grid.BlockCount,
		Rooms:    grid.RoomCount,
		Capacity: grid.Capacity(),
		Filled:   filled,
		Sessions: sessions,
	}
}

// Percentage returns the filled fraction as a percentage, 0 for an empty
// capacity.
func (s *Summary) Percentage() float64 {
	if s.Capacity == 0 {
		return 0
	}
	return float64(s.Filled) / float64(s.Capacity) * 100
}

// String renders the summary as the plain-text report format:
//
//	Schedule: schedule.csv
//	39/40 slots filled (97.5%)
//
//	Privacy WG: 2 slots
//	Security WG: 3 slots
func (s *Summary) String() string {
	var b strings.Builder
	if s.Label != "" {
		fmt.Fprintf(&b, "Schedule: %s\n", s.Label)
	}
	fmt.Fprintf(&b, "%d/%d slots filled (%.1f%%)\n", s.Filled, s.Capacity, s.Percentage())
	if len(s.Sessions) > 0 {
		b.WriteString("\n")
	}
	for _, session := range s.Sessions {
		word := "slots"
		if session.Slots == 1 {
			word = "slot"
		}
		fmt.Fprintf(&b, "%s: %d %s\n", session.Name, session.Slots, word)
	}
	return b.String()
}
