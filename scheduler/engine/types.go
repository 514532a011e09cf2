package engine

import "fmt"

// SortStrategy controls how a shuffled request list is re-ordered before
// placement.
type SortStrategy string

const (
	LargestFirst  SortStrategy = "largest_first"
	SmallestFirst SortStrategy = "smallest_first"
	AsIs          SortStrategy = "as_is"

	// Validation constants
	MinBlocks       = 1
	MaxBlocks       = 96
	MinRooms        = 1
	MaxRooms        = 64
	MinMaxTries     = 1
	DefaultMaxTries = 5000
	MaxPermutations = 100
)

// SessionRequest is a named demand for a contiguous run of blocks in a
// single room. Immutable once read from input.
type SessionRequest struct {
	Name   string `json:"name"`
	Length int    `json:"length"`
}

// ClassSettings describes how one request class (primary or fill) is read
// from delimited input: zero-based column indices and the length cap applied
// before requests reach the placement engine.
type ClassSettings struct {
	NameColumn   int `json:"name_column"`
	LengthColumn int `json:"length_column"`
	MaxLength    int `json:"max_length"`
}

// ScheduleConfig defines the grid dimensions and algorithm parameters for
// one scheduling run, loaded from JSON files.
type ScheduleConfig struct {
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Blocks       int           `json:"blocks"`
	Rooms        int           `json:"rooms"`
	MaxTries     int           `json:"max_tries"`
	SortStrategy SortStrategy  `json:"sort_strategy"`
	RandomSeed   *int64        `json:"random_seed,omitempty"`
	Primary      ClassSettings `json:"primary"`
	Fill         ClassSettings `json:"fill"`
}

// Capacity returns the total number of grid cells the config describes.
func (c *ScheduleConfig) Capacity() int {
	return c.Blocks * c.Rooms
}

// PlacementResult is the outcome of a successful primary placement run.
// The grid must be treated as immutable once returned.
type PlacementResult struct {
	Grid        *Grid `json:"grid"`
	EmptyBlocks []int `json:"empty_blocks"`
	Attempts    int   `json:"attempts"`
}

// FillResult is the outcome of a fill pass. Leftover holds the names of
// requests that could not be seated, in submission order; it is data, not
// an error, because callers may want partial success semantics.
type FillResult struct {
	Grid        *Grid    `json:"grid"`
	Leftover    []string `json:"leftover"`
	EmptyBlocks []int    `json:"empty_blocks"`
}

// ScheduleState is the accumulated result of the placement phases run so
// far, suitable for persistence and transport.
type ScheduleState struct {
	Grid          *Grid    `json:"grid"`
	Attempts      int      `json:"attempts"`
	EmptyBlocks   []int    `json:"empty_blocks"`
	Leftover      []string `json:"leftover"`
	PrimaryPlaced int      `json:"primary_placed"`
	FillPlaced    int      `json:"fill_placed"`
	FilledCells   int      `json:"filled_cells"`
	ConfigName    string   `json:"config_name"`
	Message       string   `json:"message"`
}

// CapacityError reports aggregate demand exceeding total grid capacity.
// It is raised before any placement attempt since no amount of retrying
// can succeed.
type CapacityError struct {
	Requested int
	Capacity  int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("capacity exceeded: requested %d blocks, capacity %d", e.Requested, e.Capacity)
}

// PlacementError reports a primary request that could not be seated in any
// of the configured attempts.
type PlacementError struct {
	Name     string
	Attempts int
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("could not place %q after %d attempts", e.Name, e.Attempts)
}
