package service

import (
	"time"

	"github.com/wricardo/conference-scheduler/scheduler/engine"
)

// RunInfo provides information about a scheduling run
type RunInfo struct {
	ID             string                 `json:"id"`
	ConfigName     string                 `json:"config_name"`
	CreatedAt      time.Time              `json:"created_at"`
	LastAccessedAt time.Time              `json:"last_accessed_at"`
	State          *engine.ScheduleState  `json:"state"`
	Config         *engine.ScheduleConfig `json:"config"`
}

// PlaceResult contains the result of a primary placement operation
type PlaceResult struct {
	Success     bool                  `json:"success"`
	State       *engine.ScheduleState `json:"state"`
	Attempts    int                   `json:"attempts"`
	EmptyBlocks []int                 `json:"empty_blocks"`
	Message     string                `json:"message"`
}

// FillOutcome contains the result of a fill operation. Leftover is data,
// not an error: a partially filled schedule is still a usable schedule.
type FillOutcome struct {
	Success     bool                  `json:"success"`
	State       *engine.ScheduleState `json:"state"`
	Leftover    []string              `json:"leftover"`
	EmptyBlocks []int                 `json:"empty_blocks"`
	Message     string                `json:"message"`
}

// GenerateResult contains the result of a combined primary+fill generation
type GenerateResult struct {
	Success  bool                  `json:"success"`
	State    *engine.ScheduleState `json:"state"`
	Attempts int                   `json:"attempts"`
	Leftover []string              `json:"leftover"`
	Message  string                `json:"message"`
}

// ConfigInfo provides information about a schedule configuration
type ConfigInfo struct {
	Filename     string              `json:"filename"`
	ConfigID     string              `json:"config_id"` // The identifier to use for run creation
	Name         string              `json:"name"`      // Display name
	Description  string              `json:"description"`
	Blocks       int                 `json:"blocks"`
	Rooms        int                 `json:"rooms"`
	MaxTries     int                 `json:"max_tries"`
	SortStrategy engine.SortStrategy `json:"sort_strategy"`
}

// Run represents an active scheduling run
type Run struct {
	ID             string
	Engine         engine.Engine
	Config         *engine.ScheduleConfig
	State          *engine.ScheduleState
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
