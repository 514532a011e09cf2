package engine

import (
	"fmt"
	"math/rand"
	"time"
)

// Engine provides the main interface for scheduling operations
type Engine interface {
	// Capacity gate, run before any placement work
	ValidateCapacity(requests []SessionRequest) error

	// Placement phases
	PlacePrimary(requests []SessionRequest) (*PlacementResult, error)
	PlaceFill(grid *Grid, requests []SessionRequest) (*FillResult, error)

	// Configuration
	GetConfig() *ScheduleConfig
}

// SchedulerEngine implements the Engine interface. It holds the immutable
// run configuration and the random source all placement decisions draw
// from; it never mutates a grid it has already returned.
type SchedulerEngine struct {
	config *ScheduleConfig
	rng    *rand.Rand
}

// NewEngine creates a new scheduler engine with the provided configuration.
// When the config carries a random seed the engine is fully deterministic;
// otherwise it seeds from the clock.
func NewEngine(config *ScheduleConfig) (*SchedulerEngine, error) {
	if err := ValidateScheduleConfig(config); err != nil {
		return nil, err
	}

	var rng *rand.Rand
	if config.RandomSeed != nil {
		rng = rand.New(rand.NewSource(*config.RandomSeed))
	} else {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &SchedulerEngine{
		config: config,
		rng:    rng,
	}, nil
}

// NewEngineWithSource creates a scheduler engine drawing from an explicit
// random source, overriding any seed in the configuration.
func NewEngineWithSource(config *ScheduleConfig, rng *rand.Rand) (*SchedulerEngine, error) {
	if err := ValidateScheduleConfig(config); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("engine: random source cannot be nil")
	}

	return &SchedulerEngine{
		config: config,
		rng:    rng,
	}, nil
}

// GetConfig returns the engine's schedule configuration.
func (e *SchedulerEngine) GetConfig() *ScheduleConfig {
	return e.config
}

// ValidateCapacity checks that aggregate demand fits the grid before any
// randomized work begins. It has no side effects.
func (e *SchedulerEngine) ValidateCapacity(requests []SessionRequest) error {
	total := 0
	for _, req := range requests {
		total += req.Length
	}

	if capacity := e.config.Capacity(); total > capacity {
		return &CapacityError{Requested: total, Capacity: capacity}
	}
	return nil
}
