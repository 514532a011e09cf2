package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/wricardo/conference-scheduler/scheduler/engine"
	"github.com/wricardo/conference-scheduler/scheduler/report"
)

// schedulerServiceImpl implements the SchedulerService interface
type schedulerServiceImpl struct {
	runs    RunManager
	configs ConfigManager
	mu      sync.RWMutex
}

// NewSchedulerService creates a new scheduler service instance
func NewSchedulerService(runs RunManager, configs ConfigManager) SchedulerService {
	return &schedulerServiceImpl{
		runs:    runs,
		configs: configs,
	}
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *schedulerServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	// Fallback: return as-is or "default"
	if configName == "" {
		return "default"
	}
	return configName
}

// CreateRun creates a new scheduling run
func (s *schedulerServiceImpl) CreateRun(ctx context.Context, configName string) (*RunInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Load configuration
	var config *engine.ScheduleConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			// Provide helpful error message with available options
			if strings.Contains(err.Error(), "configuration not found") {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("config '%s' not found. Available configs: %v", configName, configIDs)
				}
				return nil, fmt.Errorf("config '%s' not found. Use /api/configs to list available configurations", configName)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	// Let the run manager generate a proper 4-character ID
	run, err := s.runs.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}

	// Determine the config identifier to return - prefer the input configName if provided,
	// otherwise look up the config_id by display name
	configID := configName
	if configID == "" {
		configID = s.getConfigID(config.Name)
	}

	return &RunInfo{
		ID:             run.ID,
		ConfigName:     configID, // Return the config_id, not the display name
		CreatedAt:      run.CreatedAt,
		LastAccessedAt: run.LastAccessedAt,
		State:          run.State,
		Config:         run.Config,
	}, nil
}

// GetRun retrieves run information
func (s *schedulerServiceImpl) GetRun(ctx context.Context, runID string) (*RunInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, err := s.runs.Get(runID)
	if err != nil {
		return nil, fmt.Errorf("run not found: %w", err)
	}

	s.runs.UpdateLastAccessed(runID)

	return &RunInfo{
		ID:             run.ID,
		ConfigName:     s.getConfigID(run.Config.Name), // Return config_id consistently
		CreatedAt:      run.CreatedAt,
		LastAccessedAt: run.LastAccessedAt,
		State:          run.State,
		Config:         run.Config,
	}, nil
}

// ListRuns returns all active runs
func (s *schedulerServiceImpl) ListRuns(ctx context.Context) ([]*RunInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := s.runs.List()
	result := make([]*RunInfo, 0, len(runs))

	for _, run := range runs {
		result = append(result, &RunInfo{
			ID:             run.ID,
			ConfigName:     s.getConfigID(run.Config.Name),
			CreatedAt:      run.CreatedAt,
			LastAccessedAt: run.LastAccessedAt,
			State:          run.State,
			Config:         run.Config,
		})
	}

	return result, nil
}

// DeleteRun removes a run
func (s *schedulerServiceImpl) DeleteRun(ctx context.Context, runID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.runs.Delete(runID)
}

// PlacePrimary runs the randomized primary placement for a run and stores
// the resulting grid on the run state. A capacity overflow or exhausted
// retry budget is returned as an error carrying the typed engine error.
func (s *schedulerServiceImpl) PlacePrimary(ctx context.Context, runID string, requests []engine.SessionRequest) (*PlaceResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	run, err := s.runs.Get(runID)
	if err != nil {
		return nil, fmt.Errorf("run not found: %w", err)
	}

	s.runs.UpdateLastAccessed(runID)

	result, err := run.Engine.PlacePrimary(requests)
	if err != nil {
		return nil, err
	}

	run.State.Grid = result.Grid
	run.State.Attempts = result.Attempts
	run.State.EmptyBlocks = result.EmptyBlocks
	run.State.PrimaryPlaced = len(requests)
	run.State.FilledCells = result.Grid.FilledCells()
	run.State.Message = fmt.Sprintf("Placed %d sessions in %d attempt(s)", len(requests), result.Attempts)

	// Auto-save run after placement
	if err := s.runs.Save(runID); err != nil {
		fmt.Printf("Warning: Failed to persist run %s after placement: %v\n", runID, err)
	}

	return &PlaceResult{
		Success:     true,
		State:       run.State,
		Attempts:    result.Attempts,
		EmptyBlocks: result.EmptyBlocks,
		Message:     run.State.Message,
	}, nil
}

// PlaceFill runs the single-pass fill placement over the run's current grid.
// Requests that do not fit are reported as leftover, not as an error.
func (s *schedulerServiceImpl) PlaceFill(ctx context.Context, runID string, requests []engine.SessionRequest) (*FillOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	run, err := s.runs.Get(runID)
	if err != nil {
		return nil, fmt.Errorf("run not found: %w", err)
	}

	s.runs.UpdateLastAccessed(runID)

	result, err := run.Engine.PlaceFill(run.State.Grid, requests)
	if err != nil {
		return nil, err
	}

	placed := len(requests) - len(result.Leftover)
	run.State.Grid = result.Grid
	run.State.EmptyBlocks = result.EmptyBlocks
	run.State.Leftover = result.Leftover
	run.State.FillPlaced += placed
	run.State.FilledCells = result.Grid.FilledCells()
	if len(result.Leftover) > 0 {
		run.State.Message = fmt.Sprintf("Placed %d fill sessions, %d left over", placed, len(result.Leftover))
	} else {
		run.State.Message = fmt.Sprintf("Placed %d fill sessions", placed)
	}

	// Auto-save run after placement
	if err := s.runs.Save(runID); err != nil {
		fmt.Printf("Warning: Failed to persist run %s after fill: %v\n", runID, err)
	}

	return &FillOutcome{
		Success:     true,
		State:       run.State,
		Leftover:    result.Leftover,
		EmptyBlocks: result.EmptyBlocks,
		Message:     run.State.Message,
	}, nil
}

// Generate runs both phases in order. The combined demand is checked
// against capacity before any randomized work so an oversubscribed event
// fails before touching the run state.
func (s *schedulerServiceImpl) Generate(ctx context.Context, runID string, primary, fill []engine.SessionRequest) (*GenerateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	run, err := s.runs.Get(runID)
	if err != nil {
		return nil, fmt.Errorf("run not found: %w", err)
	}

	s.runs.UpdateLastAccessed(runID)

	combined := make([]engine.SessionRequest, 0, len(primary)+len(fill))
	combined = append(combined, primary...)
	combined = append(combined, fill...)
	if err := run.Engine.ValidateCapacity(combined); err != nil {
		return nil, err
	}

	placeResult, err := run.Engine.PlacePrimary(primary)
	if err != nil {
		return nil, err
	}

	fillResult, err := run.Engine.PlaceFill(placeResult.Grid, fill)
	if err != nil {
		return nil, err
	}

	run.State.Grid = fillResult.Grid
	run.State.Attempts = placeResult.Attempts
	run.State.EmptyBlocks = fillResult.EmptyBlocks
	run.State.Leftover = fillResult.Leftover
	run.State.PrimaryPlaced = len(primary)
	run.State.FillPlaced = len(fill) - len(fillResult.Leftover)
	run.State.FilledCells = fillResult.Grid.FilledCells()
	run.State.Message = fmt.Sprintf("Generated schedule: %d primary, %d fill, %d left over",
		len(primary), run.State.FillPlaced, len(fillResult.Leftover))

	if err := s.runs.Save(runID); err != nil {
		fmt.Printf("Warning: Failed to persist run %s after generate: %v\n", runID, err)
	}

	return &GenerateResult{
		Success:  true,
		State:    run.State,
		Attempts: placeResult.Attempts,
		Leftover: fillResult.Leftover,
		Message:  run.State.Message,
	}, nil
}

// GetState retrieves the current schedule state
func (s *schedulerServiceImpl) GetState(ctx context.Context, runID string) (*engine.ScheduleState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, err := s.runs.Get(runID)
	if err != nil {
		return nil, fmt.Errorf("run not found: %w", err)
	}

	s.runs.UpdateLastAccessed(runID)
	return run.State, nil
}

// GetGrid retrieves the current schedule grid, or an empty grid when
// nothing has been placed yet.
func (s *schedulerServiceImpl) GetGrid(ctx context.Context, runID string) (*engine.Grid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, err := s.runs.Get(runID)
	if err != nil {
		return nil, fmt.Errorf("run not found: %w", err)
	}

	s.runs.UpdateLastAccessed(runID)

	if run.State.Grid == nil {
		return engine.NewGrid(run.Config.Blocks, run.Config.Rooms)
	}
	return run.State.Grid, nil
}

// Report builds a utilization summary for the run's current grid
func (s *schedulerServiceImpl) Report(ctx context.Context, runID string) (*report.Summary, error) {
	grid, err := s.GetGrid(ctx, runID)
	if err != nil {
		return nil, err
	}

	summary := report.Build(grid)
	summary.Label = runID
	return summary, nil
}

// ListConfigs returns available schedule configurations
func (s *schedulerServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific schedule configuration
func (s *schedulerServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.ScheduleConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a schedule configuration to disk
func (s *schedulerServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.ScheduleConfig) error {
	return s.configs.SaveConfig(configName, config)
}

// IsCapacityError reports whether err wraps a capacity overflow.
func IsCapacityError(err error) bool {
	var capErr *engine.CapacityError
	return errors.As(err, &capErr)
}

// IsPlacementError reports whether err wraps an exhausted placement retry
// budget.
func IsPlacementError(err error) bool {
	var placeErr *engine.PlacementError
	return errors.As(err, &placeErr)
}
