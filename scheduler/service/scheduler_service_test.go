package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/wricardo/conference-scheduler/scheduler/engine"
	"github.com/wricardo/conference-scheduler/scheduler/service"
)

// MockRunManager implements service.RunManager for testing
type MockRunManager struct {
	runs map[string]*service.Run
}

func NewMockRunManager() *MockRunManager {
	return &MockRunManager{
		runs: make(map[string]*service.Run),
	}
}

func (m *MockRunManager) Create(id string, config *engine.ScheduleConfig) (*service.Run, error) {
	// Generate ID if empty (mimics real run manager behavior)
	if id == "" {
		id = fmt.Sprintf("test_%d", len(m.runs)+1)
	}

	if _, exists := m.runs[id]; exists {
		return nil, errors.New("run already exists")
	}

	eng, err := engine.NewEngine(config)
	if err != nil {
		return nil, err
	}

	run := &service.Run{
		ID:             id,
		Engine:         eng,
		Config:         config,
		State:          &engine.ScheduleState{ConfigName: config.Name},
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}

	m.runs[id] = run
	return run, nil
}

func (m *MockRunManager) Get(id string) (*service.Run, error) {
	run, exists := m.runs[id]
	if !exists {
		return nil, errors.New("run not found")
	}
	return run, nil
}

func (m *MockRunManager) List() []*service.Run {
	result := make([]*service.Run, 0, len(m.runs))
	for _, run := range m.runs {
		result = append(result, run)
	}
	return result
}

func (m *MockRunManager) Delete(id string) error {
	if _, exists := m.runs[id]; !exists {
		return errors.New("run not found")
	}
	delete(m.runs, id)
	return nil
}

func (m *MockRunManager) UpdateLastAccessed(id string) error {
	if run, exists := m.runs[id]; exists {
		run.LastAccessedAt = time.Now()
		return nil
	}
	return errors.New("run not found")
}

func (m *MockRunManager) Save(id string) error {
	if _, exists := m.runs[id]; !exists {
		return errors.New("run not found")
	}
	// Mock save - in real implementation this would persist to disk
	return nil
}

// MockConfigManager implements service.ConfigManager for testing
type MockConfigManager struct {
	configs map[string]*engine.ScheduleConfig
}

func NewMockConfigManager() *MockConfigManager {
	seed := int64(42)
	defaultConfig := &engine.ScheduleConfig{
		Name:         "test",
		Description:  "Test configuration",
		Blocks:       5,
		Rooms:        8,
		MaxTries:     200,
		SortStrategy: engine.LargestFirst,
		RandomSeed:   &seed,
		Primary:      engine.ClassSettings{NameColumn: 0, LengthColumn: 1, MaxLength: 3},
		Fill:         engine.ClassSettings{NameColumn: 0, LengthColumn: 1, MaxLength: 1},
	}

	return &MockConfigManager{
		configs: map[string]*engine.ScheduleConfig{
			"test": defaultConfig,
		},
	}
}

func (m *MockConfigManager) LoadConfig(name string) (*engine.ScheduleConfig, error) {
	config, exists := m.configs[name]
	if !exists {
		return nil, errors.New("configuration not found")
	}
	return config, nil
}

func (m *MockConfigManager) ListConfigs() ([]*service.ConfigInfo, error) {
	result := make([]*service.ConfigInfo, 0, len(m.configs))
	for id, config := range m.configs {
		result = append(result, &service.ConfigInfo{
			Filename:     id + ".json",
			ConfigID:     id,
			Name:         config.Name,
			Description:  config.Description,
			Blocks:       config.Blocks,
			Rooms:        config.Rooms,
			MaxTries:     config.MaxTries,
			SortStrategy: config.SortStrategy,
		})
	}
	return result, nil
}

func (m *MockConfigManager) GetDefault() *engine.ScheduleConfig {
	return m.configs["test"]
}

func (m *MockConfigManager) SaveConfig(name string, config *engine.ScheduleConfig) error {
	if err := engine.ValidateScheduleConfig(config); err != nil {
		return err
	}
	m.configs[name] = config
	return nil
}

func newTestService() service.SchedulerService {
	return service.NewSchedulerService(NewMockRunManager(), NewMockConfigManager())
}

func TestSchedulerService_CreateRun(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	t.Run("with named config", func(t *testing.T) {
		info, err := svc.CreateRun(ctx, "test")
		if err != nil {
			t.Fatalf("Failed to create run: %v", err)
		}
		if info.ID == "" {
			t.Error("Expected run ID to be set")
		}
		if info.ConfigName != "test" {
			t.Errorf("Expected config name 'test', got '%s'", info.ConfigName)
		}
		if info.State == nil {
			t.Error("Expected state to be initialized")
		}
	})

	t.Run("with default config", func(t *testing.T) {
		info, err := svc.CreateRun(ctx, "")
		if err != nil {
			t.Fatalf("Failed to create run: %v", err)
		}
		if info.Config.Blocks != 5 || info.Config.Rooms != 8 {
			t.Errorf("Expected default 5x8 config, got %dx%d", info.Config.Blocks, info.Config.Rooms)
		}
	})

	t.Run("with unknown config", func(t *testing.T) {
		_, err := svc.CreateRun(ctx, "unknown")
		if err == nil {
			t.Error("Expected error for unknown config")
		}
	})
}

func TestSchedulerService_PlacePrimary(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	info, err := svc.CreateRun(ctx, "test")
	if err != nil {
		t.Fatalf("Failed to create run: %v", err)
	}

	t.Run("successful placement", func(t *testing.T) {
		result, err := svc.PlacePrimary(ctx, info.ID, []engine.SessionRequest{
			{Name: "Security WG", Length: 3},
			{Name: "Privacy WG", Length: 2},
			{Name: "IoT WG", Length: 1},
		})
		if err != nil {
			t.Fatalf("PlacePrimary failed: %v", err)
		}
		if !result.Success {
			t.Error("Expected successful placement")
		}
		if result.State.Grid == nil {
			t.Fatal("Expected grid on state")
		}
		if result.State.Grid.FilledCells() != 6 {
			t.Errorf("Expected 6 filled cells, got %d", result.State.Grid.FilledCells())
		}
		if result.Attempts < 1 {
			t.Errorf("Expected at least one attempt, got %d", result.Attempts)
		}
	})

	t.Run("capacity overflow", func(t *testing.T) {
		oversized := make([]engine.SessionRequest, 20)
		for i := range oversized {
			oversized[i] = engine.SessionRequest{Name: fmt.Sprintf("WG %d", i), Length: 3}
		}
		_, err := svc.PlacePrimary(ctx, info.ID, oversized)
		if err == nil {
			t.Fatal("Expected capacity error")
		}
		if !service.IsCapacityError(err) {
			t.Errorf("Expected capacity error, got %v", err)
		}
	})

	t.Run("unknown run", func(t *testing.T) {
		_, err := svc.PlacePrimary(ctx, "missing", nil)
		if err == nil {
			t.Error("Expected error for unknown run")
		}
	})
}

func TestSchedulerService_PlaceFill(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	info, err := svc.CreateRun(ctx, "test")
	if err != nil {
		t.Fatalf("Failed to create run: %v", err)
	}

	if _, err := svc.PlacePrimary(ctx, info.ID, []engine.SessionRequest{
		{Name: "Security WG", Length: 3},
	}); err != nil {
		t.Fatalf("PlacePrimary failed: %v", err)
	}

	t.Run("fill into remaining space", func(t *testing.T) {
		outcome, err := svc.PlaceFill(ctx, info.ID, []engine.SessionRequest{
			{Name: "IoT BOF", Length: 1},
			{Name: "Crypto BOF", Length: 1},
		})
		if err != nil {
			t.Fatalf("PlaceFill failed: %v", err)
		}
		if len(outcome.Leftover) != 0 {
			t.Errorf("Expected no leftover, got %v", outcome.Leftover)
		}
		if outcome.State.FilledCells != 5 {
			t.Errorf("Expected 5 filled cells, got %d", outcome.State.FilledCells)
		}
	})

	t.Run("leftover is data not error", func(t *testing.T) {
		// 40-cell grid already has 5 filled; 36 singles cannot all fit.
		many := make([]engine.SessionRequest, 36)
		for i := range many {
			many[i] = engine.SessionRequest{Name: fmt.Sprintf("BOF %d", i), Length: 1}
		}
		outcome, err := svc.PlaceFill(ctx, info.ID, many)
		if err != nil {
			t.Fatalf("PlaceFill failed: %v", err)
		}
		if len(outcome.Leftover) != 1 {
			t.Errorf("Expected 1 leftover, got %v", outcome.Leftover)
		}
		if outcome.State.FilledCells != 40 {
			t.Errorf("Expected full grid, got %d/40", outcome.State.FilledCells)
		}
	})
}

func TestSchedulerService_Generate(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	info, err := svc.CreateRun(ctx, "test")
	if err != nil {
		t.Fatalf("Failed to create run: %v", err)
	}

	t.Run("both phases", func(t *testing.T) {
		result, err := svc.Generate(ctx, info.ID,
			[]engine.SessionRequest{
				{Name: "Security WG", Length: 3},
				{Name: "Privacy WG", Length: 2},
			},
			[]engine.SessionRequest{
				{Name: "IoT BOF", Length: 1},
			})
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if !result.Success {
			t.Error("Expected successful generation")
		}
		if result.State.FilledCells != 6 {
			t.Errorf("Expected 6 filled cells, got %d", result.State.FilledCells)
		}
		if len(result.Leftover) != 0 {
			t.Errorf("Expected no leftover, got %v", result.Leftover)
		}
	})

	t.Run("combined capacity gate", func(t *testing.T) {
		primary := make([]engine.SessionRequest, 13)
		for i := range primary {
			primary[i] = engine.SessionRequest{Name: fmt.Sprintf("WG %d", i), Length: 3}
		}
		fill := make([]engine.SessionRequest, 2)
		for i := range fill {
			fill[i] = engine.SessionRequest{Name: fmt.Sprintf("BOF %d", i), Length: 1}
		}
		// 39 primary + 2 fill = 41 > 40, even though primary alone fits
		_, err := svc.Generate(ctx, info.ID, primary, fill)
		if err == nil {
			t.Fatal("Expected capacity error for combined demand")
		}
		if !service.IsCapacityError(err) {
			t.Errorf("Expected capacity error, got %v", err)
		}
	})
}

func TestSchedulerService_GetStateAndReport(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	info, err := svc.CreateRun(ctx, "test")
	if err != nil {
		t.Fatalf("Failed to create run: %v", err)
	}

	t.Run("empty grid before placement", func(t *testing.T) {
		grid, err := svc.GetGrid(ctx, info.ID)
		if err != nil {
			t.Fatalf("GetGrid failed: %v", err)
		}
		if grid.FilledCells() != 0 {
			t.Errorf("Expected empty grid, got %d filled", grid.FilledCells())
		}
	})

	if _, err := svc.PlacePrimary(ctx, info.ID, []engine.SessionRequest{
		{Name: "Security WG", Length: 2},
	}); err != nil {
		t.Fatalf("PlacePrimary failed: %v", err)
	}

	t.Run("state reflects placement", func(t *testing.T) {
		state, err := svc.GetState(ctx, info.ID)
		if err != nil {
			t.Fatalf("GetState failed: %v", err)
		}
		if state.FilledCells != 2 {
			t.Errorf("Expected 2 filled cells, got %d", state.FilledCells)
		}
		if state.PrimaryPlaced != 1 {
			t.Errorf("Expected 1 primary placed, got %d", state.PrimaryPlaced)
		}
	})

	t.Run("report summarizes grid", func(t *testing.T) {
		summary, err := svc.Report(ctx, info.ID)
		if err != nil {
			t.Fatalf("Report failed: %v", err)
		}
		if summary.Filled != 2 {
			t.Errorf("Expected 2 filled slots in report, got %d", summary.Filled)
		}
		if summary.Label != info.ID {
			t.Errorf("Expected report label %q, got %q", info.ID, summary.Label)
		}
		if len(summary.Sessions) != 1 || summary.Sessions[0].Name != "Security WG" {
			t.Errorf("Unexpected sessions in report: %v", summary.Sessions)
		}
	})
}

func TestSchedulerService_ListAndDelete(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	first, _ := svc.CreateRun(ctx, "test")
	second, _ := svc.CreateRun(ctx, "test")

	runs, err := svc.ListRuns(ctx)
	if err != nil {
		t.Fatalf("ListRuns failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("Expected 2 runs, got %d", len(runs))
	}

	if err := svc.DeleteRun(ctx, first.ID); err != nil {
		t.Fatalf("DeleteRun failed: %v", err)
	}

	runs, _ = svc.ListRuns(ctx)
	if len(runs) != 1 || runs[0].ID != second.ID {
		t.Errorf("Expected only run %s to remain, got %v", second.ID, runs)
	}
}

func TestSchedulerService_Configs(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	t.Run("list configs", func(t *testing.T) {
		configs, err := svc.ListConfigs(ctx)
		if err != nil {
			t.Fatalf("ListConfigs failed: %v", err)
		}
		if len(configs) != 1 || configs[0].ConfigID != "test" {
			t.Errorf("Unexpected configs: %v", configs)
		}
	})

	t.Run("save and load config", func(t *testing.T) {
		config := &engine.ScheduleConfig{
			Name:         "custom",
			Description:  "Custom layout",
			Blocks:       6,
			Rooms:        10,
			MaxTries:     1000,
			SortStrategy: engine.SmallestFirst,
			Primary:      engine.ClassSettings{NameColumn: 0, LengthColumn: 1, MaxLength: 4},
			Fill:         engine.ClassSettings{NameColumn: 0, LengthColumn: 1, MaxLength: 2},
		}
		if err := svc.SaveConfig(ctx, "custom", config); err != nil {
			t.Fatalf("SaveConfig failed: %v", err)
		}

		loaded, err := svc.LoadConfig(ctx, "custom")
		if err != nil {
			t.Fatalf("LoadConfig failed: %v", err)
		}
		if loaded.Blocks != 6 || loaded.Rooms != 10 {
			t.Errorf("Expected 6x10 config, got %dx%d", loaded.Blocks, loaded.Rooms)
		}
	})
}
