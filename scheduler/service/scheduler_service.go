package service

import (
	"context"

	"github.com/wricardo/conference-scheduler/scheduler/engine"
	"github.com/wricardo/conference-scheduler/scheduler/report"
)

// SchedulerService defines all scheduling operations
type SchedulerService interface {
	// Run Management
	CreateRun(ctx context.Context, configName string) (*RunInfo, error)
	GetRun(ctx context.Context, runID string) (*RunInfo, error)
	ListRuns(ctx context.Context) ([]*RunInfo, error)
	DeleteRun(ctx context.Context, runID string) error

	// Scheduling Operations
	PlacePrimary(ctx context.Context, runID string, requests []engine.SessionRequest) (*PlaceResult, error)
	PlaceFill(ctx context.Context, runID string, requests []engine.SessionRequest) (*FillOutcome, error)
	Generate(ctx context.Context, runID string, primary, fill []engine.SessionRequest) (*GenerateResult, error)

	// Run State
	GetState(ctx context.Context, runID string) (*engine.ScheduleState, error)
	GetGrid(ctx context.Context, runID string) (*engine.Grid, error)
	Report(ctx context.Context, runID string) (*report.Summary, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.ScheduleConfig, error)
	SaveConfig(ctx context.Context, configName string, config *engine.ScheduleConfig) error
}

// RunManager defines run storage operations
type RunManager interface {
	Create(id string, config *engine.ScheduleConfig) (*Run, error)
	Get(id string) (*Run, error)
	List() []*Run
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// ConfigManager handles schedule configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.ScheduleConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.ScheduleConfig
	SaveConfig(name string, config *engine.ScheduleConfig) error
}
