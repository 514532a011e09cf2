// Package service provides the business logic layer for the conference
// scheduler.
//
// The service package implements:
//   - Multi-run schedule management
//   - Configuration management and loading
//   - Placement processing and validation
//   - Run lifecycle management
//   - Utilization reporting
//
// Core Interfaces:
//
// SchedulerService is the main service interface providing high-level
// scheduling operations. RunManager handles run creation, retrieval, and
// lifecycle. ConfigManager manages schedule configuration loading and
// validation.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP)
// and the placement engine, providing run isolation, configuration
// management, and business logic orchestration. Each run maintains its own
// engine instance with an independent schedule state.
//
// Usage:
//
//	runMgr := run.NewManager()
//	configMgr := config.NewManager("configs")
//	schedService := service.NewSchedulerService(runMgr, configMgr)
//
//	// Create a new run
//	runInfo, err := schedService.CreateRun(ctx, "classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Place primary sessions
//	result, err := schedService.PlacePrimary(ctx, runInfo.ID, requests)
//
// Run Management:
//
// Runs are identified by unique 4-character IDs and maintain independent
// schedule state. Multiple runs can proceed concurrently with different
// configurations. Runs track creation time and last access time for
// cleanup and debugging.
package service
