// Package run provides run management for the conference scheduler.
//
// The run package implements:
//   - Thread-safe run storage and retrieval
//   - Unique run ID generation
//   - Run lifecycle management
//   - Concurrent access control
//   - Run cleanup and expiration
//
// Core Types:
//
// Manager is the main run manager that handles all run operations.
// A run holds one scheduling engine instance plus the accumulated schedule
// state and metadata like creation time and last access time.
//
// Run Identifiers:
//
// Runs use 4-character alphanumeric IDs for easy reference. The manager
// ensures IDs are unique and provides collision-resistant generation using
// cryptographic randomness.
//
// Concurrency:
//
// The run manager is thread-safe and supports concurrent operations.
// Multiple goroutines can safely create, retrieve, and modify different
// runs simultaneously. Internal locking ensures data consistency.
//
// Usage:
//
//	manager := run.NewManager()
//
//	// Create a new run
//	r, err := manager.Create("", config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Retrieve existing run
//	r, err = manager.Get(runID)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// List all active runs
//	runs := manager.List()
//
// Cleanup:
//
// Runs can be explicitly deleted or may expire based on inactivity. The
// manager provides cleanup methods for removing stale runs and freeing
// resources.
package run
