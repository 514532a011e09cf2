// Package websocket provides WebSocket transport for the conference scheduler.
//
// The websocket package implements:
//   - Real-time state streaming for scheduling runs
//   - Run-aware WebSocket connections
//   - Automatic state broadcasting on changes
//   - Connection lifecycle management
//   - Message routing and handling
//
// Architecture:
//
// The package uses a hub-and-spoke model where a central Hub manages all
// WebSocket connections. Each client connection is handled by a dedicated
// goroutine that manages reading, writing, and cleanup.
//
// Message Protocol:
//
// Messages are JSON-encoded with the following structure:
//   - Outgoing: {run_id: "ab12", state: {...}, event: "state_update"}
//   - Custom events carry an event name and an arbitrary data payload
//
// Run Integration:
//
// WebSocket connections are run-aware. Clients specify the run they want to
// watch via query parameter (?run=ab12) when establishing the connection.
// State updates are broadcast only to clients watching the same run.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//
//	// after a placement or fill operation completes:
//	hub.BroadcastToRun(runID, state)
//
// Connection Lifecycle:
//
// 1. Client connects with a run ID
// 2. Connection registered with hub
// 3. Client receives state updates as scheduling operations run
// 4. Disconnection triggers cleanup
//
// Concurrency:
//
// The hub and client handlers are designed for concurrent operation.
// Multiple clients can connect, disconnect, and receive messages
// simultaneously without blocking each other.
package websocket
