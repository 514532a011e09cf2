// Package mcp provides a Model Context Protocol interface for the conference scheduler.
//
// The mcp package implements:
//   - MCP server for AI agent integration
//   - Tool definitions for scheduling operations
//   - Run-aware command execution
//   - Stdio and HTTP transport modes
//
// MCP Tools:
//
// The package exposes the following tools for AI agents:
//   - create_run: Create new scheduling run with config selection
//   - list_runs: List all active runs
//   - get_run: Get specific run details
//   - delete_run: Delete a run
//   - place_sessions: Place primary sessions with randomized retries
//   - fill_sessions: Fill remaining slots in a single pass
//   - generate_schedule: Place primary then fill in one call
//   - get_state: Get current schedule state with grid visualization
//   - get_grid: Render the schedule grid as a table
//   - schedule_report: Get the utilization summary
//   - list_configs: List available schedule configurations
//
// Transport Modes:
//
// The server supports two transport modes:
//   - Stdio: Direct stdio communication for local MCP clients
//   - HTTP: HTTP endpoint for remote MCP integration
//
// Architecture:
//
// The MCP client is a thin proxy: every tool call is translated into a
// REST API request against the scheduler server, and the JSON response is
// rendered as readable text. The MCP process holds no scheduling state of
// its own, so stdio clients and HTTP clients always observe the same runs.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
//
// AI Integration:
//
// The MCP interface enables AI agents to:
//   - Create and manage scheduling runs
//   - Submit session demands and inspect placements
//   - Retry randomized placement with different configs
//   - Compare utilization across runs
package mcp
