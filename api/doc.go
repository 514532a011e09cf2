// Package api provides HTTP REST API handlers for the conference scheduler.
//
// The api package implements:
//   - RESTful endpoints for scheduling operations
//   - Run management endpoints
//   - Configuration listing and creation
//   - Schedule report rendering
//   - WebSocket upgrade handling
//   - Static file serving
//
// Endpoints:
//
// Run Management:
//   - POST /api/runs - Create new scheduling run
//   - GET /api/runs - List all runs (supports sort, order, limit)
//   - GET /api/runs/{id} - Get specific run
//   - DELETE /api/runs/{id} - Delete a run
//
// Scheduling Operations:
//   - POST /api/runs/{id}/place - Place primary sessions
//   - POST /api/runs/{id}/fill - Fill remaining slots
//   - POST /api/runs/{id}/generate - Place primary then fill in one call
//   - GET /api/runs/{id}/state - Get current schedule state
//   - GET /api/runs/{id}/grid - Get the schedule grid
//   - GET /api/runs/{id}/report - Get the utilization summary
//
// Configuration:
//   - GET /api/configs - List available configurations
//   - POST /api/configs - Save a configuration
//   - GET /api/configs/{name} - Get a specific configuration
//
// Request/Response Format:
//
// All endpoints accept and return JSON. The report endpoint additionally
// renders plain text when the request carries "Accept: text/plain".
//
// Session demands are sent as POST with JSON body:
//
//	{
//	  "sessions": [
//	    {"name": "Intro to Go", "length": 2},
//	    {"name": "Testing Workshop", "length": 1}
//	  ]
//	}
//
// The generate endpoint takes both phases at once:
//
//	{
//	  "primary": [{"name": "Keynote", "length": 3}],
//	  "fill": [{"name": "Lightning Talks", "length": 1}]
//	}
//
// Usage:
//
//	server := api.NewServer(schedulerService, hub)
//	http.ListenAndServe(":8080", server)
//
// Error Handling:
//
// Errors are returned as JSON with appropriate HTTP status codes:
//
//	{
//	  "error": "error message"
//	}
//
// Capacity overflows and placement exhaustion are reported inside the
// operation result (success=false with a message), not as transport errors.
package api
