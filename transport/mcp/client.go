package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/wricardo/conference-scheduler/scheduler/engine"
	"github.com/wricardo/conference-scheduler/scheduler/report"
	"github.com/wricardo/conference-scheduler/scheduler/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Conference Scheduler",
		"2.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Conference Scheduler - MCP Interface

This is a thin client that proxies all requests to the REST API server.

PURPOSE:
Place variable-length conference sessions onto a blocks x rooms grid.
Primary sessions are placed with randomized retries; fill sessions pack
leftover space in a single pass. Sessions that do not fit the fill pass
are reported as leftover, not errors.

AVAILABLE TOOLS:
- create_run: Create new scheduling run with optional config selection
- list_runs: List all active runs
- get_run: Get run details
- delete_run: Delete a run
- place_sessions: Place primary sessions onto the grid
- fill_sessions: Fill remaining slots with short sessions
- generate_schedule: Place primary then fill in one call
- get_state: Get current schedule state
- get_grid: Get the schedule grid rendered as a table
- schedule_report: Get the utilization summary
- list_configs: List available configurations

NOTE: Placement is randomized. A failed placement means the engine ran
out of retry attempts, not that the demand is impossible - try again or
reduce session lengths.`),
	)

	// Register all tools
	c.registerTools()
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Run management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_run",
		Description: "Create a new scheduling run with optional config selection",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_name": map[string]interface{}{
					"type":        "string",
					"description": "Name of the config to use (optional)",
				},
			},
		},
	}, c.handleCreateRun)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_runs",
		Description: "List all active scheduling runs",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListRuns)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_run",
		Description: "Get details of a specific run",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"run_id": map[string]interface{}{
					"type":        "string",
					"description": "Run ID to retrieve",
				},
			},
			Required: []string{"run_id"},
		},
	}, c.handleGetRun)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "delete_run",
		Description: "Delete a scheduling run",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"run_id": map[string]interface{}{
					"type":        "string",
					"description": "Run ID to delete",
				},
			},
			Required: []string{"run_id"},
		},
	}, c.handleDeleteRun)

	// Scheduling operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "place_sessions",
		Description: "Place primary sessions onto the grid using randomized first-fit with retries",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"run_id": map[string]interface{}{
					"type":        "string",
					"description": "Run ID",
				},
				"sessions": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"name":   map[string]interface{}{"type": "string"},
							"length": map[string]interface{}{"type": "integer"},
						},
					},
					"description": "Sessions to place, each with a name and length in blocks",
				},
			},
			Required: []string{"run_id", "sessions"},
		},
	}, c.handlePlaceSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "fill_sessions",
		Description: "Fill remaining free slots in a single pass. Sessions that do not fit are reported as leftover.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"run_id": map[string]interface{}{
					"type":        "string",
					"description": "Run ID",
				},
				"sessions": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"name":   map[string]interface{}{"type": "string"},
							"length": map[string]interface{}{"type": "integer"},
						},
					},
					"description": "Fill sessions, each with a name and length in blocks",
				},
			},
			Required: []string{"run_id", "sessions"},
		},
	}, c.handleFillSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "generate_schedule",
		Description: "Place primary sessions and then fill remaining slots in one call",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"run_id": map[string]interface{}{
					"type":        "string",
					"description": "Run ID",
				},
				"primary": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"name":   map[string]interface{}{"type": "string"},
							"length": map[string]interface{}{"type": "integer"},
						},
					},
					"description": "Primary sessions",
				},
				"fill": map[string]interface{}{
					"type": "array",
					"items": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"name":   map[string]interface{}{"type": "string"},
							"length": map[string]interface{}{"type": "integer"},
						},
					},
					"description": "Fill sessions",
				},
			},
			Required: []string{"run_id", "primary"},
		},
	}, c.handleGenerateSchedule)

	// Run state
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_state",
		Description: "Get the current schedule state for a run",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"run_id": map[string]interface{}{
					"type":        "string",
					"description": "Run ID",
				},
			},
			Required: []string{"run_id"},
		},
	}, c.handleGetState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_grid",
		Description: "Get the schedule grid rendered as a blocks x rooms table",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"run_id": map[string]interface{}{
					"type":        "string",
					"description": "Run ID",
				},
			},
			Required: []string{"run_id"},
		},
	}, c.handleGetGrid)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "schedule_report",
		Description: "Get the utilization summary: slots filled and per-session slot counts",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"run_id": map[string]interface{}{
					"type":        "string",
					"description": "Run ID",
				},
			},
			Required: []string{"run_id"},
		},
	}, c.handleScheduleReport)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available schedule configurations",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)
}

// GetMCPServer returns the underlying MCP server for serving
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(method, path string, body interface{}, result interface{}) error {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// parseSessionRequests converts a raw MCP array argument into session requests
func parseSessionRequests(raw []interface{}) []engine.SessionRequest {
	requests := make([]engine.SessionRequest, 0, len(raw))
	for _, item := range raw {
		entry, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		name, _ := entry["name"].(string)
		length := 1
		if l, ok := entry["length"].(float64); ok {
			length = int(l)
		}
		if name == "" {
			continue
		}
		requests = append(requests, engine.SessionRequest{Name: name, Length: length})
	}
	return requests
}

// Tool handlers

func (c *Client) handleCreateRun(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	configName, _ := args["config_name"].(string)

	body := map[string]string{}
	if configName != "" {
		body["config_name"] = configName
	}

	var run service.RunInfo
	err := c.apiCall("POST", "/api/runs", body, &run)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created run: %s\nConfig: %s\n", run.ID, run.ConfigName)
	if run.Config != nil {
		result += fmt.Sprintf("Grid: %d blocks x %d rooms (%d slots)\n",
			run.Config.Blocks, run.Config.Rooms, run.Config.Capacity())
	}
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListRuns(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count int               `json:"count"`
		Runs  []service.RunInfo `json:"runs"`
	}

	err := c.apiCall("GET", "/api/runs", nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Active Runs (%d):\n\n", response.Count)
	for _, r := range response.Runs {
		result += fmt.Sprintf("- %s (Config: %s, Created: %s)\n",
			r.ID, r.ConfigName, r.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetRun(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	runID, _ := args["run_id"].(string)

	var run service.RunInfo
	err := c.apiCall("GET", fmt.Sprintf("/api/runs/%s", runID), nil, &run)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatRunInfo(&run)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleDeleteRun(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	runID, _ := args["run_id"].(string)

	var response map[string]string
	err := c.apiCall("DELETE", fmt.Sprintf("/api/runs/%s", runID), nil, &response)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(response["message"]), nil
}

func (c *Client) handlePlaceSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	runID, _ := args["run_id"].(string)
	sessionsRaw, _ := args["sessions"].([]interface{})

	body := map[string]interface{}{
		"sessions": parseSessionRequests(sessionsRaw),
	}

	var result service.PlaceResult
	err := c.apiCall("POST", fmt.Sprintf("/api/runs/%s/place", runID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatPlaceResult(&result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleFillSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	runID, _ := args["run_id"].(string)
	sessionsRaw, _ := args["sessions"].([]interface{})

	body := map[string]interface{}{
		"sessions": parseSessionRequests(sessionsRaw),
	}

	var result service.FillOutcome
	err := c.apiCall("POST", fmt.Sprintf("/api/runs/%s/fill", runID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatFillOutcome(&result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleGenerateSchedule(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	runID, _ := args["run_id"].(string)
	primaryRaw, _ := args["primary"].([]interface{})
	fillRaw, _ := args["fill"].([]interface{})

	body := map[string]interface{}{
		"primary": parseSessionRequests(primaryRaw),
		"fill":    parseSessionRequests(fillRaw),
	}

	var result service.GenerateResult
	err := c.apiCall("POST", fmt.Sprintf("/api/runs/%s/generate", runID), body, &result)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := formatGenerateResult(&result)
	return mcp.NewToolResultText(response), nil
}

func (c *Client) handleGetState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	runID, _ := args["run_id"].(string)

	var state engine.ScheduleState
	err := c.apiCall("GET", fmt.Sprintf("/api/runs/%s/state", runID), nil, &state)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatScheduleState(&state)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleGetGrid(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	runID, _ := args["run_id"].(string)

	var grid engine.Grid
	err := c.apiCall("GET", fmt.Sprintf("/api/runs/%s/grid", runID), nil, &grid)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGrid(&grid)), nil
}

func (c *Client) handleScheduleReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.Params.Arguments.(map[string]interface{})
	runID, _ := args["run_id"].(string)

	var summary report.Summary
	err := c.apiCall("GET", fmt.Sprintf("/api/runs/%s/report", runID), nil, &summary)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(summary.String()), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	err := c.apiCall("GET", "/api/configs", nil, &configs)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := "Available Configurations:\n\n"
	for _, config := range configs {
		result += fmt.Sprintf("• %s\n  %s\n  Grid: %d blocks x %d rooms, Max tries: %d, Sort: %s\n\n",
			config.Name, config.Description, config.Blocks, config.Rooms, config.MaxTries, config.SortStrategy)
	}

	return mcp.NewToolResultText(result), nil
}

// Formatting helpers

func formatRunInfo(run *service.RunInfo) string {
	return fmt.Sprintf("Run: %s\nConfig: %s\nCreated: %s\n\n%s",
		run.ID, run.ConfigName,
		run.CreatedAt.Format("2006-01-02 15:04:05"),
		formatScheduleState(run.State))
}

func formatScheduleState(state *engine.ScheduleState) string {
	if state == nil {
		return "No schedule state available"
	}

	var result strings.Builder

	result.WriteString(fmt.Sprintf("Config: %s | Attempts: %d | Filled: %d | Primary: %d | Fill: %d\n",
		state.ConfigName, state.Attempts, state.FilledCells, state.PrimaryPlaced, state.FillPlaced))

	if len(state.EmptyBlocks) > 0 {
		blocks := make([]string, 0, len(state.EmptyBlocks))
		for _, b := range state.EmptyBlocks {
			blocks = append(blocks, fmt.Sprintf("%d", b+1))
		}
		result.WriteString(fmt.Sprintf("Empty blocks: %s\n", strings.Join(blocks, ", ")))
	}

	if len(state.Leftover) > 0 {
		result.WriteString(fmt.Sprintf("Leftover sessions: %s\n", strings.Join(state.Leftover, ", ")))
	}

	if state.Message != "" {
		result.WriteString(fmt.Sprintf("Message: %s\n", state.Message))
	}

	if state.Grid != nil {
		result.WriteString("\n")
		result.WriteString(formatGrid(state.Grid))
	}

	return result.String()
}

// formatGrid renders the schedule as a fixed-width table, one row per block
// and one column per room. Free slots show as "-".
func formatGrid(grid *engine.Grid) string {
	if grid == nil || grid.BlockCount == 0 || grid.RoomCount == 0 {
		return "Empty grid"
	}

	// Column width driven by the longest cell content
	width := len("Room 1")
	for _, row := range grid.Cells {
		for _, cell := range row {
			if len(cell) > width {
				width = len(cell)
			}
		}
	}

	var b strings.Builder

	b.WriteString(fmt.Sprintf("%-8s", ""))
	for room := 0; room < grid.RoomCount; room++ {
		b.WriteString(fmt.Sprintf("| %-*s ", width, fmt.Sprintf("Room %d", room+1)))
	}
	b.WriteString("\n")

	for block := 0; block < grid.BlockCount; block++ {
		b.WriteString(fmt.Sprintf("%-8s", fmt.Sprintf("Block %d", block+1)))
		for room := 0; room < grid.RoomCount; room++ {
			cell := grid.Cells[block][room]
			if cell == "" {
				cell = "-"
			}
			b.WriteString(fmt.Sprintf("| %-*s ", width, cell))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func formatPlaceResult(result *service.PlaceResult) string {
	var b strings.Builder

	if result.Success {
		b.WriteString("✓ Placement successful\n")
	} else {
		b.WriteString("✗ Placement failed\n")
	}

	b.WriteString(fmt.Sprintf("Attempts: %d\n", result.Attempts))
	if result.Message != "" {
		b.WriteString(fmt.Sprintf("Message: %s\n", result.Message))
	}

	b.WriteString("\n")
	b.WriteString(formatScheduleState(result.State))
	return b.String()
}

func formatFillOutcome(result *service.FillOutcome) string {
	var b strings.Builder

	b.WriteString("✓ Fill pass complete\n")
	if len(result.Leftover) > 0 {
		b.WriteString(fmt.Sprintf("Leftover (%d): %s\n", len(result.Leftover), strings.Join(result.Leftover, ", ")))
	} else {
		b.WriteString("All fill sessions placed\n")
	}
	if result.Message != "" {
		b.WriteString(fmt.Sprintf("Message: %s\n", result.Message))
	}

	b.WriteString("\n")
	b.WriteString(formatScheduleState(result.State))
	return b.String()
}

func formatGenerateResult(result *service.GenerateResult) string {
	var b strings.Builder

	if result.Success {
		b.WriteString("✓ Schedule generated\n")
	} else {
		b.WriteString("✗ Schedule generation failed\n")
	}

	b.WriteString(fmt.Sprintf("Attempts: %d\n", result.Attempts))
	if len(result.Leftover) > 0 {
		b.WriteString(fmt.Sprintf("Leftover (%d): %s\n", len(result.Leftover), strings.Join(result.Leftover, ", ")))
	}
	if result.Message != "" {
		b.WriteString(fmt.Sprintf("Message: %s\n", result.Message))
	}

	b.WriteString("\n")
	b.WriteString(formatScheduleState(result.State))
	return b.String()
}
