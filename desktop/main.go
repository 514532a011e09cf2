package main

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"image/color"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	cellWidth    = 92
	cellHeight   = 52
	labelWidth   = 64 // Left gutter for block labels
	headerHeight = 96 // Header for multi-run stats
	screenWidth  = 820
	screenHeight = 560
	baseURL      = "http://localhost:8080"
)

// ScreenType represents different screens in the app
type ScreenType int

const (
	ScreenWelcome ScreenType = iota
	ScreenViewer
)

// Session colors, assigned per name so a session keeps its color across
// updates and runs
var sessionColors = []color.RGBA{
	{255, 100, 100, 255}, // Red
	{100, 100, 255, 255}, // Blue
	{100, 255, 100, 255}, // Green
	{255, 255, 100, 255}, // Yellow
	{255, 100, 255, 255}, // Magenta
	{100, 255, 255, 255}, // Cyan
	{255, 165, 0, 255},   // Orange
	{128, 0, 128, 255},   // Purple
	{255, 192, 203, 255}, // Pink
}

// ScheduleGrid mirrors the server's grid JSON
type ScheduleGrid struct {
	Blocks int        `json:"blocks"`
	Rooms  int        `json:"rooms"`
	Cells  [][]string `json:"cells"`
}

// ScheduleState represents the state from the scheduler server
type ScheduleState struct {
	Grid          *ScheduleGrid `json:"grid"`
	Attempts      int           `json:"attempts"`
	EmptyBlocks   []int         `json:"empty_blocks"`
	Leftover      []string      `json:"leftover"`
	PrimaryPlaced int           `json:"primary_placed"`
	FillPlaced    int           `json:"fill_placed"`
	FilledCells   int           `json:"filled_cells"`
	ConfigName    string        `json:"config_name"`
	Message       string        `json:"message"`
}

// WSMessage represents WebSocket message wrapper
type WSMessage struct {
	RunID string         `json:"run_id"`
	State *ScheduleState `json:"state,omitempty"`
	Event string         `json:"event,omitempty"`
}

// RunData holds data for a single tracked run
type RunData struct {
	runID      string
	state      *ScheduleState
	wsConn     *websocket.Conn
	lastUpdate time.Time
}

// RunListItem represents a run from the server
type RunListItem struct {
	ID         string `json:"id"`
	ConfigName string `json:"config_name"`
	CreatedAt  string `json:"created_at"`
}

// Viewer renders live schedule runs pushed by the server
type Viewer struct {
	runs          []*RunData
	activeRun     int // index of the run currently drawn
	stateMutex    sync.RWMutex
	currentScreen ScreenType
	welcomeScreen *WelcomeScreen
}

// WelcomeScreen manages the run-select screen state
type WelcomeScreen struct {
	availableRuns []RunListItem
	cursorPos     int
	loading       bool
	errorMsg      string
}

// NewViewer creates a viewer following the given runs. With no run IDs it
// starts on the run-select screen.
func NewViewer(runIDs []string) *Viewer {
	v := &Viewer{
		runs:          make([]*RunData, 0),
		activeRun:     0,
		currentScreen: ScreenWelcome,
		welcomeScreen: &WelcomeScreen{
			availableRuns: make([]RunListItem, 0),
		},
	}

	if len(runIDs) > 0 {
		for _, id := range runIDs {
			v.addRun(id)
		}
		v.currentScreen = ScreenViewer
	} else {
		v.loadWelcomeData()
	}

	return v
}

// addRun starts tracking a run: websocket for pushes, REST for the initial
// snapshot.
func (v *Viewer) addRun(runID string) {
	run := &RunData{
		runID:      runID,
		lastUpdate: time.Now(),
	}
	v.runs = append(v.runs, run)

	if err := v.connectWebSocket(run); err != nil {
		log.Printf("Failed to connect WebSocket for %s: %v (falling back to polling)", run.runID, err)
	} else {
		go v.listenWebSocket(run)
	}

	if err := v.fetchState(run); err != nil {
		log.Printf("Failed to fetch state for %s: %v", run.runID, err)
	}
}

// connectWebSocket establishes the WebSocket connection for one run
func (v *Viewer) connectWebSocket(run *RunData) error {
	if run.runID == "" {
		return fmt.Errorf("no run ID set")
	}

	wsURL := url.URL{Scheme: "ws", Host: "localhost:8080", Path: "/ws"}
	q := wsURL.Query()
	q.Set("run", run.runID)
	wsURL.RawQuery = q.Encode()

	conn, _, err := websocket.DefaultDialer.Dial(wsURL.String(), nil)
	if err != nil {
		return err
	}

	run.wsConn = conn
	log.Printf("WebSocket connected for run %s", run.runID)
	return nil
}

// listenWebSocket applies pushed state updates for one run
func (v *Viewer) listenWebSocket(run *RunData) {
	defer func() {
		if run.wsConn != nil {
			run.wsConn.Close()
		}
	}()

	for {
		_, message, err := run.wsConn.ReadMessage()
		if err != nil {
			log.Printf("WebSocket read error for %s: %v", run.runID, err)
			return
		}

		var wsMsg WSMessage
		if err := json.Unmarshal(message, &wsMsg); err != nil {
			log.Printf("WebSocket JSON parse error: %v", err)
			continue
		}
		if wsMsg.State == nil {
			continue
		}

		v.stateMutex.Lock()
		run.state = wsMsg.State
		run.lastUpdate = time.Now()
		v.stateMutex.Unlock()
	}
}

// fetchState gets the current run state from the server
func (v *Viewer) fetchState(run *RunData) error {
	if run.runID == "" {
		return fmt.Errorf("no run ID set")
	}

	resp, err := http.Get(fmt.Sprintf("%s/api/runs/%s/state", baseURL, run.runID))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var state ScheduleState
	if err := json.Unmarshal(body, &state); err != nil {
		return fmt.Errorf("failed to parse JSON: %v (body: %s)", err, string(body))
	}

	v.stateMutex.Lock()
	run.state = &state
	run.lastUpdate = time.Now()
	v.stateMutex.Unlock()

	return nil
}

// loadWelcomeData fetches available runs from the server
func (v *Viewer) loadWelcomeData() {
	v.welcomeScreen.loading = true
	v.welcomeScreen.errorMsg = ""

	resp, err := http.Get(fmt.Sprintf("%s/api/runs?sort=created&order=desc", baseURL))
	if err != nil {
		v.welcomeScreen.errorMsg = fmt.Sprintf("Error loading runs: %v", err)
		v.welcomeScreen.loading = false
		return
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	var runsResp struct {
		Runs []RunListItem `json:"runs"`
	}
	if err := json.Unmarshal(body, &runsResp); err == nil {
		v.welcomeScreen.availableRuns = runsResp.Runs
	}

	if v.welcomeScreen.cursorPos >= len(v.welcomeScreen.availableRuns) {
		v.welcomeScreen.cursorPos = 0
	}
	v.welcomeScreen.loading = false
}

// Update handles input for the current screen
func (v *Viewer) Update() error {
	switch v.currentScreen {
	case ScreenWelcome:
		return v.updateWelcomeScreen()
	case ScreenViewer:
		return v.updateViewerScreen()
	}
	return nil
}

func (v *Viewer) updateWelcomeScreen() error {
	ws := v.welcomeScreen

	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		v.loadWelcomeData()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) && ws.cursorPos < len(ws.availableRuns)-1 {
		ws.cursorPos++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) && ws.cursorPos > 0 {
		ws.cursorPos--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) && len(ws.availableRuns) > 0 {
		v.addRun(ws.availableRuns[ws.cursorPos].ID)
		v.activeRun = len(v.runs) - 1
		v.currentScreen = ScreenViewer
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) && len(v.runs) > 0 {
		v.currentScreen = ScreenViewer
	}
	return nil
}

func (v *Viewer) updateViewerScreen() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) && len(v.runs) > 1 {
		v.activeRun = (v.activeRun + 1) % len(v.runs)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) && len(v.runs) > 0 {
		if err := v.fetchState(v.runs[v.activeRun]); err != nil {
			log.Printf("Refresh failed: %v", err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		v.loadWelcomeData()
		v.currentScreen = ScreenWelcome
	}
	return nil
}

// Draw renders the current screen
func (v *Viewer) Draw(screen *ebiten.Image) {
	switch v.currentScreen {
	case ScreenWelcome:
		v.drawWelcomeScreen(screen)
	case ScreenViewer:
		v.drawViewerScreen(screen)
	}
}

func (v *Viewer) drawWelcomeScreen(screen *ebiten.Image) {
	ws := v.welcomeScreen
	y := 20
	ebitenutil.DebugPrintAt(screen, "=== CONFERENCE SCHEDULER - RUN SELECT ===", 200, y)
	y += 30

	if ws.loading {
		ebitenutil.DebugPrintAt(screen, "Loading runs...", 20, y)
		return
	}
	if ws.errorMsg != "" {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("ERROR: %s", ws.errorMsg), 20, y)
		y += 30
	}

	ebitenutil.DebugPrintAt(screen, "Available Runs:", 20, y)
	y += 20

	if len(ws.availableRuns) == 0 {
		ebitenutil.DebugPrintAt(screen, "  No runs found. Create one via the API or CLI, then press F5.", 20, y)
		y += 20
	}
	for i, run := range ws.availableRuns {
		cursor := "  "
		if i == ws.cursorPos {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%s  (config: %s, created: %s)", cursor, run.ID, run.ConfigName, run.CreatedAt)
		ebitenutil.DebugPrintAt(screen, line, 20, y)
		y += 15
	}

	y += 20
	ebitenutil.DebugPrintAt(screen, "CONTROLS:", 20, y)
	y += 15
	ebitenutil.DebugPrintAt(screen, "  UP/DOWN  - Move cursor", 20, y)
	y += 15
	ebitenutil.DebugPrintAt(screen, "  ENTER    - Watch selected run", 20, y)
	y += 15
	ebitenutil.DebugPrintAt(screen, "  F5       - Refresh run list", 20, y)
	y += 15
	if len(v.runs) > 0 {
		ebitenutil.DebugPrintAt(screen, "  ESC      - Back to viewer", 20, y)
	}
}

func (v *Viewer) drawViewerScreen(screen *ebiten.Image) {
	v.stateMutex.RLock()
	defer v.stateMutex.RUnlock()

	if len(v.runs) == 0 {
		ebitenutil.DebugPrint(screen, "No runs tracked. Press ESC to go to run select.")
		return
	}

	v.drawRunStats(screen)

	run := v.runs[v.activeRun]
	if run.state == nil || run.state.Grid == nil {
		ebitenutil.DebugPrintAt(screen, "Waiting for a placement on this run...", 10, headerHeight+10)
		ebitenutil.DebugPrintAt(screen, "TAB: Switch Run | R: Refresh | ESC: Menu", 10, screenHeight-20)
		return
	}

	grid := run.state.Grid
	gridOffsetY := headerHeight + 20

	// Room labels across the top
	for r := 0; r < grid.Rooms; r++ {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Room %d", r+1), labelWidth+r*cellWidth+4, headerHeight+4)
	}

	for b := 0; b < grid.Blocks && b < len(grid.Cells); b++ {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Block %d", b+1), 2, gridOffsetY+b*cellHeight+18)

		for r := 0; r < grid.Rooms && r < len(grid.Cells[b]); r++ {
			name := grid.Cells[b][r]
			x := float64(labelWidth + r*cellWidth)
			y := float64(gridOffsetY + b*cellHeight)

			ebitenutil.DrawRect(screen, x, y, cellWidth-2, cellHeight-2, colorForSession(name))
			if name != "" {
				ebitenutil.DebugPrintAt(screen, truncate(name, 14), int(x)+4, int(y)+4)
			}
		}
	}

	if msg := run.state.Message; msg != "" {
		ebitenutil.DebugPrintAt(screen, msg, 10, screenHeight-40)
	}
	ebitenutil.DebugPrintAt(screen, "TAB: Switch Run | R: Refresh | ESC: Menu", 10, screenHeight-20)
}

// drawRunStats draws one stats line per tracked run in the header
func (v *Viewer) drawRunStats(screen *ebiten.Image) {
	headerY := 5
	for idx, run := range v.runs {
		y := headerY + (idx * 15)

		activeMarker := "   "
		if idx == v.activeRun {
			activeMarker = ">>>"
		}

		connStatus := "POLL"
		if run.wsConn != nil {
			connStatus = "WS"
		}

		info := fmt.Sprintf("%s [%d] %s [%s]", activeMarker, idx+1, run.runID, connStatus)
		if run.state != nil {
			capacity := 0
			if run.state.Grid != nil {
				capacity = run.state.Grid.Blocks * run.state.Grid.Rooms
			}
			info += fmt.Sprintf(" CFG:%s FILLED:%d/%d TRIES:%d",
				run.state.ConfigName, run.state.FilledCells, capacity, run.state.Attempts)
			if n := len(run.state.Leftover); n > 0 {
				info += fmt.Sprintf(" LEFTOVER:%d", n)
			}
		}

		ebitenutil.DebugPrintAt(screen, info, 20, y)
	}
}

// Layout returns the viewer screen size
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

// colorForSession maps a session name to a stable palette color. Free cells
// render dark gray.
func colorForSession(name string) color.Color {
	if name == "" {
		return color.RGBA{50, 50, 50, 255}
	}
	h := fnv.New32a()
	h.Write([]byte(name))
	return sessionColors[h.Sum32()%uint32(len(sessionColors))]
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "."
}

func main() {
	// Accept run IDs as arguments; with none, the run-select screen loads
	// them from the server
	runIDs := []string{}
	if len(os.Args) > 1 {
		runIDs = os.Args[1:]
	}

	viewer := NewViewer(runIDs)

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("Conference Scheduler - Live Schedule Viewer")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(viewer); err != nil {
		log.Fatal(err)
	}
}
