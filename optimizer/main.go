package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

type SessionRequest struct {
	Name   string `json:"name"`
	Length int    `json:"length"`
}

type ScheduleGrid struct {
	Blocks int        `json:"blocks"`
	Rooms  int        `json:"rooms"`
	Cells  [][]string `json:"cells"`
}

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

type RunResponse struct {
	ID         string         `json:"id"`
	ConfigName string         `json:"config_name"`
	State      *ScheduleState `json:"state"`
}

type GenerateRequest struct {
	Primary []SessionRequest `json:"primary"`
	Fill    []SessionRequest `json:"fill"`
}

type GenerateResponse struct {
	Success  bool           `json:"success"`
	State    *ScheduleState `json:"state"`
	Attempts int            `json:"attempts"`
	Leftover []string       `json:"leftover"`
	Message  string         `json:"message"`
}

// DemandFile is the optimizer's input document: both request classes in one
// JSON file, matching the /generate request body.
type DemandFile struct {
	Primary []SessionRequest `json:"primary"`
	Fill    []SessionRequest `json:"fill"`
}

type Client struct {
	baseURL string
	runID   string
	client  *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) CreateRun(configID string) (*ScheduleState, error) {
	var reqBody []byte
	var err error

	if configID != "" {
		reqBody, err = json.Marshal(map[string]string{"config_id": configID})
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
	}

	resp, err := c.client.Post(c.baseURL+"/api/runs", "application/json", bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("create run: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("create run failed: %s - %s", resp.Status, string(body))
	}

	var run RunResponse
	if err := json.Unmarshal(body, &run); err != nil {
		return nil, fmt.Errorf("parse run response: %w", err)
	}

	c.runID = run.ID
	return run.State, nil
}

func (c *Client) GetState() (*ScheduleState, error) {
	url := fmt.Sprintf("%s/api/runs/%s/state", c.baseURL, c.runID)
	resp, err := c.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("get state: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("get state failed: %s - %s", resp.Status, string(body))
	}

	var state ScheduleState
	if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
		return nil, fmt.Errorf("parse state: %w", err)
	}

	return &state, nil
}

// Generate runs both placement phases on the server. A capacity overflow or
// exhausted attempts come back as success=false with a message, not as a
// transport error.
func (c *Client) Generate(req GenerateRequest) (*GenerateResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal generate: %w", err)
	}

	url := fmt.Sprintf("%s/api/runs/%s/generate", c.baseURL, c.runID)
	resp, err := c.client.Post(url, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("execute generate: %w", err)
	}
	defer resp.Body.Close()

	var genResp GenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&genResp); err != nil {
		return nil, fmt.Errorf("parse generate response: %w", err)
	}

	return &genResp, nil
}

func loadDemands(path string) (*DemandFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var demands DemandFile
	if err := json.Unmarshal(data, &demands); err != nil {
		return nil, fmt.Errorf("parse demands file: %w", err)
	}
	if len(demands.Primary) == 0 && len(demands.Fill) == 0 {
		return nil, fmt.Errorf("demands file has no primary or fill requests")
	}
	return &demands, nil
}

func main() {
	serverURL := flag.String("url", "http://localhost:8080", "Scheduler server URL")
	configID := flag.String("config", "", "Schedule configuration (classic, small, workshop)")
	continueRun := flag.String("continue", "", "Reuse an existing run by ID")
	demandsPath := flag.String("demands", "demands.json", "JSON file with primary and fill requests")
	maxAttempts := flag.Int("max-attempts", 50, "Number of generate calls to evaluate")
	outPath := flag.String("out", "best_schedule.json", "Where to write the best schedule state")
	verbose := flag.Bool("v", false, "Verbose output")
	delayMs := flag.Int("delay", 0, "Delay between generate calls in milliseconds (0 = no delay)")
	flag.Parse()

	demands, err := loadDemands(*demandsPath)
	if err != nil {
		log.Fatalf("Failed to load demands: %v", err)
	}
	log.Printf("Loaded %d primary and %d fill requests from %s",
		len(demands.Primary), len(demands.Fill), *demandsPath)

	log.Printf("Connecting to scheduler server at %s", *serverURL)
	client := NewClient(*serverURL)

	// Check for saved run ID
	runFile := ".run"
	savedRunID := ""

	if *continueRun != "" {
		savedRunID = *continueRun
	} else {
		if data, err := os.ReadFile(runFile); err == nil {
			savedRunID = string(bytes.TrimSpace(data))
		}
	}

	if savedRunID != "" {
		client.runID = savedRunID
		log.Printf("Resuming run: %s", client.runID)
		if _, err := client.GetState(); err != nil {
			log.Printf("Failed to resume run (may be expired): %v", err)
			log.Printf("Creating new run...")
			savedRunID = ""
		}
	}

	if savedRunID == "" {
		if _, err := client.CreateRun(*configID); err != nil {
			log.Fatalf("Failed to create run: %v", err)
		}
		log.Printf("Run created: %s", client.runID)

		// Save run ID for next invocation
		if err := os.WriteFile(runFile, []byte(client.runID), 0644); err != nil {
			log.Printf("Warning: Failed to save run ID: %v", err)
		}
	}

	tracker := NewBestTracker()
	genReq := GenerateRequest{Primary: demands.Primary, Fill: demands.Fill}

	for attempt := 1; attempt <= *maxAttempts; attempt++ {
		resp, err := client.Generate(genReq)
		if err != nil {
			log.Printf("Attempt %d: generate call failed: %v", attempt, err)
			continue
		}

		if !resp.Success {
			if *verbose {
				log.Printf("Attempt %d: %s", attempt, resp.Message)
			}
			if resp.State == nil {
				continue
			}
		}

		score := ScoreState(resp.State)
		if *verbose {
			log.Printf("Attempt %d: filled=%d leftover=%d empty_blocks=%d tries=%d",
				attempt, score.Filled, score.Leftover, score.EmptyBlocks, score.Tries)
		}

		if tracker.Consider(attempt, resp.State, score) {
			log.Printf("Attempt %d: new best (%s)", attempt, score)
			if score.Perfect() {
				log.Printf("Perfect schedule found, stopping early")
				break
			}
		}

		if *delayMs > 0 {
			time.Sleep(time.Duration(*delayMs) * time.Millisecond)
		}
	}

	best := tracker.Best()
	if best == nil {
		log.Printf("No usable schedule produced after %d attempts", *maxAttempts)
		log.Printf("Run: %s", client.runID)
		os.Exit(1)
	}

	log.Printf("\nBest schedule from attempt %d: %s", tracker.BestAttempt(), tracker.BestScore())
	fmt.Print(RenderGrid(best.Grid))

	data, err := json.MarshalIndent(best, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal best state: %v", err)
	}
	if err := os.WriteFile(*outPath, data, 0644); err != nil {
		log.Fatalf("Failed to write %s: %v", *outPath, err)
	}
	log.Printf("Best schedule state written to %s", *outPath)
	log.Printf("Run: %s", client.runID)
}
