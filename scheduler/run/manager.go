package run

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/wricardo/conference-scheduler/scheduler/engine"
	"github.com/wricardo/conference-scheduler/scheduler/service"
)

var (
	ErrRunNotFound      = errors.New("run not found")
	ErrRunAlreadyExists = errors.New("run already exists")
	ErrInvalidRunID     = errors.New("invalid run ID")
)

// Manager handles scheduling run lifecycle
type Manager struct {
	runs        map[string]*service.Run
	persistence RunPersistence
	mu          sync.RWMutex
}

// NewManager creates a new run manager
func NewManager() *Manager {
	return &Manager{
		runs: make(map[string]*service.Run),
	}
}

// NewManagerWithPersistence creates a new run manager with persistence
func NewManagerWithPersistence(persistence RunPersistence) *Manager {
	return &Manager{
		runs:        make(map[string]*service.Run),
		persistence: persistence,
	}
}

// Create creates a new run with the given ID and configuration
func (m *Manager) Create(id string, config *engine.ScheduleConfig) (*service.Run, error) {
	if id == "" {
		id = m.generateRunID()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Check if run already exists (case-insensitive)
	if m.runExists(id) {
		return nil, ErrRunAlreadyExists
	}

	eng, err := engine.NewEngine(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	run := &service.Run{
		ID:             id,
		Engine:         eng,
		Config:         config,
		State:          &engine.ScheduleState{ConfigName: config.Name},
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}

	m.runs[strings.ToLower(id)] = run

	// Auto-save if persistence is enabled
	if m.persistence != nil {
		if err := m.persistence.Save(run); err != nil {
			// Log error but don't fail the creation
			fmt.Printf("Warning: Failed to persist run %s: %v\n", id, err)
		}
	}

	return run, nil
}

// Get retrieves a run by ID (case-insensitive)
func (m *Manager) Get(id string) (*service.Run, error) {
	m.mu.RLock()
	run, exists := m.runs[strings.ToLower(id)]
	if !exists {
		// Try exact match for backward compatibility
		run, exists = m.runs[id]
	}
	m.mu.RUnlock()

	if exists {
		return run, nil
	}

	// Try loading from persistence if not in memory
	if m.persistence != nil && m.persistence.Exists(id) {
		run, err := m.persistence.Load(id)
		if err != nil {
			return nil, fmt.Errorf("failed to load persisted run: %w", err)
		}

		// Add to memory cache
		m.mu.Lock()
		m.runs[strings.ToLower(id)] = run
		m.mu.Unlock()

		return run, nil
	}

	return nil, ErrRunNotFound
}

// GetOrCreate gets an existing run or creates a new one
func (m *Manager) GetOrCreate(id string, config *engine.ScheduleConfig) (*service.Run, error) {
	run, err := m.Get(id)
	if err == nil {
		return run, nil
	}

	if errors.Is(err, ErrRunNotFound) {
		return m.Create(id, config)
	}

	return nil, err
}

// List returns all active runs
func (m *Manager) List() []*service.Run {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*service.Run, 0, len(m.runs))
	for _, run := range m.runs {
		result = append(result, run)
	}

	return result
}

// Delete removes a run
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	lowerID := strings.ToLower(id)
	inMemory := false

	if _, exists := m.runs[lowerID]; exists {
		delete(m.runs, lowerID)
		inMemory = true
	} else if _, exists := m.runs[id]; exists {
		delete(m.runs, id)
		inMemory = true
	}

	// Delete from persistence if it exists
	if m.persistence != nil && m.persistence.Exists(id) {
		if err := m.persistence.Delete(id); err != nil {
			return fmt.Errorf("failed to delete persisted run: %w", err)
		}
		return nil
	}

	// If not in persistence and not in memory, it doesn't exist
	if !inMemory {
		return ErrRunNotFound
	}

	return nil
}

// DeleteFromMemory removes a run from memory only (not from persistence)
func (m *Manager) DeleteFromMemory(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	lowerID := strings.ToLower(id)

	if _, exists := m.runs[lowerID]; exists {
		delete(m.runs, lowerID)
		return nil
	}

	if _, exists := m.runs[id]; exists {
		delete(m.runs, id)
		return nil
	}

	return ErrRunNotFound
}

// UpdateLastAccessed updates the last accessed time for a run
func (m *Manager) UpdateLastAccessed(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	run, exists := m.runs[strings.ToLower(id)]
	if !exists {
		run, exists = m.runs[id]
		if !exists {
			return ErrRunNotFound
		}
	}

	run.LastAccessedAt = time.Now()

	// Auto-save if persistence is enabled
	if m.persistence != nil {
		if err := m.persistence.Save(run); err != nil {
			fmt.Printf("Warning: Failed to persist run %s after access update: %v\n", id, err)
		}
	}

	return nil
}

// Save saves a specific run to persistence
func (m *Manager) Save(id string) error {
	if m.persistence == nil {
		return nil // No persistence configured
	}

	m.mu.RLock()
	run, exists := m.runs[strings.ToLower(id)]
	if !exists {
		run, exists = m.runs[id]
		if !exists {
			m.mu.RUnlock()
			return ErrRunNotFound
		}
	}
	m.mu.RUnlock()

	return m.persistence.Save(run)
}

// CleanupExpiredRuns removes runs that haven't been accessed in the given duration
func (m *Manager) CleanupExpiredRuns(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0

	for id, run := range m.runs {
		if run.LastAccessedAt.Before(cutoff) {
			delete(m.runs, id)
			removed++
		}
	}

	return removed
}

// Count returns the number of active runs
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.runs)
}

// generateRunID generates a random 4-character run ID
func (m *Manager) generateRunID() string {
	// Generate 2 random bytes (4 hex characters)
	bytes := make([]byte, 2)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// runExists checks if a run exists (case-insensitive)
func (m *Manager) runExists(id string) bool {
	lowerID := strings.ToLower(id)
	if _, exists := m.runs[lowerID]; exists {
		return true
	}
	_, exists := m.runs[id]
	return exists
}

// LoadPersistedRuns loads all persisted runs into memory
func (m *Manager) LoadPersistedRuns() error {
	if m.persistence == nil {
		return nil // No persistence configured
	}

	runIDs, err := m.persistence.ListAll()
	if err != nil {
		return fmt.Errorf("failed to list persisted runs: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	loadedCount := 0
	for _, id := range runIDs {
		// Skip if already loaded in memory
		if _, exists := m.runs[strings.ToLower(id)]; exists {
			continue
		}

		run, err := m.persistence.Load(id)
		if err != nil {
			fmt.Printf("Warning: Failed to load persisted run %s: %v\n", id, err)
			continue
		}

		m.runs[strings.ToLower(id)] = run
		loadedCount++
	}

	if loadedCount > 0 {
		fmt.Printf("Loaded %d persisted runs from storage\n", loadedCount)
	}

	return nil
}

// SaveAllRuns saves all in-memory runs to persistence
func (m *Manager) SaveAllRuns() error {
	if m.persistence == nil {
		return nil // No persistence configured
	}

	m.mu.RLock()
	runs := make([]*service.Run, 0, len(m.runs))
	for _, run := range m.runs {
		runs = append(runs, run)
	}
	m.mu.RUnlock()

	errorCount := 0
	for _, run := range runs {
		if err := m.persistence.Save(run); err != nil {
			fmt.Printf("Warning: Failed to save run %s: %v\n", run.ID, err)
			errorCount++
		}
	}

	if errorCount > 0 {
		return fmt.Errorf("failed to save %d runs", errorCount)
	}

	return nil
}
