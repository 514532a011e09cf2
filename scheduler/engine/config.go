package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ValidateScheduleConfig validates a schedule configuration for correctness.
func ValidateScheduleConfig(config *ScheduleConfig) error {
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}
	if config.Description == "" {
		return fmt.Errorf("config validation: description is required")
	}

	if config.Blocks < MinBlocks || config.Blocks > MaxBlocks {
		return fmt.Errorf("config validation: blocks must be between %d and %d, got %d", MinBlocks, MaxBlocks, config.Blocks)
	}
	if config.Rooms < MinRooms || config.Rooms > MaxRooms {
		return fmt.Errorf("config validation: rooms must be between %d and %d, got %d", MinRooms, MaxRooms, config.Rooms)
	}

	if config.MaxTries < MinMaxTries {
		return fmt.Errorf("config validation: max_tries must be >= %d, got %d", MinMaxTries, config.MaxTries)
	}

	switch config.SortStrategy {
	case LargestFirst, SmallestFirst, AsIs:
	default:
		return fmt.Errorf("config validation: sort_strategy must be one of %q, %q, %q, got %q",
			LargestFirst, SmallestFirst, AsIs, config.SortStrategy)
	}

	if config.RandomSeed != nil && *config.RandomSeed < 0 {
		return fmt.Errorf("config validation: random_seed must be >= 0, got %d", *config.RandomSeed)
	}

	if err := validateClassSettings("primary", config.Primary, config.Blocks); err != nil {
		return err
	}
	if err := validateClassSettings("fill", config.Fill, config.Blocks); err != nil {
		return err
	}

	return nil
}

// validateClassSettings checks the column indices and length cap for one
// request class.
func validateClassSettings(class string, cs ClassSettings, blocks int) error {
	if cs.NameColumn < 0 {
		return fmt.Errorf("config validation: %s.name_column must be >= 0, got %d", class, cs.NameColumn)
	}
	if cs.LengthColumn < 0 {
		return fmt.Errorf("config validation: %s.length_column must be >= 0, got %d", class, cs.LengthColumn)
	}
	if cs.NameColumn == cs.LengthColumn {
		return fmt.Errorf("config validation: %s name_column and length_column must differ, both are %d", class, cs.NameColumn)
	}
	if cs.MaxLength < 1 {
		return fmt.Errorf("config validation: %s.max_length must be >= 1, got %d", class, cs.MaxLength)
	}
	if cs.MaxLength > blocks {
		return fmt.Errorf("config validation: %s.max_length (%d) cannot exceed blocks (%d)", class, cs.MaxLength, blocks)
	}
	return nil
}

// LoadScheduleConfig loads a schedule configuration from a JSON file.
func LoadScheduleConfig(filename string) (*ScheduleConfig, error) {
	// Support CONFIG_DIR environment variable for alternative config directory
	configPath := filename
	if configDir := os.Getenv("CONFIG_DIR"); configDir != "" {
		if strings.HasPrefix(filename, "configs/") {
			configPath = filepath.Join(configDir, strings.TrimPrefix(filename, "configs/"))
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config ScheduleConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	if err := ValidateScheduleConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadConfigByName loads a schedule configuration by name from the configs
// directory (or CONFIG_DIR when set). The .json extension is optional.
func LoadConfigByName(configName string) (*ScheduleConfig, error) {
	if !strings.HasSuffix(configName, ".json") {
		configName = configName + ".json"
	}

	config, err := LoadScheduleConfig(filepath.Join("configs", configName))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file '%s' not found", configName)
		}
		return nil, fmt.Errorf("failed to load config '%s': %w", configName, err)
	}
	return config, nil
}

// DefaultScheduleConfig returns the built-in 5x8 conference configuration
// used when no config file is available.
func DefaultScheduleConfig() *ScheduleConfig {
	return &ScheduleConfig{
		Name:         "classic",
		Description:  "Five blocks across eight rooms",
		Blocks:       5,
		Rooms:        8,
		MaxTries:     DefaultMaxTries,
		SortStrategy: LargestFirst,
		Primary:      ClassSettings{NameColumn: 0, LengthColumn: 1, MaxLength: 3},
		Fill:         ClassSettings{NameColumn: 0, LengthColumn: 1, MaxLength: 1},
	}
}
