package engine

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidateScheduleConfig(t *testing.T) {
	valid := func() *ScheduleConfig {
		return createTestConfig()
	}

	tests := []struct {
		name    string
		mutate  func(*ScheduleConfig)
		wantErr bool
	}{
		{"valid", func(c *ScheduleConfig) {}, false},
		{"missing name", func(c *ScheduleConfig) { c.Name = "" }, true},
		{"missing description", func(c *ScheduleConfig) { c.Description = "" }, true},
		{"zero blocks", func(c *ScheduleConfig) { c.Blocks = 0 }, true},
		{"blocks over limit", func(c *ScheduleConfig) { c.Blocks = MaxBlocks + 1 }, true},
		{"zero rooms", func(c *ScheduleConfig) { c.Rooms = 0 }, true},
		{"rooms over limit", func(c *ScheduleConfig) { c.Rooms = MaxRooms + 1 }, true},
		{"zero max tries", func(c *ScheduleConfig) { c.MaxTries = 0 }, true},
		{"bad sort strategy", func(c *ScheduleConfig) { c.SortStrategy = "biggest" }, true},
		{"negative seed", func(c *ScheduleConfig) { s := int64(-1); c.RandomSeed = &s }, true},
		{"negative name column", func(c *ScheduleConfig) { c.Primary.NameColumn = -1 }, true},
		{"colliding columns", func(c *ScheduleConfig) { c.Fill.LengthColumn = c.Fill.NameColumn }, true},
		{"zero max length", func(c *ScheduleConfig) { c.Primary.MaxLength = 0 }, true},
		{"max length over blocks", func(c *ScheduleConfig) { c.Primary.MaxLength = c.Blocks + 1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := valid()
			tt.mutate(config)
			err := ValidateScheduleConfig(config)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateScheduleConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadScheduleConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "classic.json")
	content := `{
		"name": "classic",
		"description": "Five blocks across eight rooms",
		"blocks": 5,
		"rooms": 8,
		"max_tries": 200,
		"sort_strategy": "largest_first",
		"primary": {"name_column": 0, "length_column": 1, "max_length": 3},
		"fill": {"name_column": 0, "length_column": 1, "max_length": 1}
	}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	config, err := LoadScheduleConfig(path)
	if err != nil {
		t.Fatalf("LoadScheduleConfig failed: %v", err)
	}
	if config.Blocks != 5 || config.Rooms != 8 {
		t.Errorf("Expected 5x8, got %dx%d", config.Blocks, config.Rooms)
	}
	if config.MaxTries != 200 {
		t.Errorf("Expected max_tries 200, got %d", config.MaxTries)
	}
	if config.SortStrategy != LargestFirst {
		t.Errorf("Expected largest_first, got %q", config.SortStrategy)
	}
}

func TestLoadScheduleConfig_Invalid(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadScheduleConfig(filepath.Join(dir, "nope.json")); err == nil {
			t.Error("Expected error for missing file")
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
			t.Fatalf("Failed to write config file: %v", err)
		}
		if _, err := LoadScheduleConfig(path); err == nil {
			t.Error("Expected error for malformed JSON")
		}
	})

	t.Run("fails validation", func(t *testing.T) {
		path := filepath.Join(dir, "invalid.json")
		content := `{"name": "x", "description": "y", "blocks": 0, "rooms": 8,
			"max_tries": 10, "sort_strategy": "as_is",
			"primary": {"name_column": 0, "length_column": 1, "max_length": 1},
			"fill": {"name_column": 0, "length_column": 1, "max_length": 1}}`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write config file: %v", err)
		}
		if _, err := LoadScheduleConfig(path); err == nil {
			t.Error("Expected error for config failing validation")
		}
	})
}

func TestLoadConfigByName(t *testing.T) {
	dir := t.TempDir()
	content := `{
		"name": "small",
		"description": "Three blocks across two rooms",
		"blocks": 3,
		"rooms": 2,
		"max_tries": 50,
		"sort_strategy": "as_is",
		"primary": {"name_column": 0, "length_column": 1, "max_length": 2},
		"fill": {"name_column": 0, "length_column": 1, "max_length": 1}
	}`
	if err := os.WriteFile(filepath.Join(dir, "small.json"), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	t.Setenv("CONFIG_DIR", dir)

	t.Run("bare name", func(t *testing.T) {
		config, err := LoadConfigByName("small")
		if err != nil {
			t.Fatalf("LoadConfigByName failed: %v", err)
		}
		if config.Blocks != 3 || config.Rooms != 2 {
			t.Errorf("Expected 3x2, got %dx%d", config.Blocks, config.Rooms)
		}
	})

	t.Run("name with extension", func(t *testing.T) {
		config, err := LoadConfigByName("small.json")
		if err != nil {
			t.Fatalf("LoadConfigByName failed: %v", err)
		}
		if config.Name != "small" {
			t.Errorf("Expected config name %q, got %q", "small", config.Name)
		}
	})

	t.Run("missing config", func(t *testing.T) {
		if _, err := LoadConfigByName("nope"); err == nil {
			t.Error("Expected error for missing config")
		}
	})
}

func TestDefaultScheduleConfig(t *testing.T) {
	config := DefaultScheduleConfig()
	if err := ValidateScheduleConfig(config); err != nil {
		t.Errorf("Default config failed validation: %v", err)
	}
	if config.Capacity() != 40 {
		t.Errorf("Expected default capacity 40, got %d", config.Capacity())
	}
}
