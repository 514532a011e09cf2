// Package config provides configuration management for the conference
// scheduler.
//
// The config package handles:
//   - Loading schedule configurations from JSON files
//   - Configuration validation and verification
//   - Default configuration management
//   - Configuration discovery and listing
//
// Configuration Format:
//
// Schedule configurations are stored as JSON files in the configs
// directory. Each configuration defines:
//   - Grid dimensions (blocks per day, rooms available)
//   - Algorithm parameters (max tries, sort strategy, optional seed)
//   - Demand column mappings and length caps per request class
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Load specific configuration
//	scheduleConfig, err := manager.LoadConfig("classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Get default configuration
//	defaultConfig := manager.GetDefault()
//
//	// List available configurations
//	configs, err := manager.ListConfigs()
//
// When the configs directory holds no usable file the manager falls back
// to the built-in five-block, eight-room configuration.
package config
