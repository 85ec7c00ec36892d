// Package config provides configuration loading and management for Karma.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/c360studio/karma/source"
	"gopkg.in/yaml.v3"
)

// Config represents the complete Karma configuration
type Config struct {
	Model    ModelConfig    `yaml:"model"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Storage  StorageConfig  `yaml:"storage"`
	Watch    WatchConfig    `yaml:"watch"`
}

// ModelConfig configures the LLM model settings
type ModelConfig struct {
	// Provider selects the API shape ("ollama", "openai", "anthropic")
	Provider string `yaml:"provider"`
	// Name is the model to use (e.g., "qwen2.5-coder:32b")
	Name string `yaml:"name"`
	// Endpoint is the API endpoint (default: http://localhost:11434/v1)
	Endpoint string `yaml:"endpoint"`
	// Temperature controls randomness (0.0-1.0, default: 0.2)
	Temperature float64 `yaml:"temperature"`
	// Timeout is the maximum time to wait for model responses
	Timeout time.Duration `yaml:"timeout"`
}

// PipelineConfig configures document processing
type PipelineConfig struct {
	// MaxSegmentLength caps the characters per text segment
	MaxSegmentLength int `yaml:"max_segment_length"`
	// FailFast aborts a run on the first extraction failure instead of
	// degrading to partial results
	FailFast bool `yaml:"fail_fast"`
}

// StorageConfig configures graph persistence
type StorageConfig struct {
	// GraphPath is the JSON knowledge graph file
	GraphPath string `yaml:"graph_path"`
	// SQLitePath is the SQLite mirror database (empty = disabled)
	SQLitePath string `yaml:"sqlite_path"`
	// ExportDir is the default directory for exports
	ExportDir string `yaml:"export_dir"`
}

// WatchConfig configures directory watching
type WatchConfig struct {
	// Debounce is the quiet period before a changed file is processed
	Debounce time.Duration `yaml:"debounce"`
	// Extensions is the list of file extensions to watch
	Extensions []string `yaml:"extensions"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Model: ModelConfig{
			Provider:    "ollama",
			Name:        "qwen2.5-coder:32b",
			Endpoint:    "http://localhost:11434/v1",
			Temperature: 0.2,
			Timeout:     5 * time.Minute,
		},
		Pipeline: PipelineConfig{
			MaxSegmentLength: source.DefaultMaxSegmentLength,
			FailFast:         false,
		},
		Storage: StorageConfig{
			GraphPath:  "knowledge_graph.json",
			SQLitePath: "",
			ExportDir:  "exports",
		},
		Watch: WatchConfig{
			Debounce:   500 * time.Millisecond,
			Extensions: []string{".md", ".txt", ".html"},
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Model.Provider == "" {
		return fmt.Errorf("model.provider is required")
	}
	if c.Model.Name == "" {
		return fmt.Errorf("model.name is required")
	}
	if c.Model.Temperature < 0 || c.Model.Temperature > 1 {
		return fmt.Errorf("model.temperature must be between 0 and 1")
	}
	if c.Pipeline.MaxSegmentLength <= 0 {
		return fmt.Errorf("pipeline.max_segment_length must be positive")
	}
	if c.Storage.GraphPath == "" {
		return fmt.Errorf("storage.graph_path is required")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.Model.Provider != "" {
		c.Model.Provider = other.Model.Provider
	}
	if other.Model.Name != "" {
		c.Model.Name = other.Model.Name
	}
	if other.Model.Endpoint != "" {
		c.Model.Endpoint = other.Model.Endpoint
	}
	if other.Model.Temperature != 0 {
		c.Model.Temperature = other.Model.Temperature
	}
	if other.Model.Timeout != 0 {
		c.Model.Timeout = other.Model.Timeout
	}

	if other.Pipeline.MaxSegmentLength != 0 {
		c.Pipeline.MaxSegmentLength = other.Pipeline.MaxSegmentLength
	}
	if other.Pipeline.FailFast {
		c.Pipeline.FailFast = true
	}

	if other.Storage.GraphPath != "" {
		c.Storage.GraphPath = other.Storage.GraphPath
	}
	if other.Storage.SQLitePath != "" {
		c.Storage.SQLitePath = other.Storage.SQLitePath
	}
	if other.Storage.ExportDir != "" {
		c.Storage.ExportDir = other.Storage.ExportDir
	}

	if other.Watch.Debounce != 0 {
		c.Watch.Debounce = other.Watch.Debounce
	}
	if len(other.Watch.Extensions) > 0 {
		c.Watch.Extensions = other.Watch.Extensions
	}
}
