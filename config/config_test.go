package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Model.Provider != "ollama" {
		t.Errorf("expected default provider ollama, got %s", cfg.Model.Provider)
	}
	if cfg.Model.Endpoint != "http://localhost:11434/v1" {
		t.Errorf("expected default endpoint http://localhost:11434/v1, got %s", cfg.Model.Endpoint)
	}
	if cfg.Model.Temperature != 0.2 {
		t.Errorf("expected default temperature 0.2, got %f", cfg.Model.Temperature)
	}
	if cfg.Pipeline.MaxSegmentLength != 2000 {
		t.Errorf("expected default segment length 2000, got %d", cfg.Pipeline.MaxSegmentLength)
	}
	if cfg.Pipeline.FailFast {
		t.Error("expected degrade-on-failure by default")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing provider",
			modify:  func(c *Config) { c.Model.Provider = "" },
			wantErr: true,
		},
		{
			name:    "missing model name",
			modify:  func(c *Config) { c.Model.Name = "" },
			wantErr: true,
		},
		{
			name:    "temperature too low",
			modify:  func(c *Config) { c.Model.Temperature = -0.1 },
			wantErr: true,
		},
		{
			name:    "temperature too high",
			modify:  func(c *Config) { c.Model.Temperature = 1.1 },
			wantErr: true,
		},
		{
			name:    "non-positive segment length",
			modify:  func(c *Config) { c.Pipeline.MaxSegmentLength = 0 },
			wantErr: true,
		},
		{
			name:    "missing graph path",
			modify:  func(c *Config) { c.Storage.GraphPath = "" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
model:
  provider: "anthropic"
  name: "test-model"
  endpoint: "http://test:1234/v1"
  temperature: 0.5
  timeout: 10m
pipeline:
  max_segment_length: 1500
  fail_fast: true
storage:
  graph_path: "/data/kg.json"
  sqlite_path: "/data/kg.db"
watch:
  extensions:
    - .md
    - .rst
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if cfg.Model.Provider != "anthropic" {
		t.Errorf("expected provider anthropic, got %s", cfg.Model.Provider)
	}
	if cfg.Model.Name != "test-model" {
		t.Errorf("expected model test-model, got %s", cfg.Model.Name)
	}
	if cfg.Model.Timeout != 10*time.Minute {
		t.Errorf("expected timeout 10m, got %v", cfg.Model.Timeout)
	}
	if cfg.Pipeline.MaxSegmentLength != 1500 {
		t.Errorf("expected segment length 1500, got %d", cfg.Pipeline.MaxSegmentLength)
	}
	if !cfg.Pipeline.FailFast {
		t.Error("expected fail_fast true")
	}
	if cfg.Storage.SQLitePath != "/data/kg.db" {
		t.Errorf("expected sqlite path /data/kg.db, got %s", cfg.Storage.SQLitePath)
	}
	if len(cfg.Watch.Extensions) != 2 {
		t.Errorf("expected 2 watch extensions, got %d", len(cfg.Watch.Extensions))
	}
}

func TestConfigMerge(t *testing.T) {
	base := DefaultConfig()
	override := &Config{
		Model: ModelConfig{
			Name: "override-model",
		},
		Storage: StorageConfig{
			GraphPath: "/override/kg.json",
		},
	}

	base.Merge(override)

	if base.Model.Name != "override-model" {
		t.Errorf("expected model override-model, got %s", base.Model.Name)
	}
	// Endpoint should remain from base since override didn't set it
	if base.Model.Endpoint != "http://localhost:11434/v1" {
		t.Errorf("expected endpoint to remain default, got %s", base.Model.Endpoint)
	}
	if base.Storage.GraphPath != "/override/kg.json" {
		t.Errorf("expected graph path /override/kg.json, got %s", base.Storage.GraphPath)
	}
}

func TestConfigSaveToFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "subdir", "config.yaml")

	cfg := DefaultConfig()
	cfg.Model.Name = "saved-model"

	if err := cfg.SaveToFile(configPath); err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("config file was not created")
	}

	loaded, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}
	if loaded.Model.Name != "saved-model" {
		t.Errorf("expected model saved-model, got %s", loaded.Model.Name)
	}
}
