package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Layout.Width != 64 {
		t.Errorf("Expected Width=64, got %d", cfg.Layout.Width)
	}
	if cfg.Layout.SuperWidth != 4096 {
		t.Errorf("Expected SuperWidth=4096, got %d", cfg.Layout.SuperWidth)
	}
	if cfg.Layout.DefaultSigma != 256 {
		t.Errorf("Expected DefaultSigma=256, got %d", cfg.Layout.DefaultSigma)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Expected Port=8080, got %d", cfg.Server.Port)
	}
	if !cfg.Server.EnableWebsocket {
		t.Error("Expected EnableWebsocket=true")
	}

	if cfg.Benchmark.Format != "json" {
		t.Errorf("Expected Format=json, got %s", cfg.Benchmark.Format)
	}
	if cfg.Benchmark.Iterations != 1000000 {
		t.Errorf("Expected Iterations=1000000, got %d", cfg.Benchmark.Iterations)
	}

	if cfg.Trace.MaxEntries != 100000 {
		t.Errorf("Expected MaxEntries=100000, got %d", cfg.Trace.MaxEntries)
	}
}

func TestGetConfigPath(t *testing.T) {
	path := GetConfigPath()

	if path == "" {
		t.Error("GetConfigPath returned empty string")
	}

	if filepath.Base(path) != "config.toml" {
		t.Errorf("Expected path to end with config.toml, got %s", path)
	}

	switch runtime.GOOS {
	case "windows":
		if !filepath.IsAbs(path) && path != "config.toml" {
			t.Errorf("Expected absolute path on Windows, got %s", path)
		}

	case "darwin", "linux":
		dir := filepath.Dir(path)
		if filepath.Base(dir) != "pfbitvectors" && path != "config.toml" {
			t.Errorf("Expected path in pfbitvectors directory or fallback, got %s", path)
		}
	}
}

func TestGetLogPath(t *testing.T) {
	path := GetLogPath()

	if path == "" {
		t.Error("GetLogPath returned empty string")
	}

	switch runtime.GOOS {
	case "windows":
		if !filepath.IsAbs(path) && path != "logs" {
			t.Errorf("Expected absolute path on Windows, got %s", path)
		}

	case "darwin", "linux":
		if filepath.Base(path) != "logs" {
			t.Errorf("Expected path to end with logs, got %s", path)
		}
	}
}

func TestSaveAndLoad(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test_config.toml")

	cfg := DefaultConfig()
	cfg.Layout.Width = 128
	cfg.Layout.PreferPaired = true
	cfg.Server.Port = 9090
	cfg.Benchmark.Iterations = 42
	cfg.Trace.Enabled = true

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatal("Config file was not created")
	}

	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if loaded.Layout.Width != 128 {
		t.Errorf("Expected Width=128, got %d", loaded.Layout.Width)
	}
	if !loaded.Layout.PreferPaired {
		t.Error("Expected PreferPaired=true")
	}
	if loaded.Server.Port != 9090 {
		t.Errorf("Expected Port=9090, got %d", loaded.Server.Port)
	}
	if loaded.Benchmark.Iterations != 42 {
		t.Errorf("Expected Iterations=42, got %d", loaded.Benchmark.Iterations)
	}
	if !loaded.Trace.Enabled {
		t.Error("Expected Enabled=true")
	}
}

func TestLoadNonExistent(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "nonexistent.toml")

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("LoadFrom should not error on non-existent file: %v", err)
	}

	if cfg.Layout.Width != 64 {
		t.Error("Expected default config when file doesn't exist")
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "invalid.toml")

	invalidTOML := `
[layout]
width = "not a number"
`
	if err := os.WriteFile(configPath, []byte(invalidTOML), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	_, err := LoadFrom(configPath)
	if err == nil {
		t.Error("Expected error when loading invalid TOML")
	}
}

func TestSaveCreatesDirectory(t *testing.T) {
	tempDir := t.TempDir()

	configPath := filepath.Join(tempDir, "subdir1", "subdir2", "config.toml")

	cfg := DefaultConfig()
	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("Config file was not created")
	}

	dir := filepath.Dir(configPath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		t.Error("Parent directories were not created")
	}
}
