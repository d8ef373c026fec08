package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config holds the tunables for building and benchmarking succinct
// bitvectors and Sigma-ary strings: block/superblock widths, the
// default alphabet size, and where benchmark output goes.
type Config struct {
	// Layout settings control the block/superblock tabulation used by
	// the two-level structures.
	Layout struct {
		Width        int  `toml:"width"`         // bits per block, must be a multiple of 64
		SuperWidth   int  `toml:"super_width"`   // bits per superblock, must be a multiple of Width
		PreferPaired bool `toml:"prefer_paired"` // use the paired layout by default
		DefaultSigma int  `toml:"default_sigma"` // alphabet size for Sigma-ary strings when unspecified
	} `toml:"layout"`

	// Server settings for the rank-query HTTP+WebSocket front end.
	Server struct {
		Port            int  `toml:"port"`
		EnableWebsocket bool `toml:"enable_websocket"`
	} `toml:"server"`

	// Benchmark settings control cmd/rankbench.
	Benchmark struct {
		OutputFile    string `toml:"output_file"`
		Format        string `toml:"format"` // json, csv
		Iterations    int    `toml:"iterations"`
		SequenceSizes []int  `toml:"sequence_sizes"`
	} `toml:"benchmark"`

	// Trace settings control diagnostic logging of construction and
	// query calls.
	Trace struct {
		OutputFile string `toml:"output_file"`
		Enabled    bool   `toml:"enabled"`
		MaxEntries int    `toml:"max_entries"`
	} `toml:"trace"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Layout.Width = 64
	cfg.Layout.SuperWidth = 4096
	cfg.Layout.PreferPaired = false
	cfg.Layout.DefaultSigma = 256

	cfg.Server.Port = 8080
	cfg.Server.EnableWebsocket = true

	cfg.Benchmark.OutputFile = "bench.json"
	cfg.Benchmark.Format = "json"
	cfg.Benchmark.Iterations = 1000000
	cfg.Benchmark.SequenceSizes = []int{1 << 16, 1 << 20, 1 << 24}

	cfg.Trace.OutputFile = "trace.log"
	cfg.Trace.Enabled = false
	cfg.Trace.MaxEntries = 100000

	return cfg
}

// GetConfigPath returns the platform-specific config file path.
func GetConfigPath() string {
	var configDir string

	switch runtime.GOOS {
	case "windows":
		// Windows: %APPDATA%\pfbitvectors\config.toml
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		configDir = filepath.Join(configDir, "pfbitvectors")

	case "darwin", "linux":
		// macOS/Linux: ~/.config/pfbitvectors/config.toml
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.toml"
		}
		configDir = filepath.Join(homeDir, ".config", "pfbitvectors")

	default:
		return "config.toml"
	}

	if err := os.MkdirAll(configDir, 0750); err != nil {
		return "config.toml"
	}

	return filepath.Join(configDir, "config.toml")
}

// GetLogPath returns the platform-specific log directory path.
func GetLogPath() string {
	var logDir string

	switch runtime.GOOS {
	case "windows":
		logDir = os.Getenv("APPDATA")
		if logDir == "" {
			logDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		logDir = filepath.Join(logDir, "pfbitvectors", "logs")

	case "darwin", "linux":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "logs"
		}
		logDir = filepath.Join(homeDir, ".local", "share", "pfbitvectors", "logs")

	default:
		return "logs"
	}

	if err := os.MkdirAll(logDir, 0750); err != nil {
		return "logs"
	}

	return logDir
}

// Load loads configuration from the default config file.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom loads configuration from the specified file.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Save saves configuration to the default config file.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo saves configuration to the specified file.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path) // #nosec G304 -- user config file path
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close config file: %w", closeErr)
		}
	}()

	encoder := toml.NewEncoder(f)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return nil
}
