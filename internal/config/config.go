package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dirdrill/dirdrill/pkg/utils"
)

// Config represents the application configuration
type Config struct {
	StartPath           string `yaml:"start_path"`
	MaxDepth            int    `yaml:"max_depth"`
	Top                 int    `yaml:"top"`
	MaxWorkers          int    `yaml:"max_workers"`
	OnlyPhysicalFiles   bool   `yaml:"only_physical_files"`
	FollowReparsePoints bool   `yaml:"follow_reparse_points"`
	MinSize             string `yaml:"min_size"` // e.g. "1MB"; rows below are hidden

	// Scheduler tuning. All values are clamped by Validate.
	PollIntervalMs int `yaml:"poll_interval_ms"`
	QuietWindowSec int `yaml:"quiet_window_sec"`
	HardTimeoutSec int `yaml:"hard_timeout_sec"`

	// ExcludeNames are entry names measured with a shallow single-level scan
	// and never drilled into. Matched case-insensitively against the base
	// name. Empty means use the platform defaults.
	ExcludeNames []string `yaml:"exclude_names"`

	Transcript    bool   `yaml:"transcript"`
	TranscriptDir string `yaml:"transcript_dir"`
	Verbose       bool   `yaml:"verbose"`
	DryRun        bool   `yaml:"dry_run"`
}

const (
	MinDepth      = 1
	MaxDepthCap   = 100
	MinTop        = 1
	MaxTopCap     = 100
	MinWorkers    = 1
	MaxWorkersCap = 50
)

// Load loads configuration from a file. A missing file yields the defaults.
func Load(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return GetDefault(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := GetDefault()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Save saves configuration to a file
func Save(config *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.StartPath == "" {
		return fmt.Errorf("start path must not be empty")
	}

	if c.MaxDepth < MinDepth || c.MaxDepth > MaxDepthCap {
		return fmt.Errorf("max depth must be between %d and %d, got %d", MinDepth, MaxDepthCap, c.MaxDepth)
	}

	if c.Top < MinTop || c.Top > MaxTopCap {
		return fmt.Errorf("top must be between %d and %d, got %d", MinTop, MaxTopCap, c.Top)
	}

	if c.MaxWorkers < MinWorkers || c.MaxWorkers > MaxWorkersCap {
		return fmt.Errorf("max workers must be between %d and %d, got %d", MinWorkers, MaxWorkersCap, c.MaxWorkers)
	}

	if c.PollIntervalMs <= 0 {
		return fmt.Errorf("poll interval must be > 0 ms")
	}
	if c.QuietWindowSec <= 0 {
		return fmt.Errorf("quiet window must be > 0 s")
	}
	if c.HardTimeoutSec <= 0 {
		return fmt.Errorf("hard timeout must be > 0 s")
	}

	if c.MinSize != "" {
		if _, err := utils.ParseSize(c.MinSize); err != nil {
			return fmt.Errorf("invalid min_size %q: %w", c.MinSize, err)
		}
	}

	return nil
}

// PollInterval returns the scheduler poll interval as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMs) * time.Millisecond
}

// QuietWindow returns the stuck-task warning window as a duration.
func (c *Config) QuietWindow() time.Duration {
	return time.Duration(c.QuietWindowSec) * time.Second
}

// HardTimeout returns the overall scheduling deadline as a duration.
func (c *Config) HardTimeout() time.Duration {
	return time.Duration(c.HardTimeoutSec) * time.Second
}

// GetConfigPath returns the default config path
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	configDir := filepath.Join(homeDir, ".config", "dirdrill")
	return filepath.Join(configDir, "config.yaml"), nil
}

// EnsureConfigExists creates a default config file if it doesn't exist
func EnsureConfigExists() (string, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := Save(GetDefault(), configPath); err != nil {
			return "", err
		}
	}

	return configPath, nil
}
