package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the application configuration
type Config struct {
	Athlete  AthleteConfig  `json:"athlete"`
	Analysis AnalysisConfig `json:"analysis"`
	Import   ImportConfig   `json:"import"`
}

// AthleteConfig holds athlete-specific settings
type AthleteConfig struct {
	RestingHR  float64 `json:"resting_hr"`
	MaxHR      float64 `json:"max_hr"`
	Zone2Floor float64 `json:"zone2_floor"`
}

// AnalysisConfig tunes the load-mix verdict cutoffs, each a share of
// total time-in-zone for the window.
type AnalysisConfig struct {
	VO2Ceiling     float64 `json:"vo2_ceiling"`
	TempoHeavy     float64 `json:"tempo_heavy"`
	TempoThreshold float64 `json:"tempo_threshold"`
	GreyZone       float64 `json:"grey_zone"`
}

// ImportConfig holds import preferences
type ImportConfig struct {
	DefaultDir string `json:"default_dir"`
}

// ErrNoConfig is returned when the config file doesn't exist
var ErrNoConfig = errors.New("config file not found")

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Athlete: AthleteConfig{
			RestingHR:  50,
			MaxHR:      185,
			Zone2Floor: 111,
		},
		Analysis: AnalysisConfig{
			VO2Ceiling:     0.12,
			TempoHeavy:     0.35,
			TempoThreshold: 0.15,
			GreyZone:       0.25,
		},
	}
}

// Load reads the configuration from ~/.ultrastate/config.json
func Load() (*Config, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, ErrNoConfig
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Apply defaults for missing values
	defaults := DefaultConfig()
	if cfg.Athlete.RestingHR == 0 {
		cfg.Athlete.RestingHR = defaults.Athlete.RestingHR
	}
	if cfg.Athlete.MaxHR == 0 {
		cfg.Athlete.MaxHR = defaults.Athlete.MaxHR
	}
	if cfg.Athlete.Zone2Floor == 0 {
		// Zone 2 starts at 60% of max HR unless the athlete pins it.
		cfg.Athlete.Zone2Floor = 0.60 * cfg.Athlete.MaxHR
	}
	if cfg.Analysis.VO2Ceiling == 0 {
		cfg.Analysis.VO2Ceiling = defaults.Analysis.VO2Ceiling
	}
	if cfg.Analysis.TempoHeavy == 0 {
		cfg.Analysis.TempoHeavy = defaults.Analysis.TempoHeavy
	}
	if cfg.Analysis.TempoThreshold == 0 {
		cfg.Analysis.TempoThreshold = defaults.Analysis.TempoThreshold
	}
	if cfg.Analysis.GreyZone == 0 {
		cfg.Analysis.GreyZone = defaults.Analysis.GreyZone
	}

	return &cfg, nil
}

// Save writes the configuration to ~/.ultrastate/config.json
func Save(cfg *Config) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// CreateExample creates an example config file if none exists
func CreateExample() error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	// Check if config already exists
	if _, err := os.Stat(path); err == nil {
		return nil // Config exists, don't overwrite
	}

	example := DefaultConfig()
	example.Import.DefaultDir = "/path/to/your/fit/files"

	return Save(&example)
}

// Validate checks if the config has sensible values
func (c *Config) Validate() error {
	if c.Athlete.MaxHR <= 0 {
		return errors.New("athlete.max_hr is required")
	}
	if c.Athlete.RestingHR <= 0 {
		return errors.New("athlete.resting_hr is required")
	}
	if c.Athlete.RestingHR >= c.Athlete.MaxHR {
		return fmt.Errorf("athlete.resting_hr (%v) must be less than athlete.max_hr (%v)", c.Athlete.RestingHR, c.Athlete.MaxHR)
	}
	if c.Athlete.Zone2Floor > 0 && c.Athlete.Zone2Floor >= c.Athlete.MaxHR {
		return fmt.Errorf("athlete.zone2_floor (%v) must be less than athlete.max_hr (%v)", c.Athlete.Zone2Floor, c.Athlete.MaxHR)
	}
	for _, cutoff := range []struct {
		name  string
		value float64
	}{
		{"vo2_ceiling", c.Analysis.VO2Ceiling},
		{"tempo_heavy", c.Analysis.TempoHeavy},
		{"tempo_threshold", c.Analysis.TempoThreshold},
		{"grey_zone", c.Analysis.GreyZone},
	} {
		if cutoff.value < 0 || cutoff.value > 1 {
			return fmt.Errorf("analysis.%s (%v) must be between 0 and 1", cutoff.name, cutoff.value)
		}
	}
	return nil
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".ultrastate", "config.json"), nil
}

// GetConfigDir returns the path to the config directory
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".ultrastate"), nil
}
