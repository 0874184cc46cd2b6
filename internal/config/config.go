// Package config provides unified configuration loading for spinsim.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"math"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Defaults are the original experiment's constants: a 68 ms echo with the
// first refocusing pulse 6 ms after excitation, 32 µs editing-pulse dwell,
// and a 2048-point acquisition at 200 µs dwell.
const (
	DefaultEchoTime    = 0.068
	DefaultT12         = 0.006
	DefaultPulseDwell  = 32e-6
	DefaultCalibration = 1.0
	DefaultAcqDwell    = 2e-4
	DefaultPoints      = 2048
	DefaultVarName     = "test_fid"
)

// Config contains all spinsim configuration settings.
type Config struct {
	// Sequence contains the MEGA-PRESS timing and calibration constants.
	Sequence SequenceConfig `yaml:"sequence"`

	// Acquisition contains the signal sampling settings.
	Acquisition AcquisitionConfig `yaml:"acquisition"`

	// Logging contains settings for operational and step logging.
	Logging LoggingConfig `yaml:"logging"`

	// History contains the run-history settings.
	History HistoryConfig `yaml:"history"`
}

// SequenceConfig configures the pulse sequence.
type SequenceConfig struct {
	// EchoTime is the full echo time TE in seconds.
	EchoTime float64 `yaml:"echo_time_s"`

	// T12 is the 90°-to-180° interval in seconds.
	T12 float64 `yaml:"t12_s"`

	// PulseDwell is the editing-waveform sample dwell in seconds.
	PulseDwell float64 `yaml:"pulse_dwell_s"`

	// Calibration scales raw waveform amplitude to flip angle.
	Calibration float64 `yaml:"calibration"`
}

// AcquisitionConfig configures signal synthesis.
type AcquisitionConfig struct {
	// Dwell is the acquisition dwell time in seconds.
	Dwell float64 `yaml:"dwell_s"`

	// Points is the number of FID samples to synthesize.
	Points int `yaml:"points"`
}

// LoggingConfig configures spinsim's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	// "debug" enables step tracing to .spinsim/steps.jsonl.
	Level string `yaml:"level"`
}

// HistoryConfig configures the run-history ledger.
type HistoryConfig struct {
	// Enabled turns run recording on or off.
	Enabled bool `yaml:"enabled"`

	// Path is the SQLite database location.
	Path string `yaml:"path"`
}

// Default returns a Config with the original experiment's constants.
func Default() *Config {
	return &Config{
		Sequence: SequenceConfig{
			EchoTime:    DefaultEchoTime,
			T12:         DefaultT12,
			PulseDwell:  DefaultPulseDwell,
			Calibration: DefaultCalibration,
		},
		Acquisition: AcquisitionConfig{
			Dwell:  DefaultAcqDwell,
			Points: DefaultPoints,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    ".spinsim/runs.db",
		},
	}
}

// Load loads configuration from the default location and environment
// variables. Order: defaults -> ./spinsim.yaml -> environment variables.
func Load() (*Config, error) {
	cfg := Default()

	if _, err := os.Stat("spinsim.yaml"); err == nil {
		fileCfg, loadErr := LoadFromFile("spinsim.yaml")
		if loadErr != nil {
			return nil, fmt.Errorf("loading config file: %w", loadErr)
		}
		cfg = fileCfg
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// LoadFromFile loads configuration from a specific YAML file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	finite := func(name string, v float64) error {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s is not finite", name)
		}
		return nil
	}
	if err := finite("echo_time_s", c.Sequence.EchoTime); err != nil {
		return err
	}
	if c.Sequence.EchoTime <= 0 {
		return fmt.Errorf("echo_time_s must be positive, got %v", c.Sequence.EchoTime)
	}
	if err := finite("t12_s", c.Sequence.T12); err != nil {
		return err
	}
	if c.Sequence.T12 < 0 {
		return fmt.Errorf("t12_s must be non-negative, got %v", c.Sequence.T12)
	}
	if err := finite("pulse_dwell_s", c.Sequence.PulseDwell); err != nil {
		return err
	}
	if c.Sequence.PulseDwell <= 0 {
		return fmt.Errorf("pulse_dwell_s must be positive, got %v", c.Sequence.PulseDwell)
	}
	if err := finite("calibration", c.Sequence.Calibration); err != nil {
		return err
	}
	if err := finite("acquisition dwell_s", c.Acquisition.Dwell); err != nil {
		return err
	}
	if c.Acquisition.Dwell <= 0 {
		return fmt.Errorf("acquisition dwell_s must be positive, got %v", c.Acquisition.Dwell)
	}
	if c.Acquisition.Points < 0 {
		return fmt.Errorf("points must be non-negative, got %d", c.Acquisition.Points)
	}

	validLevels := map[string]bool{"info": true, "debug": true, "trace": true}
	if c.Logging.Level != "" && !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: info, debug, trace, or empty for default)", c.Logging.Level)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	setFloat := func(key string, dst *float64) {
		if v := os.Getenv(key); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				*dst = f
			}
		}
	}

	setFloat("SPINSIM_ECHO_TIME", &cfg.Sequence.EchoTime)
	setFloat("SPINSIM_T12", &cfg.Sequence.T12)
	setFloat("SPINSIM_PULSE_DWELL", &cfg.Sequence.PulseDwell)
	setFloat("SPINSIM_CALIBRATION", &cfg.Sequence.Calibration)
	setFloat("SPINSIM_ACQ_DWELL", &cfg.Acquisition.Dwell)

	if v := os.Getenv("SPINSIM_POINTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Acquisition.Points = n
		}
	}
	if v := os.Getenv("SPINSIM_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("SPINSIM_HISTORY"); v != "" {
		cfg.History.Enabled = v == "true" || v == "1"
	}
	if v := os.Getenv("SPINSIM_HISTORY_PATH"); v != "" {
		cfg.History.Path = v
	}
}
