// SPDX-License-Identifier: MIT
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/nojokecox2102-crypto/quantum-chord-display/pkg/bitint"
)

// LoadConfig loads configuration from a YAML file specified by path. If path
// is empty it searches the default location ("config.yaml"); if no file is
// found the built-in defaults are used. Environment variable overrides are
// applied after loading, and the final configuration is validated.
func LoadConfig(path string) (*Config, error) {
	cfg := NewConfig()

	if path == "" {
		if _, err := os.Stat("config.yaml"); err == nil {
			path = "config.yaml"
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration for values the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Audio.SampleRate < MinSampleRate || c.Audio.SampleRate > MaxSampleRate {
		return fmt.Errorf("audio.sample_rate %.0f outside supported range [%d, %d]",
			c.Audio.SampleRate, MinSampleRate, MaxSampleRate)
	}
	if c.Audio.Channels < 1 {
		return fmt.Errorf("audio.channels must be at least 1, got %d", c.Audio.Channels)
	}
	if !bitint.IsPowerOfTwo(c.Analysis.FFTSize) || c.Analysis.FFTSize > MaxFFTSize {
		return fmt.Errorf("analysis.fft_size must be a power of 2 up to %d, got %d",
			MaxFFTSize, c.Analysis.FFTSize)
	}
	if c.Analysis.WindowSeconds <= 0 {
		return fmt.Errorf("analysis.window_seconds must be positive, got %f", c.Analysis.WindowSeconds)
	}
	if c.Analysis.Smoothing < 0 || c.Analysis.Smoothing >= 1 {
		return fmt.Errorf("analysis.smoothing must be in [0, 1), got %f", c.Analysis.Smoothing)
	}
	if c.Analysis.PollIntervalMs <= 0 {
		return fmt.Errorf("analysis.poll_interval_ms must be positive, got %d", c.Analysis.PollIntervalMs)
	}
	if c.Serve.Enabled && c.Serve.Addr == "" {
		return fmt.Errorf("serve.addr must be set when serve is enabled")
	}
	return nil
}

// applyEnvOverrides applies CHORD_* environment variables on top of the
// loaded configuration. Unparseable values are ignored.
func (c *Config) applyEnvOverrides() {
	if val, ok := os.LookupEnv("CHORD_LOG_LEVEL"); ok {
		c.LogLevel = val
	}
	if val, ok := os.LookupEnv("CHORD_DEVICE"); ok {
		if iVal, err := strconv.Atoi(val); err == nil {
			c.Audio.DeviceID = iVal
		}
	}
	if val, ok := os.LookupEnv("CHORD_SAMPLE_RATE"); ok {
		if fVal, err := strconv.ParseFloat(val, 64); err == nil {
			c.Audio.SampleRate = fVal
		}
	}
	if val, ok := os.LookupEnv("CHORD_SERVE_ENABLED"); ok {
		if bVal, err := strconv.ParseBool(val); err == nil {
			c.Serve.Enabled = bVal
		}
	}
	if val, ok := os.LookupEnv("CHORD_SERVE_ADDR"); ok {
		c.Serve.Addr = val
	}
}
