package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/me/rrsim/internal/logging"
	"github.com/me/rrsim/internal/scheduler"
	"gopkg.in/yaml.v3"
)

// ServerConfig holds configuration for the rrsim server.
type ServerConfig struct {
	Addr      string `yaml:"addr"`       // Listen address (default ":8080")
	LogLevel  string `yaml:"log_level"`  // Log level: debug, info, warn, error
	LogFormat string `yaml:"log_format"` // Log format: text, json
	DBPath    string `yaml:"db_path"`    // SQLite database path (default ~/.rrsim/rrsim.db, ":memory:" for testing)

	Simulation SimulationConfig `yaml:"simulation"`
}

// SimulationConfig holds the parameters applied when a request omits them.
type SimulationConfig struct {
	TimeQuantum int `yaml:"time_quantum"`
	MaxTime     int `yaml:"max_time"`
	// MaxProcesses caps the size of a single workload. Zero means no cap.
	MaxProcesses int `yaml:"max_processes"`
	// MaxTimeLimit caps the max_time a request may ask for. Zero means no cap.
	MaxTimeLimit int `yaml:"max_time_limit"`
}

// DefaultServerConfig returns sensible defaults.
func DefaultServerConfig() ServerConfig {
	sched := scheduler.DefaultConfig()
	return ServerConfig{
		Addr:      ":8080",
		LogLevel:  "info",
		LogFormat: "text",
		Simulation: SimulationConfig{
			TimeQuantum:  sched.TimeQuantum,
			MaxTime:      sched.MaxTime,
			MaxProcesses: 1000,
			MaxTimeLimit: 100000,
		},
	}
}

// LoadFile overlays the YAML file at path onto cfg. Keys absent from the
// file keep their current values.
func LoadFile(cfg *ServerConfig, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides cfg from RRSIM_* environment variables.
func ApplyEnv(cfg *ServerConfig) error {
	strVars := map[string]*string{
		"RRSIM_ADDR":       &cfg.Addr,
		"RRSIM_LOG_LEVEL":  &cfg.LogLevel,
		"RRSIM_LOG_FORMAT": &cfg.LogFormat,
		"RRSIM_DB":         &cfg.DBPath,
	}
	for name, dst := range strVars {
		if v, ok := os.LookupEnv(name); ok {
			*dst = v
		}
	}

	intVars := map[string]*int{
		"RRSIM_TIME_QUANTUM": &cfg.Simulation.TimeQuantum,
		"RRSIM_MAX_TIME":     &cfg.Simulation.MaxTime,
	}
	for name, dst := range intVars {
		v, ok := os.LookupEnv(name)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		*dst = n
	}
	return nil
}

// Validate checks the log format and the simulation defaults.
func (c ServerConfig) Validate() error {
	if _, err := logging.ParseFormat(c.LogFormat); err != nil {
		return fmt.Errorf("log_format: %w", err)
	}
	if c.Simulation.TimeQuantum <= 0 {
		return fmt.Errorf("simulation.time_quantum must be positive, got %d", c.Simulation.TimeQuantum)
	}
	if c.Simulation.MaxTime <= 0 {
		return fmt.Errorf("simulation.max_time must be positive, got %d", c.Simulation.MaxTime)
	}
	if c.Simulation.MaxTimeLimit > 0 && c.Simulation.MaxTime > c.Simulation.MaxTimeLimit {
		return fmt.Errorf("simulation.max_time %d exceeds max_time_limit %d", c.Simulation.MaxTime, c.Simulation.MaxTimeLimit)
	}
	return nil
}
