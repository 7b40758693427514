package app

import (
	"errors"
	"fmt"

	"github.com/ruth561/DAG-BPF/internal/scheduler"
)

// Config holds all the necessary configuration for an App instance to run.
// Zero values of the override fields mean "use the configuration files".
type Config struct {
	Paths []string // .hcl and RD-Gen .yaml files or directories

	LogFormat       string
	LogLevel        string
	HealthcheckPort int

	Algorithm    string
	PoolCapacity int
	Units        int
	DebugChecks  bool
	// Now is the release time, in nanoseconds, that absolute deadlines are
	// computed from.
	Now int64
}

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.Paths) == 0 {
		return nil, errors.New("at least one configuration path is required")
	}
	if cfg.Algorithm != "" {
		if _, err := scheduler.ParseAlgorithm(cfg.Algorithm); err != nil {
			return nil, err
		}
	}
	if cfg.PoolCapacity < 0 {
		return nil, fmt.Errorf("pool capacity must not be negative, got %d", cfg.PoolCapacity)
	}
	if cfg.Units < 0 {
		return nil, fmt.Errorf("units must not be negative, got %d", cfg.Units)
	}
	return &cfg, nil
}
