package app

import (
	"errors"
	"time"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ScenarioPath string // hcl scenario file

	LogFormat       string
	LogLevel        string
	HealthcheckPort int

	// Truncate is the default for queries that do not set truncate
	// themselves.
	Truncate bool

	// Worker pool tuning.
	GracePeriod  time.Duration
	TickInterval time.Duration
}

// NewConfig validates a Config and fills in pool defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ScenarioPath == "" {
		return nil, errors.New("ScenarioPath is a required configuration field and cannot be empty")
	}
	if cfg.GracePeriod <= 0 {
		cfg.GracePeriod = 5 * time.Second
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = 10 * time.Millisecond
	}
	return &cfg, nil
}
