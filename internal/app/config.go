package app

import (
	"errors"
	"time"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	PlanPath string // .hcl file or directory

	Workers    int
	Timeout    time.Duration
	Sequential bool
	DryRun     bool

	LogFormat string
	LogLevel  string
}

// NewConfig validates a Config. Worker and timeout values are passed
// through as-is; the executor's readiness check owns those rules and
// reports them in its own words.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.PlanPath == "" {
		return nil, errors.New("PlanPath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
