package piapi

import (
	"errors"
	"time"
)

// Config holds configuration for the PiAPI video generation aggregator
type Config struct {
	// APIKey is the PiAPI account key
	APIKey string
	// BaseURL is the PiAPI base URL
	BaseURL string
	// PollInterval is the fixed delay between task status polls
	PollInterval time.Duration
	// MaxPollAttempts bounds how many polls happen before a task is
	// declared timed out
	MaxPollAttempts int
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

// ProductionURL is the PiAPI endpoint
const ProductionURL = "https://api.piapi.ai"

// ErrConfigMissingKey indicates a missing API key
var ErrConfigMissingKey = errors.New("piapi: API key is required")

// NewConfig creates a new PiAPI configuration with defaults
func NewConfig(apiKey string) *Config {
	return &Config{
		APIKey:          apiKey,
		BaseURL:         ProductionURL,
		PollInterval:    10 * time.Second,
		MaxPollAttempts: 60,
		TimeoutSeconds:  60,
	}
}

// Validate validates the PiAPI configuration
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrConfigMissingKey
	}
	if c.BaseURL == "" {
		c.BaseURL = ProductionURL
	}
	if c.PollInterval <= 0 {
		c.PollInterval = 10 * time.Second
	}
	if c.MaxPollAttempts <= 0 {
		c.MaxPollAttempts = 60
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 60
	}
	return nil
}
