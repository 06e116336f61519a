package shippo

import "errors"

// Config holds configuration for the Shippo shipping API
type Config struct {
	// APIToken is the Shippo API token (live or test)
	APIToken string
	// BaseURL is the Shippo API base URL
	BaseURL string
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

// ProductionURL is the Shippo API endpoint
const ProductionURL = "https://api.goshippo.com"

// ErrConfigMissingToken indicates a missing API token
var ErrConfigMissingToken = errors.New("shippo: API token is required")

// NewConfig creates a new Shippo configuration with defaults
func NewConfig(apiToken string) *Config {
	return &Config{
		APIToken:       apiToken,
		BaseURL:        ProductionURL,
		TimeoutSeconds: 30,
	}
}

// Validate validates the Shippo configuration
func (c *Config) Validate() error {
	if c.APIToken == "" {
		return ErrConfigMissingToken
	}
	if c.BaseURL == "" {
		c.BaseURL = ProductionURL
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}
