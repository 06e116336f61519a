package channels

import "errors"

// CloverConfig holds configuration for the Clover POS REST API
type CloverConfig struct {
	// MerchantID is the Clover merchant the token is scoped to
	MerchantID string
	// APIToken is the merchant-scoped API token
	APIToken string
	// BaseURL is the Clover API base (production or sandbox)
	BaseURL string
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

const (
	// CloverProductionURL is the production API endpoint
	CloverProductionURL = "https://api.clover.com"
	// CloverSandboxURL is the sandbox API endpoint
	CloverSandboxURL = "https://sandbox.dev.clover.com"
)

// Errors for Clover configuration
var (
	ErrCloverConfigMissingMerchant = errors.New("clover: merchant ID is required")
	ErrCloverConfigMissingToken    = errors.New("clover: API token is required")
)

// NewCloverConfig creates a new Clover configuration with defaults
func NewCloverConfig(merchantID, apiToken string) *CloverConfig {
	return &CloverConfig{
		MerchantID:     merchantID,
		APIToken:       apiToken,
		BaseURL:        CloverProductionURL,
		TimeoutSeconds: 30,
	}
}

// Validate validates the Clover configuration
func (c *CloverConfig) Validate() error {
	if c.MerchantID == "" {
		return ErrCloverConfigMissingMerchant
	}
	if c.APIToken == "" {
		return ErrCloverConfigMissingToken
	}
	if c.BaseURL == "" {
		c.BaseURL = CloverProductionURL
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}
