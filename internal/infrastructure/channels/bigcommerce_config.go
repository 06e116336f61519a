package channels

import "errors"

// BigCommerceConfig holds configuration for the BigCommerce store API
type BigCommerceConfig struct {
	// StoreHash identifies the store in API URLs
	StoreHash string
	// AccessToken is the store API account token
	AccessToken string
	// BaseURL is the API host, normally https://api.bigcommerce.com
	BaseURL string
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

// BigCommerceAPIURL is the production API host
const BigCommerceAPIURL = "https://api.bigcommerce.com"

// Errors for BigCommerce configuration
var (
	ErrBigCommerceConfigMissingStore = errors.New("bigcommerce: store hash is required")
	ErrBigCommerceConfigMissingToken = errors.New("bigcommerce: access token is required")
)

// NewBigCommerceConfig creates a new BigCommerce configuration with defaults
func NewBigCommerceConfig(storeHash, accessToken string) *BigCommerceConfig {
	return &BigCommerceConfig{
		StoreHash:      storeHash,
		AccessToken:    accessToken,
		BaseURL:        BigCommerceAPIURL,
		TimeoutSeconds: 30,
	}
}

// Validate validates the BigCommerce configuration
func (c *BigCommerceConfig) Validate() error {
	if c.StoreHash == "" {
		return ErrBigCommerceConfigMissingStore
	}
	if c.AccessToken == "" {
		return ErrBigCommerceConfigMissingToken
	}
	if c.BaseURL == "" {
		c.BaseURL = BigCommerceAPIURL
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}
