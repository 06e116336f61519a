package channels

import "errors"

// AmazonConfig holds configuration for the Amazon Selling Partner API
type AmazonConfig struct {
	// SellerID is the merchant token used in listings calls
	SellerID string
	// MarketplaceID identifies the marketplace (ATVPDKIKX0DER for US)
	MarketplaceID string
	// ClientID and ClientSecret are the LWA application credentials
	ClientID     string
	ClientSecret string
	// RefreshToken is the LWA refresh token for the selling partner
	RefreshToken string
	// BaseURL is the SP-API regional endpoint
	BaseURL string
	// AuthURL is the LWA token endpoint
	AuthURL string
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

const (
	// AmazonNorthAmericaURL is the North America SP-API endpoint
	AmazonNorthAmericaURL = "https://sellingpartnerapi-na.amazon.com"
	// AmazonLWATokenURL is the Login with Amazon token endpoint
	AmazonLWATokenURL = "https://api.amazon.com/auth/o2/token"
	// AmazonUSMarketplaceID is the amazon.com marketplace
	AmazonUSMarketplaceID = "ATVPDKIKX0DER"
)

// Errors for Amazon configuration
var (
	ErrAmazonConfigMissingSeller       = errors.New("amazon: seller ID is required")
	ErrAmazonConfigMissingClientID     = errors.New("amazon: LWA client ID is required")
	ErrAmazonConfigMissingClientSecret = errors.New("amazon: LWA client secret is required")
	ErrAmazonConfigMissingRefreshToken = errors.New("amazon: LWA refresh token is required")
)

// NewAmazonConfig creates a new Amazon configuration with defaults
func NewAmazonConfig(sellerID, clientID, clientSecret, refreshToken string) *AmazonConfig {
	return &AmazonConfig{
		SellerID:       sellerID,
		MarketplaceID:  AmazonUSMarketplaceID,
		ClientID:       clientID,
		ClientSecret:   clientSecret,
		RefreshToken:   refreshToken,
		BaseURL:        AmazonNorthAmericaURL,
		AuthURL:        AmazonLWATokenURL,
		TimeoutSeconds: 30,
	}
}

// Validate validates the Amazon configuration
func (c *AmazonConfig) Validate() error {
	if c.SellerID == "" {
		return ErrAmazonConfigMissingSeller
	}
	if c.ClientID == "" {
		return ErrAmazonConfigMissingClientID
	}
	if c.ClientSecret == "" {
		return ErrAmazonConfigMissingClientSecret
	}
	if c.RefreshToken == "" {
		return ErrAmazonConfigMissingRefreshToken
	}
	if c.MarketplaceID == "" {
		c.MarketplaceID = AmazonUSMarketplaceID
	}
	if c.BaseURL == "" {
		c.BaseURL = AmazonNorthAmericaURL
	}
	if c.AuthURL == "" {
		c.AuthURL = AmazonLWATokenURL
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}
