package accounting

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pinehillfarm/backend/internal/domain/channel"
	"github.com/pinehillfarm/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Config holds the per-tenant accounting assumptions used when a channel
// does not report fees itself.
type Config struct {
	shared.TenantAggregateRoot
	TaxRate        decimal.Decimal // Applied when a channel omits tax
	CloverFeePct   decimal.Decimal
	BigCommFeePct  decimal.Decimal
	AmazonFeePct   decimal.Decimal
	FiscalYearEnds string // MM-DD
}

// NewConfig creates a config with zeroed rates
func NewConfig(tenantID uuid.UUID) *Config {
	return &Config{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		TaxRate:             decimal.Zero,
		CloverFeePct:        decimal.Zero,
		BigCommFeePct:       decimal.Zero,
		AmazonFeePct:        decimal.NewFromFloat(15), // Amazon referral default
		FiscalYearEnds:      "12-31",
	}
}

// SetFeePct sets the fee percentage assumed for a channel
func (c *Config) SetFeePct(platform channel.PlatformCode, pct decimal.Decimal) error {
	if pct.IsNegative() || pct.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_FEE", "Fee percent must be between 0 and 100")
	}
	switch platform {
	case channel.PlatformClover:
		c.CloverFeePct = pct
	case channel.PlatformBigCommerce:
		c.BigCommFeePct = pct
	case channel.PlatformAmazon:
		c.AmazonFeePct = pct
	default:
		return shared.NewDomainError("INVALID_PLATFORM", "Unknown sales channel")
	}
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// FeePct returns the assumed fee percentage for a channel
func (c *Config) FeePct(platform channel.PlatformCode) decimal.Decimal {
	switch platform {
	case channel.PlatformClover:
		return c.CloverFeePct
	case channel.PlatformBigCommerce:
		return c.BigCommFeePct
	case channel.PlatformAmazon:
		return c.AmazonFeePct
	}
	return decimal.Zero
}

// EstimateFee applies the channel fee percentage to revenue
func (c *Config) EstimateFee(platform channel.PlatformCode, revenue decimal.Decimal) decimal.Decimal {
	return revenue.Mul(c.FeePct(platform)).Div(decimal.NewFromInt(100)).Round(2)
}

// ConfigRepository defines the interface for accounting config persistence
type ConfigRepository interface {
	Save(ctx context.Context, config *Config) error
	FindByTenant(ctx context.Context, tenantID uuid.UUID) (*Config, error)
}
