package accounting

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pinehillfarm/backend/internal/domain/accounting"
	"github.com/pinehillfarm/backend/internal/domain/channel"
)

// SaveConfigInput contains the per-tenant accounting assumptions
type SaveConfigInput struct {
	TenantID       uuid.UUID
	TaxRate        decimal.Decimal
	CloverFeePct   decimal.Decimal
	BigCommFeePct  decimal.Decimal
	AmazonFeePct   decimal.Decimal
	FiscalYearEnds string
}

// ConfigView is the outward view of the accounting config
type ConfigView struct {
	TenantID       uuid.UUID
	TaxRate        decimal.Decimal
	CloverFeePct   decimal.Decimal
	BigCommFeePct  decimal.Decimal
	AmazonFeePct   decimal.Decimal
	FiscalYearEnds string
}

// SummaryInput selects a reporting window
type SummaryInput struct {
	TenantID uuid.UUID
	From     time.Time
	To       time.Time
}

// TrendPoint is one day on the revenue trend
type TrendPoint struct {
	Day     time.Time       `json:"day"`
	Orders  int64           `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

// TopItem is one line of the best-seller report
type TopItem struct {
	ItemID   *uuid.UUID      `json:"item_id,omitempty"`
	SKU      string          `json:"sku"`
	Name     string          `json:"name"`
	Quantity int64           `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
	COGS     decimal.Decimal `json:"cogs"`
	Margin   decimal.Decimal `json:"margin"`
}

func configView(c *accounting.Config) ConfigView {
	return ConfigView{
		TenantID:       c.TenantID,
		TaxRate:        c.TaxRate,
		CloverFeePct:   c.CloverFeePct,
		BigCommFeePct:  c.BigCommFeePct,
		AmazonFeePct:   c.AmazonFeePct,
		FiscalYearEnds: c.FiscalYearEnds,
	}
}

func trendPoints(rows []channel.DailySales) []TrendPoint {
	points := make([]TrendPoint, 0, len(rows))
	for _, r := range rows {
		points = append(points, TrendPoint{Day: r.Day, Orders: r.Orders, Revenue: r.Revenue})
	}
	return points
}
