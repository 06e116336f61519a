package accounting

import (
	"time"

	"github.com/pinehillfarm/backend/internal/domain/channel"
	"github.com/shopspring/decimal"
)

// SalesSummary is the aggregated picture of a reporting window.
type SalesSummary struct {
	From          time.Time           `json:"from"`
	To            time.Time           `json:"to"`
	Orders        int64               `json:"orders"`
	Revenue       decimal.Decimal     `json:"revenue"`
	Tax           decimal.Decimal     `json:"tax"`
	Fees          decimal.Decimal     `json:"fees"`
	EstimatedCOGS decimal.Decimal     `json:"estimated_cogs"`
	GrossMargin   decimal.Decimal     `json:"gross_margin"`
	MarginPercent decimal.Decimal     `json:"margin_percent"`
	ByPlatform    []PlatformBreakdown `json:"by_platform"`
}

// PlatformBreakdown is the summary for a single channel
type PlatformBreakdown struct {
	Platform      channel.PlatformCode `json:"platform"`
	Orders        int64                `json:"orders"`
	Revenue       decimal.Decimal      `json:"revenue"`
	Fees          decimal.Decimal      `json:"fees"`
	EstimatedCOGS decimal.Decimal      `json:"estimated_cogs"`
	GrossMargin   decimal.Decimal      `json:"gross_margin"`
}

// ComputeMargin fills GrossMargin and MarginPercent from the totals.
// Margin percent is zero when revenue is zero.
func (s *SalesSummary) ComputeMargin() {
	s.GrossMargin = s.Revenue.Sub(s.Fees).Sub(s.EstimatedCOGS)
	if s.Revenue.IsZero() {
		s.MarginPercent = decimal.Zero
		return
	}
	s.MarginPercent = s.GrossMargin.Div(s.Revenue).Mul(decimal.NewFromInt(100)).Round(2)
}
