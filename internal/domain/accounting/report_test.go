package accounting

import (
	"testing"

	"github.com/google/uuid"
	"github.com/pinehillfarm/backend/internal/domain/channel"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFees(t *testing.T) {
	cfg := NewConfig(uuid.New())

	t.Run("set and estimate fee", func(t *testing.T) {
		require.NoError(t, cfg.SetFeePct(channel.PlatformBigCommerce, decimal.NewFromFloat(2.5)))

		fee := cfg.EstimateFee(channel.PlatformBigCommerce, decimal.NewFromInt(200))
		assert.True(t, fee.Equal(decimal.NewFromInt(5)), "got %s", fee)
	})

	t.Run("rejects out of range", func(t *testing.T) {
		assert.Error(t, cfg.SetFeePct(channel.PlatformClover, decimal.NewFromInt(-1)))
		assert.Error(t, cfg.SetFeePct(channel.PlatformClover, decimal.NewFromInt(101)))
	})

	t.Run("unknown platform", func(t *testing.T) {
		assert.Error(t, cfg.SetFeePct(channel.PlatformCode("etsy"), decimal.NewFromInt(5)))
		assert.True(t, cfg.FeePct(channel.PlatformCode("etsy")).IsZero())
	})
}

func TestSalesSummaryMargin(t *testing.T) {
	t.Run("computes margin from totals", func(t *testing.T) {
		s := &SalesSummary{
			Revenue:       decimal.NewFromInt(1000),
			Fees:          decimal.NewFromInt(100),
			EstimatedCOGS: decimal.NewFromInt(400),
		}
		s.ComputeMargin()

		assert.True(t, s.GrossMargin.Equal(decimal.NewFromInt(500)))
		assert.True(t, s.MarginPercent.Equal(decimal.NewFromInt(50)))
	})

	t.Run("zero revenue yields zero percent", func(t *testing.T) {
		s := &SalesSummary{Revenue: decimal.Zero, EstimatedCOGS: decimal.NewFromInt(10)}
		s.ComputeMargin()

		assert.True(t, s.MarginPercent.IsZero())
		assert.True(t, s.GrossMargin.Equal(decimal.NewFromInt(-10)))
	})
}
