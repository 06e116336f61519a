package accounting

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/pinehillfarm/backend/internal/domain/accounting"
	"github.com/pinehillfarm/backend/internal/domain/catalog"
	"github.com/pinehillfarm/backend/internal/domain/channel"
	"github.com/pinehillfarm/backend/internal/domain/shared"
)

// cogsItemLimit bounds how many item aggregates feed the COGS estimate
const cogsItemLimit = 1000

// Service builds sales and margin reports over ingested channel orders
type Service struct {
	orderRepo  channel.OrderRepository
	itemRepo   catalog.ItemRepository
	configRepo accounting.ConfigRepository
	logger     *zap.Logger
}

// NewService creates a new accounting service
func NewService(
	orderRepo channel.OrderRepository,
	itemRepo catalog.ItemRepository,
	configRepo accounting.ConfigRepository,
	logger *zap.Logger,
) *Service {
	return &Service{
		orderRepo:  orderRepo,
		itemRepo:   itemRepo,
		configRepo: configRepo,
		logger:     logger,
	}
}

// GetConfig returns the tenant's accounting config, defaults when unset
func (s *Service) GetConfig(ctx context.Context, tenantID uuid.UUID) (*ConfigView, error) {
	cfg, err := s.loadConfig(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	view := configView(cfg)
	return &view, nil
}

// SaveConfig upserts the tenant's accounting assumptions
func (s *Service) SaveConfig(ctx context.Context, input SaveConfigInput) (*ConfigView, error) {
	cfg, err := s.configRepo.FindByTenant(ctx, input.TenantID)
	if err != nil || cfg == nil {
		cfg = accounting.NewConfig(input.TenantID)
	}

	if input.TaxRate.IsNegative() {
		return nil, shared.NewDomainError("INVALID_TAX_RATE", "Tax rate cannot be negative")
	}
	cfg.TaxRate = input.TaxRate
	if err := cfg.SetFeePct(channel.PlatformClover, input.CloverFeePct); err != nil {
		return nil, err
	}
	if err := cfg.SetFeePct(channel.PlatformBigCommerce, input.BigCommFeePct); err != nil {
		return nil, err
	}
	if err := cfg.SetFeePct(channel.PlatformAmazon, input.AmazonFeePct); err != nil {
		return nil, err
	}
	if input.FiscalYearEnds != "" {
		cfg.FiscalYearEnds = input.FiscalYearEnds
	}

	if err := s.configRepo.Save(ctx, cfg); err != nil {
		s.logger.Error("Failed to save accounting config", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to save accounting config")
	}

	s.logger.Info("Accounting config saved", zap.String("tenant_id", input.TenantID.String()))

	view := configView(cfg)
	return &view, nil
}

// SalesSummary aggregates revenue, fees, estimated COGS and margin for
// the window, overall and per channel.
func (s *Service) SalesSummary(ctx context.Context, input SummaryInput) (*accounting.SalesSummary, error) {
	cfg, err := s.loadConfig(ctx, input.TenantID)
	if err != nil {
		return nil, err
	}

	byPlatform, err := s.orderRepo.SalesByPlatform(ctx, input.TenantID, input.From, input.To)
	if err != nil {
		s.logger.Error("Failed to aggregate platform sales", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to build sales summary")
	}

	totalCOGS, err := s.estimateCOGS(ctx, input)
	if err != nil {
		return nil, err
	}

	summary := &accounting.SalesSummary{
		From:          input.From,
		To:            input.To,
		Revenue:       decimal.Zero,
		Tax:           decimal.Zero,
		Fees:          decimal.Zero,
		EstimatedCOGS: totalCOGS,
	}

	for _, row := range byPlatform {
		// Channels that do not report fees get the configured estimate
		fees := row.Fees
		if fees.IsZero() {
			fees = cfg.EstimateFee(row.Platform, row.Revenue)
		}

		summary.Orders += row.Orders
		summary.Revenue = summary.Revenue.Add(row.Revenue)
		summary.Tax = summary.Tax.Add(row.Tax)
		summary.Fees = summary.Fees.Add(fees)

		summary.ByPlatform = append(summary.ByPlatform, accounting.PlatformBreakdown{
			Platform: row.Platform,
			Orders:   row.Orders,
			Revenue:  row.Revenue,
			Fees:     fees,
		})
	}

	// COGS is estimated from item aggregates, which do not carry the
	// channel, so allocate it to channels by revenue share.
	for i := range summary.ByPlatform {
		b := &summary.ByPlatform[i]
		if !summary.Revenue.IsZero() {
			b.EstimatedCOGS = totalCOGS.Mul(b.Revenue).Div(summary.Revenue).Round(2)
		}
		b.GrossMargin = b.Revenue.Sub(b.Fees).Sub(b.EstimatedCOGS)
	}

	summary.ComputeMargin()
	return summary, nil
}

// DailyTrend returns revenue per day in the window
func (s *Service) DailyTrend(ctx context.Context, input SummaryInput) ([]TrendPoint, error) {
	rows, err := s.orderRepo.SalesByDay(ctx, input.TenantID, input.From, input.To)
	if err != nil {
		s.logger.Error("Failed to aggregate daily sales", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to build revenue trend")
	}
	return trendPoints(rows), nil
}

// TopItems returns best sellers with per-item cost and margin
func (s *Service) TopItems(ctx context.Context, input SummaryInput, limit int) ([]TopItem, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.orderRepo.TopItems(ctx, input.TenantID, input.From, input.To, limit)
	if err != nil {
		s.logger.Error("Failed to aggregate top items", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to build top items report")
	}

	items := make([]TopItem, 0, len(rows))
	for _, row := range rows {
		top := TopItem{
			ItemID:   row.ItemID,
			SKU:      row.SKU,
			Name:     row.Name,
			Quantity: row.Quantity,
			Revenue:  row.Revenue,
			COGS:     decimal.Zero,
		}
		if row.ItemID != nil {
			if item, err := s.itemRepo.FindByID(ctx, *row.ItemID); err == nil {
				top.COGS = item.UnitCost.Mul(decimal.NewFromInt(row.Quantity)).Round(2)
			}
		}
		top.Margin = top.Revenue.Sub(top.COGS)
		items = append(items, top)
	}
	return items, nil
}

// estimateCOGS sums unit cost times quantity over the window's item
// aggregates. Lines that never matched a catalog item contribute zero.
func (s *Service) estimateCOGS(ctx context.Context, input SummaryInput) (decimal.Decimal, error) {
	rows, err := s.orderRepo.TopItems(ctx, input.TenantID, input.From, input.To, cogsItemLimit)
	if err != nil {
		s.logger.Error("Failed to aggregate item sales for COGS", zap.Error(err))
		return decimal.Zero, shared.NewDomainError("INTERNAL_ERROR", "Failed to build sales summary")
	}

	total := decimal.Zero
	for _, row := range rows {
		if row.ItemID == nil {
			continue
		}
		item, err := s.itemRepo.FindByID(ctx, *row.ItemID)
		if err != nil {
			continue
		}
		total = total.Add(item.UnitCost.Mul(decimal.NewFromInt(row.Quantity)))
	}
	return total.Round(2), nil
}

func (s *Service) loadConfig(ctx context.Context, tenantID uuid.UUID) (*accounting.Config, error) {
	cfg, err := s.configRepo.FindByTenant(ctx, tenantID)
	if err != nil || cfg == nil {
		return accounting.NewConfig(tenantID), nil
	}
	return cfg, nil
}
