package channelsync

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pinehillfarm/backend/internal/domain/catalog"
	"github.com/pinehillfarm/backend/internal/domain/channel"
	"github.com/pinehillfarm/backend/internal/domain/shared"
)

// listingField maps a platform to the catalog column its order lines are
// matched against.
var listingField = map[channel.PlatformCode]string{
	channel.PlatformClover:      "clover_item_id",
	channel.PlatformBigCommerce: "bigcommerce_product_id",
	channel.PlatformAmazon:      "amazon_sku",
}

// SyncServiceConfig contains configuration for the sync service
type SyncServiceConfig struct {
	// Lookback is the default window when a channel has never synced
	Lookback time.Duration
	// PageSize is how many orders to request per page
	PageSize int
	// MaxPages bounds a single run against runaway pagination
	MaxPages int
}

// DefaultSyncServiceConfig returns default configuration
func DefaultSyncServiceConfig() SyncServiceConfig {
	return SyncServiceConfig{
		Lookback: 24 * time.Hour,
		PageSize: 100,
		MaxPages: 50,
	}
}

// SyncService pulls orders from sales channels into the local order store
// and pushes inventory levels back out. The manual sync-now endpoint and
// the background schedulers both run through this service.
type SyncService struct {
	registry    channel.Registry
	orderRepo   channel.OrderRepository
	syncRunRepo channel.SyncRunRepository
	itemRepo    catalog.ItemRepository

	eventPublisher shared.EventPublisher
	config         SyncServiceConfig
	logger         *zap.Logger

	// Re-entrancy guard per tenant+platform
	mu      sync.Mutex
	running map[string]bool
}

// NewSyncService creates a new sync service
func NewSyncService(
	registry channel.Registry,
	orderRepo channel.OrderRepository,
	syncRunRepo channel.SyncRunRepository,
	itemRepo catalog.ItemRepository,
	config SyncServiceConfig,
	logger *zap.Logger,
) *SyncService {
	if config.PageSize <= 0 {
		config.PageSize = 100
	}
	if config.MaxPages <= 0 {
		config.MaxPages = 50
	}
	if config.Lookback <= 0 {
		config.Lookback = 24 * time.Hour
	}
	return &SyncService{
		registry:    registry,
		orderRepo:   orderRepo,
		syncRunRepo: syncRunRepo,
		itemRepo:    itemRepo,
		config:      config,
		logger:      logger,
		running:     make(map[string]bool),
	}
}

// SetEventPublisher sets the publisher for domain events
func (s *SyncService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// IsRunning reports whether a sync is in flight for the tenant and channel
func (s *SyncService) IsRunning(tenantID uuid.UUID, platform channel.PlatformCode) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running[runKey(tenantID, platform)]
}

// SyncOrders pulls a window of orders from one channel, ingesting each
// idempotently, and records the outcome as a SyncRun row.
func (s *SyncService) SyncOrders(ctx context.Context, input SyncOrdersInput) (*SyncRunView, error) {
	platform, err := s.registry.Get(input.Platform)
	if err != nil {
		return nil, shared.NewDomainError("PLATFORM_NOT_FOUND", "Unknown sales channel")
	}

	key := runKey(input.TenantID, input.Platform)
	s.mu.Lock()
	if s.running[key] {
		s.mu.Unlock()
		return nil, shared.ErrSyncInProgress
	}
	s.running[key] = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.running, key)
		s.mu.Unlock()
	}()

	from, to, err := s.resolveWindow(ctx, input)
	if err != nil {
		return nil, err
	}

	run, err := channel.NewSyncRun(input.TenantID, input.Platform, input.Trigger, from, to)
	if err != nil {
		return nil, err
	}
	if err := s.syncRunRepo.Create(ctx, run); err != nil {
		s.logger.Error("Failed to create sync run", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to start sync")
	}

	s.logger.Info("Order sync started",
		zap.String("platform", input.Platform.String()),
		zap.String("trigger", string(input.Trigger)),
		zap.Time("from", from),
		zap.Time("to", to))

	if err := s.pullAndIngest(ctx, platform, run); err != nil {
		_ = run.Fail(err)
		s.finishRun(ctx, run)
		s.logger.Error("Order sync failed",
			zap.String("platform", input.Platform.String()),
			zap.Error(err))
		view := syncRunView(run)
		return &view, nil
	}

	if err := run.Complete(); err != nil {
		return nil, err
	}
	s.finishRun(ctx, run)

	s.logger.Info("Order sync finished",
		zap.String("platform", input.Platform.String()),
		zap.String("status", string(run.Status)),
		zap.Int("total", run.Total),
		zap.Int("created", run.Created),
		zap.Int("updated", run.Updated),
		zap.Int("failed", run.Failed))

	view := syncRunView(run)
	return &view, nil
}

// pullAndIngest pages through the window. A page-level pull error aborts
// the run; a single bad order only counts as a failure.
func (s *SyncService) pullAndIngest(ctx context.Context, platform channel.Platform, run *channel.SyncRun) error {
	for page := 1; page <= s.config.MaxPages; page++ {
		orders, hasMore, err := platform.PullOrders(ctx, channel.OrderPullRequest{
			TenantID: run.TenantID,
			From:     run.WindowFrom,
			To:       run.WindowTo,
			Page:     page,
			PageSize: s.config.PageSize,
		})
		if err != nil {
			return fmt.Errorf("pull page %d: %w", page, err)
		}

		for _, po := range orders {
			if err := s.ingestOrder(ctx, run, po); err != nil {
				run.RecordFailure(err)
				s.logger.Warn("Order ingest failed",
					zap.String("platform", run.Platform.String()),
					zap.String("platform_order_id", po.PlatformOrderID),
					zap.Error(err))
			}
		}

		if !hasMore {
			return nil
		}
	}

	run.MarkTruncated(fmt.Sprintf("stopped at the page cap (%d pages) with more orders available", s.config.MaxPages))
	s.logger.Warn("Order pull hit the page cap",
		zap.String("platform", run.Platform.String()),
		zap.Int("max_pages", s.config.MaxPages))
	return nil
}

// ingestOrder creates or updates a single order
func (s *SyncService) ingestOrder(ctx context.Context, run *channel.SyncRun, po channel.PlatformOrder) error {
	existing, err := s.orderRepo.FindByPlatformOrderID(ctx, run.TenantID, run.Platform, po.PlatformOrderID)
	if err == nil && existing != nil {
		if err := existing.ApplyUpdate(po); err != nil {
			return err
		}
		// ApplyUpdate rebuilt the lines, so catalog links must be re-matched
		s.linkCatalogItems(ctx, existing)
		if err := s.orderRepo.Update(ctx, existing); err != nil {
			return err
		}
		run.RecordUpdated()
		return nil
	}

	order, err := channel.NewChannelOrder(run.TenantID, run.Platform, po)
	if err != nil {
		return err
	}

	s.linkCatalogItems(ctx, order)

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return err
	}
	run.RecordCreated()
	return nil
}

// linkCatalogItems matches each order line to a catalog item via the
// channel listing identifier. Unmatched lines stay unlinked.
func (s *SyncService) linkCatalogItems(ctx context.Context, order *channel.ChannelOrder) {
	field, ok := listingField[order.Platform]
	if !ok {
		return
	}

	for i, line := range order.Items {
		value := line.ListingID
		if order.Platform == channel.PlatformAmazon {
			value = line.SKU
		}
		if value == "" {
			continue
		}

		item, err := s.itemRepo.FindByListing(ctx, order.TenantID, field, value)
		if err != nil || item == nil {
			continue
		}
		_ = order.LinkItem(i, item.ID)
	}
}

// PushInventory sends current stock levels for every active listed item
// to the channel.
func (s *SyncService) PushInventory(ctx context.Context, tenantID uuid.UUID, code channel.PlatformCode) (*PushInventoryResult, error) {
	platform, err := s.registry.Get(code)
	if err != nil {
		return nil, shared.NewDomainError("PLATFORM_NOT_FOUND", "Unknown sales channel")
	}

	items, _, err := s.itemRepo.FindAll(ctx, tenantID, shared.Filter{Page: 1, PageSize: 1000})
	if err != nil {
		s.logger.Error("Failed to load catalog for inventory push", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load catalog")
	}

	levels := make([]channel.InventoryLevel, 0, len(items))
	skipped := 0
	for _, item := range items {
		if !item.Active {
			continue
		}
		level, ok := inventoryLevel(code, item)
		if !ok {
			skipped++
			continue
		}
		levels = append(levels, level)
	}

	if len(levels) > 0 {
		if err := platform.PushInventory(ctx, tenantID, levels); err != nil {
			s.logger.Error("Inventory push failed",
				zap.String("platform", code.String()),
				zap.Error(err))
			return nil, fmt.Errorf("push inventory to %s: %w", code, err)
		}
	}

	s.logger.Info("Inventory pushed",
		zap.String("platform", code.String()),
		zap.Int("pushed", len(levels)),
		zap.Int("skipped", skipped))

	return &PushInventoryResult{
		Platform: code,
		Pushed:   len(levels),
		Skipped:  skipped,
	}, nil
}

// GetOrder returns one ingested order
func (s *SyncService) GetOrder(ctx context.Context, tenantID, orderID uuid.UUID) (*OrderView, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil || order.TenantID != tenantID {
		return nil, shared.NewDomainError("ORDER_NOT_FOUND", "Order not found")
	}
	view := orderView(order)
	return &view, nil
}

// ListOrders returns a filtered page of ingested orders
func (s *SyncService) ListOrders(ctx context.Context, tenantID uuid.UUID, filter channel.OrderFilter) ([]OrderView, int64, error) {
	orders, total, err := s.orderRepo.FindAll(ctx, tenantID, filter)
	if err != nil {
		s.logger.Error("Failed to list orders", zap.Error(err))
		return nil, 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to list orders")
	}

	views := make([]OrderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, orderView(order))
	}
	return views, total, nil
}

// ListSyncRuns returns a page of sync run summaries
func (s *SyncService) ListSyncRuns(ctx context.Context, tenantID uuid.UUID, platform *channel.PlatformCode, filter shared.Filter) ([]SyncRunView, int64, error) {
	runs, total, err := s.syncRunRepo.FindAll(ctx, tenantID, platform, filter)
	if err != nil {
		s.logger.Error("Failed to list sync runs", zap.Error(err))
		return nil, 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to list sync runs")
	}

	views := make([]SyncRunView, 0, len(runs))
	for _, run := range runs {
		views = append(views, syncRunView(run))
	}
	return views, total, nil
}

// resolveWindow fills the sync window: an explicit window wins, otherwise
// continue from the end of the last run that actually pulled its window,
// otherwise look back the default. A failed run does not advance the
// cursor, so its window is retried on the next pass.
func (s *SyncService) resolveWindow(ctx context.Context, input SyncOrdersInput) (time.Time, time.Time, error) {
	to := input.To
	if to.IsZero() {
		to = time.Now()
	}
	if !input.From.IsZero() {
		return input.From, to, nil
	}

	last, err := s.syncRunRepo.FindLatestFinished(ctx, input.TenantID, input.Platform)
	if err != nil {
		s.logger.Error("Failed to load previous sync run", zap.Error(err))
		return time.Time{}, time.Time{}, shared.NewDomainError("INTERNAL_ERROR", "Failed to start sync")
	}
	if last != nil && !last.WindowTo.IsZero() {
		return last.WindowTo, to, nil
	}
	return to.Add(-s.config.Lookback), to, nil
}

// finishRun persists the terminal run state and publishes its events
func (s *SyncService) finishRun(ctx context.Context, run *channel.SyncRun) {
	if err := s.syncRunRepo.Update(ctx, run); err != nil {
		s.logger.Error("Failed to persist sync run", zap.Error(err))
	}
	if s.eventPublisher == nil {
		return
	}
	events := run.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	run.ClearDomainEvents()
}

func runKey(tenantID uuid.UUID, platform channel.PlatformCode) string {
	return tenantID.String() + ":" + platform.String()
}

// inventoryLevel builds the push payload for one item, false when the
// item has no listing on the channel.
func inventoryLevel(code channel.PlatformCode, item *catalog.Item) (channel.InventoryLevel, bool) {
	switch code {
	case channel.PlatformClover:
		if item.Listings.CloverItemID == "" {
			return channel.InventoryLevel{}, false
		}
		return channel.InventoryLevel{ListingID: item.Listings.CloverItemID, SKU: item.SKU, Quantity: item.QuantityOnHand}, true
	case channel.PlatformBigCommerce:
		if item.Listings.BigCommerceProductID == "" {
			return channel.InventoryLevel{}, false
		}
		return channel.InventoryLevel{ListingID: item.Listings.BigCommerceProductID, SKU: item.SKU, Quantity: item.QuantityOnHand}, true
	case channel.PlatformAmazon:
		if item.Listings.AmazonSKU == "" {
			return channel.InventoryLevel{}, false
		}
		return channel.InventoryLevel{ListingID: item.Listings.AmazonSKU, SKU: item.Listings.AmazonSKU, Quantity: item.QuantityOnHand}, true
	}
	return channel.InventoryLevel{}, false
}
