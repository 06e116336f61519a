package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pinehillfarm/backend/internal/application/channelsync"
	"github.com/pinehillfarm/backend/internal/domain/channel"
	"github.com/pinehillfarm/backend/internal/domain/identity"
	"github.com/pinehillfarm/backend/internal/domain/shared"
)

// OrderSyncer pulls channel orders for one tenant and platform
type OrderSyncer interface {
	SyncOrders(ctx context.Context, input channelsync.SyncOrdersInput) (*channelsync.SyncRunView, error)
}

// InventoryPusher pushes stock levels to one platform
type InventoryPusher interface {
	PushInventory(ctx context.Context, tenantID uuid.UUID, code channel.PlatformCode) (*channelsync.PushInventoryResult, error)
}

// Config holds the background sync loop settings
type Config struct {
	// OrderInterval is how often the order pull loop wakes up
	OrderInterval time.Duration
	// InventoryInterval is how often the inventory push loop wakes up
	InventoryInterval time.Duration
	// WindowStartHour/WindowEndHour bound the local hours during which
	// scheduled syncs run (0 and 24 mean always)
	WindowStartHour int
	WindowEndHour   int
	// Lookback is how far back each scheduled pull reaches when the
	// tenant has no previous run to continue from
	Lookback time.Duration
	// RunTimeout bounds one sync pass for one tenant
	RunTimeout time.Duration
}

// DefaultConfig returns the standard loop settings
func DefaultConfig() Config {
	return Config{
		OrderInterval:     15 * time.Minute,
		InventoryInterval: 30 * time.Minute,
		WindowStartHour:   0,
		WindowEndHour:     24,
		Lookback:          time.Hour,
		RunTimeout:        10 * time.Minute,
	}
}

// orderPlatforms are the channels the order loop pulls from
var orderPlatforms = []channel.PlatformCode{
	channel.PlatformClover,
	channel.PlatformBigCommerce,
	channel.PlatformAmazon,
}

// inventoryPlatforms are the channels the inventory loop pushes to
var inventoryPlatforms = []channel.PlatformCode{
	channel.PlatformBigCommerce,
}

// SyncScheduler runs the two background sync loops: a periodic order
// pull across every active tenant and a slower inventory push. Re-entry
// is prevented by the sync service's per-tenant run guard, so a tick
// that fires while the previous pull is still going is skipped.
type SyncScheduler struct {
	config     Config
	syncer     OrderSyncer
	pusher     InventoryPusher
	tenantRepo identity.TenantRepository
	logger     *zap.Logger

	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool

	// now is swapped in tests to control the window check
	now func() time.Time
}

// NewSyncScheduler creates a new sync scheduler
func NewSyncScheduler(
	config Config,
	syncer OrderSyncer,
	pusher InventoryPusher,
	tenantRepo identity.TenantRepository,
	logger *zap.Logger,
) *SyncScheduler {
	if config.OrderInterval <= 0 {
		config.OrderInterval = 15 * time.Minute
	}
	if config.InventoryInterval <= 0 {
		config.InventoryInterval = 30 * time.Minute
	}
	if config.RunTimeout <= 0 {
		config.RunTimeout = 10 * time.Minute
	}
	return &SyncScheduler{
		config:     config,
		syncer:     syncer,
		pusher:     pusher,
		tenantRepo: tenantRepo,
		logger:     logger,
		now:        time.Now,
	}
}

// Start starts both loops
func (s *SyncScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(2)
	go s.orderLoop(ctx)
	go s.inventoryLoop(ctx)

	s.logger.Info("Sync scheduler started",
		zap.Duration("order_interval", s.config.OrderInterval),
		zap.Duration("inventory_interval", s.config.InventoryInterval),
		zap.Int("window_start_hour", s.config.WindowStartHour),
		zap.Int("window_end_hour", s.config.WindowEndHour),
	)

	return nil
}

// Stop gracefully stops both loops
func (s *SyncScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Sync scheduler stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Sync scheduler stop timed out")
		return ctx.Err()
	}
}

func (s *SyncScheduler) orderLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.OrderInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOrderPass(ctx)
		}
	}
}

func (s *SyncScheduler) inventoryLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.InventoryInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runInventoryPass(ctx)
		}
	}
}

// runOrderPass pulls orders for every active tenant on every configured
// platform. One tenant failing does not stop the pass.
func (s *SyncScheduler) runOrderPass(ctx context.Context) {
	if !s.inWindow() {
		s.logger.Debug("Order sync pass skipped, outside window")
		return
	}

	for _, tenant := range s.activeTenants(ctx) {
		for _, platform := range orderPlatforms {
			s.syncTenantOrders(ctx, tenant.ID, platform)
		}
	}
}

func (s *SyncScheduler) syncTenantOrders(ctx context.Context, tenantID uuid.UUID, platform channel.PlatformCode) {
	runCtx, cancel := context.WithTimeout(ctx, s.config.RunTimeout)
	defer cancel()

	view, err := s.syncer.SyncOrders(runCtx, channelsync.SyncOrdersInput{
		TenantID: tenantID,
		Platform: platform,
		Trigger:  channel.SyncTriggerScheduled,
	})
	if err != nil {
		if errors.Is(err, shared.ErrSyncInProgress) {
			s.logger.Debug("Order sync already running",
				zap.String("tenant_id", tenantID.String()),
				zap.String("platform", platform.String()))
			return
		}
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) && domainErr.Code == "PLATFORM_NOT_FOUND" {
			return
		}
		s.logger.Error("Scheduled order sync failed",
			zap.String("tenant_id", tenantID.String()),
			zap.String("platform", platform.String()),
			zap.Error(err))
		return
	}

	s.logger.Info("Scheduled order sync finished",
		zap.String("tenant_id", tenantID.String()),
		zap.String("platform", platform.String()),
		zap.String("status", string(view.Status)),
		zap.Int("total", view.Total),
		zap.Int("failed", view.Failed))
}

// runInventoryPass pushes stock levels for every active tenant
func (s *SyncScheduler) runInventoryPass(ctx context.Context) {
	if !s.inWindow() {
		s.logger.Debug("Inventory push pass skipped, outside window")
		return
	}

	for _, tenant := range s.activeTenants(ctx) {
		for _, platform := range inventoryPlatforms {
			runCtx, cancel := context.WithTimeout(ctx, s.config.RunTimeout)
			result, err := s.pusher.PushInventory(runCtx, tenant.ID, platform)
			cancel()
			if err != nil {
				s.logger.Error("Scheduled inventory push failed",
					zap.String("tenant_id", tenant.ID.String()),
					zap.String("platform", platform.String()),
					zap.Error(err))
				continue
			}

			s.logger.Info("Scheduled inventory push finished",
				zap.String("tenant_id", tenant.ID.String()),
				zap.String("platform", platform.String()),
				zap.Int("pushed", result.Pushed),
				zap.Int("skipped", result.Skipped))
		}
	}
}

// activeTenants pages through the tenant list and keeps the active ones
func (s *SyncScheduler) activeTenants(ctx context.Context) []*identity.Tenant {
	var active []*identity.Tenant
	page := 1
	for {
		tenants, total, err := s.tenantRepo.FindAll(ctx, page, 100)
		if err != nil {
			s.logger.Error("Failed to list tenants for sync pass", zap.Error(err))
			return active
		}
		for _, t := range tenants {
			if t.IsActive() {
				active = append(active, t)
			}
		}
		if int64(page*100) >= total || len(tenants) == 0 {
			break
		}
		page++
	}
	return active
}

// inWindow reports whether the current local hour falls inside the
// configured run window. Start 0 with end 0 or 24 means always.
func (s *SyncScheduler) inWindow() bool {
	start, end := s.config.WindowStartHour, s.config.WindowEndHour
	if start == 0 && (end == 0 || end == 24) {
		return true
	}
	hour := s.now().Hour()
	if start <= end {
		return hour >= start && hour < end
	}
	// Window wraps midnight
	return hour >= start || hour < end
}
