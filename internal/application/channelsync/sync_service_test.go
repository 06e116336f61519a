package channelsync

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pinehillfarm/backend/internal/domain/catalog"
	"github.com/pinehillfarm/backend/internal/domain/channel"
	"github.com/pinehillfarm/backend/internal/domain/shared"
	"github.com/pinehillfarm/backend/internal/infrastructure/channels"
)

// fakePlatform is a scriptable channel.Platform for sync tests
type fakePlatform struct {
	code      channel.PlatformCode
	orders    []channel.PlatformOrder
	hasMore   bool // reported on every page
	pullErr   error
	pulls     int
	pushed    []channel.InventoryLevel
	pushErr   error
	blockPull chan struct{} // when set, PullOrders waits until closed
	mu        sync.Mutex
}

func (f *fakePlatform) Code() channel.PlatformCode { return f.code }

func (f *fakePlatform) PullOrders(ctx context.Context, req channel.OrderPullRequest) ([]channel.PlatformOrder, bool, error) {
	if f.blockPull != nil {
		select {
		case <-f.blockPull:
		case <-ctx.Done():
			return nil, false, ctx.Err()
		}
	}
	f.mu.Lock()
	f.pulls++
	f.mu.Unlock()
	if f.pullErr != nil {
		return nil, false, f.pullErr
	}
	if req.Page > 1 {
		return nil, f.hasMore, nil
	}
	return f.orders, f.hasMore, nil
}

func (f *fakePlatform) GetOrder(ctx context.Context, tenantID uuid.UUID, platformOrderID string) (*channel.PlatformOrder, error) {
	for _, o := range f.orders {
		if o.PlatformOrderID == platformOrderID {
			return &o, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakePlatform) PushInventory(ctx context.Context, tenantID uuid.UUID, levels []channel.InventoryLevel) error {
	if f.pushErr != nil {
		return f.pushErr
	}
	f.pushed = append(f.pushed, levels...)
	return nil
}

// MockOrderRepository is a mock implementation of channel.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *channel.ChannelOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, order *channel.ChannelOrder) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*channel.ChannelOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*channel.ChannelOrder), args.Error(1)
}

func (m *MockOrderRepository) FindByPlatformOrderID(ctx context.Context, tenantID uuid.UUID, platform channel.PlatformCode, platformOrderID string) (*channel.ChannelOrder, error) {
	args := m.Called(ctx, tenantID, platform, platformOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*channel.ChannelOrder), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter channel.OrderFilter) ([]*channel.ChannelOrder, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]*channel.ChannelOrder), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderRepository) SalesByDay(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]channel.DailySales, error) {
	args := m.Called(ctx, tenantID, from, to)
	return args.Get(0).([]channel.DailySales), args.Error(1)
}

func (m *MockOrderRepository) SalesByPlatform(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]channel.PlatformSales, error) {
	args := m.Called(ctx, tenantID, from, to)
	return args.Get(0).([]channel.PlatformSales), args.Error(1)
}

func (m *MockOrderRepository) TopItems(ctx context.Context, tenantID uuid.UUID, from, to time.Time, limit int) ([]channel.ItemSales, error) {
	args := m.Called(ctx, tenantID, from, to, limit)
	return args.Get(0).([]channel.ItemSales), args.Error(1)
}

// MockSyncRunRepository is a mock implementation of channel.SyncRunRepository
type MockSyncRunRepository struct {
	mock.Mock
}

func (m *MockSyncRunRepository) Create(ctx context.Context, run *channel.SyncRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockSyncRunRepository) Update(ctx context.Context, run *channel.SyncRun) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

func (m *MockSyncRunRepository) FindByID(ctx context.Context, id uuid.UUID) (*channel.SyncRun, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*channel.SyncRun), args.Error(1)
}

func (m *MockSyncRunRepository) FindAll(ctx context.Context, tenantID uuid.UUID, platform *channel.PlatformCode, filter shared.Filter) ([]*channel.SyncRun, int64, error) {
	args := m.Called(ctx, tenantID, platform, filter)
	return args.Get(0).([]*channel.SyncRun), args.Get(1).(int64), args.Error(2)
}

func (m *MockSyncRunRepository) FindLatestFinished(ctx context.Context, tenantID uuid.UUID, platform channel.PlatformCode) (*channel.SyncRun, error) {
	args := m.Called(ctx, tenantID, platform)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*channel.SyncRun), args.Error(1)
}

// MockItemRepository is a mock implementation of catalog.ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) Create(ctx context.Context, item *catalog.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) Update(ctx context.Context, item *catalog.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Item), args.Error(1)
}

func (m *MockItemRepository) FindBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (*catalog.Item, error) {
	args := m.Called(ctx, tenantID, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Item), args.Error(1)
}

func (m *MockItemRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*catalog.Item, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]*catalog.Item), args.Get(1).(int64), args.Error(2)
}

func (m *MockItemRepository) FindLowStock(ctx context.Context, tenantID uuid.UUID) ([]*catalog.Item, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]*catalog.Item), args.Error(1)
}

func (m *MockItemRepository) FindByListing(ctx context.Context, tenantID uuid.UUID, field, value string) (*catalog.Item, error) {
	args := m.Called(ctx, tenantID, field, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Item), args.Error(1)
}

func (m *MockItemRepository) ExistsBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (bool, error) {
	args := m.Called(ctx, tenantID, sku)
	return args.Bool(0), args.Error(1)
}

func platformOrder(id string, total float64) channel.PlatformOrder {
	t := decimal.NewFromFloat(total)
	return channel.PlatformOrder{
		PlatformOrderID: id,
		Status:          channel.OrderStatusPaid,
		Total:           t,
		Currency:        "USD",
		PlacedAt:        time.Now().Add(-time.Hour),
		Items: []channel.PlatformOrderItem{
			{ListingID: "CLV1", SKU: "SOAP-LAV-4OZ", Name: "Lavender Soap", Quantity: 1, UnitPrice: t, LineTotal: t},
		},
	}
}

func newSyncService(fake *fakePlatform, orderRepo *MockOrderRepository, runRepo *MockSyncRunRepository, itemRepo *MockItemRepository) *SyncService {
	registry := channels.NewPlatformRegistry()
	registry.Register(fake)
	return NewSyncService(registry, orderRepo, runRepo, itemRepo, DefaultSyncServiceConfig(), zap.NewNop())
}

func TestSyncService_SyncOrders_CreatesAndLinks(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	fake := &fakePlatform{
		code:   channel.PlatformClover,
		orders: []channel.PlatformOrder{platformOrder("ORD-1", 7.50)},
	}
	orderRepo := new(MockOrderRepository)
	runRepo := new(MockSyncRunRepository)
	itemRepo := new(MockItemRepository)

	item, err := catalog.NewItem(tenantID, "SOAP-LAV-4OZ", "Lavender Soap", "Soap",
		decimal.NewFromFloat(2.10), decimal.NewFromFloat(7.50))
	require.NoError(t, err)

	runRepo.On("Create", ctx, mock.AnythingOfType("*channel.SyncRun")).Return(nil)
	runRepo.On("Update", ctx, mock.AnythingOfType("*channel.SyncRun")).Return(nil)
	orderRepo.On("FindByPlatformOrderID", ctx, tenantID, channel.PlatformClover, "ORD-1").
		Return(nil, errors.New("not found"))
	itemRepo.On("FindByListing", ctx, tenantID, "clover_item_id", "CLV1").Return(item, nil)
	orderRepo.On("Create", ctx, mock.MatchedBy(func(o *channel.ChannelOrder) bool {
		return len(o.Items) == 1 && o.Items[0].ItemID != nil && *o.Items[0].ItemID == item.ID
	})).Return(nil)

	svc := newSyncService(fake, orderRepo, runRepo, itemRepo)

	view, err := svc.SyncOrders(ctx, SyncOrdersInput{
		TenantID: tenantID,
		Platform: channel.PlatformClover,
		Trigger:  channel.SyncTriggerManual,
		From:     time.Now().Add(-24 * time.Hour),
		To:       time.Now(),
	})

	require.NoError(t, err)
	assert.Equal(t, channel.SyncStatusSuccess, view.Status)
	assert.Equal(t, 1, view.Created)
	assert.Equal(t, 0, view.Failed)
	orderRepo.AssertExpectations(t)
}

func TestSyncService_SyncOrders_UpdatesExisting(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	po := platformOrder("ORD-1", 7.50)
	fake := &fakePlatform{code: channel.PlatformClover, orders: []channel.PlatformOrder{po}}
	orderRepo := new(MockOrderRepository)
	runRepo := new(MockSyncRunRepository)
	itemRepo := new(MockItemRepository)

	existing, err := channel.NewChannelOrder(tenantID, channel.PlatformClover, po)
	require.NoError(t, err)

	runRepo.On("Create", ctx, mock.AnythingOfType("*channel.SyncRun")).Return(nil)
	runRepo.On("Update", ctx, mock.AnythingOfType("*channel.SyncRun")).Return(nil)
	orderRepo.On("FindByPlatformOrderID", ctx, tenantID, channel.PlatformClover, "ORD-1").
		Return(existing, nil)
	itemRepo.On("FindByListing", ctx, tenantID, "clover_item_id", "CLV1").
		Return(nil, errors.New("not found"))
	orderRepo.On("Update", ctx, existing).Return(nil)

	svc := newSyncService(fake, orderRepo, runRepo, itemRepo)

	view, err := svc.SyncOrders(ctx, SyncOrdersInput{
		TenantID: tenantID,
		Platform: channel.PlatformClover,
		Trigger:  channel.SyncTriggerScheduled,
		From:     time.Now().Add(-24 * time.Hour),
		To:       time.Now(),
	})

	require.NoError(t, err)
	assert.Equal(t, 1, view.Updated)
	assert.Equal(t, 0, view.Created)
	orderRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSyncService_SyncOrders_PullFailureFailsRun(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	fake := &fakePlatform{code: channel.PlatformClover, pullErr: channel.ErrRateLimited}
	orderRepo := new(MockOrderRepository)
	runRepo := new(MockSyncRunRepository)
	itemRepo := new(MockItemRepository)

	runRepo.On("Create", ctx, mock.AnythingOfType("*channel.SyncRun")).Return(nil)
	runRepo.On("Update", ctx, mock.AnythingOfType("*channel.SyncRun")).Return(nil)

	svc := newSyncService(fake, orderRepo, runRepo, itemRepo)

	view, err := svc.SyncOrders(ctx, SyncOrdersInput{
		TenantID: tenantID,
		Platform: channel.PlatformClover,
		Trigger:  channel.SyncTriggerScheduled,
		From:     time.Now().Add(-24 * time.Hour),
		To:       time.Now(),
	})

	require.NoError(t, err)
	assert.Equal(t, channel.SyncStatusFailed, view.Status)
	assert.Contains(t, view.LastError, "rate limit")
}

func TestSyncService_SyncOrders_RejectsConcurrentRun(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	block := make(chan struct{})
	fake := &fakePlatform{code: channel.PlatformClover, blockPull: block}
	orderRepo := new(MockOrderRepository)
	runRepo := new(MockSyncRunRepository)
	itemRepo := new(MockItemRepository)

	runRepo.On("Create", mock.Anything, mock.AnythingOfType("*channel.SyncRun")).Return(nil)
	runRepo.On("Update", mock.Anything, mock.AnythingOfType("*channel.SyncRun")).Return(nil)

	svc := newSyncService(fake, orderRepo, runRepo, itemRepo)

	input := SyncOrdersInput{
		TenantID: tenantID,
		Platform: channel.PlatformClover,
		Trigger:  channel.SyncTriggerScheduled,
		From:     time.Now().Add(-24 * time.Hour),
		To:       time.Now(),
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = svc.SyncOrders(ctx, input)
	}()

	// Wait until the first run holds the guard
	require.Eventually(t, func() bool {
		return svc.IsRunning(tenantID, channel.PlatformClover)
	}, time.Second, 5*time.Millisecond)

	_, err := svc.SyncOrders(ctx, input)
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "SYNC_IN_PROGRESS", domainErr.Code)

	close(block)
	<-done
	assert.False(t, svc.IsRunning(tenantID, channel.PlatformClover))
}

func TestSyncService_ResolveWindow_ContinuesFromLastFinishedRun(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	fake := &fakePlatform{code: channel.PlatformClover}
	orderRepo := new(MockOrderRepository)
	runRepo := new(MockSyncRunRepository)
	itemRepo := new(MockItemRepository)

	lastTo := time.Now().Add(-2 * time.Hour).Truncate(time.Second)
	last, err := channel.NewSyncRun(tenantID, channel.PlatformClover, channel.SyncTriggerScheduled,
		lastTo.Add(-time.Hour), lastTo)
	require.NoError(t, err)

	runRepo.On("FindLatestFinished", ctx, tenantID, channel.PlatformClover).Return(last, nil)
	runRepo.On("Create", ctx, mock.MatchedBy(func(r *channel.SyncRun) bool {
		return r.WindowFrom.Equal(lastTo)
	})).Return(nil)
	runRepo.On("Update", ctx, mock.AnythingOfType("*channel.SyncRun")).Return(nil)

	svc := newSyncService(fake, orderRepo, runRepo, itemRepo)

	view, err := svc.SyncOrders(ctx, SyncOrdersInput{
		TenantID: tenantID,
		Platform: channel.PlatformClover,
		Trigger:  channel.SyncTriggerScheduled,
	})

	require.NoError(t, err)
	assert.True(t, view.WindowFrom.Equal(lastTo))
	runRepo.AssertExpectations(t)
}

func TestSyncService_ResolveWindow_RetriesAfterFailedRun(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	fake := &fakePlatform{code: channel.PlatformClover}
	orderRepo := new(MockOrderRepository)
	runRepo := new(MockSyncRunRepository)
	itemRepo := new(MockItemRepository)

	// The previous run failed, so the repository reports no finished run
	// and the window falls back to the configured lookback.
	runRepo.On("FindLatestFinished", ctx, tenantID, channel.PlatformClover).Return(nil, nil)
	runRepo.On("Create", ctx, mock.AnythingOfType("*channel.SyncRun")).Return(nil)
	runRepo.On("Update", ctx, mock.AnythingOfType("*channel.SyncRun")).Return(nil)

	svc := newSyncService(fake, orderRepo, runRepo, itemRepo)

	view, err := svc.SyncOrders(ctx, SyncOrdersInput{
		TenantID: tenantID,
		Platform: channel.PlatformClover,
		Trigger:  channel.SyncTriggerScheduled,
	})

	require.NoError(t, err)
	lookback := DefaultSyncServiceConfig().Lookback
	assert.WithinDuration(t, time.Now().Add(-lookback), view.WindowFrom, 5*time.Second)
	runRepo.AssertExpectations(t)
}

func TestSyncService_SyncOrders_PageCapLeavesRunPartial(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	fake := &fakePlatform{
		code:    channel.PlatformClover,
		orders:  []channel.PlatformOrder{platformOrder("ORD-1", 7.50)},
		hasMore: true,
	}
	orderRepo := new(MockOrderRepository)
	runRepo := new(MockSyncRunRepository)
	itemRepo := new(MockItemRepository)

	runRepo.On("Create", ctx, mock.AnythingOfType("*channel.SyncRun")).Return(nil)
	runRepo.On("Update", ctx, mock.AnythingOfType("*channel.SyncRun")).Return(nil)
	orderRepo.On("FindByPlatformOrderID", ctx, tenantID, channel.PlatformClover, "ORD-1").
		Return(nil, errors.New("not found"))
	itemRepo.On("FindByListing", ctx, tenantID, "clover_item_id", "CLV1").
		Return(nil, errors.New("not found"))
	orderRepo.On("Create", ctx, mock.AnythingOfType("*channel.ChannelOrder")).Return(nil)

	registry := channels.NewPlatformRegistry()
	registry.Register(fake)
	cfg := DefaultSyncServiceConfig()
	cfg.MaxPages = 1
	svc := NewSyncService(registry, orderRepo, runRepo, itemRepo, cfg, zap.NewNop())

	view, err := svc.SyncOrders(ctx, SyncOrdersInput{
		TenantID: tenantID,
		Platform: channel.PlatformClover,
		Trigger:  channel.SyncTriggerScheduled,
		From:     time.Now().Add(-24 * time.Hour),
		To:       time.Now(),
	})

	require.NoError(t, err)
	assert.Equal(t, channel.SyncStatusPartial, view.Status)
	assert.Contains(t, view.LastError, "page cap")
	assert.Equal(t, 1, view.Created)
}

func TestSyncService_PushInventory_SkipsUnlisted(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	fake := &fakePlatform{code: channel.PlatformBigCommerce}
	orderRepo := new(MockOrderRepository)
	runRepo := new(MockSyncRunRepository)
	itemRepo := new(MockItemRepository)

	listed, err := catalog.NewItem(tenantID, "SOAP-LAV-4OZ", "Lavender Soap", "Soap",
		decimal.NewFromFloat(2.10), decimal.NewFromFloat(7.50))
	require.NoError(t, err)
	listed.SetListings(catalog.ChannelListings{BigCommerceProductID: "991"})
	require.NoError(t, listed.AdjustQuantity(12))

	unlisted, err := catalog.NewItem(tenantID, "CANDLE-PINE", "Pine Candle", "Candles",
		decimal.NewFromFloat(3.00), decimal.NewFromFloat(12.00))
	require.NoError(t, err)

	itemRepo.On("FindAll", ctx, tenantID, mock.AnythingOfType("shared.Filter")).
		Return([]*catalog.Item{listed, unlisted}, int64(2), nil)

	svc := newSyncService(fake, orderRepo, runRepo, itemRepo)

	result, err := svc.PushInventory(ctx, tenantID, channel.PlatformBigCommerce)

	require.NoError(t, err)
	assert.Equal(t, 1, result.Pushed)
	assert.Equal(t, 1, result.Skipped)
	require.Len(t, fake.pushed, 1)
	assert.Equal(t, "991", fake.pushed[0].ListingID)
	assert.Equal(t, 12, fake.pushed[0].Quantity)
}

func TestSyncService_SyncOrders_UnknownPlatform(t *testing.T) {
	ctx := context.Background()
	registry := channels.NewPlatformRegistry()
	svc := NewSyncService(registry, new(MockOrderRepository), new(MockSyncRunRepository), new(MockItemRepository), DefaultSyncServiceConfig(), zap.NewNop())

	_, err := svc.SyncOrders(ctx, SyncOrdersInput{
		TenantID: uuid.New(),
		Platform: channel.PlatformAmazon,
		Trigger:  channel.SyncTriggerManual,
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "PLATFORM_NOT_FOUND", domainErr.Code)
}
