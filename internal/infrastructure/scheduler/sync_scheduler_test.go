package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pinehillfarm/backend/internal/application/channelsync"
	"github.com/pinehillfarm/backend/internal/domain/channel"
	"github.com/pinehillfarm/backend/internal/domain/identity"
	"github.com/pinehillfarm/backend/internal/domain/shared"
)

type fakeSyncer struct {
	mu     sync.Mutex
	calls  []channelsync.SyncOrdersInput
	err    error
	pushes int32
}

func (f *fakeSyncer) SyncOrders(ctx context.Context, input channelsync.SyncOrdersInput) (*channelsync.SyncRunView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, input)
	if f.err != nil {
		return nil, f.err
	}
	return &channelsync.SyncRunView{
		Platform: input.Platform,
		Trigger:  input.Trigger,
		Status:   channel.SyncStatusSuccess,
	}, nil
}

func (f *fakeSyncer) PushInventory(ctx context.Context, tenantID uuid.UUID, code channel.PlatformCode) (*channelsync.PushInventoryResult, error) {
	atomic.AddInt32(&f.pushes, 1)
	return &channelsync.PushInventoryResult{Platform: code, Pushed: 3}, nil
}

func (f *fakeSyncer) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeTenantRepo struct {
	tenants []*identity.Tenant
}

func (f *fakeTenantRepo) Create(ctx context.Context, t *identity.Tenant) error { return nil }
func (f *fakeTenantRepo) Update(ctx context.Context, t *identity.Tenant) error { return nil }
func (f *fakeTenantRepo) FindByID(ctx context.Context, id uuid.UUID) (*identity.Tenant, error) {
	return nil, shared.ErrNotFound
}
func (f *fakeTenantRepo) FindByCode(ctx context.Context, code string) (*identity.Tenant, error) {
	return nil, shared.ErrNotFound
}
func (f *fakeTenantRepo) FindAll(ctx context.Context, page, pageSize int) ([]*identity.Tenant, int64, error) {
	if page > 1 {
		return nil, int64(len(f.tenants)), nil
	}
	return f.tenants, int64(len(f.tenants)), nil
}
func (f *fakeTenantRepo) ExistsByCode(ctx context.Context, code string) (bool, error) {
	return false, nil
}

func newTestTenants(t *testing.T, n int, active bool) []*identity.Tenant {
	t.Helper()
	tenants := make([]*identity.Tenant, 0, n)
	for i := 0; i < n; i++ {
		tenant, err := identity.NewTenant("farm"+string(rune('a'+i)), "Farm")
		require.NoError(t, err)
		if !active {
			require.NoError(t, tenant.Suspend())
		}
		tenants = append(tenants, tenant)
	}
	return tenants
}

func newTestScheduler(cfg Config, syncer *fakeSyncer, tenants []*identity.Tenant) *SyncScheduler {
	return NewSyncScheduler(cfg, syncer, syncer, &fakeTenantRepo{tenants: tenants}, zap.NewNop())
}

func TestSyncScheduler_OrderPassCoversTenantsAndPlatforms(t *testing.T) {
	syncer := &fakeSyncer{}
	s := newTestScheduler(DefaultConfig(), syncer, newTestTenants(t, 2, true))

	s.runOrderPass(context.Background())

	// 2 tenants times 3 order platforms
	assert.Equal(t, 6, syncer.callCount())
	for _, call := range syncer.calls {
		assert.Equal(t, channel.SyncTriggerScheduled, call.Trigger)
	}
}

func TestSyncScheduler_SkipsSuspendedTenants(t *testing.T) {
	syncer := &fakeSyncer{}
	s := newTestScheduler(DefaultConfig(), syncer, newTestTenants(t, 2, false))

	s.runOrderPass(context.Background())

	assert.Equal(t, 0, syncer.callCount())
}

func TestSyncScheduler_SkipsOutsideWindow(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WindowStartHour = 6
	cfg.WindowEndHour = 22

	syncer := &fakeSyncer{}
	s := newTestScheduler(cfg, syncer, newTestTenants(t, 1, true))
	s.now = func() time.Time {
		return time.Date(2026, 3, 9, 3, 0, 0, 0, time.Local)
	}

	s.runOrderPass(context.Background())
	assert.Equal(t, 0, syncer.callCount())

	s.now = func() time.Time {
		return time.Date(2026, 3, 9, 10, 0, 0, 0, time.Local)
	}
	s.runOrderPass(context.Background())
	assert.Equal(t, 3, syncer.callCount())
}

func TestSyncScheduler_WindowWrapsMidnight(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WindowStartHour = 22
	cfg.WindowEndHour = 4

	syncer := &fakeSyncer{}
	s := newTestScheduler(cfg, syncer, newTestTenants(t, 1, true))

	s.now = func() time.Time { return time.Date(2026, 3, 9, 23, 0, 0, 0, time.Local) }
	assert.True(t, s.inWindow())

	s.now = func() time.Time { return time.Date(2026, 3, 9, 2, 0, 0, 0, time.Local) }
	assert.True(t, s.inWindow())

	s.now = func() time.Time { return time.Date(2026, 3, 9, 12, 0, 0, 0, time.Local) }
	assert.False(t, s.inWindow())
}

func TestSyncScheduler_InProgressRunIsSkippedQuietly(t *testing.T) {
	syncer := &fakeSyncer{err: shared.ErrSyncInProgress}
	s := newTestScheduler(DefaultConfig(), syncer, newTestTenants(t, 1, true))

	// Must not panic or abort the pass
	s.runOrderPass(context.Background())
	assert.Equal(t, 3, syncer.callCount())
}

func TestSyncScheduler_InventoryPass(t *testing.T) {
	syncer := &fakeSyncer{}
	s := newTestScheduler(DefaultConfig(), syncer, newTestTenants(t, 2, true))

	s.runInventoryPass(context.Background())

	assert.Equal(t, int32(2), atomic.LoadInt32(&syncer.pushes))
}

func TestSyncScheduler_StartStop(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OrderInterval = 10 * time.Millisecond
	cfg.InventoryInterval = 10 * time.Millisecond

	syncer := &fakeSyncer{}
	s := newTestScheduler(cfg, syncer, newTestTenants(t, 1, true))

	require.NoError(t, s.Start(context.Background()))

	require.Eventually(t, func() bool {
		return syncer.callCount() > 0 && atomic.LoadInt32(&syncer.pushes) > 0
	}, 2*time.Second, 5*time.Millisecond)

	stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(stopCtx))

	// Second stop is a no-op
	require.NoError(t, s.Stop(stopCtx))
}
