package channel

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pinehillfarm/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// OrderRepository defines the interface for channel order persistence
type OrderRepository interface {
	Create(ctx context.Context, order *ChannelOrder) error
	Update(ctx context.Context, order *ChannelOrder) error
	FindByID(ctx context.Context, id uuid.UUID) (*ChannelOrder, error)

	// FindByPlatformOrderID is the idempotency lookup used during sync
	FindByPlatformOrderID(ctx context.Context, tenantID uuid.UUID, platform PlatformCode, platformOrderID string) (*ChannelOrder, error)

	FindAll(ctx context.Context, tenantID uuid.UUID, filter OrderFilter) ([]*ChannelOrder, int64, error)

	// SalesByDay aggregates revenue per day for reporting
	SalesByDay(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]DailySales, error)

	// SalesByPlatform aggregates totals per channel within the window
	SalesByPlatform(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]PlatformSales, error)

	// TopItems returns the best selling lines within the window
	TopItems(ctx context.Context, tenantID uuid.UUID, from, to time.Time, limit int) ([]ItemSales, error)
}

// OrderFilter narrows order listings
type OrderFilter struct {
	Platform *PlatformCode
	Status   *OrderStatus
	From     *time.Time
	To       *time.Time

	Page     int
	PageSize int
}

// Offset returns the pagination offset
func (f OrderFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.Limit()
}

// Limit returns the pagination limit
func (f OrderFilter) Limit() int {
	if f.PageSize <= 0 {
		return 20
	}
	if f.PageSize > 100 {
		return 100
	}
	return f.PageSize
}

// DailySales is one day of aggregated revenue
type DailySales struct {
	Day     time.Time
	Orders  int64
	Revenue decimal.Decimal
}

// PlatformSales is aggregated revenue for one channel
type PlatformSales struct {
	Platform PlatformCode
	Orders   int64
	Revenue  decimal.Decimal
	Tax      decimal.Decimal
	Fees     decimal.Decimal
}

// ItemSales is aggregated sales for one catalog item
type ItemSales struct {
	ItemID   *uuid.UUID
	SKU      string
	Name     string
	Quantity int64
	Revenue  decimal.Decimal
}

// SyncRunRepository defines the interface for sync run persistence
type SyncRunRepository interface {
	Create(ctx context.Context, run *SyncRun) error
	Update(ctx context.Context, run *SyncRun) error
	FindByID(ctx context.Context, id uuid.UUID) (*SyncRun, error)
	FindAll(ctx context.Context, tenantID uuid.UUID, platform *PlatformCode, filter shared.Filter) ([]*SyncRun, int64, error)

	// FindLatestFinished returns the most recent run that pulled its
	// window (success or partial), nil when the platform has never had
	// one. Failed runs are skipped so their windows are retried.
	FindLatestFinished(ctx context.Context, tenantID uuid.UUID, platform PlatformCode) (*SyncRun, error)
}
