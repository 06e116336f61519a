package channel

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Errors returned by platform adapters
var (
	ErrPlatformNotFound      = errors.New("channel: platform not found")
	ErrPlatformNotConfigured = errors.New("channel: platform not configured for tenant")
	ErrInvalidCredentials    = errors.New("channel: invalid platform credentials")
	ErrRateLimited           = errors.New("channel: platform rate limit exceeded")
	ErrPlatformUnavailable   = errors.New("channel: platform temporarily unavailable")
)

// PlatformCode identifies a sales channel
type PlatformCode string

const (
	PlatformClover      PlatformCode = "clover"
	PlatformBigCommerce PlatformCode = "bigcommerce"
	PlatformAmazon      PlatformCode = "amazon"
)

// IsValid checks if the platform code is supported
func (p PlatformCode) IsValid() bool {
	switch p {
	case PlatformClover, PlatformBigCommerce, PlatformAmazon:
		return true
	}
	return false
}

func (p PlatformCode) String() string {
	return string(p)
}

// OrderStatus is the normalized status of an order across channels
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusRefunded  OrderStatus = "refunded"
	OrderStatusUnknown   OrderStatus = "unknown"
)

// IsValid checks if the order status is known
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped,
		OrderStatusCompleted, OrderStatusCancelled, OrderStatusRefunded, OrderStatusUnknown:
		return true
	}
	return false
}

// PlatformOrder is an order as returned by a channel adapter, before it
// is ingested as a ChannelOrder.
type PlatformOrder struct {
	PlatformOrderID string
	Status          OrderStatus
	BuyerName       string
	BuyerEmail      string
	Total           decimal.Decimal
	Tax             decimal.Decimal
	Shipping        decimal.Decimal
	Discount        decimal.Decimal
	ChannelFee      decimal.Decimal
	Currency        string
	PlacedAt        time.Time
	Items           []PlatformOrderItem
	Raw             string // Original payload, kept for troubleshooting
}

// PlatformOrderItem is a single line on a platform order
type PlatformOrderItem struct {
	ListingID string // Channel-side item identifier
	SKU       string
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

// OrderPullRequest asks an adapter for orders in a time window
type OrderPullRequest struct {
	TenantID uuid.UUID
	From     time.Time
	To       time.Time
	Page     int
	PageSize int
}

// Validate checks the pull request parameters
func (r OrderPullRequest) Validate() error {
	if r.TenantID == uuid.Nil {
		return errors.New("channel: tenant ID is required")
	}
	if r.From.IsZero() || r.To.IsZero() {
		return errors.New("channel: time window is required")
	}
	if !r.To.After(r.From) {
		return errors.New("channel: window end must be after start")
	}
	return nil
}

// InventoryLevel is a stock level push to a channel
type InventoryLevel struct {
	ListingID string
	SKU       string
	Quantity  int
}

// Platform is the port implemented by each sales channel adapter.
type Platform interface {
	// Code returns the platform this adapter talks to
	Code() PlatformCode

	// PullOrders returns orders placed within the request window.
	// hasMore signals that another page is available.
	PullOrders(ctx context.Context, req OrderPullRequest) (orders []PlatformOrder, hasMore bool, err error)

	// GetOrder fetches a single order by its platform ID
	GetOrder(ctx context.Context, tenantID uuid.UUID, platformOrderID string) (*PlatformOrder, error)

	// PushInventory updates stock levels on the channel
	PushInventory(ctx context.Context, tenantID uuid.UUID, levels []InventoryLevel) error
}

// Registry resolves platform adapters by code.
type Registry interface {
	Register(platform Platform)
	Get(code PlatformCode) (Platform, error)
	All() []Platform
}
