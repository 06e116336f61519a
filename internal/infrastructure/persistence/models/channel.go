package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pinehillfarm/backend/internal/domain/channel"
)

// ChannelOrderModel is the persistence model for the ChannelOrder aggregate.
type ChannelOrderModel struct {
	TenantAggregateModel
	Platform        channel.PlatformCode `gorm:"type:varchar(20);not null;index:idx_orders_platform_order,unique"`
	PlatformOrderID string               `gorm:"type:varchar(100);not null;index:idx_orders_platform_order,unique"`
	Status          channel.OrderStatus  `gorm:"type:varchar(20);not null;index"`
	BuyerName       string               `gorm:"type:varchar(200)"`
	BuyerEmail      string               `gorm:"type:varchar(200)"`
	Total           decimal.Decimal      `gorm:"type:decimal(12,2);not null;default:0"`
	Tax             decimal.Decimal      `gorm:"type:decimal(12,2);not null;default:0"`
	Shipping        decimal.Decimal      `gorm:"type:decimal(12,2);not null;default:0"`
	Discount        decimal.Decimal      `gorm:"type:decimal(12,2);not null;default:0"`
	ChannelFee      decimal.Decimal      `gorm:"type:decimal(12,2);not null;default:0"`
	Currency        string               `gorm:"type:varchar(10);not null;default:'USD'"`
	PlacedAt        time.Time            `gorm:"not null;index"`
	Raw             string               `gorm:"type:jsonb"`

	Items []ChannelOrderItemModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (ChannelOrderModel) TableName() string {
	return "channel_orders"
}

// ChannelOrderItemModel is one line of a channel order.
type ChannelOrderItemModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID    *uuid.UUID      `gorm:"type:uuid;index"`
	ListingID string          `gorm:"type:varchar(100)"`
	SKU       string          `gorm:"type:varchar(100);index"`
	Name      string          `gorm:"type:varchar(200)"`
	Quantity  int             `gorm:"not null;default:1"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	LineTotal decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (ChannelOrderItemModel) TableName() string {
	return "channel_order_items"
}

// ToDomain converts the persistence model to a domain ChannelOrder.
func (m *ChannelOrderModel) ToDomain() *channel.ChannelOrder {
	items := make([]channel.ChannelOrderItem, len(m.Items))
	for i, im := range m.Items {
		items[i] = channel.ChannelOrderItem{
			ID:        im.ID,
			OrderID:   im.OrderID,
			ItemID:    im.ItemID,
			ListingID: im.ListingID,
			SKU:       im.SKU,
			Name:      im.Name,
			Quantity:  im.Quantity,
			UnitPrice: im.UnitPrice,
			LineTotal: im.LineTotal,
		}
	}

	order := &channel.ChannelOrder{
		Platform:        m.Platform,
		PlatformOrderID: m.PlatformOrderID,
		Status:          m.Status,
		BuyerName:       m.BuyerName,
		BuyerEmail:      m.BuyerEmail,
		Total:           m.Total,
		Tax:             m.Tax,
		Shipping:        m.Shipping,
		Discount:        m.Discount,
		ChannelFee:      m.ChannelFee,
		Currency:        m.Currency,
		PlacedAt:        m.PlacedAt,
		Items:           items,
		Raw:             m.Raw,
	}
	m.PopulateTenantAggregateRoot(&order.TenantAggregateRoot)
	return order
}

// FromDomain populates the persistence model from a domain ChannelOrder.
func (m *ChannelOrderModel) FromDomain(o *channel.ChannelOrder) {
	m.FromDomainTenantAggregateRoot(o.TenantAggregateRoot)
	m.Platform = o.Platform
	m.PlatformOrderID = o.PlatformOrderID
	m.Status = o.Status
	m.BuyerName = o.BuyerName
	m.BuyerEmail = o.BuyerEmail
	m.Total = o.Total
	m.Tax = o.Tax
	m.Shipping = o.Shipping
	m.Discount = o.Discount
	m.ChannelFee = o.ChannelFee
	m.Currency = o.Currency
	m.PlacedAt = o.PlacedAt
	m.Raw = o.Raw

	m.Items = make([]ChannelOrderItemModel, len(o.Items))
	for i, item := range o.Items {
		m.Items[i] = ChannelOrderItemModel{
			ID:        item.ID,
			OrderID:   item.OrderID,
			ItemID:    item.ItemID,
			ListingID: item.ListingID,
			SKU:       item.SKU,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: item.LineTotal,
		}
	}
}

// ChannelOrderModelFromDomain creates a new persistence model from a domain ChannelOrder.
func ChannelOrderModelFromDomain(o *channel.ChannelOrder) *ChannelOrderModel {
	m := &ChannelOrderModel{}
	m.FromDomain(o)
	return m
}

// SyncRunModel is the persistence model for the SyncRun aggregate.
type SyncRunModel struct {
	TenantAggregateModel
	Platform   channel.PlatformCode `gorm:"type:varchar(20);not null;index"`
	Trigger    channel.SyncTrigger  `gorm:"type:varchar(20);not null"`
	WindowFrom time.Time            `gorm:"not null"`
	WindowTo   time.Time            `gorm:"not null"`
	Status     channel.SyncStatus   `gorm:"type:varchar(20);not null;index"`
	Total      int                  `gorm:"not null;default:0"`
	Created    int                  `gorm:"not null;default:0"`
	Updated    int                  `gorm:"not null;default:0"`
	Failed     int                  `gorm:"not null;default:0"`
	LastError  string               `gorm:"type:text"`
	StartedAt  time.Time            `gorm:"not null;index"`
	FinishedAt *time.Time
}

// TableName returns the table name for GORM
func (SyncRunModel) TableName() string {
	return "sync_runs"
}

// ToDomain converts the persistence model to a domain SyncRun.
func (m *SyncRunModel) ToDomain() *channel.SyncRun {
	run := &channel.SyncRun{
		Platform:   m.Platform,
		Trigger:    m.Trigger,
		WindowFrom: m.WindowFrom,
		WindowTo:   m.WindowTo,
		Status:     m.Status,
		Total:      m.Total,
		Created:    m.Created,
		Updated:    m.Updated,
		Failed:     m.Failed,
		LastError:  m.LastError,
		StartedAt:  m.StartedAt,
		FinishedAt: m.FinishedAt,
	}
	m.PopulateTenantAggregateRoot(&run.TenantAggregateRoot)
	return run
}

// FromDomain populates the persistence model from a domain SyncRun.
func (m *SyncRunModel) FromDomain(r *channel.SyncRun) {
	m.FromDomainTenantAggregateRoot(r.TenantAggregateRoot)
	m.Platform = r.Platform
	m.Trigger = r.Trigger
	m.WindowFrom = r.WindowFrom
	m.WindowTo = r.WindowTo
	m.Status = r.Status
	m.Total = r.Total
	m.Created = r.Created
	m.Updated = r.Updated
	m.Failed = r.Failed
	m.LastError = r.LastError
	m.StartedAt = r.StartedAt
	m.FinishedAt = r.FinishedAt
}

// SyncRunModelFromDomain creates a new persistence model from a domain SyncRun.
func SyncRunModelFromDomain(r *channel.SyncRun) *SyncRunModel {
	m := &SyncRunModel{}
	m.FromDomain(r)
	return m
}
