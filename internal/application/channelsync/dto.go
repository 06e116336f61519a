package channelsync

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pinehillfarm/backend/internal/domain/channel"
)

// SyncOrdersInput starts an order sync for one channel
type SyncOrdersInput struct {
	TenantID uuid.UUID
	Platform channel.PlatformCode
	Trigger  channel.SyncTrigger

	// Window to pull. When From is zero the window starts at the previous
	// run's end, falling back to the configured lookback.
	From time.Time
	To   time.Time
}

// SyncRunView is the outward view of a sync run
type SyncRunView struct {
	ID         uuid.UUID
	Platform   channel.PlatformCode
	Trigger    channel.SyncTrigger
	WindowFrom time.Time
	WindowTo   time.Time
	Status     channel.SyncStatus
	Total      int
	Created    int
	Updated    int
	Failed     int
	LastError  string
	StartedAt  time.Time
	FinishedAt *time.Time
}

// OrderView is the outward view of an ingested channel order
type OrderView struct {
	ID              uuid.UUID
	Platform        channel.PlatformCode
	PlatformOrderID string
	Status          channel.OrderStatus
	BuyerName       string
	BuyerEmail      string
	Total           decimal.Decimal
	Tax             decimal.Decimal
	Shipping        decimal.Decimal
	Discount        decimal.Decimal
	ChannelFee      decimal.Decimal
	Currency        string
	PlacedAt        time.Time
	Items           []OrderItemView
}

// OrderItemView is one line of an ingested order
type OrderItemView struct {
	ItemID    *uuid.UUID
	ListingID string
	SKU       string
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

// PushInventoryResult summarizes an inventory push to a channel
type PushInventoryResult struct {
	Platform channel.PlatformCode
	Pushed   int
	Skipped  int // items without a listing on the channel
}

func syncRunView(r *channel.SyncRun) SyncRunView {
	return SyncRunView{
		ID:         r.ID,
		Platform:   r.Platform,
		Trigger:    r.Trigger,
		WindowFrom: r.WindowFrom,
		WindowTo:   r.WindowTo,
		Status:     r.Status,
		Total:      r.Total,
		Created:    r.Created,
		Updated:    r.Updated,
		Failed:     r.Failed,
		LastError:  r.LastError,
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
	}
}

func orderView(o *channel.ChannelOrder) OrderView {
	items := make([]OrderItemView, 0, len(o.Items))
	for _, line := range o.Items {
		items = append(items, OrderItemView{
			ItemID:    line.ItemID,
			ListingID: line.ListingID,
			SKU:       line.SKU,
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			LineTotal: line.LineTotal,
		})
	}
	return OrderView{
		ID:              o.ID,
		Platform:        o.Platform,
		PlatformOrderID: o.PlatformOrderID,
		Status:          o.Status,
		BuyerName:       o.BuyerName,
		BuyerEmail:      o.BuyerEmail,
		Total:           o.Total,
		Tax:             o.Tax,
		Shipping:        o.Shipping,
		Discount:        o.Discount,
		ChannelFee:      o.ChannelFee,
		Currency:        o.Currency,
		PlacedAt:        o.PlacedAt,
		Items:           items,
	}
}
