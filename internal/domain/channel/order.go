package channel

import (
	"time"

	"github.com/google/uuid"
	"github.com/pinehillfarm/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ChannelOrder is an order ingested from a sales channel. The pair
// (tenant, platform, platform order ID) is unique; re-ingesting updates
// the existing row.
type ChannelOrder struct {
	shared.TenantAggregateRoot
	Platform        PlatformCode
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
	Items           []ChannelOrderItem
	Raw             string
}

// ChannelOrderItem is a persisted order line. ItemID links back to the
// catalog item when the listing could be matched.
type ChannelOrderItem struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	ItemID    *uuid.UUID
	ListingID string
	SKU       string
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

// NewChannelOrder ingests a platform order. When line items are present
// their totals must add up to Total - Tax - Shipping + Discount.
func NewChannelOrder(tenantID uuid.UUID, platform PlatformCode, po PlatformOrder) (*ChannelOrder, error) {
	if !platform.IsValid() {
		return nil, shared.NewDomainError("INVALID_PLATFORM", "Unknown sales channel")
	}
	if po.PlatformOrderID == "" {
		return nil, shared.NewDomainError("INVALID_ORDER", "Platform order ID is required")
	}
	status := po.Status
	if status == "" {
		status = OrderStatusUnknown
	}
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_ORDER", "Unknown order status")
	}

	order := &ChannelOrder{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Platform:            platform,
		PlatformOrderID:     po.PlatformOrderID,
		Status:              status,
		BuyerName:           po.BuyerName,
		BuyerEmail:          po.BuyerEmail,
		Total:               po.Total,
		Tax:                 po.Tax,
		Shipping:            po.Shipping,
		Discount:            po.Discount,
		ChannelFee:          po.ChannelFee,
		Currency:            po.Currency,
		PlacedAt:            po.PlacedAt,
		Raw:                 po.Raw,
	}

	items, err := buildOrderItems(order.ID, po.Items)
	if err != nil {
		return nil, err
	}
	order.Items = items

	if err := checkLineSum(order.Items, po.Total, po.Tax, po.Shipping, po.Discount); err != nil {
		return nil, err
	}

	return order, nil
}

// ApplyUpdate refreshes the order from a fresh platform pull. Lines are
// rebuilt from the pull so a changed total is re-checked against them;
// catalog links on the old lines are discarded and must be re-matched.
func (o *ChannelOrder) ApplyUpdate(po PlatformOrder) error {
	status := po.Status
	if status == "" {
		status = OrderStatusUnknown
	}
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_ORDER", "Unknown order status")
	}

	items, err := buildOrderItems(o.ID, po.Items)
	if err != nil {
		return err
	}
	if err := checkLineSum(items, po.Total, po.Tax, po.Shipping, po.Discount); err != nil {
		return err
	}

	o.Status = status
	o.Total = po.Total
	o.Tax = po.Tax
	o.Shipping = po.Shipping
	o.Discount = po.Discount
	o.ChannelFee = po.ChannelFee
	o.Items = items
	o.Raw = po.Raw
	o.UpdatedAt = time.Now()
	o.IncrementVersion()

	return nil
}

func buildOrderItems(orderID uuid.UUID, lines []PlatformOrderItem) ([]ChannelOrderItem, error) {
	items := make([]ChannelOrderItem, 0, len(lines))
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, shared.NewDomainError("INVALID_ORDER", "Line quantity must be positive")
		}
		items = append(items, ChannelOrderItem{
			ID:        uuid.New(),
			OrderID:   orderID,
			ListingID: line.ListingID,
			SKU:       line.SKU,
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			LineTotal: line.LineTotal,
		})
	}
	return items, nil
}

// LinkItem attaches a catalog item to the order line at index
func (o *ChannelOrder) LinkItem(index int, itemID uuid.UUID) error {
	if index < 0 || index >= len(o.Items) {
		return shared.ErrInvalidInput
	}
	o.Items[index].ItemID = &itemID
	return nil
}

// LineSum returns the sum of line totals
func (o *ChannelOrder) LineSum() decimal.Decimal {
	sum := decimal.Zero
	for _, line := range o.Items {
		sum = sum.Add(line.LineTotal)
	}
	return sum
}

// Revenue is the order total net of tax collected
func (o *ChannelOrder) Revenue() decimal.Decimal {
	return o.Total.Sub(o.Tax)
}

// IsSale reports whether the order counts toward revenue
func (o *ChannelOrder) IsSale() bool {
	switch o.Status {
	case OrderStatusCancelled, OrderStatusRefunded:
		return false
	}
	return true
}

func checkLineSum(items []ChannelOrderItem, total, tax, shipping, discount decimal.Decimal) error {
	if len(items) == 0 {
		return nil
	}
	sum := decimal.Zero
	for _, line := range items {
		sum = sum.Add(line.LineTotal)
	}
	expected := total.Sub(tax).Sub(shipping).Add(discount)
	if !sum.Equal(expected) {
		return shared.NewDomainError("ORDER_TOTAL_MISMATCH", "Line totals do not add up to the order total")
	}
	return nil
}
