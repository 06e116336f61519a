package catalog

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pinehillfarm/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ChannelListings holds the per-channel identifiers of an item.
type ChannelListings struct {
	CloverItemID         string `json:"clover_item_id,omitempty"`
	BigCommerceProductID string `json:"bigcommerce_product_id,omitempty"`
	AmazonASIN           string `json:"amazon_asin,omitempty"`
	AmazonSKU            string `json:"amazon_sku,omitempty"`
}

// Item is a sellable product. UnitCost feeds cost-of-goods reporting,
// RetailPrice is the list price across channels.
type Item struct {
	shared.TenantAggregateRoot
	SKU               string
	Name              string
	Category          string
	UnitCost          decimal.Decimal
	RetailPrice       decimal.Decimal
	QuantityOnHand    int
	LowStockThreshold int
	Listings          ChannelListings
	Active            bool
}

// NewItem creates an item after validating SKU and pricing
func NewItem(tenantID uuid.UUID, sku, name, category string, unitCost, retailPrice decimal.Decimal) (*Item, error) {
	sku = strings.ToUpper(strings.TrimSpace(sku))
	if sku == "" {
		return nil, shared.NewDomainError("INVALID_SKU", "SKU cannot be empty")
	}
	if len(sku) > 100 {
		return nil, shared.NewDomainError("INVALID_SKU", "SKU cannot exceed 100 characters")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if unitCost.IsNegative() || retailPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Cost and price cannot be negative")
	}

	return &Item{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		SKU:                 sku,
		Name:                name,
		Category:            strings.TrimSpace(category),
		UnitCost:            unitCost,
		RetailPrice:         retailPrice,
		Active:              true,
	}, nil
}

// Update updates name, category and pricing
func (i *Item) Update(name, category string, unitCost, retailPrice decimal.Decimal) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Name cannot be empty")
	}
	if unitCost.IsNegative() || retailPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Cost and price cannot be negative")
	}

	i.Name = name
	i.Category = strings.TrimSpace(category)
	i.UnitCost = unitCost
	i.RetailPrice = retailPrice
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// SetListings sets the per-channel identifiers
func (i *Item) SetListings(listings ChannelListings) {
	i.Listings = listings
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
}

// SetLowStockThreshold sets the reorder point
func (i *Item) SetLowStockThreshold(threshold int) error {
	if threshold < 0 {
		return shared.NewDomainError("INVALID_THRESHOLD", "Threshold cannot be negative")
	}
	i.LowStockThreshold = threshold
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}

// AdjustQuantity applies a positive or negative stock delta
func (i *Item) AdjustQuantity(delta int) error {
	if i.QuantityOnHand+delta < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity on hand cannot go negative")
	}
	i.QuantityOnHand += delta
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}

// Deactivate hides the item from sale
func (i *Item) Deactivate() {
	if !i.Active {
		return
	}
	i.Active = false
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
}

// Activate returns the item to sale
func (i *Item) Activate() {
	if i.Active {
		return
	}
	i.Active = true
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
}

// IsLowStock reports whether quantity has dropped to the threshold
func (i *Item) IsLowStock() bool {
	return i.LowStockThreshold > 0 && i.QuantityOnHand <= i.LowStockThreshold
}

// MarginPercent returns (price - cost) / price * 100, zero when price is zero
func (i *Item) MarginPercent() decimal.Decimal {
	if i.RetailPrice.IsZero() {
		return decimal.Zero
	}
	return i.RetailPrice.Sub(i.UnitCost).Div(i.RetailPrice).Mul(decimal.NewFromInt(100)).Round(2)
}
