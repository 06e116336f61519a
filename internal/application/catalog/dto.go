package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pinehillfarm/backend/internal/domain/catalog"
)

// CreateItemInput contains the input for adding a catalog item
type CreateItemInput struct {
	TenantID          uuid.UUID
	SKU               string
	Name              string
	Category          string
	UnitCost          decimal.Decimal
	RetailPrice       decimal.Decimal
	QuantityOnHand    int
	LowStockThreshold int
	Listings          catalog.ChannelListings
}

// UpdateItemInput contains the input for editing a catalog item
type UpdateItemInput struct {
	TenantID          uuid.UUID
	ItemID            uuid.UUID
	Name              string
	Category          string
	UnitCost          decimal.Decimal
	RetailPrice       decimal.Decimal
	LowStockThreshold int
}

// AdjustQuantityInput changes stock on hand by a delta
type AdjustQuantityInput struct {
	TenantID uuid.UUID
	ItemID   uuid.UUID
	Delta    int
}

// ItemView is the outward view of a catalog item
type ItemView struct {
	ID                uuid.UUID
	SKU               string
	Name              string
	Category          string
	UnitCost          decimal.Decimal
	RetailPrice       decimal.Decimal
	QuantityOnHand    int
	LowStockThreshold int
	Listings          catalog.ChannelListings
	Active            bool
	LowStock          bool
	MarginPercent     decimal.Decimal
	CreatedAt         time.Time
}

func itemView(i *catalog.Item) ItemView {
	return ItemView{
		ID:                i.ID,
		SKU:               i.SKU,
		Name:              i.Name,
		Category:          i.Category,
		UnitCost:          i.UnitCost,
		RetailPrice:       i.RetailPrice,
		QuantityOnHand:    i.QuantityOnHand,
		LowStockThreshold: i.LowStockThreshold,
		Listings:          i.Listings,
		Active:            i.Active,
		LowStock:          i.IsLowStock(),
		MarginPercent:     i.MarginPercent(),
		CreatedAt:         i.CreatedAt,
	}
}
