package models

import (
	"github.com/shopspring/decimal"

	"github.com/pinehillfarm/backend/internal/domain/catalog"
)

// ItemModel is the persistence model for the catalog Item aggregate.
// Channel listing identifiers are flattened into columns so that sync
// lookups can hit an index.
type ItemModel struct {
	TenantAggregateModel
	SKU                  string          `gorm:"type:varchar(100);not null;index:idx_items_tenant_sku,unique"`
	Name                 string          `gorm:"type:varchar(200);not null"`
	Category             string          `gorm:"type:varchar(100);index"`
	UnitCost             decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	RetailPrice          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	QuantityOnHand       int             `gorm:"not null;default:0"`
	LowStockThreshold    int             `gorm:"not null;default:0"`
	CloverItemID         string          `gorm:"type:varchar(100);index"`
	BigCommerceProductID string          `gorm:"type:varchar(100);index"`
	AmazonASIN           string          `gorm:"type:varchar(20)"`
	AmazonSKU            string          `gorm:"type:varchar(100);index"`
	Active               bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (ItemModel) TableName() string {
	return "items"
}

// ToDomain converts the persistence model to a domain Item.
func (m *ItemModel) ToDomain() *catalog.Item {
	item := &catalog.Item{
		SKU:               m.SKU,
		Name:              m.Name,
		Category:          m.Category,
		UnitCost:          m.UnitCost,
		RetailPrice:       m.RetailPrice,
		QuantityOnHand:    m.QuantityOnHand,
		LowStockThreshold: m.LowStockThreshold,
		Listings: catalog.ChannelListings{
			CloverItemID:         m.CloverItemID,
			BigCommerceProductID: m.BigCommerceProductID,
			AmazonASIN:           m.AmazonASIN,
			AmazonSKU:            m.AmazonSKU,
		},
		Active: m.Active,
	}
	m.PopulateTenantAggregateRoot(&item.TenantAggregateRoot)
	return item
}

// FromDomain populates the persistence model from a domain Item.
func (m *ItemModel) FromDomain(i *catalog.Item) {
	m.FromDomainTenantAggregateRoot(i.TenantAggregateRoot)
	m.SKU = i.SKU
	m.Name = i.Name
	m.Category = i.Category
	m.UnitCost = i.UnitCost
	m.RetailPrice = i.RetailPrice
	m.QuantityOnHand = i.QuantityOnHand
	m.LowStockThreshold = i.LowStockThreshold
	m.CloverItemID = i.Listings.CloverItemID
	m.BigCommerceProductID = i.Listings.BigCommerceProductID
	m.AmazonASIN = i.Listings.AmazonASIN
	m.AmazonSKU = i.Listings.AmazonSKU
	m.Active = i.Active
}

// ItemModelFromDomain creates a new persistence model from a domain Item.
func ItemModelFromDomain(i *catalog.Item) *ItemModel {
	m := &ItemModel{}
	m.FromDomain(i)
	return m
}
