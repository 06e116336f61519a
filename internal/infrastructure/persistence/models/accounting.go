package models

import (
	"github.com/shopspring/decimal"

	"github.com/pinehillfarm/backend/internal/domain/accounting"
)

// AccountingConfigModel is the persistence model for the accounting Config aggregate.
type AccountingConfigModel struct {
	TenantAggregateModel
	TaxRate        decimal.Decimal `gorm:"type:decimal(6,3);not null;default:0"`
	CloverFeePct   decimal.Decimal `gorm:"type:decimal(6,3);not null;default:0"`
	BigCommFeePct  decimal.Decimal `gorm:"type:decimal(6,3);not null;default:0"`
	AmazonFeePct   decimal.Decimal `gorm:"type:decimal(6,3);not null;default:15"`
	FiscalYearEnds string          `gorm:"type:varchar(5);not null;default:'12-31'"`
}

// TableName returns the table name for GORM
func (AccountingConfigModel) TableName() string {
	return "accounting_configs"
}

// ToDomain converts the persistence model to a domain Config.
func (m *AccountingConfigModel) ToDomain() *accounting.Config {
	cfg := &accounting.Config{
		TaxRate:        m.TaxRate,
		CloverFeePct:   m.CloverFeePct,
		BigCommFeePct:  m.BigCommFeePct,
		AmazonFeePct:   m.AmazonFeePct,
		FiscalYearEnds: m.FiscalYearEnds,
	}
	m.PopulateTenantAggregateRoot(&cfg.TenantAggregateRoot)
	return cfg
}

// FromDomain populates the persistence model from a domain Config.
func (m *AccountingConfigModel) FromDomain(c *accounting.Config) {
	m.FromDomainTenantAggregateRoot(c.TenantAggregateRoot)
	m.TaxRate = c.TaxRate
	m.CloverFeePct = c.CloverFeePct
	m.BigCommFeePct = c.BigCommFeePct
	m.AmazonFeePct = c.AmazonFeePct
	m.FiscalYearEnds = c.FiscalYearEnds
}

// AccountingConfigModelFromDomain creates a new persistence model from a domain Config.
func AccountingConfigModelFromDomain(c *accounting.Config) *AccountingConfigModel {
	m := &AccountingConfigModel{}
	m.FromDomain(c)
	return m
}
