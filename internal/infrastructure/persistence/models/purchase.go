package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pinehillfarm/backend/internal/domain/purchase"
)

// PurchaseModel is the persistence model for the employee Purchase aggregate.
type PurchaseModel struct {
	TenantAggregateModel
	EmployeeID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PayrollDeduct bool            `gorm:"not null;default:false"`
	Status        purchase.Status `gorm:"type:varchar(20);not null;default:'pending';index"`
	ApprovedBy    *uuid.UUID      `gorm:"type:uuid"`
	ApprovedAt    *time.Time
	Notes         string `gorm:"type:text"`

	Lines []PurchaseLineModel `gorm:"foreignKey:PurchaseID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (PurchaseModel) TableName() string {
	return "employee_purchases"
}

// PurchaseLineModel is one line of an employee purchase.
type PurchaseLineModel struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key"`
	PurchaseID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID     uuid.UUID       `gorm:"type:uuid;not null"`
	Name       string          `gorm:"type:varchar(200)"`
	Quantity   int             `gorm:"not null;default:1"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (PurchaseLineModel) TableName() string {
	return "employee_purchase_lines"
}

// ToDomain converts the persistence model to a domain Purchase.
func (m *PurchaseModel) ToDomain() *purchase.Purchase {
	lines := make([]purchase.Line, len(m.Lines))
	for i, lm := range m.Lines {
		lines[i] = purchase.Line{
			ID:         lm.ID,
			PurchaseID: lm.PurchaseID,
			ItemID:     lm.ItemID,
			Name:       lm.Name,
			Quantity:   lm.Quantity,
			UnitPrice:  lm.UnitPrice,
		}
	}

	p := &purchase.Purchase{
		EmployeeID:    m.EmployeeID,
		Lines:         lines,
		Total:         m.Total,
		PayrollDeduct: m.PayrollDeduct,
		Status:        m.Status,
		ApprovedBy:    m.ApprovedBy,
		ApprovedAt:    m.ApprovedAt,
		Notes:         m.Notes,
	}
	m.PopulateTenantAggregateRoot(&p.TenantAggregateRoot)
	return p
}

// FromDomain populates the persistence model from a domain Purchase.
func (m *PurchaseModel) FromDomain(p *purchase.Purchase) {
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	m.EmployeeID = p.EmployeeID
	m.Total = p.Total
	m.PayrollDeduct = p.PayrollDeduct
	m.Status = p.Status
	m.ApprovedBy = p.ApprovedBy
	m.ApprovedAt = p.ApprovedAt
	m.Notes = p.Notes

	m.Lines = make([]PurchaseLineModel, len(p.Lines))
	for i, line := range p.Lines {
		m.Lines[i] = PurchaseLineModel{
			ID:         line.ID,
			PurchaseID: line.PurchaseID,
			ItemID:     line.ItemID,
			Name:       line.Name,
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice,
		}
	}
}

// PurchaseModelFromDomain creates a new persistence model from a domain Purchase.
func PurchaseModelFromDomain(p *purchase.Purchase) *PurchaseModel {
	m := &PurchaseModel{}
	m.FromDomain(p)
	return m
}
