package purchase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pinehillfarm/backend/internal/domain/purchase"
)

// CreatePurchaseInput is the request to record an employee purchase
type CreatePurchaseInput struct {
	TenantID      uuid.UUID
	EmployeeID    uuid.UUID
	Lines         []LineInput
	PayrollDeduct bool
	Notes         string
}

// LineInput is one requested line, priced by the service
type LineInput struct {
	ItemID   uuid.UUID
	Quantity int
}

// ReviewInput identifies a purchase and the manager acting on it
type ReviewInput struct {
	TenantID   uuid.UUID
	PurchaseID uuid.UUID
	ReviewerID uuid.UUID
}

// CancelInput identifies a purchase and who is cancelling it
type CancelInput struct {
	TenantID    uuid.UUID
	PurchaseID  uuid.UUID
	RequesterID uuid.UUID
	Manager     bool
}

// ListInput filters purchases for listing
type ListInput struct {
	TenantID   uuid.UUID
	EmployeeID *uuid.UUID
	Status     *purchase.Status
}

// View is the outward purchase representation
type View struct {
	ID            uuid.UUID       `json:"id"`
	EmployeeID    uuid.UUID       `json:"employee_id"`
	Lines         []LineView      `json:"lines"`
	Total         decimal.Decimal `json:"total"`
	PayrollDeduct bool            `json:"payroll_deduct"`
	Status        string          `json:"status"`
	ApprovedBy    *uuid.UUID      `json:"approved_by,omitempty"`
	ApprovedAt    *time.Time      `json:"approved_at,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// LineView is one line on a purchase view
type LineView struct {
	ItemID    uuid.UUID       `json:"item_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

func view(p *purchase.Purchase) *View {
	v := &View{
		ID:            p.ID,
		EmployeeID:    p.EmployeeID,
		Total:         p.Total,
		PayrollDeduct: p.PayrollDeduct,
		Status:        string(p.Status),
		ApprovedBy:    p.ApprovedBy,
		ApprovedAt:    p.ApprovedAt,
		Notes:         p.Notes,
		CreatedAt:     p.CreatedAt,
	}
	for _, line := range p.Lines {
		v.Lines = append(v.Lines, LineView{
			ItemID:    line.ItemID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			LineTotal: line.LineTotal(),
		})
	}
	return v
}

func views(purchases []*purchase.Purchase) []*View {
	out := make([]*View, 0, len(purchases))
	for _, p := range purchases {
		out = append(out, view(p))
	}
	return out
}
