package purchase

import (
	"time"

	"github.com/google/uuid"
	"github.com/pinehillfarm/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Status is the lifecycle of an employee purchase
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Purchase is an employee buying product at the staff discount, optionally
// deducted from payroll.
type Purchase struct {
	shared.TenantAggregateRoot
	EmployeeID    uuid.UUID
	Lines         []Line
	Total         decimal.Decimal
	PayrollDeduct bool
	Status        Status
	ApprovedBy    *uuid.UUID
	ApprovedAt    *time.Time
	Notes         string
}

// Line is one item on a purchase
type Line struct {
	ID         uuid.UUID
	PurchaseID uuid.UUID
	ItemID     uuid.UUID
	Name       string
	Quantity   int
	UnitPrice  decimal.Decimal // Discounted price at time of purchase
}

// LineTotal returns quantity times unit price
func (l Line) LineTotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// LineInput is the request shape for a purchase line
type LineInput struct {
	ItemID    uuid.UUID
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
}

// NewPurchase creates a pending purchase from line inputs
func NewPurchase(tenantID, employeeID uuid.UUID, lines []LineInput, payrollDeduct bool) (*Purchase, error) {
	if employeeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_EMPLOYEE", "Employee ID cannot be empty")
	}
	if len(lines) == 0 {
		return nil, shared.NewDomainError("EMPTY_PURCHASE", "Purchase needs at least one line")
	}

	p := &Purchase{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		EmployeeID:          employeeID,
		PayrollDeduct:       payrollDeduct,
		Status:              StatusPending,
		Total:               decimal.Zero,
	}

	for _, in := range lines {
		if in.ItemID == uuid.Nil {
			return nil, shared.NewDomainError("INVALID_LINE", "Line item ID cannot be empty")
		}
		if in.Quantity <= 0 {
			return nil, shared.NewDomainError("INVALID_LINE", "Line quantity must be positive")
		}
		if in.UnitPrice.IsNegative() {
			return nil, shared.NewDomainError("INVALID_LINE", "Line price cannot be negative")
		}
		line := Line{
			ID:         uuid.New(),
			PurchaseID: p.ID,
			ItemID:     in.ItemID,
			Name:       in.Name,
			Quantity:   in.Quantity,
			UnitPrice:  in.UnitPrice,
		}
		p.Lines = append(p.Lines, line)
		p.Total = p.Total.Add(line.LineTotal())
	}

	return p, nil
}

// Approve approves a pending purchase
func (p *Purchase) Approve(approverID uuid.UUID) error {
	if p.Status != StatusPending {
		return shared.ErrInvalidState
	}

	now := time.Now()
	p.Status = StatusApproved
	p.ApprovedBy = &approverID
	p.ApprovedAt = &now
	p.UpdatedAt = now
	p.IncrementVersion()

	return nil
}

// Complete marks an approved purchase as settled
func (p *Purchase) Complete() error {
	if p.Status != StatusApproved {
		return shared.ErrInvalidState
	}
	p.Status = StatusCompleted
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}

// Cancel cancels a purchase that has not completed
func (p *Purchase) Cancel() error {
	if p.Status == StatusCompleted || p.Status == StatusCancelled {
		return shared.ErrInvalidState
	}
	p.Status = StatusCancelled
	p.UpdatedAt = time.Now()
	p.IncrementVersion()
	return nil
}
