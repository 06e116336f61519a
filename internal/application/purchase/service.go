package purchase

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/pinehillfarm/backend/internal/domain/catalog"
	"github.com/pinehillfarm/backend/internal/domain/purchase"
	"github.com/pinehillfarm/backend/internal/domain/shared"
)

// ServiceConfig holds the employee purchase policy
type ServiceConfig struct {
	// DiscountPct is taken off the retail price for staff purchases
	DiscountPct decimal.Decimal
}

// DefaultServiceConfig returns the standard staff discount
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{DiscountPct: decimal.NewFromInt(20)}
}

// Service handles employee purchase use cases
type Service struct {
	purchaseRepo purchase.Repository
	itemRepo     catalog.ItemRepository
	config       ServiceConfig
	logger       *zap.Logger
}

// NewService creates a new purchase service
func NewService(purchaseRepo purchase.Repository, itemRepo catalog.ItemRepository, config ServiceConfig, logger *zap.Logger) *Service {
	return &Service{
		purchaseRepo: purchaseRepo,
		itemRepo:     itemRepo,
		config:       config,
		logger:       logger,
	}
}

// CreatePurchase records a pending purchase, pricing each line at the
// staff discount off the item's current retail price.
func (s *Service) CreatePurchase(ctx context.Context, input CreatePurchaseInput) (*View, error) {
	if len(input.Lines) == 0 {
		return nil, shared.NewDomainError("EMPTY_PURCHASE", "Purchase needs at least one line")
	}

	priced := make([]purchase.LineInput, 0, len(input.Lines))
	for _, line := range input.Lines {
		item, err := s.itemRepo.FindByID(ctx, line.ItemID)
		if err != nil || item.TenantID != input.TenantID {
			return nil, shared.NewDomainError("ITEM_NOT_FOUND", "Item not found")
		}
		if !item.Active {
			return nil, shared.NewDomainError("ITEM_INACTIVE", "Item is not available for purchase")
		}
		if line.Quantity > item.QuantityOnHand {
			return nil, shared.NewDomainError("INSUFFICIENT_STOCK", "Not enough stock for "+item.Name)
		}
		priced = append(priced, purchase.LineInput{
			ItemID:    item.ID,
			Name:      item.Name,
			Quantity:  line.Quantity,
			UnitPrice: s.discountedPrice(item.RetailPrice),
		})
	}

	p, err := purchase.NewPurchase(input.TenantID, input.EmployeeID, priced, input.PayrollDeduct)
	if err != nil {
		return nil, err
	}
	p.Notes = input.Notes

	if err := s.purchaseRepo.Create(ctx, p); err != nil {
		s.logger.Error("Failed to create purchase", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create purchase")
	}

	s.logger.Info("Employee purchase created",
		zap.String("purchase_id", p.ID.String()),
		zap.String("employee_id", input.EmployeeID.String()),
		zap.String("total", p.Total.String()))

	return view(p), nil
}

// ApprovePurchase approves a pending purchase
func (s *Service) ApprovePurchase(ctx context.Context, input ReviewInput) (*View, error) {
	p, err := s.findTenantPurchase(ctx, input.TenantID, input.PurchaseID)
	if err != nil {
		return nil, err
	}

	if err := p.Approve(input.ReviewerID); err != nil {
		return nil, err
	}

	if err := s.purchaseRepo.Update(ctx, p); err != nil {
		s.logger.Error("Failed to update purchase", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to approve purchase")
	}

	return view(p), nil
}

// CompletePurchase settles an approved purchase and deducts the sold
// quantities from stock. A line whose stock ran out since approval
// fails the completion before anything is deducted.
func (s *Service) CompletePurchase(ctx context.Context, input ReviewInput) (*View, error) {
	p, err := s.findTenantPurchase(ctx, input.TenantID, input.PurchaseID)
	if err != nil {
		return nil, err
	}

	deductions := make([]deduction, 0, len(p.Lines))
	for _, line := range p.Lines {
		item, err := s.itemRepo.FindByID(ctx, line.ItemID)
		if err != nil {
			return nil, shared.NewDomainError("ITEM_NOT_FOUND", "Item not found")
		}
		if err := item.AdjustQuantity(-line.Quantity); err != nil {
			return nil, shared.NewDomainError("INSUFFICIENT_STOCK", "Not enough stock for "+line.Name)
		}
		deductions = append(deductions, deduction{item: item, quantity: line.Quantity})
	}

	// Stock is deducted before the purchase is marked completed; an
	// aborted completion puts the deducted lines back
	applied := make([]deduction, 0, len(deductions))
	for _, d := range deductions {
		if err := s.itemRepo.Update(ctx, d.item); err != nil {
			s.logger.Error("Failed to deduct purchased stock",
				zap.String("item_id", d.item.ID.String()),
				zap.Error(err))
			s.restoreStock(ctx, applied)
			return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to deduct purchased stock")
		}
		applied = append(applied, d)
	}

	if err := p.Complete(); err != nil {
		s.restoreStock(ctx, deductions)
		return nil, err
	}

	if err := s.purchaseRepo.Update(ctx, p); err != nil {
		s.logger.Error("Failed to update purchase", zap.Error(err))
		s.restoreStock(ctx, deductions)
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to complete purchase")
	}

	s.logger.Info("Employee purchase completed",
		zap.String("purchase_id", p.ID.String()),
		zap.String("total", p.Total.String()))

	return view(p), nil
}

// deduction is a persisted stock decrement that may need to be undone
type deduction struct {
	item     *catalog.Item
	quantity int
}

// restoreStock puts deducted quantities back after a completion that
// could not be committed. Best effort; failures are logged for manual
// reconciliation.
func (s *Service) restoreStock(ctx context.Context, deductions []deduction) {
	for _, d := range deductions {
		if err := d.item.AdjustQuantity(d.quantity); err != nil {
			continue
		}
		if err := s.itemRepo.Update(ctx, d.item); err != nil {
			s.logger.Error("Failed to restore stock after aborted completion",
				zap.String("item_id", d.item.ID.String()),
				zap.Error(err))
		}
	}
}

// CancelPurchase cancels a purchase. Employees can only cancel their
// own; managers can cancel any purchase that has not completed.
func (s *Service) CancelPurchase(ctx context.Context, input CancelInput) (*View, error) {
	p, err := s.findTenantPurchase(ctx, input.TenantID, input.PurchaseID)
	if err != nil {
		return nil, err
	}

	if !input.Manager && p.EmployeeID != input.RequesterID {
		return nil, shared.ErrForbidden
	}

	if err := p.Cancel(); err != nil {
		return nil, err
	}

	if err := s.purchaseRepo.Update(ctx, p); err != nil {
		s.logger.Error("Failed to update purchase", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to cancel purchase")
	}

	return view(p), nil
}

// GetPurchase retrieves one purchase
func (s *Service) GetPurchase(ctx context.Context, tenantID, purchaseID uuid.UUID) (*View, error) {
	p, err := s.findTenantPurchase(ctx, tenantID, purchaseID)
	if err != nil {
		return nil, err
	}
	return view(p), nil
}

// ListPurchases lists purchases, scoped to one employee or one status
// when the filter asks for it.
func (s *Service) ListPurchases(ctx context.Context, input ListInput) ([]*View, error) {
	var (
		purchases []*purchase.Purchase
		err       error
	)

	switch {
	case input.EmployeeID != nil:
		purchases, err = s.purchaseRepo.FindByEmployee(ctx, input.TenantID, *input.EmployeeID)
	case input.Status != nil:
		purchases, err = s.purchaseRepo.FindByStatus(ctx, input.TenantID, *input.Status)
	default:
		purchases, _, err = s.purchaseRepo.FindAll(ctx, input.TenantID, shared.Filter{Page: 1, PageSize: 200})
	}
	if err != nil {
		s.logger.Error("Failed to list purchases", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list purchases")
	}

	return views(purchases), nil
}

func (s *Service) discountedPrice(retail decimal.Decimal) decimal.Decimal {
	factor := decimal.NewFromInt(100).Sub(s.config.DiscountPct).Div(decimal.NewFromInt(100))
	return retail.Mul(factor).Round(2)
}

// findTenantPurchase answers the same way for a wrong-tenant purchase as
// for a missing one so tenants cannot probe each other.
func (s *Service) findTenantPurchase(ctx context.Context, tenantID, purchaseID uuid.UUID) (*purchase.Purchase, error) {
	p, err := s.purchaseRepo.FindByID(ctx, purchaseID)
	if err != nil || p.TenantID != tenantID {
		return nil, shared.NewDomainError("PURCHASE_NOT_FOUND", "Purchase not found")
	}
	return p, nil
}
