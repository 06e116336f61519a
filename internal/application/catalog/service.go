package catalog

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pinehillfarm/backend/internal/domain/catalog"
	"github.com/pinehillfarm/backend/internal/domain/shared"
)

// Service handles the product catalog
type Service struct {
	itemRepo catalog.ItemRepository
	logger   *zap.Logger
}

// NewService creates a new catalog service
func NewService(itemRepo catalog.ItemRepository, logger *zap.Logger) *Service {
	return &Service{
		itemRepo: itemRepo,
		logger:   logger,
	}
}

// CreateItem adds an item to the catalog
func (s *Service) CreateItem(ctx context.Context, input CreateItemInput) (*ItemView, error) {
	exists, err := s.itemRepo.ExistsBySKU(ctx, input.TenantID, input.SKU)
	if err != nil {
		s.logger.Error("Failed to check SKU uniqueness", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create item")
	}
	if exists {
		return nil, shared.NewDomainError("SKU_TAKEN", "An item with this SKU already exists")
	}

	item, err := catalog.NewItem(input.TenantID, input.SKU, input.Name, input.Category, input.UnitCost, input.RetailPrice)
	if err != nil {
		return nil, err
	}
	if input.QuantityOnHand > 0 {
		if err := item.AdjustQuantity(input.QuantityOnHand); err != nil {
			return nil, err
		}
	}
	if input.LowStockThreshold > 0 {
		if err := item.SetLowStockThreshold(input.LowStockThreshold); err != nil {
			return nil, err
		}
	}
	item.SetListings(input.Listings)

	if err := s.itemRepo.Create(ctx, item); err != nil {
		s.logger.Error("Failed to create item", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create item")
	}

	s.logger.Info("Item created",
		zap.String("item_id", item.ID.String()),
		zap.String("sku", item.SKU))

	view := itemView(item)
	return &view, nil
}

// UpdateItem edits an item's details and pricing
func (s *Service) UpdateItem(ctx context.Context, input UpdateItemInput) (*ItemView, error) {
	item, err := s.findTenantItem(ctx, input.TenantID, input.ItemID)
	if err != nil {
		return nil, err
	}

	if err := item.Update(input.Name, input.Category, input.UnitCost, input.RetailPrice); err != nil {
		return nil, err
	}
	if err := item.SetLowStockThreshold(input.LowStockThreshold); err != nil {
		return nil, err
	}

	if err := s.itemRepo.Update(ctx, item); err != nil {
		s.logger.Error("Failed to update item", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update item")
	}

	view := itemView(item)
	return &view, nil
}

// SetListings links an item to its identifiers on the sales channels
func (s *Service) SetListings(ctx context.Context, tenantID, itemID uuid.UUID, listings catalog.ChannelListings) (*ItemView, error) {
	item, err := s.findTenantItem(ctx, tenantID, itemID)
	if err != nil {
		return nil, err
	}

	item.SetListings(listings)

	if err := s.itemRepo.Update(ctx, item); err != nil {
		s.logger.Error("Failed to update item listings", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update item listings")
	}

	view := itemView(item)
	return &view, nil
}

// AdjustQuantity changes stock on hand by a delta, negative for sales
func (s *Service) AdjustQuantity(ctx context.Context, input AdjustQuantityInput) (*ItemView, error) {
	item, err := s.findTenantItem(ctx, input.TenantID, input.ItemID)
	if err != nil {
		return nil, err
	}

	if err := item.AdjustQuantity(input.Delta); err != nil {
		return nil, err
	}

	if err := s.itemRepo.Update(ctx, item); err != nil {
		s.logger.Error("Failed to adjust quantity", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to adjust quantity")
	}

	if item.IsLowStock() {
		s.logger.Warn("Item at or below low-stock threshold",
			zap.String("sku", item.SKU),
			zap.Int("on_hand", item.QuantityOnHand),
			zap.Int("threshold", item.LowStockThreshold))
	}

	view := itemView(item)
	return &view, nil
}

// SetItemActive activates or retires an item
func (s *Service) SetItemActive(ctx context.Context, tenantID, itemID uuid.UUID, active bool) error {
	item, err := s.findTenantItem(ctx, tenantID, itemID)
	if err != nil {
		return err
	}

	if active {
		item.Activate()
	} else {
		item.Deactivate()
	}

	if err := s.itemRepo.Update(ctx, item); err != nil {
		s.logger.Error("Failed to update item", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to update item")
	}
	return nil
}

// GetItem returns an item by ID
func (s *Service) GetItem(ctx context.Context, tenantID, itemID uuid.UUID) (*ItemView, error) {
	item, err := s.findTenantItem(ctx, tenantID, itemID)
	if err != nil {
		return nil, err
	}
	view := itemView(item)
	return &view, nil
}

// GetItemBySKU returns an item by its SKU
func (s *Service) GetItemBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (*ItemView, error) {
	item, err := s.itemRepo.FindBySKU(ctx, tenantID, sku)
	if err != nil {
		return nil, shared.NewDomainError("ITEM_NOT_FOUND", "Item not found")
	}
	view := itemView(item)
	return &view, nil
}

// ListItems returns a page of the tenant's catalog
func (s *Service) ListItems(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]ItemView, int64, error) {
	items, total, err := s.itemRepo.FindAll(ctx, tenantID, filter)
	if err != nil {
		s.logger.Error("Failed to list items", zap.Error(err))
		return nil, 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to list items")
	}

	views := make([]ItemView, 0, len(items))
	for _, item := range items {
		views = append(views, itemView(item))
	}
	return views, total, nil
}

// ListLowStock returns active items at or below their low-stock threshold
func (s *Service) ListLowStock(ctx context.Context, tenantID uuid.UUID) ([]ItemView, error) {
	items, err := s.itemRepo.FindLowStock(ctx, tenantID)
	if err != nil {
		s.logger.Error("Failed to list low-stock items", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list low-stock items")
	}

	views := make([]ItemView, 0, len(items))
	for _, item := range items {
		views = append(views, itemView(item))
	}
	return views, nil
}

// DeleteItem removes an item from the catalog
func (s *Service) DeleteItem(ctx context.Context, tenantID, itemID uuid.UUID) error {
	item, err := s.findTenantItem(ctx, tenantID, itemID)
	if err != nil {
		return err
	}

	if err := s.itemRepo.Delete(ctx, item.ID); err != nil {
		s.logger.Error("Failed to delete item", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete item")
	}

	s.logger.Info("Item deleted", zap.String("item_id", itemID.String()))
	return nil
}

func (s *Service) findTenantItem(ctx context.Context, tenantID, itemID uuid.UUID) (*catalog.Item, error) {
	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil || item.TenantID != tenantID {
		return nil, shared.NewDomainError("ITEM_NOT_FOUND", "Item not found")
	}
	return item, nil
}
