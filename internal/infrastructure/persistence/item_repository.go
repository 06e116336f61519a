package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pinehillfarm/backend/internal/domain/catalog"
	"github.com/pinehillfarm/backend/internal/domain/shared"
	"github.com/pinehillfarm/backend/internal/infrastructure/persistence/models"
)

// listingColumns maps the listing lookup fields accepted by FindByListing
// to their columns. Anything else is rejected to keep the query safe.
var listingColumns = map[string]string{
	"clover_item_id":         "clover_item_id",
	"bigcommerce_product_id": "bigcommerce_product_id",
	"amazon_sku":             "amazon_sku",
}

// GormItemRepository implements catalog.ItemRepository using GORM
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// Create inserts a new item
func (r *GormItemRepository) Create(ctx context.Context, item *catalog.Item) error {
	model := models.ItemModelFromDomain(item)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Update saves an item with optimistic locking
func (r *GormItemRepository) Update(ctx context.Context, item *catalog.Item) error {
	model := models.ItemModelFromDomain(item)
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", item.ID, item.Version-1).
		Select("*").
		Omit("id", "created_at").
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Delete removes an item
func (r *GormItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ItemModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds an item by its ID
func (r *GormItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Item, error) {
	var model models.ItemModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySKU finds an item by SKU within a tenant
func (r *GormItemRepository) FindBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (*catalog.Item, error) {
	var model models.ItemModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND sku = ?", tenantID, strings.ToUpper(strings.TrimSpace(sku))).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns a page of items for a tenant
func (r *GormItemRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*catalog.Item, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ItemModel{}).Where("tenant_id = ?", tenantID)

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("sku ILIKE ? OR name ILIKE ? OR category ILIKE ?", pattern, pattern, pattern)
	}
	if category, ok := filter.Filters["category"]; ok {
		query = query.Where("category = ?", category)
	}
	if active, ok := filter.Filters["active"]; ok {
		query = query.Where("active = ?", active)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter, ItemSortFields)

	var itemModels []models.ItemModel
	if err := query.Find(&itemModels).Error; err != nil {
		return nil, 0, err
	}

	items := make([]*catalog.Item, len(itemModels))
	for i := range itemModels {
		items[i] = itemModels[i].ToDomain()
	}
	return items, total, nil
}

// FindLowStock returns active items at or below their threshold
func (r *GormItemRepository) FindLowStock(ctx context.Context, tenantID uuid.UUID) ([]*catalog.Item, error) {
	var itemModels []models.ItemModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND active = ? AND low_stock_threshold > 0 AND quantity_on_hand <= low_stock_threshold",
			tenantID, true).
		Order("quantity_on_hand ASC").
		Find(&itemModels).Error; err != nil {
		return nil, err
	}

	items := make([]*catalog.Item, len(itemModels))
	for i := range itemModels {
		items[i] = itemModels[i].ToDomain()
	}
	return items, nil
}

// FindByListing looks an item up by its identifier on a channel
func (r *GormItemRepository) FindByListing(ctx context.Context, tenantID uuid.UUID, field, value string) (*catalog.Item, error) {
	column, ok := listingColumns[field]
	if !ok {
		return nil, shared.NewDomainError("INVALID_LISTING_FIELD", "Unknown listing field: "+field)
	}
	if value == "" {
		return nil, shared.ErrNotFound
	}

	var model models.ItemModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND "+column+" = ?", tenantID, value).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsBySKU reports whether an item with the SKU exists in the tenant
func (r *GormItemRepository) ExistsBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ItemModel{}).
		Where("tenant_id = ? AND sku = ?", tenantID, strings.ToUpper(strings.TrimSpace(sku))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

var _ catalog.ItemRepository = (*GormItemRepository)(nil)
