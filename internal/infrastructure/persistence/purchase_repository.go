package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pinehillfarm/backend/internal/domain/purchase"
	"github.com/pinehillfarm/backend/internal/domain/shared"
	"github.com/pinehillfarm/backend/internal/infrastructure/persistence/models"
)

// GormPurchaseRepository implements purchase.Repository using GORM
type GormPurchaseRepository struct {
	db *gorm.DB
}

// NewGormPurchaseRepository creates a new GormPurchaseRepository
func NewGormPurchaseRepository(db *gorm.DB) *GormPurchaseRepository {
	return &GormPurchaseRepository{db: db}
}

// Create inserts a new purchase with its lines
func (r *GormPurchaseRepository) Create(ctx context.Context, p *purchase.Purchase) error {
	model := models.PurchaseModelFromDomain(p)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update saves a purchase with optimistic locking. Lines never change
// after creation so only the header row is updated.
func (r *GormPurchaseRepository) Update(ctx context.Context, p *purchase.Purchase) error {
	model := models.PurchaseModelFromDomain(p)
	result := r.db.WithContext(ctx).
		Model(&models.PurchaseModel{}).
		Where("id = ? AND version = ?", p.ID, p.Version-1).
		Select("*").
		Omit("id", "created_at", "Lines").
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// FindByID finds a purchase by its ID
func (r *GormPurchaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*purchase.Purchase, error) {
	var model models.PurchaseModel
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns a page of purchases for a tenant
func (r *GormPurchaseRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*purchase.Purchase, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.PurchaseModel{}).Where("tenant_id = ?", tenantID)

	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter, CommonSortFields)

	var purchaseModels []models.PurchaseModel
	if err := query.Preload("Lines").Find(&purchaseModels).Error; err != nil {
		return nil, 0, err
	}
	return toDomainPurchases(purchaseModels), total, nil
}

// FindByEmployee returns an employee's purchases, newest first
func (r *GormPurchaseRepository) FindByEmployee(ctx context.Context, tenantID, employeeID uuid.UUID) ([]*purchase.Purchase, error) {
	var purchaseModels []models.PurchaseModel
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("tenant_id = ? AND employee_id = ?", tenantID, employeeID).
		Order("created_at DESC").
		Find(&purchaseModels).Error; err != nil {
		return nil, err
	}
	return toDomainPurchases(purchaseModels), nil
}

// FindByStatus returns a tenant's purchases in the given status
func (r *GormPurchaseRepository) FindByStatus(ctx context.Context, tenantID uuid.UUID, status purchase.Status) ([]*purchase.Purchase, error) {
	var purchaseModels []models.PurchaseModel
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("tenant_id = ? AND status = ?", tenantID, status).
		Order("created_at DESC").
		Find(&purchaseModels).Error; err != nil {
		return nil, err
	}
	return toDomainPurchases(purchaseModels), nil
}

func toDomainPurchases(purchaseModels []models.PurchaseModel) []*purchase.Purchase {
	purchases := make([]*purchase.Purchase, len(purchaseModels))
	for i := range purchaseModels {
		purchases[i] = purchaseModels[i].ToDomain()
	}
	return purchases
}

var _ purchase.Repository = (*GormPurchaseRepository)(nil)
