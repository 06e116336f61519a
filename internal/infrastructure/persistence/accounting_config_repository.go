package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pinehillfarm/backend/internal/domain/accounting"
	"github.com/pinehillfarm/backend/internal/domain/shared"
	"github.com/pinehillfarm/backend/internal/infrastructure/persistence/models"
)

// GormAccountingConfigRepository implements accounting.ConfigRepository using GORM
type GormAccountingConfigRepository struct {
	db *gorm.DB
}

// NewGormAccountingConfigRepository creates a new GormAccountingConfigRepository
func NewGormAccountingConfigRepository(db *gorm.DB) *GormAccountingConfigRepository {
	return &GormAccountingConfigRepository{db: db}
}

// Save upserts the tenant's accounting config. There is at most one row
// per tenant.
func (r *GormAccountingConfigRepository) Save(ctx context.Context, config *accounting.Config) error {
	model := models.AccountingConfigModelFromDomain(config)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tenant_id"}},
			UpdateAll: true,
		}).
		Create(model).Error
}

// FindByTenant returns the tenant's accounting config
func (r *GormAccountingConfigRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) (*accounting.Config, error) {
	var model models.AccountingConfigModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

var _ accounting.ConfigRepository = (*GormAccountingConfigRepository)(nil)
