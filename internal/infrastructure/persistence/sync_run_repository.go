package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pinehillfarm/backend/internal/domain/channel"
	"github.com/pinehillfarm/backend/internal/domain/shared"
	"github.com/pinehillfarm/backend/internal/infrastructure/persistence/models"
)

// GormSyncRunRepository implements channel.SyncRunRepository using GORM
type GormSyncRunRepository struct {
	db *gorm.DB
}

// NewGormSyncRunRepository creates a new GormSyncRunRepository
func NewGormSyncRunRepository(db *gorm.DB) *GormSyncRunRepository {
	return &GormSyncRunRepository{db: db}
}

// Create inserts a new sync run
func (r *GormSyncRunRepository) Create(ctx context.Context, run *channel.SyncRun) error {
	model := models.SyncRunModelFromDomain(run)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update saves a sync run with optimistic locking
func (r *GormSyncRunRepository) Update(ctx context.Context, run *channel.SyncRun) error {
	model := models.SyncRunModelFromDomain(run)
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", run.ID, run.Version-1).
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

// FindByID finds a sync run by its ID
func (r *GormSyncRunRepository) FindByID(ctx context.Context, id uuid.UUID) (*channel.SyncRun, error) {
	var model models.SyncRunModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns a page of sync runs for a tenant, newest first
func (r *GormSyncRunRepository) FindAll(ctx context.Context, tenantID uuid.UUID, platform *channel.PlatformCode, filter shared.Filter) ([]*channel.SyncRun, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.SyncRunModel{}).Where("tenant_id = ?", tenantID)

	if platform != nil {
		query = query.Where("platform = ?", *platform)
	}
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	var runModels []models.SyncRunModel
	if err := query.
		Order("started_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&runModels).Error; err != nil {
		return nil, 0, err
	}

	runs := make([]*channel.SyncRun, len(runModels))
	for i := range runModels {
		runs[i] = runModels[i].ToDomain()
	}
	return runs, total, nil
}

// FindLatestFinished returns the most recent success or partial run for
// a platform, nil when there is none. Failed runs are excluded so the
// next window starts before them.
func (r *GormSyncRunRepository) FindLatestFinished(ctx context.Context, tenantID uuid.UUID, platform channel.PlatformCode) (*channel.SyncRun, error) {
	var model models.SyncRunModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND platform = ? AND status IN ?",
			tenantID, platform, []channel.SyncStatus{channel.SyncStatusSuccess, channel.SyncStatusPartial}).
		Order("started_at DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

var _ channel.SyncRunRepository = (*GormSyncRunRepository)(nil)
