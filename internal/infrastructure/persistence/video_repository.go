package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pinehillfarm/backend/internal/domain/shared"
	"github.com/pinehillfarm/backend/internal/domain/video"
	"github.com/pinehillfarm/backend/internal/infrastructure/persistence/models"
)

// GormVideoRepository implements video.Repository using GORM
type GormVideoRepository struct {
	db *gorm.DB
}

// NewGormVideoRepository creates a new GormVideoRepository
func NewGormVideoRepository(db *gorm.DB) *GormVideoRepository {
	return &GormVideoRepository{db: db}
}

// Create inserts a new project with its scenes
func (r *GormVideoRepository) Create(ctx context.Context, p *video.Project) error {
	model := models.VideoProjectModelFromDomain(p)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update saves a project with optimistic locking. Scenes are replaced
// because the pipeline rewrites clip and audio URLs as it progresses.
func (r *GormVideoRepository) Update(ctx context.Context, p *video.Project) error {
	model := models.VideoProjectModelFromDomain(p)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.
			Model(&models.VideoProjectModel{}).
			Where("id = ? AND version = ?", p.ID, p.Version-1).
			Select("*").
			Omit("id", "created_at", "Scenes").
			Updates(model)

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}

		if err := tx.Delete(&models.VideoSceneModel{}, "project_id = ?", p.ID).Error; err != nil {
			return err
		}
		if len(model.Scenes) > 0 {
			if err := tx.Create(&model.Scenes).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes a project and its scenes
func (r *GormVideoRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.VideoSceneModel{}, "project_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.VideoProjectModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// FindByID finds a project by its ID with scenes in position order
func (r *GormVideoRepository) FindByID(ctx context.Context, id uuid.UUID) (*video.Project, error) {
	var model models.VideoProjectModel
	if err := r.db.WithContext(ctx).
		Preload("Scenes", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns a page of projects for a tenant, newest first
func (r *GormVideoRepository) FindAll(ctx context.Context, tenantID uuid.UUID, page, pageSize int) ([]*video.Project, int64, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.VideoProjectModel{}).
		Where("tenant_id = ?", tenantID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var projectModels []models.VideoProjectModel
	if err := r.db.WithContext(ctx).
		Preload("Scenes", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&projectModels).Error; err != nil {
		return nil, 0, err
	}

	projects := make([]*video.Project, len(projectModels))
	for i := range projectModels {
		projects[i] = projectModels[i].ToDomain()
	}
	return projects, total, nil
}

var _ video.Repository = (*GormVideoRepository)(nil)
