package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pinehillfarm/backend/internal/domain/announcement"
	"github.com/pinehillfarm/backend/internal/domain/identity"
	"github.com/pinehillfarm/backend/internal/domain/shared"
	"github.com/pinehillfarm/backend/internal/infrastructure/persistence/models"
)

// GormAnnouncementRepository implements announcement.Repository using GORM
type GormAnnouncementRepository struct {
	db *gorm.DB
}

// NewGormAnnouncementRepository creates a new GormAnnouncementRepository
func NewGormAnnouncementRepository(db *gorm.DB) *GormAnnouncementRepository {
	return &GormAnnouncementRepository{db: db}
}

// Create inserts a new announcement
func (r *GormAnnouncementRepository) Create(ctx context.Context, a *announcement.Announcement) error {
	model := models.AnnouncementModelFromDomain(a)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update saves an announcement with optimistic locking
func (r *GormAnnouncementRepository) Update(ctx context.Context, a *announcement.Announcement) error {
	model := models.AnnouncementModelFromDomain(a)
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", a.ID, a.Version-1).
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

// Delete removes an announcement
func (r *GormAnnouncementRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.AnnouncementModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds an announcement by its ID
func (r *GormAnnouncementRepository) FindByID(ctx context.Context, id uuid.UUID) (*announcement.Announcement, error) {
	var model models.AnnouncementModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns a page of announcements for a tenant
func (r *GormAnnouncementRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*announcement.Announcement, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.AnnouncementModel{}).Where("tenant_id = ?", tenantID)

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR content ILIKE ?", pattern, pattern)
	}
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter, CommonSortFields)

	var announcementModels []models.AnnouncementModel
	if err := query.Find(&announcementModels).Error; err != nil {
		return nil, 0, err
	}

	announcements := make([]*announcement.Announcement, len(announcementModels))
	for i := range announcementModels {
		announcements[i] = announcementModels[i].ToDomain()
	}
	return announcements, total, nil
}

// FindVisible returns published announcements whose audience includes the
// role, newest first
func (r *GormAnnouncementRepository) FindVisible(ctx context.Context, tenantID uuid.UUID, role identity.Role, limit int) ([]*announcement.Announcement, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	audiences := []announcement.Audience{announcement.AudienceAll}
	if role.AtLeast(identity.RoleManager) {
		audiences = append(audiences, announcement.AudienceManagers)
	}
	if role == identity.RoleEmployee {
		audiences = append(audiences, announcement.AudienceEmployees)
	}

	var announcementModels []models.AnnouncementModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND status = ? AND audience IN ?",
			tenantID, announcement.StatusPublished, audiences).
		Order("published_at DESC").
		Limit(limit).
		Find(&announcementModels).Error; err != nil {
		return nil, err
	}

	announcements := make([]*announcement.Announcement, len(announcementModels))
	for i := range announcementModels {
		announcements[i] = announcementModels[i].ToDomain()
	}
	return announcements, nil
}

var _ announcement.Repository = (*GormAnnouncementRepository)(nil)
