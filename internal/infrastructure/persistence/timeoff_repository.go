package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pinehillfarm/backend/internal/domain/schedule"
	"github.com/pinehillfarm/backend/internal/domain/shared"
	"github.com/pinehillfarm/backend/internal/infrastructure/persistence/models"
)

// GormTimeOffRepository implements schedule.TimeOffRepository using GORM
type GormTimeOffRepository struct {
	db *gorm.DB
}

// NewGormTimeOffRepository creates a new GormTimeOffRepository
func NewGormTimeOffRepository(db *gorm.DB) *GormTimeOffRepository {
	return &GormTimeOffRepository{db: db}
}

// Create inserts a new time-off request
func (r *GormTimeOffRepository) Create(ctx context.Context, req *schedule.TimeOffRequest) error {
	model := models.TimeOffModelFromDomain(req)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update saves a request with optimistic locking
func (r *GormTimeOffRepository) Update(ctx context.Context, req *schedule.TimeOffRequest) error {
	model := models.TimeOffModelFromDomain(req)
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", req.ID, req.Version-1).
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

// FindByID finds a request by its ID
func (r *GormTimeOffRepository) FindByID(ctx context.Context, id uuid.UUID) (*schedule.TimeOffRequest, error) {
	var model models.TimeOffModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEmployee returns an employee's requests, newest first
func (r *GormTimeOffRepository) FindByEmployee(ctx context.Context, tenantID, employeeID uuid.UUID) ([]*schedule.TimeOffRequest, error) {
	var requestModels []models.TimeOffModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND employee_id = ?", tenantID, employeeID).
		Order("created_at DESC").
		Find(&requestModels).Error; err != nil {
		return nil, err
	}
	return toDomainTimeOffRequests(requestModels), nil
}

// FindByStatus returns a tenant's requests in the given status
func (r *GormTimeOffRepository) FindByStatus(ctx context.Context, tenantID uuid.UUID, status schedule.TimeOffStatus) ([]*schedule.TimeOffRequest, error) {
	var requestModels []models.TimeOffModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND status = ?", tenantID, status).
		Order("start_date ASC").
		Find(&requestModels).Error; err != nil {
		return nil, err
	}
	return toDomainTimeOffRequests(requestModels), nil
}

// FindApprovedInRange returns approved requests overlapping the range
func (r *GormTimeOffRepository) FindApprovedInRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]*schedule.TimeOffRequest, error) {
	var requestModels []models.TimeOffModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND status = ? AND start_date <= ? AND end_date >= ?",
			tenantID, schedule.TimeOffStatusApproved, to, from).
		Order("start_date ASC").
		Find(&requestModels).Error; err != nil {
		return nil, err
	}
	return toDomainTimeOffRequests(requestModels), nil
}

func toDomainTimeOffRequests(requestModels []models.TimeOffModel) []*schedule.TimeOffRequest {
	requests := make([]*schedule.TimeOffRequest, len(requestModels))
	for i := range requestModels {
		requests[i] = requestModels[i].ToDomain()
	}
	return requests
}

var _ schedule.TimeOffRepository = (*GormTimeOffRepository)(nil)
