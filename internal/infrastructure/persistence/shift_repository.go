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

// GormShiftRepository implements schedule.ShiftRepository using GORM
type GormShiftRepository struct {
	db *gorm.DB
}

// NewGormShiftRepository creates a new GormShiftRepository
func NewGormShiftRepository(db *gorm.DB) *GormShiftRepository {
	return &GormShiftRepository{db: db}
}

// Create inserts a new shift
func (r *GormShiftRepository) Create(ctx context.Context, shift *schedule.Shift) error {
	model := models.ShiftModelFromDomain(shift)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update saves a shift with optimistic locking
func (r *GormShiftRepository) Update(ctx context.Context, shift *schedule.Shift) error {
	model := models.ShiftModelFromDomain(shift)
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", shift.ID, shift.Version-1).
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

// Delete removes a shift
func (r *GormShiftRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ShiftModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a shift by its ID
func (r *GormShiftRepository) FindByID(ctx context.Context, id uuid.UUID) (*schedule.Shift, error) {
	var model models.ShiftModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindInRange returns all shifts for a tenant between from and to inclusive
func (r *GormShiftRepository) FindInRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]*schedule.Shift, error) {
	var shiftModels []models.ShiftModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND start_time >= ? AND start_time <= ?", tenantID, from, to).
		Order("start_time ASC").
		Find(&shiftModels).Error; err != nil {
		return nil, err
	}
	return toDomainShifts(shiftModels), nil
}

// FindByEmployee returns an employee's shifts between from and to
func (r *GormShiftRepository) FindByEmployee(ctx context.Context, tenantID, employeeID uuid.UUID, from, to time.Time) ([]*schedule.Shift, error) {
	var shiftModels []models.ShiftModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND employee_id = ? AND start_time >= ? AND start_time <= ?",
			tenantID, employeeID, from, to).
		Order("start_time ASC").
		Find(&shiftModels).Error; err != nil {
		return nil, err
	}
	return toDomainShifts(shiftModels), nil
}

// FindOverlapping returns the employee's shifts intersecting the range,
// excluding excludeID when set. Used for the overlap invariant check.
func (r *GormShiftRepository) FindOverlapping(ctx context.Context, tenantID, employeeID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]*schedule.Shift, error) {
	query := r.db.WithContext(ctx).
		Where("tenant_id = ? AND employee_id = ? AND start_time < ? AND end_time > ?",
			tenantID, employeeID, end, start)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var shiftModels []models.ShiftModel
	if err := query.Order("start_time ASC").Find(&shiftModels).Error; err != nil {
		return nil, err
	}
	return toDomainShifts(shiftModels), nil
}

func toDomainShifts(shiftModels []models.ShiftModel) []*schedule.Shift {
	shifts := make([]*schedule.Shift, len(shiftModels))
	for i := range shiftModels {
		shifts[i] = shiftModels[i].ToDomain()
	}
	return shifts
}

var _ schedule.ShiftRepository = (*GormShiftRepository)(nil)
