package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pinehillfarm/backend/internal/domain/shared"
	"github.com/pinehillfarm/backend/internal/domain/training"
	"github.com/pinehillfarm/backend/internal/infrastructure/persistence/models"
)

// GormModuleRepository implements training.ModuleRepository using GORM
type GormModuleRepository struct {
	db *gorm.DB
}

// NewGormModuleRepository creates a new GormModuleRepository
func NewGormModuleRepository(db *gorm.DB) *GormModuleRepository {
	return &GormModuleRepository{db: db}
}

// Create inserts a new training module
func (r *GormModuleRepository) Create(ctx context.Context, module *training.Module) error {
	model := models.TrainingModuleModelFromDomain(module)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update saves a module with optimistic locking
func (r *GormModuleRepository) Update(ctx context.Context, module *training.Module) error {
	model := models.TrainingModuleModelFromDomain(module)
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", module.ID, module.Version-1).
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

// Delete removes a module
func (r *GormModuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.TrainingModuleModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// FindByID finds a module by its ID
func (r *GormModuleRepository) FindByID(ctx context.Context, id uuid.UUID) (*training.Module, error) {
	var model models.TrainingModuleModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns a page of modules for a tenant
func (r *GormModuleRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*training.Module, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.TrainingModuleModel{}).Where("tenant_id = ?", tenantID)

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter, CommonSortFields)

	var moduleModels []models.TrainingModuleModel
	if err := query.Find(&moduleModels).Error; err != nil {
		return nil, 0, err
	}

	modules := make([]*training.Module, len(moduleModels))
	for i := range moduleModels {
		modules[i] = moduleModels[i].ToDomain()
	}
	return modules, total, nil
}

// FindActive returns all active modules for a tenant
func (r *GormModuleRepository) FindActive(ctx context.Context, tenantID uuid.UUID) ([]*training.Module, error) {
	var moduleModels []models.TrainingModuleModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND active = ?", tenantID, true).
		Order("title ASC").
		Find(&moduleModels).Error; err != nil {
		return nil, err
	}

	modules := make([]*training.Module, len(moduleModels))
	for i := range moduleModels {
		modules[i] = moduleModels[i].ToDomain()
	}
	return modules, nil
}

var _ training.ModuleRepository = (*GormModuleRepository)(nil)

// GormEnrollmentRepository implements training.EnrollmentRepository using GORM
type GormEnrollmentRepository struct {
	db *gorm.DB
}

// NewGormEnrollmentRepository creates a new GormEnrollmentRepository
func NewGormEnrollmentRepository(db *gorm.DB) *GormEnrollmentRepository {
	return &GormEnrollmentRepository{db: db}
}

// Create inserts a new enrollment
func (r *GormEnrollmentRepository) Create(ctx context.Context, enrollment *training.Enrollment) error {
	model := models.EnrollmentModelFromDomain(enrollment)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Update saves an enrollment with optimistic locking
func (r *GormEnrollmentRepository) Update(ctx context.Context, enrollment *training.Enrollment) error {
	model := models.EnrollmentModelFromDomain(enrollment)
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", enrollment.ID, enrollment.Version-1).
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

// FindByID finds an enrollment by its ID
func (r *GormEnrollmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*training.Enrollment, error) {
	var model models.EnrollmentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEmployeeAndModule returns the enrollment if one exists
func (r *GormEnrollmentRepository) FindByEmployeeAndModule(ctx context.Context, tenantID, employeeID, moduleID uuid.UUID) (*training.Enrollment, error) {
	var model models.EnrollmentModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND employee_id = ? AND module_id = ?", tenantID, employeeID, moduleID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEmployee returns all enrollments of an employee
func (r *GormEnrollmentRepository) FindByEmployee(ctx context.Context, tenantID, employeeID uuid.UUID) ([]*training.Enrollment, error) {
	var enrollmentModels []models.EnrollmentModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND employee_id = ?", tenantID, employeeID).
		Order("created_at DESC").
		Find(&enrollmentModels).Error; err != nil {
		return nil, err
	}
	return toDomainEnrollments(enrollmentModels), nil
}

// FindByModule returns all enrollments for a module
func (r *GormEnrollmentRepository) FindByModule(ctx context.Context, tenantID, moduleID uuid.UUID) ([]*training.Enrollment, error) {
	var enrollmentModels []models.EnrollmentModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND module_id = ?", tenantID, moduleID).
		Order("created_at DESC").
		Find(&enrollmentModels).Error; err != nil {
		return nil, err
	}
	return toDomainEnrollments(enrollmentModels), nil
}

// CountByModule returns total and completed enrollment counts
func (r *GormEnrollmentRepository) CountByModule(ctx context.Context, tenantID, moduleID uuid.UUID) (total, completed int64, err error) {
	base := r.db.WithContext(ctx).
		Model(&models.EnrollmentModel{}).
		Where("tenant_id = ? AND module_id = ?", tenantID, moduleID)

	if err = base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err = base.Session(&gorm.Session{}).
		Where("status = ?", training.EnrollmentStatusCompleted).
		Count(&completed).Error; err != nil {
		return 0, 0, err
	}
	return total, completed, nil
}

func toDomainEnrollments(enrollmentModels []models.EnrollmentModel) []*training.Enrollment {
	enrollments := make([]*training.Enrollment, len(enrollmentModels))
	for i := range enrollmentModels {
		enrollments[i] = enrollmentModels[i].ToDomain()
	}
	return enrollments
}

var _ training.EnrollmentRepository = (*GormEnrollmentRepository)(nil)
