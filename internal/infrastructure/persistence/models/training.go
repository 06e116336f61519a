package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/pinehillfarm/backend/internal/domain/identity"
	"github.com/pinehillfarm/backend/internal/domain/training"
)

// TrainingModuleModel is the persistence model for the training Module aggregate.
type TrainingModuleModel struct {
	TenantAggregateModel
	Title           string        `gorm:"type:varchar(200);not null"`
	Description     string        `gorm:"type:text"`
	ContentURL      string        `gorm:"type:varchar(500)"`
	RequiredRole    identity.Role `gorm:"type:varchar(20);not null;default:'employee'"`
	DurationMinutes int           `gorm:"not null;default:0"`
	Active          bool          `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (TrainingModuleModel) TableName() string {
	return "training_modules"
}

// ToDomain converts the persistence model to a domain Module.
func (m *TrainingModuleModel) ToDomain() *training.Module {
	module := &training.Module{
		Title:           m.Title,
		Description:     m.Description,
		ContentURL:      m.ContentURL,
		RequiredRole:    m.RequiredRole,
		DurationMinutes: m.DurationMinutes,
		Active:          m.Active,
	}
	m.PopulateTenantAggregateRoot(&module.TenantAggregateRoot)
	return module
}

// FromDomain populates the persistence model from a domain Module.
func (m *TrainingModuleModel) FromDomain(mod *training.Module) {
	m.FromDomainTenantAggregateRoot(mod.TenantAggregateRoot)
	m.Title = mod.Title
	m.Description = mod.Description
	m.ContentURL = mod.ContentURL
	m.RequiredRole = mod.RequiredRole
	m.DurationMinutes = mod.DurationMinutes
	m.Active = mod.Active
}

// TrainingModuleModelFromDomain creates a new persistence model from a domain Module.
func TrainingModuleModelFromDomain(mod *training.Module) *TrainingModuleModel {
	m := &TrainingModuleModel{}
	m.FromDomain(mod)
	return m
}

// EnrollmentModel is the persistence model for the Enrollment aggregate.
type EnrollmentModel struct {
	TenantAggregateModel
	ModuleID    uuid.UUID                 `gorm:"type:uuid;not null;index:idx_enrollments_module_employee,unique"`
	EmployeeID  uuid.UUID                 `gorm:"type:uuid;not null;index:idx_enrollments_module_employee,unique"`
	Progress    int                       `gorm:"not null;default:0"`
	Status      training.EnrollmentStatus `gorm:"type:varchar(20);not null;default:'enrolled'"`
	CompletedAt *time.Time
}

// TableName returns the table name for GORM
func (EnrollmentModel) TableName() string {
	return "enrollments"
}

// ToDomain converts the persistence model to a domain Enrollment.
func (m *EnrollmentModel) ToDomain() *training.Enrollment {
	enrollment := &training.Enrollment{
		ModuleID:    m.ModuleID,
		EmployeeID:  m.EmployeeID,
		Progress:    m.Progress,
		Status:      m.Status,
		CompletedAt: m.CompletedAt,
	}
	m.PopulateTenantAggregateRoot(&enrollment.TenantAggregateRoot)
	return enrollment
}

// FromDomain populates the persistence model from a domain Enrollment.
func (m *EnrollmentModel) FromDomain(e *training.Enrollment) {
	m.FromDomainTenantAggregateRoot(e.TenantAggregateRoot)
	m.ModuleID = e.ModuleID
	m.EmployeeID = e.EmployeeID
	m.Progress = e.Progress
	m.Status = e.Status
	m.CompletedAt = e.CompletedAt
}

// EnrollmentModelFromDomain creates a new persistence model from a domain Enrollment.
func EnrollmentModelFromDomain(e *training.Enrollment) *EnrollmentModel {
	m := &EnrollmentModel{}
	m.FromDomain(e)
	return m
}
