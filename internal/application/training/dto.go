package training

import (
	"time"

	"github.com/google/uuid"

	"github.com/pinehillfarm/backend/internal/domain/identity"
	"github.com/pinehillfarm/backend/internal/domain/training"
)

// CreateModuleInput contains the input for creating a training module
type CreateModuleInput struct {
	TenantID        uuid.UUID
	Title           string
	Description     string
	ContentURL      string
	RequiredRole    identity.Role
	DurationMinutes int
}

// UpdateModuleInput contains the input for updating a training module
type UpdateModuleInput struct {
	TenantID        uuid.UUID
	ModuleID        uuid.UUID
	Title           string
	Description     string
	ContentURL      string
	DurationMinutes int
}

// ModuleView is the outward view of a training module
type ModuleView struct {
	ID              uuid.UUID
	Title           string
	Description     string
	ContentURL      string
	RequiredRole    identity.Role
	DurationMinutes int
	Active          bool
	CreatedAt       time.Time
}

// ModuleStats carries enrollment counts for a module
type ModuleStats struct {
	Module    ModuleView
	Enrolled  int64
	Completed int64
}

// EnrollmentView is the outward view of an enrollment
type EnrollmentView struct {
	ID          uuid.UUID
	ModuleID    uuid.UUID
	EmployeeID  uuid.UUID
	Progress    int
	Status      training.EnrollmentStatus
	CompletedAt *time.Time
}

func moduleView(m *training.Module) ModuleView {
	return ModuleView{
		ID:              m.ID,
		Title:           m.Title,
		Description:     m.Description,
		ContentURL:      m.ContentURL,
		RequiredRole:    m.RequiredRole,
		DurationMinutes: m.DurationMinutes,
		Active:          m.Active,
		CreatedAt:       m.CreatedAt,
	}
}

func enrollmentView(e *training.Enrollment) EnrollmentView {
	return EnrollmentView{
		ID:          e.ID,
		ModuleID:    e.ModuleID,
		EmployeeID:  e.EmployeeID,
		Progress:    e.Progress,
		Status:      e.Status,
		CompletedAt: e.CompletedAt,
	}
}
