package training

import (
	"context"

	"github.com/google/uuid"
	"github.com/pinehillfarm/backend/internal/domain/shared"
)

// ModuleRepository defines the interface for training module persistence
type ModuleRepository interface {
	Create(ctx context.Context, module *Module) error
	Update(ctx context.Context, module *Module) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Module, error)
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*Module, int64, error)
	FindActive(ctx context.Context, tenantID uuid.UUID) ([]*Module, error)
}

// EnrollmentRepository defines the interface for enrollment persistence
type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *Enrollment) error
	Update(ctx context.Context, enrollment *Enrollment) error
	FindByID(ctx context.Context, id uuid.UUID) (*Enrollment, error)

	// FindByEmployeeAndModule returns the enrollment if one exists
	FindByEmployeeAndModule(ctx context.Context, tenantID, employeeID, moduleID uuid.UUID) (*Enrollment, error)

	// FindByEmployee returns all enrollments of an employee
	FindByEmployee(ctx context.Context, tenantID, employeeID uuid.UUID) ([]*Enrollment, error)

	// FindByModule returns all enrollments for a module
	FindByModule(ctx context.Context, tenantID, moduleID uuid.UUID) ([]*Enrollment, error)

	// CountByModule returns total and completed enrollment counts
	CountByModule(ctx context.Context, tenantID, moduleID uuid.UUID) (total, completed int64, err error)
}
