package training

import (
	"time"

	"github.com/google/uuid"
	"github.com/pinehillfarm/backend/internal/domain/shared"
)

// EnrollmentStatus tracks an employee's progress through a module
type EnrollmentStatus string

const (
	EnrollmentStatusEnrolled   EnrollmentStatus = "enrolled"
	EnrollmentStatusInProgress EnrollmentStatus = "in_progress"
	EnrollmentStatusCompleted  EnrollmentStatus = "completed"
)

// Enrollment links an employee to a training module. Completion requires
// progress to reach 100.
type Enrollment struct {
	shared.TenantAggregateRoot
	ModuleID    uuid.UUID
	EmployeeID  uuid.UUID
	Progress    int // 0-100
	Status      EnrollmentStatus
	CompletedAt *time.Time
}

// NewEnrollment enrolls an employee in a module
func NewEnrollment(tenantID, moduleID, employeeID uuid.UUID) (*Enrollment, error) {
	if moduleID == uuid.Nil || employeeID == uuid.Nil {
		return nil, shared.ErrInvalidInput
	}

	e := &Enrollment{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		ModuleID:            moduleID,
		EmployeeID:          employeeID,
		Progress:            0,
		Status:              EnrollmentStatusEnrolled,
	}

	e.AddDomainEvent(NewEnrollmentCreatedEvent(e))

	return e, nil
}

// UpdateProgress records progress. Progress never moves backwards and
// reaching 100 completes the enrollment.
func (e *Enrollment) UpdateProgress(progress int) error {
	if progress < 0 || progress > 100 {
		return shared.NewDomainError("INVALID_PROGRESS", "Progress must be between 0 and 100")
	}
	if e.Status == EnrollmentStatusCompleted {
		return shared.ErrInvalidState
	}
	if progress < e.Progress {
		return shared.NewDomainError("INVALID_PROGRESS", "Progress cannot decrease")
	}

	e.Progress = progress
	if progress == 100 {
		return e.Complete()
	}
	if progress > 0 {
		e.Status = EnrollmentStatusInProgress
	}
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	return nil
}

// Complete marks the enrollment completed. Requires full progress.
func (e *Enrollment) Complete() error {
	if e.Status == EnrollmentStatusCompleted {
		return shared.ErrInvalidState
	}
	if e.Progress < 100 {
		return shared.NewDomainError("INCOMPLETE_PROGRESS", "Progress must reach 100 before completing")
	}

	now := time.Now()
	e.Status = EnrollmentStatusCompleted
	e.CompletedAt = &now
	e.UpdatedAt = now
	e.IncrementVersion()

	e.AddDomainEvent(NewEnrollmentCompletedEvent(e))

	return nil
}

// IsCompleted returns true when the module is finished
func (e *Enrollment) IsCompleted() bool {
	return e.Status == EnrollmentStatusCompleted
}
