package training

import (
	"github.com/google/uuid"
	"github.com/pinehillfarm/backend/internal/domain/shared"
)

const AggregateTypeEnrollment = "Enrollment"

const (
	EventTypeEnrollmentCreated   = "EnrollmentCreated"
	EventTypeEnrollmentCompleted = "EnrollmentCompleted"
)

// EnrollmentCreatedEvent is published when an employee enrolls
type EnrollmentCreatedEvent struct {
	shared.BaseDomainEvent
	ModuleID   uuid.UUID `json:"module_id"`
	EmployeeID uuid.UUID `json:"employee_id"`
}

// NewEnrollmentCreatedEvent creates a new EnrollmentCreatedEvent
func NewEnrollmentCreatedEvent(e *Enrollment) *EnrollmentCreatedEvent {
	return &EnrollmentCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEnrollmentCreated, AggregateTypeEnrollment, e.ID, e.TenantID),
		ModuleID:        e.ModuleID,
		EmployeeID:      e.EmployeeID,
	}
}

// EnrollmentCompletedEvent is published when a module is completed
type EnrollmentCompletedEvent struct {
	shared.BaseDomainEvent
	ModuleID   uuid.UUID `json:"module_id"`
	EmployeeID uuid.UUID `json:"employee_id"`
}

// NewEnrollmentCompletedEvent creates a new EnrollmentCompletedEvent
func NewEnrollmentCompletedEvent(e *Enrollment) *EnrollmentCompletedEvent {
	return &EnrollmentCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeEnrollmentCompleted, AggregateTypeEnrollment, e.ID, e.TenantID),
		ModuleID:        e.ModuleID,
		EmployeeID:      e.EmployeeID,
	}
}
