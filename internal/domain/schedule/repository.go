package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ShiftRepository defines the interface for shift persistence
type ShiftRepository interface {
	Create(ctx context.Context, shift *Shift) error
	Update(ctx context.Context, shift *Shift) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Shift, error)

	// FindInRange returns all shifts for a tenant between from and to inclusive
	FindInRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]*Shift, error)

	// FindByEmployee returns an employee's shifts between from and to
	FindByEmployee(ctx context.Context, tenantID, employeeID uuid.UUID, from, to time.Time) ([]*Shift, error)

	// FindOverlapping returns shifts of the employee that intersect the
	// given time range, excluding the shift with excludeID if non-nil
	FindOverlapping(ctx context.Context, tenantID, employeeID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]*Shift, error)
}

// TimeOffRepository defines the interface for time-off persistence
type TimeOffRepository interface {
	Create(ctx context.Context, req *TimeOffRequest) error
	Update(ctx context.Context, req *TimeOffRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*TimeOffRequest, error)

	// FindByEmployee returns an employee's requests, newest first
	FindByEmployee(ctx context.Context, tenantID, employeeID uuid.UUID) ([]*TimeOffRequest, error)

	// FindByStatus returns a tenant's requests in the given status
	FindByStatus(ctx context.Context, tenantID uuid.UUID, status TimeOffStatus) ([]*TimeOffRequest, error)

	// FindApprovedInRange returns approved requests overlapping the range
	FindApprovedInRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]*TimeOffRequest, error)
}
