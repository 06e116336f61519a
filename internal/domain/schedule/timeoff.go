package schedule

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pinehillfarm/backend/internal/domain/shared"
)

// TimeOffStatus represents the review state of a time-off request
type TimeOffStatus string

const (
	TimeOffStatusPending   TimeOffStatus = "pending"
	TimeOffStatusApproved  TimeOffStatus = "approved"
	TimeOffStatusDenied    TimeOffStatus = "denied"
	TimeOffStatusCancelled TimeOffStatus = "cancelled"
)

// TimeOffRequest is an employee's request for days off. Approve and deny
// are only legal while the request is pending.
type TimeOffRequest struct {
	shared.TenantAggregateRoot
	EmployeeID uuid.UUID
	StartDate  time.Time
	EndDate    time.Time
	Reason     string
	Status     TimeOffStatus
	ReviewedBy *uuid.UUID
	ReviewedAt *time.Time
	ReviewNote string
}

// NewTimeOffRequest creates a pending time-off request
func NewTimeOffRequest(tenantID, employeeID uuid.UUID, startDate, endDate time.Time, reason string) (*TimeOffRequest, error) {
	if employeeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_EMPLOYEE", "Employee ID cannot be empty")
	}
	if startDate.IsZero() || endDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE_RANGE", "Start and end date are required")
	}
	if endDate.Before(startDate) {
		return nil, shared.NewDomainError("INVALID_DATE_RANGE", "End date must not be before start date")
	}
	reason = strings.TrimSpace(reason)
	if len(reason) > 500 {
		return nil, shared.NewDomainError("INVALID_REASON", "Reason cannot exceed 500 characters")
	}

	req := &TimeOffRequest{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		EmployeeID:          employeeID,
		StartDate:           startDate,
		EndDate:             endDate,
		Reason:              reason,
		Status:              TimeOffStatusPending,
	}

	req.AddDomainEvent(NewTimeOffRequestedEvent(req))

	return req, nil
}

// Approve approves a pending request and records the reviewer
func (r *TimeOffRequest) Approve(reviewerID uuid.UUID, note string) error {
	if r.Status != TimeOffStatusPending {
		return shared.ErrInvalidState
	}

	now := time.Now()
	r.Status = TimeOffStatusApproved
	r.ReviewedBy = &reviewerID
	r.ReviewedAt = &now
	r.ReviewNote = note
	r.UpdatedAt = now
	r.IncrementVersion()

	r.AddDomainEvent(NewTimeOffReviewedEvent(r))

	return nil
}

// Deny denies a pending request and records the reviewer
func (r *TimeOffRequest) Deny(reviewerID uuid.UUID, note string) error {
	if r.Status != TimeOffStatusPending {
		return shared.ErrInvalidState
	}

	now := time.Now()
	r.Status = TimeOffStatusDenied
	r.ReviewedBy = &reviewerID
	r.ReviewedAt = &now
	r.ReviewNote = note
	r.UpdatedAt = now
	r.IncrementVersion()

	r.AddDomainEvent(NewTimeOffReviewedEvent(r))

	return nil
}

// Cancel lets the employee withdraw a request that has not been denied
func (r *TimeOffRequest) Cancel(employeeID uuid.UUID) error {
	if r.EmployeeID != employeeID {
		return shared.ErrForbidden
	}
	if r.Status == TimeOffStatusDenied || r.Status == TimeOffStatusCancelled {
		return shared.ErrInvalidState
	}

	r.Status = TimeOffStatusCancelled
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// Covers reports whether the given day falls inside the requested range
func (r *TimeOffRequest) Covers(day time.Time) bool {
	d := day.Truncate(24 * time.Hour)
	return !d.Before(r.StartDate.Truncate(24*time.Hour)) && !d.After(r.EndDate.Truncate(24*time.Hour))
}
