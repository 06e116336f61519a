package schedule

import (
	"time"

	"github.com/google/uuid"
	"github.com/pinehillfarm/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeShift   = "Shift"
	AggregateTypeTimeOff = "TimeOffRequest"
)

// Schedule domain event types
const (
	EventTypeShiftCreated     = "ShiftCreated"
	EventTypeShiftRescheduled = "ShiftRescheduled"
	EventTypeTimeOffRequested = "TimeOffRequested"
	EventTypeTimeOffReviewed  = "TimeOffReviewed"
)

// ShiftCreatedEvent is published when a shift is created
type ShiftCreatedEvent struct {
	shared.BaseDomainEvent
	EmployeeID uuid.UUID `json:"employee_id"`
	Date       time.Time `json:"date"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
}

// NewShiftCreatedEvent creates a new ShiftCreatedEvent
func NewShiftCreatedEvent(s *Shift) *ShiftCreatedEvent {
	return &ShiftCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeShiftCreated, AggregateTypeShift, s.ID, s.TenantID),
		EmployeeID:      s.EmployeeID,
		Date:            s.Date,
		StartTime:       s.StartTime,
		EndTime:         s.EndTime,
	}
}

// ShiftRescheduledEvent is published when a shift's times change
type ShiftRescheduledEvent struct {
	shared.BaseDomainEvent
	EmployeeID uuid.UUID `json:"employee_id"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
}

// NewShiftRescheduledEvent creates a new ShiftRescheduledEvent
func NewShiftRescheduledEvent(s *Shift) *ShiftRescheduledEvent {
	return &ShiftRescheduledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeShiftRescheduled, AggregateTypeShift, s.ID, s.TenantID),
		EmployeeID:      s.EmployeeID,
		StartTime:       s.StartTime,
		EndTime:         s.EndTime,
	}
}

// TimeOffRequestedEvent is published when a time-off request is submitted
type TimeOffRequestedEvent struct {
	shared.BaseDomainEvent
	EmployeeID uuid.UUID `json:"employee_id"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
}

// NewTimeOffRequestedEvent creates a new TimeOffRequestedEvent
func NewTimeOffRequestedEvent(r *TimeOffRequest) *TimeOffRequestedEvent {
	return &TimeOffRequestedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTimeOffRequested, AggregateTypeTimeOff, r.ID, r.TenantID),
		EmployeeID:      r.EmployeeID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
	}
}

// TimeOffReviewedEvent is published when a request is approved or denied
type TimeOffReviewedEvent struct {
	shared.BaseDomainEvent
	EmployeeID uuid.UUID     `json:"employee_id"`
	Status     TimeOffStatus `json:"status"`
	ReviewedBy *uuid.UUID    `json:"reviewed_by"`
}

// NewTimeOffReviewedEvent creates a new TimeOffReviewedEvent
func NewTimeOffReviewedEvent(r *TimeOffRequest) *TimeOffReviewedEvent {
	return &TimeOffReviewedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeTimeOffReviewed, AggregateTypeTimeOff, r.ID, r.TenantID),
		EmployeeID:      r.EmployeeID,
		Status:          r.Status,
		ReviewedBy:      r.ReviewedBy,
	}
}
