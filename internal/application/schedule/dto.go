package schedule

import (
	"time"

	"github.com/google/uuid"

	"github.com/pinehillfarm/backend/internal/domain/schedule"
)

// CreateShiftInput contains the input for scheduling a shift
type CreateShiftInput struct {
	TenantID   uuid.UUID
	EmployeeID uuid.UUID
	Date       time.Time
	StartTime  time.Time
	EndTime    time.Time
	Position   string
	Notes      string
	Publish    bool
}

// RescheduleShiftInput moves an existing shift
type RescheduleShiftInput struct {
	TenantID  uuid.UUID
	ShiftID   uuid.UUID
	Date      time.Time
	StartTime time.Time
	EndTime   time.Time
}

// ShiftView is the outward view of a shift
type ShiftView struct {
	ID         uuid.UUID
	EmployeeID uuid.UUID
	Date       time.Time
	StartTime  time.Time
	EndTime    time.Time
	Position   string
	Notes      string
	Published  bool
}

// WeekScheduleInput selects a schedule window for a tenant
type WeekScheduleInput struct {
	TenantID uuid.UUID
	From     time.Time
	To       time.Time

	// When set, only this employee's shifts are returned
	EmployeeID *uuid.UUID
}

// RequestTimeOffInput contains the input for a time-off request
type RequestTimeOffInput struct {
	TenantID   uuid.UUID
	EmployeeID uuid.UUID
	StartDate  time.Time
	EndDate    time.Time
	Reason     string
}

// ReviewTimeOffInput approves or denies a pending request
type ReviewTimeOffInput struct {
	TenantID   uuid.UUID
	RequestID  uuid.UUID
	ReviewerID uuid.UUID
	Approve    bool
	Note       string
}

// TimeOffView is the outward view of a time-off request
type TimeOffView struct {
	ID         uuid.UUID
	EmployeeID uuid.UUID
	StartDate  time.Time
	EndDate    time.Time
	Reason     string
	Status     schedule.TimeOffStatus
	ReviewedBy *uuid.UUID
	ReviewedAt *time.Time
	ReviewNote string
	CreatedAt  time.Time
}

func shiftView(s *schedule.Shift) ShiftView {
	return ShiftView{
		ID:         s.ID,
		EmployeeID: s.EmployeeID,
		Date:       s.Date,
		StartTime:  s.StartTime,
		EndTime:    s.EndTime,
		Position:   s.Position,
		Notes:      s.Notes,
		Published:  s.Published,
	}
}

func timeOffView(r *schedule.TimeOffRequest) TimeOffView {
	return TimeOffView{
		ID:         r.ID,
		EmployeeID: r.EmployeeID,
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
		Reason:     r.Reason,
		Status:     r.Status,
		ReviewedBy: r.ReviewedBy,
		ReviewedAt: r.ReviewedAt,
		ReviewNote: r.ReviewNote,
		CreatedAt:  r.CreatedAt,
	}
}
