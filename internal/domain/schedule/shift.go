package schedule

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pinehillfarm/backend/internal/domain/shared"
)

// Shift is a single scheduled work period for an employee.
// End must be after Start and both fall on the same calendar day.
type Shift struct {
	shared.TenantAggregateRoot
	EmployeeID uuid.UUID
	Date       time.Time // Calendar day, midnight in the tenant timezone
	StartTime  time.Time
	EndTime    time.Time
	Position   string
	Notes      string
	Published  bool
}

// NewShift creates a shift after validating its time range
func NewShift(tenantID, employeeID uuid.UUID, date, start, end time.Time, position string) (*Shift, error) {
	if employeeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_EMPLOYEE", "Employee ID cannot be empty")
	}
	if err := validateShiftTimes(start, end); err != nil {
		return nil, err
	}
	position = strings.TrimSpace(position)
	if len(position) > 100 {
		return nil, shared.NewDomainError("INVALID_POSITION", "Position cannot exceed 100 characters")
	}

	shift := &Shift{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		EmployeeID:          employeeID,
		Date:                date.Truncate(24 * time.Hour),
		StartTime:           start,
		EndTime:             end,
		Position:            position,
	}

	shift.AddDomainEvent(NewShiftCreatedEvent(shift))

	return shift, nil
}

// Reschedule moves the shift to a new time range
func (s *Shift) Reschedule(date, start, end time.Time) error {
	if err := validateShiftTimes(start, end); err != nil {
		return err
	}
	s.Date = date.Truncate(24 * time.Hour)
	s.StartTime = start
	s.EndTime = end
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewShiftRescheduledEvent(s))

	return nil
}

// SetPosition changes the position worked during the shift
func (s *Shift) SetPosition(position string) error {
	position = strings.TrimSpace(position)
	if len(position) > 100 {
		return shared.NewDomainError("INVALID_POSITION", "Position cannot exceed 100 characters")
	}
	s.Position = position
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// SetNotes sets free-form notes shown to the employee
func (s *Shift) SetNotes(notes string) {
	s.Notes = notes
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// Publish makes the shift visible to the employee
func (s *Shift) Publish() {
	if s.Published {
		return
	}
	s.Published = true
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// Overlaps reports whether this shift's time range intersects other's.
// Shifts that merely touch at a boundary do not overlap.
func (s *Shift) Overlaps(other *Shift) bool {
	if s.EmployeeID != other.EmployeeID {
		return false
	}
	return s.StartTime.Before(other.EndTime) && other.StartTime.Before(s.EndTime)
}

// Duration returns the length of the shift
func (s *Shift) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}

func validateShiftTimes(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return shared.NewDomainError("INVALID_SHIFT_TIME", "Start and end time are required")
	}
	if !end.After(start) {
		return shared.NewDomainError("INVALID_SHIFT_TIME", "End time must be after start time")
	}
	if end.Sub(start) > 24*time.Hour {
		return shared.NewDomainError("INVALID_SHIFT_TIME", "Shift cannot exceed 24 hours")
	}
	return nil
}
