package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/pinehillfarm/backend/internal/domain/schedule"
)

// ShiftModel is the persistence model for the Shift aggregate.
type ShiftModel struct {
	TenantAggregateModel
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;index"`
	Date       time.Time `gorm:"not null;index"`
	StartTime  time.Time `gorm:"not null;index"`
	EndTime    time.Time `gorm:"not null"`
	Position   string    `gorm:"type:varchar(100)"`
	Notes      string    `gorm:"type:text"`
	Published  bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (ShiftModel) TableName() string {
	return "shifts"
}

// ToDomain converts the persistence model to a domain Shift.
func (m *ShiftModel) ToDomain() *schedule.Shift {
	shift := &schedule.Shift{
		EmployeeID: m.EmployeeID,
		Date:       m.Date,
		StartTime:  m.StartTime,
		EndTime:    m.EndTime,
		Position:   m.Position,
		Notes:      m.Notes,
		Published:  m.Published,
	}
	m.PopulateTenantAggregateRoot(&shift.TenantAggregateRoot)
	return shift
}

// FromDomain populates the persistence model from a domain Shift.
func (m *ShiftModel) FromDomain(s *schedule.Shift) {
	m.FromDomainTenantAggregateRoot(s.TenantAggregateRoot)
	m.EmployeeID = s.EmployeeID
	m.Date = s.Date
	m.StartTime = s.StartTime
	m.EndTime = s.EndTime
	m.Position = s.Position
	m.Notes = s.Notes
	m.Published = s.Published
}

// ShiftModelFromDomain creates a new persistence model from a domain Shift.
func ShiftModelFromDomain(s *schedule.Shift) *ShiftModel {
	m := &ShiftModel{}
	m.FromDomain(s)
	return m
}

// TimeOffModel is the persistence model for the TimeOffRequest aggregate.
type TimeOffModel struct {
	TenantAggregateModel
	EmployeeID uuid.UUID              `gorm:"type:uuid;not null;index"`
	StartDate  time.Time              `gorm:"not null;index"`
	EndDate    time.Time              `gorm:"not null"`
	Reason     string                 `gorm:"type:text"`
	Status     schedule.TimeOffStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	ReviewedBy *uuid.UUID             `gorm:"type:uuid"`
	ReviewedAt *time.Time
	ReviewNote string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (TimeOffModel) TableName() string {
	return "time_off_requests"
}

// ToDomain converts the persistence model to a domain TimeOffRequest.
func (m *TimeOffModel) ToDomain() *schedule.TimeOffRequest {
	req := &schedule.TimeOffRequest{
		EmployeeID: m.EmployeeID,
		StartDate:  m.StartDate,
		EndDate:    m.EndDate,
		Reason:     m.Reason,
		Status:     m.Status,
		ReviewedBy: m.ReviewedBy,
		ReviewedAt: m.ReviewedAt,
		ReviewNote: m.ReviewNote,
	}
	m.PopulateTenantAggregateRoot(&req.TenantAggregateRoot)
	return req
}

// FromDomain populates the persistence model from a domain TimeOffRequest.
func (m *TimeOffModel) FromDomain(r *schedule.TimeOffRequest) {
	m.FromDomainTenantAggregateRoot(r.TenantAggregateRoot)
	m.EmployeeID = r.EmployeeID
	m.StartDate = r.StartDate
	m.EndDate = r.EndDate
	m.Reason = r.Reason
	m.Status = r.Status
	m.ReviewedBy = r.ReviewedBy
	m.ReviewedAt = r.ReviewedAt
	m.ReviewNote = r.ReviewNote
}

// TimeOffModelFromDomain creates a new persistence model from a domain TimeOffRequest.
func TimeOffModelFromDomain(r *schedule.TimeOffRequest) *TimeOffModel {
	m := &TimeOffModel{}
	m.FromDomain(r)
	return m
}
