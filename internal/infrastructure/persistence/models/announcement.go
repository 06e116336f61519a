package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/pinehillfarm/backend/internal/domain/announcement"
)

// AnnouncementModel is the persistence model for the Announcement aggregate.
type AnnouncementModel struct {
	TenantAggregateModel
	Title       string                `gorm:"type:varchar(200);not null"`
	Content     string                `gorm:"type:text;not null"`
	Priority    announcement.Priority `gorm:"type:varchar(20);not null;default:'normal'"`
	Audience    announcement.Audience `gorm:"type:varchar(20);not null;default:'all'"`
	Status      announcement.Status   `gorm:"type:varchar(20);not null;default:'draft';index"`
	AuthorID    uuid.UUID             `gorm:"type:uuid;not null;index"`
	PublishedAt *time.Time            `gorm:"index"`
}

// TableName returns the table name for GORM
func (AnnouncementModel) TableName() string {
	return "announcements"
}

// ToDomain converts the persistence model to a domain Announcement.
func (m *AnnouncementModel) ToDomain() *announcement.Announcement {
	a := &announcement.Announcement{
		Title:       m.Title,
		Content:     m.Content,
		Priority:    m.Priority,
		Audience:    m.Audience,
		Status:      m.Status,
		AuthorID:    m.AuthorID,
		PublishedAt: m.PublishedAt,
	}
	m.PopulateTenantAggregateRoot(&a.TenantAggregateRoot)
	return a
}

// FromDomain populates the persistence model from a domain Announcement.
func (m *AnnouncementModel) FromDomain(a *announcement.Announcement) {
	m.FromDomainTenantAggregateRoot(a.TenantAggregateRoot)
	m.Title = a.Title
	m.Content = a.Content
	m.Priority = a.Priority
	m.Audience = a.Audience
	m.Status = a.Status
	m.AuthorID = a.AuthorID
	m.PublishedAt = a.PublishedAt
}

// AnnouncementModelFromDomain creates a new persistence model from a domain Announcement.
func AnnouncementModelFromDomain(a *announcement.Announcement) *AnnouncementModel {
	m := &AnnouncementModel{}
	m.FromDomain(a)
	return m
}
