package announcement

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pinehillfarm/backend/internal/domain/identity"
	"github.com/pinehillfarm/backend/internal/domain/shared"
)

// Priority of an announcement
type Priority string

const (
	PriorityNormal    Priority = "normal"
	PriorityImportant Priority = "important"
	PriorityUrgent    Priority = "urgent"
)

// IsValid checks the priority value
func (p Priority) IsValid() bool {
	switch p {
	case PriorityNormal, PriorityImportant, PriorityUrgent:
		return true
	}
	return false
}

// Audience selects who sees an announcement
type Audience string

const (
	AudienceAll       Audience = "all"
	AudienceManagers  Audience = "managers"
	AudienceEmployees Audience = "employees"
)

// IsValid checks the audience value
func (a Audience) IsValid() bool {
	switch a {
	case AudienceAll, AudienceManagers, AudienceEmployees:
		return true
	}
	return false
}

// Status is the publication lifecycle
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

// Announcement is a message posted to staff.
type Announcement struct {
	shared.TenantAggregateRoot
	Title       string
	Content     string
	Priority    Priority
	Audience    Audience
	Status      Status
	AuthorID    uuid.UUID
	PublishedAt *time.Time
}

// NewAnnouncement creates a draft announcement
func NewAnnouncement(tenantID, authorID uuid.UUID, title, content string, priority Priority, audience Audience) (*Announcement, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if len(title) > 200 {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot exceed 200 characters")
	}
	if strings.TrimSpace(content) == "" {
		return nil, shared.NewDomainError("INVALID_CONTENT", "Content cannot be empty")
	}
	if priority == "" {
		priority = PriorityNormal
	}
	if !priority.IsValid() {
		return nil, shared.NewDomainError("INVALID_PRIORITY", "Unknown priority")
	}
	if audience == "" {
		audience = AudienceAll
	}
	if !audience.IsValid() {
		return nil, shared.NewDomainError("INVALID_AUDIENCE", "Unknown audience")
	}

	return &Announcement{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Title:               title,
		Content:             content,
		Priority:            priority,
		Audience:            audience,
		Status:              StatusDraft,
		AuthorID:            authorID,
	}, nil
}

// Update edits a draft or published announcement
func (a *Announcement) Update(title, content string, priority Priority, audience Audience) error {
	if a.Status == StatusArchived {
		return shared.ErrInvalidState
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if !priority.IsValid() {
		return shared.NewDomainError("INVALID_PRIORITY", "Unknown priority")
	}
	if !audience.IsValid() {
		return shared.NewDomainError("INVALID_AUDIENCE", "Unknown audience")
	}

	a.Title = title
	a.Content = content
	a.Priority = priority
	a.Audience = audience
	a.UpdatedAt = time.Now()
	a.IncrementVersion()

	return nil
}

// Publish makes the announcement visible
func (a *Announcement) Publish() error {
	if a.Status != StatusDraft {
		return shared.ErrInvalidState
	}
	now := time.Now()
	a.Status = StatusPublished
	a.PublishedAt = &now
	a.UpdatedAt = now
	a.IncrementVersion()
	return nil
}

// Archive removes the announcement from the active list
func (a *Announcement) Archive() error {
	if a.Status != StatusPublished {
		return shared.ErrInvalidState
	}
	a.Status = StatusArchived
	a.UpdatedAt = time.Now()
	a.IncrementVersion()
	return nil
}

// VisibleTo reports whether a published announcement targets the role
func (a *Announcement) VisibleTo(role identity.Role) bool {
	if a.Status != StatusPublished {
		return false
	}
	switch a.Audience {
	case AudienceAll:
		return true
	case AudienceManagers:
		return role.AtLeast(identity.RoleManager)
	case AudienceEmployees:
		return role == identity.RoleEmployee
	}
	return false
}
