package announcement

import (
	"time"

	"github.com/google/uuid"

	"github.com/pinehillfarm/backend/internal/domain/announcement"
)

// CreateInput contains the input for creating an announcement
type CreateInput struct {
	TenantID uuid.UUID
	AuthorID uuid.UUID
	Title    string
	Content  string
	Priority announcement.Priority
	Audience announcement.Audience

	// Publish immediately instead of saving a draft
	Publish bool
}

// UpdateInput contains the input for editing an announcement
type UpdateInput struct {
	TenantID       uuid.UUID
	AnnouncementID uuid.UUID
	Title          string
	Content        string
	Priority       announcement.Priority
	Audience       announcement.Audience
}

// View is the outward view of an announcement
type View struct {
	ID          uuid.UUID
	Title       string
	Content     string
	Priority    announcement.Priority
	Audience    announcement.Audience
	Status      announcement.Status
	AuthorID    uuid.UUID
	PublishedAt *time.Time
	CreatedAt   time.Time
}

func view(a *announcement.Announcement) View {
	return View{
		ID:          a.ID,
		Title:       a.Title,
		Content:     a.Content,
		Priority:    a.Priority,
		Audience:    a.Audience,
		Status:      a.Status,
		AuthorID:    a.AuthorID,
		PublishedAt: a.PublishedAt,
		CreatedAt:   a.CreatedAt,
	}
}
