package announcement

import (
	"testing"

	"github.com/google/uuid"
	"github.com/pinehillfarm/backend/internal/domain/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAnnouncement(t *testing.T) {
	tenantID := uuid.New()
	authorID := uuid.New()

	t.Run("creates draft with defaults", func(t *testing.T) {
		a, err := NewAnnouncement(tenantID, authorID, "Holiday hours", "Open 10-4 on Labor Day", "", "")

		require.NoError(t, err)
		assert.Equal(t, StatusDraft, a.Status)
		assert.Equal(t, PriorityNormal, a.Priority)
		assert.Equal(t, AudienceAll, a.Audience)
		assert.Nil(t, a.PublishedAt)
	})

	t.Run("fails with empty title", func(t *testing.T) {
		_, err := NewAnnouncement(tenantID, authorID, "", "content", PriorityNormal, AudienceAll)
		assert.Error(t, err)
	})

	t.Run("fails with empty content", func(t *testing.T) {
		_, err := NewAnnouncement(tenantID, authorID, "title", "  ", PriorityNormal, AudienceAll)
		assert.Error(t, err)
	})

	t.Run("fails with unknown priority", func(t *testing.T) {
		_, err := NewAnnouncement(tenantID, authorID, "title", "content", Priority("critical"), AudienceAll)
		assert.Error(t, err)
	})
}

func TestAnnouncementLifecycle(t *testing.T) {
	tenantID := uuid.New()
	authorID := uuid.New()

	newDraft := func(t *testing.T, audience Audience) *Announcement {
		a, err := NewAnnouncement(tenantID, authorID, "Staff meeting", "Friday 9am", PriorityImportant, audience)
		require.NoError(t, err)
		return a
	}

	t.Run("publish sets timestamp", func(t *testing.T) {
		a := newDraft(t, AudienceAll)
		require.NoError(t, a.Publish())
		assert.Equal(t, StatusPublished, a.Status)
		assert.NotNil(t, a.PublishedAt)
	})

	t.Run("publish twice fails", func(t *testing.T) {
		a := newDraft(t, AudienceAll)
		require.NoError(t, a.Publish())
		assert.Error(t, a.Publish())
	})

	t.Run("archive only from published", func(t *testing.T) {
		a := newDraft(t, AudienceAll)
		assert.Error(t, a.Archive())
		require.NoError(t, a.Publish())
		require.NoError(t, a.Archive())
		assert.Equal(t, StatusArchived, a.Status)
	})

	t.Run("archived cannot be edited", func(t *testing.T) {
		a := newDraft(t, AudienceAll)
		require.NoError(t, a.Publish())
		require.NoError(t, a.Archive())
		assert.Error(t, a.Update("x", "y", PriorityNormal, AudienceAll))
	})

	t.Run("visibility by audience", func(t *testing.T) {
		a := newDraft(t, AudienceManagers)
		assert.False(t, a.VisibleTo(identity.RoleAdmin)) // still draft
		require.NoError(t, a.Publish())

		assert.True(t, a.VisibleTo(identity.RoleAdmin))
		assert.True(t, a.VisibleTo(identity.RoleManager))
		assert.False(t, a.VisibleTo(identity.RoleEmployee))

		b := newDraft(t, AudienceEmployees)
		require.NoError(t, b.Publish())
		assert.True(t, b.VisibleTo(identity.RoleEmployee))
		assert.False(t, b.VisibleTo(identity.RoleManager))
	})
}
