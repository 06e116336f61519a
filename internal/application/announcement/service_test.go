package announcement

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pinehillfarm/backend/internal/domain/announcement"
	"github.com/pinehillfarm/backend/internal/domain/identity"
	"github.com/pinehillfarm/backend/internal/domain/shared"
)

// MockRepository is a mock implementation of announcement.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, a *announcement.Announcement) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockRepository) Update(ctx context.Context, a *announcement.Announcement) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) FindByID(ctx context.Context, id uuid.UUID) (*announcement.Announcement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*announcement.Announcement), args.Error(1)
}

func (m *MockRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*announcement.Announcement, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]*announcement.Announcement), args.Get(1).(int64), args.Error(2)
}

func (m *MockRepository) FindVisible(ctx context.Context, tenantID uuid.UUID, role identity.Role, limit int) ([]*announcement.Announcement, error) {
	args := m.Called(ctx, tenantID, role, limit)
	return args.Get(0).([]*announcement.Announcement), args.Error(1)
}

func TestService_Create_PublishImmediately(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)

	repo.On("Create", ctx, mock.AnythingOfType("*announcement.Announcement")).Return(nil)

	svc := NewService(repo, zap.NewNop())

	v, err := svc.Create(ctx, CreateInput{
		TenantID: uuid.New(),
		AuthorID: uuid.New(),
		Title:    "Holiday hours",
		Content:  "Closed Thursday",
		Priority: announcement.PriorityImportant,
		Audience: announcement.AudienceAll,
		Publish:  true,
	})

	require.NoError(t, err)
	assert.Equal(t, announcement.StatusPublished, v.Status)
	assert.NotNil(t, v.PublishedAt)
	repo.AssertExpectations(t)
}

func TestService_Create_Draft(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)

	repo.On("Create", ctx, mock.AnythingOfType("*announcement.Announcement")).Return(nil)

	svc := NewService(repo, zap.NewNop())

	v, err := svc.Create(ctx, CreateInput{
		TenantID: uuid.New(),
		AuthorID: uuid.New(),
		Title:    "Draft note",
		Content:  "Not ready yet",
		Priority: announcement.PriorityNormal,
		Audience: announcement.AudienceManagers,
	})

	require.NoError(t, err)
	assert.Equal(t, announcement.StatusDraft, v.Status)
	assert.Nil(t, v.PublishedAt)
}

func TestService_Publish_Twice(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	tenantID := uuid.New()

	a, err := announcement.NewAnnouncement(tenantID, uuid.New(), "Note", "Body", announcement.PriorityNormal, announcement.AudienceAll)
	require.NoError(t, err)
	require.NoError(t, a.Publish())

	repo.On("FindByID", ctx, a.ID).Return(a, nil)

	svc := NewService(repo, zap.NewNop())

	_, err = svc.Publish(ctx, tenantID, a.ID)

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
}

func TestService_Feed_DefaultsLimit(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	tenantID := uuid.New()

	repo.On("FindVisible", ctx, tenantID, identity.RoleEmployee, 20).
		Return([]*announcement.Announcement{}, nil)

	svc := NewService(repo, zap.NewNop())

	views, err := svc.Feed(ctx, tenantID, identity.RoleEmployee, 0)

	require.NoError(t, err)
	assert.Empty(t, views)
	repo.AssertExpectations(t)
}

func TestService_Update_WrongTenant(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)

	a, err := announcement.NewAnnouncement(uuid.New(), uuid.New(), "Note", "Body", announcement.PriorityNormal, announcement.AudienceAll)
	require.NoError(t, err)

	repo.On("FindByID", ctx, a.ID).Return(a, nil)

	svc := NewService(repo, zap.NewNop())

	_, err = svc.Update(ctx, UpdateInput{
		TenantID:       uuid.New(),
		AnnouncementID: a.ID,
		Title:          "Changed",
		Content:        "Body",
		Priority:       announcement.PriorityNormal,
		Audience:       announcement.AudienceAll,
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "ANNOUNCEMENT_NOT_FOUND", domainErr.Code)
}
