package announcement

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pinehillfarm/backend/internal/domain/announcement"
	"github.com/pinehillfarm/backend/internal/domain/identity"
	"github.com/pinehillfarm/backend/internal/domain/shared"
)

// Service handles posting and reading staff announcements
type Service struct {
	repo   announcement.Repository
	logger *zap.Logger
}

// NewService creates a new announcement service
func NewService(repo announcement.Repository, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Create posts a new announcement, as a draft or published right away
func (s *Service) Create(ctx context.Context, input CreateInput) (*View, error) {
	a, err := announcement.NewAnnouncement(input.TenantID, input.AuthorID, input.Title, input.Content, input.Priority, input.Audience)
	if err != nil {
		return nil, err
	}

	if input.Publish {
		if err := a.Publish(); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Create(ctx, a); err != nil {
		s.logger.Error("Failed to create announcement", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create announcement")
	}

	s.logger.Info("Announcement created",
		zap.String("announcement_id", a.ID.String()),
		zap.String("status", string(a.Status)))

	v := view(a)
	return &v, nil
}

// Update edits an announcement's content
func (s *Service) Update(ctx context.Context, input UpdateInput) (*View, error) {
	a, err := s.findTenantAnnouncement(ctx, input.TenantID, input.AnnouncementID)
	if err != nil {
		return nil, err
	}

	if err := a.Update(input.Title, input.Content, input.Priority, input.Audience); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, a); err != nil {
		s.logger.Error("Failed to update announcement", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update announcement")
	}

	v := view(a)
	return &v, nil
}

// Publish makes a draft visible to its audience
func (s *Service) Publish(ctx context.Context, tenantID, announcementID uuid.UUID) (*View, error) {
	a, err := s.findTenantAnnouncement(ctx, tenantID, announcementID)
	if err != nil {
		return nil, err
	}

	if err := a.Publish(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, a); err != nil {
		s.logger.Error("Failed to publish announcement", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to publish announcement")
	}

	s.logger.Info("Announcement published", zap.String("announcement_id", a.ID.String()))

	v := view(a)
	return &v, nil
}

// Archive removes a published announcement from the feed
func (s *Service) Archive(ctx context.Context, tenantID, announcementID uuid.UUID) error {
	a, err := s.findTenantAnnouncement(ctx, tenantID, announcementID)
	if err != nil {
		return err
	}

	if err := a.Archive(); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, a); err != nil {
		s.logger.Error("Failed to archive announcement", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to archive announcement")
	}
	return nil
}

// Delete removes an announcement entirely
func (s *Service) Delete(ctx context.Context, tenantID, announcementID uuid.UUID) error {
	a, err := s.findTenantAnnouncement(ctx, tenantID, announcementID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, a.ID); err != nil {
		s.logger.Error("Failed to delete announcement", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete announcement")
	}
	return nil
}

// List returns a page of the tenant's announcements regardless of status
func (s *Service) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]View, int64, error) {
	items, total, err := s.repo.FindAll(ctx, tenantID, filter)
	if err != nil {
		s.logger.Error("Failed to list announcements", zap.Error(err))
		return nil, 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to list announcements")
	}

	views := make([]View, 0, len(items))
	for _, a := range items {
		views = append(views, view(a))
	}
	return views, total, nil
}

// Feed returns published announcements visible to the given role
func (s *Service) Feed(ctx context.Context, tenantID uuid.UUID, role identity.Role, limit int) ([]View, error) {
	if limit <= 0 {
		limit = 20
	}

	items, err := s.repo.FindVisible(ctx, tenantID, role, limit)
	if err != nil {
		s.logger.Error("Failed to load announcement feed", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load announcements")
	}

	views := make([]View, 0, len(items))
	for _, a := range items {
		views = append(views, view(a))
	}
	return views, nil
}

func (s *Service) findTenantAnnouncement(ctx context.Context, tenantID, id uuid.UUID) (*announcement.Announcement, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil || a.TenantID != tenantID {
		return nil, shared.NewDomainError("ANNOUNCEMENT_NOT_FOUND", "Announcement not found")
	}
	return a, nil
}
