package video

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pinehillfarm/backend/internal/domain/shared"
	"github.com/pinehillfarm/backend/internal/domain/video"
)

// ProjectService handles marketing video project editing
type ProjectService struct {
	repo      video.Repository
	generator video.Generator
	logger    *zap.Logger
}

// NewProjectService creates a new project service
func NewProjectService(repo video.Repository, generator video.Generator, logger *zap.Logger) *ProjectService {
	return &ProjectService{
		repo:      repo,
		generator: generator,
		logger:    logger,
	}
}

// AvailableModels lists the generation models the provider accepts
func (s *ProjectService) AvailableModels() []string {
	return s.generator.Models()
}

// CreateProject creates a draft project
func (s *ProjectService) CreateProject(ctx context.Context, input CreateProjectInput) (*ProjectView, error) {
	if input.Model != "" && !s.knownModel(input.Model) {
		return nil, shared.NewDomainError("UNKNOWN_MODEL", "Unknown generation model: "+input.Model)
	}

	p, err := video.NewProject(input.TenantID, input.Title, input.AspectRatio, input.Model)
	if err != nil {
		return nil, err
	}
	p.Description = input.Description

	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.Error("Failed to create video project", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create project")
	}

	s.logger.Info("Video project created",
		zap.String("project_id", p.ID.String()),
		zap.String("title", p.Title))

	return projectView(p), nil
}

// GetProject retrieves one project with its scenes
func (s *ProjectService) GetProject(ctx context.Context, tenantID, projectID uuid.UUID) (*ProjectView, error) {
	p, err := s.findTenantProject(ctx, tenantID, projectID)
	if err != nil {
		return nil, err
	}
	return projectView(p), nil
}

// ListProjects pages through the tenant's projects
func (s *ProjectService) ListProjects(ctx context.Context, tenantID uuid.UUID, page, pageSize int) ([]*ProjectView, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	projects, total, err := s.repo.FindAll(ctx, tenantID, page, pageSize)
	if err != nil {
		s.logger.Error("Failed to list video projects", zap.Error(err))
		return nil, 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to list projects")
	}

	views := make([]*ProjectView, 0, len(projects))
	for _, p := range projects {
		views = append(views, projectView(p))
	}
	return views, total, nil
}

// DeleteProject removes a project that is not mid-pipeline
func (s *ProjectService) DeleteProject(ctx context.Context, tenantID, projectID uuid.UUID) error {
	p, err := s.findTenantProject(ctx, tenantID, projectID)
	if err != nil {
		return err
	}
	if p.Status == video.ProjectStatusGenerating || p.Status == video.ProjectStatusRendering {
		return shared.NewDomainError("PROJECT_BUSY", "Project is being generated")
	}

	if err := s.repo.Delete(ctx, p.ID); err != nil {
		s.logger.Error("Failed to delete video project", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete project")
	}
	return nil
}

// AddScene appends a scene to a draft project
func (s *ProjectService) AddScene(ctx context.Context, tenantID, projectID uuid.UUID, input SceneInput) (*ProjectView, error) {
	p, err := s.findTenantProject(ctx, tenantID, projectID)
	if err != nil {
		return nil, err
	}

	if _, err := p.AddScene(input.Prompt, input.Narration, input.DurationSeconds); err != nil {
		return nil, err
	}

	return s.save(ctx, p)
}

// UpdateScene edits a scene on a draft project
func (s *ProjectService) UpdateScene(ctx context.Context, tenantID, projectID, sceneID uuid.UUID, input SceneInput) (*ProjectView, error) {
	p, err := s.findTenantProject(ctx, tenantID, projectID)
	if err != nil {
		return nil, err
	}

	if err := p.UpdateScene(sceneID, input.Prompt, input.Narration, input.DurationSeconds); err != nil {
		return nil, err
	}

	return s.save(ctx, p)
}

// RemoveScene deletes a scene from a draft project
func (s *ProjectService) RemoveScene(ctx context.Context, tenantID, projectID, sceneID uuid.UUID) (*ProjectView, error) {
	p, err := s.findTenantProject(ctx, tenantID, projectID)
	if err != nil {
		return nil, err
	}

	if err := p.RemoveScene(sceneID); err != nil {
		return nil, err
	}

	return s.save(ctx, p)
}

// ReorderScenes applies a new scene ordering on a draft project
func (s *ProjectService) ReorderScenes(ctx context.Context, input ReorderInput) (*ProjectView, error) {
	p, err := s.findTenantProject(ctx, input.TenantID, input.ProjectID)
	if err != nil {
		return nil, err
	}

	if err := p.ReorderScenes(input.SceneIDs); err != nil {
		return nil, err
	}

	return s.save(ctx, p)
}

func (s *ProjectService) save(ctx context.Context, p *video.Project) (*ProjectView, error) {
	if err := s.repo.Update(ctx, p); err != nil {
		s.logger.Error("Failed to update video project", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update project")
	}
	return projectView(p), nil
}

func (s *ProjectService) knownModel(model string) bool {
	for _, name := range s.generator.Models() {
		if name == model {
			return true
		}
	}
	return false
}

// findTenantProject answers the same way for a wrong-tenant project as for
// a missing one so tenants cannot probe each other.
func (s *ProjectService) findTenantProject(ctx context.Context, tenantID, projectID uuid.UUID) (*video.Project, error) {
	p, err := s.repo.FindByID(ctx, projectID)
	if err != nil || p.TenantID != tenantID {
		return nil, shared.NewDomainError("PROJECT_NOT_FOUND", "Project not found")
	}
	return p, nil
}
