package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appvideo "github.com/pinehillfarm/backend/internal/application/video"
	"github.com/pinehillfarm/backend/internal/domain/video"
	"github.com/pinehillfarm/backend/internal/interfaces/http/dto"
)

// VideoHandler handles marketing video projects and the generation pipeline
type VideoHandler struct {
	BaseHandler
	projectService  *appvideo.ProjectService
	pipelineService *appvideo.PipelineService
}

// NewVideoHandler creates a new video handler
func NewVideoHandler(projectService *appvideo.ProjectService, pipelineService *appvideo.PipelineService) *VideoHandler {
	return &VideoHandler{projectService: projectService, pipelineService: pipelineService}
}

// CreateProjectRequest is the video project creation payload
type CreateProjectRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description"`
	AspectRatio string `json:"aspect_ratio" binding:"omitempty,oneof=16:9 9:16 1:1"`
	Model       string `json:"model"`
}

// SceneRequest is one scene of a video project
type SceneRequest struct {
	Prompt          string `json:"prompt" binding:"required"`
	Narration       string `json:"narration"`
	DurationSeconds int    `json:"duration_seconds" binding:"required,min=1,max=60"`
}

// ReorderScenesRequest sets a new scene order
type ReorderScenesRequest struct {
	SceneIDs []string `json:"scene_ids" binding:"required,min=1,dive,uuid"`
}

// ListModels godoc
// @Summary      List available generation models
// @Tags         video
// @Produce      json
// @Success      200 {object} dto.Response{data=[]string}
// @Router       /video/models [get]
func (h *VideoHandler) ListModels(c *gin.Context) {
	h.Success(c, h.projectService.AvailableModels())
}

// CreateProject godoc
// @Summary      Create a video project
// @Tags         video
// @Accept       json
// @Produce      json
// @Param        request body CreateProjectRequest true "Project"
// @Success      201 {object} dto.Response{data=appvideo.ProjectView}
// @Router       /video/projects [post]
func (h *VideoHandler) CreateProject(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	view, err := h.projectService.CreateProject(c.Request.Context(), appvideo.CreateProjectInput{
		TenantID:    tenantID,
		Title:       req.Title,
		Description: req.Description,
		AspectRatio: video.AspectRatio(req.AspectRatio),
		Model:       req.Model,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, view)
}

// ListProjects godoc
// @Summary      List video projects
// @Tags         video
// @Produce      json
// @Param        page query int false "Page"
// @Param        page_size query int false "Page size"
// @Success      200 {object} dto.Response{data=[]appvideo.ProjectView}
// @Router       /video/projects [get]
func (h *VideoHandler) ListProjects(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}
	req.Normalize()

	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	views, total, err := h.projectService.ListProjects(c.Request.Context(), tenantID, req.Page, req.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, views, total, req.Page, req.PageSize)
}

// GetProject godoc
// @Summary      Get a video project with its scenes
// @Tags         video
// @Produce      json
// @Param        id path string true "Project ID"
// @Success      200 {object} dto.Response{data=appvideo.ProjectView}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /video/projects/{id} [get]
func (h *VideoHandler) GetProject(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	projectID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	view, err := h.projectService.GetProject(c.Request.Context(), tenantID, projectID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// DeleteProject godoc
// @Summary      Delete a video project
// @Tags         video
// @Param        id path string true "Project ID"
// @Success      204
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /video/projects/{id} [delete]
func (h *VideoHandler) DeleteProject(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	projectID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.projectService.DeleteProject(c.Request.Context(), tenantID, projectID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// AddScene godoc
// @Summary      Add a scene to a draft project
// @Tags         video
// @Accept       json
// @Produce      json
// @Param        id path string true "Project ID"
// @Param        request body SceneRequest true "Scene"
// @Success      200 {object} dto.Response{data=appvideo.ProjectView}
// @Router       /video/projects/{id}/scenes [post]
func (h *VideoHandler) AddScene(c *gin.Context) {
	var req SceneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	projectID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	view, err := h.projectService.AddScene(c.Request.Context(), tenantID, projectID, appvideo.SceneInput{
		Prompt:          req.Prompt,
		Narration:       req.Narration,
		DurationSeconds: req.DurationSeconds,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// UpdateScene godoc
// @Summary      Edit a scene in a draft project
// @Tags         video
// @Accept       json
// @Produce      json
// @Param        id path string true "Project ID"
// @Param        scene_id path string true "Scene ID"
// @Param        request body SceneRequest true "Scene"
// @Success      200 {object} dto.Response{data=appvideo.ProjectView}
// @Router       /video/projects/{id}/scenes/{scene_id} [put]
func (h *VideoHandler) UpdateScene(c *gin.Context) {
	var req SceneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	projectID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	sceneID, ok := h.pathID(c, "scene_id")
	if !ok {
		return
	}

	view, err := h.projectService.UpdateScene(c.Request.Context(), tenantID, projectID, sceneID, appvideo.SceneInput{
		Prompt:          req.Prompt,
		Narration:       req.Narration,
		DurationSeconds: req.DurationSeconds,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// RemoveScene godoc
// @Summary      Remove a scene from a draft project
// @Tags         video
// @Produce      json
// @Param        id path string true "Project ID"
// @Param        scene_id path string true "Scene ID"
// @Success      200 {object} dto.Response{data=appvideo.ProjectView}
// @Router       /video/projects/{id}/scenes/{scene_id} [delete]
func (h *VideoHandler) RemoveScene(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	projectID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	sceneID, ok := h.pathID(c, "scene_id")
	if !ok {
		return
	}

	view, err := h.projectService.RemoveScene(c.Request.Context(), tenantID, projectID, sceneID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// ReorderScenes godoc
// @Summary      Reorder the scenes of a draft project
// @Tags         video
// @Accept       json
// @Produce      json
// @Param        id path string true "Project ID"
// @Param        request body ReorderScenesRequest true "Scene order"
// @Success      200 {object} dto.Response{data=appvideo.ProjectView}
// @Router       /video/projects/{id}/scenes/reorder [put]
func (h *VideoHandler) ReorderScenes(c *gin.Context) {
	var req ReorderScenesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	projectID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	sceneIDs := make([]uuid.UUID, 0, len(req.SceneIDs))
	for _, raw := range req.SceneIDs {
		id, _ := uuid.Parse(raw)
		sceneIDs = append(sceneIDs, id)
	}

	view, err := h.projectService.ReorderScenes(c.Request.Context(), appvideo.ReorderInput{
		TenantID:  tenantID,
		ProjectID: projectID,
		SceneIDs:  sceneIDs,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// Generate godoc
// @Summary      Start the generation pipeline for a project
// @Tags         video
// @Produce      json
// @Param        id path string true "Project ID"
// @Success      202 {object} dto.Response{data=appvideo.ProjectView}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /video/projects/{id}/generate [post]
func (h *VideoHandler) Generate(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	projectID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	view, err := h.pipelineService.StartGeneration(c.Request.Context(), tenantID, projectID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Accepted(c, view)
}

// Status godoc
// @Summary      Get pipeline status for a project
// @Tags         video
// @Produce      json
// @Param        id path string true "Project ID"
// @Success      200 {object} dto.Response{data=appvideo.ProjectView}
// @Router       /video/projects/{id}/status [get]
func (h *VideoHandler) Status(c *gin.Context) {
	h.GetProject(c)
}

// DownloadLink godoc
// @Summary      Get a time-limited download link for the finished video
// @Tags         video
// @Produce      json
// @Param        id path string true "Project ID"
// @Success      200 {object} dto.Response{data=appvideo.DownloadLink}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /video/projects/{id}/download [get]
func (h *VideoHandler) DownloadLink(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	projectID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	link, err := h.pipelineService.GetDownloadLink(c.Request.Context(), tenantID, projectID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, link)
}
