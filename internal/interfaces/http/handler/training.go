package handler

import (
	"github.com/gin-gonic/gin"

	apptraining "github.com/pinehillfarm/backend/internal/application/training"
	"github.com/pinehillfarm/backend/internal/domain/identity"
	"github.com/pinehillfarm/backend/internal/domain/shared"
	"github.com/pinehillfarm/backend/internal/interfaces/http/dto"
)

// TrainingHandler handles training modules and enrollments
type TrainingHandler struct {
	BaseHandler
	trainingService *apptraining.Service
}

// NewTrainingHandler creates a new training handler
func NewTrainingHandler(trainingService *apptraining.Service) *TrainingHandler {
	return &TrainingHandler{trainingService: trainingService}
}

// CreateModuleRequest is the module creation payload
type CreateModuleRequest struct {
	Title           string `json:"title" binding:"required,max=200"`
	Description     string `json:"description"`
	ContentURL      string `json:"content_url" binding:"omitempty,url"`
	RequiredRole    string `json:"required_role" binding:"omitempty,oneof=admin manager employee"`
	DurationMinutes int    `json:"duration_minutes" binding:"omitempty,min=1"`
}

// UpdateModuleRequest is the module update payload
type UpdateModuleRequest struct {
	Title           string `json:"title" binding:"required,max=200"`
	Description     string `json:"description"`
	ContentURL      string `json:"content_url" binding:"omitempty,url"`
	DurationMinutes int    `json:"duration_minutes" binding:"omitempty,min=1"`
}

// UpdateProgressRequest reports enrollment progress
type UpdateProgressRequest struct {
	Progress int `json:"progress" binding:"min=0,max=100"`
}

// CreateModule godoc
// @Summary      Create a training module
// @Tags         training
// @Accept       json
// @Produce      json
// @Param        request body CreateModuleRequest true "Module"
// @Success      201 {object} dto.Response{data=apptraining.ModuleView}
// @Router       /training/modules [post]
func (h *TrainingHandler) CreateModule(c *gin.Context) {
	var req CreateModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	view, err := h.trainingService.CreateModule(c.Request.Context(), apptraining.CreateModuleInput{
		TenantID:        tenantID,
		Title:           req.Title,
		Description:     req.Description,
		ContentURL:      req.ContentURL,
		RequiredRole:    identity.Role(req.RequiredRole),
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, view)
}

// ListModules godoc
// @Summary      List training modules
// @Tags         training
// @Produce      json
// @Param        page query int false "Page"
// @Param        page_size query int false "Page size"
// @Param        search query string false "Title search"
// @Success      200 {object} dto.Response{data=[]apptraining.ModuleView}
// @Router       /training/modules [get]
func (h *TrainingHandler) ListModules(c *gin.Context) {
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

	// Employees get the modules assigned to their role, not the catalog
	if h.role(c) == identity.RoleEmployee {
		views, err := h.trainingService.ListModulesForRole(c.Request.Context(), tenantID, identity.RoleEmployee)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, views)
		return
	}

	views, total, err := h.trainingService.ListModules(c.Request.Context(), tenantID, shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Search:   req.Search,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, views, total, req.Page, req.PageSize)
}

// GetModuleStats godoc
// @Summary      Get a module with enrollment counts
// @Tags         training
// @Produce      json
// @Param        id path string true "Module ID"
// @Success      200 {object} dto.Response{data=apptraining.ModuleStats}
// @Router       /training/modules/{id} [get]
func (h *TrainingHandler) GetModuleStats(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	moduleID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	stats, err := h.trainingService.GetModuleStats(c.Request.Context(), tenantID, moduleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}

// UpdateModule godoc
// @Summary      Update a training module
// @Tags         training
// @Accept       json
// @Produce      json
// @Param        id path string true "Module ID"
// @Param        request body UpdateModuleRequest true "Module"
// @Success      200 {object} dto.Response{data=apptraining.ModuleView}
// @Router       /training/modules/{id} [put]
func (h *TrainingHandler) UpdateModule(c *gin.Context) {
	var req UpdateModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	moduleID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	view, err := h.trainingService.UpdateModule(c.Request.Context(), apptraining.UpdateModuleInput{
		TenantID:        tenantID,
		ModuleID:        moduleID,
		Title:           req.Title,
		Description:     req.Description,
		ContentURL:      req.ContentURL,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// ActivateModule godoc
// @Summary      Make a module available for enrollment
// @Tags         training
// @Param        id path string true "Module ID"
// @Success      204
// @Router       /training/modules/{id}/activate [post]
func (h *TrainingHandler) ActivateModule(c *gin.Context) {
	h.setModuleActive(c, true)
}

// DeactivateModule godoc
// @Summary      Retire a module from enrollment
// @Tags         training
// @Param        id path string true "Module ID"
// @Success      204
// @Router       /training/modules/{id}/deactivate [post]
func (h *TrainingHandler) DeactivateModule(c *gin.Context) {
	h.setModuleActive(c, false)
}

func (h *TrainingHandler) setModuleActive(c *gin.Context, active bool) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	moduleID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.trainingService.SetModuleActive(c.Request.Context(), tenantID, moduleID, active); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Enroll godoc
// @Summary      Enroll the caller in a module
// @Tags         training
// @Produce      json
// @Param        id path string true "Module ID"
// @Success      201 {object} dto.Response{data=apptraining.EnrollmentView}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /training/modules/{id}/enroll [post]
func (h *TrainingHandler) Enroll(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	moduleID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	view, err := h.trainingService.Enroll(c.Request.Context(), tenantID, moduleID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, view)
}

// ListModuleEnrollments godoc
// @Summary      List enrollments for a module
// @Tags         training
// @Produce      json
// @Param        id path string true "Module ID"
// @Success      200 {object} dto.Response{data=[]apptraining.EnrollmentView}
// @Router       /training/modules/{id}/enrollments [get]
func (h *TrainingHandler) ListModuleEnrollments(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	moduleID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	views, err := h.trainingService.ListModuleEnrollments(c.Request.Context(), tenantID, moduleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, views)
}

// MyEnrollments godoc
// @Summary      List the caller's enrollments
// @Tags         training
// @Produce      json
// @Success      200 {object} dto.Response{data=[]apptraining.EnrollmentView}
// @Router       /training/enrollments [get]
func (h *TrainingHandler) MyEnrollments(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	views, err := h.trainingService.ListEmployeeEnrollments(c.Request.Context(), tenantID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, views)
}

// UpdateProgress godoc
// @Summary      Report progress on an enrollment
// @Tags         training
// @Accept       json
// @Produce      json
// @Param        id path string true "Enrollment ID"
// @Param        request body UpdateProgressRequest true "Progress"
// @Success      200 {object} dto.Response{data=apptraining.EnrollmentView}
// @Router       /training/enrollments/{id}/progress [put]
func (h *TrainingHandler) UpdateProgress(c *gin.Context) {
	var req UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	enrollmentID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	view, err := h.trainingService.UpdateProgress(c.Request.Context(), tenantID, enrollmentID, userID, req.Progress)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// CompleteEnrollment godoc
// @Summary      Mark an enrollment completed
// @Tags         training
// @Produce      json
// @Param        id path string true "Enrollment ID"
// @Success      200 {object} dto.Response{data=apptraining.EnrollmentView}
// @Router       /training/enrollments/{id}/complete [post]
func (h *TrainingHandler) CompleteEnrollment(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	enrollmentID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	view, err := h.trainingService.CompleteEnrollment(c.Request.Context(), tenantID, enrollmentID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}
