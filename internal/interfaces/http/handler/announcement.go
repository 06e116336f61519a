package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appannouncement "github.com/pinehillfarm/backend/internal/application/announcement"
	"github.com/pinehillfarm/backend/internal/domain/announcement"
	"github.com/pinehillfarm/backend/internal/domain/shared"
	"github.com/pinehillfarm/backend/internal/interfaces/http/dto"
)

// AnnouncementHandler handles staff announcements
type AnnouncementHandler struct {
	BaseHandler
	announcementService *appannouncement.Service
}

// NewAnnouncementHandler creates a new announcement handler
func NewAnnouncementHandler(announcementService *appannouncement.Service) *AnnouncementHandler {
	return &AnnouncementHandler{announcementService: announcementService}
}

// CreateAnnouncementRequest is the announcement creation payload
type CreateAnnouncementRequest struct {
	Title    string `json:"title" binding:"required,max=200"`
	Content  string `json:"content" binding:"required"`
	Priority string `json:"priority" binding:"omitempty,oneof=normal important urgent"`
	Audience string `json:"audience" binding:"omitempty,oneof=all managers employees"`
	Publish  bool   `json:"publish"`
}

// UpdateAnnouncementRequest is the announcement edit payload
type UpdateAnnouncementRequest struct {
	Title    string `json:"title" binding:"required,max=200"`
	Content  string `json:"content" binding:"required"`
	Priority string `json:"priority" binding:"omitempty,oneof=normal important urgent"`
	Audience string `json:"audience" binding:"omitempty,oneof=all managers employees"`
}

// Create godoc
// @Summary      Create an announcement
// @Tags         announcements
// @Accept       json
// @Produce      json
// @Param        request body CreateAnnouncementRequest true "Announcement"
// @Success      201 {object} dto.Response{data=appannouncement.View}
// @Router       /announcements [post]
func (h *AnnouncementHandler) Create(c *gin.Context) {
	var req CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	view, err := h.announcementService.Create(c.Request.Context(), appannouncement.CreateInput{
		TenantID: tenantID,
		AuthorID: userID,
		Title:    req.Title,
		Content:  req.Content,
		Priority: announcement.Priority(req.Priority),
		Audience: announcement.Audience(req.Audience),
		Publish:  req.Publish,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, view)
}

// List godoc
// @Summary      List all announcements including drafts
// @Tags         announcements
// @Produce      json
// @Param        page query int false "Page"
// @Param        page_size query int false "Page size"
// @Param        search query string false "Title search"
// @Success      200 {object} dto.Response{data=[]appannouncement.View}
// @Router       /announcements [get]
func (h *AnnouncementHandler) List(c *gin.Context) {
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

	views, total, err := h.announcementService.List(c.Request.Context(), tenantID, shared.Filter{
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

// Feed godoc
// @Summary      List published announcements for the caller's role
// @Tags         announcements
// @Produce      json
// @Param        limit query int false "Max entries" default(20)
// @Success      200 {object} dto.Response{data=[]appannouncement.View}
// @Router       /announcements/feed [get]
func (h *AnnouncementHandler) Feed(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			h.BadRequest(c, "Invalid limit")
			return
		}
		limit = n
	}

	views, err := h.announcementService.Feed(c.Request.Context(), tenantID, h.role(c), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, views)
}

// Update godoc
// @Summary      Edit an announcement
// @Tags         announcements
// @Accept       json
// @Produce      json
// @Param        id path string true "Announcement ID"
// @Param        request body UpdateAnnouncementRequest true "Announcement"
// @Success      200 {object} dto.Response{data=appannouncement.View}
// @Router       /announcements/{id} [put]
func (h *AnnouncementHandler) Update(c *gin.Context) {
	var req UpdateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	view, err := h.announcementService.Update(c.Request.Context(), appannouncement.UpdateInput{
		TenantID:       tenantID,
		AnnouncementID: id,
		Title:          req.Title,
		Content:        req.Content,
		Priority:       announcement.Priority(req.Priority),
		Audience:       announcement.Audience(req.Audience),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// Publish godoc
// @Summary      Publish a draft announcement
// @Tags         announcements
// @Produce      json
// @Param        id path string true "Announcement ID"
// @Success      200 {object} dto.Response{data=appannouncement.View}
// @Router       /announcements/{id}/publish [post]
func (h *AnnouncementHandler) Publish(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	view, err := h.announcementService.Publish(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// Archive godoc
// @Summary      Archive a published announcement
// @Tags         announcements
// @Param        id path string true "Announcement ID"
// @Success      204
// @Router       /announcements/{id}/archive [post]
func (h *AnnouncementHandler) Archive(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.announcementService.Archive(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Delete godoc
// @Summary      Delete an announcement
// @Tags         announcements
// @Param        id path string true "Announcement ID"
// @Success      204
// @Router       /announcements/{id} [delete]
func (h *AnnouncementHandler) Delete(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.announcementService.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
