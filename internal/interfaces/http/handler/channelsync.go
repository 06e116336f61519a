package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pinehillfarm/backend/internal/application/channelsync"
	"github.com/pinehillfarm/backend/internal/domain/channel"
	"github.com/pinehillfarm/backend/internal/domain/shared"
	"github.com/pinehillfarm/backend/internal/interfaces/http/dto"
)

// ChannelSyncHandler handles sales-channel order sync and inventory pushes
type ChannelSyncHandler struct {
	BaseHandler
	syncService *channelsync.SyncService
}

// NewChannelSyncHandler creates a new channel sync handler
func NewChannelSyncHandler(syncService *channelsync.SyncService) *ChannelSyncHandler {
	return &ChannelSyncHandler{syncService: syncService}
}

// SyncNowRequest kicks off a manual order sync
type SyncNowRequest struct {
	Platform string     `json:"platform" binding:"required,oneof=clover bigcommerce amazon"`
	From     *time.Time `json:"from"`
	To       *time.Time `json:"to"`
}

// ListOrdersQuery filters synced channel orders
type ListOrdersQuery struct {
	dto.ListRequest
	Platform string     `form:"platform" binding:"omitempty,oneof=clover bigcommerce amazon"`
	Status   string     `form:"status" binding:"omitempty,oneof=pending paid shipped completed cancelled refunded unknown"`
	From     *time.Time `form:"from" time_format:"2006-01-02"`
	To       *time.Time `form:"to" time_format:"2006-01-02"`
}

// ListRunsQuery filters sync run history
type ListRunsQuery struct {
	dto.ListRequest
	Platform string `form:"platform" binding:"omitempty,oneof=clover bigcommerce amazon"`
}

// SyncNow godoc
// @Summary      Pull orders from a channel now
// @Tags         channels
// @Accept       json
// @Produce      json
// @Param        request body SyncNowRequest true "Sync"
// @Success      200 {object} dto.Response{data=channelsync.SyncRunView}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /channels/sync [post]
func (h *ChannelSyncHandler) SyncNow(c *gin.Context) {
	var req SyncNowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	input := channelsync.SyncOrdersInput{
		TenantID: tenantID,
		Platform: channel.PlatformCode(req.Platform),
		Trigger:  channel.SyncTriggerManual,
	}
	if req.From != nil {
		input.From = *req.From
	}
	if req.To != nil {
		input.To = *req.To
	}

	view, err := h.syncService.SyncOrders(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// PushInventory godoc
// @Summary      Push current stock levels to a channel
// @Tags         channels
// @Produce      json
// @Param        platform path string true "Platform code"
// @Success      200 {object} dto.Response{data=channelsync.PushInventoryResult}
// @Router       /channels/{platform}/inventory/push [post]
func (h *ChannelSyncHandler) PushInventory(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	code := channel.PlatformCode(c.Param("platform"))
	if !code.IsValid() {
		h.BadRequest(c, "Invalid platform")
		return
	}

	result, err := h.syncService.PushInventory(c.Request.Context(), tenantID, code)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ListRuns godoc
// @Summary      List sync run history
// @Tags         channels
// @Produce      json
// @Param        page query int false "Page"
// @Param        page_size query int false "Page size"
// @Param        platform query string false "Platform filter"
// @Success      200 {object} dto.Response{data=[]channelsync.SyncRunView}
// @Router       /channels/sync/runs [get]
func (h *ChannelSyncHandler) ListRuns(c *gin.Context) {
	var q ListRunsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}
	q.Normalize()

	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	var platform *channel.PlatformCode
	if q.Platform != "" {
		code := channel.PlatformCode(q.Platform)
		platform = &code
	}

	views, total, err := h.syncService.ListSyncRuns(c.Request.Context(), tenantID, platform, shared.Filter{
		Page:     q.Page,
		PageSize: q.PageSize,
		OrderBy:  q.OrderBy,
		OrderDir: q.OrderDir,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, views, total, q.Page, q.PageSize)
}

// ListOrders godoc
// @Summary      List synced channel orders
// @Tags         channels
// @Produce      json
// @Param        page query int false "Page"
// @Param        page_size query int false "Page size"
// @Param        platform query string false "Platform filter"
// @Param        status query string false "Order status filter"
// @Param        from query string false "Placed after (YYYY-MM-DD)"
// @Param        to query string false "Placed before (YYYY-MM-DD)"
// @Success      200 {object} dto.Response{data=[]channelsync.OrderView}
// @Router       /channels/orders [get]
func (h *ChannelSyncHandler) ListOrders(c *gin.Context) {
	var q ListOrdersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}
	q.Normalize()

	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	filter := channel.OrderFilter{
		From:     q.From,
		To:       q.To,
		Page:     q.Page,
		PageSize: q.PageSize,
	}
	if q.Platform != "" {
		code := channel.PlatformCode(q.Platform)
		filter.Platform = &code
	}
	if q.Status != "" {
		status := channel.OrderStatus(q.Status)
		filter.Status = &status
	}

	views, total, err := h.syncService.ListOrders(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, views, total, q.Page, q.PageSize)
}

// GetOrder godoc
// @Summary      Get a synced channel order
// @Tags         channels
// @Produce      json
// @Param        id path string true "Order ID"
// @Success      200 {object} dto.Response{data=channelsync.OrderView}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /channels/orders/{id} [get]
func (h *ChannelSyncHandler) GetOrder(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	orderID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	view, err := h.syncService.GetOrder(c.Request.Context(), tenantID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}
