package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appschedule "github.com/pinehillfarm/backend/internal/application/schedule"
	"github.com/pinehillfarm/backend/internal/domain/identity"
	"github.com/pinehillfarm/backend/internal/domain/schedule"
)

// ScheduleHandler handles shift scheduling and time-off requests
type ScheduleHandler struct {
	BaseHandler
	scheduleService *appschedule.Service
}

// NewScheduleHandler creates a new schedule handler
func NewScheduleHandler(scheduleService *appschedule.Service) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

// CreateShiftRequest is the shift creation payload
type CreateShiftRequest struct {
	EmployeeID string    `json:"employee_id" binding:"required,uuid"`
	Date       time.Time `json:"date" binding:"required"`
	StartTime  time.Time `json:"start_time" binding:"required"`
	EndTime    time.Time `json:"end_time" binding:"required"`
	Position   string    `json:"position"`
	Notes      string    `json:"notes"`
	Publish    bool      `json:"publish"`
}

// RescheduleShiftRequest moves a shift to a new slot
type RescheduleShiftRequest struct {
	Date      time.Time `json:"date" binding:"required"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}

// UpdateShiftRequest edits a shift's details
type UpdateShiftRequest struct {
	Position string `json:"position"`
	Notes    string `json:"notes"`
}

// ScheduleQuery selects a schedule window
type ScheduleQuery struct {
	From       time.Time `form:"from" binding:"required" time_format:"2006-01-02"`
	To         time.Time `form:"to" binding:"required" time_format:"2006-01-02"`
	EmployeeID string    `form:"employee_id" binding:"omitempty,uuid"`
}

// RequestTimeOffRequest is the time-off request payload
type RequestTimeOffRequest struct {
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date" binding:"required"`
	Reason    string    `json:"reason"`
}

// ReviewTimeOffRequest approves or denies a pending request
type ReviewTimeOffRequest struct {
	Approve bool   `json:"approve"`
	Note    string `json:"note"`
}

// TimeOffQuery filters time-off listings
type TimeOffQuery struct {
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
	Status     string `form:"status" binding:"omitempty,oneof=pending approved denied cancelled"`
}

// CreateShift godoc
// @Summary      Schedule a shift
// @Tags         schedule
// @Accept       json
// @Produce      json
// @Param        request body CreateShiftRequest true "Shift"
// @Success      201 {object} dto.Response{data=appschedule.ShiftView}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /schedule/shifts [post]
func (h *ScheduleHandler) CreateShift(c *gin.Context) {
	var req CreateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	employeeID, _ := uuid.Parse(req.EmployeeID)

	view, err := h.scheduleService.CreateShift(c.Request.Context(), appschedule.CreateShiftInput{
		TenantID:   tenantID,
		EmployeeID: employeeID,
		Date:       req.Date,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Position:   req.Position,
		Notes:      req.Notes,
		Publish:    req.Publish,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, view)
}

// GetSchedule godoc
// @Summary      List shifts in a date window
// @Tags         schedule
// @Produce      json
// @Param        from query string true "Window start (YYYY-MM-DD)"
// @Param        to query string true "Window end (YYYY-MM-DD)"
// @Param        employee_id query string false "Restrict to one employee"
// @Success      200 {object} dto.Response{data=[]appschedule.ShiftView}
// @Router       /schedule/shifts [get]
func (h *ScheduleHandler) GetSchedule(c *gin.Context) {
	var q ScheduleQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	input := appschedule.WeekScheduleInput{TenantID: tenantID, From: q.From, To: q.To}
	if q.EmployeeID != "" {
		id, _ := uuid.Parse(q.EmployeeID)
		input.EmployeeID = &id
	}
	// Employees only see their own shifts
	if h.role(c) == identity.RoleEmployee {
		userID, ok := h.userID(c)
		if !ok {
			return
		}
		input.EmployeeID = &userID
	}

	views, err := h.scheduleService.GetSchedule(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, views)
}

// RescheduleShift godoc
// @Summary      Move a shift to a new slot
// @Tags         schedule
// @Accept       json
// @Produce      json
// @Param        id path string true "Shift ID"
// @Param        request body RescheduleShiftRequest true "New slot"
// @Success      200 {object} dto.Response{data=appschedule.ShiftView}
// @Router       /schedule/shifts/{id}/reschedule [put]
func (h *ScheduleHandler) RescheduleShift(c *gin.Context) {
	var req RescheduleShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	shiftID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	view, err := h.scheduleService.RescheduleShift(c.Request.Context(), appschedule.RescheduleShiftInput{
		TenantID:  tenantID,
		ShiftID:   shiftID,
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// UpdateShift godoc
// @Summary      Update shift position and notes
// @Tags         schedule
// @Accept       json
// @Produce      json
// @Param        id path string true "Shift ID"
// @Param        request body UpdateShiftRequest true "Details"
// @Success      200 {object} dto.Response{data=appschedule.ShiftView}
// @Router       /schedule/shifts/{id} [put]
func (h *ScheduleHandler) UpdateShift(c *gin.Context) {
	var req UpdateShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	shiftID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	view, err := h.scheduleService.UpdateShiftDetails(c.Request.Context(), tenantID, shiftID, req.Position, req.Notes)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// PublishShift godoc
// @Summary      Publish a draft shift to the employee
// @Tags         schedule
// @Param        id path string true "Shift ID"
// @Success      204
// @Router       /schedule/shifts/{id}/publish [post]
func (h *ScheduleHandler) PublishShift(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	shiftID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.scheduleService.PublishShift(c.Request.Context(), tenantID, shiftID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// DeleteShift godoc
// @Summary      Delete a shift
// @Tags         schedule
// @Param        id path string true "Shift ID"
// @Success      204
// @Router       /schedule/shifts/{id} [delete]
func (h *ScheduleHandler) DeleteShift(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	shiftID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.scheduleService.DeleteShift(c.Request.Context(), tenantID, shiftID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// RequestTimeOff godoc
// @Summary      Submit a time-off request
// @Tags         schedule
// @Accept       json
// @Produce      json
// @Param        request body RequestTimeOffRequest true "Request"
// @Success      201 {object} dto.Response{data=appschedule.TimeOffView}
// @Router       /schedule/time-off [post]
func (h *ScheduleHandler) RequestTimeOff(c *gin.Context) {
	var req RequestTimeOffRequest
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

	view, err := h.scheduleService.RequestTimeOff(c.Request.Context(), appschedule.RequestTimeOffInput{
		TenantID:   tenantID,
		EmployeeID: userID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		Reason:     req.Reason,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, view)
}

// ListTimeOff godoc
// @Summary      List time-off requests
// @Tags         schedule
// @Produce      json
// @Param        employee_id query string false "Restrict to one employee"
// @Param        status query string false "Status filter"
// @Success      200 {object} dto.Response{data=[]appschedule.TimeOffView}
// @Router       /schedule/time-off [get]
func (h *ScheduleHandler) ListTimeOff(c *gin.Context) {
	var q TimeOffQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	var employeeID *uuid.UUID
	if q.EmployeeID != "" {
		id, _ := uuid.Parse(q.EmployeeID)
		employeeID = &id
	}
	// Employees only see their own requests
	if h.role(c) == identity.RoleEmployee {
		userID, ok := h.userID(c)
		if !ok {
			return
		}
		employeeID = &userID
	}

	views, err := h.scheduleService.ListTimeOff(c.Request.Context(), tenantID, employeeID, schedule.TimeOffStatus(q.Status))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, views)
}

// ReviewTimeOff godoc
// @Summary      Approve or deny a time-off request
// @Tags         schedule
// @Accept       json
// @Produce      json
// @Param        id path string true "Request ID"
// @Param        request body ReviewTimeOffRequest true "Decision"
// @Success      200 {object} dto.Response{data=appschedule.TimeOffView}
// @Router       /schedule/time-off/{id}/review [post]
func (h *ScheduleHandler) ReviewTimeOff(c *gin.Context) {
	var req ReviewTimeOffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	requestID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	reviewerID, ok := h.userID(c)
	if !ok {
		return
	}

	view, err := h.scheduleService.ReviewTimeOff(c.Request.Context(), appschedule.ReviewTimeOffInput{
		TenantID:   tenantID,
		RequestID:  requestID,
		ReviewerID: reviewerID,
		Approve:    req.Approve,
		Note:       req.Note,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// CancelTimeOff godoc
// @Summary      Cancel an own time-off request
// @Tags         schedule
// @Param        id path string true "Request ID"
// @Success      204
// @Router       /schedule/time-off/{id} [delete]
func (h *ScheduleHandler) CancelTimeOff(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	requestID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := h.userID(c)
	if !ok {
		return
	}
	if err := h.scheduleService.CancelTimeOff(c.Request.Context(), tenantID, requestID, userID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
