package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apppurchase "github.com/pinehillfarm/backend/internal/application/purchase"
	"github.com/pinehillfarm/backend/internal/domain/identity"
	"github.com/pinehillfarm/backend/internal/domain/purchase"
)

// PurchaseHandler handles employee purchases at the staff discount
type PurchaseHandler struct {
	BaseHandler
	purchaseService *apppurchase.Service
}

// NewPurchaseHandler creates a new purchase handler
func NewPurchaseHandler(purchaseService *apppurchase.Service) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

// PurchaseLineRequest is one requested line of an employee purchase
type PurchaseLineRequest struct {
	ItemID   string `json:"item_id" binding:"required,uuid"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
}

// CreatePurchaseRequest is the employee purchase payload
type CreatePurchaseRequest struct {
	Lines         []PurchaseLineRequest `json:"lines" binding:"required,min=1,dive"`
	PayrollDeduct bool                  `json:"payroll_deduct"`
	Notes         string                `json:"notes"`
}

// ListPurchasesQuery filters purchase listings
type ListPurchasesQuery struct {
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
	Status     string `form:"status" binding:"omitempty,oneof=pending approved completed cancelled"`
}

// Create godoc
// @Summary      Submit an employee purchase
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Param        request body CreatePurchaseRequest true "Purchase"
// @Success      201 {object} dto.Response{data=apppurchase.View}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /purchases [post]
func (h *PurchaseHandler) Create(c *gin.Context) {
	var req CreatePurchaseRequest
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

	lines := make([]apppurchase.LineInput, 0, len(req.Lines))
	for _, l := range req.Lines {
		itemID, _ := uuid.Parse(l.ItemID)
		lines = append(lines, apppurchase.LineInput{ItemID: itemID, Quantity: l.Quantity})
	}

	view, err := h.purchaseService.CreatePurchase(c.Request.Context(), apppurchase.CreatePurchaseInput{
		TenantID:      tenantID,
		EmployeeID:    userID,
		Lines:         lines,
		PayrollDeduct: req.PayrollDeduct,
		Notes:         req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, view)
}

// List godoc
// @Summary      List employee purchases
// @Tags         purchases
// @Produce      json
// @Param        employee_id query string false "Restrict to one employee"
// @Param        status query string false "Status filter"
// @Success      200 {object} dto.Response{data=[]apppurchase.View}
// @Router       /purchases [get]
func (h *PurchaseHandler) List(c *gin.Context) {
	var q ListPurchasesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	input := apppurchase.ListInput{TenantID: tenantID}
	if q.EmployeeID != "" {
		id, _ := uuid.Parse(q.EmployeeID)
		input.EmployeeID = &id
	}
	if q.Status != "" {
		status := purchase.Status(q.Status)
		input.Status = &status
	}
	// Employees only see their own purchases
	if h.role(c) == identity.RoleEmployee {
		userID, ok := h.userID(c)
		if !ok {
			return
		}
		input.EmployeeID = &userID
	}

	views, err := h.purchaseService.ListPurchases(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, views)
}

// Get godoc
// @Summary      Get an employee purchase
// @Tags         purchases
// @Produce      json
// @Param        id path string true "Purchase ID"
// @Success      200 {object} dto.Response{data=apppurchase.View}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /purchases/{id} [get]
func (h *PurchaseHandler) Get(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	purchaseID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	view, err := h.purchaseService.GetPurchase(c.Request.Context(), tenantID, purchaseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	// Employees only see their own purchases
	if h.role(c) == identity.RoleEmployee {
		userID, ok := h.userID(c)
		if !ok {
			return
		}
		if view.EmployeeID != userID {
			h.Forbidden(c, "Not your purchase")
			return
		}
	}
	h.Success(c, view)
}

// Approve godoc
// @Summary      Approve a pending purchase
// @Tags         purchases
// @Produce      json
// @Param        id path string true "Purchase ID"
// @Success      200 {object} dto.Response{data=apppurchase.View}
// @Router       /purchases/{id}/approve [post]
func (h *PurchaseHandler) Approve(c *gin.Context) {
	input, ok := h.reviewInput(c)
	if !ok {
		return
	}

	view, err := h.purchaseService.ApprovePurchase(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// Complete godoc
// @Summary      Complete an approved purchase and deduct stock
// @Tags         purchases
// @Produce      json
// @Param        id path string true "Purchase ID"
// @Success      200 {object} dto.Response{data=apppurchase.View}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /purchases/{id}/complete [post]
func (h *PurchaseHandler) Complete(c *gin.Context) {
	input, ok := h.reviewInput(c)
	if !ok {
		return
	}

	view, err := h.purchaseService.CompletePurchase(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// Cancel godoc
// @Summary      Cancel a purchase
// @Tags         purchases
// @Produce      json
// @Param        id path string true "Purchase ID"
// @Success      200 {object} dto.Response{data=apppurchase.View}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /purchases/{id} [delete]
func (h *PurchaseHandler) Cancel(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	purchaseID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := h.userID(c)
	if !ok {
		return
	}

	view, err := h.purchaseService.CancelPurchase(c.Request.Context(), apppurchase.CancelInput{
		TenantID:    tenantID,
		PurchaseID:  purchaseID,
		RequesterID: userID,
		Manager:     h.role(c).AtLeast(identity.RoleManager),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

func (h *PurchaseHandler) reviewInput(c *gin.Context) (apppurchase.ReviewInput, bool) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return apppurchase.ReviewInput{}, false
	}
	purchaseID, ok := h.pathID(c, "id")
	if !ok {
		return apppurchase.ReviewInput{}, false
	}
	userID, ok := h.userID(c)
	if !ok {
		return apppurchase.ReviewInput{}, false
	}
	return apppurchase.ReviewInput{TenantID: tenantID, PurchaseID: purchaseID, ReviewerID: userID}, true
}
