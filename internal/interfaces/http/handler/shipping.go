package handler

import (
	"github.com/gin-gonic/gin"

	appshipping "github.com/pinehillfarm/backend/internal/application/shipping"
	"github.com/pinehillfarm/backend/internal/domain/shipping"
)

// ShippingHandler handles rate quotes, label purchase, and tracking
type ShippingHandler struct {
	BaseHandler
	shippingService *appshipping.Service
}

// NewShippingHandler creates a new shipping handler
func NewShippingHandler(shippingService *appshipping.Service) *ShippingHandler {
	return &ShippingHandler{shippingService: shippingService}
}

// GetRatesRequest asks for rate quotes on a parcel
type GetRatesRequest struct {
	From   shipping.Address `json:"from" binding:"required"`
	To     shipping.Address `json:"to" binding:"required"`
	Parcel shipping.Parcel  `json:"parcel" binding:"required"`
}

// PurchaseLabelRequest buys a label for a previously quoted rate
type PurchaseLabelRequest struct {
	RateID string `json:"rate_id" binding:"required"`
}

// TrackQuery identifies a shipment to track
type TrackQuery struct {
	Carrier        string `form:"carrier" binding:"required"`
	TrackingNumber string `form:"tracking_number" binding:"required"`
}

// GetRates godoc
// @Summary      Quote shipping rates for a parcel
// @Tags         shipping
// @Accept       json
// @Produce      json
// @Param        request body GetRatesRequest true "Shipment"
// @Success      200 {object} dto.Response{data=[]shipping.Rate}
// @Failure      502 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /shipping/rates [post]
func (h *ShippingHandler) GetRates(c *gin.Context) {
	var req GetRatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	rates, err := h.shippingService.GetRates(c.Request.Context(), appshipping.RateInput{
		TenantID: tenantID,
		From:     req.From,
		To:       req.To,
		Parcel:   req.Parcel,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rates)
}

// PurchaseLabel godoc
// @Summary      Purchase a shipping label
// @Tags         shipping
// @Accept       json
// @Produce      json
// @Param        request body PurchaseLabelRequest true "Rate"
// @Success      201 {object} dto.Response{data=shipping.Label}
// @Failure      502 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /shipping/labels [post]
func (h *ShippingHandler) PurchaseLabel(c *gin.Context) {
	var req PurchaseLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	label, err := h.shippingService.PurchaseLabel(c.Request.Context(), tenantID, req.RateID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, label)
}

// Track godoc
// @Summary      Track a shipment
// @Tags         shipping
// @Produce      json
// @Param        carrier query string true "Carrier code"
// @Param        tracking_number query string true "Tracking number"
// @Success      200 {object} dto.Response{data=shipping.Tracking}
// @Router       /shipping/tracking [get]
func (h *ShippingHandler) Track(c *gin.Context) {
	var q TrackQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	tracking, err := h.shippingService.Track(c.Request.Context(), tenantID, q.Carrier, q.TrackingNumber)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tracking)
}
