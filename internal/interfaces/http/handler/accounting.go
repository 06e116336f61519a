package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	appaccounting "github.com/pinehillfarm/backend/internal/application/accounting"
)

// AccountingHandler handles sales reporting and accounting assumptions
type AccountingHandler struct {
	BaseHandler
	accountingService *appaccounting.Service
}

// NewAccountingHandler creates a new accounting handler
func NewAccountingHandler(accountingService *appaccounting.Service) *AccountingHandler {
	return &AccountingHandler{accountingService: accountingService}
}

// SaveConfigRequest sets per-tenant accounting assumptions
type SaveConfigRequest struct {
	TaxRate        decimal.Decimal `json:"tax_rate"`
	CloverFeePct   decimal.Decimal `json:"clover_fee_pct"`
	BigCommFeePct  decimal.Decimal `json:"bigcommerce_fee_pct"`
	AmazonFeePct   decimal.Decimal `json:"amazon_fee_pct"`
	FiscalYearEnds string          `json:"fiscal_year_ends"`
}

// ReportQuery selects a reporting window
type ReportQuery struct {
	From time.Time `form:"from" binding:"required" time_format:"2006-01-02"`
	To   time.Time `form:"to" binding:"required" time_format:"2006-01-02"`
}

// GetConfig godoc
// @Summary      Get the tenant's accounting assumptions
// @Tags         accounting
// @Produce      json
// @Success      200 {object} dto.Response{data=appaccounting.ConfigView}
// @Router       /accounting/config [get]
func (h *AccountingHandler) GetConfig(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	view, err := h.accountingService.GetConfig(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// SaveConfig godoc
// @Summary      Set the tenant's accounting assumptions
// @Tags         accounting
// @Accept       json
// @Produce      json
// @Param        request body SaveConfigRequest true "Config"
// @Success      200 {object} dto.Response{data=appaccounting.ConfigView}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /accounting/config [put]
func (h *AccountingHandler) SaveConfig(c *gin.Context) {
	var req SaveConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	view, err := h.accountingService.SaveConfig(c.Request.Context(), appaccounting.SaveConfigInput{
		TenantID:       tenantID,
		TaxRate:        req.TaxRate,
		CloverFeePct:   req.CloverFeePct,
		BigCommFeePct:  req.BigCommFeePct,
		AmazonFeePct:   req.AmazonFeePct,
		FiscalYearEnds: req.FiscalYearEnds,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// Summary godoc
// @Summary      Sales summary with fees, cost of goods, and margin
// @Tags         accounting
// @Produce      json
// @Param        from query string true "Window start (YYYY-MM-DD)"
// @Param        to query string true "Window end (YYYY-MM-DD)"
// @Success      200 {object} dto.Response{data=accounting.SalesSummary}
// @Router       /accounting/summary [get]
func (h *AccountingHandler) Summary(c *gin.Context) {
	input, ok := h.reportInput(c)
	if !ok {
		return
	}

	summary, err := h.accountingService.SalesSummary(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// Trend godoc
// @Summary      Daily revenue trend
// @Tags         accounting
// @Produce      json
// @Param        from query string true "Window start (YYYY-MM-DD)"
// @Param        to query string true "Window end (YYYY-MM-DD)"
// @Success      200 {object} dto.Response{data=[]appaccounting.TrendPoint}
// @Router       /accounting/trend [get]
func (h *AccountingHandler) Trend(c *gin.Context) {
	input, ok := h.reportInput(c)
	if !ok {
		return
	}

	points, err := h.accountingService.DailyTrend(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, points)
}

// TopItems godoc
// @Summary      Best sellers with per-item cost and margin
// @Tags         accounting
// @Produce      json
// @Param        from query string true "Window start (YYYY-MM-DD)"
// @Param        to query string true "Window end (YYYY-MM-DD)"
// @Param        limit query int false "Max entries" default(10)
// @Success      200 {object} dto.Response{data=[]appaccounting.TopItem}
// @Router       /accounting/top-items [get]
func (h *AccountingHandler) TopItems(c *gin.Context) {
	input, ok := h.reportInput(c)
	if !ok {
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			h.BadRequest(c, "Invalid limit")
			return
		}
		limit = n
	}

	items, err := h.accountingService.TopItems(c.Request.Context(), input, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

func (h *AccountingHandler) reportInput(c *gin.Context) (appaccounting.SummaryInput, bool) {
	var q ReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return appaccounting.SummaryInput{}, false
	}
	tenantID, ok := h.tenantID(c)
	if !ok {
		return appaccounting.SummaryInput{}, false
	}
	if !q.To.After(q.From) {
		h.BadRequest(c, "Window end must be after start")
		return appaccounting.SummaryInput{}, false
	}
	return appaccounting.SummaryInput{TenantID: tenantID, From: q.From, To: q.To}, true
}
