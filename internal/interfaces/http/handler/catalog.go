package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	appcatalog "github.com/pinehillfarm/backend/internal/application/catalog"
	"github.com/pinehillfarm/backend/internal/domain/catalog"
	"github.com/pinehillfarm/backend/internal/domain/shared"
	"github.com/pinehillfarm/backend/internal/interfaces/http/dto"
)

// CatalogHandler handles the product catalog and stock levels
type CatalogHandler struct {
	BaseHandler
	catalogService *appcatalog.Service
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService *appcatalog.Service) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ChannelListingsRequest maps an item onto external channel identifiers
type ChannelListingsRequest struct {
	CloverItemID         string `json:"clover_item_id"`
	BigCommerceProductID string `json:"bigcommerce_product_id"`
	AmazonASIN           string `json:"amazon_asin"`
	AmazonSKU            string `json:"amazon_sku"`
}

func (r ChannelListingsRequest) toDomain() catalog.ChannelListings {
	return catalog.ChannelListings{
		CloverItemID:         r.CloverItemID,
		BigCommerceProductID: r.BigCommerceProductID,
		AmazonASIN:           r.AmazonASIN,
		AmazonSKU:            r.AmazonSKU,
	}
}

// CreateItemRequest is the item creation payload
type CreateItemRequest struct {
	SKU               string                  `json:"sku" binding:"required,max=64"`
	Name              string                  `json:"name" binding:"required,max=200"`
	Category          string                  `json:"category"`
	UnitCost          decimal.Decimal         `json:"unit_cost"`
	RetailPrice       decimal.Decimal         `json:"retail_price"`
	QuantityOnHand    int                     `json:"quantity_on_hand" binding:"min=0"`
	LowStockThreshold int                     `json:"low_stock_threshold" binding:"min=0"`
	Listings          *ChannelListingsRequest `json:"listings"`
}

// UpdateItemRequest is the item update payload
type UpdateItemRequest struct {
	Name              string          `json:"name" binding:"required,max=200"`
	Category          string          `json:"category"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	RetailPrice       decimal.Decimal `json:"retail_price"`
	LowStockThreshold int             `json:"low_stock_threshold" binding:"min=0"`
}

// AdjustQuantityRequest changes stock on hand by a signed delta
type AdjustQuantityRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// CreateItem godoc
// @Summary      Add a catalog item
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        request body CreateItemRequest true "Item"
// @Success      201 {object} dto.Response{data=appcatalog.ItemView}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/items [post]
func (h *CatalogHandler) CreateItem(c *gin.Context) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	input := appcatalog.CreateItemInput{
		TenantID:          tenantID,
		SKU:               req.SKU,
		Name:              req.Name,
		Category:          req.Category,
		UnitCost:          req.UnitCost,
		RetailPrice:       req.RetailPrice,
		QuantityOnHand:    req.QuantityOnHand,
		LowStockThreshold: req.LowStockThreshold,
	}
	if req.Listings != nil {
		input.Listings = req.Listings.toDomain()
	}

	view, err := h.catalogService.CreateItem(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, view)
}

// ListItems godoc
// @Summary      List catalog items
// @Tags         catalog
// @Produce      json
// @Param        page query int false "Page"
// @Param        page_size query int false "Page size"
// @Param        search query string false "Name or SKU search"
// @Success      200 {object} dto.Response{data=[]appcatalog.ItemView}
// @Router       /catalog/items [get]
func (h *CatalogHandler) ListItems(c *gin.Context) {
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

	views, total, err := h.catalogService.ListItems(c.Request.Context(), tenantID, shared.Filter{
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

// ListLowStock godoc
// @Summary      List items at or below their low-stock threshold
// @Tags         catalog
// @Produce      json
// @Success      200 {object} dto.Response{data=[]appcatalog.ItemView}
// @Router       /catalog/items/low-stock [get]
func (h *CatalogHandler) ListLowStock(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	views, err := h.catalogService.ListLowStock(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, views)
}

// GetItem godoc
// @Summary      Get a catalog item
// @Tags         catalog
// @Produce      json
// @Param        id path string true "Item ID"
// @Success      200 {object} dto.Response{data=appcatalog.ItemView}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/items/{id} [get]
func (h *CatalogHandler) GetItem(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	itemID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	view, err := h.catalogService.GetItem(c.Request.Context(), tenantID, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// GetItemBySKU godoc
// @Summary      Look up a catalog item by SKU
// @Tags         catalog
// @Produce      json
// @Param        sku path string true "SKU"
// @Success      200 {object} dto.Response{data=appcatalog.ItemView}
// @Router       /catalog/items/sku/{sku} [get]
func (h *CatalogHandler) GetItemBySKU(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	sku := c.Param("sku")
	if sku == "" {
		h.BadRequest(c, "Invalid sku")
		return
	}

	view, err := h.catalogService.GetItemBySKU(c.Request.Context(), tenantID, sku)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// UpdateItem godoc
// @Summary      Update a catalog item
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        id path string true "Item ID"
// @Param        request body UpdateItemRequest true "Item"
// @Success      200 {object} dto.Response{data=appcatalog.ItemView}
// @Router       /catalog/items/{id} [put]
func (h *CatalogHandler) UpdateItem(c *gin.Context) {
	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	itemID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	view, err := h.catalogService.UpdateItem(c.Request.Context(), appcatalog.UpdateItemInput{
		TenantID:          tenantID,
		ItemID:            itemID,
		Name:              req.Name,
		Category:          req.Category,
		UnitCost:          req.UnitCost,
		RetailPrice:       req.RetailPrice,
		LowStockThreshold: req.LowStockThreshold,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// SetListings godoc
// @Summary      Map an item onto external channel identifiers
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        id path string true "Item ID"
// @Param        request body ChannelListingsRequest true "Listings"
// @Success      200 {object} dto.Response{data=appcatalog.ItemView}
// @Router       /catalog/items/{id}/listings [put]
func (h *CatalogHandler) SetListings(c *gin.Context) {
	var req ChannelListingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	itemID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	view, err := h.catalogService.SetListings(c.Request.Context(), tenantID, itemID, req.toDomain())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// AdjustQuantity godoc
// @Summary      Adjust stock on hand by a signed delta
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        id path string true "Item ID"
// @Param        request body AdjustQuantityRequest true "Delta"
// @Success      200 {object} dto.Response{data=appcatalog.ItemView}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /catalog/items/{id}/quantity [post]
func (h *CatalogHandler) AdjustQuantity(c *gin.Context) {
	var req AdjustQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	itemID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	view, err := h.catalogService.AdjustQuantity(c.Request.Context(), appcatalog.AdjustQuantityInput{
		TenantID: tenantID,
		ItemID:   itemID,
		Delta:    req.Delta,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, view)
}

// ActivateItem godoc
// @Summary      Return an item to sale
// @Tags         catalog
// @Param        id path string true "Item ID"
// @Success      204
// @Router       /catalog/items/{id}/activate [post]
func (h *CatalogHandler) ActivateItem(c *gin.Context) {
	h.setItemActive(c, true)
}

// DeactivateItem godoc
// @Summary      Take an item off sale
// @Tags         catalog
// @Param        id path string true "Item ID"
// @Success      204
// @Router       /catalog/items/{id}/deactivate [post]
func (h *CatalogHandler) DeactivateItem(c *gin.Context) {
	h.setItemActive(c, false)
}

func (h *CatalogHandler) setItemActive(c *gin.Context, active bool) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	itemID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.catalogService.SetItemActive(c.Request.Context(), tenantID, itemID, active); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// DeleteItem godoc
// @Summary      Delete a catalog item
// @Tags         catalog
// @Param        id path string true "Item ID"
// @Success      204
// @Router       /catalog/items/{id} [delete]
func (h *CatalogHandler) DeleteItem(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	itemID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.catalogService.DeleteItem(c.Request.Context(), tenantID, itemID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
