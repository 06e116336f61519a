package handler

import (
	"github.com/gin-gonic/gin"

	appidentity "github.com/pinehillfarm/backend/internal/application/identity"
	"github.com/pinehillfarm/backend/internal/interfaces/http/dto"
)

// TenantHandler handles tenant administration
type TenantHandler struct {
	BaseHandler
	tenantService *appidentity.TenantService
}

// NewTenantHandler creates a new tenant handler
func NewTenantHandler(tenantService *appidentity.TenantService) *TenantHandler {
	return &TenantHandler{tenantService: tenantService}
}

// CreateTenantRequest is the tenant onboarding payload
type CreateTenantRequest struct {
	Code          string `json:"code" binding:"required,min=2,max=32"`
	Name          string `json:"name" binding:"required,max=200"`
	Timezone      string `json:"timezone"`
	ContactName   string `json:"contact_name"`
	ContactEmail  string `json:"contact_email" binding:"omitempty,email"`
	ContactPhone  string `json:"contact_phone"`
	AdminEmail    string `json:"admin_email" binding:"required,email"`
	AdminPassword string `json:"admin_password" binding:"required,min=8,max=72"`
}

// UpdateTenantRequest is the tenant profile update payload
type UpdateTenantRequest struct {
	Name         string `json:"name" binding:"required,max=200"`
	Timezone     string `json:"timezone"`
	ContactName  string `json:"contact_name"`
	ContactEmail string `json:"contact_email" binding:"omitempty,email"`
	ContactPhone string `json:"contact_phone"`
}

// Create godoc
// @Summary      Onboard a tenant with its first admin account
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Param        request body CreateTenantRequest true "Tenant"
// @Success      201 {object} dto.Response{data=identity.TenantInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /tenants [post]
func (h *TenantHandler) Create(c *gin.Context) {
	var req CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	info, err := h.tenantService.CreateTenant(c.Request.Context(), appidentity.CreateTenantInput{
		Code:          req.Code,
		Name:          req.Name,
		Timezone:      req.Timezone,
		ContactName:   req.ContactName,
		ContactEmail:  req.ContactEmail,
		ContactPhone:  req.ContactPhone,
		AdminEmail:    req.AdminEmail,
		AdminPassword: req.AdminPassword,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, info)
}

// List godoc
// @Summary      List tenants
// @Tags         tenants
// @Produce      json
// @Param        page query int false "Page"
// @Param        page_size query int false "Page size"
// @Success      200 {object} dto.Response{data=[]identity.TenantInfo}
// @Router       /tenants [get]
func (h *TenantHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}
	req.Normalize()

	tenants, total, err := h.tenantService.ListTenants(c.Request.Context(), req.Page, req.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, tenants, total, req.Page, req.PageSize)
}

// Get godoc
// @Summary      Get a tenant
// @Tags         tenants
// @Produce      json
// @Param        id path string true "Tenant ID"
// @Success      200 {object} dto.Response{data=identity.TenantInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /tenants/{id} [get]
func (h *TenantHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	info, err := h.tenantService.GetTenant(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, info)
}

// Update godoc
// @Summary      Update a tenant profile
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Param        id path string true "Tenant ID"
// @Param        request body UpdateTenantRequest true "Profile"
// @Success      200 {object} dto.Response{data=identity.TenantInfo}
// @Router       /tenants/{id} [put]
func (h *TenantHandler) Update(c *gin.Context) {
	var req UpdateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	info, err := h.tenantService.UpdateTenant(c.Request.Context(), id, req.Name, req.Timezone, req.ContactName, req.ContactEmail, req.ContactPhone)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, info)
}

// Suspend godoc
// @Summary      Suspend a tenant
// @Tags         tenants
// @Param        id path string true "Tenant ID"
// @Success      204
// @Router       /tenants/{id}/suspend [post]
func (h *TenantHandler) Suspend(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.tenantService.SuspendTenant(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Activate godoc
// @Summary      Reactivate a suspended tenant
// @Tags         tenants
// @Param        id path string true "Tenant ID"
// @Success      204
// @Router       /tenants/{id}/activate [post]
func (h *TenantHandler) Activate(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.tenantService.ActivateTenant(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
