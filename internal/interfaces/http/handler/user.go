package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appidentity "github.com/pinehillfarm/backend/internal/application/identity"
	"github.com/pinehillfarm/backend/internal/domain/identity"
	"github.com/pinehillfarm/backend/internal/interfaces/http/dto"
)

// UserHandler handles staff account management
type UserHandler struct {
	BaseHandler
	userService *appidentity.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *appidentity.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateUserRequest is the staff creation payload
type CreateUserRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8,max=72"`
	Role      string `json:"role" binding:"required,oneof=admin manager employee"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Position  string `json:"position"`
	Active    bool   `json:"active"`
}

// UpdateUserRequest is the staff profile update payload
type UpdateUserRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Position  string `json:"position"`
}

// AssignRoleRequest is the role change payload
type AssignRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin manager employee"`
}

// ResetPasswordRequest is the admin password reset payload
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}

// ListUsersRequest holds the staff listing filters
type ListUsersRequest struct {
	dto.ListRequest
	Role   string `form:"role" binding:"omitempty,oneof=admin manager employee"`
	Status string `form:"status" binding:"omitempty,oneof=pending active locked deactivated"`
}

// Create godoc
// @Summary      Create a staff account
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body CreateUserRequest true "Account"
// @Success      201 {object} dto.Response{data=identity.UserInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	info, err := h.userService.CreateUser(c.Request.Context(), appidentity.CreateUserInput{
		TenantID:  tenantID,
		Email:     req.Email,
		Password:  req.Password,
		Role:      identity.Role(req.Role),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Position:  req.Position,
		Active:    req.Active,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, info)
}

// List godoc
// @Summary      List staff accounts
// @Tags         users
// @Produce      json
// @Param        page query int false "Page"
// @Param        page_size query int false "Page size"
// @Param        role query string false "Role filter"
// @Param        status query string false "Status filter"
// @Param        search query string false "Name or email search"
// @Success      200 {object} dto.Response{data=[]identity.UserInfo}
// @Router       /users [get]
func (h *UserHandler) List(c *gin.Context) {
	var req ListUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}
	req.Normalize()

	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}

	result, err := h.userService.ListUsers(c.Request.Context(), appidentity.ListUsersInput{
		TenantID: tenantID,
		Page:     req.Page,
		PageSize: req.PageSize,
		Role:     identity.Role(req.Role),
		Status:   identity.UserStatus(req.Status),
		Search:   req.Search,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Users, result.Total, req.Page, req.PageSize)
}

// Get godoc
// @Summary      Get a staff account
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200 {object} dto.Response{data=identity.UserInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	userID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	info, err := h.userService.GetUser(c.Request.Context(), tenantID, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, info)
}

// Update godoc
// @Summary      Update a staff profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id path string true "User ID"
// @Param        request body UpdateUserRequest true "Profile"
// @Success      200 {object} dto.Response{data=identity.UserInfo}
// @Router       /users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	userID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	info, err := h.userService.UpdateUser(c.Request.Context(), appidentity.UpdateUserInput{
		UserID:    userID,
		TenantID:  tenantID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Position:  req.Position,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, info)
}

// AssignRole godoc
// @Summary      Change a staff member's role
// @Tags         users
// @Accept       json
// @Param        id path string true "User ID"
// @Param        request body AssignRoleRequest true "Role"
// @Success      204
// @Router       /users/{id}/role [put]
func (h *UserHandler) AssignRole(c *gin.Context) {
	var req AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	userID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.userService.AssignRole(c.Request.Context(), tenantID, userID, identity.Role(req.Role)); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Activate godoc
// @Summary      Activate a staff account
// @Tags         users
// @Param        id path string true "User ID"
// @Success      204
// @Router       /users/{id}/activate [post]
func (h *UserHandler) Activate(c *gin.Context) {
	h.lifecycle(c, h.userService.ActivateUser)
}

// Deactivate godoc
// @Summary      Deactivate a staff account
// @Tags         users
// @Param        id path string true "User ID"
// @Success      204
// @Router       /users/{id}/deactivate [post]
func (h *UserHandler) Deactivate(c *gin.Context) {
	h.lifecycle(c, h.userService.DeactivateUser)
}

// Unlock godoc
// @Summary      Clear a login lockout
// @Tags         users
// @Param        id path string true "User ID"
// @Success      204
// @Router       /users/{id}/unlock [post]
func (h *UserHandler) Unlock(c *gin.Context) {
	h.lifecycle(c, h.userService.UnlockUser)
}

// ResetPassword godoc
// @Summary      Set a new password for a staff account
// @Tags         users
// @Accept       json
// @Param        id path string true "User ID"
// @Param        request body ResetPasswordRequest true "New password"
// @Success      204
// @Router       /users/{id}/password [put]
func (h *UserHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	userID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := h.userService.ResetPassword(c.Request.Context(), tenantID, userID, req.NewPassword); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *UserHandler) lifecycle(c *gin.Context, op func(ctx context.Context, tenantID, userID uuid.UUID) error) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	userID, ok := h.pathID(c, "id")
	if !ok {
		return
	}

	if err := op(c.Request.Context(), tenantID, userID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
