package identity

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pinehillfarm/backend/internal/domain/identity"
	"github.com/pinehillfarm/backend/internal/domain/shared"
)

// UserService handles staff account management
type UserService struct {
	userRepo identity.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo identity.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// CreateUser creates a staff account for the tenant
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*UserInfo, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		s.logger.Error("Failed to check email uniqueness", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create user")
	}
	if exists {
		return nil, shared.NewDomainError("EMAIL_TAKEN", "A user with this email already exists")
	}

	var user *identity.User
	if input.Active {
		user, err = identity.NewActiveUser(input.TenantID, input.Email, input.Password, input.Role)
	} else {
		user, err = identity.NewUser(input.TenantID, input.Email, input.Password, input.Role)
	}
	if err != nil {
		return nil, err
	}

	if err := user.SetName(input.FirstName, input.LastName); err != nil {
		return nil, err
	}
	if err := user.SetPhone(input.Phone); err != nil {
		return nil, err
	}
	if err := user.SetPosition(input.Position); err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create user")
	}

	s.logger.Info("User created",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email),
		zap.String("role", string(user.Role)))

	info := userInfo(user)
	return &info, nil
}

// GetUser returns a staff account by ID, scoped to the tenant
func (s *UserService) GetUser(ctx context.Context, tenantID, userID uuid.UUID) (*UserInfo, error) {
	user, err := s.findTenantUser(ctx, tenantID, userID)
	if err != nil {
		return nil, err
	}
	info := userInfo(user)
	return &info, nil
}

// ListUsers returns a page of staff accounts for the tenant
func (s *UserService) ListUsers(ctx context.Context, input ListUsersInput) (*ListUsersResult, error) {
	filter := identity.NewUserFilter()
	if input.Page > 0 {
		filter.Page = input.Page
	}
	if input.PageSize > 0 {
		filter.PageSize = input.PageSize
	}
	if input.Role != "" {
		role := input.Role
		filter.Role = &role
	}
	if input.Status != "" {
		status := input.Status
		filter.Status = &status
	}
	filter.Keyword = input.Search

	users, total, err := s.userRepo.FindAll(ctx, input.TenantID, filter)
	if err != nil {
		s.logger.Error("Failed to list users", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list users")
	}

	result := &ListUsersResult{Total: total, Users: make([]UserInfo, 0, len(users))}
	for _, u := range users {
		result.Users = append(result.Users, userInfo(u))
	}
	return result, nil
}

// UpdateUser updates profile fields of a staff account
func (s *UserService) UpdateUser(ctx context.Context, input UpdateUserInput) (*UserInfo, error) {
	user, err := s.findTenantUser(ctx, input.TenantID, input.UserID)
	if err != nil {
		return nil, err
	}

	if err := user.SetName(input.FirstName, input.LastName); err != nil {
		return nil, err
	}
	if err := user.SetPhone(input.Phone); err != nil {
		return nil, err
	}
	if err := user.SetPosition(input.Position); err != nil {
		return nil, err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to update user", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update user")
	}

	info := userInfo(user)
	return &info, nil
}

// AssignRole changes a staff member's role
func (s *UserService) AssignRole(ctx context.Context, tenantID, userID uuid.UUID, role identity.Role) error {
	user, err := s.findTenantUser(ctx, tenantID, userID)
	if err != nil {
		return err
	}

	if err := user.AssignRole(role); err != nil {
		return err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to persist role change", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to change role")
	}

	s.logger.Info("Role assigned",
		zap.String("user_id", userID.String()),
		zap.String("role", string(role)))
	return nil
}

// ActivateUser activates a pending or deactivated account
func (s *UserService) ActivateUser(ctx context.Context, tenantID, userID uuid.UUID) error {
	user, err := s.findTenantUser(ctx, tenantID, userID)
	if err != nil {
		return err
	}
	if err := user.Activate(); err != nil {
		return err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to activate user", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to activate user")
	}
	return nil
}

// DeactivateUser deactivates a staff account
func (s *UserService) DeactivateUser(ctx context.Context, tenantID, userID uuid.UUID) error {
	user, err := s.findTenantUser(ctx, tenantID, userID)
	if err != nil {
		return err
	}
	if err := user.Deactivate(); err != nil {
		return err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to deactivate user", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to deactivate user")
	}
	return nil
}

// UnlockUser clears a lockout
func (s *UserService) UnlockUser(ctx context.Context, tenantID, userID uuid.UUID) error {
	user, err := s.findTenantUser(ctx, tenantID, userID)
	if err != nil {
		return err
	}
	if err := user.Unlock(); err != nil {
		return err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to unlock user", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to unlock user")
	}
	return nil
}

// ResetPassword sets a new password without checking the old one
func (s *UserService) ResetPassword(ctx context.Context, tenantID, userID uuid.UUID, newPassword string) error {
	user, err := s.findTenantUser(ctx, tenantID, userID)
	if err != nil {
		return err
	}
	if err := user.SetPassword(newPassword); err != nil {
		return err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to reset password", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to reset password")
	}

	s.logger.Info("Password reset", zap.String("user_id", userID.String()))
	return nil
}

func (s *UserService) findTenantUser(ctx context.Context, tenantID, userID uuid.UUID) (*identity.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}
	if user.TenantID != tenantID {
		// Same answer as a nonexistent user so tenants cannot probe each other
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}
	return user, nil
}
