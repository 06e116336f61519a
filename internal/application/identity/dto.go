package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/pinehillfarm/backend/internal/domain/identity"
)

// LoginInput contains the input for user login
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
	User                  UserInfo
}

// UserInfo contains basic user information returned after login
type UserInfo struct {
	ID       uuid.UUID
	TenantID uuid.UUID
	Email    string
	Name     string
	Phone    string
	Role     identity.Role
	Position string
}

// RefreshTokenInput contains the input for token refresh
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenResult contains the result of a token refresh
type RefreshTokenResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
}

// LogoutInput contains the input for user logout
type LogoutInput struct {
	UserID     uuid.UUID
	TokenJTI   string
	TokenTTL   time.Duration
	Everywhere bool // revoke every token issued to the user, not just this one
}

// ChangePasswordInput contains the input for password change
type ChangePasswordInput struct {
	UserID      uuid.UUID
	OldPassword string
	NewPassword string
}

// CreateUserInput contains the input for creating a staff account
type CreateUserInput struct {
	TenantID  uuid.UUID
	Email     string
	Password  string
	Role      identity.Role
	FirstName string
	LastName  string
	Phone     string
	Position  string
	Active    bool // create already activated instead of pending
}

// UpdateUserInput contains the input for updating a staff profile
type UpdateUserInput struct {
	UserID    uuid.UUID
	TenantID  uuid.UUID
	FirstName string
	LastName  string
	Phone     string
	Position  string
}

// ListUsersInput contains paging and filter options for listing staff
type ListUsersInput struct {
	TenantID uuid.UUID
	Page     int
	PageSize int
	Role     identity.Role
	Status   identity.UserStatus
	Search   string
}

// ListUsersResult is a page of staff accounts
type ListUsersResult struct {
	Users []UserInfo
	Total int64
}

// CreateTenantInput contains the input for registering a tenant
type CreateTenantInput struct {
	Code         string
	Name         string
	Timezone     string
	ContactName  string
	ContactEmail string
	ContactPhone string

	// Initial admin account for the tenant
	AdminEmail    string
	AdminPassword string
}

// TenantInfo is the outward view of a tenant
type TenantInfo struct {
	ID           uuid.UUID
	Code         string
	Name         string
	Timezone     string
	ContactName  string
	ContactEmail string
	ContactPhone string
	Active       bool
	CreatedAt    time.Time
}

func userInfo(u *identity.User) UserInfo {
	return UserInfo{
		ID:       u.ID,
		TenantID: u.TenantID,
		Email:    u.Email,
		Name:     u.FullName(),
		Phone:    u.Phone,
		Role:     u.Role,
		Position: u.Position,
	}
}
