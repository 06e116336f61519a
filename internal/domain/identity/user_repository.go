package identity

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail finds a user by email across tenants (login path)
	FindByEmail(ctx context.Context, email string) (*User, error)

	// FindAll returns users for a tenant with pagination
	FindAll(ctx context.Context, tenantID uuid.UUID, filter UserFilter) ([]*User, int64, error)

	// FindByRole returns all users of a tenant holding the given role
	FindByRole(ctx context.Context, tenantID uuid.UUID, role Role) ([]*User, error)

	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Count(ctx context.Context, tenantID uuid.UUID) (int64, error)
}

// UserFilter contains filter options for querying users
type UserFilter struct {
	Keyword string
	Status  *UserStatus
	Role    *Role

	Page     int
	PageSize int

	SortBy    string
	SortOrder string
}

// NewUserFilter creates a filter with default values
func NewUserFilter() UserFilter {
	return UserFilter{
		Page:      1,
		PageSize:  20,
		SortBy:    "created_at",
		SortOrder: "desc",
	}
}

// Offset returns the offset for pagination
func (f UserFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

// Limit returns the limit for pagination
func (f UserFilter) Limit() int {
	if f.PageSize <= 0 {
		return 20
	}
	if f.PageSize > 100 {
		return 100
	}
	return f.PageSize
}
