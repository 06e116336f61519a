package announcement

import (
	"context"

	"github.com/google/uuid"
	"github.com/pinehillfarm/backend/internal/domain/identity"
	"github.com/pinehillfarm/backend/internal/domain/shared"
)

// Repository defines the interface for announcement persistence
type Repository interface {
	Create(ctx context.Context, a *Announcement) error
	Update(ctx context.Context, a *Announcement) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Announcement, error)
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*Announcement, int64, error)

	// FindVisible returns published announcements whose audience includes
	// the role, newest first
	FindVisible(ctx context.Context, tenantID uuid.UUID, role identity.Role, limit int) ([]*Announcement, error)
}
