package purchase

import (
	"context"

	"github.com/google/uuid"
	"github.com/pinehillfarm/backend/internal/domain/shared"
)

// Repository defines the interface for purchase persistence
type Repository interface {
	Create(ctx context.Context, p *Purchase) error
	Update(ctx context.Context, p *Purchase) error
	FindByID(ctx context.Context, id uuid.UUID) (*Purchase, error)
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*Purchase, int64, error)
	FindByEmployee(ctx context.Context, tenantID, employeeID uuid.UUID) ([]*Purchase, error)
	FindByStatus(ctx context.Context, tenantID uuid.UUID, status Status) ([]*Purchase, error)
}
