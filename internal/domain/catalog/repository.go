package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/pinehillfarm/backend/internal/domain/shared"
)

// ItemRepository defines the interface for item persistence
type ItemRepository interface {
	Create(ctx context.Context, item *Item) error
	Update(ctx context.Context, item *Item) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)
	FindBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (*Item, error)
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*Item, int64, error)

	// FindLowStock returns active items at or below their threshold
	FindLowStock(ctx context.Context, tenantID uuid.UUID) ([]*Item, error)

	// FindByListing looks an item up by its identifier on a channel.
	// field is one of clover_item_id, bigcommerce_product_id, amazon_sku.
	FindByListing(ctx context.Context, tenantID uuid.UUID, field, value string) (*Item, error)

	ExistsBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (bool, error)
}
