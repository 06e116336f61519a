package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pinehillfarm/backend/internal/domain/channel"
	"github.com/pinehillfarm/backend/internal/domain/shared"
	"github.com/pinehillfarm/backend/internal/infrastructure/persistence/models"
)

// GormOrderRepository implements channel.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// saleStatuses are the order statuses counted as revenue. Cancelled and
// refunded orders are excluded from every aggregate.
var saleStatuses = []channel.OrderStatus{
	channel.OrderStatusPending,
	channel.OrderStatusPaid,
	channel.OrderStatusShipped,
	channel.OrderStatusCompleted,
	channel.OrderStatusUnknown,
}

// Create inserts a new order with its lines
func (r *GormOrderRepository) Create(ctx context.Context, order *channel.ChannelOrder) error {
	model := models.ChannelOrderModelFromDomain(order)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Update saves an order with optimistic locking. Lines are replaced
// because a re-pull may change them.
func (r *GormOrderRepository) Update(ctx context.Context, order *channel.ChannelOrder) error {
	model := models.ChannelOrderModelFromDomain(order)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.
			Model(&models.ChannelOrderModel{}).
			Where("id = ? AND version = ?", order.ID, order.Version-1).
			Select("*").
			Omit("id", "created_at", "Items").
			Updates(model)

		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}

		if err := tx.Delete(&models.ChannelOrderItemModel{}, "order_id = ?", order.ID).Error; err != nil {
			return err
		}
		if len(model.Items) > 0 {
			if err := tx.Create(&model.Items).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindByID finds an order by its ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*channel.ChannelOrder, error) {
	var model models.ChannelOrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPlatformOrderID is the idempotency lookup used during sync
func (r *GormOrderRepository) FindByPlatformOrderID(ctx context.Context, tenantID uuid.UUID, platform channel.PlatformCode, platformOrderID string) (*channel.ChannelOrder, error) {
	var model models.ChannelOrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("tenant_id = ? AND platform = ? AND platform_order_id = ?", tenantID, platform, platformOrderID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns a page of orders for a tenant
func (r *GormOrderRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter channel.OrderFilter) ([]*channel.ChannelOrder, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ChannelOrderModel{}).Where("tenant_id = ?", tenantID)

	if filter.Platform != nil {
		query = query.Where("platform = ?", *filter.Platform)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.From != nil {
		query = query.Where("placed_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("placed_at <= ?", *filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var orderModels []models.ChannelOrderModel
	if err := query.
		Preload("Items").
		Order("placed_at DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&orderModels).Error; err != nil {
		return nil, 0, err
	}

	orders := make([]*channel.ChannelOrder, len(orderModels))
	for i := range orderModels {
		orders[i] = orderModels[i].ToDomain()
	}
	return orders, total, nil
}

// SalesByDay aggregates revenue per day for reporting. Revenue is total
// minus tax, matching the domain's Revenue definition.
func (r *GormOrderRepository) SalesByDay(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]channel.DailySales, error) {
	var results []channel.DailySales
	err := r.db.WithContext(ctx).
		Model(&models.ChannelOrderModel{}).
		Select("DATE(placed_at) AS day, COUNT(*) AS orders, COALESCE(SUM(total - tax), 0) AS revenue").
		Where("tenant_id = ? AND placed_at >= ? AND placed_at <= ? AND status IN ?",
			tenantID, from, to, saleStatuses).
		Group("DATE(placed_at)").
		Order("day ASC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// SalesByPlatform aggregates totals per channel within the window
func (r *GormOrderRepository) SalesByPlatform(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]channel.PlatformSales, error) {
	var results []channel.PlatformSales
	err := r.db.WithContext(ctx).
		Model(&models.ChannelOrderModel{}).
		Select("platform, COUNT(*) AS orders, COALESCE(SUM(total - tax), 0) AS revenue, COALESCE(SUM(tax), 0) AS tax, COALESCE(SUM(channel_fee), 0) AS fees").
		Where("tenant_id = ? AND placed_at >= ? AND placed_at <= ? AND status IN ?",
			tenantID, from, to, saleStatuses).
		Group("platform").
		Order("revenue DESC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

// TopItems returns the best selling lines within the window
func (r *GormOrderRepository) TopItems(ctx context.Context, tenantID uuid.UUID, from, to time.Time, limit int) ([]channel.ItemSales, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	var results []channel.ItemSales
	err := r.db.WithContext(ctx).
		Model(&models.ChannelOrderItemModel{}).
		Select("channel_order_items.item_id, channel_order_items.sku, MAX(channel_order_items.name) AS name, COALESCE(SUM(channel_order_items.quantity), 0) AS quantity, COALESCE(SUM(channel_order_items.line_total), 0) AS revenue").
		Joins("JOIN channel_orders ON channel_orders.id = channel_order_items.order_id").
		Where("channel_orders.tenant_id = ? AND channel_orders.placed_at >= ? AND channel_orders.placed_at <= ? AND channel_orders.status IN ?",
			tenantID, from, to, saleStatuses).
		Group("channel_order_items.item_id, channel_order_items.sku").
		Order("quantity DESC").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

var _ channel.OrderRepository = (*GormOrderRepository)(nil)
