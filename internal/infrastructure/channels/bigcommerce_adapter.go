package channels

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pinehillfarm/backend/internal/domain/channel"
)

// BigCommerceAdapter implements the channel.Platform interface for BigCommerce
type BigCommerceAdapter struct {
	config     *BigCommerceConfig
	httpClient *http.Client

	// tenantConfigs stores per-tenant configurations
	tenantConfigs map[uuid.UUID]*BigCommerceConfig
	mu            sync.RWMutex // Protects tenantConfigs map
}

// NewBigCommerceAdapter creates a new BigCommerce adapter with the given
// default configuration. A nil config is allowed.
func NewBigCommerceAdapter(config *BigCommerceConfig) (*BigCommerceAdapter, error) {
	if config != nil {
		if err := config.Validate(); err != nil {
			return nil, err
		}
	}
	timeout := 30 * time.Second
	if config != nil {
		timeout = time.Duration(config.TimeoutSeconds) * time.Second
	}
	return &BigCommerceAdapter{
		config:        config,
		httpClient:    &http.Client{Timeout: timeout},
		tenantConfigs: make(map[uuid.UUID]*BigCommerceConfig),
	}, nil
}

// SetTenantConfig sets the configuration for a specific tenant
func (a *BigCommerceAdapter) SetTenantConfig(tenantID uuid.UUID, config *BigCommerceConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.tenantConfigs[tenantID] = config
	return nil
}

func (a *BigCommerceAdapter) getTenantConfig(tenantID uuid.UUID) (*BigCommerceConfig, error) {
	a.mu.RLock()
	config, ok := a.tenantConfigs[tenantID]
	a.mu.RUnlock()
	if ok {
		return config, nil
	}
	if a.config != nil {
		return a.config, nil
	}
	return nil, channel.ErrPlatformNotConfigured
}

// Code returns the platform code this adapter handles
func (a *BigCommerceAdapter) Code() channel.PlatformCode {
	return channel.PlatformBigCommerce
}

// PullOrders pulls orders created within the request window. Each order
// requires a second call for its product lines; the v2 orders API does not
// embed them.
func (a *BigCommerceAdapter) PullOrders(ctx context.Context, req channel.OrderPullRequest) ([]channel.PlatformOrder, bool, error) {
	if err := req.Validate(); err != nil {
		return nil, false, err
	}
	config, err := a.getTenantConfig(req.TenantID)
	if err != nil {
		return nil, false, err
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}
	page := req.Page
	if page <= 0 {
		page = 1
	}

	query := url.Values{}
	query.Set("min_date_created", req.From.UTC().Format(time.RFC1123Z))
	query.Set("max_date_created", req.To.UTC().Format(time.RFC1123Z))
	query.Set("sort", "date_created:asc")
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(pageSize))

	path := fmt.Sprintf("/stores/%s/v2/orders?%s", config.StoreHash, query.Encode())
	respBody, status, err := a.doRequest(ctx, config, http.MethodGet, path, nil)
	if err != nil {
		return nil, false, err
	}
	// v2 returns 204 with an empty body when no orders match
	if status == http.StatusNoContent || len(respBody) == 0 {
		return nil, false, nil
	}

	var raw []BigCommerceOrder
	if err := json.Unmarshal(respBody, &raw); err != nil {
		return nil, false, fmt.Errorf("bigcommerce: failed to parse order list: %w", err)
	}

	orders := make([]channel.PlatformOrder, 0, len(raw))
	for i := range raw {
		if raw[i].IsDeleted {
			continue
		}
		order, err := a.convertOrder(ctx, config, &raw[i])
		if err != nil {
			return nil, false, err
		}
		orders = append(orders, *order)
	}

	hasMore := len(raw) == pageSize
	return orders, hasMore, nil
}

// GetOrder retrieves a single order by its BigCommerce ID
func (a *BigCommerceAdapter) GetOrder(ctx context.Context, tenantID uuid.UUID, platformOrderID string) (*channel.PlatformOrder, error) {
	config, err := a.getTenantConfig(tenantID)
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/stores/%s/v2/orders/%s", config.StoreHash, url.PathEscape(platformOrderID))
	respBody, _, err := a.doRequest(ctx, config, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var raw BigCommerceOrder
	if err := json.Unmarshal(respBody, &raw); err != nil {
		return nil, fmt.Errorf("bigcommerce: failed to parse order: %w", err)
	}
	return a.convertOrder(ctx, config, &raw)
}

// PushInventory updates inventory levels on the BigCommerce catalog
func (a *BigCommerceAdapter) PushInventory(ctx context.Context, tenantID uuid.UUID, levels []channel.InventoryLevel) error {
	config, err := a.getTenantConfig(tenantID)
	if err != nil {
		return err
	}

	for _, level := range levels {
		if level.ListingID == "" {
			continue
		}
		body, err := json.Marshal(BigCommerceProductUpdate{InventoryLevel: level.Quantity})
		if err != nil {
			return fmt.Errorf("bigcommerce: failed to encode inventory update: %w", err)
		}
		path := fmt.Sprintf("/stores/%s/v3/catalog/products/%s",
			config.StoreHash, url.PathEscape(level.ListingID))
		if _, _, err := a.doRequest(ctx, config, http.MethodPut, path, body); err != nil {
			return fmt.Errorf("bigcommerce: inventory update for product %s failed: %w", level.ListingID, err)
		}
	}
	return nil
}

// fetchOrderProducts loads the product lines of one order
func (a *BigCommerceAdapter) fetchOrderProducts(ctx context.Context, config *BigCommerceConfig, orderID int) ([]BigCommerceOrderProduct, error) {
	path := fmt.Sprintf("/stores/%s/v2/orders/%d/products?limit=250", config.StoreHash, orderID)
	respBody, status, err := a.doRequest(ctx, config, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNoContent || len(respBody) == 0 {
		return nil, nil
	}

	var products []BigCommerceOrderProduct
	if err := json.Unmarshal(respBody, &products); err != nil {
		return nil, fmt.Errorf("bigcommerce: failed to parse order products: %w", err)
	}
	return products, nil
}

// doRequest performs an authenticated HTTP request against the BigCommerce API
func (a *BigCommerceAdapter) doRequest(ctx context.Context, config *BigCommerceConfig, method, path string, body []byte) ([]byte, int, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, config.BaseURL+path, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("bigcommerce: failed to create request: %w", err)
	}
	req.Header.Set("X-Auth-Token", config.AccessToken)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", channel.ErrPlatformUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("bigcommerce: failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, resp.StatusCode, channel.ErrInvalidCredentials
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, resp.StatusCode, channel.ErrRateLimited
	case resp.StatusCode >= 400:
		return nil, resp.StatusCode, fmt.Errorf("bigcommerce: HTTP %d: %s", resp.StatusCode, truncate(respBody, 200))
	}
	return respBody, resp.StatusCode, nil
}

// convertOrder converts a BigCommerce order and its product lines to the
// normalized platform order
func (a *BigCommerceAdapter) convertOrder(ctx context.Context, config *BigCommerceConfig, o *BigCommerceOrder) (*channel.PlatformOrder, error) {
	order := &channel.PlatformOrder{
		PlatformOrderID: strconv.Itoa(o.ID),
		Status:          mapBigCommerceStatus(o.StatusID),
		BuyerName:       strings.TrimSpace(o.BillingAddress.FirstName + " " + o.BillingAddress.LastName),
		BuyerEmail:      o.BillingAddress.Email,
		Total:           parseDecimal(o.TotalIncTax),
		Tax:             parseDecimal(o.TotalTax),
		Shipping:        parseDecimal(o.ShippingCostIncTax),
		Discount:        parseDecimal(o.DiscountAmount).Add(parseDecimal(o.CouponDiscount)),
		Currency:        o.CurrencyCode,
	}
	if order.Currency == "" {
		order.Currency = "USD"
	}

	if t, err := time.Parse(time.RFC1123Z, o.DateCreated); err == nil {
		order.PlacedAt = t.UTC()
	}

	products, err := a.fetchOrderProducts(ctx, config, o.ID)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		unitPrice := parseDecimal(p.BasePrice)
		lineTotal := parseDecimal(p.TotalExTax)
		if lineTotal.IsZero() {
			lineTotal = unitPrice.Mul(decimal.NewFromInt(int64(p.Quantity)))
		}
		order.Items = append(order.Items, channel.PlatformOrderItem{
			ListingID: strconv.Itoa(p.ProductID),
			SKU:       p.SKU,
			Name:      p.Name,
			Quantity:  p.Quantity,
			UnitPrice: unitPrice,
			LineTotal: lineTotal,
		})
	}

	if rawBytes, err := json.Marshal(o); err == nil {
		order.Raw = string(rawBytes)
	}
	return order, nil
}

// mapBigCommerceStatus maps a v2 status ID to the normalized status
func mapBigCommerceStatus(statusID int) channel.OrderStatus {
	switch statusID {
	case bigCommerceStatusPending, bigCommerceStatusAwaitingPayment, bigCommerceStatusManualVerification:
		return channel.OrderStatusPending
	case bigCommerceStatusAwaitingShipment, bigCommerceStatusAwaitingFulfilment, bigCommerceStatusAwaitingPickup:
		return channel.OrderStatusPaid
	case bigCommerceStatusShipped, bigCommerceStatusPartiallyShipped:
		return channel.OrderStatusShipped
	case bigCommerceStatusCompleted:
		return channel.OrderStatusCompleted
	case bigCommerceStatusCancelled, bigCommerceStatusDeclined:
		return channel.OrderStatusCancelled
	case bigCommerceStatusRefunded, bigCommerceStatusPartiallyRefunded, bigCommerceStatusDisputed:
		return channel.OrderStatusRefunded
	default:
		return channel.OrderStatusUnknown
	}
}

// Ensure BigCommerceAdapter implements the Platform interface
var _ channel.Platform = (*BigCommerceAdapter)(nil)
