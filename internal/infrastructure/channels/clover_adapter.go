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

// maxResponseSize is the maximum allowed response size from a channel API (10MB)
const maxResponseSize = 10 * 1024 * 1024

// CloverAdapter implements the channel.Platform interface for the Clover POS
type CloverAdapter struct {
	config     *CloverConfig
	httpClient *http.Client

	// tenantConfigs stores per-tenant configurations
	tenantConfigs map[uuid.UUID]*CloverConfig
	mu            sync.RWMutex // Protects tenantConfigs map
}

// NewCloverAdapter creates a new Clover adapter with the given default configuration.
// A nil config is allowed; tenants must then be configured individually.
func NewCloverAdapter(config *CloverConfig) (*CloverAdapter, error) {
	if config != nil {
		if err := config.Validate(); err != nil {
			return nil, err
		}
	}
	timeout := 30 * time.Second
	if config != nil {
		timeout = time.Duration(config.TimeoutSeconds) * time.Second
	}
	return &CloverAdapter{
		config:        config,
		httpClient:    &http.Client{Timeout: timeout},
		tenantConfigs: make(map[uuid.UUID]*CloverConfig),
	}, nil
}

// SetTenantConfig sets the configuration for a specific tenant
func (a *CloverAdapter) SetTenantConfig(tenantID uuid.UUID, config *CloverConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.tenantConfigs[tenantID] = config
	return nil
}

func (a *CloverAdapter) getTenantConfig(tenantID uuid.UUID) (*CloverConfig, error) {
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
func (a *CloverAdapter) Code() channel.PlatformCode {
	return channel.PlatformClover
}

// PullOrders pulls orders created within the request window
func (a *CloverAdapter) PullOrders(ctx context.Context, req channel.OrderPullRequest) ([]channel.PlatformOrder, bool, error) {
	if err := req.Validate(); err != nil {
		return nil, false, err
	}
	config, err := a.getTenantConfig(req.TenantID)
	if err != nil {
		return nil, false, err
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}
	offset := 0
	if req.Page > 1 {
		offset = (req.Page - 1) * pageSize
	}

	// Clover filters use millisecond epoch timestamps
	query := url.Values{}
	query.Add("filter", fmt.Sprintf("clientCreatedTime>=%d", req.From.UnixMilli()))
	query.Add("filter", fmt.Sprintf("clientCreatedTime<=%d", req.To.UnixMilli()))
	query.Set("expand", "lineItems,discounts,customers")
	query.Set("limit", strconv.Itoa(pageSize))
	query.Set("offset", strconv.Itoa(offset))

	path := fmt.Sprintf("/v3/merchants/%s/orders?%s", config.MerchantID, query.Encode())
	respBody, err := a.doRequest(ctx, config, http.MethodGet, path, nil)
	if err != nil {
		return nil, false, err
	}

	var resp CloverOrderListResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, false, fmt.Errorf("clover: failed to parse order list: %w", err)
	}

	orders := make([]channel.PlatformOrder, 0, len(resp.Elements))
	for i := range resp.Elements {
		orders = append(orders, a.convertOrder(&resp.Elements[i]))
	}

	// A full page means another page may exist
	hasMore := len(resp.Elements) == pageSize
	return orders, hasMore, nil
}

// GetOrder retrieves a single order by its Clover ID
func (a *CloverAdapter) GetOrder(ctx context.Context, tenantID uuid.UUID, platformOrderID string) (*channel.PlatformOrder, error) {
	config, err := a.getTenantConfig(tenantID)
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/v3/merchants/%s/orders/%s?expand=lineItems,discounts,customers",
		config.MerchantID, url.PathEscape(platformOrderID))
	respBody, err := a.doRequest(ctx, config, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var order CloverOrder
	if err := json.Unmarshal(respBody, &order); err != nil {
		return nil, fmt.Errorf("clover: failed to parse order: %w", err)
	}

	converted := a.convertOrder(&order)
	return &converted, nil
}

// PushInventory updates stock counts on the Clover inventory
func (a *CloverAdapter) PushInventory(ctx context.Context, tenantID uuid.UUID, levels []channel.InventoryLevel) error {
	config, err := a.getTenantConfig(tenantID)
	if err != nil {
		return err
	}

	for _, level := range levels {
		if level.ListingID == "" {
			continue
		}
		body, err := json.Marshal(CloverItemStock{Quantity: float64(level.Quantity)})
		if err != nil {
			return fmt.Errorf("clover: failed to encode stock update: %w", err)
		}
		path := fmt.Sprintf("/v3/merchants/%s/item_stocks/%s",
			config.MerchantID, url.PathEscape(level.ListingID))
		if _, err := a.doRequest(ctx, config, http.MethodPost, path, body); err != nil {
			return fmt.Errorf("clover: stock update for item %s failed: %w", level.ListingID, err)
		}
	}
	return nil
}

// doRequest performs an authenticated HTTP request against the Clover API
func (a *CloverAdapter) doRequest(ctx context.Context, config *CloverConfig, method, path string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, config.BaseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("clover: failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+config.APIToken)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", channel.ErrPlatformUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("clover: failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, channel.ErrInvalidCredentials
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, channel.ErrRateLimited
	case resp.StatusCode >= 400:
		return nil, fmt.Errorf("clover: HTTP %d: %s", resp.StatusCode, truncate(respBody, 200))
	}
	return respBody, nil
}

// convertOrder converts a Clover order to the normalized platform order
func (a *CloverAdapter) convertOrder(o *CloverOrder) channel.PlatformOrder {
	order := channel.PlatformOrder{
		PlatformOrderID: o.ID,
		Status:          mapCloverStatus(o),
		Total:           centsToDecimal(o.Total),
		Currency:        o.Currency,
		PlacedAt:        time.UnixMilli(o.CreatedTime).UTC(),
	}
	if o.Currency == "" {
		order.Currency = "USD"
	}
	if o.ClientCreatedTime > 0 {
		order.PlacedAt = time.UnixMilli(o.ClientCreatedTime).UTC()
	}

	if len(o.Customers.Elements) > 0 {
		c := o.Customers.Elements[0]
		order.BuyerName = strings.TrimSpace(c.FirstName + " " + c.LastName)
		if len(c.EmailAddresses.Elements) > 0 {
			order.BuyerEmail = c.EmailAddresses.Elements[0].EmailAddress
		}
	}

	tax := decimal.Zero
	for _, line := range o.LineItems.Elements {
		qty := line.UnitQty
		if qty <= 0 {
			qty = 1
		}
		unitPrice := centsToDecimal(line.Price)
		lineTotal := unitPrice.Mul(decimal.NewFromInt(qty))

		// Clover represents a 7.5% rate as 750000 (rate / 1e7 = fraction)
		for _, tr := range line.TaxRates.Elements {
			fraction := decimal.New(tr.Rate, -7)
			tax = tax.Add(lineTotal.Mul(fraction))
		}

		order.Items = append(order.Items, channel.PlatformOrderItem{
			ListingID: line.Item.ID,
			Name:      line.Name,
			Quantity:  int(qty),
			UnitPrice: unitPrice,
			LineTotal: lineTotal,
		})
	}
	order.Tax = tax.Round(2)

	for _, d := range o.Discounts.Elements {
		if d.Amount < 0 {
			order.Discount = order.Discount.Add(centsToDecimal(-d.Amount))
		}
	}

	if rawBytes, err := json.Marshal(o); err == nil {
		order.Raw = string(rawBytes)
	}
	return order
}

// mapCloverStatus maps Clover order state to the normalized status
func mapCloverStatus(o *CloverOrder) channel.OrderStatus {
	switch o.PaymentState {
	case "PAID":
		return channel.OrderStatusPaid
	case "REFUNDED", "PARTIALLY_REFUNDED":
		return channel.OrderStatusRefunded
	}
	switch o.State {
	case "open":
		return channel.OrderStatusPending
	case "locked":
		return channel.OrderStatusCompleted
	}
	return channel.OrderStatusUnknown
}

// truncate clips a response body for inclusion in error messages
func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}

// Ensure CloverAdapter implements the Platform interface
var _ channel.Platform = (*CloverAdapter)(nil)
