package channels

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pinehillfarm/backend/internal/domain/channel"
)

// lwaToken is a cached LWA access token
type lwaToken struct {
	accessToken string
	expiresAt   time.Time
}

// AmazonAdapter implements the channel.Platform interface for the Amazon
// Selling Partner API. LWA access tokens are cached per tenant until shortly
// before expiry.
type AmazonAdapter struct {
	config     *AmazonConfig
	httpClient *http.Client

	// tenantConfigs stores per-tenant configurations
	tenantConfigs map[uuid.UUID]*AmazonConfig
	tokens        map[uuid.UUID]*lwaToken
	mu            sync.RWMutex // Protects tenantConfigs and tokens
}

// NewAmazonAdapter creates a new Amazon adapter with the given default
// configuration. A nil config is allowed.
func NewAmazonAdapter(config *AmazonConfig) (*AmazonAdapter, error) {
	if config != nil {
		if err := config.Validate(); err != nil {
			return nil, err
		}
	}
	timeout := 30 * time.Second
	if config != nil {
		timeout = time.Duration(config.TimeoutSeconds) * time.Second
	}
	return &AmazonAdapter{
		config:        config,
		httpClient:    &http.Client{Timeout: timeout},
		tenantConfigs: make(map[uuid.UUID]*AmazonConfig),
		tokens:        make(map[uuid.UUID]*lwaToken),
	}, nil
}

// SetTenantConfig sets the configuration for a specific tenant
func (a *AmazonAdapter) SetTenantConfig(tenantID uuid.UUID, config *AmazonConfig) error {
	if err := config.Validate(); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.tenantConfigs[tenantID] = config
	delete(a.tokens, tenantID)
	return nil
}

func (a *AmazonAdapter) getTenantConfig(tenantID uuid.UUID) (*AmazonConfig, error) {
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
func (a *AmazonAdapter) Code() channel.PlatformCode {
	return channel.PlatformAmazon
}

// PullOrders pulls orders created within the request window. The SP-API
// paginates with an opaque NextToken; page numbers beyond the first are
// not addressable, so callers should widen the window instead of paging.
func (a *AmazonAdapter) PullOrders(ctx context.Context, req channel.OrderPullRequest) ([]channel.PlatformOrder, bool, error) {
	if err := req.Validate(); err != nil {
		return nil, false, err
	}
	config, err := a.getTenantConfig(req.TenantID)
	if err != nil {
		return nil, false, err
	}

	query := url.Values{}
	query.Set("MarketplaceIds", config.MarketplaceID)
	query.Set("CreatedAfter", req.From.UTC().Format(time.RFC3339))
	query.Set("CreatedBefore", req.To.UTC().Format(time.RFC3339))

	path := "/orders/v0/orders?" + query.Encode()
	respBody, err := a.doRequest(ctx, req.TenantID, config, http.MethodGet, path, nil)
	if err != nil {
		return nil, false, err
	}

	var resp AmazonOrdersResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, false, fmt.Errorf("amazon: failed to parse order list: %w", err)
	}

	orders := make([]channel.PlatformOrder, 0, len(resp.Payload.Orders))
	for i := range resp.Payload.Orders {
		order, err := a.convertOrder(ctx, req.TenantID, config, &resp.Payload.Orders[i])
		if err != nil {
			return nil, false, err
		}
		orders = append(orders, *order)
	}

	return orders, resp.Payload.NextToken != "", nil
}

// GetOrder retrieves a single order by its Amazon order ID
func (a *AmazonAdapter) GetOrder(ctx context.Context, tenantID uuid.UUID, platformOrderID string) (*channel.PlatformOrder, error) {
	config, err := a.getTenantConfig(tenantID)
	if err != nil {
		return nil, err
	}

	path := "/orders/v0/orders/" + url.PathEscape(platformOrderID)
	respBody, err := a.doRequest(ctx, tenantID, config, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var resp AmazonOrderResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("amazon: failed to parse order: %w", err)
	}
	return a.convertOrder(ctx, tenantID, config, &resp.Payload)
}

// PushInventory updates listing quantities via the Listings Items API
func (a *AmazonAdapter) PushInventory(ctx context.Context, tenantID uuid.UUID, levels []channel.InventoryLevel) error {
	config, err := a.getTenantConfig(tenantID)
	if err != nil {
		return err
	}

	for _, level := range levels {
		sku := level.SKU
		if sku == "" {
			sku = level.ListingID
		}
		if sku == "" {
			continue
		}
		patch := AmazonListingsPatchRequest{
			ProductType: "PRODUCT",
			Patches: []AmazonListingsPatch{{
				Op:   "replace",
				Path: "/attributes/fulfillment_availability",
				Value: []interface{}{AmazonFulfillmentAvailability{
					FulfillmentChannelCode: "DEFAULT",
					Quantity:               level.Quantity,
				}},
			}},
		}
		body, err := json.Marshal(patch)
		if err != nil {
			return fmt.Errorf("amazon: failed to encode listings patch: %w", err)
		}
		path := fmt.Sprintf("/listings/2021-08-01/items/%s/%s?marketplaceIds=%s",
			url.PathEscape(config.SellerID), url.PathEscape(sku), config.MarketplaceID)
		if _, err := a.doRequest(ctx, tenantID, config, http.MethodPatch, path, body); err != nil {
			return fmt.Errorf("amazon: listings patch for SKU %s failed: %w", sku, err)
		}
	}
	return nil
}

// getAccessToken returns a valid LWA access token, refreshing when the cached
// one is missing or about to expire
func (a *AmazonAdapter) getAccessToken(ctx context.Context, tenantID uuid.UUID, config *AmazonConfig) (string, error) {
	a.mu.RLock()
	token, ok := a.tokens[tenantID]
	a.mu.RUnlock()
	if ok && time.Until(token.expiresAt) > time.Minute {
		return token.accessToken, nil
	}

	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", config.RefreshToken)
	form.Set("client_id", config.ClientID)
	form.Set("client_secret", config.ClientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, config.AuthURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("amazon: failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", channel.ErrPlatformUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("amazon: failed to read token response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("%w: LWA token exchange returned HTTP %d", channel.ErrInvalidCredentials, resp.StatusCode)
	}

	var tr AmazonTokenResponse
	if err := json.Unmarshal(respBody, &tr); err != nil {
		return "", fmt.Errorf("amazon: failed to parse token response: %w", err)
	}

	a.mu.Lock()
	a.tokens[tenantID] = &lwaToken{
		accessToken: tr.AccessToken,
		expiresAt:   time.Now().Add(time.Duration(tr.ExpiresIn) * time.Second),
	}
	a.mu.Unlock()
	return tr.AccessToken, nil
}

// doRequest performs an authenticated HTTP request against the SP-API
func (a *AmazonAdapter) doRequest(ctx context.Context, tenantID uuid.UUID, config *AmazonConfig, method, path string, body []byte) ([]byte, error) {
	accessToken, err := a.getAccessToken(ctx, tenantID, config)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, config.BaseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("amazon: failed to create request: %w", err)
	}
	req.Header.Set("x-amz-access-token", accessToken)
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
		return nil, fmt.Errorf("amazon: failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, channel.ErrInvalidCredentials
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, channel.ErrRateLimited
	case resp.StatusCode >= 400:
		return nil, fmt.Errorf("amazon: HTTP %d: %s", resp.StatusCode, truncate(respBody, 200))
	}
	return respBody, nil
}

// fetchOrderItems loads the item lines of one order
func (a *AmazonAdapter) fetchOrderItems(ctx context.Context, tenantID uuid.UUID, config *AmazonConfig, orderID string) ([]AmazonOrderItem, error) {
	path := "/orders/v0/orders/" + url.PathEscape(orderID) + "/orderItems"
	respBody, err := a.doRequest(ctx, tenantID, config, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var resp AmazonOrderItemsResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("amazon: failed to parse order items: %w", err)
	}
	return resp.Payload.OrderItems, nil
}

// convertOrder converts an Amazon order and its items to the normalized
// platform order
func (a *AmazonAdapter) convertOrder(ctx context.Context, tenantID uuid.UUID, config *AmazonConfig, o *AmazonOrder) (*channel.PlatformOrder, error) {
	order := &channel.PlatformOrder{
		PlatformOrderID: o.AmazonOrderID,
		Status:          mapAmazonStatus(o.OrderStatus),
		BuyerName:       o.BuyerInfo.BuyerName,
		BuyerEmail:      o.BuyerInfo.BuyerEmail,
		Total:           parseDecimal(o.OrderTotal.Amount),
		Currency:        o.OrderTotal.CurrencyCode,
	}
	if order.Currency == "" {
		order.Currency = "USD"
	}

	if t, err := time.Parse(time.RFC3339, o.PurchaseDate); err == nil {
		order.PlacedAt = t.UTC()
	}

	items, err := a.fetchOrderItems(ctx, tenantID, config, o.AmazonOrderID)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		lineTotal := parseDecimal(item.ItemPrice.Amount)
		unitPrice := lineTotal
		if item.QuantityOrdered > 1 {
			unitPrice = lineTotal.DivRound(decimal.NewFromInt(int64(item.QuantityOrdered)), 2)
		}
		order.Tax = order.Tax.Add(parseDecimal(item.ItemTax.Amount))
		order.Shipping = order.Shipping.Add(parseDecimal(item.ShippingPrice.Amount))
		order.Discount = order.Discount.Add(parseDecimal(item.PromotionDiscount.Amount))
		order.Items = append(order.Items, channel.PlatformOrderItem{
			ListingID: item.ASIN,
			SKU:       item.SellerSKU,
			Name:      item.Title,
			Quantity:  item.QuantityOrdered,
			UnitPrice: unitPrice,
			LineTotal: lineTotal,
		})
	}

	if rawBytes, err := json.Marshal(o); err == nil {
		order.Raw = string(rawBytes)
	}
	return order, nil
}

// mapAmazonStatus maps an SP-API order status to the normalized status
func mapAmazonStatus(status string) channel.OrderStatus {
	switch status {
	case "Pending", "PendingAvailability":
		return channel.OrderStatusPending
	case "Unshipped", "PartiallyShipped":
		return channel.OrderStatusPaid
	case "Shipped":
		return channel.OrderStatusShipped
	case "InvoiceUnconfirmed":
		return channel.OrderStatusShipped
	case "Canceled":
		return channel.OrderStatusCancelled
	default:
		return channel.OrderStatusUnknown
	}
}

// Ensure AmazonAdapter implements the Platform interface
var _ channel.Platform = (*AmazonAdapter)(nil)
