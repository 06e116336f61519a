package channels

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinehillfarm/backend/internal/domain/channel"
)

func TestCloverConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  *CloverConfig
		wantErr error
	}{
		{
			name:    "valid config",
			config:  &CloverConfig{MerchantID: "M123", APIToken: "tok"},
			wantErr: nil,
		},
		{
			name:    "missing merchant",
			config:  &CloverConfig{APIToken: "tok"},
			wantErr: ErrCloverConfigMissingMerchant,
		},
		{
			name:    "missing token",
			config:  &CloverConfig{MerchantID: "M123"},
			wantErr: ErrCloverConfigMissingToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, CloverProductionURL, tt.config.BaseURL)
				assert.True(t, tt.config.TimeoutSeconds > 0)
			}
		})
	}
}

func TestCloverAdapter_PullOrders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Contains(t, r.URL.Path, "/v3/merchants/M123/orders")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"elements": [{
				"id": "ORDER1",
				"state": "locked",
				"paymentState": "PAID",
				"total": 2550,
				"currency": "USD",
				"createdTime": 1700000000000,
				"lineItems": {"elements": [{
					"id": "L1",
					"name": "Lavender Soap",
					"price": 1200,
					"unitQty": 2,
					"item": {"id": "ITEM1"},
					"taxRates": {"elements": [{"name": "Sales Tax", "rate": 625000}]}
				}]}
			}]
		}`))
	}))
	defer server.Close()

	adapter, err := NewCloverAdapter(&CloverConfig{
		MerchantID: "M123",
		APIToken:   "tok",
		BaseURL:    server.URL,
	})
	require.NoError(t, err)

	orders, hasMore, err := adapter.PullOrders(context.Background(), channel.OrderPullRequest{
		TenantID: uuid.New(),
		From:     time.Now().Add(-time.Hour),
		To:       time.Now(),
		PageSize: 100,
	})
	require.NoError(t, err)
	assert.False(t, hasMore)
	require.Len(t, orders, 1)

	order := orders[0]
	assert.Equal(t, "ORDER1", order.PlatformOrderID)
	assert.Equal(t, channel.OrderStatusPaid, order.Status)
	assert.True(t, order.Total.Equal(decimal.NewFromFloat(25.50)))
	require.Len(t, order.Items, 1)
	assert.Equal(t, "ITEM1", order.Items[0].ListingID)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.True(t, order.Items[0].UnitPrice.Equal(decimal.NewFromFloat(12.00)))
	// 6.25% of the 24.00 line
	assert.True(t, order.Tax.Equal(decimal.NewFromFloat(1.50)), "tax was %s", order.Tax)
	assert.NotEmpty(t, order.Raw)
}

func TestCloverAdapter_PullOrders_NotConfigured(t *testing.T) {
	adapter, err := NewCloverAdapter(nil)
	require.NoError(t, err)

	_, _, err = adapter.PullOrders(context.Background(), channel.OrderPullRequest{
		TenantID: uuid.New(),
		From:     time.Now().Add(-time.Hour),
		To:       time.Now(),
	})
	assert.ErrorIs(t, err, channel.ErrPlatformNotConfigured)
}

func TestCloverAdapter_TenantConfigOverridesDefault(t *testing.T) {
	adapter, err := NewCloverAdapter(&CloverConfig{MerchantID: "DEFAULT", APIToken: "tok"})
	require.NoError(t, err)

	tenantID := uuid.New()
	require.NoError(t, adapter.SetTenantConfig(tenantID, &CloverConfig{MerchantID: "TENANT", APIToken: "tok2"}))

	config, err := adapter.getTenantConfig(tenantID)
	require.NoError(t, err)
	assert.Equal(t, "TENANT", config.MerchantID)

	config, err = adapter.getTenantConfig(uuid.New())
	require.NoError(t, err)
	assert.Equal(t, "DEFAULT", config.MerchantID)
}

func TestCloverAdapter_InvalidCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	adapter, err := NewCloverAdapter(&CloverConfig{
		MerchantID: "M123",
		APIToken:   "bad",
		BaseURL:    server.URL,
	})
	require.NoError(t, err)

	_, err = adapter.GetOrder(context.Background(), uuid.New(), "ORDER1")
	assert.ErrorIs(t, err, channel.ErrInvalidCredentials)
}

func TestCloverAdapter_PushInventory(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		assert.Equal(t, http.MethodPost, r.Method)
		w.Write([]byte(`{"quantity": 12}`))
	}))
	defer server.Close()

	adapter, err := NewCloverAdapter(&CloverConfig{
		MerchantID: "M123",
		APIToken:   "tok",
		BaseURL:    server.URL,
	})
	require.NoError(t, err)

	err = adapter.PushInventory(context.Background(), uuid.New(), []channel.InventoryLevel{
		{ListingID: "ITEM1", Quantity: 12},
	})
	require.NoError(t, err)
	assert.Equal(t, "/v3/merchants/M123/item_stocks/ITEM1", gotPath)
}
