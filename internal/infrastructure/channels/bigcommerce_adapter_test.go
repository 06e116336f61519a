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

func TestBigCommerceConfig_Validate(t *testing.T) {
	config := &BigCommerceConfig{StoreHash: "abc123", AccessToken: "tok"}
	require.NoError(t, config.Validate())
	assert.Equal(t, BigCommerceAPIURL, config.BaseURL)

	assert.ErrorIs(t, (&BigCommerceConfig{AccessToken: "tok"}).Validate(), ErrBigCommerceConfigMissingStore)
	assert.ErrorIs(t, (&BigCommerceConfig{StoreHash: "abc123"}).Validate(), ErrBigCommerceConfigMissingToken)
}

func TestBigCommerceAdapter_PullOrders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "tok", r.Header.Get("X-Auth-Token"))
		w.Header().Set("Content-Type", "application/json")

		switch r.URL.Path {
		case "/stores/abc123/v2/orders":
			w.Write([]byte(`[{
				"id": 101,
				"status_id": 9,
				"date_created": "Tue, 20 Aug 2026 14:30:00 +0000",
				"total_inc_tax": "54.25",
				"total_tax": "3.25",
				"shipping_cost_inc_tax": "8.00",
				"discount_amount": "0.00",
				"currency_code": "USD",
				"billing_address": {"first_name": "Dana", "last_name": "Reed", "email": "dana@example.com"}
			}]`))
		case "/stores/abc123/v2/orders/101/products":
			w.Write([]byte(`[{
				"id": 1,
				"product_id": 77,
				"sku": "SOAP-LAV",
				"name": "Lavender Soap",
				"quantity": 3,
				"base_price": "14.33",
				"total_ex_tax": "43.00"
			}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	adapter, err := NewBigCommerceAdapter(&BigCommerceConfig{
		StoreHash:   "abc123",
		AccessToken: "tok",
		BaseURL:     server.URL,
	})
	require.NoError(t, err)

	orders, hasMore, err := adapter.PullOrders(context.Background(), channel.OrderPullRequest{
		TenantID: uuid.New(),
		From:     time.Now().Add(-time.Hour),
		To:       time.Now(),
		PageSize: 50,
	})
	require.NoError(t, err)
	assert.False(t, hasMore)
	require.Len(t, orders, 1)

	order := orders[0]
	assert.Equal(t, "101", order.PlatformOrderID)
	assert.Equal(t, channel.OrderStatusPaid, order.Status)
	assert.Equal(t, "Dana Reed", order.BuyerName)
	assert.Equal(t, "dana@example.com", order.BuyerEmail)
	assert.True(t, order.Total.Equal(decimal.NewFromFloat(54.25)))
	assert.True(t, order.Tax.Equal(decimal.NewFromFloat(3.25)))
	assert.Equal(t, 2026, order.PlacedAt.Year())
	require.Len(t, order.Items, 1)
	assert.Equal(t, "77", order.Items[0].ListingID)
	assert.Equal(t, "SOAP-LAV", order.Items[0].SKU)
	assert.Equal(t, 3, order.Items[0].Quantity)
}

func TestBigCommerceAdapter_PullOrders_EmptyWindow(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	adapter, err := NewBigCommerceAdapter(&BigCommerceConfig{
		StoreHash:   "abc123",
		AccessToken: "tok",
		BaseURL:     server.URL,
	})
	require.NoError(t, err)

	orders, hasMore, err := adapter.PullOrders(context.Background(), channel.OrderPullRequest{
		TenantID: uuid.New(),
		From:     time.Now().Add(-time.Hour),
		To:       time.Now(),
	})
	require.NoError(t, err)
	assert.False(t, hasMore)
	assert.Empty(t, orders)
}

func TestMapBigCommerceStatus(t *testing.T) {
	assert.Equal(t, channel.OrderStatusPending, mapBigCommerceStatus(bigCommerceStatusAwaitingPayment))
	assert.Equal(t, channel.OrderStatusPaid, mapBigCommerceStatus(bigCommerceStatusAwaitingShipment))
	assert.Equal(t, channel.OrderStatusShipped, mapBigCommerceStatus(bigCommerceStatusShipped))
	assert.Equal(t, channel.OrderStatusCompleted, mapBigCommerceStatus(bigCommerceStatusCompleted))
	assert.Equal(t, channel.OrderStatusCancelled, mapBigCommerceStatus(bigCommerceStatusCancelled))
	assert.Equal(t, channel.OrderStatusRefunded, mapBigCommerceStatus(bigCommerceStatusRefunded))
	assert.Equal(t, channel.OrderStatusUnknown, mapBigCommerceStatus(99))
}

func TestPlatformRegistry(t *testing.T) {
	registry := NewPlatformRegistry()

	clover, err := NewCloverAdapter(&CloverConfig{MerchantID: "M", APIToken: "t"})
	require.NoError(t, err)
	registry.Register(clover)

	got, err := registry.Get(channel.PlatformClover)
	require.NoError(t, err)
	assert.Equal(t, channel.PlatformClover, got.Code())

	_, err = registry.Get(channel.PlatformAmazon)
	assert.ErrorIs(t, err, channel.ErrPlatformNotFound)

	assert.Len(t, registry.All(), 1)
}
