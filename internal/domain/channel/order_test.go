package channel

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePlatformOrder() PlatformOrder {
	return PlatformOrder{
		PlatformOrderID: "CLV-1001",
		Status:          OrderStatusPaid,
		BuyerName:       "Walk-in",
		Total:           decimal.NewFromFloat(26.50),
		Tax:             decimal.NewFromFloat(1.50),
		Currency:        "USD",
		PlacedAt:        time.Date(2026, 5, 1, 14, 30, 0, 0, time.UTC),
		Items: []PlatformOrderItem{
			{ListingID: "c-1", SKU: "PHF-HONEY-16", Name: "Raw Honey 16oz", Quantity: 1, UnitPrice: decimal.NewFromFloat(12.00), LineTotal: decimal.NewFromFloat(12.00)},
			{ListingID: "c-2", SKU: "PHF-SOAP", Name: "Goat Milk Soap", Quantity: 2, UnitPrice: decimal.NewFromFloat(6.50), LineTotal: decimal.NewFromFloat(13.00)},
		},
	}
}

func TestNewChannelOrder(t *testing.T) {
	tenantID := uuid.New()

	t.Run("ingests a valid order", func(t *testing.T) {
		order, err := NewChannelOrder(tenantID, PlatformClover, samplePlatformOrder())

		require.NoError(t, err)
		assert.Equal(t, PlatformClover, order.Platform)
		assert.Equal(t, "CLV-1001", order.PlatformOrderID)
		assert.Len(t, order.Items, 2)
		assert.True(t, order.Revenue().Equal(decimal.NewFromFloat(25.00)))
		assert.True(t, order.IsSale())
	})

	t.Run("rejects mismatched line totals", func(t *testing.T) {
		po := samplePlatformOrder()
		po.Items[0].LineTotal = decimal.NewFromFloat(11.00)

		_, err := NewChannelOrder(tenantID, PlatformClover, po)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "do not add up")
	})

	t.Run("discount offsets line sum", func(t *testing.T) {
		po := samplePlatformOrder()
		po.Discount = decimal.NewFromFloat(5.00)
		po.Total = decimal.NewFromFloat(21.50)

		_, err := NewChannelOrder(tenantID, PlatformClover, po)
		assert.NoError(t, err)
	})

	t.Run("empty order ID is rejected", func(t *testing.T) {
		po := samplePlatformOrder()
		po.PlatformOrderID = ""

		_, err := NewChannelOrder(tenantID, PlatformClover, po)
		assert.Error(t, err)
	})

	t.Run("unknown platform is rejected", func(t *testing.T) {
		_, err := NewChannelOrder(tenantID, PlatformCode("etsy"), samplePlatformOrder())
		assert.Error(t, err)
	})

	t.Run("missing status defaults to unknown", func(t *testing.T) {
		po := samplePlatformOrder()
		po.Status = ""

		order, err := NewChannelOrder(tenantID, PlatformClover, po)
		require.NoError(t, err)
		assert.Equal(t, OrderStatusUnknown, order.Status)
	})

	t.Run("refunded orders do not count as sales", func(t *testing.T) {
		po := samplePlatformOrder()
		po.Status = OrderStatusRefunded

		order, err := NewChannelOrder(tenantID, PlatformClover, po)
		require.NoError(t, err)
		assert.False(t, order.IsSale())
	})
}

func TestChannelOrderApplyUpdate(t *testing.T) {
	tenantID := uuid.New()

	t.Run("refreshes status and bumps version", func(t *testing.T) {
		order, err := NewChannelOrder(tenantID, PlatformBigCommerce, samplePlatformOrder())
		require.NoError(t, err)
		version := order.GetVersion()

		po := samplePlatformOrder()
		po.Status = OrderStatusShipped

		require.NoError(t, order.ApplyUpdate(po))
		assert.Equal(t, OrderStatusShipped, order.Status)
		assert.Equal(t, version+1, order.GetVersion())
	})

	t.Run("rebuilds lines when the pull changed them", func(t *testing.T) {
		order, err := NewChannelOrder(tenantID, PlatformClover, samplePlatformOrder())
		require.NoError(t, err)

		// Partial refund upstream: one line dropped, totals reduced
		po := samplePlatformOrder()
		po.Items = po.Items[:1]
		po.Total = decimal.NewFromFloat(13.00)
		po.Tax = decimal.NewFromFloat(1.00)

		require.NoError(t, order.ApplyUpdate(po))
		require.Len(t, order.Items, 1)
		assert.Equal(t, "PHF-HONEY-16", order.Items[0].SKU)
		assert.True(t, order.LineSum().Equal(order.Total.Sub(order.Tax)))
		assert.Equal(t, order.ID, order.Items[0].OrderID)
	})

	t.Run("rejects an update whose lines do not sum to the total", func(t *testing.T) {
		order, err := NewChannelOrder(tenantID, PlatformClover, samplePlatformOrder())
		require.NoError(t, err)
		before := order.Total

		po := samplePlatformOrder()
		po.Total = decimal.NewFromFloat(60.00)

		err = order.ApplyUpdate(po)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "do not add up")
		assert.True(t, order.Total.Equal(before))
		assert.True(t, order.LineSum().Equal(order.Total.Sub(order.Tax)))
	})

	t.Run("rejects a non-positive line quantity", func(t *testing.T) {
		order, err := NewChannelOrder(tenantID, PlatformClover, samplePlatformOrder())
		require.NoError(t, err)

		po := samplePlatformOrder()
		po.Items[0].Quantity = 0

		assert.Error(t, order.ApplyUpdate(po))
	})
}

func TestSyncRun(t *testing.T) {
	tenantID := uuid.New()
	from := time.Now().Add(-time.Hour)
	to := time.Now()

	t.Run("counts roll up to success", func(t *testing.T) {
		run, err := NewSyncRun(tenantID, PlatformClover, SyncTriggerScheduled, from, to)
		require.NoError(t, err)
		assert.Equal(t, SyncStatusRunning, run.Status)

		run.RecordCreated()
		run.RecordCreated()
		run.RecordUpdated()
		require.NoError(t, run.Complete())

		assert.Equal(t, SyncStatusSuccess, run.Status)
		assert.Equal(t, 3, run.Total)
		assert.Equal(t, 2, run.Created)
		assert.Equal(t, 1, run.Updated)
		assert.NotNil(t, run.FinishedAt)

		events := run.GetDomainEvents()
		require.Len(t, events, 1)
		evt, ok := events[0].(*SyncCompletedEvent)
		require.True(t, ok)
		assert.Equal(t, SyncStatusSuccess, evt.Status)
	})

	t.Run("some failures yield partial", func(t *testing.T) {
		run, err := NewSyncRun(tenantID, PlatformAmazon, SyncTriggerManual, from, to)
		require.NoError(t, err)

		run.RecordCreated()
		run.RecordFailure(errors.New("listing not found"))
		require.NoError(t, run.Complete())

		assert.Equal(t, SyncStatusPartial, run.Status)
		assert.Equal(t, "listing not found", run.LastError)
	})

	t.Run("all failures yield failed", func(t *testing.T) {
		run, err := NewSyncRun(tenantID, PlatformAmazon, SyncTriggerManual, from, to)
		require.NoError(t, err)

		run.RecordFailure(errors.New("boom"))
		require.NoError(t, run.Complete())
		assert.Equal(t, SyncStatusFailed, run.Status)
	})

	t.Run("a truncated pull never completes as success", func(t *testing.T) {
		run, err := NewSyncRun(tenantID, PlatformClover, SyncTriggerScheduled, from, to)
		require.NoError(t, err)

		run.RecordCreated()
		run.MarkTruncated("stopped at the page cap (20 pages) with more orders available")
		require.NoError(t, run.Complete())

		assert.Equal(t, SyncStatusPartial, run.Status)
		assert.Contains(t, run.LastError, "page cap")
	})

	t.Run("truncated with every order failed still reports failed", func(t *testing.T) {
		run, err := NewSyncRun(tenantID, PlatformClover, SyncTriggerScheduled, from, to)
		require.NoError(t, err)

		run.RecordFailure(errors.New("listing not found"))
		run.MarkTruncated("stopped at the page cap (20 pages) with more orders available")
		require.NoError(t, run.Complete())
		assert.Equal(t, SyncStatusFailed, run.Status)
	})

	t.Run("fail aborts a running sync", func(t *testing.T) {
		run, err := NewSyncRun(tenantID, PlatformBigCommerce, SyncTriggerScheduled, from, to)
		require.NoError(t, err)

		require.NoError(t, run.Fail(errors.New("credentials rejected")))
		assert.Equal(t, SyncStatusFailed, run.Status)
		assert.Equal(t, "credentials rejected", run.LastError)

		assert.Error(t, run.Complete())
	})

	t.Run("unknown trigger rejected", func(t *testing.T) {
		_, err := NewSyncRun(tenantID, PlatformClover, SyncTrigger("cron"), from, to)
		assert.Error(t, err)
	})
}
