package purchase

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLines() []LineInput {
	return []LineInput{
		{ItemID: uuid.New(), Name: "Raw Honey 16oz", Quantity: 2, UnitPrice: decimal.NewFromFloat(9.60)},
		{ItemID: uuid.New(), Name: "Goat Milk Soap", Quantity: 1, UnitPrice: decimal.NewFromFloat(5.20)},
	}
}

func TestNewPurchase(t *testing.T) {
	tenantID := uuid.New()
	employeeID := uuid.New()

	t.Run("totals the lines", func(t *testing.T) {
		p, err := NewPurchase(tenantID, employeeID, sampleLines(), true)

		require.NoError(t, err)
		assert.Equal(t, StatusPending, p.Status)
		assert.True(t, p.PayrollDeduct)
		assert.True(t, p.Total.Equal(decimal.NewFromFloat(24.40)), "got %s", p.Total)
	})

	t.Run("rejects empty purchase", func(t *testing.T) {
		_, err := NewPurchase(tenantID, employeeID, nil, false)
		assert.Error(t, err)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		lines := sampleLines()
		lines[0].Quantity = 0
		_, err := NewPurchase(tenantID, employeeID, lines, false)
		assert.Error(t, err)
	})
}

func TestPurchaseLifecycle(t *testing.T) {
	tenantID := uuid.New()
	employeeID := uuid.New()
	managerID := uuid.New()

	newPending := func(t *testing.T) *Purchase {
		p, err := NewPurchase(tenantID, employeeID, sampleLines(), false)
		require.NoError(t, err)
		return p
	}

	t.Run("approve records approver", func(t *testing.T) {
		p := newPending(t)
		require.NoError(t, p.Approve(managerID))

		assert.Equal(t, StatusApproved, p.Status)
		require.NotNil(t, p.ApprovedBy)
		assert.Equal(t, managerID, *p.ApprovedBy)
	})

	t.Run("complete requires approval", func(t *testing.T) {
		p := newPending(t)
		assert.Error(t, p.Complete())

		require.NoError(t, p.Approve(managerID))
		require.NoError(t, p.Complete())
		assert.Equal(t, StatusCompleted, p.Status)
	})

	t.Run("completed purchase cannot be cancelled", func(t *testing.T) {
		p := newPending(t)
		require.NoError(t, p.Approve(managerID))
		require.NoError(t, p.Complete())
		assert.Error(t, p.Cancel())
	})

	t.Run("pending and approved can be cancelled", func(t *testing.T) {
		p := newPending(t)
		require.NoError(t, p.Cancel())
		assert.Equal(t, StatusCancelled, p.Status)

		q := newPending(t)
		require.NoError(t, q.Approve(managerID))
		require.NoError(t, q.Cancel())
	})
}
