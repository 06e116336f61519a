package purchase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pinehillfarm/backend/internal/domain/catalog"
	"github.com/pinehillfarm/backend/internal/domain/purchase"
	"github.com/pinehillfarm/backend/internal/domain/shared"
)

// MockPurchaseRepository is a mock implementation of purchase.Repository
type MockPurchaseRepository struct {
	mock.Mock
}

func (m *MockPurchaseRepository) Create(ctx context.Context, p *purchase.Purchase) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPurchaseRepository) Update(ctx context.Context, p *purchase.Purchase) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPurchaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*purchase.Purchase, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*purchase.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*purchase.Purchase, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]*purchase.Purchase), args.Get(1).(int64), args.Error(2)
}

func (m *MockPurchaseRepository) FindByEmployee(ctx context.Context, tenantID, employeeID uuid.UUID) ([]*purchase.Purchase, error) {
	args := m.Called(ctx, tenantID, employeeID)
	return args.Get(0).([]*purchase.Purchase), args.Error(1)
}

func (m *MockPurchaseRepository) FindByStatus(ctx context.Context, tenantID uuid.UUID, status purchase.Status) ([]*purchase.Purchase, error) {
	args := m.Called(ctx, tenantID, status)
	return args.Get(0).([]*purchase.Purchase), args.Error(1)
}

// MockItemRepository is a mock implementation of catalog.ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) Create(ctx context.Context, item *catalog.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) Update(ctx context.Context, item *catalog.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Item), args.Error(1)
}

func (m *MockItemRepository) FindBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (*catalog.Item, error) {
	args := m.Called(ctx, tenantID, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Item), args.Error(1)
}

func (m *MockItemRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*catalog.Item, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]*catalog.Item), args.Get(1).(int64), args.Error(2)
}

func (m *MockItemRepository) FindLowStock(ctx context.Context, tenantID uuid.UUID) ([]*catalog.Item, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]*catalog.Item), args.Error(1)
}

func (m *MockItemRepository) FindByListing(ctx context.Context, tenantID uuid.UUID, field, value string) (*catalog.Item, error) {
	args := m.Called(ctx, tenantID, field, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Item), args.Error(1)
}

func (m *MockItemRepository) ExistsBySKU(ctx context.Context, tenantID uuid.UUID, sku string) (bool, error) {
	args := m.Called(ctx, tenantID, sku)
	return args.Bool(0), args.Error(1)
}

func newStockedItem(t *testing.T, tenantID uuid.UUID, qty int) *catalog.Item {
	t.Helper()
	item, err := catalog.NewItem(tenantID, "HONEY-16OZ", "Raw Honey 16oz", "Pantry",
		decimal.NewFromFloat(4.00), decimal.NewFromFloat(12.00))
	require.NoError(t, err)
	require.NoError(t, item.AdjustQuantity(qty))
	return item
}

func assertDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr), "expected domain error, got %v", err)
	assert.Equal(t, code, domainErr.Code)
}

func TestService_CreatePurchase_AppliesDiscount(t *testing.T) {
	ctx := context.Background()
	purchaseRepo := new(MockPurchaseRepository)
	itemRepo := new(MockItemRepository)
	tenantID := uuid.New()
	employeeID := uuid.New()
	item := newStockedItem(t, tenantID, 10)

	itemRepo.On("FindByID", ctx, item.ID).Return(item, nil)
	purchaseRepo.On("Create", ctx, mock.AnythingOfType("*purchase.Purchase")).Return(nil)

	svc := NewService(purchaseRepo, itemRepo, DefaultServiceConfig(), zap.NewNop())

	v, err := svc.CreatePurchase(ctx, CreatePurchaseInput{
		TenantID:      tenantID,
		EmployeeID:    employeeID,
		Lines:         []LineInput{{ItemID: item.ID, Quantity: 2}},
		PayrollDeduct: true,
	})

	require.NoError(t, err)
	assert.Equal(t, string(purchase.StatusPending), v.Status)
	assert.True(t, v.PayrollDeduct)
	require.Len(t, v.Lines, 1)
	// 20% off a 12.00 retail price
	assert.True(t, decimal.NewFromFloat(9.60).Equal(v.Lines[0].UnitPrice), "got %s", v.Lines[0].UnitPrice)
	assert.True(t, decimal.NewFromFloat(19.20).Equal(v.Total), "got %s", v.Total)
	purchaseRepo.AssertExpectations(t)
}

func TestService_CreatePurchase_InsufficientStock(t *testing.T) {
	ctx := context.Background()
	purchaseRepo := new(MockPurchaseRepository)
	itemRepo := new(MockItemRepository)
	tenantID := uuid.New()
	item := newStockedItem(t, tenantID, 1)

	itemRepo.On("FindByID", ctx, item.ID).Return(item, nil)

	svc := NewService(purchaseRepo, itemRepo, DefaultServiceConfig(), zap.NewNop())

	_, err := svc.CreatePurchase(ctx, CreatePurchaseInput{
		TenantID:   tenantID,
		EmployeeID: uuid.New(),
		Lines:      []LineInput{{ItemID: item.ID, Quantity: 3}},
	})

	assertDomainCode(t, err, "INSUFFICIENT_STOCK")
	purchaseRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_CreatePurchase_InactiveItem(t *testing.T) {
	ctx := context.Background()
	purchaseRepo := new(MockPurchaseRepository)
	itemRepo := new(MockItemRepository)
	tenantID := uuid.New()
	item := newStockedItem(t, tenantID, 10)
	item.Deactivate()

	itemRepo.On("FindByID", ctx, item.ID).Return(item, nil)

	svc := NewService(purchaseRepo, itemRepo, DefaultServiceConfig(), zap.NewNop())

	_, err := svc.CreatePurchase(ctx, CreatePurchaseInput{
		TenantID:   tenantID,
		EmployeeID: uuid.New(),
		Lines:      []LineInput{{ItemID: item.ID, Quantity: 1}},
	})

	assertDomainCode(t, err, "ITEM_INACTIVE")
}

func TestService_CompletePurchase_DeductsStock(t *testing.T) {
	ctx := context.Background()
	purchaseRepo := new(MockPurchaseRepository)
	itemRepo := new(MockItemRepository)
	tenantID := uuid.New()
	managerID := uuid.New()
	item := newStockedItem(t, tenantID, 10)

	p, err := purchase.NewPurchase(tenantID, uuid.New(), []purchase.LineInput{
		{ItemID: item.ID, Name: item.Name, Quantity: 4, UnitPrice: decimal.NewFromFloat(9.60)},
	}, false)
	require.NoError(t, err)
	require.NoError(t, p.Approve(managerID))

	purchaseRepo.On("FindByID", ctx, p.ID).Return(p, nil)
	purchaseRepo.On("Update", ctx, p).Return(nil)
	itemRepo.On("FindByID", ctx, item.ID).Return(item, nil)
	itemRepo.On("Update", ctx, mock.MatchedBy(func(i *catalog.Item) bool {
		return i.ID == item.ID && i.QuantityOnHand == 6
	})).Return(nil)

	svc := NewService(purchaseRepo, itemRepo, DefaultServiceConfig(), zap.NewNop())

	v, err := svc.CompletePurchase(ctx, ReviewInput{TenantID: tenantID, PurchaseID: p.ID, ReviewerID: managerID})

	require.NoError(t, err)
	assert.Equal(t, string(purchase.StatusCompleted), v.Status)
	itemRepo.AssertExpectations(t)
}

func TestService_CompletePurchase_FailedDeductionAborts(t *testing.T) {
	ctx := context.Background()
	purchaseRepo := new(MockPurchaseRepository)
	itemRepo := new(MockItemRepository)
	tenantID := uuid.New()
	managerID := uuid.New()

	honey := newStockedItem(t, tenantID, 10)
	soap, err := catalog.NewItem(tenantID, "SOAP-LAV-4OZ", "Lavender Soap", "Soap",
		decimal.NewFromFloat(2.10), decimal.NewFromFloat(7.50))
	require.NoError(t, err)
	require.NoError(t, soap.AdjustQuantity(5))

	p, err := purchase.NewPurchase(tenantID, uuid.New(), []purchase.LineInput{
		{ItemID: honey.ID, Name: honey.Name, Quantity: 4, UnitPrice: decimal.NewFromFloat(9.60)},
		{ItemID: soap.ID, Name: soap.Name, Quantity: 2, UnitPrice: decimal.NewFromFloat(6.00)},
	}, false)
	require.NoError(t, err)
	require.NoError(t, p.Approve(managerID))

	purchaseRepo.On("FindByID", ctx, p.ID).Return(p, nil)
	itemRepo.On("FindByID", ctx, honey.ID).Return(honey, nil)
	itemRepo.On("FindByID", ctx, soap.ID).Return(soap, nil)
	itemRepo.On("Update", ctx, mock.MatchedBy(func(i *catalog.Item) bool {
		return i.ID == honey.ID
	})).Return(nil)
	itemRepo.On("Update", ctx, mock.MatchedBy(func(i *catalog.Item) bool {
		return i.ID == soap.ID
	})).Return(shared.ErrConcurrencyConflict)

	svc := NewService(purchaseRepo, itemRepo, DefaultServiceConfig(), zap.NewNop())

	_, err = svc.CompletePurchase(ctx, ReviewInput{TenantID: tenantID, PurchaseID: p.ID, ReviewerID: managerID})

	assertDomainCode(t, err, "INTERNAL_ERROR")
	// The purchase never reached completed and the honey deduction was put back
	assert.Equal(t, purchase.StatusApproved, p.Status)
	assert.Equal(t, 10, honey.QuantityOnHand)
	purchaseRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestService_CompletePurchase_RequiresApproval(t *testing.T) {
	ctx := context.Background()
	purchaseRepo := new(MockPurchaseRepository)
	itemRepo := new(MockItemRepository)
	tenantID := uuid.New()
	item := newStockedItem(t, tenantID, 10)

	p, err := purchase.NewPurchase(tenantID, uuid.New(), []purchase.LineInput{
		{ItemID: item.ID, Name: item.Name, Quantity: 1, UnitPrice: decimal.NewFromFloat(9.60)},
	}, false)
	require.NoError(t, err)

	purchaseRepo.On("FindByID", ctx, p.ID).Return(p, nil)
	itemRepo.On("FindByID", ctx, item.ID).Return(item, nil)

	svc := NewService(purchaseRepo, itemRepo, DefaultServiceConfig(), zap.NewNop())

	_, err = svc.CompletePurchase(ctx, ReviewInput{TenantID: tenantID, PurchaseID: p.ID, ReviewerID: uuid.New()})

	require.ErrorIs(t, err, shared.ErrInvalidState)
	purchaseRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestService_CancelPurchase_OnlyOwnerUnlessManager(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	employeeID := uuid.New()
	item := newStockedItem(t, tenantID, 10)

	newPending := func(t *testing.T) *purchase.Purchase {
		p, err := purchase.NewPurchase(tenantID, employeeID, []purchase.LineInput{
			{ItemID: item.ID, Name: item.Name, Quantity: 1, UnitPrice: decimal.NewFromFloat(9.60)},
		}, false)
		require.NoError(t, err)
		return p
	}

	t.Run("other employee is refused", func(t *testing.T) {
		purchaseRepo := new(MockPurchaseRepository)
		p := newPending(t)
		purchaseRepo.On("FindByID", ctx, p.ID).Return(p, nil)

		svc := NewService(purchaseRepo, new(MockItemRepository), DefaultServiceConfig(), zap.NewNop())
		_, err := svc.CancelPurchase(ctx, CancelInput{TenantID: tenantID, PurchaseID: p.ID, RequesterID: uuid.New()})

		require.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("manager can cancel", func(t *testing.T) {
		purchaseRepo := new(MockPurchaseRepository)
		p := newPending(t)
		purchaseRepo.On("FindByID", ctx, p.ID).Return(p, nil)
		purchaseRepo.On("Update", ctx, p).Return(nil)

		svc := NewService(purchaseRepo, new(MockItemRepository), DefaultServiceConfig(), zap.NewNop())
		v, err := svc.CancelPurchase(ctx, CancelInput{TenantID: tenantID, PurchaseID: p.ID, RequesterID: uuid.New(), Manager: true})

		require.NoError(t, err)
		assert.Equal(t, string(purchase.StatusCancelled), v.Status)
	})
}

func TestService_ListPurchases_ByEmployee(t *testing.T) {
	ctx := context.Background()
	purchaseRepo := new(MockPurchaseRepository)
	tenantID := uuid.New()
	employeeID := uuid.New()
	item := newStockedItem(t, tenantID, 10)

	p, err := purchase.NewPurchase(tenantID, employeeID, []purchase.LineInput{
		{ItemID: item.ID, Name: item.Name, Quantity: 1, UnitPrice: decimal.NewFromFloat(9.60)},
	}, false)
	require.NoError(t, err)

	purchaseRepo.On("FindByEmployee", ctx, tenantID, employeeID).Return([]*purchase.Purchase{p}, nil)

	svc := NewService(purchaseRepo, new(MockItemRepository), DefaultServiceConfig(), zap.NewNop())

	out, err := svc.ListPurchases(ctx, ListInput{TenantID: tenantID, EmployeeID: &employeeID})

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, employeeID, out[0].EmployeeID)
}

func TestService_GetPurchase_WrongTenant(t *testing.T) {
	ctx := context.Background()
	purchaseRepo := new(MockPurchaseRepository)
	otherTenant := uuid.New()
	item := newStockedItem(t, otherTenant, 10)

	p, err := purchase.NewPurchase(otherTenant, uuid.New(), []purchase.LineInput{
		{ItemID: item.ID, Name: item.Name, Quantity: 1, UnitPrice: decimal.NewFromFloat(9.60)},
	}, false)
	require.NoError(t, err)

	purchaseRepo.On("FindByID", ctx, p.ID).Return(p, nil)

	svc := NewService(purchaseRepo, new(MockItemRepository), DefaultServiceConfig(), zap.NewNop())

	_, err = svc.GetPurchase(ctx, uuid.New(), p.ID)

	assertDomainCode(t, err, "PURCHASE_NOT_FOUND")
}
