package training

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pinehillfarm/backend/internal/domain/identity"
	"github.com/pinehillfarm/backend/internal/domain/shared"
	"github.com/pinehillfarm/backend/internal/domain/training"
)

// MockModuleRepository is a mock implementation of training.ModuleRepository
type MockModuleRepository struct {
	mock.Mock
}

func (m *MockModuleRepository) Create(ctx context.Context, module *training.Module) error {
	args := m.Called(ctx, module)
	return args.Error(0)
}

func (m *MockModuleRepository) Update(ctx context.Context, module *training.Module) error {
	args := m.Called(ctx, module)
	return args.Error(0)
}

func (m *MockModuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockModuleRepository) FindByID(ctx context.Context, id uuid.UUID) (*training.Module, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*training.Module), args.Error(1)
}

func (m *MockModuleRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]*training.Module, int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]*training.Module), args.Get(1).(int64), args.Error(2)
}

func (m *MockModuleRepository) FindActive(ctx context.Context, tenantID uuid.UUID) ([]*training.Module, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]*training.Module), args.Error(1)
}

// MockEnrollmentRepository is a mock implementation of training.EnrollmentRepository
type MockEnrollmentRepository struct {
	mock.Mock
}

func (m *MockEnrollmentRepository) Create(ctx context.Context, enrollment *training.Enrollment) error {
	args := m.Called(ctx, enrollment)
	return args.Error(0)
}

func (m *MockEnrollmentRepository) Update(ctx context.Context, enrollment *training.Enrollment) error {
	args := m.Called(ctx, enrollment)
	return args.Error(0)
}

func (m *MockEnrollmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*training.Enrollment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*training.Enrollment), args.Error(1)
}

func (m *MockEnrollmentRepository) FindByEmployeeAndModule(ctx context.Context, tenantID, employeeID, moduleID uuid.UUID) (*training.Enrollment, error) {
	args := m.Called(ctx, tenantID, employeeID, moduleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*training.Enrollment), args.Error(1)
}

func (m *MockEnrollmentRepository) FindByEmployee(ctx context.Context, tenantID, employeeID uuid.UUID) ([]*training.Enrollment, error) {
	args := m.Called(ctx, tenantID, employeeID)
	return args.Get(0).([]*training.Enrollment), args.Error(1)
}

func (m *MockEnrollmentRepository) FindByModule(ctx context.Context, tenantID, moduleID uuid.UUID) ([]*training.Enrollment, error) {
	args := m.Called(ctx, tenantID, moduleID)
	return args.Get(0).([]*training.Enrollment), args.Error(1)
}

func (m *MockEnrollmentRepository) CountByModule(ctx context.Context, tenantID, moduleID uuid.UUID) (int64, int64, error) {
	args := m.Called(ctx, tenantID, moduleID)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func newTestModule(t *testing.T, tenantID uuid.UUID, role identity.Role) *training.Module {
	t.Helper()
	module, err := training.NewModule(tenantID, "Food Safety Basics", "Handling and storage", "https://training.example/food-safety", role, 45)
	require.NoError(t, err)
	return module
}

func assertDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, code, domainErr.Code)
}

func TestService_CreateModule_Success(t *testing.T) {
	ctx := context.Background()
	moduleRepo := new(MockModuleRepository)

	moduleRepo.On("Create", ctx, mock.AnythingOfType("*training.Module")).Return(nil)

	svc := NewService(moduleRepo, new(MockEnrollmentRepository), zap.NewNop())

	view, err := svc.CreateModule(ctx, CreateModuleInput{
		TenantID:        uuid.New(),
		Title:           "Food Safety Basics",
		RequiredRole:    identity.RoleEmployee,
		DurationMinutes: 45,
	})

	require.NoError(t, err)
	assert.Equal(t, "Food Safety Basics", view.Title)
	assert.True(t, view.Active)
	moduleRepo.AssertExpectations(t)
}

func TestService_Enroll_Success(t *testing.T) {
	ctx := context.Background()
	moduleRepo := new(MockModuleRepository)
	enrollmentRepo := new(MockEnrollmentRepository)
	tenantID := uuid.New()
	employeeID := uuid.New()

	module := newTestModule(t, tenantID, identity.RoleEmployee)

	moduleRepo.On("FindByID", ctx, module.ID).Return(module, nil)
	enrollmentRepo.On("FindByEmployeeAndModule", ctx, tenantID, employeeID, module.ID).
		Return(nil, errors.New("not found"))
	enrollmentRepo.On("Create", ctx, mock.AnythingOfType("*training.Enrollment")).Return(nil)

	svc := NewService(moduleRepo, enrollmentRepo, zap.NewNop())

	view, err := svc.Enroll(ctx, tenantID, module.ID, employeeID)

	require.NoError(t, err)
	assert.Equal(t, training.EnrollmentStatusEnrolled, view.Status)
	assert.Equal(t, 0, view.Progress)
	enrollmentRepo.AssertExpectations(t)
}

func TestService_Enroll_Idempotent(t *testing.T) {
	ctx := context.Background()
	moduleRepo := new(MockModuleRepository)
	enrollmentRepo := new(MockEnrollmentRepository)
	tenantID := uuid.New()
	employeeID := uuid.New()

	module := newTestModule(t, tenantID, identity.RoleEmployee)
	existing, err := training.NewEnrollment(tenantID, module.ID, employeeID)
	require.NoError(t, err)

	moduleRepo.On("FindByID", ctx, module.ID).Return(module, nil)
	enrollmentRepo.On("FindByEmployeeAndModule", ctx, tenantID, employeeID, module.ID).
		Return(existing, nil)

	svc := NewService(moduleRepo, enrollmentRepo, zap.NewNop())

	view, err := svc.Enroll(ctx, tenantID, module.ID, employeeID)

	require.NoError(t, err)
	assert.Equal(t, existing.ID, view.ID)
	enrollmentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Enroll_InactiveModule(t *testing.T) {
	ctx := context.Background()
	moduleRepo := new(MockModuleRepository)
	tenantID := uuid.New()

	module := newTestModule(t, tenantID, identity.RoleEmployee)
	module.Deactivate()

	moduleRepo.On("FindByID", ctx, module.ID).Return(module, nil)

	svc := NewService(moduleRepo, new(MockEnrollmentRepository), zap.NewNop())

	_, err := svc.Enroll(ctx, tenantID, module.ID, uuid.New())

	require.Error(t, err)
	assertDomainCode(t, err, "MODULE_INACTIVE")
}

func TestService_UpdateProgress_ReachesCompletion(t *testing.T) {
	ctx := context.Background()
	enrollmentRepo := new(MockEnrollmentRepository)
	tenantID := uuid.New()
	employeeID := uuid.New()

	enrollment, err := training.NewEnrollment(tenantID, uuid.New(), employeeID)
	require.NoError(t, err)

	enrollmentRepo.On("FindByID", ctx, enrollment.ID).Return(enrollment, nil)
	enrollmentRepo.On("Update", ctx, enrollment).Return(nil)

	svc := NewService(new(MockModuleRepository), enrollmentRepo, zap.NewNop())

	view, err := svc.UpdateProgress(ctx, tenantID, enrollment.ID, employeeID, 100)

	require.NoError(t, err)
	assert.Equal(t, training.EnrollmentStatusCompleted, view.Status)
	assert.NotNil(t, view.CompletedAt)
}

func TestService_UpdateProgress_OtherEmployee(t *testing.T) {
	ctx := context.Background()
	enrollmentRepo := new(MockEnrollmentRepository)
	tenantID := uuid.New()

	enrollment, err := training.NewEnrollment(tenantID, uuid.New(), uuid.New())
	require.NoError(t, err)

	enrollmentRepo.On("FindByID", ctx, enrollment.ID).Return(enrollment, nil)

	svc := NewService(new(MockModuleRepository), enrollmentRepo, zap.NewNop())

	_, err = svc.UpdateProgress(ctx, tenantID, enrollment.ID, uuid.New(), 50)

	require.Error(t, err)
	assertDomainCode(t, err, "FORBIDDEN")
}

func TestService_ListModulesForRole_FiltersByRole(t *testing.T) {
	ctx := context.Background()
	moduleRepo := new(MockModuleRepository)
	tenantID := uuid.New()

	employeeModule := newTestModule(t, tenantID, identity.RoleEmployee)
	managerModule := newTestModule(t, tenantID, identity.RoleManager)

	moduleRepo.On("FindActive", ctx, tenantID).
		Return([]*training.Module{employeeModule, managerModule}, nil)

	svc := NewService(moduleRepo, new(MockEnrollmentRepository), zap.NewNop())

	views, err := svc.ListModulesForRole(ctx, tenantID, identity.RoleEmployee)

	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, employeeModule.ID, views[0].ID)
}

func TestService_GetModuleStats(t *testing.T) {
	ctx := context.Background()
	moduleRepo := new(MockModuleRepository)
	enrollmentRepo := new(MockEnrollmentRepository)
	tenantID := uuid.New()

	module := newTestModule(t, tenantID, identity.RoleEmployee)

	moduleRepo.On("FindByID", ctx, module.ID).Return(module, nil)
	enrollmentRepo.On("CountByModule", ctx, tenantID, module.ID).Return(int64(8), int64(5), nil)

	svc := NewService(moduleRepo, enrollmentRepo, zap.NewNop())

	stats, err := svc.GetModuleStats(ctx, tenantID, module.ID)

	require.NoError(t, err)
	assert.Equal(t, int64(8), stats.Enrolled)
	assert.Equal(t, int64(5), stats.Completed)
}
