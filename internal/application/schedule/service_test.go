package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pinehillfarm/backend/internal/domain/schedule"
	"github.com/pinehillfarm/backend/internal/domain/shared"
)

// MockShiftRepository is a mock implementation of schedule.ShiftRepository
type MockShiftRepository struct {
	mock.Mock
}

func (m *MockShiftRepository) Create(ctx context.Context, shift *schedule.Shift) error {
	args := m.Called(ctx, shift)
	return args.Error(0)
}

func (m *MockShiftRepository) Update(ctx context.Context, shift *schedule.Shift) error {
	args := m.Called(ctx, shift)
	return args.Error(0)
}

func (m *MockShiftRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockShiftRepository) FindByID(ctx context.Context, id uuid.UUID) (*schedule.Shift, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*schedule.Shift), args.Error(1)
}

func (m *MockShiftRepository) FindInRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]*schedule.Shift, error) {
	args := m.Called(ctx, tenantID, from, to)
	return args.Get(0).([]*schedule.Shift), args.Error(1)
}

func (m *MockShiftRepository) FindByEmployee(ctx context.Context, tenantID, employeeID uuid.UUID, from, to time.Time) ([]*schedule.Shift, error) {
	args := m.Called(ctx, tenantID, employeeID, from, to)
	return args.Get(0).([]*schedule.Shift), args.Error(1)
}

func (m *MockShiftRepository) FindOverlapping(ctx context.Context, tenantID, employeeID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]*schedule.Shift, error) {
	args := m.Called(ctx, tenantID, employeeID, start, end, excludeID)
	return args.Get(0).([]*schedule.Shift), args.Error(1)
}

// MockTimeOffRepository is a mock implementation of schedule.TimeOffRepository
type MockTimeOffRepository struct {
	mock.Mock
}

func (m *MockTimeOffRepository) Create(ctx context.Context, req *schedule.TimeOffRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockTimeOffRepository) Update(ctx context.Context, req *schedule.TimeOffRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockTimeOffRepository) FindByID(ctx context.Context, id uuid.UUID) (*schedule.TimeOffRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*schedule.TimeOffRequest), args.Error(1)
}

func (m *MockTimeOffRepository) FindByEmployee(ctx context.Context, tenantID, employeeID uuid.UUID) ([]*schedule.TimeOffRequest, error) {
	args := m.Called(ctx, tenantID, employeeID)
	return args.Get(0).([]*schedule.TimeOffRequest), args.Error(1)
}

func (m *MockTimeOffRepository) FindByStatus(ctx context.Context, tenantID uuid.UUID, status schedule.TimeOffStatus) ([]*schedule.TimeOffRequest, error) {
	args := m.Called(ctx, tenantID, status)
	return args.Get(0).([]*schedule.TimeOffRequest), args.Error(1)
}

func (m *MockTimeOffRepository) FindApprovedInRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]*schedule.TimeOffRequest, error) {
	args := m.Called(ctx, tenantID, from, to)
	return args.Get(0).([]*schedule.TimeOffRequest), args.Error(1)
}

func shiftWindow() (time.Time, time.Time, time.Time) {
	date := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	start := date.Add(9 * time.Hour)
	end := date.Add(17 * time.Hour)
	return date, start, end
}

func assertDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, code, domainErr.Code)
}

func TestService_CreateShift_Success(t *testing.T) {
	ctx := context.Background()
	shiftRepo := new(MockShiftRepository)
	tenantID := uuid.New()
	employeeID := uuid.New()
	date, start, end := shiftWindow()

	shiftRepo.On("FindOverlapping", ctx, tenantID, employeeID, start, end, (*uuid.UUID)(nil)).
		Return([]*schedule.Shift{}, nil)
	shiftRepo.On("Create", ctx, mock.AnythingOfType("*schedule.Shift")).Return(nil)

	svc := NewService(shiftRepo, new(MockTimeOffRepository), zap.NewNop())

	view, err := svc.CreateShift(ctx, CreateShiftInput{
		TenantID:   tenantID,
		EmployeeID: employeeID,
		Date:       date,
		StartTime:  start,
		EndTime:    end,
		Position:   "Register",
		Publish:    true,
	})

	require.NoError(t, err)
	assert.Equal(t, employeeID, view.EmployeeID)
	assert.Equal(t, "Register", view.Position)
	assert.True(t, view.Published)
	shiftRepo.AssertExpectations(t)
}

func TestService_CreateShift_Overlap(t *testing.T) {
	ctx := context.Background()
	shiftRepo := new(MockShiftRepository)
	tenantID := uuid.New()
	employeeID := uuid.New()
	date, start, end := shiftWindow()

	existing, err := schedule.NewShift(tenantID, employeeID, date, start, end, "Register")
	require.NoError(t, err)

	shiftRepo.On("FindOverlapping", ctx, tenantID, employeeID, start, end, (*uuid.UUID)(nil)).
		Return([]*schedule.Shift{existing}, nil)

	svc := NewService(shiftRepo, new(MockTimeOffRepository), zap.NewNop())

	view, err := svc.CreateShift(ctx, CreateShiftInput{
		TenantID:   tenantID,
		EmployeeID: employeeID,
		Date:       date,
		StartTime:  start,
		EndTime:    end,
	})

	require.Error(t, err)
	assert.Nil(t, view)
	assertDomainCode(t, err, "SHIFT_OVERLAP")
	shiftRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_RescheduleShift_ExcludesSelfFromOverlapCheck(t *testing.T) {
	ctx := context.Background()
	shiftRepo := new(MockShiftRepository)
	tenantID := uuid.New()
	employeeID := uuid.New()
	date, start, end := shiftWindow()

	shift, err := schedule.NewShift(tenantID, employeeID, date, start, end, "Register")
	require.NoError(t, err)

	newStart := start.Add(time.Hour)
	newEnd := end.Add(time.Hour)

	shiftRepo.On("FindByID", ctx, shift.ID).Return(shift, nil)
	shiftRepo.On("FindOverlapping", ctx, tenantID, employeeID, newStart, newEnd, &shift.ID).
		Return([]*schedule.Shift{}, nil)
	shiftRepo.On("Update", ctx, shift).Return(nil)

	svc := NewService(shiftRepo, new(MockTimeOffRepository), zap.NewNop())

	view, err := svc.RescheduleShift(ctx, RescheduleShiftInput{
		TenantID:  tenantID,
		ShiftID:   shift.ID,
		Date:      date,
		StartTime: newStart,
		EndTime:   newEnd,
	})

	require.NoError(t, err)
	assert.Equal(t, newStart, view.StartTime)
	shiftRepo.AssertExpectations(t)
}

func TestService_DeleteShift_WrongTenant(t *testing.T) {
	ctx := context.Background()
	shiftRepo := new(MockShiftRepository)
	date, start, end := shiftWindow()

	shift, err := schedule.NewShift(uuid.New(), uuid.New(), date, start, end, "")
	require.NoError(t, err)

	shiftRepo.On("FindByID", ctx, shift.ID).Return(shift, nil)

	svc := NewService(shiftRepo, new(MockTimeOffRepository), zap.NewNop())

	err = svc.DeleteShift(ctx, uuid.New(), shift.ID)

	require.Error(t, err)
	assertDomainCode(t, err, "SHIFT_NOT_FOUND")
}

func TestService_RequestTimeOff_Success(t *testing.T) {
	ctx := context.Background()
	timeOffRepo := new(MockTimeOffRepository)
	tenantID := uuid.New()
	employeeID := uuid.New()

	timeOffRepo.On("Create", ctx, mock.AnythingOfType("*schedule.TimeOffRequest")).Return(nil)

	svc := NewService(new(MockShiftRepository), timeOffRepo, zap.NewNop())

	view, err := svc.RequestTimeOff(ctx, RequestTimeOffInput{
		TenantID:   tenantID,
		EmployeeID: employeeID,
		StartDate:  time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, 4, 3, 0, 0, 0, 0, time.UTC),
		Reason:     "family visit",
	})

	require.NoError(t, err)
	assert.Equal(t, schedule.TimeOffStatusPending, view.Status)
	timeOffRepo.AssertExpectations(t)
}

func TestService_ReviewTimeOff_Approve(t *testing.T) {
	ctx := context.Background()
	timeOffRepo := new(MockTimeOffRepository)
	tenantID := uuid.New()
	reviewerID := uuid.New()

	req, err := schedule.NewTimeOffRequest(tenantID, uuid.New(),
		time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 4, 3, 0, 0, 0, 0, time.UTC), "")
	require.NoError(t, err)

	timeOffRepo.On("FindByID", ctx, req.ID).Return(req, nil)
	timeOffRepo.On("Update", ctx, req).Return(nil)

	svc := NewService(new(MockShiftRepository), timeOffRepo, zap.NewNop())

	view, err := svc.ReviewTimeOff(ctx, ReviewTimeOffInput{
		TenantID:   tenantID,
		RequestID:  req.ID,
		ReviewerID: reviewerID,
		Approve:    true,
		Note:       "enjoy",
	})

	require.NoError(t, err)
	assert.Equal(t, schedule.TimeOffStatusApproved, view.Status)
	require.NotNil(t, view.ReviewedBy)
	assert.Equal(t, reviewerID, *view.ReviewedBy)
}

func TestService_ReviewTimeOff_AlreadyReviewed(t *testing.T) {
	ctx := context.Background()
	timeOffRepo := new(MockTimeOffRepository)
	tenantID := uuid.New()

	req, err := schedule.NewTimeOffRequest(tenantID, uuid.New(),
		time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 4, 3, 0, 0, 0, 0, time.UTC), "")
	require.NoError(t, err)
	require.NoError(t, req.Approve(uuid.New(), ""))

	timeOffRepo.On("FindByID", ctx, req.ID).Return(req, nil)

	svc := NewService(new(MockShiftRepository), timeOffRepo, zap.NewNop())

	_, err = svc.ReviewTimeOff(ctx, ReviewTimeOffInput{
		TenantID:  tenantID,
		RequestID: req.ID,
		Approve:   false,
	})

	require.Error(t, err)
	assertDomainCode(t, err, "INVALID_STATE")
}

func TestService_CancelTimeOff_OnlyOwner(t *testing.T) {
	ctx := context.Background()
	timeOffRepo := new(MockTimeOffRepository)
	tenantID := uuid.New()
	employeeID := uuid.New()

	req, err := schedule.NewTimeOffRequest(tenantID, employeeID,
		time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 4, 3, 0, 0, 0, 0, time.UTC), "")
	require.NoError(t, err)

	timeOffRepo.On("FindByID", ctx, req.ID).Return(req, nil)

	svc := NewService(new(MockShiftRepository), timeOffRepo, zap.NewNop())

	err = svc.CancelTimeOff(ctx, tenantID, req.ID, uuid.New())

	require.Error(t, err)
	assert.Equal(t, schedule.TimeOffStatusPending, req.Status)
}
