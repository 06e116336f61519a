package schedule

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pinehillfarm/backend/internal/domain/schedule"
	"github.com/pinehillfarm/backend/internal/domain/shared"
)

// Service handles shift scheduling and time-off approval
type Service struct {
	shiftRepo      schedule.ShiftRepository
	timeOffRepo    schedule.TimeOffRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewService creates a new scheduling service
func NewService(shiftRepo schedule.ShiftRepository, timeOffRepo schedule.TimeOffRepository, logger *zap.Logger) *Service {
	return &Service{
		shiftRepo:   shiftRepo,
		timeOffRepo: timeOffRepo,
		logger:      logger,
	}
}

// SetEventPublisher sets the publisher for domain events
func (s *Service) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateShift schedules a shift, rejecting overlaps with the employee's
// existing shifts.
func (s *Service) CreateShift(ctx context.Context, input CreateShiftInput) (*ShiftView, error) {
	overlapping, err := s.shiftRepo.FindOverlapping(ctx, input.TenantID, input.EmployeeID, input.StartTime, input.EndTime, nil)
	if err != nil {
		s.logger.Error("Overlap check failed", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check for overlapping shifts")
	}
	if len(overlapping) > 0 {
		return nil, shared.ErrShiftOverlap
	}

	shift, err := schedule.NewShift(input.TenantID, input.EmployeeID, input.Date, input.StartTime, input.EndTime, input.Position)
	if err != nil {
		return nil, err
	}
	shift.SetNotes(input.Notes)
	if input.Publish {
		shift.Publish()
	}

	if err := s.shiftRepo.Create(ctx, shift); err != nil {
		s.logger.Error("Failed to create shift", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create shift")
	}

	s.publishEvents(ctx, shift)

	s.logger.Info("Shift created",
		zap.String("shift_id", shift.ID.String()),
		zap.String("employee_id", input.EmployeeID.String()),
		zap.Time("start", input.StartTime))

	view := shiftView(shift)
	return &view, nil
}

// RescheduleShift moves a shift to a new time, re-running the overlap check
func (s *Service) RescheduleShift(ctx context.Context, input RescheduleShiftInput) (*ShiftView, error) {
	shift, err := s.findTenantShift(ctx, input.TenantID, input.ShiftID)
	if err != nil {
		return nil, err
	}

	excludeID := shift.ID
	overlapping, err := s.shiftRepo.FindOverlapping(ctx, input.TenantID, shift.EmployeeID, input.StartTime, input.EndTime, &excludeID)
	if err != nil {
		s.logger.Error("Overlap check failed", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to check for overlapping shifts")
	}
	if len(overlapping) > 0 {
		return nil, shared.ErrShiftOverlap
	}

	if err := shift.Reschedule(input.Date, input.StartTime, input.EndTime); err != nil {
		return nil, err
	}

	if err := s.shiftRepo.Update(ctx, shift); err != nil {
		s.logger.Error("Failed to reschedule shift", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to reschedule shift")
	}

	s.publishEvents(ctx, shift)

	view := shiftView(shift)
	return &view, nil
}

// UpdateShiftDetails updates position and notes without moving the shift
func (s *Service) UpdateShiftDetails(ctx context.Context, tenantID, shiftID uuid.UUID, position, notes string) (*ShiftView, error) {
	shift, err := s.findTenantShift(ctx, tenantID, shiftID)
	if err != nil {
		return nil, err
	}

	if err := shift.SetPosition(position); err != nil {
		return nil, err
	}
	shift.SetNotes(notes)

	if err := s.shiftRepo.Update(ctx, shift); err != nil {
		s.logger.Error("Failed to update shift", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update shift")
	}

	view := shiftView(shift)
	return &view, nil
}

// PublishShift makes a draft shift visible to the employee
func (s *Service) PublishShift(ctx context.Context, tenantID, shiftID uuid.UUID) error {
	shift, err := s.findTenantShift(ctx, tenantID, shiftID)
	if err != nil {
		return err
	}

	shift.Publish()

	if err := s.shiftRepo.Update(ctx, shift); err != nil {
		s.logger.Error("Failed to publish shift", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to publish shift")
	}
	return nil
}

// DeleteShift removes a shift from the schedule
func (s *Service) DeleteShift(ctx context.Context, tenantID, shiftID uuid.UUID) error {
	shift, err := s.findTenantShift(ctx, tenantID, shiftID)
	if err != nil {
		return err
	}

	if err := s.shiftRepo.Delete(ctx, shift.ID); err != nil {
		s.logger.Error("Failed to delete shift", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete shift")
	}

	s.logger.Info("Shift deleted", zap.String("shift_id", shiftID.String()))
	return nil
}

// GetSchedule returns shifts in the window, for the whole tenant or a
// single employee.
func (s *Service) GetSchedule(ctx context.Context, input WeekScheduleInput) ([]ShiftView, error) {
	var (
		shifts []*schedule.Shift
		err    error
	)
	if input.EmployeeID != nil {
		shifts, err = s.shiftRepo.FindByEmployee(ctx, input.TenantID, *input.EmployeeID, input.From, input.To)
	} else {
		shifts, err = s.shiftRepo.FindInRange(ctx, input.TenantID, input.From, input.To)
	}
	if err != nil {
		s.logger.Error("Failed to load schedule", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load schedule")
	}

	views := make([]ShiftView, 0, len(shifts))
	for _, shift := range shifts {
		views = append(views, shiftView(shift))
	}
	return views, nil
}

// RequestTimeOff files a pending time-off request for the employee
func (s *Service) RequestTimeOff(ctx context.Context, input RequestTimeOffInput) (*TimeOffView, error) {
	req, err := schedule.NewTimeOffRequest(input.TenantID, input.EmployeeID, input.StartDate, input.EndDate, input.Reason)
	if err != nil {
		return nil, err
	}

	if err := s.timeOffRepo.Create(ctx, req); err != nil {
		s.logger.Error("Failed to create time-off request", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create time-off request")
	}

	s.publishEvents(ctx, req)

	s.logger.Info("Time off requested",
		zap.String("request_id", req.ID.String()),
		zap.String("employee_id", input.EmployeeID.String()))

	view := timeOffView(req)
	return &view, nil
}

// ReviewTimeOff approves or denies a pending request
func (s *Service) ReviewTimeOff(ctx context.Context, input ReviewTimeOffInput) (*TimeOffView, error) {
	req, err := s.timeOffRepo.FindByID(ctx, input.RequestID)
	if err != nil || req.TenantID != input.TenantID {
		return nil, shared.NewDomainError("REQUEST_NOT_FOUND", "Time-off request not found")
	}

	if input.Approve {
		err = req.Approve(input.ReviewerID, input.Note)
	} else {
		err = req.Deny(input.ReviewerID, input.Note)
	}
	if err != nil {
		return nil, err
	}

	if err := s.timeOffRepo.Update(ctx, req); err != nil {
		s.logger.Error("Failed to persist time-off review", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to review time-off request")
	}

	s.publishEvents(ctx, req)

	s.logger.Info("Time off reviewed",
		zap.String("request_id", req.ID.String()),
		zap.String("status", string(req.Status)))

	view := timeOffView(req)
	return &view, nil
}

// CancelTimeOff lets the employee withdraw a pending request
func (s *Service) CancelTimeOff(ctx context.Context, tenantID, requestID, employeeID uuid.UUID) error {
	req, err := s.timeOffRepo.FindByID(ctx, requestID)
	if err != nil || req.TenantID != tenantID {
		return shared.NewDomainError("REQUEST_NOT_FOUND", "Time-off request not found")
	}

	if err := req.Cancel(employeeID); err != nil {
		return err
	}

	if err := s.timeOffRepo.Update(ctx, req); err != nil {
		s.logger.Error("Failed to cancel time-off request", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to cancel time-off request")
	}
	return nil
}

// ListTimeOff returns requests by employee or by status
func (s *Service) ListTimeOff(ctx context.Context, tenantID uuid.UUID, employeeID *uuid.UUID, status schedule.TimeOffStatus) ([]TimeOffView, error) {
	var (
		reqs []*schedule.TimeOffRequest
		err  error
	)
	if employeeID != nil {
		reqs, err = s.timeOffRepo.FindByEmployee(ctx, tenantID, *employeeID)
	} else {
		reqs, err = s.timeOffRepo.FindByStatus(ctx, tenantID, status)
	}
	if err != nil {
		s.logger.Error("Failed to list time-off requests", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list time-off requests")
	}

	views := make([]TimeOffView, 0, len(reqs))
	for _, req := range reqs {
		views = append(views, timeOffView(req))
	}
	return views, nil
}

func (s *Service) findTenantShift(ctx context.Context, tenantID, shiftID uuid.UUID) (*schedule.Shift, error) {
	shift, err := s.shiftRepo.FindByID(ctx, shiftID)
	if err != nil || shift.TenantID != tenantID {
		return nil, shared.NewDomainError("SHIFT_NOT_FOUND", "Shift not found")
	}
	return shift, nil
}

func (s *Service) publishEvents(ctx context.Context, root shared.AggregateRoot) {
	if s.eventPublisher == nil {
		return
	}
	events := root.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	root.ClearDomainEvents()
}
