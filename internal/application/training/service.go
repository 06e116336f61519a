package training

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pinehillfarm/backend/internal/domain/identity"
	"github.com/pinehillfarm/backend/internal/domain/shared"
	"github.com/pinehillfarm/backend/internal/domain/training"
)

// Service handles training modules and employee enrollments
type Service struct {
	moduleRepo     training.ModuleRepository
	enrollmentRepo training.EnrollmentRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewService creates a new training service
func NewService(moduleRepo training.ModuleRepository, enrollmentRepo training.EnrollmentRepository, logger *zap.Logger) *Service {
	return &Service{
		moduleRepo:     moduleRepo,
		enrollmentRepo: enrollmentRepo,
		logger:         logger,
	}
}

// SetEventPublisher sets the publisher for domain events
func (s *Service) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// CreateModule creates a training module
func (s *Service) CreateModule(ctx context.Context, input CreateModuleInput) (*ModuleView, error) {
	module, err := training.NewModule(input.TenantID, input.Title, input.Description, input.ContentURL, input.RequiredRole, input.DurationMinutes)
	if err != nil {
		return nil, err
	}

	if err := s.moduleRepo.Create(ctx, module); err != nil {
		s.logger.Error("Failed to create training module", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create training module")
	}

	s.logger.Info("Training module created",
		zap.String("module_id", module.ID.String()),
		zap.String("title", module.Title))

	view := moduleView(module)
	return &view, nil
}

// UpdateModule updates a module's content fields
func (s *Service) UpdateModule(ctx context.Context, input UpdateModuleInput) (*ModuleView, error) {
	module, err := s.findTenantModule(ctx, input.TenantID, input.ModuleID)
	if err != nil {
		return nil, err
	}

	if err := module.Update(input.Title, input.Description, input.ContentURL, input.DurationMinutes); err != nil {
		return nil, err
	}

	if err := s.moduleRepo.Update(ctx, module); err != nil {
		s.logger.Error("Failed to update training module", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update training module")
	}

	view := moduleView(module)
	return &view, nil
}

// SetModuleActive activates or retires a module
func (s *Service) SetModuleActive(ctx context.Context, tenantID, moduleID uuid.UUID, active bool) error {
	module, err := s.findTenantModule(ctx, tenantID, moduleID)
	if err != nil {
		return err
	}

	if active {
		module.Activate()
	} else {
		module.Deactivate()
	}

	if err := s.moduleRepo.Update(ctx, module); err != nil {
		s.logger.Error("Failed to update training module", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to update training module")
	}
	return nil
}

// ListModules returns a page of the tenant's modules
func (s *Service) ListModules(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]ModuleView, int64, error) {
	modules, total, err := s.moduleRepo.FindAll(ctx, tenantID, filter)
	if err != nil {
		s.logger.Error("Failed to list training modules", zap.Error(err))
		return nil, 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to list training modules")
	}

	views := make([]ModuleView, 0, len(modules))
	for _, m := range modules {
		views = append(views, moduleView(m))
	}
	return views, total, nil
}

// ListModulesForRole returns active modules assigned to the given role
func (s *Service) ListModulesForRole(ctx context.Context, tenantID uuid.UUID, role identity.Role) ([]ModuleView, error) {
	modules, err := s.moduleRepo.FindActive(ctx, tenantID)
	if err != nil {
		s.logger.Error("Failed to list training modules", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list training modules")
	}

	views := make([]ModuleView, 0, len(modules))
	for _, m := range modules {
		if m.VisibleTo(role) {
			views = append(views, moduleView(m))
		}
	}
	return views, nil
}

// GetModuleStats returns a module with its enrollment counts
func (s *Service) GetModuleStats(ctx context.Context, tenantID, moduleID uuid.UUID) (*ModuleStats, error) {
	module, err := s.findTenantModule(ctx, tenantID, moduleID)
	if err != nil {
		return nil, err
	}

	total, completed, err := s.enrollmentRepo.CountByModule(ctx, tenantID, moduleID)
	if err != nil {
		s.logger.Error("Failed to count enrollments", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load module stats")
	}

	return &ModuleStats{
		Module:    moduleView(module),
		Enrolled:  total,
		Completed: completed,
	}, nil
}

// Enroll enrolls an employee in a module. Enrolling twice returns the
// existing enrollment.
func (s *Service) Enroll(ctx context.Context, tenantID, moduleID, employeeID uuid.UUID) (*EnrollmentView, error) {
	module, err := s.findTenantModule(ctx, tenantID, moduleID)
	if err != nil {
		return nil, err
	}
	if !module.Active {
		return nil, shared.NewDomainError("MODULE_INACTIVE", "Training module is no longer active")
	}

	if existing, err := s.enrollmentRepo.FindByEmployeeAndModule(ctx, tenantID, employeeID, moduleID); err == nil && existing != nil {
		view := enrollmentView(existing)
		return &view, nil
	}

	enrollment, err := training.NewEnrollment(tenantID, moduleID, employeeID)
	if err != nil {
		return nil, err
	}

	if err := s.enrollmentRepo.Create(ctx, enrollment); err != nil {
		s.logger.Error("Failed to create enrollment", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to enroll employee")
	}

	s.publishEvents(ctx, enrollment)

	s.logger.Info("Employee enrolled",
		zap.String("module_id", moduleID.String()),
		zap.String("employee_id", employeeID.String()))

	view := enrollmentView(enrollment)
	return &view, nil
}

// UpdateProgress records training progress for the employee's enrollment
func (s *Service) UpdateProgress(ctx context.Context, tenantID, enrollmentID, employeeID uuid.UUID, progress int) (*EnrollmentView, error) {
	enrollment, err := s.findOwnEnrollment(ctx, tenantID, enrollmentID, employeeID)
	if err != nil {
		return nil, err
	}

	if err := enrollment.UpdateProgress(progress); err != nil {
		return nil, err
	}

	if err := s.enrollmentRepo.Update(ctx, enrollment); err != nil {
		s.logger.Error("Failed to update enrollment progress", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update progress")
	}

	s.publishEvents(ctx, enrollment)

	view := enrollmentView(enrollment)
	return &view, nil
}

// CompleteEnrollment marks the enrollment finished
func (s *Service) CompleteEnrollment(ctx context.Context, tenantID, enrollmentID, employeeID uuid.UUID) (*EnrollmentView, error) {
	enrollment, err := s.findOwnEnrollment(ctx, tenantID, enrollmentID, employeeID)
	if err != nil {
		return nil, err
	}

	if err := enrollment.Complete(); err != nil {
		return nil, err
	}

	if err := s.enrollmentRepo.Update(ctx, enrollment); err != nil {
		s.logger.Error("Failed to complete enrollment", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to complete enrollment")
	}

	s.publishEvents(ctx, enrollment)

	s.logger.Info("Training completed",
		zap.String("enrollment_id", enrollment.ID.String()),
		zap.String("employee_id", employeeID.String()))

	view := enrollmentView(enrollment)
	return &view, nil
}

// ListEmployeeEnrollments returns an employee's enrollments
func (s *Service) ListEmployeeEnrollments(ctx context.Context, tenantID, employeeID uuid.UUID) ([]EnrollmentView, error) {
	enrollments, err := s.enrollmentRepo.FindByEmployee(ctx, tenantID, employeeID)
	if err != nil {
		s.logger.Error("Failed to list enrollments", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list enrollments")
	}

	views := make([]EnrollmentView, 0, len(enrollments))
	for _, e := range enrollments {
		views = append(views, enrollmentView(e))
	}
	return views, nil
}

// ListModuleEnrollments returns every enrollment in a module (manager view)
func (s *Service) ListModuleEnrollments(ctx context.Context, tenantID, moduleID uuid.UUID) ([]EnrollmentView, error) {
	enrollments, err := s.enrollmentRepo.FindByModule(ctx, tenantID, moduleID)
	if err != nil {
		s.logger.Error("Failed to list enrollments", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list enrollments")
	}

	views := make([]EnrollmentView, 0, len(enrollments))
	for _, e := range enrollments {
		views = append(views, enrollmentView(e))
	}
	return views, nil
}

func (s *Service) findTenantModule(ctx context.Context, tenantID, moduleID uuid.UUID) (*training.Module, error) {
	module, err := s.moduleRepo.FindByID(ctx, moduleID)
	if err != nil || module.TenantID != tenantID {
		return nil, shared.NewDomainError("MODULE_NOT_FOUND", "Training module not found")
	}
	return module, nil
}

func (s *Service) findOwnEnrollment(ctx context.Context, tenantID, enrollmentID, employeeID uuid.UUID) (*training.Enrollment, error) {
	enrollment, err := s.enrollmentRepo.FindByID(ctx, enrollmentID)
	if err != nil || enrollment.TenantID != tenantID {
		return nil, shared.NewDomainError("ENROLLMENT_NOT_FOUND", "Enrollment not found")
	}
	if enrollment.EmployeeID != employeeID {
		return nil, shared.ErrForbidden
	}
	return enrollment, nil
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
