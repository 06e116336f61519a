package identity

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pinehillfarm/backend/internal/domain/identity"
	"github.com/pinehillfarm/backend/internal/domain/shared"
)

// TenantService handles tenant registration and management
type TenantService struct {
	tenantRepo identity.TenantRepository
	userRepo   identity.UserRepository
	logger     *zap.Logger
}

// NewTenantService creates a new tenant service
func NewTenantService(tenantRepo identity.TenantRepository, userRepo identity.UserRepository, logger *zap.Logger) *TenantService {
	return &TenantService{
		tenantRepo: tenantRepo,
		userRepo:   userRepo,
		logger:     logger,
	}
}

// CreateTenant registers a tenant together with its first admin account
func (s *TenantService) CreateTenant(ctx context.Context, input CreateTenantInput) (*TenantInfo, error) {
	exists, err := s.tenantRepo.ExistsByCode(ctx, input.Code)
	if err != nil {
		s.logger.Error("Failed to check tenant code", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create tenant")
	}
	if exists {
		return nil, shared.NewDomainError("TENANT_CODE_TAKEN", "A tenant with this code already exists")
	}

	tenant, err := identity.NewTenant(input.Code, input.Name)
	if err != nil {
		return nil, err
	}
	tenant.SetContact(input.ContactName, input.ContactEmail, input.ContactPhone)
	if input.Timezone != "" {
		if err := tenant.SetTimezone(input.Timezone); err != nil {
			return nil, err
		}
	}

	admin, err := identity.NewActiveUser(tenant.ID, input.AdminEmail, input.AdminPassword, identity.RoleAdmin)
	if err != nil {
		return nil, err
	}

	if err := s.tenantRepo.Create(ctx, tenant); err != nil {
		s.logger.Error("Failed to create tenant", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create tenant")
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		s.logger.Error("Failed to create tenant admin", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create tenant admin")
	}

	s.logger.Info("Tenant created",
		zap.String("tenant_id", tenant.ID.String()),
		zap.String("code", tenant.Code),
		zap.String("admin_email", admin.Email))

	info := tenantInfo(tenant)
	return &info, nil
}

// GetTenant returns a tenant by ID
func (s *TenantService) GetTenant(ctx context.Context, id uuid.UUID) (*TenantInfo, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewDomainError("TENANT_NOT_FOUND", "Tenant not found")
	}
	info := tenantInfo(tenant)
	return &info, nil
}

// ListTenants returns a page of tenants (platform admin view)
func (s *TenantService) ListTenants(ctx context.Context, page, pageSize int) ([]TenantInfo, int64, error) {
	tenants, total, err := s.tenantRepo.FindAll(ctx, page, pageSize)
	if err != nil {
		s.logger.Error("Failed to list tenants", zap.Error(err))
		return nil, 0, shared.NewDomainError("INTERNAL_ERROR", "Failed to list tenants")
	}

	infos := make([]TenantInfo, 0, len(tenants))
	for _, t := range tenants {
		infos = append(infos, tenantInfo(t))
	}
	return infos, total, nil
}

// UpdateTenant updates tenant profile fields
func (s *TenantService) UpdateTenant(ctx context.Context, id uuid.UUID, name, timezone, contactName, contactEmail, contactPhone string) (*TenantInfo, error) {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewDomainError("TENANT_NOT_FOUND", "Tenant not found")
	}

	if err := tenant.Update(name); err != nil {
		return nil, err
	}
	tenant.SetContact(contactName, contactEmail, contactPhone)
	if timezone != "" {
		if err := tenant.SetTimezone(timezone); err != nil {
			return nil, err
		}
	}

	if err := s.tenantRepo.Update(ctx, tenant); err != nil {
		s.logger.Error("Failed to update tenant", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update tenant")
	}

	info := tenantInfo(tenant)
	return &info, nil
}

// SuspendTenant blocks logins for all of the tenant's users
func (s *TenantService) SuspendTenant(ctx context.Context, id uuid.UUID) error {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return shared.NewDomainError("TENANT_NOT_FOUND", "Tenant not found")
	}
	if err := tenant.Suspend(); err != nil {
		return err
	}
	if err := s.tenantRepo.Update(ctx, tenant); err != nil {
		s.logger.Error("Failed to suspend tenant", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to suspend tenant")
	}
	s.logger.Info("Tenant suspended", zap.String("tenant_id", id.String()))
	return nil
}

// ActivateTenant reinstates a suspended tenant
func (s *TenantService) ActivateTenant(ctx context.Context, id uuid.UUID) error {
	tenant, err := s.tenantRepo.FindByID(ctx, id)
	if err != nil {
		return shared.NewDomainError("TENANT_NOT_FOUND", "Tenant not found")
	}
	if err := tenant.Activate(); err != nil {
		return err
	}
	if err := s.tenantRepo.Update(ctx, tenant); err != nil {
		s.logger.Error("Failed to activate tenant", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to activate tenant")
	}
	return nil
}

func tenantInfo(t *identity.Tenant) TenantInfo {
	return TenantInfo{
		ID:           t.ID,
		Code:         t.Code,
		Name:         t.Name,
		Timezone:     t.Timezone,
		ContactName:  t.ContactName,
		ContactEmail: t.ContactEmail,
		ContactPhone: t.ContactPhone,
		Active:       t.IsActive(),
		CreatedAt:    t.CreatedAt,
	}
}
