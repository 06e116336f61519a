package identity

import (
	"strings"
	"time"

	"github.com/pinehillfarm/backend/internal/domain/shared"
)

// TenantStatus represents the status of a tenant
type TenantStatus string

const (
	TenantStatusActive    TenantStatus = "active"
	TenantStatusSuspended TenantStatus = "suspended"
)

// Tenant represents one business (a farm store) in the multi-tenant system
type Tenant struct {
	shared.BaseAggregateRoot
	Code         string       `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name         string       `gorm:"type:varchar(200);not null"`
	Status       TenantStatus `gorm:"type:varchar(20);not null;default:'active'"`
	ContactName  string       `gorm:"type:varchar(100)"`
	ContactEmail string       `gorm:"type:varchar(200)"`
	ContactPhone string       `gorm:"type:varchar(50)"`
	Address      string       `gorm:"type:text"`
	Timezone     string       `gorm:"type:varchar(50);not null;default:'America/New_York'"`
	Notes        string       `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Tenant) TableName() string {
	return "tenants"
}

// NewTenant creates a new tenant
func NewTenant(code, name string) (*Tenant, error) {
	if err := validateTenantCode(code); err != nil {
		return nil, err
	}
	if err := validateTenantName(name); err != nil {
		return nil, err
	}

	return &Tenant{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		Status:            TenantStatusActive,
		Timezone:          "America/New_York",
	}, nil
}

// Update updates basic information
func (t *Tenant) Update(name string) error {
	if err := validateTenantName(name); err != nil {
		return err
	}
	t.Name = name
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
	return nil
}

// SetContact sets the contact information
func (t *Tenant) SetContact(name, email, phone string) {
	t.ContactName = name
	t.ContactEmail = email
	t.ContactPhone = phone
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
}

// SetTimezone sets the tenant timezone used by the sync window checks
func (t *Tenant) SetTimezone(tz string) error {
	if _, err := time.LoadLocation(tz); err != nil {
		return shared.NewDomainError("INVALID_TIMEZONE", "Unknown timezone")
	}
	t.Timezone = tz
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
	return nil
}

// Suspend suspends the tenant
func (t *Tenant) Suspend() error {
	if t.Status == TenantStatusSuspended {
		return shared.NewDomainError("ALREADY_SUSPENDED", "Tenant is already suspended")
	}
	t.Status = TenantStatusSuspended
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
	return nil
}

// Activate re-activates a suspended tenant
func (t *Tenant) Activate() error {
	if t.Status == TenantStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Tenant is already active")
	}
	t.Status = TenantStatusActive
	t.UpdatedAt = time.Now()
	t.IncrementVersion()
	return nil
}

// IsActive returns true if the tenant is active
func (t *Tenant) IsActive() bool {
	return t.Status == TenantStatusActive
}

func validateTenantCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return shared.NewDomainError("INVALID_TENANT_CODE", "Tenant code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_TENANT_CODE", "Tenant code cannot exceed 50 characters")
	}
	return nil
}

func validateTenantName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_TENANT_NAME", "Tenant name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_TENANT_NAME", "Tenant name cannot exceed 200 characters")
	}
	return nil
}
