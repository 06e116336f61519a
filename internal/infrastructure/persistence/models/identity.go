package models

import (
	"time"

	"github.com/pinehillfarm/backend/internal/domain/identity"
	"github.com/pinehillfarm/backend/internal/domain/shared"
)

// UserModel is the persistence model for the User domain entity.
type UserModel struct {
	TenantAggregateModel
	Email             string              `gorm:"type:varchar(200);not null;uniqueIndex"`
	PasswordHash      string              `gorm:"type:varchar(255);not null"`
	FirstName         string              `gorm:"type:varchar(100)"`
	LastName          string              `gorm:"type:varchar(100)"`
	Phone             string              `gorm:"type:varchar(50)"`
	Role              identity.Role       `gorm:"type:varchar(20);not null;default:'employee'"`
	Status            identity.UserStatus `gorm:"type:varchar(20);not null;default:'pending'"`
	Position          string              `gorm:"type:varchar(100)"`
	LastLoginAt       *time.Time          `gorm:"index"`
	FailedAttempts    int                 `gorm:"not null;default:0"`
	LockedUntil       *time.Time
	PasswordChangedAt *time.Time
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts the persistence model to a domain User entity.
func (m *UserModel) ToDomain() *identity.User {
	user := &identity.User{
		Email:             m.Email,
		PasswordHash:      m.PasswordHash,
		FirstName:         m.FirstName,
		LastName:          m.LastName,
		Phone:             m.Phone,
		Role:              m.Role,
		Status:            m.Status,
		Position:          m.Position,
		LastLoginAt:       m.LastLoginAt,
		FailedAttempts:    m.FailedAttempts,
		LockedUntil:       m.LockedUntil,
		PasswordChangedAt: m.PasswordChangedAt,
	}
	m.PopulateTenantAggregateRoot(&user.TenantAggregateRoot)
	return user
}

// FromDomain populates the persistence model from a domain User entity.
func (m *UserModel) FromDomain(u *identity.User) {
	m.FromDomainTenantAggregateRoot(u.TenantAggregateRoot)
	m.Email = u.Email
	m.PasswordHash = u.PasswordHash
	m.FirstName = u.FirstName
	m.LastName = u.LastName
	m.Phone = u.Phone
	m.Role = u.Role
	m.Status = u.Status
	m.Position = u.Position
	m.LastLoginAt = u.LastLoginAt
	m.FailedAttempts = u.FailedAttempts
	m.LockedUntil = u.LockedUntil
	m.PasswordChangedAt = u.PasswordChangedAt
}

// UserModelFromDomain creates a new persistence model from a domain User entity.
func UserModelFromDomain(u *identity.User) *UserModel {
	m := &UserModel{}
	m.FromDomain(u)
	return m
}

// TenantModel is the persistence model for the Tenant aggregate.
type TenantModel struct {
	AggregateModel
	Code         string                `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name         string                `gorm:"type:varchar(200);not null"`
	Status       identity.TenantStatus `gorm:"type:varchar(20);not null;default:'active'"`
	ContactName  string                `gorm:"type:varchar(100)"`
	ContactEmail string                `gorm:"type:varchar(200)"`
	ContactPhone string                `gorm:"type:varchar(50)"`
	Address      string                `gorm:"type:text"`
	Timezone     string                `gorm:"type:varchar(50);not null;default:'America/New_York'"`
	Notes        string                `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (TenantModel) TableName() string {
	return "tenants"
}

// ToDomain converts the persistence model to a domain Tenant.
func (m *TenantModel) ToDomain() *identity.Tenant {
	tenant := &identity.Tenant{
		Code:         m.Code,
		Name:         m.Name,
		Status:       m.Status,
		ContactName:  m.ContactName,
		ContactEmail: m.ContactEmail,
		ContactPhone: m.ContactPhone,
		Address:      m.Address,
		Timezone:     m.Timezone,
		Notes:        m.Notes,
	}
	var root shared.BaseAggregateRoot
	m.PopulateAggregateRoot(&root)
	tenant.BaseAggregateRoot = root
	return tenant
}

// FromDomain populates the persistence model from a domain Tenant.
func (m *TenantModel) FromDomain(t *identity.Tenant) {
	m.FromDomainAggregateRoot(t.BaseAggregateRoot)
	m.Code = t.Code
	m.Name = t.Name
	m.Status = t.Status
	m.ContactName = t.ContactName
	m.ContactEmail = t.ContactEmail
	m.ContactPhone = t.ContactPhone
	m.Address = t.Address
	m.Timezone = t.Timezone
	m.Notes = t.Notes
}

// TenantModelFromDomain creates a new persistence model from a domain Tenant.
func TenantModelFromDomain(t *identity.Tenant) *TenantModel {
	m := &TenantModel{}
	m.FromDomain(t)
	return m
}
