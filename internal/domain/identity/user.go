package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pinehillfarm/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// UserStatus represents the status of a user account
type UserStatus string

const (
	UserStatusPending     UserStatus = "pending"     // Awaiting activation
	UserStatusActive      UserStatus = "active"      // Normal active status
	UserStatusLocked      UserStatus = "locked"      // Locked after failed attempts
	UserStatusDeactivated UserStatus = "deactivated" // Manually deactivated
)

// Role is the access level of a user within a tenant
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

// IsValid checks if the role is one of the known roles
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// AtLeast reports whether the role grants the access level of other.
// admin > manager > employee.
func (r Role) AtLeast(other Role) bool {
	rank := map[Role]int{RoleEmployee: 1, RoleManager: 2, RoleAdmin: 3}
	return rank[r] >= rank[other]
}

const bcryptCost = 12

// User is the aggregate root for staff accounts. Every user belongs to
// exactly one tenant and carries a single role.
type User struct {
	shared.TenantAggregateRoot
	Email             string
	PasswordHash      string
	FirstName         string
	LastName          string
	Phone             string
	Role              Role
	Status            UserStatus
	Position          string // Job title shown on the schedule
	LastLoginAt       *time.Time
	FailedAttempts    int
	LockedUntil       *time.Time
	PasswordChangedAt *time.Time
}

// NewUser creates a new user with required fields
func NewUser(tenantID uuid.UUID, email, password string, role Role) (*User, error) {
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Role must be admin, manager or employee")
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	now := time.Now()
	user := &User{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Email:               strings.ToLower(strings.TrimSpace(email)),
		PasswordHash:        passwordHash,
		Role:                role,
		Status:              UserStatusPending,
		PasswordChangedAt:   &now,
	}

	user.AddDomainEvent(NewUserCreatedEvent(user))

	return user, nil
}

// NewActiveUser creates a user that is immediately active
func NewActiveUser(tenantID uuid.UUID, email, password string, role Role) (*User, error) {
	user, err := NewUser(tenantID, email, password, role)
	if err != nil {
		return nil, err
	}
	user.Status = UserStatusActive
	return user, nil
}

// FullName returns the display name for schedules and announcements
func (u *User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Email
	}
	return name
}

// SetName sets first and last name
func (u *User) SetName(first, last string) error {
	if len(first) > 100 || len(last) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Name cannot exceed 100 characters")
	}
	u.FirstName = strings.TrimSpace(first)
	u.LastName = strings.TrimSpace(last)
	u.touch()
	return nil
}

// SetPhone sets the user's phone number
func (u *User) SetPhone(phone string) error {
	if phone != "" && len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 50 characters")
	}
	u.Phone = strings.TrimSpace(phone)
	u.touch()
	return nil
}

// SetPosition sets the job title
func (u *User) SetPosition(position string) error {
	if len(position) > 100 {
		return shared.NewDomainError("INVALID_POSITION", "Position cannot exceed 100 characters")
	}
	u.Position = strings.TrimSpace(position)
	u.touch()
	return nil
}

// AssignRole changes the user's role
func (u *User) AssignRole(role Role) error {
	if !role.IsValid() {
		return shared.NewDomainError("INVALID_ROLE", "Role must be admin, manager or employee")
	}
	if u.Role == role {
		return shared.NewDomainError("ROLE_UNCHANGED", "User already has this role")
	}

	old := u.Role
	u.Role = role
	u.touch()

	u.AddDomainEvent(NewUserRoleChangedEvent(u, old, role))

	return nil
}

// ChangePassword changes the password after verifying the current one
func (u *User) ChangePassword(oldPassword, newPassword string) error {
	if !u.VerifyPassword(oldPassword) {
		return shared.NewDomainError("INVALID_PASSWORD", "Current password is incorrect")
	}
	return u.SetPassword(newPassword)
}

// SetPassword sets a new password (admin reset, no old password check)
func (u *User) SetPassword(newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	passwordHash, err := hashPassword(newPassword)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	u.PasswordHash = passwordHash
	now := time.Now()
	u.PasswordChangedAt = &now
	u.touch()

	u.AddDomainEvent(NewUserPasswordChangedEvent(u))

	return nil
}

// VerifyPassword verifies if the provided password matches
func (u *User) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// Activate activates the user
func (u *User) Activate() error {
	if u.Status == UserStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "User is already active")
	}

	old := u.Status
	u.Status = UserStatusActive
	u.FailedAttempts = 0
	u.LockedUntil = nil
	u.touch()

	u.AddDomainEvent(NewUserStatusChangedEvent(u, old, UserStatusActive))

	return nil
}

// Deactivate deactivates the user
func (u *User) Deactivate() error {
	if u.Status == UserStatusDeactivated {
		return shared.NewDomainError("ALREADY_DEACTIVATED", "User is already deactivated")
	}

	old := u.Status
	u.Status = UserStatusDeactivated
	u.touch()

	u.AddDomainEvent(NewUserStatusChangedEvent(u, old, UserStatusDeactivated))

	return nil
}

// Lock locks the account for the given duration
func (u *User) Lock(duration time.Duration) error {
	if u.Status == UserStatusDeactivated {
		return shared.NewDomainError("USER_DEACTIVATED", "Cannot lock a deactivated user")
	}

	old := u.Status
	u.Status = UserStatusLocked
	if duration > 0 {
		until := time.Now().Add(duration)
		u.LockedUntil = &until
	}
	u.touch()

	u.AddDomainEvent(NewUserStatusChangedEvent(u, old, UserStatusLocked))

	return nil
}

// Unlock unlocks a locked account
func (u *User) Unlock() error {
	if u.Status != UserStatusLocked {
		return shared.NewDomainError("NOT_LOCKED", "User is not locked")
	}

	u.Status = UserStatusActive
	u.FailedAttempts = 0
	u.LockedUntil = nil
	u.touch()

	u.AddDomainEvent(NewUserStatusChangedEvent(u, UserStatusLocked, UserStatusActive))

	return nil
}

// RecordLoginSuccess records a successful login
func (u *User) RecordLoginSuccess() {
	now := time.Now()
	u.LastLoginAt = &now
	u.FailedAttempts = 0
	u.touch()
}

// RecordLoginFailure records a failed attempt.
// Returns true if the account got locked.
func (u *User) RecordLoginFailure(maxAttempts int, lockDuration time.Duration) bool {
	u.FailedAttempts++
	u.touch()

	if u.FailedAttempts >= maxAttempts {
		_ = u.Lock(lockDuration)
		return true
	}
	return false
}

// IsActive returns true if the user is active
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// IsLocked returns true if the user is locked and the lock has not expired
func (u *User) IsLocked() bool {
	if u.Status != UserStatusLocked {
		return false
	}
	if u.LockedUntil != nil && time.Now().After(*u.LockedUntil) {
		return false
	}
	return true
}

func (u *User) touch() {
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func validateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 255 || !emailPattern.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Email format is invalid")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 72 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 72 characters")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
