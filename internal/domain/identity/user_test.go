package identity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	tenantID := uuid.New()

	t.Run("creates user with valid email and password", func(t *testing.T) {
		user, err := NewUser(tenantID, "jane@pinehill.example", "Password123", RoleEmployee)

		require.NoError(t, err)
		assert.NotNil(t, user)
		assert.Equal(t, tenantID, user.TenantID)
		assert.Equal(t, "jane@pinehill.example", user.Email)
		assert.NotEmpty(t, user.PasswordHash)
		assert.Equal(t, UserStatusPending, user.Status)
		assert.Equal(t, RoleEmployee, user.Role)
		assert.NotNil(t, user.PasswordChangedAt)

		events := user.GetDomainEvents()
		assert.Len(t, events, 1)
		_, ok := events[0].(*UserCreatedEvent)
		assert.True(t, ok)
	})

	t.Run("normalizes email to lowercase", func(t *testing.T) {
		user, err := NewUser(tenantID, "Jane@PineHill.example", "Password123", RoleManager)

		require.NoError(t, err)
		assert.Equal(t, "jane@pinehill.example", user.Email)
	})

	t.Run("fails with empty email", func(t *testing.T) {
		_, err := NewUser(tenantID, "", "Password123", RoleEmployee)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be empty")
	})

	t.Run("fails with malformed email", func(t *testing.T) {
		_, err := NewUser(tenantID, "not-an-email", "Password123", RoleEmployee)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "format is invalid")
	})

	t.Run("fails with short password", func(t *testing.T) {
		_, err := NewUser(tenantID, "jane@pinehill.example", "Pass1", RoleEmployee)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "at least 8 characters")
	})

	t.Run("fails with unknown role", func(t *testing.T) {
		_, err := NewUser(tenantID, "jane@pinehill.example", "Password123", Role("owner"))

		assert.Error(t, err)
	})

	t.Run("active user starts active", func(t *testing.T) {
		user, err := NewActiveUser(tenantID, "jane@pinehill.example", "Password123", RoleAdmin)

		require.NoError(t, err)
		assert.Equal(t, UserStatusActive, user.Status)
		assert.True(t, user.IsActive())
	})
}

func TestUserPassword(t *testing.T) {
	tenantID := uuid.New()

	t.Run("verify password succeeds with correct password", func(t *testing.T) {
		user, err := NewUser(tenantID, "jane@pinehill.example", "Password123", RoleEmployee)
		require.NoError(t, err)

		assert.True(t, user.VerifyPassword("Password123"))
		assert.False(t, user.VerifyPassword("WrongPassword"))
	})

	t.Run("change password requires current password", func(t *testing.T) {
		user, err := NewUser(tenantID, "jane@pinehill.example", "Password123", RoleEmployee)
		require.NoError(t, err)

		err = user.ChangePassword("WrongPassword", "NewPassword456")
		assert.Error(t, err)

		err = user.ChangePassword("Password123", "NewPassword456")
		require.NoError(t, err)
		assert.True(t, user.VerifyPassword("NewPassword456"))
	})

	t.Run("set password rejects short passwords", func(t *testing.T) {
		user, err := NewUser(tenantID, "jane@pinehill.example", "Password123", RoleEmployee)
		require.NoError(t, err)

		err = user.SetPassword("short")
		assert.Error(t, err)
	})
}

func TestUserStatus(t *testing.T) {
	tenantID := uuid.New()

	newActive := func(t *testing.T) *User {
		user, err := NewActiveUser(tenantID, "jane@pinehill.example", "Password123", RoleEmployee)
		require.NoError(t, err)
		user.ClearDomainEvents()
		return user
	}

	t.Run("activate fails when already active", func(t *testing.T) {
		user := newActive(t)
		assert.Error(t, user.Activate())
	})

	t.Run("deactivate then activate", func(t *testing.T) {
		user := newActive(t)
		require.NoError(t, user.Deactivate())
		assert.Equal(t, UserStatusDeactivated, user.Status)
		require.NoError(t, user.Activate())
		assert.True(t, user.IsActive())
	})

	t.Run("lock expires after duration", func(t *testing.T) {
		user := newActive(t)
		require.NoError(t, user.Lock(time.Hour))
		assert.True(t, user.IsLocked())

		past := time.Now().Add(-time.Minute)
		user.LockedUntil = &past
		assert.False(t, user.IsLocked())
	})

	t.Run("login failures lock after max attempts", func(t *testing.T) {
		user := newActive(t)

		locked := user.RecordLoginFailure(3, time.Hour)
		assert.False(t, locked)
		locked = user.RecordLoginFailure(3, time.Hour)
		assert.False(t, locked)
		locked = user.RecordLoginFailure(3, time.Hour)
		assert.True(t, locked)
		assert.True(t, user.IsLocked())
	})

	t.Run("login success resets failed attempts", func(t *testing.T) {
		user := newActive(t)
		user.RecordLoginFailure(5, time.Hour)
		user.RecordLoginSuccess()

		assert.Zero(t, user.FailedAttempts)
		assert.NotNil(t, user.LastLoginAt)
	})
}

func TestRole(t *testing.T) {
	t.Run("rank ordering", func(t *testing.T) {
		assert.True(t, RoleAdmin.AtLeast(RoleManager))
		assert.True(t, RoleAdmin.AtLeast(RoleEmployee))
		assert.True(t, RoleManager.AtLeast(RoleEmployee))
		assert.False(t, RoleEmployee.AtLeast(RoleManager))
		assert.False(t, RoleManager.AtLeast(RoleAdmin))
	})

	t.Run("assign role records event", func(t *testing.T) {
		user, err := NewActiveUser(uuid.New(), "jane@pinehill.example", "Password123", RoleEmployee)
		require.NoError(t, err)
		user.ClearDomainEvents()

		require.NoError(t, user.AssignRole(RoleManager))
		assert.Equal(t, RoleManager, user.Role)

		events := user.GetDomainEvents()
		require.Len(t, events, 1)
		evt, ok := events[0].(*UserRoleChangedEvent)
		require.True(t, ok)
		assert.Equal(t, RoleEmployee, evt.OldRole)
		assert.Equal(t, RoleManager, evt.NewRole)
	})

	t.Run("assigning same role fails", func(t *testing.T) {
		user, err := NewActiveUser(uuid.New(), "jane@pinehill.example", "Password123", RoleEmployee)
		require.NoError(t, err)

		assert.Error(t, user.AssignRole(RoleEmployee))
	})
}
