package training

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pinehillfarm/backend/internal/domain/identity"
	"github.com/pinehillfarm/backend/internal/domain/shared"
)

// Module is a training course employees work through.
type Module struct {
	shared.TenantAggregateRoot
	Title           string
	Description     string
	ContentURL      string
	RequiredRole    identity.Role // Lowest role the module is assigned to
	DurationMinutes int
	Active          bool
}

// NewModule creates an active training module
func NewModule(tenantID uuid.UUID, title, description, contentURL string, requiredRole identity.Role, durationMinutes int) (*Module, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if len(title) > 200 {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot exceed 200 characters")
	}
	if !requiredRole.IsValid() {
		return nil, shared.NewDomainError("INVALID_ROLE", "Required role is unknown")
	}
	if durationMinutes < 0 {
		return nil, shared.NewDomainError("INVALID_DURATION", "Duration cannot be negative")
	}

	return &Module{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Title:               title,
		Description:         description,
		ContentURL:          contentURL,
		RequiredRole:        requiredRole,
		DurationMinutes:     durationMinutes,
		Active:              true,
	}, nil
}

// Update updates the module content
func (m *Module) Update(title, description, contentURL string, durationMinutes int) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}
	if durationMinutes < 0 {
		return shared.NewDomainError("INVALID_DURATION", "Duration cannot be negative")
	}

	m.Title = title
	m.Description = description
	m.ContentURL = contentURL
	m.DurationMinutes = durationMinutes
	m.UpdatedAt = time.Now()
	m.IncrementVersion()

	return nil
}

// Deactivate hides the module from new enrollments
func (m *Module) Deactivate() {
	if !m.Active {
		return
	}
	m.Active = false
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
}

// Activate re-enables the module
func (m *Module) Activate() {
	if m.Active {
		return
	}
	m.Active = true
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
}

// VisibleTo reports whether users holding role are assigned this module
func (m *Module) VisibleTo(role identity.Role) bool {
	return m.Active && role.AtLeast(m.RequiredRole)
}
