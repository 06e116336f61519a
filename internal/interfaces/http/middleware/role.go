package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pinehillfarm/backend/internal/domain/identity"
	"github.com/pinehillfarm/backend/internal/interfaces/http/dto"
)

// RequireRole rejects requests whose authenticated role is below minRole.
// Admin passes a manager gate, manager passes an employee gate.
func RequireRole(minRole identity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := GetRole(c)
		if !role.IsValid() || !role.AtLeast(minRole) {
			c.AbortWithStatusJSON(http.StatusForbidden,
				dto.NewErrorResponseWithRequestID(dto.ErrCodeForbidden,
					"Insufficient role for this operation", c.GetString(RequestIDKey)))
			return
		}
		c.Next()
	}
}
