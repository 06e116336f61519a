package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pinehillfarm/backend/internal/domain/identity"
	"github.com/pinehillfarm/backend/internal/infrastructure/auth"
	"github.com/pinehillfarm/backend/internal/interfaces/http/dto"
)

// JWT context keys
const (
	JWTClaimsKey   = "jwt_claims"
	JWTUserIDKey   = "jwt_user_id"
	JWTTenantIDKey = "jwt_tenant_id"
	JWTEmailKey    = "jwt_email"
	JWTRoleKey     = "jwt_role"
	AuthHeaderKey  = "Authorization"
	BearerPrefix   = "Bearer "
)

// JWTConfig holds the auth middleware dependencies
type JWTConfig struct {
	JWTService *auth.JWTService
	// Blacklist is optional, revocation checks are skipped without it
	Blacklist auth.TokenBlacklist
	Logger    *zap.Logger

	// Paths that bypass authentication, matched exactly or by prefix
	SkipPaths        []string
	SkipPathPrefixes []string
}

func (cfg JWTConfig) skip(path string) bool {
	for _, p := range cfg.SkipPaths {
		if path == p {
			return true
		}
	}
	for _, prefix := range cfg.SkipPathPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// JWTAuth validates the bearer token, rejects revoked tokens and stores
// the claims on the request context.
func JWTAuth(cfg JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.skip(c.Request.URL.Path) {
			c.Next()
			return
		}

		header := c.GetHeader(AuthHeaderKey)
		if header == "" || !strings.HasPrefix(header, BearerPrefix) {
			abortUnauthorized(c, "UNAUTHORIZED", "Authentication required")
			return
		}
		tokenString := strings.TrimPrefix(header, BearerPrefix)
		if tokenString == "" {
			abortUnauthorized(c, "UNAUTHORIZED", "Authentication required")
			return
		}

		claims, err := cfg.JWTService.ValidateAccessToken(tokenString)
		if err != nil {
			code, message := tokenErrorCode(err)
			abortUnauthorized(c, code, message)
			return
		}

		if cfg.Blacklist != nil {
			ctx := c.Request.Context()

			if claims.ID != "" {
				blacklisted, err := cfg.Blacklist.IsBlacklisted(ctx, claims.ID)
				if err != nil {
					// Fail open so a Redis outage does not lock everyone out
					if cfg.Logger != nil {
						cfg.Logger.Error("Failed to check token blacklist",
							zap.String("jti", claims.ID), zap.Error(err))
					}
				} else if blacklisted {
					abortUnauthorized(c, "TOKEN_REVOKED", "Token has been revoked")
					return
				}
			}

			if claims.UserID != "" {
				invalidated, err := cfg.Blacklist.IsUserTokenInvalidated(ctx, claims.UserID, claims.GetIssuedAtTime())
				if err != nil {
					if cfg.Logger != nil {
						cfg.Logger.Error("Failed to check user token invalidation",
							zap.String("user_id", claims.UserID), zap.Error(err))
					}
				} else if invalidated {
					abortUnauthorized(c, "TOKEN_REVOKED", "Session has been invalidated")
					return
				}
			}
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTUserIDKey, claims.UserID)
		c.Set(JWTTenantIDKey, claims.TenantID)
		c.Set(JWTEmailKey, claims.Email)
		c.Set(JWTRoleKey, claims.Role)

		c.Next()
	}
}

func tokenErrorCode(err error) (string, string) {
	switch err {
	case auth.ErrExpiredToken:
		return "TOKEN_EXPIRED", "Token has expired"
	case auth.ErrTokenNotYetValid:
		return "TOKEN_INVALID", "Token is not yet valid"
	case auth.ErrInvalidTokenType:
		return "TOKEN_INVALID", "Wrong token type"
	default:
		return "TOKEN_INVALID", "Invalid token"
	}
}

func abortUnauthorized(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponseWithRequestID(code, message, c.GetString(RequestIDKey)))
}

// GetClaims returns the validated claims, or nil outside an authenticated
// request.
func GetClaims(c *gin.Context) *auth.Claims {
	v, ok := c.Get(JWTClaimsKey)
	if !ok {
		return nil
	}
	claims, ok := v.(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}

// GetTenantID returns the authenticated tenant ID
func GetTenantID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetString(JWTTenantIDKey))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// GetUserID returns the authenticated user ID
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.GetString(JWTUserIDKey))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// GetRole returns the authenticated user's role
func GetRole(c *gin.Context) identity.Role {
	return identity.Role(c.GetString(JWTRoleKey))
}
