package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinehillfarm/backend/internal/domain/identity"
	"github.com/pinehillfarm/backend/internal/infrastructure/auth"
	"github.com/pinehillfarm/backend/internal/infrastructure/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestJWTService() *auth.JWTService {
	cfg := config.JWTConfig{
		Secret:                 "test-secret-key-at-least-32-chars",
		RefreshSecret:          "test-refresh-secret-key-32-chars",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
		Issuer:                 "pinehill-test",
		MaxRefreshCount:        10,
	}
	return auth.NewJWTService(cfg)
}

func newTestToken(t *testing.T, jwtService *auth.JWTService, role identity.Role) (*auth.TokenPair, auth.GenerateTokenInput) {
	t.Helper()
	input := auth.GenerateTokenInput{
		TenantID: uuid.New(),
		UserID:   uuid.New(),
		Email:    "alice@pinehill.test",
		Role:     role,
	}
	pair, err := jwtService.GenerateTokenPair(input)
	require.NoError(t, err)
	return pair, input
}

func TestJWTAuth_ValidToken(t *testing.T) {
	jwtService := newTestJWTService()
	pair, input := newTestToken(t, jwtService, identity.RoleManager)

	router := gin.New()
	router.Use(JWTAuth(JWTConfig{JWTService: jwtService}))
	router.GET("/test", func(c *gin.Context) {
		tenantID, ok := GetTenantID(c)
		assert.True(t, ok)
		assert.Equal(t, input.TenantID, tenantID)
		userID, ok := GetUserID(c)
		assert.True(t, ok)
		assert.Equal(t, input.UserID, userID)
		assert.Equal(t, identity.RoleManager, GetRole(c))
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	router := gin.New()
	router.Use(JWTAuth(JWTConfig{JWTService: newTestJWTService()}))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_GarbageToken(t *testing.T) {
	router := gin.New()
	router.Use(JWTAuth(JWTConfig{JWTService: newTestJWTService()}))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "TOKEN_INVALID")
}

func TestJWTAuth_RefreshTokenRejected(t *testing.T) {
	jwtService := newTestJWTService()
	pair, _ := newTestToken(t, jwtService, identity.RoleEmployee)

	router := gin.New()
	router.Use(JWTAuth(JWTConfig{JWTService: jwtService}))
	router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+pair.RefreshToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	jwtService := newTestJWTService()

	newRouter := func(minRole identity.Role) *gin.Engine {
		router := gin.New()
		router.Use(JWTAuth(JWTConfig{JWTService: jwtService}))
		router.GET("/test", RequireRole(minRole), func(c *gin.Context) { c.Status(http.StatusOK) })
		return router
	}

	do := func(router *gin.Engine, token string) int {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	t.Run("admin passes manager gate", func(t *testing.T) {
		pair, _ := newTestToken(t, jwtService, identity.RoleAdmin)
		assert.Equal(t, http.StatusOK, do(newRouter(identity.RoleManager), pair.AccessToken))
	})

	t.Run("employee fails manager gate", func(t *testing.T) {
		pair, _ := newTestToken(t, jwtService, identity.RoleEmployee)
		assert.Equal(t, http.StatusForbidden, do(newRouter(identity.RoleManager), pair.AccessToken))
	})

	t.Run("manager fails admin gate", func(t *testing.T) {
		pair, _ := newTestToken(t, jwtService, identity.RoleManager)
		assert.Equal(t, http.StatusForbidden, do(newRouter(identity.RoleAdmin), pair.AccessToken))
	})

	t.Run("employee passes employee gate", func(t *testing.T) {
		pair, _ := newTestToken(t, jwtService, identity.RoleEmployee)
		assert.Equal(t, http.StatusOK, do(newRouter(identity.RoleEmployee), pair.AccessToken))
	})
}
