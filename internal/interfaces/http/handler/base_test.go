package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinehillfarm/backend/internal/domain/identity"
	"github.com/pinehillfarm/backend/internal/domain/shared"
	"github.com/pinehillfarm/backend/internal/interfaces/http/dto"
	"github.com/pinehillfarm/backend/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setAuthContext simulates an authenticated request without a real token
func setAuthContext(c *gin.Context, tenantID, userID uuid.UUID, role identity.Role) {
	c.Set(middleware.JWTTenantIDKey, tenantID.String())
	c.Set(middleware.JWTUserIDKey, userID.String())
	c.Set(middleware.JWTRoleKey, string(role))
}

func newTestContext(t *testing.T, method, target string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, nil)
	return c, w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestBaseHandler_Success(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(t, "GET", "/")

	h.Success(c, map[string]string{"key": "value"})

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	assert.Nil(t, resp.Error)
}

func TestBaseHandler_SuccessWithMeta(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(t, "GET", "/")

	h.SuccessWithMeta(c, []string{"a", "b"}, 45, 2, 20)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(45), resp.Meta.Total)
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}

func TestBaseHandler_HandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "not found maps to 404",
			err:        shared.NewDomainError("ITEM_NOT_FOUND", "Item not found"),
			wantStatus: http.StatusNotFound,
			wantCode:   "ITEM_NOT_FOUND",
		},
		{
			name:       "conflict maps to 409",
			err:        shared.NewDomainError("SYNC_IN_PROGRESS", "A sync is already running"),
			wantStatus: http.StatusConflict,
			wantCode:   "SYNC_IN_PROGRESS",
		},
		{
			name:       "business rule maps to 422",
			err:        shared.NewDomainError("INSUFFICIENT_STOCK", "Not enough stock"),
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "INSUFFICIENT_STOCK",
		},
		{
			name:       "unknown error maps to 500",
			err:        assert.AnError,
			wantStatus: http.StatusInternalServerError,
			wantCode:   dto.ErrCodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &BaseHandler{}
			c, w := newTestContext(t, "GET", "/")

			h.HandleError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decodeResponse(t, w)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestBaseHandler_TenantIDMissingAborts(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(t, "GET", "/")

	_, ok := h.tenantID(c)

	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBaseHandler_PathID(t *testing.T) {
	h := &BaseHandler{}
	c, _ := newTestContext(t, "GET", "/")
	want := uuid.New()
	c.Params = gin.Params{{Key: "id", Value: want.String()}}

	got, ok := h.pathID(c, "id")
	require.True(t, ok)
	assert.Equal(t, want, got)

	c2, w2 := newTestContext(t, "GET", "/")
	c2.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}
	_, ok = h.pathID(c2, "id")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w2.Code)
}
