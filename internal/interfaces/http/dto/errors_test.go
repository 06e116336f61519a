package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code   string
		status int
	}{
		{"INVALID_CREDENTIALS", http.StatusUnauthorized},
		{"EMAIL_TAKEN", http.StatusConflict},
		{"SHIFT_OVERLAP", http.StatusConflict},
		{"SYNC_IN_PROGRESS", http.StatusConflict},
		{"INVALID_STATE", http.StatusUnprocessableEntity},
		{"SHIPPING_PROVIDER_ERROR", http.StatusBadGateway},
		{"INTERNAL_ERROR", http.StatusInternalServerError},
		// Suffix rules
		{"PURCHASE_NOT_FOUND", http.StatusNotFound},
		{"PROJECT_NOT_FOUND", http.StatusNotFound},
		{"SOMETHING_TAKEN", http.StatusConflict},
		{"DOWNSTREAM_ERROR", http.StatusInternalServerError},
		// Unknown validation codes are client errors
		{"INVALID_SCENE", http.StatusBadRequest},
		{"INVALID_TAX_RATE", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.status, GetHTTPStatus(tt.code))
		})
	}
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]string{"a"}, 45, 2, 20)

	assert.True(t, resp.Success)
	assert.Equal(t, int64(45), resp.Meta.Total)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}

func TestListRequest_Normalize(t *testing.T) {
	r := ListRequest{}
	r.Normalize()

	assert.Equal(t, 1, r.Page)
	assert.Equal(t, 20, r.PageSize)
	assert.Equal(t, "created_at", r.OrderBy)
	assert.Equal(t, "desc", r.OrderDir)
}
