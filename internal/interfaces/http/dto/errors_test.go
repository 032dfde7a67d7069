package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeMissingField, http.StatusBadRequest},
		{ErrCodeInvalidFormat, http.StatusBadRequest},
		{ErrCodeDuplicateKey, http.StatusConflict},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeQuantityExceeded, http.StatusUnprocessableEntity},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeInternal, http.StatusInternalServerError},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
		{"", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	t.Run("rounds total pages up", func(t *testing.T) {
		resp := NewSuccessResponseWithMeta([]string{"a"}, 21, 1, 10)

		assert.True(t, resp.Success)
		assert.Equal(t, int64(21), resp.Meta.Total)
		assert.Equal(t, 3, resp.Meta.TotalPages)
	})

	t.Run("exact division", func(t *testing.T) {
		resp := NewSuccessResponseWithMeta(nil, 20, 2, 10)

		assert.Equal(t, 2, resp.Meta.TotalPages)
	})
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse(ErrCodeDuplicateKey, "DR number DR-1 already exists")

	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeDuplicateKey, resp.Error.Code)
	assert.Equal(t, "DR number DR-1 already exists", resp.Error.Message)
	assert.Empty(t, resp.Error.RequestID)
}
