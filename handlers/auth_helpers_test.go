package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"gastos/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticateRejectsMalformedHeaders(t *testing.T) {
	tcs := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Basic abc123"},
		{"not base64", "Bearer !!!not-base64!!!"},
		{"not json", "Bearer bm90LWpzb24="},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/expenses", nil)
			if tc.header != "" {
				r.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()

			auth := authenticate(w, r)

			assert.Nil(t, auth)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestWriteApiError(t *testing.T) {
	w := httptest.NewRecorder()

	writeApiError(w, shared.ApiError{
		Type:   shared.ApiErrorTypeNotFound,
		Status: http.StatusNotFound,
		Msg:    "expense not found",
	})

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"type":"not_found","status":404,"msg":"expense not found"}`, w.Body.String())
}
