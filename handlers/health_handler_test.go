package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHandleHealth(t *testing.T) {
	handler := NewHealthHandler("us-east-1", false, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()

	handler.HandleHealth(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response HealthResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "healthy", response.Status)
	assert.NotEmpty(t, response.Timestamp)
}

func TestHandleReadiness(t *testing.T) {
	tests := []struct {
		name           string
		authConfigured bool
		expectedStatus int
		expectedToken  string
	}{
		{"ready with bearer token", true, http.StatusOK, "configured"},
		{"not ready without bearer token", false, http.StatusServiceUnavailable, "missing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHealthHandler("eu-west-1", tt.authConfigured, zap.NewNop())

			req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
			w := httptest.NewRecorder()

			handler.HandleReadiness(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response HealthResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
			assert.Equal(t, tt.expectedToken, response.Checks["bearer_token"])
			assert.Equal(t, "eu-west-1", response.Checks["default_region"])
		})
	}
}

func TestHandleReadiness_RegionFromSDKChain(t *testing.T) {
	handler := NewHealthHandler("", true, zap.NewNop())

	w := httptest.NewRecorder()
	handler.HandleReadiness(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	var response HealthResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "sdk-default", response.Checks["default_region"])
}
