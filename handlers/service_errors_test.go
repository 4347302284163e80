package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upb/external-knowledge-api/services"
	"github.com/upb/external-knowledge-api/utils"
	"go.uber.org/zap"
)

func TestHandleServiceError(t *testing.T) {
	logger := zap.NewNop()

	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedDetail string
	}{
		{
			name:           "unauthorized error",
			err:            services.NewAuthError(services.MsgInvalidToken, services.AuthReasonTokenMismatch),
			expectedStatus: http.StatusUnauthorized,
			expectedDetail: "Invalid token",
		},
		{
			name:           "validation error",
			err:            services.ErrInvalidBody,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedDetail: "invalid request body",
		},
		{
			name:           "external error",
			err:            services.WrapExternal("bedrock failed", errors.New("throttled")),
			expectedStatus: http.StatusInternalServerError,
			expectedDetail: "Internal Server Error",
		},
		{
			name:           "unknown error",
			err:            errors.New("AccessDeniedException: not authorized"),
			expectedStatus: http.StatusInternalServerError,
			expectedDetail: "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			HandleServiceError(w, tt.err, logger)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response utils.ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
			assert.Equal(t, tt.expectedDetail, response.Detail)
		})
	}
}

func TestHandleServiceError_Nil(t *testing.T) {
	w := httptest.NewRecorder()
	HandleServiceError(w, nil, zap.NewNop())
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestHandleValidationError(t *testing.T) {
	logger := zap.NewNop()

	t.Run("field errors are reported", func(t *testing.T) {
		type body struct {
			Query *string `json:"query" validate:"required"`
		}
		err := utils.ValidateStruct(&body{})
		require.Error(t, err)

		w := httptest.NewRecorder()
		HandleValidationError(w, err, logger)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

		var response utils.ErrorResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.Equal(t, "Validation failed", response.Detail)
		assert.Equal(t, "query is required", response.Details["query"])
	})

	t.Run("plain error becomes 422", func(t *testing.T) {
		w := httptest.NewRecorder()
		HandleValidationError(w, errors.New("bad"), logger)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}
