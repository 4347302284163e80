package handlers

import (
	"net/http"

	"github.com/upb/external-knowledge-api/services"
	"github.com/upb/external-knowledge-api/utils"
	"go.uber.org/zap"
)

// HandleServiceError maps domain errors to HTTP responses.
// Anything that is not an authentication or validation failure is answered
// with a generic 500 and logged.
func HandleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if err == nil {
		return
	}

	switch {
	case services.IsUnauthorizedError(err):
		if err := utils.WriteUnauthorized(w, services.GetErrorMessage(err)); err != nil {
			logger.Error("failed to write unauthorized response", zap.Error(err))
		}

	case services.IsValidationError(err):
		if err := utils.WriteUnprocessableEntity(w, services.GetErrorMessage(err), stringDetails(err)); err != nil {
			logger.Error("failed to write unprocessable entity response", zap.Error(err))
		}

	case services.IsExternalError(err):
		// Backend details stay in the log; callers get the generic 500.
		logger.Error("knowledge base error",
			zap.Error(err),
			zap.String("error_type", string(services.ErrorTypeExternal)))
		if err := utils.WriteInternalServerError(w, ""); err != nil {
			logger.Error("failed to write internal error response", zap.Error(err))
		}

	default:
		logger.Error("internal server error",
			zap.Error(err),
			zap.String("error_type", string(services.GetErrorType(err))))
		if err := utils.WriteInternalServerError(w, ""); err != nil {
			logger.Error("failed to write internal error response", zap.Error(err))
		}
	}
}

// HandleValidationError handles validation errors from request parsing
func HandleValidationError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if utils.IsValidationError(err) {
		if err := utils.WriteUnprocessableEntity(w, err.Error(), utils.GetValidationFields(err)); err != nil {
			logger.Error("failed to write validation error response", zap.Error(err))
		}
		return
	}

	HandleServiceError(w, services.WrapValidation(err.Error(), err), logger)
}

func stringDetails(err error) map[string]string {
	details := services.GetErrorDetails(err)
	if len(details) == 0 {
		return nil
	}
	out := make(map[string]string, len(details))
	for k, v := range details {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}
