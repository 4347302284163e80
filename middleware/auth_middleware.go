package middleware

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/upb/external-knowledge-api/internal/observability"
	"github.com/upb/external-knowledge-api/services"
	"github.com/upb/external-knowledge-api/utils"
	"go.uber.org/zap"
)

// TokenValidator defines the interface for validating bearer credentials
type TokenValidator interface {
	// ValidateToken returns nil when the credential is accepted
	ValidateToken(ctx context.Context, token string) error
}

// StaticTokenValidator accepts exactly one shared secret.
// An empty secret accepts nothing.
type StaticTokenValidator struct {
	token string
}

// NewStaticTokenValidator creates a validator for the configured secret
func NewStaticTokenValidator(token string) *StaticTokenValidator {
	return &StaticTokenValidator{token: token}
}

// ValidateToken implements TokenValidator
func (v *StaticTokenValidator) ValidateToken(_ context.Context, token string) error {
	if v.token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(v.token)) != 1 {
		return services.NewAuthError(services.MsgInvalidToken, services.AuthReasonTokenMismatch)
	}
	return nil
}

// AuthMiddleware provides bearer authentication middleware functionality
type AuthMiddleware struct {
	validator TokenValidator
	logger    *zap.Logger
	metrics   *observability.Metrics
}

// NewAuthMiddleware creates a new AuthMiddleware. metrics may be nil.
func NewAuthMiddleware(validator TokenValidator, logger *zap.Logger, metrics *observability.Metrics) *AuthMiddleware {
	return &AuthMiddleware{
		validator: validator,
		logger:    logger,
		metrics:   metrics,
	}
}

// authFailureLogs holds the log line written for each failure reason
var authFailureLogs = map[string]string{
	services.AuthReasonMissingHeader: "authorization header is missing",
	services.AuthReasonInvalidFormat: "invalid authorization header format: not bearer",
	services.AuthReasonEmptyToken:    "invalid token: empty",
	services.AuthReasonTokenMismatch: "invalid token: not match",
}

// RequireAuth is a middleware that requires "Authorization: Bearer <token>"
// carrying the configured credential.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := m.Authenticate(r); err != nil {
			reason := services.GetAuthReason(err)
			m.logger.Error(authFailureLogs[reason],
				zap.String("request_id", GetRequestIDFromContext(r.Context())),
				zap.String("reason", reason))
			m.metrics.RecordAuthFailure(reason)
			_ = utils.WriteUnauthorized(w, services.GetErrorMessage(err))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Authenticate checks the Authorization header of r.
// It returns an unauthorized *services.DomainError describing the first failed check.
func (m *AuthMiddleware) Authenticate(r *http.Request) error {
	token, err := extractBearerToken(r)
	if err != nil {
		return err
	}
	return m.validator.ValidateToken(r.Context(), token)
}

// extractBearerToken extracts the credential from the Authorization header
func extractBearerToken(r *http.Request) (string, error) {
	values := r.Header.Values("Authorization")
	if len(values) == 0 {
		return "", services.NewAuthError(services.MsgMissingAuthorization, services.AuthReasonMissingHeader)
	}

	parts := strings.Fields(values[0])
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", services.NewAuthError(services.MsgInvalidAuthFormat, services.AuthReasonInvalidFormat)
	}

	token := parts[1]
	if token == "" {
		return "", services.NewAuthError(services.MsgInvalidToken, services.AuthReasonEmptyToken)
	}

	return token, nil
}
