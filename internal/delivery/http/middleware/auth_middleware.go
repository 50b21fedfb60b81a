package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"medical-appointments-api/internal/domain/entity"
	"medical-appointments-api/internal/usecase"
	"medical-appointments-api/pkg/jwt"
	"medical-appointments-api/pkg/response"

	"github.com/sirupsen/logrus"
)

type contextKey string

const (
	UserKey   contextKey = "user"
	ClaimsKey contextKey = "claims"
)

// Authenticator resolves a bearer token to an active user.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*entity.User, *jwt.Claims, error)
}

type AuthMiddleware struct {
	authenticator Authenticator
	log           *logrus.Logger
}

func NewAuthMiddleware(authenticator Authenticator, log *logrus.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		authenticator: authenticator,
		log:           log,
	}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Access token required")
			return
		}

		// Extract token from "Bearer <token>"
		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || strings.TrimSpace(tokenString) == "" {
			response.Unauthorized(w, "Invalid authorization header format")
			return
		}

		user, claims, err := m.authenticator.Authenticate(r.Context(), strings.TrimSpace(tokenString))
		if err != nil {
			switch {
			case errors.Is(err, usecase.ErrInvalidToken):
				response.Forbidden(w, "Invalid or expired token")
			case errors.Is(err, usecase.ErrTokenRevoked):
				response.Unauthorized(w, "Token has been revoked")
			case errors.Is(err, usecase.ErrUserNotFound):
				response.Unauthorized(w, "User not found or inactive")
			default:
				m.log.Warnf("Failed to authenticate request: %+v", err)
				response.InternalServerError(w, "")
			}
			return
		}

		ctx := context.WithValue(r.Context(), UserKey, user)
		ctx = context.WithValue(ctx, ClaimsKey, claims)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserFromContext returns the user attached by Authenticate.
func GetUserFromContext(ctx context.Context) (*entity.User, bool) {
	user, ok := ctx.Value(UserKey).(*entity.User)
	return user, ok && user != nil
}

func GetClaimsFromContext(ctx context.Context) (*jwt.Claims, bool) {
	claims, ok := ctx.Value(ClaimsKey).(*jwt.Claims)
	return claims, ok && claims != nil
}

// WithUser attaches an authenticated user to ctx.
func WithUser(ctx context.Context, user *entity.User) context.Context {
	return context.WithValue(ctx, UserKey, user)
}
