package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/tmplhub/tmplhub/internal/domain"
	"github.com/tmplhub/tmplhub/internal/repository"
)

type contextKey string

const (
	// ContextKeyToken is the key for storing the API token in request context.
	ContextKeyToken contextKey = "api_token"
)

// AuthMiddleware handles Bearer token authentication for mutating routes.
// Read routes stay public; only sync triggers require a token.
type AuthMiddleware struct {
	tokenRepo *repository.TokenRepository
}

// NewAuthMiddleware creates a new AuthMiddleware.
func NewAuthMiddleware(tokenRepo *repository.TokenRepository) *AuthMiddleware {
	return &AuthMiddleware{
		tokenRepo: tokenRepo,
	}
}

// Authenticate validates the Bearer token and adds it to request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "missing authorization header", http.StatusUnauthorized)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			http.Error(w, "invalid authorization header format", http.StatusUnauthorized)
			return
		}

		secret := parts[1]
		if secret == "" {
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}

		token, err := m.tokenRepo.GetByToken(r.Context(), secret)
		if err != nil {
			if errors.Is(err, domain.ErrTokenNotFound) {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		if !token.IsActive {
			http.Error(w, "token inactive", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeyToken, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetTokenFromContext retrieves the authenticated token from request context.
func GetTokenFromContext(ctx context.Context) (*domain.Token, error) {
	token, ok := ctx.Value(ContextKeyToken).(*domain.Token)
	if !ok || token == nil {
		return nil, domain.ErrTokenNotFound
	}
	return token, nil
}
