package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/tair/population/pkg/auth"
	"github.com/tair/population/pkg/httpx"
	"github.com/tair/population/pkg/logger"
)

type contextKey string

const claimsKey contextKey = "auth_claims"

// Principal is the authenticated caller attached to the request context.
type Principal struct {
	UserID   uint
	Username string
	Role     string
	Claims   *auth.Claims
}

// PrincipalFromContext returns the caller placed there by Authenticator.
func PrincipalFromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(claimsKey).(*Principal)
	return p, ok
}

// WithPrincipal stores p in ctx.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, claimsKey, p)
}

// Authenticator validates bearer tokens for protected routes.
type Authenticator struct {
	tokens  *auth.TokenManager
	revoked auth.RevocationStore
}

func NewAuthenticator(tokens *auth.TokenManager, revoked auth.RevocationStore) *Authenticator {
	if revoked == nil {
		revoked = auth.NoopRevocationStore{}
	}
	return &Authenticator{tokens: tokens, revoked: revoked}
}

// RequireAuth rejects requests without a valid, unrevoked bearer token.
func (a *Authenticator) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			httpx.RespondErrorMessage(w, http.StatusUnauthorized, "Authorization header required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			httpx.RespondErrorMessage(w, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		claims, err := a.tokens.ValidateToken(parts[1])
		if err != nil {
			logger.Warn(r.Context()).Err(err).Msg("Invalid token")
			httpx.RespondErrorMessage(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		revoked, err := a.revoked.IsRevoked(r.Context(), claims)
		if err != nil {
			logger.Error(r.Context()).Err(err).Msg("Token revocation check failed")
			httpx.RespondErrorMessage(w, http.StatusServiceUnavailable, "Authentication unavailable")
			return
		}
		if revoked {
			httpx.RespondErrorMessage(w, http.StatusUnauthorized, "Token has been revoked")
			return
		}

		ctx := WithPrincipal(r.Context(), &Principal{
			UserID:   claims.UserID,
			Username: claims.Username,
			Role:     claims.Role,
			Claims:   claims,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// RequireRole authenticates the caller and then checks the role.
func (a *Authenticator) RequireRole(role string, next http.HandlerFunc) http.HandlerFunc {
	return a.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFromContext(r.Context())
		if !ok || p.Role != role {
			logger.Warn(r.Context()).Str("required_role", role).Msg("Access denied")
			httpx.RespondErrorMessage(w, http.StatusForbidden, "Insufficient permissions")
			return
		}
		next.ServeHTTP(w, r)
	})
}
