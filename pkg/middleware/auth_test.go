package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tair/population/pkg/auth"
)

func newTestAuthenticator(t *testing.T) (*Authenticator, *auth.TokenManager, auth.RevocationStore) {
	t.Helper()
	tokens := auth.NewTokenManager("secret", time.Hour)
	store := auth.NewMemoryRevocationStore()
	return NewAuthenticator(tokens, store), tokens, store
}

func serve(h http.HandlerFunc, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuth(t *testing.T) {
	a, tokens, store := newTestAuthenticator(t)

	var seen *Principal
	h := a.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = PrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	token, _ := tokens.GenerateToken(5, "carol", "manager")

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"valid", "Bearer " + token, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := serve(h, tt.header); rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}

	if seen == nil || seen.UserID != 5 || seen.Username != "carol" || seen.Role != "manager" {
		t.Fatalf("principal = %+v", seen)
	}

	if err := store.Revoke(context.Background(), seen.Claims); err != nil {
		t.Fatalf("Revoke() error = %v", err)
	}
	if rec := serve(h, "Bearer "+token); rec.Code != http.StatusUnauthorized {
		t.Errorf("revoked token status = %d, want 401", rec.Code)
	}
}

func TestRequireRole(t *testing.T) {
	a, tokens, _ := newTestAuthenticator(t)
	h := a.RequireRole("admin", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	manager, _ := tokens.GenerateToken(1, "m", "manager")
	admin, _ := tokens.GenerateToken(2, "a", "admin")

	if rec := serve(h, "Bearer "+manager); rec.Code != http.StatusForbidden {
		t.Errorf("manager status = %d, want 403", rec.Code)
	}
	if rec := serve(h, "Bearer "+admin); rec.Code != http.StatusNoContent {
		t.Errorf("admin status = %d, want 204", rec.Code)
	}
	if rec := serve(h, ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous status = %d, want 401", rec.Code)
	}
}

func TestRequestID(t *testing.T) {
	var got string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("X-Request-ID")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if got != "abc" || rec.Header().Get("X-Request-ID") != "abc" {
		t.Errorf("request id = %q / %q, want abc", got, rec.Header().Get("X-Request-ID"))
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("no request id generated")
	}
}
