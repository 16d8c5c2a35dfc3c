package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	token, err := m.GenerateToken(42, "alice", "admin")
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	claims, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID != 42 || claims.Username != "alice" || claims.Role != "admin" {
		t.Errorf("claims = %+v", claims)
	}
	if claims.ID == "" {
		t.Error("claims.ID is empty, want a token id")
	}
}

func TestValidateTokenRejects(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	token, _ := m.GenerateToken(1, "bob", "manager")

	other := NewTokenManager("other-secret", time.Hour)
	if _, err := other.ValidateToken(token); err != ErrInvalidToken {
		t.Errorf("foreign secret: error = %v, want ErrInvalidToken", err)
	}

	later := NewTokenManager("secret", time.Hour)
	later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := later.ValidateToken(token); err != ErrInvalidToken {
		t.Errorf("expired: error = %v, want ErrInvalidToken", err)
	}

	if _, err := m.ValidateToken("not-a-token"); err != ErrInvalidToken {
		t.Errorf("garbage: error = %v, want ErrInvalidToken", err)
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "correct horse" {
		t.Error("hash equals plaintext")
	}
	if !CheckPassword(hash, "correct horse") {
		t.Error("CheckPassword() = false for the right password")
	}
	if CheckPassword(hash, "wrong") {
		t.Error("CheckPassword() = true for a wrong password")
	}
}

func TestMemoryRevocationStore(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	store := NewMemoryRevocationStore()
	store.now = func() time.Time { return now }

	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{
		ID:        "jti-1",
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}}
	other := &Claims{RegisteredClaims: jwt.RegisteredClaims{ID: "jti-2"}}

	if revoked, _ := store.IsRevoked(ctx, claims); revoked {
		t.Fatal("IsRevoked() = true before Revoke")
	}
	if err := store.Revoke(ctx, claims); err != nil {
		t.Fatalf("Revoke() error = %v", err)
	}
	if revoked, _ := store.IsRevoked(ctx, claims); !revoked {
		t.Error("IsRevoked() = false after Revoke")
	}
	if revoked, _ := store.IsRevoked(ctx, other); revoked {
		t.Error("unrelated token reported revoked")
	}

	now = now.Add(2 * time.Hour)
	if revoked, _ := store.IsRevoked(ctx, claims); revoked {
		t.Error("IsRevoked() = true after the token expired")
	}
}

func TestNewRevocationStoreFallsBackToMemory(t *testing.T) {
	if _, ok := NewRevocationStore(nil).(*MemoryRevocationStore); !ok {
		t.Error("NewRevocationStore(nil) is not the memory store")
	}
}
