package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
)

func signedToken(t *testing.T, claims jwt.StandardClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	if err != nil {
		t.Fatal(err)
	}
	return token
}

func TestTokenInspectorReadsExpiry(t *testing.T) {
	issued := time.Now().Add(-time.Minute)
	expires := time.Now().Add(15 * time.Minute)
	token := signedToken(t, jwt.StandardClaims{
		IssuedAt:  issued.Unix(),
		ExpiresAt: expires.Unix(),
	})

	info, err := NewTokenInspector().Inspect(token)
	if err != nil {
		t.Fatal(err)
	}
	if info.ExpiresAt.Unix() != expires.Unix() {
		t.Fatalf("expires at=%v want %v", info.ExpiresAt, expires)
	}
	if info.Expired() {
		t.Fatal("token reported expired")
	}
	if info.TimeToExpiry() <= 0 {
		t.Fatalf("time to expiry=%v", info.TimeToExpiry())
	}
}

func TestTokenInspectorExpiredToken(t *testing.T) {
	token := signedToken(t, jwt.StandardClaims{
		IssuedAt:  time.Now().Add(-2 * time.Hour).Unix(),
		ExpiresAt: time.Now().Add(-time.Hour).Unix(),
	})

	info, err := NewTokenInspector().Inspect(token)
	if err != nil {
		t.Fatal(err)
	}
	if !info.Expired() {
		t.Fatal("token not reported expired")
	}
}

func TestTokenInspectorRejectsOpaqueToken(t *testing.T) {
	if _, err := NewTokenInspector().Inspect("not-a-jwt"); err == nil {
		t.Fatal("expected error")
	}
}

func TestTokenInspectorRejectsMissingExpiry(t *testing.T) {
	token := signedToken(t, jwt.StandardClaims{IssuedAt: time.Now().Unix()})

	_, err := NewTokenInspector().Inspect(token)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "expiry") {
		t.Fatalf("err=%v", err)
	}
}
