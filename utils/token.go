package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

// TokenInspector peeks at the claims of a bearer token without verifying its
// signature. The platform normally issues JWTs, but an opaque token is legal,
// so callers treat any error here as "nothing to report" rather than a
// failure.
type TokenInspector struct {
	parser *jwt.Parser
}

func NewTokenInspector() *TokenInspector {
	return &TokenInspector{parser: &jwt.Parser{}}
}

type TokenInfo struct {
	ExpiresAt time.Time
	IssuedAt  time.Time
}

func (i TokenInfo) Expired() bool {
	return time.Now().After(i.ExpiresAt)
}

func (i TokenInfo) TimeToExpiry() time.Duration {
	return time.Until(i.ExpiresAt)
}

func (t *TokenInspector) Inspect(tokenString string) (TokenInfo, error) {
	claims := &jwt.StandardClaims{}
	_, _, err := t.parser.ParseUnverified(tokenString, claims)
	if err != nil {
		return TokenInfo{}, fmt.Errorf("token is not a readable JWT, %v", err.Error())
	}

	if claims.ExpiresAt == 0 {
		return TokenInfo{}, fmt.Errorf("token carries no expiry claim")
	}

	return TokenInfo{
		ExpiresAt: time.Unix(claims.ExpiresAt, 0),
		IssuedAt:  time.Unix(claims.IssuedAt, 0),
	}, nil
}
