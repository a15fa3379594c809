package token

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Claims is the subset of the backend's JWT payload the client reads.
// All temporal claims are Unix timestamps in seconds.
type Claims struct {
	UserID    int64  `json:"user_id"`
	Email     string `json:"email,omitempty"`
	TokenType string `json:"token_type,omitempty"`
	ExpiresAt int64  `json:"exp"`
	IssuedAt  int64  `json:"iat,omitempty"`
}

// Expiry returns the expiration time and whether an exp claim was present.
func (c Claims) Expiry() (time.Time, bool) {
	if c.ExpiresAt <= 0 {
		return time.Time{}, false
	}
	return time.Unix(c.ExpiresAt, 0), true
}

// Decode parses the payload segment of a JWT without verifying its signature.
// The server remains authoritative; this only reads what the token claims.
func Decode(tokenString string) (Claims, error) {
	var claims Claims

	if tokenString == "" {
		return claims, ErrEmptyToken
	}

	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		return claims, fmt.Errorf("%w: expected 3 segments, got %d", ErrMalformedToken, len(parts))
	}

	payload, err := base64URLDecode(parts[1])
	if err != nil {
		return claims, fmt.Errorf("%w: decode payload: %w", ErrMalformedToken, err)
	}

	if err := json.Unmarshal(payload, &claims); err != nil {
		return claims, fmt.Errorf("%w: unmarshal payload: %w", ErrMalformedToken, err)
	}

	return claims, nil
}

// IsExpired reports whether the token should be considered expired.
// Undecodable tokens and tokens without an exp claim count as expired,
// so a broken stored token can never keep a session alive.
func IsExpired(tokenString string) bool {
	claims, err := Decode(tokenString)
	if err != nil {
		return true
	}

	expiry, ok := claims.Expiry()
	if !ok {
		return true
	}

	return !time.Now().Before(expiry)
}

// base64URLDecode decodes base64url data, restoring padding as needed.
// JWT segments omit padding per RFC 7515, but Go's decoder requires it.
func base64URLDecode(s string) ([]byte, error) {
	switch len(s) % 4 {
	case 2:
		s += "=="
	case 3:
		s += "="
	}

	return base64.URLEncoding.DecodeString(s)
}
