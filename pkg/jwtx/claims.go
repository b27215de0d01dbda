package jwtx

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Role values issued by the blog backend in the "auth" claim.
const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

// Claims are the access-token claims the blog backend issues. The subject is
// the username.
type Claims struct {
	jwt.RegisteredClaims

	// Role key, e.g. "ROLE_USER" or "ROLE_ADMIN"
	Role string `json:"auth,omitempty"`

	// Nickname is the display name for the user
	Nickname string `json:"nickname,omitempty"`
}

// Username returns the subject claim.
func (c *Claims) Username() string {
	return c.Subject
}

// IsAdmin reports whether the role claim grants admin rights. Older tokens
// carry the bare role name without the ROLE_ prefix.
func (c *Claims) IsAdmin() bool {
	return IsAdminRole(c.Role)
}

// IsAdminRole reports whether role names the admin role.
func IsAdminRole(role string) bool {
	return strings.EqualFold(strings.TrimPrefix(role, "ROLE_"), "ADMIN")
}

// ExpiresAtTime returns the exp claim, or the zero time when absent.
func (c *Claims) ExpiresAtTime() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

// ValidateExpiryAt checks exp and nbf against now. leeway widens both
// bounds to absorb clock skew between client and server.
func (c *Claims) ValidateExpiryAt(now time.Time, leeway time.Duration) error {
	// A token without exp can never be proven fresh.
	if c.ExpiresAt == nil {
		return ErrInvalidClaim
	}

	if !now.Before(c.ExpiresAt.Add(leeway)) {
		return ErrExpired
	}

	if c.NotBefore != nil && now.Before(c.NotBefore.Add(-leeway)) {
		return ErrNotYetValid
	}

	return nil
}
