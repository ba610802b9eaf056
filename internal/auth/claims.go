package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is what a verified token resolves to: the account id and role it
// was issued for, plus the validity window.
type Claims interface {
	AccountID() string
	Role() Role
	Expires() time.Time
	IssuedTime() time.Time
}

// JWTClaims is the concrete wire shape of the token payload.
type JWTClaims struct {
	jwt.RegisteredClaims
	UID         string `json:"uid,omitempty"`
	AccountRole Role   `json:"role,omitempty"`
}

var _ Claims = (*JWTClaims)(nil)

// AccountID returns the account the token was issued for.
func (c *JWTClaims) AccountID() string {
	if c.UID != "" {
		return c.UID
	}
	return c.RegisteredClaims.Subject
}

// Role returns the role embedded at issuance.
func (c *JWTClaims) Role() Role {
	return c.AccountRole
}

// Expires returns the expiration time.
func (c *JWTClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedTime returns the issued-at time.
func (c *JWTClaims) IssuedTime() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}
