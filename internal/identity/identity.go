// Package identity resolves the authenticated user from the platform
// access token. The token is issued and verified server-side; the
// client only reads claims, so the parse here is deliberately
// unverified.
package identity

import (
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var ErrNoToken = errors.New("identity: access token is empty")

// Identity is an immutable snapshot of who is driving this session.
// It is constructed once at startup and passed in explicitly; nothing
// in the engine reaches for a global.
type Identity struct {
	UserID   int64
	FullName string
	Email    string
}

type tokenClaims struct {
	UserID   int64  `json:"user_id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// FromToken decodes the access token's claims without verifying the
// signature. Ambient credentials (the cookie carrying this token) are
// what the server actually trusts.
func FromToken(token string) (Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Identity{}, ErrNoToken
	}

	var claims tokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return Identity{}, err
	}
	if claims.UserID == 0 {
		return Identity{}, errors.New("identity: token has no user_id claim")
	}

	return Identity{
		UserID:   claims.UserID,
		FullName: claims.FullName,
		Email:    claims.Email,
	}, nil
}
