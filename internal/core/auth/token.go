package auth

import (
	"errors"
	"fmt"
	"slices"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// Permission is a named admin capability carried in a token.
type Permission string

const (
	PermissionReadBanner   Permission = "ReadBanner"
	PermissionCreateBanner Permission = "CreateBanner"
	PermissionUpdateBanner Permission = "UpdateBanner"
	PermissionDeleteBanner Permission = "DeleteBanner"
)

// Permissions returns every banner permission.
func Permissions() []Permission {
	return []Permission{
		PermissionReadBanner,
		PermissionCreateBanner,
		PermissionUpdateBanner,
		PermissionDeleteBanner,
	}
}

// ErrUnknownPermission is returned by ParsePermission for names outside
// Permissions.
var ErrUnknownPermission = errors.New("unknown permission")

// ParsePermission returns the permission named s.
func ParsePermission(s string) (Permission, error) {
	p := Permission(s)
	if !slices.Contains(Permissions(), p) {
		return "", fmt.Errorf("%w: %q", ErrUnknownPermission, s)
	}
	return p, nil
}

// ErrInvalidToken is returned for malformed, expired or badly signed tokens.
var ErrInvalidToken = errors.New("invalid token")

// Claims are the admin token claims.
type Claims struct {
	Permissions []Permission `json:"permissions"`
	jwtlib.RegisteredClaims
}

// Has reports whether the claims grant p.
func (c *Claims) Has(p Permission) bool {
	return slices.Contains(c.Permissions, p)
}

// TokenService signs and verifies HS256 admin tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a TokenService. ttl only affects Issue.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue signs a token for subject granting the given permissions.
func (s *TokenService) Issue(subject string, permissions ...Permission) (string, error) {
	now := time.Now()
	claims := Claims{
		Permissions: permissions,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses and validates a token string.
func (s *TokenService) Verify(tokenStr string) (*Claims, error) {
	token, err := jwtlib.ParseWithClaims(tokenStr, &Claims{}, func(t *jwtlib.Token) (any, error) {
		return s.secret, nil
	}, jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
