// Package auth implements the session machinery: token issuance and
// validation, the revocation registry, and the login/refresh/logout
// workflows composed from them.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/musicbox/internal/common"
)

// TokenKind discriminates access tokens from refresh tokens. The value is
// carried in the "type" claim.
type TokenKind string

const (
	KindAccess  TokenKind = "access"
	KindRefresh TokenKind = "refresh"
)

// Claims — стандартные утверждения плюс тип токена и необязательные
// username/email, которые добавляются на access-токен.
type Claims struct {
	jwt.RegisteredClaims
	Kind     TokenKind `json:"type"`
	Username string    `json:"username,omitempty"`
	Email    string    `json:"email,omitempty"`
}

// Extra carries the optional claims embedded into access tokens.
type Extra struct {
	Username string
	Email    string
}

// TokenManager issues and decodes the signed tokens used by session
// workflows. Signing is HS256 only; tokens carrying any other algorithm are
// rejected on decode.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	leeway     time.Duration
}

func NewTokenManager(secret []byte, accessTTL, refreshTTL, leeway time.Duration) *TokenManager {
	return &TokenManager{
		secret:     secret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		leeway:     leeway,
	}
}

// TTL returns the configured lifetime for the given kind.
func (m *TokenManager) TTL(kind TokenKind) time.Duration {
	if kind == KindRefresh {
		return m.refreshTTL
	}
	return m.accessTTL
}

// Issue signs a token of the given kind for subject (a user id rendered as a
// string). It returns the compact token, its expiry as unix seconds, and the
// generated jti. Issuance has no side effects: nothing is registered
// anywhere until the token is revoked.
func (m *TokenManager) Issue(subject string, kind TokenKind, extra *Extra) (string, int64, string, error) {
	now := time.Now()
	exp := now.Add(m.TTL(kind))
	jti := uuid.NewString()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		Kind: kind,
	}
	if extra != nil {
		claims.Username = extra.Username
		claims.Email = extra.Email
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", 0, "", err
	}

	return token, exp.Unix(), jti, nil
}

// Decode verifies the signature and expiry of tokenString and returns its
// claims. Expiry is checked with the configured leeway. Kind and revocation
// are the caller's concern.
func (m *TokenManager) Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(m.leeway),
		jwt.WithExpirationRequired(),
	)

	token, err := parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrInvalidToken
	}
	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
