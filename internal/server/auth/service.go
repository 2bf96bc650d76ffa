package auth

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/musicbox/internal/common"
	"github.com/dmitrijs2005/musicbox/internal/cryptox"
	"github.com/dmitrijs2005/musicbox/internal/logging"
)

// Credential is the slice of an account the session workflows need.
type Credential struct {
	UserID       int64
	Username     string
	Email        string
	PasswordHash string
}

// CredentialStore resolves accounts during login and refresh.
// Implementations return common.ErrorNotFound when nothing matches.
type CredentialStore interface {
	ByUsername(ctx context.Context, username string) (*Credential, error)
	ByEmail(ctx context.Context, email string) (*Credential, error)
	ByID(ctx context.Context, id int64) (*Credential, error)
}

// TokenPair is the shape returned by Login and Refresh. Expiries are unix
// seconds.
type TokenPair struct {
	TokenType        string `json:"token_type"`
	AccessToken      string `json:"access_token"`
	AccessExpiresAt  int64  `json:"access_expires_at"`
	RefreshToken     string `json:"refresh_token"`
	RefreshExpiresAt int64  `json:"refresh_expires_at"`
}

// Service drives the token state machine (issued → active → expired or
// revoked) on top of a CredentialStore, a RevocationRegistry and a
// TokenManager.
type Service struct {
	store    CredentialStore
	registry RevocationRegistry
	tokens   *TokenManager
	log      logging.Logger
}

func NewService(store CredentialStore, registry RevocationRegistry, tokens *TokenManager, log logging.Logger) *Service {
	return &Service{
		store:    store,
		registry: registry,
		tokens:   tokens,
		log:      log.With("module", "auth"),
	}
}

// Login resolves identifier as an email or a username by format, verifies
// the password and issues a fresh token pair. An unknown identifier and a
// wrong password both fail with the same common.ErrorUnauthorized.
func (s *Service) Login(ctx context.Context, identifier, password string) (*TokenPair, error) {
	ident := strings.TrimSpace(identifier)

	var (
		cred *Credential
		err  error
	)
	if common.EmailRe.MatchString(ident) {
		cred, err = s.store.ByEmail(ctx, ident)
	} else {
		cred, err = s.store.ByUsername(ctx, ident)
	}
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		s.log.Error(ctx, "credential lookup failed", "error", err)
		return nil, common.ErrorInternal
	}

	if !cryptox.VerifyPassword(password, cred.PasswordHash) {
		return nil, common.ErrorUnauthorized
	}

	return s.issuePair(ctx, cred)
}

// Refresh rotates a refresh token. The presented jti is revoked before the
// replacement pair is issued: a failed re-issue leaves the caller without
// valid tokens rather than the old token staying live (fail-closed).
// Reusing an already rotated token fails with common.ErrTokenRevoked.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.tokens.Decode(refreshToken)
	if err != nil {
		return nil, err
	}

	if err := s.ensureNotRevoked(ctx, claims.ID); err != nil {
		return nil, err
	}
	if claims.Kind != KindRefresh {
		return nil, common.ErrWrongTokenKind
	}

	if err := s.registry.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		s.log.Error(ctx, "revoking refresh token failed", "error", err)
		return nil, common.ErrorInternal
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	cred, err := s.store.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		s.log.Error(ctx, "credential lookup failed", "error", err)
		return nil, common.ErrorInternal
	}

	return s.issuePair(ctx, cred)
}

// Logout revokes exactly the token presented in the Authorization header. A
// paired refresh token stays valid until it expires or is rotated.
func (s *Service) Logout(ctx context.Context, authorizationHeader string) error {
	token, err := ParseBearer(authorizationHeader)
	if err != nil {
		return err
	}

	claims, err := s.tokens.Decode(token)
	if err != nil {
		return err
	}
	if claims.ID == "" {
		return common.NewValidationError("Token missing jti")
	}

	if err := s.registry.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		s.log.Error(ctx, "revoking token failed", "error", err)
		return common.ErrorInternal
	}
	return nil
}

// Authenticate is the access guard: decode, require the token not revoked,
// require kind access. It returns the claims so the caller can resolve the
// current subject.
func (s *Service) Authenticate(ctx context.Context, token string) (*Claims, error) {
	claims, err := s.tokens.Decode(token)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNotRevoked(ctx, claims.ID); err != nil {
		return nil, err
	}
	if claims.Kind != KindAccess {
		return nil, common.ErrWrongTokenKind
	}
	return claims, nil
}

func (s *Service) ensureNotRevoked(ctx context.Context, jti string) error {
	revoked, err := s.registry.IsRevoked(ctx, jti)
	if err != nil {
		s.log.Error(ctx, "revocation lookup failed", "error", err)
		return common.ErrorInternal
	}
	if revoked {
		return common.ErrTokenRevoked
	}
	return nil
}

func (s *Service) issuePair(ctx context.Context, cred *Credential) (*TokenPair, error) {
	sub := strconv.FormatInt(cred.UserID, 10)

	access, accessExp, _, err := s.tokens.Issue(sub, KindAccess, &Extra{Username: cred.Username, Email: cred.Email})
	if err != nil {
		s.log.Error(ctx, "signing access token failed", "error", err)
		return nil, common.ErrorInternal
	}

	refresh, refreshExp, _, err := s.tokens.Issue(sub, KindRefresh, nil)
	if err != nil {
		s.log.Error(ctx, "signing refresh token failed", "error", err)
		return nil, common.ErrorInternal
	}

	return &TokenPair{
		TokenType:        "bearer",
		AccessToken:      access,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExp,
	}, nil
}

// ParseBearer extracts the token from an "Authorization: Bearer <token>"
// value. The scheme match is case-insensitive. An absent header, a different
// scheme or an empty token fail with common.ErrorInvalidAuthHeaderFormat.
func ParseBearer(header string) (string, error) {
	n := len(common.BearerPrefix)
	if len(header) < n || !strings.EqualFold(header[:n], common.BearerPrefix) {
		return "", common.ErrorInvalidAuthHeaderFormat
	}
	token := strings.TrimSpace(header[n:])
	if token == "" {
		return "", common.ErrorInvalidAuthHeaderFormat
	}
	return token, nil
}
