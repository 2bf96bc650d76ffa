package users

import (
	"context"

	"github.com/dmitrijs2005/musicbox/internal/server/auth"
)

// CredentialSource adapts the users repository to auth.CredentialStore so the
// auth service never sees full account rows.
type CredentialSource struct {
	repo Repository
}

func NewCredentialSource(repo Repository) *CredentialSource {
	return &CredentialSource{repo: repo}
}

func (s *CredentialSource) ByUsername(ctx context.Context, username string) (*auth.Credential, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return credential(user), nil
}

func (s *CredentialSource) ByEmail(ctx context.Context, email string) (*auth.Credential, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return credential(user), nil
}

func (s *CredentialSource) ByID(ctx context.Context, id int64) (*auth.Credential, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return credential(user), nil
}

func credential(u *User) *auth.Credential {
	c := &auth.Credential{
		UserID:       u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
	}
	if u.Email != nil {
		c.Email = *u.Email
	}
	return c
}
