package users

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/musicbox/internal/common"
)

func TestCredentialSource_ByUsername(t *testing.T) {
	repo := &fakeRepo{byUsernameOut: &User{
		ID:           42,
		Username:     "alice",
		Email:        strPtr("alice@example.com"),
		PasswordHash: "hash",
	}}

	cred, err := NewCredentialSource(repo).ByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("ByUsername error: %v", err)
	}
	if cred.UserID != 42 || cred.Username != "alice" || cred.Email != "alice@example.com" || cred.PasswordHash != "hash" {
		t.Fatalf("unexpected credential: %+v", cred)
	}
}

func TestCredentialSource_NilEmail(t *testing.T) {
	repo := &fakeRepo{byEmailOut: &User{ID: 7, Username: "bob", PasswordHash: "hash"}}

	cred, err := NewCredentialSource(repo).ByEmail(context.Background(), "bob@example.com")
	if err != nil {
		t.Fatalf("ByEmail error: %v", err)
	}
	if cred.Email != "" {
		t.Fatalf("want empty email, got %q", cred.Email)
	}
}

func TestCredentialSource_NotFoundPassesThrough(t *testing.T) {
	repo := &fakeRepo{getErr: common.ErrorNotFound}

	_, err := NewCredentialSource(repo).ByID(context.Background(), 99)
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("want common.ErrorNotFound, got %v", err)
	}
}
