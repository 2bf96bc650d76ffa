package users

import (
	"context"
	"database/sql"
	"errors"
	"regexp"

	"github.com/dmitrijs2005/musicbox/internal/common"
	"github.com/dmitrijs2005/musicbox/internal/cryptox"
	"github.com/dmitrijs2005/musicbox/internal/dbx"
	"github.com/dmitrijs2005/musicbox/internal/logging"
)

var usernameRe = regexp.MustCompile(`^[A-Za-z0-9_]{3,30}$`)

const (
	passwordMinLen = 8
	phoneMinLen    = 7
	phoneMaxLen    = 20
)

// CreateParams is the validated input for Create. Email and Phone are
// optional.
type CreateParams struct {
	Username string
	Email    *string
	Password string
	Phone    *string
}

// UpdateParams is the input for Update; every field is optional and nil
// means "leave unchanged".
type UpdateParams struct {
	Username *string
	Email    *string
	Password *string
	Phone    *string
}

func checkUsername(v string) error {
	if !usernameRe.MatchString(v) {
		return common.NewValidationError("Username must be 3-30 characters (letters, digits, underscore)")
	}
	return nil
}

func checkEmail(v string) error {
	if !common.EmailRe.MatchString(v) {
		return common.NewValidationError("Invalid email format")
	}
	return nil
}

func checkPassword(v string) error {
	if len(v) < passwordMinLen {
		return common.NewValidationError("Password must be at least 8 characters")
	}
	return nil
}

func checkPhone(v string) error {
	if len(v) < phoneMinLen || len(v) > phoneMaxLen {
		return common.NewValidationError("Phone must be 7-20 characters")
	}
	return nil
}

func (p CreateParams) validate() error {
	if err := checkUsername(p.Username); err != nil {
		return err
	}
	if p.Email != nil {
		if err := checkEmail(*p.Email); err != nil {
			return err
		}
	}
	if err := checkPassword(p.Password); err != nil {
		return err
	}
	if p.Phone != nil {
		if err := checkPhone(*p.Phone); err != nil {
			return err
		}
	}
	return nil
}

func (p UpdateParams) validate() error {
	if p.Username != nil {
		if err := checkUsername(*p.Username); err != nil {
			return err
		}
	}
	if p.Email != nil {
		if err := checkEmail(*p.Email); err != nil {
			return err
		}
	}
	if p.Password != nil {
		if err := checkPassword(*p.Password); err != nil {
			return err
		}
	}
	if p.Phone != nil {
		if err := checkPhone(*p.Phone); err != nil {
			return err
		}
	}
	return nil
}

// Service owns account CRUD. Uniqueness of username and email is enforced
// by the store; conflicts surface as common.ErrorAlreadyExists.
type Service struct {
	db   *sql.DB
	repo func(db dbx.DBTX) Repository
	log  logging.Logger
}

// NewService wires the service to a connection and a repository factory,
// usually a RepositoryManager method value.
func NewService(db *sql.DB, repo func(db dbx.DBTX) Repository, log logging.Logger) *Service {
	return &Service{db: db, repo: repo, log: log.With("module", "users")}
}

func (s *Service) List(ctx context.Context) ([]*User, error) {
	result, err := s.repo(s.db).List(ctx)
	if err != nil {
		s.log.Error(ctx, "listing users", "error", err)
		return nil, common.ErrorInternal
	}
	return result, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*User, error) {
	user, err := s.repo(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		s.log.Error(ctx, "fetching user", "id", id, "error", err)
		return nil, common.ErrorInternal
	}
	return user, nil
}

func (s *Service) Create(ctx context.Context, p CreateParams) (*User, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	user := &User{
		Username:     p.Username,
		Email:        p.Email,
		Phone:        p.Phone,
		PasswordHash: cryptox.HashPassword(p.Password),
	}

	created, err := s.repo(s.db).Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		s.log.Error(ctx, "creating user", "error", err)
		return nil, common.ErrorInternal
	}
	return created, nil
}

// Update applies the non-nil fields of p to the user. The existence probe and
// the update run in one transaction so a concurrent delete cannot slip
// between them.
func (s *Service) Update(ctx context.Context, id int64, p UpdateParams) (*User, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}

	upd := &Update{Username: p.Username, Email: p.Email, Phone: p.Phone}
	if p.Password != nil {
		hash := cryptox.HashPassword(*p.Password)
		upd.PasswordHash = &hash
	}

	var updated *User
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)

		current, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if upd.Empty() {
			updated = current
			return nil
		}

		updated, err = repo.Update(ctx, id, upd)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) || errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		s.log.Error(ctx, "updating user", "id", id, "error", err)
		return nil, common.ErrorInternal
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.repo(s.db).Delete(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return err
		}
		s.log.Error(ctx, "deleting user", "id", id, "error", err)
		return common.ErrorInternal
	}
	return nil
}
