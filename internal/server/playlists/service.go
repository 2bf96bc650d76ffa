package playlists

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"

	"github.com/dmitrijs2005/musicbox/internal/common"
	"github.com/dmitrijs2005/musicbox/internal/dbx"
	"github.com/dmitrijs2005/musicbox/internal/logging"
)

// titleRe matches 3-30 letters and digits, no separators.
var titleRe = regexp.MustCompile(`^[a-zA-Z0-9]{3,30}$`)

type Service struct {
	db   *sql.DB
	repo func(dbx.DBTX) Repository
	log  logging.Logger
}

func NewService(db *sql.DB, repo func(dbx.DBTX) Repository, log logging.Logger) *Service {
	return &Service{db: db, repo: repo, log: log.With("module", "playlists")}
}

func checkTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if !titleRe.MatchString(title) {
		return "", common.NewValidationError("Invalid title")
	}
	return title, nil
}

func (s *Service) Create(ctx context.Context, title string, userID int64) (*Playlist, error) {
	title, err := checkTitle(title)
	if err != nil {
		return nil, err
	}
	if userID <= 0 {
		return nil, common.NewValidationError("Invalid user id")
	}

	playlist, err := s.repo(s.db).Create(ctx, &Playlist{Title: title, UserID: userID})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		s.log.Error(ctx, "error creating playlist", "error", err)
		return nil, common.ErrorInternal
	}

	return playlist, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Playlist, error) {
	playlist, err := s.repo(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		s.log.Error(ctx, "error retrieving playlist", "error", err)
		return nil, common.ErrorInternal
	}
	return playlist, nil
}

func (s *Service) ListByUser(ctx context.Context, userID int64) ([]*Playlist, error) {
	playlists, err := s.repo(s.db).ListByUser(ctx, userID)
	if err != nil {
		s.log.Error(ctx, "error listing playlists", "error", err)
		return nil, common.ErrorInternal
	}
	return playlists, nil
}
