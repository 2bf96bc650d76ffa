package albums

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/dmitrijs2005/musicbox/internal/common"
	"github.com/dmitrijs2005/musicbox/internal/dbx"
	"github.com/dmitrijs2005/musicbox/internal/logging"
	"github.com/dmitrijs2005/musicbox/internal/server/songs"
)

var urlRe = regexp.MustCompile(`^https?://\S{3,}$`)

// Params carries the writable album fields. Title is required; ReleaseDate
// is a YYYY-MM-DD string.
type Params struct {
	Title           string
	Duration        *string
	CoverImageURL   *string
	Genre           *string
	Language        *string
	Description     *string
	ReleaseDate     *string
	ProducerCompany *string
	TotalTracks     *int
}

func trimToNil(p *string, name string, max int) (*string, error) {
	if p == nil {
		return nil, nil
	}
	t := strings.TrimSpace(*p)
	if len(t) > max {
		return nil, common.NewValidationError(fmt.Sprintf("%s too long (max %d)", name, max))
	}
	if t == "" {
		return nil, nil
	}
	return &t, nil
}

func (p Params) normalize() (*Album, error) {
	album := &Album{Title: strings.TrimSpace(p.Title)}

	if album.Title == "" {
		return nil, common.NewValidationError("Title is required")
	}
	if len(album.Title) > 255 {
		return nil, common.NewValidationError("Title too long (max 255)")
	}

	if p.Duration != nil {
		if d := strings.TrimSpace(*p.Duration); d != "" {
			norm, err := songs.NormalizeDuration(d)
			if err != nil {
				return nil, err
			}
			album.Duration = &norm
		}
	}

	if p.CoverImageURL != nil {
		if u := strings.TrimSpace(*p.CoverImageURL); u != "" {
			if len(u) > 500 {
				return nil, common.NewValidationError("URL too long (max 500)")
			}
			if !urlRe.MatchString(u) {
				return nil, common.NewValidationError("Invalid URL (must start with http/https)")
			}
			album.CoverImageURL = &u
		}
	}

	var err error
	if album.Genre, err = trimToNil(p.Genre, "Genre", 100); err != nil {
		return nil, err
	}
	if album.Language, err = trimToNil(p.Language, "Language", 50); err != nil {
		return nil, err
	}
	if album.Description, err = trimToNil(p.Description, "Description", 1000); err != nil {
		return nil, err
	}
	if album.ProducerCompany, err = trimToNil(p.ProducerCompany, "Producer company", 255); err != nil {
		return nil, err
	}

	if p.ReleaseDate != nil {
		if d := strings.TrimSpace(*p.ReleaseDate); d != "" {
			parsed, err := time.Parse(time.DateOnly, d)
			if err != nil {
				return nil, common.NewValidationError("Invalid release date (use YYYY-MM-DD)")
			}
			album.ReleaseDate = &parsed
		}
	}

	if p.TotalTracks != nil {
		if *p.TotalTracks < 0 {
			return nil, common.NewValidationError("Total tracks must be zero or positive")
		}
		album.TotalTracks = p.TotalTracks
	}

	return album, nil
}

// Service owns the album catalog.
type Service struct {
	db   *sql.DB
	repo func(db dbx.DBTX) Repository
	log  logging.Logger
}

func NewService(db *sql.DB, repo func(db dbx.DBTX) Repository, log logging.Logger) *Service {
	return &Service{db: db, repo: repo, log: log.With("module", "albums")}
}

func (s *Service) List(ctx context.Context) ([]*Album, error) {
	result, err := s.repo(s.db).List(ctx)
	if err != nil {
		s.log.Error(ctx, "listing albums", "error", err)
		return nil, common.ErrorInternal
	}
	return result, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Album, error) {
	album, err := s.repo(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		s.log.Error(ctx, "fetching album", "id", id, "error", err)
		return nil, common.ErrorInternal
	}
	return album, nil
}

func (s *Service) Create(ctx context.Context, p Params) (*Album, error) {
	album, err := p.normalize()
	if err != nil {
		return nil, err
	}

	created, err := s.repo(s.db).Create(ctx, album)
	if err != nil {
		s.log.Error(ctx, "creating album", "error", err)
		return nil, common.ErrorInternal
	}
	return created, nil
}
