package songs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/dmitrijs2005/musicbox/internal/common"
	"github.com/dmitrijs2005/musicbox/internal/dbx"
	"github.com/dmitrijs2005/musicbox/internal/logging"
)

var urlRe = regexp.MustCompile(`^https?://\S{3,}$`)

const (
	maxPageSize = 200
	maxURLLen   = 500
)

// Params carries the writable song fields for Create and Update. Every field
// is optional; nil means "not provided".
type Params struct {
	Title             *string
	Duration          *string
	URLFile           *string
	CoverImageURL     *string
	ThumbnailURL      *string
	Genre             *string
	Language          *string
	Lyrics            *string
	SpotifyTrackID    *string
	SpotifyTrackURI   *string
	SpotifyTrackURL   *string
	SpotifyPreviewURL *string
}

// ListParams selects a page of the catalog. Query searches title, genre and
// language at once.
type ListParams struct {
	Query      string
	Title      string
	Genre      string
	Language   string
	HasPreview *bool
	Sort       string
	Page       int
	PageSize   int
}

// trimmed validates an optional free-text field. An empty value after
// trimming writes NULL, matching the clear-on-empty update contract.
func trimmed(p *string, name string, max int) (*sql.Null[string], error) {
	if p == nil {
		return nil, nil
	}
	t := strings.TrimSpace(*p)
	if len(t) > max {
		return nil, common.NewValidationError(fmt.Sprintf("%s too long (max %d)", name, max))
	}
	if t == "" {
		return &sql.Null[string]{}, nil
	}
	return &sql.Null[string]{V: t, Valid: true}, nil
}

// urlField validates an optional URL. Unlike trimmed, an empty value means
// "not provided" and leaves the column untouched.
func urlField(p *string, max int) (*sql.Null[string], error) {
	if p == nil {
		return nil, nil
	}
	t := strings.TrimSpace(*p)
	if t == "" {
		return nil, nil
	}
	if len(t) > max {
		return nil, common.NewValidationError(fmt.Sprintf("URL too long (max %d)", max))
	}
	if !urlRe.MatchString(t) {
		return nil, common.NewValidationError("Invalid URL (must start with http/https)")
	}
	return &sql.Null[string]{V: t, Valid: true}, nil
}

func durationField(p *string) (*sql.Null[string], error) {
	if p == nil {
		return nil, nil
	}
	t := strings.TrimSpace(*p)
	if t == "" {
		return nil, nil
	}
	norm, err := NormalizeDuration(t)
	if err != nil {
		return nil, err
	}
	return &sql.Null[string]{V: norm, Valid: true}, nil
}

func buildUpdate(p Params) (*Update, error) {
	var err error
	upd := &Update{}

	if upd.Title, err = trimmed(p.Title, "Title", 255); err != nil {
		return nil, err
	}
	if upd.Duration, err = durationField(p.Duration); err != nil {
		return nil, err
	}
	if upd.URLFile, err = urlField(p.URLFile, maxURLLen); err != nil {
		return nil, err
	}
	if upd.CoverImageURL, err = urlField(p.CoverImageURL, maxURLLen); err != nil {
		return nil, err
	}
	if upd.ThumbnailURL, err = urlField(p.ThumbnailURL, maxURLLen); err != nil {
		return nil, err
	}
	if upd.Genre, err = trimmed(p.Genre, "Genre", 100); err != nil {
		return nil, err
	}
	if upd.Language, err = trimmed(p.Language, "Language", 50); err != nil {
		return nil, err
	}
	if p.Lyrics != nil {
		// lyrics are stored verbatim, whitespace and all
		upd.Lyrics = &sql.Null[string]{V: *p.Lyrics, Valid: true}
	}
	if upd.SpotifyTrackID, err = trimmed(p.SpotifyTrackID, "Spotify track ID", 64); err != nil {
		return nil, err
	}
	if upd.SpotifyTrackURI, err = trimmed(p.SpotifyTrackURI, "Spotify track URI", 128); err != nil {
		return nil, err
	}
	if upd.SpotifyTrackURL, err = urlField(p.SpotifyTrackURL, 255); err != nil {
		return nil, err
	}
	if upd.SpotifyPreviewURL, err = urlField(p.SpotifyPreviewURL, 255); err != nil {
		return nil, err
	}

	return upd, nil
}

func fromNull(n *sql.Null[string]) *string {
	if n == nil || !n.Valid {
		return nil
	}
	return &n.V
}

// Service owns the song catalog. Reads are public; the HTTP layer guards
// writes.
type Service struct {
	db   *sql.DB
	repo func(db dbx.DBTX) Repository
	log  logging.Logger
}

func NewService(db *sql.DB, repo func(db dbx.DBTX) Repository, log logging.Logger) *Service {
	return &Service{db: db, repo: repo, log: log.With("module", "songs")}
}

func (s *Service) List(ctx context.Context, p ListParams) ([]*Song, error) {
	if p.Page < 1 {
		return nil, common.NewValidationError("Page must be at least 1")
	}
	if p.PageSize < 1 || p.PageSize > maxPageSize {
		return nil, common.NewValidationError("Page size must be between 1 and 200")
	}

	f := Filter{
		Query:      strings.TrimSpace(p.Query),
		Title:      strings.TrimSpace(p.Title),
		Genre:      strings.TrimSpace(p.Genre),
		Language:   strings.TrimSpace(p.Language),
		HasPreview: p.HasPreview,
		Sort:       p.Sort,
		Limit:      p.PageSize,
		Offset:     (p.Page - 1) * p.PageSize,
	}

	result, err := s.repo(s.db).List(ctx, f)
	if err != nil {
		s.log.Error(ctx, "listing songs", "error", err)
		return nil, common.ErrorInternal
	}
	return result, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Song, error) {
	song, err := s.repo(s.db).GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		s.log.Error(ctx, "fetching song", "id", id, "error", err)
		return nil, common.ErrorInternal
	}
	return song, nil
}

func (s *Service) Create(ctx context.Context, p Params) (*Song, error) {
	upd, err := buildUpdate(p)
	if err != nil {
		return nil, err
	}

	song := &Song{
		Title:             fromNull(upd.Title),
		Duration:          fromNull(upd.Duration),
		URLFile:           fromNull(upd.URLFile),
		CoverImageURL:     fromNull(upd.CoverImageURL),
		ThumbnailURL:      fromNull(upd.ThumbnailURL),
		Genre:             fromNull(upd.Genre),
		Language:          fromNull(upd.Language),
		Lyrics:            fromNull(upd.Lyrics),
		SpotifyTrackID:    fromNull(upd.SpotifyTrackID),
		SpotifyTrackURI:   fromNull(upd.SpotifyTrackURI),
		SpotifyTrackURL:   fromNull(upd.SpotifyTrackURL),
		SpotifyPreviewURL: fromNull(upd.SpotifyPreviewURL),
	}

	created, err := s.repo(s.db).Create(ctx, song)
	if err != nil {
		s.log.Error(ctx, "creating song", "error", err)
		return nil, common.ErrorInternal
	}
	return created, nil
}

// Update applies the provided fields. The existence probe and the update run
// in one transaction; an update with no recognized fields returns the row
// unchanged.
func (s *Service) Update(ctx context.Context, id int64, p Params) (*Song, error) {
	upd, err := buildUpdate(p)
	if err != nil {
		return nil, err
	}

	var updated *Song
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
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
		if errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		s.log.Error(ctx, "updating song", "id", id, "error", err)
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
		s.log.Error(ctx, "deleting song", "id", id, "error", err)
		return common.ErrorInternal
	}
	return nil
}
