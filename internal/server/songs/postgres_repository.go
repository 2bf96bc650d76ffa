package songs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/musicbox/internal/common"
	"github.com/dmitrijs2005/musicbox/internal/dbx"
)

const songColumns = `song_id, title, duration, url_file, cover_image_url, thumbnail_url,
		genre, language, lyrics, spotify_track_id, spotify_track_uri, spotify_track_url, spotify_preview_url`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSong(row rowScanner) (*Song, error) {
	s := &Song{}
	err := row.Scan(&s.ID, &s.Title, &s.Duration, &s.URLFile, &s.CoverImageURL, &s.ThumbnailURL,
		&s.Genre, &s.Language, &s.Lyrics, &s.SpotifyTrackID, &s.SpotifyTrackURI, &s.SpotifyTrackURL, &s.SpotifyPreviewURL)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *PostgresRepository) Create(ctx context.Context, song *Song) (*Song, error) {

	query :=
		`INSERT INTO songs (title, duration, url_file, cover_image_url, thumbnail_url,
		     genre, language, lyrics, spotify_track_id, spotify_track_uri, spotify_track_url, spotify_preview_url)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING song_id
		 `

	err := r.db.QueryRowContext(ctx, query,
		song.Title, song.Duration, song.URLFile, song.CoverImageURL, song.ThumbnailURL,
		song.Genre, song.Language, song.Lyrics,
		song.SpotifyTrackID, song.SpotifyTrackURI, song.SpotifyTrackURL, song.SpotifyPreviewURL).
		Scan(&song.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return song, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*Song, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM songs
		 WHERE song_id = $1
		 `, songColumns)

	song, err := scanSong(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return song, nil
}

func orderClause(sort string) string {
	switch strings.ToLower(strings.TrimSpace(sort)) {
	case "id_asc":
		return "ORDER BY song_id ASC"
	case "title_asc":
		return "ORDER BY title ASC"
	case "title_desc":
		return "ORDER BY title DESC"
	default:
		return "ORDER BY song_id DESC"
	}
}

func (r *PostgresRepository) List(ctx context.Context, f Filter) ([]*Song, error) {
	where := make([]string, 0, 5)
	args := make([]any, 0, 6)

	if f.Query != "" {
		args = append(args, "%"+f.Query+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(title ILIKE $%d OR genre ILIKE $%d OR language ILIKE $%d)", n, n, n))
	}
	if f.Title != "" {
		args = append(args, "%"+f.Title+"%")
		where = append(where, fmt.Sprintf("title ILIKE $%d", len(args)))
	}
	if f.Genre != "" {
		args = append(args, "%"+f.Genre+"%")
		where = append(where, fmt.Sprintf("genre ILIKE $%d", len(args)))
	}
	if f.Language != "" {
		args = append(args, "%"+f.Language+"%")
		where = append(where, fmt.Sprintf("language ILIKE $%d", len(args)))
	}
	if f.HasPreview != nil {
		if *f.HasPreview {
			where = append(where, "spotify_preview_url IS NOT NULL AND spotify_preview_url <> ''")
		} else {
			where = append(where, "(spotify_preview_url IS NULL OR spotify_preview_url = '')")
		}
	}

	whereSQL := ""
	if len(where) > 0 {
		whereSQL = "WHERE " + strings.Join(where, " AND ")
	}

	args = append(args, f.Limit)
	limitPos := len(args)
	args = append(args, f.Offset)

	query := fmt.Sprintf(`SELECT %s FROM songs %s %s LIMIT $%d OFFSET $%d`,
		songColumns, whereSQL, orderClause(f.Sort), limitPos, limitPos+1)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*Song{}
	for rows.Next() {
		song, err := scanSong(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id int64, upd *Update) (*Song, error) {
	if upd.Empty() {
		return r.GetByID(ctx, id)
	}

	sets := make([]string, 0, 12)
	args := make([]any, 0, 13)
	add := func(column string, value sql.Null[string]) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if upd.Title != nil {
		add("title", *upd.Title)
	}
	if upd.Duration != nil {
		add("duration", *upd.Duration)
	}
	if upd.URLFile != nil {
		add("url_file", *upd.URLFile)
	}
	if upd.CoverImageURL != nil {
		add("cover_image_url", *upd.CoverImageURL)
	}
	if upd.ThumbnailURL != nil {
		add("thumbnail_url", *upd.ThumbnailURL)
	}
	if upd.Genre != nil {
		add("genre", *upd.Genre)
	}
	if upd.Language != nil {
		add("language", *upd.Language)
	}
	if upd.Lyrics != nil {
		add("lyrics", *upd.Lyrics)
	}
	if upd.SpotifyTrackID != nil {
		add("spotify_track_id", *upd.SpotifyTrackID)
	}
	if upd.SpotifyTrackURI != nil {
		add("spotify_track_uri", *upd.SpotifyTrackURI)
	}
	if upd.SpotifyTrackURL != nil {
		add("spotify_track_url", *upd.SpotifyTrackURL)
	}
	if upd.SpotifyPreviewURL != nil {
		add("spotify_preview_url", *upd.SpotifyPreviewURL)
	}

	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE songs SET %s
		 WHERE song_id = $%d
		 RETURNING %s`,
		strings.Join(sets, ", "), len(args), songColumns)

	song, err := scanSong(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return song, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	query :=
		`DELETE FROM songs
		 WHERE song_id = $1
		 `

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}
