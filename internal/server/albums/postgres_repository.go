package albums

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/musicbox/internal/common"
	"github.com/dmitrijs2005/musicbox/internal/dbx"
)

const albumColumns = `album_id, title, duration, cover_image_url, genre, language,
		description, release_date, producer_company, total_tracks, created_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAlbum(row rowScanner) (*Album, error) {
	a := &Album{}
	err := row.Scan(&a.ID, &a.Title, &a.Duration, &a.CoverImageURL, &a.Genre, &a.Language,
		&a.Description, &a.ReleaseDate, &a.ProducerCompany, &a.TotalTracks, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *PostgresRepository) Create(ctx context.Context, album *Album) (*Album, error) {

	query :=
		`INSERT INTO albums (title, duration, cover_image_url, genre, language,
		     description, release_date, producer_company, total_tracks)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING album_id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		album.Title, album.Duration, album.CoverImageURL, album.Genre, album.Language,
		album.Description, album.ReleaseDate, album.ProducerCompany, album.TotalTracks).
		Scan(&album.ID, &album.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return album, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*Album, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM albums
		 WHERE album_id = $1
		 `, albumColumns)

	album, err := scanAlbum(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return album, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*Album, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM albums
		 ORDER BY album_id ASC
		 `, albumColumns)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*Album{}
	for rows.Next() {
		album, err := scanAlbum(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, album)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
