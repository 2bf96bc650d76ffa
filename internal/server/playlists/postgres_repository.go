package playlists

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/musicbox/internal/common"
	"github.com/dmitrijs2005/musicbox/internal/dbx"
)

const constraintTitle = "playlists_title_key"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// conflictError translates store-level constraint violations into the
// conflict messages callers surface as-is.
func conflictError(err error) error {
	if dbx.UniqueConstraint(err) == constraintTitle {
		return common.NewConflictError("Title already exists")
	}
	if dbx.IsUniqueViolation(err) {
		return common.ErrorAlreadyExists
	}
	if dbx.IsForeignKeyViolation(err) {
		return common.NewConflictError("User does not exist")
	}
	return nil
}

func (r *PostgresRepository) Create(ctx context.Context, playlist *Playlist) (*Playlist, error) {

	query := `INSERT INTO playlists (title, user_id)
		VALUES ($1, $2)
		RETURNING playlist_id, created_at`

	row := r.db.QueryRowContext(ctx, query, playlist.Title, playlist.UserID)
	if err := row.Scan(&playlist.ID, &playlist.CreatedAt); err != nil {
		if conflict := conflictError(err); conflict != nil {
			return nil, conflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return playlist, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*Playlist, error) {

	query := `SELECT playlist_id, title, user_id, created_at
		FROM playlists
		WHERE playlist_id = $1`

	p := &Playlist{}
	row := r.db.QueryRowContext(ctx, query, id)
	if err := row.Scan(&p.ID, &p.Title, &p.UserID, &p.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return p, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]*Playlist, error) {

	query := `SELECT playlist_id, title, user_id, created_at
		FROM playlists
		WHERE user_id = $1
		ORDER BY playlist_id ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*Playlist{}
	for rows.Next() {
		p := &Playlist{}
		if err := rows.Scan(&p.ID, &p.Title, &p.UserID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}
