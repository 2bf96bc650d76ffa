package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/musicbox/internal/common"
	"github.com/dmitrijs2005/musicbox/internal/dbx"
	"github.com/dmitrijs2005/musicbox/internal/server/albums"
	"github.com/dmitrijs2005/musicbox/internal/server/migrations"
	"github.com/dmitrijs2005/musicbox/internal/server/playlists"
	"github.com/dmitrijs2005/musicbox/internal/server/songs"
	"github.com/dmitrijs2005/musicbox/internal/server/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/sethvargo/go-retry"
)

// Seams for sql.Open and goose.UpContext, swapped in tests.
var (
	sqlOpen = sql.Open

	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return goose.UpContext(ctx, db, dir, opts...)
	}
)

// PostgresRepositoryManager owns the database handle and vends
// PostgreSQL-backed repositories bound to a DBTX.
type PostgresRepositoryManager struct {
	db *sql.DB
}

// NewPostgresRepositoryManager opens the database and waits for it to accept
// connections. The server often starts before the database does, so the ping
// runs with backoff.
func NewPostgresRepositoryManager(ctx context.Context, dsn string) (*PostgresRepositoryManager, error) {

	db, err := sqlOpen("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	err = common.Retry(ctx, func(ctx context.Context) error {
		if err := db.PingContext(ctx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	return &PostgresRepositoryManager{db: db}, nil
}

func (m *PostgresRepositoryManager) Conn() *sql.DB {
	return m.db
}

func (m *PostgresRepositoryManager) Close() error {
	return m.db.Close()
}

// RunMigrations sets up goose with the embedded migrations and applies them.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, m.db, "."); err != nil {
		return err
	}
	return nil
}

// Users returns a users.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

// Songs returns a songs.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Songs(db dbx.DBTX) songs.Repository {
	return songs.NewPostgresRepository(db)
}

// Albums returns an albums.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Albums(db dbx.DBTX) albums.Repository {
	return albums.NewPostgresRepository(db)
}

// Playlists returns a playlists.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Playlists(db dbx.DBTX) playlists.Repository {
	return playlists.NewPostgresRepository(db)
}
