// Package db wires repository constructors and schema migrations behind a
// single RepositoryManager the application owns.
package db

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/musicbox/internal/dbx"
	"github.com/dmitrijs2005/musicbox/internal/server/albums"
	"github.com/dmitrijs2005/musicbox/internal/server/playlists"
	"github.com/dmitrijs2005/musicbox/internal/server/songs"
	"github.com/dmitrijs2005/musicbox/internal/server/users"
)

type RepositoryManager interface {
	Conn() *sql.DB
	Close() error
	RunMigrations(context.Context) error
	Users(db dbx.DBTX) users.Repository
	Songs(db dbx.DBTX) songs.Repository
	Albums(db dbx.DBTX) albums.Repository
	Playlists(db dbx.DBTX) playlists.Repository
}
