package playlists

import "context"

type Repository interface {
	Create(ctx context.Context, playlist *Playlist) (*Playlist, error)
	GetByID(ctx context.Context, id int64) (*Playlist, error)
	ListByUser(ctx context.Context, userID int64) ([]*Playlist, error)
}
