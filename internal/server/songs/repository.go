package songs

import (
	"context"
)

// Filter narrows and orders List results. Text filters are substring matches;
// HasPreview selects rows with (or without) a Spotify preview URL.
type Filter struct {
	Query      string
	Title      string
	Genre      string
	Language   string
	HasPreview *bool
	Sort       string
	Limit      int
	Offset     int
}

type Repository interface {
	Create(ctx context.Context, song *Song) (*Song, error)
	GetByID(ctx context.Context, id int64) (*Song, error)
	List(ctx context.Context, f Filter) ([]*Song, error)
	Update(ctx context.Context, id int64, upd *Update) (*Song, error)
	Delete(ctx context.Context, id int64) error
}
