package albums

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, album *Album) (*Album, error)
	GetByID(ctx context.Context, id int64) (*Album, error)
	List(ctx context.Context) ([]*Album, error)
}
