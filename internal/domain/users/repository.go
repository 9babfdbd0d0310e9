package users

import "context"

type Repository interface {
	// Create devuelve ErrDuplicateUsername si el username ya existe.
	Create(ctx context.Context, u User) (int64, error)
	GetByID(ctx context.Context, id int64) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	Update(ctx context.Context, u User) error
}
