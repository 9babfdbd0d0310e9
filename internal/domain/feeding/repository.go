package feeding

import "context"

type Repository interface {
	Create(ctx context.Context, s Schedule) (int64, error)
	// ListByPet ordena por feeding_time ascendente.
	ListByPet(ctx context.Context, petID int64) ([]Schedule, error)
}
