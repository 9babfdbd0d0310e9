package pets

import "context"

type Repository interface {
	Create(ctx context.Context, p Pet) (int64, error)
	GetByID(ctx context.Context, id int64) (Pet, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]Pet, error)
	Update(ctx context.Context, p Pet) error
	Delete(ctx context.Context, id int64) error

	AppendWeight(ctx context.Context, w WeightRecord) error
	// WeightHistory: más reciente primero.
	WeightHistory(ctx context.Context, petID int64) ([]WeightRecord, error)
}
