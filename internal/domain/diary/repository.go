package diary

import (
	"context"
	"time"
)

// Repository persiste entradas y sus medios.
// Las escrituras de alta pasan siempre por WithTx: si fn devuelve error,
// no queda ni la entrada ni ninguno de sus medios.
type Repository interface {
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	GetByID(ctx context.Context, id int64) (Entry, error)
	ListByPet(ctx context.Context, petID int64, filter ListFilter) ([]Entry, error)

	// Delete borra la entrada (los medios caen por cascada).
	// Devuelve ErrNotFound si no existe para ese pet.
	Delete(ctx context.Context, petID, id int64) error
}

// Tx es la vista transaccional del repositorio.
type Tx interface {
	InsertEntry(ctx context.Context, e Entry) (int64, error)
	InsertMedia(ctx context.Context, m Media) (int64, error)
}

// ListFilter: campos vacíos/nil no filtran.
type ListFilter struct {
	Mood          Mood
	ActivityLevel ActivityLevel
	From          *time.Time
	To            *time.Time
}

// Match aplica el filtro sobre una entrada (lo usan los repos sin SQL).
func (f ListFilter) Match(e Entry) bool {
	if f.Mood != "" && e.Mood != f.Mood {
		return false
	}
	if f.ActivityLevel != "" && e.ActivityLevel != f.ActivityLevel {
		return false
	}
	if f.From != nil && e.EntryDate.Before(*f.From) {
		return false
	}
	if f.To != nil && e.EntryDate.After(*f.To) {
		return false
	}
	return true
}
