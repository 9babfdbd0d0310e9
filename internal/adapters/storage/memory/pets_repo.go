package memory

import (
	"context"
	"sort"

	"pet-care-tracker/internal/domain/pets"
)

type PetsRepo struct {
	s *Store
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p.ID = r.s.nextID()
	r.s.pets[p.ID] = p
	return p.ID, nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id int64) (pets.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.pets[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, nil
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerID int64) ([]pets.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]pets.Pet, 0)
	for _, p := range r.s.pets {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.pets[p.ID]; !ok {
		return pets.ErrNotFound
	}
	r.s.pets[p.ID] = p
	return nil
}

// Delete cascadea a historial de peso, diario (con medios) y horarios.
func (r *PetsRepo) Delete(ctx context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.pets[id]; !ok {
		return pets.ErrNotFound
	}
	delete(r.s.pets, id)

	weights := r.s.weights[:0]
	for _, w := range r.s.weights {
		if w.PetID != id {
			weights = append(weights, w)
		}
	}
	r.s.weights = weights

	for eid, e := range r.s.entries {
		if e.PetID == id {
			r.s.deleteEntryLocked(eid)
		}
	}
	for sid, sc := range r.s.schedules {
		if sc.PetID == id {
			delete(r.s.schedules, sid)
		}
	}
	return nil
}

func (r *PetsRepo) AppendWeight(ctx context.Context, w pets.WeightRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.pets[w.PetID]; !ok {
		return pets.ErrNotFound
	}
	w.ID = r.s.nextID()
	r.s.weights = append(r.s.weights, w)
	return nil
}

func (r *PetsRepo) WeightHistory(ctx context.Context, petID int64) ([]pets.WeightRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]pets.WeightRecord, 0)
	for _, w := range r.s.weights {
		if w.PetID == petID {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].RecordedAt.Equal(out[j].RecordedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].RecordedAt.After(out[j].RecordedAt)
	})
	return out, nil
}
