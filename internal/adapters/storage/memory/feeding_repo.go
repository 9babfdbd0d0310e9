package memory

import (
	"context"
	"sort"

	"pet-care-tracker/internal/domain/feeding"
)

type FeedingRepo struct {
	s *Store
}

func (r *FeedingRepo) Create(ctx context.Context, sc feeding.Schedule) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sc.ID = r.s.nextID()
	r.s.schedules[sc.ID] = sc
	return sc.ID, nil
}

func (r *FeedingRepo) ListByPet(ctx context.Context, petID int64) ([]feeding.Schedule, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]feeding.Schedule, 0)
	for _, sc := range r.s.schedules {
		if sc.PetID == petID {
			out = append(out, sc)
		}
	}
	// HH:MM ordena bien como string
	sort.Slice(out, func(i, j int) bool {
		if out[i].FeedingTime == out[j].FeedingTime {
			return out[i].ID < out[j].ID
		}
		return out[i].FeedingTime < out[j].FeedingTime
	})
	return out, nil
}
