package memory

import (
	"context"
	"sort"

	"pet-care-tracker/internal/domain/diary"
	"pet-care-tracker/internal/domain/pets"
)

type DiaryRepo struct {
	s *Store
}

// diaryTx acumula las filas y solo las publica en el Store si fn termina sin error.
type diaryTx struct {
	s       *Store
	entries []diary.Entry
	media   []diary.Media
}

func (t *diaryTx) InsertEntry(ctx context.Context, e diary.Entry) (int64, error) {
	// mismo efecto que la FK pet_diary_entries.pet_id
	if _, ok := t.s.pets[e.PetID]; !ok {
		return 0, pets.ErrNotFound
	}
	e.ID = t.s.nextID()
	e.Media = nil
	t.entries = append(t.entries, e)
	return e.ID, nil
}

func (t *diaryTx) InsertMedia(ctx context.Context, m diary.Media) (int64, error) {
	if !t.hasEntry(m.EntryID) {
		if _, ok := t.s.entries[m.EntryID]; !ok {
			return 0, diary.ErrNotFound
		}
	}
	m.ID = t.s.nextID()
	t.media = append(t.media, m)
	return m.ID, nil
}

func (t *diaryTx) hasEntry(id int64) bool {
	for _, e := range t.entries {
		if e.ID == id {
			return true
		}
	}
	return false
}

// WithTx mantiene el lock durante toda la transacción; fn no debe llamar al repo.
func (r *DiaryRepo) WithTx(ctx context.Context, fn func(tx diary.Tx) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	tx := &diaryTx{s: r.s}
	if err := fn(tx); err != nil {
		return err
	}
	for _, e := range tx.entries {
		r.s.entries[e.ID] = e
	}
	r.s.media = append(r.s.media, tx.media...)
	return nil
}

func (r *DiaryRepo) GetByID(ctx context.Context, id int64) (diary.Entry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	e, ok := r.s.entries[id]
	if !ok {
		return diary.Entry{}, diary.ErrNotFound
	}
	e.Media = r.s.mediaOfLocked(id)
	return e, nil
}

func (r *DiaryRepo) ListByPet(ctx context.Context, petID int64, filter diary.ListFilter) ([]diary.Entry, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]diary.Entry, 0)
	for _, e := range r.s.entries {
		if e.PetID != petID || !filter.Match(e) {
			continue
		}
		e.Media = r.s.mediaOfLocked(e.ID)
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].EntryDate.Equal(out[j].EntryDate) {
			return out[i].ID > out[j].ID
		}
		return out[i].EntryDate.After(out[j].EntryDate)
	})
	return out, nil
}

func (r *DiaryRepo) Delete(ctx context.Context, petID, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.entries[id]
	if !ok || e.PetID != petID {
		return diary.ErrNotFound
	}
	r.s.deleteEntryLocked(id)
	return nil
}

func (s *Store) mediaOfLocked(entryID int64) []diary.Media {
	out := make([]diary.Media, 0)
	for _, m := range s.media {
		if m.EntryID == entryID {
			out = append(out, m)
		}
	}
	return out
}

func (s *Store) deleteEntryLocked(id int64) {
	delete(s.entries, id)
	kept := s.media[:0]
	for _, m := range s.media {
		if m.EntryID != id {
			kept = append(kept, m)
		}
	}
	s.media = kept
}
