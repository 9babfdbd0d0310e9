package memory

import (
	"sync"

	"pet-care-tracker/internal/domain/diary"
	"pet-care-tracker/internal/domain/feeding"
	"pet-care-tracker/internal/domain/pets"
	"pet-care-tracker/internal/domain/users"
)

// Store guarda todas las tablas en memoria bajo un único lock, así el borrado
// de una mascota puede cascadear igual que en Postgres. Solo para dev y tests.
type Store struct {
	mu sync.RWMutex

	seq int64

	users     map[int64]users.User
	pets      map[int64]pets.Pet
	weights   []pets.WeightRecord
	entries   map[int64]diary.Entry
	media     []diary.Media
	schedules map[int64]feeding.Schedule
}

func NewStore() *Store {
	return &Store{
		users:     make(map[int64]users.User),
		pets:      make(map[int64]pets.Pet),
		entries:   make(map[int64]diary.Entry),
		schedules: make(map[int64]feeding.Schedule),
	}
}

// nextID: un contador compartido, suficiente para dev. Llamar con el lock tomado.
func (s *Store) nextID() int64 {
	s.seq++
	return s.seq
}

func (s *Store) Users() *UsersRepo { return &UsersRepo{s: s} }
func (s *Store) Pets() *PetsRepo { return &PetsRepo{s: s} }
func (s *Store) Diary() *DiaryRepo { return &DiaryRepo{s: s} }
func (s *Store) Feeding() *FeedingRepo { return &FeedingRepo{s: s} }
