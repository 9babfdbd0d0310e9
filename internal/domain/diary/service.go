package diary

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"pet-care-tracker/internal/domain/media"
	"pet-care-tracker/internal/platform/logger"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("diary entry not found")
	ErrTransactionFailed = errors.New("diary transaction failed")
)

// MediaIngestor es lo que el diario necesita de media.Ingestor.
type MediaIngestor interface {
	Ingest(ctx context.Context, p media.Policy, namespace string, uploads []media.Upload) ([]media.Stored, error)
	Remove(ctx context.Context, stored []media.Stored) error
	RemoveURL(ctx context.Context, url string) error
}

type Service struct {
	repo   Repository
	media  MediaIngestor
	policy media.Policy
	log    logger.Logger
	now    func() time.Time
}

func NewService(repo Repository, ingestor MediaIngestor, policy media.Policy, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:   repo,
		media:  ingestor,
		policy: policy,
		log:    log.With(map[string]any{"module": "diary"}),
		now:    time.Now,
	}
}

type CreateInput struct {
	Notes         string
	Mood          string
	Weight        string
	FoodIntake    string
	ActivityLevel string
	HealthNotes   string
}

// Create valida, guarda los archivos y recién después abre la transacción
// entrada + N medios. Si la transacción falla, los archivos se borran (best-effort).
func (s *Service) Create(ctx context.Context, petID int64, in CreateInput, uploads []media.Upload) (Entry, error) {
	if petID <= 0 {
		return Entry{}, fmt.Errorf("%w: pet_id required", ErrInvalidInput)
	}

	mood, err := ParseMood(in.Mood)
	if err != nil {
		return Entry{}, err
	}
	activity, err := ParseActivityLevel(in.ActivityLevel)
	if err != nil {
		return Entry{}, err
	}
	weight, err := normalizeWeight(in.Weight)
	if err != nil {
		return Entry{}, err
	}

	stored, err := s.media.Ingest(ctx, s.policy, fmt.Sprintf("pets/%d/diary", petID), uploads)
	if err != nil {
		return Entry{}, err
	}

	e := Entry{
		PetID:         petID,
		Notes:         strings.TrimSpace(in.Notes),
		Mood:          mood,
		Weight:        weight,
		FoodIntake:    strings.TrimSpace(in.FoodIntake),
		ActivityLevel: activity,
		HealthNotes:   strings.TrimSpace(in.HealthNotes),
		EntryDate:     s.now().UTC(),
	}

	var linked []Media
	err = s.repo.WithTx(ctx, func(tx Tx) error {
		id, err := tx.InsertEntry(ctx, e)
		if err != nil {
			return fmt.Errorf("insert entry: %w", err)
		}
		e.ID = id

		linked = make([]Media, 0, len(stored))
		for _, st := range stored {
			m := Media{
				EntryID:   id,
				MediaType: st.Kind,
				FilePath:  st.URL,
			}
			mid, err := tx.InsertMedia(ctx, m)
			if err != nil {
				return fmt.Errorf("insert media %s: %w", st.Key, err)
			}
			m.ID = mid
			linked = append(linked, m)
		}
		return nil
	})
	if err != nil {
		if rmErr := s.media.Remove(ctx, stored); rmErr != nil {
			s.log.Warn("cleanup after rollback failed", map[string]any{
				"pet_id": petID,
				"error":  rmErr,
			})
		}
		s.log.Error("diary entry rolled back", map[string]any{
			"pet_id": petID,
			"files":  len(stored),
			"error":  err,
		})
		return Entry{}, fmt.Errorf("%w: %w", ErrTransactionFailed, err)
	}

	e.Media = linked
	s.log.Info("diary entry created", map[string]any{
		"pet_id":   petID,
		"entry_id": e.ID,
		"files":    len(linked),
	})
	return e, nil
}

func (s *Service) GetByID(ctx context.Context, petID, id int64) (Entry, error) {
	if id <= 0 {
		return Entry{}, ErrNotFound
	}
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Entry{}, err
	}
	if e.PetID != petID {
		return Entry{}, ErrNotFound
	}
	if e.Media == nil {
		e.Media = []Media{}
	}
	return e, nil
}

// ListByPet devuelve las entradas más recientes primero. Nunca nil.
func (s *Service) ListByPet(ctx context.Context, petID int64, filter ListFilter) ([]Entry, error) {
	if filter.Mood != "" && !filter.Mood.Valid() {
		return nil, fmt.Errorf("%w: mood must be happy, normal or sad", ErrInvalidInput)
	}
	if filter.ActivityLevel != "" && !filter.ActivityLevel.Valid() {
		return nil, fmt.Errorf("%w: activity_level must be high, normal or low", ErrInvalidInput)
	}

	items, err := s.repo.ListByPet(ctx, petID, filter)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Entry{}
	}
	for i := range items {
		if items[i].Media == nil {
			items[i].Media = []Media{}
		}
	}
	return items, nil
}

// PetOf devuelve la mascota dueña de la entrada.
func (s *Service) PetOf(ctx context.Context, id int64) (int64, error) {
	if id <= 0 {
		return 0, ErrNotFound
	}
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	return e.PetID, nil
}

// Delete borra la fila y luego intenta borrar cada archivo.
// Un fallo al borrar archivos solo se loguea.
func (s *Service) Delete(ctx context.Context, petID, id int64) error {
	e, err := s.GetByID(ctx, petID, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, petID, id); err != nil {
		return err
	}

	for _, m := range e.Media {
		if err := s.media.RemoveURL(ctx, m.FilePath); err != nil {
			s.log.Warn("media file not removed", map[string]any{
				"entry_id": id,
				"path":     m.FilePath,
				"error":    err,
			})
		}
	}
	return nil
}

func ParseMood(v string) (Mood, error) {
	m := Mood(strings.ToLower(strings.TrimSpace(v)))
	if m == "" || m.Valid() {
		return m, nil
	}
	return "", fmt.Errorf("%w: mood must be happy, normal or sad", ErrInvalidInput)
}

func ParseActivityLevel(v string) (ActivityLevel, error) {
	a := ActivityLevel(strings.ToLower(strings.TrimSpace(v)))
	if a == "" || a.Valid() {
		return a, nil
	}
	return "", fmt.Errorf("%w: activity_level must be high, normal or low", ErrInvalidInput)
}

// normalizeWeight: "" => nil; "4.20" => "4.2".
func normalizeWeight(v string) (*string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return nil, fmt.Errorf("%w: weight must be a positive decimal", ErrInvalidInput)
	}
	out := strconv.FormatFloat(f, 'f', -1, 64)
	return &out, nil
}
