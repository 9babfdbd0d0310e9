package pets

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
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("pet not found")
	ErrForbidden    = errors.New("forbidden")
)

const imageNamespace = "pets/images"

// MediaIngestor es lo que pets necesita de media.Ingestor (imagen de perfil).
type MediaIngestor interface {
	Ingest(ctx context.Context, p media.Policy, namespace string, uploads []media.Upload) ([]media.Stored, error)
	Remove(ctx context.Context, stored []media.Stored) error
	RemoveURL(ctx context.Context, url string) error
}

type Service struct {
	repo   Repository
	images MediaIngestor
	policy media.Policy
	log    logger.Logger
	now    func() time.Time
}

func NewService(repo Repository, images MediaIngestor, policy media.Policy, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:   repo,
		images: images,
		policy: policy,
		log:    log.With(map[string]any{"module": "pets"}),
		now:    time.Now,
	}
}

type CreateInput struct {
	Name      string
	Species   string
	Breed     string
	Gender    string
	BirthDate string // YYYY-MM-DD
	Weight    string
}

func (s *Service) Create(ctx context.Context, ownerID int64, in CreateInput, image *media.Upload) (Pet, error) {
	if ownerID <= 0 {
		return Pet{}, ErrInvalidInput
	}
	name := strings.TrimSpace(in.Name)
	species := strings.TrimSpace(in.Species)
	if name == "" || species == "" {
		return Pet{}, fmt.Errorf("%w: name and species are required", ErrInvalidInput)
	}
	gender, err := parseGender(in.Gender)
	if err != nil {
		return Pet{}, err
	}
	bd, err := parseBirthDate(in.BirthDate)
	if err != nil {
		return Pet{}, err
	}
	weight, err := normalizeWeight(in.Weight)
	if err != nil {
		return Pet{}, err
	}

	p := Pet{
		OwnerID:     ownerID,
		Name:        name,
		Species:     species,
		Breed:       strings.TrimSpace(in.Breed),
		Gender:      gender,
		BirthDate:   bd,
		Weight:      weight,
		LastUpdated: s.now().UTC(),
	}

	var stored []media.Stored
	if image != nil {
		stored, err = s.images.Ingest(ctx, s.policy, imageNamespace, []media.Upload{*image})
		if err != nil {
			return Pet{}, err
		}
		p.ImageURL = stored[0].URL
	}

	id, err := s.repo.Create(ctx, p)
	if err != nil {
		if rmErr := s.images.Remove(ctx, stored); rmErr != nil {
			s.log.Warn("pet image not removed", map[string]any{"error": rmErr})
		}
		return Pet{}, err
	}
	p.ID = id
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (Pet, error) {
	if id <= 0 {
		return Pet{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// GetOwned devuelve la mascota solo si pertenece a ownerID.
func (s *Service) GetOwned(ctx context.Context, ownerID, id int64) (Pet, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}
	if p.OwnerID != ownerID {
		return Pet{}, ErrForbidden
	}
	return p, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerID int64) ([]Pet, error) {
	items, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Pet{}
	}
	return items, nil
}

// UpdateInput: nil = no tocar.
type UpdateInput struct {
	Name      *string
	Species   *string
	Breed     *string
	Gender    *string
	BirthDate *string // "" limpia la fecha
	Weight    *string
}

// Update aplica los cambios y, si viene peso, agrega una fila a weight_history.
// Son dos escrituras separadas (sin transacción): si la segunda falla el pet queda actualizado.
func (s *Service) Update(ctx context.Context, ownerID, id int64, in UpdateInput) (Pet, error) {
	p, err := s.GetOwned(ctx, ownerID, id)
	if err != nil {
		return Pet{}, err
	}

	if in.Name != nil {
		v := strings.TrimSpace(*in.Name)
		if v == "" {
			return Pet{}, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
		}
		p.Name = v
	}
	if in.Species != nil {
		v := strings.TrimSpace(*in.Species)
		if v == "" {
			return Pet{}, fmt.Errorf("%w: species cannot be empty", ErrInvalidInput)
		}
		p.Species = v
	}
	if in.Breed != nil {
		p.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Gender != nil {
		g, err := parseGender(*in.Gender)
		if err != nil {
			return Pet{}, err
		}
		p.Gender = g
	}
	if in.BirthDate != nil {
		bd, err := parseBirthDate(*in.BirthDate)
		if err != nil {
			return Pet{}, err
		}
		p.BirthDate = bd
	}

	var newWeight *string
	if in.Weight != nil {
		newWeight, err = normalizeWeight(*in.Weight)
		if err != nil {
			return Pet{}, err
		}
		if newWeight != nil {
			p.Weight = newWeight
		}
	}

	now := s.now().UTC()
	p.LastUpdated = now

	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}

	if newWeight != nil {
		if err := s.repo.AppendWeight(ctx, WeightRecord{PetID: p.ID, Weight: *newWeight, RecordedAt: now}); err != nil {
			return Pet{}, fmt.Errorf("append weight history: %w", err)
		}
	}
	return p, nil
}

// Delete borra la mascota (cascada en diario, historial y horarios) y luego su imagen, best-effort.
func (s *Service) Delete(ctx context.Context, ownerID, id int64) error {
	p, err := s.GetOwned(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if p.ImageURL != "" {
		if err := s.images.RemoveURL(ctx, p.ImageURL); err != nil {
			s.log.Warn("pet image not removed", map[string]any{
				"pet_id": id,
				"path":   p.ImageURL,
				"error":  err,
			})
		}
	}
	return nil
}

func (s *Service) WeightHistory(ctx context.Context, ownerID, id int64) ([]WeightRecord, error) {
	if _, err := s.GetOwned(ctx, ownerID, id); err != nil {
		return nil, err
	}
	items, err := s.repo.WeightHistory(ctx, id)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []WeightRecord{}
	}
	return items, nil
}

// Stats: total de mascotas y peso promedio (2 decimales) de las que tienen peso.
func (s *Service) Stats(ctx context.Context, ownerID int64) (Stats, error) {
	items, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return Stats{}, err
	}

	st := Stats{TotalPets: len(items)}
	var sum float64
	n := 0
	for _, p := range items {
		if p.Weight == nil {
			continue
		}
		w, err := strconv.ParseFloat(*p.Weight, 64)
		if err != nil {
			continue
		}
		sum += w
		n++
	}
	if n > 0 {
		st.AverageWeight = math.Round(sum/float64(n)*100) / 100
	}
	return st, nil
}

func parseGender(v string) (Gender, error) {
	g := Gender(strings.ToLower(strings.TrimSpace(v)))
	if g == "" || g.Valid() {
		return g, nil
	}
	return "", fmt.Errorf("%w: gender must be male, female or unknown", ErrInvalidInput)
}

func parseBirthDate(v string) (*time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, fmt.Errorf("%w: birth_date must be YYYY-MM-DD", ErrInvalidInput)
	}
	return &t, nil
}

// normalizeWeight: "" => nil; "4.20" => "4.2".
func normalizeWeight(v string) (*string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return nil, fmt.Errorf("%w: weight must be a positive decimal", ErrInvalidInput)
	}
	out := strconv.FormatFloat(f, 'f', -1, 64)
	return &out, nil
}
