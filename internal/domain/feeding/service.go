package feeding

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidInput = errors.New("invalid input")

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	FeedingTime string
	Frequency   string
	FoodType    string
	Amount      string
	Notes       string
}

func (s *Service) Create(ctx context.Context, petID int64, in CreateInput) (Schedule, error) {
	if petID <= 0 {
		return Schedule{}, ErrInvalidInput
	}
	ft, err := normalizeTime(in.FeedingTime)
	if err != nil {
		return Schedule{}, err
	}
	freq := Frequency(strings.ToLower(strings.TrimSpace(in.Frequency)))
	if freq == "" {
		freq = FrequencyDaily
	}
	if !freq.Valid() {
		return Schedule{}, fmt.Errorf("%w: frequency must be daily, twice_daily or weekly", ErrInvalidInput)
	}
	foodType := strings.TrimSpace(in.FoodType)
	if foodType == "" {
		return Schedule{}, fmt.Errorf("%w: food_type required", ErrInvalidInput)
	}

	sc := Schedule{
		PetID:       petID,
		FeedingTime: ft,
		Frequency:   freq,
		FoodType:    foodType,
		Amount:      strings.TrimSpace(in.Amount),
		Notes:       strings.TrimSpace(in.Notes),
		CreatedAt:   s.now().UTC(),
	}
	id, err := s.repo.Create(ctx, sc)
	if err != nil {
		return Schedule{}, err
	}
	sc.ID = id
	return sc, nil
}

func (s *Service) ListByPet(ctx context.Context, petID int64) ([]Schedule, error) {
	items, err := s.repo.ListByPet(ctx, petID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Schedule{}
	}
	return items, nil
}

// normalizeTime acepta "8:05", "08:05" o "08:05:00" y devuelve "08:05".
func normalizeTime(v string) (string, error) {
	v = strings.TrimSpace(v)
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format("15:04"), nil
		}
	}
	return "", fmt.Errorf("%w: feeding_time must be HH:MM", ErrInvalidInput)
}
