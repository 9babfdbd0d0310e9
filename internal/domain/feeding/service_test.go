package feeding

import (
	"context"
	"errors"
	"sort"
	"testing"
)

type testRepo struct {
	items  []Schedule
	nextID int64
}

func (r *testRepo) Create(_ context.Context, s Schedule) (int64, error) {
	r.nextID++
	s.ID = r.nextID
	r.items = append(r.items, s)
	return s.ID, nil
}

func (r *testRepo) ListByPet(_ context.Context, petID int64) ([]Schedule, error) {
	out := make([]Schedule, 0)
	for _, s := range r.items {
		if s.PetID == petID {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].FeedingTime < out[j].FeedingTime })
	return out, nil
}

func TestCreate_NormalizesAndOrders(t *testing.T) {
	svc := NewService(&testRepo{})
	ctx := context.Background()

	if _, err := svc.Create(ctx, 1, CreateInput{FeedingTime: "18:30", FoodType: "kibble"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	s, err := svc.Create(ctx, 1, CreateInput{FeedingTime: "8:00", Frequency: "Twice_Daily", FoodType: "wet"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if s.FeedingTime != "08:00" || s.Frequency != FrequencyTwiceDaily {
		t.Fatalf("unexpected schedule: %+v", s)
	}

	items, err := svc.ListByPet(ctx, 1)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 || items[0].FeedingTime != "08:00" || items[1].Frequency != FrequencyDaily {
		t.Fatalf("unexpected order/defaults: %+v", items)
	}

	empty, err := svc.ListByPet(ctx, 2)
	if err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil list, got %v %v", empty, err)
	}
}

func TestCreate_InvalidInput(t *testing.T) {
	svc := NewService(&testRepo{})
	cases := []CreateInput{
		{FeedingTime: "25:00", FoodType: "kibble"},
		{FeedingTime: "noon", FoodType: "kibble"},
		{FeedingTime: "08:00", FoodType: "kibble", Frequency: "hourly"},
		{FeedingTime: "08:00"},
	}
	for _, in := range cases {
		if _, err := svc.Create(context.Background(), 1, in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%+v: expected ErrInvalidInput, got %v", in, err)
		}
	}
}
