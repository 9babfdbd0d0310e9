package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"pet-care-tracker/internal/domain/diary"
	"pet-care-tracker/internal/domain/feeding"
	"pet-care-tracker/internal/domain/media"
	"pet-care-tracker/internal/domain/pets"
	"pet-care-tracker/internal/domain/users"
)

func TestUsersRepo_DuplicateUsername(t *testing.T) {
	repo := NewStore().Users()
	ctx := context.Background()

	if _, err := repo.Create(ctx, users.User{Username: "alice"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.Create(ctx, users.User{Username: "alice"}); !errors.Is(err, users.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
	if _, err := repo.GetByUsername(ctx, "bob"); !errors.Is(err, users.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDiaryRepo_FailedTxLeavesNothing(t *testing.T) {
	s := NewStore()
	repo := s.Diary()
	ctx := context.Background()
	petID := mustCreatePet(t, s)

	boom := errors.New("boom")
	err := repo.WithTx(ctx, func(tx diary.Tx) error {
		id, err := tx.InsertEntry(ctx, diary.Entry{PetID: petID, EntryDate: time.Now()})
		if err != nil {
			return err
		}
		if _, err := tx.InsertMedia(ctx, diary.Media{EntryID: id, MediaType: media.KindPhoto, FilePath: "a"}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	items, err := repo.ListByPet(ctx, petID, diary.ListFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 0 || len(s.media) != 0 {
		t.Fatalf("expected nothing persisted, got %d entries %d media", len(items), len(s.media))
	}
}

func TestDiaryRepo_ListNewestFirstWithMedia(t *testing.T) {
	s := NewStore()
	repo := s.Diary()
	ctx := context.Background()
	petID := mustCreatePet(t, s)
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 2; i++ {
		err := repo.WithTx(ctx, func(tx diary.Tx) error {
			id, err := tx.InsertEntry(ctx, diary.Entry{PetID: petID, Notes: "n", EntryDate: base.Add(time.Duration(i) * time.Hour)})
			if err != nil {
				return err
			}
			_, err = tx.InsertMedia(ctx, diary.Media{EntryID: id, MediaType: media.KindPhoto, FilePath: "f"})
			return err
		})
		if err != nil {
			t.Fatalf("tx %d: %v", i, err)
		}
	}

	items, err := repo.ListByPet(ctx, petID, diary.ListFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(items))
	}
	if !items[0].EntryDate.After(items[1].EntryDate) {
		t.Fatalf("expected newest first")
	}
	if len(items[0].Media) != 1 || len(items[1].Media) != 1 {
		t.Fatalf("expected one media per entry")
	}

	if err := repo.Delete(ctx, petID+100, items[0].ID); !errors.Is(err, diary.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for other pet, got %v", err)
	}
}

func TestDiaryRepo_EntryForMissingPetFails(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	err := s.Diary().WithTx(ctx, func(tx diary.Tx) error {
		_, err := tx.InsertEntry(ctx, diary.Entry{PetID: 42, EntryDate: time.Now()})
		return err
	})
	if !errors.Is(err, pets.ErrNotFound) {
		t.Fatalf("expected pets.ErrNotFound, got %v", err)
	}
	if len(s.entries) != 0 {
		t.Fatalf("expected no orphan entry, got %d", len(s.entries))
	}
}

func TestPetsRepo_DeleteCascades(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	petID, err := s.Pets().Create(ctx, pets.Pet{OwnerID: 1, Name: "Rex", Species: "dog"})
	if err != nil {
		t.Fatalf("create pet: %v", err)
	}
	if err := s.Pets().AppendWeight(ctx, pets.WeightRecord{PetID: petID, Weight: "4.2", RecordedAt: time.Now()}); err != nil {
		t.Fatalf("append weight: %v", err)
	}
	if _, err := s.Feeding().Create(ctx, feeding.Schedule{PetID: petID, FeedingTime: "08:00", FoodType: "kibble"}); err != nil {
		t.Fatalf("create schedule: %v", err)
	}
	err = s.Diary().WithTx(ctx, func(tx diary.Tx) error {
		id, err := tx.InsertEntry(ctx, diary.Entry{PetID: petID, EntryDate: time.Now()})
		if err != nil {
			return err
		}
		_, err = tx.InsertMedia(ctx, diary.Media{EntryID: id, MediaType: media.KindVideo, FilePath: "v"})
		return err
	})
	if err != nil {
		t.Fatalf("diary tx: %v", err)
	}

	if err := s.Pets().Delete(ctx, petID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if len(s.weights) != 0 || len(s.entries) != 0 || len(s.media) != 0 || len(s.schedules) != 0 {
		t.Fatalf("expected cascade, got weights=%d entries=%d media=%d schedules=%d",
			len(s.weights), len(s.entries), len(s.media), len(s.schedules))
	}
	if _, err := s.Pets().GetByID(ctx, petID); !errors.Is(err, pets.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestFeedingRepo_OrderedByTime(t *testing.T) {
	repo := NewStore().Feeding()
	ctx := context.Background()

	for _, at := range []string{"18:00", "08:00", "12:30"} {
		if _, err := repo.Create(ctx, feeding.Schedule{PetID: 3, FeedingTime: at, FoodType: "wet"}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	items, err := repo.ListByPet(ctx, 3)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 3 || items[0].FeedingTime != "08:00" || items[2].FeedingTime != "18:00" {
		t.Fatalf("unexpected order: %+v", items)
	}
}

func mustCreatePet(t *testing.T, s *Store) int64 {
	t.Helper()
	id, err := s.Pets().Create(context.Background(), pets.Pet{OwnerID: 1, Name: "Rex", Species: "dog"})
	if err != nil {
		t.Fatalf("create pet: %v", err)
	}
	return id
}
