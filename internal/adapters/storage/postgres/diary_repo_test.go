package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"pet-care-tracker/internal/domain/diary"
	"pet-care-tracker/internal/domain/media"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMock(t *testing.T) (*DiaryRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewDiaryRepo(db), mock
}

func insertEntryAndPhoto(ctx context.Context, tx diary.Tx) error {
	weight := "4.2"
	id, err := tx.InsertEntry(ctx, diary.Entry{
		PetID:     7,
		Notes:     "walk",
		Mood:      diary.MoodHappy,
		Weight:    &weight,
		EntryDate: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	})
	if err != nil {
		return err
	}
	_, err = tx.InsertMedia(ctx, diary.Media{
		EntryID:   id,
		MediaType: media.KindPhoto,
		FilePath:  "http://localhost:5000/uploads/pets/7/diary/a.jpg",
	})
	return err
}

func TestDiaryRepo_WithTxCommits(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO pet_diary_entries`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))
	mock.ExpectQuery(`INSERT INTO pet_media`).
		WithArgs(int64(11), "photo", "http://localhost:5000/uploads/pets/7/diary/a.jpg", nil).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(21)))
	mock.ExpectCommit()

	ctx := context.Background()
	if err := repo.WithTx(ctx, func(tx diary.Tx) error { return insertEntryAndPhoto(ctx, tx) }); err != nil {
		t.Fatalf("WithTx: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestDiaryRepo_WithTxRollsBackOnMediaFailure(t *testing.T) {
	repo, mock := newMock(t)

	boom := errors.New("media insert failed")
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO pet_diary_entries`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))
	mock.ExpectQuery(`INSERT INTO pet_media`).WillReturnError(boom)
	mock.ExpectRollback()

	ctx := context.Background()
	err := repo.WithTx(ctx, func(tx diary.Tx) error { return insertEntryAndPhoto(ctx, tx) })
	if !errors.Is(err, boom) {
		t.Fatalf("expected media error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestDiaryRepo_ListDecodesAggregatedMedia(t *testing.T) {
	repo, mock := newMock(t)

	cols := []string{"id", "pet_id", "notes", "mood", "weight", "food_intake", "activity_level", "health_notes", "entry_date", "media"}
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`FROM pet_diary_entries e`).
		WithArgs(int64(7), "happy").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(int64(2), int64(7), "walk", "happy", "4.2", "", "", "", now,
				[]byte(`[{"id":5,"media_type":"photo","file_path":"http://x/a.jpg","description":null}]`)).
			AddRow(int64(1), int64(7), "", "happy", nil, "", "", "", now.Add(-time.Hour), []byte(`[]`)))

	items, err := repo.ListByPet(context.Background(), 7, diary.ListFilter{Mood: diary.MoodHappy})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(items))
	}
	if len(items[0].Media) != 1 || items[0].Media[0].MediaType != media.KindPhoto || items[0].Media[0].EntryID != 2 {
		t.Fatalf("unexpected media: %+v", items[0].Media)
	}
	if items[0].Weight == nil || *items[0].Weight != "4.2" {
		t.Fatalf("unexpected weight: %v", items[0].Weight)
	}
	if items[1].Media == nil || len(items[1].Media) != 0 || items[1].Weight != nil {
		t.Fatalf("expected empty media and nil weight: %+v", items[1])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestDiaryRepo_DeleteUnknownIsNotFound(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(`DELETE FROM pet_diary_entries`).
		WithArgs(int64(99), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), 7, 99); !errors.Is(err, diary.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
