package diary

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"strings"
	"testing"
	"time"

	"pet-care-tracker/internal/domain/media"
)

// -------------------------
// Test repo (in-memory, transaccional)
// -------------------------

var errInjected = errors.New("repo: injected failure")

type testRepo struct {
	entries map[int64]Entry
	media   map[int64]Media
	nextID  int64

	// failMediaOn: n-ésimo InsertMedia (1-based) que falla dentro de una tx; 0 = nunca.
	failMediaOn int
	failEntry   bool
}

func newTestRepo() *testRepo {
	return &testRepo{entries: map[int64]Entry{}, media: map[int64]Media{}}
}

type testTx struct {
	repo    *testRepo
	entries []Entry
	media   []Media
	inserts int
}

func (t *testTx) InsertEntry(_ context.Context, e Entry) (int64, error) {
	if t.repo.failEntry {
		return 0, errInjected
	}
	t.repo.nextID++
	e.ID = t.repo.nextID
	t.entries = append(t.entries, e)
	return e.ID, nil
}

func (t *testTx) InsertMedia(_ context.Context, m Media) (int64, error) {
	t.inserts++
	if t.repo.failMediaOn > 0 && t.inserts == t.repo.failMediaOn {
		return 0, errInjected
	}
	t.repo.nextID++
	m.ID = t.repo.nextID
	t.media = append(t.media, m)
	return m.ID, nil
}

func (r *testRepo) WithTx(ctx context.Context, fn func(tx Tx) error) error {
	tx := &testTx{repo: r}
	if err := fn(tx); err != nil {
		return err // rollback: nada de lo staged se aplica
	}
	for _, e := range tx.entries {
		r.entries[e.ID] = e
	}
	for _, m := range tx.media {
		r.media[m.ID] = m
	}
	return nil
}

func (r *testRepo) GetByID(_ context.Context, id int64) (Entry, error) {
	e, ok := r.entries[id]
	if !ok {
		return Entry{}, ErrNotFound
	}
	e.Media = r.mediaOf(id)
	return e, nil
}

func (r *testRepo) ListByPet(_ context.Context, petID int64, f ListFilter) ([]Entry, error) {
	out := make([]Entry, 0)
	for _, e := range r.entries {
		if e.PetID == petID && f.Match(e) {
			e.Media = r.mediaOf(e.ID)
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EntryDate.After(out[j].EntryDate) })
	return out, nil
}

func (r *testRepo) Delete(_ context.Context, petID, id int64) error {
	e, ok := r.entries[id]
	if !ok || e.PetID != petID {
		return ErrNotFound
	}
	delete(r.entries, id)
	for mid, m := range r.media {
		if m.EntryID == id {
			delete(r.media, mid)
		}
	}
	return nil
}

func (r *testRepo) mediaOf(entryID int64) []Media {
	out := make([]Media, 0)
	for _, m := range r.media {
		if m.EntryID == entryID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// -------------------------
// Test object store
// -------------------------

type testStore struct {
	objects    map[string][]byte
	deletes    int
	failDelete bool
}

func newTestStore() *testStore { return &testStore{objects: map[string][]byte{}} }

func (s *testStore) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.objects[key] = b
	return nil
}

func (s *testStore) Delete(_ context.Context, key string) error {
	s.deletes++
	if s.failDelete {
		return errors.New("store: delete failed")
	}
	delete(s.objects, key)
	return nil
}

func upload(name, ct string) media.Upload {
	return media.Upload{
		Filename:    name,
		ContentType: ct,
		Size:        3,
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader([]byte("abc"))), nil
		},
	}
}

type fixture struct {
	svc   *Service
	repo  *testRepo
	store *testStore
}

func newFixture() fixture {
	repo := newTestRepo()
	store := newTestStore()
	svc := NewService(repo, media.NewIngestor(store, "http://localhost:5000/uploads"), media.DiaryPolicy(5, 1<<20), nil)

	base := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	n := 0
	svc.now = func() time.Time {
		n++
		return base.Add(time.Duration(n) * time.Minute)
	}
	return fixture{svc: svc, repo: repo, store: store}
}

var walk = CreateInput{
	Notes:         "walk",
	Mood:          "happy",
	Weight:        "4.2",
	FoodIntake:    "kibble",
	ActivityLevel: "normal",
}

// -------------------------
// Tests
// -------------------------

func TestCreate_EntryWithOnePhoto(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	e, err := f.svc.Create(ctx, 7, walk, []media.Upload{upload("walk.jpg", "image/jpeg")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if e.ID == 0 || len(e.Media) != 1 || e.Media[0].EntryID != e.ID {
		t.Fatalf("unexpected entry: %+v", e)
	}

	items, err := f.svc.ListByPet(ctx, 7, ListFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(items))
	}
	got := items[0]
	if got.Mood != MoodHappy || got.Weight == nil || *got.Weight != "4.2" {
		t.Fatalf("unexpected fields: mood=%s weight=%v", got.Mood, got.Weight)
	}
	if len(got.Media) != 1 || got.Media[0].MediaType != media.KindPhoto {
		t.Fatalf("expected one photo, got %+v", got.Media)
	}
	if !strings.HasPrefix(got.Media[0].FilePath, "http://localhost:5000/uploads/pets/7/diary/") {
		t.Fatalf("unexpected file path: %s", got.Media[0].FilePath)
	}
}

func TestCreate_ZeroToFiveFiles(t *testing.T) {
	for n := 0; n <= 5; n++ {
		f := newFixture()
		uploads := make([]media.Upload, 0, n)
		for i := 0; i < n; i++ {
			uploads = append(uploads, upload("clip.mp4", "video/mp4"))
		}

		if _, err := f.svc.Create(context.Background(), 1, CreateInput{}, uploads); err != nil {
			t.Fatalf("n=%d create: %v", n, err)
		}
		if len(f.repo.entries) != 1 || len(f.repo.media) != n {
			t.Fatalf("n=%d expected 1 entry and %d media, got %d/%d", n, n, len(f.repo.entries), len(f.repo.media))
		}
	}
}

func TestCreate_MediaInsertFailureRollsBackEverything(t *testing.T) {
	f := newFixture()
	f.repo.failMediaOn = 2

	_, err := f.svc.Create(context.Background(), 7, walk, []media.Upload{
		upload("a.jpg", "image/jpeg"),
		upload("b.jpg", "image/jpeg"),
		upload("c.jpg", "image/jpeg"),
	})
	if !errors.Is(err, ErrTransactionFailed) {
		t.Fatalf("expected ErrTransactionFailed, got %v", err)
	}
	if !errors.Is(err, errInjected) {
		t.Fatalf("expected cause to be kept, got %v", err)
	}
	if len(f.repo.entries) != 0 || len(f.repo.media) != 0 {
		t.Fatalf("expected no rows, got %d entries / %d media", len(f.repo.entries), len(f.repo.media))
	}
	if len(f.store.objects) != 0 {
		t.Fatalf("expected stored files removed after rollback, left %d", len(f.store.objects))
	}
}

func TestCreate_EntryInsertFailure(t *testing.T) {
	f := newFixture()
	f.repo.failEntry = true

	_, err := f.svc.Create(context.Background(), 7, walk, []media.Upload{upload("a.jpg", "image/jpeg")})
	if !errors.Is(err, ErrTransactionFailed) {
		t.Fatalf("expected ErrTransactionFailed, got %v", err)
	}
	if len(f.repo.entries) != 0 || len(f.store.objects) != 0 {
		t.Fatalf("expected nothing persisted")
	}
}

func TestCreate_RejectsUnsupportedFileBeforeWriting(t *testing.T) {
	f := newFixture()

	_, err := f.svc.Create(context.Background(), 7, walk, []media.Upload{
		upload("a.jpg", "image/jpeg"),
		upload("setup.exe", "application/octet-stream"),
	})
	if !errors.Is(err, media.ErrUnsupportedMediaType) {
		t.Fatalf("expected ErrUnsupportedMediaType, got %v", err)
	}
	if len(f.repo.entries) != 0 || len(f.store.objects) != 0 {
		t.Fatalf("expected no rows and no files")
	}
}

func TestCreate_InvalidFields(t *testing.T) {
	cases := map[string]CreateInput{
		"mood":     {Mood: "angry"},
		"activity": {ActivityLevel: "extreme"},
		"weight":   {Weight: "heavy"},
		"negative": {Weight: "-1"},
		"zero":     {Weight: "0"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			f := newFixture()
			_, err := f.svc.Create(context.Background(), 7, in, []media.Upload{upload("a.jpg", "image/jpeg")})
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			if len(f.store.objects) != 0 {
				t.Fatalf("expected no files written")
			}
		})
	}
}

func TestCreate_NormalizesWeight(t *testing.T) {
	f := newFixture()
	e, err := f.svc.Create(context.Background(), 7, CreateInput{Weight: " 4.20 "}, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if e.Weight == nil || *e.Weight != "4.2" {
		t.Fatalf("expected 4.2, got %v", e.Weight)
	}
	if e.Media == nil {
		t.Fatalf("expected empty media slice, got nil")
	}
}

func TestListByPet_EmptyAndOrdered(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	items, err := f.svc.ListByPet(ctx, 7, ListFilter{})
	if err != nil || items == nil || len(items) != 0 {
		t.Fatalf("expected empty non-nil list, got %v %v", items, err)
	}

	first, _ := f.svc.Create(ctx, 7, CreateInput{Notes: "first", Mood: "sad"}, nil)
	second, _ := f.svc.Create(ctx, 7, CreateInput{Notes: "second", Mood: "happy"}, nil)
	_, _ = f.svc.Create(ctx, 8, CreateInput{Notes: "other pet"}, nil)

	items, err = f.svc.ListByPet(ctx, 7, ListFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 || items[0].ID != second.ID || items[1].ID != first.ID {
		t.Fatalf("expected newest first, got %+v", items)
	}
	if items[0].Media == nil || len(items[0].Media) != 0 {
		t.Fatalf("expected media [] for entry without files")
	}

	happy, err := f.svc.ListByPet(ctx, 7, ListFilter{Mood: MoodHappy})
	if err != nil || len(happy) != 1 || happy[0].ID != second.ID {
		t.Fatalf("mood filter: %+v %v", happy, err)
	}

	if _, err := f.svc.ListByPet(ctx, 7, ListFilter{Mood: "angry"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad filter, got %v", err)
	}
}

func TestDelete_RemovesRowsAndFiles(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	e, err := f.svc.Create(ctx, 7, walk, []media.Upload{upload("a.jpg", "image/jpeg"), upload("b.mp4", "video/mp4")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := f.svc.Delete(ctx, 7, e.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(f.repo.entries) != 0 || len(f.repo.media) != 0 {
		t.Fatalf("expected rows removed")
	}
	if len(f.store.objects) != 0 || f.store.deletes != 2 {
		t.Fatalf("expected 2 file deletes, got %d (left %d)", f.store.deletes, len(f.store.objects))
	}
}

func TestDelete_FileRemovalFailureIsNotSurfaced(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	e, err := f.svc.Create(ctx, 7, walk, []media.Upload{upload("a.jpg", "image/jpeg"), upload("b.jpg", "image/jpeg")})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	f.store.failDelete = true

	if err := f.svc.Delete(ctx, 7, e.ID); err != nil {
		t.Fatalf("expected nil error despite file failures, got %v", err)
	}
	if len(f.repo.entries) != 0 || len(f.repo.media) != 0 {
		t.Fatalf("expected rows removed")
	}
	if f.store.deletes != 2 {
		t.Fatalf("expected an attempt per file, got %d", f.store.deletes)
	}
}

func TestDelete_UnknownOrForeignEntry(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	e, _ := f.svc.Create(ctx, 7, walk, nil)

	if err := f.svc.Delete(ctx, 7, 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown id, got %v", err)
	}
	if err := f.svc.Delete(ctx, 8, e.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for other pet, got %v", err)
	}
	if len(f.repo.entries) != 1 {
		t.Fatalf("entry must survive")
	}
}

func TestPetOf_ResolvesOwningPet(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	e, err := f.svc.Create(ctx, 7, walk, nil)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	petID, err := f.svc.PetOf(ctx, e.ID)
	if err != nil || petID != 7 {
		t.Fatalf("expected pet 7, got %d %v", petID, err)
	}
	if _, err := f.svc.PetOf(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
