package disk

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStore_PutServeDelete(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	ctx := context.Background()
	key := "pets/7/diary/1-a.jpg"

	if err := s.Put(ctx, key, strings.NewReader("jpeg-bytes"), 10, "image/jpeg"); err != nil {
		t.Fatalf("put: %v", err)
	}

	b, err := os.ReadFile(filepath.Join(s.Root(), "pets", "7", "diary", "1-a.jpg"))
	if err != nil || string(b) != "jpeg-bytes" {
		t.Fatalf("unexpected file content %q err=%v", string(b), err)
	}

	srv := httptest.NewServer(http.StripPrefix("/uploads/", s.Handler()))
	defer srv.Close()

	res, err := http.Get(srv.URL + "/uploads/" + key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 serving file, got %d", res.StatusCode)
	}

	if err := s.Delete(ctx, key); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.Delete(ctx, key); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not exist on second delete, got %v", err)
	}
}

func TestStore_RejectsTraversal(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	for _, key := range []string{"", "../x", "pets/../../x"} {
		if err := s.Put(context.Background(), key, strings.NewReader("x"), 1, ""); !errors.Is(err, ErrInvalidKey) {
			t.Fatalf("key %q: expected ErrInvalidKey, got %v", key, err)
		}
	}
}
