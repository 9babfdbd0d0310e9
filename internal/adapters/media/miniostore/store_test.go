package miniostore

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// fakeS3 atiende el subconjunto de la API S3 que usa Store (path-style).
type fakeS3 struct {
	mu          sync.Mutex
	buckets     map[string]bool
	objects     map[string][]byte
	types       map[string]string
	makeBuckets int
}

func newFakeS3() *fakeS3 {
	return &fakeS3{
		buckets: map[string]bool{},
		objects: map[string][]byte{},
		types:   map[string]string{},
	}
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	bucket, key, _ := strings.Cut(strings.TrimPrefix(r.URL.Path, "/"), "/")

	switch {
	case r.Method == http.MethodGet && r.URL.Query().Has("location"):
		w.Header().Set("Content-Type", "application/xml")
		_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><LocationConstraint xmlns="http://s3.amazonaws.com/doc/2006-03-01/"></LocationConstraint>`)
	case r.Method == http.MethodHead && key == "":
		if !f.buckets[bucket] {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodPut && key == "":
		f.buckets[bucket] = true
		f.makeBuckets++
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodPut:
		b, err := readPayload(r)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.objects[bucket+"/"+key] = b
		f.types[bucket+"/"+key] = r.Header.Get("Content-Type")
		w.Header().Set("ETag", `"d41d8cd98f00b204e9800998ecf8427e"`)
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodDelete:
		delete(f.objects, bucket+"/"+key)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusNotImplemented)
	}
}

func (f *fakeS3) object(key string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.objects[key]
	return b, ok
}

func (f *fakeS3) contentType(key string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.types[key]
}

func (f *fakeS3) bucketCalls(bucket string) (bool, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.buckets[bucket], f.makeBuckets
}

// readPayload devuelve el cuerpo del objeto; sobre http el cliente lo manda en aws-chunked.
func readPayload(r *http.Request) ([]byte, error) {
	if !strings.HasPrefix(r.Header.Get("X-Amz-Content-Sha256"), "STREAMING-") {
		return io.ReadAll(r.Body)
	}
	br := bufio.NewReader(r.Body)
	var out bytes.Buffer
	for {
		line, err := br.ReadString('\n')
		if err != nil {
			return nil, err
		}
		sizeHex, _, _ := strings.Cut(strings.TrimSpace(line), ";")
		n, err := strconv.ParseInt(sizeHex, 16, 64)
		if err != nil {
			return nil, fmt.Errorf("chunk size %q: %w", sizeHex, err)
		}
		if n == 0 {
			return out.Bytes(), nil
		}
		if _, err := io.CopyN(&out, br, n); err != nil {
			return nil, err
		}
		if _, err := br.Discard(2); err != nil {
			return nil, err
		}
	}
}

func newTestStore(t *testing.T, fake *fakeS3) *Store {
	t.Helper()

	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	s, err := New(context.Background(), Config{
		Endpoint:  strings.TrimPrefix(srv.URL, "http://"),
		AccessKey: "minio",
		SecretKey: "minio-secret",
		Bucket:    "pet-media",
	})
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return s
}

func TestNew_CreatesMissingBucketOnce(t *testing.T) {
	fake := newFakeS3()

	newTestStore(t, fake)
	if ok, calls := fake.bucketCalls("pet-media"); !ok || calls != 1 {
		t.Fatalf("expected bucket created once, got exists=%v calls=%d", ok, calls)
	}

	newTestStore(t, fake)
	if _, calls := fake.bucketCalls("pet-media"); calls != 1 {
		t.Fatalf("existing bucket must not be recreated, calls=%d", calls)
	}
}

func TestStore_PutAndDelete(t *testing.T) {
	fake := newFakeS3()
	s := newTestStore(t, fake)
	ctx := context.Background()

	body := "fake-jpeg"
	if err := s.Put(ctx, "pets/7/diary/a.jpg", strings.NewReader(body), int64(len(body)), "image/jpeg"); err != nil {
		t.Fatalf("put: %v", err)
	}
	if got, _ := fake.object("pet-media/pets/7/diary/a.jpg"); string(got) != body {
		t.Fatalf("unexpected object %q", got)
	}
	if ct := fake.contentType("pet-media/pets/7/diary/a.jpg"); ct != "image/jpeg" {
		t.Fatalf("unexpected content type %q", ct)
	}

	if err := s.Put(ctx, "pets/7/diary/empty.png", strings.NewReader(""), 0, "image/png"); err != nil {
		t.Fatalf("put empty: %v", err)
	}
	if b, ok := fake.object("pet-media/pets/7/diary/empty.png"); !ok || len(b) != 0 {
		t.Fatalf("expected empty object stored")
	}

	if err := s.Delete(ctx, "pets/7/diary/a.jpg"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := fake.object("pet-media/pets/7/diary/a.jpg"); ok {
		t.Fatalf("expected object removed")
	}
}
