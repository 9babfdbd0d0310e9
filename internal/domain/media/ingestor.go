package media

import (
	"context"
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Ingestor valida y luego escribe archivos en el ObjectStore.
// No conoce el entry del diario; quien lo llama enlaza los Stored después.
type Ingestor struct {
	store     ObjectStore
	publicURL string

	now    func() time.Time
	suffix func() string
}

// NewIngestor: publicURL es el prefijo absoluto con el que se sirven las keys
// (ej: http://localhost:5000/uploads).
func NewIngestor(store ObjectStore, publicURL string) *Ingestor {
	return &Ingestor{
		store:     store,
		publicURL: strings.TrimRight(strings.TrimSpace(publicURL), "/"),
		now:       time.Now,
		suffix: func() string {
			return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
		},
	}
}

// Ingest valida todos los uploads y recién entonces los escribe bajo namespace.
// Si una escritura falla, borra lo que ya había escrito y devuelve el error.
func (i *Ingestor) Ingest(ctx context.Context, p Policy, namespace string, uploads []Upload) ([]Stored, error) {
	if len(uploads) == 0 {
		return []Stored{}, nil
	}
	if err := p.CheckAll(uploads); err != nil {
		return nil, err
	}

	namespace = strings.Trim(namespace, "/")
	out := make([]Stored, 0, len(uploads))

	for _, u := range uploads {
		kind, _ := KindOf(u.ContentType)
		key := path.Join(namespace, i.filename(u.Filename))

		if err := i.put(ctx, key, u); err != nil {
			_ = i.Remove(ctx, out)
			return nil, fmt.Errorf("store %s: %w", u.Filename, err)
		}

		out = append(out, Stored{
			Kind:        kind,
			Key:         key,
			URL:         i.URL(key),
			ContentType: NormalizeContentType(u.ContentType),
			Size:        u.Size,
			Original:    u.Filename,
		})
	}

	return out, nil
}

func (i *Ingestor) put(ctx context.Context, key string, u Upload) error {
	rc, err := u.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	return i.store.Put(ctx, key, rc, u.Size, NormalizeContentType(u.ContentType))
}

// Remove borra best-effort; devuelve todos los errores juntos.
func (i *Ingestor) Remove(ctx context.Context, stored []Stored) error {
	var errs []error
	for _, s := range stored {
		if err := i.store.Delete(ctx, s.Key); err != nil {
			errs = append(errs, fmt.Errorf("delete %s: %w", s.Key, err))
		}
	}
	return errors.Join(errs...)
}

// RemoveURL borra el objeto referenciado por una URL pública.
func (i *Ingestor) RemoveURL(ctx context.Context, url string) error {
	key, ok := i.KeyFromURL(url)
	if !ok {
		return fmt.Errorf("url outside media root: %s", url)
	}
	return i.store.Delete(ctx, key)
}

func (i *Ingestor) URL(key string) string {
	return i.publicURL + "/" + strings.TrimLeft(key, "/")
}

// KeyFromURL invierte URL(). Rechaza rutas que escapen del namespace (..).
func (i *Ingestor) KeyFromURL(url string) (string, bool) {
	prefix := i.publicURL + "/"
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(url, prefix)
	if key == "" || strings.Contains(key, "..") {
		return "", false
	}
	return key, true
}

// filename: <unix-millis>-<random><ext>
func (i *Ingestor) filename(original string) string {
	return fmt.Sprintf("%d-%s%s", i.now().UnixMilli(), i.suffix(), safeExt(original))
}

func safeExt(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if len(ext) < 2 || len(ext) > 10 {
		return ""
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}
