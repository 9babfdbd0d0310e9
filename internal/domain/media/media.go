package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"strings"
)

// Kind es el tipo de medio que se persiste en pet_media.media_type.
type Kind string

const (
	KindPhoto Kind = "photo"
	KindVideo Kind = "video"
)

var (
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrPayloadTooLarge      = errors.New("file too large")
	ErrTooManyFiles         = errors.New("too many files")
	ErrEmptyFile            = errors.New("empty file")
)

// ObjectStore es el puerto de almacenamiento de archivos (disco o MinIO).
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Delete(ctx context.Context, key string) error
}

// Upload describe un archivo recibido, independiente de multipart/http.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// Stored es un archivo aceptado y ya escrito en el store.
type Stored struct {
	Kind        Kind
	Key         string
	URL         string
	ContentType string
	Size        int64
	Original    string
}

// Rejection indica qué archivo se rechazó y por qué (Err es uno de los sentinels).
type Rejection struct {
	Filename string
	Err      error
}

func (r *Rejection) Error() string {
	if r.Filename == "" {
		return r.Err.Error()
	}
	return fmt.Sprintf("%s: %v", r.Filename, r.Err)
}

func (r *Rejection) Unwrap() error { return r.Err }

// Policy define límites por tipo de subida.
type Policy struct {
	MaxFiles        int
	MaxFileBytes    int64
	AllowedPrefixes []string
}

// DiaryPolicy: fotos y videos del diario.
func DiaryPolicy(maxFiles int, maxFileBytes int64) Policy {
	return Policy{
		MaxFiles:        maxFiles,
		MaxFileBytes:    maxFileBytes,
		AllowedPrefixes: []string{"image/", "video/"},
	}
}

// ImagePolicy: imagen de perfil de la mascota (una sola).
func ImagePolicy(maxFileBytes int64) Policy {
	return Policy{
		MaxFiles:        1,
		MaxFileBytes:    maxFileBytes,
		AllowedPrefixes: []string{"image/"},
	}
}

// Check valida un archivo contra la policy.
func (p Policy) Check(u Upload) error {
	ct := NormalizeContentType(u.ContentType)

	allowed := false
	for _, prefix := range p.AllowedPrefixes {
		if strings.HasPrefix(ct, prefix) {
			allowed = true
			break
		}
	}
	if !allowed {
		return &Rejection{Filename: u.Filename, Err: ErrUnsupportedMediaType}
	}
	if p.MaxFileBytes > 0 && u.Size > p.MaxFileBytes {
		return &Rejection{Filename: u.Filename, Err: ErrPayloadTooLarge}
	}
	if u.Open == nil {
		return &Rejection{Filename: u.Filename, Err: ErrEmptyFile}
	}
	return nil
}

// CheckAll valida todos los archivos; se usa antes de escribir nada.
func (p Policy) CheckAll(uploads []Upload) error {
	if p.MaxFiles > 0 && len(uploads) > p.MaxFiles {
		return &Rejection{Err: ErrTooManyFiles}
	}
	for _, u := range uploads {
		if err := p.Check(u); err != nil {
			return err
		}
	}
	return nil
}

// KindOf: image/* => photo, video/* => video.
func KindOf(contentType string) (Kind, bool) {
	ct := NormalizeContentType(contentType)
	switch {
	case strings.HasPrefix(ct, "image/"):
		return KindPhoto, true
	case strings.HasPrefix(ct, "video/"):
		return KindVideo, true
	default:
		return "", false
	}
}

// NormalizeContentType baja a minúsculas y quita parámetros ("; charset=...").
func NormalizeContentType(ct string) string {
	ct = strings.TrimSpace(ct)
	if ct == "" {
		return ""
	}
	if mt, _, err := mime.ParseMediaType(ct); err == nil {
		return mt
	}
	return strings.ToLower(ct)
}
