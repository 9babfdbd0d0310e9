package media

import (
	"io"
	"mime/multipart"
)

// FromFileHeaders adapta los archivos de un multipart.Form a Upload.
func FromFileHeaders(fhs []*multipart.FileHeader) []Upload {
	out := make([]Upload, 0, len(fhs))
	for _, fh := range fhs {
		out = append(out, Upload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Open: func() (io.ReadCloser, error) {
				return fh.Open()
			},
		})
	}
	return out
}
