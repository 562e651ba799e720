// Package media stores images for categories, products and profiles. By
// default uploads go through the backend; with an S3 bucket configured the
// gateway writes them to object storage itself.
package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/dukerupert/listkeeper/internal/apperr"
	"github.com/dukerupert/listkeeper/internal/model"
)

// MaxImageBytes caps a single upload.
const MaxImageBytes = 10 << 20

// Uploader stores one image and returns where it lives.
type Uploader interface {
	UploadImage(ctx context.Context, filename, contentType string, r io.Reader) (model.Media, error)
}

var imageTypes = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// Sniff reads the image into memory, checks its size and detects its type
// from the content. The declared type of the upload is not trusted.
func Sniff(r io.Reader) (data []byte, contentType, format string, err error) {
	data, err = io.ReadAll(io.LimitReader(r, MaxImageBytes+1))
	if err != nil {
		return nil, "", "", fmt.Errorf("read image: %w", err)
	}
	if len(data) == 0 {
		return nil, "", "", apperr.Validation("file is empty")
	}
	if len(data) > MaxImageBytes {
		return nil, "", "", apperr.Validation(fmt.Sprintf("file is larger than %d MB", MaxImageBytes>>20))
	}
	contentType = http.DetectContentType(data)
	format, ok := imageTypes[contentType]
	if !ok {
		return nil, "", "", apperr.Validation("file must be a JPEG, PNG, GIF or WebP image").
			WithDetails(map[string]string{"file": "is not an image"})
	}
	return data, contentType, format, nil
}

// Filename keeps the base name of an uploaded file and gives it the
// extension of its detected format.
func Filename(name, format string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		base = "photo"
	}
	base = strings.TrimSuffix(base, path.Ext(base))
	return base + "." + format
}

// Store validates an upload and hands it to the uploader.
type Store struct {
	uploader Uploader
}

func NewStore(uploader Uploader) *Store {
	return &Store{uploader: uploader}
}

func (s *Store) Save(ctx context.Context, filename string, r io.Reader) (model.Media, error) {
	data, contentType, format, err := Sniff(r)
	if err != nil {
		return model.Media{}, err
	}
	m, err := s.uploader.UploadImage(ctx, Filename(filename, format), contentType, bytes.NewReader(data))
	if err != nil {
		return model.Media{}, fmt.Errorf("upload image: %w", err)
	}
	if m.Format == "" {
		m.Format = format
	}
	if m.Bytes == 0 {
		m.Bytes = int64(len(data))
	}
	return m, nil
}
