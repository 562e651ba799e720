package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"github.com/dukerupert/listkeeper/internal/model"
)

// UploadImage forwards an image to the backend's /media/upload as the
// multipart field "file".
func (c *Client) UploadImage(ctx context.Context, filename, contentType string, r io.Reader) (model.Media, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	h.Set("Content-Type", contentType)
	part, err := mw.CreatePart(h)
	if err != nil {
		return model.Media{}, fmt.Errorf("create multipart part: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return model.Media{}, fmt.Errorf("copy upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return model.Media{}, fmt.Errorf("close multipart: %w", err)
	}

	var out model.Media
	if err := c.send(ctx, http.MethodPost, "/media/upload", &buf, mw.FormDataContentType(), &out); err != nil {
		return model.Media{}, err
	}
	return out, nil
}
