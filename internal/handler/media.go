package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dukerupert/listkeeper/internal/apperr"
	"github.com/dukerupert/listkeeper/internal/media"
	"github.com/dukerupert/listkeeper/internal/notice"
)

type MediaHandler struct {
	base
	store *media.Store
}

func NewMediaHandler(store *media.Store, notices *notice.Catalog, logger *slog.Logger) *MediaHandler {
	return &MediaHandler{base: base{notices: notices, logger: logger}, store: store}
}

// Upload accepts one image in the multipart field "file" and returns its
// public_id and secure_url for a category, product or profile form.
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	// Multipart framing needs a little room above the image cap.
	r.Body = http.MaxBytesReader(w, r.Body, media.MaxImageBytes+1<<20)

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			err = apperr.Validation("file is too large")
		} else {
			err = apperr.Wrap(apperr.KindValidation, err, "file is required")
		}
		h.fail(w, r, notice.ImageUploaded, err)
		return
	}
	defer file.Close()

	m, err := h.store.Save(r.Context(), header.Filename, file)
	if err != nil {
		h.fail(w, r, notice.ImageUploaded, err)
		return
	}
	h.ok(w, http.StatusCreated, m, notice.ImageUploaded)
}
